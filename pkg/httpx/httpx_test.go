package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestChainOrdering(t *testing.T) {
	var order []string

	tag := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(okHandler(), tag("first"), tag("second"), tag("third"))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{"first", "second", "third"}, order)
}

func TestRequireAnyRole(t *testing.T) {
	h := Chain(okHandler(), RequireAnyRole("Admin"))

	t.Run("role present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := ContextWithPrincipal(req.Context(), "u1", "a@x.com", []string{"Admin", "Customer"})

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req.WithContext(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("role missing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := ContextWithPrincipal(req.Context(), "u1", "a@x.com", []string{"Customer"})

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req.WithContext(ctx))
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("no principal at all", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestRequireAllRoles(t *testing.T) {
	h := Chain(okHandler(), RequireAllRoles("Admin", "Customer"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := ContextWithPrincipal(req.Context(), "u1", "a@x.com", []string{"Admin"})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req.WithContext(ctx))
	require.Equal(t, http.StatusForbidden, rec.Code)

	ctx = ContextWithPrincipal(req.Context(), "u1", "a@x.com", []string{"Admin", "Customer"})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req.WithContext(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	cfg := RateLimitConfig{
		RequestsPerWindow: 2,
		Window:            time.Minute,
		Burst:             2,
	}

	t.Run("limits per key", func(t *testing.T) {
		h := Chain(okHandler(), RateLimitByIP(cfg))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"

		for range 2 {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code)
		}

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		require.NotEmpty(t, rec.Header().Get("Retry-After"))
	})

	t.Run("keys are independent", func(t *testing.T) {
		h := Chain(okHandler(), RateLimitByIP(cfg))

		first := httptest.NewRequest(http.MethodGet, "/", nil)
		first.RemoteAddr = "10.0.0.1:1234"
		for range 3 {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, first)
		}

		other := httptest.NewRequest(http.MethodGet, "/", nil)
		other.RemoteAddr = "10.0.0.2:1234"

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, other)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("forwarded header wins over remote addr", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

		require.Equal(t, "203.0.113.7", IPKeyExtractor(req))
	})
}

func TestCompositeKeyExtractor(t *testing.T) {
	ex := CompositeKeyExtractor(":", IPKeyExtractor, func(r *http.Request) string {
		return r.Header.Get("X-Test-Key")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	req.Header.Set("X-Test-Key", "abc")

	require.Equal(t, "10.0.0.1:abc", ex(req))
}
