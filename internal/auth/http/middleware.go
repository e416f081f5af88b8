package http

import (
	"net/http"
	"strings"

	"github.com/carefinder/carefinder/internal/auth/service"
	"github.com/carefinder/carefinder/pkg/httpx"
)

// AuthnMiddleware authenticates the bearer token on the request and injects
// the resulting principal into the request context. All verification
// failures collapse into the same 401 response.
func AuthnMiddleware(auth *service.AuthService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				httpx.WriteBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			principal, err := auth.Authenticate(ctx, raw)
			if err != nil {
				httpx.WriteBearerError(w, "token verification failed")
				return
			}

			ctx = httpx.ContextWithPrincipal(ctx, principal.UserID, principal.Email, principal.Roles)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
