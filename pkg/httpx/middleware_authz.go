package httpx

import (
	"net/http"
	"strings"
)

// RequireAnyRole the caller must hold at least one of the provided roles.
// The role set comes from the validated token's claims, so it reflects
// membership at issuance time, not the live store.
func RequireAnyRole(required ...string) Middleware {
	want := make(map[string]struct{}, len(required))
	for _, r := range required {
		want[r] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			have := rolesFromCtx(r.Context())

			for _, role := range have {
				if _, ok := want[role]; ok {
					next.ServeHTTP(w, r)
					return
				}
			}

			writeRoleError(w, required...)
		})
	}
}

// RequireAllRoles the caller must hold every role listed.
func RequireAllRoles(required ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			have := make(map[string]struct{})
			for _, role := range rolesFromCtx(r.Context()) {
				have[role] = struct{}{}
			}

			for _, req := range required {
				if _, ok := have[req]; !ok {
					writeRoleError(w, required...)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RFC 6750-style error response for insufficient role membership.
func writeRoleError(w http.ResponseWriter, required ...string) {
	w.Header().
		Set("WWW-Authenticate", `Bearer error="insufficient_scope", scope="`+strings.Join(required, " ")+`"`)
	WriteError(w, http.StatusForbidden, "insufficient_role",
		"the authenticated user lacks the required role")
}
