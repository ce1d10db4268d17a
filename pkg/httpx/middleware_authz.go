package httpx

import "net/http"

// RequirePrincipal lets the request through only when allow accepts the
// principal stored by AuthnMiddleware. Otherwise it answers 403 with detail.
// It must run after AuthnMiddleware; an anonymous request gets a 401.
func RequirePrincipal[P any](allow func(P) bool, detail string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFrom[P](r.Context())
			if !ok {
				WriteUnauthorized(w, DefaultUnauthorizedDetail)
				return
			}
			if !allow(p) {
				WriteProblem(w, http.StatusForbidden, "forbidden", detail)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
