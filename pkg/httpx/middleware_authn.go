package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

// DefaultUnauthorizedDetail is the detail sent with every bearer failure.
const DefaultUnauthorizedDetail = "Could not validate credentials"

// ErrInternal marks resolver failures that are not the caller's fault. They
// answer 500 instead of 401.
var ErrInternal = errors.New("httpx: internal error")

// AuthnMiddleware requires a bearer token and stores the principal returned by
// resolve, with its subject name, in the request context. Every failure
// answers 401 with WWW-Authenticate: Bearer.
func AuthnMiddleware[P any](resolve func(ctx context.Context, token string) (P, string, error)) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			raw, ok := BearerToken(r)
			if !ok {
				WriteUnauthorized(w, DefaultUnauthorizedDetail)
				return
			}

			p, subject, err := resolve(ctx, raw)
			if errors.Is(err, ErrInternal) {
				slogx.FromContext(ctx).Error("bearer resolution failed", "err", err)
				WriteProblem(w, http.StatusInternalServerError, "server_error", "internal server error")
				return
			}
			if err != nil {
				slogx.FromContext(ctx).Debug("bearer rejected", "err", err)
				WriteUnauthorized(w, DefaultUnauthorizedDetail)
				return
			}

			ctx = slogx.With(WithPrincipal(ctx, subject, p), "sub", subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from an "Authorization: Bearer <t>" header.
// The scheme is matched case-insensitively.
func BearerToken(r *http.Request) (string, bool) {
	authz := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, found := strings.Cut(authz, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// WriteUnauthorized writes a 401 carrying the bearer challenge.
func WriteUnauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	WriteProblem(w, http.StatusUnauthorized, "unauthorized", detail)
}
