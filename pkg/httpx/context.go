package httpx

import "context"

type ctxKey string

const (
	CtxKeyPrincipal ctxKey = "principal"
	CtxKeySubject   ctxKey = "subject"
)

// WithPrincipal stores the authenticated principal and its subject in ctx.
func WithPrincipal[P any](ctx context.Context, subject string, p P) context.Context {
	ctx = context.WithValue(ctx, CtxKeySubject, subject)
	return context.WithValue(ctx, CtxKeyPrincipal, p)
}

// PrincipalFrom returns the principal stored by AuthnMiddleware.
func PrincipalFrom[P any](ctx context.Context) (P, bool) {
	p, ok := ctx.Value(CtxKeyPrincipal).(P)
	return p, ok
}

// SubjectFrom returns the authenticated subject, or "" for anonymous requests.
func SubjectFrom(ctx context.Context) string {
	s, _ := ctx.Value(CtxKeySubject).(string)
	return s
}
