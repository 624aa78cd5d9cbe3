package auth

import "context"

// Principal is the authenticated caller attached to the request context
type Principal struct {
	Subject string
	Role    string
}

type contextKey struct{}

// WithPrincipal attaches the principal to the context
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// FromContext returns the principal from the context, if any
func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(*Principal)
	return p, ok
}
