package domain

import "context"

type tokenKey struct{}

// WithToken returns a context carrying the session's backend token. The
// guard attaches it per request; the backend client picks it up when
// building the Authorization header.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFrom extracts the backend token from ctx, or "" when absent.
func TokenFrom(ctx context.Context) string {
	t, _ := ctx.Value(tokenKey{}).(string)
	return t
}
