package auth

import (
	"context"

	"github.com/pulso-rh/pulso/internal/domain"
)

type contextKey struct{}

// userContextKey keys the authenticated user in a request context.
var userContextKey = contextKey{}

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// CurrentUser retrieves the authenticated user from a request context.
func CurrentUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userContextKey).(*domain.User)
	return user, ok
}
