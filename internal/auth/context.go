package auth

import (
	"context"

	"github.com/augcode13-glitch/paapimg/internal/domain"
)

type contextKey struct{}

// WithUser кладёт проверенного пользователя в контекст запроса
func WithUser(ctx context.Context, user domain.User) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

// UserFromContext достаёт пользователя, положенного middleware
func UserFromContext(ctx context.Context) (domain.User, bool) {
	user, ok := ctx.Value(contextKey{}).(domain.User)
	return user, ok
}
