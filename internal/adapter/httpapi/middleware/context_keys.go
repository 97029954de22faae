package middleware

import (
	"context"

	userdomain "github.com/stashspot/backend/internal/user/domain"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey string

// principalKey holds the authenticated Principal for a request.
const principalKey contextKey = "principal"

// WithPrincipal returns a context carrying the authenticated principal.
func WithPrincipal(ctx context.Context, p userdomain.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext extracts the authenticated principal, if any.
func PrincipalFromContext(ctx context.Context) (userdomain.Principal, bool) {
	p, ok := ctx.Value(principalKey).(userdomain.Principal)
	return p, ok
}
