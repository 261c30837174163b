// Package principal carries the authenticated account through a request's
// context.Context. It is set once by the auth middleware and read by
// handlers and services; nothing stores it globally.
package principal

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/shared"
)

type Principal struct {
	MemberID uuid.UUID
	Username string
	Role     shared.Role
}

func (p Principal) IsLibrarian() bool {
	return p.Role == shared.RoleLibrarian
}

// CanActFor reports whether p may operate on memberID's loans
func (p Principal) CanActFor(memberID uuid.UUID) bool {
	return p.IsLibrarian() || p.MemberID == memberID
}

type contextKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(Principal)
	return p, ok
}
