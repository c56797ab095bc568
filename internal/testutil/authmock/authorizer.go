package authmock

import (
	"context"

	"estate-backoffice/internal/domain/auth"
)

var _ auth.Authorizer = (*Authorizer)(nil)

// Authorizer allows everything unless DenyAll is set or the capability
// appears in Denied.
type Authorizer struct {
	DenyAll bool
	Denied  map[auth.Capability]bool
	// Asked records every capability the core checked, in order.
	Asked []auth.Capability
}

func AllowAll() *Authorizer { return &Authorizer{} }

func Deny(caps ...auth.Capability) *Authorizer {
	m := make(map[auth.Capability]bool, len(caps))
	for _, c := range caps {
		m[c] = true
	}
	return &Authorizer{Denied: m}
}

func (a *Authorizer) Can(_ context.Context, cap auth.Capability) bool {
	a.Asked = append(a.Asked, cap)
	if a.DenyAll {
		return false
	}
	return !a.Denied[cap]
}
