package auth

import "context"

type Capability string

const (
	CapContractCreate Capability = "contracts.create"
	CapContractUpdate Capability = "contracts.update"
	CapContractDelete Capability = "contracts.delete"
	CapContractStage  Capability = "contracts.stage"
	CapContractLink   Capability = "contracts.link"
)

// Authorizer is the host platform's permission oracle. Every mutating
// operation asks it first; a denial short-circuits before any validation
// or storage work.
type Authorizer interface {
	Can(ctx context.Context, cap Capability) bool
}
