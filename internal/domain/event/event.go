package event

import (
	"context"
	"time"
)

type Type string

const (
	ContractCreated      Type = "contract.created"
	ContractUpdated      Type = "contract.updated"
	ContractDeleted      Type = "contract.deleted"
	ContractStageChanged Type = "contract.stage_changed"
)

// Event is a fire-and-forget notification for external subscribers
// (audit log, notifications). It is published after commit and is never
// part of the transaction that produced it.
type Event struct {
	ID         string    `json:"id"`
	Type       Type      `json:"type"`
	ContractID uint64    `json:"contract_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Detail     string    `json:"detail,omitempty"`
}

type Sink interface {
	Publish(ctx context.Context, ev Event) error
}
