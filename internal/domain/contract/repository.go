package contract

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, c *Contract) error
	// GetByID loads the contract with stage history (newest first) and client links.
	GetByID(ctx context.Context, id uint64) (*Contract, error)
	// GetByIDForUpdate locks the contract row for the enclosing transaction.
	GetByIDForUpdate(ctx context.Context, id uint64) (*Contract, error)
	Save(ctx context.Context, c *Contract) error
	Delete(ctx context.Context, id uint64) error
	// MaxNumberForPrefix returns the highest NNN suffix among contract
	// numbers sharing the given "YYYY/MM/" prefix, 0 when none exist.
	MaxNumberForPrefix(ctx context.Context, prefix string) (int, error)
	Search(ctx context.Context, f SearchFilter) ([]Contract, int64, error)
}

type StageEventRepository interface {
	Create(ctx context.Context, ev *StageEvent) error
	ListByContract(ctx context.Context, contractID uint64) ([]StageEvent, error)
	DeleteByContract(ctx context.Context, contractID uint64) error
}

type ClientLinkRepository interface {
	Create(ctx context.Context, l *ContractClientLink) error
	ListByContract(ctx context.Context, contractID uint64) ([]ContractClientLink, error)
	DeleteByContract(ctx context.Context, contractID uint64) error
}

// SearchFilter narrows the result set with AND-combined predicates;
// zero-valued fields impose no constraint. Status defaults to active
// unless set (StatusAll lifts the filter entirely).
type SearchFilter struct {
	TransactionType TransactionType
	AgentID         uint64
	PropertyID      uint64
	ClientID        uint64
	Stage           Stage
	Status          Status
	DateFrom        *time.Time
	DateTo          *time.Time
	OrderBy         string
	OrderDesc       bool
	Limit           int
	Offset          int
}
