package uow

import (
	"context"

	"estate-backoffice/internal/domain/contract"
)

type Repos struct {
	Contracts   contract.Repository
	StageEvents contract.StageEventRepository
	ClientLinks contract.ClientLinkRepository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the contract row first, then pass it in
	WithinContractTx(ctx context.Context, contractID uint64, fn func(r Repos, c *contract.Contract) error) error
}
