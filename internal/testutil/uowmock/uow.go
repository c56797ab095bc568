package uowmock

import (
	"context"
	"errors"

	"estate-backoffice/internal/domain/contract"
	"estate-backoffice/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn         func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinContractTxFn func(ctx context.Context, contractID uint64, fn func(r uow.Repos, c *contract.Contract) error) error
}

func New() *UoW { return &UoW{} }

// Passthrough returns a UoW that simply runs callbacks against the given
// repos without any transaction semantics.
func Passthrough(r uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(ctx context.Context, fn func(r uow.Repos) error) error {
			return fn(r)
		},
		WithinContractTxFn: func(ctx context.Context, contractID uint64, fn func(r uow.Repos, c *contract.Contract) error) error {
			c, err := r.Contracts.GetByIDForUpdate(ctx, contractID)
			if err != nil {
				return err
			}
			return fn(r, c)
		},
	}
}

func (m *UoW) Reset() { *m = UoW{} }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinContractTx(ctx context.Context, contractID uint64, fn func(r uow.Repos, c *contract.Contract) error) error {
	if m.WithinContractTxFn != nil {
		return m.WithinContractTxFn(ctx, contractID, fn)
	}
	return errUnimplemented
}
