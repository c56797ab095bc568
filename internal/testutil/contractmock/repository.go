package contractmock

import (
	"context"

	domain "estate-backoffice/internal/domain/contract"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Only fill in the methods a test needs; the rest return zero values.
type Repo struct {
	CreateFn             func(ctx context.Context, c *domain.Contract) error
	GetByIDFn            func(ctx context.Context, id uint64) (*domain.Contract, error)
	GetByIDForUpdateFn   func(ctx context.Context, id uint64) (*domain.Contract, error)
	SaveFn               func(ctx context.Context, c *domain.Contract) error
	DeleteFn             func(ctx context.Context, id uint64) error
	MaxNumberForPrefixFn func(ctx context.Context, prefix string) (int, error)
	SearchFn             func(ctx context.Context, f domain.SearchFilter) ([]domain.Contract, int64, error)
}

func (m *Repo) Create(ctx context.Context, c *domain.Contract) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Contract, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Contract, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, c *domain.Contract) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, id uint64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *Repo) MaxNumberForPrefix(ctx context.Context, prefix string) (int, error) {
	if m.MaxNumberForPrefixFn != nil {
		return m.MaxNumberForPrefixFn(ctx, prefix)
	}
	return 0, nil
}

func (m *Repo) Search(ctx context.Context, f domain.SearchFilter) ([]domain.Contract, int64, error) {
	if m.SearchFn != nil {
		return m.SearchFn(ctx, f)
	}
	return nil, 0, nil
}

// StageEventRepo mocks domain.StageEventRepository.
type StageEventRepo struct {
	CreateFn           func(ctx context.Context, ev *domain.StageEvent) error
	ListByContractFn   func(ctx context.Context, contractID uint64) ([]domain.StageEvent, error)
	DeleteByContractFn func(ctx context.Context, contractID uint64) error
}

func (m *StageEventRepo) Create(ctx context.Context, ev *domain.StageEvent) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, ev)
	}
	return nil
}

func (m *StageEventRepo) ListByContract(ctx context.Context, contractID uint64) ([]domain.StageEvent, error) {
	if m.ListByContractFn != nil {
		return m.ListByContractFn(ctx, contractID)
	}
	return nil, nil
}

func (m *StageEventRepo) DeleteByContract(ctx context.Context, contractID uint64) error {
	if m.DeleteByContractFn != nil {
		return m.DeleteByContractFn(ctx, contractID)
	}
	return nil
}

// ClientLinkRepo mocks domain.ClientLinkRepository.
type ClientLinkRepo struct {
	CreateFn           func(ctx context.Context, l *domain.ContractClientLink) error
	ListByContractFn   func(ctx context.Context, contractID uint64) ([]domain.ContractClientLink, error)
	DeleteByContractFn func(ctx context.Context, contractID uint64) error
}

func (m *ClientLinkRepo) Create(ctx context.Context, l *domain.ContractClientLink) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *ClientLinkRepo) ListByContract(ctx context.Context, contractID uint64) ([]domain.ContractClientLink, error) {
	if m.ListByContractFn != nil {
		return m.ListByContractFn(ctx, contractID)
	}
	return nil, nil
}

func (m *ClientLinkRepo) DeleteByContract(ctx context.Context, contractID uint64) error {
	if m.DeleteByContractFn != nil {
		return m.DeleteByContractFn(ctx, contractID)
	}
	return nil
}
