package clientlink

import (
	"context"
	"errors"
	"log"

	"estate-backoffice/internal/domain/auth"
	contractDomain "estate-backoffice/internal/domain/contract"
	"estate-backoffice/internal/domain/uow"

	"gorm.io/gorm"
)

// Usecase owns the contract↔client association. Updates are wholesale
// (delete-all-then-reinsert), never a diff: callers supply the complete
// desired set.
type Usecase struct {
	uow   uow.UnitOfWork
	authz auth.Authorizer
}

func NewUsecase(tx uow.UnitOfWork, authz auth.Authorizer) *Usecase {
	return &Usecase{uow: tx, authz: authz}
}

type LinkInput struct {
	ClientID uint64
	Role     contractDomain.Role
}

func (u *Usecase) Link(ctx context.Context, contractID uint64, in LinkInput) error {
	if u.authz != nil && !u.authz.Can(ctx, auth.CapContractLink) {
		return contractDomain.ErrPermissionDenied
	}
	if !contractDomain.ValidRole(in.Role) {
		return contractDomain.ErrInvalidRole
	}
	err := u.uow.WithinContractTx(ctx, contractID, func(r uow.Repos, c *contractDomain.Contract) error {
		return InsertSet(ctx, r, c.ID, []LinkInput{in})
	})
	if err != nil {
		log.Printf("clientlink: link contract=%d client=%d: %v", contractID, in.ClientID, err)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return contractDomain.ErrNotFound
		}
	}
	return err
}

func (u *Usecase) ReplaceLinks(ctx context.Context, contractID uint64, links []LinkInput) error {
	if u.authz != nil && !u.authz.Can(ctx, auth.CapContractLink) {
		return contractDomain.ErrPermissionDenied
	}
	if err := ValidateSet(links); err != nil {
		return err
	}
	err := u.uow.WithinContractTx(ctx, contractID, func(r uow.Repos, c *contractDomain.Contract) error {
		if err := r.ClientLinks.DeleteByContract(ctx, c.ID); err != nil {
			return err
		}
		return InsertSet(ctx, r, c.ID, links)
	})
	if err != nil {
		log.Printf("clientlink: replace contract=%d: %v", contractID, err)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return contractDomain.ErrNotFound
		}
	}
	return err
}

// ValidateSet rejects unknown roles and duplicate client ids before any
// write happens.
func ValidateSet(links []LinkInput) error {
	seen := make(map[uint64]bool, len(links))
	for _, l := range links {
		if !contractDomain.ValidRole(l.Role) {
			return contractDomain.ErrInvalidRole
		}
		if seen[l.ClientID] {
			return contractDomain.ErrDuplicate
		}
		seen[l.ClientID] = true
	}
	return nil
}

// InsertSet inserts links inside the caller's transaction. The unique
// (contract_id, client_id) index backs up the in-memory duplicate check.
func InsertSet(ctx context.Context, r uow.Repos, contractID uint64, links []LinkInput) error {
	for _, l := range links {
		link := &contractDomain.ContractClientLink{
			ContractID: contractID,
			ClientID:   l.ClientID,
			Role:       l.Role,
		}
		if err := r.ClientLinks.Create(ctx, link); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return contractDomain.ErrDuplicate
			}
			return err
		}
	}
	return nil
}
