package contract

import (
	"context"
	"errors"
	"log"
	"time"

	"estate-backoffice/internal/domain/auth"
	contractDomain "estate-backoffice/internal/domain/contract"
	"estate-backoffice/internal/domain/event"
	"estate-backoffice/internal/domain/uow"
	"estate-backoffice/internal/usecase/clientlink"
	"estate-backoffice/internal/usecase/numbering"
	"estate-backoffice/internal/usecase/stage"
	"estate-backoffice/pkg/id"

	"gorm.io/gorm"
)

// createAttempts bounds the retry loop around contract-number collisions:
// two concurrent creates in the same period can read the same maximum
// suffix, in which case the unique index rejects the loser and the whole
// transaction is retried with a fresh number.
const createAttempts = 3

type Usecase struct {
	repo  contractDomain.Repository
	uow   uow.UnitOfWork
	authz auth.Authorizer
	sink  event.Sink
}

func NewUsecase(repo contractDomain.Repository, tx uow.UnitOfWork, authz auth.Authorizer, sink event.Sink) *Usecase {
	return &Usecase{repo: repo, uow: tx, authz: authz, sink: sink}
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*ContractDTO, error) {
	if u.authz != nil && !u.authz.Can(ctx, auth.CapContractCreate) {
		return nil, contractDomain.ErrPermissionDenied
	}
	n, err := validateCreate(in)
	if err != nil {
		return nil, err
	}

	var created *contractDomain.Contract
	for attempt := 0; attempt < createAttempts; attempt++ {
		err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
			// number allocation reads the current maximum inside the
			// same transaction as the insert
			number, err := numbering.NewGenerator(r.Contracts).Next(ctx, n.startDate)
			if err != nil {
				return err
			}
			c := &contractDomain.Contract{
				ContractNumber:   number,
				TransactionType:  n.txType,
				AgentID:          in.AgentID,
				PropertyID:       in.PropertyID,
				StartDate:        n.startDate,
				EndDate:          n.endDate,
				IsIndefinite:     in.IsIndefinite,
				CommissionAmount: in.CommissionAmount,
				CommissionCcy:    n.currency,
				CommissionType:   n.commType,
				CurrentStage:     contractDomain.InitialStage(),
				Status:           contractDomain.StatusActive,
			}
			if err := r.Contracts.Create(ctx, c); err != nil {
				return err
			}
			if _, err := stage.Append(ctx, r, c, contractDomain.InitialStage(), ""); err != nil {
				return err
			}
			if err := clientlink.InsertSet(ctx, r, c.ID, toLinkInputs(in.Clients)); err != nil {
				return err
			}
			created = c
			return nil
		})
		if err == nil {
			break
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
		log.Printf("contract: create number collision, attempt %d", attempt+1)
	}
	if err != nil {
		log.Printf("contract: create: %v", err)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, contractDomain.ErrDuplicate
		}
		return nil, err
	}

	u.notify(ctx, event.ContractCreated, created.ID, created.ContractNumber)
	return u.Get(ctx, created.ID)
}

func (u *Usecase) Get(ctx context.Context, contractID uint64) (*ContractDTO, error) {
	c, err := u.repo.GetByID(ctx, contractID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, contractDomain.ErrNotFound
		}
		return nil, err
	}
	return toDTO(c), nil
}

func (u *Usecase) Update(ctx context.Context, contractID uint64, in UpdateInput) (*ContractDTO, error) {
	if u.authz != nil && !u.authz.Can(ctx, auth.CapContractUpdate) {
		return nil, contractDomain.ErrPermissionDenied
	}
	n, err := validateUpdate(in)
	if err != nil {
		return nil, err
	}

	err = u.uow.WithinContractTx(ctx, contractID, func(r uow.Repos, c *contractDomain.Contract) error {
		c.TransactionType = n.txType
		c.AgentID = in.AgentID
		c.PropertyID = in.PropertyID
		c.StartDate = n.startDate
		c.EndDate = n.endDate
		c.IsIndefinite = in.IsIndefinite
		c.CommissionAmount = in.CommissionAmount
		c.CommissionCcy = n.currency
		c.CommissionType = n.commType
		if in.Status != "" {
			c.Status = contractDomain.Status(in.Status)
		}
		// current stage and contract number are untouched here: stage
		// changes go through the stage history manager only
		if err := r.Contracts.Save(ctx, c); err != nil {
			return err
		}
		if in.Clients != nil {
			if err := r.ClientLinks.DeleteByContract(ctx, c.ID); err != nil {
				return err
			}
			return clientlink.InsertSet(ctx, r, c.ID, toLinkInputs(in.Clients))
		}
		return nil
	})
	if err != nil {
		log.Printf("contract: update id=%d: %v", contractID, err)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, contractDomain.ErrNotFound
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, contractDomain.ErrDuplicate
		}
		return nil, err
	}

	u.notify(ctx, event.ContractUpdated, contractID, "")
	return u.Get(ctx, contractID)
}

func (u *Usecase) Delete(ctx context.Context, contractID uint64) error {
	if u.authz != nil && !u.authz.Can(ctx, auth.CapContractDelete) {
		return contractDomain.ErrPermissionDenied
	}

	err := u.uow.WithinContractTx(ctx, contractID, func(r uow.Repos, c *contractDomain.Contract) error {
		// children first, then the contract row, all in one transaction
		if err := r.ClientLinks.DeleteByContract(ctx, c.ID); err != nil {
			return err
		}
		if err := r.StageEvents.DeleteByContract(ctx, c.ID); err != nil {
			return err
		}
		return r.Contracts.Delete(ctx, c.ID)
	})
	if err != nil {
		log.Printf("contract: delete id=%d: %v", contractID, err)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return contractDomain.ErrNotFound
		}
		return err
	}

	u.notify(ctx, event.ContractDeleted, contractID, "")
	return nil
}

func (u *Usecase) Search(ctx context.Context, in SearchInput) (*SearchResult, error) {
	f := contractDomain.SearchFilter{
		TransactionType: contractDomain.TransactionType(in.TransactionType),
		AgentID:         in.AgentID,
		PropertyID:      in.PropertyID,
		ClientID:        in.ClientID,
		Stage:           contractDomain.Stage(in.Stage),
		Status:          contractDomain.Status(in.Status),
		OrderBy:         in.OrderBy,
		OrderDesc:       in.OrderDirection != "asc",
		Limit:           in.Limit,
		Offset:          in.Offset,
	}
	if in.DateFrom != "" {
		d, err := time.Parse(DateLayout, in.DateFrom)
		if err != nil {
			return nil, invalid("date_from must be %s", DateLayout)
		}
		f.DateFrom = &d
	}
	if in.DateTo != "" {
		d, err := time.Parse(DateLayout, in.DateTo)
		if err != nil {
			return nil, invalid("date_to must be %s", DateLayout)
		}
		f.DateTo = &d
	}

	items, total, err := u.repo.Search(ctx, f)
	if err != nil {
		log.Printf("contract: search: %v", err)
		return nil, err
	}
	res := &SearchResult{Items: make([]ContractDTO, 0, len(items)), TotalCount: total}
	for i := range items {
		res.Items = append(res.Items, *toDTO(&items[i]))
	}
	return res, nil
}

func (u *Usecase) notify(ctx context.Context, t event.Type, contractID uint64, detail string) {
	if u.sink == nil {
		return
	}
	ev := event.Event{
		ID:         id.NewID32(),
		Type:       t,
		ContractID: contractID,
		OccurredAt: time.Now().UTC(),
		Detail:     detail,
	}
	if err := u.sink.Publish(ctx, ev); err != nil {
		// fire-and-forget: log and move on
		log.Printf("contract: publish %s id=%d: %v", t, contractID, err)
	}
}
