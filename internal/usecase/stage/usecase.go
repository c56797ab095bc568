package stage

import (
	"context"
	"errors"
	"log"
	"time"

	"estate-backoffice/internal/domain/auth"
	contractDomain "estate-backoffice/internal/domain/contract"
	"estate-backoffice/internal/domain/event"
	"estate-backoffice/internal/domain/uow"
	"estate-backoffice/pkg/id"

	"gorm.io/gorm"
)

// Usecase is the stage history manager: it appends immutable StageEvents
// and moves the contract's current-stage pointer.
type Usecase struct {
	uow   uow.UnitOfWork
	authz auth.Authorizer
	sink  event.Sink
}

func NewUsecase(tx uow.UnitOfWork, authz auth.Authorizer, sink event.Sink) *Usecase {
	return &Usecase{uow: tx, authz: authz, sink: sink}
}

type AddStageInput struct {
	ContractID uint64
	Stage      contractDomain.Stage
	Notes      string
}

type StageEventDTO struct {
	ContractID   uint64               `json:"contract_id"`
	Stage        contractDomain.Stage `json:"stage"`
	OccurredAt   time.Time            `json:"occurred_at"`
	Notes        string               `json:"notes,omitempty"`
	CurrentStage contractDomain.Stage `json:"current_stage"`
}

// AddStage validates catalog membership only. Any catalog member may
// follow any other — repeats and reverts included — so agents can walk a
// contract back; this permissiveness is policy, not an oversight.
func (u *Usecase) AddStage(ctx context.Context, in AddStageInput) (*StageEventDTO, error) {
	if u.authz != nil && !u.authz.Can(ctx, auth.CapContractStage) {
		return nil, contractDomain.ErrPermissionDenied
	}
	if !contractDomain.ValidStage(in.Stage) {
		return nil, contractDomain.ErrInvalidStage
	}

	var dto *StageEventDTO
	err := u.uow.WithinContractTx(ctx, in.ContractID, func(r uow.Repos, c *contractDomain.Contract) error {
		ev, err := Append(ctx, r, c, in.Stage, in.Notes)
		if err != nil {
			return err
		}
		dto = &StageEventDTO{
			ContractID:   c.ID,
			Stage:        ev.Stage,
			OccurredAt:   ev.OccurredAt,
			Notes:        ev.Notes,
			CurrentStage: c.CurrentStage,
		}
		return nil
	})
	if err != nil {
		log.Printf("stage: add_stage contract=%d stage=%s: %v", in.ContractID, in.Stage, err)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, contractDomain.ErrNotFound
		}
		return nil, err
	}

	u.notify(ctx, in.ContractID, in.Stage)
	return dto, nil
}

// Append writes one StageEvent and updates the current-stage pointer
// inside the caller's transaction. Contract creation uses it with the
// creating transaction; AddStage wraps it in its own.
func Append(ctx context.Context, r uow.Repos, c *contractDomain.Contract, s contractDomain.Stage, notes string) (*contractDomain.StageEvent, error) {
	ev := &contractDomain.StageEvent{
		ContractID: c.ID,
		Stage:      s,
		OccurredAt: time.Now().UTC(), // server-assigned, never caller-supplied
		Notes:      notes,
	}
	if err := r.StageEvents.Create(ctx, ev); err != nil {
		return nil, err
	}
	c.CurrentStage = s
	if err := r.Contracts.Save(ctx, c); err != nil {
		return nil, err
	}
	return ev, nil
}

func (u *Usecase) notify(ctx context.Context, contractID uint64, s contractDomain.Stage) {
	if u.sink == nil {
		return
	}
	ev := event.Event{
		ID:         id.NewID32(),
		Type:       event.ContractStageChanged,
		ContractID: contractID,
		OccurredAt: time.Now().UTC(),
		Detail:     string(s),
	}
	if err := u.sink.Publish(ctx, ev); err != nil {
		// best-effort, never blocks the result
		log.Printf("stage: publish %s contract=%d: %v", ev.Type, contractID, err)
	}
}
