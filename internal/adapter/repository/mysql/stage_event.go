package mysql

import (
	"context"

	contractDomain "estate-backoffice/internal/domain/contract"

	"gorm.io/gorm"
)

type StageEventRepository struct{ db *gorm.DB }

func NewStageEventRepository(db *gorm.DB) *StageEventRepository {
	return &StageEventRepository{db: db}
}

func (r *StageEventRepository) Create(ctx context.Context, ev *contractDomain.StageEvent) error {
	return r.db.WithContext(ctx).Create(ev).Error
}

func (r *StageEventRepository) ListByContract(ctx context.Context, contractID uint64) ([]contractDomain.StageEvent, error) {
	var out []contractDomain.StageEvent
	res := r.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("occurred_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *StageEventRepository) DeleteByContract(ctx context.Context, contractID uint64) error {
	return r.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Delete(&contractDomain.StageEvent{}).Error
}
