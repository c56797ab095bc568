package mysql

import (
	"context"

	contractDomain "estate-backoffice/internal/domain/contract"

	"gorm.io/gorm"
)

type ClientLinkRepository struct{ db *gorm.DB }

func NewClientLinkRepository(db *gorm.DB) *ClientLinkRepository {
	return &ClientLinkRepository{db: db}
}

func (r *ClientLinkRepository) Create(ctx context.Context, l *contractDomain.ContractClientLink) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *ClientLinkRepository) ListByContract(ctx context.Context, contractID uint64) ([]contractDomain.ContractClientLink, error) {
	var out []contractDomain.ContractClientLink
	res := r.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *ClientLinkRepository) DeleteByContract(ctx context.Context, contractID uint64) error {
	return r.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Delete(&contractDomain.ContractClientLink{}).Error
}
