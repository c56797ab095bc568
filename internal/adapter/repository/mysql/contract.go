package mysql

import (
	"context"
	"strconv"

	contractDomain "estate-backoffice/internal/domain/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ContractRepository struct{ db *gorm.DB }

func NewContractRepository(db *gorm.DB) *ContractRepository { return &ContractRepository{db: db} }

// Tx runs fn in a db transaction, passing a repo bound to the tx
func (r *ContractRepository) Tx(ctx context.Context, fn func(repo contractDomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ContractRepository{db: tx})
	})
}

func (r *ContractRepository) Create(ctx context.Context, c *contractDomain.Contract) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ContractRepository) Save(ctx context.Context, c *contractDomain.Contract) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *ContractRepository) GetByID(ctx context.Context, id uint64) (*contractDomain.Contract, error) {
	var out contractDomain.Contract
	res := r.db.WithContext(ctx).
		Preload("StageEvents", func(db *gorm.DB) *gorm.DB {
			return db.Order("occurred_at DESC, id DESC")
		}).
		Preload("ClientLinks").
		Where("id = ?", id).
		First(&out)
	return &out, res.Error
}

func (r *ContractRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*contractDomain.Contract, error) {
	q := r.db.WithContext(ctx)
	// sqlite (tests) has no SELECT ... FOR UPDATE
	if r.db.Dialector.Name() == "mysql" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var out contractDomain.Contract
	res := q.Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *ContractRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&contractDomain.Contract{}).Error
}

func (r *ContractRepository) MaxNumberForPrefix(ctx context.Context, prefix string) (int, error) {
	// Suffixes are zero-padded, so the lexicographic max is the numeric max.
	var max *string
	res := r.db.WithContext(ctx).
		Model(&contractDomain.Contract{}).
		Where("contract_number LIKE ?", prefix+"%").
		Select("MAX(contract_number)").
		Scan(&max)
	if res.Error != nil {
		return 0, res.Error
	}
	if max == nil || len(*max) <= len(prefix) {
		return 0, nil
	}
	n, err := strconv.Atoi((*max)[len(prefix):])
	if err != nil {
		return 0, err
	}
	return n, nil
}
