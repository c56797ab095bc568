package mysql

import (
	"context"

	contractDomain "estate-backoffice/internal/domain/contract"

	"gorm.io/gorm"
)

// Columns callers may order by; anything else falls back to id.
var searchOrderColumns = map[string]bool{
	"id":              true,
	"contract_number": true,
	"start_date":      true,
	"end_date":        true,
	"created_at":      true,
	"updated_at":      true,
}

// Search runs the AND-combined predicate set twice: once for the total
// count, once for the page itself. Absent filter fields impose no
// constraint; Status defaults to active unless overridden.
func (r *ContractRepository) Search(ctx context.Context, f contractDomain.SearchFilter) ([]contractDomain.Contract, int64, error) {
	q := r.db.WithContext(ctx).Model(&contractDomain.Contract{})
	q = applyFilter(q, f)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = q.Order(orderClause(f))
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	var items []contractDomain.Contract
	if err := q.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func applyFilter(q *gorm.DB, f contractDomain.SearchFilter) *gorm.DB {
	if f.TransactionType != "" {
		q = q.Where("transaction_type = ?", f.TransactionType)
	}
	if f.AgentID != 0 {
		q = q.Where("agent_id = ?", f.AgentID)
	}
	if f.PropertyID != 0 {
		q = q.Where("property_id = ?", f.PropertyID)
	}
	if f.ClientID != 0 {
		q = q.Where("id IN (?)",
			q.Session(&gorm.Session{NewDB: true}).
				Model(&contractDomain.ContractClientLink{}).
				Select("contract_id").
				Where("client_id = ?", f.ClientID))
	}
	if f.Stage != "" {
		q = q.Where("current_stage = ?", f.Stage)
	}
	switch f.Status {
	case contractDomain.StatusAll:
		// no status constraint
	case "":
		q = q.Where("status = ?", contractDomain.StatusActive)
	default:
		q = q.Where("status = ?", f.Status)
	}
	if f.DateFrom != nil {
		q = q.Where("start_date >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		q = q.Where("start_date <= ?", *f.DateTo)
	}
	return q
}

func orderClause(f contractDomain.SearchFilter) string {
	col := f.OrderBy
	if !searchOrderColumns[col] {
		// default ordering: newest contracts first
		return "id DESC"
	}
	if f.OrderDesc {
		return col + " DESC"
	}
	return col + " ASC"
}
