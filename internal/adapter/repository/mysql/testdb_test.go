package mysql

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schemas only for tests (no MySQL column types) ---

type contractSQLite struct {
	ID               uint64     `gorm:"primaryKey;column:id"`
	ContractNumber   string     `gorm:"column:contract_number;uniqueIndex:ux_contracts_number"`
	TransactionType  string     `gorm:"column:transaction_type"`
	AgentID          uint64     `gorm:"column:agent_id"`
	PropertyID       *uint64    `gorm:"column:property_id"`
	StartDate        time.Time  `gorm:"column:start_date"`
	EndDate          *time.Time `gorm:"column:end_date"`
	IsIndefinite     bool       `gorm:"column:is_indefinite"`
	CommissionAmount float64    `gorm:"column:commission_amount"`
	CommissionCcy    string     `gorm:"column:commission_currency"`
	CommissionType   string     `gorm:"column:commission_type"`
	CurrentStage     string     `gorm:"column:current_stage"`
	Status           string     `gorm:"column:status"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at"`
}

func (contractSQLite) TableName() string { return "contracts" }

type stageEventSQLite struct {
	ID         uint64    `gorm:"primaryKey;column:id"`
	ContractID uint64    `gorm:"column:contract_id;index"`
	Stage      string    `gorm:"column:stage"`
	OccurredAt time.Time `gorm:"column:occurred_at"`
	Notes      string    `gorm:"column:notes"`
}

func (stageEventSQLite) TableName() string { return "contract_stage_events" }

type clientLinkSQLite struct {
	ID         uint64    `gorm:"primaryKey;column:id"`
	ContractID uint64    `gorm:"column:contract_id;uniqueIndex:ux_contract_client"`
	ClientID   uint64    `gorm:"column:client_id;uniqueIndex:ux_contract_client"`
	Role       string    `gorm:"column:role"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (clientLinkSQLite) TableName() string { return "contract_client_links" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the
// sqlite-safe schema. TranslateError stays on, as in production, so
// unique violations surface as gorm.ErrDuplicatedKey.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&contractSQLite{}, &stageEventSQLite{}, &clientLinkSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
