package contract

import (
	"time"
)

type TransactionType string

const (
	TypeSale     TransactionType = "sale"
	TypePurchase TransactionType = "purchase"
	TypeLeaseOut TransactionType = "lease-out"
	TypeLeaseIn  TransactionType = "lease-in"
)

func ValidTransactionType(t TransactionType) bool {
	switch t {
	case TypeSale, TypePurchase, TypeLeaseOut, TypeLeaseIn:
		return true
	}
	return false
}

type Status string

const (
	StatusActive     Status = "active"
	StatusCompleted  Status = "completed"
	StatusTerminated Status = "terminated"
	StatusExpired    Status = "expired"
	// StatusAll is a filter sentinel only, never persisted.
	StatusAll Status = "all"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusActive, StatusCompleted, StatusTerminated, StatusExpired:
		return true
	}
	return false
}

type Currency string

const (
	CurrencyLocal Currency = "local"
	CurrencyEUR   Currency = "eur"
	CurrencyUSD   Currency = "usd"
)

func ValidCurrency(c Currency) bool {
	switch c {
	case CurrencyLocal, CurrencyEUR, CurrencyUSD:
		return true
	}
	return false
}

type CommissionType string

const (
	CommissionPercentage CommissionType = "percentage"
	CommissionFixed      CommissionType = "fixed"
)

func ValidCommissionType(c CommissionType) bool {
	return c == CommissionPercentage || c == CommissionFixed
}

type Role string

const (
	RoleSeller   Role = "seller"
	RoleBuyer    Role = "buyer"
	RoleLandlord Role = "landlord"
	RoleTenant   Role = "tenant"
)

func ValidRole(r Role) bool {
	switch r {
	case RoleSeller, RoleBuyer, RoleLandlord, RoleTenant:
		return true
	}
	return false
}

// Contract is one brokerage transaction moving through the stage catalog.
// ContractNumber is assigned once at creation (YYYY/MM/NNN) and never changes.
type Contract struct {
	ID               uint64          `gorm:"primaryKey;column:id" json:"id"`
	ContractNumber   string          `gorm:"column:contract_number;size:16;not null;uniqueIndex:ux_contracts_number" json:"contract_number"`
	TransactionType  TransactionType `gorm:"column:transaction_type;size:16;not null;index" json:"transaction_type"`
	AgentID          uint64          `gorm:"column:agent_id;not null;index" json:"agent_id"`
	PropertyID       *uint64         `gorm:"column:property_id" json:"property_id,omitempty"`
	StartDate        time.Time       `gorm:"column:start_date;type:date;not null" json:"start_date"`
	EndDate          *time.Time      `gorm:"column:end_date;type:date" json:"end_date,omitempty"`
	IsIndefinite     bool            `gorm:"column:is_indefinite;not null;default:false" json:"is_indefinite"`
	CommissionAmount float64         `gorm:"column:commission_amount;type:decimal(12,2);not null;default:0" json:"commission_amount"`
	CommissionCcy    Currency        `gorm:"column:commission_currency;size:8;not null;default:'local'" json:"commission_currency"`
	CommissionType   CommissionType  `gorm:"column:commission_type;size:16;not null;default:'percentage'" json:"commission_type"`
	CurrentStage     Stage           `gorm:"column:current_stage;size:32;not null" json:"current_stage"`
	Status           Status          `gorm:"column:status;size:16;not null;default:'active';index" json:"status"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	StageEvents []StageEvent         `gorm:"foreignKey:ContractID" json:"stage_events,omitempty"`
	ClientLinks []ContractClientLink `gorm:"foreignKey:ContractID" json:"client_links,omitempty"`
}

func (Contract) TableName() string { return "contracts" }

// StageEvent is one immutable history entry. Rows are appended by the
// stage history manager and removed only by cascading contract deletion.
type StageEvent struct {
	ID         uint64    `gorm:"primaryKey;column:id" json:"id"`
	ContractID uint64    `gorm:"column:contract_id;not null;index" json:"contract_id"`
	Stage      Stage     `gorm:"column:stage;size:32;not null" json:"stage"`
	OccurredAt time.Time `gorm:"column:occurred_at;not null" json:"occurred_at"`
	Notes      string    `gorm:"column:notes;type:text" json:"notes,omitempty"`
}

func (StageEvent) TableName() string { return "contract_stage_events" }

// ContractClientLink associates a client with a contract in one role.
// A client holds at most one role per contract.
type ContractClientLink struct {
	ID         uint64    `gorm:"primaryKey;column:id" json:"id"`
	ContractID uint64    `gorm:"column:contract_id;not null;uniqueIndex:ux_contract_client" json:"contract_id"`
	ClientID   uint64    `gorm:"column:client_id;not null;uniqueIndex:ux_contract_client" json:"client_id"`
	Role       Role      `gorm:"column:role;size:16;not null" json:"role"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ContractClientLink) TableName() string { return "contract_client_links" }
