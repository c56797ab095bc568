package contract

import (
	"time"

	contractDomain "estate-backoffice/internal/domain/contract"
	"estate-backoffice/internal/usecase/clientlink"
)

// DateLayout is the wire format for all contract dates.
const DateLayout = "2006-01-02"

type CreateInput struct {
	TransactionType    string  `json:"transaction_type"`
	AgentID            uint64  `json:"agent_id"`
	PropertyID         *uint64 `json:"property_id"`
	StartDate          string  `json:"start_date"`
	EndDate            string  `json:"end_date"`
	IsIndefinite       bool    `json:"is_indefinite"`
	CommissionAmount   float64 `json:"commission_amount"`
	CommissionCurrency string  `json:"commission_currency"`
	CommissionType     string  `json:"commission_type"`
	Clients            []ClientInput `json:"clients"`
}

type UpdateInput struct {
	// ContractNumber is never updatable; any non-empty value is rejected.
	ContractNumber     string  `json:"contract_number"`
	TransactionType    string  `json:"transaction_type"`
	AgentID            uint64  `json:"agent_id"`
	PropertyID         *uint64 `json:"property_id"`
	StartDate          string  `json:"start_date"`
	EndDate            string  `json:"end_date"`
	IsIndefinite       bool    `json:"is_indefinite"`
	CommissionAmount   float64 `json:"commission_amount"`
	CommissionCurrency string  `json:"commission_currency"`
	CommissionType     string  `json:"commission_type"`
	Status             string  `json:"status"`
	// Clients nil leaves links untouched; non-nil replaces them wholesale.
	Clients []ClientInput `json:"clients"`
}

type ClientInput struct {
	ClientID uint64 `json:"client_id"`
	Role     string `json:"role"`
}

type ClientLinkDTO struct {
	ClientID uint64              `json:"client_id"`
	Role     contractDomain.Role `json:"role"`
}

type StageEventDTO struct {
	Stage      contractDomain.Stage `json:"stage"`
	OccurredAt time.Time            `json:"occurred_at"`
	Notes      string               `json:"notes,omitempty"`
}

type ContractDTO struct {
	ID                 uint64          `json:"id"`
	ContractNumber     string          `json:"contract_number"`
	TransactionType    string          `json:"transaction_type"`
	AgentID            uint64          `json:"agent_id"`
	PropertyID         *uint64         `json:"property_id,omitempty"`
	StartDate          string          `json:"start_date"`
	EndDate            string          `json:"end_date,omitempty"`
	IsIndefinite       bool            `json:"is_indefinite"`
	CommissionAmount   float64         `json:"commission_amount"`
	CommissionCurrency string          `json:"commission_currency"`
	CommissionType     string          `json:"commission_type"`
	CurrentStage       string          `json:"current_stage"`
	Status             string          `json:"status"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	StageHistory       []StageEventDTO `json:"stage_history,omitempty"`
	Clients            []ClientLinkDTO `json:"clients,omitempty"`
}

type SearchInput struct {
	TransactionType string `json:"transaction_type"`
	AgentID         uint64 `json:"agent_id"`
	PropertyID      uint64 `json:"property_id"`
	ClientID        uint64 `json:"client_id"`
	Stage           string `json:"stage"`
	Status          string `json:"status"`
	DateFrom        string `json:"date_from"`
	DateTo          string `json:"date_to"`
	OrderBy         string `json:"order_by"`
	OrderDirection  string `json:"order_direction"`
	Limit           int    `json:"limit"`
	Offset          int    `json:"offset"`
}

type SearchResult struct {
	Items      []ContractDTO `json:"items"`
	TotalCount int64         `json:"total_count"`
}

func toDTO(c *contractDomain.Contract) *ContractDTO {
	dto := &ContractDTO{
		ID:                 c.ID,
		ContractNumber:     c.ContractNumber,
		TransactionType:    string(c.TransactionType),
		AgentID:            c.AgentID,
		PropertyID:         c.PropertyID,
		StartDate:          c.StartDate.Format(DateLayout),
		IsIndefinite:       c.IsIndefinite,
		CommissionAmount:   c.CommissionAmount,
		CommissionCurrency: string(c.CommissionCcy),
		CommissionType:     string(c.CommissionType),
		CurrentStage:       string(c.CurrentStage),
		Status:             string(c.Status),
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
	if c.EndDate != nil {
		dto.EndDate = c.EndDate.Format(DateLayout)
	}
	for _, ev := range c.StageEvents {
		dto.StageHistory = append(dto.StageHistory, StageEventDTO{
			Stage:      ev.Stage,
			OccurredAt: ev.OccurredAt,
			Notes:      ev.Notes,
		})
	}
	for _, l := range c.ClientLinks {
		dto.Clients = append(dto.Clients, ClientLinkDTO{ClientID: l.ClientID, Role: l.Role})
	}
	return dto
}

func toLinkInputs(clients []ClientInput) []clientlink.LinkInput {
	out := make([]clientlink.LinkInput, 0, len(clients))
	for _, c := range clients {
		out = append(out, clientlink.LinkInput{ClientID: c.ClientID, Role: contractDomain.Role(c.Role)})
	}
	return out
}
