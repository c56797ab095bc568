package contract

import (
	"fmt"
	"time"

	contractDomain "estate-backoffice/internal/domain/contract"
	"estate-backoffice/internal/usecase/clientlink"
)

// normalized carries the parsed, defaulted fields shared by create and
// update after validation passed.
type normalized struct {
	txType    contractDomain.TransactionType
	startDate time.Time
	endDate   *time.Time
	currency  contractDomain.Currency
	commType  contractDomain.CommissionType
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", contractDomain.ErrValidation, fmt.Sprintf(format, args...))
}

func validateCore(txType string, agentID uint64, startDate, endDate string,
	isIndefinite bool, amount float64, currency, commType string) (*normalized, error) {

	n := &normalized{}

	if txType == "" {
		return nil, invalid("transaction_type is required")
	}
	n.txType = contractDomain.TransactionType(txType)
	if !contractDomain.ValidTransactionType(n.txType) {
		return nil, invalid("unknown transaction_type %q", txType)
	}

	if agentID == 0 {
		return nil, invalid("agent_id is required")
	}

	if startDate == "" {
		return nil, invalid("start_date is required")
	}
	sd, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return nil, invalid("start_date must be %s", DateLayout)
	}
	n.startDate = sd

	if endDate != "" {
		if isIndefinite {
			return nil, invalid("end_date must be absent when is_indefinite is set")
		}
		ed, err := time.Parse(DateLayout, endDate)
		if err != nil {
			return nil, invalid("end_date must be %s", DateLayout)
		}
		n.endDate = &ed
	}

	if amount < 0 {
		return nil, invalid("commission_amount must not be negative")
	}

	n.currency = contractDomain.CurrencyLocal
	if currency != "" {
		n.currency = contractDomain.Currency(currency)
		if !contractDomain.ValidCurrency(n.currency) {
			return nil, invalid("unknown commission_currency %q", currency)
		}
	}

	n.commType = contractDomain.CommissionPercentage
	if commType != "" {
		n.commType = contractDomain.CommissionType(commType)
		if !contractDomain.ValidCommissionType(n.commType) {
			return nil, invalid("unknown commission_type %q", commType)
		}
	}

	return n, nil
}

func validateCreate(in CreateInput) (*normalized, error) {
	n, err := validateCore(in.TransactionType, in.AgentID, in.StartDate, in.EndDate,
		in.IsIndefinite, in.CommissionAmount, in.CommissionCurrency, in.CommissionType)
	if err != nil {
		return nil, err
	}
	if err := clientlink.ValidateSet(toLinkInputs(in.Clients)); err != nil {
		return nil, err
	}
	return n, nil
}

func validateUpdate(in UpdateInput) (*normalized, error) {
	if in.ContractNumber != "" {
		return nil, invalid("contract_number cannot be changed")
	}
	n, err := validateCore(in.TransactionType, in.AgentID, in.StartDate, in.EndDate,
		in.IsIndefinite, in.CommissionAmount, in.CommissionCurrency, in.CommissionType)
	if err != nil {
		return nil, err
	}
	if in.Status != "" && !contractDomain.ValidStatus(contractDomain.Status(in.Status)) {
		return nil, invalid("unknown status %q", in.Status)
	}
	if in.Clients != nil {
		if err := clientlink.ValidateSet(toLinkInputs(in.Clients)); err != nil {
			return nil, err
		}
	}
	return n, nil
}
