package http

import (
	"github.com/go-playground/validator/v10"

	domain "estate-backoffice/internal/domain/contract"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	_ = v.RegisterValidation("txtype", func(fl validator.FieldLevel) bool {
		return domain.ValidTransactionType(domain.TransactionType(fl.Field().String()))
	})
	_ = v.RegisterValidation("stage", func(fl validator.FieldLevel) bool {
		return domain.ValidStage(domain.Stage(fl.Field().String()))
	})
	_ = v.RegisterValidation("clientrole", func(fl validator.FieldLevel) bool {
		return domain.ValidRole(domain.Role(fl.Field().String()))
	})
	_ = v.RegisterValidation("ccy", func(fl validator.FieldLevel) bool {
		return domain.ValidCurrency(domain.Currency(fl.Field().String()))
	})
	_ = v.RegisterValidation("commtype", func(fl validator.FieldLevel) bool {
		return domain.ValidCommissionType(domain.CommissionType(fl.Field().String()))
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "txtype":
			out = append(out, FieldError{Field: field, Message: "must be one of sale, purchase, lease-out, lease-in"})
		case "stage":
			out = append(out, FieldError{Field: field, Message: "must be a catalog stage"})
		case "clientrole":
			out = append(out, FieldError{Field: field, Message: "must be one of seller, buyer, landlord, tenant"})
		case "ccy":
			out = append(out, FieldError{Field: field, Message: "must be one of local, eur, usd"})
		case "commtype":
			out = append(out, FieldError{Field: field, Message: "must be percentage or fixed"})
		case "datetime":
			out = append(out, FieldError{Field: field, Message: "must be formatted as " + e.Param()})
		case "gte":
			out = append(out, FieldError{Field: field, Message: "must be greater than or equal to " + e.Param()})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}
