package http

import (
	"errors"
	"net/http"
	"strconv"

	domain "estate-backoffice/internal/domain/contract"
	contractUC "estate-backoffice/internal/usecase/contract"

	"github.com/labstack/echo/v4"
)

type ContractHandler struct{ uc *contractUC.Usecase }

func NewContractHandler(uc *contractUC.Usecase) *ContractHandler { return &ContractHandler{uc: uc} }

type clientReq struct {
	ClientID uint64 `json:"client_id" validate:"required"`
	Role     string `json:"role"      validate:"required,clientrole"`
}

type createContractReq struct {
	TransactionType    string      `json:"transaction_type"    validate:"required,txtype"`
	AgentID            uint64      `json:"agent_id"            validate:"required"`
	PropertyID         *uint64     `json:"property_id"`
	StartDate          string      `json:"start_date"          validate:"required,datetime=2006-01-02"`
	EndDate            string      `json:"end_date"            validate:"omitempty,datetime=2006-01-02"`
	IsIndefinite       bool        `json:"is_indefinite"`
	CommissionAmount   float64     `json:"commission_amount"   validate:"gte=0"`
	CommissionCurrency string      `json:"commission_currency" validate:"omitempty,ccy"`
	CommissionType     string      `json:"commission_type"     validate:"omitempty,commtype"`
	Clients            []clientReq `json:"clients"             validate:"omitempty,dive"`
}

type updateContractReq struct {
	ContractNumber     string      `json:"contract_number"` // rejected downstream when present
	TransactionType    string      `json:"transaction_type"    validate:"required,txtype"`
	AgentID            uint64      `json:"agent_id"            validate:"required"`
	PropertyID         *uint64     `json:"property_id"`
	StartDate          string      `json:"start_date"          validate:"required,datetime=2006-01-02"`
	EndDate            string      `json:"end_date"            validate:"omitempty,datetime=2006-01-02"`
	IsIndefinite       bool        `json:"is_indefinite"`
	CommissionAmount   float64     `json:"commission_amount"   validate:"gte=0"`
	CommissionCurrency string      `json:"commission_currency" validate:"omitempty,ccy"`
	CommissionType     string      `json:"commission_type"     validate:"omitempty,commtype"`
	Status             string      `json:"status"`
	Clients            []clientReq `json:"clients"             validate:"omitempty,dive"`
}

func toClientInputs(in []clientReq) []contractUC.ClientInput {
	if in == nil {
		return nil
	}
	out := make([]contractUC.ClientInput, 0, len(in))
	for _, c := range in {
		out = append(out, contractUC.ClientInput{ClientID: c.ClientID, Role: c.Role})
	}
	return out
}

// statusFor maps domain errors to HTTP codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidStage),
		errors.Is(err, domain.ErrInvalidRole):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func jsonError(c echo.Context, err error) error {
	return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
}

func pathID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

func (h *ContractHandler) CreateContract(c echo.Context) error {
	var req createContractReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), contractUC.CreateInput{
		TransactionType:    req.TransactionType,
		AgentID:            req.AgentID,
		PropertyID:         req.PropertyID,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		IsIndefinite:       req.IsIndefinite,
		CommissionAmount:   req.CommissionAmount,
		CommissionCurrency: req.CommissionCurrency,
		CommissionType:     req.CommissionType,
		Clients:            toClientInputs(req.Clients),
	})
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ContractHandler) GetContract(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	dto, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ContractHandler) UpdateContract(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	var req updateContractReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Update(c.Request().Context(), id, contractUC.UpdateInput{
		ContractNumber:     req.ContractNumber,
		TransactionType:    req.TransactionType,
		AgentID:            req.AgentID,
		PropertyID:         req.PropertyID,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		IsIndefinite:       req.IsIndefinite,
		CommissionAmount:   req.CommissionAmount,
		CommissionCurrency: req.CommissionCurrency,
		CommissionType:     req.CommissionType,
		Status:             req.Status,
		Clients:            toClientInputs(req.Clients),
	})
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ContractHandler) DeleteContract(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return jsonError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ContractHandler) SearchContracts(c echo.Context) error {
	in := contractUC.SearchInput{
		TransactionType: c.QueryParam("transaction_type"),
		Stage:           c.QueryParam("stage"),
		Status:          c.QueryParam("status"),
		DateFrom:        c.QueryParam("date_from"),
		DateTo:          c.QueryParam("date_to"),
		OrderBy:         c.QueryParam("order_by"),
		OrderDirection:  c.QueryParam("order_direction"),
	}
	in.AgentID, _ = strconv.ParseUint(c.QueryParam("agent_id"), 10, 64)
	in.PropertyID, _ = strconv.ParseUint(c.QueryParam("property_id"), 10, 64)
	in.ClientID, _ = strconv.ParseUint(c.QueryParam("client_id"), 10, 64)
	in.Limit, _ = strconv.Atoi(c.QueryParam("limit"))
	in.Offset, _ = strconv.Atoi(c.QueryParam("offset"))

	res, err := h.uc.Search(c.Request().Context(), in)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
