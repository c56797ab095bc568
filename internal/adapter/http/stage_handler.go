package http

import (
	"net/http"

	domain "estate-backoffice/internal/domain/contract"
	stageUC "estate-backoffice/internal/usecase/stage"

	"github.com/labstack/echo/v4"
)

type StageHandler struct{ uc *stageUC.Usecase }

func NewStageHandler(uc *stageUC.Usecase) *StageHandler { return &StageHandler{uc: uc} }

type addStageReq struct {
	Stage string `json:"stage" validate:"required,stage"`
	Notes string `json:"notes"`
}

func (h *StageHandler) AddStage(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	var req addStageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.AddStage(c.Request().Context(), stageUC.AddStageInput{
		ContractID: id,
		Stage:      domain.Stage(req.Stage),
		Notes:      req.Notes,
	})
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}
