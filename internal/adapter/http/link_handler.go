package http

import (
	"net/http"

	domain "estate-backoffice/internal/domain/contract"
	linkUC "estate-backoffice/internal/usecase/clientlink"

	"github.com/labstack/echo/v4"
)

type LinkHandler struct{ uc *linkUC.Usecase }

func NewLinkHandler(uc *linkUC.Usecase) *LinkHandler { return &LinkHandler{uc: uc} }

type replaceLinksReq struct {
	Clients []clientReq `json:"clients" validate:"dive"`
}

func (h *LinkHandler) LinkClient(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	var req clientReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	if err := h.uc.Link(c.Request().Context(), id, linkUC.LinkInput{
		ClientID: req.ClientID,
		Role:     domain.Role(req.Role),
	}); err != nil {
		return jsonError(c, err)
	}
	return c.NoContent(http.StatusCreated)
}

// ReplaceLinks swaps the contract's entire client set; the body must
// carry the complete desired list, not a delta.
func (h *LinkHandler) ReplaceLinks(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	var req replaceLinksReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	links := make([]linkUC.LinkInput, 0, len(req.Clients))
	for _, cl := range req.Clients {
		links = append(links, linkUC.LinkInput{ClientID: cl.ClientID, Role: domain.Role(cl.Role)})
	}
	if err := h.uc.ReplaceLinks(c.Request().Context(), id, links); err != nil {
		return jsonError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
