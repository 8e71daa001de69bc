package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sabor/restaurant-orders/internal/core/ports"
)

// AdminHandler serves the administrative order routes that have no
// customer-facing counterpart.
type AdminHandler struct {
	service ports.OrderService
}

func NewAdminHandler(service ports.OrderService) *AdminHandler {
	return &AdminHandler{service: service}
}

// Delete handles DELETE /admin/orders/:id.
//
// @Summary      Delete an order
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/orders/{id} [delete]
func (h *AdminHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteOrder(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "order deleted successfully"})
}

// Events handles GET /admin/orders/:id/events.
//
// @Summary      Status history of an order
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order ID"
// @Success      200  {array}   statusEventResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/orders/{id}/events [get]
func (h *AdminHandler) Events(c echo.Context) error {
	events, err := h.service.StatusEvents(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toStatusEventResponses(events))
}
