package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sabor/restaurant-orders/internal/core/domain"
	"github.com/sabor/restaurant-orders/internal/core/ports"
)

const headerIdempotencyKey = "Idempotency-Key"

// OrderHandler handles HTTP requests for the order lifecycle.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// Create handles POST /orders.
//
// @Summary      Place an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string              false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createOrderRequest  true   "Order items"
// @Success      201              {object}  orderEnvelope
// @Success      200              {object}  orderEnvelope  "Replay of an earlier submission"
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload").SetInternal(domain.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	items := make([]ports.OrderItemInput, len(req.Items))
	for i, it := range req.Items {
		items[i] = ports.OrderItemInput{ProductID: it.ProductID, Quantity: it.Quantity}
	}

	res, err := h.service.CreateOrder(c.Request().Context(), ports.CreateOrderInput{
		UserID:         actor.UserID,
		Items:          items,
		IdempotencyKey: strings.TrimSpace(c.Request().Header.Get(headerIdempotencyKey)),
	})
	if err != nil {
		return err
	}

	if res.AlreadyExisted {
		return c.JSON(http.StatusOK, orderEnvelope{Message: "order already submitted", Order: toOrderResponse(*res.Order)})
	}
	return c.JSON(http.StatusCreated, orderEnvelope{Message: "order created successfully", Order: toOrderResponse(*res.Order)})
}

// History handles GET /orders/history.
//
// @Summary      List my orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   orderResponse
// @Failure      401  {object}  errorResponse
// @Router       /orders/history [get]
func (h *OrderHandler) History(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	views, err := h.service.History(c.Request().Context(), actor.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponses(views))
}

// All handles GET /orders/all and GET /admin/orders.
//
// @Summary      List every order with purchaser details
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   orderResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /orders/all [get]
// @Router       /admin/orders [get]
func (h *OrderHandler) All(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	views, err := h.service.ListOrders(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponses(views))
}

// Transition handles PATCH /orders/:id/status and PATCH /admin/orders/:id/status.
// Which moves are allowed depends on the caller's role.
//
// @Summary      Change an order's status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Order ID"
// @Param        body  body      transitionRequest  true  "Target status"
// @Success      200   {object}  orderEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /orders/{id}/status [patch]
// @Router       /admin/orders/{id}/status [patch]
func (h *OrderHandler) Transition(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req transitionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload").SetInternal(domain.ErrInvalidInput)
	}

	view, err := h.service.TransitionStatus(c.Request().Context(), ports.TransitionInput{
		OrderID: c.Param("id"),
		Status:  req.Status,
		Actor:   actor,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderEnvelope{Message: "order status updated", Order: toOrderResponse(*view)})
}
