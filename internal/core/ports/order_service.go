package ports

import (
	"context"

	"github.com/sabor/restaurant-orders/internal/core/domain"
)

// OrderItemInput is one requested line. A nil Quantity means 1.
type OrderItemInput struct {
	ProductID string
	Quantity  *int
}

// CreateOrderInput carries everything needed to submit an order.
type CreateOrderInput struct {
	UserID         string
	Items          []OrderItemInput
	IdempotencyKey string
}

// CreateOrderResult is returned after an order submission.
type CreateOrderResult struct {
	Order *domain.OrderView
	// AlreadyExisted is true when the Idempotency-Key matched an earlier order.
	AlreadyExisted bool
}

// TransitionInput asks for a status change on behalf of an actor.
type TransitionInput struct {
	OrderID string
	Status  string
	Actor   domain.Actor
}

// OrderService defines the order lifecycle use cases.
type OrderService interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*CreateOrderResult, error)
	TransitionStatus(ctx context.Context, input TransitionInput) (*domain.OrderView, error)
	// ListOrders returns every order with purchaser details for admins and
	// only the actor's own orders for customers.
	ListOrders(ctx context.Context, actor domain.Actor) ([]domain.OrderView, error)
	// History returns the caller's own orders regardless of role.
	History(ctx context.Context, userID string) ([]domain.OrderView, error)
	DeleteOrder(ctx context.Context, id string) error
	StatusEvents(ctx context.Context, orderID string) ([]domain.StatusEvent, error)
}
