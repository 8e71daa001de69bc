package ports

import (
	"context"

	"github.com/sabor/restaurant-orders/internal/core/domain"
)

// ListOrdersFilter narrows an order listing.
type ListOrdersFilter struct {
	UserID string // empty = every order (admin)
}

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	// Create stores the order and assigns its ID. Returns
	// domain.ErrDuplicateOrder when the user already has an order with the
	// same idempotency key.
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	FindByIdempotencyKey(ctx context.Context, userID, key string) (*domain.Order, error)
	// List returns matching orders newest first; orders created at the same
	// instant keep their insertion order.
	List(ctx context.Context, filter ListOrdersFilter) ([]domain.Order, error)
	// UpdateStatus sets the status only if the order is still in status from.
	// Returns domain.ErrConcurrentUpdate when it is not, and
	// domain.ErrOrderNotFound when the order is gone.
	UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}
