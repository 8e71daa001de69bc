package ports

import (
	"context"

	"github.com/sabor/restaurant-orders/internal/core/domain"
)

// StatusEventRepository persists the append-only transition log.
type StatusEventRepository interface {
	Insert(ctx context.Context, event *domain.StatusEvent) error
	// ListByOrder returns the events of one order, oldest first.
	ListByOrder(ctx context.Context, orderID string) ([]domain.StatusEvent, error)
	DeleteByOrder(ctx context.Context, orderID string) error
}
