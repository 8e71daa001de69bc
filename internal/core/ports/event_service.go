package ports

import (
	"context"

	"github.com/sabor/restaurant-orders/internal/core/domain"
)

// StatusEventService records and reads order transition events.
type StatusEventService interface {
	Record(ctx context.Context, event domain.StatusEvent) error
	History(ctx context.Context, orderID string) ([]domain.StatusEvent, error)
	Purge(ctx context.Context, orderID string) error
}

// StatusEventPublisher hands transition events off for asynchronous recording.
type StatusEventPublisher interface {
	Publish(event domain.StatusEvent)
}
