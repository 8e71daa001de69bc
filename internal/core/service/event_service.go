package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sabor/restaurant-orders/internal/core/domain"
	"github.com/sabor/restaurant-orders/internal/core/ports"
	"github.com/sabor/restaurant-orders/internal/pkg/metrics"
)

type statusEventService struct {
	repo ports.StatusEventRepository
	log  zerolog.Logger
}

// NewStatusEventService returns a StatusEventService implementation.
func NewStatusEventService(repo ports.StatusEventRepository, log zerolog.Logger) ports.StatusEventService {
	return &statusEventService{repo: repo, log: log}
}

// Record appends a transition to the event log.
func (s *statusEventService) Record(ctx context.Context, event domain.StatusEvent) error {
	if event.OrderID == "" || event.To == "" {
		return fmt.Errorf("record status event: %w", domain.ErrInvalidInput)
	}

	if err := s.repo.Insert(ctx, &event); err != nil {
		metrics.StatusEventsErrorsTotal.WithLabelValues("insert_failed").Inc()
		return fmt.Errorf("record status event: %w", err)
	}

	metrics.StatusEventsRecordedTotal.WithLabelValues(string(event.To)).Inc()
	s.log.Debug().
		Str("order_id", event.OrderID).
		Str("from", string(event.From)).
		Str("to", string(event.To)).
		Str("actor_role", string(event.ActorRole)).
		Msg("status event recorded")
	return nil
}

func (s *statusEventService) History(ctx context.Context, orderID string) ([]domain.StatusEvent, error) {
	events, err := s.repo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("status event history: %w", err)
	}
	return events, nil
}

func (s *statusEventService) Purge(ctx context.Context, orderID string) error {
	if err := s.repo.DeleteByOrder(ctx, orderID); err != nil {
		return fmt.Errorf("purge status events: %w", err)
	}
	return nil
}
