package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sabor/restaurant-orders/internal/core/domain"
	"github.com/sabor/restaurant-orders/internal/core/ports"
)

// EventRepository implements ports.StatusEventRepository using MongoDB.
type EventRepository struct {
	col *mongo.Collection
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *mongo.Database) ports.StatusEventRepository {
	return &EventRepository{col: db.Collection(collectionEvents)}
}

// Insert appends a transition to the order_status_events audit collection.
func (r *EventRepository) Insert(ctx context.Context, event *domain.StatusEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"order_id":     event.OrderID,
		"from":         string(event.From),
		"to":           string(event.To),
		"actor_id":     event.ActorID,
		"actor_role":   string(event.ActorRole),
		"timestamp":    event.Timestamp.UTC(),
		"processed_at": time.Now().UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert status event: %w", err)
	}
	return nil
}

func (r *EventRepository) ListByOrder(ctx context.Context, orderID string) ([]domain.StatusEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"order_id": orderID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find status events: %w", err)
	}

	events := []domain.StatusEvent{}
	if err := cur.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode status events: %w", err)
	}
	return events, nil
}

func (r *EventRepository) DeleteByOrder(ctx context.Context, orderID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteMany(ctx, bson.M{"order_id": orderID}); err != nil {
		return fmt.Errorf("delete status events: %w", err)
	}
	return nil
}
