package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sabor/restaurant-orders/internal/core/domain"
	"github.com/sabor/restaurant-orders/internal/core/ports"
)

var _ ports.OrderRepository = (*OrderRepository)(nil)

// OrderRepository stores orders with their items embedded, so an order and
// its lines are written and deleted together.
type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(collectionOrders)}
}

type orderDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	UserID         string             `bson:"user_id"`
	Status         string             `bson:"status"`
	Items          []orderItemDoc     `bson:"items"`
	CreatedAt      time.Time          `bson:"created_at"`
	IdempotencyKey string             `bson:"idempotency_key,omitempty"`
}

type orderItemDoc struct {
	ID        string `bson:"id"`
	ProductID string `bson:"product_id"`
	Quantity  int    `bson:"quantity"`
}

func (d orderDoc) toDomain() *domain.Order {
	items := make([]domain.OrderItem, len(d.Items))
	for i, it := range d.Items {
		items[i] = domain.OrderItem{ID: it.ID, ProductID: it.ProductID, Quantity: it.Quantity}
	}
	return &domain.Order{
		ID:             d.ID.Hex(),
		UserID:         d.UserID,
		Items:          items,
		Status:         domain.OrderStatus(d.Status),
		CreatedAt:      d.CreatedAt.UTC(),
		IdempotencyKey: d.IdempotencyKey,
	}
}

// Create inserts a new order document and writes the generated ID back.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := orderDoc{
		ID:             primitive.NewObjectID(),
		UserID:         o.UserID,
		Status:         string(o.Status),
		Items:          make([]orderItemDoc, len(o.Items)),
		CreatedAt:      o.CreatedAt.UTC(),
		IdempotencyKey: o.IdempotencyKey,
	}
	for i, it := range o.Items {
		doc.Items[i] = orderItemDoc{ID: it.ID, ProductID: it.ProductID, Quantity: it.Quantity}
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) && o.IdempotencyKey != "" {
			return domain.ErrDuplicateOrder
		}
		return fmt.Errorf("insert order: %w", err)
	}
	o.ID = doc.ID.Hex()
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// FindByIdempotencyKey retrieves an order the user created earlier with the given key.
func (r *OrderRepository) FindByIdempotencyKey(ctx context.Context, userID, key string) (*domain.Order, error) {
	return r.findOne(ctx, bson.M{"user_id": userID, "idempotency_key": key})
}

// List returns orders newest first. ObjectIDs grow with insertion, so the
// secondary _id key keeps same-instant orders in the order they were placed.
func (r *OrderRepository) List(ctx context.Context, filter ports.ListOrdersFilter) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	var docs []orderDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}

	out := make([]domain.Order, 0, len(docs))
	for _, d := range docs {
		out = append(out, *d.toDomain())
	}
	return out, nil
}

// UpdateStatus is a compare-and-set on the status field.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus) (*domain.Order, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc orderDoc
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "status": string(from)},
		bson.M{"$set": bson.M{"status": string(to)}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err == nil {
		return doc.toDomain(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	n, err := r.col.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	if n == 0 {
		return nil, domain.ErrOrderNotFound
	}
	return nil, domain.ErrConcurrentUpdate
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return domain.ErrOrderNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) findOne(ctx context.Context, filter bson.M) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc orderDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return doc.toDomain(), nil
}
