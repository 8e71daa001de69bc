package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sabor/restaurant-orders/internal/core/domain"
	"github.com/sabor/restaurant-orders/internal/core/ports"
)

var _ ports.ProductRepository = (*ProductRepository)(nil)

// DefaultMenu is the catalog the service ships with.
var DefaultMenu = []domain.Product{
	{ID: "1", Name: "Pizza Margherita", Description: "Molho de tomate, mussarela e manjericão", Price: decimal.RequireFromString("35.00"), Category: "Pizza"},
	{ID: "2", Name: "Hambúrguer Artesanal", Description: "Pão brioche, blend 180g e queijo cheddar", Price: decimal.RequireFromString("28.50"), Category: "Lanche"},
	{ID: "3", Name: "Suco de Laranja", Description: "Natural, 500ml", Price: decimal.RequireFromString("8.00"), Category: "Bebida"},
}

// ProductRepository reads the catalog. Prices are stored as decimal strings
// so no float rounding ever touches them.
type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{col: db.Collection(collectionProducts)}
}

type productDoc struct {
	ID          string `bson:"_id"`
	Name        string `bson:"name"`
	Description string `bson:"description"`
	Price       string `bson:"price"`
	Category    string `bson:"category"`
}

func (d productDoc) toDomain() (domain.Product, error) {
	price, err := decimal.NewFromString(d.Price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("product %s: bad price %q: %w", d.ID, d.Price, err)
	}
	return domain.Product{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Price:       price,
		Category:    d.Category,
	}, nil
}

// Seed upserts products by ID. Running it repeatedly is harmless.
func (r *ProductRepository) Seed(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	models := make([]mongo.WriteModel, 0, len(products))
	for _, p := range products {
		doc := productDoc{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price.StringFixed(2),
			Category:    p.Category,
		}
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": p.ID}).
			SetReplacement(doc).
			SetUpsert(true))
	}

	if _, err := r.col.BulkWrite(ctx, models); err != nil {
		return fmt.Errorf("seed products: %w", err)
	}
	return nil
}

func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	return r.find(ctx, bson.M{})
}

func (r *ProductRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *ProductRepository) find(ctx context.Context, filter bson.M) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []domain.Product{}, nil
		}
		return nil, fmt.Errorf("decode products: %w", err)
	}

	out := make([]domain.Product, 0, len(docs))
	for _, d := range docs {
		p, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
