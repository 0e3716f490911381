package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"kedai/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// List returns orders in the store's natural order, skipping
	// offset*limit documents and returning at most limit. A limit of
	// zero means no limit.
	List(ctx context.Context, limit, offset int64) ([]models.Order, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	// Create stores the order and fills in its generated id.
	Create(ctx context.Context, order *models.Order) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// WithProductDetails left-joins every order against the products
	// referenced by its items. Orders with no matching product are
	// kept with an empty details slice.
	WithProductDetails(ctx context.Context) ([]models.OrderWithProducts, error)
}
