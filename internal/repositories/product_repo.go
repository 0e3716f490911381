package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"kedai/internal/models"
)

// ErrNotFound is returned when an id does not resolve to a stored
// document. Services wrap it with the entity kind and id.
var ErrNotFound = errors.New("not found")

// ErrInsufficientStock is returned by DecrementStock when the guarded
// update matched no document because the available quantity was lower
// than the requested amount.
var ErrInsufficientStock = errors.New("insufficient stock")

// ProductRepository defines the interface for product data access.
// Id strings from the HTTP boundary are parsed by the service layer,
// so repositories only ever see well-formed ObjectIDs.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	// Create stores the product and fills in its generated id.
	Create(ctx context.Context, product *models.Product) error
	// UpdateQuantity sets available_quantity to the given value.
	UpdateQuantity(ctx context.Context, id primitive.ObjectID, quantity int) error
	// DecrementStock atomically subtracts quantity from the product's
	// stock, but only if at least that much is available.
	DecrementStock(ctx context.Context, id primitive.ObjectID, quantity int) error
}
