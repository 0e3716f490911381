package repositories

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"kedai/internal/models"
)

// MockProductRepository is an in-memory implementation of
// ProductRepository. Insertion order is preserved so listings behave
// like an unsorted collection scan.
type MockProductRepository struct {
	mu       sync.RWMutex
	products map[primitive.ObjectID]models.Product
	order    []primitive.ObjectID
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[primitive.ObjectID]models.Product),
	}
}

// GetAll returns all products in insertion order.
func (r *MockProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.order))
	for _, id := range r.order {
		productList = append(productList, r.products[id])
	}
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &product, nil
}

// Create adds a new product, generating an id if needed.
func (r *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	if _, exists := r.products[product.ID]; !exists {
		r.order = append(r.order, product.ID)
	}
	r.products[product.ID] = *product
	return nil
}

// UpdateQuantity sets the available quantity of an existing product.
func (r *MockProductRepository) UpdateQuantity(ctx context.Context, id primitive.ObjectID, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return ErrNotFound
	}
	product.AvailableQuantity = quantity
	r.products[id] = product
	return nil
}

// DecrementStock subtracts quantity from the product's stock under the
// same guard as the Mongo implementation.
func (r *MockProductRepository) DecrementStock(ctx context.Context, id primitive.ObjectID, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok || product.AvailableQuantity < quantity {
		return ErrInsufficientStock
	}
	product.AvailableQuantity -= quantity
	r.products[id] = product
	return nil
}
