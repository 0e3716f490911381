package repositories

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"kedai/internal/models"
)

// MockOrderRepository is an in-memory implementation of
// OrderRepository. Insertion order stands in for the store's natural
// order so pagination windows line up with the Mongo implementation.
type MockOrderRepository struct {
	mu       sync.RWMutex
	orders   map[primitive.ObjectID]models.Order
	ordering []primitive.ObjectID

	// Products to join against in WithProductDetails. Optional; the
	// join yields empty details when unset.
	Products *MockProductRepository
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[primitive.ObjectID]models.Order),
	}
}

// List returns orders in insertion order, windowed the same way the
// Mongo repository windows a scan: skip offset*limit, take limit.
func (r *MockOrderRepository) List(ctx context.Context, limit, offset int64) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]models.Order, 0, len(r.ordering))
	for _, id := range r.ordering {
		all = append(all, r.orders[id])
	}
	if limit <= 0 {
		return all, nil
	}

	start := offset * limit
	if start >= int64(len(all)) {
		return []models.Order{}, nil
	}
	end := start + limit
	if end > int64(len(all)) {
		end = int64(len(all))
	}
	return all[start:end], nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &order, nil
}

// Create adds a new order, generating an id if needed.
func (r *MockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	if _, exists := r.orders[order.ID]; !exists {
		r.ordering = append(r.ordering, order.ID)
	}
	r.orders[order.ID] = *order
	return nil
}

// Delete removes an order by its ID.
func (r *MockOrderRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return ErrNotFound
	}
	delete(r.orders, id)
	for i, oid := range r.ordering {
		if oid == id {
			r.ordering = append(r.ordering[:i], r.ordering[i+1:]...)
			break
		}
	}
	return nil
}

// WithProductDetails performs the same left-join the Mongo aggregation
// does: every order is kept, with the distinct products its items
// reference attached when they still exist.
func (r *MockOrderRepository) WithProductDetails(ctx context.Context) ([]models.OrderWithProducts, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]models.OrderWithProducts, 0, len(r.ordering))
	for _, id := range r.ordering {
		order := r.orders[id]
		enriched := models.OrderWithProducts{
			Order:          order,
			ProductDetails: []models.Product{},
		}
		if r.Products != nil {
			seen := make(map[primitive.ObjectID]bool)
			for _, item := range order.Items {
				if seen[item.ProductID] {
					continue
				}
				seen[item.ProductID] = true
				if product, err := r.Products.GetByID(ctx, item.ProductID); err == nil {
					enriched.ProductDetails = append(enriched.ProductDetails, *product)
				}
			}
		}
		results = append(results, enriched)
	}
	return results, nil
}
