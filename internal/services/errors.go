package services

import "fmt"

// NotFoundError reports that an entity id did not resolve to a stored
// document. Handlers map it to 404.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Kind, e.ID)
}

// InvalidReferenceError reports a malformed id, or a dangling product
// reference inside an order. Handlers map it to 400.
type InvalidReferenceError struct {
	Kind string
	ID   string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid %s ID: %s", e.Kind, e.ID)
}

// InsufficientStockError reports that an order asked for more of a
// product than is available. Handlers map it to 400.
type InsufficientStockError struct {
	ProductID string
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient quantity for product with ID %s, available quantity: %d", e.ProductID, e.Available)
}
