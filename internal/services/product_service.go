package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"kedai/internal/models"
	"kedai/internal/repositories"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// GetAllProducts retrieves all products, ids included.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetAll(ctx)
}

// CreateProduct stores a new product and returns its generated id.
// Value constraints (price >= 0, quantity >= 0) are enforced at the
// boundary before this is called.
func (s *ProductService) CreateProduct(ctx context.Context, req models.CreateProductRequest) (string, error) {
	product := models.Product{
		Name:              req.Name,
		Price:             req.Price,
		AvailableQuantity: req.AvailableQuantity,
	}
	if err := s.repo.Create(ctx, &product); err != nil {
		return "", fmt.Errorf("failed to create product: %w", err)
	}
	return product.ID.Hex(), nil
}

// UpdateAvailableQuantity sets a product's stock to an explicit value.
func (s *ProductService) UpdateAvailableQuantity(ctx context.Context, id string, quantity int) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return &InvalidReferenceError{Kind: "product", ID: id}
	}

	if err := s.repo.UpdateQuantity(ctx, oid, quantity); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return &NotFoundError{Kind: "product", ID: id}
		}
		return fmt.Errorf("failed to update quantity for product %s: %w", id, err)
	}
	return nil
}
