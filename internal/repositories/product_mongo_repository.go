package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"kedai/internal/models"
)

// MongoProductRepository is a MongoDB implementation of ProductRepository.
type MongoProductRepository struct {
	collection *mongo.Collection
}

// NewMongoProductRepository creates a repository over the "products"
// collection of the given database.
func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{
		collection: db.Collection("products"),
	}
}

// GetAll retrieves every product, ids included.
func (r *MongoProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	products := make([]models.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its id.
func (r *MongoProductRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product %s: %w", id.Hex(), err)
	}
	return &product, nil
}

// Create inserts a new product and fills in its generated id.
func (r *MongoProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, product); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// UpdateQuantity sets available_quantity on the product. Matching is
// checked rather than modification, so setting the current value is
// not reported as missing.
func (r *MongoProductRepository) UpdateQuantity(ctx context.Context, id primitive.ObjectID, quantity int) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"available_quantity": quantity}},
	)
	if err != nil {
		return fmt.Errorf("failed to update product %s: %w", id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DecrementStock subtracts quantity from available_quantity as a
// single conditional update. The filter guards the decrement, so stock
// can never go negative even under concurrent orders.
func (r *MongoProductRepository) DecrementStock(ctx context.Context, id primitive.ObjectID, quantity int) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "available_quantity": bson.M{"$gte": quantity}},
		bson.M{"$inc": bson.M{"available_quantity": -quantity}},
	)
	if err != nil {
		return fmt.Errorf("failed to decrement stock for product %s: %w", id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		// Either the product vanished or stock dropped below the
		// requested amount since the pre-check.
		return ErrInsufficientStock
	}
	return nil
}
