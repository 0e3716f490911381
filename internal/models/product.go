package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Product represents a product in the store. The same wire names are
// used for JSON and BSON so a stored document round-trips unchanged.
type Product struct {
	ID                primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name              string             `json:"product_name" bson:"product_name"`
	Price             float64            `json:"product_price" bson:"product_price"`
	AvailableQuantity int                `json:"available_quantity" bson:"available_quantity"`
}

// CreateProductRequest is the request body for creating a product.
type CreateProductRequest struct {
	Name              string  `json:"product_name" validate:"required"`
	Price             float64 `json:"product_price" validate:"gte=0"`
	AvailableQuantity int     `json:"available_quantity" validate:"gte=0"`
}
