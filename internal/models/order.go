package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User identifies the customer placing an order. It is embedded in the
// order document, not stored on its own.
type User struct {
	Username string `json:"username" bson:"username" validate:"required"`
	Email    string `json:"email" bson:"email" validate:"required,email"`
}

// Address is the shipping address embedded in an order.
type Address struct {
	City    string `json:"city" bson:"city" validate:"required"`
	Country string `json:"country" bson:"country" validate:"required"`
	ZipCode string `json:"zip_code" bson:"zip_code" validate:"required"`
}

// OrderItem is a single line of an order. TotalAmount is whatever the
// caller sent; the authoritative item total is recomputed from the
// product price when the order is created.
type OrderItem struct {
	ProductID      primitive.ObjectID `json:"product_id" bson:"product_id"`
	BoughtQuantity int                `json:"bought_quantity" bson:"bought_quantity"`
	TotalAmount    float64            `json:"total_amount" bson:"total_amount"`
}

// Order represents a customer order. Immutable after creation except
// for deletion. TotalPrice is fixed at creation from the product
// prices read at that moment.
type Order struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	User        User               `json:"user" bson:"user"`
	Items       []OrderItem        `json:"items" bson:"items"`
	UserAddress Address            `json:"user_address" bson:"user_address"`
	TotalPrice  float64            `json:"total_price" bson:"total_price"`
}

// OrderItemRequest carries a product id as the opaque string the
// client sent, so a malformed id can be reported by name instead of
// failing body decoding.
type OrderItemRequest struct {
	ProductID      string  `json:"product_id" validate:"required"`
	BoughtQuantity int     `json:"bought_quantity" validate:"gt=0"`
	TotalAmount    float64 `json:"total_amount"`
}

// CreateOrderRequest is the request body for creating an order.
type CreateOrderRequest struct {
	User        User               `json:"user" validate:"required"`
	Items       []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	UserAddress Address            `json:"user_address" validate:"required"`
}

// OrderTotal is one row of the order-ids report: the order id plus a
// cumulative amount recomputed from current product prices. It is not
// the stored TotalPrice and the two may disagree after a price change.
type OrderTotal struct {
	OrderID     primitive.ObjectID `json:"order_id"`
	TotalAmount float64            `json:"total_amount_of_products"`
}

// OrderWithProducts is an order enriched with the product documents
// matched by the orders-to-products join. ProductDetails is empty when
// nothing matched; the order itself is always preserved.
type OrderWithProducts struct {
	Order          `bson:",inline"`
	ProductDetails []Product `json:"product_details" bson:"product_details"`
}
