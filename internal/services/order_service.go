package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"kedai/internal/models"
	"kedai/internal/repositories"
	"kedai/pkg/rabbitmq"
)

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	mqClient    *rabbitmq.Client
}

// NewOrderService creates a new OrderService. The RabbitMQ client may
// be nil, in which case order events are not published.
func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, mqClient *rabbitmq.Client) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		mqClient:    mqClient,
	}
}

// CreateOrder validates every item against inventory, decrements
// stock, computes the total from product prices read during
// validation, and persists the order.
//
// The whole item list is validated before any stock is touched, so a
// failing item leaves inventory unchanged. Items are processed
// strictly in the order supplied by the caller and the first failure
// aborts the operation. The per-product decrement is a conditional
// update, so stock never goes negative even when concurrent orders
// race past the pre-check; a decrement that loses such a race fails
// the order with the decrements applied so far committed, as the store
// offers no multi-document transaction to roll them back.
func (s *OrderService) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	var totalPrice float64
	checked := make([]models.OrderItem, 0, len(req.Items))

	// Pre-check pass: resolve every product, verify stock, accumulate
	// the total. No mutation happens here.
	for _, item := range req.Items {
		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return nil, &InvalidReferenceError{Kind: "product", ID: item.ProductID}
		}

		product, err := s.productRepo.GetByID(ctx, productID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, &InvalidReferenceError{Kind: "product", ID: item.ProductID}
			}
			return nil, fmt.Errorf("failed to resolve product %s: %w", item.ProductID, err)
		}

		if item.BoughtQuantity > product.AvailableQuantity {
			return nil, &InsufficientStockError{
				ProductID: item.ProductID,
				Available: product.AvailableQuantity,
			}
		}

		itemTotal := product.Price * float64(item.BoughtQuantity)
		totalPrice += itemTotal
		checked = append(checked, models.OrderItem{
			ProductID:      productID,
			BoughtQuantity: item.BoughtQuantity,
			TotalAmount:    itemTotal,
		})
	}

	// Apply pass: decrement stock per product.
	for _, item := range checked {
		if err := s.productRepo.DecrementStock(ctx, item.ProductID, item.BoughtQuantity); err != nil {
			if errors.Is(err, repositories.ErrInsufficientStock) {
				// A concurrent order drained the stock between the
				// pre-check and the decrement.
				product, getErr := s.productRepo.GetByID(ctx, item.ProductID)
				available := 0
				if getErr == nil {
					available = product.AvailableQuantity
				}
				return nil, &InsufficientStockError{
					ProductID: item.ProductID.Hex(),
					Available: available,
				}
			}
			return nil, fmt.Errorf("failed to decrement stock for product %s: %w", item.ProductID.Hex(), err)
		}
	}

	order := &models.Order{
		User:        req.User,
		Items:       checked,
		UserAddress: req.UserAddress,
		TotalPrice:  totalPrice,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	s.publishOrderCreated(order)

	return order, nil
}

// publishOrderCreated emits an order.created event. Publishing is best
// effort; a broker failure never fails the order.
func (s *OrderService) publishOrderCreated(order *models.Order) {
	if s.mqClient == nil {
		return
	}

	event := map[string]interface{}{
		"order_id":    order.ID.Hex(),
		"username":    order.User.Username,
		"total_price": order.TotalPrice,
		"item_count":  len(order.Items),
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal order event for order %s: %v", order.ID.Hex(), err)
		return
	}
	if err := s.mqClient.Publish("order.created", body); err != nil {
		log.Printf("Warning: failed to publish order created event for order %s: %v", order.ID.Hex(), err)
	}
}

// ListOrders returns a page of orders in the store's natural order.
func (s *OrderService) ListOrders(ctx context.Context, limit, offset int64) ([]models.Order, error) {
	return s.orderRepo.List(ctx, limit, offset)
}

// GetOrder retrieves a single order by its ID.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, &InvalidReferenceError{Kind: "order", ID: id}
	}

	order, err := s.orderRepo.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &NotFoundError{Kind: "order", ID: id}
		}
		return nil, fmt.Errorf("failed to get order %s: %w", id, err)
	}
	return order, nil
}

// DeleteOrder removes an order. Stock decremented when the order was
// created is not restored.
func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return &InvalidReferenceError{Kind: "order", ID: id}
	}

	if err := s.orderRepo.Delete(ctx, oid); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return &NotFoundError{Kind: "order", ID: id}
		}
		return fmt.Errorf("failed to delete order %s: %w", id, err)
	}
	return nil
}

// ListOrderTotals recomputes each order's cumulative amount from the
// products' *current* prices. This is a current-value report: after a
// price change it will disagree with the total_price stored on the
// order, which reflects prices at purchase time. Items whose product
// no longer exists contribute nothing.
func (s *OrderService) ListOrderTotals(ctx context.Context) ([]models.OrderTotal, error) {
	orders, err := s.orderRepo.List(ctx, 0, 0)
	if err != nil {
		return nil, err
	}

	totals := make([]models.OrderTotal, 0, len(orders))
	for _, order := range orders {
		var total float64
		for _, item := range order.Items {
			product, err := s.productRepo.GetByID(ctx, item.ProductID)
			if err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					continue
				}
				return nil, fmt.Errorf("failed to resolve product %s: %w", item.ProductID.Hex(), err)
			}
			total += product.Price * float64(item.BoughtQuantity)
		}
		totals = append(totals, models.OrderTotal{
			OrderID:     order.ID,
			TotalAmount: total,
		})
	}
	return totals, nil
}

// OrdersWithProductDetails returns every order enriched with the
// product documents its items reference.
func (s *OrderService) OrdersWithProductDetails(ctx context.Context) ([]models.OrderWithProducts, error) {
	return s.orderRepo.WithProductDetails(ctx)
}
