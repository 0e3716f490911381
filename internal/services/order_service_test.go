package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"kedai/internal/models"
	"kedai/internal/repositories"
	"kedai/internal/services"
)

// newOrderFixture wires an order service over the in-memory
// repositories with two seeded products: P1 (qty 5, price 10) and
// P2 (qty 2, price 20).
func newOrderFixture(t *testing.T) (*services.OrderService, *repositories.MockProductRepository, *repositories.MockOrderRepository, models.Product, models.Product) {
	t.Helper()

	productRepo := repositories.NewMockProductRepository()
	orderRepo := repositories.NewMockOrderRepository()
	orderRepo.Products = productRepo

	p1 := models.Product{Name: "P1", Price: 10, AvailableQuantity: 5}
	p2 := models.Product{Name: "P2", Price: 20, AvailableQuantity: 2}
	require.NoError(t, productRepo.Create(context.Background(), &p1))
	require.NoError(t, productRepo.Create(context.Background(), &p2))

	service := services.NewOrderService(orderRepo, productRepo, nil)
	return service, productRepo, orderRepo, p1, p2
}

func testUser() models.User {
	return models.User{Username: "budi", Email: "budi@example.com"}
}

func testAddress() models.Address {
	return models.Address{City: "Jakarta", Country: "ID", ZipCode: "10110"}
}

func TestOrderService_CreateOrder(t *testing.T) {
	service, productRepo, _, p1, p2 := newOrderFixture(t)
	ctx := context.Background()

	order, err := service.CreateOrder(ctx, models.CreateOrderRequest{
		User: testUser(),
		Items: []models.OrderItemRequest{
			{ProductID: p1.ID.Hex(), BoughtQuantity: 3},
			{ProductID: p2.ID.Hex(), BoughtQuantity: 1},
		},
		UserAddress: testAddress(),
	})

	require.NoError(t, err)
	assert.False(t, order.ID.IsZero())
	assert.Equal(t, 50.0, order.TotalPrice) // 3*10 + 1*20
	require.Len(t, order.Items, 2)
	assert.Equal(t, 30.0, order.Items[0].TotalAmount)
	assert.Equal(t, 20.0, order.Items[1].TotalAmount)

	got1, err := productRepo.GetByID(ctx, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got1.AvailableQuantity)
	got2, err := productRepo.GetByID(ctx, p2.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got2.AvailableQuantity)
}

func TestOrderService_CreateOrder_RecomputesCallerTotals(t *testing.T) {
	service, _, _, p1, _ := newOrderFixture(t)

	// The caller-supplied total_amount is ignored; the server total
	// comes from the stored product price.
	order, err := service.CreateOrder(context.Background(), models.CreateOrderRequest{
		User: testUser(),
		Items: []models.OrderItemRequest{
			{ProductID: p1.ID.Hex(), BoughtQuantity: 2, TotalAmount: 9999},
		},
		UserAddress: testAddress(),
	})

	require.NoError(t, err)
	assert.Equal(t, 20.0, order.TotalPrice)
	assert.Equal(t, 20.0, order.Items[0].TotalAmount)
}

func TestOrderService_CreateOrder_InsufficientStockFirstItem(t *testing.T) {
	service, productRepo, _, p1, _ := newOrderFixture(t)
	ctx := context.Background()

	_, err := service.CreateOrder(ctx, models.CreateOrderRequest{
		User: testUser(),
		Items: []models.OrderItemRequest{
			{ProductID: p1.ID.Hex(), BoughtQuantity: 6},
		},
		UserAddress: testAddress(),
	})

	var noStock *services.InsufficientStockError
	require.ErrorAs(t, err, &noStock)
	assert.Equal(t, p1.ID.Hex(), noStock.ProductID)
	assert.Equal(t, 5, noStock.Available)

	got, err := productRepo.GetByID(ctx, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.AvailableQuantity)
}

func TestOrderService_CreateOrder_InsufficientStockSecondItem(t *testing.T) {
	service, productRepo, orderRepo, p1, p2 := newOrderFixture(t)
	ctx := context.Background()

	_, err := service.CreateOrder(ctx, models.CreateOrderRequest{
		User: testUser(),
		Items: []models.OrderItemRequest{
			{ProductID: p1.ID.Hex(), BoughtQuantity: 3},
			{ProductID: p2.ID.Hex(), BoughtQuantity: 5},
		},
		UserAddress: testAddress(),
	})

	var noStock *services.InsufficientStockError
	require.ErrorAs(t, err, &noStock)
	assert.Equal(t, p2.ID.Hex(), noStock.ProductID)
	assert.Equal(t, 2, noStock.Available)

	// Every item is validated before any stock is touched, so the
	// first item's stock is intact after the second item fails.
	got1, err := productRepo.GetByID(ctx, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got1.AvailableQuantity)

	orders, err := orderRepo.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderService_CreateOrder_InvalidReference(t *testing.T) {
	service, _, _, p1, _ := newOrderFixture(t)
	ctx := context.Background()

	// Malformed product id
	_, err := service.CreateOrder(ctx, models.CreateOrderRequest{
		User: testUser(),
		Items: []models.OrderItemRequest{
			{ProductID: "garbage", BoughtQuantity: 1},
		},
		UserAddress: testAddress(),
	})
	var invalidRef *services.InvalidReferenceError
	require.ErrorAs(t, err, &invalidRef)
	assert.Equal(t, "garbage", invalidRef.ID)

	// Well-formed but dangling product id
	missing := primitive.NewObjectID()
	_, err = service.CreateOrder(ctx, models.CreateOrderRequest{
		User: testUser(),
		Items: []models.OrderItemRequest{
			{ProductID: p1.ID.Hex(), BoughtQuantity: 1},
			{ProductID: missing.Hex(), BoughtQuantity: 1},
		},
		UserAddress: testAddress(),
	})
	require.ErrorAs(t, err, &invalidRef)
	assert.Equal(t, missing.Hex(), invalidRef.ID)
}

func TestOrderService_GetAndDeleteOrder(t *testing.T) {
	service, _, _, p1, _ := newOrderFixture(t)
	ctx := context.Background()

	created, err := service.CreateOrder(ctx, models.CreateOrderRequest{
		User: testUser(),
		Items: []models.OrderItemRequest{
			{ProductID: p1.ID.Hex(), BoughtQuantity: 1},
		},
		UserAddress: testAddress(),
	})
	require.NoError(t, err)

	fetched, err := service.GetOrder(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, created.TotalPrice, fetched.TotalPrice)
	assert.Equal(t, testUser(), fetched.User)

	require.NoError(t, service.DeleteOrder(ctx, created.ID.Hex()))

	var notFound *services.NotFoundError
	_, err = service.GetOrder(ctx, created.ID.Hex())
	assert.ErrorAs(t, err, &notFound)

	err = service.DeleteOrder(ctx, created.ID.Hex())
	assert.ErrorAs(t, err, &notFound)

	err = service.DeleteOrder(ctx, "bogus")
	var invalidRef *services.InvalidReferenceError
	assert.ErrorAs(t, err, &invalidRef)
}

func TestOrderService_ListOrders_Pagination(t *testing.T) {
	service, _, _, p1, _ := newOrderFixture(t)
	ctx := context.Background()

	var createdIDs []string
	for i := 0; i < 5; i++ {
		order, err := service.CreateOrder(ctx, models.CreateOrderRequest{
			User: testUser(),
			Items: []models.OrderItemRequest{
				{ProductID: p1.ID.Hex(), BoughtQuantity: 1},
			},
			UserAddress: testAddress(),
		})
		require.NoError(t, err)
		createdIDs = append(createdIDs, order.ID.Hex())
	}

	// Pages never exceed the limit and concatenating them covers the
	// insertion order with no duplicates.
	var paged []string
	for offset := int64(0); ; offset++ {
		page, err := service.ListOrders(ctx, 2, offset)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(page), 2)
		if len(page) == 0 {
			break
		}
		for _, o := range page {
			paged = append(paged, o.ID.Hex())
		}
	}
	assert.Equal(t, createdIDs, paged)
}

func TestOrderService_ListOrderTotals_UsesCurrentPrices(t *testing.T) {
	service, productRepo, _, p1, p2 := newOrderFixture(t)
	ctx := context.Background()

	order, err := service.CreateOrder(ctx, models.CreateOrderRequest{
		User: testUser(),
		Items: []models.OrderItemRequest{
			{ProductID: p1.ID.Hex(), BoughtQuantity: 3},
			{ProductID: p2.ID.Hex(), BoughtQuantity: 1},
		},
		UserAddress: testAddress(),
	})
	require.NoError(t, err)
	require.Equal(t, 50.0, order.TotalPrice)

	totals, err := service.ListOrderTotals(ctx)
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, order.ID, totals[0].OrderID)
	assert.Equal(t, 50.0, totals[0].TotalAmount)

	// After a price change the report tracks the current price while
	// the stored order total keeps the price at purchase time.
	doubled := p1
	doubled.Price = 25
	doubled.AvailableQuantity = 2
	require.NoError(t, productRepo.Create(ctx, &doubled))

	totals, err = service.ListOrderTotals(ctx)
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, 95.0, totals[0].TotalAmount) // 3*25 + 1*20

	stored, err := service.GetOrder(ctx, order.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 50.0, stored.TotalPrice)
}

func TestOrderService_OrdersWithProductDetails(t *testing.T) {
	service, _, orderRepo, p1, p2 := newOrderFixture(t)
	ctx := context.Background()

	created, err := service.CreateOrder(ctx, models.CreateOrderRequest{
		User: testUser(),
		Items: []models.OrderItemRequest{
			{ProductID: p1.ID.Hex(), BoughtQuantity: 1},
			{ProductID: p2.ID.Hex(), BoughtQuantity: 1},
		},
		UserAddress: testAddress(),
	})
	require.NoError(t, err)

	// An order referencing a product that no longer exists must still
	// be preserved by the left join, with empty details.
	dangling := models.Order{
		User: testUser(),
		Items: []models.OrderItem{
			{ProductID: primitive.NewObjectID(), BoughtQuantity: 1},
		},
		UserAddress: testAddress(),
	}
	require.NoError(t, orderRepo.Create(ctx, &dangling))

	results, err := service.OrdersWithProductDetails(ctx)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, created.ID, results[0].ID)
	require.Len(t, results[0].ProductDetails, 2)
	assert.Equal(t, p1.Name, results[0].ProductDetails[0].Name)
	assert.Equal(t, p2.Name, results[0].ProductDetails[1].Name)

	assert.Equal(t, dangling.ID, results[1].ID)
	assert.Empty(t, results[1].ProductDetails)
}

func TestOrderService_GetOrder_NotFoundMessageNamesID(t *testing.T) {
	service, _, _, _, _ := newOrderFixture(t)

	missing := primitive.NewObjectID()
	_, err := service.GetOrder(context.Background(), missing.Hex())
	require.Error(t, err)
	assert.Equal(t, fmt.Sprintf("order with ID %s not found", missing.Hex()), err.Error())
}
