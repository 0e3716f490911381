package handlers

import (
	"github.com/gofiber/fiber/v2"

	"kedai/internal/models"
	"kedai/internal/services"
)

const defaultPageSize = 10

// OrderHandler handles HTTP requests for orders and order reports.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Get("/", h.HandleListOrders)
	orderRoutes.Get("/:order_id", h.HandleGetOrder)
	orderRoutes.Delete("/:order_id", h.HandleDeleteOrder)

	router.Get("/order-ids", h.HandleListOrderTotals)
	router.Get("/orders-with-product-details", h.HandleOrdersWithProductDetails)
}

// HandleCreateOrder validates and creates an order, responding with
// the generated id and the server-computed total.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req models.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid order: " + err.Error(),
		})
	}

	order, err := h.service.CreateOrder(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"order_id":    order.ID.Hex(),
		"total_price": order.TotalPrice,
	})
}

// HandleListOrders returns a page of orders. limit defaults to 10,
// offset to 0; the window is offset*limit documents into the scan.
func (h *OrderHandler) HandleListOrders(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultPageSize)
	offset := c.QueryInt("offset", 0)
	if limit < 0 || offset < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "limit and offset must be non-negative",
		})
	}

	orders, err := h.service.ListOrders(c.Context(), int64(limit), int64(offset))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// HandleGetOrder fetches a single order by its id.
func (h *OrderHandler) HandleGetOrder(c *fiber.Ctx) error {
	order, err := h.service.GetOrder(c.Context(), c.Params("order_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// HandleDeleteOrder deletes an order by its id. Stock is not restored.
func (h *OrderHandler) HandleDeleteOrder(c *fiber.Ctx) error {
	if err := h.service.DeleteOrder(c.Context(), c.Params("order_id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Order deleted successfully",
	})
}

// HandleListOrderTotals returns each order's id with a cumulative
// amount recomputed from current product prices.
func (h *OrderHandler) HandleListOrderTotals(c *fiber.Ctx) error {
	totals, err := h.service.ListOrderTotals(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(totals)
}

// HandleOrdersWithProductDetails returns the orders-to-products join.
func (h *OrderHandler) HandleOrdersWithProductDetails(c *fiber.Ctx) error {
	orders, err := h.service.OrdersWithProductDetails(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}
