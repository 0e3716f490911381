package handlers

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"kedai/internal/models"
	"kedai/internal/services"
)

var validate = validator.New()

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Put("/:product_id", h.HandleUpdateQuantity)
}

// HandleCreateProduct creates a new product and returns its id.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req models.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid product: " + err.Error(),
		})
	}

	id, err := h.service.CreateProduct(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"product_id": id,
	})
}

// HandleListProducts lists all products with their ids.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

// HandleUpdateQuantity sets a product's available quantity from the
// available_quantity query parameter.
func (h *ProductHandler) HandleUpdateQuantity(c *fiber.Ctx) error {
	productID := c.Params("product_id")

	raw := c.Query("available_quantity")
	if raw == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "available_quantity query parameter is required",
		})
	}
	quantity, err := strconv.Atoi(raw)
	if err != nil || quantity < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "available_quantity must be a non-negative integer",
		})
	}

	if err := h.service.UpdateAvailableQuantity(c.Context(), productID, quantity); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Product updated successfully",
	})
}
