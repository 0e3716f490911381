package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"kedai/internal/services"
)

// respondError maps service errors onto HTTP statuses: missing
// entities are 404, bad references and stock violations are 400,
// anything else is a 500 with the message hidden from the client.
func respondError(c *fiber.Ctx, err error) error {
	var notFound *services.NotFoundError
	var invalidRef *services.InvalidReferenceError
	var noStock *services.InsufficientStockError

	switch {
	case errors.As(err, &notFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": notFound.Error(),
		})
	case errors.As(err, &invalidRef):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": invalidRef.Error(),
		})
	case errors.As(err, &noStock):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": noStock.Error(),
		})
	default:
		log.Printf("Internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "internal server error",
		})
	}
}
