package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/rahu12-tech/pixelbazarfrontend/internal/models"
	"github.com/rahu12-tech/pixelbazarfrontend/internal/repositories"
)

// ProductHandler serves the single-product lookup the cart adds from,
// plus the seeding endpoint used by fixtures and ops tooling. Catalog
// browsing and management live outside this service.
type ProductHandler struct {
	productRepo repositories.ProductRepository
	validate    *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productRepo repositories.ProductRepository) *ProductHandler {
	return &ProductHandler{
		productRepo: productRepo,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Post("/", h.HandleCreateProduct)
}

// HandleGetProduct returns one catalog row.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.productRepo.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Product not found",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"product": product,
	})
}

// HandleCreateProduct inserts a catalog row.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}
	if err := h.productRepo.Create(&product); err != nil {
		log.Printf("Error creating product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create product",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Product created",
		"product": product,
	})
}
