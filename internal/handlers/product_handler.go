package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app. The guard
// protects create and delete.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, authGuard fiber.Handler) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Post("/", authGuard, h.HandleCreateProduct)
	// TODO: PUT is reachable without a token while POST and DELETE are
	// guarded; confirm with API consumers before locking it down.
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", authGuard, h.HandleDeleteProduct)
}

// CreateProductRequest is the payload accepted when creating a product.
// Fields outside this set are dropped on decode.
type CreateProductRequest struct {
	Title     string  `json:"title" validate:"required,min=1"`
	Price     float64 `json:"price" validate:"required,gt=0"`
	ImageURL  string  `json:"imageUrl" validate:"required,url"`
	AmazonURL string  `json:"amazonUrl" validate:"required,url"`
}

// HandleGetProducts returns the whole catalog newest-first, or a single
// product when an id query parameter is supplied.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	if id := c.Query("id"); id != "" {
		product, err := h.service.GetProductByID(c.Context(), id)
		if err != nil {
			if errors.Is(err, repositories.ErrProductNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"message": "Product not found",
				})
			}
			log.Printf("Error getting product %s: %v", id, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to fetch products",
			})
		}
		return c.JSON(product)
	}

	products, err := h.service.GetAllProducts(c.Context())
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch products",
		})
	}
	return c.JSON(products)
}

// HandleCreateProduct validates the payload and inserts a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create product body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid product data",
			"errors":  errorMessages,
		})
	}

	product := models.Product{
		Title:     req.Title,
		Price:     req.Price,
		ImageURL:  req.ImageURL,
		AmazonURL: req.AmazonURL,
	}
	if err := h.service.CreateProduct(c.Context(), &product); err != nil {
		log.Printf("Error creating product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to create product",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct merges the raw request body into the stored document.
// The body is not validated against the creation schema and updatedAt is not
// refreshed; only the keys the caller sends are touched.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id := c.Params("id")

	updateData := make(map[string]interface{})
	if err := c.BodyParser(&updateData); err != nil {
		log.Printf("Error parsing update product body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	modified, err := h.service.UpdateProduct(c.Context(), id, updateData)
	if err != nil {
		if errors.Is(err, repositories.ErrInvalidProductID) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid product ID",
			})
		}
		log.Printf("Error updating product %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to update product",
		})
	}
	if modified == 0 {
		// Absent document and no-op update are indistinguishable here.
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Product not found or no changes made",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Product updated successfully",
	})
}

// HandleDeleteProduct removes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.service.DeleteProduct(c.Context(), id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrInvalidProductID):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid product ID",
			})
		case errors.Is(err, repositories.ErrProductNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		default:
			log.Printf("Error deleting product %s: %v", id, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to delete product",
			})
		}
	}

	return c.SendStatus(fiber.StatusNoContent)
}
