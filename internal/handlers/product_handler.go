package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"catalogo/internal/models"
	"catalogo/internal/services"
)

// ProductHandler handles HTTP requests for the product collection and the
// product cache.
type ProductHandler struct {
	service *services.CatalogService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.CatalogService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes with the Fiber app. admin
// gates the write routes.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, admin fiber.Handler) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Post("/", admin, h.HandleReplaceProducts)

	router.Post("/cache/clear", h.HandleClearCache)
}

// HandleListProducts returns the product collection, cache-aware. Store
// failures degrade to an empty list rather than an error response.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	products, err := h.service.ListProducts()
	if err != nil {
		log.Printf("Error listing products, serving empty list: %v", err)
		return c.JSON(fiber.Map{
			"products": []models.Product{},
		})
	}
	return c.JSON(fiber.Map{
		"products": products,
	})
}

// HandleReplaceProducts replaces the entire product collection with the
// request payload. Accepts either a bare JSON array or {"products": [...]}.
func (h *ProductHandler) HandleReplaceProducts(c *fiber.Ctx) error {
	raw, err := rawList(c.Body(), "products")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	saved, err := h.service.ReplaceAllProducts(raw)
	if err != nil {
		log.Printf("Error replacing products: %v", err)

		var partial *services.PartialWriteError
		if errors.As(err, &partial) {
			details := make([]fiber.Map, 0, len(partial.Rows))
			for _, row := range partial.Rows {
				details = append(details, fiber.Map{
					"index": row.Index,
					"title": row.Title,
					"error": row.Err.Error(),
				})
			}
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"success": false,
				"message": fmt.Sprintf("%d products saved, %d failed", partial.Inserted, len(partial.Rows)),
				"count":   partial.Inserted,
				"errors":  details,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Could not replace products",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("%d products saved", len(saved)),
		"count":   len(saved),
	})
}

// HandleClearCache forces the product cache back to the absent state.
func (h *ProductHandler) HandleClearCache(c *fiber.Ctx) error {
	h.service.ClearCache()
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Cache cleared",
	})
}

// rawList decodes a request body that is either a bare JSON array or an
// object wrapping the array under key.
func rawList(body []byte, key string) (any, error) {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	if wrapper, ok := raw.(map[string]any); ok {
		if inner, ok := wrapper[key]; ok {
			return inner, nil
		}
	}
	return raw, nil
}
