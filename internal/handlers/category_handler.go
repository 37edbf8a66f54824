package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"catalogo/internal/models"
	"catalogo/internal/services"
)

// CategoryHandler handles HTTP requests for the category collection.
type CategoryHandler struct {
	service *services.CatalogService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CatalogService) *CategoryHandler {
	return &CategoryHandler{
		service: service,
	}
}

// RegisterRoutes registers the category routes with the Fiber app. admin
// gates the write routes.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router, admin fiber.Handler) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleListCategories)
	categoryRoutes.Post("/", admin, h.HandleReplaceCategories)
	categoryRoutes.Post("/add", admin, h.HandleUpsertCategory)
	categoryRoutes.Delete("/:id", admin, h.HandleDeleteCategory)
}

// HandleListCategories returns all categories, always read live. Store
// failures degrade to an empty list rather than an error response.
func (h *CategoryHandler) HandleListCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories()
	if err != nil {
		log.Printf("Error listing categories, serving empty list: %v", err)
		return c.JSON(fiber.Map{
			"categories": []models.Category{},
		})
	}
	return c.JSON(fiber.Map{
		"categories": categories,
	})
}

// HandleReplaceCategories merge-replaces the category collection with the
// request payload. Accepts either a bare JSON array or {"categories": [...]}.
func (h *CategoryHandler) HandleReplaceCategories(c *fiber.Ctx) error {
	raw, err := rawList(c.Body(), "categories")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	saved, err := h.service.ReplaceAllCategories(raw)
	if err != nil {
		log.Printf("Error replacing categories: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Could not replace categories",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("%d categories saved", len(saved)),
		"count":   len(saved),
	})
}

// HandleUpsertCategory inserts or updates a single category by id.
func (h *CategoryHandler) HandleUpsertCategory(c *fiber.Ctx) error {
	var category models.Category
	if err := c.BodyParser(&category); err != nil {
		log.Printf("Error parsing category request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	saved, err := h.service.UpsertCategory(category)
	if err != nil {
		log.Printf("Error upserting category: %v", err)
		if errors.Is(err, services.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Category id and name are required",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Could not save category",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"message":  fmt.Sprintf("Category %s saved", saved.ID),
		"category": saved,
	})
}

// HandleDeleteCategory deletes a category, first migrating every product
// that references it to a surviving category.
func (h *CategoryHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	id := c.Params("id")

	name, err := h.service.DeleteCategory(id)
	if err != nil {
		log.Printf("Error deleting category %s: %v", id, err)
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": fmt.Sprintf("Category %s not found", id),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Could not delete category",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Category %s deleted", name),
	})
}
