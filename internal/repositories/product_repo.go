package repositories

import (
	"errors"

	"catalogo/internal/models"
)

// ErrNotFound reports that a requested row does not exist. Implementations
// wrap it so callers can test with errors.Is.
var ErrNotFound = errors.New("not found")

// ProductRepository defines the data access surface the catalog service
// needs over the products table.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByCategory(categoryID string) ([]models.Product, error)
	Create(product *models.Product) error
	BulkCreate(products []models.Product) error
	DeleteAll() error
	ReassignCategory(fromID, toID string) error
}
