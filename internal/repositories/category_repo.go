package repositories

import (
	"catalogo/internal/models"
)

// CategoryRepository defines the data access surface over the categories
// table. Writes are upsert-by-id; Delete removes exactly one row.
type CategoryRepository interface {
	GetAll() ([]models.Category, error)
	GetByID(id string) (*models.Category, error)
	Upsert(category *models.Category) error
	Delete(id string) error
}
