package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"catalogo/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products from the database.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByCategory retrieves the products referencing the given category id.
func (r *GORMProductRepository) GetByCategory(categoryID string) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Where("category = ?", categoryID).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products in category %s: %w", categoryID, err)
	}
	return products, nil
}

// Create inserts a single product, assigning an id when none is set.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product %q: %w", product.Title, err)
	}
	return nil
}

// BulkCreate inserts all products in one statement, assigning ids where
// missing. The caller falls back to row-by-row Create when this fails.
func (r *GORMProductRepository) BulkCreate(products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	for i := range products {
		if products[i].ID == "" {
			products[i].ID = uuid.New().String()
		}
	}
	if err := r.db.Create(&products).Error; err != nil {
		return fmt.Errorf("failed to bulk insert %d products: %w", len(products), err)
	}
	return nil
}

// DeleteAll removes every product row. Used by the replace-all write path.
func (r *GORMProductRepository) DeleteAll() error {
	res := r.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Product{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete all products: %w", res.Error)
	}
	return nil
}

// ReassignCategory rewrites the category of every product referencing
// fromID to toID in a single update.
func (r *GORMProductRepository) ReassignCategory(fromID, toID string) error {
	res := r.db.Model(&models.Product{}).Where("category = ?", fromID).Update("category", toID)
	if res.Error != nil {
		return fmt.Errorf("failed to reassign products from category %s to %s: %w", fromID, toID, res.Error)
	}
	return nil
}
