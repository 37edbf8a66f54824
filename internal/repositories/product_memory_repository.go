package repositories

import (
	"sync"

	"github.com/google/uuid"

	"catalogo/internal/models"
)

// MemoryProductRepository is an in-memory implementation of
// ProductRepository, used for tests and database-less bootstrap. Insertion
// order is preserved.
type MemoryProductRepository struct {
	mu       sync.RWMutex
	products []models.Product

	// FailBulk and FailCreateTitles let tests force write failures on the
	// bulk path or on individual rows by title.
	FailBulk         error
	FailCreateTitles map[string]error
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{}
}

// GetAll returns all products in insertion order.
func (r *MemoryProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

// GetByCategory returns the products referencing the given category id.
func (r *MemoryProductRepository) GetByCategory(categoryID string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Product, 0)
	for _, p := range r.products {
		if p.Category == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

// Create appends a product, assigning an id when none is set.
func (r *MemoryProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err, ok := r.FailCreateTitles[product.Title]; ok {
		return err
	}
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	r.products = append(r.products, *product)
	return nil
}

// BulkCreate appends all products, assigning ids where missing.
func (r *MemoryProductRepository) BulkCreate(products []models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailBulk != nil {
		return r.FailBulk
	}
	for i := range products {
		if products[i].ID == "" {
			products[i].ID = uuid.New().String()
		}
	}
	r.products = append(r.products, products...)
	return nil
}

// DeleteAll removes every product.
func (r *MemoryProductRepository) DeleteAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = nil
	return nil
}

// ReassignCategory rewrites the category of every product referencing
// fromID to toID.
func (r *MemoryProductRepository) ReassignCategory(fromID, toID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.products {
		if r.products[i].Category == fromID {
			r.products[i].Category = toID
		}
	}
	return nil
}
