package repositories

import (
	"fmt"
	"sync"

	"catalogo/internal/models"
)

// MemoryCategoryRepository is an in-memory implementation of
// CategoryRepository, used for tests and database-less bootstrap. Insertion
// order is preserved so "first surviving category" is deterministic.
type MemoryCategoryRepository struct {
	mu         sync.RWMutex
	categories []models.Category
}

// NewMemoryCategoryRepository creates a new instance of MemoryCategoryRepository.
func NewMemoryCategoryRepository() *MemoryCategoryRepository {
	return &MemoryCategoryRepository{}
}

// GetAll returns all categories in insertion order.
func (r *MemoryCategoryRepository) GetAll() ([]models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Category, len(r.categories))
	copy(out, r.categories)
	return out, nil
}

// GetByID returns a category by its id.
func (r *MemoryCategoryRepository) GetByID(id string) (*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.categories {
		if c.ID == id {
			found := c
			return &found, nil
		}
	}
	return nil, fmt.Errorf("category %s: %w", id, ErrNotFound)
}

// Upsert inserts the category or replaces the existing entry with the
// same id.
func (r *MemoryCategoryRepository) Upsert(category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.categories {
		if r.categories[i].ID == category.ID {
			r.categories[i] = *category
			return nil
		}
	}
	r.categories = append(r.categories, *category)
	return nil
}

// Delete removes a category by its id.
func (r *MemoryCategoryRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.categories {
		if r.categories[i].ID == id {
			r.categories = append(r.categories[:i], r.categories[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("category %s: %w", id, ErrNotFound)
}
