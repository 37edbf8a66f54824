package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"

	"catalogo/internal/cache"
	"catalogo/internal/models"
	"catalogo/internal/normalize"
	"catalogo/internal/repositories"
)

// EventPublisher publishes catalog change events for downstream consumers.
// Publishing is best-effort: failures are logged and never fail the write.
type EventPublisher interface {
	PublishCatalogUpdated(event map[string]interface{}) error
}

// CatalogService synchronizes the product and category collections between
// clients and the remote store. Reads go through the product cache; every
// successful product write invalidates it. The service upholds the
// referential-integrity invariant that no product references a deleted
// category, by migrating affected products before a category delete.
type CatalogService struct {
	products   repositories.ProductRepository
	categories repositories.CategoryRepository
	cache      *cache.ProductCache
	publisher  EventPublisher
	validate   *validator.Validate
}

// NewCatalogService creates a new CatalogService. publisher may be nil when
// event publishing is disabled.
func NewCatalogService(
	products repositories.ProductRepository,
	categories repositories.CategoryRepository,
	productCache *cache.ProductCache,
	publisher EventPublisher,
) *CatalogService {
	return &CatalogService{
		products:   products,
		categories: categories,
		cache:      productCache,
		publisher:  publisher,
		validate:   validator.New(),
	}
}

// ListProducts returns the canonical product list, served from the cache
// while the entry is fresh. On a miss the store rows are normalized
// (a no-op for canonical rows) and the cache refilled.
func (s *CatalogService) ListProducts() ([]models.Product, error) {
	if cached, ok := s.cache.Read(); ok {
		return cached, nil
	}

	rows, err := s.products.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	canonical := normalize.Products(rows)
	s.cache.Fill(canonical)
	return canonical, nil
}

// ListCategories returns all categories, always live. Category edits must be
// immediately visible, so this path bypasses caching entirely.
func (s *CatalogService) ListCategories() ([]models.Category, error) {
	categories, err := s.categories.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	return categories, nil
}

// ReplaceAllProducts treats raw as the full desired product collection:
// normalize, delete every existing row, bulk insert the normalized rows.
// When the bulk insert fails, each row is retried individually; rows that
// still fail are reported together in a PartialWriteError. The delete has
// committed by then, so the store holds only the inserted subset. There is
// no transaction spanning the two store calls; concurrent replaces race and
// the last insert wins.
func (s *CatalogService) ReplaceAllProducts(raw any) ([]models.Product, error) {
	canonical := normalize.Products(raw)

	if err := s.products.DeleteAll(); err != nil {
		return nil, fmt.Errorf("failed to clear products: %w", err)
	}

	if err := s.products.BulkCreate(canonical); err != nil {
		log.Printf("Bulk insert of %d products failed, retrying row by row: %v", len(canonical), err)

		inserted := 0
		var rowErrs []RowError
		for i := range canonical {
			if rowErr := s.products.Create(&canonical[i]); rowErr != nil {
				rowErrs = append(rowErrs, RowError{Index: i, Title: canonical[i].Title, Err: rowErr})
				continue
			}
			inserted++
		}
		if len(rowErrs) > 0 {
			// The cache may still hold the pre-delete list; drop it so
			// reads see the store as it actually is.
			s.cache.Invalidate()
			return nil, &PartialWriteError{Inserted: inserted, Rows: rowErrs}
		}
	}

	s.cache.Invalidate()
	s.publishEvent("products.replaced", len(canonical))
	return canonical, nil
}

// ReplaceAllCategories merge-replaces the category collection: categories
// absent from raw are deleted, the rest upserted by id. Unlike products this
// is not delete-all-insert, so ids referenced by products are never
// transiently absent.
func (s *CatalogService) ReplaceAllCategories(raw any) ([]models.Category, error) {
	canonical := normalize.Categories(raw)

	existing, err := s.categories.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	keep := make(map[string]bool, len(canonical))
	for _, c := range canonical {
		keep[c.ID] = true
	}
	for _, c := range existing {
		if keep[c.ID] {
			continue
		}
		if err := s.categories.Delete(c.ID); err != nil {
			return nil, fmt.Errorf("failed to delete category %s: %w", c.ID, err)
		}
	}

	for i := range canonical {
		if err := s.categories.Upsert(&canonical[i]); err != nil {
			return nil, fmt.Errorf("failed to upsert category %s: %w", canonical[i].ID, err)
		}
	}

	s.publishEvent("categories.replaced", len(canonical))
	return canonical, nil
}

// UpsertCategory validates and saves a single category, keyed by id. The
// description default is filled the same way the normalizer does it.
func (s *CatalogService) UpsertCategory(category models.Category) (models.Category, error) {
	if err := s.validate.Struct(category); err != nil {
		return models.Category{}, fmt.Errorf("%w: category requires id and name", ErrInvalidInput)
	}

	canonical := normalize.Categories([]models.Category{category})[0]
	if err := s.categories.Upsert(&canonical); err != nil {
		return models.Category{}, fmt.Errorf("failed to upsert category %s: %w", canonical.ID, err)
	}

	s.publishEvent("category.upserted", 1)
	return canonical, nil
}

// DeleteCategory removes a category after migrating every product that
// references it to the first surviving category. When no other category
// exists the delete still proceeds and the referencing products are left
// orphaned; this mirrors the store's lack of enforcement and is asserted as
// current behavior by the tests.
func (s *CatalogService) DeleteCategory(id string) (string, error) {
	category, err := s.categories.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", fmt.Errorf("category %q: %w", id, ErrNotFound)
		}
		return "", fmt.Errorf("failed to load category %s: %w", id, err)
	}

	affected, err := s.products.GetByCategory(id)
	if err != nil {
		return "", fmt.Errorf("failed to load products in category %s: %w", id, err)
	}

	if len(affected) > 0 {
		all, err := s.categories.GetAll()
		if err != nil {
			return "", fmt.Errorf("failed to load categories: %w", err)
		}
		survivor := ""
		for _, c := range all {
			if c.ID != id {
				survivor = c.ID
				break
			}
		}
		if survivor != "" {
			if err := s.products.ReassignCategory(id, survivor); err != nil {
				return "", fmt.Errorf("failed to reassign products from category %s: %w", id, err)
			}
			s.cache.Invalidate()
		} else {
			log.Printf("Deleting category %s with %d referencing products and no surviving category; products are left orphaned", id, len(affected))
		}
	}

	if err := s.categories.Delete(id); err != nil {
		return "", fmt.Errorf("failed to delete category %s: %w", id, err)
	}

	s.publishEvent("category.deleted", 1)
	return category.Name, nil
}

// ClearCache forces the product cache back to the absent state.
func (s *CatalogService) ClearCache() {
	s.cache.Invalidate()
}

func (s *CatalogService) publishEvent(kind string, count int) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.PublishCatalogUpdated(map[string]interface{}{
		"event": kind,
		"count": count,
	})
	if err != nil {
		log.Printf("Failed to publish %s event: %v", kind, err)
	}
}
