// Package cache holds the short-lived in-memory copy of the product
// collection. It is a single-entry cache: the whole normalized product list
// plus the time it was fetched. Categories are deliberately never cached so
// category edits are immediately visible.
package cache

import (
	"sync"
	"time"

	"catalogo/internal/models"
)

// DefaultTTL is the freshness window used when no TTL is configured.
const DefaultTTL = 120 * time.Second

// ProductCache is a read-through/write-invalidate cache for the product
// list. Handlers run on multiple goroutines, so access is guarded by a
// read-write mutex.
type ProductCache struct {
	mu        sync.RWMutex
	products  []models.Product
	fetchedAt time.Time
	filled    bool

	ttl time.Duration
	now func() time.Time
}

// New creates a cache with the given freshness window. A non-positive ttl
// falls back to DefaultTTL.
func New(ttl time.Duration) *ProductCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ProductCache{ttl: ttl, now: time.Now}
}

// Read returns the cached product list and true while the entry is younger
// than the freshness window, or false on a miss. An expired entry is left in
// place; it is overwritten by the next Fill.
func (c *ProductCache) Read() ([]models.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.filled || c.now().Sub(c.fetchedAt) >= c.ttl {
		return nil, false
	}
	return c.products, true
}

// Fill stores the product list, unconditionally replacing any prior entry
// and resetting its age.
func (c *ProductCache) Fill(products []models.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.products = products
	c.fetchedAt = c.now()
	c.filled = true
}

// Invalidate drops the cached entry. Every successful product write calls
// this so the next read goes to the store.
func (c *ProductCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.products = nil
	c.filled = false
}
