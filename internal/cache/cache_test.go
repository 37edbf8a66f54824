package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogo/internal/models"
)

func testProducts() []models.Product {
	return []models.Product{
		{ID: "p1", Title: "Tee", Price: 19.9},
		{ID: "p2", Title: "Hoodie", Price: 49.9},
	}
}

// fixedClock lets tests move time forward without sleeping.
type fixedClock struct {
	t time.Time
}

func (c *fixedClock) now() time.Time { return c.t }

func (c *fixedClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestCache(ttl time.Duration) (*ProductCache, *fixedClock) {
	clock := &fixedClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	c := New(ttl)
	c.now = clock.now
	return c, clock
}

func TestCache_MissWhenEmpty(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	got, ok := c.Read()
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestCache_RoundTrip(t *testing.T) {
	c, clock := newTestCache(time.Minute)

	products := testProducts()
	c.Fill(products)

	got, ok := c.Read()
	require.True(t, ok)
	assert.Equal(t, products, got)

	// Still fresh just inside the window.
	clock.advance(59 * time.Second)
	_, ok = c.Read()
	assert.True(t, ok)
}

func TestCache_ExpiresAfterTTL(t *testing.T) {
	c, clock := newTestCache(time.Minute)

	c.Fill(testProducts())
	clock.advance(time.Minute)

	_, ok := c.Read()
	assert.False(t, ok)

	// A new Fill resets the age.
	c.Fill(testProducts())
	_, ok = c.Read()
	assert.True(t, ok)
}

func TestCache_FillOverwrites(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	c.Fill(testProducts())
	replacement := []models.Product{{ID: "p9", Title: "Cap"}}
	c.Fill(replacement)

	got, ok := c.Read()
	require.True(t, ok)
	assert.Equal(t, replacement, got)
}

func TestCache_EmptyListIsAHit(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	c.Fill([]models.Product{})

	got, ok := c.Read()
	require.True(t, ok)
	assert.Empty(t, got)
}

func TestCache_Invalidate(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	c.Fill(testProducts())
	c.Invalidate()

	_, ok := c.Read()
	assert.False(t, ok)
}

func TestCache_DefaultTTL(t *testing.T) {
	c, clock := newTestCache(0)

	c.Fill(testProducts())
	clock.advance(DefaultTTL - time.Second)
	_, ok := c.Read()
	assert.True(t, ok)

	clock.advance(2 * time.Second)
	_, ok = c.Read()
	assert.False(t, ok)
}
