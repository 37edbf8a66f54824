// Package normalize coerces loosely-structured client payloads into the
// canonical catalog schema. Products are never dropped: every element of the
// input, however malformed, yields a product with defaults substituted where
// data is missing or unusable. Category elements that carry no usable id are
// dropped instead. Both functions are idempotent, so canonical output can be
// fed back in without changing.
package normalize

import (
	"strconv"
	"strings"
	"unicode"

	"catalogo/internal/models"
)

// Defaults substituted during normalization.
const (
	DefaultTitle     = "Produto sem nome"
	DefaultStatus    = "active"
	DefaultColorName = "Default"
	UnnamedColorName = "Unnamed"
	DefaultImage     = "https://placehold.co/600x600?text=Produto"
	DefaultSizeName  = "M"
)

// DefaultSizes returns the canonical size set injected when a color
// declares no sizes of its own.
func DefaultSizes() []models.Size {
	return []models.Size{
		{Name: "P", Stock: 0},
		{Name: "M", Stock: 0},
		{Name: "G", Stock: 0},
		{Name: "GG", Stock: 0},
	}
}

// Products maps an arbitrary decoded payload to canonical products.
// Non-list input yields an empty slice, never an error.
func Products(raw any) []models.Product {
	switch list := raw.(type) {
	case []models.Product:
		out := make([]models.Product, 0, len(list))
		for _, p := range list {
			out = append(out, canonicalProduct(p))
		}
		return out
	case []any:
		out := make([]models.Product, 0, len(list))
		for _, elem := range list {
			out = append(out, productFromAny(elem))
		}
		return out
	case []map[string]any:
		out := make([]models.Product, 0, len(list))
		for _, elem := range list {
			out = append(out, productFromMap(elem))
		}
		return out
	default:
		return []models.Product{}
	}
}

// Categories maps an arbitrary decoded payload to canonical categories.
// Elements that are neither a string id nor an object carrying an id are
// dropped; non-list input yields an empty slice.
func Categories(raw any) []models.Category {
	switch list := raw.(type) {
	case []models.Category:
		out := make([]models.Category, 0, len(list))
		for _, c := range list {
			if c.ID == "" {
				continue
			}
			out = append(out, canonicalCategory(c))
		}
		return out
	case []string:
		out := make([]models.Category, 0, len(list))
		for _, id := range list {
			if id == "" {
				continue
			}
			out = append(out, canonicalCategory(models.Category{ID: id}))
		}
		return out
	case []any:
		out := make([]models.Category, 0, len(list))
		for _, elem := range list {
			if c, ok := categoryFromAny(elem); ok {
				out = append(out, c)
			}
		}
		return out
	default:
		return []models.Category{}
	}
}

func productFromAny(v any) models.Product {
	switch p := v.(type) {
	case models.Product:
		return canonicalProduct(p)
	case map[string]any:
		return productFromMap(p)
	default:
		// Unusable element: keep it as an all-defaults product.
		return canonicalProduct(models.Product{})
	}
}

func productFromMap(m map[string]any) models.Product {
	p := models.Product{
		ID:          toString(m["id"]),
		Title:       toString(m["title"]),
		Category:    toString(m["category"]),
		Price:       toPrice(m["price"]),
		Description: toString(m["description"]),
		Status:      toString(m["status"]),
		Colors:      colorsFromAny(m["colors"]),
	}
	if len(p.Colors) == 0 {
		// Legacy single-color shape: image and sizes at the top level.
		if _, ok := m["image"]; ok {
			p.Colors = []models.Color{{
				Name:  DefaultColorName,
				Image: toString(m["image"]),
				Sizes: sizesFromAny(m["sizes"]),
			}}
		} else if _, ok := m["sizes"]; ok {
			p.Colors = []models.Color{{
				Name:  DefaultColorName,
				Sizes: sizesFromAny(m["sizes"]),
			}}
		}
	}
	return canonicalProduct(p)
}

func colorsFromAny(v any) []models.Color {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]models.Color, 0, len(list))
	for _, elem := range list {
		m, ok := elem.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, models.Color{
			Name:  toString(m["name"]),
			Image: toString(m["image"]),
			Sizes: sizesFromAny(m["sizes"]),
		})
	}
	return out
}

func sizesFromAny(v any) []models.Size {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]models.Size, 0, len(list))
	for _, elem := range list {
		m, ok := elem.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, models.Size{
			Name:  toString(m["name"]),
			Stock: toStock(m["stock"]),
		})
	}
	return out
}

// canonicalProduct fills every defaultable field, leaving already-canonical
// products untouched.
func canonicalProduct(p models.Product) models.Product {
	if p.Title == "" {
		p.Title = DefaultTitle
	}
	if p.Status == "" {
		p.Status = DefaultStatus
	}
	if p.Price < 0 {
		p.Price = 0
	}
	if len(p.Colors) == 0 {
		p.Colors = []models.Color{{Name: DefaultColorName}}
	}
	for i := range p.Colors {
		c := &p.Colors[i]
		if c.Name == "" {
			c.Name = UnnamedColorName
		}
		if c.Image == "" {
			c.Image = DefaultImage
		}
		if len(c.Sizes) == 0 {
			c.Sizes = DefaultSizes()
		}
		for j := range c.Sizes {
			s := &c.Sizes[j]
			if s.Name == "" {
				s.Name = DefaultSizeName
			}
			if s.Stock < 0 {
				s.Stock = 0
			}
		}
	}
	return p
}

func categoryFromAny(v any) (models.Category, bool) {
	switch c := v.(type) {
	case models.Category:
		if c.ID == "" {
			return models.Category{}, false
		}
		return canonicalCategory(c), true
	case string:
		if c == "" {
			return models.Category{}, false
		}
		return canonicalCategory(models.Category{ID: c}), true
	case map[string]any:
		id := toString(c["id"])
		if id == "" {
			return models.Category{}, false
		}
		return canonicalCategory(models.Category{
			ID:          id,
			Name:        toString(c["name"]),
			Description: toString(c["description"]),
		}), true
	default:
		return models.Category{}, false
	}
}

func canonicalCategory(c models.Category) models.Category {
	if c.Name == "" {
		c.Name = capitalize(c.ID)
	}
	if c.Description == "" {
		c.Description = "Categoria de " + strings.ToLower(c.Name)
	}
	return c
}

func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	default:
		return ""
	}
}

// toPrice accepts JSON numbers and numeric strings; anything else, and any
// negative value, normalizes to 0.
func toPrice(v any) float64 {
	switch n := v.(type) {
	case float64:
		if n < 0 {
			return 0
		}
		return n
	case int:
		if n < 0 {
			return 0
		}
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || f < 0 {
			return 0
		}
		return f
	default:
		return 0
	}
}

// toStock accepts JSON numbers and numeric strings, truncating fractions;
// anything else, and any negative value, normalizes to 0.
func toStock(v any) int {
	switch n := v.(type) {
	case float64:
		if n < 0 {
			return 0
		}
		return int(n)
	case int:
		if n < 0 {
			return 0
		}
		return n
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || f < 0 {
			return 0
		}
		return int(f)
	default:
		return 0
	}
}
