package models

// Size is one stock entry for a color variant.
type Size struct {
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

// Color is one sellable color variant of a product, with its own image
// and per-size stock.
type Color struct {
	Name  string `json:"name"`
	Image string `json:"image"`
	Sizes []Size `json:"sizes"`
}

// Product is the canonical catalog product row. The ID is assigned by the
// store on insert; Category holds the id of a Category row (referential
// integrity is upheld by the catalog service, not by the store).
type Product struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Colors      []Color `json:"colors" gorm:"serializer:json"`
}
