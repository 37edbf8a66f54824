package models

// Category is a catalog category row. The ID doubles as the natural key
// clients reference from Product.Category, so writes are upsert-by-id.
type Category struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(64)" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}
