// internal/domain/catalog/entity.go
package catalog

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a sellable catalog item
type Product struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null;size:100" json:"name"`
	SKU         string         `gorm:"uniqueIndex;not null;size:50" json:"sku"`
	Description string         `gorm:"type:text" json:"description"`
	Price       int64          `gorm:"not null" json:"price"` // Price in cents
	Vendor      string         `gorm:"size:100" json:"vendor"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// Material represents a raw material used on purchase order line items
type Material struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null;size:255" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Unit        string         `gorm:"size:50" json:"unit"` // kg, pcs, m, etc.
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides
func (Product) TableName() string  { return "products" }
func (Material) TableName() string { return "materials" }

// GetFormattedPrice returns the price in currency units
func (p *Product) GetFormattedPrice() float64 {
	return float64(p.Price) / 100
}
