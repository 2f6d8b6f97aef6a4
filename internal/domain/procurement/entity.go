// internal/domain/procurement/entity.go
package procurement

import (
	"time"

	"github.com/your-org/inventory-backend/internal/domain/catalog"
	"github.com/your-org/inventory-backend/internal/domain/party"
	"gorm.io/gorm"
)

// PurchaseOrder represents a vendor-facing order.
//
// ReferenceNumber, CostPrice and TotalAmount are assigned exactly once at
// creation; later updates never recompute them.
type PurchaseOrder struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	ReferenceNumber  string     `gorm:"uniqueIndex;not null;size:100" json:"reference_number"`
	VendorID         uint       `gorm:"not null;index" json:"vendor_id"`
	ProductID        uint       `gorm:"not null;index" json:"product_id"`
	Quantity         int        `gorm:"not null;default:1" json:"quantity"`
	CostPrice        int64      `gorm:"not null" json:"cost_price"`    // Snapshot of product price in cents
	TotalAmount      int64      `gorm:"not null" json:"total_amount"`  // CostPrice * Quantity
	OrderDate        time.Time  `gorm:"autoCreateTime" json:"order_date"`
	ExpectedDelivery *time.Time `json:"expected_delivery,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Read-only display names, populated from the preloaded relations
	VendorName  string `gorm:"-" json:"vendor_name,omitempty"`
	ProductName string `gorm:"-" json:"product_name,omitempty"`

	// Relationships
	Vendor  party.Vendor    `gorm:"foreignKey:VendorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Product catalog.Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	Items   []POItem        `gorm:"foreignKey:PurchaseOrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items,omitempty"`
}

// POItem represents a material line item on a purchase order
type POItem struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	PurchaseOrderID uint      `gorm:"not null;index" json:"purchase_order_id"`
	MaterialID      uint      `gorm:"not null;index" json:"material_id"`
	Quantity        float64   `gorm:"not null" json:"quantity"`
	UnitPrice       int64     `gorm:"not null" json:"unit_price"` // In cents
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Relationships
	Material catalog.Material `gorm:"foreignKey:MaterialID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// TableName overrides
func (PurchaseOrder) TableName() string { return "purchase_orders" }
func (POItem) TableName() string        { return "po_items" }

// AfterFind populates read-only display names when the relations are preloaded
func (po *PurchaseOrder) AfterFind(tx *gorm.DB) error {
	if po.Vendor.ID != 0 {
		po.VendorName = po.Vendor.Name
	}
	if po.Product.ID != 0 {
		po.ProductName = po.Product.Name
	}
	return nil
}

// GetFormattedTotal returns the total amount in currency units
func (po *PurchaseOrder) GetFormattedTotal() float64 {
	return float64(po.TotalAmount) / 100
}
