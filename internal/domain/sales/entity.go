// internal/domain/sales/entity.go
package sales

import (
	"time"

	"github.com/your-org/inventory-backend/internal/domain/catalog"
	"github.com/your-org/inventory-backend/internal/domain/party"
	"gorm.io/gorm"
)

// OrderStatus represents the order entry status
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderEntry represents a customer-facing sales order.
//
// OrderNumber, Price and TotalAmount are assigned exactly once at creation;
// later updates never recompute them.
type OrderEntry struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	OrderNumber string      `gorm:"uniqueIndex;not null;size:20" json:"order_number"`
	CustomerID  uint        `gorm:"not null;index" json:"customer_id"`
	ProductID   uint        `gorm:"not null;index" json:"product_id"`
	Quantity    int         `gorm:"not null" json:"quantity"`
	Price       int64       `gorm:"not null" json:"price"`        // Snapshot of product price in cents
	TotalAmount int64       `gorm:"not null" json:"total_amount"` // Price * Quantity
	Status      OrderStatus `gorm:"not null;default:'pending'" json:"status"`
	OrderDate   time.Time   `gorm:"autoCreateTime" json:"order_date"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Read-only display names, populated from the preloaded relations
	CustomerName string `gorm:"-" json:"customer_name,omitempty"`
	ProductName  string `gorm:"-" json:"product_name,omitempty"`

	// Relationships
	Customer party.Customer  `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Product  catalog.Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
}

// TableName override
func (OrderEntry) TableName() string { return "order_entries" }

// AfterFind populates read-only display names when the relations are preloaded
func (o *OrderEntry) AfterFind(tx *gorm.DB) error {
	if o.Customer.ID != 0 {
		o.CustomerName = o.Customer.Name
	}
	if o.Product.ID != 0 {
		o.ProductName = o.Product.Name
	}
	return nil
}

// IsValidStatus reports whether s is a known order status
func IsValidStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusShipped, OrderStatusCancelled:
		return true
	}
	return false
}

// GetFormattedTotal returns the total amount in currency units
func (o *OrderEntry) GetFormattedTotal() float64 {
	return float64(o.TotalAmount) / 100
}
