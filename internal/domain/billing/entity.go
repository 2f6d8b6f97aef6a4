// internal/domain/billing/entity.go
package billing

import (
	"time"

	"github.com/your-org/inventory-backend/internal/domain/catalog"
	"github.com/your-org/inventory-backend/internal/domain/party"
	"gorm.io/gorm"
)

// InvoiceStatus represents the invoice status
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// Invoice represents a customer invoice
type Invoice struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	InvoiceNumber string        `gorm:"uniqueIndex;not null;size:20" json:"invoice_number"`
	CustomerID    uint          `gorm:"not null;index" json:"customer_id"`
	Date          time.Time     `json:"date"`
	DueDate       *time.Time    `json:"due_date,omitempty"`
	TotalAmount   int64         `gorm:"not null;default:0" json:"total_amount"` // In cents
	Status        InvoiceStatus `gorm:"not null;default:'draft'" json:"status"`
	Notes         string        `gorm:"type:text" json:"notes"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Read-only display name, populated from the preloaded relation
	CustomerName string `gorm:"-" json:"customer_name,omitempty"`

	// Relationships
	Customer party.Customer `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Items    []InvoiceItem  `gorm:"foreignKey:InvoiceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items,omitempty"`
}

// InvoiceItem represents a line on an invoice. ProductID is optional:
// free-text lines carry their own description and unit price, catalog-backed
// lines get both auto-filled at creation when not supplied.
type InvoiceItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	InvoiceID   uint      `gorm:"not null;index" json:"invoice_id"`
	ProductID   *uint     `gorm:"index" json:"product_id,omitempty"`
	Description string    `gorm:"size:255" json:"description"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	UnitPrice   int64     `gorm:"not null" json:"unit_price"` // In cents
	Total       int64     `gorm:"not null" json:"total"`      // Quantity * UnitPrice, derived once
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Product *catalog.Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
}

// TableName overrides
func (Invoice) TableName() string     { return "invoices" }
func (InvoiceItem) TableName() string { return "invoice_items" }

// AfterFind populates the read-only customer name when the relation is preloaded
func (i *Invoice) AfterFind(tx *gorm.DB) error {
	if i.Customer.ID != 0 {
		i.CustomerName = i.Customer.Name
	}
	return nil
}

// IsValidStatus reports whether s is a known invoice status
func IsValidStatus(s InvoiceStatus) bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	}
	return false
}

// GetFormattedTotal returns the total amount in currency units
func (i *Invoice) GetFormattedTotal() float64 {
	return float64(i.TotalAmount) / 100
}

// GetFormattedTotal returns the line total in currency units
func (ii *InvoiceItem) GetFormattedTotal() float64 {
	return float64(ii.Total) / 100
}
