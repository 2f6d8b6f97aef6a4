// internal/domain/stock/entity.go
package stock

import (
	"time"

	"github.com/your-org/inventory-backend/internal/domain/catalog"
	"github.com/your-org/inventory-backend/internal/domain/procurement"
	"github.com/your-org/inventory-backend/internal/domain/sales"
	"gorm.io/gorm"
)

// TransactionType represents the type of a stock transaction
type TransactionType string

const (
	TransactionTypeIn         TransactionType = "IN"
	TransactionTypeOut        TransactionType = "OUT"
	TransactionTypeAdjustment TransactionType = "ADJ"
)

// InwardStatus represents the status of an inward receipt
type InwardStatus string

const (
	InwardStatusPending   InwardStatus = "pending"
	InwardStatusReceived  InwardStatus = "received"
	InwardStatusCancelled InwardStatus = "cancelled"
)

// OutwardStatus represents the status of an outward shipment
type OutwardStatus string

const (
	OutwardStatusPending   OutwardStatus = "pending"
	OutwardStatusShipped   OutwardStatus = "shipped"
	OutwardStatusCancelled OutwardStatus = "cancelled"
)

// Stock is the materialized quantity-on-hand view per product.
// QuantityOnHand always equals the signed sum of the product's transactions.
type Stock struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ProductID      uint      `gorm:"uniqueIndex;not null" json:"product_id"`
	QuantityOnHand int       `gorm:"not null;default:0" json:"quantity_on_hand"`
	LastUpdated    time.Time `gorm:"autoUpdateTime" json:"last_updated"`
	CreatedAt      time.Time `json:"created_at"`

	// Read-only display name, populated from the preloaded relation
	ProductName string `gorm:"-" json:"product_name,omitempty"`

	// Relationships
	Product catalog.Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// StockTransaction is an append-only movement record. Quantity is signed:
// positive for IN, negative for OUT, either for ADJ.
type StockTransaction struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	ProductID       uint            `gorm:"not null;index" json:"product_id"`
	TransactionType TransactionType `gorm:"not null;size:3" json:"transaction_type"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	SourceReference string          `gorm:"size:100" json:"source_reference"` // Order number, PO reference, etc.
	Remarks         string          `gorm:"type:text" json:"remarks"`
	Timestamp       time.Time       `gorm:"autoCreateTime;index" json:"timestamp"`

	// Relationships
	Product catalog.Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// Inward represents goods received against a purchase order
type Inward struct {
	ID              uint         `gorm:"primaryKey" json:"id"`
	PurchaseOrderID uint         `gorm:"not null;index" json:"purchase_order_id"`
	ReceivedDate    time.Time    `gorm:"autoCreateTime" json:"received_date"`
	ReceivedBy      string       `gorm:"size:100" json:"received_by"`
	Remarks         string       `gorm:"type:text" json:"remarks"`
	Status          InwardStatus `gorm:"not null;default:'pending'" json:"status"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`

	// Relationships
	PurchaseOrder procurement.PurchaseOrder `gorm:"foreignKey:PurchaseOrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// Outward represents goods shipped against a sales order
type Outward struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	OrderEntryID uint          `gorm:"not null;index" json:"order_entry_id"`
	ShippedDate  time.Time     `gorm:"autoCreateTime" json:"shipped_date"`
	ShippedBy    string        `gorm:"size:100" json:"shipped_by"`
	Remarks      string        `gorm:"type:text" json:"remarks"`
	Status       OutwardStatus `gorm:"not null;default:'pending'" json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`

	// Relationships
	OrderEntry sales.OrderEntry `gorm:"foreignKey:OrderEntryID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// TableName overrides
func (Stock) TableName() string            { return "stock" }
func (StockTransaction) TableName() string { return "stock_transactions" }
func (Inward) TableName() string           { return "inwards" }
func (Outward) TableName() string          { return "outwards" }

// AfterFind populates the read-only product name when the relation is preloaded
func (st *Stock) AfterFind(tx *gorm.DB) error {
	if st.Product.ID != 0 {
		st.ProductName = st.Product.Name
	}
	return nil
}

// CanTransitionTo reports whether an inward status change is allowed.
// Transitions are monotonic: pending -> received|cancelled, nothing else.
func (i *Inward) CanTransitionTo(next InwardStatus) bool {
	if i.Status != InwardStatusPending {
		return false
	}
	return next == InwardStatusReceived || next == InwardStatusCancelled
}

// CanTransitionTo reports whether an outward status change is allowed.
// Transitions are monotonic: pending -> shipped|cancelled, nothing else.
func (o *Outward) CanTransitionTo(next OutwardStatus) bool {
	if o.Status != OutwardStatusPending {
		return false
	}
	return next == OutwardStatusShipped || next == OutwardStatusCancelled
}

// SignedQuantity returns the ledger contribution for a transaction type.
// IN quantities count positive, OUT negative; ADJ quantities are stored
// already signed.
func SignedQuantity(t TransactionType, quantity int) int {
	switch t {
	case TransactionTypeIn:
		if quantity < 0 {
			return -quantity
		}
		return quantity
	case TransactionTypeOut:
		if quantity > 0 {
			return -quantity
		}
		return quantity
	default:
		return quantity
	}
}
