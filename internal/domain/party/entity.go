// internal/domain/party/entity.go
package party

import (
	"time"

	"gorm.io/gorm"
)

// Vendor represents a supplier the company purchases from
type Vendor struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null;size:100" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Address     string         `gorm:"size:255" json:"address"`
	City        string         `gorm:"size:50" json:"city"`
	State       string         `gorm:"size:50" json:"state"`
	Zip         string         `gorm:"size:10" json:"zip"`
	Phone       string         `gorm:"size:15" json:"phone"`
	Email       string         `gorm:"uniqueIndex;not null;size:100" json:"email"`
	Mobile      string         `gorm:"size:10" json:"mobile"`
	Website     string         `gorm:"size:255" json:"website"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// Customer represents a buyer the company sells to
type Customer struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null;size:100" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	// General information
	Address string `gorm:"size:255" json:"address"`
	City    string `gorm:"size:50" json:"city"`
	State   string `gorm:"size:50" json:"state"`
	Zip     string `gorm:"size:10" json:"zip"`
	Country string `gorm:"size:50" json:"country"`
	GSTIN   string `gorm:"size:15" json:"gstin"`
	Phone   string `gorm:"size:15" json:"phone"`
	Email   string `gorm:"uniqueIndex;not null;size:100" json:"email"`
	Mobile  string `gorm:"size:10" json:"mobile"`
	Website string `gorm:"size:255" json:"website"`

	// Accounts receivable
	PaymentTerms string `gorm:"size:50" json:"payment_terms"`
	CreditLimit  int64  `gorm:"default:0" json:"credit_limit"` // In cents
	CreditDays   int    `gorm:"default:0" json:"credit_days"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides
func (Vendor) TableName() string   { return "vendors" }
func (Customer) TableName() string { return "customers" }
