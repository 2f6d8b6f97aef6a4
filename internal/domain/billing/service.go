// internal/domain/billing/service.go
package billing

import (
	"errors"
	"fmt"
	"time"

	"github.com/your-org/inventory-backend/internal/config"
	"github.com/your-org/inventory-backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// Service handles invoice business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new billing service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateInvoiceRequest represents invoice creation data
type CreateInvoiceRequest struct {
	InvoiceNumber string        `json:"invoice_number" binding:"required"`
	CustomerID    uint          `json:"customer_id" binding:"required"`
	Date          *time.Time    `json:"date,omitempty"`
	DueDate       *time.Time    `json:"due_date,omitempty"`
	TotalAmount   int64         `json:"total_amount" binding:"min=0"`
	Status        InvoiceStatus `json:"status"`
	Notes         string        `json:"notes"`
}

// UpdateInvoiceRequest represents partial invoice update data
type UpdateInvoiceRequest struct {
	CustomerID  *uint          `json:"customer_id"`
	Date        *time.Time     `json:"date"`
	DueDate     *time.Time     `json:"due_date"`
	TotalAmount *int64         `json:"total_amount" binding:"omitempty,min=0"`
	Status      *InvoiceStatus `json:"status"`
	Notes       *string        `json:"notes"`
}

// CreateInvoiceItemRequest represents invoice line creation data.
// UnitPrice is a pointer so an omitted price can be told apart from an
// explicit zero; an omitted price on a catalog-backed line is auto-filled
// from the product.
type CreateInvoiceItemRequest struct {
	InvoiceID   uint   `json:"invoice_id" binding:"required"`
	ProductID   *uint  `json:"product_id,omitempty"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity" binding:"required,min=1"`
	UnitPrice   *int64 `json:"unit_price" binding:"omitempty,min=0"` // In cents
}

// UpdateInvoiceItemRequest represents partial invoice line update data.
// Total is derived once at creation and never recomputed here.
type UpdateInvoiceItemRequest struct {
	Description *string `json:"description"`
	Quantity    *int    `json:"quantity" binding:"omitempty,min=1"`
	UnitPrice   *int64  `json:"unit_price" binding:"omitempty,min=0"`
}

// INVOICE OPERATIONS

// CreateInvoice creates a new invoice
func (s *Service) CreateInvoice(req *CreateInvoiceRequest) (*Invoice, error) {
	status := req.Status
	if status == "" {
		status = InvoiceStatusDraft
	}
	if !IsValidStatus(status) {
		return nil, fmt.Errorf("invalid invoice status: %s", status)
	}

	date := time.Now().UTC()
	if req.Date != nil {
		date = *req.Date
	}

	invoice := &Invoice{
		InvoiceNumber: req.InvoiceNumber,
		CustomerID:    req.CustomerID,
		Date:          date,
		DueDate:       req.DueDate,
		TotalAmount:   req.TotalAmount,
		Status:        status,
		Notes:         req.Notes,
	}

	if err := s.db.Create(invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("invoice number '%s' already exists: %w", req.InvoiceNumber, err)
		}
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	return s.GetInvoice(invoice.ID)
}

// GetInvoices retrieves all invoices, optionally filtered by status
func (s *Service) GetInvoices(status InvoiceStatus) ([]Invoice, error) {
	var invoices []Invoice

	query := s.db.Model(&Invoice{}).
		Preload("Customer").
		Preload("Items").
		Order("date DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Find(&invoices).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve invoices: %w", err)
	}
	return invoices, nil
}

// GetInvoice retrieves a single invoice by ID
func (s *Service) GetInvoice(id uint) (*Invoice, error) {
	var invoice Invoice
	err := s.db.
		Preload("Customer").
		Preload("Items").
		First(&invoice, id).Error
	if err != nil {
		return nil, fmt.Errorf("invoice not found: %w", err)
	}
	return &invoice, nil
}

// UpdateInvoice applies a partial update to an invoice
func (s *Service) UpdateInvoice(id uint, req *UpdateInvoiceRequest) (*Invoice, error) {
	invoice, err := s.GetInvoice(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.CustomerID != nil {
		updates["customer_id"] = *req.CustomerID
	}
	if req.Date != nil {
		updates["date"] = *req.Date
	}
	if req.DueDate != nil {
		updates["due_date"] = *req.DueDate
	}
	if req.TotalAmount != nil {
		updates["total_amount"] = *req.TotalAmount
	}
	if req.Status != nil {
		if !IsValidStatus(*req.Status) {
			return nil, fmt.Errorf("invalid invoice status: %s", *req.Status)
		}
		updates["status"] = *req.Status
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	if len(updates) > 0 {
		if err := s.db.Model(invoice).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update invoice: %w", err)
		}
	}

	return s.GetInvoice(id)
}

// DeleteInvoice soft-deletes an invoice
func (s *Service) DeleteInvoice(id uint) error {
	result := s.db.Delete(&Invoice{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete invoice: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("invoice not found: %w", gorm.ErrRecordNotFound)
	}
	return nil
}

// INVOICE ITEM OPERATIONS

// CreateInvoiceItem creates an invoice line. For catalog-backed lines the
// unit price and description are auto-filled from the product when absent;
// explicit values win. Total is derived exactly once here.
func (s *Service) CreateInvoiceItem(req *CreateInvoiceItemRequest) (*InvoiceItem, error) {
	var invoice Invoice
	if err := s.db.First(&invoice, req.InvoiceID).Error; err != nil {
		return nil, fmt.Errorf("invoice not found: %w", err)
	}

	item := &InvoiceItem{
		InvoiceID:   req.InvoiceID,
		ProductID:   req.ProductID,
		Description: req.Description,
		Quantity:    req.Quantity,
	}

	if req.UnitPrice != nil {
		item.UnitPrice = *req.UnitPrice
	}

	if req.ProductID != nil {
		var product catalog.Product
		if err := s.db.First(&product, *req.ProductID).Error; err != nil {
			return nil, fmt.Errorf("product not found: %w", err)
		}
		if req.UnitPrice == nil {
			item.UnitPrice = product.Price
		}
		if item.Description == "" {
			item.Description = product.Name
		}
	} else if req.UnitPrice == nil {
		return nil, fmt.Errorf("unit_price is required for free-text invoice items")
	}

	item.Total = int64(item.Quantity) * item.UnitPrice

	if err := s.db.Create(item).Error; err != nil {
		return nil, fmt.Errorf("failed to create invoice item: %w", err)
	}

	return item, nil
}

// GetInvoiceItems retrieves invoice lines, optionally filtered by invoice
func (s *Service) GetInvoiceItems(invoiceID uint) ([]InvoiceItem, error) {
	var items []InvoiceItem

	query := s.db.Model(&InvoiceItem{})
	if invoiceID > 0 {
		query = query.Where("invoice_id = ?", invoiceID)
	}

	if err := query.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve invoice items: %w", err)
	}
	return items, nil
}

// GetInvoiceItem retrieves a single invoice line by ID
func (s *Service) GetInvoiceItem(id uint) (*InvoiceItem, error) {
	var item InvoiceItem
	if err := s.db.First(&item, id).Error; err != nil {
		return nil, fmt.Errorf("invoice item not found: %w", err)
	}
	return &item, nil
}

// UpdateInvoiceItem applies a partial update to an invoice line. The total
// keeps its creation-time value.
func (s *Service) UpdateInvoiceItem(id uint, req *UpdateInvoiceItemRequest) (*InvoiceItem, error) {
	item, err := s.GetInvoiceItem(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Quantity != nil {
		updates["quantity"] = *req.Quantity
	}
	if req.UnitPrice != nil {
		updates["unit_price"] = *req.UnitPrice
	}

	if len(updates) > 0 {
		if err := s.db.Model(item).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update invoice item: %w", err)
		}
	}

	return item, nil
}

// DeleteInvoiceItem removes an invoice line
func (s *Service) DeleteInvoiceItem(id uint) error {
	result := s.db.Delete(&InvoiceItem{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete invoice item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("invoice item not found: %w", gorm.ErrRecordNotFound)
	}
	return nil
}
