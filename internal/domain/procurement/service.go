// internal/domain/procurement/service.go
package procurement

import (
	"errors"
	"fmt"
	"time"

	"github.com/your-org/inventory-backend/internal/config"
	"github.com/your-org/inventory-backend/internal/domain/catalog"
	"github.com/your-org/inventory-backend/internal/pkg/refcode"
	"gorm.io/gorm"
)

// maxReferenceAttempts bounds the duplicate-key retry loop when assigning
// reference numbers. With 36^5 possible codes a single retry is already rare.
const maxReferenceAttempts = 5

// Service handles purchase order business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new procurement service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreatePurchaseOrderRequest represents purchase order creation data
type CreatePurchaseOrderRequest struct {
	VendorID         uint       `json:"vendor_id" binding:"required"`
	ProductID        uint       `json:"product_id" binding:"required"`
	Quantity         int        `json:"quantity" binding:"required,min=1"`
	ExpectedDelivery *time.Time `json:"expected_delivery,omitempty"`
}

// UpdatePurchaseOrderRequest represents partial purchase order update data.
// Reference number, cost price and total amount are not updatable.
type UpdatePurchaseOrderRequest struct {
	VendorID         *uint      `json:"vendor_id"`
	Quantity         *int       `json:"quantity" binding:"omitempty,min=1"`
	ExpectedDelivery *time.Time `json:"expected_delivery"`
}

// CreatePOItemRequest represents purchase order line item creation data
type CreatePOItemRequest struct {
	PurchaseOrderID uint    `json:"purchase_order_id" binding:"required"`
	MaterialID      uint    `json:"material_id" binding:"required"`
	Quantity        float64 `json:"quantity" binding:"required,gt=0"`
	UnitPrice       int64   `json:"unit_price" binding:"min=0"` // In cents
}

// UpdatePOItemRequest represents partial line item update data
type UpdatePOItemRequest struct {
	Quantity  *float64 `json:"quantity" binding:"omitempty,gt=0"`
	UnitPrice *int64   `json:"unit_price" binding:"omitempty,min=0"`
}

// PurchaseOrderListRequest represents purchase order list query parameters
type PurchaseOrderListRequest struct {
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=20"`
	VendorID  uint   `form:"vendor_id"`
	ProductID uint   `form:"product_id"`
	DateFrom  string `form:"date_from"`
	DateTo    string `form:"date_to"`
	SortBy    string `form:"sort_by,default=order_date"`
	SortOrder string `form:"sort_order,default=desc"`
}

// PurchaseOrderResponse represents a paginated purchase order listing
type PurchaseOrderResponse struct {
	PurchaseOrders []PurchaseOrder `json:"purchase_orders"`
	Pagination     Pagination      `json:"pagination"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// CreatePurchaseOrder creates a purchase order, snapshotting the product's
// current price into CostPrice and deriving TotalAmount, both exactly once.
func (s *Service) CreatePurchaseOrder(req *CreatePurchaseOrderRequest) (*PurchaseOrder, error) {
	// Each attempt runs in its own transaction: a unique violation aborts the
	// whole transaction on PostgreSQL, so the retry must re-run it rather than
	// continue inside it. The unique index on reference_number closes the
	// check-then-insert race.
	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		var po *PurchaseOrder

		err := s.db.Transaction(func(tx *gorm.DB) error {
			var product catalog.Product
			if err := tx.First(&product, req.ProductID).Error; err != nil {
				return fmt.Errorf("product not found: %w", err)
			}

			po = &PurchaseOrder{
				ReferenceNumber:  refcode.NewPurchaseOrderReference(),
				VendorID:         req.VendorID,
				ProductID:        req.ProductID,
				Quantity:         req.Quantity,
				CostPrice:        product.Price,
				TotalAmount:      product.Price * int64(req.Quantity),
				OrderDate:        time.Now().UTC(),
				ExpectedDelivery: req.ExpectedDelivery,
			}

			var count int64
			if err := tx.Model(&PurchaseOrder{}).
				Where("reference_number = ?", po.ReferenceNumber).
				Count(&count).Error; err != nil {
				return fmt.Errorf("failed to check reference number: %w", err)
			}
			if count > 0 {
				return gorm.ErrDuplicatedKey
			}

			if err := tx.Create(po).Error; err != nil {
				return fmt.Errorf("failed to create purchase order: %w", err)
			}
			return nil
		})
		if err == nil {
			return s.GetPurchaseOrder(po.ID)
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		return nil, err
	}

	return nil, fmt.Errorf("failed to assign a unique reference number after %d attempts", maxReferenceAttempts)
}

// GetPurchaseOrders retrieves purchase orders with filtering and pagination
func (s *Service) GetPurchaseOrders(req *PurchaseOrderListRequest) (*PurchaseOrderResponse, error) {
	var orders []PurchaseOrder
	var total int64

	query := s.db.Model(&PurchaseOrder{}).
		Preload("Vendor").
		Preload("Product").
		Preload("Items")

	if req.VendorID > 0 {
		query = query.Where("vendor_id = ?", req.VendorID)
	}
	if req.ProductID > 0 {
		query = query.Where("product_id = ?", req.ProductID)
	}
	if req.DateFrom != "" {
		query = query.Where("order_date >= ?", req.DateFrom)
	}
	if req.DateTo != "" {
		query = query.Where("order_date <= ?", req.DateTo)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count purchase orders: %w", err)
	}

	query = query.Order(buildOrderClause(req.SortBy, req.SortOrder))

	offset := (req.Page - 1) * req.Limit
	if err := query.Offset(offset).Limit(req.Limit).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve purchase orders: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return &PurchaseOrderResponse{
		PurchaseOrders: orders,
		Pagination: Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    req.Page < totalPages,
			HasPrev:    req.Page > 1,
		},
	}, nil
}

// GetPurchaseOrder retrieves a single purchase order by ID
func (s *Service) GetPurchaseOrder(id uint) (*PurchaseOrder, error) {
	var po PurchaseOrder
	err := s.db.
		Preload("Vendor").
		Preload("Product").
		Preload("Items").
		First(&po, id).Error
	if err != nil {
		return nil, fmt.Errorf("purchase order not found: %w", err)
	}
	return &po, nil
}

// GetPurchaseOrderByReference retrieves a purchase order by reference number
func (s *Service) GetPurchaseOrderByReference(reference string) (*PurchaseOrder, error) {
	var po PurchaseOrder
	err := s.db.
		Preload("Vendor").
		Preload("Product").
		Preload("Items").
		Where("reference_number = ?", reference).
		First(&po).Error
	if err != nil {
		return nil, fmt.Errorf("purchase order not found: %w", err)
	}
	return &po, nil
}

// UpdatePurchaseOrder applies a partial update. Derived fields (reference
// number, cost price, total amount) keep their creation-time values even
// when quantity changes.
func (s *Service) UpdatePurchaseOrder(id uint, req *UpdatePurchaseOrderRequest) (*PurchaseOrder, error) {
	po, err := s.GetPurchaseOrder(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.VendorID != nil {
		updates["vendor_id"] = *req.VendorID
	}
	if req.Quantity != nil {
		updates["quantity"] = *req.Quantity
	}
	if req.ExpectedDelivery != nil {
		updates["expected_delivery"] = *req.ExpectedDelivery
	}

	if len(updates) > 0 {
		if err := s.db.Model(po).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update purchase order: %w", err)
		}
	}

	return s.GetPurchaseOrder(id)
}

// DeletePurchaseOrder soft-deletes a purchase order
func (s *Service) DeletePurchaseOrder(id uint) error {
	result := s.db.Delete(&PurchaseOrder{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete purchase order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("purchase order not found: %w", gorm.ErrRecordNotFound)
	}
	return nil
}

// PO ITEM OPERATIONS

// CreatePOItem adds a material line item to a purchase order
func (s *Service) CreatePOItem(req *CreatePOItemRequest) (*POItem, error) {
	var po PurchaseOrder
	if err := s.db.First(&po, req.PurchaseOrderID).Error; err != nil {
		return nil, fmt.Errorf("purchase order not found: %w", err)
	}

	item := &POItem{
		PurchaseOrderID: req.PurchaseOrderID,
		MaterialID:      req.MaterialID,
		Quantity:        req.Quantity,
		UnitPrice:       req.UnitPrice,
	}

	if err := s.db.Create(item).Error; err != nil {
		return nil, fmt.Errorf("failed to create purchase order item: %w", err)
	}

	return item, nil
}

// GetPOItems retrieves line items, optionally filtered by purchase order
func (s *Service) GetPOItems(purchaseOrderID uint) ([]POItem, error) {
	var items []POItem

	query := s.db.Model(&POItem{}).Preload("Material")
	if purchaseOrderID > 0 {
		query = query.Where("purchase_order_id = ?", purchaseOrderID)
	}

	if err := query.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve purchase order items: %w", err)
	}
	return items, nil
}

// GetPOItem retrieves a single line item by ID
func (s *Service) GetPOItem(id uint) (*POItem, error) {
	var item POItem
	if err := s.db.Preload("Material").First(&item, id).Error; err != nil {
		return nil, fmt.Errorf("purchase order item not found: %w", err)
	}
	return &item, nil
}

// UpdatePOItem applies a partial update to a line item
func (s *Service) UpdatePOItem(id uint, req *UpdatePOItemRequest) (*POItem, error) {
	item, err := s.GetPOItem(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Quantity != nil {
		updates["quantity"] = *req.Quantity
	}
	if req.UnitPrice != nil {
		updates["unit_price"] = *req.UnitPrice
	}

	if len(updates) > 0 {
		if err := s.db.Model(item).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update purchase order item: %w", err)
		}
	}

	return item, nil
}

// DeletePOItem removes a line item
func (s *Service) DeletePOItem(id uint) error {
	result := s.db.Delete(&POItem{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete purchase order item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("purchase order item not found: %w", gorm.ErrRecordNotFound)
	}
	return nil
}

func buildOrderClause(sortBy, sortOrder string) string {
	validSortFields := map[string]bool{
		"order_date":       true,
		"created_at":       true,
		"total_amount":     true,
		"reference_number": true,
	}

	if !validSortFields[sortBy] {
		sortBy = "order_date"
	}

	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	return fmt.Sprintf("%s %s", sortBy, sortOrder)
}
