// internal/domain/sales/service.go
package sales

import (
	"errors"
	"fmt"
	"time"

	"github.com/your-org/inventory-backend/internal/config"
	"github.com/your-org/inventory-backend/internal/domain/catalog"
	"github.com/your-org/inventory-backend/internal/pkg/refcode"
	"gorm.io/gorm"
)

const maxOrderNumberAttempts = 5

// Service handles sales order business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new sales service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateOrderRequest represents order entry creation data
type CreateOrderRequest struct {
	CustomerID uint `json:"customer_id" binding:"required"`
	ProductID  uint `json:"product_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required,min=1"`
}

// UpdateOrderRequest represents partial order entry update data.
// Order number, price and total amount are not updatable.
type UpdateOrderRequest struct {
	CustomerID *uint        `json:"customer_id"`
	Quantity   *int         `json:"quantity" binding:"omitempty,min=1"`
	Status     *OrderStatus `json:"status"`
}

// OrderListRequest represents order entry list query parameters
type OrderListRequest struct {
	Page       int         `form:"page,default=1"`
	Limit      int         `form:"limit,default=20"`
	Status     OrderStatus `form:"status"`
	CustomerID uint        `form:"customer_id"`
	DateFrom   string      `form:"date_from"`
	DateTo     string      `form:"date_to"`
	SortBy     string      `form:"sort_by,default=order_date"`
	SortOrder  string      `form:"sort_order,default=desc"`
}

// OrderResponse represents a paginated order entry listing
type OrderResponse struct {
	Orders     []OrderEntry `json:"orders"`
	Pagination Pagination   `json:"pagination"`
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

// CreateOrder creates an order entry, snapshotting the product's current
// price and deriving the total, both exactly once.
func (s *Service) CreateOrder(req *CreateOrderRequest) (*OrderEntry, error) {
	// Each attempt runs in its own transaction: a unique violation aborts the
	// whole transaction on PostgreSQL, so the retry must re-run it rather than
	// continue inside it. The unique index on order_number closes the
	// check-then-insert race.
	for attempt := 0; attempt < maxOrderNumberAttempts; attempt++ {
		var order *OrderEntry

		err := s.db.Transaction(func(tx *gorm.DB) error {
			var product catalog.Product
			if err := tx.First(&product, req.ProductID).Error; err != nil {
				return fmt.Errorf("product not found: %w", err)
			}

			order = &OrderEntry{
				OrderNumber: refcode.New(),
				CustomerID:  req.CustomerID,
				ProductID:   req.ProductID,
				Quantity:    req.Quantity,
				Price:       product.Price,
				TotalAmount: product.Price * int64(req.Quantity),
				Status:      OrderStatusPending,
				OrderDate:   time.Now().UTC(),
			}

			var count int64
			if err := tx.Model(&OrderEntry{}).
				Where("order_number = ?", order.OrderNumber).
				Count(&count).Error; err != nil {
				return fmt.Errorf("failed to check order number: %w", err)
			}
			if count > 0 {
				return gorm.ErrDuplicatedKey
			}

			if err := tx.Create(order).Error; err != nil {
				return fmt.Errorf("failed to create order: %w", err)
			}
			return nil
		})
		if err == nil {
			return s.GetOrder(order.ID)
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		return nil, err
	}

	return nil, fmt.Errorf("failed to assign a unique order number after %d attempts", maxOrderNumberAttempts)
}

// GetOrders retrieves order entries with filtering and pagination
func (s *Service) GetOrders(req *OrderListRequest) (*OrderResponse, error) {
	var orders []OrderEntry
	var total int64

	query := s.db.Model(&OrderEntry{}).
		Preload("Customer").
		Preload("Product")

	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.CustomerID > 0 {
		query = query.Where("customer_id = ?", req.CustomerID)
	}
	if req.DateFrom != "" {
		query = query.Where("order_date >= ?", req.DateFrom)
	}
	if req.DateTo != "" {
		query = query.Where("order_date <= ?", req.DateTo)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	query = query.Order(buildOrderClause(req.SortBy, req.SortOrder))

	offset := (req.Page - 1) * req.Limit
	if err := query.Offset(offset).Limit(req.Limit).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return &OrderResponse{
		Orders: orders,
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

// GetOrder retrieves a single order entry by ID
func (s *Service) GetOrder(id uint) (*OrderEntry, error) {
	var order OrderEntry
	err := s.db.
		Preload("Customer").
		Preload("Product").
		First(&order, id).Error
	if err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}
	return &order, nil
}

// GetOrderByNumber retrieves a single order entry by order number
func (s *Service) GetOrderByNumber(orderNumber string) (*OrderEntry, error) {
	var order OrderEntry
	err := s.db.
		Preload("Customer").
		Preload("Product").
		Where("order_number = ?", orderNumber).
		First(&order).Error
	if err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}
	return &order, nil
}

// UpdateOrder applies a partial update. Derived fields (order number, price,
// total amount) keep their creation-time values even when quantity changes.
func (s *Service) UpdateOrder(id uint, req *UpdateOrderRequest) (*OrderEntry, error) {
	order, err := s.GetOrder(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.CustomerID != nil {
		updates["customer_id"] = *req.CustomerID
	}
	if req.Quantity != nil {
		updates["quantity"] = *req.Quantity
	}
	if req.Status != nil {
		if !IsValidStatus(*req.Status) {
			return nil, fmt.Errorf("invalid order status: %s", *req.Status)
		}
		updates["status"] = *req.Status
	}

	if len(updates) > 0 {
		if err := s.db.Model(order).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update order: %w", err)
		}
	}

	return s.GetOrder(id)
}

// DeleteOrder soft-deletes an order entry
func (s *Service) DeleteOrder(id uint) error {
	result := s.db.Delete(&OrderEntry{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("order not found: %w", gorm.ErrRecordNotFound)
	}
	return nil
}

func buildOrderClause(sortBy, sortOrder string) string {
	validSortFields := map[string]bool{
		"order_date":   true,
		"created_at":   true,
		"total_amount": true,
		"status":       true,
		"order_number": true,
	}

	if !validSortFields[sortBy] {
		sortBy = "order_date"
	}

	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	return fmt.Sprintf("%s %s", sortBy, sortOrder)
}
