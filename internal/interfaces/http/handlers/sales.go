// internal/interfaces/http/handlers/sales.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/inventory-backend/internal/config"
	"github.com/your-org/inventory-backend/internal/domain/sales"
	"gorm.io/gorm"
)

// SalesHandler handles sales order endpoints
type SalesHandler struct {
	salesService *sales.Service
	config       *config.Config
}

// NewSalesHandler creates a new sales handler
func NewSalesHandler(db *gorm.DB, cfg *config.Config) *SalesHandler {
	return &SalesHandler{
		salesService: sales.NewService(db, cfg),
		config:       cfg,
	}
}

// GetOrders handles GET /orders
func (h *SalesHandler) GetOrders(c *gin.Context) {
	var req sales.OrderListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	if req.Page <= 0 {
		req.Page = 1
	}
	if req.Limit <= 0 || req.Limit > 100 {
		req.Limit = 20
	}

	response, err := h.salesService.GetOrders(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve orders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved successfully",
		"data":    response,
	})
}

// GetOrder handles GET /orders/:id
func (h *SalesHandler) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.salesService.GetOrder(id)
	if err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order retrieved successfully",
		"data":    order,
	})
}

// GetOrderByNumber handles GET /orders/number/:number
func (h *SalesHandler) GetOrderByNumber(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Order number is required",
		})
		return
	}

	order, err := h.salesService.GetOrderByNumber(number)
	if err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order retrieved successfully",
		"data":    order,
	})
}

// CreateOrder handles POST /orders
func (h *SalesHandler) CreateOrder(c *gin.Context) {
	var req sales.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	order, err := h.salesService.CreateOrder(&req)
	if err != nil {
		respondMutationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order created successfully",
		"data":    order,
	})
}

// UpdateOrder handles PUT /orders/:id
func (h *SalesHandler) UpdateOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req sales.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	order, err := h.salesService.UpdateOrder(id, &req)
	if err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order updated successfully",
		"data":    order,
	})
}

// DeleteOrder handles DELETE /orders/:id
func (h *SalesHandler) DeleteOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.salesService.DeleteOrder(id); err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order deleted successfully",
	})
}
