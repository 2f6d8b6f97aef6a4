// internal/interfaces/http/handlers/procurement.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/inventory-backend/internal/config"
	"github.com/your-org/inventory-backend/internal/domain/procurement"
	"gorm.io/gorm"
)

// ProcurementHandler handles purchase order endpoints
type ProcurementHandler struct {
	procurementService *procurement.Service
	config             *config.Config
}

// NewProcurementHandler creates a new procurement handler
func NewProcurementHandler(db *gorm.DB, cfg *config.Config) *ProcurementHandler {
	return &ProcurementHandler{
		procurementService: procurement.NewService(db, cfg),
		config:             cfg,
	}
}

// PURCHASE ORDERS

// GetPurchaseOrders handles GET /purchase-orders
func (h *ProcurementHandler) GetPurchaseOrders(c *gin.Context) {
	var req procurement.PurchaseOrderListRequest
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

	response, err := h.procurementService.GetPurchaseOrders(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve purchase orders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Purchase orders retrieved successfully",
		"data":    response,
	})
}

// GetPurchaseOrder handles GET /purchase-orders/:id
func (h *ProcurementHandler) GetPurchaseOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	po, err := h.procurementService.GetPurchaseOrder(id)
	if err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Purchase order retrieved successfully",
		"data":    po,
	})
}

// GetPurchaseOrderByReference handles GET /purchase-orders/reference/:reference
func (h *ProcurementHandler) GetPurchaseOrderByReference(c *gin.Context) {
	reference := c.Param("reference")
	if reference == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Reference number is required",
		})
		return
	}

	po, err := h.procurementService.GetPurchaseOrderByReference(reference)
	if err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Purchase order retrieved successfully",
		"data":    po,
	})
}

// CreatePurchaseOrder handles POST /purchase-orders
func (h *ProcurementHandler) CreatePurchaseOrder(c *gin.Context) {
	var req procurement.CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	po, err := h.procurementService.CreatePurchaseOrder(&req)
	if err != nil {
		respondMutationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Purchase order created successfully",
		"data":    po,
	})
}

// UpdatePurchaseOrder handles PUT /purchase-orders/:id
func (h *ProcurementHandler) UpdatePurchaseOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req procurement.UpdatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	po, err := h.procurementService.UpdatePurchaseOrder(id, &req)
	if err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Purchase order updated successfully",
		"data":    po,
	})
}

// DeletePurchaseOrder handles DELETE /purchase-orders/:id
func (h *ProcurementHandler) DeletePurchaseOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.procurementService.DeletePurchaseOrder(id); err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Purchase order deleted successfully",
	})
}

// PO LINE ITEMS

// GetPOItems handles GET /po-items
func (h *ProcurementHandler) GetPOItems(c *gin.Context) {
	var poID uint
	if v := c.Query("purchase_order_id"); v != "" {
		parsed, ok := parseQueryID(c, v, "purchase_order_id")
		if !ok {
			return
		}
		poID = parsed
	}

	items, err := h.procurementService.GetPOItems(poID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve purchase order items",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Purchase order items retrieved successfully",
		"data":    items,
	})
}

// GetPOItem handles GET /po-items/:id
func (h *ProcurementHandler) GetPOItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.procurementService.GetPOItem(id)
	if err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Purchase order item retrieved successfully",
		"data":    item,
	})
}

// CreatePOItem handles POST /po-items
func (h *ProcurementHandler) CreatePOItem(c *gin.Context) {
	var req procurement.CreatePOItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	item, err := h.procurementService.CreatePOItem(&req)
	if err != nil {
		respondMutationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Purchase order item created successfully",
		"data":    item,
	})
}

// UpdatePOItem handles PUT /po-items/:id
func (h *ProcurementHandler) UpdatePOItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req procurement.UpdatePOItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	item, err := h.procurementService.UpdatePOItem(id, &req)
	if err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Purchase order item updated successfully",
		"data":    item,
	})
}

// DeletePOItem handles DELETE /po-items/:id
func (h *ProcurementHandler) DeletePOItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.procurementService.DeletePOItem(id); err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Purchase order item deleted successfully",
	})
}
