// internal/interfaces/http/handlers/stock.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/inventory-backend/internal/config"
	"github.com/your-org/inventory-backend/internal/domain/stock"
	"gorm.io/gorm"
)

// StockHandler handles stock ledger, inward and outward endpoints
type StockHandler struct {
	stockService *stock.Service
	config       *config.Config
}

// NewStockHandler creates a new stock handler
func NewStockHandler(db *gorm.DB, cfg *config.Config) *StockHandler {
	return &StockHandler{
		stockService: stock.NewService(db, cfg),
		config:       cfg,
	}
}

// createStockRequest represents opening stock creation data
type createStockRequest struct {
	ProductID       uint `json:"product_id" binding:"required"`
	OpeningQuantity int  `json:"opening_quantity" binding:"min=0"`
}

// updateInwardStatusRequest carries an inward status transition
type updateInwardStatusRequest struct {
	Status stock.InwardStatus `json:"status" binding:"required"`
}

// updateOutwardStatusRequest carries an outward status transition
type updateOutwardStatusRequest struct {
	Status stock.OutwardStatus `json:"status" binding:"required"`
}

// STOCK

// GetStocks handles GET /stocks
func (h *StockHandler) GetStocks(c *gin.Context) {
	stocks, err := h.stockService.GetStocks()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve stock levels",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stock levels retrieved successfully",
		"data":    stocks,
	})
}

// GetStock handles GET /stocks/:id
func (h *StockHandler) GetStock(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	st, err := h.stockService.GetStock(id)
	if err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stock retrieved successfully",
		"data":    st,
	})
}

// GetStockByProduct handles GET /stocks/product/:productId
func (h *StockHandler) GetStockByProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}

	st, err := h.stockService.GetStockByProduct(productID)
	if err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stock retrieved successfully",
		"data":    st,
	})
}

// CreateStock handles POST /stocks
func (h *StockHandler) CreateStock(c *gin.Context) {
	var req createStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	st, err := h.stockService.CreateStock(req.ProductID, req.OpeningQuantity)
	if err != nil {
		respondMutationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Stock record created successfully",
		"data":    st,
	})
}

// DeleteStock handles DELETE /stocks/:id
func (h *StockHandler) DeleteStock(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.stockService.DeleteStock(id); err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stock record deleted successfully",
	})
}

// Reconcile handles POST /stocks/product/:productId/reconcile
func (h *StockHandler) Reconcile(c *gin.Context) {
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}

	repair := c.Query("repair") == "true"

	result, err := h.stockService.Reconcile(productID, repair)
	if err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stock reconciliation completed",
		"data":    result,
	})
}

// TRANSACTIONS

// GetTransactions handles GET /stock-transactions
func (h *StockHandler) GetTransactions(c *gin.Context) {
	var productID uint
	if v := c.Query("product_id"); v != "" {
		parsed, ok := parseQueryID(c, v, "product_id")
		if !ok {
			return
		}
		productID = parsed
	}

	transactions, err := h.stockService.GetTransactions(productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve stock transactions",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stock transactions retrieved successfully",
		"data":    transactions,
	})
}

// GetTransaction handles GET /stock-transactions/:id
func (h *StockHandler) GetTransaction(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	txn, err := h.stockService.GetTransaction(id)
	if err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stock transaction retrieved successfully",
		"data":    txn,
	})
}

// RecordTransaction handles POST /stock-transactions
func (h *StockHandler) RecordTransaction(c *gin.Context) {
	var req stock.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	txn, err := h.stockService.RecordTransaction(&req)
	if err != nil {
		respondMutationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Stock transaction recorded successfully",
		"data":    txn,
	})
}

// INWARDS

// GetInwards handles GET /inwards
func (h *StockHandler) GetInwards(c *gin.Context) {
	inwards, err := h.stockService.GetInwards()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve inward receipts",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Inward receipts retrieved successfully",
		"data":    inwards,
	})
}

// GetInward handles GET /inwards/:id
func (h *StockHandler) GetInward(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	inward, err := h.stockService.GetInward(id)
	if err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Inward receipt retrieved successfully",
		"data":    inward,
	})
}

// CreateInward handles POST /inwards
func (h *StockHandler) CreateInward(c *gin.Context) {
	var req stock.CreateInwardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	inward, err := h.stockService.CreateInward(&req)
	if err != nil {
		respondMutationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Inward receipt created successfully",
		"data":    inward,
	})
}

// UpdateInward handles PUT /inwards/:id
func (h *StockHandler) UpdateInward(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req stock.UpdateInwardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	inward, err := h.stockService.UpdateInward(id, &req)
	if err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Inward receipt updated successfully",
		"data":    inward,
	})
}

// UpdateInwardStatus handles PUT /inwards/:id/status
func (h *StockHandler) UpdateInwardStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateInwardStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	inward, err := h.stockService.UpdateInwardStatus(id, req.Status)
	if err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Inward status updated successfully",
		"data":    inward,
	})
}

// DeleteInward handles DELETE /inwards/:id
func (h *StockHandler) DeleteInward(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.stockService.DeleteInward(id); err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Inward receipt deleted successfully",
	})
}

// OUTWARDS

// GetOutwards handles GET /outwards
func (h *StockHandler) GetOutwards(c *gin.Context) {
	outwards, err := h.stockService.GetOutwards()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve outward shipments",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Outward shipments retrieved successfully",
		"data":    outwards,
	})
}

// GetOutward handles GET /outwards/:id
func (h *StockHandler) GetOutward(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	outward, err := h.stockService.GetOutward(id)
	if err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Outward shipment retrieved successfully",
		"data":    outward,
	})
}

// CreateOutward handles POST /outwards
func (h *StockHandler) CreateOutward(c *gin.Context) {
	var req stock.CreateOutwardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	outward, err := h.stockService.CreateOutward(&req)
	if err != nil {
		respondMutationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Outward shipment created successfully",
		"data":    outward,
	})
}

// UpdateOutward handles PUT /outwards/:id
func (h *StockHandler) UpdateOutward(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req stock.UpdateOutwardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	outward, err := h.stockService.UpdateOutward(id, &req)
	if err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Outward shipment updated successfully",
		"data":    outward,
	})
}

// UpdateOutwardStatus handles PUT /outwards/:id/status
func (h *StockHandler) UpdateOutwardStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateOutwardStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	outward, err := h.stockService.UpdateOutwardStatus(id, req.Status)
	if err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Outward status updated successfully",
		"data":    outward,
	})
}

// DeleteOutward handles DELETE /outwards/:id
func (h *StockHandler) DeleteOutward(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.stockService.DeleteOutward(id); err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Outward shipment deleted successfully",
	})
}
