// internal/interfaces/http/handlers/billing.go
package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/inventory-backend/internal/config"
	"github.com/your-org/inventory-backend/internal/domain/billing"
	"github.com/your-org/inventory-backend/internal/pkg/pdf"
	"gorm.io/gorm"
)

// BillingHandler handles invoice endpoints
type BillingHandler struct {
	billingService *billing.Service
	pdfService     *pdf.Service
	config         *config.Config
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(db *gorm.DB, cfg *config.Config) *BillingHandler {
	return &BillingHandler{
		billingService: billing.NewService(db, cfg),
		pdfService:     pdf.NewService(cfg),
		config:         cfg,
	}
}

// INVOICES

// GetInvoices handles GET /invoices
func (h *BillingHandler) GetInvoices(c *gin.Context) {
	status := billing.InvoiceStatus(c.Query("status"))
	if status != "" && !billing.IsValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid invoice status",
		})
		return
	}

	invoices, err := h.billingService.GetInvoices(status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve invoices",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Invoices retrieved successfully",
		"data":    invoices,
	})
}

// GetInvoice handles GET /invoices/:id
func (h *BillingHandler) GetInvoice(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	invoice, err := h.billingService.GetInvoice(id)
	if err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Invoice retrieved successfully",
		"data":    invoice,
	})
}

// CreateInvoice handles POST /invoices
func (h *BillingHandler) CreateInvoice(c *gin.Context) {
	var req billing.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	invoice, err := h.billingService.CreateInvoice(&req)
	if err != nil {
		respondMutationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Invoice created successfully",
		"data":    invoice,
	})
}

// UpdateInvoice handles PUT /invoices/:id
func (h *BillingHandler) UpdateInvoice(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req billing.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	invoice, err := h.billingService.UpdateInvoice(id, &req)
	if err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Invoice updated successfully",
		"data":    invoice,
	})
}

// DeleteInvoice handles DELETE /invoices/:id
func (h *BillingHandler) DeleteInvoice(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.billingService.DeleteInvoice(id); err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Invoice deleted successfully",
	})
}

// GenerateInvoicePDF handles GET /invoices/:id/pdf
func (h *BillingHandler) GenerateInvoicePDF(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	invoice, err := h.billingService.GetInvoice(id)
	if err != nil {
		respondLookupError(c, err)
		return
	}

	pdfBuffer, err := h.pdfService.GenerateInvoice(invoice)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate invoice PDF",
		})
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%s.pdf", invoice.InvoiceNumber))
	c.Header("Content-Length", strconv.Itoa(len(pdfBuffer.Bytes())))

	c.Data(http.StatusOK, "application/pdf", pdfBuffer.Bytes())
}

// INVOICE ITEMS

// GetInvoiceItems handles GET /invoice-items
func (h *BillingHandler) GetInvoiceItems(c *gin.Context) {
	var invoiceID uint
	if v := c.Query("invoice_id"); v != "" {
		parsed, ok := parseQueryID(c, v, "invoice_id")
		if !ok {
			return
		}
		invoiceID = parsed
	}

	items, err := h.billingService.GetInvoiceItems(invoiceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve invoice items",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Invoice items retrieved successfully",
		"data":    items,
	})
}

// GetInvoiceItem handles GET /invoice-items/:id
func (h *BillingHandler) GetInvoiceItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.billingService.GetInvoiceItem(id)
	if err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Invoice item retrieved successfully",
		"data":    item,
	})
}

// CreateInvoiceItem handles POST /invoice-items
func (h *BillingHandler) CreateInvoiceItem(c *gin.Context) {
	var req billing.CreateInvoiceItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	item, err := h.billingService.CreateInvoiceItem(&req)
	if err != nil {
		respondMutationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Invoice item created successfully",
		"data":    item,
	})
}

// UpdateInvoiceItem handles PUT /invoice-items/:id
func (h *BillingHandler) UpdateInvoiceItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req billing.UpdateInvoiceItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	item, err := h.billingService.UpdateInvoiceItem(id, &req)
	if err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Invoice item updated successfully",
		"data":    item,
	})
}

// DeleteInvoiceItem handles DELETE /invoice-items/:id
func (h *BillingHandler) DeleteInvoiceItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.billingService.DeleteInvoiceItem(id); err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Invoice item deleted successfully",
	})
}
