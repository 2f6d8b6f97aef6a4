// internal/interfaces/http/handlers/party.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/inventory-backend/internal/config"
	"github.com/your-org/inventory-backend/internal/domain/party"
	"gorm.io/gorm"
)

// PartyHandler handles vendor and customer endpoints
type PartyHandler struct {
	partyService *party.Service
	config       *config.Config
}

// NewPartyHandler creates a new party handler
func NewPartyHandler(db *gorm.DB, cfg *config.Config) *PartyHandler {
	return &PartyHandler{
		partyService: party.NewService(db, cfg),
		config:       cfg,
	}
}

// VENDORS

// GetVendors handles GET /vendors
func (h *PartyHandler) GetVendors(c *gin.Context) {
	vendors, err := h.partyService.GetVendors()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve vendors",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Vendors retrieved successfully",
		"data":    vendors,
	})
}

// GetVendor handles GET /vendors/:id
func (h *PartyHandler) GetVendor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	vendor, err := h.partyService.GetVendor(id)
	if err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Vendor retrieved successfully",
		"data":    vendor,
	})
}

// CreateVendor handles POST /vendors
func (h *PartyHandler) CreateVendor(c *gin.Context) {
	var req party.CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	vendor, err := h.partyService.CreateVendor(&req)
	if err != nil {
		respondMutationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Vendor created successfully",
		"data":    vendor,
	})
}

// UpdateVendor handles PUT /vendors/:id
func (h *PartyHandler) UpdateVendor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req party.UpdateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	vendor, err := h.partyService.UpdateVendor(id, &req)
	if err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Vendor updated successfully",
		"data":    vendor,
	})
}

// DeleteVendor handles DELETE /vendors/:id
func (h *PartyHandler) DeleteVendor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.partyService.DeleteVendor(id); err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Vendor deleted successfully",
	})
}

// CUSTOMERS

// GetCustomers handles GET /customers
func (h *PartyHandler) GetCustomers(c *gin.Context) {
	customers, err := h.partyService.GetCustomers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve customers",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Customers retrieved successfully",
		"data":    customers,
	})
}

// GetCustomer handles GET /customers/:id
func (h *PartyHandler) GetCustomer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	customer, err := h.partyService.GetCustomer(id)
	if err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Customer retrieved successfully",
		"data":    customer,
	})
}

// CreateCustomer handles POST /customers
func (h *PartyHandler) CreateCustomer(c *gin.Context) {
	var req party.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	customer, err := h.partyService.CreateCustomer(&req)
	if err != nil {
		respondMutationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Customer created successfully",
		"data":    customer,
	})
}

// UpdateCustomer handles PUT /customers/:id
func (h *PartyHandler) UpdateCustomer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req party.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	customer, err := h.partyService.UpdateCustomer(id, &req)
	if err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Customer updated successfully",
		"data":    customer,
	})
}

// DeleteCustomer handles DELETE /customers/:id
func (h *PartyHandler) DeleteCustomer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.partyService.DeleteCustomer(id); err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Customer deleted successfully",
	})
}
