// internal/interfaces/http/handlers/catalog.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/inventory-backend/internal/config"
	"github.com/your-org/inventory-backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// CatalogHandler handles product and material endpoints
type CatalogHandler struct {
	catalogService *catalog.Service
	config         *config.Config
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(db *gorm.DB, cfg *config.Config) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalog.NewService(db, cfg),
		config:         cfg,
	}
}

// PRODUCTS

// GetProducts handles GET /products
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	search := c.Query("search")

	products, err := h.catalogService.GetProducts(search)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve products",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data":    products,
	})
}

// GetProduct handles GET /products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.catalogService.GetProduct(id)
	if err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product retrieved successfully",
		"data":    product,
	})
}

// CreateProduct handles POST /products
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req catalog.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	product, err := h.catalogService.CreateProduct(&req)
	if err != nil {
		respondMutationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"data":    product,
	})
}

// UpdateProduct handles PUT /products/:id
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req catalog.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	product, err := h.catalogService.UpdateProduct(id, &req)
	if err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"data":    product,
	})
}

// DeleteProduct handles DELETE /products/:id
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteProduct(id); err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted successfully",
	})
}

// MATERIALS

// GetMaterials handles GET /materials
func (h *CatalogHandler) GetMaterials(c *gin.Context) {
	materials, err := h.catalogService.GetMaterials()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve materials",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Materials retrieved successfully",
		"data":    materials,
	})
}

// GetMaterial handles GET /materials/:id
func (h *CatalogHandler) GetMaterial(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	material, err := h.catalogService.GetMaterial(id)
	if err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Material retrieved successfully",
		"data":    material,
	})
}

// CreateMaterial handles POST /materials
func (h *CatalogHandler) CreateMaterial(c *gin.Context) {
	var req catalog.CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	material, err := h.catalogService.CreateMaterial(&req)
	if err != nil {
		respondMutationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Material created successfully",
		"data":    material,
	})
}

// UpdateMaterial handles PUT /materials/:id
func (h *CatalogHandler) UpdateMaterial(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req catalog.UpdateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	material, err := h.catalogService.UpdateMaterial(id, &req)
	if err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Material updated successfully",
		"data":    material,
	})
}

// DeleteMaterial handles DELETE /materials/:id
func (h *CatalogHandler) DeleteMaterial(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteMaterial(id); err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Material deleted successfully",
	})
}
