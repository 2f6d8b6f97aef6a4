// internal/domain/catalog/service.go
package catalog

import (
	"fmt"

	"github.com/your-org/inventory-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles catalog business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new catalog service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateProductRequest represents product creation data
type CreateProductRequest struct {
	Name        string `json:"name" binding:"required"`
	SKU         string `json:"sku" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"min=0"` // In cents
	Vendor      string `json:"vendor"`
}

// UpdateProductRequest represents partial product update data
type UpdateProductRequest struct {
	Name        *string `json:"name"`
	SKU         *string `json:"sku"`
	Description *string `json:"description"`
	Price       *int64  `json:"price" binding:"omitempty,min=0"`
	Vendor      *string `json:"vendor"`
}

// CreateMaterialRequest represents material creation data
type CreateMaterialRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Unit        string `json:"unit" binding:"required"`
}

// UpdateMaterialRequest represents partial material update data
type UpdateMaterialRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Unit        *string `json:"unit"`
}

// PRODUCT OPERATIONS

// CreateProduct creates a new catalog product
func (s *Service) CreateProduct(req *CreateProductRequest) (*Product, error) {
	product := &Product{
		Name:        req.Name,
		SKU:         req.SKU,
		Description: req.Description,
		Price:       req.Price,
		Vendor:      req.Vendor,
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// GetProducts retrieves all products, optionally filtered by a search term
func (s *Service) GetProducts(search string) ([]Product, error) {
	var products []Product

	query := s.db.Model(&Product{}).Order("created_at DESC")
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(sku) LIKE LOWER(?)", like, like)
	}

	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}

	return products, nil
}

// GetProduct retrieves a single product by ID
func (s *Service) GetProduct(id uint) (*Product, error) {
	var product Product
	if err := s.db.First(&product, id).Error; err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}
	return &product, nil
}

// GetProductBySKU retrieves a single product by SKU
func (s *Service) GetProductBySKU(sku string) (*Product, error) {
	var product Product
	if err := s.db.Where("sku = ?", sku).First(&product).Error; err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}
	return &product, nil
}

// UpdateProduct applies a partial update to a product
func (s *Service) UpdateProduct(id uint, req *UpdateProductRequest) (*Product, error) {
	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.SKU != nil {
		updates["sku"] = *req.SKU
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Vendor != nil {
		updates["vendor"] = *req.Vendor
	}

	if len(updates) > 0 {
		if err := s.db.Model(product).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}

	return product, nil
}

// DeleteProduct soft-deletes a product
func (s *Service) DeleteProduct(id uint) error {
	result := s.db.Delete(&Product{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("product not found: %w", gorm.ErrRecordNotFound)
	}
	return nil
}

// MATERIAL OPERATIONS

// CreateMaterial creates a new material
func (s *Service) CreateMaterial(req *CreateMaterialRequest) (*Material, error) {
	material := &Material{
		Name:        req.Name,
		Description: req.Description,
		Unit:        req.Unit,
	}

	if err := s.db.Create(material).Error; err != nil {
		return nil, fmt.Errorf("failed to create material: %w", err)
	}

	return material, nil
}

// GetMaterials retrieves all materials
func (s *Service) GetMaterials() ([]Material, error) {
	var materials []Material
	if err := s.db.Order("name ASC").Find(&materials).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve materials: %w", err)
	}
	return materials, nil
}

// GetMaterial retrieves a single material by ID
func (s *Service) GetMaterial(id uint) (*Material, error) {
	var material Material
	if err := s.db.First(&material, id).Error; err != nil {
		return nil, fmt.Errorf("material not found: %w", err)
	}
	return &material, nil
}

// UpdateMaterial applies a partial update to a material
func (s *Service) UpdateMaterial(id uint, req *UpdateMaterialRequest) (*Material, error) {
	material, err := s.GetMaterial(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Unit != nil {
		updates["unit"] = *req.Unit
	}

	if len(updates) > 0 {
		if err := s.db.Model(material).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update material: %w", err)
		}
	}

	return material, nil
}

// DeleteMaterial soft-deletes a material
func (s *Service) DeleteMaterial(id uint) error {
	result := s.db.Delete(&Material{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete material: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("material not found: %w", gorm.ErrRecordNotFound)
	}
	return nil
}
