// internal/domain/party/service.go
package party

import (
	"errors"
	"fmt"

	"github.com/your-org/inventory-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles vendor and customer registry logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new party service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateVendorRequest represents vendor creation data
type CreateVendorRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Zip         string `json:"zip"`
	Phone       string `json:"phone"`
	Email       string `json:"email" binding:"required,email"`
	Mobile      string `json:"mobile"`
	Website     string `json:"website"`
}

// UpdateVendorRequest represents partial vendor update data
type UpdateVendorRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	Zip         *string `json:"zip"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Mobile      *string `json:"mobile"`
	Website     *string `json:"website"`
}

// CreateCustomerRequest represents customer creation data
type CreateCustomerRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	Address      string `json:"address"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zip          string `json:"zip"`
	Country      string `json:"country"`
	GSTIN        string `json:"gstin"`
	Phone        string `json:"phone"`
	Email        string `json:"email" binding:"required,email"`
	Mobile       string `json:"mobile"`
	Website      string `json:"website"`
	PaymentTerms string `json:"payment_terms"`
	CreditLimit  int64  `json:"credit_limit" binding:"min=0"`
	CreditDays   int    `json:"credit_days" binding:"min=0"`
}

// UpdateCustomerRequest represents partial customer update data
type UpdateCustomerRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Address      *string `json:"address"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	Zip          *string `json:"zip"`
	Country      *string `json:"country"`
	GSTIN        *string `json:"gstin"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Mobile       *string `json:"mobile"`
	Website      *string `json:"website"`
	PaymentTerms *string `json:"payment_terms"`
	CreditLimit  *int64  `json:"credit_limit" binding:"omitempty,min=0"`
	CreditDays   *int    `json:"credit_days" binding:"omitempty,min=0"`
}

// VENDOR OPERATIONS

// CreateVendor creates a new vendor
func (s *Service) CreateVendor(req *CreateVendorRequest) (*Vendor, error) {
	vendor := &Vendor{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Zip:         req.Zip,
		Phone:       req.Phone,
		Email:       req.Email,
		Mobile:      req.Mobile,
		Website:     req.Website,
	}

	if err := s.db.Create(vendor).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("vendor with email '%s' already exists: %w", req.Email, err)
		}
		return nil, fmt.Errorf("failed to create vendor: %w", err)
	}

	return vendor, nil
}

// GetVendors retrieves all vendors
func (s *Service) GetVendors() ([]Vendor, error) {
	var vendors []Vendor
	if err := s.db.Order("name ASC").Find(&vendors).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve vendors: %w", err)
	}
	return vendors, nil
}

// GetVendor retrieves a single vendor by ID
func (s *Service) GetVendor(id uint) (*Vendor, error) {
	var vendor Vendor
	if err := s.db.First(&vendor, id).Error; err != nil {
		return nil, fmt.Errorf("vendor not found: %w", err)
	}
	return &vendor, nil
}

// UpdateVendor applies a partial update to a vendor
func (s *Service) UpdateVendor(id uint, req *UpdateVendorRequest) (*Vendor, error) {
	vendor, err := s.GetVendor(id)
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
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.State != nil {
		updates["state"] = *req.State
	}
	if req.Zip != nil {
		updates["zip"] = *req.Zip
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Mobile != nil {
		updates["mobile"] = *req.Mobile
	}
	if req.Website != nil {
		updates["website"] = *req.Website
	}

	if len(updates) > 0 {
		if err := s.db.Model(vendor).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, fmt.Errorf("vendor email already in use: %w", err)
			}
			return nil, fmt.Errorf("failed to update vendor: %w", err)
		}
	}

	return vendor, nil
}

// DeleteVendor soft-deletes a vendor
func (s *Service) DeleteVendor(id uint) error {
	result := s.db.Delete(&Vendor{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete vendor: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("vendor not found: %w", gorm.ErrRecordNotFound)
	}
	return nil
}

// CUSTOMER OPERATIONS

// CreateCustomer creates a new customer
func (s *Service) CreateCustomer(req *CreateCustomerRequest) (*Customer, error) {
	customer := &Customer{
		Name:         req.Name,
		Description:  req.Description,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		Zip:          req.Zip,
		Country:      req.Country,
		GSTIN:        req.GSTIN,
		Phone:        req.Phone,
		Email:        req.Email,
		Mobile:       req.Mobile,
		Website:      req.Website,
		PaymentTerms: req.PaymentTerms,
		CreditLimit:  req.CreditLimit,
		CreditDays:   req.CreditDays,
	}

	if err := s.db.Create(customer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("customer with email '%s' already exists: %w", req.Email, err)
		}
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	return customer, nil
}

// GetCustomers retrieves all customers
func (s *Service) GetCustomers() ([]Customer, error) {
	var customers []Customer
	if err := s.db.Order("name ASC").Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve customers: %w", err)
	}
	return customers, nil
}

// GetCustomer retrieves a single customer by ID
func (s *Service) GetCustomer(id uint) (*Customer, error) {
	var customer Customer
	if err := s.db.First(&customer, id).Error; err != nil {
		return nil, fmt.Errorf("customer not found: %w", err)
	}
	return &customer, nil
}

// UpdateCustomer applies a partial update to a customer
func (s *Service) UpdateCustomer(id uint, req *UpdateCustomerRequest) (*Customer, error) {
	customer, err := s.GetCustomer(id)
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
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.State != nil {
		updates["state"] = *req.State
	}
	if req.Zip != nil {
		updates["zip"] = *req.Zip
	}
	if req.Country != nil {
		updates["country"] = *req.Country
	}
	if req.GSTIN != nil {
		updates["gstin"] = *req.GSTIN
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Mobile != nil {
		updates["mobile"] = *req.Mobile
	}
	if req.Website != nil {
		updates["website"] = *req.Website
	}
	if req.PaymentTerms != nil {
		updates["payment_terms"] = *req.PaymentTerms
	}
	if req.CreditLimit != nil {
		updates["credit_limit"] = *req.CreditLimit
	}
	if req.CreditDays != nil {
		updates["credit_days"] = *req.CreditDays
	}

	if len(updates) > 0 {
		if err := s.db.Model(customer).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, fmt.Errorf("customer email already in use: %w", err)
			}
			return nil, fmt.Errorf("failed to update customer: %w", err)
		}
	}

	return customer, nil
}

// DeleteCustomer soft-deletes a customer
func (s *Service) DeleteCustomer(id uint) error {
	result := s.db.Delete(&Customer{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete customer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("customer not found: %w", gorm.ErrRecordNotFound)
	}
	return nil
}
