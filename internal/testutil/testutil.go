// internal/testutil/testutil.go
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/your-org/inventory-backend/internal/config"
	"github.com/your-org/inventory-backend/internal/domain/billing"
	"github.com/your-org/inventory-backend/internal/domain/catalog"
	"github.com/your-org/inventory-backend/internal/domain/party"
	"github.com/your-org/inventory-backend/internal/domain/procurement"
	"github.com/your-org/inventory-backend/internal/domain/sales"
	"github.com/your-org/inventory-backend/internal/domain/stock"
	"github.com/your-org/inventory-backend/internal/domain/user"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens an isolated in-memory SQLite database with all models
// migrated. Each call gets its own database; it is closed on test cleanup.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:test_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", time.Now().UnixNano())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&user.User{},
		&party.Vendor{},
		&party.Customer{},
		&catalog.Product{},
		&catalog.Material{},
		&procurement.PurchaseOrder{},
		&procurement.POItem{},
		&sales.OrderEntry{},
		&stock.Stock{},
		&stock.StockTransaction{},
		&stock.Inward{},
		&stock.Outward{},
		&billing.Invoice{},
		&billing.InvoiceItem{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test tables: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
	})

	return db
}

// TestConfig returns a configuration suitable for tests
func TestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "inventory-backend-test",
			Version:     "test",
			Environment: "test",
		},
		JWT: config.JWTConfig{
			Secret:             "test-jwt-secret-key",
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: 24 * time.Hour,
		},
		Security: config.SecurityConfig{
			BcryptCost:         4,
			RateLimitPerMinute: 1000,
		},
		Company: config.CompanyConfig{
			Name:  "Test Company",
			Email: "billing@test.example",
		},
		Logging: config.LoggingConfig{
			Level:  "error",
			Format: "text",
		},
	}
}

// SeedVendor creates a vendor row for tests
func SeedVendor(t *testing.T, db *gorm.DB, name, email string) *party.Vendor {
	t.Helper()
	vendor := &party.Vendor{
		Name:  name,
		Email: email,
	}
	if err := db.Create(vendor).Error; err != nil {
		t.Fatalf("Failed to seed vendor: %v", err)
	}
	return vendor
}

// SeedCustomer creates a customer row for tests
func SeedCustomer(t *testing.T, db *gorm.DB, name, email string) *party.Customer {
	t.Helper()
	customer := &party.Customer{
		Name:  name,
		Email: email,
	}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("Failed to seed customer: %v", err)
	}
	return customer
}

// SeedProduct creates a product row for tests; price is in cents
func SeedProduct(t *testing.T, db *gorm.DB, name, sku string, price int64) *catalog.Product {
	t.Helper()
	product := &catalog.Product{
		Name:  name,
		SKU:   sku,
		Price: price,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("Failed to seed product: %v", err)
	}
	return product
}

// SeedMaterial creates a material row for tests
func SeedMaterial(t *testing.T, db *gorm.DB, name, unit string) *catalog.Material {
	t.Helper()
	material := &catalog.Material{
		Name: name,
		Unit: unit,
	}
	if err := db.Create(material).Error; err != nil {
		t.Fatalf("Failed to seed material: %v", err)
	}
	return material
}
