// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/inventory-backend/internal/domain/billing"
	"github.com/your-org/inventory-backend/internal/domain/catalog"
	"github.com/your-org/inventory-backend/internal/domain/party"
	"github.com/your-org/inventory-backend/internal/domain/procurement"
	"github.com/your-org/inventory-backend/internal/domain/sales"
	"github.com/your-org/inventory-backend/internal/domain/stock"
	"github.com/your-org/inventory-backend/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Dependency order: referenced tables first
	models := []interface{}{
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
	}

	for _, model := range models {
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_email_active ON users(email, is_active)",

		// Catalog indexes
		"CREATE INDEX IF NOT EXISTS idx_products_name ON products(name)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",

		// Purchase order indexes
		"CREATE INDEX IF NOT EXISTS idx_purchase_orders_vendor ON purchase_orders(vendor_id)",
		"CREATE INDEX IF NOT EXISTS idx_purchase_orders_product ON purchase_orders(product_id)",
		"CREATE INDEX IF NOT EXISTS idx_purchase_orders_order_date ON purchase_orders(order_date DESC)",
		"CREATE INDEX IF NOT EXISTS idx_po_items_purchase_order ON po_items(purchase_order_id)",

		// Sales order indexes
		"CREATE INDEX IF NOT EXISTS idx_order_entries_customer ON order_entries(customer_id)",
		"CREATE INDEX IF NOT EXISTS idx_order_entries_product ON order_entries(product_id)",
		"CREATE INDEX IF NOT EXISTS idx_order_entries_status ON order_entries(status)",
		"CREATE INDEX IF NOT EXISTS idx_order_entries_order_date ON order_entries(order_date DESC)",

		// Stock ledger indexes
		"CREATE INDEX IF NOT EXISTS idx_stock_transactions_product_time ON stock_transactions(product_id, timestamp DESC)",
		"CREATE INDEX IF NOT EXISTS idx_stock_transactions_type ON stock_transactions(transaction_type)",
		"CREATE INDEX IF NOT EXISTS idx_inwards_purchase_order ON inwards(purchase_order_id)",
		"CREATE INDEX IF NOT EXISTS idx_outwards_order_entry ON outwards(order_entry_id)",

		// Billing indexes
		"CREATE INDEX IF NOT EXISTS idx_invoices_customer ON invoices(customer_id)",
		"CREATE INDEX IF NOT EXISTS idx_invoices_status ON invoices(status)",
		"CREATE INDEX IF NOT EXISTS idx_invoices_date ON invoices(date DESC)",
		"CREATE INDEX IF NOT EXISTS idx_invoice_items_invoice ON invoice_items(invoice_id)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
			failCount++
		} else {
			successCount++
		}
	}

	log.Printf("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// SeedInitialData inserts initial data into the database
func (m *Migration) SeedInitialData() error {
	log.Println("🌱 Seeding initial data...")

	if err := m.seedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

func (m *Migration) seedAdminUser() error {
	var existing user.User
	result := m.db.Where("email = ?", "admin@example.com").First(&existing)
	if result.Error == nil {
		log.Printf("⏭️ Admin user already exists with ID: %d", existing.ID)
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("admin123"), 10)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	adminUser := user.User{
		Email:     "admin@example.com",
		Password:  string(hashedPassword),
		FirstName: "Admin",
		LastName:  "User",
		IsActive:  true,
		IsAdmin:   true,
	}

	if err := m.db.Create(&adminUser).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Println("✅ Created admin user: admin@example.com (password: admin123)")
	return nil
}

// DropAllTables drops all tables (use with extreme caution)
func (m *Migration) DropAllTables() error {
	log.Println("⚠️ WARNING: Dropping all database tables...")

	// Reverse dependency order
	tables := []string{
		"invoice_items",
		"invoices",
		"outwards",
		"inwards",
		"stock_transactions",
		"stock",
		"order_entries",
		"po_items",
		"purchase_orders",
		"materials",
		"products",
		"customers",
		"vendors",
		"users",
	}

	for _, table := range tables {
		if err := m.db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)).Error; err != nil {
			log.Printf("⚠️ Failed to drop table %s: %v", table, err)
		} else {
			log.Printf("🗑️ Dropped table: %s", table)
		}
	}

	return nil
}

// GetTableInfo logs row counts for all public tables
func (m *Migration) GetTableInfo() error {
	var tables []string

	if err := m.db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public' ORDER BY tablename").Scan(&tables).Error; err != nil {
		return err
	}

	log.Println("📊 Database Tables Information:")
	for _, table := range tables {
		var count int64
		m.db.Table(table).Count(&count)
		log.Printf("%-25s | %d records", table, count)
	}

	return nil
}
