// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/inventory-backend/internal/config"
	"github.com/your-org/inventory-backend/internal/interfaces/http/handlers"
	"github.com/your-org/inventory-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// SetupRoutes wires every API route group onto the given router group
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	setupAuthRoutes(rg, db, cfg)
	setupCatalogRoutes(rg, db, cfg)
	setupPartyRoutes(rg, db, cfg)
	setupProcurementRoutes(rg, db, cfg)
	setupSalesRoutes(rg, db, cfg)
	setupStockRoutes(rg, db, cfg)
	setupBillingRoutes(rg, db, cfg)
}

// setupAuthRoutes sets up authentication related routes
func setupAuthRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, cfg)

	auth := rg.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)

		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/profile", authHandler.GetProfile)
		}
	}
}

// setupCatalogRoutes sets up product and material routes
func setupCatalogRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	catalogHandler := handlers.NewCatalogHandler(db, cfg)

	products := rg.Group("/products")
	products.Use(middleware.AuthMiddleware(cfg))
	{
		products.GET("", catalogHandler.GetProducts)
		products.POST("", catalogHandler.CreateProduct)
		products.GET("/:id", catalogHandler.GetProduct)
		products.PUT("/:id", catalogHandler.UpdateProduct)
		products.PATCH("/:id", catalogHandler.UpdateProduct)
		products.DELETE("/:id", catalogHandler.DeleteProduct)
	}

	materials := rg.Group("/materials")
	materials.Use(middleware.AuthMiddleware(cfg))
	{
		materials.GET("", catalogHandler.GetMaterials)
		materials.POST("", catalogHandler.CreateMaterial)
		materials.GET("/:id", catalogHandler.GetMaterial)
		materials.PUT("/:id", catalogHandler.UpdateMaterial)
		materials.PATCH("/:id", catalogHandler.UpdateMaterial)
		materials.DELETE("/:id", catalogHandler.DeleteMaterial)
	}
}

// setupPartyRoutes sets up vendor and customer routes
func setupPartyRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	partyHandler := handlers.NewPartyHandler(db, cfg)

	vendors := rg.Group("/vendors")
	vendors.Use(middleware.AuthMiddleware(cfg))
	{
		vendors.GET("", partyHandler.GetVendors)
		vendors.POST("", partyHandler.CreateVendor)
		vendors.GET("/:id", partyHandler.GetVendor)
		vendors.PUT("/:id", partyHandler.UpdateVendor)
		vendors.PATCH("/:id", partyHandler.UpdateVendor)
		vendors.DELETE("/:id", partyHandler.DeleteVendor)
	}

	customers := rg.Group("/customers")
	customers.Use(middleware.AuthMiddleware(cfg))
	{
		customers.GET("", partyHandler.GetCustomers)
		customers.POST("", partyHandler.CreateCustomer)
		customers.GET("/:id", partyHandler.GetCustomer)
		customers.PUT("/:id", partyHandler.UpdateCustomer)
		customers.PATCH("/:id", partyHandler.UpdateCustomer)
		customers.DELETE("/:id", partyHandler.DeleteCustomer)
	}
}

// setupProcurementRoutes sets up purchase order routes
func setupProcurementRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	procurementHandler := handlers.NewProcurementHandler(db, cfg)

	purchaseOrders := rg.Group("/purchase-orders")
	purchaseOrders.Use(middleware.AuthMiddleware(cfg))
	{
		purchaseOrders.GET("", procurementHandler.GetPurchaseOrders)
		purchaseOrders.POST("", procurementHandler.CreatePurchaseOrder)
		purchaseOrders.GET("/:id", procurementHandler.GetPurchaseOrder)
		purchaseOrders.GET("/reference/:reference", procurementHandler.GetPurchaseOrderByReference)
		purchaseOrders.PUT("/:id", procurementHandler.UpdatePurchaseOrder)
		purchaseOrders.PATCH("/:id", procurementHandler.UpdatePurchaseOrder)
		purchaseOrders.DELETE("/:id", procurementHandler.DeletePurchaseOrder)
	}

	poItems := rg.Group("/po-items")
	poItems.Use(middleware.AuthMiddleware(cfg))
	{
		poItems.GET("", procurementHandler.GetPOItems)
		poItems.POST("", procurementHandler.CreatePOItem)
		poItems.GET("/:id", procurementHandler.GetPOItem)
		poItems.PUT("/:id", procurementHandler.UpdatePOItem)
		poItems.PATCH("/:id", procurementHandler.UpdatePOItem)
		poItems.DELETE("/:id", procurementHandler.DeletePOItem)
	}
}

// setupSalesRoutes sets up sales order routes
func setupSalesRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	salesHandler := handlers.NewSalesHandler(db, cfg)

	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(cfg))
	{
		orders.GET("", salesHandler.GetOrders)
		orders.POST("", salesHandler.CreateOrder)
		orders.GET("/:id", salesHandler.GetOrder)
		orders.GET("/number/:number", salesHandler.GetOrderByNumber)
		orders.PUT("/:id", salesHandler.UpdateOrder)
		orders.PATCH("/:id", salesHandler.UpdateOrder)
		orders.DELETE("/:id", salesHandler.DeleteOrder)
	}
}

// setupStockRoutes sets up stock ledger, inward and outward routes.
// Direct ledger adjustments and reconciliation are admin-only.
func setupStockRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	stockHandler := handlers.NewStockHandler(db, cfg)

	stocks := rg.Group("/stocks")
	stocks.Use(middleware.AuthMiddleware(cfg))
	{
		stocks.GET("", stockHandler.GetStocks)
		stocks.GET("/:id", stockHandler.GetStock)
		stocks.GET("/product/:productId", stockHandler.GetStockByProduct)

		admin := stocks.Group("")
		admin.Use(middleware.AdminMiddleware())
		{
			admin.POST("", stockHandler.CreateStock)
			admin.DELETE("/:id", stockHandler.DeleteStock)
			admin.POST("/product/:productId/reconcile", stockHandler.Reconcile)
		}
	}

	transactions := rg.Group("/stock-transactions")
	transactions.Use(middleware.AuthMiddleware(cfg))
	{
		transactions.GET("", stockHandler.GetTransactions)
		transactions.GET("/:id", stockHandler.GetTransaction)

		admin := transactions.Group("")
		admin.Use(middleware.AdminMiddleware())
		{
			admin.POST("", stockHandler.RecordTransaction)
		}
	}

	inwards := rg.Group("/inwards")
	inwards.Use(middleware.AuthMiddleware(cfg))
	{
		inwards.GET("", stockHandler.GetInwards)
		inwards.POST("", stockHandler.CreateInward)
		inwards.GET("/:id", stockHandler.GetInward)
		inwards.PUT("/:id", stockHandler.UpdateInward)
		inwards.PATCH("/:id", stockHandler.UpdateInward)
		inwards.PUT("/:id/status", stockHandler.UpdateInwardStatus)
		inwards.DELETE("/:id", stockHandler.DeleteInward)
	}

	outwards := rg.Group("/outwards")
	outwards.Use(middleware.AuthMiddleware(cfg))
	{
		outwards.GET("", stockHandler.GetOutwards)
		outwards.POST("", stockHandler.CreateOutward)
		outwards.GET("/:id", stockHandler.GetOutward)
		outwards.PUT("/:id", stockHandler.UpdateOutward)
		outwards.PATCH("/:id", stockHandler.UpdateOutward)
		outwards.PUT("/:id/status", stockHandler.UpdateOutwardStatus)
		outwards.DELETE("/:id", stockHandler.DeleteOutward)
	}
}

// setupBillingRoutes sets up invoice routes
func setupBillingRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	billingHandler := handlers.NewBillingHandler(db, cfg)

	invoices := rg.Group("/invoices")
	invoices.Use(middleware.AuthMiddleware(cfg))
	{
		invoices.GET("", billingHandler.GetInvoices)
		invoices.POST("", billingHandler.CreateInvoice)
		invoices.GET("/:id", billingHandler.GetInvoice)
		invoices.GET("/:id/pdf", billingHandler.GenerateInvoicePDF)
		invoices.PUT("/:id", billingHandler.UpdateInvoice)
		invoices.PATCH("/:id", billingHandler.UpdateInvoice)
		invoices.DELETE("/:id", billingHandler.DeleteInvoice)
	}

	invoiceItems := rg.Group("/invoice-items")
	invoiceItems.Use(middleware.AuthMiddleware(cfg))
	{
		invoiceItems.GET("", billingHandler.GetInvoiceItems)
		invoiceItems.POST("", billingHandler.CreateInvoiceItem)
		invoiceItems.GET("/:id", billingHandler.GetInvoiceItem)
		invoiceItems.PUT("/:id", billingHandler.UpdateInvoiceItem)
		invoiceItems.PATCH("/:id", billingHandler.UpdateInvoiceItem)
		invoiceItems.DELETE("/:id", billingHandler.DeleteInvoiceItem)
	}
}
