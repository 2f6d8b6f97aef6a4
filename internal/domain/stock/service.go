// internal/domain/stock/service.go
package stock

import (
	"errors"
	"fmt"

	"github.com/your-org/inventory-backend/internal/config"
	"github.com/your-org/inventory-backend/internal/domain/procurement"
	"github.com/your-org/inventory-backend/internal/domain/sales"
	"gorm.io/gorm"
)

// Service handles stock ledger business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new stock service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// TransactionRequest represents stock transaction data
type TransactionRequest struct {
	ProductID       uint            `json:"product_id" binding:"required"`
	TransactionType TransactionType `json:"transaction_type" binding:"required,oneof=IN OUT ADJ"`
	Quantity        int             `json:"quantity" binding:"required"`
	SourceReference string          `json:"source_reference,omitempty"`
	Remarks         string          `json:"remarks,omitempty"`
}

// CreateInwardRequest represents inward receipt creation data
type CreateInwardRequest struct {
	PurchaseOrderID uint   `json:"purchase_order_id" binding:"required"`
	ReceivedBy      string `json:"received_by" binding:"required"`
	Remarks         string `json:"remarks"`
}

// CreateOutwardRequest represents outward shipment creation data
type CreateOutwardRequest struct {
	OrderEntryID uint   `json:"order_entry_id" binding:"required"`
	ShippedBy    string `json:"shipped_by" binding:"required"`
	Remarks      string `json:"remarks"`
}

// UpdateInwardRequest represents partial inward update data. Status changes
// go through UpdateInwardStatus only.
type UpdateInwardRequest struct {
	ReceivedBy *string `json:"received_by"`
	Remarks    *string `json:"remarks"`
}

// UpdateOutwardRequest represents partial outward update data. Status changes
// go through UpdateOutwardStatus only.
type UpdateOutwardRequest struct {
	ShippedBy *string `json:"shipped_by"`
	Remarks   *string `json:"remarks"`
}

// ReconciliationResult reports the outcome of a ledger reconciliation
type ReconciliationResult struct {
	ProductID      uint `json:"product_id"`
	QuantityOnHand int  `json:"quantity_on_hand"`
	LedgerSum      int  `json:"ledger_sum"`
	Consistent     bool `json:"consistent"`
	Repaired       bool `json:"repaired"`
}

// STOCK OPERATIONS

// GetStocks retrieves all stock records
func (s *Service) GetStocks() ([]Stock, error) {
	var stocks []Stock
	if err := s.db.Preload("Product").Find(&stocks).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve stock: %w", err)
	}
	return stocks, nil
}

// GetStock retrieves a single stock record by ID
func (s *Service) GetStock(id uint) (*Stock, error) {
	var stock Stock
	if err := s.db.Preload("Product").First(&stock, id).Error; err != nil {
		return nil, fmt.Errorf("stock record not found: %w", err)
	}
	return &stock, nil
}

// GetStockByProduct retrieves the stock record for a product
func (s *Service) GetStockByProduct(productID uint) (*Stock, error) {
	var stock Stock
	err := s.db.Preload("Product").
		Where("product_id = ?", productID).
		First(&stock).Error
	if err != nil {
		return nil, fmt.Errorf("stock record not found: %w", err)
	}
	return &stock, nil
}

// CreateStock creates a stock record for a product with an opening quantity.
// The opening quantity is written to the ledger as an ADJ transaction so the
// materialized view and the transaction history stay consistent from day one.
func (s *Service) CreateStock(productID uint, openingQuantity int) (*Stock, error) {
	if openingQuantity < 0 {
		return nil, fmt.Errorf("opening quantity cannot be negative")
	}

	stock := &Stock{
		ProductID:      productID,
		QuantityOnHand: openingQuantity,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(stock).Error; err != nil {
			return fmt.Errorf("failed to create stock record: %w", err)
		}

		if openingQuantity != 0 {
			txn := &StockTransaction{
				ProductID:       productID,
				TransactionType: TransactionTypeAdjustment,
				Quantity:        openingQuantity,
				SourceReference: "opening-balance",
			}
			if err := tx.Create(txn).Error; err != nil {
				return fmt.Errorf("failed to record opening balance: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetStock(stock.ID)
}

// DeleteStock removes a stock record
func (s *Service) DeleteStock(id uint) error {
	result := s.db.Delete(&Stock{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete stock record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("stock record not found: %w", gorm.ErrRecordNotFound)
	}
	return nil
}

// TRANSACTION OPERATIONS

// RecordTransaction appends a transaction and updates quantity-on-hand in a
// single database transaction. The update is an atomic SQL increment; a
// movement that would drive quantity-on-hand negative is rejected.
func (s *Service) RecordTransaction(req *TransactionRequest) (*StockTransaction, error) {
	signed := SignedQuantity(req.TransactionType, req.Quantity)

	txn := &StockTransaction{
		ProductID:       req.ProductID,
		TransactionType: req.TransactionType,
		Quantity:        signed,
		SourceReference: req.SourceReference,
		Remarks:         req.Remarks,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return s.applyTransaction(tx, txn, signed)
	})
	if err != nil {
		return nil, err
	}

	return txn, nil
}

// applyTransaction performs the ledger append and the atomic quantity update
// inside the caller's transaction.
func (s *Service) applyTransaction(tx *gorm.DB, txn *StockTransaction, signed int) error {
	var stock Stock
	err := tx.Where("product_id = ?", txn.ProductID).First(&stock).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		stock = Stock{ProductID: txn.ProductID, QuantityOnHand: 0}
		if err := tx.Create(&stock).Error; err != nil {
			return fmt.Errorf("failed to create stock record: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("failed to load stock record: %w", err)
	}

	result := tx.Model(&Stock{}).
		Where("product_id = ? AND quantity_on_hand + ? >= 0", txn.ProductID, signed).
		UpdateColumn("quantity_on_hand", gorm.Expr("quantity_on_hand + ?", signed))
	if result.Error != nil {
		return fmt.Errorf("failed to update quantity on hand: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("insufficient stock for product %d: movement of %d rejected", txn.ProductID, signed)
	}

	if err := tx.Create(txn).Error; err != nil {
		return fmt.Errorf("failed to record stock transaction: %w", err)
	}
	return nil
}

// GetTransactions retrieves the transaction history, optionally per product
func (s *Service) GetTransactions(productID uint) ([]StockTransaction, error) {
	var transactions []StockTransaction

	query := s.db.Model(&StockTransaction{}).Order("timestamp DESC")
	if productID > 0 {
		query = query.Where("product_id = ?", productID)
	}

	if err := query.Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve stock transactions: %w", err)
	}
	return transactions, nil
}

// GetTransaction retrieves a single transaction by ID
func (s *Service) GetTransaction(id uint) (*StockTransaction, error) {
	var txn StockTransaction
	if err := s.db.First(&txn, id).Error; err != nil {
		return nil, fmt.Errorf("stock transaction not found: %w", err)
	}
	return &txn, nil
}

// Reconcile recomputes the signed sum of a product's transactions and
// compares it to the materialized quantity-on-hand. When repair is true a
// drifted quantity is overwritten with the ledger sum.
func (s *Service) Reconcile(productID uint, repair bool) (*ReconciliationResult, error) {
	result := &ReconciliationResult{ProductID: productID}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var stock Stock
		if err := tx.Where("product_id = ?", productID).First(&stock).Error; err != nil {
			return fmt.Errorf("stock record not found: %w", err)
		}

		var sum struct{ Total int }
		err := tx.Model(&StockTransaction{}).
			Select("COALESCE(SUM(quantity), 0) AS total").
			Where("product_id = ?", productID).
			Scan(&sum).Error
		if err != nil {
			return fmt.Errorf("failed to sum stock transactions: %w", err)
		}

		result.QuantityOnHand = stock.QuantityOnHand
		result.LedgerSum = sum.Total
		result.Consistent = stock.QuantityOnHand == sum.Total

		if !result.Consistent && repair {
			err := tx.Model(&Stock{}).
				Where("product_id = ?", productID).
				UpdateColumn("quantity_on_hand", sum.Total).Error
			if err != nil {
				return fmt.Errorf("failed to repair quantity on hand: %w", err)
			}
			result.QuantityOnHand = sum.Total
			result.Repaired = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// INWARD OPERATIONS

// CreateInward records a pending goods receipt against a purchase order
func (s *Service) CreateInward(req *CreateInwardRequest) (*Inward, error) {
	var po procurement.PurchaseOrder
	if err := s.db.First(&po, req.PurchaseOrderID).Error; err != nil {
		return nil, fmt.Errorf("purchase order not found: %w", err)
	}

	inward := &Inward{
		PurchaseOrderID: req.PurchaseOrderID,
		ReceivedBy:      req.ReceivedBy,
		Remarks:         req.Remarks,
		Status:          InwardStatusPending,
	}

	if err := s.db.Create(inward).Error; err != nil {
		return nil, fmt.Errorf("failed to create inward: %w", err)
	}
	return inward, nil
}

// GetInwards retrieves all inward receipts
func (s *Service) GetInwards() ([]Inward, error) {
	var inwards []Inward
	if err := s.db.Order("received_date DESC").Find(&inwards).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve inwards: %w", err)
	}
	return inwards, nil
}

// GetInward retrieves a single inward receipt by ID
func (s *Service) GetInward(id uint) (*Inward, error) {
	var inward Inward
	if err := s.db.First(&inward, id).Error; err != nil {
		return nil, fmt.Errorf("inward not found: %w", err)
	}
	return &inward, nil
}

// UpdateInward applies a partial update to an inward receipt's descriptive
// fields. The status field is not touched here.
func (s *Service) UpdateInward(id uint, req *UpdateInwardRequest) (*Inward, error) {
	inward, err := s.GetInward(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.ReceivedBy != nil {
		updates["received_by"] = *req.ReceivedBy
	}
	if req.Remarks != nil {
		updates["remarks"] = *req.Remarks
	}

	if len(updates) > 0 {
		if err := s.db.Model(inward).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update inward: %w", err)
		}
	}

	return inward, nil
}

// UpdateInwardStatus transitions an inward receipt. Marking it received
// posts an IN transaction for the purchase order's product and quantity.
func (s *Service) UpdateInwardStatus(id uint, status InwardStatus) (*Inward, error) {
	inward, err := s.GetInward(id)
	if err != nil {
		return nil, err
	}

	if !inward.CanTransitionTo(status) {
		return nil, fmt.Errorf("invalid inward status transition from %s to %s", inward.Status, status)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if status == InwardStatusReceived {
			var po procurement.PurchaseOrder
			if err := tx.First(&po, inward.PurchaseOrderID).Error; err != nil {
				return fmt.Errorf("purchase order not found: %w", err)
			}

			txn := &StockTransaction{
				ProductID:       po.ProductID,
				TransactionType: TransactionTypeIn,
				Quantity:        po.Quantity,
				SourceReference: po.ReferenceNumber,
				Remarks:         fmt.Sprintf("Inward #%d received by %s", inward.ID, inward.ReceivedBy),
			}
			if err := s.applyTransaction(tx, txn, po.Quantity); err != nil {
				return err
			}
		}

		if err := tx.Model(inward).Update("status", status).Error; err != nil {
			return fmt.Errorf("failed to update inward status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inward, nil
}

// DeleteInward removes an inward receipt
func (s *Service) DeleteInward(id uint) error {
	result := s.db.Delete(&Inward{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete inward: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("inward not found: %w", gorm.ErrRecordNotFound)
	}
	return nil
}

// OUTWARD OPERATIONS

// CreateOutward records a pending shipment against a sales order
func (s *Service) CreateOutward(req *CreateOutwardRequest) (*Outward, error) {
	var order sales.OrderEntry
	if err := s.db.First(&order, req.OrderEntryID).Error; err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}

	outward := &Outward{
		OrderEntryID: req.OrderEntryID,
		ShippedBy:    req.ShippedBy,
		Remarks:      req.Remarks,
		Status:       OutwardStatusPending,
	}

	if err := s.db.Create(outward).Error; err != nil {
		return nil, fmt.Errorf("failed to create outward: %w", err)
	}
	return outward, nil
}

// GetOutwards retrieves all outward shipments
func (s *Service) GetOutwards() ([]Outward, error) {
	var outwards []Outward
	if err := s.db.Order("shipped_date DESC").Find(&outwards).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve outwards: %w", err)
	}
	return outwards, nil
}

// GetOutward retrieves a single outward shipment by ID
func (s *Service) GetOutward(id uint) (*Outward, error) {
	var outward Outward
	if err := s.db.First(&outward, id).Error; err != nil {
		return nil, fmt.Errorf("outward not found: %w", err)
	}
	return &outward, nil
}

// UpdateOutward applies a partial update to an outward shipment's descriptive
// fields. The status field is not touched here.
func (s *Service) UpdateOutward(id uint, req *UpdateOutwardRequest) (*Outward, error) {
	outward, err := s.GetOutward(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.ShippedBy != nil {
		updates["shipped_by"] = *req.ShippedBy
	}
	if req.Remarks != nil {
		updates["remarks"] = *req.Remarks
	}

	if len(updates) > 0 {
		if err := s.db.Model(outward).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update outward: %w", err)
		}
	}

	return outward, nil
}

// UpdateOutwardStatus transitions an outward shipment. Marking it shipped
// posts an OUT transaction for the order's product and quantity; a shipment
// that would drive quantity-on-hand negative is rejected.
func (s *Service) UpdateOutwardStatus(id uint, status OutwardStatus) (*Outward, error) {
	outward, err := s.GetOutward(id)
	if err != nil {
		return nil, err
	}

	if !outward.CanTransitionTo(status) {
		return nil, fmt.Errorf("invalid outward status transition from %s to %s", outward.Status, status)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if status == OutwardStatusShipped {
			var order sales.OrderEntry
			if err := tx.First(&order, outward.OrderEntryID).Error; err != nil {
				return fmt.Errorf("order not found: %w", err)
			}

			txn := &StockTransaction{
				ProductID:       order.ProductID,
				TransactionType: TransactionTypeOut,
				Quantity:        -order.Quantity,
				SourceReference: order.OrderNumber,
				Remarks:         fmt.Sprintf("Outward #%d shipped by %s", outward.ID, outward.ShippedBy),
			}
			if err := s.applyTransaction(tx, txn, -order.Quantity); err != nil {
				return err
			}
		}

		if err := tx.Model(outward).Update("status", status).Error; err != nil {
			return fmt.Errorf("failed to update outward status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outward, nil
}

// DeleteOutward removes an outward shipment
func (s *Service) DeleteOutward(id uint) error {
	result := s.db.Delete(&Outward{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete outward: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("outward not found: %w", gorm.ErrRecordNotFound)
	}
	return nil
}
