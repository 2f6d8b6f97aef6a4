package stock_test

import (
	"strings"
	"testing"

	"gorm.io/gorm"

	"github.com/your-org/inventory-backend/internal/domain/procurement"
	"github.com/your-org/inventory-backend/internal/domain/sales"
	"github.com/your-org/inventory-backend/internal/domain/stock"
	"github.com/your-org/inventory-backend/internal/testutil"
)

func seedPurchaseOrder(t *testing.T, db *gorm.DB, quantity int) *procurement.PurchaseOrder {
	t.Helper()

	vendor := testutil.SeedVendor(t, db, "Acme Supplies", "acme@example.com")
	product := testutil.SeedProduct(t, db, "Widget", "WID-001", 1000)

	svc := procurement.NewService(db, testutil.TestConfig())
	po, err := svc.CreatePurchaseOrder(&procurement.CreatePurchaseOrderRequest{
		VendorID:  vendor.ID,
		ProductID: product.ID,
		Quantity:  quantity,
	})
	if err != nil {
		t.Fatalf("seed purchase order: %v", err)
	}
	return po
}

func seedOrderEntry(t *testing.T, db *gorm.DB, productID uint, quantity int) *sales.OrderEntry {
	t.Helper()

	customer := testutil.SeedCustomer(t, db, "Globex Corp", "orders@globex.com")

	svc := sales.NewService(db, testutil.TestConfig())
	order, err := svc.CreateOrder(&sales.CreateOrderRequest{
		CustomerID: customer.ID,
		ProductID:  productID,
		Quantity:   quantity,
	})
	if err != nil {
		t.Fatalf("seed order entry: %v", err)
	}
	return order
}

func TestCreateStockWithOpeningQuantity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := stock.NewService(db, testutil.TestConfig())

	product := testutil.SeedProduct(t, db, "Widget", "WID-001", 1000)

	st, err := svc.CreateStock(product.ID, 50)
	if err != nil {
		t.Fatalf("CreateStock: %v", err)
	}
	if st.QuantityOnHand != 50 {
		t.Errorf("expected quantity on hand 50, got %d", st.QuantityOnHand)
	}

	// The opening balance must be visible in the ledger as an ADJ transaction.
	txns, err := svc.GetTransactions(product.ID)
	if err != nil {
		t.Fatalf("GetTransactions: %v", err)
	}
	if len(txns) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txns))
	}
	if txns[0].TransactionType != stock.TransactionTypeAdjustment {
		t.Errorf("expected ADJ transaction, got %q", txns[0].TransactionType)
	}
	if txns[0].Quantity != 50 {
		t.Errorf("expected transaction quantity 50, got %d", txns[0].Quantity)
	}
	if txns[0].SourceReference != "opening-balance" {
		t.Errorf("unexpected source reference: %q", txns[0].SourceReference)
	}
}

func TestCreateStockZeroOpeningQuantity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := stock.NewService(db, testutil.TestConfig())

	product := testutil.SeedProduct(t, db, "Widget", "WID-001", 1000)

	st, err := svc.CreateStock(product.ID, 0)
	if err != nil {
		t.Fatalf("CreateStock: %v", err)
	}
	if st.QuantityOnHand != 0 {
		t.Errorf("expected quantity on hand 0, got %d", st.QuantityOnHand)
	}

	// A zero opening balance writes no ledger entry.
	txns, err := svc.GetTransactions(product.ID)
	if err != nil {
		t.Fatalf("GetTransactions: %v", err)
	}
	if len(txns) != 0 {
		t.Errorf("expected no transactions, got %d", len(txns))
	}
}

func TestCreateStockNegativeOpeningQuantity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := stock.NewService(db, testutil.TestConfig())

	product := testutil.SeedProduct(t, db, "Widget", "WID-001", 1000)

	if _, err := svc.CreateStock(product.ID, -5); err == nil {
		t.Fatal("expected error for negative opening quantity")
	}
}

func TestRecordTransactionSignedMath(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := stock.NewService(db, testutil.TestConfig())

	product := testutil.SeedProduct(t, db, "Widget", "WID-001", 1000)
	if _, err := svc.CreateStock(product.ID, 10); err != nil {
		t.Fatalf("CreateStock: %v", err)
	}

	tests := []struct {
		name     string
		txType   stock.TransactionType
		quantity int
		want     int // expected quantity on hand afterwards
	}{
		{"in adds", stock.TransactionTypeIn, 5, 15},
		{"out subtracts", stock.TransactionTypeOut, 3, 12},
		{"out accepts signed input", stock.TransactionTypeOut, -2, 10},
		{"adj positive", stock.TransactionTypeAdjustment, 4, 14},
		{"adj negative", stock.TransactionTypeAdjustment, -6, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RecordTransaction(&stock.TransactionRequest{
				ProductID:       product.ID,
				TransactionType: tt.txType,
				Quantity:        tt.quantity,
			})
			if err != nil {
				t.Fatalf("RecordTransaction: %v", err)
			}

			st, err := svc.GetStockByProduct(product.ID)
			if err != nil {
				t.Fatalf("GetStockByProduct: %v", err)
			}
			if st.QuantityOnHand != tt.want {
				t.Errorf("expected quantity on hand %d, got %d", tt.want, st.QuantityOnHand)
			}
		})
	}
}

func TestRecordTransactionInsufficientStock(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := stock.NewService(db, testutil.TestConfig())

	product := testutil.SeedProduct(t, db, "Widget", "WID-001", 1000)
	if _, err := svc.CreateStock(product.ID, 5); err != nil {
		t.Fatalf("CreateStock: %v", err)
	}

	_, err := svc.RecordTransaction(&stock.TransactionRequest{
		ProductID:       product.ID,
		TransactionType: stock.TransactionTypeOut,
		Quantity:        6,
	})
	if err == nil {
		t.Fatal("expected insufficient stock error")
	}
	if !strings.Contains(err.Error(), "insufficient stock") {
		t.Errorf("unexpected error: %v", err)
	}

	// The rejected movement must leave both the view and the ledger untouched.
	st, err := svc.GetStockByProduct(product.ID)
	if err != nil {
		t.Fatalf("GetStockByProduct: %v", err)
	}
	if st.QuantityOnHand != 5 {
		t.Errorf("expected quantity on hand 5, got %d", st.QuantityOnHand)
	}
	txns, err := svc.GetTransactions(product.ID)
	if err != nil {
		t.Fatalf("GetTransactions: %v", err)
	}
	if len(txns) != 1 {
		t.Errorf("expected 1 transaction (opening balance), got %d", len(txns))
	}
}

func TestRecordTransactionCreatesStockRecord(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := stock.NewService(db, testutil.TestConfig())

	product := testutil.SeedProduct(t, db, "Widget", "WID-001", 1000)

	// No stock record yet; an IN movement must create one on the fly.
	_, err := svc.RecordTransaction(&stock.TransactionRequest{
		ProductID:       product.ID,
		TransactionType: stock.TransactionTypeIn,
		Quantity:        7,
	})
	if err != nil {
		t.Fatalf("RecordTransaction: %v", err)
	}

	st, err := svc.GetStockByProduct(product.ID)
	if err != nil {
		t.Fatalf("GetStockByProduct: %v", err)
	}
	if st.QuantityOnHand != 7 {
		t.Errorf("expected quantity on hand 7, got %d", st.QuantityOnHand)
	}
}

func TestReconcile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := stock.NewService(db, testutil.TestConfig())

	product := testutil.SeedProduct(t, db, "Widget", "WID-001", 1000)
	if _, err := svc.CreateStock(product.ID, 20); err != nil {
		t.Fatalf("CreateStock: %v", err)
	}

	result, err := svc.Reconcile(product.ID, false)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if !result.Consistent {
		t.Errorf("expected consistent ledger, got %+v", result)
	}

	// Introduce drift by writing the view directly, bypassing the ledger.
	err = db.Model(&stock.Stock{}).
		Where("product_id = ?", product.ID).
		UpdateColumn("quantity_on_hand", 99).Error
	if err != nil {
		t.Fatalf("introduce drift: %v", err)
	}

	result, err = svc.Reconcile(product.ID, false)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if result.Consistent {
		t.Error("expected drift to be detected")
	}
	if result.QuantityOnHand != 99 || result.LedgerSum != 20 {
		t.Errorf("unexpected reconciliation result: %+v", result)
	}
	if result.Repaired {
		t.Error("repair must not run without the repair flag")
	}

	result, err = svc.Reconcile(product.ID, true)
	if err != nil {
		t.Fatalf("Reconcile with repair: %v", err)
	}
	if !result.Repaired {
		t.Error("expected repair to run")
	}
	if result.QuantityOnHand != 20 {
		t.Errorf("expected repaired quantity 20, got %d", result.QuantityOnHand)
	}

	st, err := svc.GetStockByProduct(product.ID)
	if err != nil {
		t.Fatalf("GetStockByProduct: %v", err)
	}
	if st.QuantityOnHand != 20 {
		t.Errorf("expected persisted quantity 20, got %d", st.QuantityOnHand)
	}
}

func TestReconcileUnknownProduct(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := stock.NewService(db, testutil.TestConfig())

	if _, err := svc.Reconcile(9999, false); err == nil {
		t.Fatal("expected error for unknown product")
	}
}

func TestInwardLifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := stock.NewService(db, testutil.TestConfig())

	po := seedPurchaseOrder(t, db, 8)

	inward, err := svc.CreateInward(&stock.CreateInwardRequest{
		PurchaseOrderID: po.ID,
		ReceivedBy:      "warehouse-1",
	})
	if err != nil {
		t.Fatalf("CreateInward: %v", err)
	}
	if inward.Status != stock.InwardStatusPending {
		t.Errorf("expected pending inward, got %q", inward.Status)
	}

	if _, err := svc.UpdateInwardStatus(inward.ID, stock.InwardStatusReceived); err != nil {
		t.Fatalf("UpdateInwardStatus: %v", err)
	}

	// Receiving posts an IN transaction for the purchase order's quantity.
	st, err := svc.GetStockByProduct(po.ProductID)
	if err != nil {
		t.Fatalf("GetStockByProduct: %v", err)
	}
	if st.QuantityOnHand != 8 {
		t.Errorf("expected quantity on hand 8, got %d", st.QuantityOnHand)
	}

	txns, err := svc.GetTransactions(po.ProductID)
	if err != nil {
		t.Fatalf("GetTransactions: %v", err)
	}
	if len(txns) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txns))
	}
	if txns[0].TransactionType != stock.TransactionTypeIn {
		t.Errorf("expected IN transaction, got %q", txns[0].TransactionType)
	}
	if txns[0].SourceReference != po.ReferenceNumber {
		t.Errorf("expected source reference %q, got %q", po.ReferenceNumber, txns[0].SourceReference)
	}

	// Received is terminal.
	if _, err := svc.UpdateInwardStatus(inward.ID, stock.InwardStatusCancelled); err == nil {
		t.Fatal("expected error transitioning a received inward")
	}
}

func TestInwardCancelPostsNothing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := stock.NewService(db, testutil.TestConfig())

	po := seedPurchaseOrder(t, db, 8)

	inward, err := svc.CreateInward(&stock.CreateInwardRequest{
		PurchaseOrderID: po.ID,
		ReceivedBy:      "warehouse-1",
	})
	if err != nil {
		t.Fatalf("CreateInward: %v", err)
	}

	if _, err := svc.UpdateInwardStatus(inward.ID, stock.InwardStatusCancelled); err != nil {
		t.Fatalf("UpdateInwardStatus: %v", err)
	}

	txns, err := svc.GetTransactions(po.ProductID)
	if err != nil {
		t.Fatalf("GetTransactions: %v", err)
	}
	if len(txns) != 0 {
		t.Errorf("cancel must not post transactions, got %d", len(txns))
	}
}

func TestCreateInwardMissingPurchaseOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := stock.NewService(db, testutil.TestConfig())

	_, err := svc.CreateInward(&stock.CreateInwardRequest{
		PurchaseOrderID: 9999,
		ReceivedBy:      "warehouse-1",
	})
	if err == nil {
		t.Fatal("expected error for missing purchase order")
	}
}

func TestOutwardLifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := stock.NewService(db, testutil.TestConfig())

	product := testutil.SeedProduct(t, db, "Widget", "WID-001", 1000)
	if _, err := svc.CreateStock(product.ID, 10); err != nil {
		t.Fatalf("CreateStock: %v", err)
	}
	order := seedOrderEntry(t, db, product.ID, 4)

	outward, err := svc.CreateOutward(&stock.CreateOutwardRequest{
		OrderEntryID: order.ID,
		ShippedBy:    "dispatch-1",
	})
	if err != nil {
		t.Fatalf("CreateOutward: %v", err)
	}
	if outward.Status != stock.OutwardStatusPending {
		t.Errorf("expected pending outward, got %q", outward.Status)
	}

	if _, err := svc.UpdateOutwardStatus(outward.ID, stock.OutwardStatusShipped); err != nil {
		t.Fatalf("UpdateOutwardStatus: %v", err)
	}

	st, err := svc.GetStockByProduct(product.ID)
	if err != nil {
		t.Fatalf("GetStockByProduct: %v", err)
	}
	if st.QuantityOnHand != 6 {
		t.Errorf("expected quantity on hand 6, got %d", st.QuantityOnHand)
	}

	txns, err := svc.GetTransactions(product.ID)
	if err != nil {
		t.Fatalf("GetTransactions: %v", err)
	}
	// Opening balance ADJ plus the shipment OUT.
	if len(txns) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txns))
	}

	var out *stock.StockTransaction
	for i := range txns {
		if txns[i].TransactionType == stock.TransactionTypeOut {
			out = &txns[i]
		}
	}
	if out == nil {
		t.Fatal("expected an OUT transaction")
	}
	if out.Quantity != -4 {
		t.Errorf("expected signed quantity -4, got %d", out.Quantity)
	}
	if out.SourceReference != order.OrderNumber {
		t.Errorf("expected source reference %q, got %q", order.OrderNumber, out.SourceReference)
	}

	// Shipped is terminal.
	if _, err := svc.UpdateOutwardStatus(outward.ID, stock.OutwardStatusCancelled); err == nil {
		t.Fatal("expected error transitioning a shipped outward")
	}
}

func TestOutwardShipmentInsufficientStock(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := stock.NewService(db, testutil.TestConfig())

	product := testutil.SeedProduct(t, db, "Widget", "WID-001", 1000)
	if _, err := svc.CreateStock(product.ID, 2); err != nil {
		t.Fatalf("CreateStock: %v", err)
	}
	order := seedOrderEntry(t, db, product.ID, 5)

	outward, err := svc.CreateOutward(&stock.CreateOutwardRequest{
		OrderEntryID: order.ID,
		ShippedBy:    "dispatch-1",
	})
	if err != nil {
		t.Fatalf("CreateOutward: %v", err)
	}

	_, err = svc.UpdateOutwardStatus(outward.ID, stock.OutwardStatusShipped)
	if err == nil {
		t.Fatal("expected insufficient stock error")
	}

	// The failed shipment leaves the outward pending and the stock untouched.
	got, err := svc.GetOutward(outward.ID)
	if err != nil {
		t.Fatalf("GetOutward: %v", err)
	}
	if got.Status != stock.OutwardStatusPending {
		t.Errorf("expected outward still pending, got %q", got.Status)
	}
	st, err := svc.GetStockByProduct(product.ID)
	if err != nil {
		t.Fatalf("GetStockByProduct: %v", err)
	}
	if st.QuantityOnHand != 2 {
		t.Errorf("expected quantity on hand 2, got %d", st.QuantityOnHand)
	}
}

func TestSignedQuantity(t *testing.T) {
	tests := []struct {
		name     string
		txType   stock.TransactionType
		quantity int
		want     int
	}{
		{"in positive", stock.TransactionTypeIn, 5, 5},
		{"in negative normalized", stock.TransactionTypeIn, -5, 5},
		{"out positive normalized", stock.TransactionTypeOut, 5, -5},
		{"out negative", stock.TransactionTypeOut, -5, -5},
		{"adj positive", stock.TransactionTypeAdjustment, 5, 5},
		{"adj negative", stock.TransactionTypeAdjustment, -5, -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stock.SignedQuantity(tt.txType, tt.quantity); got != tt.want {
				t.Errorf("SignedQuantity(%q, %d) = %d, want %d", tt.txType, tt.quantity, got, tt.want)
			}
		})
	}
}

func TestUpdateInward(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := stock.NewService(db, testutil.TestConfig())

	po := seedPurchaseOrder(t, db, 3)

	inward, err := svc.CreateInward(&stock.CreateInwardRequest{
		PurchaseOrderID: po.ID,
		ReceivedBy:      "warehouse-1",
	})
	if err != nil {
		t.Fatalf("CreateInward: %v", err)
	}

	receivedBy := "warehouse-2"
	remarks := "partial pallet"
	updated, err := svc.UpdateInward(inward.ID, &stock.UpdateInwardRequest{
		ReceivedBy: &receivedBy,
		Remarks:    &remarks,
	})
	if err != nil {
		t.Fatalf("UpdateInward: %v", err)
	}
	if updated.ReceivedBy != "warehouse-2" {
		t.Errorf("expected received by warehouse-2, got %q", updated.ReceivedBy)
	}
	if updated.Remarks != "partial pallet" {
		t.Errorf("expected remarks updated, got %q", updated.Remarks)
	}
	if updated.Status != stock.InwardStatusPending {
		t.Errorf("expected status untouched, got %q", updated.Status)
	}

	// Omitted fields stay as they are.
	onlyRemarks := "recounted"
	updated, err = svc.UpdateInward(inward.ID, &stock.UpdateInwardRequest{Remarks: &onlyRemarks})
	if err != nil {
		t.Fatalf("UpdateInward: %v", err)
	}
	if updated.ReceivedBy != "warehouse-2" {
		t.Errorf("expected received by unchanged, got %q", updated.ReceivedBy)
	}
	if updated.Remarks != "recounted" {
		t.Errorf("expected remarks recounted, got %q", updated.Remarks)
	}

	if _, err := svc.UpdateInward(9999, &stock.UpdateInwardRequest{Remarks: &remarks}); err == nil {
		t.Error("expected error for missing inward")
	}
}

func TestUpdateOutward(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := stock.NewService(db, testutil.TestConfig())

	product := testutil.SeedProduct(t, db, "Widget", "WID-001", 1000)
	if _, err := svc.CreateStock(product.ID, 10); err != nil {
		t.Fatalf("CreateStock: %v", err)
	}
	order := seedOrderEntry(t, db, product.ID, 4)

	outward, err := svc.CreateOutward(&stock.CreateOutwardRequest{
		OrderEntryID: order.ID,
		ShippedBy:    "courier-a",
	})
	if err != nil {
		t.Fatalf("CreateOutward: %v", err)
	}

	shippedBy := "courier-b"
	updated, err := svc.UpdateOutward(outward.ID, &stock.UpdateOutwardRequest{ShippedBy: &shippedBy})
	if err != nil {
		t.Fatalf("UpdateOutward: %v", err)
	}
	if updated.ShippedBy != "courier-b" {
		t.Errorf("expected shipped by courier-b, got %q", updated.ShippedBy)
	}
	if updated.Status != stock.OutwardStatusPending {
		t.Errorf("expected status untouched, got %q", updated.Status)
	}

	// A descriptive update posts nothing to the ledger.
	txns, err := svc.GetTransactions(product.ID)
	if err != nil {
		t.Fatalf("GetTransactions: %v", err)
	}
	if len(txns) != 1 {
		t.Errorf("expected only the opening-balance transaction, got %d", len(txns))
	}
}
