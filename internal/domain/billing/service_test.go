package billing_test

import (
	"strings"
	"testing"

	"github.com/your-org/inventory-backend/internal/domain/billing"
	"github.com/your-org/inventory-backend/internal/testutil"
)

func TestCreateInvoice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := billing.NewService(db, testutil.TestConfig())

	customer := testutil.SeedCustomer(t, db, "Globex Corp", "orders@globex.com")

	invoice, err := svc.CreateInvoice(&billing.CreateInvoiceRequest{
		InvoiceNumber: "INV-2026-001",
		CustomerID:    customer.ID,
		TotalAmount:   15000,
		Notes:         "Payment due on receipt",
	})
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}

	if invoice.Status != billing.InvoiceStatusDraft {
		t.Errorf("expected draft status by default, got %q", invoice.Status)
	}
	if invoice.Date.IsZero() {
		t.Error("expected invoice date to be set")
	}
	if invoice.Customer.Name != "Globex Corp" {
		t.Errorf("expected preloaded customer, got %+v", invoice.Customer)
	}
}

func TestCreateInvoiceDuplicateNumber(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := billing.NewService(db, testutil.TestConfig())

	customer := testutil.SeedCustomer(t, db, "Globex Corp", "orders@globex.com")

	if _, err := svc.CreateInvoice(&billing.CreateInvoiceRequest{
		InvoiceNumber: "INV-2026-001",
		CustomerID:    customer.ID,
	}); err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}

	_, err := svc.CreateInvoice(&billing.CreateInvoiceRequest{
		InvoiceNumber: "INV-2026-001",
		CustomerID:    customer.ID,
	})
	if err == nil {
		t.Fatal("expected duplicate invoice number error")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCreateInvoiceInvalidStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := billing.NewService(db, testutil.TestConfig())

	customer := testutil.SeedCustomer(t, db, "Globex Corp", "orders@globex.com")

	_, err := svc.CreateInvoice(&billing.CreateInvoiceRequest{
		InvoiceNumber: "INV-2026-001",
		CustomerID:    customer.ID,
		Status:        billing.InvoiceStatus("imaginary"),
	})
	if err == nil {
		t.Fatal("expected error for invalid status")
	}
}

func TestGetInvoicesFilterByStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := billing.NewService(db, testutil.TestConfig())

	customer := testutil.SeedCustomer(t, db, "Globex Corp", "orders@globex.com")

	for i, status := range []billing.InvoiceStatus{
		billing.InvoiceStatusDraft,
		billing.InvoiceStatusSent,
		billing.InvoiceStatusSent,
		billing.InvoiceStatusPaid,
	} {
		if _, err := svc.CreateInvoice(&billing.CreateInvoiceRequest{
			InvoiceNumber: strings.Repeat("0", i) + "INV",
			CustomerID:    customer.ID,
			Status:        status,
		}); err != nil {
			t.Fatalf("CreateInvoice: %v", err)
		}
	}

	sent, err := svc.GetInvoices(billing.InvoiceStatusSent)
	if err != nil {
		t.Fatalf("GetInvoices: %v", err)
	}
	if len(sent) != 2 {
		t.Errorf("expected 2 sent invoices, got %d", len(sent))
	}

	all, err := svc.GetInvoices("")
	if err != nil {
		t.Fatalf("GetInvoices: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("expected 4 invoices, got %d", len(all))
	}
}

func TestUpdateInvoiceStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := billing.NewService(db, testutil.TestConfig())

	customer := testutil.SeedCustomer(t, db, "Globex Corp", "orders@globex.com")

	invoice, err := svc.CreateInvoice(&billing.CreateInvoiceRequest{
		InvoiceNumber: "INV-2026-001",
		CustomerID:    customer.ID,
	})
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}

	paid := billing.InvoiceStatusPaid
	updated, err := svc.UpdateInvoice(invoice.ID, &billing.UpdateInvoiceRequest{Status: &paid})
	if err != nil {
		t.Fatalf("UpdateInvoice: %v", err)
	}
	if updated.Status != billing.InvoiceStatusPaid {
		t.Errorf("expected paid status, got %q", updated.Status)
	}

	bogus := billing.InvoiceStatus("imaginary")
	if _, err := svc.UpdateInvoice(invoice.ID, &billing.UpdateInvoiceRequest{Status: &bogus}); err == nil {
		t.Fatal("expected error for invalid status")
	}
}

func TestCreateInvoiceItemAutofillFromProduct(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := billing.NewService(db, testutil.TestConfig())

	customer := testutil.SeedCustomer(t, db, "Globex Corp", "orders@globex.com")
	product := testutil.SeedProduct(t, db, "Widget", "WID-001", 1250) // $12.50

	invoice, err := svc.CreateInvoice(&billing.CreateInvoiceRequest{
		InvoiceNumber: "INV-2026-001",
		CustomerID:    customer.ID,
	})
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}

	// Neither description nor unit price supplied; both come from the product.
	item, err := svc.CreateInvoiceItem(&billing.CreateInvoiceItemRequest{
		InvoiceID: invoice.ID,
		ProductID: &product.ID,
		Quantity:  4,
	})
	if err != nil {
		t.Fatalf("CreateInvoiceItem: %v", err)
	}

	if item.UnitPrice != 1250 {
		t.Errorf("expected unit price 1250 from product, got %d", item.UnitPrice)
	}
	if item.Description != "Widget" {
		t.Errorf("expected description from product name, got %q", item.Description)
	}
	if item.Total != 5000 {
		t.Errorf("expected total 5000, got %d", item.Total)
	}
}

func TestCreateInvoiceItemExplicitValuesWin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := billing.NewService(db, testutil.TestConfig())

	customer := testutil.SeedCustomer(t, db, "Globex Corp", "orders@globex.com")
	product := testutil.SeedProduct(t, db, "Widget", "WID-001", 1250)

	invoice, err := svc.CreateInvoice(&billing.CreateInvoiceRequest{
		InvoiceNumber: "INV-2026-001",
		CustomerID:    customer.ID,
	})
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}

	// Explicit zero price must not be replaced by the product price.
	zero := int64(0)
	item, err := svc.CreateInvoiceItem(&billing.CreateInvoiceItemRequest{
		InvoiceID:   invoice.ID,
		ProductID:   &product.ID,
		Description: "Widget (promotional)",
		Quantity:    2,
		UnitPrice:   &zero,
	})
	if err != nil {
		t.Fatalf("CreateInvoiceItem: %v", err)
	}

	if item.UnitPrice != 0 {
		t.Errorf("explicit zero unit price overridden: got %d", item.UnitPrice)
	}
	if item.Description != "Widget (promotional)" {
		t.Errorf("explicit description overridden: got %q", item.Description)
	}
	if item.Total != 0 {
		t.Errorf("expected total 0, got %d", item.Total)
	}
}

func TestCreateInvoiceItemFreeText(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := billing.NewService(db, testutil.TestConfig())

	customer := testutil.SeedCustomer(t, db, "Globex Corp", "orders@globex.com")

	invoice, err := svc.CreateInvoice(&billing.CreateInvoiceRequest{
		InvoiceNumber: "INV-2026-001",
		CustomerID:    customer.ID,
	})
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}

	price := int64(30000)
	item, err := svc.CreateInvoiceItem(&billing.CreateInvoiceItemRequest{
		InvoiceID:   invoice.ID,
		Description: "On-site installation",
		Quantity:    1,
		UnitPrice:   &price,
	})
	if err != nil {
		t.Fatalf("CreateInvoiceItem: %v", err)
	}
	if item.ProductID != nil {
		t.Errorf("expected nil product ID on free-text line, got %v", *item.ProductID)
	}
	if item.Total != 30000 {
		t.Errorf("expected total 30000, got %d", item.Total)
	}

	// A free-text line without a price has nothing to fall back to.
	_, err = svc.CreateInvoiceItem(&billing.CreateInvoiceItemRequest{
		InvoiceID:   invoice.ID,
		Description: "Mystery charge",
		Quantity:    1,
	})
	if err == nil {
		t.Fatal("expected error for free-text item without unit price")
	}
	if !strings.Contains(err.Error(), "unit_price is required") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestUpdateInvoiceItemDoesNotRecomputeTotal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := billing.NewService(db, testutil.TestConfig())

	customer := testutil.SeedCustomer(t, db, "Globex Corp", "orders@globex.com")
	product := testutil.SeedProduct(t, db, "Widget", "WID-001", 1000)

	invoice, err := svc.CreateInvoice(&billing.CreateInvoiceRequest{
		InvoiceNumber: "INV-2026-001",
		CustomerID:    customer.ID,
	})
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}

	item, err := svc.CreateInvoiceItem(&billing.CreateInvoiceItemRequest{
		InvoiceID: invoice.ID,
		ProductID: &product.ID,
		Quantity:  3,
	})
	if err != nil {
		t.Fatalf("CreateInvoiceItem: %v", err)
	}
	if item.Total != 3000 {
		t.Fatalf("expected total 3000, got %d", item.Total)
	}

	newQty := 10
	updated, err := svc.UpdateInvoiceItem(item.ID, &billing.UpdateInvoiceItemRequest{
		Quantity: &newQty,
	})
	if err != nil {
		t.Fatalf("UpdateInvoiceItem: %v", err)
	}
	if updated.Quantity != 10 {
		t.Errorf("expected quantity 10, got %d", updated.Quantity)
	}
	if updated.Total != 3000 {
		t.Errorf("total recomputed on update: got %d", updated.Total)
	}
}

func TestCreateInvoiceItemMissingInvoice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := billing.NewService(db, testutil.TestConfig())

	price := int64(100)
	_, err := svc.CreateInvoiceItem(&billing.CreateInvoiceItemRequest{
		InvoiceID:   9999,
		Description: "Orphan line",
		Quantity:    1,
		UnitPrice:   &price,
	})
	if err == nil {
		t.Fatal("expected error for missing invoice")
	}
}

func TestDeleteInvoice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := billing.NewService(db, testutil.TestConfig())

	customer := testutil.SeedCustomer(t, db, "Globex Corp", "orders@globex.com")

	invoice, err := svc.CreateInvoice(&billing.CreateInvoiceRequest{
		InvoiceNumber: "INV-2026-001",
		CustomerID:    customer.ID,
	})
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}

	if err := svc.DeleteInvoice(invoice.ID); err != nil {
		t.Fatalf("DeleteInvoice: %v", err)
	}
	if _, err := svc.GetInvoice(invoice.ID); err == nil {
		t.Fatal("expected error fetching deleted invoice")
	}
	if err := svc.DeleteInvoice(invoice.ID); err == nil {
		t.Fatal("expected error deleting already-deleted invoice")
	}
}
