package sales_test

import (
	"strings"
	"testing"

	"gorm.io/gorm"

	"github.com/your-org/inventory-backend/internal/domain/sales"
	"github.com/your-org/inventory-backend/internal/pkg/refcode"
	"github.com/your-org/inventory-backend/internal/testutil"
)

func TestCreateOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := sales.NewService(db, testutil.TestConfig())

	customer := testutil.SeedCustomer(t, db, "Globex Corp", "orders@globex.com")
	product := testutil.SeedProduct(t, db, "Widget", "WID-001", 2500) // $25.00

	order, err := svc.CreateOrder(&sales.CreateOrderRequest{
		CustomerID: customer.ID,
		ProductID:  product.ID,
		Quantity:   3,
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if !refcode.IsValid(order.OrderNumber) {
		t.Errorf("unexpected order number format: %q", order.OrderNumber)
	}
	if order.Price != 2500 {
		t.Errorf("expected price snapshot 2500, got %d", order.Price)
	}
	if order.TotalAmount != 7500 {
		t.Errorf("expected total 7500, got %d", order.TotalAmount)
	}
	if order.Status != sales.OrderStatusPending {
		t.Errorf("expected pending status, got %q", order.Status)
	}
	if order.Customer.Name != "Globex Corp" {
		t.Errorf("expected preloaded customer, got %+v", order.Customer)
	}
}

func TestCreateOrderMissingProduct(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := sales.NewService(db, testutil.TestConfig())

	customer := testutil.SeedCustomer(t, db, "Globex Corp", "orders@globex.com")

	_, err := svc.CreateOrder(&sales.CreateOrderRequest{
		CustomerID: customer.ID,
		ProductID:  9999,
		Quantity:   1,
	})
	if err == nil {
		t.Fatal("expected error for missing product")
	}
	if !strings.Contains(err.Error(), "product not found") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestUpdateOrderDoesNotRecompute(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := sales.NewService(db, testutil.TestConfig())

	customer := testutil.SeedCustomer(t, db, "Globex Corp", "orders@globex.com")
	product := testutil.SeedProduct(t, db, "Widget", "WID-001", 2500)

	order, err := svc.CreateOrder(&sales.CreateOrderRequest{
		CustomerID: customer.ID,
		ProductID:  product.ID,
		Quantity:   3,
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	originalNumber := order.OrderNumber

	if err := db.Model(product).Update("price", 9900).Error; err != nil {
		t.Fatalf("update price: %v", err)
	}

	newQty := 10
	updated, err := svc.UpdateOrder(order.ID, &sales.UpdateOrderRequest{
		Quantity: &newQty,
	})
	if err != nil {
		t.Fatalf("UpdateOrder: %v", err)
	}

	if updated.Quantity != 10 {
		t.Errorf("expected quantity 10, got %d", updated.Quantity)
	}
	if updated.OrderNumber != originalNumber {
		t.Errorf("order number changed on update: %q -> %q", originalNumber, updated.OrderNumber)
	}
	if updated.Price != 2500 {
		t.Errorf("price recomputed on update: got %d", updated.Price)
	}
	if updated.TotalAmount != 7500 {
		t.Errorf("total amount recomputed on update: got %d", updated.TotalAmount)
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := sales.NewService(db, testutil.TestConfig())

	customer := testutil.SeedCustomer(t, db, "Globex Corp", "orders@globex.com")
	product := testutil.SeedProduct(t, db, "Widget", "WID-001", 2500)

	order, err := svc.CreateOrder(&sales.CreateOrderRequest{
		CustomerID: customer.ID,
		ProductID:  product.ID,
		Quantity:   1,
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	shipped := sales.OrderStatusShipped
	updated, err := svc.UpdateOrder(order.ID, &sales.UpdateOrderRequest{Status: &shipped})
	if err != nil {
		t.Fatalf("UpdateOrder: %v", err)
	}
	if updated.Status != sales.OrderStatusShipped {
		t.Errorf("expected shipped status, got %q", updated.Status)
	}

	bogus := sales.OrderStatus("teleported")
	if _, err := svc.UpdateOrder(order.ID, &sales.UpdateOrderRequest{Status: &bogus}); err == nil {
		t.Fatal("expected error for invalid status")
	}
}

func TestGetOrderByNumber(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := sales.NewService(db, testutil.TestConfig())

	customer := testutil.SeedCustomer(t, db, "Globex Corp", "orders@globex.com")
	product := testutil.SeedProduct(t, db, "Widget", "WID-001", 2500)

	order, err := svc.CreateOrder(&sales.CreateOrderRequest{
		CustomerID: customer.ID,
		ProductID:  product.ID,
		Quantity:   1,
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	found, err := svc.GetOrderByNumber(order.OrderNumber)
	if err != nil {
		t.Fatalf("GetOrderByNumber: %v", err)
	}
	if found.ID != order.ID {
		t.Errorf("expected order %d, got %d", order.ID, found.ID)
	}

	if _, err := svc.GetOrderByNumber("ZZZZZ"); err == nil {
		t.Fatal("expected error for unknown order number")
	}
}

func TestGetOrdersFiltering(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := sales.NewService(db, testutil.TestConfig())

	customerA := testutil.SeedCustomer(t, db, "Globex Corp", "orders@globex.com")
	customerB := testutil.SeedCustomer(t, db, "Initech", "orders@initech.com")
	product := testutil.SeedProduct(t, db, "Widget", "WID-001", 2500)

	for i := 0; i < 3; i++ {
		if _, err := svc.CreateOrder(&sales.CreateOrderRequest{
			CustomerID: customerA.ID,
			ProductID:  product.ID,
			Quantity:   1,
		}); err != nil {
			t.Fatalf("CreateOrder: %v", err)
		}
	}
	if _, err := svc.CreateOrder(&sales.CreateOrderRequest{
		CustomerID: customerB.ID,
		ProductID:  product.ID,
		Quantity:   1,
	}); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	resp, err := svc.GetOrders(&sales.OrderListRequest{
		Page:       1,
		Limit:      20,
		CustomerID: customerA.ID,
		SortBy:     "order_date",
		SortOrder:  "desc",
	})
	if err != nil {
		t.Fatalf("GetOrders: %v", err)
	}
	if resp.Pagination.Total != 3 {
		t.Errorf("expected 3 orders for customer, got %d", resp.Pagination.Total)
	}

	resp, err = svc.GetOrders(&sales.OrderListRequest{
		Page:      1,
		Limit:     20,
		Status:    sales.OrderStatusPending,
		SortBy:    "order_date",
		SortOrder: "desc",
	})
	if err != nil {
		t.Fatalf("GetOrders: %v", err)
	}
	if resp.Pagination.Total != 4 {
		t.Errorf("expected 4 pending orders, got %d", resp.Pagination.Total)
	}
}

func TestDeleteOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := sales.NewService(db, testutil.TestConfig())

	customer := testutil.SeedCustomer(t, db, "Globex Corp", "orders@globex.com")
	product := testutil.SeedProduct(t, db, "Widget", "WID-001", 2500)

	order, err := svc.CreateOrder(&sales.CreateOrderRequest{
		CustomerID: customer.ID,
		ProductID:  product.ID,
		Quantity:   1,
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if err := svc.DeleteOrder(order.ID); err != nil {
		t.Fatalf("DeleteOrder: %v", err)
	}
	if _, err := svc.GetOrder(order.ID); err == nil {
		t.Fatal("expected error fetching deleted order")
	}
	if err := svc.DeleteOrder(order.ID); err == nil {
		t.Fatal("expected error deleting already-deleted order")
	}
}

func TestCreateOrderRetriesOnTakenOrderNumber(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := sales.NewService(db, testutil.TestConfig())

	customer := testutil.SeedCustomer(t, db, "Globex Corp", "orders@globex.com")
	product := testutil.SeedProduct(t, db, "Widget", "WID-001", 2500)

	existing, err := svc.CreateOrder(&sales.CreateOrderRequest{
		CustomerID: customer.ID,
		ProductID:  product.ID,
		Quantity:   1,
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	// Rewrite the next insert's order number to an already-taken value so the
	// first attempt fails on the unique index and a fresh transaction retries.
	forced := false
	err = db.Callback().Create().Before("gorm:create").Register("sales_test:force_taken_order_number", func(tx *gorm.DB) {
		order, ok := tx.Statement.Dest.(*sales.OrderEntry)
		if !ok || forced {
			return
		}
		forced = true
		order.OrderNumber = existing.OrderNumber
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}

	order, err := svc.CreateOrder(&sales.CreateOrderRequest{
		CustomerID: customer.ID,
		ProductID:  product.ID,
		Quantity:   2,
	})
	if err != nil {
		t.Fatalf("CreateOrder after collision: %v", err)
	}
	if !forced {
		t.Fatal("expected the forced collision to fire")
	}
	if order.OrderNumber == existing.OrderNumber {
		t.Errorf("expected a fresh order number, got %q again", order.OrderNumber)
	}
	if !refcode.IsValid(order.OrderNumber) {
		t.Errorf("unexpected order number format: %q", order.OrderNumber)
	}
}
