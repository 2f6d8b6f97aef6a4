package catalog_test

import (
	"testing"

	"github.com/your-org/inventory-backend/internal/domain/catalog"
	"github.com/your-org/inventory-backend/internal/testutil"
)

func TestProductCRUD(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := catalog.NewService(db, testutil.TestConfig())

	product, err := svc.CreateProduct(&catalog.CreateProductRequest{
		Name:   "Widget",
		SKU:    "WID-001",
		Price:  1000,
		Vendor: "Acme Supplies",
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if product.ID == 0 {
		t.Fatal("expected product ID to be assigned")
	}

	got, err := svc.GetProduct(product.ID)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if got.SKU != "WID-001" || got.Price != 1000 {
		t.Errorf("unexpected product: %+v", got)
	}

	bySKU, err := svc.GetProductBySKU("WID-001")
	if err != nil {
		t.Fatalf("GetProductBySKU: %v", err)
	}
	if bySKU.ID != product.ID {
		t.Errorf("expected product %d, got %d", product.ID, bySKU.ID)
	}

	newPrice := int64(1500)
	updated, err := svc.UpdateProduct(product.ID, &catalog.UpdateProductRequest{
		Price: &newPrice,
	})
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	if updated.Price != 1500 {
		t.Errorf("expected updated price 1500, got %d", updated.Price)
	}
	if updated.SKU != "WID-001" {
		t.Errorf("SKU changed unexpectedly: %q", updated.SKU)
	}

	if err := svc.DeleteProduct(product.ID); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}
	if _, err := svc.GetProduct(product.ID); err == nil {
		t.Fatal("expected error fetching deleted product")
	}
	if err := svc.DeleteProduct(product.ID); err == nil {
		t.Fatal("expected error deleting already-deleted product")
	}
}

func TestCreateProductDuplicateSKU(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := catalog.NewService(db, testutil.TestConfig())

	if _, err := svc.CreateProduct(&catalog.CreateProductRequest{
		Name: "Widget",
		SKU:  "WID-001",
	}); err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	if _, err := svc.CreateProduct(&catalog.CreateProductRequest{
		Name: "Widget Clone",
		SKU:  "WID-001",
	}); err == nil {
		t.Fatal("expected duplicate SKU error")
	}
}

func TestGetProductsSearch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := catalog.NewService(db, testutil.TestConfig())

	seed := []struct{ name, sku string }{
		{"Steel Widget", "WID-001"},
		{"Brass Widget", "WID-002"},
		{"Copper Pipe", "PIP-001"},
	}
	for _, s := range seed {
		if _, err := svc.CreateProduct(&catalog.CreateProductRequest{
			Name: s.name,
			SKU:  s.sku,
		}); err != nil {
			t.Fatalf("CreateProduct: %v", err)
		}
	}

	tests := []struct {
		name   string
		search string
		want   int
	}{
		{"no filter", "", 3},
		{"by name fragment", "widget", 2},
		{"by sku fragment", "PIP", 1},
		{"case insensitive", "STEEL", 1},
		{"no match", "titanium", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := svc.GetProducts(tt.search)
			if err != nil {
				t.Fatalf("GetProducts: %v", err)
			}
			if len(products) != tt.want {
				t.Errorf("expected %d products, got %d", tt.want, len(products))
			}
		})
	}
}

func TestMaterialCRUD(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := catalog.NewService(db, testutil.TestConfig())

	material, err := svc.CreateMaterial(&catalog.CreateMaterialRequest{
		Name: "Steel",
		Unit: "kg",
	})
	if err != nil {
		t.Fatalf("CreateMaterial: %v", err)
	}

	got, err := svc.GetMaterial(material.ID)
	if err != nil {
		t.Fatalf("GetMaterial: %v", err)
	}
	if got.Name != "Steel" || got.Unit != "kg" {
		t.Errorf("unexpected material: %+v", got)
	}

	newUnit := "tonne"
	updated, err := svc.UpdateMaterial(material.ID, &catalog.UpdateMaterialRequest{
		Unit: &newUnit,
	})
	if err != nil {
		t.Fatalf("UpdateMaterial: %v", err)
	}
	if updated.Unit != "tonne" {
		t.Errorf("expected updated unit 'tonne', got %q", updated.Unit)
	}

	materials, err := svc.GetMaterials()
	if err != nil {
		t.Fatalf("GetMaterials: %v", err)
	}
	if len(materials) != 1 {
		t.Errorf("expected 1 material, got %d", len(materials))
	}

	if err := svc.DeleteMaterial(material.ID); err != nil {
		t.Fatalf("DeleteMaterial: %v", err)
	}
	if _, err := svc.GetMaterial(material.ID); err == nil {
		t.Fatal("expected error fetching deleted material")
	}
}
