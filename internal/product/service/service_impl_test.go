package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/udyamworks/billbook/internal/product/domain"
	"github.com/udyamworks/billbook/internal/product/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupProductService(t *testing.T) domain.Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_loc=auto", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := db.AutoMigrate(&domain.Product{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}

	return New(Params{DB: db, Log: zap.NewNop(), GenID: node, Repo: repository.Provide()})
}

func TestCreateUpsertsByName(t *testing.T) {
	svc := setupProductService(t)
	ctx := context.Background()

	rate := 250.0
	first, err := svc.Create(ctx, domain.ProductInput{
		Name:        "Cotton Kurta",
		HSN:         "6105",
		DefaultRate: &rate,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.UOM != domain.DefaultUOM {
		t.Errorf("uom = %q, want default %q", first.UOM, domain.DefaultUOM)
	}

	// Posting the same name again updates in place.
	newRate := 300.0
	second, err := svc.Create(ctx, domain.ProductInput{
		Name:        "Cotton Kurta",
		HSN:         "6105",
		DefaultRate: &newRate,
		UOM:         "dozen",
	})
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("upsert created a new product: %v != %v", second.ID, first.ID)
	}
	if second.DefaultRate == nil || *second.DefaultRate != 300 {
		t.Errorf("default rate = %v, want 300", second.DefaultRate)
	}
	if second.UOM != "dozen" {
		t.Errorf("uom = %q, want dozen", second.UOM)
	}

	products, err := svc.List(ctx, domain.ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("products = %d, want 1", len(products))
	}
}

func TestProductCRUD(t *testing.T) {
	svc := setupProductService(t)
	ctx := context.Background()

	product, err := svc.Create(ctx, domain.ProductInput{Name: "Silk Saree", Category: "Sarees"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	fetched, err := svc.GetByID(ctx, product.ID.String())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.Name != "Silk Saree" {
		t.Errorf("name = %q", fetched.Name)
	}

	taxRate := 12.0
	updated, err := svc.Update(ctx, product.ID.String(), domain.ProductInput{
		Name:           "Silk Saree Premium",
		Category:       "Sarees",
		DefaultTaxRate: &taxRate,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Silk Saree Premium" || updated.DefaultTaxRate == nil || *updated.DefaultTaxRate != 12 {
		t.Errorf("updated = %+v", updated)
	}

	if err := svc.Delete(ctx, product.ID.String()); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetByID(ctx, product.ID.String()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("get after delete err = %v, want ErrNotFound", err)
	}
}

func TestProductValidation(t *testing.T) {
	svc := setupProductService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, domain.ProductInput{Name: "  "}); !errors.Is(err, domain.ErrInvalidName) {
		t.Fatalf("blank name err = %v, want ErrInvalidName", err)
	}
	if _, err := svc.GetByID(ctx, "nope"); !errors.Is(err, domain.ErrInvalidID) {
		t.Fatalf("bad id err = %v, want ErrInvalidID", err)
	}
}

func TestListProductsSortsByName(t *testing.T) {
	svc := setupProductService(t)
	ctx := context.Background()

	for _, name := range []string{"Zari Border", "Ajrakh Print", "Mul Cotton"} {
		if _, err := svc.Create(ctx, domain.ProductInput{Name: name}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	products, err := svc.List(ctx, domain.ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("products = %d, want 3", len(products))
	}
	if products[0].Name != "Ajrakh Print" || products[2].Name != "Zari Border" {
		t.Errorf("order = %q, %q, %q", products[0].Name, products[1].Name, products[2].Name)
	}
}
