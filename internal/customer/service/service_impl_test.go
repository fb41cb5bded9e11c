package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	businessdomain "github.com/udyamworks/billbook/internal/business/domain"
	businessrepo "github.com/udyamworks/billbook/internal/business/repository"
	businessservice "github.com/udyamworks/billbook/internal/business/service"
	"github.com/udyamworks/billbook/internal/customer/domain"
	"github.com/udyamworks/billbook/internal/customer/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupCustomerService(t *testing.T) (domain.Service, businessdomain.Service) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_loc=auto", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := db.AutoMigrate(&businessdomain.Business{}, &businessdomain.Settings{}, &domain.Customer{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}

	businessSvc := businessservice.New(businessservice.Params{
		DB: db, Log: zap.NewNop(), GenID: node, Repo: businessrepo.Provide(),
	})
	svc := New(Params{
		DB: db, Log: zap.NewNop(), GenID: node, Repo: repository.Provide(), BusinessSvc: businessSvc,
	})
	return svc, businessSvc
}

func TestCreateUnlinkedCustomer(t *testing.T) {
	svc, _ := setupCustomerService(t)

	customer, err := svc.Create(context.Background(), domain.CustomerInput{Name: "Anita Desai"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if customer.HasBusinessWithGST {
		t.Error("unlinked customer flagged as having a business")
	}
	if customer.BusinessID != nil {
		t.Errorf("business id = %v, want nil", customer.BusinessID)
	}
	if customer.BusinessName != domain.UnlinkedBusinessName {
		t.Errorf("business name = %q, want %q", customer.BusinessName, domain.UnlinkedBusinessName)
	}
}

func TestCreateLinkedCustomersShareBusiness(t *testing.T) {
	svc, _ := setupCustomerService(t)
	ctx := context.Background()

	business := &businessdomain.BusinessInput{
		LegalName: "Sharma Textiles",
		GSTIN:     "27AAPFU0939F1ZV",
	}
	first, err := svc.Create(ctx, domain.CustomerInput{
		Name:               "Ramesh",
		HasBusinessWithGST: true,
		Business:           business,
	})
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	if first.BusinessID == nil || first.BusinessName != "Sharma Textiles" {
		t.Fatalf("first customer link = %+v", first)
	}

	second, err := svc.Create(ctx, domain.CustomerInput{
		Name:               "Suresh",
		HasBusinessWithGST: true,
		Business:           business,
	})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	if second.BusinessID == nil || *second.BusinessID != *first.BusinessID {
		t.Errorf("customers with the same GSTIN link to different businesses: %v vs %v",
			first.BusinessID, second.BusinessID)
	}
}

func TestUpdateRelinksCustomer(t *testing.T) {
	svc, businessSvc := setupCustomerService(t)
	ctx := context.Background()

	customer, err := svc.Create(ctx, domain.CustomerInput{
		Name:               "Meena",
		HasBusinessWithGST: true,
		Business:           &businessdomain.BusinessInput{LegalName: "Meena Stores", GSTIN: "29AABCU9603R1ZJ"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	linkedID := customer.BusinessID

	// Dropping the flag unlinks the customer but keeps the business row.
	unlinked, err := svc.Update(ctx, customer.ID.String(), domain.CustomerInput{Name: "Meena"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if unlinked.HasBusinessWithGST || unlinked.BusinessID != nil {
		t.Errorf("customer still linked: %+v", unlinked)
	}
	if unlinked.BusinessName != domain.UnlinkedBusinessName {
		t.Errorf("business name = %q, want %q", unlinked.BusinessName, domain.UnlinkedBusinessName)
	}

	if _, err := businessSvc.GetByID(ctx, linkedID.String()); err != nil {
		t.Errorf("business row removed on unlink: %v", err)
	}
}

func TestCustomerValidation(t *testing.T) {
	svc, _ := setupCustomerService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, domain.CustomerInput{Name: " "}); !errors.Is(err, domain.ErrInvalidName) {
		t.Fatalf("blank name err = %v, want ErrInvalidName", err)
	}
	if _, err := svc.GetByID(ctx, "abc"); !errors.Is(err, domain.ErrInvalidID) {
		t.Fatalf("bad id err = %v, want ErrInvalidID", err)
	}
	if _, err := svc.GetByID(ctx, "123456789"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing id err = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(ctx, "123456789"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("delete missing err = %v, want ErrNotFound", err)
	}
}

func TestListCustomersSearch(t *testing.T) {
	svc, _ := setupCustomerService(t)
	ctx := context.Background()

	for _, name := range []string{"Anita Desai", "Bharat Kumar"} {
		if _, err := svc.Create(ctx, domain.CustomerInput{Name: name, City: "Mumbai"}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	matched, err := svc.List(ctx, domain.ListFilter{Search: "anita"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(matched) != 1 || matched[0].Name != "Anita Desai" {
		t.Fatalf("search returned %d rows", len(matched))
	}

	byCity, err := svc.List(ctx, domain.ListFilter{Search: "mumbai"})
	if err != nil {
		t.Fatalf("list by city: %v", err)
	}
	if len(byCity) != 2 {
		t.Fatalf("city search returned %d rows, want 2", len(byCity))
	}
}
