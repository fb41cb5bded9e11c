package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/udyamworks/billbook/internal/invoice/domain"
	"github.com/udyamworks/billbook/internal/invoice/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupInvoiceService(t *testing.T, node *snowflake.Node) (domain.Service, *gorm.DB) {
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
	_ = db.Exec("PRAGMA busy_timeout = 5000").Error

	if err := db.AutoMigrate(&domain.Invoice{}, &domain.Sequence{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
	return svc, db
}

func mustNode(t *testing.T) *snowflake.Node {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	return node
}

func sampleInput(node *snowflake.Node) domain.InvoiceInput {
	return domain.InvoiceInput{
		CustomerID:   node.Generate().String(),
		CustomerName: "Sharma Garments",
		Items: []domain.ItemInput{
			{
				ProductName:    "Cotton Kurta",
				HSN:            "6105",
				Qty:            2,
				Rate:           500,
				DiscountAmount: 50,
				CGSTPercent:    9,
				SGSTPercent:    9,
			},
			{
				ProductName: "Silk Saree",
				HSN:         "6106",
				Qty:         1,
				Rate:        300,
				IGSTPercent: 18,
			},
		},
	}
}

func TestCreateAssignsSequentialNumbers(t *testing.T) {
	node := mustNode(t)
	svc, _ := setupInvoiceService(t, node)
	ctx := context.Background()

	first, err := svc.Create(ctx, sampleInput(node))
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	second, err := svc.Create(ctx, sampleInput(node))
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	if first.InvoiceNumber != "INV-00001" {
		t.Fatalf("first number = %q, want INV-00001", first.InvoiceNumber)
	}
	if second.InvoiceNumber != "INV-00002" {
		t.Fatalf("second number = %q, want INV-00002", second.InvoiceNumber)
	}
}

func TestCreateComputesTotals(t *testing.T) {
	node := mustNode(t)
	svc, _ := setupInvoiceService(t, node)

	invoice, err := svc.Create(context.Background(), sampleInput(node))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if got := invoice.Subtotal; got != 1300 {
		t.Errorf("subtotal = %v, want 1300", got)
	}
	if got := invoice.TotalDiscount; got != 50 {
		t.Errorf("total discount = %v, want 50", got)
	}
	if got := invoice.TotalCGST; got != 85.5 {
		t.Errorf("total cgst = %v, want 85.5", got)
	}
	if got := invoice.TotalSGST; got != 85.5 {
		t.Errorf("total sgst = %v, want 85.5", got)
	}
	if got := invoice.TotalIGST; got != 54 {
		t.Errorf("total igst = %v, want 54", got)
	}
	if got := invoice.TotalTax; got != 225 {
		t.Errorf("total tax = %v, want 225", got)
	}
	if got := invoice.GrandTotal; got != 1475 {
		t.Errorf("grand total = %v, want 1475", got)
	}

	if len(invoice.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(invoice.Items))
	}
	line := invoice.Items[0]
	if line.TaxableAmount != 950 || line.CGSTAmount != 85.5 || line.SGSTAmount != 85.5 || line.FinalAmount != 1121 {
		t.Errorf("line 0 amounts = %+v", line)
	}
	if line.UOM != "pieces" {
		t.Errorf("line 0 uom = %q, want pieces", line.UOM)
	}

	if invoice.PaymentStatus != domain.PaymentStatusUnpaid {
		t.Errorf("status = %q, want unpaid", invoice.PaymentStatus)
	}
	if invoice.BalanceDue != 1475 || invoice.PaidAmount != 0 {
		t.Errorf("paid/balance = %v/%v, want 0/1475", invoice.PaidAmount, invoice.BalanceDue)
	}
}

func TestCreateValidation(t *testing.T) {
	node := mustNode(t)
	svc, _ := setupInvoiceService(t, node)
	ctx := context.Background()

	input := sampleInput(node)
	input.CustomerName = ""
	if _, err := svc.Create(ctx, input); !errors.Is(err, domain.ErrInvalidCustomer) {
		t.Fatalf("empty customer err = %v, want ErrInvalidCustomer", err)
	}

	input = sampleInput(node)
	input.CustomerID = "not-a-number"
	if _, err := svc.Create(ctx, input); !errors.Is(err, domain.ErrInvalidCustomer) {
		t.Fatalf("bad customer id err = %v, want ErrInvalidCustomer", err)
	}

	input = sampleInput(node)
	input.Items = nil
	if _, err := svc.Create(ctx, input); !errors.Is(err, domain.ErrNoItems) {
		t.Fatalf("no items err = %v, want ErrNoItems", err)
	}

	input = sampleInput(node)
	input.PaymentStatus = "settled"
	if _, err := svc.Create(ctx, input); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("bad status err = %v, want ErrInvalidStatus", err)
	}
}

func TestUpdatePayment(t *testing.T) {
	node := mustNode(t)
	svc, _ := setupInvoiceService(t, node)
	ctx := context.Background()

	invoice, err := svc.Create(ctx, sampleInput(node))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	paid := 1000.0
	partial, err := svc.UpdatePayment(ctx, invoice.ID.String(), domain.PaymentInput{
		Status:     "partial",
		Method:     "upi",
		PaidAmount: &paid,
	})
	if err != nil {
		t.Fatalf("partial payment: %v", err)
	}
	if partial.PaymentStatus != domain.PaymentStatusPartial {
		t.Errorf("status = %q, want partial", partial.PaymentStatus)
	}
	if partial.PaidAmount != 1000 || partial.BalanceDue != 475 {
		t.Errorf("paid/balance = %v/%v, want 1000/475", partial.PaidAmount, partial.BalanceDue)
	}
	if partial.PaymentMethod != "upi" {
		t.Errorf("method = %q, want upi", partial.PaymentMethod)
	}

	settled, err := svc.UpdatePayment(ctx, invoice.ID.String(), domain.PaymentInput{Status: "paid"})
	if err != nil {
		t.Fatalf("full payment: %v", err)
	}
	if settled.PaidAmount != settled.GrandTotal || settled.BalanceDue != 0 {
		t.Errorf("paid/balance = %v/%v, want %v/0", settled.PaidAmount, settled.BalanceDue, settled.GrandTotal)
	}
	if settled.PaymentMethod != "upi" {
		t.Errorf("method lost on status change: %q", settled.PaymentMethod)
	}

	if _, err := svc.UpdatePayment(ctx, invoice.ID.String(), domain.PaymentInput{Status: "refunded"}); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("bad status err = %v, want ErrInvalidStatus", err)
	}
}

func TestUpdatePaymentRequiresStatus(t *testing.T) {
	node := mustNode(t)
	svc, _ := setupInvoiceService(t, node)
	ctx := context.Background()

	invoice, err := svc.Create(ctx, sampleInput(node))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.UpdatePayment(ctx, invoice.ID.String(), domain.PaymentInput{Status: "paid"}); err != nil {
		t.Fatalf("mark paid: %v", err)
	}

	// A method-only update must not default the status back to unpaid.
	if _, err := svc.UpdatePayment(ctx, invoice.ID.String(), domain.PaymentInput{Method: "upi"}); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("missing status err = %v, want ErrInvalidStatus", err)
	}

	got, err := svc.GetByID(ctx, invoice.ID.String())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.PaymentStatus != domain.PaymentStatusPaid || got.BalanceDue != 0 {
		t.Errorf("status/balance = %q/%v, want paid/0", got.PaymentStatus, got.BalanceDue)
	}
}

func TestUpdatePaymentPartialKeepsRecordedAmount(t *testing.T) {
	node := mustNode(t)
	svc, _ := setupInvoiceService(t, node)
	ctx := context.Background()

	invoice, err := svc.Create(ctx, sampleInput(node))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	paid := 1000.0
	if _, err := svc.UpdatePayment(ctx, invoice.ID.String(), domain.PaymentInput{
		Status:     "partial",
		PaidAmount: &paid,
	}); err != nil {
		t.Fatalf("partial payment: %v", err)
	}

	got, err := svc.UpdatePayment(ctx, invoice.ID.String(), domain.PaymentInput{
		Status: "partial",
		Method: "cash",
	})
	if err != nil {
		t.Fatalf("metadata-only update: %v", err)
	}
	if got.PaidAmount != 1000 || got.BalanceDue != 475 {
		t.Errorf("paid/balance = %v/%v, want 1000/475", got.PaidAmount, got.BalanceDue)
	}
	if got.PaymentMethod != "cash" {
		t.Errorf("method = %q, want cash", got.PaymentMethod)
	}
}

func TestUpdateReplacesItemsKeepsIdentity(t *testing.T) {
	node := mustNode(t)
	svc, _ := setupInvoiceService(t, node)
	ctx := context.Background()

	invoice, err := svc.Create(ctx, sampleInput(node))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	replacement := sampleInput(node)
	replacement.CustomerName = "Gupta Textiles"
	replacement.Items = []domain.ItemInput{
		{ProductName: "Linen Shirt", Qty: 1, Rate: 300, IGSTPercent: 18},
	}
	updated, err := svc.Update(ctx, invoice.ID.String(), replacement)
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.ID != invoice.ID {
		t.Errorf("id changed: %v -> %v", invoice.ID, updated.ID)
	}
	if updated.InvoiceNumber != invoice.InvoiceNumber {
		t.Errorf("number changed: %q -> %q", invoice.InvoiceNumber, updated.InvoiceNumber)
	}
	if !updated.CreatedAt.Equal(invoice.CreatedAt) {
		t.Errorf("created_at changed: %v -> %v", invoice.CreatedAt, updated.CreatedAt)
	}
	if updated.CustomerName != "Gupta Textiles" {
		t.Errorf("customer name = %q", updated.CustomerName)
	}
	if len(updated.Items) != 1 || updated.GrandTotal != 354 {
		t.Errorf("items/grand = %d/%v, want 1/354", len(updated.Items), updated.GrandTotal)
	}
	if updated.BalanceDue != 354 {
		t.Errorf("balance = %v, want 354", updated.BalanceDue)
	}
}

func TestSoftDeleteAndRestore(t *testing.T) {
	node := mustNode(t)
	svc, _ := setupInvoiceService(t, node)
	ctx := context.Background()

	invoice, err := svc.Create(ctx, sampleInput(node))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	deleted, err := svc.SoftDelete(ctx, invoice.ID.String())
	if err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	if !deleted.IsDeleted || deleted.DeletedAt == nil {
		t.Fatalf("invoice not marked deleted: %+v", deleted)
	}

	visible, err := svc.List(ctx, domain.ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(visible) != 0 {
		t.Fatalf("default list returned %d deleted invoices", len(visible))
	}

	all, err := svc.List(ctx, domain.ListFilter{IncludeDeleted: true})
	if err != nil {
		t.Fatalf("list with deleted: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("include_deleted list = %d, want 1", len(all))
	}

	// Deleted invoices stay fetchable by id so they can be restored.
	if _, err := svc.GetByID(ctx, invoice.ID.String()); err != nil {
		t.Fatalf("get deleted: %v", err)
	}

	restored, err := svc.Restore(ctx, invoice.ID.String())
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if restored.IsDeleted || restored.DeletedAt != nil {
		t.Fatalf("invoice still deleted after restore: %+v", restored)
	}

	visible, err = svc.List(ctx, domain.ListFilter{})
	if err != nil {
		t.Fatalf("list after restore: %v", err)
	}
	if len(visible) != 1 {
		t.Fatalf("list after restore = %d, want 1", len(visible))
	}
}

func TestListFilters(t *testing.T) {
	node := mustNode(t)
	svc, _ := setupInvoiceService(t, node)
	ctx := context.Background()

	older := sampleInput(node)
	day := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	older.InvoiceDate = &day
	if _, err := svc.Create(ctx, older); err != nil {
		t.Fatalf("create older: %v", err)
	}

	newer := sampleInput(node)
	newer.CustomerName = "Verma Traders"
	if _, err := svc.Create(ctx, newer); err != nil {
		t.Fatalf("create newer: %v", err)
	}

	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	recent, err := svc.List(ctx, domain.ListFilter{StartDate: &start})
	if err != nil {
		t.Fatalf("list by date: %v", err)
	}
	if len(recent) != 1 || recent[0].CustomerName != "Verma Traders" {
		t.Fatalf("date filter returned %d rows", len(recent))
	}

	matched, err := svc.List(ctx, domain.ListFilter{Search: "verma"})
	if err != nil {
		t.Fatalf("list by search: %v", err)
	}
	if len(matched) != 1 || matched[0].CustomerName != "Verma Traders" {
		t.Fatalf("search filter returned %d rows", len(matched))
	}

	page, err := svc.List(ctx, domain.ListFilter{Skip: 1, Limit: 1})
	if err != nil {
		t.Fatalf("list paged: %v", err)
	}
	if len(page) != 1 {
		t.Fatalf("page = %d rows, want 1", len(page))
	}
}
