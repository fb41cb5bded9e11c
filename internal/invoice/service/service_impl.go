package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/udyamworks/billbook/internal/invoice/domain"
	"github.com/udyamworks/billbook/internal/tax"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("invoice.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, input domain.InvoiceInput) (domain.Invoice, error) {
	customerID, err := s.validateInput(input)
	if err != nil {
		return domain.Invoice{}, err
	}
	status, err := normalizeStatus(input.PaymentStatus)
	if err != nil {
		return domain.Invoice{}, err
	}

	items, totals := computeItems(input.Items)
	paid, balance := derivePayment(status, input.PaidAmount, totals.GrandTotal)

	now := time.Now().UTC()
	invoiceDate := now
	if input.InvoiceDate != nil {
		invoiceDate = input.InvoiceDate.UTC()
	}

	invoice := domain.Invoice{
		ID:              s.genID.Generate(),
		InvoiceDate:     invoiceDate,
		CustomerID:      customerID,
		CustomerName:    strings.TrimSpace(input.CustomerName),
		CustomerGSTIN:   strings.TrimSpace(input.CustomerGSTIN),
		CustomerAddress: strings.TrimSpace(input.CustomerAddress),
		CustomerPhone:   strings.TrimSpace(input.CustomerPhone),
		Items:           datatypes.NewJSONSlice(items),
		Subtotal:        totals.Subtotal,
		TotalDiscount:   totals.TotalDiscount,
		TotalCGST:       totals.TotalCGST,
		TotalSGST:       totals.TotalSGST,
		TotalIGST:       totals.TotalIGST,
		TotalTax:        totals.TotalTax,
		GrandTotal:      totals.GrandTotal,
		PaymentStatus:   status,
		PaymentMethod:   strings.TrimSpace(input.PaymentMethod),
		PaidAmount:      paid,
		BalanceDue:      balance,
		TransactionRef:  strings.TrimSpace(input.TransactionRef),
		Notes:           strings.TrimSpace(input.Notes),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	// Number allocation and insert share one transaction: the counter row
	// lock serializes concurrent creations, and a rollback leaves a gap
	// instead of a duplicate.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		seq, err := s.repo.NextSequence(ctx, tx, domain.SequenceInvoices)
		if err != nil {
			return err
		}
		invoice.InvoiceNumber = fmt.Sprintf("INV-%05d", seq)
		return s.repo.Insert(ctx, tx, &invoice)
	})
	if err != nil {
		return domain.Invoice{}, err
	}
	return invoice, nil
}

func (s *Service) List(ctx context.Context, filter domain.ListFilter) ([]domain.Invoice, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 250 {
		filter.Limit = 250
	}
	if filter.Skip < 0 {
		filter.Skip = 0
	}

	items, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}

	invoices := make([]domain.Invoice, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		invoices = append(invoices, *item)
	}
	return invoices, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Invoice, error) {
	invoice, err := s.find(ctx, id)
	if err != nil {
		return domain.Invoice{}, err
	}
	return *invoice, nil
}

func (s *Service) Update(ctx context.Context, id string, input domain.InvoiceInput) (domain.Invoice, error) {
	customerID, err := s.validateInput(input)
	if err != nil {
		return domain.Invoice{}, err
	}
	status, err := normalizeStatus(input.PaymentStatus)
	if err != nil {
		return domain.Invoice{}, err
	}

	existing, err := s.find(ctx, id)
	if err != nil {
		return domain.Invoice{}, err
	}

	items, totals := computeItems(input.Items)
	paid, balance := derivePayment(status, input.PaidAmount, totals.GrandTotal)

	// Full replace of mutable fields; id, number, creation time and the
	// soft-delete state come from the stored row.
	updated := *existing
	if input.InvoiceDate != nil {
		updated.InvoiceDate = input.InvoiceDate.UTC()
	}
	updated.CustomerID = customerID
	updated.CustomerName = strings.TrimSpace(input.CustomerName)
	updated.CustomerGSTIN = strings.TrimSpace(input.CustomerGSTIN)
	updated.CustomerAddress = strings.TrimSpace(input.CustomerAddress)
	updated.CustomerPhone = strings.TrimSpace(input.CustomerPhone)
	updated.Items = datatypes.NewJSONSlice(items)
	updated.Subtotal = totals.Subtotal
	updated.TotalDiscount = totals.TotalDiscount
	updated.TotalCGST = totals.TotalCGST
	updated.TotalSGST = totals.TotalSGST
	updated.TotalIGST = totals.TotalIGST
	updated.TotalTax = totals.TotalTax
	updated.GrandTotal = totals.GrandTotal
	updated.PaymentStatus = status
	updated.PaymentMethod = strings.TrimSpace(input.PaymentMethod)
	updated.PaidAmount = paid
	updated.BalanceDue = balance
	updated.TransactionRef = strings.TrimSpace(input.TransactionRef)
	updated.Notes = strings.TrimSpace(input.Notes)
	updated.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, &updated); err != nil {
		return domain.Invoice{}, err
	}
	return updated, nil
}

func (s *Service) UpdatePayment(ctx context.Context, id string, input domain.PaymentInput) (domain.Invoice, error) {
	// Unlike create, the payment endpoint has no default status: a blank
	// status here would silently flip a paid invoice back to unpaid.
	if strings.TrimSpace(input.Status) == "" {
		return domain.Invoice{}, domain.ErrInvalidStatus
	}
	status, err := normalizeStatus(input.Status)
	if err != nil {
		return domain.Invoice{}, err
	}

	invoice, err := s.find(ctx, id)
	if err != nil {
		return domain.Invoice{}, err
	}

	invoice.PaymentStatus = status
	if method := strings.TrimSpace(input.Method); method != "" {
		invoice.PaymentMethod = method
	}
	if ref := strings.TrimSpace(input.TransactionRef); ref != "" {
		invoice.TransactionRef = ref
	}
	paidAmount := input.PaidAmount
	if paidAmount == nil && status == domain.PaymentStatusPartial {
		// Omitted amount on a partial update keeps the recorded amount.
		prev := invoice.PaidAmount
		paidAmount = &prev
	}
	invoice.PaidAmount, invoice.BalanceDue = derivePayment(status, paidAmount, invoice.GrandTotal)
	invoice.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, invoice); err != nil {
		return domain.Invoice{}, err
	}
	return *invoice, nil
}

func (s *Service) SoftDelete(ctx context.Context, id string) (domain.Invoice, error) {
	invoice, err := s.find(ctx, id)
	if err != nil {
		return domain.Invoice{}, err
	}
	if invoice.IsDeleted {
		return *invoice, nil
	}

	now := time.Now().UTC()
	invoice.IsDeleted = true
	invoice.DeletedAt = &now
	invoice.UpdatedAt = now

	if err := s.repo.Update(ctx, s.db, invoice); err != nil {
		return domain.Invoice{}, err
	}
	return *invoice, nil
}

func (s *Service) Restore(ctx context.Context, id string) (domain.Invoice, error) {
	invoice, err := s.find(ctx, id)
	if err != nil {
		return domain.Invoice{}, err
	}
	if !invoice.IsDeleted {
		return *invoice, nil
	}

	invoice.IsDeleted = false
	invoice.DeletedAt = nil
	invoice.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, invoice); err != nil {
		return domain.Invoice{}, err
	}
	return *invoice, nil
}

func (s *Service) find(ctx context.Context, id string) (*domain.Invoice, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return nil, domain.ErrInvalidID
	}

	invoice, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	return invoice, nil
}

func (s *Service) validateInput(input domain.InvoiceInput) (snowflake.ID, error) {
	if strings.TrimSpace(input.CustomerName) == "" {
		return 0, domain.ErrInvalidCustomer
	}
	customerID, err := snowflake.ParseString(strings.TrimSpace(input.CustomerID))
	if err != nil || customerID == 0 {
		return 0, domain.ErrInvalidCustomer
	}
	if len(input.Items) == 0 {
		return 0, domain.ErrNoItems
	}
	return customerID, nil
}

func normalizeStatus(raw string) (domain.PaymentStatus, error) {
	status := domain.PaymentStatus(strings.ToLower(strings.TrimSpace(raw)))
	if status == "" {
		return domain.PaymentStatusUnpaid, nil
	}
	if !domain.ValidPaymentStatus(status) {
		return "", domain.ErrInvalidStatus
	}
	return status, nil
}

func computeItems(inputs []domain.ItemInput) ([]domain.InvoiceItem, tax.Totals) {
	lineInputs := make([]tax.LineInput, len(inputs))
	lines := make([]tax.LineAmounts, len(inputs))
	items := make([]domain.InvoiceItem, len(inputs))

	for i, in := range inputs {
		lineInputs[i] = tax.LineInput{
			Qty:            in.Qty,
			Rate:           in.Rate,
			DiscountAmount: in.DiscountAmount,
			CGSTPercent:    in.CGSTPercent,
			SGSTPercent:    in.SGSTPercent,
			IGSTPercent:    in.IGSTPercent,
		}
		lines[i] = tax.ComputeLine(lineInputs[i])

		uom := strings.TrimSpace(in.UOM)
		if uom == "" {
			uom = "pieces"
		}
		items[i] = domain.InvoiceItem{
			ProductName:    strings.TrimSpace(in.ProductName),
			Description:    strings.TrimSpace(in.Description),
			HSN:            strings.TrimSpace(in.HSN),
			Qty:            in.Qty,
			UOM:            uom,
			Rate:           in.Rate,
			Total:          lines[i].Total,
			DiscountAmount: in.DiscountAmount,
			CGSTPercent:    in.CGSTPercent,
			SGSTPercent:    in.SGSTPercent,
			IGSTPercent:    in.IGSTPercent,
			CGSTAmount:     lines[i].CGSTAmount,
			SGSTAmount:     lines[i].SGSTAmount,
			IGSTAmount:     lines[i].IGSTAmount,
			TaxableAmount:  lines[i].TaxableAmount,
			FinalAmount:    lines[i].FinalAmount,
		}
	}

	return items, tax.ComputeTotals(lineInputs, lines)
}

func derivePayment(status domain.PaymentStatus, paidAmount *float64, grandTotal float64) (paid, balance float64) {
	grand := decimal.NewFromFloat(grandTotal)

	switch status {
	case domain.PaymentStatusPaid:
		paidDec := grand
		if paidAmount != nil {
			paidDec = decimal.NewFromFloat(*paidAmount).Round(2)
		}
		return paidDec.InexactFloat64(), 0
	case domain.PaymentStatusPartial:
		paidDec := decimal.Zero
		if paidAmount != nil {
			paidDec = decimal.NewFromFloat(*paidAmount).Round(2)
		}
		balanceDec := grand.Sub(paidDec)
		if balanceDec.IsNegative() {
			balanceDec = decimal.Zero
		}
		return paidDec.InexactFloat64(), balanceDec.InexactFloat64()
	default:
		return 0, grand.InexactFloat64()
	}
}
