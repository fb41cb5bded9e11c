package domain

import (
	"context"
	"errors"
	"time"
)

// ItemInput carries the caller-controlled fields of one invoice line.
// Derived fields (taxable, tax amounts, final) are recomputed server-side
// and caller-supplied values for them are ignored.
type ItemInput struct {
	ProductName    string
	Description    string
	HSN            string
	Qty            float64
	UOM            string
	Rate           float64
	DiscountAmount float64
	CGSTPercent    float64
	SGSTPercent    float64
	IGSTPercent    float64
}

// InvoiceInput is the full mutable payload for create and update. Updates
// are full-replace; the invoice number, id and creation timestamp survive
// from the existing row.
type InvoiceInput struct {
	InvoiceDate     *time.Time
	CustomerID      string
	CustomerName    string
	CustomerGSTIN   string
	CustomerAddress string
	CustomerPhone   string

	Items []ItemInput

	PaymentStatus  string
	PaymentMethod  string
	PaidAmount     *float64
	TransactionRef string

	Notes string
}

// PaymentInput updates only the payment state of an invoice.
type PaymentInput struct {
	Status         string
	Method         string
	PaidAmount     *float64
	TransactionRef string
}

// ListFilter narrows the invoice listing.
type ListFilter struct {
	Search         string
	StartDate      *time.Time
	EndDate        *time.Time
	Skip           int
	Limit          int
	IncludeDeleted bool
}

type Service interface {
	Create(ctx context.Context, input InvoiceInput) (Invoice, error)
	List(ctx context.Context, filter ListFilter) ([]Invoice, error)
	GetByID(ctx context.Context, id string) (Invoice, error)
	Update(ctx context.Context, id string, input InvoiceInput) (Invoice, error)
	UpdatePayment(ctx context.Context, id string, input PaymentInput) (Invoice, error)
	SoftDelete(ctx context.Context, id string) (Invoice, error)
	Restore(ctx context.Context, id string) (Invoice, error)
}

var (
	ErrInvalidCustomer = errors.New("invalid_customer")
	ErrNoItems         = errors.New("invalid_items")
	ErrInvalidStatus   = errors.New("invalid_payment_status")
	ErrInvalidID       = errors.New("invalid_id")
	ErrNotFound        = errors.New("not_found")
)
