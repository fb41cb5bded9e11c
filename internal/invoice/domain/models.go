// Package domain contains persistence models for invoices.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// PaymentStatus represents invoice payment lifecycle states.
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// ValidPaymentStatus reports whether value is a known payment status.
func ValidPaymentStatus(value PaymentStatus) bool {
	switch value {
	case PaymentStatusUnpaid, PaymentStatusPartial, PaymentStatusPaid:
		return true
	default:
		return false
	}
}

// InvoiceItem is one line of an invoice. Items are embedded in the invoice
// row as a JSON list: they are a point-in-time snapshot of catalog values,
// never a live product reference, and are only ever read with their parent.
type InvoiceItem struct {
	ProductName string `json:"product_name"`
	Description string `json:"description,omitempty"`
	HSN         string `json:"hsn,omitempty"`

	Qty            float64 `json:"qty"`
	UOM            string  `json:"uom"`
	Rate           float64 `json:"rate"`
	Total          float64 `json:"total"`
	DiscountAmount float64 `json:"discount_amount"`

	CGSTPercent float64 `json:"cgst_percent"`
	SGSTPercent float64 `json:"sgst_percent"`
	IGSTPercent float64 `json:"igst_percent"`
	CGSTAmount  float64 `json:"cgst_amount"`
	SGSTAmount  float64 `json:"sgst_amount"`
	IGSTAmount  float64 `json:"igst_amount"`

	TaxableAmount float64 `json:"taxable_amount"`
	FinalAmount   float64 `json:"final_amount"`
}

// Invoice is a GST invoice. The customer fields are a snapshot copied at
// creation so later customer edits never alter history. Deletion is a soft
// flag with a restore path; rows are never physically removed.
type Invoice struct {
	ID            snowflake.ID `json:"id" gorm:"primaryKey"`
	InvoiceNumber string       `json:"invoice_number" gorm:"type:text;not null;uniqueIndex:ux_invoices_number"`
	InvoiceDate   time.Time    `json:"invoice_date" gorm:"not null;index"`

	CustomerID      snowflake.ID `json:"customer_id" gorm:"not null;index"`
	CustomerName    string       `json:"customer_name" gorm:"type:text;not null"`
	CustomerGSTIN   string       `json:"customer_gstin,omitempty" gorm:"type:text"`
	CustomerAddress string       `json:"customer_address,omitempty" gorm:"type:text"`
	CustomerPhone   string       `json:"customer_phone,omitempty" gorm:"type:text"`

	Items datatypes.JSONSlice[InvoiceItem] `json:"items" gorm:"not null"`

	Subtotal      float64 `json:"subtotal" gorm:"not null;default:0"`
	TotalDiscount float64 `json:"total_discount" gorm:"not null;default:0"`
	TotalCGST     float64 `json:"total_cgst" gorm:"not null;default:0"`
	TotalSGST     float64 `json:"total_sgst" gorm:"not null;default:0"`
	TotalIGST     float64 `json:"total_igst" gorm:"not null;default:0"`
	TotalTax      float64 `json:"total_tax" gorm:"not null;default:0"`
	GrandTotal    float64 `json:"grand_total" gorm:"not null;default:0"`

	PaymentStatus  PaymentStatus `json:"payment_status" gorm:"type:text;not null;default:'unpaid';index"`
	PaymentMethod  string        `json:"payment_method,omitempty" gorm:"type:text"`
	PaidAmount     float64       `json:"paid_amount" gorm:"not null;default:0"`
	BalanceDue     float64       `json:"balance_due" gorm:"not null;default:0"`
	TransactionRef string        `json:"transaction_ref,omitempty" gorm:"type:text"`

	Notes string `json:"notes,omitempty" gorm:"type:text"`

	IsDeleted bool       `json:"is_deleted" gorm:"not null;default:false;index"`
	DeletedAt *time.Time `json:"deleted_at"`

	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// Sequence is a named monotonic counter. Invoice numbers come from an
// atomic increment on this row, never from counting invoice documents, so
// concurrent creations can not allocate the same number.
type Sequence struct {
	Name  string `gorm:"primaryKey;type:text"`
	Value int64  `gorm:"not null;default:0"`
}

// TableName sets the database table name.
func (Sequence) TableName() string { return "sequences" }

// SequenceInvoices names the invoice number counter.
const SequenceInvoices = "invoices"
