package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	invoicedomain "github.com/udyamworks/billbook/internal/invoice/domain"
)

// Due is one invoice with money outstanding. Amount is the grand total
// for unpaid invoices and the recorded balance for partially paid ones.
type Due struct {
	InvoiceID     snowflake.ID                `json:"invoice_id"`
	InvoiceNumber string                      `json:"invoice_number"`
	CustomerName  string                      `json:"customer_name"`
	InvoiceDate   time.Time                   `json:"invoice_date"`
	PaymentStatus invoicedomain.PaymentStatus `json:"payment_status"`
	Amount        float64                     `json:"amount"`
}

// Summary is the dashboard aggregate. Sales figures honor the requested
// date window; dues always reflect the full ledger.
type Summary struct {
	TotalSales       float64 `json:"total_sales"`
	InvoiceCount     int64   `json:"invoice_count"`
	TotalPendingDues float64 `json:"total_pending_dues"`
	Dues             []Due   `json:"dues"`
	TopDues          []Due   `json:"top_dues"`
}
