package repository

import (
	"context"
	"time"

	"github.com/udyamworks/billbook/internal/dashboard/domain"
	invoicedomain "github.com/udyamworks/billbook/internal/invoice/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Sales(ctx context.Context, db *gorm.DB, start, end *time.Time) (domain.SalesStats, error) {
	stmt := db.WithContext(ctx).
		Model(&invoicedomain.Invoice{}).
		Where("is_deleted = ?", false)
	if start != nil {
		stmt = stmt.Where("invoice_date >= ?", *start)
	}
	if end != nil {
		stmt = stmt.Where("invoice_date <= ?", *end)
	}

	var row struct {
		TotalSales   float64
		InvoiceCount int64
	}
	err := stmt.
		Select("COALESCE(SUM(grand_total), 0) AS total_sales, COUNT(*) AS invoice_count").
		Scan(&row).Error
	if err != nil {
		return domain.SalesStats{}, err
	}
	return domain.SalesStats{TotalSales: row.TotalSales, InvoiceCount: row.InvoiceCount}, nil
}

func (r *repo) PendingDues(ctx context.Context, db *gorm.DB) ([]domain.Due, error) {
	var dues []domain.Due
	err := db.WithContext(ctx).
		Model(&invoicedomain.Invoice{}).
		Select(`id AS invoice_id, invoice_number, customer_name, invoice_date, payment_status,
			CASE payment_status WHEN ? THEN grand_total ELSE balance_due END AS amount`,
			invoicedomain.PaymentStatusUnpaid).
		Where("is_deleted = ?", false).
		Where("payment_status IN ?", []invoicedomain.PaymentStatus{
			invoicedomain.PaymentStatusUnpaid,
			invoicedomain.PaymentStatusPartial,
		}).
		Order("invoice_date desc, id desc").
		Scan(&dues).Error
	if err != nil {
		return nil, err
	}
	return dues, nil
}
