package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// SalesStats holds the aggregated sales figures for a date window.
type SalesStats struct {
	TotalSales   float64
	InvoiceCount int64
}

type Repository interface {
	Sales(ctx context.Context, db *gorm.DB, start, end *time.Time) (SalesStats, error)
	PendingDues(ctx context.Context, db *gorm.DB) ([]Due, error)
}
