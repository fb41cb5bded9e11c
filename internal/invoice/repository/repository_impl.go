package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/udyamworks/billbook/internal/invoice/domain"
	pkgdb "github.com/udyamworks/billbook/pkg/db"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	return db.WithContext(ctx).Create(invoice).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := db.WithContext(ctx).First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]*domain.Invoice, error) {
	stmt := db.WithContext(ctx).Model(&domain.Invoice{})

	if !filter.IncludeDeleted {
		stmt = stmt.Where("is_deleted = ?", false)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		stmt = stmt.Where(
			"LOWER(invoice_number) LIKE ? OR LOWER(customer_name) LIKE ?",
			pattern, pattern,
		)
	}
	if filter.StartDate != nil {
		stmt = stmt.Where("invoice_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		stmt = stmt.Where("invoice_date <= ?", *filter.EndDate)
	}
	if filter.Skip > 0 {
		stmt = stmt.Offset(filter.Skip)
	}
	if filter.Limit > 0 {
		stmt = stmt.Limit(filter.Limit)
	}

	var invoices []*domain.Invoice
	if err := stmt.Order("created_at desc, id desc").Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	return db.WithContext(ctx).Save(invoice).Error
}

func (r *repo) NextSequence(ctx context.Context, db *gorm.DB, name string) (int64, error) {
	res := db.WithContext(ctx).Exec(`UPDATE sequences SET value = value + 1 WHERE name = ?`, name)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		// Counter row missing (fresh database): seed it, racing inserts
		// collapse onto the primary key and fall back to the update.
		err := db.WithContext(ctx).Exec(`INSERT INTO sequences (name, value) VALUES (?, 1)`, name).Error
		if err == nil {
			return 1, nil
		}
		if !pkgdb.IsDuplicateKeyErr(err) {
			return 0, err
		}
		if err := db.WithContext(ctx).Exec(`UPDATE sequences SET value = value + 1 WHERE name = ?`, name).Error; err != nil {
			return 0, err
		}
	}

	var value int64
	if err := db.WithContext(ctx).Raw(`SELECT value FROM sequences WHERE name = ?`, name).Scan(&value).Error; err != nil {
		return 0, err
	}
	return value, nil
}
