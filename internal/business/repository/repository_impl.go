package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/udyamworks/billbook/internal/business/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, business *domain.Business) error {
	return db.WithContext(ctx).Create(business).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Business, error) {
	var business domain.Business
	err := db.WithContext(ctx).First(&business, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &business, nil
}

func (r *repo) FindByGSTIN(ctx context.Context, db *gorm.DB, gstin string) (*domain.Business, error) {
	var business domain.Business
	err := db.WithContext(ctx).First(&business, "gstin = ?", gstin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &business, nil
}

var businessSortColumns = map[string]string{
	"legal_name": "legal_name",
	"trade_name": "trade_name",
	"city":       "city",
	"state":      "state",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]*domain.Business, error) {
	stmt := db.WithContext(ctx).Model(&domain.Business{})

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		stmt = stmt.Where(
			"LOWER(legal_name) LIKE ? OR LOWER(trade_name) LIKE ? OR LOWER(city) LIKE ? OR LOWER(state) LIKE ? OR LOWER(COALESCE(gstin, '')) LIKE ?",
			pattern, pattern, pattern, pattern, pattern,
		)
	}

	column, ok := businessSortColumns[filter.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "desc"
	if strings.EqualFold(filter.SortOrder, "asc") {
		direction = "asc"
	}

	var businesses []*domain.Business
	if err := stmt.Order(column + " " + direction + ", id desc").Find(&businesses).Error; err != nil {
		return nil, err
	}
	return businesses, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, business *domain.Business) error {
	return db.WithContext(ctx).Save(business).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Business{}, "id = ?", id).Error
}

func (r *repo) CustomerLinks(ctx context.Context, db *gorm.DB) ([]domain.CustomerLink, error) {
	var rows []domain.CustomerLink
	err := db.WithContext(ctx).Raw(
		`SELECT business_id, name AS customer_name
		 FROM customers
		 WHERE business_id IS NOT NULL
		 ORDER BY name ASC`,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) GetSettings(ctx context.Context, db *gorm.DB) (*domain.Settings, error) {
	var settings domain.Settings
	err := db.WithContext(ctx).First(&settings, "id = ?", domain.SettingsRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *repo) InsertSettings(ctx context.Context, db *gorm.DB, settings *domain.Settings) error {
	return db.WithContext(ctx).Create(settings).Error
}

func (r *repo) TouchSettings(ctx context.Context, db *gorm.DB, settings *domain.Settings) error {
	return db.WithContext(ctx).Save(settings).Error
}
