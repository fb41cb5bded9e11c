package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/udyamworks/billbook/internal/product/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Create(product).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Product, error) {
	var product domain.Product
	err := db.WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repo) FindByName(ctx context.Context, db *gorm.DB, name string) (*domain.Product, error) {
	var product domain.Product
	err := db.WithContext(ctx).First(&product, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

var productSortColumns = map[string]string{
	"name":       "name",
	"category":   "category",
	"hsn":        "hsn",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]*domain.Product, error) {
	stmt := db.WithContext(ctx).Model(&domain.Product{})

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		stmt = stmt.Where(
			"LOWER(name) LIKE ? OR LOWER(category) LIKE ? OR LOWER(hsn) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	column, ok := productSortColumns[filter.SortBy]
	if !ok {
		column = "name"
	}
	direction := "asc"
	if strings.EqualFold(filter.SortOrder, "desc") {
		direction = "desc"
	}

	var products []*domain.Product
	if err := stmt.Order(column + " " + direction + ", id desc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Save(product).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Product{}, "id = ?", id).Error
}
