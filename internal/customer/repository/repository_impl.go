package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/udyamworks/billbook/internal/customer/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	return db.WithContext(ctx).Create(customer).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Customer, error) {
	var customer domain.Customer
	err := db.WithContext(ctx).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

var customerSortColumns = map[string]string{
	"name":       "name",
	"nickname":   "nickname",
	"city":       "city",
	"state":      "state",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]*domain.Customer, error) {
	stmt := db.WithContext(ctx).Model(&domain.Customer{})

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		stmt = stmt.Where(
			"LOWER(name) LIKE ? OR LOWER(nickname) LIKE ? OR LOWER(phone_1) LIKE ? OR LOWER(city) LIKE ? OR LOWER(state) LIKE ? OR LOWER(pincode) LIKE ?",
			pattern, pattern, pattern, pattern, pattern, pattern,
		)
	}

	column, ok := customerSortColumns[filter.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "desc"
	if strings.EqualFold(filter.SortOrder, "asc") {
		direction = "asc"
	}

	var customers []*domain.Customer
	if err := stmt.Order(column + " " + direction + ", id desc").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	return db.WithContext(ctx).Save(customer).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Customer{}, "id = ?", id).Error
}
