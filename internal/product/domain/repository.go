package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, product *Product) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Product, error)
	FindByName(ctx context.Context, db *gorm.DB, name string) (*Product, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]*Product, error)
	Update(ctx context.Context, db *gorm.DB, product *Product) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
