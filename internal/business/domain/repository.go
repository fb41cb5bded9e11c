package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// CustomerLink is a denormalized view of one customer attached to a business.
type CustomerLink struct {
	BusinessID   snowflake.ID
	CustomerName string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, business *Business) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Business, error)
	FindByGSTIN(ctx context.Context, db *gorm.DB, gstin string) (*Business, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]*Business, error)
	Update(ctx context.Context, db *gorm.DB, business *Business) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	CustomerLinks(ctx context.Context, db *gorm.DB) ([]CustomerLink, error)

	GetSettings(ctx context.Context, db *gorm.DB) (*Settings, error)
	InsertSettings(ctx context.Context, db *gorm.DB, settings *Settings) error
	TouchSettings(ctx context.Context, db *gorm.DB, settings *Settings) error
}
