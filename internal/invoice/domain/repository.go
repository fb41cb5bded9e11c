package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Invoice, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]*Invoice, error)
	Update(ctx context.Context, db *gorm.DB, invoice *Invoice) error

	// NextSequence atomically increments and returns the named counter.
	// Callers run it inside the same transaction as the dependent insert
	// so the row lock serializes allocation.
	NextSequence(ctx context.Context, db *gorm.DB, name string) (int64, error)
}
