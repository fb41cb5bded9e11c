package domain

import (
	"context"
	"errors"
)

// ProductInput is the full mutable payload for create and update.
type ProductInput struct {
	Name           string
	Category       string
	Description    string
	HSN            string
	DefaultTaxRate *float64
	DefaultRate    *float64
	UOM            string
}

// ListFilter narrows the product listing.
type ListFilter struct {
	Search    string
	SortBy    string
	SortOrder string
}

type Service interface {
	// Create upserts by name: posting an existing product name updates
	// that product in place instead of creating a duplicate.
	Create(ctx context.Context, input ProductInput) (Product, error)
	List(ctx context.Context, filter ListFilter) ([]Product, error)
	GetByID(ctx context.Context, id string) (Product, error)
	Update(ctx context.Context, id string, input ProductInput) (Product, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidName = errors.New("invalid_name")
	ErrInvalidID   = errors.New("invalid_id")
	ErrNotFound    = errors.New("not_found")
)
