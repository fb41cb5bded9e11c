package domain

import (
	"context"
	"errors"

	businessdomain "github.com/udyamworks/billbook/internal/business/domain"
)

// CustomerInput is the full mutable payload for create and update. Updates
// are full-replace: omitted fields are cleared, and the business link is
// re-resolved from HasBusinessWithGST + Business on every write.
type CustomerInput struct {
	Name     string
	Nickname string
	GSTIN    string
	Phone1   string
	Phone2   string
	Email1   string
	Email2   string
	Address1 string
	City     string
	State    string
	Pincode  string
	Address2 string
	City2    string
	State2   string
	Pincode2 string

	HasBusinessWithGST bool
	Business           *businessdomain.BusinessInput
}

// ListFilter narrows the customer listing.
type ListFilter struct {
	Search    string
	SortBy    string
	SortOrder string
}

type Service interface {
	Create(ctx context.Context, input CustomerInput) (Customer, error)
	List(ctx context.Context, filter ListFilter) ([]Customer, error)
	GetByID(ctx context.Context, id string) (Customer, error)
	Update(ctx context.Context, id string, input CustomerInput) (Customer, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidName = errors.New("invalid_name")
	ErrInvalidID   = errors.New("invalid_id")
	ErrNotFound    = errors.New("not_found")
)
