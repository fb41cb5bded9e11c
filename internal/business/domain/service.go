package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

// BusinessInput is the full mutable payload for create, update and the
// settings upsert. Updates are full-replace: omitted fields are cleared.
type BusinessInput struct {
	LegalName string
	TradeName string
	GSTIN     string
	PAN       string
	StateCode string
	Phone1    string
	Phone2    string
	Email1    string
	Email2    string
	Address1  string
	Address2  string
	City      string
	State     string
	Pincode   string
	Website   string
	Notes     string
}

// ListFilter narrows the business listing.
type ListFilter struct {
	Search    string
	SortBy    string
	SortOrder string
}

// BusinessWithCustomers is a listing row enriched with linked customers.
type BusinessWithCustomers struct {
	Business
	CustomerNames []string `json:"customer_names"`
	CustomerCount int      `json:"customer_count"`
}

// Link is the resolved business reference attached to a customer.
type Link struct {
	BusinessID   *snowflake.ID
	BusinessName string
}

// LinkInput describes a customer's declared business affiliation.
type LinkInput struct {
	HasBusiness bool
	Details     *BusinessInput
}

type Service interface {
	Create(ctx context.Context, input BusinessInput) (Business, error)
	List(ctx context.Context, filter ListFilter) ([]BusinessWithCustomers, error)
	GetByID(ctx context.Context, id string) (Business, error)
	Update(ctx context.Context, id string, input BusinessInput) (Business, error)
	Delete(ctx context.Context, id string) error

	// ResolveLink finds or creates the business a customer declares, keyed
	// by GSTIN. Existing businesses win over submitted details.
	ResolveLink(ctx context.Context, input LinkInput) (Link, error)

	UpsertSettings(ctx context.Context, input BusinessInput) (Business, error)
	GetSettings(ctx context.Context) (*Business, error)
	AttachLogo(ctx context.Context, contentType string, data []byte) (Business, error)
}

var (
	ErrInvalidLegalName = errors.New("invalid_legal_name")
	ErrInvalidID        = errors.New("invalid_id")
	ErrGSTINExists      = errors.New("gstin_exists")
	ErrNotFound         = errors.New("not_found")
)
