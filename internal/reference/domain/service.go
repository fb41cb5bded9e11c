package domain

import (
	"context"

	"github.com/udyamworks/billbook/internal/config"
)

// HSNFilter narrows HSN code lookups. An empty search returns everything.
type HSNFilter struct {
	Search string
}

type Service interface {
	GSTRates(ctx context.Context) []config.GSTRate
	HSNCodes(ctx context.Context, filter HSNFilter) []config.HSNCode
}
