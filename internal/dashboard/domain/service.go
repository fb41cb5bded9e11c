package domain

import (
	"context"
	"time"
)

// Filter bounds the sales window. Nil bounds mean all time.
type Filter struct {
	StartDate *time.Time
	EndDate   *time.Time
}

type Service interface {
	Summary(ctx context.Context, filter Filter) (Summary, error)
}
