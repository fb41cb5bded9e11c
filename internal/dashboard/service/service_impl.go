package service

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/udyamworks/billbook/internal/dashboard/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const topDuesLimit = 5

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("dashboard.service"),
		repo: p.Repo,
	}
}

func (s *Service) Summary(ctx context.Context, filter domain.Filter) (domain.Summary, error) {
	sales, err := s.repo.Sales(ctx, s.db, filter.StartDate, filter.EndDate)
	if err != nil {
		return domain.Summary{}, err
	}

	// Dues deliberately ignore the date window: an old unpaid invoice
	// is still owed money.
	dues, err := s.repo.PendingDues(ctx, s.db)
	if err != nil {
		return domain.Summary{}, err
	}

	total := decimal.Zero
	for _, due := range dues {
		total = total.Add(decimal.NewFromFloat(due.Amount))
	}

	top := make([]domain.Due, len(dues))
	copy(top, dues)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Amount > top[j].Amount
	})
	if len(top) > topDuesLimit {
		top = top[:topDuesLimit]
	}

	return domain.Summary{
		TotalSales:       sales.TotalSales,
		InvoiceCount:     sales.InvoiceCount,
		TotalPendingDues: total.Round(2).InexactFloat64(),
		Dues:             dues,
		TopDues:          top,
	}, nil
}
