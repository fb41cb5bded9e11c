package service

import (
	"context"
	"strings"

	"github.com/udyamworks/billbook/internal/config"
	"github.com/udyamworks/billbook/internal/reference/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log    *zap.Logger
	Holder *config.ReferenceHolder
}

type Service struct {
	log    *zap.Logger
	holder *config.ReferenceHolder
}

func New(p Params) domain.Service {
	return &Service{
		log:    p.Log.Named("reference.service"),
		holder: p.Holder,
	}
}

func (s *Service) GSTRates(ctx context.Context) []config.GSTRate {
	rates := s.holder.Get().GSTRates
	out := make([]config.GSTRate, len(rates))
	copy(out, rates)
	return out
}

func (s *Service) HSNCodes(ctx context.Context, filter domain.HSNFilter) []config.HSNCode {
	codes := s.holder.Get().HSNCodes
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	if search == "" {
		out := make([]config.HSNCode, len(codes))
		copy(out, codes)
		return out
	}

	out := make([]config.HSNCode, 0, len(codes))
	for _, code := range codes {
		if strings.Contains(strings.ToLower(code.Code), search) ||
			strings.Contains(strings.ToLower(code.Description), search) {
			out = append(out, code)
		}
	}
	return out
}
