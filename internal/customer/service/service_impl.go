package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	businessdomain "github.com/udyamworks/billbook/internal/business/domain"
	"github.com/udyamworks/billbook/internal/customer/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        domain.Repository
	BusinessSvc businessdomain.Service
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        domain.Repository
	businessSvc businessdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("customer.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		businessSvc: p.BusinessSvc,
	}
}

func (s *Service) Create(ctx context.Context, input domain.CustomerInput) (domain.Customer, error) {
	if strings.TrimSpace(input.Name) == "" {
		return domain.Customer{}, domain.ErrInvalidName
	}

	link, err := s.businessSvc.ResolveLink(ctx, businessdomain.LinkInput{
		HasBusiness: input.HasBusinessWithGST,
		Details:     input.Business,
	})
	if err != nil {
		return domain.Customer{}, err
	}

	now := time.Now().UTC()
	customer := domain.Customer{
		ID:        s.genID.Generate(),
		CreatedAt: now,
	}
	customer = applyInput(customer, input, link)

	if err := s.repo.Insert(ctx, s.db, &customer); err != nil {
		return domain.Customer{}, err
	}
	return customer, nil
}

func (s *Service) List(ctx context.Context, filter domain.ListFilter) ([]domain.Customer, error) {
	items, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}

	customers := make([]domain.Customer, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		customers = append(customers, *item)
	}
	return customers, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Customer, error) {
	parsed, err := s.parseID(id)
	if err != nil {
		return domain.Customer{}, err
	}

	customer, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Customer{}, err
	}
	if customer == nil {
		return domain.Customer{}, domain.ErrNotFound
	}
	return *customer, nil
}

func (s *Service) Update(ctx context.Context, id string, input domain.CustomerInput) (domain.Customer, error) {
	if strings.TrimSpace(input.Name) == "" {
		return domain.Customer{}, domain.ErrInvalidName
	}
	parsed, err := s.parseID(id)
	if err != nil {
		return domain.Customer{}, err
	}

	existing, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Customer{}, err
	}
	if existing == nil {
		return domain.Customer{}, domain.ErrNotFound
	}

	// Re-resolve on every update so a linked customer can transition back
	// to unlinked; the Business row itself is never deleted here.
	link, err := s.businessSvc.ResolveLink(ctx, businessdomain.LinkInput{
		HasBusiness: input.HasBusinessWithGST,
		Details:     input.Business,
	})
	if err != nil {
		return domain.Customer{}, err
	}

	updated := applyInput(*existing, input, link)
	if err := s.repo.Update(ctx, s.db, &updated); err != nil {
		return domain.Customer{}, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	parsed, err := s.parseID(id)
	if err != nil {
		return err
	}

	existing, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, s.db, parsed)
}

func applyInput(customer domain.Customer, input domain.CustomerInput, link businessdomain.Link) domain.Customer {
	customer.Name = strings.TrimSpace(input.Name)
	customer.Nickname = strings.TrimSpace(input.Nickname)
	customer.GSTIN = strings.TrimSpace(input.GSTIN)
	customer.Phone1 = strings.TrimSpace(input.Phone1)
	customer.Phone2 = strings.TrimSpace(input.Phone2)
	customer.Email1 = strings.TrimSpace(input.Email1)
	customer.Email2 = strings.TrimSpace(input.Email2)
	customer.Address1 = strings.TrimSpace(input.Address1)
	customer.City = strings.TrimSpace(input.City)
	customer.State = strings.TrimSpace(input.State)
	customer.Pincode = strings.TrimSpace(input.Pincode)
	customer.Address2 = strings.TrimSpace(input.Address2)
	customer.City2 = strings.TrimSpace(input.City2)
	customer.State2 = strings.TrimSpace(input.State2)
	customer.Pincode2 = strings.TrimSpace(input.Pincode2)
	customer.HasBusinessWithGST = input.HasBusinessWithGST && link.BusinessID != nil
	customer.BusinessID = link.BusinessID
	customer.BusinessName = link.BusinessName
	customer.UpdatedAt = time.Now().UTC()
	return customer
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
