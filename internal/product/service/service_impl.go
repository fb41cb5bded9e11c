package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/udyamworks/billbook/internal/product/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("product.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, input domain.ProductInput) (domain.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return domain.Product{}, domain.ErrInvalidName
	}

	existing, err := s.repo.FindByName(ctx, s.db, name)
	if err != nil {
		return domain.Product{}, err
	}
	if existing != nil {
		updated := applyInput(*existing, input)
		if err := s.repo.Update(ctx, s.db, &updated); err != nil {
			return domain.Product{}, err
		}
		return updated, nil
	}

	product := domain.Product{
		ID:        s.genID.Generate(),
		CreatedAt: time.Now().UTC(),
	}
	product = applyInput(product, input)

	if err := s.repo.Insert(ctx, s.db, &product); err != nil {
		return domain.Product{}, err
	}
	return product, nil
}

func (s *Service) List(ctx context.Context, filter domain.ListFilter) ([]domain.Product, error) {
	items, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		products = append(products, *item)
	}
	return products, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Product, error) {
	parsed, err := s.parseID(id)
	if err != nil {
		return domain.Product{}, err
	}

	product, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Product{}, err
	}
	if product == nil {
		return domain.Product{}, domain.ErrNotFound
	}
	return *product, nil
}

func (s *Service) Update(ctx context.Context, id string, input domain.ProductInput) (domain.Product, error) {
	if strings.TrimSpace(input.Name) == "" {
		return domain.Product{}, domain.ErrInvalidName
	}
	parsed, err := s.parseID(id)
	if err != nil {
		return domain.Product{}, err
	}

	existing, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Product{}, err
	}
	if existing == nil {
		return domain.Product{}, domain.ErrNotFound
	}

	updated := applyInput(*existing, input)
	if err := s.repo.Update(ctx, s.db, &updated); err != nil {
		return domain.Product{}, err
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

func applyInput(product domain.Product, input domain.ProductInput) domain.Product {
	product.Name = strings.TrimSpace(input.Name)
	product.Category = strings.TrimSpace(input.Category)
	product.Description = strings.TrimSpace(input.Description)
	product.HSN = strings.TrimSpace(input.HSN)
	product.DefaultTaxRate = input.DefaultTaxRate
	product.DefaultRate = input.DefaultRate
	product.UOM = strings.TrimSpace(input.UOM)
	if product.UOM == "" {
		product.UOM = domain.DefaultUOM
	}
	product.UpdatedAt = time.Now().UTC()
	return product
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
