package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/udyamworks/billbook/internal/business/domain"
	"github.com/udyamworks/billbook/pkg/db"
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
		log:   p.Log.Named("business.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, input domain.BusinessInput) (domain.Business, error) {
	if strings.TrimSpace(input.LegalName) == "" {
		return domain.Business{}, domain.ErrInvalidLegalName
	}

	business := s.newBusiness(input)
	if err := s.repo.Insert(ctx, s.db, &business); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Business{}, domain.ErrGSTINExists
		}
		return domain.Business{}, err
	}
	return business, nil
}

func (s *Service) List(ctx context.Context, filter domain.ListFilter) ([]domain.BusinessWithCustomers, error) {
	items, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}

	links, err := s.repo.CustomerLinks(ctx, s.db)
	if err != nil {
		return nil, err
	}
	namesByBusiness := make(map[snowflake.ID][]string, len(links))
	for _, link := range links {
		namesByBusiness[link.BusinessID] = append(namesByBusiness[link.BusinessID], link.CustomerName)
	}

	out := make([]domain.BusinessWithCustomers, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		names := namesByBusiness[item.ID]
		if names == nil {
			names = []string{}
		}
		out = append(out, domain.BusinessWithCustomers{
			Business:      *item,
			CustomerNames: names,
			CustomerCount: len(names),
		})
	}
	return out, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Business, error) {
	parsed, err := s.parseID(id)
	if err != nil {
		return domain.Business{}, err
	}

	business, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Business{}, err
	}
	if business == nil {
		return domain.Business{}, domain.ErrNotFound
	}
	return *business, nil
}

func (s *Service) Update(ctx context.Context, id string, input domain.BusinessInput) (domain.Business, error) {
	if strings.TrimSpace(input.LegalName) == "" {
		return domain.Business{}, domain.ErrInvalidLegalName
	}
	parsed, err := s.parseID(id)
	if err != nil {
		return domain.Business{}, err
	}

	existing, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Business{}, err
	}
	if existing == nil {
		return domain.Business{}, domain.ErrNotFound
	}

	updated := s.applyInput(*existing, input)
	if err := s.repo.Update(ctx, s.db, &updated); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Business{}, domain.ErrGSTINExists
		}
		return domain.Business{}, err
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

// ResolveLink implements lookup-or-create keyed by GSTIN. The insert goes
// first and unique-index conflicts are resolved by re-reading, so two
// concurrent customers declaring the same GSTIN converge on one row.
func (s *Service) ResolveLink(ctx context.Context, input domain.LinkInput) (domain.Link, error) {
	unlinked := domain.Link{BusinessName: "NA"}

	if !input.HasBusiness || input.Details == nil {
		return unlinked, nil
	}
	if strings.TrimSpace(input.Details.LegalName) == "" {
		return unlinked, nil
	}

	gstin := strings.TrimSpace(input.Details.GSTIN)
	if gstin != "" {
		existing, err := s.repo.FindByGSTIN(ctx, s.db, gstin)
		if err != nil {
			return domain.Link{}, err
		}
		if existing != nil {
			id := existing.ID
			return domain.Link{BusinessID: &id, BusinessName: existing.LegalName}, nil
		}
	}

	business := s.newBusiness(*input.Details)
	err := s.repo.Insert(ctx, s.db, &business)
	if err == nil {
		id := business.ID
		return domain.Link{BusinessID: &id, BusinessName: business.LegalName}, nil
	}
	if !db.IsDuplicateKeyErr(err) || gstin == "" {
		return domain.Link{}, err
	}

	// Lost the race: another request created this GSTIN between our lookup
	// and insert. The winner's record is authoritative.
	existing, ferr := s.repo.FindByGSTIN(ctx, s.db, gstin)
	if ferr != nil {
		return domain.Link{}, ferr
	}
	if existing == nil {
		return domain.Link{}, err
	}
	id := existing.ID
	return domain.Link{BusinessID: &id, BusinessName: existing.LegalName}, nil
}

func (s *Service) UpsertSettings(ctx context.Context, input domain.BusinessInput) (domain.Business, error) {
	if strings.TrimSpace(input.LegalName) == "" {
		return domain.Business{}, domain.ErrInvalidLegalName
	}

	// Two passes: the first create can lose to a concurrent upsert on the
	// settings primary key, in which case the second pass takes the update
	// path against the winner's row.
	for attempt := 0; attempt < 2; attempt++ {
		settings, err := s.repo.GetSettings(ctx, s.db)
		if err != nil {
			return domain.Business{}, err
		}

		if settings != nil {
			existing, err := s.repo.FindByID(ctx, s.db, settings.BusinessID)
			if err != nil {
				return domain.Business{}, err
			}
			if existing == nil {
				return domain.Business{}, domain.ErrNotFound
			}
			updated := s.applyInput(*existing, input)
			if err := s.repo.Update(ctx, s.db, &updated); err != nil {
				return domain.Business{}, err
			}
			settings.UpdatedAt = time.Now().UTC()
			if err := s.repo.TouchSettings(ctx, s.db, settings); err != nil {
				return domain.Business{}, err
			}
			return updated, nil
		}

		business := s.newBusiness(input)
		now := time.Now().UTC()
		err = s.db.Transaction(func(tx *gorm.DB) error {
			if err := s.repo.Insert(ctx, tx, &business); err != nil {
				return err
			}
			return s.repo.InsertSettings(ctx, tx, &domain.Settings{
				ID:         domain.SettingsRowID,
				BusinessID: business.ID,
				CreatedAt:  now,
				UpdatedAt:  now,
			})
		})
		if err == nil {
			return business, nil
		}
		if !db.IsDuplicateKeyErr(err) {
			return domain.Business{}, err
		}
		s.log.Debug("settings upsert lost create race, retrying as update")
	}

	return domain.Business{}, domain.ErrNotFound
}

func (s *Service) GetSettings(ctx context.Context) (*domain.Business, error) {
	settings, err := s.repo.GetSettings(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, nil
	}
	return s.repo.FindByID(ctx, s.db, settings.BusinessID)
}

func (s *Service) AttachLogo(ctx context.Context, contentType string, data []byte) (domain.Business, error) {
	settings, err := s.repo.GetSettings(ctx, s.db)
	if err != nil {
		return domain.Business{}, err
	}
	if settings == nil {
		return domain.Business{}, domain.ErrNotFound
	}

	business, err := s.repo.FindByID(ctx, s.db, settings.BusinessID)
	if err != nil {
		return domain.Business{}, err
	}
	if business == nil {
		return domain.Business{}, domain.ErrNotFound
	}

	business.Logo = fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))
	business.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, business); err != nil {
		return domain.Business{}, err
	}
	return *business, nil
}

func (s *Service) newBusiness(input domain.BusinessInput) domain.Business {
	now := time.Now().UTC()
	business := domain.Business{
		ID:        s.genID.Generate(),
		CreatedAt: now,
	}
	return s.applyInput(business, input)
}

func (s *Service) applyInput(business domain.Business, input domain.BusinessInput) domain.Business {
	business.LegalName = strings.TrimSpace(input.LegalName)
	business.TradeName = strings.TrimSpace(input.TradeName)
	business.GSTIN = nil
	if gstin := strings.TrimSpace(input.GSTIN); gstin != "" {
		business.GSTIN = &gstin
	}
	business.PAN = strings.TrimSpace(input.PAN)
	business.StateCode = strings.TrimSpace(input.StateCode)
	business.Phone1 = strings.TrimSpace(input.Phone1)
	business.Phone2 = strings.TrimSpace(input.Phone2)
	business.Email1 = strings.TrimSpace(input.Email1)
	business.Email2 = strings.TrimSpace(input.Email2)
	business.Address1 = strings.TrimSpace(input.Address1)
	business.Address2 = strings.TrimSpace(input.Address2)
	business.City = strings.TrimSpace(input.City)
	business.State = strings.TrimSpace(input.State)
	business.Pincode = strings.TrimSpace(input.Pincode)
	business.Website = strings.TrimSpace(input.Website)
	business.Notes = strings.TrimSpace(input.Notes)
	business.UpdatedAt = time.Now().UTC()
	return business
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
