package sponsors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/pitchpartner/pitchpartner-backend/pkg/db/models"
	pkgerrors "github.com/pitchpartner/pitchpartner-backend/pkg/errors"
	pkgpagination "github.com/pitchpartner/pitchpartner-backend/pkg/pagination"
)

type sponsorsRepository interface {
	Create(ctx context.Context, sponsor *models.Sponsor) (*models.Sponsor, error)
	FindByID(ctx context.Context, clubID, id uuid.UUID) (*models.Sponsor, error)
	Update(ctx context.Context, sponsor *models.Sponsor) error
	Delete(ctx context.Context, clubID, id uuid.UUID) error
	List(ctx context.Context, opts listQuery) ([]models.Sponsor, error)
}

// Service exposes sponsor roster operations.
type Service interface {
	Create(ctx context.Context, clubID uuid.UUID, input SponsorInput) (*ListItem, error)
	GetByID(ctx context.Context, clubID, id uuid.UUID) (*ListItem, error)
	Update(ctx context.Context, clubID, id uuid.UUID, input UpdateSponsorInput) (*ListItem, error)
	Delete(ctx context.Context, clubID, id uuid.UUID) error
	List(ctx context.Context, params ListParams) (*ListResult, error)
}

type service struct {
	repo sponsorsRepository
}

// SponsorInput holds the fields accepted when creating a sponsor.
type SponsorInput struct {
	CompanyName   string
	ContactName   *string
	ContactEmail  *string
	ContactPhone  *string
	Industry      *string
	LogoURL       *string
	Website       *string
	Notes         *string
	Tags          []string
	ContractStart *time.Time
	ContractEnd   *time.Time
}

// UpdateSponsorInput is a partial patch; nil fields are left untouched.
type UpdateSponsorInput struct {
	CompanyName   *string
	ContactName   *string
	ContactEmail  *string
	ContactPhone  *string
	Industry      *string
	LogoURL       *string
	Website       *string
	Notes         *string
	Tags          *[]string
	ContractStart *time.Time
	ContractEnd   *time.Time
}

// NewService builds a sponsor service backed by the provided repository.
func NewService(repo sponsorsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("sponsors repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, clubID uuid.UUID, input SponsorInput) (*ListItem, error) {
	if clubID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "club identity missing")
	}
	name := strings.TrimSpace(input.CompanyName)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "company_name is required")
	}
	if err := validateContractWindow(input.ContractStart, input.ContractEnd); err != nil {
		return nil, err
	}

	row := &models.Sponsor{
		ClubID:        clubID,
		CompanyName:   name,
		ContactName:   input.ContactName,
		ContactEmail:  input.ContactEmail,
		ContactPhone:  input.ContactPhone,
		Industry:      input.Industry,
		LogoURL:       input.LogoURL,
		Website:       input.Website,
		Notes:         input.Notes,
		Tags:          pq.StringArray(input.Tags),
		ContractStart: input.ContractStart,
		ContractEnd:   input.ContractEnd,
	}
	created, err := s.repo.Create(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create sponsor")
	}
	item := toListItem(*created)
	return &item, nil
}

func (s *service) GetByID(ctx context.Context, clubID, id uuid.UUID) (*ListItem, error) {
	row, err := s.repo.FindByID(ctx, clubID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "sponsor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup sponsor")
	}
	item := toListItem(*row)
	return &item, nil
}

func (s *service) Update(ctx context.Context, clubID, id uuid.UUID, input UpdateSponsorInput) (*ListItem, error) {
	row, err := s.repo.FindByID(ctx, clubID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "sponsor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup sponsor")
	}

	if input.CompanyName != nil {
		name := strings.TrimSpace(*input.CompanyName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "company_name cannot be empty")
		}
		row.CompanyName = name
	}
	if input.ContactName != nil {
		row.ContactName = input.ContactName
	}
	if input.ContactEmail != nil {
		row.ContactEmail = input.ContactEmail
	}
	if input.ContactPhone != nil {
		row.ContactPhone = input.ContactPhone
	}
	if input.Industry != nil {
		row.Industry = input.Industry
	}
	if input.LogoURL != nil {
		row.LogoURL = input.LogoURL
	}
	if input.Website != nil {
		row.Website = input.Website
	}
	if input.Notes != nil {
		row.Notes = input.Notes
	}
	if input.Tags != nil {
		row.Tags = pq.StringArray(*input.Tags)
	}
	if input.ContractStart != nil {
		row.ContractStart = input.ContractStart
	}
	if input.ContractEnd != nil {
		row.ContractEnd = input.ContractEnd
	}
	if err := validateContractWindow(row.ContractStart, row.ContractEnd); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update sponsor")
	}
	item := toListItem(*row)
	return &item, nil
}

func (s *service) Delete(ctx context.Context, clubID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, clubID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "sponsor not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete sponsor")
	}
	return nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.ClubID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "active club id required")
	}

	limit := pkgpagination.NormalizeLimit(params.Limit)
	query := listQuery{
		clubID:     params.ClubID,
		search:     strings.TrimSpace(params.Search),
		activeOnly: params.ActiveOnly,
		limit:      pkgpagination.LimitWithBuffer(params.Limit),
	}
	if params.Cursor != "" {
		cursor, err := pkgpagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.cursor = cursor
	}

	rows, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list sponsors")
	}

	nextCursor := ""
	if len(rows) > limit {
		nextCursor = pkgpagination.EncodeCursor(pkgpagination.Cursor{
			CreatedAt: rows[limit].CreatedAt,
			ID:        rows[limit].ID,
		})
		rows = rows[:limit]
	}

	items := make([]ListItem, len(rows))
	for i, row := range rows {
		items[i] = toListItem(row)
	}
	return &ListResult{Items: items, Cursor: nextCursor}, nil
}

func validateContractWindow(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return pkgerrors.New(pkgerrors.CodeValidation, "contract_end cannot precede contract_start")
	}
	return nil
}
