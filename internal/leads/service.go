package leads

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
	"github.com/pitchpartner/pitchpartner-backend/pkg/enums"
	pkgerrors "github.com/pitchpartner/pitchpartner-backend/pkg/errors"
	pkgpagination "github.com/pitchpartner/pitchpartner-backend/pkg/pagination"
)

type leadsRepository interface {
	Create(ctx context.Context, lead *models.Lead) (*models.Lead, error)
	FindByID(ctx context.Context, clubID, id uuid.UUID) (*models.Lead, error)
	Update(ctx context.Context, lead *models.Lead) error
	Delete(ctx context.Context, clubID, id uuid.UUID) error
	List(ctx context.Context, opts listQuery) ([]models.Lead, error)
}

// Service exposes lead pipeline operations.
type Service interface {
	Create(ctx context.Context, clubID uuid.UUID, input LeadInput) (*ListItem, error)
	GetByID(ctx context.Context, clubID, id uuid.UUID) (*ListItem, error)
	Update(ctx context.Context, clubID, id uuid.UUID, input UpdateLeadInput) (*ListItem, error)
	Delete(ctx context.Context, clubID, id uuid.UUID) error
	List(ctx context.Context, params ListParams) (*ListResult, error)
}

type service struct {
	repo leadsRepository
}

// LeadInput holds the fields accepted when creating a lead.
type LeadInput struct {
	CompanyName  string
	ContactName  *string
	ContactEmail *string
	ContactPhone *string
	Industry     *string
	Status       *enums.LeadStatus
	Source       *string
	Notes        *string
	Tags         []string
}

// UpdateLeadInput is a partial patch; nil fields are left untouched.
type UpdateLeadInput struct {
	CompanyName   *string
	ContactName   *string
	ContactEmail  *string
	ContactPhone  *string
	Industry      *string
	Status        *enums.LeadStatus
	Source        *string
	Notes         *string
	Tags          *[]string
	LastContactAt *time.Time
}

// NewService builds a lead service backed by the provided repository.
func NewService(repo leadsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("leads repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, clubID uuid.UUID, input LeadInput) (*ListItem, error) {
	if clubID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "club identity missing")
	}
	name := strings.TrimSpace(input.CompanyName)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "company_name is required")
	}

	status := enums.LeadStatusNew
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid lead status")
		}
		status = *input.Status
	}

	row := &models.Lead{
		ClubID:       clubID,
		CompanyName:  name,
		ContactName:  input.ContactName,
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
		Industry:     input.Industry,
		Status:       status,
		Source:       input.Source,
		Notes:        input.Notes,
		Tags:         pq.StringArray(input.Tags),
	}
	created, err := s.repo.Create(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create lead")
	}
	item := toListItem(*created)
	return &item, nil
}

func (s *service) GetByID(ctx context.Context, clubID, id uuid.UUID) (*ListItem, error) {
	row, err := s.repo.FindByID(ctx, clubID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "lead not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup lead")
	}
	item := toListItem(*row)
	return &item, nil
}

func (s *service) Update(ctx context.Context, clubID, id uuid.UUID, input UpdateLeadInput) (*ListItem, error) {
	row, err := s.repo.FindByID(ctx, clubID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "lead not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup lead")
	}

	if input.CompanyName != nil {
		name := strings.TrimSpace(*input.CompanyName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "company_name cannot be empty")
		}
		row.CompanyName = name
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid lead status")
		}
		row.Status = *input.Status
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
	if input.Source != nil {
		row.Source = input.Source
	}
	if input.Notes != nil {
		row.Notes = input.Notes
	}
	if input.Tags != nil {
		row.Tags = pq.StringArray(*input.Tags)
	}
	if input.LastContactAt != nil {
		row.LastContactAt = input.LastContactAt
	}

	if err := s.repo.Update(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update lead")
	}
	item := toListItem(*row)
	return &item, nil
}

func (s *service) Delete(ctx context.Context, clubID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, clubID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "lead not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete lead")
	}
	return nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.ClubID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "active club id required")
	}
	if params.Status != nil && !params.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid lead status")
	}

	limit := pkgpagination.NormalizeLimit(params.Limit)
	query := listQuery{
		clubID: params.ClubID,
		status: params.Status,
		search: strings.TrimSpace(params.Search),
		limit:  pkgpagination.LimitWithBuffer(params.Limit),
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
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list leads")
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
