package sponsors

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pitchpartner/pitchpartner-backend/pkg/db/models"
	pkgerrors "github.com/pitchpartner/pitchpartner-backend/pkg/errors"
	pkgpagination "github.com/pitchpartner/pitchpartner-backend/pkg/pagination"
)

type stubSponsorsRepo struct {
	rows     []models.Sponsor
	created  *models.Sponsor
	updated  *models.Sponsor
	lastOpts listQuery
}

func (s *stubSponsorsRepo) Create(_ context.Context, sponsor *models.Sponsor) (*models.Sponsor, error) {
	sponsor.ID = uuid.New()
	sponsor.CreatedAt = time.Now()
	s.created = sponsor
	return sponsor, nil
}

func (s *stubSponsorsRepo) FindByID(_ context.Context, clubID, id uuid.UUID) (*models.Sponsor, error) {
	for i := range s.rows {
		if s.rows[i].ID == id && s.rows[i].ClubID == clubID {
			cpy := s.rows[i]
			return &cpy, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubSponsorsRepo) Update(_ context.Context, sponsor *models.Sponsor) error {
	s.updated = sponsor
	return nil
}

func (s *stubSponsorsRepo) Delete(_ context.Context, clubID, id uuid.UUID) error {
	for _, row := range s.rows {
		if row.ID == id && row.ClubID == clubID {
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *stubSponsorsRepo) List(_ context.Context, opts listQuery) ([]models.Sponsor, error) {
	s.lastOpts = opts
	if opts.limit > 0 && len(s.rows) > opts.limit {
		return s.rows[:opts.limit], nil
	}
	return s.rows, nil
}

func seedSponsor(clubID uuid.UUID) models.Sponsor {
	website := "https://birrificiolocale.it"
	return models.Sponsor{
		ID:          uuid.New(),
		ClubID:      clubID,
		CompanyName: "Birrificio Locale",
		Website:     &website,
		CreatedAt:   time.Now().Add(-time.Hour),
	}
}

func TestCreateSponsor(t *testing.T) {
	repo := &stubSponsorsRepo{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	clubID := uuid.New()

	start := time.Now()
	end := start.AddDate(1, 0, 0)
	item, err := svc.Create(context.Background(), clubID, SponsorInput{
		CompanyName:   "Birrificio Locale",
		ContractStart: &start,
		ContractEnd:   &end,
	})
	if err != nil {
		t.Fatalf("create sponsor: %v", err)
	}
	if item.CompanyName != "Birrificio Locale" {
		t.Errorf("unexpected company name %q", item.CompanyName)
	}
	if repo.created == nil || repo.created.ClubID != clubID {
		t.Error("expected club-scoped create")
	}
}

func TestCreateSponsor_ContractWindow(t *testing.T) {
	svc, _ := NewService(&stubSponsorsRepo{})

	start := time.Now()
	end := start.AddDate(0, -1, 0)
	_, err := svc.Create(context.Background(), uuid.New(), SponsorInput{
		CompanyName:   "X",
		ContractStart: &start,
		ContractEnd:   &end,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for inverted window, got %v", err)
	}
}

func TestUpdateSponsor_PartialPatch(t *testing.T) {
	clubID := uuid.New()
	row := seedSponsor(clubID)
	repo := &stubSponsorsRepo{rows: []models.Sponsor{row}}
	svc, _ := NewService(repo)

	industry := "food & beverage"
	item, err := svc.Update(context.Background(), clubID, row.ID, UpdateSponsorInput{Industry: &industry})
	if err != nil {
		t.Fatalf("update sponsor: %v", err)
	}
	if item.Industry == nil || *item.Industry != industry {
		t.Errorf("expected industry patch, got %v", item.Industry)
	}
	if item.Website == nil || *item.Website != "https://birrificiolocale.it" {
		t.Errorf("untouched website lost: %v", item.Website)
	}
}

func TestUpdateSponsor_WindowRecheckedAgainstMergedRow(t *testing.T) {
	clubID := uuid.New()
	row := seedSponsor(clubID)
	start := time.Now()
	row.ContractStart = &start
	repo := &stubSponsorsRepo{rows: []models.Sponsor{row}}
	svc, _ := NewService(repo)

	end := start.AddDate(0, -2, 0)
	_, err := svc.Update(context.Background(), clubID, row.ID, UpdateSponsorInput{ContractEnd: &end})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.updated != nil {
		t.Error("row must not be persisted")
	}
}

func TestDeleteSponsor_NotFound(t *testing.T) {
	svc, _ := NewService(&stubSponsorsRepo{})

	err := svc.Delete(context.Background(), uuid.New(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListSponsors(t *testing.T) {
	clubID := uuid.New()
	repo := &stubSponsorsRepo{rows: []models.Sponsor{seedSponsor(clubID), seedSponsor(clubID)}}
	svc, _ := NewService(repo)

	res, err := svc.List(context.Background(), ListParams{
		ClubID:     clubID,
		ActiveOnly: true,
		Params:     pkgpagination.Params{Limit: 10},
	})
	if err != nil {
		t.Fatalf("list sponsors: %v", err)
	}
	if len(res.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(res.Items))
	}
	if res.Cursor != "" {
		t.Error("expected empty cursor on last page")
	}
	if !repo.lastOpts.activeOnly {
		t.Error("active filter not forwarded")
	}
}
