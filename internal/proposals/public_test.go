package proposals

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pitchpartner/pitchpartner-backend/pkg/config"
	"github.com/pitchpartner/pitchpartner-backend/pkg/db/models"
	"github.com/pitchpartner/pitchpartner-backend/pkg/enums"
	pkgerrors "github.com/pitchpartner/pitchpartner-backend/pkg/errors"
)

type stubPublicRepo struct {
	row     *models.Proposal
	expired bool
}

func (s *stubPublicRepo) FindByPublicToken(_ context.Context, token string) (*models.Proposal, error) {
	if s.row == nil || s.row.PublicToken == nil || *s.row.PublicToken != token {
		return nil, gorm.ErrRecordNotFound
	}
	cpy := *s.row
	return &cpy, nil
}

func (s *stubPublicRepo) MarkExpired(_ context.Context, _ uuid.UUID, _ time.Time) error {
	s.expired = true
	return nil
}

type stubViewCounter struct {
	count int64
	key   string
}

func (s *stubViewCounter) IncrWithTTL(_ context.Context, key string, _ time.Duration) (int64, error) {
	s.count++
	s.key = key
	return s.count, nil
}

func (s *stubViewCounter) CounterKey(name string) string {
	return "pp:counter:" + name
}

func publishedProposal(clubID uuid.UUID, token string) *models.Proposal {
	row := draftProposal(clubID)
	row.Stato = enums.ProposalStatusSent
	row.PublicToken = &token
	now := time.Now()
	row.PublishedAt = &now
	until := now.AddDate(0, 0, 10)
	row.ValidUntil = &until
	return row
}

func testPublicService(t *testing.T, repo *stubPublicRepo, clubs stubClubsRepo, views *stubViewCounter) PublicService {
	t.Helper()
	var counter viewCounter
	if views != nil {
		counter = views
	}
	svc, err := NewPublicService(repo, clubs, counter,
		config.ProposalsConfig{DefaultValidityDays: 30, PublicViewTTL: time.Hour}, testLogger(), nil)
	if err != nil {
		t.Fatalf("new public service: %v", err)
	}
	return svc
}

func TestPublicGetByToken_NotFound(t *testing.T) {
	svc := testPublicService(t, &stubPublicRepo{}, stubClubsRepo{}, nil)

	_, err := svc.GetByToken(context.Background(), "missing")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if typed.Message() != "Proposta non trovata" {
		t.Errorf("unexpected message %q", typed.Message())
	}
}

func TestPublicGetByToken_ExpiredStatus(t *testing.T) {
	clubID := uuid.New()
	row := publishedProposal(clubID, "tok")
	row.Stato = enums.ProposalStatusExpired
	svc := testPublicService(t, &stubPublicRepo{row: row}, stubClubsRepo{}, nil)

	_, err := svc.GetByToken(context.Background(), "tok")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeGone {
		t.Fatalf("expected gone, got %v", err)
	}
	if typed.Message() != "Proposta scaduta" {
		t.Errorf("unexpected message %q", typed.Message())
	}
}

func TestPublicGetByToken_LapsedValidityFlipsStatus(t *testing.T) {
	clubID := uuid.New()
	row := publishedProposal(clubID, "tok")
	past := time.Now().Add(-time.Hour)
	row.ValidUntil = &past
	repo := &stubPublicRepo{row: row}
	svc := testPublicService(t, repo, stubClubsRepo{}, nil)

	_, err := svc.GetByToken(context.Background(), "tok")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeGone {
		t.Fatalf("expected gone, got %v", err)
	}
	if !repo.expired {
		t.Error("expected lazy expiry write")
	}
}

func TestPublicGetByToken_DraftLinkInactive(t *testing.T) {
	clubID := uuid.New()
	row := publishedProposal(clubID, "tok")
	row.Stato = enums.ProposalStatusDraft
	svc := testPublicService(t, &stubPublicRepo{row: row}, stubClubsRepo{}, nil)

	_, err := svc.GetByToken(context.Background(), "tok")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if typed.Message() != "Link non attivo" {
		t.Errorf("unexpected message %q", typed.Message())
	}
}

func TestPublicGetByToken_Success(t *testing.T) {
	clubID := uuid.New()
	row := publishedProposal(clubID, "tok")
	club := &models.Club{ID: clubID, Name: "ASD Borgo"}
	views := &stubViewCounter{}
	svc := testPublicService(t, &stubPublicRepo{row: row}, stubClubsRepo{club: club}, views)

	view, err := svc.GetByToken(context.Background(), "tok")
	if err != nil {
		t.Fatalf("get by token: %v", err)
	}
	if view.ClubName != "ASD Borgo" {
		t.Errorf("unexpected club name %q", view.ClubName)
	}
	if len(view.Page.Sections) == 0 {
		t.Fatal("expected rendered page")
	}
	for _, section := range view.Page.Sections {
		for _, node := range section.Components {
			if _, ok := node.Props["editable"]; ok {
				t.Fatal("public page must not carry editing hints")
			}
		}
	}
	if view.ViewCount != 1 {
		t.Errorf("expected view count 1, got %d", view.ViewCount)
	}
	if views.key == "" {
		t.Error("expected namespaced counter key")
	}
}

func TestPublicGetByToken_AcceptedStillViewable(t *testing.T) {
	clubID := uuid.New()
	row := publishedProposal(clubID, "tok")
	row.Stato = enums.ProposalStatusAccepted
	club := &models.Club{ID: clubID, Name: "ASD Borgo"}
	svc := testPublicService(t, &stubPublicRepo{row: row}, stubClubsRepo{club: club}, nil)

	view, err := svc.GetByToken(context.Background(), "tok")
	if err != nil {
		t.Fatalf("get by token: %v", err)
	}
	if view.Stato != "accepted" {
		t.Errorf("unexpected stato %q", view.Stato)
	}
}
