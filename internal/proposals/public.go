package proposals

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pitchpartner/pitchpartner-backend/internal/layout"
	"github.com/pitchpartner/pitchpartner-backend/internal/render"
	"github.com/pitchpartner/pitchpartner-backend/pkg/config"
	"github.com/pitchpartner/pitchpartner-backend/pkg/db/models"
	"github.com/pitchpartner/pitchpartner-backend/pkg/enums"
	pkgerrors "github.com/pitchpartner/pitchpartner-backend/pkg/errors"
	"github.com/pitchpartner/pitchpartner-backend/pkg/logger"
	"github.com/pitchpartner/pitchpartner-backend/pkg/metrics"
)

// Italian messages surfaced verbatim on the public page.
const (
	msgNotFound  = "Proposta non trovata"
	msgExpired   = "Proposta scaduta"
	msgLinkInert = "Link non attivo"
)

type publicRepository interface {
	FindByPublicToken(ctx context.Context, token string) (*models.Proposal, error)
	MarkExpired(ctx context.Context, id uuid.UUID, now time.Time) error
}

type viewCounter interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	CounterKey(name string) string
}

// PublicView is the unauthenticated page: the rendered document plus the
// club header data. No internal ids leak through this shape.
type PublicView struct {
	ClubName    string      `json:"club_name"`
	ClubLogoURL string      `json:"club_logo_url,omitempty"`
	Titolo      string      `json:"titolo"`
	Stato       string      `json:"stato"`
	ValidUntil  *time.Time  `json:"valid_until,omitempty"`
	Page        render.Page `json:"page"`
	ViewCount   int64       `json:"view_count,omitempty"`
}

// PublicService resolves share tokens for the unauthenticated endpoint.
type PublicService interface {
	GetByToken(ctx context.Context, token string) (*PublicView, error)
}

type publicService struct {
	repo    publicRepository
	clubs   clubsRepository
	views   viewCounter
	cfg     config.ProposalsConfig
	logg    *logger.Logger
	metrics *metrics.ProposalMetrics
	now     func() time.Time
}

// NewPublicService builds the public proposal resolver. The view counter
// and metrics may be nil; lookups still work without them.
func NewPublicService(
	repo publicRepository,
	clubs clubsRepository,
	views viewCounter,
	cfg config.ProposalsConfig,
	logg *logger.Logger,
	pm *metrics.ProposalMetrics,
) (PublicService, error) {
	if repo == nil {
		return nil, fmt.Errorf("proposal repository required")
	}
	if clubs == nil {
		return nil, fmt.Errorf("clubs repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &publicService{
		repo:    repo,
		clubs:   clubs,
		views:   views,
		cfg:     cfg,
		logg:    logg,
		metrics: pm,
		now:     time.Now,
	}, nil
}

func (s *publicService) GetByToken(ctx context.Context, token string) (*PublicView, error) {
	row, err := s.repo.FindByPublicToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.incView("not_found")
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, msgNotFound)
		}
		s.incView("error")
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load proposal by token")
	}

	now := s.now()
	switch {
	case row.Stato == enums.ProposalStatusExpired:
		s.incView("expired")
		return nil, pkgerrors.New(pkgerrors.CodeGone, msgExpired)
	case row.ValidUntil != nil && now.After(*row.ValidUntil):
		// Lazy expiry: flip the row on read instead of running a sweeper.
		if err := s.repo.MarkExpired(ctx, row.ID, now); err != nil {
			s.logg.Error(ctx, "proposals.public.mark_expired", err)
		}
		s.incView("expired")
		return nil, pkgerrors.New(pkgerrors.CodeGone, msgExpired)
	case row.Stato == enums.ProposalStatusDraft:
		s.incView("inactive")
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, msgLinkInert)
	}

	club, err := s.clubs.FindByID(ctx, row.ClubID)
	if err != nil {
		s.incView("error")
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load club")
	}

	doc, ok := layout.Decode(row.LayoutJSON)
	if !ok {
		doc = layout.StandardTemplate()
	}
	page := render.RenderDocument(doc, renderData(club, row), render.Options{})

	view := &PublicView{
		ClubName:    club.Name,
		ClubLogoURL: stringOrEmpty(club.LogoURL),
		Titolo:      row.Titolo,
		Stato:       string(row.Stato),
		ValidUntil:  row.ValidUntil,
		Page:        page,
	}
	if s.views != nil {
		count, err := s.views.IncrWithTTL(ctx, s.views.CounterKey("proposal_views:"+token), s.cfg.PublicViewTTL)
		if err != nil {
			s.logg.Error(ctx, "proposals.public.view_counter", err)
		} else {
			view.ViewCount = count
		}
	}
	s.incView("ok")
	if s.metrics != nil {
		s.metrics.IncRender("public")
	}
	return view, nil
}

func (s *publicService) incView(outcome string) {
	if s.metrics != nil {
		s.metrics.IncPublicView(outcome)
	}
}
