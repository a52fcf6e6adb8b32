package proposals

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/pitchpartner/pitchpartner-backend/internal/layout"
	"github.com/pitchpartner/pitchpartner-backend/internal/render"
	"github.com/pitchpartner/pitchpartner-backend/pkg/config"
	"github.com/pitchpartner/pitchpartner-backend/pkg/db/models"
	"github.com/pitchpartner/pitchpartner-backend/pkg/enums"
	pkgerrors "github.com/pitchpartner/pitchpartner-backend/pkg/errors"
	"github.com/pitchpartner/pitchpartner-backend/pkg/logger"
	"github.com/pitchpartner/pitchpartner-backend/pkg/metrics"
	"github.com/pitchpartner/pitchpartner-backend/pkg/pagination"
	"github.com/pitchpartner/pitchpartner-backend/pkg/security"
)

type proposalRepository interface {
	FindByID(ctx context.Context, clubID, id uuid.UUID) (*models.Proposal, error)
	Create(ctx context.Context, p *models.Proposal) (*models.Proposal, error)
	SaveVersioned(ctx context.Context, p *models.Proposal, loadedVersion int, changes itemChanges) error
	Delete(ctx context.Context, clubID, id uuid.UUID) error
	List(ctx context.Context, clubID uuid.UUID, filter ListFilter, cursor *pagination.Cursor, limit int) ([]models.Proposal, error)
}

type clubsRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Club, error)
}

type inventoryLister interface {
	ListActive(ctx context.Context, clubID uuid.UUID) ([]models.InventoryAsset, error)
	ListCategories(ctx context.Context, clubID uuid.UUID) ([]models.AssetCategory, error)
}

type leadsLister interface {
	ListAll(ctx context.Context, clubID uuid.UUID) ([]models.Lead, error)
}

type sponsorsLister interface {
	ListAll(ctx context.Context, clubID uuid.UUID) ([]models.Sponsor, error)
}

// Service exposes proposal operations for the authenticated CRM surface.
type Service interface {
	Create(ctx context.Context, clubID uuid.UUID, input CreateInput) (*ProposalDTO, error)
	GetByID(ctx context.Context, clubID, id uuid.UUID) (*ProposalDTO, error)
	List(ctx context.Context, clubID uuid.UUID, input ListInput) ([]SummaryDTO, string, error)
	Save(ctx context.Context, clubID, id uuid.UUID, input SaveInput) (*ProposalDTO, error)
	ApplyLayoutActions(ctx context.Context, clubID, id uuid.UUID, version int, actions []layout.Action) (*ProposalDTO, error)
	Preview(ctx context.Context, clubID, id uuid.UUID) (*render.Page, error)
	Publish(ctx context.Context, clubID, id uuid.UUID, input PublishInput) (*ProposalDTO, error)
	UpdateStatus(ctx context.Context, clubID, id uuid.UUID, stato enums.ProposalStatus) (*ProposalDTO, error)
	Delete(ctx context.Context, clubID, id uuid.UUID) error
	Bootstrap(ctx context.Context, clubID uuid.UUID, proposalID *uuid.UUID) (*BootstrapDTO, error)
}

type service struct {
	repo      proposalRepository
	clubs     clubsRepository
	inventory inventoryLister
	leads     leadsLister
	sponsors  sponsorsLister
	cfg       config.ProposalsConfig
	logg      *logger.Logger
	metrics   *metrics.ProposalMetrics
	now       func() time.Time
}

// NewService builds a proposal service with the provided dependencies.
// Metrics may be nil; everything else is required.
func NewService(
	repo proposalRepository,
	clubs clubsRepository,
	inventory inventoryLister,
	leads leadsLister,
	sponsors sponsorsLister,
	cfg config.ProposalsConfig,
	logg *logger.Logger,
	pm *metrics.ProposalMetrics,
) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("proposal repository required")
	}
	if clubs == nil {
		return nil, fmt.Errorf("clubs repository required")
	}
	if inventory == nil || leads == nil || sponsors == nil {
		return nil, fmt.Errorf("bootstrap repositories required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:      repo,
		clubs:     clubs,
		inventory: inventory,
		leads:     leads,
		sponsors:  sponsors,
		cfg:       cfg,
		logg:      logg,
		metrics:   pm,
		now:       time.Now,
	}, nil
}

// CreateInput holds the fields accepted when opening a new draft.
type CreateInput struct {
	Titolo              string
	DestinatarioAzienda string
	LeadID              *uuid.UUID
	SponsorID           *uuid.UUID
}

// SaveInput is the full builder save payload: metadata, line items and the
// layout document, guarded by the version the client loaded.
type SaveInput struct {
	Version               int
	Titolo                string
	DestinatarioAzienda   string
	DestinatarioReferente *string
	DestinatarioEmail     *string
	LeadID                *uuid.UUID
	SponsorID             *uuid.UUID
	Messaggio             *string
	Termini               *string
	ScontoPercentuale     decimal.Decimal
	ValidUntil            *time.Time
	Items                 []ItemDTO
	Layout                *layout.Document
}

// ListInput narrows and paginates the proposal listing.
type ListInput struct {
	Stato  *enums.ProposalStatus
	Search string
	Cursor string
	Limit  int
}

// PublishInput tunes the public link created on publish.
type PublishInput struct {
	ValidUntil *time.Time
}

// BootstrapDTO is the builder's initial payload: the proposal (when editing)
// plus the pick-lists, each degrading to empty on partial failure.
type BootstrapDTO struct {
	Proposal   *ProposalDTO            `json:"proposal,omitempty"`
	Assets     []models.InventoryAsset `json:"assets"`
	Categories []models.AssetCategory  `json:"categories"`
	Leads      []models.Lead           `json:"leads"`
	Sponsors   []models.Sponsor        `json:"sponsors"`
	Catalog    []layout.ComponentType  `json:"catalog"`
}

func (s *service) Create(ctx context.Context, clubID uuid.UUID, input CreateInput) (*ProposalDTO, error) {
	titolo := strings.TrimSpace(input.Titolo)
	if titolo == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "titolo is required")
	}
	azienda := strings.TrimSpace(input.DestinatarioAzienda)
	if azienda == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "destinatario_azienda is required")
	}

	raw, err := layout.Encode(layout.StandardTemplate())
	if err != nil {
		return nil, err
	}
	row := &models.Proposal{
		ClubID:              clubID,
		Titolo:              titolo,
		DestinatarioAzienda: azienda,
		LeadID:              input.LeadID,
		SponsorID:           input.SponsorID,
		Stato:               enums.ProposalStatusDraft,
		LayoutJSON:          raw,
	}
	created, err := s.repo.Create(ctx, row)
	if err != nil {
		s.observeSave("create", "error", 0)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create proposal")
	}
	s.observeSave("create", "ok", 0)
	return FromModel(created), nil
}

func (s *service) GetByID(ctx context.Context, clubID, id uuid.UUID) (*ProposalDTO, error) {
	row, err := s.loadProposal(ctx, clubID, id)
	if err != nil {
		return nil, err
	}
	return FromModel(row), nil
}

func (s *service) List(ctx context.Context, clubID uuid.UUID, input ListInput) ([]SummaryDTO, string, error) {
	limit := pagination.NormalizeLimit(input.Limit)
	var cursor *pagination.Cursor
	if input.Cursor != "" {
		parsed, err := pagination.ParseCursor(input.Cursor)
		if err != nil {
			return nil, "", pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
		}
		cursor = parsed
	}

	rows, err := s.repo.List(ctx, clubID, ListFilter{Stato: input.Stato, Search: strings.TrimSpace(input.Search)}, cursor, pagination.LimitWithBuffer(limit))
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list proposals")
	}

	next := ""
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		next = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	out := make([]SummaryDTO, len(rows))
	for i := range rows {
		out[i] = summaryFromModel(&rows[i])
	}
	return out, next, nil
}

func (s *service) Save(ctx context.Context, clubID, id uuid.UUID, input SaveInput) (*ProposalDTO, error) {
	started := s.now()

	titolo := strings.TrimSpace(input.Titolo)
	if titolo == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "titolo is required")
	}
	azienda := strings.TrimSpace(input.DestinatarioAzienda)
	if azienda == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "destinatario_azienda is required")
	}
	if input.ScontoPercentuale.IsNegative() || input.ScontoPercentuale.GreaterThan(oneHundred) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sconto_percentuale must be between 0 and 100")
	}

	row, err := s.loadProposal(ctx, clubID, id)
	if err != nil {
		return nil, err
	}
	if row.LockVersion != input.Version {
		s.observeSave("save", "conflict", s.now().Sub(started))
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "proposal changed since it was loaded").
			WithDetails(map[string]any{"current_version": row.LockVersion})
	}

	changes, err := diffItems(row.ID, row.Items, input.Items)
	if err != nil {
		return nil, err
	}

	row.Titolo = titolo
	row.DestinatarioAzienda = azienda
	row.DestinatarioReferente = input.DestinatarioReferente
	row.DestinatarioEmail = input.DestinatarioEmail
	row.LeadID = input.LeadID
	row.SponsorID = input.SponsorID
	row.Messaggio = input.Messaggio
	row.Termini = input.Termini
	row.ScontoPercentuale = input.ScontoPercentuale
	row.ValidUntil = input.ValidUntil

	if input.Layout != nil {
		raw, err := layout.Encode(*input.Layout)
		if err != nil {
			return nil, err
		}
		row.LayoutJSON = raw
	}

	applyTotals(row, projectItems(row.Items, changes), input.ScontoPercentuale)
	row.LockVersion = input.Version + 1

	if err := s.repo.SaveVersioned(ctx, row, input.Version, changes); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.observeSave("save", "conflict", s.now().Sub(started))
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "proposal changed since it was loaded")
		}
		s.observeSave("save", "error", s.now().Sub(started))
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save proposal")
	}

	s.observeSave("save", "ok", s.now().Sub(started))
	return s.GetByID(ctx, clubID, id)
}

func (s *service) ApplyLayoutActions(ctx context.Context, clubID, id uuid.UUID, version int, actions []layout.Action) (*ProposalDTO, error) {
	if len(actions) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one action is required")
	}

	row, err := s.loadProposal(ctx, clubID, id)
	if err != nil {
		return nil, err
	}
	if row.LockVersion != version {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "proposal changed since it was loaded").
			WithDetails(map[string]any{"current_version": row.LockVersion})
	}

	doc, ok := layout.Decode(row.LayoutJSON)
	if !ok {
		doc = layout.StandardTemplate()
	}
	next, err := layout.ApplyAll(doc, actions)
	if err != nil {
		return nil, err
	}
	raw, err := layout.Encode(next)
	if err != nil {
		return nil, err
	}

	row.LayoutJSON = raw
	row.LockVersion = version + 1
	if err := s.repo.SaveVersioned(ctx, row, version, itemChanges{}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "proposal changed since it was loaded")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save layout")
	}
	return FromModel(row), nil
}

func (s *service) Preview(ctx context.Context, clubID, id uuid.UUID) (*render.Page, error) {
	row, err := s.loadProposal(ctx, clubID, id)
	if err != nil {
		return nil, err
	}
	club, err := s.clubs.FindByID(ctx, clubID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load club")
	}

	doc, ok := layout.Decode(row.LayoutJSON)
	if !ok {
		doc = layout.StandardTemplate()
	}
	page := render.RenderDocument(doc, renderData(club, row), render.Options{Preview: true})
	if s.metrics != nil {
		s.metrics.IncRender("preview")
	}
	return &page, nil
}

func (s *service) Publish(ctx context.Context, clubID, id uuid.UUID, input PublishInput) (*ProposalDTO, error) {
	row, err := s.loadProposal(ctx, clubID, id)
	if err != nil {
		return nil, err
	}
	if row.Stato.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "proposal is closed")
	}

	if row.PublicToken == nil {
		token, err := security.GenerateShareToken(24)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate public token")
		}
		row.PublicToken = &token
	}

	now := s.now()
	validUntil := input.ValidUntil
	if validUntil == nil {
		v := now.AddDate(0, 0, s.cfg.DefaultValidityDays)
		validUntil = &v
	}
	if !validUntil.After(now) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "valid_until must be in the future")
	}

	loaded := row.LockVersion
	row.Stato = enums.ProposalStatusSent
	row.PublishedAt = &now
	row.ValidUntil = validUntil
	row.LockVersion = loaded + 1

	if err := s.repo.SaveVersioned(ctx, row, loaded, itemChanges{}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "proposal changed since it was loaded")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "publish proposal")
	}
	s.observeSave("publish", "ok", 0)
	return FromModel(row), nil
}

func (s *service) UpdateStatus(ctx context.Context, clubID, id uuid.UUID, stato enums.ProposalStatus) (*ProposalDTO, error) {
	if !stato.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid stato")
	}

	row, err := s.loadProposal(ctx, clubID, id)
	if err != nil {
		return nil, err
	}
	if row.Stato == stato {
		return FromModel(row), nil
	}
	if row.Stato.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "proposal is closed")
	}

	loaded := row.LockVersion
	row.Stato = stato
	row.LockVersion = loaded + 1
	if err := s.repo.SaveVersioned(ctx, row, loaded, itemChanges{}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "proposal changed since it was loaded")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update status")
	}
	return FromModel(row), nil
}

func (s *service) Delete(ctx context.Context, clubID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, clubID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "proposal not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete proposal")
	}
	return nil
}

// Bootstrap loads everything the builder needs in parallel. The proposal
// load (when editing) is fatal; pick-list failures degrade to empty slices
// so the builder still opens.
func (s *service) Bootstrap(ctx context.Context, clubID uuid.UUID, proposalID *uuid.UUID) (*BootstrapDTO, error) {
	out := &BootstrapDTO{
		Assets:     []models.InventoryAsset{},
		Categories: []models.AssetCategory{},
		Leads:      []models.Lead{},
		Sponsors:   []models.Sponsor{},
		Catalog:    layout.Catalog(),
	}

	var (
		wg          sync.WaitGroup
		mu          sync.Mutex
		softErr     error
		proposalErr error
	)
	collect := func(step string, err error) {
		mu.Lock()
		defer mu.Unlock()
		softErr = multierr.Append(softErr, fmt.Errorf("%s: %w", step, err))
	}

	if proposalID != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			dto, err := s.GetByID(ctx, clubID, *proposalID)
			if err != nil {
				mu.Lock()
				proposalErr = err
				mu.Unlock()
				return
			}
			mu.Lock()
			out.Proposal = dto
			mu.Unlock()
		}()
	}

	wg.Add(4)
	go func() {
		defer wg.Done()
		rows, err := s.inventory.ListActive(ctx, clubID)
		if err != nil {
			collect("assets", err)
			return
		}
		mu.Lock()
		out.Assets = rows
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		rows, err := s.inventory.ListCategories(ctx, clubID)
		if err != nil {
			collect("categories", err)
			return
		}
		mu.Lock()
		out.Categories = rows
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		rows, err := s.leads.ListAll(ctx, clubID)
		if err != nil {
			collect("leads", err)
			return
		}
		mu.Lock()
		out.Leads = rows
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		rows, err := s.sponsors.ListAll(ctx, clubID)
		if err != nil {
			collect("sponsors", err)
			return
		}
		mu.Lock()
		out.Sponsors = rows
		mu.Unlock()
	}()

	wg.Wait()

	if proposalErr != nil {
		return nil, proposalErr
	}
	if softErr != nil {
		s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
			"club_id": clubID.String(),
			"error":   softErr.Error(),
		}), "proposals.bootstrap.partial")
	}
	return out, nil
}

func (s *service) loadProposal(ctx context.Context, clubID, id uuid.UUID) (*models.Proposal, error) {
	row, err := s.repo.FindByID(ctx, clubID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "proposal not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load proposal")
	}
	return row, nil
}

func (s *service) observeSave(operation, outcome string, duration time.Duration) {
	if s.metrics == nil {
		return
	}
	s.metrics.IncSave(operation, outcome)
	if duration > 0 {
		s.metrics.ObserveSaveDuration(operation, duration)
	}
}

// projectItems applies the diff to the loaded rows so totals reflect the
// state being written, not the one being replaced.
func projectItems(existing []models.ProposalItem, changes itemChanges) []models.ProposalItem {
	deleted := make(map[uuid.UUID]bool, len(changes.deletes))
	for _, id := range changes.deletes {
		deleted[id] = true
	}
	updated := make(map[uuid.UUID]models.ProposalItem, len(changes.updates))
	for _, it := range changes.updates {
		updated[it.ID] = it
	}

	out := make([]models.ProposalItem, 0, len(existing)+len(changes.creates))
	for _, it := range existing {
		if deleted[it.ID] {
			continue
		}
		if next, ok := updated[it.ID]; ok {
			out = append(out, next)
			continue
		}
		out = append(out, it)
	}
	return append(out, changes.creates...)
}

func applyTotals(row *models.Proposal, items []models.ProposalItem, sconto decimal.Decimal) {
	totals := ComputeTotals(items, sconto)
	row.ValoreTotale = totals.Subtotale
	row.ScontoValore = totals.ScontoValore
	row.ValoreFinale = totals.ValoreFinale
}

func renderData(club *models.Club, row *models.Proposal) render.Data {
	items := make([]render.Item, len(row.Items))
	for i, it := range row.Items {
		items[i] = render.Item{
			Nome:              it.NomeDisplay,
			Descrizione:       stringOrEmpty(it.DescrizioneDisplay),
			Gruppo:            it.Gruppo,
			Quantita:          it.Quantita,
			PrezzoUnitario:    it.PrezzoUnitario,
			ScontoPercentuale: it.ScontoPercentuale,
			ValoreTotale:      it.ValoreTotale,
		}
	}
	return render.Data{
		Club: render.Club{
			Name:    club.Name,
			LogoURL: stringOrEmpty(club.LogoURL),
			Email:   stringOrEmpty(club.Email),
			Phone:   stringOrEmpty(club.Phone),
		},
		Proposal: render.Proposal{
			Titolo:                row.Titolo,
			DestinatarioAzienda:   row.DestinatarioAzienda,
			DestinatarioReferente: stringOrEmpty(row.DestinatarioReferente),
			DestinatarioEmail:     stringOrEmpty(row.DestinatarioEmail),
			Messaggio:             stringOrEmpty(row.Messaggio),
			Termini:               stringOrEmpty(row.Termini),
			ValidUntil:            row.ValidUntil,
		},
		Items: items,
		Totals: render.Totals{
			Subtotale:         row.ValoreTotale,
			ScontoPercentuale: row.ScontoPercentuale,
			ScontoValore:      row.ScontoValore,
			ValoreFinale:      row.ValoreFinale,
		},
	}
}

func stringOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
