package proposals

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pitchpartner/pitchpartner-backend/pkg/db/models"
	"github.com/pitchpartner/pitchpartner-backend/pkg/enums"
	"github.com/pitchpartner/pitchpartner-backend/pkg/pagination"
)

// Repository exposes proposal persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a proposal repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx rebinds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads a club-scoped proposal with its items in display order.
func (r *Repository) FindByID(ctx context.Context, clubID, id uuid.UUID) (*models.Proposal, error) {
	var row models.Proposal
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("posizione ASC, created_at ASC")
		}).
		Where("club_id = ?", clubID).
		First(&row, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// FindByPublicToken loads a published proposal by its share token, club
// preloaded for the public page header.
func (r *Repository) FindByPublicToken(ctx context.Context, token string) (*models.Proposal, error) {
	var row models.Proposal
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("posizione ASC, created_at ASC")
		}).
		First(&row, "public_token = ?", token).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Create inserts a new proposal row (items excluded, they go through the
// item reconciler).
func (r *Repository) Create(ctx context.Context, p *models.Proposal) (*models.Proposal, error) {
	if err := r.db.WithContext(ctx).Omit("Items").Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateVersioned persists proposal fields guarded by the version the caller
// loaded. Returns gorm.ErrRecordNotFound when the row moved on, letting the
// service map that to a conflict.
func (r *Repository) UpdateVersioned(ctx context.Context, p *models.Proposal, loadedVersion int) error {
	res := r.db.WithContext(ctx).Model(&models.Proposal{}).
		Where("id = ? AND lock_version = ?", p.ID, loadedVersion).
		Select(
			"titolo", "destinatario_azienda", "destinatario_referente", "destinatario_email",
			"lead_id", "sponsor_id", "stato", "messaggio", "termini",
			"sconto_percentuale", "valore_totale", "sconto_valore", "valore_finale",
			"layout_json", "public_token", "published_at", "valid_until", "lock_version",
		).
		Updates(p)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a club-scoped proposal; items cascade.
func (r *Repository) Delete(ctx context.Context, clubID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("club_id = ?", clubID).
		Delete(&models.Proposal{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListFilter narrows the club-scoped proposal listing.
type ListFilter struct {
	Stato  *enums.ProposalStatus
	Search string
}

// List returns club-scoped proposals using cursor pagination, newest first.
func (r *Repository) List(ctx context.Context, clubID uuid.UUID, filter ListFilter, cursor *pagination.Cursor, limit int) ([]models.Proposal, error) {
	query := r.db.WithContext(ctx).Model(&models.Proposal{}).Where("club_id = ?", clubID)

	if filter.Stato != nil {
		query = query.Where("stato = ?", *filter.Stato)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("titolo ILIKE ? OR destinatario_azienda ILIKE ?", like, like)
	}
	if cursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	query = query.Order("created_at DESC").Order("id DESC").Limit(limit)

	var rows []models.Proposal
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateItems inserts new line items.
func (r *Repository) CreateItems(ctx context.Context, items []models.ProposalItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

// UpdateItem overwrites one line item.
func (r *Repository) UpdateItem(ctx context.Context, item *models.ProposalItem) error {
	return r.db.WithContext(ctx).Model(&models.ProposalItem{}).
		Where("id = ? AND proposal_id = ?", item.ID, item.ProposalID).
		Select(
			"tipo", "asset_id", "nome_display", "descrizione_display",
			"quantita", "prezzo_unitario", "sconto_percentuale", "valore_totale",
			"gruppo", "posizione",
		).
		Updates(item).Error
}

// DeleteItems removes the given line items of a proposal.
func (r *Repository) DeleteItems(ctx context.Context, proposalID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("proposal_id = ?", proposalID).
		Delete(&models.ProposalItem{}, "id IN ?", ids).Error
}

// SaveVersioned applies the proposal update and its item diff atomically.
// The whole write rolls back when the version guard fails so callers can
// retry from fresh state.
func (r *Repository) SaveVersioned(ctx context.Context, p *models.Proposal, loadedVersion int, changes itemChanges) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := r.WithTx(tx)
		if err := repo.UpdateVersioned(ctx, p, loadedVersion); err != nil {
			return err
		}
		if err := repo.DeleteItems(ctx, p.ID, changes.deletes); err != nil {
			return err
		}
		for i := range changes.updates {
			if err := repo.UpdateItem(ctx, &changes.updates[i]); err != nil {
				return err
			}
		}
		return repo.CreateItems(ctx, changes.creates)
	})
}

// MarkExpired flips published proposals whose validity has lapsed. Used by
// the public endpoint on read, no background job needed.
func (r *Repository) MarkExpired(ctx context.Context, id uuid.UUID, now time.Time) error {
	return r.db.WithContext(ctx).Model(&models.Proposal{}).
		Where("id = ? AND stato = ?", id, enums.ProposalStatusSent).
		Updates(map[string]any{"stato": enums.ProposalStatusExpired, "updated_at": now}).Error
}
