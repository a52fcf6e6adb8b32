package sponsors

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pitchpartner/pitchpartner-backend/pkg/db/models"
)

// Repository exposes sponsor persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a sponsor repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new sponsor row.
func (r *Repository) Create(ctx context.Context, sponsor *models.Sponsor) (*models.Sponsor, error) {
	if err := r.db.WithContext(ctx).Create(sponsor).Error; err != nil {
		return nil, err
	}
	return sponsor, nil
}

// FindByID returns a club-scoped sponsor.
func (r *Repository) FindByID(ctx context.Context, clubID, id uuid.UUID) (*models.Sponsor, error) {
	var row models.Sponsor
	if err := r.db.WithContext(ctx).
		Where("id = ? AND club_id = ?", id, clubID).
		First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Update persists the whole sponsor row.
func (r *Repository) Update(ctx context.Context, sponsor *models.Sponsor) error {
	return r.db.WithContext(ctx).
		Model(&models.Sponsor{}).
		Where("id = ? AND club_id = ?", sponsor.ID, sponsor.ClubID).
		Select("company_name", "contact_name", "contact_email", "contact_phone",
			"industry", "logo_url", "website", "notes", "tags",
			"contract_start", "contract_end").
		Updates(sponsor).Error
}

// Delete removes a club-scoped sponsor.
func (r *Repository) Delete(ctx context.Context, clubID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND club_id = ?", id, clubID).
		Delete(&models.Sponsor{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List returns club-scoped sponsors using cursor pagination.
func (r *Repository) List(ctx context.Context, opts listQuery) ([]models.Sponsor, error) {
	query := r.db.WithContext(ctx).Model(&models.Sponsor{}).Where("club_id = ?", opts.clubID)

	if opts.search != "" {
		pattern := "%" + opts.search + "%"
		query = query.Where("company_name ILIKE ? OR contact_name ILIKE ?", pattern, pattern)
	}
	if opts.activeOnly {
		query = query.Where("contract_end IS NULL OR contract_end >= ?", time.Now())
	}
	if opts.cursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)", opts.cursor.CreatedAt, opts.cursor.CreatedAt, opts.cursor.ID)
	}

	query = query.Order("created_at DESC").Order("id DESC").Limit(opts.limit)

	var rows []models.Sponsor
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListAll returns every sponsor of a club, newest first. The builder
// bootstrap uses this as a pick-list, so no pagination.
func (r *Repository) ListAll(ctx context.Context, clubID uuid.UUID) ([]models.Sponsor, error) {
	var rows []models.Sponsor
	if err := r.db.WithContext(ctx).
		Where("club_id = ?", clubID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
