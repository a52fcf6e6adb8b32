package leads

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pitchpartner/pitchpartner-backend/pkg/db/models"
)

// Repository exposes lead persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a lead repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new lead row.
func (r *Repository) Create(ctx context.Context, lead *models.Lead) (*models.Lead, error) {
	if err := r.db.WithContext(ctx).Create(lead).Error; err != nil {
		return nil, err
	}
	return lead, nil
}

// FindByID returns a club-scoped lead.
func (r *Repository) FindByID(ctx context.Context, clubID, id uuid.UUID) (*models.Lead, error) {
	var row models.Lead
	if err := r.db.WithContext(ctx).
		Where("id = ? AND club_id = ?", id, clubID).
		First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Update persists the whole lead row.
func (r *Repository) Update(ctx context.Context, lead *models.Lead) error {
	return r.db.WithContext(ctx).
		Model(&models.Lead{}).
		Where("id = ? AND club_id = ?", lead.ID, lead.ClubID).
		Select("company_name", "contact_name", "contact_email", "contact_phone",
			"industry", "status", "source", "notes", "tags", "last_contact_at").
		Updates(lead).Error
}

// Delete removes a club-scoped lead.
func (r *Repository) Delete(ctx context.Context, clubID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND club_id = ?", id, clubID).
		Delete(&models.Lead{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List returns club-scoped leads using cursor pagination.
func (r *Repository) List(ctx context.Context, opts listQuery) ([]models.Lead, error) {
	query := r.db.WithContext(ctx).Model(&models.Lead{}).Where("club_id = ?", opts.clubID)

	if opts.status != nil {
		query = query.Where("status = ?", *opts.status)
	}
	if opts.search != "" {
		pattern := "%" + opts.search + "%"
		query = query.Where("company_name ILIKE ? OR contact_name ILIKE ?", pattern, pattern)
	}
	if opts.cursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)", opts.cursor.CreatedAt, opts.cursor.CreatedAt, opts.cursor.ID)
	}

	query = query.Order("created_at DESC").Order("id DESC").Limit(opts.limit)

	var rows []models.Lead
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListAll returns every lead of a club, newest first. The builder
// bootstrap uses this as a pick-list, so no pagination.
func (r *Repository) ListAll(ctx context.Context, clubID uuid.UUID) ([]models.Lead, error) {
	var rows []models.Lead
	if err := r.db.WithContext(ctx).
		Where("club_id = ?", clubID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
