package clubs

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pitchpartner/pitchpartner-backend/pkg/db/models"
)

// Repository handles club persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to club operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new club row.
func (r *Repository) Create(ctx context.Context, dto CreateClubDTO) (*models.Club, error) {
	club := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(club).Error; err != nil {
		return nil, err
	}
	return club, nil
}

// FindByID loads a club by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Club, error) {
	var club models.Club
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&club).Error; err != nil {
		return nil, err
	}
	return &club, nil
}

// FindByOwner returns all clubs owned by the provided user.
func (r *Repository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Club, error) {
	var clubs []models.Club
	if err := r.db.WithContext(ctx).Where("owner = ?", ownerID).Find(&clubs).Error; err != nil {
		return nil, err
	}
	return clubs, nil
}

// Update saves the provided club.
func (r *Repository) Update(ctx context.Context, club *models.Club) error {
	if club == nil {
		return fmt.Errorf("club is required")
	}
	return r.db.WithContext(ctx).Save(club).Error
}

// UpdateLastActiveAt stamps the club's last activity time.
func (r *Repository) UpdateLastActiveAt(ctx context.Context, clubID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Club{}).
		Where("id = ?", clubID).
		Update("last_active_at", time.Now().UTC()).Error
}

// FindByIDWithTx loads a club using the provided transaction.
func (r *Repository) FindByIDWithTx(tx *gorm.DB, id uuid.UUID) (*models.Club, error) {
	if tx == nil {
		return nil, gorm.ErrInvalidTransaction
	}
	var club models.Club
	if err := tx.First(&club, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &club, nil
}
