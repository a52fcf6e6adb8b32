package inventory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pitchpartner/pitchpartner-backend/pkg/db/models"
	pkgpagination "github.com/pitchpartner/pitchpartner-backend/pkg/pagination"
)

type listQuery struct {
	clubID     uuid.UUID
	categoryID *uuid.UUID
	activeOnly bool
	search     string
	limit      int
	cursor     *pkgpagination.Cursor
}

// Repository wires together asset and category persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// CreateAsset inserts a new asset row.
func (r *Repository) CreateAsset(ctx context.Context, asset *models.InventoryAsset) (*models.InventoryAsset, error) {
	if err := r.db.WithContext(ctx).Omit("Category").Create(asset).Error; err != nil {
		return nil, err
	}
	return asset, nil
}

// FindAssetByID loads a club-scoped asset with its category.
func (r *Repository) FindAssetByID(ctx context.Context, clubID, id uuid.UUID) (*models.InventoryAsset, error) {
	var row models.InventoryAsset
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id = ? AND club_id = ?", id, clubID).
		First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// UpdateAsset persists the whole asset row.
func (r *Repository) UpdateAsset(ctx context.Context, asset *models.InventoryAsset) error {
	return r.db.WithContext(ctx).
		Model(&models.InventoryAsset{}).
		Where("id = ? AND club_id = ?", asset.ID, asset.ClubID).
		Select("category_id", "name", "description", "unit_label",
			"list_price", "quantity", "is_active", "image_url").
		Updates(asset).Error
}

// DeleteAsset removes a club-scoped asset.
func (r *Repository) DeleteAsset(ctx context.Context, clubID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND club_id = ?", id, clubID).
		Delete(&models.InventoryAsset{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListAssets returns club-scoped assets using cursor pagination.
func (r *Repository) ListAssets(ctx context.Context, opts listQuery) ([]models.InventoryAsset, error) {
	query := r.db.WithContext(ctx).
		Model(&models.InventoryAsset{}).
		Preload("Category").
		Where("club_id = ?", opts.clubID)

	if opts.categoryID != nil {
		query = query.Where("category_id = ?", *opts.categoryID)
	}
	if opts.activeOnly {
		query = query.Where("is_active = true")
	}
	if opts.search != "" {
		query = query.Where("name ILIKE ?", "%"+opts.search+"%")
	}
	if opts.cursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)", opts.cursor.CreatedAt, opts.cursor.CreatedAt, opts.cursor.ID)
	}

	query = query.Order("created_at DESC").Order("id DESC").Limit(opts.limit)

	var rows []models.InventoryAsset
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListActive returns every active asset of a club for the builder's
// item picker, category first so the picker can group them.
func (r *Repository) ListActive(ctx context.Context, clubID uuid.UUID) ([]models.InventoryAsset, error) {
	var rows []models.InventoryAsset
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("club_id = ? AND is_active = true", clubID).
		Order("category_id NULLS LAST, name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateCategory inserts a new category row.
func (r *Repository) CreateCategory(ctx context.Context, category *models.AssetCategory) (*models.AssetCategory, error) {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// FindCategoryByID loads a club-scoped category.
func (r *Repository) FindCategoryByID(ctx context.Context, clubID, id uuid.UUID) (*models.AssetCategory, error) {
	var row models.AssetCategory
	if err := r.db.WithContext(ctx).
		Where("id = ? AND club_id = ?", id, clubID).
		First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// UpdateCategory persists the whole category row.
func (r *Repository) UpdateCategory(ctx context.Context, category *models.AssetCategory) error {
	return r.db.WithContext(ctx).
		Model(&models.AssetCategory{}).
		Where("id = ? AND club_id = ?", category.ID, category.ClubID).
		Select("name", "description", "position").
		Updates(category).Error
}

// DeleteCategory removes a club-scoped category and detaches its assets.
func (r *Repository) DeleteCategory(ctx context.Context, clubID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.InventoryAsset{}).
			Where("category_id = ? AND club_id = ?", id, clubID).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		res := tx.Where("id = ? AND club_id = ?", id, clubID).
			Delete(&models.AssetCategory{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ListCategories returns every category of a club in display order.
func (r *Repository) ListCategories(ctx context.Context, clubID uuid.UUID) ([]models.AssetCategory, error) {
	var rows []models.AssetCategory
	if err := r.db.WithContext(ctx).
		Where("club_id = ?", clubID).
		Order("position ASC, name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
