package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pitchpartner/pitchpartner-backend/pkg/db/models"
	pkgerrors "github.com/pitchpartner/pitchpartner-backend/pkg/errors"
	pkgpagination "github.com/pitchpartner/pitchpartner-backend/pkg/pagination"
)

type inventoryRepository interface {
	CreateAsset(ctx context.Context, asset *models.InventoryAsset) (*models.InventoryAsset, error)
	FindAssetByID(ctx context.Context, clubID, id uuid.UUID) (*models.InventoryAsset, error)
	UpdateAsset(ctx context.Context, asset *models.InventoryAsset) error
	DeleteAsset(ctx context.Context, clubID, id uuid.UUID) error
	ListAssets(ctx context.Context, opts listQuery) ([]models.InventoryAsset, error)
	CreateCategory(ctx context.Context, category *models.AssetCategory) (*models.AssetCategory, error)
	FindCategoryByID(ctx context.Context, clubID, id uuid.UUID) (*models.AssetCategory, error)
	UpdateCategory(ctx context.Context, category *models.AssetCategory) error
	DeleteCategory(ctx context.Context, clubID, id uuid.UUID) error
	ListCategories(ctx context.Context, clubID uuid.UUID) ([]models.AssetCategory, error)
}

// Service exposes inventory asset and category operations.
type Service interface {
	CreateAsset(ctx context.Context, clubID uuid.UUID, input AssetInput) (*AssetDTO, error)
	GetAsset(ctx context.Context, clubID, id uuid.UUID) (*AssetDTO, error)
	UpdateAsset(ctx context.Context, clubID, id uuid.UUID, input UpdateAssetInput) (*AssetDTO, error)
	DeleteAsset(ctx context.Context, clubID, id uuid.UUID) error
	ListAssets(ctx context.Context, params ListAssetsParams) (*ListAssetsResult, error)
	CreateCategory(ctx context.Context, clubID uuid.UUID, input CategoryInput) (*CategoryDTO, error)
	UpdateCategory(ctx context.Context, clubID, id uuid.UUID, input CategoryInput) (*CategoryDTO, error)
	DeleteCategory(ctx context.Context, clubID, id uuid.UUID) error
	ListCategories(ctx context.Context, clubID uuid.UUID) ([]CategoryDTO, error)
}

type service struct {
	repo inventoryRepository
}

// AssetInput holds the fields accepted when creating an asset.
type AssetInput struct {
	CategoryID  *uuid.UUID
	Name        string
	Description *string
	UnitLabel   string
	ListPrice   decimal.Decimal
	Quantity    int
	IsActive    *bool
	ImageURL    *string
}

// UpdateAssetInput is a partial patch; nil fields are left untouched.
type UpdateAssetInput struct {
	CategoryID     *uuid.UUID
	DetachCategory bool
	Name           *string
	Description    *string
	UnitLabel      *string
	ListPrice      *decimal.Decimal
	Quantity       *int
	IsActive       *bool
	ImageURL       *string
}

// CategoryInput holds the fields accepted for category writes.
type CategoryInput struct {
	Name        string
	Description *string
	Position    int
}

// ListAssetsParams filters the paginated asset listing.
type ListAssetsParams struct {
	ClubID     uuid.UUID
	CategoryID *uuid.UUID
	ActiveOnly bool
	Search     string
	pkgpagination.Params
}

// ListAssetsResult is one page of assets plus the next cursor.
type ListAssetsResult struct {
	Items  []AssetDTO `json:"items"`
	Cursor string     `json:"cursor"`
}

// NewService builds an inventory service backed by the provided repository.
func NewService(repo inventoryRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateAsset(ctx context.Context, clubID uuid.UUID, input AssetInput) (*AssetDTO, error) {
	if clubID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "club identity missing")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.ListPrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "list_price cannot be negative")
	}
	quantity := input.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	unitLabel := strings.TrimSpace(input.UnitLabel)
	if unitLabel == "" {
		unitLabel = "stagione"
	}
	if input.CategoryID != nil {
		if err := s.checkCategory(ctx, clubID, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}
	row := &models.InventoryAsset{
		ClubID:      clubID,
		CategoryID:  input.CategoryID,
		Name:        name,
		Description: input.Description,
		UnitLabel:   unitLabel,
		ListPrice:   input.ListPrice,
		Quantity:    quantity,
		IsActive:    active,
		ImageURL:    input.ImageURL,
	}
	created, err := s.repo.CreateAsset(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create asset")
	}
	dto := assetFromModel(*created)
	return &dto, nil
}

func (s *service) GetAsset(ctx context.Context, clubID, id uuid.UUID) (*AssetDTO, error) {
	row, err := s.repo.FindAssetByID(ctx, clubID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "asset not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup asset")
	}
	dto := assetFromModel(*row)
	return &dto, nil
}

func (s *service) UpdateAsset(ctx context.Context, clubID, id uuid.UUID, input UpdateAssetInput) (*AssetDTO, error) {
	row, err := s.repo.FindAssetByID(ctx, clubID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "asset not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup asset")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		row.Name = name
	}
	if input.ListPrice != nil {
		if input.ListPrice.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "list_price cannot be negative")
		}
		row.ListPrice = *input.ListPrice
	}
	if input.Quantity != nil {
		if *input.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
		}
		row.Quantity = *input.Quantity
	}
	if input.DetachCategory {
		row.CategoryID = nil
		row.Category = nil
	} else if input.CategoryID != nil {
		if err := s.checkCategory(ctx, clubID, *input.CategoryID); err != nil {
			return nil, err
		}
		row.CategoryID = input.CategoryID
		row.Category = nil
	}
	if input.Description != nil {
		row.Description = input.Description
	}
	if input.UnitLabel != nil {
		label := strings.TrimSpace(*input.UnitLabel)
		if label == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit_label cannot be empty")
		}
		row.UnitLabel = label
	}
	if input.IsActive != nil {
		row.IsActive = *input.IsActive
	}
	if input.ImageURL != nil {
		row.ImageURL = input.ImageURL
	}

	if err := s.repo.UpdateAsset(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update asset")
	}
	return s.GetAsset(ctx, clubID, id)
}

func (s *service) DeleteAsset(ctx context.Context, clubID, id uuid.UUID) error {
	if err := s.repo.DeleteAsset(ctx, clubID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "asset not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete asset")
	}
	return nil
}

func (s *service) ListAssets(ctx context.Context, params ListAssetsParams) (*ListAssetsResult, error) {
	if params.ClubID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "active club id required")
	}

	limit := pkgpagination.NormalizeLimit(params.Limit)
	query := listQuery{
		clubID:     params.ClubID,
		categoryID: params.CategoryID,
		activeOnly: params.ActiveOnly,
		search:     strings.TrimSpace(params.Search),
		limit:      pkgpagination.LimitWithBuffer(params.Limit),
	}
	if params.Cursor != "" {
		cursor, err := pkgpagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.cursor = cursor
	}

	rows, err := s.repo.ListAssets(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list assets")
	}

	nextCursor := ""
	if len(rows) > limit {
		nextCursor = pkgpagination.EncodeCursor(pkgpagination.Cursor{
			CreatedAt: rows[limit].CreatedAt,
			ID:        rows[limit].ID,
		})
		rows = rows[:limit]
	}

	items := make([]AssetDTO, len(rows))
	for i, row := range rows {
		items[i] = assetFromModel(row)
	}
	return &ListAssetsResult{Items: items, Cursor: nextCursor}, nil
}

func (s *service) CreateCategory(ctx context.Context, clubID uuid.UUID, input CategoryInput) (*CategoryDTO, error) {
	if clubID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "club identity missing")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	row := &models.AssetCategory{
		ClubID:      clubID,
		Name:        name,
		Description: input.Description,
		Position:    input.Position,
	}
	created, err := s.repo.CreateCategory(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	dto := categoryFromModel(*created)
	return &dto, nil
}

func (s *service) UpdateCategory(ctx context.Context, clubID, id uuid.UUID, input CategoryInput) (*CategoryDTO, error) {
	row, err := s.repo.FindCategoryByID(ctx, clubID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup category")
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	row.Name = name
	row.Description = input.Description
	row.Position = input.Position

	if err := s.repo.UpdateCategory(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update category")
	}
	dto := categoryFromModel(*row)
	return &dto, nil
}

func (s *service) DeleteCategory(ctx context.Context, clubID, id uuid.UUID) error {
	if err := s.repo.DeleteCategory(ctx, clubID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category")
	}
	return nil
}

func (s *service) ListCategories(ctx context.Context, clubID uuid.UUID) ([]CategoryDTO, error) {
	if clubID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "active club id required")
	}
	rows, err := s.repo.ListCategories(ctx, clubID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	items := make([]CategoryDTO, len(rows))
	for i, row := range rows {
		items[i] = categoryFromModel(row)
	}
	return items, nil
}

func (s *service) checkCategory(ctx context.Context, clubID, categoryID uuid.UUID) error {
	if _, err := s.repo.FindCategoryByID(ctx, clubID, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeValidation, "category does not belong to active club")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup category")
	}
	return nil
}
