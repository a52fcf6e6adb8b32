package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pitchpartner/pitchpartner-backend/pkg/db/models"
	pkgerrors "github.com/pitchpartner/pitchpartner-backend/pkg/errors"
	pkgpagination "github.com/pitchpartner/pitchpartner-backend/pkg/pagination"
)

type stubInventoryRepo struct {
	assets       []models.InventoryAsset
	categories   []models.AssetCategory
	createdAsset *models.InventoryAsset
	updatedAsset *models.InventoryAsset
	lastOpts     listQuery
}

func (s *stubInventoryRepo) CreateAsset(_ context.Context, asset *models.InventoryAsset) (*models.InventoryAsset, error) {
	asset.ID = uuid.New()
	asset.CreatedAt = time.Now()
	s.createdAsset = asset
	s.assets = append(s.assets, *asset)
	return asset, nil
}

func (s *stubInventoryRepo) FindAssetByID(_ context.Context, clubID, id uuid.UUID) (*models.InventoryAsset, error) {
	for i := range s.assets {
		if s.assets[i].ID == id && s.assets[i].ClubID == clubID {
			cpy := s.assets[i]
			return &cpy, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubInventoryRepo) UpdateAsset(_ context.Context, asset *models.InventoryAsset) error {
	s.updatedAsset = asset
	for i := range s.assets {
		if s.assets[i].ID == asset.ID {
			s.assets[i] = *asset
		}
	}
	return nil
}

func (s *stubInventoryRepo) DeleteAsset(_ context.Context, clubID, id uuid.UUID) error {
	for _, row := range s.assets {
		if row.ID == id && row.ClubID == clubID {
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *stubInventoryRepo) ListAssets(_ context.Context, opts listQuery) ([]models.InventoryAsset, error) {
	s.lastOpts = opts
	return s.assets, nil
}

func (s *stubInventoryRepo) CreateCategory(_ context.Context, category *models.AssetCategory) (*models.AssetCategory, error) {
	category.ID = uuid.New()
	s.categories = append(s.categories, *category)
	return category, nil
}

func (s *stubInventoryRepo) FindCategoryByID(_ context.Context, clubID, id uuid.UUID) (*models.AssetCategory, error) {
	for i := range s.categories {
		if s.categories[i].ID == id && s.categories[i].ClubID == clubID {
			cpy := s.categories[i]
			return &cpy, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubInventoryRepo) UpdateCategory(_ context.Context, category *models.AssetCategory) error {
	for i := range s.categories {
		if s.categories[i].ID == category.ID {
			s.categories[i] = *category
		}
	}
	return nil
}

func (s *stubInventoryRepo) DeleteCategory(_ context.Context, clubID, id uuid.UUID) error {
	for _, row := range s.categories {
		if row.ID == id && row.ClubID == clubID {
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *stubInventoryRepo) ListCategories(_ context.Context, clubID uuid.UUID) ([]models.AssetCategory, error) {
	var out []models.AssetCategory
	for _, row := range s.categories {
		if row.ClubID == clubID {
			out = append(out, row)
		}
	}
	return out, nil
}

func TestCreateAsset_Defaults(t *testing.T) {
	repo := &stubInventoryRepo{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	clubID := uuid.New()

	dto, err := svc.CreateAsset(context.Background(), clubID, AssetInput{
		Name:      "Pannello LED bordo campo",
		ListPrice: decimal.NewFromInt(2500),
	})
	if err != nil {
		t.Fatalf("create asset: %v", err)
	}
	if dto.UnitLabel != "stagione" {
		t.Errorf("expected default unit label, got %q", dto.UnitLabel)
	}
	if dto.Quantity != 1 {
		t.Errorf("expected default quantity 1, got %d", dto.Quantity)
	}
	if !dto.IsActive {
		t.Error("expected asset active by default")
	}
}

func TestCreateAsset_Validation(t *testing.T) {
	svc, _ := NewService(&stubInventoryRepo{})
	clubID := uuid.New()

	_, err := svc.CreateAsset(context.Background(), clubID, AssetInput{Name: " "})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for empty name, got %v", err)
	}

	_, err = svc.CreateAsset(context.Background(), clubID, AssetInput{
		Name:      "X",
		ListPrice: decimal.NewFromInt(-1),
	})
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for negative price, got %v", err)
	}

	foreign := uuid.New()
	_, err = svc.CreateAsset(context.Background(), clubID, AssetInput{
		Name:       "X",
		CategoryID: &foreign,
	})
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for foreign category, got %v", err)
	}
}

func TestUpdateAsset_DetachCategory(t *testing.T) {
	clubID := uuid.New()
	repo := &stubInventoryRepo{}
	svc, _ := NewService(repo)

	cat, err := svc.CreateCategory(context.Background(), clubID, CategoryInput{Name: "Maglia"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	asset, err := svc.CreateAsset(context.Background(), clubID, AssetInput{
		Name:       "Sponsor di maglia",
		CategoryID: &cat.ID,
		ListPrice:  decimal.NewFromInt(10000),
	})
	if err != nil {
		t.Fatalf("create asset: %v", err)
	}

	updated, err := svc.UpdateAsset(context.Background(), clubID, asset.ID, UpdateAssetInput{DetachCategory: true})
	if err != nil {
		t.Fatalf("update asset: %v", err)
	}
	if updated.CategoryID != nil {
		t.Errorf("expected detached category, got %v", updated.CategoryID)
	}
}

func TestUpdateAsset_PartialPatch(t *testing.T) {
	clubID := uuid.New()
	repo := &stubInventoryRepo{}
	svc, _ := NewService(repo)

	asset, _ := svc.CreateAsset(context.Background(), clubID, AssetInput{
		Name:      "Hospitality tribuna",
		ListPrice: decimal.NewFromInt(500),
		Quantity:  20,
	})

	price := decimal.NewFromInt(650)
	updated, err := svc.UpdateAsset(context.Background(), clubID, asset.ID, UpdateAssetInput{ListPrice: &price})
	if err != nil {
		t.Fatalf("update asset: %v", err)
	}
	if !updated.ListPrice.Equal(price) {
		t.Errorf("expected price 650, got %s", updated.ListPrice)
	}
	if updated.Quantity != 20 {
		t.Errorf("untouched quantity lost: %d", updated.Quantity)
	}
}

func TestListAssets_ForwardsFilters(t *testing.T) {
	clubID := uuid.New()
	repo := &stubInventoryRepo{}
	svc, _ := NewService(repo)

	catID := uuid.New()
	_, err := svc.ListAssets(context.Background(), ListAssetsParams{
		ClubID:     clubID,
		CategoryID: &catID,
		ActiveOnly: true,
		Search:     "led",
		Params:     pkgpagination.Params{Limit: 10},
	})
	if err != nil {
		t.Fatalf("list assets: %v", err)
	}
	if repo.lastOpts.categoryID == nil || *repo.lastOpts.categoryID != catID {
		t.Error("category filter not forwarded")
	}
	if !repo.lastOpts.activeOnly || repo.lastOpts.search != "led" {
		t.Error("filters not forwarded")
	}
	if repo.lastOpts.limit != 11 {
		t.Errorf("expected buffered limit 11, got %d", repo.lastOpts.limit)
	}
}

func TestCategoryLifecycle(t *testing.T) {
	clubID := uuid.New()
	svc, _ := NewService(&stubInventoryRepo{})

	created, err := svc.CreateCategory(context.Background(), clubID, CategoryInput{Name: "LED", Position: 2})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	updated, err := svc.UpdateCategory(context.Background(), clubID, created.ID, CategoryInput{Name: "LED bordo campo", Position: 1})
	if err != nil {
		t.Fatalf("update category: %v", err)
	}
	if updated.Name != "LED bordo campo" || updated.Position != 1 {
		t.Errorf("unexpected category after update: %+v", updated)
	}

	listed, err := svc.ListCategories(context.Background(), clubID)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 category, got %d", len(listed))
	}

	if err := svc.DeleteCategory(context.Background(), clubID, created.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}

	err = svc.DeleteCategory(context.Background(), uuid.New(), created.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for wrong club, got %v", err)
	}
}
