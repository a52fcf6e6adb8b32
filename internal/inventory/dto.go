package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pitchpartner/pitchpartner-backend/pkg/db/models"
)

// AssetDTO is the API shape of an inventory asset.
type AssetDTO struct {
	ID           uuid.UUID       `json:"id"`
	ClubID       uuid.UUID       `json:"club_id"`
	CategoryID   *uuid.UUID      `json:"category_id,omitempty"`
	CategoryName *string         `json:"category_name,omitempty"`
	Name         string          `json:"name"`
	Description  *string         `json:"description,omitempty"`
	UnitLabel    string          `json:"unit_label"`
	ListPrice    decimal.Decimal `json:"list_price"`
	Quantity     int             `json:"quantity"`
	IsActive     bool            `json:"is_active"`
	ImageURL     *string         `json:"image_url,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// CategoryDTO is the API shape of an asset category.
type CategoryDTO struct {
	ID          uuid.UUID `json:"id"`
	ClubID      uuid.UUID `json:"club_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func assetFromModel(m models.InventoryAsset) AssetDTO {
	dto := AssetDTO{
		ID:          m.ID,
		ClubID:      m.ClubID,
		CategoryID:  m.CategoryID,
		Name:        m.Name,
		Description: m.Description,
		UnitLabel:   m.UnitLabel,
		ListPrice:   m.ListPrice,
		Quantity:    m.Quantity,
		IsActive:    m.IsActive,
		ImageURL:    m.ImageURL,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.Category != nil {
		name := m.Category.Name
		dto.CategoryName = &name
	}
	return dto
}

func categoryFromModel(m models.AssetCategory) CategoryDTO {
	return CategoryDTO{
		ID:          m.ID,
		ClubID:      m.ClubID,
		Name:        m.Name,
		Description: m.Description,
		Position:    m.Position,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
