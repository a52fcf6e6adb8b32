package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryAsset is a sellable sponsorship right or physical placement.
type InventoryAsset struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ClubID      uuid.UUID       `gorm:"column:club_id;type:uuid;not null;index"`
	CategoryID  *uuid.UUID      `gorm:"column:category_id;type:uuid"`
	Name        string          `gorm:"column:name;not null"`
	Description *string         `gorm:"column:description"`
	UnitLabel   string          `gorm:"column:unit_label;not null;default:'stagione'"`
	ListPrice   decimal.Decimal `gorm:"column:list_price;type:numeric(15,2);not null;default:0"`
	Quantity    int             `gorm:"column:quantity;not null;default:1"`
	IsActive    bool            `gorm:"column:is_active;not null;default:true"`
	ImageURL    *string         `gorm:"column:image_url"`
	Category    *AssetCategory  `gorm:"foreignKey:CategoryID"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
