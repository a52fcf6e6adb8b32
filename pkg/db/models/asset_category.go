package models

import (
	"time"

	"github.com/google/uuid"
)

// AssetCategory groups inventory assets (e.g. "LED boards", "Jersey",
// "Hospitality") for the builder's item picker.
type AssetCategory struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ClubID      uuid.UUID `gorm:"column:club_id;type:uuid;not null;index"`
	Name        string    `gorm:"column:name;not null"`
	Description *string   `gorm:"column:description"`
	Position    int       `gorm:"column:position;not null;default:0"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
