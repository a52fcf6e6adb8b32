package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/pitchpartner/pitchpartner-backend/pkg/types"
)

// Club represents the canonical tenant model: a sports club selling
// sponsorship inventory.
type Club struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name           string         `gorm:"column:name;not null"`
	LegalName      *string        `gorm:"column:legal_name"`
	Description    *string        `gorm:"column:description"`
	Sport          *string        `gorm:"column:sport"`
	League         *string        `gorm:"column:league"`
	FoundedYear    *int           `gorm:"column:founded_year"`
	Phone          *string        `gorm:"column:phone"`
	Email          *string        `gorm:"column:email"`
	Website        *string        `gorm:"column:website"`
	Address        *types.Address `gorm:"column:address;type:address_t"`
	Social         *types.Social  `gorm:"column:social;type:social_t"`
	LogoURL        *string        `gorm:"column:logo_url"`
	BannerURL      *string        `gorm:"column:banner_url"`
	PrimaryColor   *string        `gorm:"column:primary_color"`
	SecondaryColor *string        `gorm:"column:secondary_color"`
	Tags           pq.StringArray `gorm:"column:tags;type:text[]"`
	OwnerID        uuid.UUID      `gorm:"column:owner;type:uuid;not null"`
	LastActiveAt   *time.Time     `gorm:"column:last_active_at"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
