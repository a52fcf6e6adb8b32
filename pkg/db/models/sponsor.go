package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Sponsor is a company with at least one signed sponsorship with the club.
type Sponsor struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ClubID        uuid.UUID      `gorm:"column:club_id;type:uuid;not null;index"`
	CompanyName   string         `gorm:"column:company_name;not null"`
	ContactName   *string        `gorm:"column:contact_name"`
	ContactEmail  *string        `gorm:"column:contact_email"`
	ContactPhone  *string        `gorm:"column:contact_phone"`
	Industry      *string        `gorm:"column:industry"`
	LogoURL       *string        `gorm:"column:logo_url"`
	Website       *string        `gorm:"column:website"`
	Notes         *string        `gorm:"column:notes"`
	Tags          pq.StringArray `gorm:"column:tags;type:text[]"`
	ContractStart *time.Time     `gorm:"column:contract_start"`
	ContractEnd   *time.Time     `gorm:"column:contract_end"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
