package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/pitchpartner/pitchpartner-backend/pkg/enums"
)

// Lead is a prospective sponsor tracked in a club's pipeline.
type Lead struct {
	ID            uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ClubID        uuid.UUID        `gorm:"column:club_id;type:uuid;not null;index"`
	CompanyName   string           `gorm:"column:company_name;not null"`
	ContactName   *string          `gorm:"column:contact_name"`
	ContactEmail  *string          `gorm:"column:contact_email"`
	ContactPhone  *string          `gorm:"column:contact_phone"`
	Industry      *string          `gorm:"column:industry"`
	Status        enums.LeadStatus `gorm:"column:status;type:lead_status;not null;default:'new'"`
	Source        *string          `gorm:"column:source"`
	Notes         *string          `gorm:"column:notes"`
	Tags          pq.StringArray   `gorm:"column:tags;type:text[]"`
	LastContactAt *time.Time       `gorm:"column:last_contact_at"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
