package leads

import (
	"time"

	"github.com/google/uuid"

	"github.com/pitchpartner/pitchpartner-backend/pkg/db/models"
	"github.com/pitchpartner/pitchpartner-backend/pkg/enums"
	pkgpagination "github.com/pitchpartner/pitchpartner-backend/pkg/pagination"
)

type ListParams struct {
	ClubID uuid.UUID
	Status *enums.LeadStatus
	Search string
	pkgpagination.Params
}

type ListResult struct {
	Items  []ListItem `json:"items"`
	Cursor string     `json:"cursor"`
}

type ListItem struct {
	ID            uuid.UUID        `json:"id"`
	ClubID        uuid.UUID        `json:"club_id"`
	CompanyName   string           `json:"company_name"`
	ContactName   *string          `json:"contact_name,omitempty"`
	ContactEmail  *string          `json:"contact_email,omitempty"`
	ContactPhone  *string          `json:"contact_phone,omitempty"`
	Industry      *string          `json:"industry,omitempty"`
	Status        enums.LeadStatus `json:"status"`
	Source        *string          `json:"source,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
	Tags          []string         `json:"tags"`
	LastContactAt *time.Time       `json:"last_contact_at,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

type listQuery struct {
	clubID uuid.UUID
	status *enums.LeadStatus
	search string
	limit  int
	cursor *pkgpagination.Cursor
}

func toListItem(m models.Lead) ListItem {
	return ListItem{
		ID:            m.ID,
		ClubID:        m.ClubID,
		CompanyName:   m.CompanyName,
		ContactName:   m.ContactName,
		ContactEmail:  m.ContactEmail,
		ContactPhone:  m.ContactPhone,
		Industry:      m.Industry,
		Status:        m.Status,
		Source:        m.Source,
		Notes:         m.Notes,
		Tags:          append([]string(nil), m.Tags...),
		LastContactAt: m.LastContactAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
