package sponsors

import (
	"time"

	"github.com/google/uuid"

	"github.com/pitchpartner/pitchpartner-backend/pkg/db/models"
	pkgpagination "github.com/pitchpartner/pitchpartner-backend/pkg/pagination"
)

type ListParams struct {
	ClubID uuid.UUID
	Search string
	// ActiveOnly keeps sponsors whose contract has not ended yet.
	ActiveOnly bool
	pkgpagination.Params
}

type ListResult struct {
	Items  []ListItem `json:"items"`
	Cursor string     `json:"cursor"`
}

type ListItem struct {
	ID            uuid.UUID  `json:"id"`
	ClubID        uuid.UUID  `json:"club_id"`
	CompanyName   string     `json:"company_name"`
	ContactName   *string    `json:"contact_name,omitempty"`
	ContactEmail  *string    `json:"contact_email,omitempty"`
	ContactPhone  *string    `json:"contact_phone,omitempty"`
	Industry      *string    `json:"industry,omitempty"`
	LogoURL       *string    `json:"logo_url,omitempty"`
	Website       *string    `json:"website,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
	Tags          []string   `json:"tags"`
	ContractStart *time.Time `json:"contract_start,omitempty"`
	ContractEnd   *time.Time `json:"contract_end,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type listQuery struct {
	clubID     uuid.UUID
	search     string
	activeOnly bool
	limit      int
	cursor     *pkgpagination.Cursor
}

func toListItem(m models.Sponsor) ListItem {
	return ListItem{
		ID:            m.ID,
		ClubID:        m.ClubID,
		CompanyName:   m.CompanyName,
		ContactName:   m.ContactName,
		ContactEmail:  m.ContactEmail,
		ContactPhone:  m.ContactPhone,
		Industry:      m.Industry,
		LogoURL:       m.LogoURL,
		Website:       m.Website,
		Notes:         m.Notes,
		Tags:          append([]string(nil), m.Tags...),
		ContractStart: m.ContractStart,
		ContractEnd:   m.ContractEnd,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
