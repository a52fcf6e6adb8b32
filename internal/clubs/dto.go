package clubs

import (
	"time"

	"github.com/google/uuid"

	"github.com/pitchpartner/pitchpartner-backend/pkg/db/models"
	"github.com/pitchpartner/pitchpartner-backend/pkg/types"
)

// ClubDTO exposes safe tenant data in API responses.
type ClubDTO struct {
	ID             uuid.UUID      `json:"id"`
	Name           string         `json:"name"`
	LegalName      *string        `json:"legal_name,omitempty"`
	Description    *string        `json:"description,omitempty"`
	Sport          *string        `json:"sport,omitempty"`
	League         *string        `json:"league,omitempty"`
	FoundedYear    *int           `json:"founded_year,omitempty"`
	Phone          *string        `json:"phone,omitempty"`
	Email          *string        `json:"email,omitempty"`
	Website        *string        `json:"website,omitempty"`
	Address        *types.Address `json:"address,omitempty"`
	Social         *types.Social  `json:"social,omitempty"`
	LogoURL        *string        `json:"logo_url,omitempty"`
	BannerURL      *string        `json:"banner_url,omitempty"`
	PrimaryColor   *string        `json:"primary_color,omitempty"`
	SecondaryColor *string        `json:"secondary_color,omitempty"`
	Tags           []string       `json:"tags"`
	OwnerID        uuid.UUID      `json:"owner"`
	LastActiveAt   *time.Time     `json:"last_active_at,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// CreateClubDTO holds creation-time data for a new club.
type CreateClubDTO struct {
	Name        string
	LegalName   *string
	Description *string
	Sport       *string
	League      *string
	FoundedYear *int
	Phone       *string
	Email       *string
	Website     *string
	Address     *types.Address
	Social      *types.Social
	OwnerID     uuid.UUID
}

// FromModel maps the persisted club into a DTO.
func FromModel(m *models.Club) *ClubDTO {
	if m == nil {
		return nil
	}

	dto := &ClubDTO{
		ID:             m.ID,
		Name:           m.Name,
		LegalName:      m.LegalName,
		Description:    m.Description,
		Sport:          m.Sport,
		League:         m.League,
		FoundedYear:    m.FoundedYear,
		Phone:          m.Phone,
		Email:          m.Email,
		Website:        m.Website,
		LogoURL:        m.LogoURL,
		BannerURL:      m.BannerURL,
		PrimaryColor:   m.PrimaryColor,
		SecondaryColor: m.SecondaryColor,
		Tags:           append([]string(nil), m.Tags...),
		OwnerID:        m.OwnerID,
		LastActiveAt:   m.LastActiveAt,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}

	if m.Address != nil {
		cpy := *m.Address
		dto.Address = &cpy
	}
	if m.Social != nil {
		cpy := *m.Social
		dto.Social = &cpy
	}

	return dto
}

// ToModel prepares the GORM model from creation DTO.
func (c CreateClubDTO) ToModel() *models.Club {
	model := &models.Club{
		Name:        c.Name,
		LegalName:   c.LegalName,
		Description: c.Description,
		Sport:       c.Sport,
		League:      c.League,
		FoundedYear: c.FoundedYear,
		Phone:       c.Phone,
		Email:       c.Email,
		Website:     c.Website,
		OwnerID:     c.OwnerID,
	}

	if c.Address != nil {
		cpy := *c.Address
		model.Address = &cpy
	}
	if c.Social != nil {
		cpy := *c.Social
		model.Social = &cpy
	}

	return model
}
