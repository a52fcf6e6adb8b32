package auth

import (
	"github.com/google/uuid"

	"github.com/pitchpartner/pitchpartner-backend/internal/users"
	"github.com/pitchpartner/pitchpartner-backend/pkg/enums"
)

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ClubSummary describes the club metadata returned after login.
type ClubSummary struct {
	ID      uuid.UUID        `json:"id"`
	Name    string           `json:"name"`
	Role    enums.MemberRole `json:"role"`
	LogoURL *string          `json:"logo_url,omitempty"`
}

// LoginResponse contains the tokens, user, and club list produced by a successful login.
type LoginResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	Clubs        []ClubSummary  `json:"clubs"`
	User         *users.UserDTO `json:"user"`
}

// RefreshRequest carries the expired access token and its refresh counterpart.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshResponse returns the rotated token pair.
type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// SwitchClubRequest selects the club the next access token is scoped to.
type SwitchClubRequest struct {
	ClubID       uuid.UUID `json:"club_id" validate:"required"`
	RefreshToken string    `json:"refresh_token" validate:"required"`
}

// SwitchClubResponse returns the re-scoped token pair plus the active club.
type SwitchClubResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	Club         ClubSummary `json:"club"`
}
