package controllers

import (
	"net/http"
	"strings"

	"github.com/pitchpartner/pitchpartner-backend/api/responses"
	"github.com/pitchpartner/pitchpartner-backend/api/validators"
	"github.com/pitchpartner/pitchpartner-backend/internal/clubs"
	"github.com/pitchpartner/pitchpartner-backend/internal/memberships"
	"github.com/pitchpartner/pitchpartner-backend/pkg/enums"
	pkgerrors "github.com/pitchpartner/pitchpartner-backend/pkg/errors"
	"github.com/pitchpartner/pitchpartner-backend/pkg/logger"
	"github.com/pitchpartner/pitchpartner-backend/pkg/types"
)

// ClubProfile returns the active club's profile using the club-scoped JWT.
func ClubProfile(svc clubs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "club service unavailable"))
			return
		}

		clubID, err := activeClubID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.GetByID(r.Context(), clubID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}

type clubUpdateRequest struct {
	Name           *string        `json:"name,omitempty" validate:"omitempty,min=1"`
	LegalName      *string        `json:"legal_name,omitempty"`
	Description    *string        `json:"description,omitempty"`
	Sport          *string        `json:"sport,omitempty"`
	League         *string        `json:"league,omitempty"`
	FoundedYear    *int           `json:"founded_year,omitempty"`
	Phone          *string        `json:"phone,omitempty"`
	Email          *string        `json:"email,omitempty" validate:"omitempty,email"`
	Website        *string        `json:"website,omitempty"`
	Address        *types.Address `json:"address,omitempty"`
	Social         *types.Social  `json:"social,omitempty"`
	LogoURL        *string        `json:"logo_url,omitempty"`
	BannerURL      *string        `json:"banner_url,omitempty"`
	PrimaryColor   *string        `json:"primary_color,omitempty"`
	SecondaryColor *string        `json:"secondary_color,omitempty"`
	Tags           *[]string      `json:"tags,omitempty"`
}

func (r clubUpdateRequest) toInput() clubs.UpdateClubInput {
	return clubs.UpdateClubInput{
		Name:           r.Name,
		LegalName:      r.LegalName,
		Description:    r.Description,
		Sport:          r.Sport,
		League:         r.League,
		FoundedYear:    r.FoundedYear,
		Phone:          r.Phone,
		Email:          r.Email,
		Website:        r.Website,
		Address:        r.Address,
		Social:         r.Social,
		LogoURL:        r.LogoURL,
		BannerURL:      r.BannerURL,
		PrimaryColor:   r.PrimaryColor,
		SecondaryColor: r.SecondaryColor,
		Tags:           r.Tags,
	}
}

// ClubUpdate adjusts the allowed mutable fields for the active club.
func ClubUpdate(svc clubs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "club service unavailable"))
			return
		}

		clubID, err := activeClubID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload clubUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.Update(r.Context(), userID, clubID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}

// ClubUsers returns the membership roster for owners and admins.
func ClubUsers(svc clubs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "club service unavailable"))
			return
		}

		clubID, err := activeClubID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		users, err := svc.ListUsers(r.Context(), userID, clubID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, users)
	}
}

type clubInviteRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Role      string `json:"role" validate:"required"`
}

func (r clubInviteRequest) toInput() (clubs.InviteUserInput, error) {
	role, err := enums.ParseMemberRole(r.Role)
	if err != nil {
		return clubs.InviteUserInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role")
	}
	return clubs.InviteUserInput{
		Email:     strings.ToLower(strings.TrimSpace(r.Email)),
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
		Role:      role,
	}, nil
}

func ClubInvite(svc clubs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "club service unavailable"))
			return
		}

		clubID, err := activeClubID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload clubInviteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		invitee, tempPassword, err := svc.InviteUser(r.Context(), userID, clubID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp := struct {
			User              *memberships.ClubUserDTO `json:"user"`
			TemporaryPassword *string                  `json:"temporary_password,omitempty"`
		}{
			User: invitee,
		}
		if tempPassword != "" {
			resp.TemporaryPassword = &tempPassword
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, resp)
	}
}

// ClubRemoveUser deletes a membership for the provided user ID.
func ClubRemoveUser(svc clubs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "club service unavailable"))
			return
		}

		clubID, err := activeClubID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		targetID, err := pathUUID(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.RemoveUser(r.Context(), userID, clubID, targetID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, nil)
	}
}
