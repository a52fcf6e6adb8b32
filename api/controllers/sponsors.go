package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/pitchpartner/pitchpartner-backend/api/responses"
	"github.com/pitchpartner/pitchpartner-backend/api/validators"
	"github.com/pitchpartner/pitchpartner-backend/internal/sponsors"
	pkgerrors "github.com/pitchpartner/pitchpartner-backend/pkg/errors"
	"github.com/pitchpartner/pitchpartner-backend/pkg/logger"
	"github.com/pitchpartner/pitchpartner-backend/pkg/pagination"
)

type sponsorCreateRequest struct {
	CompanyName   string     `json:"company_name" validate:"required,min=1"`
	ContactName   *string    `json:"contact_name,omitempty"`
	ContactEmail  *string    `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone  *string    `json:"contact_phone,omitempty"`
	Industry      *string    `json:"industry,omitempty"`
	LogoURL       *string    `json:"logo_url,omitempty"`
	Website       *string    `json:"website,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
	Tags          []string   `json:"tags,omitempty"`
	ContractStart *time.Time `json:"contract_start,omitempty"`
	ContractEnd   *time.Time `json:"contract_end,omitempty"`
}

func (r sponsorCreateRequest) toInput() sponsors.SponsorInput {
	return sponsors.SponsorInput{
		CompanyName:   r.CompanyName,
		ContactName:   r.ContactName,
		ContactEmail:  r.ContactEmail,
		ContactPhone:  r.ContactPhone,
		Industry:      r.Industry,
		LogoURL:       r.LogoURL,
		Website:       r.Website,
		Notes:         r.Notes,
		Tags:          r.Tags,
		ContractStart: r.ContractStart,
		ContractEnd:   r.ContractEnd,
	}
}

type sponsorUpdateRequest struct {
	CompanyName   *string    `json:"company_name,omitempty" validate:"omitempty,min=1"`
	ContactName   *string    `json:"contact_name,omitempty"`
	ContactEmail  *string    `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone  *string    `json:"contact_phone,omitempty"`
	Industry      *string    `json:"industry,omitempty"`
	LogoURL       *string    `json:"logo_url,omitempty"`
	Website       *string    `json:"website,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
	Tags          *[]string  `json:"tags,omitempty"`
	ContractStart *time.Time `json:"contract_start,omitempty"`
	ContractEnd   *time.Time `json:"contract_end,omitempty"`
}

func (r sponsorUpdateRequest) toInput() sponsors.UpdateSponsorInput {
	return sponsors.UpdateSponsorInput{
		CompanyName:   r.CompanyName,
		ContactName:   r.ContactName,
		ContactEmail:  r.ContactEmail,
		ContactPhone:  r.ContactPhone,
		Industry:      r.Industry,
		LogoURL:       r.LogoURL,
		Website:       r.Website,
		Notes:         r.Notes,
		Tags:          r.Tags,
		ContractStart: r.ContractStart,
		ContractEnd:   r.ContractEnd,
	}
}

func SponsorCreate(svc sponsors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sponsors service unavailable"))
			return
		}

		clubID, err := activeClubID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload sponsorCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), clubID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func SponsorGet(svc sponsors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sponsors service unavailable"))
			return
		}

		clubID, err := activeClubID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := pathUUID(r, "sponsorId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sponsor, err := svc.GetByID(r.Context(), clubID, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, sponsor)
	}
}

func SponsorUpdate(svc sponsors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sponsors service unavailable"))
			return
		}

		clubID, err := activeClubID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := pathUUID(r, "sponsorId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload sponsorUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.Update(r.Context(), clubID, id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

func SponsorDelete(svc sponsors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sponsors service unavailable"))
			return
		}

		clubID, err := activeClubID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := pathUUID(r, "sponsorId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), clubID, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, nil)
	}
}

func SponsorList(svc sponsors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sponsors service unavailable"))
			return
		}

		clubID, err := activeClubID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := sponsors.ListParams{
			ClubID:     clubID,
			Search:     validators.SanitizeString(r.URL.Query().Get("search"), maxSearchLen),
			ActiveOnly: r.URL.Query().Get("active") == "true",
			Params: pagination.Params{
				Limit:  limit,
				Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
			},
		}

		result, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
