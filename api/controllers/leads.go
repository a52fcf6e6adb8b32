package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/pitchpartner/pitchpartner-backend/api/responses"
	"github.com/pitchpartner/pitchpartner-backend/api/validators"
	"github.com/pitchpartner/pitchpartner-backend/internal/leads"
	"github.com/pitchpartner/pitchpartner-backend/pkg/enums"
	pkgerrors "github.com/pitchpartner/pitchpartner-backend/pkg/errors"
	"github.com/pitchpartner/pitchpartner-backend/pkg/logger"
	"github.com/pitchpartner/pitchpartner-backend/pkg/pagination"
)

type leadCreateRequest struct {
	CompanyName  string   `json:"company_name" validate:"required,min=1"`
	ContactName  *string  `json:"contact_name,omitempty"`
	ContactEmail *string  `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone *string  `json:"contact_phone,omitempty"`
	Industry     *string  `json:"industry,omitempty"`
	Status       *string  `json:"status,omitempty"`
	Source       *string  `json:"source,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

func (r leadCreateRequest) toInput() (leads.LeadInput, error) {
	input := leads.LeadInput{
		CompanyName:  r.CompanyName,
		ContactName:  r.ContactName,
		ContactEmail: r.ContactEmail,
		ContactPhone: r.ContactPhone,
		Industry:     r.Industry,
		Source:       r.Source,
		Notes:        r.Notes,
		Tags:         r.Tags,
	}
	if r.Status != nil {
		status, err := enums.ParseLeadStatus(*r.Status)
		if err != nil {
			return leads.LeadInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
		}
		input.Status = &status
	}
	return input, nil
}

type leadUpdateRequest struct {
	CompanyName   *string    `json:"company_name,omitempty" validate:"omitempty,min=1"`
	ContactName   *string    `json:"contact_name,omitempty"`
	ContactEmail  *string    `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone  *string    `json:"contact_phone,omitempty"`
	Industry      *string    `json:"industry,omitempty"`
	Status        *string    `json:"status,omitempty"`
	Source        *string    `json:"source,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
	Tags          *[]string  `json:"tags,omitempty"`
	LastContactAt *time.Time `json:"last_contact_at,omitempty"`
}

func (r leadUpdateRequest) toInput() (leads.UpdateLeadInput, error) {
	input := leads.UpdateLeadInput{
		CompanyName:   r.CompanyName,
		ContactName:   r.ContactName,
		ContactEmail:  r.ContactEmail,
		ContactPhone:  r.ContactPhone,
		Industry:      r.Industry,
		Source:        r.Source,
		Notes:         r.Notes,
		Tags:          r.Tags,
		LastContactAt: r.LastContactAt,
	}
	if r.Status != nil {
		status, err := enums.ParseLeadStatus(*r.Status)
		if err != nil {
			return leads.UpdateLeadInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
		}
		input.Status = &status
	}
	return input, nil
}

func LeadCreate(svc leads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "leads service unavailable"))
			return
		}

		clubID, err := activeClubID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload leadCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), clubID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func LeadGet(svc leads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "leads service unavailable"))
			return
		}

		clubID, err := activeClubID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := pathUUID(r, "leadId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lead, err := svc.GetByID(r.Context(), clubID, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, lead)
	}
}

func LeadUpdate(svc leads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "leads service unavailable"))
			return
		}

		clubID, err := activeClubID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := pathUUID(r, "leadId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload leadUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.Update(r.Context(), clubID, id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

func LeadDelete(svc leads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "leads service unavailable"))
			return
		}

		clubID, err := activeClubID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := pathUUID(r, "leadId")
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

func LeadList(svc leads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "leads service unavailable"))
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

		params := leads.ListParams{
			ClubID: clubID,
			Search: validators.SanitizeString(r.URL.Query().Get("search"), maxSearchLen),
			Params: pagination.Params{
				Limit:  limit,
				Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
			},
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseLeadStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			params.Status = &status
		}

		result, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
