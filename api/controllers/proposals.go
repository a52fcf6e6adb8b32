package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pitchpartner/pitchpartner-backend/api/responses"
	"github.com/pitchpartner/pitchpartner-backend/api/validators"
	"github.com/pitchpartner/pitchpartner-backend/internal/layout"
	"github.com/pitchpartner/pitchpartner-backend/internal/proposals"
	"github.com/pitchpartner/pitchpartner-backend/pkg/enums"
	pkgerrors "github.com/pitchpartner/pitchpartner-backend/pkg/errors"
	"github.com/pitchpartner/pitchpartner-backend/pkg/logger"
)

type proposalCreateRequest struct {
	Titolo              string     `json:"titolo" validate:"required,min=1"`
	DestinatarioAzienda string     `json:"destinatario_azienda" validate:"required,min=1"`
	LeadID              *uuid.UUID `json:"lead_id,omitempty"`
	SponsorID           *uuid.UUID `json:"sponsor_id,omitempty"`
}

type proposalSaveRequest struct {
	Version               int                 `json:"version"`
	Titolo                string              `json:"titolo" validate:"required,min=1"`
	DestinatarioAzienda   string              `json:"destinatario_azienda" validate:"required,min=1"`
	DestinatarioReferente *string             `json:"destinatario_referente,omitempty"`
	DestinatarioEmail     *string             `json:"destinatario_email,omitempty" validate:"omitempty,email"`
	LeadID                *uuid.UUID          `json:"lead_id,omitempty"`
	SponsorID             *uuid.UUID          `json:"sponsor_id,omitempty"`
	Messaggio             *string             `json:"messaggio,omitempty"`
	Termini               *string             `json:"termini,omitempty"`
	ScontoPercentuale     decimal.Decimal     `json:"sconto_percentuale"`
	ValidUntil            *time.Time          `json:"valid_until,omitempty"`
	Items                 []proposals.ItemDTO `json:"items"`
	Layout                *layout.Document    `json:"layout,omitempty"`
}

func (r proposalSaveRequest) toInput() proposals.SaveInput {
	return proposals.SaveInput{
		Version:               r.Version,
		Titolo:                r.Titolo,
		DestinatarioAzienda:   r.DestinatarioAzienda,
		DestinatarioReferente: r.DestinatarioReferente,
		DestinatarioEmail:     r.DestinatarioEmail,
		LeadID:                r.LeadID,
		SponsorID:             r.SponsorID,
		Messaggio:             r.Messaggio,
		Termini:               r.Termini,
		ScontoPercentuale:     r.ScontoPercentuale,
		ValidUntil:            r.ValidUntil,
		Items:                 r.Items,
		Layout:                r.Layout,
	}
}

type layoutActionsRequest struct {
	Version int             `json:"version"`
	Actions []layout.Action `json:"actions" validate:"required,min=1"`
}

type proposalPublishRequest struct {
	ValidUntil *time.Time `json:"valid_until,omitempty"`
}

type proposalStatusRequest struct {
	Stato string `json:"stato" validate:"required"`
}

func ProposalCreate(svc proposals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "proposals service unavailable"))
			return
		}

		clubID, err := activeClubID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload proposalCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), clubID, proposals.CreateInput{
			Titolo:              payload.Titolo,
			DestinatarioAzienda: payload.DestinatarioAzienda,
			LeadID:              payload.LeadID,
			SponsorID:           payload.SponsorID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func ProposalGet(svc proposals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "proposals service unavailable"))
			return
		}

		clubID, err := activeClubID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := pathUUID(r, "proposalId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		proposal, err := svc.GetByID(r.Context(), clubID, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, proposal)
	}
}

func ProposalList(svc proposals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "proposals service unavailable"))
			return
		}

		clubID, err := activeClubID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := proposals.ListInput{
			Search: strings.TrimSpace(r.URL.Query().Get("search")),
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
			Limit:  limit,
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("stato")); raw != "" {
			stato, err := enums.ParseProposalStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid stato"))
				return
			}
			input.Stato = &stato
		}

		items, cursor, err := svc.List(r.Context(), clubID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"items": items, "cursor": cursor})
	}
}

// ProposalSave is the builder's full save: metadata, items and layout in one
// versioned write.
func ProposalSave(svc proposals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "proposals service unavailable"))
			return
		}

		clubID, err := activeClubID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := pathUUID(r, "proposalId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload proposalSaveRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		saved, err := svc.Save(r.Context(), clubID, id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, saved)
	}
}

func ProposalDelete(svc proposals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "proposals service unavailable"))
			return
		}

		clubID, err := activeClubID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := pathUUID(r, "proposalId")
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

// ProposalBootstrap returns everything the builder needs to open: pick-lists
// plus the proposal itself when editing an existing one.
func ProposalBootstrap(svc proposals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "proposals service unavailable"))
			return
		}

		clubID, err := activeClubID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var proposalID *uuid.UUID
		if raw := strings.TrimSpace(r.URL.Query().Get("proposal_id")); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid proposal_id"))
				return
			}
			proposalID = &id
		}

		bootstrap, err := svc.Bootstrap(r.Context(), clubID, proposalID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, bootstrap)
	}
}

// ProposalLayoutActions applies a batch of layout edits under the version
// guard.
func ProposalLayoutActions(svc proposals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "proposals service unavailable"))
			return
		}

		clubID, err := activeClubID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := pathUUID(r, "proposalId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload layoutActionsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.ApplyLayoutActions(r.Context(), clubID, id, payload.Version, payload.Actions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

func ProposalPublish(svc proposals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "proposals service unavailable"))
			return
		}

		clubID, err := activeClubID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := pathUUID(r, "proposalId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload proposalPublishRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		published, err := svc.Publish(r.Context(), clubID, id, proposals.PublishInput{ValidUntil: payload.ValidUntil})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, published)
	}
}

// ProposalPreview renders the document as the recipient would see it, without
// publishing.
func ProposalPreview(svc proposals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "proposals service unavailable"))
			return
		}

		clubID, err := activeClubID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := pathUUID(r, "proposalId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.Preview(r.Context(), clubID, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

func ProposalUpdateStatus(svc proposals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "proposals service unavailable"))
			return
		}

		clubID, err := activeClubID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := pathUUID(r, "proposalId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload proposalStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stato, err := enums.ParseProposalStatus(payload.Stato)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid stato"))
			return
		}

		updated, err := svc.UpdateStatus(r.Context(), clubID, id, stato)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}
