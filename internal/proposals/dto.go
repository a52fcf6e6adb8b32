package proposals

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pitchpartner/pitchpartner-backend/internal/layout"
	"github.com/pitchpartner/pitchpartner-backend/pkg/db/models"
	"github.com/pitchpartner/pitchpartner-backend/pkg/enums"
)

// ProposalDTO is the full API shape of a proposal, layout included.
type ProposalDTO struct {
	ID                    uuid.UUID            `json:"id"`
	ClubID                uuid.UUID            `json:"club_id"`
	Titolo                string               `json:"titolo"`
	DestinatarioAzienda   string               `json:"destinatario_azienda"`
	DestinatarioReferente *string              `json:"destinatario_referente,omitempty"`
	DestinatarioEmail     *string              `json:"destinatario_email,omitempty"`
	LeadID                *uuid.UUID           `json:"lead_id,omitempty"`
	SponsorID             *uuid.UUID           `json:"sponsor_id,omitempty"`
	Stato                 enums.ProposalStatus `json:"stato"`
	Messaggio             *string              `json:"messaggio,omitempty"`
	Termini               *string              `json:"termini,omitempty"`
	ScontoPercentuale     decimal.Decimal      `json:"sconto_percentuale"`
	ValoreTotale          decimal.Decimal      `json:"valore_totale"`
	ScontoValore          decimal.Decimal      `json:"sconto_valore"`
	ValoreFinale          decimal.Decimal      `json:"valore_finale"`
	Layout                layout.Document      `json:"layout"`
	Items                 []ItemDTO            `json:"items"`
	PublicToken           *string              `json:"public_token,omitempty"`
	PublishedAt           *time.Time           `json:"published_at,omitempty"`
	ValidUntil            *time.Time           `json:"valid_until,omitempty"`
	Version               int                  `json:"version"`
	CreatedAt             time.Time            `json:"created_at"`
	UpdatedAt             time.Time            `json:"updated_at"`
}

// SummaryDTO is the list-view shape: no layout, no items.
type SummaryDTO struct {
	ID                  uuid.UUID            `json:"id"`
	Titolo              string               `json:"titolo"`
	DestinatarioAzienda string               `json:"destinatario_azienda"`
	Stato               enums.ProposalStatus `json:"stato"`
	ValoreFinale        decimal.Decimal      `json:"valore_finale"`
	PublishedAt         *time.Time           `json:"published_at,omitempty"`
	ValidUntil          *time.Time           `json:"valid_until,omitempty"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`
}

// ItemDTO is the wire form of a proposal line item. valore_totale is
// output-only; the server recomputes it on every save.
type ItemDTO struct {
	ID                 *uuid.UUID      `json:"id,omitempty"`
	Tipo               enums.ItemKind  `json:"tipo"`
	AssetID            *uuid.UUID      `json:"asset_id,omitempty"`
	NomeDisplay        string          `json:"nome_display"`
	DescrizioneDisplay *string         `json:"descrizione_display,omitempty"`
	Quantita           int             `json:"quantita"`
	PrezzoUnitario     decimal.Decimal `json:"prezzo_unitario"`
	ScontoPercentuale  decimal.Decimal `json:"sconto_percentuale"`
	ValoreTotale       decimal.Decimal `json:"valore_totale"`
	Gruppo             string          `json:"gruppo"`
	Posizione          int             `json:"posizione"`
}

// FromModel converts a stored proposal to its API shape. Layouts that fail
// to decode fall back to the standard template so older rows keep working.
func FromModel(p *models.Proposal) *ProposalDTO {
	doc, ok := layout.Decode(p.LayoutJSON)
	if !ok {
		doc = layout.StandardTemplate()
	}
	items := make([]ItemDTO, len(p.Items))
	for i := range p.Items {
		items[i] = itemFromModel(&p.Items[i])
	}
	return &ProposalDTO{
		ID:                    p.ID,
		ClubID:                p.ClubID,
		Titolo:                p.Titolo,
		DestinatarioAzienda:   p.DestinatarioAzienda,
		DestinatarioReferente: p.DestinatarioReferente,
		DestinatarioEmail:     p.DestinatarioEmail,
		LeadID:                p.LeadID,
		SponsorID:             p.SponsorID,
		Stato:                 p.Stato,
		Messaggio:             p.Messaggio,
		Termini:               p.Termini,
		ScontoPercentuale:     p.ScontoPercentuale,
		ValoreTotale:          p.ValoreTotale,
		ScontoValore:          p.ScontoValore,
		ValoreFinale:          p.ValoreFinale,
		Layout:                doc,
		Items:                 items,
		PublicToken:           p.PublicToken,
		PublishedAt:           p.PublishedAt,
		ValidUntil:            p.ValidUntil,
		Version:               p.LockVersion,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}

func itemFromModel(it *models.ProposalItem) ItemDTO {
	id := it.ID
	return ItemDTO{
		ID:                 &id,
		Tipo:               it.Tipo,
		AssetID:            it.AssetID,
		NomeDisplay:        it.NomeDisplay,
		DescrizioneDisplay: it.DescrizioneDisplay,
		Quantita:           it.Quantita,
		PrezzoUnitario:     it.PrezzoUnitario,
		ScontoPercentuale:  it.ScontoPercentuale,
		ValoreTotale:       it.ValoreTotale,
		Gruppo:             it.Gruppo,
		Posizione:          it.Posizione,
	}
}

func summaryFromModel(p *models.Proposal) SummaryDTO {
	return SummaryDTO{
		ID:                  p.ID,
		Titolo:              p.Titolo,
		DestinatarioAzienda: p.DestinatarioAzienda,
		Stato:               p.Stato,
		ValoreFinale:        p.ValoreFinale,
		PublishedAt:         p.PublishedAt,
		ValidUntil:          p.ValidUntil,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}
