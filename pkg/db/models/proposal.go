package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/pitchpartner/pitchpartner-backend/pkg/enums"
)

// Proposal is a sponsorship proposal document. The layout tree (areas,
// components, global styles) is persisted as a versioned JSON blob in
// LayoutJSON; line items live in their own table. Wire names stay aligned
// with the original Italian field vocabulary (titolo, destinatario, ...).
type Proposal struct {
	ID                    uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ClubID                uuid.UUID            `gorm:"column:club_id;type:uuid;not null;index"`
	Titolo                string               `gorm:"column:titolo;not null"`
	DestinatarioAzienda   string               `gorm:"column:destinatario_azienda;not null"`
	DestinatarioReferente *string              `gorm:"column:destinatario_referente"`
	DestinatarioEmail     *string              `gorm:"column:destinatario_email"`
	LeadID                *uuid.UUID           `gorm:"column:lead_id;type:uuid"`
	SponsorID             *uuid.UUID           `gorm:"column:sponsor_id;type:uuid"`
	Stato                 enums.ProposalStatus `gorm:"column:stato;type:proposal_status;not null;default:'draft'"`
	Messaggio             *string              `gorm:"column:messaggio"`
	Termini               *string              `gorm:"column:termini"`
	ScontoPercentuale     decimal.Decimal      `gorm:"column:sconto_percentuale;type:numeric(5,2);not null;default:0"`
	ValoreTotale          decimal.Decimal      `gorm:"column:valore_totale;type:numeric(15,2);not null;default:0"`
	ScontoValore          decimal.Decimal      `gorm:"column:sconto_valore;type:numeric(15,2);not null;default:0"`
	ValoreFinale          decimal.Decimal      `gorm:"column:valore_finale;type:numeric(15,2);not null;default:0"`
	LayoutJSON            datatypes.JSON       `gorm:"column:layout_json;type:jsonb"`
	PublicToken           *string              `gorm:"column:public_token;uniqueIndex"`
	PublishedAt           *time.Time           `gorm:"column:published_at"`
	ValidUntil            *time.Time           `gorm:"column:valid_until"`
	// LockVersion guards concurrent saves: updates must present the version
	// they loaded, and every successful save increments it.
	LockVersion int            `gorm:"column:lock_version;not null;default:0"`
	Items       []ProposalItem `gorm:"foreignKey:ProposalID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
