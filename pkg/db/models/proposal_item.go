package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pitchpartner/pitchpartner-backend/pkg/enums"
)

// ProposalItem is a priced line entry attached to a proposal, independent
// of the layout tree. ValoreTotale is always recomputed from its inputs
// before persisting; it is never accepted from the client.
type ProposalItem struct {
	ID                 uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ProposalID         uuid.UUID       `gorm:"column:proposal_id;type:uuid;not null;index"`
	Tipo               enums.ItemKind  `gorm:"column:tipo;type:item_kind;not null;default:'custom'"`
	AssetID            *uuid.UUID      `gorm:"column:asset_id;type:uuid"`
	NomeDisplay        string          `gorm:"column:nome_display;not null"`
	DescrizioneDisplay *string         `gorm:"column:descrizione_display"`
	Quantita           int             `gorm:"column:quantita;not null;default:1"`
	PrezzoUnitario     decimal.Decimal `gorm:"column:prezzo_unitario;type:numeric(15,2);not null;default:0"`
	ScontoPercentuale  decimal.Decimal `gorm:"column:sconto_percentuale;type:numeric(5,2);not null;default:0"`
	ValoreTotale       decimal.Decimal `gorm:"column:valore_totale;type:numeric(15,2);not null;default:0"`
	Gruppo             string          `gorm:"column:gruppo;not null;default:''"`
	Posizione          int             `gorm:"column:posizione;not null;default:0"`
	CreatedAt          time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
