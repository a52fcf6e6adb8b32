package proposals

import (
	"github.com/google/uuid"

	"github.com/pitchpartner/pitchpartner-backend/pkg/db/models"
	pkgerrors "github.com/pitchpartner/pitchpartner-backend/pkg/errors"
)

// itemChanges is the diff between the stored line items and an incoming
// save payload. Applied inside the same transaction as the proposal update.
type itemChanges struct {
	creates []models.ProposalItem
	updates []models.ProposalItem
	deletes []uuid.UUID
}

// diffItems matches incoming items to existing rows by id. Items without an
// id are inserts, existing rows absent from the payload are deletes, the
// rest are updates. Line values are recomputed here; client-sent
// valore_totale is ignored.
func diffItems(proposalID uuid.UUID, existing []models.ProposalItem, incoming []ItemDTO) (itemChanges, error) {
	byID := make(map[uuid.UUID]*models.ProposalItem, len(existing))
	for i := range existing {
		byID[existing[i].ID] = &existing[i]
	}

	var changes itemChanges
	seen := make(map[uuid.UUID]bool, len(incoming))
	for pos, in := range incoming {
		if err := validateItem(in); err != nil {
			return itemChanges{}, err
		}
		row := models.ProposalItem{
			ProposalID:         proposalID,
			Tipo:               in.Tipo,
			AssetID:            in.AssetID,
			NomeDisplay:        in.NomeDisplay,
			DescrizioneDisplay: in.DescrizioneDisplay,
			Quantita:           in.Quantita,
			PrezzoUnitario:     in.PrezzoUnitario,
			ScontoPercentuale:  in.ScontoPercentuale,
			ValoreTotale:       ItemTotal(in.Quantita, in.PrezzoUnitario, in.ScontoPercentuale),
			Gruppo:             in.Gruppo,
			Posizione:          pos,
		}
		if in.ID == nil {
			changes.creates = append(changes.creates, row)
			continue
		}
		current, ok := byID[*in.ID]
		if !ok {
			return itemChanges{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown item id").
				WithDetails(map[string]any{"item_id": in.ID.String()})
		}
		if seen[*in.ID] {
			return itemChanges{}, pkgerrors.New(pkgerrors.CodeValidation, "duplicate item id").
				WithDetails(map[string]any{"item_id": in.ID.String()})
		}
		seen[*in.ID] = true
		row.ID = *in.ID
		if itemDiffers(current, &row) {
			changes.updates = append(changes.updates, row)
		}
	}

	for i := range existing {
		if !seen[existing[i].ID] {
			changes.deletes = append(changes.deletes, existing[i].ID)
		}
	}
	return changes, nil
}

func validateItem(in ItemDTO) error {
	if in.NomeDisplay == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "item nome_display is required")
	}
	if !in.Tipo.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid item tipo")
	}
	if in.Quantita < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "item quantita must be at least 1")
	}
	if in.PrezzoUnitario.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "item prezzo_unitario cannot be negative")
	}
	if in.ScontoPercentuale.IsNegative() || in.ScontoPercentuale.GreaterThan(oneHundred) {
		return pkgerrors.New(pkgerrors.CodeValidation, "item sconto_percentuale must be between 0 and 100")
	}
	return nil
}

func itemDiffers(current, next *models.ProposalItem) bool {
	switch {
	case current.Tipo != next.Tipo,
		!uuidPtrEqual(current.AssetID, next.AssetID),
		current.NomeDisplay != next.NomeDisplay,
		!stringPtrEqual(current.DescrizioneDisplay, next.DescrizioneDisplay),
		current.Quantita != next.Quantita,
		!current.PrezzoUnitario.Equal(next.PrezzoUnitario),
		!current.ScontoPercentuale.Equal(next.ScontoPercentuale),
		current.Gruppo != next.Gruppo,
		current.Posizione != next.Posizione:
		return true
	}
	return false
}

func uuidPtrEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func stringPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
