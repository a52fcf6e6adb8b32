package proposals

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pitchpartner/pitchpartner-backend/pkg/db/models"
	"github.com/pitchpartner/pitchpartner-backend/pkg/enums"
	pkgerrors "github.com/pitchpartner/pitchpartner-backend/pkg/errors"
)

func existingItem(proposalID uuid.UUID, nome string, pos int) models.ProposalItem {
	return models.ProposalItem{
		ID:             uuid.New(),
		ProposalID:     proposalID,
		Tipo:           enums.ItemKindCustom,
		NomeDisplay:    nome,
		Quantita:       1,
		PrezzoUnitario: decimal.RequireFromString("100"),
		ValoreTotale:   decimal.RequireFromString("100"),
		Posizione:      pos,
	}
}

func dtoFromItem(it models.ProposalItem) ItemDTO {
	id := it.ID
	return ItemDTO{
		ID:                &id,
		Tipo:              it.Tipo,
		NomeDisplay:       it.NomeDisplay,
		Quantita:          it.Quantita,
		PrezzoUnitario:    it.PrezzoUnitario,
		ScontoPercentuale: it.ScontoPercentuale,
		Gruppo:            it.Gruppo,
	}
}

func TestDiffItems_CreateUpdateDelete(t *testing.T) {
	proposalID := uuid.New()
	kept := existingItem(proposalID, "Maglia", 0)
	gone := existingItem(proposalID, "Striscione", 1)

	changed := dtoFromItem(kept)
	changed.Quantita = 3

	incoming := []ItemDTO{
		changed,
		{
			Tipo:           enums.ItemKindCustom,
			NomeDisplay:    "Hospitality",
			Quantita:       2,
			PrezzoUnitario: decimal.RequireFromString("250"),
		},
	}

	changes, err := diffItems(proposalID, []models.ProposalItem{kept, gone}, incoming)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(changes.creates) != 1 || changes.creates[0].NomeDisplay != "Hospitality" {
		t.Fatalf("unexpected creates: %+v", changes.creates)
	}
	if len(changes.updates) != 1 || changes.updates[0].ID != kept.ID {
		t.Fatalf("unexpected updates: %+v", changes.updates)
	}
	if changes.updates[0].Quantita != 3 {
		t.Errorf("expected updated quantita 3, got %d", changes.updates[0].Quantita)
	}
	if len(changes.deletes) != 1 || changes.deletes[0] != gone.ID {
		t.Fatalf("unexpected deletes: %+v", changes.deletes)
	}
}

func TestDiffItems_NoChanges(t *testing.T) {
	proposalID := uuid.New()
	kept := existingItem(proposalID, "Maglia", 0)

	changes, err := diffItems(proposalID, []models.ProposalItem{kept}, []ItemDTO{dtoFromItem(kept)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(changes.creates) != 0 || len(changes.updates) != 0 || len(changes.deletes) != 0 {
		t.Fatalf("expected empty diff, got %+v", changes)
	}
}

func TestDiffItems_RecomputesLineValue(t *testing.T) {
	proposalID := uuid.New()
	incoming := []ItemDTO{{
		Tipo:              enums.ItemKindAsset,
		NomeDisplay:       "Cartellone",
		Quantita:          3,
		PrezzoUnitario:    decimal.RequireFromString("100"),
		ScontoPercentuale: decimal.RequireFromString("10"),
		// Client-sent total must be ignored.
		ValoreTotale: decimal.RequireFromString("9999"),
	}}

	changes, err := diffItems(proposalID, nil, incoming)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !changes.creates[0].ValoreTotale.Equal(decimal.RequireFromString("270")) {
		t.Fatalf("expected recomputed 270, got %s", changes.creates[0].ValoreTotale)
	}
}

func TestDiffItems_PositionFollowsPayloadOrder(t *testing.T) {
	proposalID := uuid.New()
	first := existingItem(proposalID, "Maglia", 0)
	second := existingItem(proposalID, "Striscione", 1)

	// Reverse the order client-side.
	changes, err := diffItems(proposalID, []models.ProposalItem{first, second},
		[]ItemDTO{dtoFromItem(second), dtoFromItem(first)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(changes.updates) != 2 {
		t.Fatalf("expected both rows repositioned, got %+v", changes.updates)
	}
	for _, up := range changes.updates {
		switch up.ID {
		case second.ID:
			if up.Posizione != 0 {
				t.Errorf("expected %s at 0, got %d", up.NomeDisplay, up.Posizione)
			}
		case first.ID:
			if up.Posizione != 1 {
				t.Errorf("expected %s at 1, got %d", up.NomeDisplay, up.Posizione)
			}
		}
	}
}

func TestDiffItems_UnknownID(t *testing.T) {
	strange := uuid.New()
	_, err := diffItems(uuid.New(), nil, []ItemDTO{{
		ID:             &strange,
		Tipo:           enums.ItemKindCustom,
		NomeDisplay:    "Fantasma",
		Quantita:       1,
		PrezzoUnitario: decimal.RequireFromString("10"),
	}})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDiffItems_Validation(t *testing.T) {
	cases := map[string]ItemDTO{
		"missing name":  {Tipo: enums.ItemKindCustom, Quantita: 1, PrezzoUnitario: decimal.RequireFromString("10")},
		"zero quantity": {Tipo: enums.ItemKindCustom, NomeDisplay: "X", Quantita: 0, PrezzoUnitario: decimal.RequireFromString("10")},
		"negative price": {
			Tipo: enums.ItemKindCustom, NomeDisplay: "X", Quantita: 1,
			PrezzoUnitario: decimal.RequireFromString("-1"),
		},
		"discount above 100": {
			Tipo: enums.ItemKindCustom, NomeDisplay: "X", Quantita: 1,
			PrezzoUnitario: decimal.RequireFromString("10"), ScontoPercentuale: decimal.RequireFromString("101"),
		},
		"bad kind": {Tipo: enums.ItemKind("voucher"), NomeDisplay: "X", Quantita: 1, PrezzoUnitario: decimal.RequireFromString("10")},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := diffItems(uuid.New(), nil, []ItemDTO{in})
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}
