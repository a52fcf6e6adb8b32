package proposals

import (
	"github.com/shopspring/decimal"

	"github.com/pitchpartner/pitchpartner-backend/pkg/db/models"
)

var oneHundred = decimal.NewFromInt(100)

// ItemTotal computes the line value: quantita * prezzo_unitario scaled by
// the line discount. Amounts are rounded to cents.
func ItemTotal(quantita int, prezzoUnitario, scontoPercentuale decimal.Decimal) decimal.Decimal {
	gross := prezzoUnitario.Mul(decimal.NewFromInt(int64(quantita)))
	factor := oneHundred.Sub(scontoPercentuale).Div(oneHundred)
	return gross.Mul(factor).Round(2)
}

// Totals aggregates the money view of a proposal.
type Totals struct {
	Subtotale         decimal.Decimal
	ScontoPercentuale decimal.Decimal
	ScontoValore      decimal.Decimal
	ValoreFinale      decimal.Decimal
}

// ComputeTotals sums item values and applies the proposal-level discount on
// top. Item values are taken as stored, they already include line discounts.
func ComputeTotals(items []models.ProposalItem, scontoPercentuale decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.ValoreTotale)
	}
	sconto := subtotal.Mul(scontoPercentuale).Div(oneHundred).Round(2)
	return Totals{
		Subtotale:         subtotal,
		ScontoPercentuale: scontoPercentuale,
		ScontoValore:      sconto,
		ValoreFinale:      subtotal.Sub(sconto),
	}
}
