package proposals

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/pitchpartner/pitchpartner-backend/pkg/db/models"
)

func TestItemTotal(t *testing.T) {
	cases := []struct {
		name     string
		quantita int
		prezzo   string
		sconto   string
		want     string
	}{
		{"no discount", 2, "100", "0", "200"},
		{"ten percent off", 3, "100", "10", "270"},
		{"full discount", 1, "500", "100", "0"},
		{"cents rounding", 3, "9.99", "7.5", "27.72"},
		{"single unit", 1, "1500", "0", "1500"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ItemTotal(tc.quantita, decimal.RequireFromString(tc.prezzo), decimal.RequireFromString(tc.sconto))
			if !got.Equal(decimal.RequireFromString(tc.want)) {
				t.Fatalf("expected %s got %s", tc.want, got)
			}
		})
	}
}

func TestComputeTotals(t *testing.T) {
	items := []models.ProposalItem{
		{ValoreTotale: decimal.RequireFromString("100")},
		{ValoreTotale: decimal.RequireFromString("50")},
	}

	totals := ComputeTotals(items, decimal.RequireFromString("10"))
	if !totals.Subtotale.Equal(decimal.RequireFromString("150")) {
		t.Errorf("expected subtotal 150 got %s", totals.Subtotale)
	}
	if !totals.ScontoValore.Equal(decimal.RequireFromString("15")) {
		t.Errorf("expected discount 15 got %s", totals.ScontoValore)
	}
	if !totals.ValoreFinale.Equal(decimal.RequireFromString("135")) {
		t.Errorf("expected final 135 got %s", totals.ValoreFinale)
	}
}

func TestComputeTotalsNoItems(t *testing.T) {
	totals := ComputeTotals(nil, decimal.RequireFromString("20"))
	if !totals.Subtotale.IsZero() || !totals.ScontoValore.IsZero() || !totals.ValoreFinale.IsZero() {
		t.Fatalf("expected zero totals, got %+v", totals)
	}
}

func TestComputeTotalsDiscountRounding(t *testing.T) {
	items := []models.ProposalItem{
		{ValoreTotale: decimal.RequireFromString("99.99")},
	}
	totals := ComputeTotals(items, decimal.RequireFromString("33"))
	if !totals.ScontoValore.Equal(decimal.RequireFromString("33.00")) {
		t.Errorf("expected discount 33.00 got %s", totals.ScontoValore)
	}
	if !totals.ValoreFinale.Equal(decimal.RequireFromString("66.99")) {
		t.Errorf("expected final 66.99 got %s", totals.ValoreFinale)
	}
}
