package render

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pitchpartner/pitchpartner-backend/internal/layout"
)

func sampleData() Data {
	validUntil := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	return Data{
		Club: Club{
			Name:    "ASD Borgo Calcio",
			LogoURL: "https://cdn.example.com/borgo.png",
			Email:   "sponsor@borgocalcio.it",
			Phone:   "+39 055 000000",
		},
		Proposal: Proposal{
			Titolo:                "Proposta Stagione 2026/27",
			DestinatarioAzienda:   "Rossi Impianti Srl",
			DestinatarioReferente: "Mario Rossi",
			DestinatarioEmail:     "mario@rossi-impianti.it",
			Messaggio:             "Siamo felici di proporvi questa partnership.",
			Termini:               "Pagamento in due tranche.",
			ValidUntil:            &validUntil,
		},
		Items: []Item{
			{
				Nome:           "Maglia ufficiale",
				Gruppo:         "Visibilità",
				Quantita:       1,
				PrezzoUnitario: decimal.NewFromInt(5000),
				ValoreTotale:   decimal.NewFromInt(5000),
			},
			{
				Nome:              "Cartellonistica",
				Gruppo:            "Stadio",
				Quantita:          2,
				PrezzoUnitario:    decimal.NewFromInt(1000),
				ScontoPercentuale: decimal.NewFromInt(10),
				ValoreTotale:      decimal.NewFromInt(1800),
			},
			{
				Nome:           "Hospitality",
				Gruppo:         "Visibilità",
				Quantita:       4,
				PrezzoUnitario: decimal.NewFromInt(250),
				ValoreTotale:   decimal.NewFromInt(1000),
			},
		},
		Totals: Totals{
			Subtotale:         decimal.NewFromInt(7800),
			ScontoPercentuale: decimal.NewFromInt(5),
			ScontoValore:      decimal.NewFromInt(390),
			ValoreFinale:      decimal.NewFromInt(7410),
		},
	}
}

func docWith(types ...string) layout.Document {
	area := layout.NewArea("Test", nil)
	for _, t := range types {
		if c := layout.NewComponent(t, nil); c != nil {
			area.Components = append(area.Components, *c)
		}
	}
	return layout.Document{
		Version:      layout.Version,
		Areas:        []layout.Area{area},
		GlobalStyles: layout.DefaultGlobalStyles(),
	}
}

func renderOne(t *testing.T, doc layout.Document, data Data, opts Options) []Node {
	t.Helper()
	page := RenderDocument(doc, data, opts)
	if len(page.Sections) != 1 {
		t.Fatalf("expected one section, got %d", len(page.Sections))
	}
	return page.Sections[0].Components
}

func TestRenderDocument_SkipsUnknownTypes(t *testing.T) {
	doc := docWith("header")
	doc.Areas[0].Components = append(doc.Areas[0].Components, layout.Component{
		ID: layout.NewID(), Type: "hologram", Settings: map[string]any{},
	})
	nodes := renderOne(t, doc, sampleData(), Options{})
	if len(nodes) != 1 || nodes[0].Type != "header" {
		t.Fatalf("expected only the header node, got %+v", nodes)
	}
}

func TestRenderDocument_PreviewFlag(t *testing.T) {
	doc := docWith("cta-accept")
	nodes := renderOne(t, doc, sampleData(), Options{Preview: true})
	if nodes[0].Props["editable"] != true {
		t.Error("preview nodes should carry the editable hint")
	}
	if nodes[0].Props["enabled"] != false {
		t.Error("accept CTA must be inert in preview")
	}

	nodes = renderOne(t, doc, sampleData(), Options{})
	if _, ok := nodes[0].Props["editable"]; ok {
		t.Error("public render must not carry editing hints")
	}
	if nodes[0].Props["enabled"] != true {
		t.Error("accept CTA must be active on the public page")
	}
}

func TestRenderItemsTable_GroupedPreservesFirstAppearanceOrder(t *testing.T) {
	doc := docWith("items-table")
	doc.Areas[0].Components[0].Settings["groupByCategory"] = true

	nodes := renderOne(t, doc, sampleData(), Options{})
	table := nodes[0]
	if table.Props["grouped"] != true {
		t.Fatal("expected grouped table")
	}
	if len(table.Children) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(table.Children))
	}
	if table.Children[0].Props["name"] != "Visibilità" || table.Children[1].Props["name"] != "Stadio" {
		t.Fatalf("group order not by first appearance: %v, %v",
			table.Children[0].Props["name"], table.Children[1].Props["name"])
	}
	if len(table.Children[0].Children) != 2 {
		t.Errorf("expected 2 items under Visibilità, got %d", len(table.Children[0].Children))
	}
}

func TestRenderItemsTable_Flat(t *testing.T) {
	doc := docWith("items-table")
	nodes := renderOne(t, doc, sampleData(), Options{})
	table := nodes[0]
	if len(table.Children) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(table.Children))
	}
	row := table.Children[1]
	if row.Props["sconto_percentuale"] != "10" {
		t.Errorf("discounted row missing discount: %v", row.Props)
	}
	if table.Children[0].Props["valore_totale"] != "5000.00" {
		t.Errorf("unexpected row total: %v", table.Children[0].Props["valore_totale"])
	}
}

func TestRenderPricingSummary_Toggles(t *testing.T) {
	doc := docWith("pricing-summary")
	nodes := renderOne(t, doc, sampleData(), Options{})
	props := nodes[0].Props
	if props["subtotale"] != "7800.00" || props["sconto_valore"] != "390.00" || props["valore_finale"] != "7410.00" {
		t.Fatalf("unexpected summary: %v", props)
	}

	doc.Areas[0].Components[0].Settings["showSubtotal"] = false
	doc.Areas[0].Components[0].Settings["showDiscount"] = false
	nodes = renderOne(t, doc, sampleData(), Options{})
	props = nodes[0].Props
	if _, ok := props["subtotale"]; ok {
		t.Error("subtotal shown despite showSubtotal=false")
	}
	if _, ok := props["sconto_valore"]; ok {
		t.Error("discount shown despite showDiscount=false")
	}
	if props["valore_finale"] != "7410.00" {
		t.Error("final value must always render")
	}
}

func TestRenderPricingSummary_NoDiscountHidesDiscountRow(t *testing.T) {
	data := sampleData()
	data.Totals.ScontoValore = decimal.Zero
	doc := docWith("pricing-summary")
	nodes := renderOne(t, doc, data, Options{})
	if _, ok := nodes[0].Props["sconto_valore"]; ok {
		t.Error("zero discount should not render a discount row")
	}
}

func TestRenderIntroMessage_FallsBackWhenEmpty(t *testing.T) {
	data := sampleData()
	data.Proposal.Messaggio = ""
	doc := docWith("intro-message")

	nodes := renderOne(t, doc, data, Options{})
	if len(nodes) != 0 {
		t.Fatalf("empty message without fallback should render nothing, got %+v", nodes)
	}

	doc.Areas[0].Components[0].Settings["fallback"] = "Grazie per l'attenzione."
	nodes = renderOne(t, doc, data, Options{})
	if len(nodes) != 1 || nodes[0].Props["text"] != "Grazie per l'attenzione." {
		t.Fatalf("expected fallback text, got %+v", nodes)
	}
}

func TestRenderValidityInfo_FormatsItalianDate(t *testing.T) {
	doc := docWith("validity-info")
	nodes := renderOne(t, doc, sampleData(), Options{})
	if nodes[0].Props["date"] != "30/09/2026" {
		t.Errorf("unexpected date format: %v", nodes[0].Props["date"])
	}

	data := sampleData()
	data.Proposal.ValidUntil = nil
	if nodes := renderOne(t, doc, data, Options{}); len(nodes) != 0 {
		t.Error("validity block without a date should render nothing")
	}
}

func TestRenderRecipientCard(t *testing.T) {
	doc := docWith("recipient-card")
	nodes := renderOne(t, doc, sampleData(), Options{})
	props := nodes[0].Props
	if props["azienda"] != "Rossi Impianti Srl" || props["referente"] != "Mario Rossi" {
		t.Fatalf("unexpected recipient props: %v", props)
	}

	doc.Areas[0].Components[0].Settings["showEmail"] = false
	nodes = renderOne(t, doc, sampleData(), Options{})
	if _, ok := nodes[0].Props["email"]; ok {
		t.Error("email shown despite showEmail=false")
	}
}

func TestRenderDocument_EveryCatalogTypeHasRenderer(t *testing.T) {
	for _, ct := range layout.Catalog() {
		if _, ok := renderers[ct.Type]; !ok {
			t.Errorf("no renderer for catalog type %q", ct.Type)
		}
	}
}
