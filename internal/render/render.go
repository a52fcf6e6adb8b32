package render

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pitchpartner/pitchpartner-backend/internal/layout"
)

// Node is one element of the rendered view tree. The tree is plain data so
// the web client, the public page and the PDF exporter can all walk it.
type Node struct {
	Type     string         `json:"type"`
	Props    map[string]any `json:"props,omitempty"`
	Children []Node         `json:"children,omitempty"`
}

// Page is the rendered document: one section per layout area.
type Page struct {
	Styles   layout.GlobalStyles `json:"styles"`
	Sections []Section           `json:"sections"`
}

type Section struct {
	AreaID     string              `json:"area_id"`
	Name       string              `json:"name"`
	Settings   layout.AreaSettings `json:"settings"`
	Components []Node              `json:"components"`
}

// Data carries everything the components read. The renderer never touches
// storage; callers assemble this from the proposal and its club.
type Data struct {
	Club     Club
	Proposal Proposal
	Items    []Item
	Totals   Totals
}

type Club struct {
	Name    string
	LogoURL string
	Email   string
	Phone   string
}

type Proposal struct {
	Titolo                string
	DestinatarioAzienda   string
	DestinatarioReferente string
	DestinatarioEmail     string
	Messaggio             string
	Termini               string
	ValidUntil            *time.Time
}

type Item struct {
	Nome              string
	Descrizione       string
	Gruppo            string
	Quantita          int
	PrezzoUnitario    decimal.Decimal
	ScontoPercentuale decimal.Decimal
	ValoreTotale      decimal.Decimal
}

type Totals struct {
	Subtotale         decimal.Decimal
	ScontoPercentuale decimal.Decimal
	ScontoValore      decimal.Decimal
	ValoreFinale      decimal.Decimal
}

// Options toggles surface-specific affordances. Preview adds editing hints
// for the builder canvas; the data shown is identical either way.
type Options struct {
	Preview bool
}

type renderContext struct {
	data Data
	opts Options
}

type componentRenderer func(ctx renderContext, c layout.Component) *Node

var renderers = map[string]componentRenderer{
	"header":            renderHeader,
	"title":             renderTitle,
	"recipient-card":    renderRecipientCard,
	"recipient-inline":  renderRecipientInline,
	"heading":           renderHeading,
	"paragraph":         renderParagraph,
	"intro-message":     renderIntroMessage,
	"value-proposition": renderValueProposition,
	"items-table":       renderItemsTable,
	"items-list":        renderItemsList,
	"pricing-summary":   renderPricingSummary,
	"total-highlight":   renderTotalHighlight,
	"terms":             renderTerms,
	"validity-info":     renderValidityInfo,
	"payment-terms":     renderPaymentTerms,
	"cta-accept":        renderCTAAccept,
	"contact-cta":       renderContactCTA,
	"divider":           renderDivider,
	"spacer":            renderSpacer,
	"image":             renderImage,
}

// RenderDocument walks the layout and produces the view tree. Components of
// unknown type render as nothing rather than failing the page.
func RenderDocument(doc layout.Document, data Data, opts Options) Page {
	ctx := renderContext{data: data, opts: opts}
	page := Page{
		Styles:   doc.GlobalStyles,
		Sections: make([]Section, 0, len(doc.Areas)),
	}
	for _, area := range doc.Areas {
		section := Section{
			AreaID:     area.ID,
			Name:       area.Name,
			Settings:   area.Settings,
			Components: make([]Node, 0, len(area.Components)),
		}
		for _, comp := range area.Components {
			fn, ok := renderers[comp.Type]
			if !ok {
				continue
			}
			node := fn(ctx, comp)
			if node == nil {
				continue
			}
			node.Props["component_id"] = comp.ID
			if opts.Preview {
				node.Props["editable"] = true
			}
			section.Components = append(section.Components, *node)
		}
		page.Sections = append(page.Sections, section)
	}
	return page
}

func boolSetting(c layout.Component, key string, fallback bool) bool {
	if v, ok := c.Settings[key].(bool); ok {
		return v
	}
	return fallback
}

func stringSetting(c layout.Component, key, fallback string) string {
	if v, ok := c.Settings[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func intSetting(c layout.Component, key string, fallback int) int {
	switch v := c.Settings[key].(type) {
	case int:
		return v
	case float64:
		// JSON decoding surfaces numbers as float64.
		return int(v)
	default:
		return fallback
	}
}

func stringsSetting(c layout.Component, key string) []string {
	raw, ok := c.Settings[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, e := range raw {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
