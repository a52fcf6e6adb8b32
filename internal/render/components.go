package render

import (
	"github.com/shopspring/decimal"

	"github.com/pitchpartner/pitchpartner-backend/internal/layout"
)

func renderHeader(ctx renderContext, c layout.Component) *Node {
	props := map[string]any{
		"alignment": stringSetting(c, "alignment", "center"),
	}
	if boolSetting(c, "showLogo", true) && ctx.data.Club.LogoURL != "" {
		props["logo_url"] = ctx.data.Club.LogoURL
	}
	if boolSetting(c, "showClubName", true) {
		props["club_name"] = ctx.data.Club.Name
	}
	return &Node{Type: "header", Props: props}
}

func renderTitle(ctx renderContext, c layout.Component) *Node {
	text := stringSetting(c, "text", "")
	if text == "" {
		text = ctx.data.Proposal.Titolo
	}
	return &Node{Type: "title", Props: map[string]any{
		"text":      text,
		"subtitle":  stringSetting(c, "subtitle", ""),
		"alignment": stringSetting(c, "alignment", "center"),
	}}
}

func renderRecipientCard(ctx renderContext, c layout.Component) *Node {
	props := map[string]any{
		"label":   stringSetting(c, "label", "Preparata per"),
		"azienda": ctx.data.Proposal.DestinatarioAzienda,
	}
	if boolSetting(c, "showReferente", true) && ctx.data.Proposal.DestinatarioReferente != "" {
		props["referente"] = ctx.data.Proposal.DestinatarioReferente
	}
	if boolSetting(c, "showEmail", true) && ctx.data.Proposal.DestinatarioEmail != "" {
		props["email"] = ctx.data.Proposal.DestinatarioEmail
	}
	return &Node{Type: "recipient-card", Props: props}
}

func renderRecipientInline(ctx renderContext, c layout.Component) *Node {
	return &Node{Type: "recipient-inline", Props: map[string]any{
		"prefix":  stringSetting(c, "prefix", "Spett.le"),
		"azienda": ctx.data.Proposal.DestinatarioAzienda,
	}}
}

func renderHeading(_ renderContext, c layout.Component) *Node {
	return &Node{Type: "heading", Props: map[string]any{
		"text":      stringSetting(c, "text", ""),
		"level":     intSetting(c, "level", 2),
		"alignment": stringSetting(c, "alignment", "left"),
	}}
}

func renderParagraph(_ renderContext, c layout.Component) *Node {
	return &Node{Type: "paragraph", Props: map[string]any{
		"text":      stringSetting(c, "text", ""),
		"alignment": stringSetting(c, "alignment", "left"),
	}}
}

func renderIntroMessage(ctx renderContext, c layout.Component) *Node {
	text := stringSetting(c, "fallback", "")
	if boolSetting(c, "useProposalMessage", true) && ctx.data.Proposal.Messaggio != "" {
		text = ctx.data.Proposal.Messaggio
	}
	if text == "" {
		return nil
	}
	return &Node{Type: "intro-message", Props: map[string]any{"text": text}}
}

func renderValueProposition(_ renderContext, c layout.Component) *Node {
	points := stringsSetting(c, "points")
	if len(points) == 0 {
		return nil
	}
	children := make([]Node, len(points))
	for i, p := range points {
		children[i] = Node{Type: "value-point", Props: map[string]any{"text": p}}
	}
	return &Node{
		Type:     "value-proposition",
		Props:    map[string]any{"title": stringSetting(c, "title", "")},
		Children: children,
	}
}

func renderItemsTable(ctx renderContext, c layout.Component) *Node {
	props := map[string]any{
		"show_quantity":   boolSetting(c, "showQuantity", true),
		"show_unit_price": boolSetting(c, "showUnitPrice", true),
		"show_discount":   boolSetting(c, "showDiscount", true),
	}
	var children []Node
	if boolSetting(c, "groupByCategory", false) {
		for _, g := range groupItems(ctx.data.Items) {
			group := Node{
				Type:     "items-group",
				Props:    map[string]any{"name": g.name},
				Children: itemRows(g.items),
			}
			children = append(children, group)
		}
		props["grouped"] = true
	} else {
		children = itemRows(ctx.data.Items)
	}
	return &Node{Type: "items-table", Props: props, Children: children}
}

func renderItemsList(ctx renderContext, c layout.Component) *Node {
	showDesc := boolSetting(c, "showDescriptions", true)
	children := make([]Node, 0, len(ctx.data.Items))
	for _, it := range ctx.data.Items {
		props := map[string]any{"nome": it.Nome}
		if showDesc && it.Descrizione != "" {
			props["descrizione"] = it.Descrizione
		}
		children = append(children, Node{Type: "item-bullet", Props: props})
	}
	return &Node{Type: "items-list", Props: map[string]any{}, Children: children}
}

func renderPricingSummary(ctx renderContext, c layout.Component) *Node {
	t := ctx.data.Totals
	props := map[string]any{
		"valore_finale":   t.ValoreFinale.StringFixed(2),
		"highlight_total": boolSetting(c, "highlightTotal", true),
	}
	if boolSetting(c, "showSubtotal", true) {
		props["subtotale"] = t.Subtotale.StringFixed(2)
	}
	if boolSetting(c, "showDiscount", true) && t.ScontoValore.IsPositive() {
		props["sconto_percentuale"] = t.ScontoPercentuale.String()
		props["sconto_valore"] = t.ScontoValore.StringFixed(2)
	}
	return &Node{Type: "pricing-summary", Props: props}
}

func renderTotalHighlight(ctx renderContext, c layout.Component) *Node {
	props := map[string]any{
		"label":         stringSetting(c, "label", "Valore complessivo"),
		"valore_finale": ctx.data.Totals.ValoreFinale.StringFixed(2),
	}
	if boolSetting(c, "showSavings", true) && ctx.data.Totals.ScontoValore.IsPositive() {
		props["risparmio"] = ctx.data.Totals.ScontoValore.StringFixed(2)
	}
	return &Node{Type: "total-highlight", Props: props}
}

func renderTerms(ctx renderContext, c layout.Component) *Node {
	text := stringSetting(c, "text", "")
	if boolSetting(c, "useProposalTerms", true) && ctx.data.Proposal.Termini != "" {
		text = ctx.data.Proposal.Termini
	}
	if text == "" {
		return nil
	}
	return &Node{Type: "terms", Props: map[string]any{"text": text}}
}

func renderValidityInfo(ctx renderContext, c layout.Component) *Node {
	until := ctx.data.Proposal.ValidUntil
	if until == nil {
		return nil
	}
	return &Node{Type: "validity-info", Props: map[string]any{
		"label": stringSetting(c, "label", "Proposta valida fino al"),
		"date":  until.Format("02/01/2006"),
	}}
}

func renderPaymentTerms(_ renderContext, c layout.Component) *Node {
	text := stringSetting(c, "text", "")
	if text == "" {
		return nil
	}
	return &Node{Type: "payment-terms", Props: map[string]any{"text": text}}
}

func renderCTAAccept(ctx renderContext, c layout.Component) *Node {
	return &Node{Type: "cta-accept", Props: map[string]any{
		"label":   stringSetting(c, "label", "Accetta la proposta"),
		"enabled": !ctx.opts.Preview,
	}}
}

func renderContactCTA(ctx renderContext, c layout.Component) *Node {
	props := map[string]any{
		"title": stringSetting(c, "title", "Parliamone"),
	}
	if boolSetting(c, "showEmail", true) && ctx.data.Club.Email != "" {
		props["email"] = ctx.data.Club.Email
	}
	if boolSetting(c, "showPhone", true) && ctx.data.Club.Phone != "" {
		props["phone"] = ctx.data.Club.Phone
	}
	return &Node{Type: "contact-cta", Props: props}
}

func renderDivider(_ renderContext, c layout.Component) *Node {
	return &Node{Type: "divider", Props: map[string]any{
		"style": stringSetting(c, "style", "solid"),
	}}
}

func renderSpacer(_ renderContext, c layout.Component) *Node {
	return &Node{Type: "spacer", Props: map[string]any{
		"height": intSetting(c, "height", 40),
	}}
}

func renderImage(_ renderContext, c layout.Component) *Node {
	url := stringSetting(c, "url", "")
	if url == "" {
		return nil
	}
	return &Node{Type: "image", Props: map[string]any{
		"url":       url,
		"alt":       stringSetting(c, "alt", ""),
		"max_width": intSetting(c, "maxWidth", 600),
		"alignment": stringSetting(c, "alignment", "center"),
	}}
}

type itemGroup struct {
	name  string
	items []Item
}

// groupItems buckets items by gruppo preserving the order in which each
// group first appears. Ungrouped items fall under "Altro".
func groupItems(items []Item) []itemGroup {
	var order []string
	byName := map[string][]Item{}
	for _, it := range items {
		name := it.Gruppo
		if name == "" {
			name = "Altro"
		}
		if _, seen := byName[name]; !seen {
			order = append(order, name)
		}
		byName[name] = append(byName[name], it)
	}
	out := make([]itemGroup, len(order))
	for i, name := range order {
		out[i] = itemGroup{name: name, items: byName[name]}
	}
	return out
}

func itemRows(items []Item) []Node {
	out := make([]Node, len(items))
	for i, it := range items {
		props := map[string]any{
			"nome":            it.Nome,
			"quantita":        it.Quantita,
			"prezzo_unitario": it.PrezzoUnitario.StringFixed(2),
			"valore_totale":   it.ValoreTotale.StringFixed(2),
		}
		if it.Descrizione != "" {
			props["descrizione"] = it.Descrizione
		}
		if it.ScontoPercentuale.GreaterThan(decimal.Zero) {
			props["sconto_percentuale"] = it.ScontoPercentuale.String()
		}
		out[i] = Node{Type: "item-row", Props: props}
	}
	return out
}
