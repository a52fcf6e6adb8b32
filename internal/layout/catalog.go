package layout

// Category buckets the component palette shown in the builder sidebar.
type Category string

const (
	CategoryHeader    Category = "header"
	CategoryRecipient Category = "recipient"
	CategoryContent   Category = "content"
	CategoryPricing   Category = "pricing"
	CategoryTerms     Category = "terms"
	CategoryCTA       Category = "cta"
	CategoryLayout    Category = "layout"
)

// ComponentType describes one entry of the static component catalog. The
// registry is immutable; per-instance state lives in Component.Settings.
type ComponentType struct {
	Type            string         `json:"type"`
	Name            string         `json:"name"`
	Icon            string         `json:"icon"`
	Category        Category       `json:"category"`
	Description     string         `json:"description"`
	DefaultSettings map[string]any `json:"defaultSettings"`
}

var catalog = []ComponentType{
	{
		Type:        "header",
		Name:        "Intestazione",
		Icon:        "layout-top",
		Category:    CategoryHeader,
		Description: "Logo e nome del club in testa al documento",
		DefaultSettings: map[string]any{
			"showLogo":     true,
			"showClubName": true,
			"alignment":    "center",
		},
	},
	{
		Type:        "title",
		Name:        "Titolo",
		Icon:        "type",
		Category:    CategoryHeader,
		Description: "Titolo principale della proposta",
		DefaultSettings: map[string]any{
			"text":      "Proposta di Sponsorizzazione",
			"subtitle":  "",
			"alignment": "center",
		},
	},
	{
		Type:        "recipient-card",
		Name:        "Destinatario",
		Icon:        "id-card",
		Category:    CategoryRecipient,
		Description: "Scheda con azienda, referente e contatti",
		DefaultSettings: map[string]any{
			"label":         "Preparata per",
			"showReferente": true,
			"showEmail":     true,
		},
	},
	{
		Type:        "recipient-inline",
		Name:        "Destinatario in linea",
		Icon:        "at-sign",
		Category:    CategoryRecipient,
		Description: "Riga di intestazione con il nome dell'azienda",
		DefaultSettings: map[string]any{
			"prefix": "Spett.le",
		},
	},
	{
		Type:        "heading",
		Name:        "Sottotitolo",
		Icon:        "heading",
		Category:    CategoryContent,
		Description: "Titolo di sezione",
		DefaultSettings: map[string]any{
			"text":      "Sezione",
			"level":     2,
			"alignment": "left",
		},
	},
	{
		Type:        "paragraph",
		Name:        "Paragrafo",
		Icon:        "align-left",
		Category:    CategoryContent,
		Description: "Blocco di testo libero",
		DefaultSettings: map[string]any{
			"text":      "",
			"alignment": "left",
		},
	},
	{
		Type:        "intro-message",
		Name:        "Messaggio introduttivo",
		Icon:        "message-square",
		Category:    CategoryContent,
		Description: "Messaggio personalizzato della proposta",
		DefaultSettings: map[string]any{
			"useProposalMessage": true,
			"fallback":           "",
		},
	},
	{
		Type:        "value-proposition",
		Name:        "Punti di valore",
		Icon:        "star",
		Category:    CategoryContent,
		Description: "Elenco dei vantaggi per lo sponsor",
		DefaultSettings: map[string]any{
			"title": "Perché sponsorizzarci",
			"points": []any{
				"Visibilità sul territorio",
				"Community appassionata",
				"Attivazioni su misura",
			},
		},
	},
	{
		Type:        "items-table",
		Name:        "Tabella voci",
		Icon:        "table",
		Category:    CategoryPricing,
		Description: "Tabella delle voci con quantità e prezzi",
		DefaultSettings: map[string]any{
			"groupByCategory": false,
			"showQuantity":    true,
			"showUnitPrice":   true,
			"showDiscount":    true,
		},
	},
	{
		Type:        "items-list",
		Name:        "Elenco voci",
		Icon:        "list",
		Category:    CategoryPricing,
		Description: "Elenco compatto delle voci incluse",
		DefaultSettings: map[string]any{
			"showDescriptions": true,
		},
	},
	{
		Type:        "pricing-summary",
		Name:        "Riepilogo economico",
		Icon:        "calculator",
		Category:    CategoryPricing,
		Description: "Subtotale, sconto e totale della proposta",
		DefaultSettings: map[string]any{
			"showSubtotal":   true,
			"showDiscount":   true,
			"highlightTotal": true,
		},
	},
	{
		Type:        "total-highlight",
		Name:        "Totale in evidenza",
		Icon:        "badge-euro",
		Category:    CategoryPricing,
		Description: "Valore finale a piena larghezza",
		DefaultSettings: map[string]any{
			"label":       "Valore complessivo",
			"showSavings": true,
		},
	},
	{
		Type:        "terms",
		Name:        "Termini e condizioni",
		Icon:        "file-text",
		Category:    CategoryTerms,
		Description: "Termini contrattuali della proposta",
		DefaultSettings: map[string]any{
			"useProposalTerms": true,
			"text":             "",
		},
	},
	{
		Type:        "validity-info",
		Name:        "Validità",
		Icon:        "calendar-clock",
		Category:    CategoryTerms,
		Description: "Data di scadenza dell'offerta",
		DefaultSettings: map[string]any{
			"label":    "Proposta valida fino al",
			"showDays": true,
		},
	},
	{
		Type:        "payment-terms",
		Name:        "Condizioni di pagamento",
		Icon:        "credit-card",
		Category:    CategoryTerms,
		Description: "Modalità e scadenze di pagamento",
		DefaultSettings: map[string]any{
			"text": "50% alla firma, saldo a 30 giorni",
		},
	},
	{
		Type:        "cta-accept",
		Name:        "Accetta proposta",
		Icon:        "check-circle",
		Category:    CategoryCTA,
		Description: "Pulsante di accettazione per il destinatario",
		DefaultSettings: map[string]any{
			"label": "Accetta la proposta",
		},
	},
	{
		Type:        "contact-cta",
		Name:        "Contattaci",
		Icon:        "phone",
		Category:    CategoryCTA,
		Description: "Riquadro con i contatti del club",
		DefaultSettings: map[string]any{
			"title":     "Parliamone",
			"showEmail": true,
			"showPhone": true,
		},
	},
	{
		Type:        "divider",
		Name:        "Separatore",
		Icon:        "minus",
		Category:    CategoryLayout,
		Description: "Linea orizzontale di separazione",
		DefaultSettings: map[string]any{
			"style": "solid",
		},
	},
	{
		Type:        "spacer",
		Name:        "Spazio",
		Icon:        "move-vertical",
		Category:    CategoryLayout,
		Description: "Spazio verticale vuoto",
		DefaultSettings: map[string]any{
			"height": 40,
		},
	},
	{
		Type:        "image",
		Name:        "Immagine",
		Icon:        "image",
		Category:    CategoryLayout,
		Description: "Immagine da URL",
		DefaultSettings: map[string]any{
			"url":       "",
			"alt":       "",
			"maxWidth":  600,
			"alignment": "center",
		},
	},
}

var catalogByType = func() map[string]ComponentType {
	m := make(map[string]ComponentType, len(catalog))
	for _, ct := range catalog {
		m[ct.Type] = ct
	}
	return m
}()

// Catalog returns the full component registry in palette order.
func Catalog() []ComponentType {
	out := make([]ComponentType, len(catalog))
	copy(out, catalog)
	return out
}

// LookupType returns the catalog entry for the given type key.
func LookupType(componentType string) (ComponentType, bool) {
	ct, ok := catalogByType[componentType]
	return ct, ok
}
