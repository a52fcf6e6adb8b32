package layout

// StandardTemplate builds the default proposal document used for new
// proposals and as the fallback when a stored layout cannot be decoded.
func StandardTemplate() Document {
	header := NewArea("Intestazione", nil)
	header.Components = mustComponents(
		"header",
		"title",
		"recipient-card",
	)

	body := NewArea("Contenuto", nil)
	body.Settings.Background = Background{Type: "color", Color: "#f3f4f6"}
	body.Components = mustComponents(
		"intro-message",
		"value-proposition",
		"items-table",
		"pricing-summary",
	)

	footer := NewArea("Chiusura", nil)
	footer.Components = mustComponents(
		"terms",
		"validity-info",
		"contact-cta",
	)

	return Document{
		Version:      Version,
		Areas:        []Area{header, body, footer},
		GlobalStyles: DefaultGlobalStyles(),
	}
}

func mustComponents(types ...string) []Component {
	out := make([]Component, 0, len(types))
	for _, t := range types {
		if c := NewComponent(t, nil); c != nil {
			out = append(out, *c)
		}
	}
	return out
}
