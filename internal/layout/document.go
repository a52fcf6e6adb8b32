package layout

import (
	"github.com/google/uuid"
)

const Version = "2.0"

// Document is the persisted layout of a proposal: an ordered list of areas,
// each holding an ordered list of components.
type Document struct {
	Version      string       `json:"version"`
	Areas        []Area       `json:"areas"`
	GlobalStyles GlobalStyles `json:"globalStyles"`
}

type Area struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Settings   AreaSettings `json:"settings"`
	Components []Component  `json:"components"`
}

type AreaSettings struct {
	Background Background `json:"background"`
	Padding    Padding    `json:"padding"`
	TextColor  string     `json:"textColor,omitempty"`
	MaxWidth   string     `json:"maxWidth,omitempty"`
	FullWidth  bool       `json:"fullWidth,omitempty"`
}

// Background is either a flat color ("color") or a two-stop gradient
// ("gradient").
type Background struct {
	Type     string    `json:"type"`
	Color    string    `json:"color,omitempty"`
	Gradient *Gradient `json:"gradient,omitempty"`
}

type Gradient struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Padding is expressed in pixels per side.
type Padding struct {
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
	Right  int `json:"right"`
}

type Component struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Settings map[string]any `json:"settings"`
}

type GlobalStyles struct {
	Fonts        Fonts  `json:"fonts"`
	Colors       Colors `json:"colors"`
	BorderRadius string `json:"borderRadius,omitempty"`
}

type Fonts struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

type Colors struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
	Text       string `json:"text"`
	TextMuted  string `json:"textMuted"`
}

// NewID returns a fresh identifier for an area or component.
func NewID() string {
	return uuid.NewString()
}

// DefaultAreaSettings returns the settings applied to a freshly created area.
func DefaultAreaSettings() AreaSettings {
	return AreaSettings{
		Background: Background{Type: "color", Color: "#ffffff"},
		Padding:    Padding{Top: 48, Bottom: 48, Left: 24, Right: 24},
	}
}

// NewArea builds an empty area with default settings, shallow-merged with the
// given overrides (last write wins).
func NewArea(name string, overrides map[string]any) Area {
	settings := DefaultAreaSettings()
	mergeAreaSettings(&settings, overrides)
	return Area{
		ID:         NewID(),
		Name:       name,
		Settings:   settings,
		Components: []Component{},
	}
}

// NewComponent instantiates a component of the given catalog type with a copy
// of its default settings, shallow-merged with the given overrides. Returns
// nil for unknown types so callers can skip entries from stale payloads
// without failing the whole document.
func NewComponent(componentType string, overrides map[string]any) *Component {
	ct, ok := LookupType(componentType)
	if !ok {
		return nil
	}
	settings := cloneSettings(ct.DefaultSettings)
	for k, v := range overrides {
		settings[k] = cloneValue(v)
	}
	return &Component{
		ID:       NewID(),
		Type:     componentType,
		Settings: settings,
	}
}

// DefaultGlobalStyles returns the styles applied to new documents before a
// club theme is picked.
func DefaultGlobalStyles() GlobalStyles {
	return GlobalStyles{
		Fonts: Fonts{Heading: "Inter", Body: "Inter"},
		Colors: Colors{
			Primary:    "#1a56db",
			Secondary:  "#111827",
			Accent:     "#f59e0b",
			Background: "#ffffff",
			Text:       "#111827",
			TextMuted:  "#6b7280",
		},
		BorderRadius: "8px",
	}
}

// mergeAreaSettings applies a partial patch over the base settings. Unknown
// keys are ignored; keys inside background and padding merge per field so a
// patch never wipes siblings it does not mention. JSON numbers arrive as
// float64.
func mergeAreaSettings(base *AreaSettings, patch map[string]any) {
	for key, raw := range patch {
		switch key {
		case "background":
			bg, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			if v, ok := bg["type"].(string); ok {
				base.Background.Type = v
			}
			if v, ok := bg["color"].(string); ok {
				base.Background.Color = v
			}
			if g, ok := bg["gradient"].(map[string]any); ok {
				grad := Gradient{}
				if base.Background.Gradient != nil {
					grad = *base.Background.Gradient
				}
				if v, ok := g["from"].(string); ok {
					grad.From = v
				}
				if v, ok := g["to"].(string); ok {
					grad.To = v
				}
				base.Background.Gradient = &grad
			}
		case "padding":
			pad, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			if v, ok := asInt(pad["top"]); ok {
				base.Padding.Top = v
			}
			if v, ok := asInt(pad["bottom"]); ok {
				base.Padding.Bottom = v
			}
			if v, ok := asInt(pad["left"]); ok {
				base.Padding.Left = v
			}
			if v, ok := asInt(pad["right"]); ok {
				base.Padding.Right = v
			}
		case "textColor":
			if v, ok := raw.(string); ok {
				base.TextColor = v
			}
		case "maxWidth":
			if v, ok := raw.(string); ok {
				base.MaxWidth = v
			}
		case "fullWidth":
			if v, ok := raw.(bool); ok {
				base.FullWidth = v
			}
		}
	}
}

func asInt(v any) (int, bool) {
	switch tv := v.(type) {
	case float64:
		return int(tv), true
	case int:
		return tv, true
	default:
		return 0, false
	}
}

// Clone deep-copies the document so reducer steps never alias stored state.
func (d Document) Clone() Document {
	out := d
	out.Areas = make([]Area, len(d.Areas))
	for i, a := range d.Areas {
		out.Areas[i] = a.clone()
	}
	return out
}

func (a Area) clone() Area {
	out := a
	if a.Settings.Background.Gradient != nil {
		grad := *a.Settings.Background.Gradient
		out.Settings.Background.Gradient = &grad
	}
	out.Components = make([]Component, len(a.Components))
	for i, c := range a.Components {
		out.Components[i] = c.clone()
	}
	return out
}

func (c Component) clone() Component {
	out := c
	out.Settings = cloneSettings(c.Settings)
	return out
}

func cloneSettings(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch tv := v.(type) {
	case map[string]any:
		return cloneSettings(tv)
	case []any:
		out := make([]any, len(tv))
		for i, e := range tv {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

func (d *Document) findArea(areaID string) (int, *Area) {
	for i := range d.Areas {
		if d.Areas[i].ID == areaID {
			return i, &d.Areas[i]
		}
	}
	return -1, nil
}

func (a *Area) findComponent(componentID string) int {
	for i := range a.Components {
		if a.Components[i].ID == componentID {
			return i
		}
	}
	return -1
}
