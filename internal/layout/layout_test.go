package layout

import (
	"encoding/json"
	"testing"

	pkgerrors "github.com/pitchpartner/pitchpartner-backend/pkg/errors"
)

func TestNewComponent_KnownType(t *testing.T) {
	c := NewComponent("items-table", nil)
	if c == nil {
		t.Fatal("expected component, got nil")
	}
	if c.ID == "" {
		t.Error("expected generated id")
	}
	if c.Type != "items-table" {
		t.Errorf("unexpected type %q", c.Type)
	}
	if got := c.Settings["groupByCategory"]; got != false {
		t.Errorf("expected default groupByCategory=false, got %v", got)
	}

	// Defaults must be copies, not shared with the catalog.
	c.Settings["groupByCategory"] = true
	ct, _ := LookupType("items-table")
	if ct.DefaultSettings["groupByCategory"] != false {
		t.Error("mutating an instance leaked into catalog defaults")
	}
}

func TestNewComponent_UnknownType(t *testing.T) {
	if c := NewComponent("hologram", nil); c != nil {
		t.Fatalf("expected nil for unknown type, got %+v", c)
	}
}

func TestCatalog_CoversAllCategories(t *testing.T) {
	seen := map[Category]bool{}
	for _, ct := range Catalog() {
		seen[ct.Category] = true
		if ct.Type == "" || ct.Name == "" {
			t.Errorf("catalog entry %q missing metadata", ct.Type)
		}
	}
	for _, cat := range []Category{
		CategoryHeader, CategoryRecipient, CategoryContent, CategoryPricing,
		CategoryTerms, CategoryCTA, CategoryLayout,
	} {
		if !seen[cat] {
			t.Errorf("no catalog entry for category %q", cat)
		}
	}
}

func TestApply_DeleteLastAreaRejected(t *testing.T) {
	doc := Document{Version: Version, Areas: []Area{NewArea("Unica", nil)}}

	_, err := Apply(doc, Action{DeleteArea: &DeleteArea{AreaID: doc.Areas[0].ID}})
	if err == nil {
		t.Fatal("expected error deleting the only area")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestApply_DeleteArea(t *testing.T) {
	a, b := NewArea("A", nil), NewArea("B", nil)
	doc := Document{Version: Version, Areas: []Area{a, b}}

	next, err := Apply(doc, Action{DeleteArea: &DeleteArea{AreaID: a.ID}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(next.Areas) != 1 || next.Areas[0].ID != b.ID {
		t.Fatalf("unexpected areas after delete: %+v", next.Areas)
	}
	if len(doc.Areas) != 2 {
		t.Error("input document was mutated")
	}
}

func TestApply_UpdateComponentMergesSettings(t *testing.T) {
	area := NewArea("A", nil)
	comp := NewComponent("title", nil)
	area.Components = []Component{*comp}
	doc := Document{Version: Version, Areas: []Area{area}}

	next, err := Apply(doc, Action{UpdateComponent: &UpdateComponent{
		AreaID:      area.ID,
		ComponentID: comp.ID,
		Settings:    map[string]any{"text": "Stagione 2026/27"},
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := next.Areas[0].Components[0].Settings
	if got["text"] != "Stagione 2026/27" {
		t.Errorf("patched key not applied: %v", got["text"])
	}
	if got["alignment"] != "center" {
		t.Errorf("untouched key lost: %v", got["alignment"])
	}
}

func TestApply_MoveComponentDownSameArea(t *testing.T) {
	area := NewArea("A", nil)
	var ids []string
	for _, typ := range []string{"heading", "paragraph", "divider", "image"} {
		c := NewComponent(typ, nil)
		area.Components = append(area.Components, *c)
		ids = append(ids, c.ID)
	}
	doc := Document{Version: Version, Areas: []Area{area}}

	// Drag the first component to slot 2. After removal the later items
	// shift left, so it must land between the original #2 and #3.
	next, err := Apply(doc, Action{MoveComponent: &MoveComponent{
		FromAreaID:  area.ID,
		ComponentID: ids[0],
		ToAreaID:    area.ID,
		Index:       2,
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{ids[1], ids[0], ids[2], ids[3]}
	for i, c := range next.Areas[0].Components {
		if c.ID != want[i] {
			t.Fatalf("order mismatch at %d: got %v want %v", i, componentIDs(next.Areas[0]), want)
		}
	}
}

func TestApply_MoveComponentUpSameArea(t *testing.T) {
	area := NewArea("A", nil)
	var ids []string
	for _, typ := range []string{"heading", "paragraph", "divider"} {
		c := NewComponent(typ, nil)
		area.Components = append(area.Components, *c)
		ids = append(ids, c.ID)
	}
	doc := Document{Version: Version, Areas: []Area{area}}

	next, err := Apply(doc, Action{MoveComponent: &MoveComponent{
		FromAreaID:  area.ID,
		ComponentID: ids[2],
		ToAreaID:    area.ID,
		Index:       0,
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{ids[2], ids[0], ids[1]}
	for i, c := range next.Areas[0].Components {
		if c.ID != want[i] {
			t.Fatalf("order mismatch at %d: got %v want %v", i, componentIDs(next.Areas[0]), want)
		}
	}
}

func TestApply_MoveComponentAcrossAreas(t *testing.T) {
	from, to := NewArea("A", nil), NewArea("B", nil)
	moved := NewComponent("image", nil)
	from.Components = []Component{*moved}
	stay := NewComponent("terms", nil)
	to.Components = []Component{*stay}
	doc := Document{Version: Version, Areas: []Area{from, to}}

	next, err := Apply(doc, Action{MoveComponent: &MoveComponent{
		FromAreaID:  from.ID,
		ComponentID: moved.ID,
		ToAreaID:    to.ID,
		Index:       0,
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(next.Areas[0].Components) != 0 {
		t.Error("component still present in source area")
	}
	got := componentIDs(next.Areas[1])
	if len(got) != 2 || got[0] != moved.ID || got[1] != stay.ID {
		t.Fatalf("unexpected target order: %v", got)
	}
}

func TestApply_AddComponentUnknownType(t *testing.T) {
	area := NewArea("A", nil)
	doc := Document{Version: Version, Areas: []Area{area}}

	_, err := Apply(doc, Action{AddComponent: &AddComponent{AreaID: area.ID, Type: "hologram"}})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestApply_MoveArea(t *testing.T) {
	a, b, c := NewArea("A", nil), NewArea("B", nil), NewArea("C", nil)
	doc := Document{Version: Version, Areas: []Area{a, b, c}}

	next, err := Apply(doc, Action{MoveArea: &MoveArea{AreaID: c.ID, Index: 0}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{c.ID, a.ID, b.ID}
	for i, area := range next.Areas {
		if area.ID != want[i] {
			t.Fatalf("unexpected area order at %d", i)
		}
	}
}

func TestNewArea_SettingsOverrides(t *testing.T) {
	area := NewArea("Sponsor", map[string]any{
		"background": map[string]any{"type": "gradient", "gradient": map[string]any{"from": "#1a56db", "to": "#111827"}},
		"padding":    map[string]any{"top": float64(64)},
		"fullWidth":  true,
	})
	if area.Settings.Background.Type != "gradient" {
		t.Errorf("override not applied: %+v", area.Settings.Background)
	}
	if g := area.Settings.Background.Gradient; g == nil || g.From != "#1a56db" || g.To != "#111827" {
		t.Errorf("gradient not applied: %+v", g)
	}
	if area.Settings.Padding.Top != 64 {
		t.Errorf("padding override not applied: %+v", area.Settings.Padding)
	}
	if area.Settings.Padding.Left != 24 {
		t.Errorf("untouched padding default lost: %+v", area.Settings.Padding)
	}
	if !area.Settings.FullWidth {
		t.Error("fullWidth override not applied")
	}
}

func TestNewComponent_SettingsOverrides(t *testing.T) {
	c := NewComponent("title", map[string]any{"text": "Stagione 2026/27"})
	if c == nil {
		t.Fatal("expected component, got nil")
	}
	if c.Settings["text"] != "Stagione 2026/27" {
		t.Errorf("override not applied: %v", c.Settings["text"])
	}
	if c.Settings["alignment"] != "center" {
		t.Errorf("untouched default lost: %v", c.Settings["alignment"])
	}
}

func TestApply_AddComponentWithSettings(t *testing.T) {
	area := NewArea("A", nil)
	doc := Document{Version: Version, Areas: []Area{area}}

	next, err := Apply(doc, Action{AddComponent: &AddComponent{
		AreaID:   area.ID,
		Type:     "title",
		Settings: map[string]any{"text": "Proposta Main Sponsor"},
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := next.Areas[0].Components[0].Settings
	if got["text"] != "Proposta Main Sponsor" {
		t.Errorf("initial setting not applied: %v", got["text"])
	}
	if got["alignment"] != "center" {
		t.Errorf("untouched default lost: %v", got["alignment"])
	}
}

func TestApply_UpdateAreaSettingsPartialMerge(t *testing.T) {
	area := NewArea("A", map[string]any{"textColor": "#111827"})
	doc := Document{Version: Version, Areas: []Area{area}}

	next, err := Apply(doc, Action{UpdateAreaSettings: &UpdateAreaSettings{
		AreaID: area.ID,
		Settings: map[string]any{
			"background": map[string]any{"color": "#f3f4f6"},
			"padding":    map[string]any{"top": float64(12), "bottom": float64(12)},
		},
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := next.Areas[0].Settings
	if got.Background.Color != "#f3f4f6" {
		t.Errorf("background color not patched: %+v", got.Background)
	}
	if got.Background.Type != "color" {
		t.Errorf("unmentioned background type lost: %+v", got.Background)
	}
	if got.Padding.Top != 12 || got.Padding.Bottom != 12 {
		t.Errorf("padding not patched: %+v", got.Padding)
	}
	if got.Padding.Left != 24 || got.Padding.Right != 24 {
		t.Errorf("unmentioned padding sides lost: %+v", got.Padding)
	}
	if got.TextColor != "#111827" {
		t.Errorf("unmentioned textColor lost: %q", got.TextColor)
	}
	if before := doc.Areas[0].Settings.Background.Color; before != "#ffffff" {
		t.Errorf("input document was mutated: %q", before)
	}
}

func TestDecode_StructuredSettingsPreserved(t *testing.T) {
	raw := []byte(`{
		"version": "2.0",
		"areas": [{
			"id": "a1",
			"name": "Intestazione",
			"settings": {
				"background": {"type": "gradient", "gradient": {"from": "#1a56db", "to": "#111827"}},
				"padding": {"top": 64, "bottom": 32, "left": 16, "right": 16},
				"textColor": "#ffffff",
				"maxWidth": "960px",
				"fullWidth": true
			},
			"components": [{"id": "c1", "type": "title", "settings": {"text": "Proposta"}}]
		}],
		"globalStyles": {
			"fonts": {"heading": "Poppins", "body": "Inter"},
			"colors": {
				"primary": "#1a56db", "secondary": "#111827", "accent": "#f59e0b",
				"background": "#ffffff", "text": "#111827", "textMuted": "#6b7280"
			},
			"borderRadius": "12px"
		}
	}`)

	doc, ok := Decode(raw)
	if !ok {
		t.Fatal("expected structured current-version document to decode")
	}
	s := doc.Areas[0].Settings
	if s.Background.Type != "gradient" || s.Background.Gradient == nil || s.Background.Gradient.From != "#1a56db" {
		t.Errorf("background lost in decode: %+v", s.Background)
	}
	if s.Padding != (Padding{Top: 64, Bottom: 32, Left: 16, Right: 16}) {
		t.Errorf("padding lost in decode: %+v", s.Padding)
	}
	if s.TextColor != "#ffffff" || s.MaxWidth != "960px" || !s.FullWidth {
		t.Errorf("area settings lost in decode: %+v", s)
	}
	if doc.GlobalStyles.Fonts.Heading != "Poppins" || doc.GlobalStyles.Colors.TextMuted != "#6b7280" {
		t.Errorf("global styles lost in decode: %+v", doc.GlobalStyles)
	}
	if doc.GlobalStyles.BorderRadius != "12px" {
		t.Errorf("borderRadius lost in decode: %q", doc.GlobalStyles.BorderRadius)
	}
}

func TestDecode_CurrentVersionRoundTrip(t *testing.T) {
	doc := StandardTemplate()
	raw, err := Encode(doc)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, ok := Decode(raw)
	if !ok {
		t.Fatal("expected current-version document to decode")
	}
	if len(decoded.Areas) != len(doc.Areas) {
		t.Fatalf("area count mismatch: %d vs %d", len(decoded.Areas), len(doc.Areas))
	}
}

func TestDecode_LegacyPayloadRejected(t *testing.T) {
	cases := map[string][]byte{
		"empty":         nil,
		"not json":      []byte("{{"),
		"old version":   []byte(`{"version":"1.0","areas":[{"id":"a1","components":[]}]}`),
		"no areas":      []byte(`{"version":"2.0","areas":[]}`),
		"free-form map": mustJSON(map[string]any{"blocks": []string{"header"}}),
	}
	for name, raw := range cases {
		if _, ok := Decode(raw); ok {
			t.Errorf("%s: expected legacy payload to be rejected", name)
		}
	}
}

func TestStandardTemplate(t *testing.T) {
	doc := StandardTemplate()
	if doc.Version != Version {
		t.Errorf("unexpected version %q", doc.Version)
	}
	if len(doc.Areas) != 3 {
		t.Fatalf("expected 3 areas, got %d", len(doc.Areas))
	}
	types := map[string]bool{}
	for _, a := range doc.Areas {
		if a.ID == "" {
			t.Error("area without id")
		}
		for _, c := range a.Components {
			types[c.Type] = true
		}
	}
	for _, required := range []string{"header", "items-table", "pricing-summary", "terms"} {
		if !types[required] {
			t.Errorf("standard template missing %q", required)
		}
	}
}

func componentIDs(a Area) []string {
	out := make([]string, len(a.Components))
	for i, c := range a.Components {
		out[i] = c.ID
	}
	return out
}

func mustJSON(v any) []byte {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return raw
}
