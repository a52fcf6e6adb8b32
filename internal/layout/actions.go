package layout

import (
	pkgerrors "github.com/pitchpartner/pitchpartner-backend/pkg/errors"
)

// Action is one builder mutation applied to a document. Exactly one field is
// set per action; Apply dispatches on it.
type Action struct {
	AddArea            *AddArea            `json:"add_area,omitempty"`
	DeleteArea         *DeleteArea         `json:"delete_area,omitempty"`
	MoveArea           *MoveArea           `json:"move_area,omitempty"`
	UpdateAreaSettings *UpdateAreaSettings `json:"update_area_settings,omitempty"`
	AddComponent       *AddComponent       `json:"add_component,omitempty"`
	DeleteComponent    *DeleteComponent    `json:"delete_component,omitempty"`
	UpdateComponent    *UpdateComponent    `json:"update_component,omitempty"`
	MoveComponent      *MoveComponent      `json:"move_component,omitempty"`
}

type AddArea struct {
	Name     string         `json:"name"`
	Index    *int           `json:"index,omitempty"`
	Settings map[string]any `json:"settings,omitempty"`
}

type DeleteArea struct {
	AreaID string `json:"area_id"`
}

type MoveArea struct {
	AreaID string `json:"area_id"`
	Index  int    `json:"index"`
}

type UpdateAreaSettings struct {
	AreaID   string         `json:"area_id"`
	Settings map[string]any `json:"settings"`
}

type AddComponent struct {
	AreaID   string         `json:"area_id"`
	Type     string         `json:"type"`
	Index    *int           `json:"index,omitempty"`
	Settings map[string]any `json:"settings,omitempty"`
}

type DeleteComponent struct {
	AreaID      string `json:"area_id"`
	ComponentID string `json:"component_id"`
}

type UpdateComponent struct {
	AreaID      string         `json:"area_id"`
	ComponentID string         `json:"component_id"`
	Settings    map[string]any `json:"settings"`
}

// MoveComponent covers both reordering within an area and dragging a
// component into another area at a given slot.
type MoveComponent struct {
	FromAreaID  string `json:"from_area_id"`
	ComponentID string `json:"component_id"`
	ToAreaID    string `json:"to_area_id"`
	Index       int    `json:"index"`
}

// Apply runs one action against the document and returns the resulting
// state. The input document is never mutated.
func Apply(doc Document, action Action) (Document, error) {
	next := doc.Clone()
	switch {
	case action.AddArea != nil:
		return applyAddArea(next, *action.AddArea)
	case action.DeleteArea != nil:
		return applyDeleteArea(next, *action.DeleteArea)
	case action.MoveArea != nil:
		return applyMoveArea(next, *action.MoveArea)
	case action.UpdateAreaSettings != nil:
		return applyUpdateAreaSettings(next, *action.UpdateAreaSettings)
	case action.AddComponent != nil:
		return applyAddComponent(next, *action.AddComponent)
	case action.DeleteComponent != nil:
		return applyDeleteComponent(next, *action.DeleteComponent)
	case action.UpdateComponent != nil:
		return applyUpdateComponent(next, *action.UpdateComponent)
	case action.MoveComponent != nil:
		return applyMoveComponent(next, *action.MoveComponent)
	default:
		return doc, pkgerrors.New(pkgerrors.CodeValidation, "empty layout action")
	}
}

// ApplyAll runs a batch of actions in order, stopping at the first failure.
func ApplyAll(doc Document, actions []Action) (Document, error) {
	current := doc
	for _, action := range actions {
		next, err := Apply(current, action)
		if err != nil {
			return doc, err
		}
		current = next
	}
	return current, nil
}

func applyAddArea(doc Document, a AddArea) (Document, error) {
	name := a.Name
	if name == "" {
		name = "Nuova sezione"
	}
	area := NewArea(name, a.Settings)
	idx := len(doc.Areas)
	if a.Index != nil {
		idx = clampIndex(*a.Index, len(doc.Areas))
	}
	doc.Areas = append(doc.Areas[:idx], append([]Area{area}, doc.Areas[idx:]...)...)
	return doc, nil
}

func applyDeleteArea(doc Document, a DeleteArea) (Document, error) {
	idx, _ := doc.findArea(a.AreaID)
	if idx < 0 {
		return doc, pkgerrors.New(pkgerrors.CodeNotFound, "area not found")
	}
	if len(doc.Areas) == 1 {
		return doc, pkgerrors.New(pkgerrors.CodeValidation, "a document must keep at least one area")
	}
	doc.Areas = append(doc.Areas[:idx], doc.Areas[idx+1:]...)
	return doc, nil
}

func applyMoveArea(doc Document, a MoveArea) (Document, error) {
	idx, _ := doc.findArea(a.AreaID)
	if idx < 0 {
		return doc, pkgerrors.New(pkgerrors.CodeNotFound, "area not found")
	}
	area := doc.Areas[idx]
	doc.Areas = append(doc.Areas[:idx], doc.Areas[idx+1:]...)
	to := clampIndex(a.Index, len(doc.Areas))
	doc.Areas = append(doc.Areas[:to], append([]Area{area}, doc.Areas[to:]...)...)
	return doc, nil
}

func applyUpdateAreaSettings(doc Document, a UpdateAreaSettings) (Document, error) {
	idx, area := doc.findArea(a.AreaID)
	if idx < 0 {
		return doc, pkgerrors.New(pkgerrors.CodeNotFound, "area not found")
	}
	// Merge semantics: keys in the patch win, untouched keys survive.
	mergeAreaSettings(&area.Settings, a.Settings)
	return doc, nil
}

func applyAddComponent(doc Document, a AddComponent) (Document, error) {
	idx, area := doc.findArea(a.AreaID)
	if idx < 0 {
		return doc, pkgerrors.New(pkgerrors.CodeNotFound, "area not found")
	}
	comp := NewComponent(a.Type, a.Settings)
	if comp == nil {
		return doc, pkgerrors.New(pkgerrors.CodeValidation, "unknown component type").
			WithDetails(map[string]any{"type": a.Type})
	}
	at := len(area.Components)
	if a.Index != nil {
		at = clampIndex(*a.Index, len(area.Components))
	}
	area.Components = append(area.Components[:at], append([]Component{*comp}, area.Components[at:]...)...)
	return doc, nil
}

func applyDeleteComponent(doc Document, a DeleteComponent) (Document, error) {
	idx, area := doc.findArea(a.AreaID)
	if idx < 0 {
		return doc, pkgerrors.New(pkgerrors.CodeNotFound, "area not found")
	}
	ci := area.findComponent(a.ComponentID)
	if ci < 0 {
		return doc, pkgerrors.New(pkgerrors.CodeNotFound, "component not found")
	}
	area.Components = append(area.Components[:ci], area.Components[ci+1:]...)
	return doc, nil
}

func applyUpdateComponent(doc Document, a UpdateComponent) (Document, error) {
	idx, area := doc.findArea(a.AreaID)
	if idx < 0 {
		return doc, pkgerrors.New(pkgerrors.CodeNotFound, "area not found")
	}
	ci := area.findComponent(a.ComponentID)
	if ci < 0 {
		return doc, pkgerrors.New(pkgerrors.CodeNotFound, "component not found")
	}
	// Merge semantics: keys in the patch win, untouched keys survive.
	for k, v := range a.Settings {
		area.Components[ci].Settings[k] = cloneValue(v)
	}
	return doc, nil
}

func applyMoveComponent(doc Document, a MoveComponent) (Document, error) {
	fi, from := doc.findArea(a.FromAreaID)
	if fi < 0 {
		return doc, pkgerrors.New(pkgerrors.CodeNotFound, "source area not found")
	}
	ci := from.findComponent(a.ComponentID)
	if ci < 0 {
		return doc, pkgerrors.New(pkgerrors.CodeNotFound, "component not found")
	}
	comp := from.Components[ci]
	from.Components = append(from.Components[:ci], from.Components[ci+1:]...)

	ti, to := doc.findArea(a.ToAreaID)
	if ti < 0 {
		return doc, pkgerrors.New(pkgerrors.CodeNotFound, "target area not found")
	}
	at := a.Index
	// Moving down within the same area: the removal above shifted every
	// later slot left by one, so the requested index points one past the
	// intended drop position.
	if a.FromAreaID == a.ToAreaID && at > ci {
		at--
	}
	at = clampIndex(at, len(to.Components))
	to.Components = append(to.Components[:at], append([]Component{comp}, to.Components[at:]...)...)
	return doc, nil
}

func clampIndex(idx, length int) int {
	if idx < 0 {
		return 0
	}
	if idx > length {
		return length
	}
	return idx
}
