package layout

import (
	"encoding/json"

	pkgerrors "github.com/pitchpartner/pitchpartner-backend/pkg/errors"
)

// Encode serializes the document for the proposals layout_json column.
func Encode(doc Document) ([]byte, error) {
	doc.Version = Version
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode layout document")
	}
	return raw, nil
}

// Decode parses a stored layout. The second return reports whether the
// payload is a current-version document: legacy layouts (older versions or
// free-form JSON from before the area model) decode as not-ok so callers can
// fall back to the standard template instead of rendering garbage.
func Decode(raw []byte) (Document, bool) {
	if len(raw) == 0 {
		return Document{}, false
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Document{}, false
	}
	if doc.Version != Version || len(doc.Areas) == 0 {
		return Document{}, false
	}
	for i := range doc.Areas {
		if doc.Areas[i].Components == nil {
			doc.Areas[i].Components = []Component{}
		}
	}
	return doc, true
}
