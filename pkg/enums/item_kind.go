package enums

import "fmt"

// ItemKind distinguishes how a proposal line item was sourced.
type ItemKind string

const (
	// ItemKindAsset references an inventory asset from the club's catalog.
	ItemKindAsset ItemKind = "asset"
	// ItemKindService is a recurring service (hospitality, activation).
	ItemKindService ItemKind = "service"
	// ItemKindCustom is a free-form line typed directly into the builder.
	ItemKindCustom ItemKind = "custom"
)

var validItemKinds = []ItemKind{ItemKindAsset, ItemKindService, ItemKindCustom}

// String implements fmt.Stringer.
func (i ItemKind) String() string {
	return string(i)
}

// IsValid reports whether the value is a known ItemKind.
func (i ItemKind) IsValid() bool {
	for _, candidate := range validItemKinds {
		if candidate == i {
			return true
		}
	}
	return false
}

// ParseItemKind converts raw input into an ItemKind.
func ParseItemKind(value string) (ItemKind, error) {
	for _, candidate := range validItemKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid item kind %q", value)
}
