package enum

import "fmt"

// DraftKind discriminates the two draft variants held by the draft store.
type DraftKind string

const (
	DraftKindVenta   DraftKind = "venta"
	DraftKindEncargo DraftKind = "encargo"
)

// Valid reports whether the kind is one of the known variants.
func (k DraftKind) Valid() bool {
	switch k {
	case DraftKindVenta, DraftKindEncargo:
		return true
	}
	return false
}

// Display returns the operator-facing label for the kind.
func (k DraftKind) Display() string {
	switch k {
	case DraftKindVenta:
		return "Venta"
	case DraftKindEncargo:
		return "Encargo"
	}
	return string(k)
}

// ParseDraftKind parses a kind tag from the wire.
func ParseDraftKind(s string) (DraftKind, error) {
	k := DraftKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown draft kind %q", s)
	}
	return k, nil
}
