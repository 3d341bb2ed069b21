package variant

import (
	"fmt"
	"strings"
)

// Variant is a named build configuration.
type Variant string

const (
	// Debug is the development build: debuggable and never signed with release keys.
	Debug Variant = "debug"
	// Release is the distributable build, signed when credentials are available.
	Release Variant = "release"
)

// Variants returns every known variant in a stable order.
func Variants() []Variant {
	return []Variant{Debug, Release}
}

// ParseVariant converts user input into a Variant.
func ParseVariant(s string) (Variant, error) {
	v := Variant(strings.ToLower(strings.TrimSpace(s)))
	if !v.Valid() {
		return "", fmt.Errorf("%q: %w", s, ErrUnknownVariant)
	}

	return v, nil
}

// Valid reports whether v is one of the known variants.
func (v Variant) Valid() bool {
	switch v {
	case Debug, Release:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (v Variant) String() string {
	return string(v)
}

// CanSign reports whether artifacts of this variant may carry release signing credentials.
func (v Variant) CanSign() bool {
	switch v {
	case Release:
		return true
	case Debug:
		return false
	default:
		return false
	}
}
