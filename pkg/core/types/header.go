package types

import "fmt"

// Header sizes in bytes for the two supported header variants.
const (
	HeftyHeaderSize = 80
	HeavyHeaderSize = 84
)

// NonceOffset is the byte offset of the 32-bit nonce in a raw header.
const NonceOffset = 76

// Variant selects the header layout being hashed.
type Variant uint8

const (
	// VariantHefty is the 80-byte header without the trailing vote word.
	VariantHefty Variant = iota
	// VariantHeavy is the 84-byte header.
	VariantHeavy
)

// Size returns the raw header length for the variant.
func (v Variant) Size() int {
	if v == VariantHeavy {
		return HeavyHeaderSize
	}
	return HeftyHeaderSize
}

func (v Variant) String() string {
	switch v {
	case VariantHefty:
		return "hefty"
	case VariantHeavy:
		return "heavy"
	default:
		return fmt.Sprintf("variant(%d)", uint8(v))
	}
}

// VariantForSize maps a raw header length to its variant.
func VariantForSize(n int) (Variant, error) {
	switch n {
	case HeftyHeaderSize:
		return VariantHefty, nil
	case HeavyHeaderSize:
		return VariantHeavy, nil
	default:
		return 0, fmt.Errorf("header must be %d or %d bytes, got %d", HeftyHeaderSize, HeavyHeaderSize, n)
	}
}

// ParseVariant parses "hefty" or "heavy".
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "hefty":
		return VariantHefty, nil
	case "heavy":
		return VariantHeavy, nil
	default:
		return 0, fmt.Errorf("unknown header variant %q", s)
	}
}
