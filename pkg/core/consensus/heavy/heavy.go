// Package heavy implements the heavy multi-algorithm proof-of-work hash.
//
// A raw header is hashed with a domain digest (HEFTY1). SHA-256, Keccak-512,
// Groestl-512 and Blake-512 are then computed over the header followed by
// that digest. The top 64 bits of each of the four results are interleaved
// into the final 256-bit hash.
package heavy

import (
	"github.com/heavycoin/heavyminer/pkg/core/types"
)

// Hasher computes heavy hashes. It holds no mutable state; a single Hasher
// may be shared by any number of goroutines.
type Hasher struct {
	domain DomainHasher
}

// New returns a Hasher using domain as the HEFTY1 digest.
func New(domain DomainHasher) *Hasher {
	if domain == nil {
		panic("heavy: nil domain hasher")
	}
	return &Hasher{domain: domain}
}

// Sum returns the combined hash of a byte-order normalized header. The
// header must be 80 or 84 bytes long; any other length panics.
func (h *Hasher) Sum(header []byte) types.Hash {
	if _, err := types.VariantForSize(len(header)); err != nil {
		panic("heavy: " + err.Error())
	}
	d := h.Chain(header)
	return types.HashFromWords(Combine(d.H2, d.Aux[0], d.Aux[1], d.Aux[2]))
}
