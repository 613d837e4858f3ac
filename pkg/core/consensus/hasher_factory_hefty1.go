//go:build cgo && hefty1

package consensus

import (
	"github.com/rs/zerolog/log"

	"github.com/heavycoin/heavyminer/pkg/core/consensus/hefty1"
)

// HasHefty1 reports whether the binary was built with the HEFTY1 C library.
const HasHefty1 = true

// NewHasher returns the appropriate Hasher implementation based on build tags.
// With the 'hefty1' tag, the domain digest is the HEFTY1 C library.
func NewHasher() (Hasher, error) {
	log.Debug().Msg("initializing heavy hasher with HEFTY1")
	return NewHeavyHasher(hefty1.Domain{}), nil
}
