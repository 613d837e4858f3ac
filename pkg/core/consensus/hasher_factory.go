//go:build !(cgo && hefty1)

package consensus

import (
	"github.com/rs/zerolog/log"
)

// HasHefty1 reports whether the binary was built with the HEFTY1 C library.
const HasHefty1 = false

// NewHasher returns the appropriate Hasher implementation based on build tags.
// Without the 'hefty1' tag, the domain digest is SHA-256 (prototype mode).
func NewHasher() (Hasher, error) {
	log.Warn().Msg("hefty1 build tag not found, using SHA-256 as the domain digest (prototype mode)")
	log.Warn().Msg("to enable HEFTY1, build with: go build -tags hefty1")
	return NewHeavyHasher(SHA256Domain{}), nil
}
