package consensus

import (
	"errors"
	"fmt"

	"github.com/heavycoin/heavyminer/pkg/core/consensus/heavy"
	"github.com/heavycoin/heavyminer/pkg/core/types"
)

// ErrInvalidHeaderLength is returned for headers that are neither 80 nor 84
// bytes long.
var ErrInvalidHeaderLength = errors.New("invalid header length")

// Hasher computes Proof-of-Work hashes. HeavyHasher is the only production
// implementation; its domain digest is chosen by NewHasher.
type Hasher interface {
	// Hash computes the PoW hash of the given normalized header bytes.
	Hash(headerBytes []byte) (types.Hash, error)

	// Close releases any resources held by the hasher.
	Close()
}

// HeavyHasher implements Hasher on top of heavy.Hasher.
type HeavyHasher struct {
	inner *heavy.Hasher
}

var _ Hasher = (*HeavyHasher)(nil)

// NewHeavyHasher returns a HeavyHasher using domain as the HEFTY1 digest.
func NewHeavyHasher(domain heavy.DomainHasher) *HeavyHasher {
	return &HeavyHasher{inner: heavy.New(domain)}
}

// Hash validates the header length and computes the combined hash.
func (h *HeavyHasher) Hash(headerBytes []byte) (types.Hash, error) {
	if _, err := types.VariantForSize(len(headerBytes)); err != nil {
		return types.Hash{}, fmt.Errorf("%w: %v", ErrInvalidHeaderLength, err)
	}
	return h.inner.Sum(headerBytes), nil
}

// Close is a no-op; HeavyHasher holds no resources.
func (h *HeavyHasher) Close() {}
