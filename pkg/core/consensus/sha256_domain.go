package consensus

import (
	"crypto/sha256"

	"github.com/heavycoin/heavyminer/pkg/core/consensus/heavy"
)

// SHA256Domain stands in for HEFTY1 in builds without the C library.
// Hashes produced with it are not valid on the network.
type SHA256Domain struct{}

var _ heavy.DomainHasher = SHA256Domain{}

// Sum computes SHA256(data).
func (SHA256Domain) Sum(data []byte) [32]byte {
	return sha256.Sum256(data)
}
