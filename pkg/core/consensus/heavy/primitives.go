package heavy

import (
	"fmt"
	"hash"

	"github.com/bitbandi/go-x11/groest"
	"github.com/dchest/blake512"
	"golang.org/x/crypto/sha3"

	"github.com/heavycoin/heavyminer/pkg/core/types"
)

// DomainHasher computes the 256-bit domain digest (HEFTY1) of a raw header.
// Implementations must be safe for concurrent use.
type DomainHasher interface {
	Sum(data []byte) [32]byte
}

// DomainFunc adapts a plain function to DomainHasher.
type DomainFunc func(data []byte) [32]byte

// Sum calls f(data).
func (f DomainFunc) Sum(data []byte) [32]byte {
	return f(data)
}

// Algorithm identifies one of the four digest families mixed into the
// combined hash.
type Algorithm uint8

const (
	// Reference is the SHA-256 chained digest.
	Reference Algorithm = iota
	Keccak
	Groestl
	Blake
)

func (a Algorithm) String() string {
	switch a {
	case Reference:
		return "sha"
	case Keccak:
		return "keccak"
	case Groestl:
		return "groestl"
	case Blake:
		return "blake"
	default:
		return fmt.Sprintf("algorithm(%d)", uint8(a))
	}
}

// auxAlgorithms lists the wide digests in combine order.
var auxAlgorithms = [3]Algorithm{Keccak, Groestl, Blake}

// auxContext is an incremental 512-bit hash context.
type auxContext interface {
	Write(p []byte)
	Final() types.Words512
}

type stdContext struct {
	h hash.Hash
}

func (c stdContext) Write(p []byte) {
	c.h.Write(p)
}

func (c stdContext) Final() types.Words512 {
	return types.Words512FromBytes(c.h.Sum(nil))
}

// x11Digest is the streaming surface of the go-x11 digests.
type x11Digest interface {
	Write(p []byte) (int, error)
	Close(dst []byte, bits uint8, bcnt uint8) error
}

type x11Context struct {
	d x11Digest
}

func (c x11Context) Write(p []byte) {
	c.d.Write(p)
}

func (c x11Context) Final() types.Words512 {
	var out [64]byte
	if err := c.d.Close(out[:], 0, 0); err != nil {
		panic("heavy: groestl close: " + err.Error())
	}
	return types.Words512FromBytes(out[:])
}

// newAux returns a fresh context for one of the auxiliary algorithms.
func newAux(alg Algorithm) auxContext {
	switch alg {
	case Keccak:
		// Original Keccak padding, not FIPS-202 SHA3.
		return stdContext{h: sha3.NewLegacyKeccak512()}
	case Groestl:
		return x11Context{d: groest.New()}
	case Blake:
		return stdContext{h: blake512.New()}
	default:
		panic(fmt.Sprintf("heavy: %v is not an auxiliary algorithm", alg))
	}
}
