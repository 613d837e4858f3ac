package heavy

import (
	"crypto/sha256"

	"github.com/heavycoin/heavyminer/pkg/core/types"
)

// Digests holds every intermediate digest of one hash chain evaluation.
type Digests struct {
	// H1 is the domain digest of the input.
	H1 [32]byte
	// H2 is SHA-256(input ‖ H1).
	H2 types.Words256
	// Aux holds Keccak-512, Groestl-512 and Blake-512 of input ‖ H1, in that
	// order.
	Aux [3]types.Words512
}

// Chain runs the hash chain over input. Every digest is fed input and H1
// as two separate writes.
func (h *Hasher) Chain(input []byte) Digests {
	var d Digests
	d.H1 = h.domain.Sum(input)

	sha := sha256.New()
	sha.Write(input)
	sha.Write(d.H1[:])
	d.H2 = types.Words256FromBytes(sha.Sum(nil))

	for i, alg := range auxAlgorithms {
		ctx := newAux(alg)
		ctx.Write(input)
		ctx.Write(d.H1[:])
		d.Aux[i] = ctx.Final()
	}
	return d
}
