package work

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/heavycoin/heavyminer/pkg/core/consensus"
	"github.com/heavycoin/heavyminer/pkg/core/consensus/heavy"
	"github.com/heavycoin/heavyminer/pkg/core/types"
)

var (
	ErrNonceMismatch = errors.New("share nonce does not match header")
	ErrHashMismatch  = errors.New("share hash does not match re-execution")
	ErrMasksMismatch = errors.New("share masks do not match its difficulty")
	ErrTargetNotMet  = errors.New("share hash does not meet its target")
)

// ValidateShare re-executes the hash of a stored share and checks every
// value derived from its header and difficulty.
func ValidateShare(share *types.Share, hasher consensus.Hasher) error {
	w, err := New(share.Variant, share.Header, share.SDiff)
	if err != nil {
		return err
	}
	w.Prepare()

	// 1. Nonce is the one written into the header.
	if binary.LittleEndian.Uint32(share.Header[types.NonceOffset:]) != share.Nonce {
		return ErrNonceMismatch
	}

	// 2. Masks follow from the share difficulty.
	if (heavy.MaskSet{TBits: share.TBits, Masks: share.Masks}) != w.Masks {
		return ErrMasksMismatch
	}

	// 3. Re-execute the hash.
	hash, err := w.Regen(hasher)
	if err != nil {
		return err
	}
	if hash != share.Hash {
		return fmt.Errorf("%w: stored %s, computed %s", ErrHashMismatch, share.Hash, hash)
	}

	// 4. Hash meets the share target.
	if !consensus.MeetsTarget(hash, w.Target) {
		return ErrTargetNotMet
	}
	return nil
}
