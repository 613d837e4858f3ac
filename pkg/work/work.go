// Package work holds a single unit of mining work: the raw header, its share
// difficulty and the values derived from them.
package work

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/rs/zerolog/log"

	"github.com/heavycoin/heavyminer/pkg/core/consensus"
	"github.com/heavycoin/heavyminer/pkg/core/consensus/heavy"
	"github.com/heavycoin/heavyminer/pkg/core/types"
)

var (
	ErrInvalidDifficulty = errors.New("share difficulty must be a positive finite number")
	ErrNotPrepared       = errors.New("work has not been prepared")
)

// Work is one header template plus the share difficulty it is mined at.
type Work struct {
	Variant types.Variant
	// Data is the raw header as received, before normalization.
	Data []byte
	SDiff float64

	Masks  heavy.MaskSet
	Target *big.Int
	// Hash is the combined hash from the last Regen.
	Hash types.Hash

	prepared bool
}

// New validates data against variant and sdiff and returns unprepared work.
func New(variant types.Variant, data []byte, sdiff float64) (*Work, error) {
	if len(data) != variant.Size() {
		return nil, fmt.Errorf("%s header must be %d bytes, got %d", variant, variant.Size(), len(data))
	}
	if math.IsNaN(sdiff) || math.IsInf(sdiff, 0) || sdiff <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDifficulty, sdiff)
	}
	return &Work{
		Variant: variant,
		Data:    append([]byte(nil), data...),
		SDiff:   sdiff,
	}, nil
}

// Prepare derives the per-algorithm masks and the share target. It runs
// once per work item; calling it again is a no-op.
func (w *Work) Prepare() {
	if w.prepared {
		return
	}
	w.Masks = heavy.DeriveMasks(w.SDiff)
	w.Target = consensus.TargetFromDifficulty(w.SDiff)
	w.prepared = true

	log.Debug().Str("variant", w.Variant.String()).Str("data", hex.EncodeToString(w.Data)).Msgf("Generated %s data", w.Variant)
	log.Debug().
		Float64("sdiff", w.SDiff).
		Int("tbits", w.Masks.TBits).
		Str("sha", fmt.Sprintf("0x%08x", w.Masks.Mask(heavy.Reference))).
		Str("keccak", fmt.Sprintf("0x%08x", w.Masks.Mask(heavy.Keccak))).
		Str("groestl", fmt.Sprintf("0x%08x", w.Masks.Mask(heavy.Groestl))).
		Str("blake", fmt.Sprintf("0x%08x", w.Masks.Mask(heavy.Blake))).
		Msgf("%s masks", w.Variant)
}

// Prepared reports whether Prepare has run.
func (w *Work) Prepared() bool {
	return w.prepared
}

// Nonce returns the header nonce.
func (w *Work) Nonce() uint32 {
	return binary.LittleEndian.Uint32(w.Data[types.NonceOffset:])
}

// SetNonce writes n into the raw header.
func (w *Work) SetNonce(n uint32) {
	binary.LittleEndian.PutUint32(w.Data[types.NonceOffset:], n)
}

// Clone returns an independent copy sharing no header bytes with w.
func (w *Work) Clone() *Work {
	c := *w
	c.Data = append([]byte(nil), w.Data...)
	if w.Target != nil {
		c.Target = new(big.Int).Set(w.Target)
	}
	return &c
}

// Regen normalizes the header, hashes it and stores the result in Hash.
func (w *Work) Regen(hasher consensus.Hasher) (types.Hash, error) {
	data, err := Normalize(w.Data)
	if err != nil {
		return types.Hash{}, err
	}
	if e := log.Debug(); e.Enabled() {
		e.Str("data", hex.EncodeToString(data)).Msgf("Verifying %s data", w.Variant)
	}

	hash, err := hasher.Hash(data)
	if err != nil {
		return types.Hash{}, fmt.Errorf("hash %s header: %w", w.Variant, err)
	}
	w.Hash = hash
	return hash, nil
}

// MeetsTarget reports whether the last computed hash satisfies the share
// target.
func (w *Work) MeetsTarget() (bool, error) {
	if !w.prepared {
		return false, ErrNotPrepared
	}
	return consensus.MeetsTarget(w.Hash, w.Target), nil
}
