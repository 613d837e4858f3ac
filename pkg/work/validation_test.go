package work

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/heavycoin/heavyminer/pkg/core/consensus"
	"github.com/heavycoin/heavyminer/pkg/core/consensus/heavy"
	"github.com/heavycoin/heavyminer/pkg/core/types"
)

// easyDiff caps the target at 2^256-1, so every hash meets it.
var easyDiff = math.Ldexp(1, -40)

func buildShare(t *testing.T, hasher consensus.Hasher, variant types.Variant, sdiff float64) *types.Share {
	t.Helper()
	raw := make([]byte, variant.Size())
	for i := range raw {
		raw[i] = byte(i * 7)
	}
	w, err := New(variant, raw, sdiff)
	require.NoError(t, err)
	w.Prepare()
	w.SetNonce(0xdeadbeef)
	_, err = w.Regen(hasher)
	require.NoError(t, err)

	return &types.Share{
		Hash:    w.Hash,
		Variant: w.Variant,
		Header:  w.Data,
		Nonce:   w.Nonce(),
		SDiff:   w.SDiff,
		TBits:   w.Masks.TBits,
		Masks:   w.Masks.Masks,
		FoundAt: time.Now(),
	}
}

func TestValidateShare(t *testing.T) {
	hasher := consensus.NewHeavyHasher(consensus.SHA256Domain{})
	for _, variant := range []types.Variant{types.VariantHefty, types.VariantHeavy} {
		share := buildShare(t, hasher, variant, easyDiff)
		require.NoError(t, ValidateShare(share, hasher), variant)
	}
}

func TestValidateShareRejects(t *testing.T) {
	hasher := consensus.NewHeavyHasher(consensus.SHA256Domain{})

	tests := []struct {
		name   string
		modify func(*types.Share)
		want   error
	}{
		{"nonce", func(s *types.Share) { s.Nonce++ }, ErrNonceMismatch},
		{"tbits", func(s *types.Share) { s.TBits++ }, ErrMasksMismatch},
		{"masks", func(s *types.Share) { s.Masks[0] ^= 1 }, ErrMasksMismatch},
		{"hash", func(s *types.Share) { s.Hash[0] ^= 1 }, ErrHashMismatch},
		{"header", func(s *types.Share) { s.Header[0] ^= 1 }, ErrHashMismatch},
		{"difficulty", func(s *types.Share) {
			s.SDiff = 1e30
			set := heavy.DeriveMasks(s.SDiff)
			s.TBits, s.Masks = set.TBits, set.Masks
		}, ErrTargetNotMet},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			share := buildShare(t, hasher, types.VariantHeavy, easyDiff)
			tt.modify(share)
			require.ErrorIs(t, ValidateShare(share, hasher), tt.want)
		})
	}
}

func TestValidateShareBadHeader(t *testing.T) {
	hasher := consensus.NewHeavyHasher(consensus.SHA256Domain{})
	share := buildShare(t, hasher, types.VariantHeavy, easyDiff)
	share.Header = share.Header[:types.HeftyHeaderSize]
	require.Error(t, ValidateShare(share, hasher))
}
