package consensus

import (
	"math"
	"math/big"

	"github.com/heavycoin/heavyminer/pkg/core/types"
)

var (
	// diffOneTarget is the share target at difficulty 1:
	// 0x00000000ffff0000...0000 (2^224 - 2^208).
	diffOneTarget = new(big.Int).Lsh(big.NewInt(0xffff), 208)

	// maxTarget is the largest 256-bit value.
	maxTarget = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
)

// DiffOneTarget returns a copy of the difficulty-1 target.
func DiffOneTarget() *big.Int {
	return new(big.Int).Set(diffOneTarget)
}

// TargetFromDifficulty converts a share difficulty into the 256-bit target a
// combined hash must not exceed.
//
// Target = DiffOneTarget / sdiff, capped at 2^256-1. NaN, zero and negative
// difficulties return the difficulty-1 target. +Inf returns a zero target.
func TargetFromDifficulty(sdiff float64) *big.Int {
	if math.IsNaN(sdiff) || sdiff <= 0 {
		return DiffOneTarget()
	}
	if math.IsInf(sdiff, 1) {
		return new(big.Int)
	}

	q := new(big.Float).SetInt(diffOneTarget)
	q.Quo(q, big.NewFloat(sdiff))
	target, _ := q.Int(nil)
	if target.Cmp(maxTarget) > 0 {
		return new(big.Int).Set(maxTarget)
	}
	return target
}

// HashToBig interprets a combined hash as a little-endian 256-bit integer.
func HashToBig(hash types.Hash) *big.Int {
	var be [types.HashSize]byte
	for i, b := range hash {
		be[types.HashSize-1-i] = b
	}
	return new(big.Int).SetBytes(be[:])
}

// MeetsTarget reports whether hash <= target.
func MeetsTarget(hash types.Hash, target *big.Int) bool {
	return HashToBig(hash).Cmp(target) <= 0
}
