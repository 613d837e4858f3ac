package heavy

import (
	"fmt"
	"math"
)

const (
	// MinTBits is the floor applied to the derived bit budget.
	MinTBits = 16
	// MaxTBits is the smallest bit budget that saturates every mask slot.
	MaxTBits = 4 * maxMaskWidth

	maxMaskWidth = 31
)

// maskSlot assigns an algorithm its quarter-step offset into the bit budget.
type maskSlot struct {
	alg    Algorithm
	offset int
}

// maskSlots is ordered by priority; each slot gets a quarter-step fewer
// significant bits than the one before.
var maskSlots = [4]maskSlot{
	{alg: Reference, offset: 3},
	{alg: Keccak, offset: 2},
	{alg: Groestl, offset: 1},
	{alg: Blake, offset: 0},
}

// MaskSet is the per-algorithm set of bit-reversed difficulty masks for one
// work item.
type MaskSet struct {
	TBits int
	Masks [4]uint32
}

// Mask returns the mask for alg.
func (m MaskSet) Mask(alg Algorithm) uint32 {
	return m.Masks[alg]
}

func (m MaskSet) String() string {
	return fmt.Sprintf("tbits %d: sha 0x%08x, keccak 0x%08x, groestl 0x%08x, blake 0x%08x",
		m.TBits, m.Masks[Reference], m.Masks[Keccak], m.Masks[Groestl], m.Masks[Blake])
}

// TBits converts a share difficulty into a bit budget:
// 31 + round(log2(diff)), clamped to [MinTBits, MaxTBits]. NaN, zero and
// negative difficulties yield MinTBits.
func TBits(diff float64) int {
	if math.IsNaN(diff) || diff <= 0 {
		return MinTBits
	}
	if math.IsInf(diff, 1) {
		return MaxTBits
	}
	tbits := 31 + int(math.Round(math.Log(diff)/math.Ln2))
	if tbits < MinTBits {
		return MinTBits
	}
	if tbits > MaxTBits {
		return MaxTBits
	}
	return tbits
}

// DeriveMasks computes the four algorithm masks for a share difficulty.
func DeriveMasks(diff float64) MaskSet {
	set := MaskSet{TBits: TBits(diff)}
	for _, slot := range maskSlots {
		set.Masks[slot.alg] = BitReverse32(rawMask(set.TBits + slot.offset))
	}
	return set
}

// rawMask returns (1 << (budget/4)) - 1 with the shift width capped at 31.
func rawMask(budget int) uint32 {
	width := budget / 4
	if width > maxMaskWidth {
		width = maxMaskWidth
	}
	return uint32(1)<<uint(width) - 1
}

// BitReverse32 reverses the 32 bits of x end to end.
func BitReverse32(x uint32) uint32 {
	x = (x&0xaaaaaaaa)>>1 | (x&0x55555555)<<1
	x = (x&0xcccccccc)>>2 | (x&0x33333333)<<2
	x = (x&0xf0f0f0f0)>>4 | (x&0x0f0f0f0f)<<4
	x = (x&0xff00ff00)>>8 | (x&0x00ff00ff)<<8
	return x>>16 | x<<16
}
