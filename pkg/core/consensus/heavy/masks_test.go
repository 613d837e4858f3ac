package heavy

import (
	"math"
	"math/bits"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitReverse32(t *testing.T) {
	tests := []struct {
		in, want uint32
	}{
		{0x00000000, 0x00000000},
		{0xffffffff, 0xffffffff},
		{0x00000001, 0x80000000},
		{0x0000000f, 0xf0000000},
		{0x000000ff, 0xff000000},
		{0x0000007f, 0xfe000000},
		{0x12345678, 0x1e6a2c48},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, BitReverse32(tt.in), "BitReverse32(0x%08x)", tt.in)
	}
}

func TestBitReverse32Involution(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 10000; i++ {
		w := r.Uint32()
		require.Equal(t, w, BitReverse32(BitReverse32(w)))
		require.Equal(t, bits.Reverse32(w), BitReverse32(w))
	}
}

func TestTBits(t *testing.T) {
	tests := []struct {
		name string
		diff float64
		want int
	}{
		{"difficulty one", 1, 31},
		{"power of two", 1024, 41},
		{"rounds down", 1.4, 31},
		{"rounds up", 1.5, 32},
		{"exact floor", 1.0 / 32768, 16},
		{"below floor", 1.0 / 65536, 16},
		{"tiny", 1e-12, 16},
		{"zero", 0, MinTBits},
		{"negative", -5, MinTBits},
		{"nan", math.NaN(), MinTBits},
		{"positive infinity", math.Inf(1), MaxTBits},
		{"negative infinity", math.Inf(-1), MinTBits},
		{"huge", math.MaxFloat64, MaxTBits},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, TBits(tt.diff))
		})
	}
}

func TestDeriveMasksAtFloor(t *testing.T) {
	// (16+3)/4 == (16+0)/4 == 4, so every raw mask is 0xf.
	set := DeriveMasks(1.0 / 32768)
	require.Equal(t, 16, set.TBits)
	for _, alg := range []Algorithm{Reference, Keccak, Groestl, Blake} {
		require.Equal(t, uint32(0xf0000000), set.Mask(alg), alg.String())
	}

	for _, d := range []float64{0, -1, math.NaN(), 1e-9, 1.0 / 40000} {
		require.Equal(t, set, DeriveMasks(d), "difficulty %v", d)
	}
}

// tbits is 31 + round(log2 1) = 31 here, not the floor of 16. The floor is
// reached at difficulty 2^-15 and covered by TestDeriveMasksAtFloor.
func TestDeriveMasksDifficultyOne(t *testing.T) {
	set := DeriveMasks(1)
	require.Equal(t, MaskSet{
		TBits: 31,
		Masks: [4]uint32{
			Reference: 0xff000000,
			Keccak:    0xff000000,
			Groestl:   0xff000000,
			Blake:     0xfe000000,
		},
	}, set)
	require.Equal(t, "tbits 31: sha 0xff000000, keccak 0xff000000, groestl 0xff000000, blake 0xfe000000", set.String())
}

func TestDeriveMasksGraduated(t *testing.T) {
	// tbits 81: widths 21, 20, 20, 20.
	set := DeriveMasks(math.Pow(2, 50))
	require.Equal(t, 81, set.TBits)
	require.Equal(t, uint32(0xfffff800), set.Mask(Reference))
	require.Equal(t, uint32(0xfffff000), set.Mask(Keccak))
	require.Equal(t, uint32(0xfffff000), set.Mask(Groestl))
	require.Equal(t, uint32(0xfffff000), set.Mask(Blake))
}

func TestDeriveMasksSaturates(t *testing.T) {
	set := DeriveMasks(math.Inf(1))
	for _, m := range set.Masks {
		require.Equal(t, uint32(0xfffffffe), m)
	}
	require.Equal(t, set.Masks, DeriveMasks(1e300).Masks)
}

func TestMaskMonotonicity(t *testing.T) {
	prevT := 0
	prevWidths := [4]int{}
	for e := 0.0; e <= 120; e += 0.25 {
		set := DeriveMasks(math.Pow(2, e))
		require.GreaterOrEqual(t, set.TBits, prevT, "2^%v", e)
		prevT = set.TBits

		for i, m := range set.Masks {
			w := bits.OnesCount32(m)
			require.GreaterOrEqual(t, w, prevWidths[i], "2^%v slot %d", e, i)
			// raw masks are contiguous low bits
			require.Equal(t, uint32(1)<<uint(w)-1, BitReverse32(m))
			prevWidths[i] = w
		}
		// each slot gets no more bits than the one before it
		for i := 1; i < 4; i++ {
			require.LessOrEqual(t, bits.OnesCount32(set.Masks[i]), bits.OnesCount32(set.Masks[i-1]))
		}
	}
}
