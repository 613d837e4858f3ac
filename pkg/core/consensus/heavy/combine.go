package heavy

import "github.com/heavycoin/heavyminer/pkg/core/types"

// combineWords are the word indices read from every source, in order.
var combineWords = [2]int{7, 6}

// bitWriter fills a 256-bit value from its most significant bit down.
// Word 7 is the most significant word.
type bitWriter struct {
	out types.Words256
	n   int
}

func (w *bitWriter) push(bit bool) {
	i := (255 - w.n) / 32
	w.out[i] <<= 1
	if bit {
		w.out[i] |= 1
	}
	w.n++
}

// Combine interleaves the top 64 bits (words 7 and 6) of h2 and the three
// auxiliary digests into one 256-bit value. For each word and each bit
// position from the MSB down, it appends that bit from h2, aux1, aux2 and
// aux3 in turn.
func Combine(h2 types.Words256, aux1, aux2, aux3 types.Words512) types.Words256 {
	var w bitWriter
	for _, i := range combineWords {
		col := [4]uint32{h2[i], aux1[i], aux2[i], aux3[i]}
		for mask := uint32(0x80000000); mask != 0; mask >>= 1 {
			for _, word := range col {
				w.push(word&mask != 0)
			}
		}
	}
	return w.out
}
