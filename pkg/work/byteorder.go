package work

import (
	"encoding/binary"
	"fmt"
	"math/bits"
)

// Swab32 reverses the byte order of a 32-bit word.
func Swab32(v uint32) uint32 {
	return bits.ReverseBytes32(v)
}

// Normalize returns a copy of raw with the bytes of every 4-byte word
// reversed. This is the word-swapped form the hash chain consumes; provers
// and verifiers must apply it identically. raw must be a whole number of
// words.
func Normalize(raw []byte) ([]byte, error) {
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("header length %d is not a multiple of 4", len(raw))
	}
	out := make([]byte, len(raw))
	for i := 0; i < len(raw); i += 4 {
		binary.LittleEndian.PutUint32(out[i:], Swab32(binary.LittleEndian.Uint32(raw[i:])))
	}
	return out, nil
}
