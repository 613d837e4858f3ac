package types

import "encoding/binary"

// Words256 is a 256-bit digest viewed as eight 32-bit words.
type Words256 [8]uint32

// Words512 is a 512-bit digest viewed as sixteen 32-bit words.
type Words512 [16]uint32

// Words256FromBytes decodes b[:32] as little-endian words.
func Words256FromBytes(b []byte) Words256 {
	_ = b[31]
	var w Words256
	for i := range w {
		w[i] = binary.LittleEndian.Uint32(b[4*i:])
	}
	return w
}

// Words512FromBytes decodes b[:64] as little-endian words.
func Words512FromBytes(b []byte) Words512 {
	_ = b[63]
	var w Words512
	for i := range w {
		w[i] = binary.LittleEndian.Uint32(b[4*i:])
	}
	return w
}

// PutBytes encodes w little-endian into b[:32].
func (w Words256) PutBytes(b []byte) {
	_ = b[31]
	for i, v := range w {
		binary.LittleEndian.PutUint32(b[4*i:], v)
	}
}
