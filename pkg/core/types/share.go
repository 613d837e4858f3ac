package types

import "time"

// Share is a header whose combined hash met the share target.
type Share struct {
	Hash    Hash    // Combined hash (share identity).
	Variant Variant
	Header  []byte // Raw header as mined, before normalization.
	Nonce   uint32
	SDiff   float64
	TBits   int
	Masks   [4]uint32 // Indexed sha, keccak, groestl, blake.
	FoundAt time.Time
}
