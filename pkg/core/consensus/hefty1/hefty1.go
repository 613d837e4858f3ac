//go:build cgo && hefty1

// Package hefty1 binds the reference HEFTY1 C implementation.
package hefty1

/*
#cgo CFLAGS: -I${SRCDIR}/../../../../third_party/hefty1
#cgo LDFLAGS: -L${SRCDIR}/../../../../third_party/hefty1/build -lhefty1
#include "hefty1.h"
#include <stdlib.h>
*/
import "C"

import (
	"unsafe"
)

// DigestSize is the HEFTY1 output length in bytes.
const DigestSize = 32

// Sum computes HEFTY1(data).
func Sum(data []byte) [DigestSize]byte {
	var out [DigestSize]byte
	var in *C.uchar
	if len(data) > 0 {
		in = (*C.uchar)(unsafe.Pointer(&data[0]))
	}
	C.HEFTY1(in, C.size_t(len(data)), (*C.uchar)(unsafe.Pointer(&out[0])))
	return out
}

// Domain implements heavy.DomainHasher with the C library. The C routine
// keeps all state on its stack, so Domain is safe for concurrent use.
type Domain struct{}

// Sum computes HEFTY1(data).
func (Domain) Sum(data []byte) [32]byte {
	return Sum(data)
}
