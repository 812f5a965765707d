// Package acpi holds the values returned by and passed to the ACPI battery
// and power source control methods (_BST, _BIX, _PSR, _PIF, _BPS, _BTP, _BPT,
// _BPC, _BMC, _BMD, _BCT, _BTM, _BMS, _BMA) and their flat little-endian
// encodings.
//
// Serializers write into a caller-owned buffer and never allocate. After a
// failed call the buffer contents are undefined.
package acpi

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	// ErrBufferTooSmall means dst cannot hold the encoded structure.
	ErrBufferTooSmall = errors.New("acpi: destination buffer too small")
	// ErrSizeMismatch means a declared field length differs from the length
	// of the slice supplied for that field.
	ErrSizeMismatch = errors.New("acpi: field length mismatch")
	// ErrShortInput means a request argument buffer is shorter than its
	// fixed layout.
	ErrShortInput = errors.New("acpi: input too short")
)

// SerializeError describes a failed encode or decode. Err is one of the
// package sentinels.
type SerializeError struct {
	Op    string // structure, e.g. "_BIX"
	Field string // offending field, empty for buffer errors
	Want  int
	Got   int
	Err   error
}

func (e *SerializeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %v (declared %d, got %d)", e.Op, e.Field, e.Err, e.Want, e.Got)
	}
	return fmt.Sprintf("%s: %v (need %d, have %d)", e.Op, e.Err, e.Want, e.Got)
}

func (e *SerializeError) Unwrap() error { return e.Err }

// Unknown is the "value not available" sentinel for 32-bit ACPI fields.
const Unknown uint32 = 0xFFFFFFFF

// varField is one caller-sized trailing byte range.
type varField struct {
	name string
	src  []byte
	n    int
}

// encode checks the declared lengths, then the buffer size, then writes the
// header words followed by each variable field. Length mismatches are
// reported regardless of buffer size.
func encode(op string, dst []byte, header []uint32, fields ...varField) (int, error) {
	total := 4 * len(header)
	for _, f := range fields {
		if f.n < 0 || len(f.src) != f.n {
			return 0, &SerializeError{Op: op, Field: f.name, Want: f.n, Got: len(f.src), Err: ErrSizeMismatch}
		}
		total += f.n
	}
	if len(dst) < total {
		return 0, &SerializeError{Op: op, Want: total, Got: len(dst), Err: ErrBufferTooSmall}
	}
	off := 0
	for _, w := range header {
		binary.LittleEndian.PutUint32(dst[off:], w)
		off += 4
	}
	for _, f := range fields {
		off += copy(dst[off:], f.src)
	}
	return off, nil
}

func decode(op string, src []byte, words ...*uint32) error {
	if len(src) < 4*len(words) {
		return &SerializeError{Op: op, Want: 4 * len(words), Got: len(src), Err: ErrShortInput}
	}
	for i, w := range words {
		*w = binary.LittleEndian.Uint32(src[4*i:])
	}
	return nil
}
