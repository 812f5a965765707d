// Package bitfield provides shift/width helpers for packed register words.
package bitfield

import "golang.org/x/exp/constraints"

// Mask returns a right-aligned mask of width bits.
func Mask[T constraints.Unsigned](width uint) T {
	return T(1)<<width - 1
}

// Get extracts the width-bit field starting at shift.
func Get[T constraints.Unsigned](v T, shift, width uint) T {
	return (v >> shift) & Mask[T](width)
}

// Set replaces the width-bit field starting at shift with f. Bits of f above
// width are discarded; all other bits of v are preserved.
func Set[T constraints.Unsigned](v T, shift, width uint, f T) T {
	m := Mask[T](width) << shift
	return (v &^ m) | ((f << shift) & m)
}

// Flag reports whether bit is set.
func Flag[T constraints.Unsigned](v T, bit uint) bool {
	return v&(T(1)<<bit) != 0
}

// SetFlag sets or clears bit.
func SetFlag[T constraints.Unsigned](v T, bit uint, on bool) T {
	if on {
		return v | T(1)<<bit
	}
	return v &^ (T(1) << bit)
}
