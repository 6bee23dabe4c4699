// Package bitmap provides utilities for operating on densely-packed arrays of
// booleans, such as the measurement records produced by a quantum bit source.
package bitmap

import (
	"fmt"
	"math/bits"
)

const byteSize = 8

// Empty returns an empty, dense bit array.
func Empty() Dense {
	return Dense{}
}

// FromString converts a string of '1's and '0's to a Dense. Spaces are
// ignored, which keeps long literals readable in tests.
func FromString(s string) (Dense, error) {
	d := Dense{}
	for _, c := range s {
		switch c {
		case '1':
			d.AppendBit(true)
		case '0':
			d.AppendBit(false)
		case ' ':
			continue
		default:
			return Dense{}, fmt.Errorf("invalid bitmap string rep: %s", s)
		}
	}
	return d, nil
}

// Uint decodes width bits of d starting at start as an unsigned integer. The
// first bit is the most significant, so "0110" decodes to 6.
func Uint(d Dense, start, width int) (uint64, error) {
	if width < 0 || width > 64 {
		return 0, fmt.Errorf("cannot decode %d bits into a uint64", width)
	}
	if start < 0 || start+width > d.len {
		return 0, fmt.Errorf("decoding bits [%d, %d) of bitmap of len %d", start, start+width, d.len)
	}
	var v uint64
	for i := start; i < start+width; i++ {
		v <<= 1
		if d.Get(i) {
			v |= 1
		}
	}
	return v, nil
}

// FromUint returns the low width bits of v as a bitmap, with bit q of v stored
// at position q.
func FromUint(v uint64, width int) Dense {
	d := NewDense(nil, width)
	for q := 0; q < width; q++ {
		if v&(1<<uint(q)) != 0 {
			d.Flip(q)
		}
	}
	return d
}

// Dot computes the inner product (x^T * y) of x and y, treating them as
// vectors mod 2.
func Dot(x, y Dense) bool {
	return Parity(And(x, y))
}

// Parity returns the overall parity of d, with true corresponding to 1 and
// false to 0.
func Parity(d Dense) bool {
	return CountOnes(d)%2 == 1
}

// CountOnes returns the total number of bits set in d.
func CountOnes(d Dense) int {
	var sum int
	full := d.len / byteSize
	for _, b := range d.bits[:full] {
		sum += bits.OnesCount8(b)
	}
	if rem := d.len % byteSize; rem != 0 {
		sum += bits.OnesCount8(d.bits[full] & (0xFF >> (byteSize - rem)))
	}
	return sum
}

// Equal returns true iff a and b have the same length and contain the same
// bits.
func Equal(a, b Dense) bool {
	if a.len != b.len {
		return false
	}
	for i := 0; i < a.len; i++ {
		if a.Get(i) != b.Get(i) {
			return false
		}
	}
	return true
}

// BytesFor returns the number of bytes necessary to hold the provided number of
// bits.
func BytesFor(bits int) int {
	return (bits + byteSize - 1) / byteSize
}
