package bitmap

import "fmt"

// And returns the bitwise AND of two bitmaps. The result is as long as the
// shorter operand.
func And(a, b Dense) Dense {
	if b.len < a.len {
		a, b = b, a
	}
	r := Dense{
		bits: make([]byte, 0, a.SizeBytes()),
		len:  a.len,
	}
	for i := 0; i < a.SizeBytes(); i++ {
		r.bits = append(r.bits, a.bits[i]&b.bits[i])
	}
	return r
}

// XOr returns the bitwise XOR of two bitmaps. The shorter operand is treated as
// if padded with zeros.
func XOr(a, b Dense) Dense {
	short, long := a, b
	if b.len < a.len {
		short, long = b, a
	}
	r := Dense{
		bits: make([]byte, 0, long.SizeBytes()),
		len:  long.len,
	}
	for i := 0; i < short.SizeBytes(); i++ {
		r.bits = append(r.bits, short.bits[i]^long.bits[i])
	}
	for i := short.SizeBytes(); i < long.SizeBytes(); i++ {
		r.bits = append(r.bits, long.bits[i])
	}
	return r
}

// Slice copies bits [start, end) of d into a new bitmap.
func Slice(d Dense, start, end int) (Dense, error) {
	if start < 0 {
		return Dense{}, fmt.Errorf("slicing bitmap with negative start: %d", start)
	}
	if end < start {
		return Dense{}, fmt.Errorf("slicing bitmap to negative length: %d", end-start)
	}
	if end > d.len {
		return Dense{}, fmt.Errorf("slicing bitmap of len %d up to %d", d.len, end)
	}

	if start%byteSize == 0 {
		j := start / byteSize
		buf := make([]byte, BytesFor(end-start))
		copy(buf, d.bits[j:])
		r := NewDense(buf, end-start)
		if rem := r.len % byteSize; rem != 0 {
			buf[len(buf)-1] &= 0xFF >> (byteSize - rem)
		}
		return r, nil
	}
	r := Dense{}
	for i := start; i < end; i++ {
		r.AppendBit(d.Get(i))
	}
	return r, nil
}
