package bitmap

import "strings"

// A Dense is a bitmap where every bit is explicitly represented. Bit i lives
// in byte i/8 at position i%8, so the first bit drawn is the least significant
// bit of the first byte.
type Dense struct {
	bits []byte
	len  int
}

// NewDense returns a new dense bitmap whose contents are a view of data, and
// whose length is bitLen. If bitLen is longer than data, then trailing zeros
// are added. If bitLen is negative, then it is inferred from data.
func NewDense(data []byte, bitLen int) Dense {
	if bitLen < 0 {
		bitLen = len(data) * byteSize
	}
	r := Dense{
		bits: data,
		len:  bitLen,
	}
	for len(r.bits) < r.SizeBytes() {
		r.bits = append(r.bits, 0)
	}
	return r
}

// Get returns the i-th bit in this bitmap. Bits past the end read as false.
func (d Dense) Get(i int) bool {
	if i < 0 || i >= d.len {
		return false
	}
	j, pos := i/byteSize, i%byteSize
	return 0 < d.bits[j]&(1<<pos)
}

// Size returns the number of bits in this bitmap.
func (d Dense) Size() int {
	return d.len
}

// SizeBytes returns the number of bytes needed to hold this bitmap.
func (d Dense) SizeBytes() int {
	return BytesFor(d.len)
}

// Data returns a view of the bytes underlying this bitmap. Modifying the
// returned slice modifies this bitmap.
func (d Dense) Data() []byte {
	return d.bits[:d.SizeBytes()]
}

// String renders d as '0's and '1's in draw order.
func (d Dense) String() string {
	var sb strings.Builder
	sb.Grow(d.len)
	for i := 0; i < d.len; i++ {
		if d.Get(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Flip inverts the i-th bit of d.
func (d *Dense) Flip(i int) {
	j, pos := i/byteSize, i%byteSize
	d.bits[j] ^= 1 << pos
}

// AppendBit adds a single bit to the end of d.
func (d *Dense) AppendBit(bit bool) {
	i, pos := d.len/byteSize, d.len%byteSize
	d.len++
	if pos == 0 {
		d.bits = append(d.bits[:i], 0)
	}
	if bit {
		d.bits[i] |= 1 << pos
	} else {
		d.bits[i] &= ^(1 << pos)
	}
}

// Append adds the contents of d2 to the end of d.
func (d *Dense) Append(d2 Dense) {
	if d.len%byteSize == 0 {
		d.bits = append(d.bits[:d.SizeBytes()], d2.Data()...)
		d.len += d2.len
		return
	}
	for i := 0; i < d2.len; i++ {
		d.AppendBit(d2.Get(i))
	}
}
