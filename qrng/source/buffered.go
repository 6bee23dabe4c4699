package source

import (
	"github.com/alan-christopher/qrng/go/qrng/bitmap"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Buffered serves bits out of bulk requests: each refill asks its Batcher for
// shots records of width bits in one call. Bits are handed out in order, so a
// consumer that rejects some draws simply eats further into the buffer.
type Buffered struct {
	src   Batcher
	width int
	shots int

	buf     bitmap.Dense
	pos     int
	refills int
}

// NewBuffered returns a Buffered source prefetching width*shots bits at a time.
func NewBuffered(src Batcher, width, shots int) *Buffered {
	if width <= 0 {
		width = 1
	}
	if shots <= 0 {
		shots = 1
	}
	return &Buffered{src: src, width: width, shots: shots}
}

func (b *Buffered) Next(n int) (bitmap.Dense, error) {
	if n <= 0 {
		return bitmap.Empty(), errors.Wrapf(ErrInvalidConfiguration, "must request a positive number of bits, got %d", n)
	}
	for b.buf.Size()-b.pos < n {
		if err := b.refill(); err != nil {
			return bitmap.Empty(), err
		}
	}
	out, err := bitmap.Slice(b.buf, b.pos, b.pos+n)
	if err != nil {
		return bitmap.Empty(), err
	}
	b.pos += n
	return out, nil
}

// Refills reports how many bulk requests have been made.
func (b *Buffered) Refills() int {
	return b.refills
}

func (b *Buffered) refill() error {
	rest, err := bitmap.Slice(b.buf, b.pos, b.buf.Size())
	if err != nil {
		return err
	}
	recs, err := b.src.Batch(b.width, b.shots)
	if err != nil {
		return err
	}
	for _, r := range recs {
		rest.Append(r)
	}
	b.buf, b.pos = rest, 0
	b.refills++
	zap.L().Debug("refilled bit buffer",
		zap.Int("width", b.width),
		zap.Int("shots", b.shots),
		zap.Int("buffered", b.buf.Size()))
	return nil
}
