package source

import (
	"fmt"

	"github.com/alan-christopher/qrng/go/qrng/bitmap"
	"github.com/pkg/errors"
)

// Defaults for Extracted: every 64 raw bits are hashed down to 32.
const (
	DefaultExtractorInput  = 64
	DefaultExtractorOutput = 32
)

// A toeplitz represents a matrix whose diagonals are all constant. It operates
// in F_2, i.e. all of its scalars are 0 or 1.
type toeplitz struct {
	// The diagonal constants for this toeplitz matrix, starting from the bottom
	// left and ending with the top right.
	diags bitmap.Dense

	m int
	n int
}

// Mul computes the matrix product Av between the toeplitz matrix t and the
// provided vector.
func (t toeplitz) Mul(vec bitmap.Dense) (bitmap.Dense, error) {
	if t.diags.Size() < t.m+t.n-1 {
		return bitmap.Dense{}, fmt.Errorf("improper toeplitz construction, has %d diagonals, needs %d", t.diags.Size(), t.m+t.n-1)
	}
	if t.n != vec.Size() {
		return bitmap.Dense{}, fmt.Errorf("multiplying %dx%d matrix into %d-dim vector", t.m, t.n, vec.Size())
	}

	r := bitmap.Dense{}
	for off := t.m - 1; off >= 0; off-- {
		row, err := bitmap.Slice(t.diags, off, off+t.n)
		if err != nil {
			return bitmap.Empty(), err
		}
		r.AppendBit(bitmap.Dot(row, vec))
	}
	return r, nil
}

// Extracted hashes blocks of raw bits from an underlying Source through a
// random Toeplitz matrix, the standard seeded extractor for whitening a
// physical random number generator whose bits may be slightly biased.
type Extracted struct {
	src Source
	t   toeplitz

	out bitmap.Dense
	pos int
}

// NewExtracted draws an (m+n-1)-bit matrix seed from src and returns a Source
// that emits m bits for every n it reads.
func NewExtracted(src Source, n, m int) (*Extracted, error) {
	if n <= 0 || m <= 0 || m > n {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "extractor must compress n=%d bits into 0 < m <= n, got m=%d", n, m)
	}
	seed, err := src.Next(m + n - 1)
	if err != nil {
		return nil, err
	}
	return &Extracted{src: src, t: toeplitz{diags: seed, m: m, n: n}}, nil
}

func (e *Extracted) Next(k int) (bitmap.Dense, error) {
	if k <= 0 {
		return bitmap.Empty(), errors.Wrapf(ErrInvalidConfiguration, "must request a positive number of bits, got %d", k)
	}
	for e.out.Size()-e.pos < k {
		raw, err := e.src.Next(e.t.n)
		if err != nil {
			return bitmap.Empty(), err
		}
		h, err := e.t.Mul(raw)
		if err != nil {
			return bitmap.Empty(), err
		}
		rest, err := bitmap.Slice(e.out, e.pos, e.out.Size())
		if err != nil {
			return bitmap.Empty(), err
		}
		rest.Append(h)
		e.out, e.pos = rest, 0
	}
	r, err := bitmap.Slice(e.out, e.pos, e.pos+k)
	if err != nil {
		return bitmap.Empty(), err
	}
	e.pos += k
	return r, nil
}
