package qrng

import (
	"github.com/alan-christopher/qrng/go/qrng/bitmap"
	"github.com/alan-christopher/qrng/go/qrng/source"
	"github.com/pkg/errors"
)

// A Decoder maps groups of random bits onto alphabet symbols by rejection
// sampling: a draw that indexes past the end of the alphabet is discarded and
// a fresh group is drawn. Reducing the draw modulo the alphabet size instead
// would favour the low symbols.
type Decoder struct {
	src        source.Source
	maxRetries int

	// Rejected counts discarded draws.
	Rejected int
}

// NewDecoder returns a Decoder reading from src that gives up on a symbol after
// maxRetries draws. A non-positive maxRetries uses DefaultMaxRetries.
func NewDecoder(src source.Source, maxRetries int) *Decoder {
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	return &Decoder{src: src, maxRetries: maxRetries}
}

// Index draws a uniform index into a.
func (d *Decoder) Index(a Alphabet) (int, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	k := uint64(len(a.Symbols))
	for attempt := 0; attempt < d.maxRetries; attempt++ {
		bits, err := d.src.Next(a.Width)
		if err != nil {
			return 0, err
		}
		v, err := bitmap.Uint(bits, 0, a.Width)
		if err != nil {
			return 0, errors.Wrapf(ErrSimulationUnavailable, "source returned %d bits for a %d-bit draw", bits.Size(), a.Width)
		}
		if v < k {
			return int(v), nil
		}
		d.Rejected++
	}
	return 0, errors.Wrapf(ErrSamplingExhausted, "no value below %d in %d draws of %d bits", k, d.maxRetries, a.Width)
}

// Draw returns a uniformly chosen symbol of a.
func (d *Decoder) Draw(a Alphabet) (byte, error) {
	i, err := d.Index(a)
	if err != nil {
		return 0, err
	}
	return a.Symbols[i], nil
}

// Fill returns one string with a symbol drawn for each slot of p.
func (d *Decoder) Fill(p Pattern) (string, error) {
	out := make([]byte, len(p))
	for i, s := range p {
		c, err := d.Draw(s.Alphabet())
		if err != nil {
			return "", err
		}
		out[i] = c
	}
	return string(out), nil
}
