package source

import (
	"github.com/alan-christopher/qrng/go/qrng/bitmap"
	"github.com/pkg/errors"
)

// Scripted replays a fixed bit sequence. It stands in for a real source in
// tests.
type Scripted struct {
	bits bitmap.Dense
	pos  int
	loop bool
}

// NewScripted returns a Source replaying bits. If loop is set the sequence
// repeats forever; otherwise Next fails once it runs dry.
func NewScripted(bits bitmap.Dense, loop bool) *Scripted {
	return &Scripted{bits: bits, loop: loop}
}

// ScriptedString is NewScripted for a '0'/'1' literal.
func ScriptedString(s string, loop bool) (*Scripted, error) {
	d, err := bitmap.FromString(s)
	if err != nil {
		return nil, err
	}
	return NewScripted(d, loop), nil
}

func (s *Scripted) Next(n int) (bitmap.Dense, error) {
	if n <= 0 {
		return bitmap.Empty(), errors.Wrapf(ErrInvalidConfiguration, "must request a positive number of bits, got %d", n)
	}
	if s.bits.Size() == 0 {
		return bitmap.Empty(), errors.Wrap(ErrSimulationUnavailable, "scripted source is empty")
	}
	if !s.loop && s.bits.Size()-s.pos < n {
		return bitmap.Empty(), errors.Wrapf(ErrSimulationUnavailable,
			"scripted source exhausted: %d bits left, %d requested", s.bits.Size()-s.pos, n)
	}
	var out bitmap.Dense
	for i := 0; i < n; i++ {
		out.AppendBit(s.bits.Get(s.pos))
		s.pos++
		if s.pos == s.bits.Size() && s.loop {
			s.pos = 0
		}
	}
	return out, nil
}

// Batch draws shots consecutive records of width bits.
func (s *Scripted) Batch(width, shots int) ([]bitmap.Dense, error) {
	recs := make([]bitmap.Dense, 0, shots)
	for i := 0; i < shots; i++ {
		r, err := s.Next(width)
		if err != nil {
			return nil, err
		}
		recs = append(recs, r)
	}
	return recs, nil
}
