package qrng

import (
	"strings"

	"github.com/pkg/errors"
)

// An Alphabet is a set of output symbols, each indexed by a Width-bit draw.
type Alphabet struct {
	Symbols string
	Width   int
}

var (
	// Digits needs 4 bits: 2^4 = 16 >= 10.
	Digits = Alphabet{Symbols: "0123456789", Width: 4}
	// Letters needs 5 bits: 2^5 = 32 >= 26.
	Letters = Alphabet{Symbols: "abcdefghijklmnopqrstuvwxyz", Width: 5}
)

// Validate checks that every symbol of a is reachable by a Width-bit index.
func (a Alphabet) Validate() error {
	k := len(a.Symbols)
	if k == 0 {
		return errors.Wrap(ErrInvalidConfiguration, "alphabet is empty")
	}
	if a.Width <= 0 || a.Width > 63 {
		return errors.Wrapf(ErrInvalidConfiguration, "alphabet width must be in [1, 63], got %d", a.Width)
	}
	if uint64(k) > uint64(1)<<uint(a.Width) {
		return errors.Wrapf(ErrInvalidConfiguration, "%d symbols cannot be indexed by %d bits", k, a.Width)
	}
	return nil
}

// A Slot is one position of a Pattern.
type Slot int

const (
	Digit Slot = iota
	Letter
)

// Alphabet returns the symbols a slot draws from.
func (s Slot) Alphabet() Alphabet {
	if s == Letter {
		return Letters
	}
	return Digits
}

func (s Slot) String() string {
	if s == Letter {
		return "L"
	}
	return "D"
}

// A Pattern is a non-empty sequence of slots.
type Pattern []Slot

// ParsePattern reads a string of 'D' and 'L' symbols, in either case.
func ParsePattern(s string) (Pattern, error) {
	if strings.TrimSpace(s) == "" {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "pattern must be a non-empty string of 'D' or 'L', got %q", s)
	}
	p := make(Pattern, 0, len(s))
	for i, c := range s {
		switch c {
		case 'D', 'd':
			p = append(p, Digit)
		case 'L', 'l':
			p = append(p, Letter)
		default:
			return nil, errors.Wrapf(ErrInvalidConfiguration, "pattern must contain only 'D' (digit) or 'L' (letter), got %q at %d in %q", c, i, s)
		}
	}
	return p, nil
}

// AlternatingPattern returns digit, letter, digit, letter, … for length slots.
func AlternatingPattern(length int) Pattern {
	p := make(Pattern, length)
	for i := range p {
		if i%2 == 1 {
			p[i] = Letter
		}
	}
	return p
}

// Bits returns the number of bits one pass over p consumes when no draw is
// rejected.
func (p Pattern) Bits() int {
	n := 0
	for _, s := range p {
		n += s.Alphabet().Width
	}
	return n
}

func (p Pattern) String() string {
	var sb strings.Builder
	for _, s := range p {
		sb.WriteString(s.String())
	}
	return sb.String()
}
