package qrng

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/alan-christopher/qrng/go/qrng/bitmap"
	"github.com/alan-christopher/qrng/go/qrng/circuit"
	"github.com/alan-christopher/qrng/go/qrng/entropy"
	"github.com/alan-christopher/qrng/go/qrng/source"
)

func mustScripted(t *testing.T, s string, loop bool) *source.Scripted {
	src, err := source.ScriptedString(s, loop)
	if err != nil {
		t.Fatalf("bugged test setup: %v", err)
	}
	return src
}

func seededSource(t *testing.T, seed int64) *source.Simulated {
	sim, err := circuit.NewSimulator(rand.New(rand.NewSource(seed)), 0)
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}
	return source.NewSimulated(sim, false)
}

// sweep returns every w-bit value 0..2^w-1, MSB first, concatenated.
func sweep(w int) bitmap.Dense {
	var d bitmap.Dense
	for v := 0; v < 1<<uint(w); v++ {
		for b := w - 1; b >= 0; b-- {
			d.AppendBit(v&(1<<uint(b)) != 0)
		}
	}
	return d
}

func TestDecoderRejectsOutOfRange(t *testing.T) {
	// 1111 (15) and 1010 (10) are out of range for digits; 0111 (7) is not.
	d := NewDecoder(mustScripted(t, "1111 1010 0111", false), 10)
	i, err := d.Index(Digits)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if i != 7 {
		t.Errorf("Index() == %d, want 7", i)
	}
	if d.Rejected != 2 {
		t.Errorf("rejected %d draws, want 2", d.Rejected)
	}
}

func TestDecoderSweepIsUniform(t *testing.T) {
	tcs := []struct {
		name string
		a    Alphabet
	}{
		{"digits", Digits},
		{"letters", Letters},
		{"power of two", Alphabet{Symbols: "abcdefgh", Width: 3}},
		{"one symbol", Alphabet{Symbols: "x", Width: 1}},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// One pass over every w-bit value yields each in-range index
			// exactly once; the out-of-range ones are rejected.
			d := NewDecoder(source.NewScripted(sweep(tc.a.Width), false), 1<<uint(tc.a.Width))
			counts := make([]int, len(tc.a.Symbols))
			for i := 0; i < len(tc.a.Symbols); i++ {
				idx, err := d.Index(tc.a)
				if err != nil {
					t.Fatalf("Index: %v", err)
				}
				counts[idx]++
			}
			for i, c := range counts {
				if c != 1 {
					t.Errorf("index %d drawn %d times, want 1", i, c)
				}
			}
		})
	}
}

func TestDecoderUniformChiSquare(t *testing.T) {
	tcs := []struct {
		name string
		a    Alphabet
		seed int64
	}{
		{"digits", Digits, 1},
		{"letters", Letters, 2},
		{"three of four", Alphabet{Symbols: "abc", Width: 2}, 3},
		{"five of eight", Alphabet{Symbols: "abcde", Width: 3}, 4},
	}
	const trials = 20000
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			d := NewDecoder(source.NewBuffered(seededSource(t, tc.seed), 16, 256), 0)
			counts := make([]float64, len(tc.a.Symbols))
			for i := 0; i < trials; i++ {
				idx, err := d.Index(tc.a)
				if err != nil {
					t.Fatalf("Index: %v", err)
				}
				if idx < 0 || idx >= len(counts) {
					t.Fatalf("Index() == %d, out of [0, %d)", idx, len(counts))
				}
				counts[idx]++
			}
			chi2, p := entropy.ChiSquareUniform(counts)
			if p < 1e-3 {
				t.Errorf("χ²=%.2f p=%.5f: decoded indices are not uniform: %v", chi2, p, counts)
			}
		})
	}
}

func TestDecoderSamplingExhausted(t *testing.T) {
	// 1111 never indexes a digit.
	d := NewDecoder(mustScripted(t, "1111", true), 25)
	_, err := d.Index(Digits)
	if !errors.Is(err, ErrSamplingExhausted) {
		t.Fatalf("Index() == %v, want ErrSamplingExhausted", err)
	}
	if d.Rejected != 25 {
		t.Errorf("rejected %d draws, want 25", d.Rejected)
	}
}

func TestDecoderDefaultCeiling(t *testing.T) {
	d := NewDecoder(mustScripted(t, "11111", true), 0)
	if _, err := d.Draw(Letters); !errors.Is(err, ErrSamplingExhausted) {
		t.Fatalf("Draw() == %v, want ErrSamplingExhausted", err)
	}
	if d.Rejected != DefaultMaxRetries {
		t.Errorf("rejected %d draws, want %d", d.Rejected, DefaultMaxRetries)
	}
}

func TestDecoderPropagatesSourceErrors(t *testing.T) {
	d := NewDecoder(mustScripted(t, "01", false), 0)
	if _, err := d.Index(Digits); !errors.Is(err, ErrSimulationUnavailable) {
		t.Errorf("Index() == %v, want ErrSimulationUnavailable", err)
	}
}

func TestAlphabetValidate(t *testing.T) {
	tcs := []struct {
		name string
		a    Alphabet
		eErr bool
	}{
		{"digits", Digits, false},
		{"letters", Letters, false},
		{"too narrow", Alphabet{Symbols: "0123456789", Width: 3}, true},
		{"empty", Alphabet{Width: 4}, true},
		{"zero width", Alphabet{Symbols: "a"}, true},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.a.Validate()
			if tc.eErr && !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("Validate() == %v, want ErrInvalidConfiguration", err)
			}
			if !tc.eErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestFill(t *testing.T) {
	// D: 0011 -> 3. L: 11111 rejected, 00010 -> c. D: 1001 -> 9.
	d := NewDecoder(mustScripted(t, "0011 11111 00010 1001", false), 0)
	s, err := d.Fill(Pattern{Digit, Letter, Digit})
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if s != "3c9" {
		t.Errorf("Fill() == %q, want %q", s, "3c9")
	}
}
