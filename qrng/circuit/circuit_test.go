package circuit

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestSuperpositionProbabilities(t *testing.T) {
	tcs := []struct {
		name   string
		n      int
		rotate bool
	}{
		{"one qubit", 1, false},
		{"digit width", 4, false},
		{"letter width rotated", 5, true},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			sv := NewStateVector(tc.n)
			sv.Apply(Superposition(tc.n, tc.rotate))
			want := 1 / float64(int(1)<<uint(tc.n))
			for i, p := range sv.Probabilities() {
				if !scalar.EqualWithinAbs(p, want, 1e-12) {
					t.Errorf("P(%d) == %v, want %v", i, p, want)
				}
			}
		})
	}
}

func TestHadamardTwiceIsIdentity(t *testing.T) {
	sv := NewStateVector(2)
	sv.Apply(New(2).H(1, 1))
	probs := sv.Probabilities()
	if !scalar.EqualWithinAbs(probs[0], 1, 1e-12) {
		t.Errorf("HH|00⟩ has P(00) == %v, want 1", probs[0])
	}
}

func TestRXPi(t *testing.T) {
	// RX(π) takes |0⟩ to -i|1⟩.
	sv := NewStateVector(1)
	sv.Apply(New(1).RX(math.Pi, 0))
	probs := sv.Probabilities()
	if !scalar.EqualWithinAbs(probs[1], 1, 1e-12) {
		t.Errorf("RX(π)|0⟩ has P(1) == %v, want 1", probs[1])
	}
}

func TestValidate(t *testing.T) {
	tcs := []struct {
		name string
		c    *Circuit
		eErr bool
	}{
		{"ok", Superposition(3, true), false},
		{"no qubits", New(0), true},
		{"target out of range", New(2).H(2), true},
		{"negative target", New(2).H(-1), true},
		{"unknown gate", &Circuit{NumQubits: 1, Gates: []Gate{{Kind: "cz"}}}, true},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.c.Validate()
			if !tc.eErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tc.eErr && err == nil {
				t.Errorf("expected error: got nil")
			}
		})
	}
}

func TestSimulatorRun(t *testing.T) {
	sim, err := NewSimulator(rand.New(rand.NewSource(42)), 0)
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}
	if sim.MaxQubits() != DefaultMaxQubits {
		t.Errorf("MaxQubits() == %d, want %d", sim.MaxQubits(), DefaultMaxQubits)
	}
	out, err := sim.Run(Superposition(3, false), 4096)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out) != 4096 {
		t.Fatalf("got %d outcomes, want 4096", len(out))
	}
	counts := Counts(out, 3)
	if len(counts) != 8 {
		t.Errorf("saw %d distinct outcomes, want 8: %v", len(counts), counts)
	}
	for k, c := range counts {
		if len(k) != 3 {
			t.Errorf("outcome %q has width %d, want 3", k, len(k))
		}
		// Expected 512 per outcome; 5 standard deviations is ~106.
		if c < 400 || c > 624 {
			t.Errorf("outcome %s seen %d times, want roughly 512", k, c)
		}
	}
}

func TestSimulatorDeterministicState(t *testing.T) {
	sim, err := NewSimulator(rand.New(rand.NewSource(1)), 4)
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}
	// X-rotation by π on qubit 2 only: every shot must read 0b100.
	out, err := sim.Run(New(3).RX(math.Pi, 2), 16)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, o := range out {
		if o != 4 {
			t.Fatalf("got outcome %b, want 100", o)
		}
	}
}

func TestSimulatorRejects(t *testing.T) {
	sim, err := NewSimulator(rand.New(rand.NewSource(1)), 4)
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}
	if _, err := sim.Run(Superposition(5, false), 1); err == nil {
		t.Errorf("Run with too many qubits succeeded, want error")
	}
	if _, err := sim.Run(Superposition(2, false), 0); err == nil {
		t.Errorf("Run with zero shots succeeded, want error")
	}
	if _, err := NewSimulator(nil, 31); err == nil {
		t.Errorf("NewSimulator(31 qubits) succeeded, want error")
	}
}

func TestNewSimulatorCryptoSeed(t *testing.T) {
	sim, err := NewSimulator(nil, 2)
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}
	if _, err := sim.Run(Superposition(2, false), 1); err != nil {
		t.Errorf("Run: %v", err)
	}
}
