package circuit

import (
	"math"
	"math/cmplx"
)

// A StateVector holds the 2^n complex amplitudes of an n-qubit register. Basis
// state i has qubit q set iff bit q of i is set.
type StateVector struct {
	Amplitudes []complex128
	NumQubits  int
}

// NewStateVector returns the register |0…0⟩.
func NewStateVector(numQubits int) *StateVector {
	amps := make([]complex128, 1<<uint(numQubits))
	amps[0] = 1
	return &StateVector{Amplitudes: amps, NumQubits: numQubits}
}

// Apply evolves s by every gate of c, in order. The circuit must already be
// valid for s.
func (s *StateVector) Apply(c *Circuit) {
	for _, g := range c.Gates {
		switch g.Kind {
		case Hadamard:
			s.applyH(g.Target)
		case RotateX:
			s.applyRX(g.Target, g.Theta)
		}
	}
}

// Probabilities returns |a|^2 for each amplitude.
func (s *StateVector) Probabilities() []float64 {
	probs := make([]float64, len(s.Amplitudes))
	for i, a := range s.Amplitudes {
		m := cmplx.Abs(a)
		probs[i] = m * m
	}
	return probs
}

func (s *StateVector) applyH(target int) {
	bit := 1 << uint(target)
	inv := complex(1/math.Sqrt2, 0)
	for i := range s.Amplitudes {
		if i&bit != 0 {
			continue
		}
		j := i | bit
		a, b := s.Amplitudes[i], s.Amplitudes[j]
		s.Amplitudes[i] = (a + b) * inv
		s.Amplitudes[j] = (a - b) * inv
	}
}

// RX(θ) = [[cos θ/2, -i sin θ/2], [-i sin θ/2, cos θ/2]]
func (s *StateVector) applyRX(target int, theta float64) {
	bit := 1 << uint(target)
	c := complex(math.Cos(theta/2), 0)
	ms := complex(0, -math.Sin(theta/2))
	for i := range s.Amplitudes {
		if i&bit != 0 {
			continue
		}
		j := i | bit
		a, b := s.Amplitudes[i], s.Amplitudes[j]
		s.Amplitudes[i] = c*a + ms*b
		s.Amplitudes[j] = ms*a + c*b
	}
}
