// Package circuit builds small quantum circuits and runs them against a
// measurement backend.
package circuit

import (
	"fmt"
	"math"
)

// GateKind names a single-qubit gate.
type GateKind string

const (
	Hadamard GateKind = "h"
	RotateX  GateKind = "rx"
)

// A Gate is one single-qubit operation placed on a circuit.
type Gate struct {
	Kind   GateKind
	Target int
	Theta  float64
}

// A Circuit is an ordered list of gates over NumQubits qubits, every one of
// which is measured once the gates have been applied.
type Circuit struct {
	NumQubits int
	Gates     []Gate
}

// New returns an empty circuit over n qubits.
func New(n int) *Circuit {
	return &Circuit{NumQubits: n}
}

// Superposition returns a circuit that puts each of n qubits into an equal
// superposition of |0⟩ and |1⟩. If rotate is set, each qubit is additionally
// rotated by RX(π/4); |+⟩ is an eigenstate of X, so the outcome distribution
// stays uniform.
func Superposition(n int, rotate bool) *Circuit {
	c := New(n)
	for q := 0; q < n; q++ {
		c.H(q)
		if rotate {
			c.RX(math.Pi/4, q)
		}
	}
	return c
}

// H appends a Hadamard gate on each of the given qubits.
func (c *Circuit) H(qubits ...int) *Circuit {
	for _, q := range qubits {
		c.Gates = append(c.Gates, Gate{Kind: Hadamard, Target: q})
	}
	return c
}

// RX appends an X-axis rotation by theta on each of the given qubits.
func (c *Circuit) RX(theta float64, qubits ...int) *Circuit {
	for _, q := range qubits {
		c.Gates = append(c.Gates, Gate{Kind: RotateX, Target: q, Theta: theta})
	}
	return c
}

// Validate checks that every gate targets a qubit inside the circuit.
func (c *Circuit) Validate() error {
	if c.NumQubits <= 0 {
		return fmt.Errorf("circuit must have at least one qubit, has %d", c.NumQubits)
	}
	for i, g := range c.Gates {
		if g.Target < 0 || g.Target >= c.NumQubits {
			return fmt.Errorf("gate %d (%s) targets qubit %d of a %d-qubit circuit", i, g.Kind, g.Target, c.NumQubits)
		}
		switch g.Kind {
		case Hadamard, RotateX:
		default:
			return fmt.Errorf("gate %d has unknown kind %q", i, g.Kind)
		}
	}
	return nil
}
