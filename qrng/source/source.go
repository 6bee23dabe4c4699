// Package source provides sources of uniformly random bits drawn from the
// measurement of qubits in superposition.
package source

import (
	"github.com/alan-christopher/qrng/go/qrng/bitmap"
	"github.com/alan-christopher/qrng/go/qrng/circuit"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrInvalidConfiguration reports a request no source can satisfy, such as
// a non-positive number of bits.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ErrSimulationUnavailable reports that the backend producing measurements
// could not be reached or failed. It is never retried.
var ErrSimulationUnavailable = errors.New("simulation unavailable")

// A Source produces independently uniform random bits.
type Source interface {
	// Next returns exactly n fresh bits, in draw order.
	Next(n int) (bitmap.Dense, error)
}

// A Batcher is a Source that can also request many shots of one circuit in a
// single backend call.
type Batcher interface {
	Source
	// Batch returns shots independent measurement records of a width-qubit
	// superposition circuit.
	Batch(width, shots int) ([]bitmap.Dense, error)
}

// Simulated is the production Source. Every bit it returns is the measurement
// of a freshly prepared qubit in equal superposition.
type Simulated struct {
	backend circuit.Backend
	rotate  bool
}

// NewSimulated returns a Source backed by b. If rotate is set, circuits apply
// RX(π/4) after each Hadamard.
func NewSimulated(b circuit.Backend, rotate bool) *Simulated {
	return &Simulated{backend: b, rotate: rotate}
}

func (s *Simulated) Next(n int) (bitmap.Dense, error) {
	if n <= 0 {
		return bitmap.Empty(), errors.Wrapf(ErrInvalidConfiguration, "must request a positive number of bits, got %d", n)
	}
	recs, err := s.Batch(n, 1)
	if err != nil {
		return bitmap.Empty(), err
	}
	return recs[0], nil
}

// Batch splits circuits wider than the backend supports into chunks, running
// each chunk once for all shots.
func (s *Simulated) Batch(width, shots int) ([]bitmap.Dense, error) {
	if width <= 0 || shots <= 0 {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "batch request of width %d, shots %d", width, shots)
	}
	recs := make([]bitmap.Dense, shots)
	limit := s.backend.MaxQubits()
	for rem := width; rem > 0; {
		k := rem
		if k > limit {
			k = limit
			zap.L().Debug("chunking wide request", zap.Int("width", width), zap.Int("chunk", k))
		}
		outcomes, err := s.backend.Run(circuit.Superposition(k, s.rotate), shots)
		if err != nil {
			return nil, errors.Wrapf(ErrSimulationUnavailable, "running %d-qubit circuit for %d shots: %v", k, shots, err)
		}
		if len(outcomes) != shots {
			return nil, errors.Wrapf(ErrSimulationUnavailable, "backend returned %d outcomes for %d shots", len(outcomes), shots)
		}
		for i, o := range outcomes {
			recs[i].Append(bitmap.FromUint(o, k))
		}
		rem -= k
	}
	return recs, nil
}
