package circuit

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sort"

	"github.com/alan-christopher/qrng/go/qrng/bitmap"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

// DefaultMaxQubits bounds the register a Simulator will allocate. 2^20
// amplitudes is 16MiB of complex128.
const DefaultMaxQubits = 20

// A Backend executes circuits. Each call to Run prepares the circuit afresh
// shots times, measures every qubit, and returns one outcome per shot. Bit q of
// an outcome holds the measurement of qubit q.
type Backend interface {
	Run(c *Circuit, shots int) ([]uint64, error)
	// MaxQubits reports the widest circuit Run accepts.
	MaxQubits() int
}

// A Simulator is a Backend that evolves a full state vector and samples
// measurement outcomes from it. A Simulator is not safe for concurrent use.
type Simulator struct {
	maxQubits int
	rand      *rand.Rand
}

// NewSimulator returns a Simulator whose measurement draws come from r. If r
// is nil, a generator seeded from crypto/rand is used.
func NewSimulator(r *rand.Rand, maxQubits int) (*Simulator, error) {
	if maxQubits <= 0 {
		maxQubits = DefaultMaxQubits
	}
	if maxQubits > 30 {
		return nil, fmt.Errorf("refusing to simulate %d qubits, at most 30 are supported", maxQubits)
	}
	if r == nil {
		seed, err := CryptoSeed()
		if err != nil {
			return nil, err
		}
		r = rand.New(rand.NewSource(seed))
	}
	return &Simulator{maxQubits: maxQubits, rand: r}, nil
}

// CryptoSeed reads a 64-bit seed from the operating system's entropy source.
func CryptoSeed() (int64, error) {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("could not read seed from crypto/rand: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(buf[:])), nil
}

func (s *Simulator) MaxQubits() int {
	return s.maxQubits
}

func (s *Simulator) Run(c *Circuit, shots int) ([]uint64, error) {
	if shots <= 0 {
		return nil, fmt.Errorf("shots must be positive, got %d", shots)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.NumQubits > s.maxQubits {
		return nil, fmt.Errorf("circuit has %d qubits, simulator supports at most %d", c.NumQubits, s.maxQubits)
	}
	sv := NewStateVector(c.NumQubits)
	sv.Apply(c)
	cum := floats.CumSum(make([]float64, len(sv.Amplitudes)), sv.Probabilities())
	total := cum[len(cum)-1]

	out := make([]uint64, shots)
	for i := range out {
		r := s.rand.Float64() * total
		idx := sort.Search(len(cum), func(j int) bool { return cum[j] > r })
		if idx == len(cum) {
			idx = len(cum) - 1
		}
		out[i] = uint64(idx)
	}
	zap.L().Debug("ran circuit",
		zap.Int("qubits", c.NumQubits),
		zap.Int("gates", len(c.Gates)),
		zap.Int("shots", shots))
	return out, nil
}

// Counts tallies outcomes of a width-qubit circuit by bitstring, with qubit 0
// as the first character.
func Counts(outcomes []uint64, width int) map[string]int {
	counts := make(map[string]int)
	for _, o := range outcomes {
		counts[bitmap.FromUint(o, width).String()]++
	}
	return counts
}
