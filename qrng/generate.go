// Package qrng generates random bitstrings and alphanumeric strings from the
// measurement of qubits in superposition.
package qrng

import (
	"math/rand"

	"github.com/alan-christopher/qrng/go/qrng/circuit"
	"github.com/alan-christopher/qrng/go/qrng/entropy"
	"github.com/alan-christopher/qrng/go/qrng/source"
	"go.uber.org/zap"
)

// A Batch is the ordered output of one run.
type Batch struct {
	Mode    Mode
	Samples []string
}

// A Result is a Batch together with its randomness estimates.
type Result struct {
	Batch Batch

	// Entropy is the Shannon entropy of the samples as whole values.
	Entropy float64
	// CharEntropy is the Shannon entropy of the individual characters.
	CharEntropy float64

	// Distribution holds extra bitstrings sampled for a histogram. Only
	// bitstring runs with ShowGraph set fill it.
	Distribution []string
}

// NewSource returns the production bit source described by cfg: a simulated
// backend, optionally behind a Toeplitz extractor.
func NewSource(cfg Config, rotate bool) (source.Source, error) {
	var r *rand.Rand
	if cfg.Seed != 0 {
		r = rand.New(rand.NewSource(cfg.Seed))
	}
	sim, err := circuit.NewSimulator(r, cfg.MaxQubits)
	if err != nil {
		return nil, err
	}
	var src source.Source = source.NewSimulated(sim, rotate)
	if cfg.Extract {
		src, err = source.NewExtracted(src, source.DefaultExtractorInput, source.DefaultExtractorOutput)
		if err != nil {
			return nil, err
		}
	}
	return src, nil
}

// bulk wraps src so that it fetches width*shots bits per backend call, if cfg
// asks for parallel sampling and src supports it.
func bulk(src source.Source, cfg Config, width, shots int) source.Source {
	if !cfg.Parallel {
		return src
	}
	b, ok := src.(source.Batcher)
	if !ok {
		zap.L().Debug("source does not support bulk requests, sampling sequentially")
		return src
	}
	return source.NewBuffered(b, width, shots)
}

// Alternating returns cfg.Shots strings of cfg.Length characters, alternating
// digit, letter, digit, letter, ….
func Alternating(src source.Source, cfg Config) (Batch, error) {
	if err := cfg.Validate(ModeAlternating); err != nil {
		return Batch{}, err
	}
	return fill(src, cfg, ModeAlternating, AlternatingPattern(cfg.Length))
}

// Pattern returns cfg.Shots strings following cfg.Pattern.
func Pattern(src source.Source, cfg Config) (Batch, error) {
	if err := cfg.Validate(ModePattern); err != nil {
		return Batch{}, err
	}
	p, err := ParsePattern(cfg.Pattern)
	if err != nil {
		return Batch{}, err
	}
	return fill(src, cfg, ModePattern, p)
}

func fill(src source.Source, cfg Config, mode Mode, p Pattern) (Batch, error) {
	d := NewDecoder(bulk(src, cfg, p.Bits(), cfg.Shots), cfg.maxRetries())
	b := Batch{Mode: mode, Samples: make([]string, 0, cfg.Shots)}
	for i := 0; i < cfg.Shots; i++ {
		s, err := d.Fill(p)
		if err != nil {
			return Batch{}, err
		}
		b.Samples = append(b.Samples, s)
	}
	zap.L().Debug("generated strings",
		zap.Stringer("mode", mode),
		zap.Stringer("pattern", p),
		zap.Int("shots", cfg.Shots),
		zap.Int("rejected", d.Rejected))
	return b, nil
}

// Bitstring returns a batch holding one string of cfg.NumBits raw bits.
func Bitstring(src source.Source, cfg Config) (Batch, error) {
	if err := cfg.Validate(ModeBitstring); err != nil {
		return Batch{}, err
	}
	s, err := bitstrings(bulk(src, cfg, cfg.NumBits, 1), cfg.NumBits, 1)
	if err != nil {
		return Batch{}, err
	}
	return Batch{Mode: ModeBitstring, Samples: s}, nil
}

func bitstrings(src source.Source, width, n int) ([]string, error) {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		bits, err := src.Next(width)
		if err != nil {
			return nil, err
		}
		out = append(out, bits.String())
	}
	return out, nil
}

// Run generates a batch in the given mode and estimates its entropy.
func Run(src source.Source, mode Mode, cfg Config) (Result, error) {
	if err := cfg.Validate(mode); err != nil {
		return Result{}, err
	}
	var r Result
	switch mode {
	case ModeAlternating:
		b, err := Alternating(src, cfg)
		if err != nil {
			return Result{}, err
		}
		r.Batch = b
	case ModePattern:
		b, err := Pattern(src, cfg)
		if err != nil {
			return Result{}, err
		}
		r.Batch = b
	case ModeBitstring:
		shots := 1
		if cfg.ShowGraph {
			shots += cfg.graphShots()
		}
		all, err := bitstrings(bulk(src, cfg, cfg.NumBits, shots), cfg.NumBits, shots)
		if err != nil {
			return Result{}, err
		}
		r.Batch = Batch{Mode: ModeBitstring, Samples: all[:1]}
		r.Distribution = all[1:]
	}
	r.Entropy = entropy.Shannon(r.Batch.Samples)
	r.CharEntropy = entropy.Characters(r.Batch.Samples)
	return r, nil
}
