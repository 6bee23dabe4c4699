package qrng

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// A Mode selects one of the generators.
type Mode int

const (
	ModeAlternating Mode = iota
	ModePattern
	ModeBitstring
)

func (m Mode) String() string {
	switch m {
	case ModeAlternating:
		return "alternating"
	case ModePattern:
		return "pattern"
	case ModeBitstring:
		return "bitstring"
	default:
		return "unknown"
	}
}

var (
	DefaultMaxRetries = 1000
	DefaultGraphShots = 1024
)

// Config packages together everything a generator needs. Fields that do not
// apply to a mode are ignored by it.
type Config struct {
	// Length is the number of characters in an alternating string. Must be
	// even and positive.
	Length int `yaml:"length"`

	// Shots is the number of independent samples to generate.
	Shots int `yaml:"shots"`

	// Pattern is a string of 'D' (digit) and 'L' (letter) slots, in either
	// case.
	Pattern string `yaml:"pattern"`

	// Parallel requests bits from the backend in bulk, one shot per sample,
	// rather than one small circuit per character.
	Parallel bool `yaml:"parallel"`

	// NumBits is the width of a raw bitstring.
	NumBits int `yaml:"num_bits"`

	// ShowGraph renders a histogram of the run's distribution.
	ShowGraph bool `yaml:"show_graph"`

	// GraphShots is the number of bitstrings sampled for the bitstring
	// histogram. Defaults to DefaultGraphShots.
	GraphShots int `yaml:"graph_shots"`

	// GraphPath is where the histogram PNG is written. If empty, the
	// histogram is drawn as text.
	GraphPath string `yaml:"graph_path"`

	// MaxRetries bounds rejection sampling per character. Defaults to
	// DefaultMaxRetries.
	MaxRetries int `yaml:"max_retries"`

	// Extract whitens raw bits through a Toeplitz extractor.
	Extract bool `yaml:"extract"`

	// Seed fixes the simulator's measurement draws. Zero seeds from
	// crypto/rand.
	Seed int64 `yaml:"seed"`

	// MaxQubits bounds the simulated register. Zero uses the simulator's
	// default.
	MaxQubits int `yaml:"max_qubits"`

	// Output, if set, is a file the batch is appended to as a protobuf frame.
	Output string `yaml:"output"`
}

// DefaultConfig returns the settings each generator shipped with.
func DefaultConfig(mode Mode) Config {
	c := Config{
		MaxRetries: DefaultMaxRetries,
		GraphShots: DefaultGraphShots,
	}
	switch mode {
	case ModeAlternating:
		c.Length, c.Shots = 6, 1
	case ModePattern:
		c.Pattern, c.Shots, c.Parallel = "DDL", 10, true
	case ModeBitstring:
		c.NumBits, c.Shots, c.ShowGraph = 8, 1, true
	}
	return c
}

// LoadConfig overlays the YAML file at path onto c. Keys absent from the file
// keep their value in c.
func LoadConfig(path string, c Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return c, errors.Wrapf(ErrInvalidConfiguration, "reading config: %v", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && err != io.EOF {
		return c, errors.Wrapf(ErrInvalidConfiguration, "parsing %s: %v", path, err)
	}
	return c, nil
}

// Validate checks c for the requirements of mode.
func (c Config) Validate(mode Mode) error {
	if c.MaxRetries < 0 {
		return errors.Wrapf(ErrInvalidConfiguration, "max retries must not be negative, got %d", c.MaxRetries)
	}
	if c.GraphShots < 0 {
		return errors.Wrapf(ErrInvalidConfiguration, "graph shots must not be negative, got %d", c.GraphShots)
	}
	if c.MaxQubits < 0 {
		return errors.Wrapf(ErrInvalidConfiguration, "max qubits must not be negative, got %d", c.MaxQubits)
	}
	switch mode {
	case ModeAlternating:
		if c.Length <= 0 {
			return errors.Wrapf(ErrInvalidConfiguration, "string length must be a positive integer, got %d", c.Length)
		}
		if c.Length%2 != 0 {
			return errors.Wrapf(ErrInvalidConfiguration, "string length must be even to alternate digits and letters, got %d", c.Length)
		}
		return c.validateShots()
	case ModePattern:
		if _, err := ParsePattern(c.Pattern); err != nil {
			return err
		}
		return c.validateShots()
	case ModeBitstring:
		if c.NumBits <= 0 {
			return errors.Wrapf(ErrInvalidConfiguration, "number of bits must be a positive integer, got %d", c.NumBits)
		}
		return nil
	default:
		return errors.Wrapf(ErrInvalidConfiguration, "unknown mode %d", int(mode))
	}
}

func (c Config) validateShots() error {
	if c.Shots <= 0 {
		return errors.Wrapf(ErrInvalidConfiguration, "shots must be a positive integer, got %d", c.Shots)
	}
	return nil
}

func (c Config) maxRetries() int {
	if c.MaxRetries == 0 {
		return DefaultMaxRetries
	}
	return c.MaxRetries
}

func (c Config) graphShots() int {
	if c.GraphShots == 0 {
		return DefaultGraphShots
	}
	return c.GraphShots
}
