package qrng

import (
	"github.com/alan-christopher/qrng/go/qrng/histogram"
	"github.com/alan-christopher/qrng/go/qrng/source"
	"github.com/pkg/errors"
)

var (
	// ErrInvalidConfiguration reports a bad length, pattern, bit count or
	// alphabet.
	ErrInvalidConfiguration = source.ErrInvalidConfiguration
	// ErrSimulationUnavailable reports that the measurement backend could not
	// be reached or errored.
	ErrSimulationUnavailable = source.ErrSimulationUnavailable
	// ErrSamplingExhausted reports that rejection sampling hit its retry
	// ceiling, which signals a misconfigured alphabet or a broken source.
	ErrSamplingExhausted = errors.New("sampling exhausted")
	// ErrRenderUnavailable reports that a histogram could not be drawn. It is
	// the only recoverable error.
	ErrRenderUnavailable = histogram.ErrRenderUnavailable
)

// Fatal reports whether err should abort a run.
func Fatal(err error) bool {
	return err != nil && !errors.Is(err, ErrRenderUnavailable)
}
