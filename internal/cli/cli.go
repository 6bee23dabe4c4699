// Package cli holds the plumbing shared by the qrng commands: flags, config
// layering, logging and the generate-report-render loop.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/alan-christopher/qrng/go/qrng"
	"github.com/alan-christopher/qrng/go/qrng/entropy"
	"github.com/alan-christopher/qrng/go/qrng/histogram"
	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
)

// A Command is one of the qrng executables.
type Command struct {
	Name string
	Mode qrng.Mode
	// Rotate follows each Hadamard with RX(π/4).
	Rotate bool
	Stdout io.Writer
	Stderr io.Writer
}

// Main runs c with args and returns the process exit code.
func (c Command) Main(args []string) int {
	fs := flag.NewFlagSet(c.Name, flag.ContinueOnError)
	fs.SetOutput(c.Stderr)
	cfg, opts, err := Load(fs, c.Mode, args)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(c.Stderr, "%s: %v\n", c.Name, err)
		return 1
	}

	logger, err := NewLogger(opts.LogLevel, opts.LogFormat)
	if err != nil {
		fmt.Fprintf(c.Stderr, "%s: %v\n", c.Name, err)
		return 1
	}
	defer logger.Sync()
	undo := zap.ReplaceGlobals(logger.With(zap.String("cmd", c.Name)))
	defer undo()

	if err := c.Execute(cfg); err != nil {
		fmt.Fprintf(c.Stderr, "%s: %v\n", c.Name, err)
		return 1
	}
	return 0
}

// Execute generates one batch per cfg, reports it and, if asked, exports and
// draws it. Only a histogram failure is survivable.
func (c Command) Execute(cfg qrng.Config) error {
	src, err := qrng.NewSource(cfg, c.Rotate)
	if err != nil {
		return err
	}
	r, err := qrng.Run(src, c.Mode, cfg)
	if err != nil {
		return err
	}
	if err := qrng.Report(c.Stdout, r, cfg); err != nil {
		return errors.Wrap(err, "writing report")
	}
	if c.Mode == qrng.ModePattern {
		logUniformity(r.Batch.Samples)
	}
	if cfg.Output != "" {
		if err := appendBatch(cfg.Output, r); err != nil {
			return err
		}
	}
	if cfg.ShowGraph {
		if err := c.render(cfg, r); err != nil {
			if qrng.Fatal(err) {
				return err
			}
			zap.L().Warn("skipping histogram", zap.Error(err))
		}
	}
	return nil
}

func (c Command) render(cfg qrng.Config, r qrng.Result) error {
	values, title := r.Batch.Samples, "Quantum Random Strings / Quantum Random Strings"
	if c.Mode == qrng.ModeBitstring {
		values = r.Distribution
		title = fmt.Sprintf("Quantum Random Bitstring Distribution (%d-bit) / Quantum Random Bitstring Vitaran (%d-bit)",
			cfg.NumBits, cfg.NumBits)
	}
	var rd histogram.Renderer = histogram.Text{W: c.Stdout}
	if cfg.GraphPath != "" {
		rd = histogram.Plot{Path: cfg.GraphPath}
	}
	return rd.Render(title, histogram.Buckets(values))
}

func appendBatch(path string, r qrng.Result) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrap(err, "opening batch output")
	}
	if err := qrng.NewBatchWriter(f).Write(r); err != nil {
		f.Close()
		return errors.Wrapf(err, "appending batch to %s", path)
	}
	return f.Close()
}

// logUniformity logs a χ² goodness of fit for the digits and the letters of
// samples.
func logUniformity(samples []string) {
	digits := make([]float64, len(qrng.Digits.Symbols))
	letters := make([]float64, len(qrng.Letters.Symbols))
	for _, s := range samples {
		for _, ch := range s {
			switch {
			case ch >= '0' && ch <= '9':
				digits[ch-'0']++
			case ch >= 'a' && ch <= 'z':
				letters[ch-'a']++
			}
		}
	}
	dChi, dP := entropy.ChiSquareUniform(digits)
	lChi, lP := entropy.ChiSquareUniform(letters)
	zap.L().Info("uniformity",
		zap.Float64("digits_chi2", dChi), zap.Float64("digits_p", dP),
		zap.Float64("letters_chi2", lChi), zap.Float64("letters_p", lP))
}
