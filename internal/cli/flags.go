package cli

import (
	"github.com/alan-christopher/qrng/go/qrng"
	flag "github.com/spf13/pflag"
)

// Options holds the settings that shape a command rather than a batch.
type Options struct {
	ConfigPath string
	LogLevel   string
	LogFormat  string
}

// A binding is a flag whose value, when set, overrides the config file.
type binding struct {
	name string
	copy func(dst, src *qrng.Config)
}

// flags binds the flags of mode onto fs. Values land in fc, which starts as a
// copy of the defaults; Load later copies only the Changed ones.
func flags(fs *flag.FlagSet, mode qrng.Mode, fc *qrng.Config, opts *Options) []binding {
	fs.StringVar(&opts.ConfigPath, "config", "", "A YAML file of settings. Flags override it.")
	fs.StringVar(&opts.LogLevel, "log-level", "info", "The minimum level to log: debug, info, warn or error.")
	fs.StringVar(&opts.LogFormat, "log-format", "console", "The log encoding: console or json.")

	fs.IntVar(&fc.MaxRetries, "max-retries", fc.MaxRetries,
		"The number of rejected draws after which a character gives up.")
	fs.Int64Var(&fc.Seed, "seed", fc.Seed, "Seeds the simulated measurements. 0 seeds from the OS.")
	fs.IntVar(&fc.MaxQubits, "max-qubits", fc.MaxQubits, "The largest register to simulate. 0 uses the simulator default.")
	fs.BoolVar(&fc.Extract, "extract", fc.Extract, "Whiten raw bits through a Toeplitz extractor.")
	fs.StringVar(&fc.Output, "output", fc.Output, "A file to append the batch to, as a framed protobuf record.")
	fs.BoolVar(&fc.Parallel, "parallel", fc.Parallel, "Fetch bits from the backend in bulk.")
	fs.BoolVar(&fc.ShowGraph, "show-graph", fc.ShowGraph, "Draw a histogram of the run.")
	fs.StringVar(&fc.GraphPath, "graph-path", fc.GraphPath, "Write the histogram as a PNG here instead of as text.")
	bs := []binding{
		{"max-retries", func(d, s *qrng.Config) { d.MaxRetries = s.MaxRetries }},
		{"seed", func(d, s *qrng.Config) { d.Seed = s.Seed }},
		{"max-qubits", func(d, s *qrng.Config) { d.MaxQubits = s.MaxQubits }},
		{"extract", func(d, s *qrng.Config) { d.Extract = s.Extract }},
		{"output", func(d, s *qrng.Config) { d.Output = s.Output }},
		{"parallel", func(d, s *qrng.Config) { d.Parallel = s.Parallel }},
		{"show-graph", func(d, s *qrng.Config) { d.ShowGraph = s.ShowGraph }},
		{"graph-path", func(d, s *qrng.Config) { d.GraphPath = s.GraphPath }},
	}

	switch mode {
	case qrng.ModeAlternating:
		fs.IntVarP(&fc.Length, "length", "n", fc.Length, "The number of characters, digits and letters alternating. Must be even.")
		bs = append(bs, binding{"length", func(d, s *qrng.Config) { d.Length = s.Length }})
	case qrng.ModePattern:
		fs.StringVarP(&fc.Pattern, "pattern", "p", fc.Pattern, "A string of D (digit) and L (letter) slots.")
		bs = append(bs, binding{"pattern", func(d, s *qrng.Config) { d.Pattern = s.Pattern }})
	case qrng.ModeBitstring:
		fs.IntVarP(&fc.NumBits, "num-bits", "b", fc.NumBits, "The number of random bits.")
		fs.IntVar(&fc.GraphShots, "graph-shots", fc.GraphShots, "The number of bitstrings sampled for the histogram.")
		bs = append(bs,
			binding{"num-bits", func(d, s *qrng.Config) { d.NumBits = s.NumBits }},
			binding{"graph-shots", func(d, s *qrng.Config) { d.GraphShots = s.GraphShots }})
	}
	if mode != qrng.ModeBitstring {
		fs.IntVarP(&fc.Shots, "shots", "s", fc.Shots, "The number of strings to generate.")
		bs = append(bs, binding{"shots", func(d, s *qrng.Config) { d.Shots = s.Shots }})
	}
	return bs
}

// Load parses args for mode and layers the result: defaults, then the file
// named by --config, then any flags actually given.
func Load(fs *flag.FlagSet, mode qrng.Mode, args []string) (qrng.Config, Options, error) {
	def := qrng.DefaultConfig(mode)
	fc := def
	opts := Options{}
	bs := flags(fs, mode, &fc, &opts)
	if err := fs.Parse(args); err != nil {
		return qrng.Config{}, opts, err
	}

	cfg := def
	if opts.ConfigPath != "" {
		var err error
		if cfg, err = qrng.LoadConfig(opts.ConfigPath, cfg); err != nil {
			return qrng.Config{}, opts, err
		}
	}
	for _, b := range bs {
		if fs.Changed(b.name) {
			b.copy(&cfg, &fc)
		}
	}
	return cfg, opts, nil
}
