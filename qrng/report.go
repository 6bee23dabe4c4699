package qrng

import (
	"fmt"
	"io"
)

// StatusLine renders a bilingual status line:
//
//	<english>: <value>. <second>: <value>
func StatusLine(english, second, value string) string {
	return fmt.Sprintf("%s: %s. %s: %s", english, value, second, value)
}

// Report writes the human-readable summary of r to w.
func Report(w io.Writer, r Result, cfg Config) error {
	var lines []string
	switch r.Batch.Mode {
	case ModeAlternating:
		for _, s := range r.Batch.Samples {
			lines = append(lines, StatusLine(
				fmt.Sprintf("Quantum-generated alphanumeric string (%d chars)", cfg.Length),
				fmt.Sprintf("Quantum se bani alphanumeric string (%d akshar)", cfg.Length),
				s))
		}
	case ModePattern:
		if len(r.Batch.Samples) == 1 {
			lines = append(lines, StatusLine(
				fmt.Sprintf("Generated quantum alphanumeric string for pattern '%s'", cfg.Pattern),
				fmt.Sprintf("Pattern '%s' ke liye quantum alphanumeric string", cfg.Pattern),
				r.Batch.Samples[0]))
		} else {
			lines = append(lines, fmt.Sprintf(
				"Generated %d quantum alphanumeric strings for pattern '%s'. Pattern '%s' ke liye %d quantum alphanumeric strings:",
				len(r.Batch.Samples), cfg.Pattern, cfg.Pattern, len(r.Batch.Samples)))
			for i, s := range r.Batch.Samples {
				lines = append(lines, fmt.Sprintf("%d. %s", i+1, s))
			}
		}
		lines = append(lines, StatusLine(
			"Entropy of generated strings",
			"Banayi gayi strings ki entropy",
			fmt.Sprintf("%.2f bits", r.CharEntropy)))
		lines = append(lines, StatusLine(
			"Entropy of distinct strings",
			"Alag strings ki entropy",
			fmt.Sprintf("%.2f bits", r.Entropy)))
	case ModeBitstring:
		for _, s := range r.Batch.Samples {
			lines = append(lines, StatusLine(
				fmt.Sprintf("Quantum Generated %d-bit Random Number", cfg.NumBits),
				fmt.Sprintf("Quantum se bana %d-bit random number", cfg.NumBits),
				s))
		}
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}
