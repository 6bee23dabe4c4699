// Package entropy estimates the randomness of generated samples.
package entropy

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Shannon returns the empirical Shannon entropy, in bits, of values treated as
// categorical outcomes. An empty batch has entropy 0.
func Shannon(values []string) float64 {
	counts := make(map[string]float64)
	for _, v := range values {
		counts[v]++
	}
	return fromCounts(counts, float64(len(values)))
}

// Characters returns the Shannon entropy, in bits, of the individual
// characters across all samples.
func Characters(samples []string) float64 {
	counts := make(map[string]float64)
	var total float64
	for _, s := range samples {
		for _, c := range s {
			counts[string(c)]++
			total++
		}
	}
	return fromCounts(counts, total)
}

func fromCounts(counts map[string]float64, total float64) float64 {
	if total == 0 {
		return 0
	}
	p := make([]float64, 0, len(counts))
	for _, c := range counts {
		p = append(p, c/total)
	}
	// stat.Entropy is in nats and skips zero probabilities.
	h := stat.Entropy(p) / math.Ln2
	if h <= 0 {
		return 0
	}
	return h
}

// ChiSquareUniform tests observed category counts against a uniform
// expectation, returning the χ² statistic and the probability of a statistic
// at least that large under uniformity.
func ChiSquareUniform(counts []float64) (chi2, pValue float64) {
	if len(counts) < 2 {
		return 0, 1
	}
	var total float64
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return 0, 1
	}
	expected := make([]float64, len(counts))
	for i := range expected {
		expected[i] = total / float64(len(counts))
	}
	chi2 = stat.ChiSquare(counts, expected)
	dist := distuv.ChiSquared{K: float64(len(counts) - 1)}
	return chi2, dist.Survival(chi2)
}
