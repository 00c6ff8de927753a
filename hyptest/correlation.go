package hyptest

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat"
)

// PairedSample is the dataset shape for correlation tests: two sequences
// of equal length whose i-th elements are paired observations.
type PairedSample struct {
	Xs []float64
	Ys []float64
}

// CorrelationPermutation tests whether two paired variables are correlated.
// Statistic: absolute Pearson correlation. Null model: permute one sequence
// while holding the other fixed, breaking the pairing.
type CorrelationPermutation struct {
	observed PairedSample
}

func NewCorrelationPermutation(xs, ys []float64) (*CorrelationPermutation, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("paired sequences must have equal length, got %d and %d", len(xs), len(ys))
	}
	if len(xs) < 2 {
		return nil, fmt.Errorf("correlation requires at least 2 pairs, got %d", len(xs))
	}
	return &CorrelationPermutation{observed: PairedSample{Xs: xs, Ys: ys}}, nil
}

func (t *CorrelationPermutation) Observed() PairedSample {
	return t.observed
}

func (t *CorrelationPermutation) Statistic(data PairedSample) (float64, error) {
	r := stat.Correlation(data.Xs, data.Ys, nil)
	if math.IsNaN(r) {
		return 0, fmt.Errorf("correlation is undefined: a sequence has zero variance")
	}
	return math.Abs(r), nil
}

func (t *CorrelationPermutation) Simulate(rng *rand.Rand) (PairedSample, error) {
	permuted := make([]float64, len(t.observed.Xs))
	copy(permuted, t.observed.Xs)
	rng.Shuffle(len(permuted), func(i, j int) {
		permuted[i], permuted[j] = permuted[j], permuted[i]
	})
	return PairedSample{Xs: permuted, Ys: t.observed.Ys}, nil
}
