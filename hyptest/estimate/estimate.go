// Package estimate provides small Monte Carlo experiments over point
// estimators: sampling distributions, bias and RMSE comparison, and
// statistical power for the two-group mean test.
package estimate

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Estimator reduces a sample to a single parameter estimate.
type Estimator func(sample []float64) float64

// Mean is the sample mean estimator.
func Mean(sample []float64) float64 {
	return stat.Mean(sample, nil)
}

// Median is the sample median estimator.
func Median(sample []float64) float64 {
	sorted := make([]float64, len(sample))
	copy(sorted, sample)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// VarianceBiased is the maximum-likelihood variance estimator (divides by n).
// It systematically underestimates the population variance on small samples.
func VarianceBiased(sample []float64) float64 {
	n := float64(len(sample))
	return stat.Variance(sample, nil) * (n - 1) / n
}

// VarianceUnbiased is the standard sample variance estimator (divides by n-1).
func VarianceUnbiased(sample []float64) float64 {
	return stat.Variance(sample, nil)
}

// SamplingDistribution simulates experiments experiments of n draws from gen
// and applies est to each, returning the sequence of estimates. The sequence
// approximates the estimator's sampling distribution.
func SamplingDistribution(gen func(rng *rand.Rand) float64, est Estimator, n, experiments int, rng *rand.Rand) ([]float64, error) {
	if gen == nil || est == nil {
		return nil, fmt.Errorf("generator and estimator are required")
	}
	if n < 1 || experiments < 1 {
		return nil, fmt.Errorf("sample size and experiment count must be positive, got %d and %d", n, experiments)
	}
	estimates := make([]float64, experiments)
	sample := make([]float64, n)
	for i := range estimates {
		for j := range sample {
			sample[j] = gen(rng)
		}
		estimates[i] = est(sample)
	}
	return estimates, nil
}

// MeanError is the average signed deviation of the estimates from the true
// parameter. Near zero for an unbiased estimator.
func MeanError(estimates []float64, truth float64) float64 {
	total := 0.0
	for _, e := range estimates {
		total += e - truth
	}
	return total / float64(len(estimates))
}

// RMSE is the root-mean-squared error of the estimates against the true
// parameter.
func RMSE(estimates []float64, truth float64) float64 {
	total := 0.0
	for _, e := range estimates {
		d := e - truth
		total += d * d
	}
	return math.Sqrt(total / float64(len(estimates)))
}
