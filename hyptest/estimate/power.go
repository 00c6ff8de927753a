package estimate

import (
	"fmt"
	"math/rand"

	"github.com/hyposim/hyposim/hyptest"
)

// Power estimates the statistical power of the difference-in-means
// permutation test on the observed two-group data: the probability that the
// test rejects at significance level alpha when the observed effect is
// real. Each run resamples both groups with replacement from themselves
// (preserving the observed effect), runs the test with testIterations
// trials, and counts rejections. Returns the rejection fraction; the
// false-negative rate is its complement.
func Power(a, b []float64, runs, testIterations int, alpha float64, rng *rand.Rand) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, fmt.Errorf("both groups must be non-empty, got %d and %d", len(a), len(b))
	}
	if runs < 1 || testIterations < 1 {
		return 0, fmt.Errorf("run and iteration counts must be positive, got %d and %d", runs, testIterations)
	}
	if alpha <= 0 || alpha >= 1 {
		return 0, fmt.Errorf("alpha must be in (0, 1), got %f", alpha)
	}

	rejections := 0
	for i := 0; i < runs; i++ {
		resampledA := resampleWithReplacement(a, rng)
		resampledB := resampleWithReplacement(b, rng)
		model, err := hyptest.NewDiffMeansPermutation(resampledA, resampledB)
		if err != nil {
			return 0, fmt.Errorf("run %d: %w", i, err)
		}
		test, err := hyptest.NewTest[hyptest.GroupPair](model, rng)
		if err != nil {
			return 0, fmt.Errorf("run %d: %w", i, err)
		}
		p, err := test.PValue(testIterations)
		if err != nil {
			return 0, fmt.Errorf("run %d: %w", i, err)
		}
		if p < alpha {
			rejections++
		}
	}
	return float64(rejections) / float64(runs), nil
}

func resampleWithReplacement(values []float64, rng *rand.Rand) []float64 {
	out := make([]float64, len(values))
	for i := range out {
		out[i] = values[rng.Intn(len(values))]
	}
	return out
}
