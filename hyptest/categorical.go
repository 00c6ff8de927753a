package hyptest

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// categoricalModel holds the parameters shared by the category-count tests:
// observed counts, the hypothesized category probabilities, the per-category
// expected counts, and the total draw count. The null model draws that many
// independent categorical samples and recounts.
type categoricalModel struct {
	counts   []int
	cdf      []float64
	expected []float64
	draws    int
}

func newCategoricalModel(counts []int, probs []float64) (categoricalModel, error) {
	if len(counts) == 0 {
		return categoricalModel{}, fmt.Errorf("at least one category required")
	}
	draws := 0
	for i, c := range counts {
		if c < 0 {
			return categoricalModel{}, fmt.Errorf("category %d: count must be non-negative, got %d", i, c)
		}
		draws += c
	}
	if draws == 0 {
		return categoricalModel{}, fmt.Errorf("total observed count must be positive")
	}

	// Default to a uniform distribution over the categories.
	if probs == nil {
		probs = make([]float64, len(counts))
		for i := range probs {
			probs[i] = 1.0 / float64(len(counts))
		}
	}
	if len(probs) != len(counts) {
		return categoricalModel{}, fmt.Errorf("probabilities length %d does not match category count %d", len(probs), len(counts))
	}
	total := 0.0
	for i, p := range probs {
		if p < 0 {
			return categoricalModel{}, fmt.Errorf("category %d: probability must be non-negative, got %f", i, p)
		}
		total += p
	}
	if total <= 0 {
		return categoricalModel{}, fmt.Errorf("probabilities must sum to a positive value")
	}

	cdf := make([]float64, len(probs))
	expected := make([]float64, len(probs))
	cumulative := 0.0
	for i, p := range probs {
		cumulative += p / total
		cdf[i] = cumulative
		expected[i] = p / total * float64(draws)
	}
	cdf[len(cdf)-1] = 1.0

	return categoricalModel{counts: counts, cdf: cdf, expected: expected, draws: draws}, nil
}

func (m *categoricalModel) Observed() []int {
	return m.counts
}

func (m *categoricalModel) Simulate(rng *rand.Rand) ([]int, error) {
	counts := make([]int, len(m.cdf))
	for i := 0; i < m.draws; i++ {
		u := rng.Float64()
		idx := sort.SearchFloat64s(m.cdf, u)
		if idx >= len(counts) {
			idx = len(counts) - 1
		}
		counts[idx]++
	}
	return counts, nil
}

// CategoricalTest checks observed category counts against a hypothesized
// distribution using the sum of absolute deviations from the expected
// counts. With a nil probs argument the hypothesized distribution is
// uniform (the classic crooked-die test).
type CategoricalTest struct {
	categoricalModel
}

func NewCategoricalTest(counts []int, probs []float64) (*CategoricalTest, error) {
	m, err := newCategoricalModel(counts, probs)
	if err != nil {
		return nil, err
	}
	return &CategoricalTest{categoricalModel: m}, nil
}

func (t *CategoricalTest) Statistic(counts []int) (float64, error) {
	if len(counts) != len(t.expected) {
		return 0, fmt.Errorf("got %d categories, want %d", len(counts), len(t.expected))
	}
	total := 0.0
	for i, c := range counts {
		total += math.Abs(float64(c) - t.expected[i])
	}
	return total, nil
}

// CategoricalChiSquared shares CategoricalTest's null model but uses the
// chi-squared statistic, which weights large per-category deviations more
// heavily. On the same data the two statistics can reach different
// significance conclusions.
type CategoricalChiSquared struct {
	categoricalModel
}

func NewCategoricalChiSquared(counts []int, probs []float64) (*CategoricalChiSquared, error) {
	m, err := newCategoricalModel(counts, probs)
	if err != nil {
		return nil, err
	}
	return &CategoricalChiSquared{categoricalModel: m}, nil
}

func (t *CategoricalChiSquared) Statistic(counts []int) (float64, error) {
	if len(counts) != len(t.expected) {
		return 0, fmt.Errorf("got %d categories, want %d", len(counts), len(t.expected))
	}
	observed := make([]float64, len(counts))
	for i, c := range counts {
		observed[i] = float64(c)
	}
	return chiSquared(observed, t.expected)
}

// chiSquared sums (observed-expected)^2 / expected over categories.
// A zero expected count is a degenerate model and is reported as an error
// rather than producing Inf or NaN.
func chiSquared(observed, expected []float64) (float64, error) {
	total := 0.0
	for i, e := range expected {
		if e == 0 {
			return 0, fmt.Errorf("category %d: expected count is zero", i)
		}
		d := observed[i] - e
		total += d * d / e
	}
	return total, nil
}

// ChiSquaredPValue returns the analytic upper-tail probability of a
// chi-squared statistic with the given degrees of freedom, for comparing
// simulated p-values against the asymptotic answer.
func ChiSquaredPValue(statistic float64, dof int) (float64, error) {
	if dof < 1 {
		return 0, fmt.Errorf("degrees of freedom must be positive, got %d", dof)
	}
	dist := distuv.ChiSquared{K: float64(dof)}
	return dist.Survival(statistic), nil
}
