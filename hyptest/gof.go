package hyptest

import (
	"fmt"
	"math"
	"math/rand"
)

// TwoGroupChiSquared tests whether two groups of discrete values follow the
// same distribution. The expected distribution is NOT an external
// theoretical model: it is estimated from the pooled observed sample over
// the value range [lo, hi], and the statistic is the sum of both groups'
// chi-squared deviations from that pooled estimate. The null model shuffles
// the pooled sample and re-splits it at the original group sizes.
//
// Coupling the expected distribution to the pooled sample is deliberate;
// replacing it with a fixed theoretical distribution would test a different
// null hypothesis.
type TwoGroupChiSquared struct {
	pooledGroups
	lo  int
	pmf []float64 // probability per value in [lo, hi], estimated from the pool
}

// NewTwoGroupChiSquared builds the test for values in [lo, hi] inclusive.
// Values are bucketed by rounding to the nearest integer; values outside
// the range are ignored by the statistic. Every value in the range must
// occur in the pooled sample, otherwise its expected count would be zero.
func NewTwoGroupChiSquared(a, b []float64, lo, hi int) (*TwoGroupChiSquared, error) {
	if lo > hi {
		return nil, fmt.Errorf("invalid value range [%d, %d]", lo, hi)
	}
	pg, err := newPooledGroups(a, b)
	if err != nil {
		return nil, err
	}

	counts := make([]float64, hi-lo+1)
	inRange := 0.0
	for _, v := range pg.pool {
		bucket := int(math.Round(v)) - lo
		if bucket < 0 || bucket >= len(counts) {
			continue
		}
		counts[bucket]++
		inRange++
	}
	if inRange == 0 {
		return nil, fmt.Errorf("no pooled values fall in [%d, %d]", lo, hi)
	}
	pmf := make([]float64, len(counts))
	for i, c := range counts {
		if c == 0 {
			return nil, fmt.Errorf("value %d never occurs in the pooled sample; expected count would be zero", lo+i)
		}
		pmf[i] = c / inRange
	}

	return &TwoGroupChiSquared{pooledGroups: pg, lo: lo, pmf: pmf}, nil
}

func (t *TwoGroupChiSquared) Statistic(data GroupPair) (float64, error) {
	chiA, err := t.groupChiSquared(data.A)
	if err != nil {
		return 0, err
	}
	chiB, err := t.groupChiSquared(data.B)
	if err != nil {
		return 0, err
	}
	return chiA + chiB, nil
}

func (t *TwoGroupChiSquared) Simulate(rng *rand.Rand) (GroupPair, error) {
	return t.permute(rng), nil
}

// groupChiSquared computes one group's chi-squared deviation from the
// pooled pmf, counting only values inside the test's range.
func (t *TwoGroupChiSquared) groupChiSquared(values []float64) (float64, error) {
	observed := make([]float64, len(t.pmf))
	inRange := 0.0
	for _, v := range values {
		bucket := int(math.Round(v)) - t.lo
		if bucket < 0 || bucket >= len(observed) {
			continue
		}
		observed[bucket]++
		inRange++
	}
	expected := make([]float64, len(t.pmf))
	for i, p := range t.pmf {
		expected[i] = p * inRange
	}
	return chiSquared(observed, expected)
}
