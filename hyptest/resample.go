package hyptest

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat"
)

// DiffMeansResample is the with-replacement sibling of DiffMeansPermutation.
// Its null hypothesis is that both groups are independent draws from the
// same population, estimated by the pooled sample; the permutation model's
// null is that the group labels are exchangeable. The two models are not
// interchangeable and generally yield different p-values on the same data.
type DiffMeansResample struct {
	pooledGroups
}

func NewDiffMeansResample(a, b []float64) (*DiffMeansResample, error) {
	pg, err := newPooledGroups(a, b)
	if err != nil {
		return nil, err
	}
	return &DiffMeansResample{pooledGroups: pg}, nil
}

func (t *DiffMeansResample) Statistic(data GroupPair) (float64, error) {
	return math.Abs(stat.Mean(data.A, nil) - stat.Mean(data.B, nil)), nil
}

func (t *DiffMeansResample) Simulate(rng *rand.Rand) (GroupPair, error) {
	return t.resample(rng), nil
}
