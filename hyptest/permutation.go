package hyptest

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat"
)

// GroupPair is the dataset shape for two-group tests.
type GroupPair struct {
	A []float64
	B []float64
}

// pooledGroups holds the model parameters shared by the two-group tests:
// the pooled sample and the original group sizes, derived once at
// construction and never mutated.
type pooledGroups struct {
	observed GroupPair
	pool     []float64
	sizeA    int
}

func newPooledGroups(a, b []float64) (pooledGroups, error) {
	if len(a) == 0 || len(b) == 0 {
		return pooledGroups{}, fmt.Errorf("both groups must be non-empty, got %d and %d", len(a), len(b))
	}
	pool := make([]float64, 0, len(a)+len(b))
	pool = append(pool, a...)
	pool = append(pool, b...)
	return pooledGroups{
		observed: GroupPair{A: a, B: b},
		pool:     pool,
		sizeA:    len(a),
	}, nil
}

func (p *pooledGroups) Observed() GroupPair {
	return p.observed
}

// permute shuffles a copy of the pool and splits it at the original group
// boundary. The pooled multiset is preserved exactly.
func (p *pooledGroups) permute(rng *rand.Rand) GroupPair {
	shuffled := make([]float64, len(p.pool))
	copy(shuffled, p.pool)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return GroupPair{A: shuffled[:p.sizeA], B: shuffled[p.sizeA:]}
}

// resample draws each group independently with replacement from the pool.
// Unlike permute, this treats the pool as an estimated population
// distribution rather than an exchangeable label assignment.
func (p *pooledGroups) resample(rng *rand.Rand) GroupPair {
	draw := func(n int) []float64 {
		out := make([]float64, n)
		for i := range out {
			out[i] = p.pool[rng.Intn(len(p.pool))]
		}
		return out
	}
	return GroupPair{A: draw(p.sizeA), B: draw(len(p.pool) - p.sizeA)}
}

// DiffMeansPermutation tests whether two groups have the same mean.
// Statistic: absolute difference of group means. Null model: permutation
// of the pooled sample.
type DiffMeansPermutation struct {
	pooledGroups
}

func NewDiffMeansPermutation(a, b []float64) (*DiffMeansPermutation, error) {
	pg, err := newPooledGroups(a, b)
	if err != nil {
		return nil, err
	}
	return &DiffMeansPermutation{pooledGroups: pg}, nil
}

func (t *DiffMeansPermutation) Statistic(data GroupPair) (float64, error) {
	return math.Abs(stat.Mean(data.A, nil) - stat.Mean(data.B, nil)), nil
}

func (t *DiffMeansPermutation) Simulate(rng *rand.Rand) (GroupPair, error) {
	return t.permute(rng), nil
}

// DiffMeansOneSided is the one-sided variant: the statistic is the signed
// difference mean(A) - mean(B), so only the upper tail counts as extreme.
type DiffMeansOneSided struct {
	pooledGroups
}

func NewDiffMeansOneSided(a, b []float64) (*DiffMeansOneSided, error) {
	pg, err := newPooledGroups(a, b)
	if err != nil {
		return nil, err
	}
	return &DiffMeansOneSided{pooledGroups: pg}, nil
}

func (t *DiffMeansOneSided) Statistic(data GroupPair) (float64, error) {
	return stat.Mean(data.A, nil) - stat.Mean(data.B, nil), nil
}

func (t *DiffMeansOneSided) Simulate(rng *rand.Rand) (GroupPair, error) {
	return t.permute(rng), nil
}

// DiffStdPermutation tests whether group A is more spread out than group B.
// Statistic: signed difference of sample standard deviations; same pooled
// permutation null model as DiffMeansPermutation.
type DiffStdPermutation struct {
	pooledGroups
}

func NewDiffStdPermutation(a, b []float64) (*DiffStdPermutation, error) {
	if len(a) < 2 || len(b) < 2 {
		return nil, fmt.Errorf("standard deviation requires at least 2 values per group, got %d and %d", len(a), len(b))
	}
	pg, err := newPooledGroups(a, b)
	if err != nil {
		return nil, err
	}
	return &DiffStdPermutation{pooledGroups: pg}, nil
}

func (t *DiffStdPermutation) Statistic(data GroupPair) (float64, error) {
	return stat.StdDev(data.A, nil) - stat.StdDev(data.B, nil), nil
}

func (t *DiffStdPermutation) Simulate(rng *rand.Rand) (GroupPair, error) {
	return t.permute(rng), nil
}
