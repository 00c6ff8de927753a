package study

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/hyposim/hyposim/hyptest"
)

// DefaultIterations is used when a spec leaves iterations unset.
const DefaultIterations = hyptest.DefaultIterations

// Result reports one completed study.
type Result struct {
	Name             string
	Test             string
	Iterations       int
	ObservedStat     float64
	PValue           float64
	MaxSimulatedStat float64
}

// Run validates the spec, builds the named test variant, and runs it to a
// p-value. Deterministic given the same spec (including seed).
func Run(spec *Spec) (*Result, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid study spec: %w", err)
	}

	iterations := spec.Iterations
	if iterations == 0 {
		iterations = DefaultIterations
	}

	rng := hyptest.NewPartitionedRNG(hyptest.NewStudyKey(spec.Seed)).ForSubsystem(hyptest.SubsystemTest)
	logrus.Debugf("study %q: test=%s iterations=%d seed=%d", spec.Name, spec.Test, iterations, spec.Seed)

	switch spec.Test {
	case TestCoin:
		model, err := hyptest.NewCoinTest(spec.Heads, spec.Tails)
		if err != nil {
			return nil, err
		}
		return runTest[hyptest.CoinCounts](spec, model, rng, iterations)
	case TestDiffMeans:
		model, err := hyptest.NewDiffMeansPermutation(spec.GroupA, spec.GroupB)
		if err != nil {
			return nil, err
		}
		return runTest[hyptest.GroupPair](spec, model, rng, iterations)
	case TestDiffMeansOneSided:
		model, err := hyptest.NewDiffMeansOneSided(spec.GroupA, spec.GroupB)
		if err != nil {
			return nil, err
		}
		return runTest[hyptest.GroupPair](spec, model, rng, iterations)
	case TestDiffMeansResample:
		model, err := hyptest.NewDiffMeansResample(spec.GroupA, spec.GroupB)
		if err != nil {
			return nil, err
		}
		return runTest[hyptest.GroupPair](spec, model, rng, iterations)
	case TestDiffStd:
		model, err := hyptest.NewDiffStdPermutation(spec.GroupA, spec.GroupB)
		if err != nil {
			return nil, err
		}
		return runTest[hyptest.GroupPair](spec, model, rng, iterations)
	case TestCorrelation:
		model, err := hyptest.NewCorrelationPermutation(spec.Xs, spec.Ys)
		if err != nil {
			return nil, err
		}
		return runTest[hyptest.PairedSample](spec, model, rng, iterations)
	case TestCategorical:
		model, err := hyptest.NewCategoricalTest(spec.Counts, spec.Probs)
		if err != nil {
			return nil, err
		}
		return runTest[[]int](spec, model, rng, iterations)
	case TestCategoricalChi2:
		model, err := hyptest.NewCategoricalChiSquared(spec.Counts, spec.Probs)
		if err != nil {
			return nil, err
		}
		return runTest[[]int](spec, model, rng, iterations)
	case TestTwoGroupChi2:
		model, err := hyptest.NewTwoGroupChiSquared(spec.GroupA, spec.GroupB, spec.Lo, spec.Hi)
		if err != nil {
			return nil, err
		}
		return runTest[hyptest.GroupPair](spec, model, rng, iterations)
	default:
		return nil, fmt.Errorf("unknown test %q", spec.Test)
	}
}

func runTest[D any](spec *Spec, model hyptest.NullModel[D], rng *rand.Rand, iterations int) (*Result, error) {
	test, err := hyptest.NewTest(model, rng)
	if err != nil {
		return nil, err
	}
	p, err := test.PValue(iterations)
	if err != nil {
		return nil, err
	}
	max, err := test.MaxSimulatedStat()
	if err != nil {
		return nil, err
	}
	return &Result{
		Name:             spec.Name,
		Test:             spec.Test,
		Iterations:       iterations,
		ObservedStat:     test.ObservedStat(),
		PValue:           p,
		MaxSimulatedStat: max,
	}, nil
}
