package hyptest

import (
	"errors"
	"fmt"
	"math/rand"
)

// NullModel binds a test statistic to a data-generating procedure consistent
// with a null hypothesis. Implementations derive all model parameters at
// construction time and are immutable afterwards.
//
// The type parameter D is the dataset shape the variant works on (a pair of
// groups, paired sequences, category counts). Simulate must return data of
// the same shape Statistic expects.
type NullModel[D any] interface {
	// Observed returns the dataset the model was constructed with.
	Observed() D

	// Statistic reduces a dataset to a single real-valued summary.
	// Pure: deterministic for identical input, no side effects.
	Statistic(data D) (float64, error)

	// Simulate produces one dataset consistent with the null hypothesis.
	// Each call is independent; it reads only the immutable model
	// parameters and the supplied source of randomness.
	Simulate(rng *rand.Rand) (D, error)
}

// DefaultIterations is the conventional trial count for a quick p-value
// estimate. Callers pass it (or more) to PValue explicitly.
const DefaultIterations = 1000

// Test estimates the probability of observing a test statistic at least as
// extreme as the one actually observed, assuming the null hypothesis holds.
// One instance per test invocation; no cross-instance shared state.
type Test[D any] struct {
	model     NullModel[D]
	rng       *rand.Rand
	observed  float64
	simulated []float64
}

// NewTest constructs a test around a null model and an explicit randomness
// source. The observed statistic is computed exactly once, here.
func NewTest[D any](model NullModel[D], rng *rand.Rand) (*Test[D], error) {
	if model == nil {
		return nil, errors.New("nil null model")
	}
	if rng == nil {
		return nil, errors.New("nil randomness source")
	}
	observed, err := model.Statistic(model.Observed())
	if err != nil {
		return nil, fmt.Errorf("observed statistic: %w", err)
	}
	return &Test[D]{model: model, rng: rng, observed: observed}, nil
}

// ObservedStat returns the statistic computed on the observed data at
// construction. Stable for the lifetime of the Test.
func (t *Test[D]) ObservedStat() float64 {
	return t.observed
}

// PValue runs the given number of independent simulation trials and returns
// the fraction whose statistic is >= the observed one (ties support the
// null). The full simulated-statistic sequence is stored for inspection;
// calling PValue again re-runs the simulation and overwrites it.
func (t *Test[D]) PValue(iterations int) (float64, error) {
	if iterations < 1 {
		return 0, fmt.Errorf("iterations must be positive, got %d", iterations)
	}
	simulated := make([]float64, iterations)
	count := 0
	for i := range simulated {
		data, err := t.model.Simulate(t.rng)
		if err != nil {
			return 0, fmt.Errorf("trial %d: simulate: %w", i, err)
		}
		s, err := t.model.Statistic(data)
		if err != nil {
			return 0, fmt.Errorf("trial %d: statistic: %w", i, err)
		}
		simulated[i] = s
		if s >= t.observed {
			count++
		}
	}
	t.simulated = simulated
	return float64(count) / float64(iterations), nil
}

// MaxSimulatedStat returns the largest statistic seen across the stored
// simulation trials. Errors if PValue has never been called.
func (t *Test[D]) MaxSimulatedStat() (float64, error) {
	if len(t.simulated) == 0 {
		return 0, errors.New("no simulation has been run; call PValue first")
	}
	max := t.simulated[0]
	for _, s := range t.simulated[1:] {
		if s > max {
			max = s
		}
	}
	return max, nil
}

// SimulatedStats returns the statistic sequence from the most recent PValue
// call, one entry per trial, in trial order. Nil before the first call.
// The caller must not mutate the returned slice.
func (t *Test[D]) SimulatedStats() []float64 {
	return t.simulated
}
