package hyptest

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uniformModel is a stub null model whose simulated statistic is a uniform
// draw in [0, 1). Used to exercise the engine independently of any variant.
type uniformModel struct {
	observed float64
}

func (m *uniformModel) Observed() float64 { return m.observed }

func (m *uniformModel) Statistic(data float64) (float64, error) { return data, nil }

func (m *uniformModel) Simulate(rng *rand.Rand) (float64, error) { return rng.Float64(), nil }

func TestNewTest_NilArguments(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	if _, err := NewTest[float64](nil, rng); err == nil {
		t.Error("NewTest(nil model) = nil error, want error")
	}
	if _, err := NewTest[float64](&uniformModel{observed: 0.5}, nil); err == nil {
		t.Error("NewTest(nil rng) = nil error, want error")
	}
}

func TestPValue_AlwaysInUnitInterval(t *testing.T) {
	tests := []struct {
		name       string
		observed   float64
		iterations int
	}{
		{"single trial", 0.5, 1},
		{"observed below all draws", -1.0, 100},
		{"observed above all draws", 2.0, 100},
		{"many trials", 0.5, 10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			test, err := NewTest[float64](&uniformModel{observed: tt.observed}, rand.New(rand.NewSource(42)))
			require.NoError(t, err)
			p, err := test.PValue(tt.iterations)
			require.NoError(t, err)
			if p < 0 || p > 1 {
				t.Errorf("PValue(%d) = %v, want in [0, 1]", tt.iterations, p)
			}
		})
	}
}

func TestPValue_TieCountsForNull(t *testing.T) {
	// Every simulated statistic equals the observed one, so with the
	// >= comparison the p-value must be exactly 1.
	model := &constModel{value: 3.0}
	test, err := NewTest[float64](model, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	p, err := test.PValue(500)
	require.NoError(t, err)
	assert.Equal(t, 1.0, p)
}

type constModel struct {
	value float64
}

func (m *constModel) Observed() float64 { return m.value }

func (m *constModel) Statistic(data float64) (float64, error) { return data, nil }

func (m *constModel) Simulate(_ *rand.Rand) (float64, error) { return m.value, nil }

func TestPValue_NonPositiveIterations(t *testing.T) {
	test, err := NewTest[float64](&uniformModel{observed: 0.5}, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	for _, k := range []int{0, -1, -1000} {
		if _, err := test.PValue(k); err == nil {
			t.Errorf("PValue(%d) = nil error, want error", k)
		}
	}
}

func TestPValue_DeterministicForSameSeed(t *testing.T) {
	run := func(seed int64) float64 {
		test, err := NewTest[float64](&uniformModel{observed: 0.8}, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)
		p, err := test.PValue(1000)
		require.NoError(t, err)
		return p
	}
	assert.Equal(t, run(7), run(7))
	// Different seeds almost surely disagree on 1000 uniform trials.
	if run(7) == run(8) && run(7) == run(9) {
		t.Error("three different seeds produced identical p-values; rng is not wired through")
	}
}

func TestObservedStat_StableAcrossReruns(t *testing.T) {
	test, err := NewTest[float64](&uniformModel{observed: 0.8}, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	before := test.ObservedStat()
	for i := 0; i < 3; i++ {
		_, err := test.PValue(100)
		require.NoError(t, err)
		assert.Equal(t, before, test.ObservedStat())
	}
}

func TestPValue_OverwritesStoredSequence(t *testing.T) {
	test, err := NewTest[float64](&uniformModel{observed: 0.5}, rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	_, err = test.PValue(100)
	require.NoError(t, err)
	assert.Len(t, test.SimulatedStats(), 100)

	_, err = test.PValue(250)
	require.NoError(t, err)
	assert.Len(t, test.SimulatedStats(), 250)
}

func TestMaxSimulatedStat_RequiresSimulation(t *testing.T) {
	test, err := NewTest[float64](&uniformModel{observed: 0.5}, rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	if _, err := test.MaxSimulatedStat(); err == nil {
		t.Fatal("MaxSimulatedStat before PValue = nil error, want error")
	}

	_, err = test.PValue(1000)
	require.NoError(t, err)

	max, err := test.MaxSimulatedStat()
	require.NoError(t, err)

	want := test.SimulatedStats()[0]
	for _, s := range test.SimulatedStats() {
		if s > want {
			want = s
		}
	}
	assert.Equal(t, want, max)
}
