package estimate

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func normalSample(rng *rand.Rand, n int, mean float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.NormFloat64() + mean
	}
	return out
}

func TestPower_Preconditions(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	a := normalSample(rng, 20, 0)
	b := normalSample(rng, 20, 1)

	if _, err := Power(nil, b, 10, 100, 0.05, rng); err == nil {
		t.Error("empty group accepted, want error")
	}
	if _, err := Power(a, b, 0, 100, 0.05, rng); err == nil {
		t.Error("zero runs accepted, want error")
	}
	if _, err := Power(a, b, 10, 0, 0.05, rng); err == nil {
		t.Error("zero test iterations accepted, want error")
	}
	if _, err := Power(a, b, 10, 100, 0, rng); err == nil {
		t.Error("alpha = 0 accepted, want error")
	}
	if _, err := Power(a, b, 10, 100, 1, rng); err == nil {
		t.Error("alpha = 1 accepted, want error")
	}
}

func TestPower_LargeEffectDetected(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	a := normalSample(rng, 50, 0)
	b := normalSample(rng, 50, 2)

	power, err := Power(a, b, 50, 200, 0.05, rng)
	require.NoError(t, err)
	if power < 0.8 {
		t.Errorf("Power = %v for a 2-sigma effect, want near 1", power)
	}
}

func TestPower_NoEffectNearAlpha(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	a := normalSample(rng, 50, 0)
	b := normalSample(rng, 50, 0)

	power, err := Power(a, b, 50, 200, 0.05, rng)
	require.NoError(t, err)
	// With no real effect the rejection rate should sit near alpha.
	if power > 0.3 {
		t.Errorf("Power = %v with no effect, want near alpha = 0.05", power)
	}
}
