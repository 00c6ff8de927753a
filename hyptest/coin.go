package hyptest

import (
	"fmt"
	"math"
	"math/rand"
)

// CoinCounts is the dataset shape for the coin-bias test: outcome counts
// from a sequence of binary flips.
type CoinCounts struct {
	Heads int
	Tails int
}

// CoinTest checks whether a coin is biased. The statistic is the absolute
// difference between the two outcome counts; the null model flips a fair
// coin the same total number of times and recounts.
type CoinTest struct {
	observed CoinCounts
	flips    int
}

// NewCoinTest builds a coin-bias test from observed outcome counts.
func NewCoinTest(heads, tails int) (*CoinTest, error) {
	if heads < 0 || tails < 0 {
		return nil, fmt.Errorf("outcome counts must be non-negative, got heads=%d tails=%d", heads, tails)
	}
	if heads+tails == 0 {
		return nil, fmt.Errorf("at least one flip required")
	}
	return &CoinTest{
		observed: CoinCounts{Heads: heads, Tails: tails},
		flips:    heads + tails,
	}, nil
}

func (c *CoinTest) Observed() CoinCounts {
	return c.observed
}

func (c *CoinTest) Statistic(data CoinCounts) (float64, error) {
	return math.Abs(float64(data.Heads - data.Tails)), nil
}

func (c *CoinTest) Simulate(rng *rand.Rand) (CoinCounts, error) {
	heads := 0
	for i := 0; i < c.flips; i++ {
		if rng.Intn(2) == 0 {
			heads++
		}
	}
	return CoinCounts{Heads: heads, Tails: c.flips - heads}, nil
}
