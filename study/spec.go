// Package study loads and runs YAML-described hypothesis-test studies.
package study

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Test kind names accepted in a Spec.
const (
	TestCoin              = "coin"
	TestDiffMeans         = "diff-means"
	TestDiffMeansOneSided = "diff-means-one-sided"
	TestDiffMeansResample = "diff-means-resample"
	TestDiffStd           = "diff-std"
	TestCorrelation       = "correlation"
	TestCategorical       = "categorical"
	TestCategoricalChi2   = "categorical-chi2"
	TestTwoGroupChi2      = "two-group-chi2"
)

var validTests = map[string]bool{
	TestCoin:              true,
	TestDiffMeans:         true,
	TestDiffMeansOneSided: true,
	TestDiffMeansResample: true,
	TestDiffStd:           true,
	TestCorrelation:       true,
	TestCategorical:       true,
	TestCategoricalChi2:   true,
	TestTwoGroupChi2:      true,
}

// twoGroupTests require group_a and group_b.
var twoGroupTests = map[string]bool{
	TestDiffMeans:         true,
	TestDiffMeansOneSided: true,
	TestDiffMeansResample: true,
	TestDiffStd:           true,
	TestTwoGroupChi2:      true,
}

// Spec is the top-level study configuration.
// Loaded from YAML via Load(path).
type Spec struct {
	Name       string `yaml:"name"`
	Test       string `yaml:"test"`
	Iterations int    `yaml:"iterations"`
	Seed       int64  `yaml:"seed"`

	// Two-group tests.
	GroupA []float64 `yaml:"group_a,omitempty"`
	GroupB []float64 `yaml:"group_b,omitempty"`

	// Correlation test.
	Xs []float64 `yaml:"xs,omitempty"`
	Ys []float64 `yaml:"ys,omitempty"`

	// Categorical tests. Probs empty means uniform.
	Counts []int     `yaml:"counts,omitempty"`
	Probs  []float64 `yaml:"probs,omitempty"`

	// Coin test.
	Heads int `yaml:"heads,omitempty"`
	Tails int `yaml:"tails,omitempty"`

	// Two-group goodness of fit: inclusive value range.
	Lo int `yaml:"lo,omitempty"`
	Hi int `yaml:"hi,omitempty"`
}

// Load reads and parses a study spec. Unknown YAML fields are rejected.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading study spec: %w", err)
	}
	return Parse(data)
}

// Parse decodes a study spec from YAML bytes.
func Parse(data []byte) (*Spec, error) {
	var spec Spec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing study spec: %w", err)
	}
	return &spec, nil
}

// Validate checks that the spec names a known test and carries the data
// that test needs. Iterations defaulting is the runner's job; zero is
// allowed here.
func (s *Spec) Validate() error {
	if !validTests[s.Test] {
		return fmt.Errorf("unknown test %q; valid: coin, diff-means, diff-means-one-sided, diff-means-resample, diff-std, correlation, categorical, categorical-chi2, two-group-chi2", s.Test)
	}
	if s.Iterations < 0 {
		return fmt.Errorf("iterations must be non-negative, got %d", s.Iterations)
	}

	switch {
	case s.Test == TestCoin:
		if s.Heads < 0 || s.Tails < 0 {
			return fmt.Errorf("coin: heads and tails must be non-negative, got %d and %d", s.Heads, s.Tails)
		}
		if s.Heads+s.Tails == 0 {
			return fmt.Errorf("coin: at least one flip required")
		}
	case twoGroupTests[s.Test]:
		if len(s.GroupA) == 0 || len(s.GroupB) == 0 {
			return fmt.Errorf("%s: group_a and group_b are required", s.Test)
		}
		if s.Test == TestTwoGroupChi2 && s.Lo > s.Hi {
			return fmt.Errorf("two-group-chi2: invalid value range [%d, %d]", s.Lo, s.Hi)
		}
	case s.Test == TestCorrelation:
		if len(s.Xs) == 0 || len(s.Ys) == 0 {
			return fmt.Errorf("correlation: xs and ys are required")
		}
		if len(s.Xs) != len(s.Ys) {
			return fmt.Errorf("correlation: xs and ys must have equal length, got %d and %d", len(s.Xs), len(s.Ys))
		}
	default: // categorical, categorical-chi2
		if len(s.Counts) == 0 {
			return fmt.Errorf("%s: counts are required", s.Test)
		}
		if len(s.Probs) > 0 && len(s.Probs) != len(s.Counts) {
			return fmt.Errorf("%s: probs length %d does not match counts length %d", s.Test, len(s.Probs), len(s.Counts))
		}
	}
	return nil
}
