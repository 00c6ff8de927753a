// Package hyptest provides a generic Monte Carlo significance-testing engine.
//
// # Reading Guide
//
// Start with these three files to understand the testing kernel:
//   - test.go: the NullModel interface and the Test engine (PValue loop)
//   - rng.go: seed partitioning for reproducible randomness
//   - permutation.go: the pooled two-group models most variants build on
//
// # Architecture
//
// The engine in test.go depends only on the NullModel interface; one variant
// per test kind implements it:
//   - coin.go: coin-bias test (fair binary resampling)
//   - permutation.go: difference in means / standard deviations by shuffling
//   - resample.go: the with-replacement sibling of the permutation models
//   - correlation.go: paired-data correlation by permuting one side
//   - categorical.go: category-count tests (absolute-deviation and chi-squared)
//   - gof.go: two-group goodness of fit against a pooled estimated pmf
//
// All variants derive their model parameters once at construction and are
// immutable afterwards; every Simulate call reads only those parameters and
// the supplied rand.Rand.
package hyptest
