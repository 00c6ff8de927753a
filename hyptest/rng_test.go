package hyptest

import (
	"math"
	"testing"
)

// === StudyKey Tests ===

func TestStudyKey_Creation(t *testing.T) {
	tests := []struct {
		name string
		seed int64
	}{
		{"positive seed", 42},
		{"zero seed", 0},
		{"negative seed", -1},
		{"max int64", math.MaxInt64},
		{"min int64", math.MinInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := NewStudyKey(tt.seed)
			if int64(key) != tt.seed {
				t.Errorf("NewStudyKey(%d) = %d, want %d", tt.seed, key, tt.seed)
			}
		})
	}
}

// === PartitionedRNG Tests ===

func TestPartitionedRNG_DeterministicDerivation(t *testing.T) {
	rng1 := NewPartitionedRNG(NewStudyKey(42))
	rng2 := NewPartitionedRNG(NewStudyKey(42))

	vals1 := make([]float64, 3)
	vals2 := make([]float64, 3)

	for i := 0; i < 3; i++ {
		vals1[i] = rng1.ForSubsystem(SubsystemEstimation).Float64()
	}
	for i := 0; i < 3; i++ {
		vals2[i] = rng2.ForSubsystem(SubsystemEstimation).Float64()
	}

	for i := 0; i < 3; i++ {
		if vals1[i] != vals2[i] {
			t.Errorf("Value %d: got %v and %v, want identical", i, vals1[i], vals2[i])
		}
	}
}

func TestPartitionedRNG_SubsystemIsolation(t *testing.T) {
	// Drawing from one subsystem must not perturb another.
	rngA := NewPartitionedRNG(NewStudyKey(42))
	rngB := NewPartitionedRNG(NewStudyKey(42))

	// rngA interleaves test and estimation draws; rngB draws only estimation.
	var fromA []float64
	for i := 0; i < 5; i++ {
		rngA.ForSubsystem(SubsystemTest).Float64()
		fromA = append(fromA, rngA.ForSubsystem(SubsystemEstimation).Float64())
	}
	var fromB []float64
	for i := 0; i < 5; i++ {
		fromB = append(fromB, rngB.ForSubsystem(SubsystemEstimation).Float64())
	}

	for i := range fromA {
		if fromA[i] != fromB[i] {
			t.Errorf("Value %d: got %v and %v; test draws leaked into the estimation stream", i, fromA[i], fromB[i])
		}
	}
}

func TestPartitionedRNG_TestSubsystemUsesMasterSeed(t *testing.T) {
	key := NewStudyKey(1234)
	p := NewPartitionedRNG(key)

	if got := p.Key(); got != key {
		t.Errorf("Key() = %d, want %d", got, key)
	}

	// Same instance returned on repeated lookups.
	if p.ForSubsystem(SubsystemTest) != p.ForSubsystem(SubsystemTest) {
		t.Error("ForSubsystem returned distinct instances for the same name")
	}
}

func TestPartitionedRNG_TrialSubsystemsDiffer(t *testing.T) {
	p := NewPartitionedRNG(NewStudyKey(42))

	a := p.ForSubsystem(SubsystemTrial(0)).Float64()
	b := p.ForSubsystem(SubsystemTrial(1)).Float64()
	if a == b {
		t.Errorf("trial 0 and trial 1 produced the same first draw %v; streams are correlated", a)
	}
}
