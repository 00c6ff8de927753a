package hyptest

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// === StudyKey ===

// StudyKey uniquely identifies a reproducible study run.
// Two runs with the same StudyKey and identical inputs MUST produce
// bit-for-bit identical p-values.
type StudyKey int64

// NewStudyKey creates a StudyKey from a seed value.
func NewStudyKey(seed int64) StudyKey {
	return StudyKey(seed)
}

// === Subsystem Constants ===

const (
	// SubsystemTest is the RNG subsystem for hypothesis-test trials.
	// Uses the master seed directly so --seed maps straight onto the
	// simulated null distribution.
	SubsystemTest = "test"

	// SubsystemEstimation is the RNG subsystem for estimation and
	// power experiments.
	SubsystemEstimation = "estimation"
)

// SubsystemTrial returns the subsystem name for trial block N.
// Partitioning trials this way keeps their randomness streams
// uncorrelated if blocks ever run concurrently.
func SubsystemTrial(id int) string {
	return fmt.Sprintf("trial_%d", id)
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// Derivation formula:
//   - For SubsystemTest: uses masterSeed directly
//   - For all other subsystems: masterSeed XOR fnv1a64(subsystemName)
//
// Thread-safety: NOT thread-safe. Must be called from a single goroutine.
type PartitionedRNG struct {
	key        StudyKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a StudyKey.
func NewPartitionedRNG(key StudyKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	var derivedSeed int64
	if name == SubsystemTest {
		derivedSeed = int64(p.key)
	} else {
		// All other subsystems: XOR with hash for isolation.
		derivedSeed = int64(p.key) ^ fnv1a64(name)
	}

	rng := rand.New(rand.NewSource(derivedSeed))
	p.subsystems[name] = rng
	return rng
}

// Key returns the StudyKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() StudyKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
