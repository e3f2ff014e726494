package simulation

import (
	"math/rand/v2"
	"sync"
	"time"
)

// RandSource is the randomness the engine draws from. Implementations must be safe for concurrent use.
type RandSource interface {
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
	// IntN returns a value in [0, n).
	IntN(n int) int
}

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRandSource returns a concurrency-safe PCG source. A zero seed is replaced with the current time.
func NewRandSource(seed uint64) RandSource {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &lockedRand{r: rand.New(rand.NewPCG(seed, seed>>1|1))}
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

// uniform draws from [lo, hi).
func uniform(r RandSource, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// chance returns true with probability p.
func chance(r RandSource, p float64) bool {
	return r.Float64() < p
}
