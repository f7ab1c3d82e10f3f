// Package sampling provides the probability throttle used to bound how many
// message and reaction events trigger a full profile scan.
package sampling

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Sampler decides whether a single event should be scanned. Each call is an
// independent draw against the given probability; the expected fraction of
// sampled events approximates p, nothing more.
type Sampler interface {
	Hit(p float64) bool
}

type randSampler struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New returns a Sampler seeded from the given value. Tests pass a fixed seed
// to make throttle decisions deterministic.
func New(seed uint64) Sampler {
	return &randSampler{rnd: rand.New(rand.NewPCG(seed, seed))}
}

// NewFromTime returns a Sampler seeded from the current time.
func NewFromTime() Sampler {
	return New(uint64(time.Now().UnixNano()))
}

func (s *randSampler) Hit(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Float64() < p
}

// Always and Never are fixed-outcome samplers for tests and for disabling
// the throttle entirely.
type Always struct{}

func (Always) Hit(float64) bool { return true }

type Never struct{}

func (Never) Hit(float64) bool { return false }
