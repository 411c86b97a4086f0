package pareto

import (
	"math/rand/v2"
	"runtime"
)

// Defaults used when an option is not given.
const (
	DefaultMidpoints = 10
	DefaultSteps     = 100
	DefaultSamples   = 1000
)

// Option configures the tree builders, front sweeps and random sampler.
// Options that do not apply to a call are ignored.
type Option func(*settings)

type settings struct {
	midpoints int
	steps     int
	workers   int
	samples   int
	rng       *rand.Rand
	seed      uint64
	seeded    bool
}

func newSettings(opts []Option) settings {
	s := settings{
		midpoints: DefaultMidpoints,
		steps:     DefaultSteps,
		workers:   runtime.GOMAXPROCS(0),
		samples:   DefaultSamples,
	}
	for _, o := range opts {
		o(&s)
	}
	return s
}

// WithMidpoints sets how many Steiner points the greedy builder inserts
// along each new edge. Zero disables them.
func WithMidpoints(n int) Option {
	return func(s *settings) {
		if n >= 0 {
			s.midpoints = n
		}
	}
}

// WithSteps sets the weight grid resolution of a front sweep: weights are
// multiples of 1/n.
func WithSteps(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.steps = n
		}
	}
}

// WithWorkers bounds the number of samples computed concurrently.
func WithWorkers(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithSamples sets the number of random trees to draw.
func WithSamples(n int) Option {
	return func(s *settings) {
		if n >= 0 {
			s.samples = n
		}
	}
}

// WithRand makes the random sampler draw its base seed from r instead of
// reseeding.
func WithRand(r *rand.Rand) Option {
	return func(s *settings) { s.rng = r }
}

// WithSeed makes the random sampler reproducible.
func WithSeed(seed uint64) Option {
	return func(s *settings) {
		s.seed = seed
		s.seeded = true
	}
}
