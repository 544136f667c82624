// Package ratelimit provides admission control keyed by arbitrary source
// identities: each source (client ID, remote address, API key) gets its
// own budget and is admitted or refused independently of the others.
//
// Three strategies are available: FixedWindow, SlidingWindow and
// PerSourceBucket. All share the Limiter contract, bound their per-source
// state with an LRU so an open set of sources cannot grow memory without
// limit, and support explicit per-source cleanup through Forget.
package ratelimit

import (
	"errors"
	"time"
)

// ErrInvalidLimit is returned by constructors when the admission limit is
// not positive.
var ErrInvalidLimit = errors.New("rate limit must be positive")

// ErrInvalidWindow is returned by window constructors when the window
// duration is not positive.
var ErrInvalidWindow = errors.New("rate window must be positive")

// Limiter is the admission contract shared by all strategies.
type Limiter[K comparable] interface {
	// Allow reports whether one request from source is admitted now.
	Allow(source K) bool

	// Forget drops all state held for source. The next Allow for that
	// source starts from a fresh budget.
	Forget(source K)

	// Reset drops the state of every source.
	Reset()
}

// defaultMaxSources bounds per-source state when WithMaxSources is not
// given.
const defaultMaxSources = 4096

type config struct {
	maxSources int
	now        func() time.Time
}

// Option configures a limiter constructor.
type Option func(*config)

// WithMaxSources bounds how many sources a limiter tracks at once. When
// the bound is exceeded the least recently seen source is evicted, which
// hands it a fresh budget on its next request.
func WithMaxSources(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxSources = n
		}
	}
}

// WithClock replaces the limiter's time source, e.g. for tests.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}

func newConfig(opts ...Option) *config {
	c := &config{
		maxSources: defaultMaxSources,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
