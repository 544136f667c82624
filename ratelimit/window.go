package ratelimit

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// FixedWindow admits up to limit requests per source within each window.
// The counter resets at window boundaries, so a burst straddling a
// boundary can briefly see up to 2x limit; use SlidingWindow when that
// matters.
type FixedWindow[K comparable] struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	now     func() time.Time
	sources *lru.Cache[K, *fixedState]
}

type fixedState struct {
	start time.Time
	count int
}

// NewFixedWindow creates a fixed-window limiter admitting limit requests
// per window for each source.
func NewFixedWindow[K comparable](limit int, window time.Duration, opts ...Option) (*FixedWindow[K], error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	if window <= 0 {
		return nil, ErrInvalidWindow
	}

	c := newConfig(opts...)
	sources, err := lru.New[K, *fixedState](c.maxSources)
	if err != nil {
		return nil, err
	}

	return &FixedWindow[K]{
		limit:   limit,
		window:  window,
		now:     c.now,
		sources: sources,
	}, nil
}

// Allow implements Limiter.
func (l *FixedWindow[K]) Allow(source K) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	st, ok := l.sources.Get(source)
	if !ok {
		st = &fixedState{start: now}
		l.sources.Add(source, st)
	}

	if now.Sub(st.start) >= l.window {
		st.start = now
		st.count = 0
	}

	if st.count >= l.limit {
		return false
	}
	st.count++
	return true
}

// Forget implements Limiter.
func (l *FixedWindow[K]) Forget(source K) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sources.Remove(source)
}

// Reset implements Limiter.
func (l *FixedWindow[K]) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sources.Purge()
}

// SlidingWindow admits up to limit requests per source per window,
// smoothing boundary bursts by weighting the previous window's count into
// the current estimate.
type SlidingWindow[K comparable] struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	now     func() time.Time
	sources *lru.Cache[K, *slidingState]
}

type slidingState struct {
	currStart time.Time
	curr      int
	prev      int
}

// NewSlidingWindow creates a sliding-window limiter admitting limit
// requests per window for each source.
func NewSlidingWindow[K comparable](limit int, window time.Duration, opts ...Option) (*SlidingWindow[K], error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	if window <= 0 {
		return nil, ErrInvalidWindow
	}

	c := newConfig(opts...)
	sources, err := lru.New[K, *slidingState](c.maxSources)
	if err != nil {
		return nil, err
	}

	return &SlidingWindow[K]{
		limit:   limit,
		window:  window,
		now:     c.now,
		sources: sources,
	}, nil
}

// Allow implements Limiter.
func (l *SlidingWindow[K]) Allow(source K) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	st, ok := l.sources.Get(source)
	if !ok {
		st = &slidingState{currStart: now}
		l.sources.Add(source, st)
	}

	elapsed := now.Sub(st.currStart)
	switch {
	case elapsed >= 2*l.window:
		// both windows stale
		st.currStart = now
		st.curr = 0
		st.prev = 0
	case elapsed >= l.window:
		st.currStart = st.currStart.Add(l.window)
		st.prev = st.curr
		st.curr = 0
	}

	// weight of the previous window shrinks linearly as the current
	// window fills up
	frac := float64(now.Sub(st.currStart)) / float64(l.window)
	estimate := float64(st.prev)*(1-frac) + float64(st.curr)

	if estimate >= float64(l.limit) {
		return false
	}
	st.curr++
	return true
}

// Forget implements Limiter.
func (l *SlidingWindow[K]) Forget(source K) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sources.Remove(source)
}

// Reset implements Limiter.
func (l *SlidingWindow[K]) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sources.Purge()
}
