package ratelimit

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

// PerSourceBucket gives each source its own token bucket: tokens refill
// continuously at the configured rate up to burst, so admission is
// smoother than either window strategy.
type PerSourceBucket[K comparable] struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	now     func() time.Time
	sources *lru.Cache[K, *rate.Limiter]
}

// NewPerSourceBucket creates a token-bucket limiter refilling limit
// tokens per second with capacity burst for each source.
func NewPerSourceBucket[K comparable](limit rate.Limit, burst int, opts ...Option) (*PerSourceBucket[K], error) {
	if limit <= 0 || burst <= 0 {
		return nil, ErrInvalidLimit
	}

	c := newConfig(opts...)
	sources, err := lru.New[K, *rate.Limiter](c.maxSources)
	if err != nil {
		return nil, err
	}

	return &PerSourceBucket[K]{
		limit:   limit,
		burst:   burst,
		now:     c.now,
		sources: sources,
	}, nil
}

// Allow implements Limiter.
func (l *PerSourceBucket[K]) Allow(source K) bool {
	l.mu.Lock()
	lim, ok := l.sources.Get(source)
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.sources.Add(source, lim)
	}
	now := l.now()
	l.mu.Unlock()

	return lim.AllowN(now, 1)
}

// Forget implements Limiter.
func (l *PerSourceBucket[K]) Forget(source K) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sources.Remove(source)
}

// Reset implements Limiter.
func (l *PerSourceBucket[K]) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sources.Purge()
}
