package ratelimit_test

import (
	"testing"
	"time"

	"github.com/lif0/go-lifecycle/ratelimit"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func Test_NewPerSourceBucket(t *testing.T) {
	t.Parallel()

	t.Run("err/invalidLimit", func(t *testing.T) {
		t.Parallel()
		// act
		_, err := ratelimit.NewPerSourceBucket[string](0, 1)
		// assert
		assert.ErrorIs(t, err, ratelimit.ErrInvalidLimit)
	})

	t.Run("err/invalidBurst", func(t *testing.T) {
		t.Parallel()
		// act
		_, err := ratelimit.NewPerSourceBucket[string](rate.Limit(1), 0)
		// assert
		assert.ErrorIs(t, err, ratelimit.ErrInvalidLimit)
	})
}

func Test_PerSourceBucket_Allow(t *testing.T) {
	t.Parallel()

	t.Run("ok/burstThenRefuse", func(t *testing.T) {
		t.Parallel()
		// arrange
		l, err := ratelimit.NewPerSourceBucket[string](rate.Limit(1), 2)
		assert.NoError(t, err)
		// act + assert: burst of two, then the bucket is dry
		assert.True(t, l.Allow("a"))
		assert.True(t, l.Allow("a"))
		assert.False(t, l.Allow("a"))
	})

	t.Run("ok/refillsOverTime", func(t *testing.T) {
		t.Parallel()
		// arrange
		clock := newFakeClock()
		l, err := ratelimit.NewPerSourceBucket[string](rate.Limit(1), 1, ratelimit.WithClock(clock.Now))
		assert.NoError(t, err)
		assert.True(t, l.Allow("a"))
		assert.False(t, l.Allow("a"))
		// act
		clock.Advance(1100 * time.Millisecond)
		// assert
		assert.True(t, l.Allow("a"))
	})

	t.Run("ok/sourcesIndependent", func(t *testing.T) {
		t.Parallel()
		// arrange
		l, err := ratelimit.NewPerSourceBucket[string](rate.Limit(1), 1)
		assert.NoError(t, err)
		// act + assert
		assert.True(t, l.Allow("a"))
		assert.False(t, l.Allow("a"))
		assert.True(t, l.Allow("b"))
	})

	t.Run("ok/forget", func(t *testing.T) {
		t.Parallel()
		// arrange
		l, err := ratelimit.NewPerSourceBucket[string](rate.Limit(1), 1)
		assert.NoError(t, err)
		assert.True(t, l.Allow("a"))
		assert.False(t, l.Allow("a"))
		// act
		l.Forget("a")
		// assert
		assert.True(t, l.Allow("a"))
	})

	t.Run("ok/resetDropsAllSources", func(t *testing.T) {
		t.Parallel()
		// arrange
		l, err := ratelimit.NewPerSourceBucket[int](rate.Limit(1), 1)
		assert.NoError(t, err)
		assert.True(t, l.Allow(1))
		assert.True(t, l.Allow(2))
		// act
		l.Reset()
		// assert
		assert.True(t, l.Allow(1))
		assert.True(t, l.Allow(2))
	})
}
