package lifecycle_test

import (
	"sync"
	"testing"

	lifecycle "github.com/lif0/go-lifecycle"
	"github.com/stretchr/testify/assert"
)

func Test_Dispatcher_Enqueue(t *testing.T) {
	t.Parallel()

	t.Run("ok/strictFIFO", func(t *testing.T) {
		t.Parallel()
		// arrange
		d := lifecycle.NewDispatcher()
		var mu sync.Mutex
		var order []int
		// act
		for i := 0; i < 50; i++ {
			i := i
			err := d.Enqueue(func() {
				mu.Lock()
				order = append(order, i)
				mu.Unlock()
			})
			assert.NoError(t, err)
		}
		d.Wait()
		// assert
		assert.Len(t, order, 50)
		for i, v := range order {
			assert.Equal(t, i, v, "entries must be disposed in enqueue order")
		}
	})

	t.Run("ok/forwardsExtraArgs", func(t *testing.T) {
		t.Parallel()
		// arrange
		d := lifecycle.NewDispatcher()
		var got []any
		// act
		err := d.Enqueue(func(args ...any) { got = args }, "a", 1)
		d.Wait()
		// assert
		assert.NoError(t, err)
		assert.Equal(t, []any{"a", 1}, got)
	})

	t.Run("err/unsupported", func(t *testing.T) {
		t.Parallel()
		// arrange
		d := lifecycle.NewDispatcher()
		// act
		err := d.Enqueue(123)
		// assert
		assert.ErrorIs(t, err, lifecycle.ErrUnsupportedResource)
	})

	t.Run("ok/failureDoesNotStopQueue", func(t *testing.T) {
		t.Parallel()
		// arrange
		d := lifecycle.NewDispatcher(lifecycle.WithDispatcherLogger(discardLogger()))
		var after bool
		// act
		assert.NoError(t, d.Enqueue(func() { panic("disposer exploded") }))
		assert.NoError(t, d.Enqueue(func() { after = true }))
		d.Wait()
		// assert
		assert.True(t, after, "a panicking disposer must not kill the worker")
	})

	t.Run("ok/workerRestartsAfterIdle", func(t *testing.T) {
		t.Parallel()
		// arrange
		d := lifecycle.NewDispatcher()
		var first, second bool
		// act: drain the queue so the worker tears down, then enqueue again
		assert.NoError(t, d.Enqueue(func() { first = true }))
		d.Wait()
		assert.NoError(t, d.Enqueue(func() { second = true }))
		d.Wait()
		// assert
		assert.True(t, first)
		assert.True(t, second)
	})

	t.Run("ok/disposerMayEnqueueMore", func(t *testing.T) {
		t.Parallel()
		// arrange
		d := lifecycle.NewDispatcher()
		var nested bool
		// act: an enqueue from inside a disposer must not deadlock the worker
		assert.NoError(t, d.Enqueue(func() {
			assert.NoError(t, d.Enqueue(func() { nested = true }))
		}))
		d.Wait()
		// assert
		assert.True(t, nested)
	})

	t.Run("race/concurrentEnqueue", func(t *testing.T) {
		t.Parallel()
		// arrange
		d := lifecycle.NewDispatcher()
		const n = 64
		var mu sync.Mutex
		count := 0
		var wg sync.WaitGroup
		wg.Add(n)
		// act
		for i := 0; i < n; i++ {
			go func() {
				defer wg.Done()
				assert.NoError(t, d.Enqueue(func() {
					mu.Lock()
					count++
					mu.Unlock()
				}))
			}()
		}
		wg.Wait()
		d.Wait()
		// assert
		assert.Equal(t, n, count)
	})
}

func Test_Defer(t *testing.T) {
	t.Parallel()

	t.Run("ok/basic", func(t *testing.T) {
		t.Parallel()
		// arrange
		done := make(chan struct{})
		// act
		err := lifecycle.Defer(func() { close(done) })
		// assert
		assert.NoError(t, err)
		<-done
	})

	t.Run("err/unsupported", func(t *testing.T) {
		t.Parallel()
		// act
		err := lifecycle.Defer("nope")
		// assert
		assert.ErrorIs(t, err, lifecycle.ErrUnsupportedResource)
	})
}
