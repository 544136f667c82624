package lifecycle

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Dispatcher runs disposals off the caller's stack: Enqueue appends a
// request to a FIFO queue consumed by a single reusable background
// worker, so disposals from one dispatcher never overlap and never
// re-enter the caller. The worker goroutine is started lazily on the
// first Enqueue and exits when the queue drains; the next Enqueue starts
// a fresh one. Failures are logged, never propagated.
//
// Registries do not use a Dispatcher themselves - CleanUp is synchronous.
// The dispatcher is for collaborators that must not run disposal code on
// the current goroutine.
type Dispatcher struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   []deferredDisposal
	running bool
	log     logrus.FieldLogger
}

type deferredDisposal struct {
	kind     Kind
	resource any
	args     []any
}

// DispatcherOption configures a Dispatcher created by NewDispatcher.
type DispatcherOption func(*Dispatcher)

// WithDispatcherLogger routes the dispatcher's disposal-failure logs to l
// instead of the package logger.
func WithDispatcherLogger(l logrus.FieldLogger) DispatcherOption {
	return func(d *Dispatcher) {
		d.log = l
	}
}

// NewDispatcher creates an idle Dispatcher. Most callers can use the
// package-level Defer instead of owning a dispatcher.
func NewDispatcher(opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{}
	d.cond = sync.NewCond(&d.mu)
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Enqueue appends a disposal request for resource, starting the worker if
// none is running. extraArgs reach variadic action resources only.
// Resources of unsupported shape are rejected with an
// *UnsupportedResourceError before anything is queued.
func (d *Dispatcher) Enqueue(resource any, extraArgs ...any) error {
	kind := Classify(resource)
	if kind == KindUnsupported {
		return &UnsupportedResourceError{Type: fmt.Sprintf("%T", resource)}
	}

	d.mu.Lock()
	d.queue = append(d.queue, deferredDisposal{kind: kind, resource: resource, args: extraArgs})
	if !d.running {
		d.running = true
		go d.work()
	}
	d.mu.Unlock()

	return nil
}

// Wait blocks until the queue is empty and the worker has gone idle.
func (d *Dispatcher) Wait() {
	d.mu.Lock()
	for d.running || len(d.queue) > 0 {
		d.cond.Wait()
	}
	d.mu.Unlock()
}

// work consumes the queue strictly FIFO and exits once it drains.
func (d *Dispatcher) work() {
	for {
		d.mu.Lock()
		if len(d.queue) == 0 {
			d.running = false
			d.cond.Broadcast()
			d.mu.Unlock()
			return
		}
		entry := d.queue[0]
		d.queue = d.queue[1:]
		d.mu.Unlock()

		err := invoke(entry.kind, entry.resource, entry.args)
		if err != nil {
			d.logger().WithFields(logrus.Fields{
				"kind":          entry.kind.String(),
				"resource_type": fmt.Sprintf("%T", entry.resource),
			}).WithError(err).Error("deferred disposal failed")
		}
		recordDisposal(entry.kind, pathDeferred, err)
	}
}

func (d *Dispatcher) logger() logrus.FieldLogger {
	if d.log != nil {
		return d.log
	}
	return defaultLogger
}
