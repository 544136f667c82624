package lifecycle

import (
	"context"
	"io"
)

// Closer adapts an io.Closer into an action resource. The method value
// has an unnamed func type, so Classify accepts it directly:
//
//	token, err := r.Add(lifecycle.Closer(conn))
func Closer(c io.Closer) func() error {
	return c.Close
}

// Cancel adapts a context.CancelFunc into an action resource. Named func
// types such as context.CancelFunc are not part of the closed shape set,
// so they need this conversion before Add.
func Cancel(cancel context.CancelFunc) func() {
	return func() { cancel() }
}

// Attach creates a new instance of type T using the provided factory
// function, registers it on r via MustAdd, and returns it. T must be a
// Destroyer so registration cannot be rejected.
func Attach[T Destroyer](r *Registry, fNew func() T) T {
	instance := fNew()
	r.MustAdd(instance)
	return instance
}
