package internal

import "sync"

// SyncObject guards a value of any type behind a mutex and exposes
// closure-based access to it.
type SyncObject[T any] struct {
	mu sync.RWMutex
	v  T
}

func NewSyncObject[T any](v T) *SyncObject[T] {
	return &SyncObject[T]{v: v}
}

// Mutate runs f with exclusive access to the guarded value.
func (so *SyncObject[T]) Mutate(f func(v *T)) {
	so.mu.Lock()
	defer so.mu.Unlock()

	f(&so.v)
}

// View runs f with shared read access to the guarded value. f must not
// retain references into v past its return.
func (so *SyncObject[T]) View(f func(v T)) {
	so.mu.RLock()
	defer so.mu.RUnlock()

	f(so.v)
}
