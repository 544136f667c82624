package lifecycle

import "github.com/sirupsen/logrus"

// Option configures a Registry created by New.
type Option func(*Registry)

// WithLockKey arms the registry with a lock key: CleanUp fails with
// ErrRegistryLocked until Unlock is called with a matching key. The key
// is opaque to the registry and compared by equality, so it must be a
// comparable value. A nil key leaves the registry unlocked.
//
// Example:
//
//	r := lifecycle.New(lifecycle.WithLockKey("owner-token"))
func WithLockKey(key any) Option {
	return func(r *Registry) {
		r.lockKey = key
	}
}

// WithLogger routes this registry's disposal-failure logs to l instead of
// the package logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(r *Registry) {
		r.log = l
	}
}
