package lifecycle

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/lif0/pkg/utils/errx"
	"github.com/sirupsen/logrus"
)

// Registry accumulates disposable resources and guarantees each is
// released exactly once: individually through its Token, or all at once
// through CleanUp. A registry created with WithLockKey refuses CleanUp
// until Unlock is called with the matching key.
//
// Use New to create a registry. All methods are safe for concurrent use.
type Registry struct {
	mu      sync.Mutex
	tokens  map[*Token]struct{}
	status  Status
	lockKey any
	log     logrus.FieldLogger

	// disposal failures, kept for inspection, never propagated
	errs errx.MultiError

	// chan cleanup done
	chcd chan struct{}
}

// New creates and returns a new active Registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		tokens: make(map[*Token]struct{}),
		status: StatusActive,
		chcd:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// IsActive reports whether the registry still retains resources.
// It becomes false once CleanUp succeeds.
func (r *Registry) IsActive() bool {
	return r.Status() == StatusActive
}

// Status reports the registry's lifecycle state.
func (r *Registry) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// Add registers resource and returns the Token owning it.
//
// A resource of unsupported shape (see Classify) is rejected with an
// *UnsupportedResourceError and nothing is retained. If the registry has
// already been cleaned, the resource is disposed immediately on the
// caller's goroutine instead of being retained, and Add returns
// (nil, nil) - no resource outlives a cleaned registry.
func (r *Registry) Add(resource any) (*Token, error) {
	kind := Classify(resource)
	if kind == KindUnsupported {
		return nil, &UnsupportedResourceError{Type: fmt.Sprintf("%T", resource)}
	}

	r.mu.Lock()
	if r.status == StatusCleaned {
		r.mu.Unlock()

		err := invoke(kind, resource, nil)
		if err != nil {
			r.recordFailure("", kind, resource, err)
		}
		recordDisposal(kind, pathSync, err)
		return nil, nil
	}

	t := &Token{
		reg:      r,
		resource: resource,
		kind:     kind,
		id:       uuid.NewString(),
	}
	r.tokens[t] = struct{}{}
	r.mu.Unlock()

	return t, nil
}

// MustAdd registers every resource and panics on the first rejection.
// Tokens are owned by the registry; use Add when a Token is needed.
func (r *Registry) MustAdd(resources ...any) {
	for i := 0; i < len(resources); i++ {
		if _, err := r.Add(resources[i]); err != nil {
			panic(err)
		}
	}
}

// CleanUp disposes every registered token and moves the registry to
// StatusCleaned. It fails with ErrRegistryLocked while a lock key is set.
// Once cleaned, further CleanUp calls are no-ops.
//
// extraArgs are deliberately NOT forwarded to individual disposers: bulk
// cleanup invokes each disposal with no arguments. Only a direct
// Token.Dispose forwards arguments. Disposal order across tokens is
// unspecified; failures are logged and recorded, never returned.
func (r *Registry) CleanUp(extraArgs ...any) error {
	_ = extraArgs

	r.mu.Lock()
	if r.lockKey != nil {
		r.mu.Unlock()
		return ErrRegistryLocked
	}
	if r.status == StatusCleaned {
		r.mu.Unlock()
		return nil
	}

	r.status = StatusCleaned
	snapshot := r.tokens
	r.tokens = make(map[*Token]struct{})
	r.mu.Unlock()

	for t := range snapshot {
		t.Dispose()
	}

	// broadcast for all who call Wait
	close(r.chcd)
	return nil
}

// Unlock clears the registry's lock key, permitting CleanUp. Unlocking an
// already-unlocked registry is a no-op. A mismatched key fails with
// ErrInvalidUnlockKey and leaves the lock intact.
func (r *Registry) Unlock(key any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.lockKey == nil {
		return nil
	}
	if r.lockKey != key {
		return ErrInvalidUnlockKey
	}

	r.lockKey = nil
	return nil
}

// Wait blocks until CleanUp has completed.
func (r *Registry) Wait() {
	<-r.chcd
}

// Errors returns the disposal failures recorded so far. Failures are an
// observability side channel: a misbehaving disposer never prevents other
// resources from being released.
func (r *Registry) Errors() errx.MultiError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append(errx.MultiError{}, r.errs...)
}

// remove drops t from the token set. Called by the token itself on
// Forget/Dispose; a no-op during bulk cleanup, where the set has already
// been snapshotted away.
func (r *Registry) remove(t *Token) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, t)
}

func (r *Registry) recordFailure(tokenID string, kind Kind, resource any, err error) {
	derr := &DisposalError{Token: tokenID, Kind: kind, Err: err}

	fields := logrus.Fields{
		"kind":          kind.String(),
		"resource_type": fmt.Sprintf("%T", resource),
	}
	if tokenID != "" {
		fields["token"] = tokenID
	}
	r.logger().WithFields(fields).WithError(err).Error("resource disposal failed")

	r.mu.Lock()
	r.errs.Append(derr)
	r.mu.Unlock()
}

func (r *Registry) logger() logrus.FieldLogger {
	if r.log != nil {
		return r.log
	}
	return defaultLogger
}

// Size reports the number of live tokens.
func (r *Registry) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tokens)
}
