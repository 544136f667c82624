package lifecycle

import (
	"errors"
	"fmt"
)

// ErrRegistryLocked is returned by CleanUp while the registry still holds
// a lock key. Use errors.Is(err, ErrRegistryLocked) to detect this case.
var ErrRegistryLocked = errors.New("registry is locked, call Unlock with the matching key first")

// ErrInvalidUnlockKey is returned by Unlock when the supplied key does not
// match the one the registry was created with. The lock stays intact.
var ErrInvalidUnlockKey = errors.New("unlock key does not match the registry lock key")

// ErrUnsupportedResource is the sentinel wrapped by UnsupportedResourceError.
// Use errors.Is(err, ErrUnsupportedResource) when the offending type is
// not interesting.
var ErrUnsupportedResource = errors.New("resource is not an action, disconnectable or destroyable value")

// UnsupportedResourceError is returned when a value handed to Add, Defer
// or Dispatcher.Enqueue has no disposable shape. Type names the dynamic
// type of the rejected value.
type UnsupportedResourceError struct {
	Type string
}

func (e *UnsupportedResourceError) Error() string {
	return fmt.Sprintf("cannot register resource of type %s: %v", e.Type, ErrUnsupportedResource)
}

func (e *UnsupportedResourceError) Unwrap() error {
	return ErrUnsupportedResource
}

// DisposalError records one failed disposal: the token it belonged to
// (empty for post-cleanup immediate disposal), the resource kind and the
// underlying failure. These are collected on the owning Registry and
// exposed through Registry.Errors, never returned from Dispose or CleanUp.
type DisposalError struct {
	Token string
	Kind  Kind
	Err   error
}

func (e *DisposalError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("disposal of %s resource failed (token %s): %v", e.Kind, e.Token, e.Err)
	}
	return fmt.Sprintf("disposal of %s resource failed: %v", e.Kind, e.Err)
}

func (e *DisposalError) Unwrap() error {
	return e.Err
}
