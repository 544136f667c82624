package lifecycle

import "sync"

// Token is the ownership handle binding one resource to one Registry
// entry. Tokens are created only by Registry.Add. Both Forget and Dispose
// are terminal and idempotent: the first call clears the held resource
// and removes the token from its registry, a second call is a no-op.
type Token struct {
	mu       sync.Mutex
	reg      *Registry
	resource any
	kind     Kind
	id       string
}

// ID reports the token's identifier, as used in disposal-failure logs.
func (t *Token) ID() string {
	return t.id
}

// Forget releases ownership of the resource without disposing it. The
// token is removed from its registry and the caller becomes responsible
// for the resource's release.
func (t *Token) Forget() {
	if _, ok := t.take(); !ok {
		return
	}
	t.reg.remove(t)
}

// Dispose releases the resource now, on the caller's goroutine. extraArgs
// reach variadic action resources only; Disconnect and Destroy handles
// take none. A disposal failure is logged and recorded on the registry,
// never returned.
func (t *Token) Dispose(extraArgs ...any) {
	resource, ok := t.take()
	if !ok {
		return
	}
	t.reg.remove(t)

	err := invoke(t.kind, resource, extraArgs)
	if err != nil {
		t.reg.recordFailure(t.id, t.kind, resource, err)
	}
	recordDisposal(t.kind, pathSync, err)
}

// take clears the held resource, reporting whether this call was the one
// that cleared it.
func (t *Token) take() (any, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.resource == nil {
		return nil, false
	}
	resource := t.resource
	t.resource = nil
	return resource, true
}
