// Package lifecycle provides deterministic resource-lifecycle management:
// a Registry accumulates disposable resources (callbacks, connections,
// handles) and releases each exactly once, either per resource through its
// Token or all at once through CleanUp. A Registry may carry a lock key
// that forbids mass release until unlocked, and a shared deferred
// Dispatcher releases resources off the caller's stack when that is
// needed. Disposal failures are logged, never propagated.
package lifecycle
