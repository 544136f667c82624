package lifecycle

var (
	defaultRegistry   = New()
	defaultDispatcher = NewDispatcher()
)

// Default returns the package-wide default registry used by Add, MustAdd,
// CleanUp and CleanOnSignal.
func Default() *Registry {
	return defaultRegistry
}

// SetDefault replaces the default registry with a user-provided one
// (e.g. for testing purposes).
func SetDefault(r *Registry) {
	if r != nil {
		defaultRegistry = r
	}
}

// Add registers resource on the default registry.
func Add(resource any) (*Token, error) {
	return defaultRegistry.Add(resource)
}

// MustAdd registers every resource on the default registry, panicking on
// the first rejection.
func MustAdd(resources ...any) {
	defaultRegistry.MustAdd(resources...)
}

// CleanUp disposes everything held by the default registry.
func CleanUp(extraArgs ...any) error {
	return defaultRegistry.CleanUp(extraArgs...)
}

// Defer hands resource to the shared background dispatcher, so its
// disposal runs off the caller's stack. See Dispatcher.Enqueue.
func Defer(resource any, extraArgs ...any) error {
	return defaultDispatcher.Enqueue(resource, extraArgs...)
}
