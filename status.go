package lifecycle

// Status is the lifecycle state of a Registry.
type Status uint8

const (
	// StatusActive means the registry accepts resources and owns its tokens.
	StatusActive Status = iota
	// StatusCleaned is terminal: every token has been disposed and new
	// resources are disposed immediately instead of being retained.
	StatusCleaned
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusCleaned:
		return "Cleaned"
	default:
		return "Unknown"
	}
}
