package lifecycle

import (
	"fmt"
	"runtime/debug"
)

// Kind is the disposable shape of a resource as decided by Classify.
type Kind uint8

const (
	// KindUnsupported marks values with no disposable shape.
	KindUnsupported Kind = iota
	// KindAction marks directly invocable values.
	KindAction
	// KindDisconnect marks handles exposing a Disconnect operation.
	KindDisconnect
	// KindDestroy marks values exposing a Destroy operation.
	KindDestroy
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindAction:
		return "Action"
	case KindDisconnect:
		return "Disconnect"
	case KindDestroy:
		return "Destroy"
	default:
		return "Unsupported"
	}
}

// Disconnector is the shape of subscription-like handles: disposal means
// disconnecting them. Extra dispose arguments are ignored for this kind.
type Disconnector interface {
	Disconnect()
}

// Destroyer is the shape of owned objects torn down via Destroy.
// Extra dispose arguments are ignored for this kind.
type Destroyer interface {
	Destroy()
}

// Classify reports the disposable shape of v.
//
// Invocable values (func(), func() error and their variadic forms) are
// KindAction. Otherwise a value implementing Disconnector is
// KindDisconnect, then a value implementing Destroyer is KindDestroy.
// Anything else is KindUnsupported. Classify has no side effects.
func Classify(v any) Kind {
	switch v.(type) {
	case func(), func() error, func(...any), func(...any) error:
		return KindAction
	}

	if _, ok := v.(Disconnector); ok {
		return KindDisconnect
	}
	if _, ok := v.(Destroyer); ok {
		return KindDestroy
	}
	return KindUnsupported
}

// invoke runs the disposal operation selected by kind. A panic inside the
// disposer is recovered and returned as an error carrying the stack at
// the point of the panic; it never escapes to the caller.
//
// args reach only the variadic action forms. Plain actions, Disconnect
// and Destroy take none, matching the add-time contract.
func invoke(kind Kind, resource any, args []any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("disposer panicked: %v\n%s", r, debug.Stack())
		}
	}()

	switch kind {
	case KindAction:
		switch fn := resource.(type) {
		case func():
			fn()
		case func() error:
			err = fn()
		case func(...any):
			fn(args...)
		case func(...any) error:
			err = fn(args...)
		}
	case KindDisconnect:
		resource.(Disconnector).Disconnect()
	case KindDestroy:
		resource.(Destroyer).Destroy()
	default:
		err = &UnsupportedResourceError{Type: fmt.Sprintf("%T", resource)}
	}

	return err
}
