package bridge

import "fmt"

// CallErrorKind identifies a variant of the closed call error taxonomy.
type CallErrorKind int

const (
	// KindInvalidNumberOfArguments is an arity mismatch detected before
	// the handler runs.
	KindInvalidNumberOfArguments CallErrorKind = iota
	// KindInvalidArgument is a failure decoding one argument into the
	// handler's declared parameter type.
	KindInvalidArgument
	// KindNotFound is a dispatch to an unregistered function name.
	KindNotFound
	// KindOther is a handler-reported error.
	KindOther
)

// CallError is the error surfaced to calling web content when a bridged
// function call fails. Its display text crosses the boundary verbatim, so
// the formats below are part of the wire contract.
type CallError struct {
	// Name is the function name for KindNotFound, or the positional
	// argument name ("arg0", "arg1", ...) for KindInvalidArgument.
	Name     string
	Message  string
	Expected int
	Actual   int
	Kind     CallErrorKind
}

// NotFound reports a dispatch to an unregistered function name.
func NotFound(name string) *CallError {
	return &CallError{Kind: KindNotFound, Name: name}
}

// InvalidNumberOfArguments reports an arity mismatch.
func InvalidNumberOfArguments(expected, actual int) *CallError {
	return &CallError{Kind: KindInvalidNumberOfArguments, Expected: expected, Actual: actual}
}

// InvalidArgument reports a failure decoding the named argument.
func InvalidArgument(argName string, cause error) *CallError {
	return &CallError{Kind: KindInvalidArgument, Name: argName, Message: cause.Error()}
}

// Other reports a handler-level error with its textual form.
func Other(message string) *CallError {
	return &CallError{Kind: KindOther, Message: message}
}

// Error implements the error interface.
func (e *CallError) Error() string {
	switch e.Kind {
	case KindInvalidNumberOfArguments:
		return fmt.Sprintf("Invalid number of arguments, expected %d, got %d", e.Expected, e.Actual)
	case KindInvalidArgument:
		return fmt.Sprintf("Invalid argument %s: %s", e.Name, e.Message)
	case KindNotFound:
		return fmt.Sprintf("Function not found: %s", e.Name)
	default:
		return e.Message
	}
}

// Is reports whether target is a CallError of the same kind.
func (e *CallError) Is(target error) bool {
	if t, ok := target.(*CallError); ok {
		return e.Kind == t.Kind
	}
	return false
}
