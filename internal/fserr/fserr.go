// Package fserr defines the error kinds surfaced by the file system core.
//
// None of these are fatal to the process: every operation returns one of
// these explicitly instead of using panics or exceptions for control flow.
package fserr

import "fmt"

// Kind identifies the class of failure a file system or sort operation
// reports. Kind values are comparable and safe to switch on.
type Kind int

const (
	_ Kind = iota
	AlreadyExists
	NotFound
	NoSpace
	NoContiguousTail
	OutOfRange
	TableFull
	IoError
)

func (k Kind) String() string {
	switch k {
	case AlreadyExists:
		return "AlreadyExists"
	case NotFound:
		return "NotFound"
	case NoSpace:
		return "NoSpace"
	case NoContiguousTail:
		return "NoContiguousTail"
	case OutOfRange:
		return "OutOfRange"
	case TableFull:
		return "TableFull"
	case IoError:
		return "IoError"
	default:
		return "Unknown"
	}
}

// Error wraps a Kind with the operation and name(s) involved, and optionally
// the underlying cause when Kind is IoError.
type Error struct {
	Kind Kind
	Op   string
	Name string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Name, e.Kind, e.Err)
	}
	if e.Name != "" {
		return fmt.Sprintf("%s %s: %s", e.Op, e.Name, e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same Kind, so callers can
// use errors.Is(err, fserr.Sentinel(fserr.NotFound)).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Name == ""
}

// New builds an *Error for a given Kind, operation and name.
func New(kind Kind, op, name string) *Error {
	return &Error{Kind: kind, Op: op, Name: name}
}

// Wrap builds an IoError *Error carrying the underlying cause.
func Wrap(op, name string, err error) *Error {
	return &Error{Kind: IoError, Op: op, Name: name, Err: err}
}

// Sentinel returns a comparison-only *Error of the given Kind, suitable for
// errors.Is(err, fserr.Sentinel(fserr.NotFound)).
func Sentinel(kind Kind) *Error {
	return &Error{Kind: kind}
}
