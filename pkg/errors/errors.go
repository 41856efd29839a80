// Package errors provides structured error handling for the pageview engine.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind identifies the category of an error.
type Kind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown Kind = iota
	// KindContentUnavailable indicates the data source returned no content
	// for a requested page index. The slot stays unmaterialized and the
	// materialize attempt is retried on the next layout pass.
	KindContentUnavailable
	// KindInvalidEditBatch indicates an edit batch referenced an index out
	// of bounds or contained a malformed operation. The batch is rejected
	// in full with no partial application.
	KindInvalidEditBatch
	// KindInternal indicates an engine invariant was violated.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindContentUnavailable:
		return "content-unavailable"
	case KindInvalidEditBatch:
		return "invalid-edit-batch"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error represents a structured error in the pageview engine.
type Error struct {
	// Op is the operation that failed (e.g., "registry.Materialize").
	Op string
	// Kind categorizes the error.
	Kind Kind
	// Err is the underlying error, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s [%s]", e.Op, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// E constructs an Error.
func E(op string, kind Kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// Errorf constructs an Error with a formatted underlying message.
func Errorf(op string, kind Kind, format string, args ...any) *Error {
	return &Error{Op: op, Kind: kind, Err: fmt.Errorf(format, args...)}
}

// IsKind reports whether err or any error it wraps is an *Error of the
// given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
