// Package sigerr implements the closed error taxonomy shared by every
// sigscan package: a fixed set of (domain, code) pairs plus a
// context-chaining error type in the style of a typed-error family
// (IndexingError/ParseError/...), generalized to one Kind-parameterized
// type since the taxonomy here is closed rather than open-ended.
package sigerr

import (
	"errors"
	"fmt"
)

// Domain is the error domain half of a Kind.
type Domain string

const (
	Argument Domain = "argument"
	Runtime  Domain = "runtime"
	Memory   Domain = "memory"
	IO       Domain = "io"
	Input    Domain = "input"
)

// Code is the domain-specific code half of a Kind.
type Code string

const (
	// Argument codes.
	InvalidValue       Code = "invalid_value"
	ValueLessThanZero  Code = "value_less_than_zero"
	ValueZeroOrLess    Code = "value_zero_or_less"
	ValueExceedsMax    Code = "value_exceeds_maximum"
	ValueTooSmall      Code = "value_too_small"
	ValueTooLarge      Code = "value_too_large"
	ValueOutOfBounds   Code = "value_out_of_bounds"
	UnsupportedValue   Code = "unsupported_value"
	ConflictingValue   Code = "conflicting_value"

	// Runtime codes.
	ValueMissing      Code = "value_missing"
	ValueAlreadySet   Code = "value_already_set"
	InitializeFailed  Code = "initialize_failed"
	ResizeFailed      Code = "resize_failed"
	FinalizeFailed    Code = "finalize_failed"
	GetFailed         Code = "get_failed"
	SetFailed         Code = "set_failed"
	AppendFailed      Code = "append_failed"
	AbortRequested    Code = "abort_requested"

	// Memory codes.
	Insufficient Code = "insufficient"
	CopyFailed   Code = "copy_failed"

	// IO codes.
	OpenFailed  Code = "open_failed"
	CloseFailed Code = "close_failed"
	SeekFailed  Code = "seek_failed"
	ReadFailed  Code = "read_failed"

	// Input codes.
	InvalidData Code = "invalid_data"
)

// Kind is a (domain, code) pair drawn from the closed taxonomy in spec §7.
// Both ARGUMENT and RUNTIME reuse ValueOutOfBounds/UnsupportedValue; the
// Domain field disambiguates them.
type Kind struct {
	Domain Domain
	Code   Code
}

func (k Kind) String() string { return string(k.Domain) + "/" + string(k.Code) }

// Error is the single error type used throughout sigscan. It chains
// human-readable context frames through errors.Unwrap the way a family of
// typed errors would, but keeps the Kind closed and explicit instead of
// one struct per call site.
type Error struct {
	Kind    Kind
	Frames  []string
	wrapped error
}

// New creates a new Error of the given kind with one context frame.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Frames: []string{fmt.Sprintf(format, args...)}}
}

// Wrap creates a new Error of the given kind, chaining an underlying error.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Frames: []string{fmt.Sprintf(format, args...)}, wrapped: err}
}

// WithContext appends another human-readable frame, e.g. when a higher
// layer wants to add its own call-site description before propagating.
func (e *Error) WithContext(format string, args ...any) *Error {
	e2 := *e
	e2.Frames = append(append([]string{}, e.Frames...), fmt.Sprintf(format, args...))
	return &e2
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	for _, f := range e.Frames {
		msg += ": " + f
	}
	if e.wrapped != nil {
		msg += ": " + e.wrapped.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.wrapped }

// Is reports whether err carries the given Kind.
func Is(err error, kind Kind) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind == kind
	}
	return false
}
