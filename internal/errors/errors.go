// Package errors defines the error taxonomy shared by the SDK commands.
//
// Every failure surfaced to the user carries a Kind so the command layer can
// pick the right message and exit status without string matching.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind categorises an error.
type Kind string

const (
	KindConfigurationMissing Kind = "configuration_missing"
	KindValidation           Kind = "validation"
	KindIO                   Kind = "io"
	KindProtocolAmbiguous    Kind = "protocol_ambiguous"
	KindTimeout              Kind = "timeout"
	KindCancelled            Kind = "cancelled"
)

// Error is a categorised error with the operation that produced it.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var parts []string
	if e.Op != "" {
		parts = append(parts, e.Op)
	}
	if e.Message != "" {
		parts = append(parts, e.Message)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	if len(parts) == 0 {
		return string(e.Kind)
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind. A target with a
// message only matches errors carrying the same message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Message == "" || t.Message == e.Message
}

func ConfigurationMissing(op, msg string) *Error {
	return &Error{Kind: KindConfigurationMissing, Op: op, Message: msg}
}

func Validation(op, msg string) *Error {
	return &Error{Kind: KindValidation, Op: op, Message: msg}
}

// IO wraps a filesystem failure.
func IO(op string, err error) *Error {
	return &Error{Kind: KindIO, Op: op, Err: err}
}

// IOf wraps a filesystem failure with a formatted message.
func IOf(op string, err error, format string, args ...any) *Error {
	return &Error{Kind: KindIO, Op: op, Message: fmt.Sprintf(format, args...), Err: err}
}

func ProtocolAmbiguous(op, msg string) *Error {
	return &Error{Kind: KindProtocolAmbiguous, Op: op, Message: msg}
}

func Timeout(op, msg string) *Error {
	return &Error{Kind: KindTimeout, Op: op, Message: msg}
}

func Cancelled(op, msg string) *Error {
	return &Error{Kind: KindCancelled, Op: op, Message: msg}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// HasKind reports whether err carries the given kind.
func HasKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
