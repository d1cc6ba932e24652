// Package qerr defines the error kinds raised by the compilation
// pipeline. It mirrors the structured-error shape of sentra's
// internal/errors package (a single exported struct carrying a kind
// and a message) rather than ad hoc fmt.Errorf strings, but drops the
// source-location/call-stack fields: this compiler builds its
// expression tree by direct Go construction, not by parsing text, so
// there is no file/line to point at.
package qerr

import "fmt"

// Kind identifies the category of error raised by the core, per the
// error taxonomy in the specification.
type Kind string

const (
	// InvalidArgument covers division by zero, non-positive exponents,
	// malformed samples, and degree > 2 leaking into BQM emission.
	InvalidArgument Kind = "InvalidArgument"
	// MissingPlaceholder is raised when coefficient evaluation
	// encounters a placeholder absent from the feed dictionary.
	MissingPlaceholder Kind = "MissingPlaceholder"
	// InternalInvariant is raised only when a bug has violated an
	// invariant the compiler otherwise guarantees by construction.
	InternalInvariant Kind = "InternalInvariant"
)

// Error is the error type raised at every call site in the core.
type Error struct {
	Kind    Kind
	Message string
	Detail  string // e.g. a placeholder name, a variable name
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Detail)
}

// Is lets errors.Is match on Kind rather than identity: any *Error
// target with the same Kind matches, e.g.
// errors.Is(err, &qerr.Error{Kind: qerr.InvalidArgument}).
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

func NewInvalidArgument(message string, detail string) *Error {
	return &Error{Kind: InvalidArgument, Message: message, Detail: detail}
}

func NewMissingPlaceholder(name string) *Error {
	return &Error{Kind: MissingPlaceholder, Message: "placeholder not present in feed", Detail: name}
}

func NewInternalInvariant(message string, detail string) *Error {
	return &Error{Kind: InternalInvariant, Message: message, Detail: detail}
}
