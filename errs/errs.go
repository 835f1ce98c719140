// Package errs holds the sentinel errors the service layer reports and the
// handlers translate to HTTP statuses.
package errs

import "errors"

var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("resource not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrConflict        = errors.New("conflict")
	ErrInternal        = errors.New("internal error")
)

// Wrapped pairs a sentinel with a human-readable message for the response
// envelope. Internal errors also keep their cause for logging.
type Wrapped struct {
	Sentinel error
	Message  string
	Cause    error
}

func (w *Wrapped) Error() string {
	if w.Cause != nil {
		return w.Message + ": " + w.Cause.Error()
	}
	return w.Message
}

func (w *Wrapped) Unwrap() []error {
	if w.Cause != nil {
		return []error{w.Sentinel, w.Cause}
	}
	return []error{w.Sentinel}
}

// Forbidden builds a forbidden error carrying msg.
func Forbidden(msg string) error { return &Wrapped{Sentinel: ErrForbidden, Message: msg} }

// NotFound builds a not-found error carrying msg.
func NotFound(msg string) error { return &Wrapped{Sentinel: ErrNotFound, Message: msg} }

// InvalidArgument builds an invalid-argument error carrying msg.
func InvalidArgument(msg string) error { return &Wrapped{Sentinel: ErrInvalidArgument, Message: msg} }

// Conflict builds a conflict error carrying msg.
func Conflict(msg string) error { return &Wrapped{Sentinel: ErrConflict, Message: msg} }

// Internal wraps an unexpected failure behind a generic outward message.
func Internal(cause error) error {
	return &Wrapped{Sentinel: ErrInternal, Message: "Internal Server Error", Cause: cause}
}

// Message returns the embedded message when err carries one, or the generic
// internal message otherwise. Internal causes are never leaked.
func Message(err error) string {
	var w *Wrapped
	if errors.As(err, &w) && !errors.Is(err, ErrInternal) {
		return w.Message
	}
	return "Internal Server Error"
}
