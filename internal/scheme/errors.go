package scheme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"syscall"
)

// RedirectError signals that the caller must re-dispatch on the canonical
// form of a shorthand URL. It is a control signal, not a failure; it is an
// error value so that redirect data can never be mistaken for a page body.
type RedirectError struct {
	URL string
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("redirect to %s", e.URL)
}

// NotFoundError is returned when no handler is registered for the
// authority of the dispatched URL.
type NotFoundError struct {
	URL string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no handler found for %s", e.URL)
}

// IOError wraps a handler failure that originates in local I/O, e.g. a
// missing documentation file. The cause is preserved for diagnostics.
type IOError struct {
	Cause error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("handler I/O error: %v", e.Cause)
}

func (e *IOError) Unwrap() error {
	return e.Cause
}

// Error is deliberately raised by a handler to reject a request, e.g. on a
// malformed query parameter. Message and Code are shown to the user
// verbatim as a page load error.
type Error struct {
	Message string
	Code    int
}

// NewError builds a handler-signaled error.
func NewError(message string, code int) *Error {
	return &Error{Message: message, Code: code}
}

func (e *Error) Error() string {
	return e.Message
}

// isIOError reports whether err comes from the operating system rather
// than from handler logic. Only these get classified as IOError; anything
// else a handler returns crosses the dispatch boundary unmodified.
func isIOError(err error) bool {
	var pathErr *fs.PathError
	var linkErr *os.LinkError
	var errno syscall.Errno

	return errors.As(err, &pathErr) ||
		errors.As(err, &linkErr) ||
		errors.As(err, &errno) ||
		errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, fs.ErrPermission) ||
		errors.Is(err, fs.ErrClosed)
}
