package screenshot

import (
	"errors"
	"fmt"
)

// Kinds of capture failure. Match them with [errors.Is].
var (
	// ErrNavigation means the page could not be loaded, or the browser could not be started.
	ErrNavigation = errors.New("screenshot: navigation failed")

	// ErrSelectorTimeout means no element matched the selector before the timeout.
	ErrSelectorTimeout = errors.New("screenshot: timed out waiting for selector")

	// ErrCapture means the element was found but could not be captured.
	ErrCapture = errors.New("screenshot: capture failed")
)

// Error describes a failed capture: which kind of failure it was, for which request,
// and the underlying cause reported by the browser (if any).
type Error struct {
	Kind     error
	URL      string
	Selector string
	Err      error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%v (url: %s, selector: %q)", e.Kind, e.URL, e.Selector)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause, so that e.g. both
// errors.Is(err, ErrSelectorTimeout) and errors.Is(err, context.DeadlineExceeded) hold.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, req Request, err error) *Error {
	return &Error{Kind: kind, URL: req.URL, Selector: req.Selector, Err: err}
}
