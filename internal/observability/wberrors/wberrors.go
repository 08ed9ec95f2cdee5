// Package wberrors defines the error type used throughout dlist.
//
// Errors are built with Newf, Enrichf and Bubblef instead of `fmt.Errorf`:
//
//   - Newf constructs an error from a formatted message.
//   - Enrichf prefixes context to an error without exposing it through
//     `errors.Unwrap` (like the `%v` verb).
//   - Bubblef prefixes context and exposes the error (like the `%w` verb).
//
// Attr and SkipSentryIf enrich an error and return it for chaining:
//
//	return wberrors.Bubblef(ErrIndexOutOfRange, "insert at %d", index).
//		Attr(slog.Int("index", index)).
//		SkipSentryIf(true)
//
// Enrichment survives Enrichf and Bubblef. It does not survive `fmt.Errorf`
// or `errors.Join`.
package wberrors

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
)

// Attrs returns any slog attrs stored in the error.
func Attrs(err error) []slog.Attr {
	wberr, ok := asError(err)
	if !ok {
		return nil
	}

	attrs := make([]slog.Attr, 0, len(wberr.attrs))
	for key, value := range wberr.attrs {
		attrs = append(attrs, slog.Attr{Key: key, Value: value})
	}
	return attrs
}

// Tags returns the error's attrs as Sentry tags.
func Tags(err error) map[string]string {
	wberr, ok := asError(err)
	if !ok {
		return nil
	}

	tags := make(map[string]string, len(wberr.attrs))
	for key, value := range wberr.attrs {
		tags[key] = value.String()
	}
	return tags
}

// SkipSentry returns true if the error was marked as not needing to be
// captured.
func SkipSentry(err error) bool {
	wberr, ok := asError(err)
	return ok && wberr.noSentry
}

func asError(err error) (*Error, bool) {
	var wberr *Error
	if errors.As(err, &wberr) {
		return wberr, true
	}
	return nil, false
}

// Error is a standard Go error with structured data for logging.
//
// Errors are *not* safe for concurrent use. Construct and enrich an error
// in a single statement; never mutate an error you didn't construct.
type Error struct {
	msg string // error message or context
	err error  // wrapped error or nil

	noSentry bool // whether to skip Sentry upload

	// attrs is structured data to associate to the error.
	//
	// It is appended to the error's log record and uploaded as Sentry tags
	// if the error is captured.
	attrs map[string]slog.Value
}

// Newf creates a new error using Sprintf to construct the message.
func Newf(format string, args ...any) *Error {
	return &Error{msg: fmt.Sprintf(format, args...)}
}

// Enrichf enriches an error without exposing it through `errors.Unwrap`.
//
// Given an empty format string, the resulting error's string representation
// is the same as the given error's. Otherwise, the formatted message is
// prepended to the given error's message with a separating colon.
//
// Attrs and the Sentry flag of an enriched error are copied over.
func Enrichf(err error, format string, args ...any) *Error {
	return wrap(fmt.Sprintf(format, args...), err, false)
}

// Bubblef is like Enrichf, but exposes the given error through `errors.Unwrap`.
//
// Use it for sentinel errors that callers are meant to match with `errors.Is`.
func Bubblef(err error, format string, args ...any) *Error {
	return wrap(fmt.Sprintf(format, args...), err, true)
}

func wrap(msg string, err error, shouldWrap bool) *Error {
	if err == nil {
		panic("wberrors: cannot wrap nil error")
	}

	wrapped := &Error{}

	switch {
	case shouldWrap:
		wrapped.msg = msg
		wrapped.err = err
	case msg == "":
		wrapped.msg = err.Error()
	default:
		wrapped.msg = fmt.Sprintf("%s: %v", msg, err)
	}

	if wberr, ok := err.(*Error); ok {
		wrapped.noSentry = wberr.noSentry
		wrapped.attrs = maps.Clone(wberr.attrs)
	}

	return wrapped
}

// Attr associates structured data to the error and returns the error.
//
// If the error already has an attr with the same key, it is overwritten.
func (e *Error) Attr(attr slog.Attr) *Error {
	if e.attrs == nil {
		e.attrs = make(map[string]slog.Value)
	}

	e.attrs[attr.Key] = attr.Value
	return e
}

// SkipSentryIf marks the error as one that should not be uploaded to Sentry
// if the condition is true, and returns it.
//
// Once set, the mark can't be cleared.
func (e *Error) SkipSentryIf(condition bool) *Error {
	e.noSentry = e.noSentry || condition
	return e
}

// Error implements error.Error.
func (e *Error) Error() string {
	switch {
	case e.err == nil:
		return e.msg
	case e.msg == "":
		return e.err.Error()
	default:
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
}

// Unwrap returns the inner error.
func (e *Error) Unwrap() error {
	return e.err
}
