// Package apperrors holds the coarse error categories surfaced by the analysis pipeline.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind is a coarse error category shown to callers.
type Kind string

const (
	KindExtraction Kind = "ExtractionError"
	KindInput      Kind = "InputError"
	KindUpstream   Kind = "UpstreamError"
)

var (
	// ErrExtraction matches any error of kind ExtractionError with errors.Is.
	ErrExtraction = &Error{Kind: KindExtraction}
	// ErrInput matches any error of kind InputError with errors.Is.
	ErrInput = &Error{Kind: KindInput}
	// ErrUpstream matches any error of kind UpstreamError with errors.Is.
	ErrUpstream = &Error{Kind: KindUpstream}
)

// Error is a classified pipeline error. Message is human readable, Err is the
// optional underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Extraction reports that no text could be recovered from a document.
func Extraction(msg string) *Error {
	return &Error{Kind: KindExtraction, Message: msg}
}

// Input reports missing or invalid caller input.
func Input(msg string) *Error {
	return &Error{Kind: KindInput, Message: msg}
}

// Upstream reports a failure of an external service. The service error is kept as the cause.
func Upstream(msg string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: msg, Err: err}
}

// KindOf returns the kind of the first *Error in the chain and false if there is none.
func KindOf(err error) (Kind, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind, true
	}
	return "", false
}

// Message returns the human readable part of a classified error, falling back to err.Error().
func Message(err error) string {
	if err == nil {
		return ""
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		if appErr.Message != "" && appErr.Err != nil {
			return fmt.Sprintf("%s: %v", appErr.Message, appErr.Err)
		}
		if appErr.Message != "" {
			return appErr.Message
		}
		if appErr.Err != nil {
			return appErr.Err.Error()
		}
	}
	return err.Error()
}
