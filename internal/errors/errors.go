package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode identifies a class of newsdesk failure.
type ErrorCode string

const (
	ErrTransport         ErrorCode = "TRANSPORT"           // per-source fetch failure, recovered
	ErrParse             ErrorCode = "PARSE"               // malformed feed document, recovered
	ErrNoSourcesSelected ErrorCode = "NO_SOURCES_SELECTED" // terminal, before any fetch
	ErrNoArticlesFound   ErrorCode = "NO_ARTICLES_FOUND"   // terminal, after merge
	ErrGeocodeNotFound   ErrorCode = "GEOCODE_NOT_FOUND"   // normal outcome, never surfaced
	ErrCacheCorrupt      ErrorCode = "CACHE_CORRUPT"       // persisted value unreadable, recovered
	ErrInvalidRequest    ErrorCode = "INVALID_REQUEST"
	ErrInternal          ErrorCode = "INTERNAL"
)

// DeskError is a structured error with a code, a user-facing message and an optional cause.
type DeskError struct {
	Code    ErrorCode
	Message string
	Details map[string]any
	Err     error
}

// Error implements the error interface.
func (e *DeskError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DeskError) Unwrap() error {
	return e.Err
}

// NewTransport wraps a failed fetch of a single source.
func NewTransport(url string, err error) *DeskError {
	return &DeskError{
		Code:    ErrTransport,
		Message: fmt.Sprintf("fetch %s", url),
		Details: map[string]any{"url": url},
		Err:     err,
	}
}

// NewParse wraps a feed document that could not be decoded.
func NewParse(err error) *DeskError {
	return &DeskError{
		Code:    ErrParse,
		Message: "malformed feed document",
		Err:     err,
	}
}

// NewNoSourcesSelected is returned before any fetch when the selection is empty.
func NewNoSourcesSelected() *DeskError {
	return &DeskError{
		Code:    ErrNoSourcesSelected,
		Message: "No feed sources selected",
	}
}

// NewNoArticlesFound is returned when every selected source came back empty.
func NewNoArticlesFound() *DeskError {
	return &DeskError{
		Code:    ErrNoArticlesFound,
		Message: "No articles found",
	}
}

// NewGeocodeNotFound reports that no coordinate could be resolved for a place name.
func NewGeocodeNotFound(name string) *DeskError {
	return &DeskError{
		Code:    ErrGeocodeNotFound,
		Message: fmt.Sprintf("no coordinates for %q", name),
		Details: map[string]any{"name": name},
	}
}

// NewCacheCorrupt reports a persisted value that failed to decode.
func NewCacheCorrupt(key string, err error) *DeskError {
	return &DeskError{
		Code:    ErrCacheCorrupt,
		Message: fmt.Sprintf("corrupt value for key %q", key),
		Details: map[string]any{"key": key},
		Err:     err,
	}
}

// NewInvalidRequest creates an error for bad caller input.
func NewInvalidRequest(msg string) *DeskError {
	return &DeskError{
		Code:    ErrInvalidRequest,
		Message: msg,
	}
}

// NewInternal creates an error for unexpected internal failures.
func NewInternal(err error) *DeskError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &DeskError{
		Code:    ErrInternal,
		Message: msg,
	}
}

// Is reports whether err, or anything it wraps, is a DeskError with the given code.
func Is(err error, code ErrorCode) bool {
	var dErr *DeskError
	if stderrors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}

// CodeOf returns the code of the first DeskError in err's chain, or ErrInternal.
func CodeOf(err error) ErrorCode {
	var dErr *DeskError
	if stderrors.As(err, &dErr) {
		return dErr.Code
	}
	return ErrInternal
}
