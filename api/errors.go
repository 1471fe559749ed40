// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for hioload-fifo.

package api

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidArgument
	ErrCodeNotAFifo
	ErrCodeInvalidMode
	ErrCodeCreateFailed
	ErrCodeAlreadyExists
	ErrCodeOpenFailed
	ErrCodeWriteFailed
	ErrCodeReadFailed
	ErrCodePollFailed
	ErrCodeBusy
	ErrCodeInternal
)

func (c ErrorCode) String() string {
	switch c {
	case ErrCodeOK:
		return "ok"
	case ErrCodeInvalidArgument:
		return "invalid argument"
	case ErrCodeNotAFifo:
		return "not a fifo"
	case ErrCodeInvalidMode:
		return "invalid mode"
	case ErrCodeCreateFailed:
		return "create failed"
	case ErrCodeAlreadyExists:
		return "already exists"
	case ErrCodeOpenFailed:
		return "open failed"
	case ErrCodeWriteFailed:
		return "write failed"
	case ErrCodeReadFailed:
		return "read failed"
	case ErrCodePollFailed:
		return "poll failed"
	case ErrCodeBusy:
		return "busy"
	default:
		return "internal"
	}
}

// Sentinels for errors.Is matching. Matching is by code only, so these must
// never be mutated; build fresh errors with NewError instead.
var (
	ErrInvalidArgument = NewError(ErrCodeInvalidArgument, "invalid argument")
	ErrNotAFifo        = NewError(ErrCodeNotAFifo, "not a fifo")
	ErrInvalidMode     = NewError(ErrCodeInvalidMode, "invalid create mode")
	ErrCreateFailed    = NewError(ErrCodeCreateFailed, "failed to create fifo")
	ErrAlreadyExists   = NewError(ErrCodeAlreadyExists, "fifo already exists")
	ErrOpenFailed      = NewError(ErrCodeOpenFailed, "failed to open fifo")
	ErrWriteFailed     = NewError(ErrCodeWriteFailed, "failed to write fifo")
	ErrReadFailed      = NewError(ErrCodeReadFailed, "failed to read fifo")
	ErrPollFailed      = NewError(ErrCodePollFailed, "failed to poll fifo")
	ErrBusy            = NewError(ErrCodeBusy, "reader already has an active sequence")
)

// Error represents a structured error with code, context and optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if len(e.Context) != 0 {
		fmt.Fprintf(&b, " (context: %+v)", e.Context)
	}
	return b.String()
}

// Unwrap exposes the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error carrying the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// Wrap records err as the cause.
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

// CodeOf returns the code of the first *Error in err's chain, or
// ErrCodeInternal for foreign errors and ErrCodeOK for nil.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ErrCodeOK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrCodeInternal
}
