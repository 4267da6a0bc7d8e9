package usecase

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	// ErrorResourceNotFound marks a missing cluster or log group. Terminal
	// for the operation that hit it, reported, never retried.
	ErrorResourceNotFound ErrorCode = "RESOURCE_NOT_FOUND"
	// ErrorPartialFetch marks a single partition or log type that failed
	// during retrieval while the rest of the run continued.
	ErrorPartialFetch ErrorCode = "PARTIAL_FETCH"
	// ErrorBackendUnavailable marks a failed language-model call. Always
	// recovered into a displayable answer, never raised to the caller.
	ErrorBackendUnavailable ErrorCode = "BACKEND_UNAVAILABLE"
	// ErrorUserAbort marks an interrupted interactive session.
	ErrorUserAbort ErrorCode = "USER_ABORT"
)

type Error struct {
	Code   ErrorCode
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("usecase: %s (%s)", e.Code, e.Reason)
	}
	return fmt.Sprintf("usecase: %s (%s): %v", e.Code, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newError(code ErrorCode, reason string, err error) *Error {
	return &Error{Code: code, Reason: reason, Err: err}
}

// NewUserAbort tags an interrupted interactive session. Callers use it to
// tell a deliberate abort apart from a real failure and terminate cleanly.
func NewUserAbort(err error) *Error {
	return newError(ErrorUserAbort, "interrupted", err)
}

// IsUserAbort reports whether err marks an interrupted session.
func IsUserAbort(err error) bool {
	var ue *Error
	return errors.As(err, &ue) && ue.Code == ErrorUserAbort
}

// resourceNotFounder is implemented by integration errors that stand for a
// missing remote resource. Keeps this package decoupled from SDK error types.
type resourceNotFounder interface {
	ResourceNotFound() bool
}

// IsResourceNotFound reports whether err stands for a missing cluster or
// log group anywhere in its chain.
func IsResourceNotFound(err error) bool {
	var nf resourceNotFounder
	if errors.As(err, &nf) {
		return nf.ResourceNotFound()
	}
	var ue *Error
	return errors.As(err, &ue) && ue.Code == ErrorResourceNotFound
}
