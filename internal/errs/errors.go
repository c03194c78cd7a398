// Package errs holds the structured error type shared by internal/sched
// and the public uthreads package (kept internal so both can depend on it
// without uthreads importing internal/sched's error plumbing and without
// internal/sched importing the root package, which would cycle).
//
// Grounded on ehrlich-b-go-ublk's errors.go: a structured *Error carrying
// an operation name and a high-level Code, with Unwrap/Is for
// errors.Is/errors.As, re-themed from block-device fields (DevID/Queue/
// Errno) to thread-library fields (Op/Tid/Code/Inner).
package errs

import (
	"errors"
	"fmt"
)

// Code represents the high-level error categories the reference's
// diagnostic taxonomy distinguishes.
type Code string

const (
	CodeInvalidArgument Code = "invalid argument"
	CodeNoSuchThread    Code = "no such thread"
	CodeCapacity        Code = "capacity exceeded"
	CodeHostFailure     Code = "host failure"
)

// Error is the structured error returned by every fallible Api operation.
type Error struct {
	Op    string // operation that failed, e.g. "Spawn", "Block"
	Tid   int    // offending thread id, -1 if not applicable
	Code  Code
	Msg   string
	Inner error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = string(e.Code)
	}
	if e.Tid >= 0 {
		return fmt.Sprintf("uthreads: %s: %s (tid=%d)", e.Op, msg, e.Tid)
	}
	return fmt.Sprintf("uthreads: %s: %s", e.Op, msg)
}

func (e *Error) Unwrap() error { return e.Inner }

// Is supports errors.Is comparison by Code, matching a sentinel created
// with New(..., code, "") and no tid/op information.
func (e *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == te.Code
}

// New creates a structured error with no associated thread id.
func New(op string, code Code, msg string) *Error {
	return &Error{Op: op, Tid: -1, Code: code, Msg: msg}
}

// NewForThread creates a structured error naming the offending thread id.
func NewForThread(op string, tid int, code Code, msg string) *Error {
	return &Error{Op: op, Tid: tid, Code: code, Msg: msg}
}

// Wrap wraps an arbitrary host-level error as a fatal host failure.
func Wrap(op string, inner error) *Error {
	if inner == nil {
		return nil
	}
	return &Error{Op: op, Tid: -1, Code: CodeHostFailure, Msg: inner.Error(), Inner: inner}
}

// IsCode reports whether err is an *Error with the given Code.
func IsCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
