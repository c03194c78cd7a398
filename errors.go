package uthreads

import "github.com/gopherschool/uthreads/internal/errs"

// Error is the structured error returned by every fallible operation in
// this package. Grounded on ehrlich-b-go-ublk's errors.go: an operation
// name plus a high-level Code, Unwrap/Is-compatible with errors.Is/As.
type Error = errs.Error

// ErrorCode enumerates the taxonomy an Error can carry.
type ErrorCode = errs.Code

const (
	// ErrInvalidArgument covers a non-positive quantum, a nil entry
	// point, blocking/sleeping the main thread, or a non-positive sleep
	// count.
	ErrInvalidArgument = errs.CodeInvalidArgument
	// ErrNoSuchThread covers an id absent from the thread table.
	ErrNoSuchThread = errs.CodeNoSuchThread
	// ErrCapacity covers Spawn with every id already in use.
	ErrCapacity = errs.CodeCapacity
	// ErrHostFailure covers a non-recoverable host-level failure (timer
	// configuration, goroutine/channel setup); the process exits after
	// such an error is logged.
	ErrHostFailure = errs.CodeHostFailure
)

// IsCode reports whether err is an *Error carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	return errs.IsCode(err, code)
}
