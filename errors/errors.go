package errors

import (
	stderrors "errors"
	"fmt"
	"syscall"
)

// Error is the structured error used throughout the runtime. Code
// classifies the failure as a platform errno; Msg and Prog exist only when
// the boundary that catches the error asked for a rendered message.
type Error struct {
	Code syscall.Errno
	Msg  string
	Prog string
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Msg == "":
		return e.Code.Error()
	case e.Prog == "":
		return e.Msg
	default:
		return e.Prog + ": " + e.Msg
	}
}

// Unwrap returns the errno carried by the error, so stdlib matching like
// errors.Is(err, unix.ENOENT) sees through the wrapper.
func (e *Error) Unwrap() error {
	return e.Code
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// ErrNoMemory reports allocation failure. It is a shared static value: the
// out-of-memory path must not allocate, so every raise returns this same
// error with its fixed message and no program prefix.
var ErrNoMemory = &Error{Code: syscall.ENOMEM, Msg: "no memory"}

// New builds an error with the given code and a formatted message.
func New(code syscall.Errno, format string, args ...any) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// OS wraps a failed system call. The errno extracted from err becomes the
// code and the message reads "<context>: <system error>".
func OS(err error, format string, args ...any) *Error {
	return &Error{
		Code: Errno(err),
		Msg:  fmt.Sprintf(format, args...) + ": " + err.Error(),
	}
}

// BadFormat reports a rejected format string. The code is EINVAL so callers
// can tell caller mistakes from resource exhaustion.
func BadFormat(format string, args ...any) *Error {
	return New(syscall.EINVAL, format, args...)
}

// AsError extracts an *Error from anywhere in err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Errno extracts the platform error code from err's chain. Errors that
// carry no errno, such as plain errors.New values, classify as EIO.
func Errno(err error) syscall.Errno {
	var errno syscall.Errno
	if stderrors.As(err, &errno) {
		return errno
	}
	return syscall.EIO
}
