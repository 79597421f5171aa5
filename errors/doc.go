// Package errors provides the structured error type raised through the
// scope runtime.
//
// Errors are coded in the errno domain: ENOMEM for allocation failure,
// EINVAL for a rejected format string, and the failing call's own errno for
// operating-system errors. The Error type additionally carries the
// formatted context message and the program identity captured at raise
// time, when the catching boundary asked for them.
//
// Use the convenience constructors:
//
//	err := errors.New(unix.ENOENT, "profile %q not found", name)
//	err := errors.OS(openErr, "open(%q)", path)
//	err := errors.BadFormat("invalid format string %.80s", format)
//
// ErrNoMemory is a shared static value, never built at raise time: the
// out-of-memory path must not allocate.
//
// All errors implement the standard error interface; Unwrap exposes the
// errno so errors.Is(err, unix.ENOENT) works across wrapping.
package errors
