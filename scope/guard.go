package scope

import (
	"syscall"

	"github.com/wippyai/scope-runtime/errors"
	"go.uber.org/zap"
)

// ErrorInfo is a caller-owned slot a Guard fills when it catches an error.
// Set WantMessage before the Guard to ask the raise path to render the
// context message and capture the program identity; leave it false to keep
// raising allocation-free. Code is always populated. Out-of-memory carries
// its static message regardless of WantMessage.
type ErrorInfo struct {
	WantMessage bool
	Code        syscall.Errno
	Message     string
	Program     string
}

// handler pairs an error boundary with the scope it destroys when it
// catches. Handlers form a stack through prev; the runtime tracks the
// innermost one.
type handler struct {
	scope *Scope
	ei    *ErrorInfo
	prev  *handler
}

// Guard runs body under a new error boundary and reports whether it raised.
//
// The boundary's scope is pushed as a child of the current scope before
// body runs. If body returns nil, that scope remains current and keeps the
// resources the body acquired alive for the caller. If body returns an
// error, the boundary destroys its scope and everything the body acquired
// beneath it, restores the current scope to the boundary's parent, fills ei
// (which may be nil) and returns true.
//
// The previous boundary is restored in every case; raising never touches
// the handler stack, only the installer does. Guards nest arbitrarily and a
// raise resolves to the innermost one: with the raise propagating as an
// ordinary error return, the first Guard whose body yields the error is by
// construction the nearest installed boundary.
func (rt *Runtime) Guard(body func() error, ei *ErrorInfo) bool {
	hs := rt.Push()
	h := &handler{scope: hs, ei: ei, prev: rt.handler}
	rt.handler = h
	defer func() { rt.handler = h.prev }()

	err := body()
	if err == nil {
		return false
	}

	rt.current = hs.parent
	if derr := hs.Destroy(); derr != nil {
		Logger().Warn("failed to release resources during unwind",
			zap.Error(derr))
	}
	if ei != nil {
		if e, ok := errors.AsError(err); ok {
			ei.Code = e.Code
			ei.Message = e.Msg
			ei.Program = e.Prog
		} else {
			// A foreign error crossed the boundary. Classify it
			// errno-first with an EIO fallback.
			ei.Code = errors.Errno(err)
			ei.Message = ""
			ei.Program = ""
			if ei.WantMessage {
				ei.Message = err.Error()
				ei.Program = rt.prog
			}
		}
	}
	debugf("scope: guard caught %v", err)
	return true
}

// Raise reports a failure to the innermost Guard. The returned error must
// propagate out of the guarded body unmodified:
//
//	return rt.Raise(unix.ENOENT, "profile %q not found", name)
//
// The message is rendered and the program identity captured only when the
// boundary's ErrorInfo asked for them, so callers that never read messages
// never pay for formatting. Raising with no Guard installed is a fatal
// misuse and panics.
func (rt *Runtime) Raise(code syscall.Errno, format string, args ...any) error {
	h := rt.raising()
	if h.ei != nil && h.ei.WantMessage {
		e := errors.New(code, format, args...)
		e.Prog = rt.prog
		return e
	}
	return &errors.Error{Code: code}
}

// RaiseOS reports a failed system call. The errno extracted from err
// becomes the code; the rendered message reads "<context>: <system error>".
func (rt *Runtime) RaiseOS(err error, format string, args ...any) error {
	h := rt.raising()
	if h.ei != nil && h.ei.WantMessage {
		e := errors.OS(err, format, args...)
		e.Prog = rt.prog
		return e
	}
	return &errors.Error{Code: errors.Errno(err)}
}

// RaiseNoMemory reports allocation failure. It performs no allocation and
// no formatting itself: the same static error value is returned every time,
// so handling an allocation failure can never fail for the same reason.
func (rt *Runtime) RaiseNoMemory() error {
	rt.raising()
	return errors.ErrNoMemory
}

// raising asserts an installed boundary. An error raised with no handler
// anywhere cannot unwind to anything; the ownership contract is already
// broken and the process must not continue.
func (rt *Runtime) raising() *handler {
	if rt.handler == nil {
		panic("scope: raise with no error boundary installed")
	}
	return rt.handler
}
