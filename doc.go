// Package scoperuntime provides deterministic, scope-based ownership of
// process resources.
//
// Every acquired resource is registered with a scope, whether it is a byte
// buffer, an open file descriptor, an advisory lock or an arbitrary release
// action. Scopes nest into a tree, and destroying a scope releases
// everything registered under it in reverse acquisition order, exactly
// once, on both the normal path and the error-unwind path.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	scoperuntime/        Root package (documentation only)
//	├── scope/           The core: Runtime, the scope tree, cleanup records,
//	│                    error boundaries and the allocation primitives
//	├── errors/          Structured errno-coded error type raised by the core
//	├── fd/              Scope-owned file descriptors: open, pipe, dup,
//	│                    detachable handles, blocking-mode and tty helpers
//	├── dbglock/         Reentrant advisory lock serializing diagnostics
//	│                    across processes
//	└── proc/            Process entry boundary: root scope, outermost error
//	                     handler, exit-status reporting
//
// # Quick Start
//
// Build a runtime, acquire under scopes, let teardown release:
//
//	rt := scope.New(scope.WithProgram("demo"))
//	defer rt.Close()
//
//	s := rt.Push()
//	defer rt.Leave(s)
//
//	f, err := fd.Open(rt, "/etc/hosts", unix.O_RDONLY, 0)
//	if err != nil {
//	    return err
//	}
//	// read from f; it closes when s is destroyed
//
// # Error Boundaries
//
// Failures raised by the primitives propagate as ordinary Go errors to the
// nearest Guard, which destroys everything the guarded body acquired before
// reporting:
//
//	var ei scope.ErrorInfo
//	ei.WantMessage = true
//	if rt.Guard(func() error {
//	    _, err := fd.Open(rt, path, unix.O_RDONLY, 0)
//	    return err
//	}, &ei) {
//	    fmt.Fprintf(os.Stderr, "%s: %s\n", ei.Program, ei.Message)
//	}
//
// # Two-Phase Registration
//
// Acquisitions follow register-then-commit: the cleanup record is linked
// into the current scope before the side-effecting call, and armed with the
// release action only after the call succeeds. A failed call leaves an
// unarmed record that teardown skips, so a partially performed acquisition
// can never leak or double-release.
//
// # Thread Safety
//
// A Runtime, its scopes and its error boundaries belong to one goroutine.
// Nothing in the core locks; use one Runtime per logical thread of control.
package scoperuntime
