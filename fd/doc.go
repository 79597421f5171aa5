// Package fd acquires file descriptors as scope-owned resources.
//
// Every primitive registers a cleanup record with the runtime's current
// scope before issuing the system call and commits the close action only
// after the call succeeds, so a descriptor can never leak past its scope
// and a failed call never closes anything:
//
//	r, w, err := fd.Pipe(rt)   // both ends close when the scope dies
//	f, err := fd.Open(rt, path, unix.O_RDONLY, 0)
//	dup, err := fd.Dup(rt, f)
//
// All descriptors are acquired with O_CLOEXEC; the engine owns their
// lifetime inside this process only.
//
// A Handle decouples a descriptor's lifetime from the scope that created
// it: the descriptor lives in its own single-purpose scope that survives as
// an ordinary child and is destroyed on its own schedule:
//
//	h, err := fd.NewHandle(rt, f) // duplicate of f in a private scope
//	...
//	err = h.Destroy()             // closes h.FD() independently
//
// Failures raise through the runtime's error boundary: ENOTTY for terminal
// helpers applied to non-terminals, and the failing call's errno otherwise.
package fd
