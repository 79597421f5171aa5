package scope

import (
	"github.com/wippyai/scope-runtime/errors"
	"golang.org/x/sys/unix"
)

// Cleanup is a deferred release action owned by a scope. A record starts
// unarmed: Runtime.Register links it into the current scope before the
// side-effecting acquisition runs, and Commit arms it once the acquisition
// has succeeded. Teardown of an unarmed record is a no-op, so an acquisition
// that fails partway leaves nothing to release and nothing leaked.
type Cleanup struct {
	fn func() error
}

// Commit arms the record with its release action. fn runs exactly once,
// when the owning scope is destroyed. Committing twice, or committing a nil
// action, panics: a record tracks one acquisition.
func (cl *Cleanup) Commit(fn func() error) {
	if fn == nil {
		panic("scope: Commit with a nil action")
	}
	if cl.fn != nil {
		panic("scope: cleanup record committed twice")
	}
	cl.fn = fn
}

// CommitClose arms the record to close fd at teardown. A close that fails
// with EBADF panics: the engine believed it owned an open descriptor, so
// some other path already closed it and the ownership invariants are gone.
// Any other close error surfaces through the combined error of Destroy.
func (cl *Cleanup) CommitClose(fd int) {
	cl.Commit(func() error {
		if err := unix.Close(fd); err != nil {
			if err == unix.EBADF {
				panic("scope: owned descriptor was already closed")
			}
			return errors.OS(err, "close(%d)", fd)
		}
		return nil
	})
}

// teardown runs the committed action, if any.
func (cl *Cleanup) teardown() error {
	if cl.fn == nil {
		return nil
	}
	return cl.fn()
}
