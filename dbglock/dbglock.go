package dbglock

import (
	"fmt"
	"os"

	"github.com/wippyai/scope-runtime/scope"
	"golang.org/x/sys/unix"
)

var (
	path  = "/tmp/scope-runtime.lock"
	fd    = -1
	level int
)

// SetPath overrides the lock file location. It must be called before the
// first Acquire in the process; the descriptor is latched on first use.
func SetPath(p string) {
	path = p
}

// Acquire takes the diagnostics lock for the lifetime of the current scope.
//
// The release is registered before the lock is taken, so an unwind at any
// later point drops the lock. Reentrant calls only bump the level: the
// flock itself is taken on the transition to one holder and released on the
// transition back to none.
func Acquire(rt *scope.Runtime) error {
	if fd == -1 {
		nfd, err := unix.Open(path, unix.O_RDWR|unix.O_CREAT|unix.O_CLOEXEC, 0o644)
		if err != nil {
			return rt.RaiseOS(err, "open(%q)", path)
		}
		// The descriptor belongs to the package and stays open for the
		// life of the process; it is deliberately not scope-owned.
		fd = nfd
	}

	cl := rt.Register()
	if level == 0 {
		if err := unix.Flock(fd, unix.LOCK_EX); err != nil {
			return rt.RaiseOS(err, "flock(%q, LOCK_EX)", path)
		}
	}
	level++
	cl.Commit(func() error {
		level--
		if level == 0 {
			return unix.Flock(fd, unix.LOCK_UN)
		}
		return nil
	})
	return nil
}

// Printf writes one serialized "prog(pid): message" line to stderr. The
// lock spans all of the line's writes, so lines from cooperating processes
// never interleave.
func Printf(rt *scope.Runtime, format string, args ...any) error {
	s := rt.Push()
	defer rt.Leave(s)

	if err := Acquire(rt); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "%s(%04d): ", rt.Program(), os.Getpid())
	fmt.Fprintf(os.Stderr, format, args...)
	fmt.Fprintln(os.Stderr)
	return nil
}
