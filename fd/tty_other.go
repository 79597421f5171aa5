//go:build !linux

package fd

import (
	"github.com/wippyai/scope-runtime/scope"
	"golang.org/x/sys/unix"
)

// ReopenTTY replaces fd with a freshly opened file object for the same
// terminal. Resolving a descriptor back to its device path has no portable
// form, so only Linux is supported.
func ReopenTTY(rt *scope.Runtime, fd int) error {
	return rt.Raise(unix.ENOTSUP, "reopen tty: not supported on this platform")
}
