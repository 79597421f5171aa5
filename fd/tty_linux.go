//go:build linux

package fd

import (
	"fmt"
	"os"

	"github.com/wippyai/scope-runtime/scope"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// ReopenTTY replaces fd with a freshly opened file object for the same
// terminal.
//
// O_NONBLOCK lives on the file object, not the descriptor. A terminal
// inherited through fork/exec shares its file object with every other
// holder, so flipping its mode would switch the whole terminal to
// non-blocking and break unrelated programs. Reopening the device yields a
// private file object whose mode can be changed freely.
//
// fd itself keeps its number: the fresh object is duplicated over it. A
// non-terminal descriptor raises ENOTTY.
func ReopenTTY(rt *scope.Runtime, fd int) error {
	if !term.IsTerminal(fd) {
		return rt.Raise(unix.ENOTTY, "reopen tty: descriptor %d is not a terminal", fd)
	}

	s := rt.Push()
	defer rt.Leave(s)

	name, err := ttyName(rt, fd)
	if err != nil {
		return err
	}
	nfd, err := Open(rt, name, unix.O_RDWR, 0)
	if err != nil {
		return err
	}
	if err := unix.Dup3(nfd, fd, unix.O_CLOEXEC); err != nil {
		return rt.RaiseOS(err, "dup3(%d, %d)", nfd, fd)
	}
	// The scratch scope closes nfd on the way out; fd now names the
	// private file object.
	return nil
}

// ttyName resolves the terminal device path behind fd.
func ttyName(rt *scope.Runtime, fd int) (string, error) {
	link := fmt.Sprintf("/proc/self/fd/%d", fd)
	name, err := os.Readlink(link)
	if err != nil {
		return "", rt.RaiseOS(err, "readlink(%q)", link)
	}
	return name, nil
}
