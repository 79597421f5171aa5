package fd

import (
	"github.com/wippyai/scope-runtime/scope"
	"golang.org/x/sys/unix"
)

// Mode selects between blocking and non-blocking descriptor I/O.
type Mode int

const (
	Blocking Mode = iota
	NonBlocking
)

// String returns the mode name.
func (m Mode) String() string {
	if m == NonBlocking {
		return "non-blocking"
	}
	return "blocking"
}

// GetMode reports whether fd is in blocking or non-blocking mode.
func GetMode(rt *scope.Runtime, fd int) (Mode, error) {
	flags, err := unix.FcntlInt(uintptr(fd), unix.F_GETFL, 0)
	if err != nil {
		return Blocking, rt.RaiseOS(err, "fcntl(%d, F_GETFL)", fd)
	}
	return modeOf(flags), nil
}

// SetMode switches fd between blocking and non-blocking I/O and returns the
// previous mode, so callers can restore it when they are done.
//
// The mode belongs to the underlying file object, not the descriptor:
// changing it is visible through every descriptor sharing that object,
// including ones inherited by other processes. See ReopenTTY for
// decoupling a terminal before flipping its mode.
func SetMode(rt *scope.Runtime, fd int, mode Mode) (Mode, error) {
	flags, err := unix.FcntlInt(uintptr(fd), unix.F_GETFL, 0)
	if err != nil {
		return Blocking, rt.RaiseOS(err, "fcntl(%d, F_GETFL)", fd)
	}
	old := modeOf(flags)

	if mode == NonBlocking {
		flags |= unix.O_NONBLOCK
	} else {
		flags &^= unix.O_NONBLOCK
	}
	if _, err := unix.FcntlInt(uintptr(fd), unix.F_SETFL, flags); err != nil {
		return old, rt.RaiseOS(err, "fcntl(%d, F_SETFL, %#x)", fd, flags)
	}
	return old, nil
}

func modeOf(flags int) Mode {
	if flags&unix.O_NONBLOCK != 0 {
		return NonBlocking
	}
	return Blocking
}
