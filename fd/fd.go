package fd

import (
	"github.com/wippyai/scope-runtime/scope"
	"golang.org/x/sys/unix"
)

// Open opens path and registers the descriptor with the current scope.
// O_CLOEXEC is always added to flags: nothing acquired through the engine
// outlives an exec.
func Open(rt *scope.Runtime, path string, flags int, mode uint32) (int, error) {
	cl := rt.Register()
	fd, err := unix.Open(path, flags|unix.O_CLOEXEC, mode)
	if err != nil {
		return -1, rt.RaiseOS(err, "open(%q)", path)
	}
	cl.CommitClose(fd)
	return fd, nil
}

// Pipe creates a pipe with both ends registered with the current scope.
// Both records are registered before the system call runs, so a failure
// leaves two unarmed records and no descriptors.
func Pipe(rt *scope.Runtime) (int, int, error) {
	clr := rt.Register()
	clw := rt.Register()

	var p [2]int
	if err := unix.Pipe2(p[:], unix.O_CLOEXEC); err != nil {
		return -1, -1, rt.RaiseOS(err, "pipe2")
	}

	clr.CommitClose(p[0])
	clw.CommitClose(p[1])
	return p[0], p[1], nil
}

// Dup duplicates fd into a new descriptor registered with the current
// scope. The duplicate is requested at or above the original's number,
// keeping low descriptors free for standard streams.
func Dup(rt *scope.Runtime, fd int) (int, error) {
	cl := rt.Register()
	nfd, err := unix.FcntlInt(uintptr(fd), unix.F_DUPFD_CLOEXEC, fd)
	if err != nil {
		return -1, rt.RaiseOS(err, "fcntl(%d, F_DUPFD_CLOEXEC)", fd)
	}
	cl.CommitClose(nfd)
	return nfd, nil
}

// VecSum returns the total byte length of an I/O vector, for sizing writev
// and readv transfers.
func VecSum(vecs [][]byte) int {
	total := 0
	for _, v := range vecs {
		total += len(v)
	}
	return total
}
