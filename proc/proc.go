package proc

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/wippyai/scope-runtime/scope"
	"go.uber.org/zap"
)

// Run executes body under a fresh runtime with the outermost error boundary
// installed and returns the process exit status.
//
// SIGPIPE is ignored for the life of the process: a torn pipe surfaces as
// an EPIPE error and unwinds like any other failure instead of killing the
// program. The runtime's program identity is the basename of argv0.
//
// An error that reaches the outer boundary is reported to stderr as
// "prog: message" and turns the status to 1. The root scope is destroyed on
// every path before Run returns, so nothing the body acquired outlives it.
//
// Extra options are applied after the program identity, so callers can
// still swap the allocator or override the name.
func Run(argv0 string, body func(*scope.Runtime) error, opts ...scope.Option) int {
	signal.Ignore(syscall.SIGPIPE)

	prog := filepath.Base(argv0)
	rt := scope.New(append([]scope.Option{scope.WithProgram(prog)}, opts...)...)

	status := 0
	ei := scope.ErrorInfo{WantMessage: true}
	if rt.Guard(func() error { return body(rt) }, &ei) {
		status = 1
		name := ei.Program
		if name == "" {
			// The allocation-free raise path carries no identity.
			name = prog
		}
		fmt.Fprintf(os.Stderr, "%s: %s\n", name, ei.Message)
	}

	if err := rt.Close(); err != nil {
		scope.Logger().Warn("failed to release resources at exit",
			zap.Error(err))
	}
	return status
}
