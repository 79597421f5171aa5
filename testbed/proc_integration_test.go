package testbed

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/wippyai/scope-runtime/dbglock"
	"github.com/wippyai/scope-runtime/fd"
	"github.com/wippyai/scope-runtime/proc"
	"github.com/wippyai/scope-runtime/scope"

	"golang.org/x/sys/unix"
)

// captureStderr runs fn with os.Stderr redirected to a pipe and returns
// everything fn wrote there.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	old := os.Stderr
	os.Stderr = w
	defer func() { os.Stderr = old }()

	fn()

	w.Close()
	var sb strings.Builder
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		sb.Write(buf[:n])
		if err != nil {
			break
		}
	}
	r.Close()
	return sb.String()
}

// TestRunEndToEnd wires a small program through the process entry point:
// open a descriptor, take the debug lock, fail, and check the exit status,
// the stderr report, and that both resources were released on the way out.
func TestRunEndToEnd(t *testing.T) {
	dbglock.SetPath(t.TempDir() + "/e2e.lock")

	var opened int
	stderr := captureStderr(t, func() {
		status := proc.Run("/usr/bin/e2eprog", func(rt *scope.Runtime) error {
			var err error
			opened, err = fd.Open(rt, "/dev/null", unix.O_RDONLY, 0)
			if err != nil {
				return err
			}
			if err := dbglock.Printf(rt, "opened fd %d", opened); err != nil {
				return err
			}
			return rt.Raise(unix.ENODATA, "payload missing")
		})
		if status != 1 {
			t.Errorf("Run = %d, want 1", status)
		}
	})

	if !strings.Contains(stderr, "e2eprog: payload missing\n") {
		t.Errorf("stderr = %q, want the failure report", stderr)
	}
	if !strings.Contains(stderr, fmt.Sprintf("opened fd %d", opened)) {
		t.Errorf("stderr = %q, want the debug line", stderr)
	}
	if fdOpen(opened) {
		t.Error("descriptor should be closed after Run returns")
	}
}

// TestRunSuccessLeavesNoTrace runs a body that acquires and succeeds; the
// exit must be clean and silent.
func TestRunSuccessLeavesNoTrace(t *testing.T) {
	var opened int
	stderr := captureStderr(t, func() {
		status := proc.Run("quietprog", func(rt *scope.Runtime) error {
			var err error
			opened, err = fd.Open(rt, "/dev/null", unix.O_RDONLY, 0)
			return err
		})
		if status != 0 {
			t.Errorf("Run = %d, want 0", status)
		}
	})

	if stderr != "" {
		t.Errorf("stderr = %q, want empty", stderr)
	}
	if fdOpen(opened) {
		t.Error("descriptor should be closed after Run returns")
	}
}

// TestRunReportsOOM exhausts a tiny budget inside Run and checks the static
// out-of-memory report makes it to stderr without any further allocation.
func TestRunReportsOOM(t *testing.T) {
	stderr := captureStderr(t, func() {
		status := proc.Run("oomprog", func(rt *scope.Runtime) error {
			_, err := rt.Alloc(1 << 20)
			return err
		}, scope.WithAllocator(scope.NewBudgetAllocator(16)))
		if status != 1 {
			t.Errorf("Run = %d, want 1", status)
		}
	})

	if stderr != "oomprog: no memory\n" {
		t.Errorf("stderr = %q, want %q", stderr, "oomprog: no memory\n")
	}
}
