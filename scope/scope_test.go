package scope

import (
	stderrors "errors"
	"testing"

	"go.uber.org/multierr"
)

// journal records the order cleanup actions ran in.
type journal struct {
	entries []string
}

func (j *journal) mark(name string) func() error {
	return func() error {
		j.entries = append(j.entries, name)
		return nil
	}
}

func (j *journal) want(t *testing.T, entries ...string) {
	t.Helper()
	if len(j.entries) != len(entries) {
		t.Fatalf("journal = %v, want %v", j.entries, entries)
	}
	for i := range entries {
		if j.entries[i] != entries[i] {
			t.Fatalf("journal = %v, want %v", j.entries, entries)
		}
	}
}

func TestDestroyRunsNewestFirst(t *testing.T) {
	rt := New()
	defer rt.Close()
	var j journal

	s := rt.Push()
	rt.Register().Commit(j.mark("a"))
	rt.Register().Commit(j.mark("b"))
	rt.Register().Commit(j.mark("c"))
	rt.Pop()

	if err := s.Destroy(); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	j.want(t, "c", "b", "a")
}

func TestDestroyNestedDepthFirst(t *testing.T) {
	rt := New()
	defer rt.Close()
	var j journal

	s1 := rt.Push()
	rt.Register().Commit(j.mark("s1-first"))

	rt.Push()
	rt.Register().Commit(j.mark("s2-a"))
	rt.Register().Commit(j.mark("s2-b"))
	rt.Pop()

	rt.Register().Commit(j.mark("s1-last"))
	rt.Pop()

	if err := s1.Destroy(); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	// s1's newest member runs first, then the nested scope in its
	// entirety, newest first, then s1's oldest member.
	j.want(t, "s1-last", "s2-b", "s2-a", "s1-first")
}

func TestUnarmedRecordIsSkipped(t *testing.T) {
	rt := New()
	defer rt.Close()
	var j journal

	s := rt.Push()
	rt.Register() // never committed
	rt.Register().Commit(j.mark("armed"))
	rt.Register() // never committed
	rt.Pop()

	if err := s.Destroy(); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	j.want(t, "armed")
}

func TestDestroyDetachesFromParent(t *testing.T) {
	rt := New()
	var j journal

	child := rt.Push()
	rt.Register().Commit(j.mark("child"))
	rt.Pop()
	rt.Register().Commit(j.mark("parent"))

	if err := child.Destroy(); err != nil {
		t.Fatalf("Destroy child: %v", err)
	}
	j.want(t, "child")

	// The parent's teardown must not see the destroyed child again.
	if err := rt.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	j.want(t, "child", "parent")
}

func TestPoppedScopeDestroyedWithParent(t *testing.T) {
	rt := New()
	var j journal

	rt.Push()
	rt.Register().Commit(j.mark("popped"))
	rt.Pop()
	rt.Register().Commit(j.mark("root"))

	if err := rt.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	// The record registered after the pop is the root's newest member, so
	// it runs before the popped scope is torn down.
	j.want(t, "root", "popped")
}

func TestDestroyTwicePanics(t *testing.T) {
	rt := New()
	defer rt.Close()

	s := rt.Push()
	rt.Pop()
	if err := s.Destroy(); err != nil {
		t.Fatalf("Destroy: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("second Destroy should panic")
		}
	}()
	_ = s.Destroy()
}

func TestDestroyCollectsActionErrors(t *testing.T) {
	rt := New()
	defer rt.Close()
	var j journal

	errA := stderrors.New("release a failed")
	errB := stderrors.New("release b failed")

	s := rt.Push()
	rt.Register().Commit(func() error {
		j.entries = append(j.entries, "a")
		return errA
	})
	rt.Register().Commit(j.mark("ok"))
	rt.Register().Commit(func() error {
		j.entries = append(j.entries, "b")
		return errB
	})
	rt.Pop()

	err := s.Destroy()
	if err == nil {
		t.Fatal("Destroy should report action errors")
	}
	// A failing action must not stop the teardown.
	j.want(t, "b", "ok", "a")

	errs := multierr.Errors(err)
	if len(errs) != 2 {
		t.Fatalf("combined error count = %d, want 2: %v", len(errs), err)
	}
	if !stderrors.Is(err, errA) || !stderrors.Is(err, errB) {
		t.Fatalf("combined error should carry both failures: %v", err)
	}
}

func TestRegisterIntoDestroyedScopePanics(t *testing.T) {
	rt := New()

	s := rt.Push()
	// Destroying the current scope without restoring current first
	// violates the usage contract; the next registration trips on it.
	if err := s.Destroy(); err != nil {
		t.Fatalf("Destroy: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("Register into a destroyed scope should panic")
		}
	}()
	rt.Register()
}

func TestCleanupActionMayUseScratchScope(t *testing.T) {
	rt := New()
	defer rt.Close()
	var j journal

	s := rt.Push()
	rt.Register().Commit(func() error {
		// A release action is allowed to bound its own work with a
		// scratch scope, as diagnostic helpers do.
		scratch := rt.Push()
		defer rt.Leave(scratch)
		rt.Register().Commit(j.mark("scratch"))
		j.entries = append(j.entries, "action")
		return nil
	})

	rt.Leave(s)
	j.want(t, "action", "scratch")
}
