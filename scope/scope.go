package scope

import (
	"go.uber.org/multierr"
)

// node is a member of a scope's owned sequence: either a nested *Scope or a
// *Cleanup record. The interface is closed; teardown is the only operation
// the tree needs from its elements.
type node interface {
	teardown() error
}

// Scope owns an ordered sequence of resources. Destroying a scope releases
// everything registered under it in reverse registration order: nested
// scopes recurse depth-first, cleanup records run their committed action,
// unarmed records are skipped.
//
// A scope is created by Runtime.Push and belongs to exactly one parent until
// it is destroyed. Scopes are not safe for concurrent use; see the package
// documentation.
type Scope struct {
	parent    *Scope
	nodes     []node
	destroyed bool
}

// attach links n as the newest member of the scope.
func (s *Scope) attach(n node) {
	if s.destroyed {
		panic("scope: attach to a destroyed scope")
	}
	s.nodes = append(s.nodes, n)
}

// detach unlinks n from the scope's sequence. The newest members are the
// common case, so the scan runs from the tail.
func (s *Scope) detach(n node) {
	for i := len(s.nodes) - 1; i >= 0; i-- {
		if s.nodes[i] == n {
			s.nodes = append(s.nodes[:i], s.nodes[i+1:]...)
			return
		}
	}
}

// Destroy releases every resource owned by the scope, newest first, then
// marks the scope dead. The scope detaches from its parent before any
// teardown runs, so a partially destroyed scope is never reachable from an
// ancestor's own teardown.
//
// Errors from cleanup actions do not stop the teardown; they are combined
// and returned once every resource has been released. Destroying a scope
// twice panics. The caller must ensure the runtime's current scope does not
// point into the subtree being destroyed (Runtime.Leave and Runtime.Guard
// maintain this automatically).
func (s *Scope) Destroy() error {
	if s.destroyed {
		panic("scope: Destroy of an already-destroyed scope")
	}
	if s.parent != nil {
		s.parent.detach(s)
		s.parent = nil
	}

	// Pop before running: a record's action may register new resources
	// into a scope that is still draining, and it must never see itself.
	var err error
	for len(s.nodes) > 0 {
		n := s.nodes[len(s.nodes)-1]
		s.nodes = s.nodes[:len(s.nodes)-1]
		err = multierr.Append(err, n.teardown())
	}

	s.nodes = nil
	s.destroyed = true
	return err
}

// teardown destroys the scope as a child of a draining parent. The parent
// has already unlinked it, so the nil parent skips the detach.
func (s *Scope) teardown() error {
	s.parent = nil
	return s.Destroy()
}
