package scope

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Runtime is the execution context of the scope tree. It tracks the current
// scope, the innermost error boundary, the program identity used in error
// reports and the allocator behind the allocation primitives.
//
// A Runtime and everything beneath it belong to a single goroutine. Nothing
// in the core locks; use one Runtime per logical thread of control.
type Runtime struct {
	root    *Scope
	current *Scope
	handler *handler
	prog    string
	alloc   Allocator
}

// Option configures a Runtime at construction.
type Option func(*Runtime)

// WithAllocator selects the allocator behind Alloc, AllocZero and Sprintf.
// The default allocates from the Go heap and never fails.
func WithAllocator(a Allocator) Option {
	return func(rt *Runtime) { rt.alloc = a }
}

// WithProgram sets the program identity reported with raised errors. The
// default is the basename of the running executable.
func WithProgram(name string) Option {
	return func(rt *Runtime) { rt.prog = name }
}

// New creates a Runtime with a fresh root scope as current. The root scope
// bounds every resource acquired through the runtime and is destroyed only
// by Close.
func New(opts ...Option) *Runtime {
	rt := &Runtime{
		prog:  filepath.Base(os.Args[0]),
		alloc: heapAllocator{},
	}
	for _, opt := range opts {
		opt(rt)
	}
	rt.root = &Scope{}
	rt.current = rt.root
	return rt
}

// Close destroys the root scope, releasing every resource the runtime still
// owns, and returns the combined teardown error. The Runtime must not be
// used afterwards.
func (rt *Runtime) Close() error {
	if rt.root == nil {
		panic("scope: use of a closed Runtime")
	}
	err := rt.root.Destroy()
	rt.root = nil
	rt.current = nil
	rt.handler = nil
	return err
}

// cur returns the current scope, panicking after Close.
func (rt *Runtime) cur() *Scope {
	if rt.current == nil {
		panic("scope: use of a closed Runtime")
	}
	return rt.current
}

// Current returns the current scope. New registrations and pushed scopes
// attach here.
func (rt *Runtime) Current() *Scope {
	return rt.cur()
}

// Push creates a scope as the newest child of the current scope and makes
// it current.
func (rt *Runtime) Push() *Scope {
	s := &Scope{parent: rt.cur()}
	s.parent.attach(s)
	rt.current = s
	debugf("scope: push")
	return s
}

// Pop makes the parent of the current scope current again. The popped scope
// stays attached to its parent as an ordinary child: it is destroyed when
// the parent is, or earlier by an explicit Destroy from whoever holds its
// reference.
//
// Calls must pair with Push in strict nesting order; the engine cannot
// detect a mismatched Pop. Popping the root scope panics.
func (rt *Runtime) Pop() {
	s := rt.cur()
	if s.parent == nil {
		panic("scope: Pop of the root scope")
	}
	rt.current = s.parent
}

// Leave restores the current scope to s's parent and destroys s, logging
// any teardown failure. It is the defer-friendly way to bound a scratch
// scope:
//
//	s := rt.Push()
//	defer rt.Leave(s)
//
// Leaving the root scope panics; the root is destroyed only by Close.
func (rt *Runtime) Leave(s *Scope) {
	if s.parent == nil && !s.destroyed {
		panic("scope: Leave of the root scope")
	}
	rt.current = s.parent
	if err := s.Destroy(); err != nil {
		Logger().Warn("failed to release scope resources",
			zap.Error(err))
	}
}

// Register links an unarmed cleanup record into the current scope and
// returns it. Register before the side-effecting acquisition, commit after
// it succeeds: a failure in between leaves an unarmed record that teardown
// skips.
func (rt *Runtime) Register() *Cleanup {
	cl := &Cleanup{}
	rt.cur().attach(cl)
	return cl
}

// Program returns the current program identity.
func (rt *Runtime) Program() string {
	return rt.prog
}

// SetProgram overrides the program identity for the lifetime of the current
// scope. The previous identity is restored when the scope is destroyed.
func (rt *Runtime) SetProgram(name string) {
	cl := rt.Register()
	prev := rt.prog
	cl.Commit(func() error {
		rt.prog = prev
		return nil
	})
	rt.prog = name
}
