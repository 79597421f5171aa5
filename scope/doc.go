// Package scope implements the core resource-ownership engine: a tree of
// scopes that tracks every acquisition and releases it exactly once, in
// reverse acquisition order, on the normal path and on the error-unwind
// path alike.
//
// # The Scope Tree
//
// A Runtime holds the tree and a pointer to the current scope. Push creates
// a child of the current scope and makes it current; Pop steps back out,
// leaving the scope alive under its parent; Destroy tears a scope down,
// newest resource first, nested scopes depth-first:
//
//	rt := scope.New()
//	defer rt.Close()
//
//	s := rt.Push()
//	defer rt.Leave(s) // restore current and destroy s
//
//	buf, err := rt.Alloc(4096) // freed when s is destroyed
//
// # Two-Phase Registration
//
// Every acquisition follows register-then-commit. The cleanup record is
// linked into the current scope while still unarmed, the side-effecting
// call runs, and only a successful call arms the record:
//
//	cl := rt.Register()
//	fd, err := unix.Open(path, flags|unix.O_CLOEXEC, 0)
//	if err != nil {
//	    return rt.RaiseOS(err, "open(%q)", path)
//	}
//	cl.CommitClose(fd)
//
// If the call fails, the unarmed record vanishes harmlessly with the
// unwind. If registering had failed, the call never ran. In neither case
// can the resource leak or be released twice.
//
// # Error Boundaries
//
// Guard installs an error boundary whose scope is destroyed when the body
// raises. Raise, RaiseOS and RaiseNoMemory build the error; the body
// returns it through ordinary Go control flow, and the nearest Guard
// catches it, tears down everything the body acquired and reports through
// the caller's ErrorInfo:
//
//	var ei scope.ErrorInfo
//	ei.WantMessage = true
//	if rt.Guard(func() error {
//	    s := rt.Push()
//	    defer rt.Leave(s)
//	    return doWork(rt)
//	}, &ei) {
//	    fmt.Fprintf(os.Stderr, "%s: %s\n", ei.Program, ei.Message)
//	}
//
// On a normal return the boundary's scope stays current and keeps the
// body's resources alive for the caller; only an unwind destroys it.
//
// The out-of-memory path is allocation-free end to end: RaiseNoMemory
// returns a shared static error and never formats, so handling an
// allocation failure cannot itself run out of memory.
//
// # Allocation
//
// Alloc, AllocZero and Sprintf hand out buffers owned by the current scope,
// backed by a pluggable Allocator. The default draws from the Go heap and
// never fails; BudgetAllocator caps outstanding bytes and makes the ENOMEM
// path reachable in tests.
//
// # Thread Safety
//
// A Runtime, its scopes and its boundaries belong to one goroutine. There
// is exactly one current scope and one innermost boundary per Runtime, with
// no locking; sharing a Runtime across goroutines requires external mutual
// exclusion and is not the intended use.
package scope
