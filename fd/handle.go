package fd

import (
	"github.com/wippyai/scope-runtime/scope"
)

// Handle owns a duplicated descriptor through a dedicated scope, so the
// descriptor can be closed independently of the scope that created it. The
// private scope nests under the creator's scope: an unwind through the
// creator still closes the descriptor, but the holder may destroy it
// earlier without touching any sibling resource.
type Handle struct {
	scope *scope.Scope
	fd    int
}

// NewHandle duplicates fd into a fresh scope and returns the handle to it.
// The scope is popped, not destroyed: it stays behind as an ordinary child
// owned by the returned Handle.
func NewHandle(rt *scope.Runtime, fd int) (*Handle, error) {
	s := rt.Push()
	nfd, err := Dup(rt, fd)
	if err != nil {
		rt.Leave(s)
		return nil, err
	}
	rt.Pop()
	return &Handle{scope: s, fd: nfd}, nil
}

// FD returns the handle's descriptor.
func (h *Handle) FD() int {
	return h.fd
}

// Destroy closes the handle's descriptor by destroying its private scope.
// The handle must not be used afterwards.
func (h *Handle) Destroy() error {
	return h.scope.Destroy()
}
