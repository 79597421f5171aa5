package scope

import (
	"fmt"
	"strings"

	"golang.org/x/sys/unix"
)

// Sprintf renders format into a buffer owned by the current scope. The
// buffer is released when the scope is destroyed, like any other
// allocation.
//
// A malformed format string raises EINVAL, which callers can tell apart
// from the ENOMEM of an allocation failure. fmt reports trouble by
// embedding "%!" artifacts in the output, and an argument's own rendering
// may legally contain those bytes, so the verdict comes from re-rendering
// the format against inert arguments: an artifact that survives was caused
// by the format itself, a dangling directive or an argument count that
// does not match its verbs. A verb applied to an argument of the wrong
// type is not a format error; the result keeps fmt's inline artifact.
func (rt *Runtime) Sprintf(format string, args ...any) ([]byte, error) {
	s := fmt.Sprintf(format, args...)
	if strings.Contains(s, "%!") && malformed(format, len(args)) {
		return nil, rt.Raise(unix.EINVAL, "invalid format string %.80s", format)
	}
	buf, err := rt.Alloc(len(s))
	if err != nil {
		return nil, err
	}
	copy(buf, s)
	return buf, nil
}

// inertArg accepts every verb and renders nothing.
type inertArg struct{}

func (inertArg) Format(fmt.State, rune) {}

// malformed re-renders format against inert arguments of the same arity.
// Inert arguments write no bytes and satisfy any verb, so an artifact in
// the probe output can only come from the format string.
func malformed(format string, nargs int) bool {
	inert := make([]any, nargs)
	for i := range inert {
		inert[i] = inertArg{}
	}
	return strings.Contains(fmt.Sprintf(format, inert...), "%!")
}
