// Package dbglock serializes diagnostic output across cooperating
// processes with a reentrant advisory file lock.
//
// The lock is process-wide by design: every runtime in the process shares
// one lock file descriptor and one reentrancy level, and the flock gives
// exclusion against other processes using the same lock file. Acquire takes
// the lock for the lifetime of the current scope, so every exit path
// releases it, an error unwind included:
//
//	s := rt.Push()
//	defer rt.Leave(s)
//	if err := dbglock.Acquire(rt); err != nil {
//	    return err
//	}
//	// locked until s is destroyed
//
// Nested Acquire calls in the same flow stack: the file lock is taken on
// the first and dropped when the last scope holding it dies.
//
// Printf emits one "prog(pid): message" line to stderr under the lock.
//
// Like the core, the package assumes a single logical thread per process;
// the reentrancy level is not synchronized between goroutines.
package dbglock
