// Package proc bounds a program with the outermost scope and error
// boundary.
//
// Run builds the process's runtime, dispatches to the supplied body and
// turns an uncaught raise into a one-line stderr report and a non-zero
// exit status. main shrinks to:
//
//	func main() {
//	    os.Exit(proc.Run(os.Args[0], func(rt *scope.Runtime) error {
//	        // acquire freely; everything is released on every path
//	        return nil
//	    }))
//	}
package proc
