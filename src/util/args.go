// args.go provides command line argument parsing for the paracl interpreter.
// ParaCL takes exactly one positional argument: the path to the source file.

package util

import "fmt"

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Options holds the configuration derived from the command line.
type Options struct {
	Src      string // Path to the ParaCL source file.
	EmitLLVM bool   // Set true if the interpreter should lower the tree to LLVM IR instead of evaluating it.
}

// ---------------------
// ----- functions -----
// ---------------------

// ParseArgs parses the command line arguments of the process.
// The only accepted invocation forms are:
//
//	paracl <file>
//	paracl -emit-llvm <file>
//
// Any other combination of arguments is rejected.
func ParseArgs(args []string) (Options, error) {
	opt := Options{}
	switch len(args) {
	case 0:
		return opt, fmt.Errorf("expected path to source file")
	case 1:
		if isFlag(args[0]) {
			return opt, fmt.Errorf("expected path to source file, got flag %s", args[0])
		}
		opt.Src = args[0]
	case 2:
		if args[0] != "-emit-llvm" {
			return opt, fmt.Errorf("unexpected flag: %s", args[0])
		}
		if isFlag(args[1]) {
			return opt, fmt.Errorf("expected path to source file, got flag %s", args[1])
		}
		opt.EmitLLVM = true
		opt.Src = args[1]
	default:
		return opt, fmt.Errorf("expected a single source file argument, got %d", len(args))
	}
	return opt, nil
}

// isFlag returns true if s looks like a command line flag rather than a file path.
func isFlag(s string) bool {
	return len(s) > 0 && s[0] == '-'
}
