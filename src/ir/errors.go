// errors.go defines the error taxonomy of spec §7. Each kind is a concrete type so that the
// diagnostic reporter (util.Diagnostic) and the driver in cmd/paracl can format and exit on them
// uniformly, while callers that care can still distinguish kinds with errors.As.

package ir

import (
	"fmt"

	"paracl/src/util"
)

// LocatedError is satisfied by every error kind that carries a source location.
type LocatedError interface {
	error
	Location() util.Range
}

// LexError reports an unrecognized character or token (spec §7.2). The lexer-driver stops
// scanning at the first one; there is no recovery.
type LexError struct {
	Range   util.Range
	Message string
}

func (e *LexError) Error() string        { return e.Message }
func (e *LexError) Location() util.Range { return e.Range }

// ParseError reports a grammar violation (spec §7.3). Only the first one is ever reported;
// parsing aborts at the first mismatch instead of attempting recovery.
type ParseError struct {
	Range   util.Range
	Message string
}

func (e *ParseError) Error() string        { return e.Message }
func (e *ParseError) Location() util.Range { return e.Range }

// UndefinedVariableError reports a Var reference to a name absent from the symbol table at build
// time (compile-time, spec §7.4).
type UndefinedVariableError struct {
	Name  string
	Range util.Range
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("variable %q is not declared", e.Name)
}
func (e *UndefinedVariableError) Location() util.Range { return e.Range }

// InvalidOperandError reports a runtime mismatch between the value variant an operator expects and
// the one it received (spec §7.5): an LRef used where Int was required, or vice versa.
type InvalidOperandError struct {
	Range util.Range
	Op    string
}

func (e *InvalidOperandError) Error() string {
	return fmt.Sprintf("invalid operand for %s", e.Op)
}
func (e *InvalidOperandError) Location() util.Range { return e.Range }

// DivisionByZeroError is raised by `/` or `%` when the right operand is zero (spec §7.6).
type DivisionByZeroError struct {
	Range util.Range
	Op    string
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("division by zero in %q", e.Op)
}
func (e *DivisionByZeroError) Location() util.Range { return e.Range }

// InputFormatError reports that `?` failed to parse an integer from standard input (spec §7.7).
type InputFormatError struct {
	Range util.Range
	Cause error
}

func (e *InputFormatError) Error() string {
	return fmt.Sprintf("could not read integer: %s", e.Cause)
}
func (e *InputFormatError) Location() util.Range { return e.Range }
func (e *InputFormatError) Unwrap() error        { return e.Cause }
