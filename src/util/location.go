// location.go defines the four-component source location range carried by every AST node and
// surfaced by diagnostics (see spec §4.6 and §9's note on location tracking).

package util

// Range is a source location spanning from (FirstLine, FirstColumn) to (LastLine, LastColumn),
// both ends inclusive. Lines and columns are one-based, as the lexer counts them; Diagnostic
// displays them unchanged.
type Range struct {
	FirstLine, FirstColumn int
	LastLine, LastColumn   int
}
