// diag.go formats compilation and runtime diagnostics with file name, source location and a
// caret-underlined source line, per spec §4.6. Unlike the teacher's perror.go, which buffers
// errors from concurrent worker threads, the diagnostic reporter here serves a single-threaded
// interpreter: compilation stops at the first error (spec §7), so there is nothing to buffer.

package util

import (
	"fmt"
	"io"
	"strings"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Diagnostic formats and writes error reports against one source file.
type Diagnostic struct {
	File  string   // Name of the source file, as given on the command line.
	Lines []string // Source split by newline, for quoting the offending line.
}

// ---------------------
// ----- functions -----
// ---------------------

// NewDiagnostic builds a Diagnostic for src, the full text of File.
func NewDiagnostic(file, src string) *Diagnostic {
	return &Diagnostic{File: file, Lines: strings.Split(src, "\n")}
}

// Report writes a caret-underlined error report for rng to w:
//
//	<file>:<line>:<col>: Error: <message>.
//	   <line>	| <source line verbatim>
//		  <spaces/tabs>^
//
// rng uses one-based line/column numbers, matching spec §4.6's external format.
func (d *Diagnostic) Report(w io.Writer, rng Range, message string) {
	_, _ = fmt.Fprintf(w, "%s:%d:%d: Error: %s.\n", d.File, rng.FirstLine, rng.FirstColumn, message)

	idx := rng.FirstLine - 1
	if idx < 0 || idx >= len(d.Lines) {
		return
	}
	line := d.Lines[idx]
	_, _ = fmt.Fprintf(w, "   %d\t| %s\n", rng.FirstLine, line)

	col := rng.FirstColumn - 1
	if col < 0 {
		col = 0
	}
	if col > len(line) {
		col = len(line)
	}
	tabs := strings.Count(line[:col], "\t")
	spaces := col - tabs
	_, _ = fmt.Fprintf(w, "\t  %s%s^\n", strings.Repeat("\t", tabs), strings.Repeat(" ", spaces))
}
