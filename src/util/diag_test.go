package util

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestReportCaretAlignment verifies the caret-underline format of spec §4.6:
//
//	<file>:<line>:<col>: Error: <message>.
//	   <line>	| <source line verbatim>
//		  <spaces/tabs>^
//
// The third line is a tab followed by two spaces (matching the `   <line>\t| ` prefix on the
// line above), then one space/tab per source column preceding the offending token, then the caret.
func TestReportCaretAlignment(t *testing.T) {
	src := "print 10 / 0;"
	d := NewDiagnostic("prog.pcl", src)

	var buf bytes.Buffer
	// The '/' operator starts at column 10 (1-based).
	d.Report(&buf, Range{FirstLine: 1, FirstColumn: 10, LastLine: 1, LastColumn: 10}, "division by zero")

	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "prog.pcl:1:10: Error: division by zero.", lines[0])
	assert.Equal(t, "   1\t| print 10 / 0;", lines[1])
	assert.Equal(t, "\t  "+strings.Repeat(" ", 9)+"^", lines[2])
}

func TestReportCaretAlignmentWithTabs(t *testing.T) {
	src := "\tx = 1 / 0;"
	d := NewDiagnostic("prog.pcl", src)

	var buf bytes.Buffer
	// The '/' operator is at column 8 (1-based), with one leading tab in the source.
	d.Report(&buf, Range{FirstLine: 1, FirstColumn: 8, LastLine: 1, LastColumn: 8}, "division by zero")

	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "\t  \t"+strings.Repeat(" ", 6)+"^", lines[2])
}
