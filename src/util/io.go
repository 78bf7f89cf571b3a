// io.go provides the interpreter's connection to the standard streams: reading the source file at
// startup, reading integers for the `?` expression, and writing integers for `print`.

package util

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Streams bundles the standard streams used by a running program: source input is read once at
// startup, In/Out serve `?` and `print` respectively for the lifetime of the evaluation.
type Streams struct {
	In  *bufio.Reader
	Out *bufio.Writer
}

// IOError reports a failure to read the source file or standard input (spec §7.1). It never
// carries a source Range: the failure happens before, or outside, any parsed text.
type IOError struct {
	Cause error
}

func (e *IOError) Error() string { return fmt.Sprintf("I/O error: %s", e.Cause) }
func (e *IOError) Unwrap() error { return e.Cause }

// ---------------------
// ----- functions -----
// ---------------------

// NewStreams returns a Streams bundle wrapping os.Stdin and os.Stdout.
func NewStreams() *Streams {
	return &Streams{
		In:  bufio.NewReader(os.Stdin),
		Out: bufio.NewWriter(os.Stdout),
	}
}

// ReadSource reads the ParaCL source file named by opt.Src.
func ReadSource(opt Options) (string, error) {
	if len(opt.Src) == 0 {
		return "", &IOError{Cause: fmt.Errorf("no source file given")}
	}
	b, err := os.ReadFile(opt.Src)
	if err != nil {
		return "", &IOError{Cause: err}
	}
	return string(b), nil
}

// ReadInt reads one whitespace-delimited decimal integer from r, for the `?` expression.
// Returns an error wrapping the scan failure on malformed input (InputFormat, see errors.go).
func ReadInt(r *bufio.Reader) (int64, error) {
	var n int64
	var sign int64 = 1
	started := false
	negated := false

	skipSpace := func() (rune, error) {
		for {
			c, _, err := r.ReadRune()
			if err != nil {
				return 0, err
			}
			if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v' {
				continue
			}
			return c, nil
		}
	}

	c, err := skipSpace()
	if err != nil {
		if err == io.EOF {
			return 0, fmt.Errorf("expected integer, got end of input")
		}
		return 0, err
	}
	if c == '-' {
		negated = true
		sign = -1
		c, _, err = r.ReadRune()
		if err != nil {
			return 0, fmt.Errorf("expected digits after '-'")
		}
	}
	for {
		if c < '0' || c > '9' {
			if !started {
				return 0, fmt.Errorf("expected integer, got %q", c)
			}
			_ = r.UnreadRune()
			break
		}
		started = true
		n = n*10 + int64(c-'0')
		c, _, err = r.ReadRune()
		if err != nil {
			break
		}
	}
	if !started {
		if negated {
			return 0, fmt.Errorf("expected digits after '-'")
		}
		return 0, fmt.Errorf("expected integer, got end of input")
	}
	return sign * n, nil
}

// WriteLine writes v in decimal followed by a newline, for the `print` statement.
func WriteLine(w *bufio.Writer, v int64) error {
	_, err := fmt.Fprintf(w, "%d\n", v)
	return err
}
