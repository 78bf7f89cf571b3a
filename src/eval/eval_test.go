package eval

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paracl/src/frontend"
	"paracl/src/ir"
	"paracl/src/util"
)

// run parses src, evaluates it against stdin, and returns stdout, exit error.
func run(t *testing.T, src, stdin string) (string, error) {
	t.Helper()
	arena, err := frontend.Parse(src)
	require.NoError(t, err)

	var out bytes.Buffer
	streams := &util.Streams{
		In:  bufio.NewReader(strings.NewReader(stdin)),
		Out: bufio.NewWriter(&out),
	}
	e := New(arena, streams)
	err = e.Run()
	return out.String(), err
}

func TestScenarioHelloCompute(t *testing.T) {
	out, err := run(t, "a = 2; b = 3; print a * b + 1;", "")
	require.NoError(t, err)
	assert.Equal(t, "7\n", out)
}

func TestScenarioReadAndEcho(t *testing.T) {
	out, err := run(t, "x = ?; print x;", "42\n")
	require.NoError(t, err)
	assert.Equal(t, "42\n", out)
}

func TestScenarioBranching(t *testing.T) {
	out, err := run(t, "x = ?; if (x > 0) print 1; else print -1;", "-5\n")
	require.NoError(t, err)
	assert.Equal(t, "-1\n", out)
}

func TestScenarioLoopSummation(t *testing.T) {
	out, err := run(t, "n = ?; s = 0; i = 0; while (i < n) { i = i + 1; s = s + i; } print s;", "5\n")
	require.NoError(t, err)
	assert.Equal(t, "15\n", out)
}

func TestScenarioDivisionByZero(t *testing.T) {
	_, err := run(t, "print 10 / 0;", "")
	require.Error(t, err)
	var divErr *ir.DivisionByZeroError
	assert.ErrorAs(t, err, &divErr)
}

func TestAssignmentIsRightAssociativeAndReturnsValue(t *testing.T) {
	out, err := run(t, "a = b = c = 5; print a; print b; print c;", "")
	require.NoError(t, err)
	assert.Equal(t, "5\n5\n5\n", out)
}

func TestEmptyStatementDoesNotAlterSequenceValue(t *testing.T) {
	out, err := run(t, "a = 1; ; print a;", "")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)
}

func TestReadThenPrintIsIdentity(t *testing.T) {
	out, err := run(t, "print ?;", "123\n")
	require.NoError(t, err)
	assert.Equal(t, "123\n", out)
}

func TestUnaryNegationAndNot(t *testing.T) {
	out, err := run(t, "a = 5; print -a; print !a; print !0;", "")
	require.NoError(t, err)
	assert.Equal(t, "-5\n0\n1\n", out)
}

func TestInputFormatErrorOnMalformedInput(t *testing.T) {
	_, err := run(t, "x = ?; print x;", "not-a-number\n")
	require.Error(t, err)
	var fmtErr *ir.InputFormatError
	assert.ErrorAs(t, err, &fmtErr)
}

func TestScopeReclaimMakesNameInvisibleOutsideBlock(t *testing.T) {
	_, err := frontend.Parse("{ y = 7; } print y;")
	require.Error(t, err)
	var undef *ir.UndefinedVariableError
	assert.ErrorAs(t, err, &undef)
}

func TestPrintUsableInsideExpression(t *testing.T) {
	// spec §3.3: print yields its argument, so it may appear inside a larger expression.
	out, err := run(t, "x = print 5; print x;", "")
	require.NoError(t, err)
	assert.Equal(t, "5\n5\n", out)
}

func TestPrintNested(t *testing.T) {
	out, err := run(t, "print print 5;", "")
	require.NoError(t, err)
	assert.Equal(t, "5\n5\n", out)
}

func TestNonShortCircuitLogicalOperators(t *testing.T) {
	// Both operands are always evaluated (spec §3.3, §9): the right side of && still runs even
	// when the left side is already false, so its side effect (assigning b) must be observed.
	out, err := run(t, "b = 0; r = (0 && (b = 9)); print b;", "")
	require.NoError(t, err)
	assert.Equal(t, "9\n", out)
}
