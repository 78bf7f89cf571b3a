package frontend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paracl/src/ir"
)

func TestParsePrecedence(t *testing.T) {
	a, err := Parse("x = 2 * 3 + 1;")
	require.NoError(t, err)

	seq := a.Node(a.Root())
	require.Equal(t, ir.Seq, seq.Typ)
	require.Len(t, seq.Children, 1)

	assign := a.Node(seq.Children[0])
	require.Equal(t, ir.BinOp, assign.Typ)
	require.Equal(t, ir.OpAssign, assign.Data)

	rhs := a.Node(assign.Children[1])
	require.Equal(t, ir.BinOp, rhs.Typ)
	assert.Equal(t, ir.OpAdd, rhs.Data)

	mul := a.Node(rhs.Children[0])
	require.Equal(t, ir.BinOp, mul.Typ)
	assert.Equal(t, ir.OpMul, mul.Data)
}

func TestParseAssignmentRightAssociative(t *testing.T) {
	a, err := Parse("a = b = c = 5;")
	require.NoError(t, err)

	seq := a.Node(a.Root())
	outer := a.Node(seq.Children[0])
	require.Equal(t, ir.OpAssign, outer.Data)

	mid := a.Node(outer.Children[1])
	require.Equal(t, ir.OpAssign, mid.Data)

	inner := a.Node(mid.Children[1])
	require.Equal(t, ir.OpAssign, inner.Data)

	five := a.Node(inner.Children[1])
	assert.Equal(t, ir.Number, five.Typ)
	assert.Equal(t, int64(5), five.Data)
}

func TestParseUndefinedVariable(t *testing.T) {
	_, err := Parse("print y;")
	require.Error(t, err)
	var undef *ir.UndefinedVariableError
	assert.ErrorAs(t, err, &undef)
}

func TestParseScopeReclaim(t *testing.T) {
	// Scenario 5: a name declared only inside a block is not visible afterward.
	_, err := Parse("{ y = 7; } print y;")
	require.Error(t, err)
	var undef *ir.UndefinedVariableError
	require.ErrorAs(t, err, &undef)
	assert.Equal(t, "y", undef.Name)
}

func TestParseIfElse(t *testing.T) {
	a, err := Parse("x = 1; if (x > 0) print 1; else print -1;")
	require.NoError(t, err)
	seq := a.Node(a.Root())
	require.Len(t, seq.Children, 2)
	ifElse := a.Node(seq.Children[1])
	assert.Equal(t, ir.IfElse, ifElse.Typ)
	require.Len(t, ifElse.Children, 3)
}

func TestParseWhileLoop(t *testing.T) {
	a, err := Parse("n = 5; s = 0; i = 0; while (i < n) { i = i + 1; s = s + i; } print s;")
	require.NoError(t, err)
	seq := a.Node(a.Root())
	require.Len(t, seq.Children, 5)
	while := a.Node(seq.Children[3])
	assert.Equal(t, ir.While, while.Typ)
}

func TestParseDivisionByZeroIsRuntimeNotSyntax(t *testing.T) {
	// `10 / 0` is syntactically valid; the error belongs to the evaluator, not the parser.
	a, err := Parse("print 10 / 0;")
	require.NoError(t, err)
	assert.NotZero(t, a.Root())
}

func TestParseSyntaxErrorOnMissingSemicolon(t *testing.T) {
	_, err := Parse("x = 1 print x;")
	require.Error(t, err)
	var perr *ir.ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestParseEmptyStatement(t *testing.T) {
	a, err := Parse(";;;")
	require.NoError(t, err)
	seq := a.Node(a.Root())
	require.Len(t, seq.Children, 3)
	for _, c := range seq.Children {
		assert.Equal(t, ir.Empty, a.Node(c).Typ)
	}
}

func TestParsePrintInsideExpression(t *testing.T) {
	// spec §3.3: "print yields the printed value so it may appear in larger expressions."
	a, err := Parse("x = print 5;")
	require.NoError(t, err)
	seq := a.Node(a.Root())
	assign := a.Node(seq.Children[0])
	require.Equal(t, ir.OpAssign, assign.Data)

	rhs := a.Node(assign.Children[1])
	require.Equal(t, ir.UnOp, rhs.Typ)
	assert.Equal(t, ir.UnPrint, rhs.Data)
}

func TestParsePrintTakesWholeExpression(t *testing.T) {
	// `print a * b + 1` must print the value of the whole expression, not just `a`: print's
	// operand is parsed at the full expression grammar, not at unary precedence.
	a, err := Parse("a = 2; b = 3; print a * b + 1;")
	require.NoError(t, err)
	seq := a.Node(a.Root())
	require.Len(t, seq.Children, 3)

	print := a.Node(seq.Children[2])
	require.Equal(t, ir.UnOp, print.Typ)
	require.Equal(t, ir.UnPrint, print.Data)

	operand := a.Node(print.Children[0])
	require.Equal(t, ir.BinOp, operand.Typ)
	assert.Equal(t, ir.OpAdd, operand.Data)
}

func TestParsePrintNested(t *testing.T) {
	a, err := Parse("print print 5;")
	require.NoError(t, err)
	seq := a.Node(a.Root())
	outer := a.Node(seq.Children[0])
	require.Equal(t, ir.UnOp, outer.Typ)
	require.Equal(t, ir.UnPrint, outer.Data)

	inner := a.Node(outer.Children[0])
	require.Equal(t, ir.UnOp, inner.Typ)
	assert.Equal(t, ir.UnPrint, inner.Data)
}

func TestParseReadExpression(t *testing.T) {
	a, err := Parse("x = ?; print x;")
	require.NoError(t, err)
	seq := a.Node(a.Root())
	assign := a.Node(seq.Children[0])
	read := a.Node(assign.Children[1])
	assert.Equal(t, ir.Read, read.Typ)
}
