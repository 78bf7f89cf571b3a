// Tests the lexer by verifying that a short ParaCL program is tokenized into the expected item
// sequence, with correct line and column positions.

package frontend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLexer(t *testing.T) {
	src := "x = 2;\nif (x >= 1 && x != 0) {\n  print x;\n}\n"

	exp := []item{
		{val: "x", typ: IDENTIFIER, line: 1, pos: 1},
		{val: "=", typ: itemType('='), line: 1, pos: 3},
		{val: "2", typ: INTEGER, line: 1, pos: 5},
		{val: ";", typ: itemType(';'), line: 1, pos: 6},
		{val: "if", typ: IF, line: 2, pos: 1},
		{val: "(", typ: itemType('('), line: 2, pos: 4},
		{val: "x", typ: IDENTIFIER, line: 2, pos: 5},
		{val: ">=", typ: GE, line: 2, pos: 7},
		{val: "1", typ: INTEGER, line: 2, pos: 10},
		{val: "&&", typ: AND, line: 2, pos: 12},
		{val: "x", typ: IDENTIFIER, line: 2, pos: 15},
		{val: "!=", typ: NE, line: 2, pos: 17},
		{val: "0", typ: INTEGER, line: 2, pos: 20},
		{val: ")", typ: itemType(')'), line: 2, pos: 21},
		{val: "{", typ: itemType('{'), line: 2, pos: 23},
		{val: "print", typ: PRINT, line: 3, pos: 3},
		{val: "x", typ: IDENTIFIER, line: 3, pos: 9},
		{val: ";", typ: itemType(';'), line: 3, pos: 10},
		{val: "}", typ: itemType('}'), line: 4, pos: 1},
	}

	l := newLexer(src, lexGlobal)
	go l.run()

	for i, want := range exp {
		got := l.nextItem()
		assert.Equalf(t, want.typ, got.typ, "token %d (%q)", i, want.val)
		assert.Equalf(t, want.val, got.val, "token %d", i)
		assert.Equalf(t, want.line, got.line, "token %d (%q) line", i, want.val)
		assert.Equalf(t, want.pos, got.pos, "token %d (%q) column", i, want.val)
	}

	last := l.nextItem()
	assert.Equal(t, itemEOF, last.typ)
}

func TestLexerLineComment(t *testing.T) {
	src := "x = 1; // trailing comment\nprint x;\n"
	l := newLexer(src, lexGlobal)
	go l.run()

	var got []itemType
	for {
		tok := l.nextItem()
		if tok.typ == itemEOF {
			break
		}
		got = append(got, tok.typ)
	}
	assert.Equal(t, []itemType{IDENTIFIER, itemType('='), INTEGER, itemType(';'), PRINT, IDENTIFIER, itemType(';')}, got)
}

func TestLexerUnterminatedNothingToDo(t *testing.T) {
	// ParaCL has no string or block-comment literal that can be left unterminated, so the lexer
	// has no "unclosed literal" failure mode, unlike the teacher's string-literal lexer. Its only
	// failure is a rune that belongs to no token, which ends the scan with an error item.
	src := "@;"
	l := newLexer(src, lexGlobal)
	go l.run()

	first := l.nextItem()
	assert.Equal(t, itemError, first.typ)
}
