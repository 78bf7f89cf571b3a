// parser.go implements a hand-written recursive-descent parser for ParaCL (component C's builder,
// spec §4.3). The teacher repository drives a goyacc-generated parser from parser.y; no such grammar
// file was retrieved with it, and goyacc cannot be regenerated without running the Go toolchain, so
// this parser walks the lexer's item stream directly instead, using one function per precedence
// level from spec §6's informal grammar. It plays the same role the C++ recursive-descent
// parser_t (original_source/ParaCL/include/parser.h) plays in the original: build-time identifier
// resolution happens here, against a SymTab that is thrown away once parsing succeeds, while a
// second SymTab is built fresh by the evaluator for runtime storage (see ir/symtab.go).

package frontend

import (
	"paracl/src/ir"
	"paracl/src/util"
)

// parser holds the state needed to turn a lexer's item stream into an ir.Arena.
type parser struct {
	l     *lexer
	tok   item
	arena *ir.Arena
	syms  *ir.SymTab
}

// newParser starts the lexer goroutine and primes the first lookahead token.
func newParser(src string) *parser {
	l := newLexer(src, lexGlobal)
	go l.run()
	p := &parser{l: l, arena: ir.NewArena(), syms: ir.NewSymTab()}
	p.syms.PushScope()
	p.advance()
	return p
}

// advance consumes the current lookahead and fetches the next one.
func (p *parser) advance() {
	p.tok = p.l.nextItem()
}

// rangeOf converts an item's position into a one-line util.Range spanning its lexeme.
func rangeOf(it item) util.Range {
	last := it.pos + len(it.val) - 1
	if last < it.pos {
		last = it.pos
	}
	return util.Range{FirstLine: it.line, FirstColumn: it.pos, LastLine: it.line, LastColumn: last}
}

// expect consumes the current token if it has type typ, reporting a ParseError otherwise.
func (p *parser) expect(typ itemType, want string) (item, error) {
	if p.tok.typ == itemError {
		return item{}, &ir.LexError{Range: rangeOf(p.tok), Message: p.tok.val}
	}
	if p.tok.typ != typ {
		return item{}, &ir.ParseError{Range: rangeOf(p.tok), Message: "expected " + want + ", got " + p.tok.String()}
	}
	cur := p.tok
	p.advance()
	return cur, nil
}

// Parse lexes and parses src, producing an Arena rooted at the program's top-level statement
// sequence, or the first LexError/ParseError/UndefinedVariableError encountered.
func Parse(src string) (*ir.Arena, error) {
	p := newParser(src)
	root, err := p.parseStmtList(itemEOF)
	if err != nil {
		return nil, err
	}
	if p.tok.typ == itemError {
		return nil, &ir.LexError{Range: rangeOf(p.tok), Message: p.tok.val}
	}
	if p.tok.typ != itemEOF {
		return nil, &ir.ParseError{Range: rangeOf(p.tok), Message: "expected end of file, got " + p.tok.String()}
	}
	p.arena.SetRoot(root)
	return p.arena, nil
}

// parseStmtList parses statements until it sees until (itemEOF at top level, '}' inside a block).
func (p *parser) parseStmtList(until itemType) (ir.NodeID, error) {
	start := rangeOf(p.tok)
	var children []ir.NodeID
	for p.tok.typ != until && p.tok.typ != itemEOF && p.tok.typ != itemError {
		stmt, err := p.parseStmt()
		if err != nil {
			return 0, err
		}
		children = append(children, stmt)
	}
	return p.arena.MakeNode(ir.Seq, start, nil, children...), nil
}

// parseStmt parses a single statement (spec §6). `print expr ;` has no dedicated case here: it
// falls through to the default expression-statement branch, since parseUnary already recognizes
// PRINT as a prefix operator (spec §3.3's "print yields the printed value so it may appear in
// larger expressions").
func (p *parser) parseStmt() (ir.NodeID, error) {
	switch p.tok.typ {
	case itemType('{'):
		return p.parseBlock()
	case IF:
		return p.parseIf()
	case WHILE:
		return p.parseWhile()
	case itemType(';'):
		// Empty statement.
		rng := rangeOf(p.tok)
		p.advance()
		return p.arena.MakeNode(ir.Empty, rng, nil), nil
	default:
		expr, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		if _, err := p.expect(itemType(';'), "';'"); err != nil {
			return 0, err
		}
		return expr, nil
	}
}

// parseBlock parses `{ stmtList }`, pushing and popping a symbol table scope around it so that
// names declared inside are not visible afterward (spec §3.2, §8 scenario 5).
func (p *parser) parseBlock() (ir.NodeID, error) {
	open, _ := p.expect(itemType('{'), "'{'")
	p.syms.PushScope()
	body, err := p.parseStmtList(itemType('}'))
	p.syms.PopScope()
	if err != nil {
		return 0, err
	}
	if _, err := p.expect(itemType('}'), "'}'"); err != nil {
		return 0, err
	}
	rng := rangeOf(open)
	return p.arena.MakeNode(ir.Scope, rng, nil, body), nil
}

// parseIf parses `if (expr) stmt [else stmt]`.
func (p *parser) parseIf() (ir.NodeID, error) {
	kw, _ := p.expect(IF, "'if'")
	if _, err := p.expect(itemType('('), "'('"); err != nil {
		return 0, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	if _, err := p.expect(itemType(')'), "')'"); err != nil {
		return 0, err
	}
	then, err := p.parseStmt()
	if err != nil {
		return 0, err
	}
	rng := rangeOf(kw)
	if p.tok.typ == ELSE {
		p.advance()
		els, err := p.parseStmt()
		if err != nil {
			return 0, err
		}
		return p.arena.MakeNode(ir.IfElse, rng, nil, cond, then, els), nil
	}
	return p.arena.MakeNode(ir.If, rng, nil, cond, then), nil
}

// parseWhile parses `while (expr) stmt`.
func (p *parser) parseWhile() (ir.NodeID, error) {
	kw, _ := p.expect(WHILE, "'while'")
	if _, err := p.expect(itemType('('), "'('"); err != nil {
		return 0, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	if _, err := p.expect(itemType(')'), "')'"); err != nil {
		return 0, err
	}
	body, err := p.parseStmt()
	if err != nil {
		return 0, err
	}
	return p.arena.MakeNode(ir.While, rangeOf(kw), nil, cond, body), nil
}

// parseExpr parses the lowest precedence level: right-associative assignment.
func (p *parser) parseExpr() (ir.NodeID, error) {
	return p.parseAssignment()
}

// parseAssignment implements `IDENT = assignment | logicOr` (spec §6). Only an identifier may
// appear on the left of `=`; it is declared (or re-used, if already visible) here at build time.
func (p *parser) parseAssignment() (ir.NodeID, error) {
	if p.tok.typ == IDENTIFIER {
		save := p.tok
		// Lookahead one token to distinguish `ident =` from a plain expression starting
		// with ident; the lexer has no backtracking, so peek by consuming and remembering.
		nameTok := p.tok
		p.advance()
		if p.tok.typ == itemType('=') {
			p.advance()
			// Declare only validates name visibility at build time; the runtime symbol
			// table the evaluator uses is a separate instance that declares names again
			// as it walks the tree (see ir/symtab.go), so only the name travels with the
			// node, not a build-time slot number.
			p.syms.Declare(nameTok.val)
			rng := rangeOf(nameTok)
			lval := p.arena.MakeNode(ir.LVal, rng, nameTok.val)
			rhs, err := p.parseAssignment()
			if err != nil {
				return 0, err
			}
			return p.arena.MakeNode(ir.BinOp, rng, ir.OpAssign, lval, rhs), nil
		}
		// Not an assignment: re-synthesize the Var node and fall through to the
		// precedence chain via parseLogicOrFromIdent, carrying the token we already consumed.
		return p.parseLogicOrFromIdent(save)
	}
	return p.parseLogicOr()
}

// parseLogicOrFromIdent resumes the precedence chain when the first token of an expression was
// already consumed as a lookahead identifier that turned out not to start an assignment.
func (p *parser) parseLogicOrFromIdent(nameTok item) (ir.NodeID, error) {
	lhs, err := p.primaryFromIdent(nameTok)
	if err != nil {
		return 0, err
	}
	lhs, err = p.parseMulFrom(lhs)
	if err != nil {
		return 0, err
	}
	lhs, err = p.parseAddFrom(lhs)
	if err != nil {
		return 0, err
	}
	lhs, err = p.parseRelFrom(lhs)
	if err != nil {
		return 0, err
	}
	lhs, err = p.parseEqFrom(lhs)
	if err != nil {
		return 0, err
	}
	lhs, err = p.parseAndFrom(lhs)
	if err != nil {
		return 0, err
	}
	return p.parseOrFrom(lhs)
}

// primaryFromIdent turns an already-consumed identifier token into a Var node, reporting
// UndefinedVariableError if it is not currently visible in the build-time symbol table.
func (p *parser) primaryFromIdent(nameTok item) (ir.NodeID, error) {
	if _, ok := p.syms.Lookup(nameTok.val); !ok {
		return 0, &ir.UndefinedVariableError{Name: nameTok.val, Range: rangeOf(nameTok)}
	}
	return p.arena.MakeNode(ir.Var, rangeOf(nameTok), nameTok.val), nil
}

// parseLogicOr implements `logicAnd (OR logicAnd)*`.
func (p *parser) parseLogicOr() (ir.NodeID, error) {
	lhs, err := p.parseLogicAnd()
	if err != nil {
		return 0, err
	}
	return p.parseOrFrom(lhs)
}

func (p *parser) parseOrFrom(lhs ir.NodeID) (ir.NodeID, error) {
	for p.tok.typ == OR {
		rng := rangeOf(p.tok)
		p.advance()
		rhs, err := p.parseLogicAnd()
		if err != nil {
			return 0, err
		}
		lhs = p.arena.MakeNode(ir.BinOp, rng, ir.OpOr, lhs, rhs)
	}
	return lhs, nil
}

// parseLogicAnd implements `equality (AND equality)*`.
func (p *parser) parseLogicAnd() (ir.NodeID, error) {
	lhs, err := p.parseEquality()
	if err != nil {
		return 0, err
	}
	return p.parseAndFrom(lhs)
}

func (p *parser) parseAndFrom(lhs ir.NodeID) (ir.NodeID, error) {
	for p.tok.typ == AND {
		rng := rangeOf(p.tok)
		p.advance()
		rhs, err := p.parseEquality()
		if err != nil {
			return 0, err
		}
		lhs = p.arena.MakeNode(ir.BinOp, rng, ir.OpAnd, lhs, rhs)
	}
	return lhs, nil
}

// parseEquality implements `relational ((EQ|NE) relational)*`.
func (p *parser) parseEquality() (ir.NodeID, error) {
	lhs, err := p.parseRelational()
	if err != nil {
		return 0, err
	}
	return p.parseEqFrom(lhs)
}

func (p *parser) parseEqFrom(lhs ir.NodeID) (ir.NodeID, error) {
	for p.tok.typ == EQ || p.tok.typ == NE {
		op, rng := eqOpKind(p.tok)
		p.advance()
		rhs, err := p.parseRelational()
		if err != nil {
			return 0, err
		}
		lhs = p.arena.MakeNode(ir.BinOp, rng, op, lhs, rhs)
	}
	return lhs, nil
}

func eqOpKind(it item) (ir.BinOpKind, util.Range) {
	if it.typ == EQ {
		return ir.OpEq, rangeOf(it)
	}
	return ir.OpNe, rangeOf(it)
}

// parseRelational implements `additive ((LT|GT|LE|GE) additive)*`.
func (p *parser) parseRelational() (ir.NodeID, error) {
	lhs, err := p.parseAdditive()
	if err != nil {
		return 0, err
	}
	return p.parseRelFrom(lhs)
}

func (p *parser) parseRelFrom(lhs ir.NodeID) (ir.NodeID, error) {
	for p.tok.typ == LE || p.tok.typ == GE || p.tok.typ == itemType('<') || p.tok.typ == itemType('>') {
		op, rng := relOpKind(p.tok)
		p.advance()
		rhs, err := p.parseAdditive()
		if err != nil {
			return 0, err
		}
		lhs = p.arena.MakeNode(ir.BinOp, rng, op, lhs, rhs)
	}
	return lhs, nil
}

func relOpKind(it item) (ir.BinOpKind, util.Range) {
	rng := rangeOf(it)
	switch it.typ {
	case LE:
		return ir.OpLe, rng
	case GE:
		return ir.OpGe, rng
	case itemType('<'):
		return ir.OpLt, rng
	default:
		return ir.OpGt, rng
	}
}

// parseAdditive implements `multiplicative (('+'|'-') multiplicative)*`.
func (p *parser) parseAdditive() (ir.NodeID, error) {
	lhs, err := p.parseMultiplicative()
	if err != nil {
		return 0, err
	}
	return p.parseAddFrom(lhs)
}

func (p *parser) parseAddFrom(lhs ir.NodeID) (ir.NodeID, error) {
	for p.tok.typ == itemType('+') || p.tok.typ == itemType('-') {
		op := ir.OpAdd
		if p.tok.typ == itemType('-') {
			op = ir.OpSub
		}
		rng := rangeOf(p.tok)
		p.advance()
		rhs, err := p.parseMultiplicative()
		if err != nil {
			return 0, err
		}
		lhs = p.arena.MakeNode(ir.BinOp, rng, op, lhs, rhs)
	}
	return lhs, nil
}

// parseMultiplicative implements `unary (('*'|'/'|'%') unary)*`.
func (p *parser) parseMultiplicative() (ir.NodeID, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	return p.parseMulFrom(lhs)
}

func (p *parser) parseMulFrom(lhs ir.NodeID) (ir.NodeID, error) {
	for p.tok.typ == itemType('*') || p.tok.typ == itemType('/') || p.tok.typ == itemType('%') {
		var op ir.BinOpKind
		switch p.tok.typ {
		case itemType('*'):
			op = ir.OpMul
		case itemType('/'):
			op = ir.OpDiv
		default:
			op = ir.OpMod
		}
		rng := rangeOf(p.tok)
		p.advance()
		rhs, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		lhs = p.arena.MakeNode(ir.BinOp, rng, op, lhs, rhs)
	}
	return lhs, nil
}

// parseUnary implements `('+'|'-'|'!') unary | PRINT expr | primary`. `print` is grounded on
// ast_print_op (_examples/original_source/ParaCL/include/AST.h:332), which derives from the same
// ast_un_op_t base as `!`/unary `-`/unary `+`; unlike those three, though, its operand is the full
// expression grammar (parseAssignment), not another unary, so that the statement form `print expr;`
// (spec §6) prints the value of the whole expression rather than just its first unary operand —
// `print a * b + 1;` must print `a*b+1`, not `a` negated by whatever followed. This also makes
// `print` reachable from inside a larger expression (spec §3.3), e.g. `x = print 5;`.
func (p *parser) parseUnary() (ir.NodeID, error) {
	switch p.tok.typ {
	case itemType('+'), itemType('-'), itemType('!'):
		op := unOpKind(p.tok.typ)
		rng := rangeOf(p.tok)
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		return p.arena.MakeNode(ir.UnOp, rng, op, operand), nil
	case PRINT:
		rng := rangeOf(p.tok)
		p.advance()
		operand, err := p.parseAssignment()
		if err != nil {
			return 0, err
		}
		return p.arena.MakeNode(ir.UnOp, rng, ir.UnPrint, operand), nil
	default:
		return p.parsePrimary()
	}
}

func unOpKind(t itemType) ir.UnOpKind {
	switch t {
	case itemType('+'):
		return ir.UnPlus
	case itemType('-'):
		return ir.UnMinus
	default:
		return ir.UnNot
	}
}

// parsePrimary implements `INTEGER | IDENTIFIER | '?' | '(' expr ')'`.
func (p *parser) parsePrimary() (ir.NodeID, error) {
	switch p.tok.typ {
	case INTEGER:
		return p.parseInteger()
	case IDENTIFIER:
		nameTok := p.tok
		p.advance()
		return p.primaryFromIdent(nameTok)
	case itemType('?'):
		rng := rangeOf(p.tok)
		p.advance()
		return p.arena.MakeNode(ir.Read, rng, nil), nil
	case itemType('('):
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		if _, err := p.expect(itemType(')'), "')'"); err != nil {
			return 0, err
		}
		return inner, nil
	case itemError:
		return 0, &ir.LexError{Range: rangeOf(p.tok), Message: p.tok.val}
	default:
		return 0, &ir.ParseError{Range: rangeOf(p.tok), Message: "expected expression, got " + p.tok.String()}
	}
}

// parseInteger converts the current INTEGER token's lexeme to int64 and emits a Number node.
// The lexer only ever produces digit runs (lexNumber), so the digit loop below has no error case.
func (p *parser) parseInteger() (ir.NodeID, error) {
	tok := p.tok
	p.advance()
	var v int64
	for _, c := range tok.val {
		v = v*10 + int64(c-'0')
	}
	return p.arena.MakeNode(ir.Number, rangeOf(tok), v), nil
}
