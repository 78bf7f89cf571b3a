package frontend

import "strings"

// lexGlobal starts the lexing process and serves as the default state.
func lexGlobal(l *lexer) stateFunc {
	for {
		r := l.next()
		switch {
		case isAlpha(r):
			// Keyword or identifier.
			return lexWord
		case isDigit(r):
			// Number.
			return lexNumber
		case r == '\n':
			// Newline.
			l.ignore()
			l.line++
			l.startOnLine = 1
		case isSpace(r):
			// Ignore whitespace. Newlines are caught before whitespaces.
			l.ignore()
		case r == '<' && l.peek() == '=':
			l.next()
			l.emit(LE)
		case r == '>' && l.peek() == '=':
			l.next()
			l.emit(GE)
		case r == '=' && l.peek() == '=':
			l.next()
			l.emit(EQ)
		case r == '!' && l.peek() == '=':
			l.next()
			l.emit(NE)
		case r == '&' && l.peek() == '&':
			l.next()
			l.emit(AND)
		case r == '|' && l.peek() == '|':
			l.next()
			l.emit(OR)
		case r == '/' && l.peek() == '/':
			// Line comment.
			for c := l.next(); c != '\n' && c != eof; c = l.next() {
			}
			l.backup()
			l.ignore()
		case r == eof:
			// End of file: stop the state machine.
			l.emit(itemEOF)
			return nil
		case strings.ContainsRune("+-*/%<>!=(){};?", r):
			// Single-rune token: + - * / % < > ! = ( ) { } ; ?
			l.emit(itemType(r))
		default:
			// Any other rune is not part of a ParaCL token: stop at the first one.
			return l.errorf("unrecognized character %q", r)
		}
	}
}

// lexWord scans the input string for keywords and identifiers.
func lexWord(l *lexer) stateFunc {
	// The currently scanned rune is already known to be alphabetic.
	for {
		r := l.next()

		if !isAlpha(r) && !isDigit(r) && r != '_' {
			l.backup()
			kw, typ := isKeyword(l.input[l.start:l.pos])
			if kw {
				l.emit(typ)
			} else {
				l.emit(IDENTIFIER)
			}
			return lexGlobal
		}
	}
}

// lexNumber scans the input stream for an integer literal. ParaCL has no floating point type
// (spec §3.1), so unlike the teacher's lexNumber there is no decimal-point branch.
func lexNumber(l *lexer) stateFunc {
	// The first digit has already been scanned.
	r := l.next()
	for ; isDigit(r); r = l.next() {
	}
	l.backup()
	l.emit(INTEGER)
	return lexGlobal
}

// ----------------------------
// ----- Helper functions -----
// ----------------------------

// isAlpha return true if rune r is an alphabetic character in the set [a-zA-Z_].
func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

// isDigit return true if rune r is a digit in the range [0-9].
func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// isSpace return true if rune r is a whitespace character.
func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\f' || r == '\r'
}
