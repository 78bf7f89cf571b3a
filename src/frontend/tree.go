// tree.go provides the token-stream debug dump. Parsing itself lives in parser.go: unlike the
// teacher, which drives a goyacc-generated parser concurrently with the lexer goroutine, this
// package's Parse function (parser.go) pulls items from the lexer directly since no goyacc grammar
// was available to regenerate.

package frontend

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
)

// itemTypeName renders an itemType for the debug token dump.
func itemTypeName(t itemType) string {
	switch t {
	case itemEOF:
		return "EOF"
	case itemError:
		return "ERROR"
	case IF:
		return "IF"
	case ELSE:
		return "ELSE"
	case WHILE:
		return "WHILE"
	case PRINT:
		return "PRINT"
	case IDENTIFIER:
		return "IDENTIFIER"
	case INTEGER:
		return "INTEGER"
	case LE:
		return "LE"
	case GE:
		return "GE"
	case EQ:
		return "EQ"
	case NE:
		return "NE"
	case AND:
		return "AND"
	case OR:
		return "OR"
	default:
		return fmt.Sprintf("%q", rune(t))
	}
}

// TokenStream lexes src and returns a tab-aligned listing of every token, for the debug side
// channel described in SPEC_FULL.md. It never invokes the parser.
func TokenStream(src string) (string, error) {
	l := newLexer(src, lexGlobal)
	go l.run()

	sb := strings.Builder{}
	tw := tabwriter.NewWriter(&sb, 10, 20, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Value\tType\tPosition\n")
	for {
		t := l.nextItem()
		switch t.typ {
		case itemEOF:
			if err := tw.Flush(); err != nil {
				return sb.String(), err
			}
			return sb.String(), nil
		case itemError:
			_ = tw.Flush()
			return sb.String(), errors.New(t.val)
		default:
			_, _ = fmt.Fprintf(tw, "%q\t%s\tline: %d:%d\n", t.val, itemTypeName(t.typ), t.line, t.pos)
		}
	}
}
