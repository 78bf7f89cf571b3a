// dump.go implements the AST dumper (component F, spec §4.5): a single-pass walk of an ir.Arena
// that assigns each visited node a fresh integer id and emits graphviz digraph syntax, grounded on
// the original's ast_node_dumper/dot_ast_t/ast_dumper triad
// (original_source/ParaCL/include/AST_dumper.h). The original splits node-labeling, edge-collection
// and digraph assembly into three cooperating classes; here they collapse into one Dumper type
// since Go has no need for the original's visitor-template indirection.
package dot

import (
	"fmt"
	"io"

	"paracl/src/ir"
	"paracl/src/util"
)

// edge is one graphviz edge, labeled with the child's role in its parent's variant.
type edge struct {
	from, to int
	label    string
}

// Dumper walks an Arena once and renders it as a graphviz digraph.
type Dumper struct {
	arena *ir.Arena
	ids   *util.IDGen
	index map[ir.NodeID]int
	edges []edge
}

// NewDumper returns a Dumper for arena.
func NewDumper(arena *ir.Arena) *Dumper {
	return &Dumper{arena: arena, ids: &util.IDGen{}, index: make(map[ir.NodeID]int)}
}

// Dump writes arena's syntax tree to w as `digraph "AST" { ... }`. Invisible rank-ordering edges
// are emitted before the real ones so graphviz lays out children in source order, matching the
// original's dump_edges_invis pass.
func Dump(w io.Writer, arena *ir.Arena) error {
	d := NewDumper(arena)
	d.visit(arena.Root())

	if _, err := fmt.Fprintln(w, "digraph \"AST\"\n{"); err != nil {
		return err
	}
	for _, e := range d.edges {
		if _, err := fmt.Fprintf(w, "\t%d -> %d [style=invis]\n", e.from, e.to); err != nil {
			return err
		}
	}
	for id, graphID := range d.index {
		if _, err := fmt.Fprintf(w, "\t%d [label=%q]\n", graphID, label(arena.Node(id))); err != nil {
			return err
		}
	}
	for _, e := range d.edges {
		lbl := e.label
		if lbl == "" {
			if _, err := fmt.Fprintf(w, "\t%d -> %d [style=solid]\n", e.from, e.to); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "\t%d -> %d [style=solid label=%q]\n", e.from, e.to, lbl); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}

// visit assigns id a fresh graph id, records it, and recurses into its children with
// variant-appropriate edge labels.
func (d *Dumper) visit(id ir.NodeID) int {
	gid := d.ids.Next()
	d.index[id] = gid
	n := d.arena.Node(id)

	switch n.Typ {
	case ir.BinOp:
		d.edge(gid, n.Children[0], "lhs")
		d.edge(gid, n.Children[1], "rhs")
	case ir.UnOp:
		d.edge(gid, n.Children[0], "operand")
	case ir.Seq, ir.Scope:
		for i, c := range n.Children {
			d.edge(gid, c, fmt.Sprintf("%d", i))
		}
	case ir.If:
		d.edge(gid, n.Children[0], "cond")
		d.edge(gid, n.Children[1], "body")
	case ir.IfElse:
		d.edge(gid, n.Children[0], "cond")
		d.edge(gid, n.Children[1], "body")
		d.edge(gid, n.Children[2], "else_body")
	case ir.While:
		d.edge(gid, n.Children[0], "cond")
		d.edge(gid, n.Children[1], "body")
	case ir.Number, ir.Var, ir.LVal, ir.Empty, ir.Read:
		// Leaves: no children to recurse into.
	}
	return gid
}

// edge records a labeled edge from the already-assigned parent id to child, visiting child first.
func (d *Dumper) edge(parentGid int, child ir.NodeID, lbl string) {
	childGid := d.visit(child)
	d.edges = append(d.edges, edge{from: parentGid, to: childGid, label: lbl})
}

// label renders a node's graphviz label, matching the original's get_label_str switch.
func label(n *ir.Node) string {
	switch n.Typ {
	case ir.Number:
		return fmt.Sprintf("Number\n %d", n.Data.(int64))
	case ir.Var:
		return fmt.Sprintf("Variable\n %s", n.Data.(string))
	case ir.LVal:
		return fmt.Sprintf("Left value\n %s", n.Data.(string))
	case ir.BinOp:
		return n.Data.(ir.BinOpKind).String()
	case ir.UnOp:
		return n.Data.(ir.UnOpKind).String()
	case ir.Seq:
		return "Statements"
	case ir.Scope:
		return "Scope"
	case ir.Read:
		return "Read"
	case ir.If:
		return "if"
	case ir.IfElse:
		return "if else"
	case ir.While:
		return "while"
	case ir.Empty:
		return "empty"
	default:
		return n.Typ.String()
	}
}
