// eval.go implements the evaluator (component E, spec §4.4): a recursive post-order walker over an
// ir.Arena that dispatches on node variant, the same shape the teacher's ir/validate.go used to
// walk its syntax tree for semantic checks before a separate backend compiled it. ParaCL has no
// separate validate/compile split: this single walker both interprets and is the only place that
// can fail at runtime.
//
// The evaluator owns a SymTab instance distinct from the one the builder (src/frontend) used during
// parsing. The builder's instance only ever validated name visibility and is discarded once parsing
// succeeds; this one holds live values and is pushed/popped in lockstep with the Scope nodes it
// walks, mirroring _examples/archevan-glox's chained Environment.Get/Assign/Define walk but backed
// by ir.SymTab's flat-map-plus-scope-stack shape instead of a linked list of maps.
package eval

import (
	"paracl/src/ir"
	"paracl/src/util"
)

// Evaluator walks one program's Arena to completion.
type Evaluator struct {
	arena   *ir.Arena
	symbols *ir.SymTab
	streams *util.Streams
}

// New returns an Evaluator ready to run arena's root node against a fresh symbol table.
func New(arena *ir.Arena, streams *util.Streams) *Evaluator {
	return &Evaluator{arena: arena, symbols: ir.NewSymTab(), streams: streams}
}

// Symbols returns the evaluator's runtime symbol table, for the debug ST_dump side channel.
func (e *Evaluator) Symbols() *ir.SymTab { return e.symbols }

// Run evaluates the program to completion, flushing standard output before returning. The result
// value at the program root is discarded per spec §4.4; only the error, if any, matters to the
// caller. The top-level scope is never popped: the whole symbol table is dropped together with the
// evaluator at program exit (spec §5), and leaving it intact lets a caller inspect the final
// top-level bindings afterward (spec §8's "final symbol table size" invariant, and the debug
// ST_dump side channel).
func (e *Evaluator) Run() error {
	e.symbols.PushScope()
	_, err := e.eval(e.arena.Root())
	if flushErr := e.streams.Out.Flush(); err == nil {
		err = flushErr
	}
	return err
}

// eval dispatches on n's node variant and returns its value, per the per-variant contracts of
// spec §4.4.
func (e *Evaluator) eval(id ir.NodeID) (ir.Value, error) {
	n := e.arena.Node(id)
	switch n.Typ {
	case ir.Number:
		return ir.IntVal(n.Data.(int64)), nil

	case ir.Var:
		name := n.Data.(string)
		slot, ok := e.symbols.Lookup(name)
		if !ok {
			// Unreachable if the builder validated correctly (spec §4.3); guarded anyway
			// since the evaluator uses its own independent symbol table instance.
			return ir.Value{}, &ir.UndefinedVariableError{Name: name, Range: n.Range}
		}
		return ir.IntVal(e.symbols.Get(slot)), nil

	case ir.LVal:
		name := n.Data.(string)
		slot := e.symbols.Declare(name)
		return ir.LRefVal(slot), nil

	case ir.Empty:
		return ir.IntVal(0), nil

	case ir.Seq:
		return e.evalSeq(n.Children)

	case ir.Scope:
		e.symbols.PushScope()
		v, err := e.evalSeq(n.Children)
		e.symbols.PopScope()
		return v, err

	case ir.BinOp:
		return e.evalBinOp(n)

	case ir.UnOp:
		return e.evalUnOp(n)

	case ir.Read:
		v, err := util.ReadInt(e.streams.In)
		if err != nil {
			return ir.Value{}, &ir.InputFormatError{Range: n.Range, Cause: err}
		}
		return ir.IntVal(v), nil

	case ir.If:
		return e.evalIf(n)

	case ir.IfElse:
		return e.evalIfElse(n)

	case ir.While:
		return e.evalWhile(n)

	default:
		return ir.Value{}, &ir.InvalidOperandError{Range: n.Range, Op: n.Typ.String()}
	}
}

// evalSeq evaluates children left-to-right, returning the last child's value or Int(0) if empty
// (also used by Scope after pushing/popping).
func (e *Evaluator) evalSeq(children []ir.NodeID) (ir.Value, error) {
	v := ir.IntVal(0)
	for _, c := range children {
		var err error
		v, err = e.eval(c)
		if err != nil {
			return ir.Value{}, err
		}
	}
	return v, nil
}

// evalBinOp evaluates a BinOp node. Assignment is special-cased here because it needs write access
// to the symbol table that ir.BinaryOp intentionally does not have (spec §4.4).
func (e *Evaluator) evalBinOp(n *ir.Node) (ir.Value, error) {
	op := n.Data.(ir.BinOpKind)
	if op == ir.OpAssign {
		rhs, err := e.eval(n.Children[1])
		if err != nil {
			return ir.Value{}, err
		}
		if !rhs.IsInt() {
			return ir.Value{}, &ir.InvalidOperandError{Range: n.Range, Op: "="}
		}
		lref, err := e.eval(n.Children[0])
		if err != nil {
			return ir.Value{}, err
		}
		if !lref.IsLRef() {
			return ir.Value{}, &ir.InvalidOperandError{Range: n.Range, Op: "="}
		}
		e.symbols.Set(lref.Slot, rhs.Int)
		return ir.IntVal(rhs.Int), nil
	}

	lhs, err := e.eval(n.Children[0])
	if err != nil {
		return ir.Value{}, err
	}
	rhs, err := e.eval(n.Children[1])
	if err != nil {
		return ir.Value{}, err
	}
	return ir.BinaryOp(op, lhs, rhs, n.Range)
}

// evalUnOp evaluates a UnOp node. `print` is special-cased for the same reason assignment is:
// it needs the output stream, which ir.UnaryOp intentionally does not have.
func (e *Evaluator) evalUnOp(n *ir.Node) (ir.Value, error) {
	op := n.Data.(ir.UnOpKind)
	arg, err := e.eval(n.Children[0])
	if err != nil {
		return ir.Value{}, err
	}
	if op == ir.UnPrint {
		if !arg.IsInt() {
			return ir.Value{}, &ir.InvalidOperandError{Range: n.Range, Op: "print"}
		}
		if err := util.WriteLine(e.streams.Out, arg.Int); err != nil {
			return ir.Value{}, err
		}
		return arg, nil
	}
	return ir.UnaryOp(op, arg, n.Range)
}

// evalIf evaluates `If(cond, body)`.
func (e *Evaluator) evalIf(n *ir.Node) (ir.Value, error) {
	cond, err := e.eval(n.Children[0])
	if err != nil {
		return ir.Value{}, err
	}
	truthy, err := ir.Truthy(cond, n.Range)
	if err != nil {
		return ir.Value{}, err
	}
	if truthy {
		return e.eval(n.Children[1])
	}
	return ir.IntVal(0), nil
}

// evalIfElse evaluates `IfElse(cond, then, else)`.
func (e *Evaluator) evalIfElse(n *ir.Node) (ir.Value, error) {
	cond, err := e.eval(n.Children[0])
	if err != nil {
		return ir.Value{}, err
	}
	truthy, err := ir.Truthy(cond, n.Range)
	if err != nil {
		return ir.Value{}, err
	}
	if truthy {
		return e.eval(n.Children[1])
	}
	return e.eval(n.Children[2])
}

// evalWhile evaluates `While(cond, body)` repeatedly until cond is falsy, yielding the body's last
// value or Int(0) if the loop never ran.
func (e *Evaluator) evalWhile(n *ir.Node) (ir.Value, error) {
	v := ir.IntVal(0)
	for {
		cond, err := e.eval(n.Children[0])
		if err != nil {
			return ir.Value{}, err
		}
		truthy, err := ir.Truthy(cond, n.Range)
		if err != nil {
			return ir.Value{}, err
		}
		if !truthy {
			return v, nil
		}
		v, err = e.eval(n.Children[1])
		if err != nil {
			return ir.Value{}, err
		}
	}
}
