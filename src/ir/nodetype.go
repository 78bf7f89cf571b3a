// nodetype.go defines the AST node taxonomy (component C) and the arena that owns every node
// (component D). Unlike the teacher's Node, whose Children are direct *Node pointers, nodes here
// refer to their children through stable NodeID handles into the owning Arena, per spec §9's design
// note preferring index handles: cheap copies, stable identity for the DOT dumper's integer ids, and
// a single point of allocation and release.

package ir

import (
	"fmt"

	"paracl/src/util"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// NodeType differentiates the twelve syntactic forms of a ParaCL AST node (spec §3.3).
type NodeType int

// NodeID is a stable handle to a Node owned by an Arena. The zero value is not a valid handle;
// Arena.MakeNode never returns 0.
type NodeID int

// BinOpKind identifies a binary operator node's operation.
type BinOpKind int

// UnOpKind identifies a unary operator node's operation.
type UnOpKind int

// Node is one node of the AST. Its Children are handles into the Arena that built it.
type Node struct {
	Typ      NodeType
	Range    util.Range
	Data     interface{} // int64 for Number, string for Var/LVal, BinOpKind/UnOpKind for operators.
	Children []NodeID
}

// Arena owns every Node allocated while building one program's AST. There is no deletion during
// building; the Arena is dropped as a whole once evaluation finishes.
type Arena struct {
	nodes []Node
	root  NodeID
}

// ---------------------
// ----- Constants -----
// ---------------------

const (
	Number NodeType = iota // integer literal
	Var                    // variable read
	LVal                   // variable write target
	Empty                  // placeholder node
	BinOp                  // binary operator
	UnOp                   // unary operator
	Read                   // the `?` expression
	Seq                    // statement sequence
	Scope                  // scoped statement sequence
	If                     // conditional without else
	IfElse                 // conditional with else
	While                  // while loop
)

var nodeTypeNames = [...]string{
	Number: "Number", Var: "Variable", LVal: "LVal", Empty: "Empty",
	BinOp: "BinOp", UnOp: "UnOp", Read: "Read", Seq: "Seq",
	Scope: "Scope", If: "If", IfElse: "IfElse", While: "While",
}

const (
	OpAdd BinOpKind = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpLt
	OpLe
	OpGt
	OpGe
	OpEq
	OpNe
	OpAnd
	OpOr
	OpAssign
)

var binOpNames = [...]string{
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpMod: "%",
	OpLt: "<", OpLe: "<=", OpGt: ">", OpGe: ">=", OpEq: "==", OpNe: "!=",
	OpAnd: "&&", OpOr: "||", OpAssign: "=",
}

const (
	UnPlus UnOpKind = iota
	UnMinus
	UnNot
	UnPrint
)

var unOpNames = [...]string{
	UnPlus: "+", UnMinus: "-", UnNot: "!", UnPrint: "print",
}

// ----------------------
// ----- functions ------
// ----------------------

// String returns the operator's source spelling.
func (k BinOpKind) String() string { return binOpNames[k] }

// String returns the operator's source spelling.
func (k UnOpKind) String() string { return unOpNames[k] }

// String returns a print-friendly name for the node type.
func (t NodeType) String() string {
	if int(t) < 0 || int(t) >= len(nodeTypeNames) {
		return fmt.Sprintf("NodeType(%d)", t)
	}
	return nodeTypeNames[t]
}

// NewArena returns an empty Arena ready to build one program's AST.
func NewArena() *Arena {
	// Reserve index 0 so that the zero NodeID can serve as "no handle".
	return &Arena{nodes: make([]Node, 1, 64)}
}

// MakeNode allocates a new node of type typ with the given source range, data payload and children,
// and returns its handle. The handle remains valid for the lifetime of the Arena.
func (a *Arena) MakeNode(typ NodeType, rng util.Range, data interface{}, children ...NodeID) NodeID {
	id := NodeID(len(a.nodes))
	a.nodes = append(a.nodes, Node{Typ: typ, Range: rng, Data: data, Children: children})
	return id
}

// Node dereferences handle id, returning a pointer to the owned Node.
// The returned pointer is stable until the Arena is dropped.
func (a *Arena) Node(id NodeID) *Node {
	return &a.nodes[id]
}

// SetRoot marks id as the root of the program.
func (a *Arena) SetRoot(id NodeID) { a.root = id }

// Root returns the program's root handle, or the invalid zero handle if none was set.
func (a *Arena) Root() NodeID { return a.root }

// Len returns the number of nodes allocated in the arena, including the reserved zero slot.
func (a *Arena) Len() int { return len(a.nodes) }
