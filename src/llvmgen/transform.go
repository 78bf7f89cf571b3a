// Package llvmgen provides the optional `-emit-llvm` backend: transforming a parsed ParaCL Arena
// into LLVM IR for the system-installed LLVM runtime. It is grounded on the teacher's
// ir/llvm/transform.go, shrunk to fit ParaCL's shape: the source language has no user-defined
// functions, so there is no genFuncHeader/genFuncBody split or parallel worker-pool fan-out over
// top-level declarations (compare transform.go's GenLLVM, which splits root.Children across
// opt.Threads goroutines) — the whole program lowers into a single generated `main`.
//
// Variables are lowered to stack allocations (alloca/load/store), mirroring the teacher's
// genStore/genLoad pair, except addressed by name directly against a single flat map instead of a
// stack of scope frames: LLVM values keep their static single-assignment validity for the lifetime
// of the function regardless of ParaCL's interpreted scope-reclaim rule, so nothing is reclaimed
// during code generation.
package llvmgen

import (
	"fmt"
	"path/filepath"

	"tinygo.org/x/go-llvm"

	"paracl/src/ir"
)

// generator holds the LLVM handles and ParaCL state needed while lowering one Arena.
type generator struct {
	arena   *ir.Arena
	ctx     llvm.Context
	builder llvm.Builder
	module  llvm.Module
	fn      llvm.Value
	locals  map[string]llvm.Value // name -> stack slot (alloca)
	i64     llvm.Type
}

// Generate lowers arena into an LLVM module named after src, emitting a single `main` function
// that performs the same computation the tree-walking evaluator would, except that `/` and `%`
// are emitted without a zero-divisor check, so no DivisionByZero error is raised.
func Generate(arena *ir.Arena, src string) (llvm.Context, llvm.Module, error) {
	ctx := llvm.NewContext()
	builder := ctx.NewBuilder()
	module := ctx.NewModule(filepath.Base(src))

	g := &generator{
		arena:   arena,
		ctx:     ctx,
		builder: builder,
		module:  module,
		locals:  make(map[string]llvm.Value, 16),
		i64:     ctx.Int64Type(),
	}

	mainType := llvm.FunctionType(ctx.Int32Type(), nil, false)
	g.fn = llvm.AddFunction(module, "main", mainType)
	entry := ctx.AddBasicBlock(g.fn, "entry")
	builder.SetInsertPointAtEnd(entry)

	if _, err := g.gen(arena.Root()); err != nil {
		builder.Dispose()
		module.Dispose()
		ctx.Dispose()
		return llvm.Context{}, llvm.Module{}, err
	}

	builder.CreateRet(llvm.ConstInt(ctx.Int32Type(), 0, false))
	builder.Dispose()
	return ctx, module, nil
}

// gen lowers one node to an LLVM value, dispatching on node variant the same way eval.Evaluator
// does at interpretation time.
func (g *generator) gen(id ir.NodeID) (llvm.Value, error) {
	n := g.arena.Node(id)
	switch n.Typ {
	case ir.Number:
		return llvm.ConstInt(g.i64, uint64(n.Data.(int64)), false), nil

	case ir.Var:
		slot, err := g.slot(n.Data.(string))
		if err != nil {
			return llvm.Value{}, err
		}
		return g.builder.CreateLoad(slot, ""), nil

	case ir.LVal:
		return g.slot(n.Data.(string))

	case ir.Empty:
		return llvm.ConstInt(g.i64, 0, false), nil

	case ir.Seq, ir.Scope:
		v := llvm.ConstInt(g.i64, 0, false)
		for _, c := range n.Children {
			var err error
			v, err = g.gen(c)
			if err != nil {
				return llvm.Value{}, err
			}
		}
		return v, nil

	case ir.BinOp:
		return g.genBinOp(n)

	case ir.UnOp:
		return g.genUnOp(n)

	case ir.Read:
		return g.genRead(), nil

	case ir.If:
		return g.genIf(n)

	case ir.IfElse:
		return g.genIfElse(n)

	case ir.While:
		return g.genWhile(n)

	default:
		return llvm.Value{}, fmt.Errorf("llvmgen: unsupported node %s", n.Typ)
	}
}

// slot returns the alloca backing name, creating it on first reference. ParaCL declares on first
// assignment (spec §4.2); LLVM has no notion of that, so the first reference of either kind
// allocates.
func (g *generator) slot(name string) (llvm.Value, error) {
	if v, ok := g.locals[name]; ok {
		return v, nil
	}
	cur := g.builder.GetInsertBlock()
	entry := g.fn.EntryBasicBlock()
	if first := entry.FirstInstruction(); !first.IsNil() {
		g.builder.SetInsertPointBefore(first)
	} else {
		g.builder.SetInsertPointAtEnd(entry)
	}
	alloc := g.builder.CreateAlloca(g.i64, name)
	g.builder.CreateStore(llvm.ConstInt(g.i64, 0, false), alloc)
	g.builder.SetInsertPointAtEnd(cur)
	g.locals[name] = alloc
	return alloc, nil
}

// genBinOp lowers a binary operator, special-casing assignment for the same reason eval.go does:
// it needs to store into a stack slot instead of producing a pure value.
func (g *generator) genBinOp(n *ir.Node) (llvm.Value, error) {
	op := n.Data.(ir.BinOpKind)
	if op == ir.OpAssign {
		ptr, err := g.gen(n.Children[0])
		if err != nil {
			return llvm.Value{}, err
		}
		rhs, err := g.gen(n.Children[1])
		if err != nil {
			return llvm.Value{}, err
		}
		g.builder.CreateStore(rhs, ptr)
		return rhs, nil
	}

	lhs, err := g.gen(n.Children[0])
	if err != nil {
		return llvm.Value{}, err
	}
	rhs, err := g.gen(n.Children[1])
	if err != nil {
		return llvm.Value{}, err
	}

	b := g.builder
	switch op {
	case ir.OpAdd:
		return b.CreateAdd(lhs, rhs, ""), nil
	case ir.OpSub:
		return b.CreateSub(lhs, rhs, ""), nil
	case ir.OpMul:
		return b.CreateMul(lhs, rhs, ""), nil
	case ir.OpDiv:
		return b.CreateSDiv(lhs, rhs, ""), nil
	case ir.OpMod:
		return b.CreateSRem(lhs, rhs, ""), nil
	case ir.OpLt:
		return g.zext(b.CreateICmp(llvm.IntSLT, lhs, rhs, "")), nil
	case ir.OpLe:
		return g.zext(b.CreateICmp(llvm.IntSLE, lhs, rhs, "")), nil
	case ir.OpGt:
		return g.zext(b.CreateICmp(llvm.IntSGT, lhs, rhs, "")), nil
	case ir.OpGe:
		return g.zext(b.CreateICmp(llvm.IntSGE, lhs, rhs, "")), nil
	case ir.OpEq:
		return g.zext(b.CreateICmp(llvm.IntEQ, lhs, rhs, "")), nil
	case ir.OpNe:
		return g.zext(b.CreateICmp(llvm.IntNE, lhs, rhs, "")), nil
	case ir.OpAnd:
		// Non-short-circuiting (spec §3.3, §9): both operands are already evaluated above.
		l := b.CreateICmp(llvm.IntNE, lhs, llvm.ConstInt(g.i64, 0, false), "")
		r := b.CreateICmp(llvm.IntNE, rhs, llvm.ConstInt(g.i64, 0, false), "")
		return g.zext(b.CreateAnd(l, r, "")), nil
	case ir.OpOr:
		l := b.CreateICmp(llvm.IntNE, lhs, llvm.ConstInt(g.i64, 0, false), "")
		r := b.CreateICmp(llvm.IntNE, rhs, llvm.ConstInt(g.i64, 0, false), "")
		return g.zext(b.CreateOr(l, r, "")), nil
	default:
		return llvm.Value{}, fmt.Errorf("llvmgen: unsupported binary operator %s", op)
	}
}

// zext widens an i1 comparison result to ParaCL's i64 boolean encoding (0 or 1).
func (g *generator) zext(v llvm.Value) llvm.Value {
	return g.builder.CreateZExt(v, g.i64, "")
}

// genUnOp lowers unary +, -, ! and print. print calls the C library printf with a "%ld\n" format,
// declaring it on first use the same way the teacher's genPrint does.
func (g *generator) genUnOp(n *ir.Node) (llvm.Value, error) {
	op := n.Data.(ir.UnOpKind)
	arg, err := g.gen(n.Children[0])
	if err != nil {
		return llvm.Value{}, err
	}
	switch op {
	case ir.UnPlus:
		return arg, nil
	case ir.UnMinus:
		return g.builder.CreateNeg(arg, ""), nil
	case ir.UnNot:
		cmp := g.builder.CreateICmp(llvm.IntEQ, arg, llvm.ConstInt(g.i64, 0, false), "")
		return g.zext(cmp), nil
	case ir.UnPrint:
		fn := g.externPrintf()
		format := g.builder.CreateGlobalStringPtr("%ld\n", "")
		g.builder.CreateCall(fn, []llvm.Value{format, arg}, "")
		return arg, nil
	default:
		return llvm.Value{}, fmt.Errorf("llvmgen: unsupported unary operator %s", op)
	}
}

// genRead lowers `?` into a scanf call reading one %ld into a throwaway stack slot.
func (g *generator) genRead() llvm.Value {
	fn := g.externScanf()
	format := g.builder.CreateGlobalStringPtr("%ld", "")
	tmp := g.builder.CreateAlloca(g.i64, "")
	g.builder.CreateCall(fn, []llvm.Value{format, tmp}, "")
	return g.builder.CreateLoad(tmp, "")
}

// genIf lowers `If(cond, body)`.
func (g *generator) genIf(n *ir.Node) (llvm.Value, error) {
	cond, err := g.gen(n.Children[0])
	if err != nil {
		return llvm.Value{}, err
	}
	truthy := g.builder.CreateICmp(llvm.IntNE, cond, llvm.ConstInt(g.i64, 0, false), "")

	thenBB := g.ctx.AddBasicBlock(g.fn, "")
	contBB := g.ctx.AddBasicBlock(g.fn, "")
	g.builder.CreateCondBr(truthy, thenBB, contBB)

	g.builder.SetInsertPointAtEnd(thenBB)
	if _, err := g.gen(n.Children[1]); err != nil {
		return llvm.Value{}, err
	}
	g.builder.CreateBr(contBB)

	g.builder.SetInsertPointAtEnd(contBB)
	return llvm.ConstInt(g.i64, 0, false), nil
}

// genIfElse lowers `IfElse(cond, then, else)`.
func (g *generator) genIfElse(n *ir.Node) (llvm.Value, error) {
	cond, err := g.gen(n.Children[0])
	if err != nil {
		return llvm.Value{}, err
	}
	truthy := g.builder.CreateICmp(llvm.IntNE, cond, llvm.ConstInt(g.i64, 0, false), "")

	thenBB := g.ctx.AddBasicBlock(g.fn, "")
	elseBB := g.ctx.AddBasicBlock(g.fn, "")
	contBB := g.ctx.AddBasicBlock(g.fn, "")
	g.builder.CreateCondBr(truthy, thenBB, elseBB)

	g.builder.SetInsertPointAtEnd(thenBB)
	if _, err := g.gen(n.Children[1]); err != nil {
		return llvm.Value{}, err
	}
	g.builder.CreateBr(contBB)

	g.builder.SetInsertPointAtEnd(elseBB)
	if _, err := g.gen(n.Children[2]); err != nil {
		return llvm.Value{}, err
	}
	g.builder.CreateBr(contBB)

	g.builder.SetInsertPointAtEnd(contBB)
	return llvm.ConstInt(g.i64, 0, false), nil
}

// genWhile lowers `While(cond, body)` into the classic head/body/continue block triad.
func (g *generator) genWhile(n *ir.Node) (llvm.Value, error) {
	headBB := g.ctx.AddBasicBlock(g.fn, "")
	bodyBB := g.ctx.AddBasicBlock(g.fn, "")
	contBB := g.ctx.AddBasicBlock(g.fn, "")

	g.builder.CreateBr(headBB)
	g.builder.SetInsertPointAtEnd(headBB)
	cond, err := g.gen(n.Children[0])
	if err != nil {
		return llvm.Value{}, err
	}
	truthy := g.builder.CreateICmp(llvm.IntNE, cond, llvm.ConstInt(g.i64, 0, false), "")
	g.builder.CreateCondBr(truthy, bodyBB, contBB)

	g.builder.SetInsertPointAtEnd(bodyBB)
	if _, err := g.gen(n.Children[1]); err != nil {
		return llvm.Value{}, err
	}
	g.builder.CreateBr(headBB)

	g.builder.SetInsertPointAtEnd(contBB)
	return llvm.ConstInt(g.i64, 0, false), nil
}

// externPrintf returns the module's printf declaration, declaring it on first use.
func (g *generator) externPrintf() llvm.Value {
	if fn := g.module.NamedFunction("printf"); !fn.IsNil() {
		return fn
	}
	ptr := llvm.PointerType(g.ctx.Int8Type(), 0)
	ftyp := llvm.FunctionType(g.ctx.Int32Type(), []llvm.Type{ptr}, true)
	return llvm.AddFunction(g.module, "printf", ftyp)
}

// externScanf returns the module's scanf declaration, declaring it on first use.
func (g *generator) externScanf() llvm.Value {
	if fn := g.module.NamedFunction("scanf"); !fn.IsNil() {
		return fn
	}
	ptr := llvm.PointerType(g.ctx.Int8Type(), 0)
	ftyp := llvm.FunctionType(g.ctx.Int32Type(), []llvm.Type{ptr}, true)
	return llvm.AddFunction(g.module, "scanf", ftyp)
}
