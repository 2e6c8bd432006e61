package generate

import (
	"wabbit/ir"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// genInstr generates a single IR instruction.
func (g *Generator) genInstr(instr ir.Instruction) {
	switch v := instr.(type) {
	case *ir.Const:
		if v.Type == ir.F64 {
			g.setReg(v.Dest, constant.NewFloat(types.Double, v.Float))
		} else {
			g.setReg(v.Dest, constant.NewInt(convType(v.Type).(*types.IntType), v.Int))
		}
	case *ir.BinOp:
		g.setReg(v.Dest, g.genBinOp(v))
	case *ir.Cmp:
		g.setReg(v.Dest, g.genCmp(v))
	case *ir.UnOp:
		src := g.reg(v.Src)
		if v.Op == ir.OpNot {
			g.setReg(v.Dest, g.block.NewXor(src, constant.True))
		} else if v.Type == ir.F64 {
			g.setReg(v.Dest, g.block.NewFNeg(src))
		} else {
			g.setReg(v.Dest, g.block.NewSub(constant.NewInt(types.I32, 0), src))
		}
	case *ir.Convert:
		g.setReg(v.Dest, g.genConvert(v))
	case *ir.Move:
		g.setReg(v.Dest, g.reg(v.Src))
	case *ir.LocalLoad:
		g.setReg(v.Dest, g.block.NewLoad(convType(v.Type), g.locals[v.Slot]))
	case *ir.LocalStore:
		g.block.NewStore(g.reg(v.Src), g.locals[v.Slot])
	case *ir.GlobalLoad:
		g.setReg(v.Dest, g.block.NewLoad(convType(v.Type), g.globals[v.Slot]))
	case *ir.GlobalStore:
		g.block.NewStore(g.reg(v.Src), g.globals[v.Slot])
	case *ir.Alloc:
		g.setReg(v.Dest, g.genAlloc(v.Size))
	case *ir.MemLoad:
		g.setReg(v.Dest, g.genMemLoad(v))
	case *ir.MemStore:
		g.genMemStore(v)
	case *ir.MemCopy:
		g.block.NewCall(
			g.memcpy,
			g.bytePtr(g.reg(v.Dst), 0),
			g.bytePtr(g.reg(v.Src), 0),
			constant.NewInt(types.I32, int64(v.Size)),
			constant.False,
		)
	case *ir.Label:
		target := g.labelBlock(v.Name)
		if g.block.Term == nil {
			g.block.NewBr(target)
		}

		g.startBlock(target)
	case *ir.Goto:
		g.block.NewBr(g.labelBlock(v.Label))
		g.startFallthrough()
	case *ir.BranchIf:
		g.branchIf(g.reg(v.Test), v.Label)
	case *ir.Call:
		args := make([]value.Value, len(v.Args))
		for i, arg := range v.Args {
			args[i] = g.reg(arg)
		}

		result := g.block.NewCall(g.funcs[v.Func], args...)
		if v.Dest != ir.NoReg {
			g.setReg(v.Dest, result)
		}
	case *ir.CallExt:
		args := make([]value.Value, len(v.Args))
		for i, arg := range v.Args {
			args[i] = g.reg(arg)
		}

		g.block.NewCall(g.funcs[v.Func], args...)
	case *ir.Return:
		if v.Src == ir.NoReg {
			g.block.NewRet(nil)
		} else {
			g.block.NewRet(g.reg(v.Src))
		}

		g.startFallthrough()
	}
}

// branchIf terminates the current block with a conditional branch to the
// labelled block and continues in a new block when the test is false.
func (g *Generator) branchIf(test value.Value, label string) {
	current := g.block
	next := g.startFallthrough()

	current.NewCondBr(test, g.labelBlock(label), next)
}

// reg loads the value of a register.
func (g *Generator) reg(r ir.Reg) value.Value {
	return g.block.NewLoad(convType(g.fn.Registers[r]), g.regs[r])
}

// setReg stores a value into a register.
func (g *Generator) setReg(r ir.Reg, val value.Value) {
	g.block.NewStore(val, g.regs[r])
}

// -----------------------------------------------------------------------------

// genBinOp generates an arithmetic operation.
func (g *Generator) genBinOp(bo *ir.BinOp) value.Value {
	lhs, rhs := g.reg(bo.Lhs), g.reg(bo.Rhs)

	if bo.Type == ir.F64 {
		switch bo.Op {
		case ir.OpAdd:
			return g.block.NewFAdd(lhs, rhs)
		case ir.OpSub:
			return g.block.NewFSub(lhs, rhs)
		case ir.OpMul:
			return g.block.NewFMul(lhs, rhs)
		default:
			return g.block.NewFDiv(lhs, rhs)
		}
	}

	switch bo.Op {
	case ir.OpAdd:
		return g.block.NewAdd(lhs, rhs)
	case ir.OpSub:
		return g.block.NewSub(lhs, rhs)
	case ir.OpMul:
		return g.block.NewMul(lhs, rhs)
	default:
		return g.block.NewSDiv(lhs, rhs)
	}
}

// The integer predicates of each comparison for signed and unsigned operands.
var (
	signedPreds = map[ir.Comparison]enum.IPred{
		ir.CmpEq: enum.IPredEQ, ir.CmpNe: enum.IPredNE,
		ir.CmpLt: enum.IPredSLT, ir.CmpLe: enum.IPredSLE,
		ir.CmpGt: enum.IPredSGT, ir.CmpGe: enum.IPredSGE,
	}

	unsignedPreds = map[ir.Comparison]enum.IPred{
		ir.CmpEq: enum.IPredEQ, ir.CmpNe: enum.IPredNE,
		ir.CmpLt: enum.IPredULT, ir.CmpLe: enum.IPredULE,
		ir.CmpGt: enum.IPredUGT, ir.CmpGe: enum.IPredUGE,
	}

	floatPreds = map[ir.Comparison]enum.FPred{
		ir.CmpEq: enum.FPredOEQ, ir.CmpNe: enum.FPredUNE,
		ir.CmpLt: enum.FPredOLT, ir.CmpLe: enum.FPredOLE,
		ir.CmpGt: enum.FPredOGT, ir.CmpGe: enum.FPredOGE,
	}
)

// genCmp generates a comparison.
func (g *Generator) genCmp(c *ir.Cmp) value.Value {
	lhs, rhs := g.reg(c.Lhs), g.reg(c.Rhs)

	switch c.Type {
	case ir.F64:
		return g.block.NewFCmp(floatPreds[c.Op], lhs, rhs)
	case ir.I32:
		return g.block.NewICmp(signedPreds[c.Op], lhs, rhs)
	default:
		return g.block.NewICmp(unsignedPreds[c.Op], lhs, rhs)
	}
}

// genConvert generates a value type conversion.
func (g *Generator) genConvert(c *ir.Convert) value.Value {
	src := g.reg(c.Src)
	to := convType(c.To)

	switch {
	case c.From == c.To:
		return src
	case c.From == ir.I32 && c.To == ir.F64:
		return g.block.NewSIToFP(src, to)
	case c.From == ir.F64:
		return g.block.NewFPToSI(src, to)
	case c.From == ir.I32:
		return g.block.NewTrunc(src, to)
	default:
		return g.block.NewZExt(src, to)
	}
}

// -----------------------------------------------------------------------------

// genAlloc generates a bump allocation of size bytes aligned to 8 bytes.
func (g *Generator) genAlloc(size int) value.Value {
	top := g.block.NewLoad(types.I32, g.heap)
	addr := g.block.NewAnd(
		g.block.NewAdd(top, constant.NewInt(types.I32, 7)),
		constant.NewInt(types.I32, -8),
	)

	g.block.NewStore(g.block.NewAdd(addr, constant.NewInt(types.I32, int64(size))), g.heap)
	return addr
}

// bytePtr returns a pointer to the byte of memory at addr + offset.
func (g *Generator) bytePtr(addr value.Value, offset int) value.Value {
	index := addr
	if offset != 0 {
		index = g.block.NewAdd(addr, constant.NewInt(types.I32, int64(offset)))
	}

	return g.block.NewGetElementPtr(g.memType, g.mem, constant.NewInt(types.I32, 0), index)
}

// typedPtr returns a pointer to a value of the given type in memory.  Booleans
// are stored as bytes.
func (g *Generator) typedPtr(vt ir.ValueType, addr value.Value, offset int) value.Value {
	ptr := g.bytePtr(addr, offset)

	if vt == ir.I8 || vt == ir.I1 {
		return ptr
	}

	return g.block.NewBitCast(ptr, types.NewPointer(convType(vt)))
}

// genMemLoad generates a load from memory.
func (g *Generator) genMemLoad(ml *ir.MemLoad) value.Value {
	ptr := g.typedPtr(ml.Type, g.reg(ml.Addr), ml.Offset)

	if ml.Type == ir.I1 {
		return g.block.NewTrunc(g.block.NewLoad(types.I8, ptr), types.I1)
	}

	return g.block.NewLoad(convType(ml.Type), ptr)
}

// genMemStore generates a store to memory.
func (g *Generator) genMemStore(ms *ir.MemStore) {
	ptr := g.typedPtr(ms.Type, g.reg(ms.Addr), ms.Offset)
	val := g.reg(ms.Src)

	if ms.Type == ir.I1 {
		val = g.block.NewZExt(val, types.I8)
	}

	g.block.NewStore(val, ptr)
}
