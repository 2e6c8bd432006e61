package vm

import (
	"math"

	"wabbit/ir"
)

// exec executes a single non-return instruction in the given frame.
func (m *Machine) exec(f *frame, instr ir.Instruction) {
	switch v := instr.(type) {
	case *ir.Const:
		if v.Type == ir.F64 {
			m.setReg(v.Dest, math.Float64bits(v.Float))
		} else {
			m.setReg(v.Dest, truncate(v.Type, uint64(v.Int)))
		}
	case *ir.BinOp:
		m.setReg(v.Dest, m.binOp(v.Op, v.Type, m.reg(v.Lhs), m.reg(v.Rhs)))
	case *ir.Cmp:
		if compare(v.Op, v.Type, m.reg(v.Lhs), m.reg(v.Rhs)) {
			m.setReg(v.Dest, 1)
		} else {
			m.setReg(v.Dest, 0)
		}
	case *ir.UnOp:
		m.setReg(v.Dest, m.unOp(v.Op, v.Type, m.reg(v.Src)))
	case *ir.Convert:
		m.setReg(v.Dest, m.convert(v.From, v.To, m.reg(v.Src)))
	case *ir.Move:
		m.setReg(v.Dest, m.reg(v.Src))
	case *ir.LocalLoad:
		m.setReg(v.Dest, *m.localSlot(f, v.Slot))
	case *ir.LocalStore:
		*m.localSlot(f, v.Slot) = m.reg(v.Src)
	case *ir.GlobalLoad:
		m.setReg(v.Dest, *m.globalSlot(v.Slot))
	case *ir.GlobalStore:
		*m.globalSlot(v.Slot) = m.reg(v.Src)
	case *ir.Alloc:
		m.setReg(v.Dest, uint64(m.alloc(v.Size)))
	case *ir.MemLoad:
		m.setReg(v.Dest, m.load(v.Type, m.address(v.Addr)+v.Offset))
	case *ir.MemStore:
		m.store(v.Type, m.address(v.Addr)+v.Offset, m.reg(v.Src))
	case *ir.MemCopy:
		src := m.span(m.address(v.Src), v.Size)
		dst := m.span(m.address(v.Dst), v.Size)
		copy(dst, src)
	case *ir.Label:
		// Labels only mark positions.
	case *ir.Goto:
		f.pc = f.lf.labels[v.Label]
	case *ir.BranchIf:
		if m.reg(v.Test) != 0 {
			f.pc = f.lf.labels[v.Label]
		}
	case *ir.Call:
		args := make([]uint64, len(v.Args))
		for i, arg := range v.Args {
			args[i] = m.reg(arg)
		}

		m.pushFrame(v.Func, args, v.Dest)
	case *ir.CallExt:
		args := make([]uint64, len(v.Args))
		for i, arg := range v.Args {
			args[i] = m.reg(arg)
		}

		m.callExternal(v.Func, args)
	default:
		m.fail("unknown instruction `%s`", instr.Repr())
	}
}

// -----------------------------------------------------------------------------

// reg reads a register of the executing frame.
func (m *Machine) reg(r ir.Reg) uint64 {
	f := m.frames[len(m.frames)-1]
	if r < 0 || int(r) >= len(f.regs) {
		m.fail("register %s out of range", r)
	}

	return f.regs[r]
}

// setReg writes a register of the executing frame.
func (m *Machine) setReg(r ir.Reg, value uint64) {
	f := m.frames[len(m.frames)-1]
	if r < 0 || int(r) >= len(f.regs) {
		m.fail("register %s out of range", r)
	}

	f.regs[r] = value
}

// localSlot returns a pointer to a local slot of a frame.
func (m *Machine) localSlot(f *frame, slot int) *uint64 {
	if slot < 0 || slot >= len(f.locals) {
		m.fail("local slot %d out of range", slot)
	}

	return &f.locals[slot]
}

// globalSlot returns a pointer to a global slot.
func (m *Machine) globalSlot(slot int) *uint64 {
	if slot < 0 || slot >= len(m.globals) {
		m.fail("global slot %d out of range", slot)
	}

	return &m.globals[slot]
}

// address reads a register holding a memory address.
func (m *Machine) address(r ir.Reg) int {
	return int(int32(uint32(m.reg(r))))
}

// -----------------------------------------------------------------------------

// truncate reduces a raw value to the bits of the given value type.
func truncate(vt ir.ValueType, value uint64) uint64 {
	switch vt {
	case ir.I32:
		return uint64(uint32(value))
	case ir.I8:
		return uint64(uint8(value))
	case ir.I1:
		return value & 1
	default:
		return value
	}
}

func asInt(value uint64) int32 {
	return int32(uint32(value))
}

func fromInt(v int32) uint64 {
	return uint64(uint32(v))
}

func asFloat(value uint64) float64 {
	return math.Float64frombits(value)
}

func fromFloat(f float64) uint64 {
	return math.Float64bits(f)
}

// binOp applies a binary operator.
func (m *Machine) binOp(op ir.BinaryOperator, vt ir.ValueType, lhs, rhs uint64) uint64 {
	switch vt {
	case ir.I32:
		a, b := asInt(lhs), asInt(rhs)

		switch op {
		case ir.OpAdd:
			return fromInt(a + b)
		case ir.OpSub:
			return fromInt(a - b)
		case ir.OpMul:
			return fromInt(a * b)
		case ir.OpDiv:
			if b == 0 {
				m.fail("integer division by zero")
			}

			return fromInt(a / b)
		}
	case ir.F64:
		a, b := asFloat(lhs), asFloat(rhs)

		switch op {
		case ir.OpAdd:
			return fromFloat(a + b)
		case ir.OpSub:
			return fromFloat(a - b)
		case ir.OpMul:
			return fromFloat(a * b)
		case ir.OpDiv:
			if b == 0 {
				m.fail("float division by zero")
			}

			return fromFloat(a / b)
		}
	}

	m.fail("operator `%s` is not defined on `%s`", op, vt)
	return 0
}

// compare applies a comparison.
func compare(op ir.Comparison, vt ir.ValueType, lhs, rhs uint64) bool {
	var c int

	switch vt {
	case ir.I32:
		a, b := asInt(lhs), asInt(rhs)
		c = cmp3(a < b, a > b)
	case ir.F64:
		a, b := asFloat(lhs), asFloat(rhs)

		// Every comparison with NaN except `ne` is false.
		if math.IsNaN(a) || math.IsNaN(b) {
			return op == ir.CmpNe
		}

		c = cmp3(a < b, a > b)
	default:
		c = cmp3(lhs < rhs, lhs > rhs)
	}

	switch op {
	case ir.CmpEq:
		return c == 0
	case ir.CmpNe:
		return c != 0
	case ir.CmpLt:
		return c < 0
	case ir.CmpLe:
		return c <= 0
	case ir.CmpGt:
		return c > 0
	default:
		return c >= 0
	}
}

func cmp3(less, greater bool) int {
	if less {
		return -1
	} else if greater {
		return 1
	}

	return 0
}

// unOp applies a unary operator.
func (m *Machine) unOp(op ir.UnaryOperator, vt ir.ValueType, src uint64) uint64 {
	switch {
	case op == ir.OpNeg && vt == ir.I32:
		return fromInt(-asInt(src))
	case op == ir.OpNeg && vt == ir.F64:
		return fromFloat(-asFloat(src))
	case op == ir.OpNot && vt == ir.I1:
		return (src ^ 1) & 1
	}

	m.fail("operator `%s` is not defined on `%s`", op, vt)
	return 0
}

// convert converts a value between value types.
func (m *Machine) convert(from, to ir.ValueType, src uint64) uint64 {
	switch {
	case from == to:
		return src
	case to == ir.F64 && from == ir.I32:
		return fromFloat(float64(asInt(src)))
	case to == ir.I32 && from == ir.F64:
		f := math.Trunc(asFloat(src))
		if math.IsNaN(f) || f < math.MinInt32 || f > math.MaxInt32 {
			m.fail("float %v out of range for `i32`", asFloat(src))
		}

		return fromInt(int32(f))
	case to == ir.I32 && (from == ir.I8 || from == ir.I1):
		return src
	case to == ir.I8 && from == ir.I32:
		return truncate(ir.I8, src)
	}

	m.fail("cannot convert `%s` to `%s`", from, to)
	return 0
}
