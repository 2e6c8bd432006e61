package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Reg is a virtual register number.  Registers are local to a function.
type Reg int

// NoReg marks the absence of a register: the destination of a call to a void
// function or the operand of a bare return.
const NoReg Reg = -1

func (r Reg) String() string {
	if r == NoReg {
		return "_"
	}

	return "%r" + strconv.Itoa(int(r))
}

// Instruction is a single IR instruction.  The set of instructions is closed:
// only the types in this file implement it.
type Instruction interface {
	// Repr returns the textual representation of the instruction.
	Repr() string

	instr()
}

// instrBase is embedded by every instruction to seal the interface.
type instrBase struct{}

func (instrBase) instr() {}

// -----------------------------------------------------------------------------

// Const loads a constant into a register.  Int holds the value of integral
// types (I32, I8, and I1); Float holds the value of F64 constants.
type Const struct {
	instrBase

	Type  ValueType
	Int   int64
	Float float64
	Dest  Reg
}

func (c *Const) Repr() string {
	if c.Type == F64 {
		return fmt.Sprintf("%s = f64.const %s", c.Dest, strconv.FormatFloat(c.Float, 'g', -1, 64))
	}

	return fmt.Sprintf("%s = %s.const %d", c.Dest, c.Type, c.Int)
}

// BinaryOperator is an arithmetic binary operator.
type BinaryOperator string

// Enumeration of binary operators.
const (
	OpAdd BinaryOperator = "add"
	OpSub BinaryOperator = "sub"
	OpMul BinaryOperator = "mul"
	OpDiv BinaryOperator = "div"
)

// BinOp applies an arithmetic operator to two registers of the same type,
// which is always I32 or F64.  Short-circuit logic lowers to branches.
type BinOp struct {
	instrBase

	Op             BinaryOperator
	Type           ValueType
	Lhs, Rhs, Dest Reg
}

func (bo *BinOp) Repr() string {
	return fmt.Sprintf("%s = %s.%s %s, %s", bo.Dest, bo.Type, bo.Op, bo.Lhs, bo.Rhs)
}

// Comparison is a relational operator.
type Comparison string

// Enumeration of comparisons.
const (
	CmpEq Comparison = "eq"
	CmpNe Comparison = "ne"
	CmpLt Comparison = "lt"
	CmpLe Comparison = "le"
	CmpGt Comparison = "gt"
	CmpGe Comparison = "ge"
)

// Cmp compares two registers of the same type yielding an I1.
type Cmp struct {
	instrBase

	Op             Comparison
	Type           ValueType
	Lhs, Rhs, Dest Reg
}

func (c *Cmp) Repr() string {
	return fmt.Sprintf("%s = %s.%s %s, %s", c.Dest, c.Type, c.Op, c.Lhs, c.Rhs)
}

// UnaryOperator is an arithmetic or logical unary operator.
type UnaryOperator string

// Enumeration of unary operators.
const (
	OpNeg UnaryOperator = "neg"
	OpNot UnaryOperator = "not"
)

// UnOp applies a unary operator to a register.
type UnOp struct {
	instrBase

	Op        UnaryOperator
	Type      ValueType
	Src, Dest Reg
}

func (uo *UnOp) Repr() string {
	return fmt.Sprintf("%s = %s.%s %s", uo.Dest, uo.Type, uo.Op, uo.Src)
}

// Convert converts a value between value types.
type Convert struct {
	instrBase

	From, To  ValueType
	Src, Dest Reg
}

func (c *Convert) Repr() string {
	return fmt.Sprintf("%s = %s.convert_%s %s", c.Dest, c.To, c.From, c.Src)
}

// Move copies one register into another.
type Move struct {
	instrBase

	Src, Dest Reg
}

func (m *Move) Repr() string {
	return fmt.Sprintf("%s = move %s", m.Dest, m.Src)
}

// -----------------------------------------------------------------------------

// LocalLoad loads a local slot into a register.
type LocalLoad struct {
	instrBase

	Type ValueType
	Slot int
	Dest Reg
}

func (ll *LocalLoad) Repr() string {
	return fmt.Sprintf("%s = %s.local_get %d", ll.Dest, ll.Type, ll.Slot)
}

// LocalStore stores a register into a local slot.
type LocalStore struct {
	instrBase

	Type ValueType
	Slot int
	Src  Reg
}

func (ls *LocalStore) Repr() string {
	return fmt.Sprintf("%s.local_set %d, %s", ls.Type, ls.Slot, ls.Src)
}

// GlobalLoad loads a global slot into a register.
type GlobalLoad struct {
	instrBase

	Type ValueType
	Slot int
	Dest Reg
}

func (gl *GlobalLoad) Repr() string {
	return fmt.Sprintf("%s = %s.global_get %d", gl.Dest, gl.Type, gl.Slot)
}

// GlobalStore stores a register into a global slot.
type GlobalStore struct {
	instrBase

	Type ValueType
	Slot int
	Src  Reg
}

func (gs *GlobalStore) Repr() string {
	return fmt.Sprintf("%s.global_set %d, %s", gs.Type, gs.Slot, gs.Src)
}

// -----------------------------------------------------------------------------

// Alloc allocates Size zeroed bytes of memory and stores their address in
// Dest.
type Alloc struct {
	instrBase

	Size int
	Dest Reg
}

func (a *Alloc) Repr() string {
	return fmt.Sprintf("%s = alloc %d", a.Dest, a.Size)
}

// MemLoad loads a value from memory at Addr + Offset.
type MemLoad struct {
	instrBase

	Type   ValueType
	Addr   Reg
	Offset int
	Dest   Reg
}

func (ml *MemLoad) Repr() string {
	return fmt.Sprintf("%s = %s.load %s+%d", ml.Dest, ml.Type, ml.Addr, ml.Offset)
}

// MemStore stores a value to memory at Addr + Offset.
type MemStore struct {
	instrBase

	Type   ValueType
	Addr   Reg
	Offset int
	Src    Reg
}

func (ms *MemStore) Repr() string {
	return fmt.Sprintf("%s.store %s+%d, %s", ms.Type, ms.Addr, ms.Offset, ms.Src)
}

// MemCopy copies Size bytes of memory from Src to Dst.
type MemCopy struct {
	instrBase

	Src, Dst Reg
	Size     int
}

func (mc *MemCopy) Repr() string {
	return fmt.Sprintf("memcopy %s, %s, %d", mc.Dst, mc.Src, mc.Size)
}

// -----------------------------------------------------------------------------

// Label marks a jump target.
type Label struct {
	instrBase

	Name string
}

func (l *Label) Repr() string {
	return l.Name + ":"
}

// Goto unconditionally jumps to a label.
type Goto struct {
	instrBase

	Label string
}

func (g *Goto) Repr() string {
	return "goto " + g.Label
}

// BranchIf jumps to Label if Test is true and otherwise falls through to the
// next instruction.
type BranchIf struct {
	instrBase

	Test  Reg
	Label string
}

func (bi *BranchIf) Repr() string {
	return fmt.Sprintf("br_if %s, %s", bi.Test, bi.Label)
}

// Call calls a function of the module.  Dest is NoReg for void functions.
type Call struct {
	instrBase

	Func string
	Args []Reg
	Dest Reg
}

func (c *Call) Repr() string {
	if c.Dest == NoReg {
		return fmt.Sprintf("call %s(%s)", c.Func, regList(c.Args))
	}

	return fmt.Sprintf("%s = call %s(%s)", c.Dest, c.Func, regList(c.Args))
}

// CallExt calls a function of the external runtime.  External functions
// return nothing.
type CallExt struct {
	instrBase

	Func string
	Args []Reg
}

func (ce *CallExt) Repr() string {
	return fmt.Sprintf("callext %s(%s)", ce.Func, regList(ce.Args))
}

// Return returns from the current function.  Src is NoReg for void returns.
type Return struct {
	instrBase

	Type ValueType
	Src  Reg
}

func (r *Return) Repr() string {
	if r.Src == NoReg {
		return "ret"
	}

	return fmt.Sprintf("%s.ret %s", r.Type, r.Src)
}

// regList renders a comma-separated register list.
func regList(regs []Reg) string {
	sb := strings.Builder{}

	for i, reg := range regs {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(reg.String())
	}

	return sb.String()
}
