package ir

import (
	"testing"

	"wabbit/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotNumbering(t *testing.T) {
	m := NewModule()

	assert.Equal(t, 0, m.AllocGlobal("x", I32))
	assert.Equal(t, 1, m.AllocGlobal("y", F64))

	fn := m.NewFunction("f", []Variable{{Name: "a", Type: I32}, {Name: "b", Type: I8}}, I32)
	assert.Equal(t, []ValueType{I32, I8}, fn.Params)

	// Locals are numbered after the parameters and independently of globals.
	assert.Equal(t, 2, fn.AllocLocal("t", I1))
	assert.Equal(t, 3, fn.AllocLocal("t", I1))

	assert.Equal(t, Reg(0), fn.NewRegister(I32))
	assert.Equal(t, Reg(1), fn.NewRegister(F64))
	assert.Equal(t, 2, fn.NumRegisters())

	g := m.NewFunction("g", nil, Void)
	assert.Equal(t, 0, g.AllocLocal("t", I32))

	require.Same(t, fn, m.Function("f"))
	require.Same(t, g, m.Function("g"))
	assert.Nil(t, m.Function("h"))

	assert.PanicsWithValue(t, report.ICE("function `f` defined multiple times"), func() {
		m.NewFunction("f", nil, Void)
	})
}

func TestDump(t *testing.T) {
	m := NewModule()
	m.AllocGlobal("x", I32)

	fn := m.NewFunction("main", nil, I32)
	r0 := fn.NewRegister(I32)
	r1 := fn.NewRegister(I32)
	r2 := fn.NewRegister(I1)

	fn.Append(
		&Call{Func: "_init", Dest: NoReg},
		&Const{Type: I32, Int: 2, Dest: r0},
		&GlobalLoad{Type: I32, Slot: 0, Dest: r1},
		&Cmp{Op: CmpLt, Type: I32, Lhs: r0, Rhs: r1, Dest: r2},
		&BranchIf{Test: r2, Label: "L1"},
		&CallExt{Func: "_printi", Args: []Reg{r0}},
		&Label{Name: "L1"},
		&Return{Type: I32, Src: r0},
	)

	want := `:::: MODULE
:::: GLOBALS
0: x i32

:::: FUNCTION main () i32
:::: LOCALS
:::: CODE
    call _init()
    %r0 = i32.const 2
    %r1 = i32.global_get 0
    %r2 = i32.lt %r0, %r1
    br_if %r2, L1
    callext _printi(%r0)
L1:
    i32.ret %r0
`

	assert.Equal(t, want, m.Dump())
}

func TestInstructionRepr(t *testing.T) {
	cases := []struct {
		instr Instruction
		want  string
	}{
		{&Const{Type: F64, Float: 2.5, Dest: 0}, "%r0 = f64.const 2.5"},
		{&Const{Type: I1, Int: 1, Dest: 3}, "%r3 = i1.const 1"},
		{&BinOp{Op: OpMul, Type: F64, Lhs: 0, Rhs: 1, Dest: 2}, "%r2 = f64.mul %r0, %r1"},
		{&UnOp{Op: OpNot, Type: I1, Src: 0, Dest: 1}, "%r1 = i1.not %r0"},
		{&Convert{From: I32, To: F64, Src: 0, Dest: 1}, "%r1 = f64.convert_i32 %r0"},
		{&LocalStore{Type: I8, Slot: 2, Src: 1}, "i8.local_set 2, %r1"},
		{&Alloc{Size: 16, Dest: 4}, "%r4 = alloc 16"},
		{&MemLoad{Type: F64, Addr: 4, Offset: 8, Dest: 5}, "%r5 = f64.load %r4+8"},
		{&MemStore{Type: I32, Addr: 4, Offset: 0, Src: 5}, "i32.store %r4+0, %r5"},
		{&MemCopy{Src: 1, Dst: 2, Size: 8}, "memcopy %r2, %r1, 8"},
		{&Call{Func: "add", Args: []Reg{0, 1}, Dest: 2}, "%r2 = call add(%r0, %r1)"},
		{&Goto{Label: "L3"}, "goto L3"},
		{&Return{Type: Void, Src: NoReg}, "ret"},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, c.instr.Repr())
	}
}
