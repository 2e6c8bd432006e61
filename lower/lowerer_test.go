package lower

import (
	"testing"

	"wabbit/ast"
	"wabbit/ir"
	"wabbit/report"
	"wabbit/types"
	"wabbit/walk"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lowerProgram checks and lowers a program that is expected to be valid.
func lowerProgram(t *testing.T, prog *ast.Program) *ir.Module {
	t.Helper()

	cp, err := walk.Check(prog)
	require.NoError(t, err)

	mod, err := Lower(cp)
	require.NoError(t, err)
	return mod
}

// gotoTargets returns the targets of all unconditional jumps in order.
func gotoTargets(fn *ir.Function) []string {
	var targets []string
	for _, instr := range fn.Code {
		if g, ok := instr.(*ir.Goto); ok {
			targets = append(targets, g.Label)
		}
	}

	return targets
}

func TestInitAndMainSynthesis(t *testing.T) {
	mod := lowerProgram(t, ast.NewProgram(
		ast.NewPrint(ast.NewBinary("+", ast.NewInt(2), ast.NewBinary("*", ast.NewInt(3), ast.NewInt(4)))),
	))

	require.Len(t, mod.Functions, 2)
	assert.Equal(t, "_init", mod.Functions[0].Name)
	assert.Equal(t, "main", mod.Functions[1].Name)

	wantInit := []ir.Instruction{
		&ir.Const{Type: ir.I32, Int: 2, Dest: 0},
		&ir.Const{Type: ir.I32, Int: 3, Dest: 1},
		&ir.Const{Type: ir.I32, Int: 4, Dest: 2},
		&ir.BinOp{Op: ir.OpMul, Type: ir.I32, Lhs: 1, Rhs: 2, Dest: 3},
		&ir.BinOp{Op: ir.OpAdd, Type: ir.I32, Lhs: 0, Rhs: 3, Dest: 4},
		&ir.CallExt{Func: "_printi", Args: []ir.Reg{4}},
		&ir.Const{Type: ir.I32, Int: 0, Dest: 5},
		&ir.Return{Type: ir.I32, Src: 5},
	}

	if diff := deep.Equal(wantInit, mod.Functions[0].Code); diff != nil {
		t.Error(diff)
	}

	wantMain := []ir.Instruction{
		&ir.Call{Func: "_init", Dest: ir.NoReg},
		&ir.Const{Type: ir.I32, Int: 0, Dest: 0},
		&ir.Return{Type: ir.I32, Src: 0},
	}

	if diff := deep.Equal(wantMain, mod.Functions[1].Code); diff != nil {
		t.Error(diff)
	}
}

func TestUserMainCallsInit(t *testing.T) {
	mod := lowerProgram(t, ast.NewProgram(
		ast.NewVar("x", "", ast.NewInt(1)),
		ast.NewFunc("main", nil, "int", ast.NewBlock(
			ast.NewReturn(ast.NewName("x")),
		)),
	))

	require.Len(t, mod.Functions, 2)
	main := mod.Function("main")
	require.NotNil(t, main)

	if diff := deep.Equal(&ir.Call{Func: "_init", Dest: ir.NoReg}, main.Code[0]); diff != nil {
		t.Error(diff)
	}

	if diff := deep.Equal(&ir.GlobalLoad{Type: ir.I32, Slot: 0, Dest: 0}, main.Code[1]); diff != nil {
		t.Error(diff)
	}
}

func TestGlobalsAndLocals(t *testing.T) {
	mod := lowerProgram(t, ast.NewProgram(
		ast.NewVar("x", "", ast.NewInt(1)),
		ast.NewConst("pi", "", ast.NewFloat(3.14)),
		ast.NewIf(ast.NewBool(true), ast.NewBlock(
			ast.NewVar("y", "", ast.NewInt(2)),
			ast.NewVar("x", "", ast.NewChar('c')),
		), nil),
		ast.NewFunc("f", []*ast.Param{ast.NewParam("a", "int")}, "", ast.NewBlock(
			ast.NewVar("b", "", ast.NewName("a")),
		)),
	))

	assert.Equal(t, []ir.Variable{{Name: "x", Type: ir.I32}, {Name: "pi", Type: ir.F64}}, mod.Globals)
	assert.Equal(t, []ir.Variable{{Name: "y", Type: ir.I32}, {Name: "x", Type: ir.I8}}, mod.Function("_init").Locals)
	assert.Equal(t, []ir.Variable{{Name: "a", Type: ir.I32}, {Name: "b", Type: ir.I32}}, mod.Function("f").Locals)
}

func TestNestedLoopControl(t *testing.T) {
	mod := lowerProgram(t, ast.NewProgram(
		ast.NewVar("a", "", ast.NewBool(true)),
		ast.NewVar("b", "", ast.NewBool(true)),
		ast.NewWhile(ast.NewName("a"), ast.NewBlock(
			ast.NewWhile(ast.NewName("b"), ast.NewBlock(ast.NewBreak())),
			ast.NewContinue(),
		)),
	))

	// outer: head L1, exit L2, body L3; inner: head L4, exit L5, body L6
	assert.Equal(t,
		[]string{"L2", "L5", "L5", "L4", "L1", "L1"},
		gotoTargets(mod.Function("_init")),
	)
}

func TestDeterminism(t *testing.T) {
	build := func() *ast.Program {
		return ast.NewProgram(
			ast.NewEnumDef("Number", ast.NewVariantDef("Integer", "int"), ast.NewVariantDef("Float", "float")),
			ast.NewFunc("add", []*ast.Param{ast.NewParam("a", "Number"), ast.NewParam("b", "int")}, "int", ast.NewBlock(
				ast.NewReturn(ast.NewMatch(ast.NewName("a"),
					ast.NewArm("Integer", "x", ast.NewBinary("+", ast.NewName("x"), ast.NewName("b"))),
					ast.NewArm("Float", "y", ast.NewBinary("+", ast.NewCall("int", ast.NewName("y")), ast.NewName("b"))),
				)),
			)),
			ast.NewVar("i", "", ast.NewInt(0)),
			ast.NewWhile(ast.NewBinary("<", ast.NewName("i"), ast.NewInt(3)), ast.NewBlock(
				ast.NewPrint(ast.NewCall("add", ast.NewEnumValue("Number", "Integer", ast.NewName("i")), ast.NewInt(1))),
				ast.NewAssign(ast.NewName("i"), ast.NewBinary("+", ast.NewName("i"), ast.NewInt(1))),
			)),
		)
	}

	cp, err := walk.Check(build())
	require.NoError(t, err)

	first, err := Lower(cp)
	require.NoError(t, err)

	second, err := Lower(cp)
	require.NoError(t, err)

	third := lowerProgram(t, build())

	assert.Equal(t, first.Dump(), second.Dump())
	assert.Equal(t, first.Dump(), third.Dump())
}

func TestMissingMatchArmIsInternalError(t *testing.T) {
	match := ast.NewMatch(ast.NewName("n"),
		ast.NewArm("Integer", "x", ast.NewName("x")),
		ast.NewArm("Float", "y", ast.NewCall("int", ast.NewName("y"))),
	)

	prog := ast.NewProgram(
		ast.NewEnumDef("Number", ast.NewVariantDef("Integer", "int"), ast.NewVariantDef("Float", "float")),
		ast.NewVar("n", "", ast.NewEnumValue("Number", "Integer", ast.NewInt(42))),
		ast.NewPrint(match),
	)

	cp, err := walk.Check(prog)
	require.NoError(t, err)

	_, err = Lower(cp)
	require.NoError(t, err)

	// An arm removed after checking violates the checker's guarantee.
	match.Arms = match.Arms[:1]

	mod, err := Lower(cp)
	assert.Nil(t, mod)
	require.Error(t, err)

	ierr, ok := err.(*report.InternalError)
	require.True(t, ok, "expected *report.InternalError, got %T", err)
	assert.Contains(t, ierr.Message, "no arm for variant `Float`")
}

func TestMatchLowering(t *testing.T) {
	mod := lowerProgram(t, ast.NewProgram(
		ast.NewEnumDef("Number", ast.NewVariantDef("Integer", "int"), ast.NewVariantDef("Float", "float")),
		ast.NewConst("n", "", ast.NewEnumValue("Number", "Float", ast.NewFloat(2.5))),
		ast.NewPrint(ast.NewMatch(ast.NewName("n"),
			ast.NewArm("Integer", "x", ast.NewName("x")),
			ast.NewArm(ast.CatchAll, "", ast.NewInt(0)),
		)),
	))

	init := mod.Function("_init")

	// The binding lives in a nested scope and so is a local of `_init`.
	assert.Equal(t, []ir.Variable{{Name: "x", Type: ir.I32}}, init.Locals)

	var branches, loads int
	for _, instr := range init.Code {
		switch v := instr.(type) {
		case *ir.BranchIf:
			branches++
		case *ir.MemLoad:
			loads++
			if v.Offset != 0 {
				// The payload follows the tag aligned for the widest payload.
				assert.Equal(t, 8, v.Offset)
			}
		}
	}

	// One comparison for the first arm; the catch-all falls through.
	assert.Equal(t, 1, branches)

	// The tag and the integer payload.
	assert.Equal(t, 2, loads)
}

func TestShortCircuit(t *testing.T) {
	mod := lowerProgram(t, ast.NewProgram(
		ast.NewPrint(ast.NewBinary("||", ast.NewBool(true), ast.NewBool(false))),
	))

	wantInit := []ir.Instruction{
		&ir.Const{Type: ir.I1, Int: 1, Dest: 1},
		&ir.Move{Src: 1, Dest: 0},
		&ir.BranchIf{Test: 1, Label: "L1"},
		&ir.Const{Type: ir.I1, Int: 0, Dest: 2},
		&ir.Move{Src: 2, Dest: 0},
		&ir.Label{Name: "L1"},
		&ir.CallExt{Func: "_printb", Args: []ir.Reg{0}},
		&ir.Const{Type: ir.I32, Int: 0, Dest: 3},
		&ir.Return{Type: ir.I32, Src: 3},
	}

	if diff := deep.Equal(wantInit, mod.Function("_init").Code); diff != nil {
		t.Error(diff)
	}
}

func TestLayouts(t *testing.T) {
	l := &Lowerer{layouts: make(map[string]*layout)}

	frac := types.NewStructType("Fraction")
	frac.AddField("numerator", types.PrimTypeInt)
	frac.AddField("denominator", types.PrimTypeInt)

	lo := l.structLayout(frac)
	assert.Equal(t, []int{0, 4}, lo.offsets)
	assert.Equal(t, 8, lo.size)

	mixed := types.NewStructType("Mixed")
	mixed.AddField("c", types.PrimTypeChar)
	mixed.AddField("f", types.PrimTypeFloat)
	mixed.AddField("i", types.PrimTypeInt)
	mixed.AddField("frac", frac)

	lo = l.structLayout(mixed)
	assert.Equal(t, []int{0, 8, 16, 20}, lo.offsets)
	assert.Equal(t, 24, lo.size)

	num := types.NewEnumType("Number")
	num.AddVariant("Integer", types.PrimTypeInt)
	num.AddVariant("Float", types.PrimTypeFloat)

	lo = l.enumLayout(num)
	assert.Equal(t, []int{8}, lo.offsets)
	assert.Equal(t, 16, lo.size)

	color := types.NewEnumType("Color")
	color.AddVariant("Red", nil)
	color.AddVariant("Green", nil)

	lo = l.enumLayout(color)
	assert.Equal(t, 4, lo.size)
}

func TestStructValueSemantics(t *testing.T) {
	mod := lowerProgram(t, ast.NewProgram(
		ast.NewStructDef("P", ast.NewFieldDef("x", "int")),
		ast.NewVar("a", "", ast.NewStructLit("P", ast.NewInt(1))),
		ast.NewVar("b", "", ast.NewName("a")),
	))

	var allocs, copies int
	for _, instr := range mod.Function("_init").Code {
		switch instr.(type) {
		case *ir.Alloc:
			allocs++
		case *ir.MemCopy:
			copies++
		}
	}

	// `a` is constructed in place and `b` receives a copy.
	assert.Equal(t, 2, allocs)
	assert.Equal(t, 1, copies)
}
