package walk

import (
	"testing"

	"wabbit/ast"
	"wabbit/common"
	"wabbit/report"
	"wabbit/types"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// typeErrors checks prog, expects it to fail, and returns its type errors.
func typeErrors(t *testing.T, prog *ast.Program) []*report.TypeError {
	t.Helper()

	cp, err := Check(prog)
	require.Error(t, err)
	assert.Nil(t, cp)

	merr, ok := err.(*multierror.Error)
	require.True(t, ok, "expected a *multierror.Error, got %T", err)

	var terrs []*report.TypeError
	for _, e := range merr.Errors {
		terr, ok := e.(*report.TypeError)
		require.True(t, ok, "expected a *report.TypeError, got %T", e)
		terrs = append(terrs, terr)
	}

	return terrs
}

// mustCheck checks prog and expects it to succeed.
func mustCheck(t *testing.T, prog *ast.Program) *CheckedProgram {
	t.Helper()

	cp, err := Check(prog)
	require.NoError(t, err)
	return cp
}

// numberEnum is `enum Number { Integer(int); Float(float); }`.
func numberEnum() *ast.EnumDef {
	return ast.NewEnumDef("Number",
		ast.NewVariantDef("Integer", "int"),
		ast.NewVariantDef("Float", "float"),
	)
}

func TestArithmeticAnnotations(t *testing.T) {
	sum := ast.NewBinary("+", ast.NewInt(2), ast.NewBinary("*", ast.NewInt(3), ast.NewInt(4)))
	mustCheck(t, ast.NewProgram(ast.NewPrint(sum)))

	assert.Equal(t, types.PrimTypeInt, sum.Type())
	assert.Equal(t, types.PrimTypeInt, sum.Rhs.Type())
}

func TestConstAssignmentRejected(t *testing.T) {
	assign := ast.NewAssign(ast.NewName("x"), ast.NewInt(2))
	terrs := typeErrors(t, ast.NewProgram(
		ast.NewConst("x", "", ast.NewInt(1)),
		assign,
	))

	require.Len(t, terrs, 1)
	assert.Contains(t, terrs[0].Message, "cannot assign to constant `x`")
	assert.Equal(t, "x", terrs[0].Source)
}

func TestMixedArithmeticRejected(t *testing.T) {
	terrs := typeErrors(t, ast.NewProgram(
		ast.NewPrint(ast.NewBinary("+", ast.NewInt(2), ast.NewFloat(3.0))),
	))

	require.Len(t, terrs, 1)
	assert.Contains(t, terrs[0].Message, "expected `int` but got `float`")
}

func TestNominalStructTyping(t *testing.T) {
	prog := ast.NewProgram(
		ast.NewStructDef("A", ast.NewFieldDef("x", "int")),
		ast.NewStructDef("B", ast.NewFieldDef("x", "int")),
		ast.NewFunc("f", []*ast.Param{ast.NewParam("a", "A")}, "int", ast.NewBlock(
			ast.NewReturn(ast.NewFieldAccess(ast.NewName("a"), "x")),
		)),
		ast.NewPrint(ast.NewCall("f", ast.NewCall("B", ast.NewInt(1)))),
	)

	terrs := typeErrors(t, prog)
	require.Len(t, terrs, 1)
	assert.Contains(t, terrs[0].Message, "expected `A` but got `B`")
}

func TestStructFieldAccess(t *testing.T) {
	access := ast.NewFieldAccess(ast.NewName("f"), "numerator")
	cp := mustCheck(t, ast.NewProgram(
		ast.NewStructDef("Fraction", ast.NewFieldDef("numerator", "int"), ast.NewFieldDef("denominator", "int")),
		ast.NewVar("f", "", ast.NewStructLit("Fraction", ast.NewInt(1), ast.NewInt(2))),
		ast.NewAssign(ast.NewFieldAccess(ast.NewName("f"), "denominator"), ast.NewInt(3)),
		ast.NewPrint(access),
	))

	assert.Equal(t, types.PrimTypeInt, access.Type())
	assert.Nil(t, cp.Main)
}

func TestMatchExhaustiveness(t *testing.T) {
	build := func(arms ...*ast.MatchArm) *ast.Program {
		return ast.NewProgram(
			numberEnum(),
			ast.NewVar("n", "", ast.NewEnumValue("Number", "Integer", ast.NewInt(42))),
			ast.NewPrint(ast.NewMatch(ast.NewName("n"), arms...)),
		)
	}

	intArm := func() *ast.MatchArm { return ast.NewArm("Integer", "x", ast.NewName("x")) }
	floatArm := func() *ast.MatchArm { return ast.NewArm("Float", "y", ast.NewCall("int", ast.NewName("y"))) }

	cp := mustCheck(t, build(intArm(), floatArm()))
	assert.Empty(t, cp.Warnings)

	cp = mustCheck(t, build(intArm(), ast.NewArm(ast.CatchAll, "", ast.NewInt(0))))
	assert.Empty(t, cp.Warnings)

	cp = mustCheck(t, build(intArm(), floatArm(), ast.NewArm(ast.CatchAll, "", ast.NewInt(0))))
	require.Len(t, cp.Warnings, 1)
	assert.Contains(t, cp.Warnings[0].Message, "catch-all arm is unreachable")
	assert.Equal(t, "_ => 0", cp.Warnings[0].Source)

	terrs := typeErrors(t, build(intArm()))
	require.Len(t, terrs, 1)
	assert.Contains(t, terrs[0].Message, "not exhaustive: missing `Float`")

	terrs = typeErrors(t, build(intArm(), intArm(), floatArm()))
	require.Len(t, terrs, 1)
	assert.Contains(t, terrs[0].Message, "duplicate match arm")

	terrs = typeErrors(t, build(ast.NewArm(ast.CatchAll, "", ast.NewInt(0)), intArm()))
	require.Len(t, terrs, 1)
	assert.Contains(t, terrs[0].Message, "catch-all arm must be the last arm")

	terrs = typeErrors(t, build(intArm(), ast.NewArm("Float", "y", ast.NewName("y"))))
	require.Len(t, terrs, 1)
	assert.Contains(t, terrs[0].Message, "match arms have different types")
}

func TestMatchBindingScope(t *testing.T) {
	terrs := typeErrors(t, ast.NewProgram(
		numberEnum(),
		ast.NewVar("n", "", ast.NewEnumValue("Number", "Float", ast.NewFloat(1.5))),
		ast.NewPrint(ast.NewMatch(ast.NewName("n"),
			ast.NewArm("Integer", "x", ast.NewName("x")),
			ast.NewArm("Float", "", ast.NewName("x")),
		)),
	))

	require.Len(t, terrs, 1)
	assert.Contains(t, terrs[0].Message, "undefined symbol: `x`")
}

func TestBatchDiagnostics(t *testing.T) {
	terrs := typeErrors(t, ast.NewProgram(
		ast.NewPrint(ast.NewName("a")),
		ast.NewVar("ok", "", ast.NewInt(1)),
		ast.NewPrint(ast.NewBinary("+", ast.NewBool(true), ast.NewBool(false))),
		ast.NewBreak(),
		ast.NewReturn(nil),
	))

	require.Len(t, terrs, 4)
	assert.Contains(t, terrs[0].Message, "undefined symbol: `a`")
	assert.Contains(t, terrs[1].Message, "operator `+` cannot be applied to `bool`")
	assert.Contains(t, terrs[2].Message, "cannot use break outside a loop")
	assert.Contains(t, terrs[3].Message, "cannot use return outside a function")
}

func TestLoopControl(t *testing.T) {
	mustCheck(t, ast.NewProgram(
		ast.NewVar("i", "", ast.NewInt(0)),
		ast.NewWhile(ast.NewBinary("<", ast.NewName("i"), ast.NewInt(10)), ast.NewBlock(
			ast.NewAssign(ast.NewName("i"), ast.NewBinary("+", ast.NewName("i"), ast.NewInt(1))),
			ast.NewIf(ast.NewBinary("==", ast.NewName("i"), ast.NewInt(5)), ast.NewBlock(ast.NewBreak()), nil),
			ast.NewContinue(),
		)),
	))

	// A loop in one function does not extend into another.
	terrs := typeErrors(t, ast.NewProgram(
		ast.NewFunc("f", nil, "", ast.NewBlock(ast.NewContinue())),
		ast.NewWhile(ast.NewBool(true), ast.NewBlock(ast.NewExprStmt(ast.NewCall("f")))),
	))

	require.Len(t, terrs, 1)
	assert.Contains(t, terrs[0].Message, "cannot use continue outside a loop")
}

func TestFunctionReturns(t *testing.T) {
	mustCheck(t, ast.NewProgram(
		ast.NewFunc("sign", []*ast.Param{ast.NewParam("x", "int")}, "int", ast.NewBlock(
			ast.NewIf(ast.NewBinary("<", ast.NewName("x"), ast.NewInt(0)),
				ast.NewBlock(ast.NewReturn(ast.NewUnary("-", ast.NewInt(1)))),
				ast.NewBlock(ast.NewReturn(ast.NewInt(1))),
			),
		)),
	))

	terrs := typeErrors(t, ast.NewProgram(
		ast.NewFunc("f", []*ast.Param{ast.NewParam("x", "int")}, "int", ast.NewBlock(
			ast.NewIf(ast.NewName("x"), ast.NewBlock(ast.NewReturn(ast.NewInt(1))), nil),
		)),
		ast.NewFunc("g", nil, "int", ast.NewBlock(
			ast.NewIf(ast.NewBool(true), ast.NewBlock(ast.NewReturn(ast.NewInt(1))), nil),
		)),
		ast.NewFunc("h", nil, "", ast.NewBlock(ast.NewReturn(ast.NewInt(1)))),
	))

	require.Len(t, terrs, 3)
	assert.Contains(t, terrs[0].Message, "expected `bool` but got `int`")
	assert.Contains(t, terrs[1].Message, "missing return statement in function `g`")
	assert.Contains(t, terrs[2].Message, "expected `unit` but got `int`")
}

func TestForwardReferences(t *testing.T) {
	cp := mustCheck(t, ast.NewProgram(
		ast.NewFunc("main", nil, "int", ast.NewBlock(
			ast.NewPrint(ast.NewCall("twice", ast.NewInt(21))),
			ast.NewReturn(ast.NewInt(0)),
		)),
		ast.NewFunc("twice", []*ast.Param{ast.NewParam("x", "int")}, "int", ast.NewBlock(
			ast.NewReturn(ast.NewBinary("*", ast.NewName("x"), ast.NewInt(2))),
		)),
	))

	require.NotNil(t, cp.Main)
	assert.Len(t, cp.Funcs, 2)
	assert.Equal(t, common.DefKindFunc, cp.Main.Sym.DefKind)
}

func TestMainSignature(t *testing.T) {
	terrs := typeErrors(t, ast.NewProgram(
		ast.NewFunc("main", []*ast.Param{ast.NewParam("x", "int")}, "int", ast.NewBlock(
			ast.NewReturn(ast.NewName("x")),
		)),
	))

	require.Len(t, terrs, 1)
	assert.Contains(t, terrs[0].Message, "`main` must take no parameters and return `int`")
}

func TestConversions(t *testing.T) {
	mustCheck(t, ast.NewProgram(
		ast.NewPrint(ast.NewCall("int", ast.NewFloat(2.5))),
		ast.NewPrint(ast.NewCall("float", ast.NewInt(2))),
		ast.NewPrint(ast.NewCall("char", ast.NewInt(65))),
		ast.NewPrint(ast.NewCall("int", ast.NewChar('A'))),
		ast.NewPrint(ast.NewCall("int", ast.NewBool(true))),
	))

	terrs := typeErrors(t, ast.NewProgram(
		ast.NewPrint(ast.NewCall("bool", ast.NewInt(1))),
		ast.NewPrint(ast.NewCall("float", ast.NewChar('a'))),
	))

	require.Len(t, terrs, 2)
	assert.Contains(t, terrs[0].Message, "cannot convert `int` to `bool`")
	assert.Contains(t, terrs[1].Message, "cannot convert `char` to `float`")
}

func TestScopesAndShadowing(t *testing.T) {
	inner := ast.NewName("x")
	mustCheck(t, ast.NewProgram(
		ast.NewVar("x", "", ast.NewInt(1)),
		ast.NewIf(ast.NewBool(true), ast.NewBlock(
			ast.NewVar("x", "", ast.NewFloat(2.0)),
			ast.NewPrint(inner),
		), nil),
	))

	assert.Equal(t, types.PrimTypeFloat, inner.Type())
	assert.False(t, inner.Sym.Global)

	terrs := typeErrors(t, ast.NewProgram(
		ast.NewVar("x", "", ast.NewInt(1)),
		ast.NewVar("x", "", ast.NewInt(2)),
		ast.NewVar("y", "", nil),
		ast.NewVar("int", "", ast.NewInt(3)),
		ast.NewVar("_init", "", ast.NewInt(3)),
	))

	require.Len(t, terrs, 4)
	assert.Contains(t, terrs[0].Message, "multiple symbols named `x`")
	assert.Contains(t, terrs[1].Message, "requires a type or an initializer")
	assert.Contains(t, terrs[2].Message, "`int` is a reserved name")
	assert.Contains(t, terrs[3].Message, "`_init` is a reserved name")
}

func TestNestedDefinitionsRejected(t *testing.T) {
	terrs := typeErrors(t, ast.NewProgram(
		ast.NewFunc("f", nil, "", ast.NewBlock(
			ast.NewFunc("g", nil, "", ast.NewBlock()),
		)),
	))

	require.Len(t, terrs, 1)
	assert.Contains(t, terrs[0].Message, "only permitted at the top level")
}

func TestCompoundExpressionType(t *testing.T) {
	comp := ast.NewCompound(
		ast.NewVar("t", "", ast.NewName("x")),
		ast.NewAssign(ast.NewName("x"), ast.NewName("y")),
		ast.NewAssign(ast.NewName("y"), ast.NewName("t")),
		ast.NewExprStmt(ast.NewName("t")),
	)

	mustCheck(t, ast.NewProgram(
		ast.NewVar("x", "", ast.NewInt(37)),
		ast.NewVar("y", "", ast.NewInt(42)),
		ast.NewPrint(comp),
	))

	assert.Equal(t, types.PrimTypeInt, comp.Type())

	terrs := typeErrors(t, ast.NewProgram(
		ast.NewPrint(ast.NewCompound(ast.NewVar("t", "", ast.NewInt(1)))),
	))

	require.Len(t, terrs, 1)
	assert.Contains(t, terrs[0].Message, "cannot print a value of type `unit`")
}

func TestSelfContainingTypeRejected(t *testing.T) {
	terrs := typeErrors(t, ast.NewProgram(
		ast.NewStructDef("A", ast.NewFieldDef("b", "B")),
		ast.NewStructDef("B", ast.NewFieldDef("a", "A")),
	))

	require.Len(t, terrs, 2)
	assert.Contains(t, terrs[0].Message, "type `A` contains itself")
}

func TestIntegerLiteralRange(t *testing.T) {
	terrs := typeErrors(t, ast.NewProgram(ast.NewPrint(ast.NewInt(1<<40))))

	require.Len(t, terrs, 1)
	assert.Contains(t, terrs[0].Message, "out of range")
}

func TestErrorSpans(t *testing.T) {
	rhs := ast.NewFloat(3)
	rhs.SetSpan(&report.TextSpan{StartLine: 4, StartCol: 10, EndLine: 4, EndCol: 12})

	terrs := typeErrors(t, ast.NewProgram(ast.NewPrint(ast.NewBinary("+", ast.NewInt(2), rhs))))
	require.Len(t, terrs, 1)

	assert.Equal(t, "5:11", terrs[0].Span.String())
	assert.Equal(t, "3.0", terrs[0].Source)
	assert.Equal(t, "5:11: type mismatch: expected `int` but got `float` (in `3.0`)", terrs[0].Error())
}
