package programs

import "wabbit/ast"

// numberEnum builds the definition of the `Number` enum.
func numberEnum() *ast.EnumDef {
	return ast.NewEnumDef("Number",
		ast.NewVariantDef("Integer", "int"),
		ast.NewVariantDef("Float", "float"),
	)
}

func init() {
	register(
		&Program{
			Name:      "point",
			Summary:   "struct construction and field access",
			Output:    "1\n",
			CallDepth: 1,
			build: func() *ast.Program {
				return ast.NewProgram(
					ast.NewStructDef("Point", ast.NewFieldDef("x", "int"), ast.NewFieldDef("y", "int")),
					ast.NewVar("p", "", ast.NewStructLit("Point", ast.NewInt(1), ast.NewInt(2))),
					ast.NewPrint(ast.NewFieldAccess(ast.NewName("p"), "x")),
				)
			},
		},
		&Program{
			Name:      "structs",
			Summary:   "structs as parameters and return values",
			Output:    "-1\n4\n",
			CallDepth: 2,
			build: func() *ast.Program {
				field := func(name, f string) ast.Expr { return ast.NewFieldAccess(ast.NewName(name), f) }

				return ast.NewProgram(
					ast.NewStructDef("Fraction",
						ast.NewFieldDef("numerator", "int"),
						ast.NewFieldDef("denominator", "int"),
					),
					ast.NewFunc("frac_mul",
						[]*ast.Param{ast.NewParam("a", "Fraction"), ast.NewParam("b", "Fraction")},
						"Fraction",
						ast.NewBlock(ast.NewReturn(ast.NewStructLit("Fraction",
							ast.NewBinary("*", field("a", "numerator"), field("b", "numerator")),
							ast.NewBinary("*", field("a", "denominator"), field("b", "denominator")),
						))),
					),
					ast.NewVar("x", "", ast.NewStructLit("Fraction", ast.NewInt(1), ast.NewInt(2))),
					ast.NewVar("y", "", ast.NewCall("frac_mul", ast.NewName("x"), ast.NewName("x"))),
					ast.NewAssign(field("y", "numerator"), ast.NewUnary("-", field("y", "numerator"))),
					ast.NewPrint(field("y", "numerator")),
					ast.NewPrint(field("y", "denominator")),
				)
			},
		},
		&Program{
			Name:      "copies",
			Summary:   "struct value semantics",
			Output:    "1\n5\n",
			CallDepth: 1,
			build: func() *ast.Program {
				return ast.NewProgram(
					ast.NewStructDef("Point", ast.NewFieldDef("x", "int"), ast.NewFieldDef("y", "int")),
					ast.NewVar("p", "", ast.NewStructLit("Point", ast.NewInt(1), ast.NewInt(2))),
					ast.NewVar("q", "", ast.NewName("p")),
					ast.NewAssign(ast.NewFieldAccess(ast.NewName("q"), "x"), ast.NewInt(5)),
					ast.NewPrint(ast.NewFieldAccess(ast.NewName("p"), "x")),
					ast.NewPrint(ast.NewFieldAccess(ast.NewName("q"), "x")),
				)
			},
		},
		&Program{
			Name:      "structloop",
			Summary:   "struct allocation in a long loop",
			Output:    "49995000\n",
			CallDepth: 1,
			build: func() *ast.Program {
				i := func() ast.Expr { return ast.NewName("i") }

				return ast.NewProgram(
					ast.NewStructDef("Pair", ast.NewFieldDef("x", "int"), ast.NewFieldDef("y", "int")),
					ast.NewVar("s", "", ast.NewInt(0)),
					ast.NewVar("i", "", ast.NewInt(0)),
					ast.NewWhile(ast.NewBinary("<", i(), ast.NewInt(10000)), ast.NewBlock(
						ast.NewVar("p", "", ast.NewStructLit("Pair", i(), i())),
						ast.NewAssign(ast.NewName("s"), ast.NewBinary("+", ast.NewName("s"), ast.NewFieldAccess(ast.NewName("p"), "x"))),
						ast.NewAssign(ast.NewName("i"), ast.NewBinary("+", i(), ast.NewInt(1))),
					)),
					ast.NewPrint(ast.NewName("s")),
				)
			},
		},
		&Program{
			Name:      "structrecursion",
			Summary:   "deep recursion passing a struct parameter",
			Output:    "5\n",
			CallDepth: 20001,
			build: func() *ast.Program {
				n := func() ast.Expr { return ast.NewName("n") }

				return ast.NewProgram(
					ast.NewStructDef("Box", ast.NewFieldDef("v", "int")),
					ast.NewFunc("down",
						[]*ast.Param{ast.NewParam("n", "int"), ast.NewParam("b", "Box")},
						"int",
						ast.NewBlock(
							ast.NewIf(
								ast.NewBinary("==", n(), ast.NewInt(0)),
								ast.NewBlock(ast.NewReturn(ast.NewFieldAccess(ast.NewName("b"), "v"))),
								nil,
							),
							ast.NewReturn(ast.NewCall("down", ast.NewBinary("-", n(), ast.NewInt(1)), ast.NewName("b"))),
						),
					),
					ast.NewFunc("main", nil, "int", ast.NewBlock(
						ast.NewPrint(ast.NewCall("down", ast.NewInt(20000), ast.NewStructLit("Box", ast.NewInt(5)))),
						ast.NewReturn(ast.NewInt(0)),
					)),
				)
			},
		},
		&Program{
			Name:      "enums",
			Summary:   "enum values and pattern matching",
			Output:    "45.7\n",
			CallDepth: 2,
			build: func() *ast.Program {
				name := ast.NewName
				float := func(e ast.Expr) ast.Expr { return ast.NewCall("float", e) }
				integer := func(e ast.Expr) ast.Expr { return ast.NewEnumValue("Number", "Integer", e) }
				floating := func(e ast.Expr) ast.Expr { return ast.NewEnumValue("Number", "Float", e) }

				return ast.NewProgram(
					numberEnum(),
					ast.NewFunc("add",
						[]*ast.Param{ast.NewParam("a", "Number"), ast.NewParam("b", "Number")},
						"Number",
						ast.NewBlock(ast.NewReturn(ast.NewMatch(name("a"),
							ast.NewArm("Integer", "x", ast.NewMatch(name("b"),
								ast.NewArm("Integer", "y", integer(ast.NewBinary("+", name("x"), name("y")))),
								ast.NewArm("Float", "y", floating(ast.NewBinary("+", float(name("x")), name("y")))),
							)),
							ast.NewArm("Float", "x", ast.NewMatch(name("b"),
								ast.NewArm("Integer", "y", floating(ast.NewBinary("+", name("x"), float(name("x"))))),
								ast.NewArm("Float", "y", floating(ast.NewBinary("+", name("x"), name("y")))),
							)),
						))),
					),
					ast.NewVar("a", "", integer(ast.NewInt(42))),
					ast.NewVar("b", "", floating(ast.NewFloat(3.7))),
					ast.NewVar("c", "", ast.NewCall("add", name("a"), name("b"))),
					ast.NewExprStmt(ast.NewMatch(name("c"),
						ast.NewArm("Integer", "x", ast.NewCompound(ast.NewPrint(name("x")))),
						ast.NewArm("Float", "x", ast.NewCompound(ast.NewPrint(name("x")))),
					)),
				)
			},
		},
		&Program{
			Name:      "catchall",
			Summary:   "match with a catch-all arm",
			Output:    "0\n",
			CallDepth: 1,
			build: func() *ast.Program {
				return ast.NewProgram(
					numberEnum(),
					ast.NewVar("n", "", ast.NewEnumValue("Number", "Float", ast.NewFloat(1.5))),
					ast.NewPrint(ast.NewMatch(ast.NewName("n"),
						ast.NewArm("Integer", "x", ast.NewName("x")),
						ast.NewArm(ast.CatchAll, "", ast.NewInt(0)),
					)),
				)
			},
		},
		&Program{
			Name:       "nonexhaustive",
			Summary:    "match missing a variant",
			CheckError: "match is not exhaustive: missing `Float`",
			build: func() *ast.Program {
				return ast.NewProgram(
					numberEnum(),
					ast.NewVar("n", "", ast.NewEnumValue("Number", "Integer", ast.NewInt(1))),
					ast.NewPrint(ast.NewMatch(ast.NewName("n"),
						ast.NewArm("Integer", "x", ast.NewName("x")),
					)),
				)
			},
		},
	)
}
