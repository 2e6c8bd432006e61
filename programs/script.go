package programs

import "wabbit/ast"

func init() {
	register(
		&Program{
			Name:      "expr",
			Summary:   "operator precedence",
			Output:    "14\n",
			CallDepth: 1,
			build: func() *ast.Program {
				return ast.NewProgram(
					ast.NewPrint(ast.NewBinary("+", ast.NewInt(2), ast.NewBinary("*", ast.NewInt(3), ast.NewInt(4)))),
				)
			},
		},
		&Program{
			Name:      "print",
			Summary:   "integer and float arithmetic",
			Output:    "-10\n2.75\n",
			CallDepth: 1,
			build: func() *ast.Program {
				return ast.NewProgram(
					ast.NewPrint(ast.NewBinary("+", ast.NewInt(2), ast.NewBinary("*", ast.NewInt(3), ast.NewUnary("-", ast.NewInt(4))))),
					ast.NewPrint(ast.NewBinary("-", ast.NewFloat(2), ast.NewBinary("/", ast.NewFloat(3), ast.NewUnary("-", ast.NewFloat(4))))),
				)
			},
		},
		&Program{
			Name:      "vars",
			Summary:   "constants, variables and zero values",
			Output:    "3.7168200000000002\n",
			CallDepth: 1,
			build: func() *ast.Program {
				return ast.NewProgram(
					ast.NewConst("pi", "", ast.NewFloat(3.14159)),
					ast.NewVar("tau", "float", nil),
					ast.NewAssign(ast.NewName("tau"), ast.NewBinary("*", ast.NewFloat(2), ast.NewName("pi"))),
					ast.NewPrint(ast.NewBinary("+", ast.NewUnary("-", ast.NewName("tau")), ast.NewFloat(10))),
				)
			},
		},
		&Program{
			Name:      "relations",
			Summary:   "relational operators",
			Output:    "true\ntrue\ntrue\n",
			CallDepth: 1,
			build: func() *ast.Program {
				return ast.NewProgram(
					ast.NewPrint(ast.NewBinary("==", ast.NewInt(1), ast.NewInt(1))),
					ast.NewPrint(ast.NewBinary("<", ast.NewInt(0), ast.NewInt(1))),
					ast.NewPrint(ast.NewBinary(">", ast.NewInt(1), ast.NewInt(0))),
				)
			},
		},
		&Program{
			Name:      "conditionals",
			Summary:   "if and else",
			Output:    "2\n",
			CallDepth: 1,
			build: func() *ast.Program {
				return ast.NewProgram(
					ast.NewVar("a", "int", ast.NewInt(2)),
					ast.NewVar("b", "int", ast.NewInt(3)),
					ast.NewIf(
						ast.NewBinary("<", ast.NewName("a"), ast.NewName("b")),
						ast.NewBlock(ast.NewPrint(ast.NewName("a"))),
						ast.NewBlock(ast.NewPrint(ast.NewName("b"))),
					),
				)
			},
		},
		&Program{
			Name:      "loops",
			Summary:   "while loops",
			Output:    "1\n2\n6\n24\n120\n720\n5040\n40320\n362880\n",
			CallDepth: 1,
			build: func() *ast.Program {
				return ast.NewProgram(
					ast.NewConst("n", "", ast.NewInt(10)),
					ast.NewVar("x", "int", ast.NewInt(1)),
					ast.NewVar("fact", "int", ast.NewInt(1)),
					ast.NewWhile(ast.NewBinary("<", ast.NewName("x"), ast.NewName("n")), ast.NewBlock(
						ast.NewAssign(ast.NewName("fact"), ast.NewBinary("*", ast.NewName("fact"), ast.NewName("x"))),
						ast.NewAssign(ast.NewName("x"), ast.NewBinary("+", ast.NewName("x"), ast.NewInt(1))),
						ast.NewPrint(ast.NewName("fact")),
					)),
				)
			},
		},
		&Program{
			Name:      "breakcontinue",
			Summary:   "break and continue",
			Output:    "2\n",
			CallDepth: 1,
			build: func() *ast.Program {
				return ast.NewProgram(
					ast.NewVar("n", "", ast.NewInt(0)),
					ast.NewWhile(ast.NewBool(true), ast.NewBlock(
						ast.NewIf(ast.NewBinary("==", ast.NewName("n"), ast.NewInt(2)), ast.NewBlock(ast.NewBreak()), nil),
						ast.NewAssign(ast.NewName("n"), ast.NewBinary("+", ast.NewName("n"), ast.NewInt(1))),
						ast.NewIf(ast.NewBinary("==", ast.NewName("n"), ast.NewInt(1)), ast.NewBlock(ast.NewContinue()), nil),
						ast.NewPrint(ast.NewName("n")),
					)),
				)
			},
		},
		&Program{
			Name:      "compound",
			Summary:   "compound expressions",
			Output:    "42\n37\n",
			CallDepth: 1,
			build: func() *ast.Program {
				return ast.NewProgram(
					ast.NewVar("x", "", ast.NewInt(37)),
					ast.NewVar("y", "", ast.NewInt(42)),
					ast.NewAssign(ast.NewName("x"), ast.NewCompound(
						ast.NewVar("t", "", ast.NewName("y")),
						ast.NewAssign(ast.NewName("y"), ast.NewName("x")),
						ast.NewExprStmt(ast.NewName("t")),
					)),
					ast.NewPrint(ast.NewName("x")),
					ast.NewPrint(ast.NewName("y")),
				)
			},
		},
		&Program{
			Name:      "chars",
			Summary:   "characters and conversions",
			Output:    "hi\n65\ni3.5\n3\n",
			CallDepth: 1,
			build: func() *ast.Program {
				return ast.NewProgram(
					ast.NewVar("c", "char", ast.NewChar('h')),
					ast.NewPrint(ast.NewName("c")),
					ast.NewPrint(ast.NewChar('i')),
					ast.NewPrint(ast.NewChar('\n')),
					ast.NewPrint(ast.NewCall("int", ast.NewChar('A'))),
					ast.NewPrint(ast.NewCall("char", ast.NewBinary("+", ast.NewCall("int", ast.NewName("c")), ast.NewInt(1)))),
					ast.NewPrint(ast.NewBinary("/", ast.NewCall("float", ast.NewInt(7)), ast.NewFloat(2))),
					ast.NewPrint(ast.NewCall("int", ast.NewFloat(3.99))),
				)
			},
		},
		&Program{
			Name:       "constassign",
			Summary:    "assignment to a constant",
			CheckError: "cannot assign to constant `pi`",
			build: func() *ast.Program {
				return ast.NewProgram(
					ast.NewVar("x", "", ast.NewInt(3)),
					ast.NewConst("pi", "", ast.NewInt(3)),
					ast.NewAssign(ast.NewName("pi"), ast.NewInt(4)),
				)
			},
		},
		&Program{
			Name:       "mixedarith",
			Summary:    "arithmetic on mismatched types",
			CheckError: "type mismatch: expected `int` but got `float`",
			build: func() *ast.Program {
				return ast.NewProgram(
					ast.NewPrint(ast.NewBinary("+", ast.NewInt(2), ast.NewFloat(3))),
				)
			},
		},
	)
}
