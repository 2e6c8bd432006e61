package programs

import "wabbit/ast"

func init() {
	register(
		&Program{
			Name:      "functions",
			Summary:   "function definition, application and return",
			Output:    "5\n",
			CallDepth: 1,
			build: func() *ast.Program {
				return ast.NewProgram(
					ast.NewFunc("add", []*ast.Param{ast.NewParam("x", "int"), ast.NewParam("y", "int")}, "int", ast.NewBlock(
						ast.NewReturn(ast.NewBinary("+", ast.NewName("x"), ast.NewName("y"))),
					)),
					ast.NewFunc("main", nil, "int", ast.NewBlock(
						ast.NewVar("result", "", ast.NewCall("add", ast.NewInt(2), ast.NewInt(3))),
						ast.NewPrint(ast.NewName("result")),
						ast.NewReturn(ast.NewInt(0)),
					)),
				)
			},
		},
		&Program{
			Name:      "fact",
			Summary:   "recursion from a user-defined main",
			Output:    "120\n",
			CallDepth: 6,
			build: func() *ast.Program {
				n := func() ast.Expr { return ast.NewName("n") }

				return ast.NewProgram(
					ast.NewFunc("fact", []*ast.Param{ast.NewParam("n", "int")}, "int", ast.NewBlock(
						ast.NewIf(
							ast.NewBinary("==", n(), ast.NewInt(0)),
							ast.NewBlock(ast.NewReturn(ast.NewInt(1))),
							ast.NewBlock(ast.NewReturn(ast.NewBinary("*", n(),
								ast.NewCall("fact", ast.NewBinary("-", n(), ast.NewInt(1))),
							))),
						),
					)),
					ast.NewFunc("main", nil, "int", ast.NewBlock(
						ast.NewPrint(ast.NewCall("fact", ast.NewInt(5))),
						ast.NewReturn(ast.NewInt(0)),
					)),
				)
			},
		},
		&Program{
			Name:      "topfact",
			Summary:   "recursion from a top-level statement",
			Output:    "120\n",
			CallDepth: 7,
			build: func() *ast.Program {
				n := func() ast.Expr { return ast.NewName("n") }

				return ast.NewProgram(
					ast.NewFunc("fact", []*ast.Param{ast.NewParam("n", "int")}, "int", ast.NewBlock(
						ast.NewIf(
							ast.NewBinary("==", n(), ast.NewInt(0)),
							ast.NewBlock(ast.NewReturn(ast.NewInt(1))),
							ast.NewBlock(ast.NewReturn(ast.NewBinary("*", n(),
								ast.NewCall("fact", ast.NewBinary("-", n(), ast.NewInt(1))),
							))),
						),
					)),
					ast.NewPrint(ast.NewCall("fact", ast.NewInt(5))),
				)
			},
		},
		&Program{
			Name:       "status",
			Summary:    "exit status from main",
			Output:     "",
			ExitStatus: 7,
			CallDepth:  1,
			build: func() *ast.Program {
				return ast.NewProgram(
					ast.NewVar("code", "int", ast.NewInt(3)),
					ast.NewFunc("main", nil, "int", ast.NewBlock(
						ast.NewReturn(ast.NewBinary("+", ast.NewName("code"), ast.NewInt(4))),
					)),
				)
			},
		},
	)
}
