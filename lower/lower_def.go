package lower

import (
	"wabbit/ast"
	"wabbit/common"
	"wabbit/ir"
	"wabbit/types"
	"wabbit/walk"
)

// lowerInit generates the `_init` function holding every top-level statement
// which is not a definition.  `_init` is always the first function of the
// module.
func (l *Lowerer) lowerInit(cp *walk.CheckedProgram) {
	l.fn = l.mod.NewFunction(common.InitFuncName, nil, ir.I32)

	for _, stmt := range cp.Program.Stmts {
		switch stmt.(type) {
		case *ast.FuncDef, *ast.StructDef, *ast.EnumDef:
			continue
		}

		l.lowerStmt(stmt)
	}

	l.emit(&ir.Return{Type: ir.I32, Src: l.constInt(ir.I32, 0)})
}

// synthesizeMain generates the default `main` for programs which do not define
// one: it runs `_init` and returns zero.
func (l *Lowerer) synthesizeMain() {
	l.fn = l.mod.NewFunction(common.MainFuncName, nil, ir.I32)

	l.emit(&ir.Call{Func: common.InitFuncName, Dest: ir.NoReg})
	l.emit(&ir.Return{Type: ir.I32, Src: l.constInt(ir.I32, 0)})
}

// lowerFuncDef generates a user defined function.
func (l *Lowerer) lowerFuncDef(fd *ast.FuncDef) {
	ft := fd.Sym.Type.(*types.FuncType)

	params := make([]ir.Variable, len(fd.Params))
	for i, param := range fd.Params {
		params[i] = ir.Variable{Name: param.Name, Type: valueType(ft.ParamTypes[i])}
	}

	rtType := valueType(ft.ReturnType)
	l.fn = l.mod.NewFunction(fd.Name, params, rtType)

	// The parameters and the body share the function's scope.
	l.pushScope()
	defer l.popScope()

	if fd.Name == common.MainFuncName {
		l.emit(&ir.Call{Func: common.InitFuncName, Dest: ir.NoReg})
	}

	for i, param := range fd.Params {
		l.scopes[0][param.Sym] = i

		// Struct parameters are passed by value: the callee owns a copy.
		if st, ok := ft.ParamTypes[i].(*types.StructType); ok {
			l.store(param.Sym, l.copyStruct(l.load(param.Sym), st))
		}
	}

	for _, stmt := range fd.Body.Stmts {
		l.lowerStmt(stmt)
	}

	if rtType == ir.Void {
		l.emit(&ir.Return{Type: ir.Void, Src: ir.NoReg})
	}
}
