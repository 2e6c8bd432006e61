package lower

import (
	"wabbit/ast"
	"wabbit/common"
	"wabbit/ir"
	"wabbit/report"
	"wabbit/types"
)

// lowerStmt lowers a statement.
func (l *Lowerer) lowerStmt(stmt ast.Stmt) {
	switch v := stmt.(type) {
	case *ast.Print:
		l.lowerPrint(v)
	case *ast.Assign:
		l.lowerAssign(v)
	case *ast.VarDecl:
		l.lowerDecl(v.Sym, v.Init)
	case *ast.ConstDecl:
		l.lowerDecl(v.Sym, v.Init)
	case *ast.If:
		l.lowerIf(v)
	case *ast.While:
		l.lowerWhile(v)
	case *ast.Break:
		l.emit(&ir.Goto{Label: l.innermostLoop().exit})
	case *ast.Continue:
		l.emit(&ir.Goto{Label: l.innermostLoop().head})
	case *ast.Return:
		if v.Value == nil {
			l.emit(&ir.Return{Type: ir.Void, Src: ir.NoReg})
		} else {
			src := l.lowerExpr(v.Value)
			l.emit(&ir.Return{Type: valueType(v.Value.Type()), Src: src})
		}
	case *ast.ExprStmt:
		l.lowerExpr(v.Expr)
	default:
		panic(report.ICE("unexpected statement `%s` in lowering", ast.Format(stmt)))
	}
}

// lowerBlock lowers a block in its own scope.
func (l *Lowerer) lowerBlock(b *ast.Block) {
	l.pushScope()
	defer l.popScope()

	for _, stmt := range b.Stmts {
		l.lowerStmt(stmt)
	}
}

// printFuncs maps the type of a printed value to its runtime print function.
var printFuncs = map[types.PrimitiveType]string{
	types.PrimTypeInt:   common.PrintIntFunc,
	types.PrimTypeFloat: common.PrintFloatFunc,
	types.PrimTypeBool:  common.PrintBoolFunc,
	types.PrimTypeChar:  common.PrintCharFunc,
}

// lowerPrint lowers a print statement to a call to the runtime.
func (l *Lowerer) lowerPrint(p *ast.Print) {
	pt, ok := p.Value.Type().(types.PrimitiveType)
	if !ok || printFuncs[pt] == "" {
		panic(report.ICE("cannot print a value of type `%s`", p.Value.Type().Repr()))
	}

	src := l.lowerExpr(p.Value)
	l.emit(&ir.CallExt{Func: printFuncs[pt], Args: []ir.Reg{src}})
}

// lowerDecl lowers a variable or constant declaration.  Declarations without
// an initializer are zero-initialized.
func (l *Lowerer) lowerDecl(sym *common.Symbol, init ast.Expr) {
	var src ir.Reg
	if init == nil {
		src = l.zeroValue(sym.Type)
	} else {
		src = l.lowerValue(init)
	}

	l.declare(sym, src)
}

// lowerAssign lowers an assignment.
func (l *Lowerer) lowerAssign(as *ast.Assign) {
	src := l.lowerValue(as.Value)

	switch v := as.Target.(type) {
	case *ast.Name:
		l.store(v.Sym, src)
	case *ast.FieldAccess:
		addr := l.lowerExpr(v.Operand)
		st := v.Operand.Type().(*types.StructType)
		index := st.Indices[v.Field]

		l.emit(&ir.MemStore{
			Type:   valueType(st.Fields[index].Type),
			Addr:   addr,
			Offset: l.structLayout(st).offsets[index],
			Src:    src,
		})
	default:
		panic(report.ICE("invalid assignment target `%s`", ast.Format(as.Target)))
	}
}

// -----------------------------------------------------------------------------

// lowerIf lowers a conditional statement.
func (l *Lowerer) lowerIf(ifStmt *ast.If) {
	cond := l.lowerExpr(ifStmt.Cond)

	thenLabel := l.newLabel()

	var elseLabel string
	if ifStmt.Else != nil {
		elseLabel = l.newLabel()
	}

	endLabel := l.newLabel()

	l.emit(&ir.BranchIf{Test: cond, Label: thenLabel})
	if ifStmt.Else == nil {
		l.emit(&ir.Goto{Label: endLabel})
	} else {
		l.emit(&ir.Goto{Label: elseLabel})
	}

	l.emit(&ir.Label{Name: thenLabel})
	l.lowerBlock(ifStmt.Then)
	l.emit(&ir.Goto{Label: endLabel})

	if ifStmt.Else != nil {
		l.emit(&ir.Label{Name: elseLabel})
		l.lowerBlock(ifStmt.Else)
	}

	l.emit(&ir.Label{Name: endLabel})
}

// lowerWhile lowers a while loop.
func (l *Lowerer) lowerWhile(loop *ast.While) {
	labels := loopLabels{head: l.newLabel(), exit: l.newLabel()}
	bodyLabel := l.newLabel()

	l.emit(&ir.Label{Name: labels.head})
	cond := l.lowerExpr(loop.Cond)
	l.emit(
		&ir.BranchIf{Test: cond, Label: bodyLabel},
		&ir.Goto{Label: labels.exit},
		&ir.Label{Name: bodyLabel},
	)

	l.loops = append(l.loops, labels)
	l.lowerBlock(loop.Body)
	l.loops = l.loops[:len(l.loops)-1]

	l.emit(
		&ir.Goto{Label: labels.head},
		&ir.Label{Name: labels.exit},
	)
}

// innermostLoop returns the labels of the innermost enclosing loop.
func (l *Lowerer) innermostLoop() loopLabels {
	if len(l.loops) == 0 {
		panic(report.ICE("loop control statement outside of a loop"))
	}

	return l.loops[len(l.loops)-1]
}
