package walk

import (
	"wabbit/ast"
	"wabbit/common"
	"wabbit/types"
)

// Enumeration of control modes: how control leaves a statement.
const (
	// Control continues on to the next statement.
	ControlNone = iota

	// Control jumps to the head or exit of the enclosing loop.
	ControlLoop

	// Control leaves the enclosing function.
	ControlReturn
)

// walkTopStmt walks a top-level statement.
func (w *Walker) walkTopStmt(stmt ast.Stmt) {
	switch v := stmt.(type) {
	case *ast.FuncDef:
		w.walkFuncBody(v)
	case *ast.StructDef, *ast.EnumDef:
		// Already fully handled during declaration.
	default:
		w.walkStmt(stmt)
	}
}

// walkBlock walks a block in its own scope.  The resulting control mode of the
// block is returned.
func (w *Walker) walkBlock(b *ast.Block) int {
	w.pushScope()
	defer w.popScope()

	return w.walkStmts(b.Stmts)
}

// walkStmts walks a sequence of statements in the current scope.  The control
// mode of the first statement which does not continue is returned.
func (w *Walker) walkStmts(stmts []ast.Stmt) int {
	mode := ControlNone

	for _, stmt := range stmts {
		if cm := w.walkStmt(stmt); mode == ControlNone {
			mode = cm
		}
	}

	return mode
}

// walkStmt walks a statement.  The resulting control mode of the statement is
// returned.
func (w *Walker) walkStmt(stmt ast.Stmt) int {
	switch v := stmt.(type) {
	case *ast.Print:
		typ := w.walkExpr(v.Value)
		if !types.IsPrimitive(typ) {
			w.error(v.Value, "cannot print a value of type `%s`", typ.Repr())
		}
	case *ast.Assign:
		w.walkAssign(v)
	case *ast.VarDecl:
		v.Sym = w.walkDecl(v, v.Name, v.TypeName, v.Init, common.DefKindVar)
	case *ast.ConstDecl:
		if v.Init == nil {
			w.error(v, "constant `%s` must be initialized", v.Name)
		}

		v.Sym = w.walkDecl(v, v.Name, v.TypeName, v.Init, common.DefKindConst)
	case *ast.If:
		return w.walkIf(v)
	case *ast.While:
		w.walkWhile(v)
	case *ast.Break:
		if w.loopDepth == 0 {
			w.error(v, "cannot use break outside a loop")
		}

		return ControlLoop
	case *ast.Continue:
		if w.loopDepth == 0 {
			w.error(v, "cannot use continue outside a loop")
		}

		return ControlLoop
	case *ast.Return:
		w.walkReturn(v)
		return ControlReturn
	case *ast.ExprStmt:
		w.walkExpr(v.Expr)
	case *ast.FuncDef, *ast.StructDef, *ast.EnumDef:
		w.error(stmt, "definitions are only permitted at the top level")
	default:
		w.error(stmt, "unknown statement")
	}

	return ControlNone
}

// walkDecl walks a variable or constant declaration and defines its symbol.
func (w *Walker) walkDecl(node ast.Stmt, name, typeName string, init ast.Expr, kind int) *common.Symbol {
	var typ types.Type
	if typeName != "" {
		typ = w.resolveType(typeName, node)
	}

	// The initializer is walked before the name is defined so it refers to
	// any outer binding of the same name.
	if init != nil {
		initType := w.walkExpr(init)

		if typ == nil {
			typ = initType
		} else {
			w.mustEqual(typ, initType, init)
		}
	} else if typ == nil {
		w.error(node, "declaration of `%s` requires a type or an initializer", name)
	}

	if types.IsUnit(typ) {
		w.error(node, "cannot declare `%s` with type `unit`", name)
	}

	sym := &common.Symbol{
		Name:    name,
		DefSpan: node.Span(),
		Type:    typ,
		DefKind: kind,
		Mutable: kind == common.DefKindVar,
	}

	w.define(sym, node)
	return sym
}

// walkAssign walks an assignment statement.
func (w *Walker) walkAssign(as *ast.Assign) {
	w.walkLHSExpr(as.Target)
	valueType := w.walkExpr(as.Value)

	w.mustEqual(as.Target.Type(), valueType, as.Value)
}

// walkLHSExpr walks an assignment target: a mutable binding or a field path
// rooted at one.
func (w *Walker) walkLHSExpr(expr ast.Expr) {
	root := expr
	for {
		if fa, ok := root.(*ast.FieldAccess); ok {
			root = fa.Operand
		} else {
			break
		}
	}

	name, ok := root.(*ast.Name)
	if !ok {
		w.error(expr, "cannot assign to a temporary value")
	}

	w.walkExpr(expr)

	if !name.Sym.Mutable {
		w.error(expr, "cannot assign to %s `%s`", name.Sym.KindName(), name.Name)
	}
}

// walkReturn walks a return statement.
func (w *Walker) walkReturn(rs *ast.Return) {
	if w.enclosingReturnType == nil {
		w.error(rs, "cannot use return outside a function")
	}

	if rs.Value == nil {
		if !types.IsUnit(w.enclosingReturnType) {
			w.error(rs, "expected a return value of type `%s`", w.enclosingReturnType.Repr())
		}

		return
	}

	w.mustEqual(w.enclosingReturnType, w.walkExpr(rs.Value), rs.Value)
}
