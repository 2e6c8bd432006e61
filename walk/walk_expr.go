package walk

import (
	"wabbit/ast"
	"wabbit/common"
	"wabbit/types"
	"wabbit/util"
)

// walkExpr walks an expression, annotates it with its type, and returns that
// type.
func (w *Walker) walkExpr(expr ast.Expr) types.Type {
	typ := w.doWalkExpr(expr)
	expr.SetType(typ)
	return typ
}

// doWalkExpr computes the type of an expression.  This should only be called
// from `walkExpr`.
func (w *Walker) doWalkExpr(expr ast.Expr) types.Type {
	switch v := expr.(type) {
	case *ast.IntLit:
		if !fitsInt(v.Value) {
			w.error(v, "integer literal %d is out of range", v.Value)
		}

		return types.PrimTypeInt
	case *ast.FloatLit:
		return types.PrimTypeFloat
	case *ast.CharLit:
		return types.PrimTypeChar
	case *ast.BoolLit:
		return types.PrimTypeBool
	case *ast.UnitLit:
		return types.PrimTypeUnit
	case *ast.Name:
		sym := w.lookup(v.Name, v)
		if !sym.IsValue() {
			w.error(v, "%s `%s` cannot be used as a value", sym.KindName(), sym.Name)
		}

		v.Sym = sym
		return sym.Type
	case *ast.UnaryOp:
		return w.walkUnaryOp(v)
	case *ast.BinaryOp:
		return w.walkBinaryOp(v)
	case *ast.Call:
		return w.walkCall(v)
	case *ast.FieldAccess:
		return w.walkFieldAccess(v)
	case *ast.StructLit:
		sym := w.lookup(v.Struct, v)
		if sym.DefKind != common.DefKindStruct {
			w.error(v, "`%s` is not a struct", v.Struct)
		}

		return w.walkStructArgs(sym.Type.(*types.StructType), v.Args, v)
	case *ast.EnumValue:
		return w.walkEnumValue(v)
	case *ast.Match:
		return w.walkMatch(v)
	case *ast.Compound:
		return w.walkCompound(v)
	}

	w.error(expr, "unknown expression")
	return nil
}

// -----------------------------------------------------------------------------

// walkUnaryOp walks a unary operator application.
func (w *Walker) walkUnaryOp(uop *ast.UnaryOp) types.Type {
	operandType := w.walkExpr(uop.Operand)

	switch uop.Op {
	case "+", "-":
		if !isNumeric(operandType) {
			w.error(uop, "operator `%s` cannot be applied to `%s`", uop.Op, reprOf(operandType))
		}
	case "!":
		w.mustEqual(types.PrimTypeBool, operandType, uop.Operand)
	default:
		w.error(uop, "unknown unary operator `%s`", uop.Op)
	}

	return operandType
}

// walkBinaryOp walks a binary operator application.
func (w *Walker) walkBinaryOp(bop *ast.BinaryOp) types.Type {
	lhsType := w.walkExpr(bop.Lhs)
	rhsType := w.walkExpr(bop.Rhs)

	switch bop.Op {
	case "+", "-", "*", "/":
		if !isNumeric(lhsType) {
			w.error(bop, "operator `%s` cannot be applied to `%s`", bop.Op, reprOf(lhsType))
		}

		w.mustEqual(lhsType, rhsType, bop.Rhs)
		return lhsType
	case "<", "<=", ">", ">=":
		if !isOrdered(lhsType) {
			w.error(bop, "operator `%s` cannot be applied to `%s`", bop.Op, reprOf(lhsType))
		}

		w.mustEqual(lhsType, rhsType, bop.Rhs)
		return types.PrimTypeBool
	case "==", "!=":
		if !types.IsPrimitive(lhsType) {
			w.error(bop, "operator `%s` cannot be applied to `%s`", bop.Op, reprOf(lhsType))
		}

		w.mustEqual(lhsType, rhsType, bop.Rhs)
		return types.PrimTypeBool
	case "&&", "||":
		w.mustEqual(types.PrimTypeBool, lhsType, bop.Lhs)
		w.mustEqual(types.PrimTypeBool, rhsType, bop.Rhs)
		return types.PrimTypeBool
	}

	w.error(bop, "unknown binary operator `%s`", bop.Op)
	return nil
}

// -----------------------------------------------------------------------------

// walkCall walks an application: a function call, a primitive conversion, or
// a struct construction.
func (w *Walker) walkCall(call *ast.Call) types.Type {
	if pt, ok := types.PrimitiveByName(call.Func); ok {
		call.Target = ast.CallConv
		return w.walkConversion(pt, call)
	}

	sym := w.lookup(call.Func, call)
	call.Sym = sym

	switch sym.DefKind {
	case common.DefKindFunc:
		call.Target = ast.CallFunc
		ft := sym.Type.(*types.FuncType)

		if len(call.Args) != len(ft.ParamTypes) {
			w.error(call, "function `%s` expects %d arguments but got %d", call.Func, len(ft.ParamTypes), len(call.Args))
		}

		for i, arg := range call.Args {
			w.mustEqual(ft.ParamTypes[i], w.walkExpr(arg), arg)
		}

		return ft.ReturnType
	case common.DefKindStruct:
		call.Target = ast.CallStruct
		return w.walkStructArgs(sym.Type.(*types.StructType), call.Args, call)
	}

	w.error(call, "%s `%s` is not callable", sym.KindName(), sym.Name)
	return nil
}

// walkConversion walks a primitive type conversion.
func (w *Walker) walkConversion(dest types.PrimitiveType, call *ast.Call) types.Type {
	if len(call.Args) != 1 {
		w.error(call, "conversion to `%s` expects exactly one argument", dest.Repr())
	}

	srcType := w.walkExpr(call.Args[0])
	if src, ok := srcType.(types.PrimitiveType); ok && util.Contains(conversions[dest], src) {
		return dest
	}

	w.error(call, "cannot convert `%s` to `%s`", reprOf(srcType), dest.Repr())
	return nil
}

// walkStructArgs walks the field values of a struct construction.
func (w *Walker) walkStructArgs(st *types.StructType, args []ast.Expr, node ast.Expr) types.Type {
	if len(args) != len(st.Fields) {
		w.error(node, "struct `%s` has %d fields but got %d values", st.Name(), len(st.Fields), len(args))
	}

	for i, arg := range args {
		w.mustEqual(st.Fields[i].Type, w.walkExpr(arg), arg)
	}

	return st
}

// walkFieldAccess walks a struct field access.
func (w *Walker) walkFieldAccess(fa *ast.FieldAccess) types.Type {
	operandType := w.walkExpr(fa.Operand)

	st, ok := operandType.(*types.StructType)
	if !ok {
		w.error(fa, "`%s` has no fields", reprOf(operandType))
	}

	field, ok := st.GetFieldByName(fa.Field)
	if !ok {
		w.error(fa, "struct `%s` has no field named `%s`", st.Name(), fa.Field)
	}

	return field.Type
}

// walkEnumValue walks an enum construction.
func (w *Walker) walkEnumValue(ev *ast.EnumValue) types.Type {
	sym := w.lookup(ev.Enum, ev)
	if sym.DefKind != common.DefKindEnum {
		w.error(ev, "`%s` is not an enum", ev.Enum)
	}

	et := sym.Type.(*types.EnumType)
	variant, _, ok := et.GetVariantByName(ev.Variant)
	if !ok {
		w.error(ev, "enum `%s` has no variant named `%s`", ev.Enum, ev.Variant)
	}

	if variant.Payload == nil {
		if ev.Payload != nil {
			w.error(ev, "variant `%s::%s` takes no value", ev.Enum, ev.Variant)
		}
	} else if ev.Payload == nil {
		w.error(ev, "variant `%s::%s` requires a value of type `%s`", ev.Enum, ev.Variant, variant.Payload.Repr())
	} else {
		w.mustEqual(variant.Payload, w.walkExpr(ev.Payload), ev.Payload)
	}

	return et
}

// walkCompound walks a compound expression.  Its type is the type of its
// trailing expression statement or unit if it has none.
func (w *Walker) walkCompound(comp *ast.Compound) types.Type {
	w.pushScope()
	defer w.popScope()

	w.walkStmts(comp.Stmts)

	if len(comp.Stmts) > 0 {
		if es, ok := comp.Stmts[len(comp.Stmts)-1].(*ast.ExprStmt); ok {
			return es.Expr.Type()
		}
	}

	return types.PrimTypeUnit
}
