package lower

import (
	"wabbit/ast"
	"wabbit/ir"
	"wabbit/report"
	"wabbit/types"
)

// lowerExpr lowers an expression and returns the register holding its result.
// Unit expressions return `ir.NoReg`.
func (l *Lowerer) lowerExpr(expr ast.Expr) ir.Reg {
	switch v := expr.(type) {
	case *ast.IntLit:
		return l.constInt(ir.I32, v.Value)
	case *ast.FloatLit:
		dest := l.newReg(ir.F64)
		l.emit(&ir.Const{Type: ir.F64, Float: v.Value, Dest: dest})
		return dest
	case *ast.CharLit:
		return l.constInt(ir.I8, int64(v.Value))
	case *ast.BoolLit:
		if v.Value {
			return l.constInt(ir.I1, 1)
		}

		return l.constInt(ir.I1, 0)
	case *ast.UnitLit:
		return ir.NoReg
	case *ast.Name:
		return l.load(v.Sym)
	case *ast.UnaryOp:
		return l.lowerUnaryOp(v)
	case *ast.BinaryOp:
		return l.lowerBinaryOp(v)
	case *ast.Call:
		return l.lowerCall(v)
	case *ast.FieldAccess:
		addr := l.lowerExpr(v.Operand)
		st := v.Operand.Type().(*types.StructType)
		index := st.Indices[v.Field]

		vt := valueType(st.Fields[index].Type)
		dest := l.newReg(vt)
		l.emit(&ir.MemLoad{Type: vt, Addr: addr, Offset: l.structLayout(st).offsets[index], Dest: dest})
		return dest
	case *ast.StructLit:
		return l.lowerStructConstruct(v.Type().(*types.StructType), v.Args)
	case *ast.EnumValue:
		return l.lowerEnumValue(v)
	case *ast.Match:
		return l.lowerMatch(v)
	case *ast.Compound:
		return l.lowerCompound(v)
	}

	panic(report.ICE("unexpected expression `%s` in lowering", ast.Format(expr)))
}

// lowerValue lowers an expression whose result is being stored.  Struct values
// which may be shared with some other storage are copied first.
func (l *Lowerer) lowerValue(expr ast.Expr) ir.Reg {
	src := l.lowerExpr(expr)

	st, ok := expr.Type().(*types.StructType)
	if !ok || isFreshStruct(expr) {
		return src
	}

	return l.copyStruct(src, st)
}

// isFreshStruct returns whether an expression constructs a new struct value.
func isFreshStruct(expr ast.Expr) bool {
	switch v := expr.(type) {
	case *ast.StructLit:
		return true
	case *ast.Call:
		return v.Target == ast.CallStruct
	}

	return false
}

// copyStruct allocates a new struct and copies the fields at src into it.
func (l *Lowerer) copyStruct(src ir.Reg, st *types.StructType) ir.Reg {
	size := l.structLayout(st).size

	dest := l.newReg(ir.I32)
	l.emit(
		&ir.Alloc{Size: size, Dest: dest},
		&ir.MemCopy{Src: src, Dst: dest, Size: size},
	)

	return dest
}

// zeroValue returns the zero value of a type.  Composite zero values are
// freshly allocated.  The zero value of an enum is its first variant.
func (l *Lowerer) zeroValue(typ types.Type) ir.Reg {
	switch v := typ.(type) {
	case *types.StructType:
		lo := l.structLayout(v)
		addr := l.newReg(ir.I32)
		l.emit(&ir.Alloc{Size: lo.size, Dest: addr})

		for i, field := range v.Fields {
			if isComposite(field.Type) {
				l.emit(&ir.MemStore{Type: ir.I32, Addr: addr, Offset: lo.offsets[i], Src: l.zeroValue(field.Type)})
			}
		}

		return addr
	case *types.EnumType:
		lo := l.enumLayout(v)
		addr := l.newReg(ir.I32)
		l.emit(&ir.Alloc{Size: lo.size, Dest: addr})

		if payload := v.Variants[0].Payload; payload != nil && isComposite(payload) {
			l.emit(&ir.MemStore{Type: ir.I32, Addr: addr, Offset: lo.offsets[0], Src: l.zeroValue(payload)})
		}

		return addr
	case types.PrimitiveType:
		if v == types.PrimTypeFloat {
			dest := l.newReg(ir.F64)
			l.emit(&ir.Const{Type: ir.F64, Dest: dest})
			return dest
		}

		return l.constInt(valueType(v), 0)
	}

	panic(report.ICE("no zero value for `%s`", typ.Repr()))
}

// isComposite returns whether a type is held by address.
func isComposite(typ types.Type) bool {
	switch typ.(type) {
	case *types.StructType, *types.EnumType:
		return true
	}

	return false
}

// -----------------------------------------------------------------------------

// lowerUnaryOp lowers a unary operator application.
func (l *Lowerer) lowerUnaryOp(uop *ast.UnaryOp) ir.Reg {
	src := l.lowerExpr(uop.Operand)
	vt := valueType(uop.Type())

	var op ir.UnaryOperator
	switch uop.Op {
	case "+":
		return src
	case "-":
		op = ir.OpNeg
	case "!":
		op = ir.OpNot
	default:
		panic(report.ICE("unknown unary operator `%s`", uop.Op))
	}

	dest := l.newReg(vt)
	l.emit(&ir.UnOp{Op: op, Type: vt, Src: src, Dest: dest})
	return dest
}

// The binary operators which lower directly to `ir.BinOp`.
var arithOps = map[string]ir.BinaryOperator{
	"+": ir.OpAdd,
	"-": ir.OpSub,
	"*": ir.OpMul,
	"/": ir.OpDiv,
}

// The binary operators which lower to `ir.Cmp`.
var cmpOps = map[string]ir.Comparison{
	"==": ir.CmpEq,
	"!=": ir.CmpNe,
	"<":  ir.CmpLt,
	"<=": ir.CmpLe,
	">":  ir.CmpGt,
	">=": ir.CmpGe,
}

// lowerBinaryOp lowers a binary operator application.
func (l *Lowerer) lowerBinaryOp(bop *ast.BinaryOp) ir.Reg {
	if bop.Op == "&&" || bop.Op == "||" {
		return l.lowerLogicalOp(bop)
	}

	lhs := l.lowerExpr(bop.Lhs)
	rhs := l.lowerExpr(bop.Rhs)
	operandType := valueType(bop.Lhs.Type())

	if op, ok := arithOps[bop.Op]; ok {
		dest := l.newReg(operandType)
		l.emit(&ir.BinOp{Op: op, Type: operandType, Lhs: lhs, Rhs: rhs, Dest: dest})
		return dest
	} else if op, ok := cmpOps[bop.Op]; ok {
		dest := l.newReg(ir.I1)
		l.emit(&ir.Cmp{Op: op, Type: operandType, Lhs: lhs, Rhs: rhs, Dest: dest})
		return dest
	}

	panic(report.ICE("unknown binary operator `%s`", bop.Op))
}

// lowerLogicalOp lowers a short-circuiting `&&` or `||`.  The right operand is
// only evaluated when the left operand does not decide the result.
func (l *Lowerer) lowerLogicalOp(bop *ast.BinaryOp) ir.Reg {
	dest := l.newReg(ir.I1)

	lhs := l.lowerExpr(bop.Lhs)
	l.emit(&ir.Move{Src: lhs, Dest: dest})

	endLabel := l.newLabel()
	if bop.Op == "&&" {
		rhsLabel := l.newLabel()
		l.emit(
			&ir.BranchIf{Test: lhs, Label: rhsLabel},
			&ir.Goto{Label: endLabel},
			&ir.Label{Name: rhsLabel},
		)
	} else {
		l.emit(&ir.BranchIf{Test: lhs, Label: endLabel})
	}

	rhs := l.lowerExpr(bop.Rhs)
	l.emit(
		&ir.Move{Src: rhs, Dest: dest},
		&ir.Label{Name: endLabel},
	)

	return dest
}

// -----------------------------------------------------------------------------

// lowerCall lowers a function call, conversion, or struct construction.
func (l *Lowerer) lowerCall(call *ast.Call) ir.Reg {
	switch call.Target {
	case ast.CallFunc:
		args := make([]ir.Reg, len(call.Args))
		for i, arg := range call.Args {
			args[i] = l.lowerExpr(arg)
		}

		dest := ir.NoReg
		if vt := valueType(call.Type()); vt != ir.Void {
			dest = l.newReg(vt)
		}

		l.emit(&ir.Call{Func: call.Func, Args: args, Dest: dest})
		return dest
	case ast.CallConv:
		src := l.lowerExpr(call.Args[0])
		from, to := valueType(call.Args[0].Type()), valueType(call.Type())

		if from == to {
			return src
		}

		dest := l.newReg(to)
		l.emit(&ir.Convert{From: from, To: to, Src: src, Dest: dest})
		return dest
	case ast.CallStruct:
		return l.lowerStructConstruct(call.Type().(*types.StructType), call.Args)
	}

	panic(report.ICE("unresolved call to `%s`", call.Func))
}

// lowerStructConstruct allocates a new struct initialized with the given field
// values.
func (l *Lowerer) lowerStructConstruct(st *types.StructType, args []ast.Expr) ir.Reg {
	lo := l.structLayout(st)

	fieldRegs := make([]ir.Reg, len(args))
	for i, arg := range args {
		fieldRegs[i] = l.lowerValue(arg)
	}

	addr := l.newReg(ir.I32)
	l.emit(&ir.Alloc{Size: lo.size, Dest: addr})

	for i, field := range st.Fields {
		l.emit(&ir.MemStore{Type: valueType(field.Type), Addr: addr, Offset: lo.offsets[i], Src: fieldRegs[i]})
	}

	return addr
}

// lowerEnumValue allocates a new enum value.
func (l *Lowerer) lowerEnumValue(ev *ast.EnumValue) ir.Reg {
	et := ev.Type().(*types.EnumType)
	lo := l.enumLayout(et)
	variant, tag, _ := et.GetVariantByName(ev.Variant)

	payload := ir.NoReg
	if ev.Payload != nil {
		payload = l.lowerValue(ev.Payload)
	}

	addr := l.newReg(ir.I32)
	l.emit(
		&ir.Alloc{Size: lo.size, Dest: addr},
		&ir.MemStore{Type: ir.I32, Addr: addr, Offset: 0, Src: l.constInt(ir.I32, int64(tag))},
	)

	if payload != ir.NoReg {
		l.emit(&ir.MemStore{Type: valueType(variant.Payload), Addr: addr, Offset: lo.offsets[0], Src: payload})
	}

	return addr
}

// lowerCompound lowers a compound expression in its own scope.  Its result is
// the result of its trailing expression statement.
func (l *Lowerer) lowerCompound(comp *ast.Compound) ir.Reg {
	l.pushScope()
	defer l.popScope()

	result := ir.NoReg
	for i, stmt := range comp.Stmts {
		if es, ok := stmt.(*ast.ExprStmt); ok && i == len(comp.Stmts)-1 {
			result = l.lowerExpr(es.Expr)
		} else {
			l.lowerStmt(stmt)
		}
	}

	return result
}
