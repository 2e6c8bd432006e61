package lower

import (
	"wabbit/ast"
	"wabbit/ir"
	"wabbit/report"
	"wabbit/types"
)

// lowerMatch lowers a match expression.  The tag of the scrutinee is compared
// against each arm's variant in order; the last arm is reached by falling
// through.  Every arm moves its result into a shared register.
func (l *Lowerer) lowerMatch(match *ast.Match) ir.Reg {
	et := match.Scrutinee.Type().(*types.EnumType)
	l.checkArms(et, match)

	addr := l.lowerExpr(match.Scrutinee)
	tag := l.newReg(ir.I32)
	l.emit(&ir.MemLoad{Type: ir.I32, Addr: addr, Offset: 0, Dest: tag})

	result := ir.NoReg
	if vt := valueType(match.Type()); vt != ir.Void {
		result = l.newReg(vt)
	}

	lastArm := match.Arms[len(match.Arms)-1]
	endLabel := l.newLabel()

	armLabels := make([]string, len(match.Arms)-1)
	for i, arm := range match.Arms[:len(match.Arms)-1] {
		_, variantTag, _ := et.GetVariantByName(arm.Variant)
		armLabels[i] = l.newLabel()

		test := l.newReg(ir.I1)
		l.emit(
			&ir.Cmp{Op: ir.CmpEq, Type: ir.I32, Lhs: tag, Rhs: l.constInt(ir.I32, int64(variantTag)), Dest: test},
			&ir.BranchIf{Test: test, Label: armLabels[i]},
		)
	}

	l.lowerArm(et, lastArm, addr, result)
	l.emit(&ir.Goto{Label: endLabel})

	for i, arm := range match.Arms[:len(match.Arms)-1] {
		l.emit(&ir.Label{Name: armLabels[i]})
		l.lowerArm(et, arm, addr, result)
		l.emit(&ir.Goto{Label: endLabel})
	}

	l.emit(&ir.Label{Name: endLabel})
	return result
}

// checkArms verifies that a match covers every variant of its enum: falling
// through to the last arm is only correct if it does.
func (l *Lowerer) checkArms(et *types.EnumType, match *ast.Match) {
	if len(match.Arms) == 0 {
		panic(report.ICE("match on `%s` has no arms", et.Name()))
	}

	covered := make(map[string]struct{})
	for i, arm := range match.Arms {
		if arm.Variant == ast.CatchAll {
			if i == len(match.Arms)-1 {
				return
			}

			panic(report.ICE("catch-all arm is not the last arm of a match on `%s`", et.Name()))
		}

		if _, _, ok := et.GetVariantByName(arm.Variant); !ok {
			panic(report.ICE("enum `%s` has no variant `%s`", et.Name(), arm.Variant))
		}

		covered[arm.Variant] = struct{}{}
	}

	for _, variant := range et.Variants {
		if _, ok := covered[variant.Name]; !ok {
			panic(report.ICE("match on `%s` has no arm for variant `%s`", et.Name(), variant.Name))
		}
	}
}

// lowerArm lowers the body of a match arm in its own scope, binding the
// payload if the arm names it.
func (l *Lowerer) lowerArm(et *types.EnumType, arm *ast.MatchArm, addr, result ir.Reg) {
	l.pushScope()
	defer l.popScope()

	if arm.Sym != nil {
		vt := valueType(arm.Sym.Type)
		payload := l.newReg(vt)
		l.emit(&ir.MemLoad{Type: vt, Addr: addr, Offset: l.enumLayout(et).offsets[0], Dest: payload})
		l.declare(arm.Sym, payload)
	}

	value := l.lowerExpr(arm.Body)
	if result != ir.NoReg {
		l.emit(&ir.Move{Src: value, Dest: result})
	}
}
