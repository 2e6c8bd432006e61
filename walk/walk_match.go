package walk

import (
	"strings"

	"wabbit/ast"
	"wabbit/common"
	"wabbit/types"
)

// walkMatch walks a match expression.  The arms must name distinct variants of
// the scrutinee's enum and together cover all of them.
func (w *Walker) walkMatch(match *ast.Match) types.Type {
	scrutType := w.walkExpr(match.Scrutinee)

	et, ok := scrutType.(*types.EnumType)
	if !ok {
		w.error(match.Scrutinee, "cannot match on a value of type `%s`", reprOf(scrutType))
	}

	if len(match.Arms) == 0 {
		w.error(match, "match must have at least one arm")
	}

	var resultType types.Type
	covered := make(map[string]struct{})
	hasCatchAll := false

	for i, arm := range match.Arms {
		if arm.Variant == ast.CatchAll {
			if i != len(match.Arms)-1 {
				w.error(arm, "catch-all arm must be the last arm")
			}

			if arm.Binding != "" {
				w.error(arm, "catch-all arm cannot bind a value")
			}

			hasCatchAll = true
		} else {
			variant, _, ok := et.GetVariantByName(arm.Variant)
			if !ok {
				w.error(arm, "enum `%s` has no variant named `%s`", et.Name(), arm.Variant)
			}

			if _, ok := covered[arm.Variant]; ok {
				w.error(arm, "duplicate match arm for variant `%s`", arm.Variant)
			}

			covered[arm.Variant] = struct{}{}

			if arm.Binding != "" && variant.Payload == nil {
				w.error(arm, "variant `%s` carries no value to bind", arm.Variant)
			}
		}

		armType := w.walkArm(et, arm)

		if resultType == nil {
			resultType = armType
		} else if !types.Equals(resultType, armType) {
			w.error(arm.Body, "match arms have different types: `%s` and `%s`", reprOf(resultType), reprOf(armType))
		}
	}

	if hasCatchAll && len(covered) == len(et.Variants) {
		w.warn(match.Arms[len(match.Arms)-1], "catch-all arm is unreachable: every variant of `%s` is matched", et.Name())
	} else if !hasCatchAll && len(covered) < len(et.Variants) {
		var missing []string
		for _, variant := range et.Variants {
			if _, ok := covered[variant.Name]; !ok {
				missing = append(missing, "`"+variant.Name+"`")
			}
		}

		w.error(match, "match is not exhaustive: missing %s", strings.Join(missing, ", "))
	}

	return resultType
}

// walkArm walks the body of a match arm in its own scope with the payload
// binding (if any) defined.
func (w *Walker) walkArm(et *types.EnumType, arm *ast.MatchArm) types.Type {
	w.pushScope()
	defer w.popScope()

	if arm.Binding != "" {
		variant, _, _ := et.GetVariantByName(arm.Variant)

		sym := &common.Symbol{
			Name:    arm.Binding,
			DefSpan: arm.Span(),
			Type:    variant.Payload,
			DefKind: common.DefKindConst,
		}

		w.define(sym, arm)
		arm.Sym = sym
	}

	return w.walkExpr(arm.Body)
}
