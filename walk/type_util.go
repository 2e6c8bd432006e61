package walk

import (
	"math"

	"wabbit/ast"
	"wabbit/types"
)

// mustEqual asserts that two types are equal.  The error is reported on the
// node yielding the actual type.
func (w *Walker) mustEqual(expected, actual types.Type, node ast.ASTNode) {
	if !types.Equals(expected, actual) {
		w.error(node, "type mismatch: expected `%s` but got `%s`", reprOf(expected), reprOf(actual))
	}
}

// reprOf returns the representation of a possibly unit type.
func reprOf(typ types.Type) string {
	if typ == nil {
		return "unit"
	}

	return typ.Repr()
}

// isNumeric returns whether typ is `int` or `float`.
func isNumeric(typ types.Type) bool {
	pt, ok := typ.(types.PrimitiveType)
	return ok && pt.IsNumeric()
}

// isOrdered returns whether typ supports `<`, `<=`, `>`, and `>=`.
func isOrdered(typ types.Type) bool {
	pt, ok := typ.(types.PrimitiveType)
	return ok && pt.IsOrdered()
}

// fitsInt returns whether v can be represented as a Wabbit `int`.
func fitsInt(v int64) bool {
	return v >= math.MinInt32 && v <= math.MaxInt32
}

// The table of valid primitive conversions by target type.
var conversions = map[types.PrimitiveType][]types.PrimitiveType{
	types.PrimTypeInt:   {types.PrimTypeInt, types.PrimTypeFloat, types.PrimTypeChar, types.PrimTypeBool},
	types.PrimTypeFloat: {types.PrimTypeInt, types.PrimTypeFloat},
	types.PrimTypeChar:  {types.PrimTypeInt, types.PrimTypeChar},
	types.PrimTypeBool:  {types.PrimTypeBool},
}
