package types

import "strings"

// Type represents a Wabbit data type.
type Type interface {
	// Returns whether this type is equal to the other type.  This should only
	// be called through `Equals`.
	equals(other Type) bool

	// Returns the representative string for this type: the name the type is
	// written as in source.
	Repr() string
}

// Equals returns whether two types are identical.  Wabbit typing is nominal:
// two types are equal if and only if they are the same declared type.
func Equals(a, b Type) bool {
	if a == nil || b == nil {
		return false
	}

	return a.equals(b)
}

// -----------------------------------------------------------------------------

// PrimitiveType represents a primitive type.  This must be one of the
// enumerated primitive type values below.
type PrimitiveType int

// Enumeration of the different primitive types.
const (
	PrimTypeUnit PrimitiveType = iota
	PrimTypeInt
	PrimTypeFloat
	PrimTypeBool
	PrimTypeChar
)

func (pt PrimitiveType) equals(other Type) bool {
	if opt, ok := other.(PrimitiveType); ok {
		return pt == opt
	}

	return false
}

func (pt PrimitiveType) Repr() string {
	switch pt {
	case PrimTypeUnit:
		return "unit"
	case PrimTypeInt:
		return "int"
	case PrimTypeFloat:
		return "float"
	case PrimTypeBool:
		return "bool"
	default:
		return "char"
	}
}

// IsNumeric returns whether this primitive supports arithmetic.
func (pt PrimitiveType) IsNumeric() bool {
	return pt == PrimTypeInt || pt == PrimTypeFloat
}

// IsOrdered returns whether this primitive supports the ordering relations.
func (pt PrimitiveType) IsOrdered() bool {
	return pt == PrimTypeInt || pt == PrimTypeFloat || pt == PrimTypeChar
}

// PrimitiveByName looks up a primitive type by the name it is written as in
// source.  `unit` cannot be written and is not found.
func PrimitiveByName(name string) (PrimitiveType, bool) {
	switch name {
	case "int":
		return PrimTypeInt, true
	case "float":
		return PrimTypeFloat, true
	case "bool":
		return PrimTypeBool, true
	case "char":
		return PrimTypeChar, true
	}

	return PrimTypeUnit, false
}

// IsUnit returns whether the given type is the unit type.
func IsUnit(typ Type) bool {
	return typ == nil || Equals(typ, PrimTypeUnit)
}

// IsPrimitive returns whether the given type is a non-unit primitive.
func IsPrimitive(typ Type) bool {
	pt, ok := typ.(PrimitiveType)
	return ok && pt != PrimTypeUnit
}

// -----------------------------------------------------------------------------

// FuncType represents a function signature.
type FuncType struct {
	// The parameter types of the function.
	ParamTypes []Type

	// The return type of the function.
	ReturnType Type
}

func (ft *FuncType) equals(other Type) bool {
	if oft, ok := other.(*FuncType); ok {
		if len(ft.ParamTypes) != len(oft.ParamTypes) {
			return false
		}

		for i, paramtyp := range ft.ParamTypes {
			if !Equals(paramtyp, oft.ParamTypes[i]) {
				return false
			}
		}

		return Equals(ft.ReturnType, oft.ReturnType)
	}

	return false
}

func (ft *FuncType) Repr() string {
	sb := strings.Builder{}

	sb.WriteString("func(")
	for i, paramtyp := range ft.ParamTypes {
		if i != 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(paramtyp.Repr())
	}
	sb.WriteRune(')')

	if !IsUnit(ft.ReturnType) {
		sb.WriteRune(' ')
		sb.WriteString(ft.ReturnType.Repr())
	}

	return sb.String()
}
