package ir

// ValueType is the machine-level type of an IR value.
type ValueType int

// Enumeration of value types.
const (
	// I32 is a 32-bit integer: Wabbit's `int` and the address of any
	// composite value.
	I32 ValueType = iota

	// F64 is a 64-bit IEEE float: Wabbit's `float`.
	F64

	// I8 is an unsigned byte: Wabbit's `char`.
	I8

	// I1 is a boolean.
	I1

	// Void is the return type of functions which return nothing.
	Void
)

func (vt ValueType) String() string {
	switch vt {
	case I32:
		return "i32"
	case F64:
		return "f64"
	case I8:
		return "i8"
	case I1:
		return "i1"
	default:
		return "void"
	}
}

// Size returns the number of bytes a value of this type occupies in memory.
func (vt ValueType) Size() int {
	switch vt {
	case I32:
		return 4
	case F64:
		return 8
	case I8, I1:
		return 1
	default:
		return 0
	}
}

// Variable is a named, typed storage slot: a global or a local.
type Variable struct {
	Name string
	Type ValueType
}
