package common

import (
	"wabbit/report"
	"wabbit/types"
)

// Symbol represents a semantic symbol: a named value or definition.
type Symbol struct {
	// The name of the symbol.
	Name string

	// Where the symbol was defined.
	DefSpan *report.TextSpan

	// The type of the value stored in the symbol.  For type definitions, this
	// is the declared type itself.
	Type types.Type

	// The symbol's kind: what kind of thing this symbol represents.  This must
	// be one of the enumerated definition kinds.
	DefKind int

	// Whether or not the symbol may be assigned to.
	Mutable bool

	// Whether the symbol was declared in the global scope.
	Global bool
}

// Enumeration of different symbol kinds.
const (
	DefKindVar = iota
	DefKindConst
	DefKindParam
	DefKindFunc
	DefKindStruct
	DefKindEnum
)

// IsValue returns whether the symbol names a value that can be referenced in
// an expression.
func (sym *Symbol) IsValue() bool {
	return sym.DefKind == DefKindVar || sym.DefKind == DefKindConst || sym.DefKind == DefKindParam
}

// KindName returns a human readable name for the symbol's kind.
func (sym *Symbol) KindName() string {
	switch sym.DefKind {
	case DefKindVar:
		return "variable"
	case DefKindConst:
		return "constant"
	case DefKindParam:
		return "parameter"
	case DefKindFunc:
		return "function"
	case DefKindStruct:
		return "struct"
	default:
		return "enum"
	}
}
