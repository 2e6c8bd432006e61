package ast

import "wabbit/common"

// FuncDef is a function definition.
type FuncDef struct {
	StmtBase

	Name   string
	Params []*Param

	// The name of the return type.  This is empty for unit functions.
	ReturnTypeName string

	Body *Block

	// The function's symbol.  This is set by the checker.
	Sym *common.Symbol
}

// Param is a function parameter.
type Param struct {
	ASTBase

	Name     string
	TypeName string

	Sym *common.Symbol
}

// -----------------------------------------------------------------------------

// StructDef is a struct type definition.
type StructDef struct {
	StmtBase

	Name   string
	Fields []*FieldDef

	Sym *common.Symbol
}

// FieldDef is a single field of a struct definition.
type FieldDef struct {
	ASTBase

	Name     string
	TypeName string
}

// EnumDef is an enum type definition.
type EnumDef struct {
	StmtBase

	Name     string
	Variants []*VariantDef

	Sym *common.Symbol
}

// VariantDef is a single variant of an enum definition.
type VariantDef struct {
	ASTBase

	Name string

	// The name of the payload type.  This is empty if the variant carries no
	// payload.
	PayloadTypeName string
}
