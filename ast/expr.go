package ast

import "wabbit/common"

// IntLit is an integer literal.
type IntLit struct {
	ExprBase

	Value int64
}

// FloatLit is a floating point literal.
type FloatLit struct {
	ExprBase

	Value float64
}

// CharLit is a character literal.  Characters are single bytes.
type CharLit struct {
	ExprBase

	Value byte
}

// BoolLit is a boolean literal.
type BoolLit struct {
	ExprBase

	Value bool
}

// UnitLit is the unit literal: `()`.
type UnitLit struct {
	ExprBase
}

// -----------------------------------------------------------------------------

// Name is a reference to a named value.
type Name struct {
	ExprBase

	// The referenced name.
	Name string

	// The symbol the name resolves to.  This is set by the checker.
	Sym *common.Symbol
}

// UnaryOp represents a unary operator application: one of `+`, `-`, `!`.
type UnaryOp struct {
	ExprBase

	Op      string
	Operand Expr
}

// BinaryOp represents a binary operator application.
type BinaryOp struct {
	ExprBase

	Op       string
	Lhs, Rhs Expr
}

// -----------------------------------------------------------------------------

// Call represents an application of a name to arguments.  Depending on what
// the name resolves to this is a function call, a primitive conversion, or a
// struct construction.
type Call struct {
	ExprBase

	// The name being applied.
	Func string

	// The arguments to the call.
	Args []Expr

	// What the call resolved to.  This must be one of the enumerated call
	// targets and is set by the checker.
	Target int

	// The symbol of the function or struct being applied.  This is nil for
	// conversions.
	Sym *common.Symbol
}

// Enumeration of call targets.
const (
	CallUnresolved = iota
	CallFunc
	CallConv
	CallStruct
)

// FieldAccess represents a struct field access: `x.field`.
type FieldAccess struct {
	ExprBase

	Operand Expr
	Field   string
}

// StructLit represents an explicit struct construction.  The arguments are the
// field values in declaration order.
type StructLit struct {
	ExprBase

	Struct string
	Args   []Expr
}

// EnumValue represents an enum construction: `Enum::Variant` or
// `Enum::Variant(payload)`.
type EnumValue struct {
	ExprBase

	Enum    string
	Variant string

	// The payload value.  This is nil if the variant carries no payload.
	Payload Expr
}

// -----------------------------------------------------------------------------

// CatchAll is the variant name used by a match arm that matches every
// variant not named by an earlier arm.
const CatchAll = "_"

// Match is a pattern match over an enum value.
type Match struct {
	ExprBase

	Scrutinee Expr
	Arms      []*MatchArm
}

// MatchArm is a single arm of a match expression.
type MatchArm struct {
	ASTBase

	// The name of the variant matched by the arm or `_`.
	Variant string

	// The name bound to the payload in the arm body.  This is empty if the arm
	// binds nothing.
	Binding string

	// The arm's result.
	Body Expr

	// The symbol of the payload binding.  This is set by the checker.
	Sym *common.Symbol
}

// Compound is a compound expression: a sequence of statements whose value is
// the value of the trailing expression statement.
type Compound struct {
	ExprBase

	Stmts []Stmt
}
