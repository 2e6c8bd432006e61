package ast

import "wabbit/common"

// Print is a print statement.
type Print struct {
	StmtBase

	Value Expr
}

// Assign is an assignment statement.  The target is either a Name or a
// FieldAccess.
type Assign struct {
	StmtBase

	Target Expr
	Value  Expr
}

// VarDecl declares a mutable variable.  At least one of the type label and
// the initializer must be present.
type VarDecl struct {
	StmtBase

	Name string

	// The explicit type label.  This is empty if there is none.
	TypeName string

	// The initializer.  This may be nil.
	Init Expr

	// The declared symbol.  This is set by the checker.
	Sym *common.Symbol
}

// ConstDecl declares an immutable constant.
type ConstDecl struct {
	StmtBase

	Name     string
	TypeName string
	Init     Expr

	Sym *common.Symbol
}

// -----------------------------------------------------------------------------

// If is a conditional statement.
type If struct {
	StmtBase

	Cond Expr
	Then *Block

	// The else block.  This is nil if there is none.
	Else *Block
}

// While is a while loop.
type While struct {
	StmtBase

	Cond Expr
	Body *Block
}

// Break exits the enclosing loop.
type Break struct {
	StmtBase
}

// Continue jumps to the head of the enclosing loop.
type Continue struct {
	StmtBase
}

// Return returns from the enclosing function.
type Return struct {
	StmtBase

	// The returned value.  This is nil for a bare return.
	Value Expr
}

// ExprStmt is an expression evaluated as a statement.
type ExprStmt struct {
	StmtBase

	Expr Expr
}
