package ast

import (
	"wabbit/report"
	"wabbit/types"
)

// ASTNode is the abstract interface for all AST nodes.
type ASTNode interface {
	// The text span of the AST.
	Span() *report.TextSpan
}

// ASTBase is a utility base struct for all AST nodes.
type ASTBase struct {
	// The span over which the AST node occurs.  This is nil for nodes that
	// were not produced from source text.
	span *report.TextSpan
}

func (ab *ASTBase) Span() *report.TextSpan {
	return ab.span
}

// SetSpan sets the span of the node.  This is used by producers which attach
// source positions after construction.
func (ab *ASTBase) SetSpan(span *report.TextSpan) {
	ab.span = span
}

// -----------------------------------------------------------------------------

// Expr is the interface for all expression nodes.
type Expr interface {
	ASTNode

	// Type returns the yielded type of the expression.  This is nil until the
	// expression has been type checked.
	Type() types.Type

	// SetType sets the yielded type of the expression.
	SetType(typ types.Type)

	exprNode()
}

// ExprBase is the base struct for all expressions.
type ExprBase struct {
	ASTBase

	// The type of the expression.
	typ types.Type
}

func (eb *ExprBase) Type() types.Type {
	return eb.typ
}

func (eb *ExprBase) SetType(typ types.Type) {
	eb.typ = typ
}

func (eb *ExprBase) exprNode() {}

// -----------------------------------------------------------------------------

// Stmt is the interface for all statement nodes including definitions.
type Stmt interface {
	ASTNode

	stmtNode()
}

// StmtBase is the base struct for all statements.
type StmtBase struct {
	ASTBase
}

func (sb *StmtBase) stmtNode() {}

// Block is a brace-delimited sequence of statements: the body of a function,
// conditional, or loop.  Each block introduces a new scope.
type Block struct {
	ASTBase

	// The statements of the block.
	Stmts []Stmt
}

// Program is the root of the AST: the whole of a Wabbit source file.
type Program struct {
	ASTBase

	// The top-level statements of the program in source order.
	Stmts []Stmt
}
