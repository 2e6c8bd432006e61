package ast

// The functions below construct AST nodes without source positions.  They are
// used by producers that build programs directly rather than from source text.

func NewInt(v int64) *IntLit { return &IntLit{Value: v} }
func NewFloat(v float64) *FloatLit { return &FloatLit{Value: v} }
func NewChar(v byte) *CharLit { return &CharLit{Value: v} }
func NewBool(v bool) *BoolLit { return &BoolLit{Value: v} }
func NewUnit() *UnitLit { return &UnitLit{} }
func NewName(name string) *Name { return &Name{Name: name} }
func NewPrint(value Expr) *Print { return &Print{Value: value} }
func NewBreak() *Break { return &Break{} }
func NewContinue() *Continue { return &Continue{} }
func NewReturn(value Expr) *Return { return &Return{Value: value} }
func NewExprStmt(e Expr) *ExprStmt { return &ExprStmt{Expr: e} }
func NewBlock(stmts ...Stmt) *Block { return &Block{Stmts: stmts} }

// NewProgram creates a new program from its top-level statements.
func NewProgram(stmts ...Stmt) *Program {
	return &Program{Stmts: stmts}
}

// NewUnary creates a new unary operator application.
func NewUnary(op string, operand Expr) *UnaryOp {
	return &UnaryOp{Op: op, Operand: operand}
}

// NewBinary creates a new binary operator application.
func NewBinary(op string, lhs, rhs Expr) *BinaryOp {
	return &BinaryOp{Op: op, Lhs: lhs, Rhs: rhs}
}

// NewCall creates a new call of a function, conversion, or struct.
func NewCall(fn string, args ...Expr) *Call {
	return &Call{Func: fn, Args: args}
}

// NewFieldAccess creates a new field access.
func NewFieldAccess(operand Expr, field string) *FieldAccess {
	return &FieldAccess{Operand: operand, Field: field}
}

// NewStructLit creates a new explicit struct construction.
func NewStructLit(name string, args ...Expr) *StructLit {
	return &StructLit{Struct: name, Args: args}
}

// NewEnumValue creates a new enum construction.  payload may be nil.
func NewEnumValue(enum, variant string, payload Expr) *EnumValue {
	return &EnumValue{Enum: enum, Variant: variant, Payload: payload}
}

// NewMatch creates a new match expression.
func NewMatch(scrutinee Expr, arms ...*MatchArm) *Match {
	return &Match{Scrutinee: scrutinee, Arms: arms}
}

// NewArm creates a new match arm.  binding may be empty.
func NewArm(variant, binding string, body Expr) *MatchArm {
	return &MatchArm{Variant: variant, Binding: binding, Body: body}
}

// NewCompound creates a new compound expression.
func NewCompound(stmts ...Stmt) *Compound {
	return &Compound{Stmts: stmts}
}

// -----------------------------------------------------------------------------

// NewAssign creates a new assignment.
func NewAssign(target, value Expr) *Assign {
	return &Assign{Target: target, Value: value}
}

// NewVar creates a new variable declaration.  Either typeName or init may be
// omitted by passing "" or nil.
func NewVar(name, typeName string, init Expr) *VarDecl {
	return &VarDecl{Name: name, TypeName: typeName, Init: init}
}

// NewConst creates a new constant declaration.
func NewConst(name, typeName string, init Expr) *ConstDecl {
	return &ConstDecl{Name: name, TypeName: typeName, Init: init}
}

// NewIf creates a new conditional.  elseBlock may be nil.
func NewIf(cond Expr, then, elseBlock *Block) *If {
	return &If{Cond: cond, Then: then, Else: elseBlock}
}

// NewWhile creates a new while loop.
func NewWhile(cond Expr, body *Block) *While {
	return &While{Cond: cond, Body: body}
}

// -----------------------------------------------------------------------------

// NewFunc creates a new function definition.  retTypeName is empty for unit
// functions.
func NewFunc(name string, params []*Param, retTypeName string, body *Block) *FuncDef {
	return &FuncDef{Name: name, Params: params, ReturnTypeName: retTypeName, Body: body}
}

// NewParam creates a new function parameter.
func NewParam(name, typeName string) *Param {
	return &Param{Name: name, TypeName: typeName}
}

// NewStructDef creates a new struct definition.
func NewStructDef(name string, fields ...*FieldDef) *StructDef {
	return &StructDef{Name: name, Fields: fields}
}

// NewFieldDef creates a new struct field definition.
func NewFieldDef(name, typeName string) *FieldDef {
	return &FieldDef{Name: name, TypeName: typeName}
}

// NewEnumDef creates a new enum definition.
func NewEnumDef(name string, variants ...*VariantDef) *EnumDef {
	return &EnumDef{Name: name, Variants: variants}
}

// NewVariantDef creates a new enum variant definition.  payloadTypeName is
// empty for variants without a payload.
func NewVariantDef(name, payloadTypeName string) *VariantDef {
	return &VariantDef{Name: name, PayloadTypeName: payloadTypeName}
}
