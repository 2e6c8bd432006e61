package walk

import (
	"strings"

	"wabbit/ast"
	"wabbit/common"
	"wabbit/report"
	"wabbit/types"

	"github.com/hashicorp/go-multierror"
)

// CheckedProgram is a program which has been successfully type checked: every
// expression is annotated with its type and every declaration and reference
// with its symbol.  It can only be produced by `Check`.
type CheckedProgram struct {
	// The checked program.
	Program *ast.Program

	// The function definitions of the program in declaration order.
	Funcs []*ast.FuncDef

	// The user defined `main` function.  This is nil if there is none.
	Main *ast.FuncDef

	// Diagnostics which do not prevent the program from running.
	Warnings []*report.TypeError
}

// Walker is responsible for walking a program and performing semantic analysis
// on its statements and definitions.
type Walker struct {
	// The stack of scopes used to lookup symbols.  The global scope is always
	// at the bottom of the stack.
	scopes []map[string]*common.Symbol

	// The return type of the enclosing function.  If this is `nil`, then there
	// is no enclosing function: ie. return statements are not valid.
	enclosingReturnType types.Type

	// The number of loops until the outermost function block.
	loopDepth int

	// The errors accumulated so far.
	errs *multierror.Error

	// The warnings accumulated so far.
	warnings []*report.TypeError
}

// Check type checks the given program.  If the program is not well-typed, the
// returned error is a `*multierror.Error` whose entries are all
// `*report.TypeError`.
func Check(prog *ast.Program) (*CheckedProgram, error) {
	w := &Walker{
		scopes: []map[string]*common.Symbol{make(map[string]*common.Symbol)},
	}

	cp := &CheckedProgram{Program: prog}

	// Register all type definitions first so that every signature and field
	// can refer to any of them.
	for _, stmt := range prog.Stmts {
		w.walkTop(stmt, w.declareTypeDef)
	}

	for _, stmt := range prog.Stmts {
		w.walkTop(stmt, w.resolveTypeDef)
	}

	for _, stmt := range prog.Stmts {
		w.walkTop(stmt, w.checkTypeDefCycles)
	}

	for _, stmt := range prog.Stmts {
		w.walkTop(stmt, w.declareFuncDef)
	}

	// Check all statements and bodies in order.
	for _, stmt := range prog.Stmts {
		w.walkTop(stmt, w.walkTopStmt)

		if fd, ok := stmt.(*ast.FuncDef); ok && fd.Sym != nil {
			cp.Funcs = append(cp.Funcs, fd)

			if fd.Name == common.MainFuncName {
				cp.Main = fd
			}
		}
	}

	if err := w.errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	cp.Warnings = w.warnings
	return cp, nil
}

// walkTop applies a walking function to a top-level statement and catches any
// errors that occur.  An error aborts only the current statement.
func (w *Walker) walkTop(stmt ast.Stmt, f func(ast.Stmt)) {
	// Catch any errors that occur while walking the statement.
	defer report.CatchTypeErrors(func(terr *report.TypeError) {
		w.errs = multierror.Append(w.errs, terr)
	})

	// Ensure that the walker is reset.
	defer func() {
		w.scopes = w.scopes[:1]
		w.enclosingReturnType = nil
		w.loopDepth = 0
	}()

	f(stmt)
}

// -----------------------------------------------------------------------------

// lookup looks up a symbol by name in all visible scopes.  If no symbol by
// the given name can be found, then an error is reported.
func (w *Walker) lookup(name string, node ast.ASTNode) *common.Symbol {
	// Traverse scopes in reverse order to implement shadowing.
	for i := len(w.scopes) - 1; i > -1; i-- {
		if sym, ok := w.scopes[i][name]; ok {
			return sym
		}
	}

	w.error(node, "undefined symbol: `%s`", name)
	return nil
}

// define defines a symbol in the current scope.  If the symbol is already
// defined in that scope, then an error is reported.
func (w *Walker) define(sym *common.Symbol, node ast.ASTNode) {
	if isReservedName(sym.Name) {
		w.error(node, "`%s` is a reserved name", sym.Name)
	}

	currScope := w.scopes[len(w.scopes)-1]

	if prev, ok := currScope[sym.Name]; ok {
		w.error(node, "multiple symbols named `%s` defined in the same scope (previously defined as a %s)", sym.Name, prev.KindName())
	}

	sym.Global = len(w.scopes) == 1
	currScope[sym.Name] = sym
}

// pushScope pushes a new local scope onto the scope stack.
func (w *Walker) pushScope() {
	w.scopes = append(w.scopes, make(map[string]*common.Symbol))
}

// popScope removes the top local scope from the scope stack.
func (w *Walker) popScope() {
	w.scopes = w.scopes[:len(w.scopes)-1]
}

// isReservedName returns whether the given name may not be declared by user
// code.
func isReservedName(name string) bool {
	if name == common.InitFuncName || name == ast.CatchAll || name == "unit" {
		return true
	}

	_, ok := types.PrimitiveByName(name)
	return ok
}

// -----------------------------------------------------------------------------

// error reports an error on the given node that should abort walking of the
// current top-level statement.
func (w *Walker) error(node ast.ASTNode, msg string, args ...interface{}) {
	terr := report.Raise(node.Span(), msg, args...)
	terr.Source = sourceOf(node)

	panic(terr)
}

// warn records a warning on the given node.  Walking continues normally.
func (w *Walker) warn(node ast.ASTNode, msg string, args ...interface{}) {
	terr := report.Raise(node.Span(), msg, args...)
	terr.Source = sourceOf(node)

	w.warnings = append(w.warnings, terr)
}

// sourceOf returns the first line of the source text of a node.
func sourceOf(node ast.ASTNode) string {
	src := ast.Format(node)

	if n := strings.IndexByte(src, '\n'); n > -1 {
		return strings.TrimSpace(src[:n])
	}

	return src
}
