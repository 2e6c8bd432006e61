package walk

import (
	"wabbit/ast"
	"wabbit/types"
)

// walkIf walks a conditional statement.
func (w *Walker) walkIf(ifStmt *ast.If) int {
	w.mustEqual(types.PrimTypeBool, w.walkExpr(ifStmt.Cond), ifStmt.Cond)

	thenMode := w.walkBlock(ifStmt.Then)
	if ifStmt.Else == nil {
		return ControlNone
	}

	elseMode := w.walkBlock(ifStmt.Else)

	// Control only leaves the conditional if it leaves both branches.
	if thenMode == ControlNone || elseMode == ControlNone {
		return ControlNone
	} else if thenMode == ControlReturn && elseMode == ControlReturn {
		return ControlReturn
	}

	return ControlLoop
}

// walkWhile walks a while loop.
func (w *Walker) walkWhile(loop *ast.While) {
	w.mustEqual(types.PrimTypeBool, w.walkExpr(loop.Cond), loop.Cond)

	w.loopDepth++
	w.walkBlock(loop.Body)
	w.loopDepth--
}
