package lower

import (
	"strconv"

	"wabbit/common"
	"wabbit/ir"
	"wabbit/report"
	"wabbit/walk"
)

// Lowerer is the construct responsible for converting a checked program into
// an IR module.
type Lowerer struct {
	// The module being generated.
	mod *ir.Module

	// The function instructions are currently emitted into.
	fn *ir.Function

	// The global slots of all global symbols.
	globals map[*common.Symbol]int

	// The stack of local scopes mapping symbols to the local slots of the
	// current function.  An empty stack means declarations are global.
	scopes []map[*common.Symbol]int

	// The module-wide label counter.
	labelCounter int

	// The stack of enclosing loops: innermost last.
	loops []loopLabels

	// The computed memory layouts of composite types by type name.
	layouts map[string]*layout
}

// loopLabels holds the jump targets of a loop.
type loopLabels struct {
	// The label at the loop's condition: the target of `continue`.
	head string

	// The label after the loop: the target of `break`.
	exit string
}

// Lower converts a checked program into an IR module.  The only error it can
// return is a `*report.InternalError`.
func Lower(cp *walk.CheckedProgram) (mod *ir.Module, err error) {
	defer report.CatchInternal(&err)

	l := &Lowerer{
		mod:     ir.NewModule(),
		globals: make(map[*common.Symbol]int),
		layouts: make(map[string]*layout),
	}

	l.lowerInit(cp)

	for _, fd := range cp.Funcs {
		l.lowerFuncDef(fd)
	}

	if cp.Main == nil {
		l.synthesizeMain()
	}

	return l.mod, nil
}

// -----------------------------------------------------------------------------

// emit appends instructions to the current function.
func (l *Lowerer) emit(instrs ...ir.Instruction) {
	l.fn.Append(instrs...)
}

// newReg allocates a fresh register in the current function.
func (l *Lowerer) newReg(vt ir.ValueType) ir.Reg {
	return l.fn.NewRegister(vt)
}

// newLabel returns a fresh label name.
func (l *Lowerer) newLabel() string {
	l.labelCounter++
	return "L" + strconv.Itoa(l.labelCounter)
}

// constInt loads an integral constant into a fresh register.
func (l *Lowerer) constInt(vt ir.ValueType, v int64) ir.Reg {
	dest := l.newReg(vt)
	l.emit(&ir.Const{Type: vt, Int: v, Dest: dest})
	return dest
}

// -----------------------------------------------------------------------------

// pushScope pushes a scope onto the local scope stack.
func (l *Lowerer) pushScope() {
	l.scopes = append(l.scopes, make(map[*common.Symbol]int))
}

// popScope pops a scope from the local scope stack.
func (l *Lowerer) popScope() {
	l.scopes = l.scopes[:len(l.scopes)-1]
}

// declare allocates storage for a symbol and stores src into it.  Symbols
// declared outside of any local scope become globals.
func (l *Lowerer) declare(sym *common.Symbol, src ir.Reg) {
	vt := valueType(sym.Type)

	if len(l.scopes) == 0 {
		slot := l.mod.AllocGlobal(sym.Name, vt)
		l.globals[sym] = slot
		l.emit(&ir.GlobalStore{Type: vt, Slot: slot, Src: src})
	} else {
		slot := l.fn.AllocLocal(sym.Name, vt)
		l.scopes[len(l.scopes)-1][sym] = slot
		l.emit(&ir.LocalStore{Type: vt, Slot: slot, Src: src})
	}
}

// load loads the value of a symbol into a fresh register.
func (l *Lowerer) load(sym *common.Symbol) ir.Reg {
	vt := valueType(sym.Type)
	dest := l.newReg(vt)

	if slot, global := l.lookup(sym); global {
		l.emit(&ir.GlobalLoad{Type: vt, Slot: slot, Dest: dest})
	} else {
		l.emit(&ir.LocalLoad{Type: vt, Slot: slot, Dest: dest})
	}

	return dest
}

// store stores src into the storage of a symbol.
func (l *Lowerer) store(sym *common.Symbol, src ir.Reg) {
	vt := valueType(sym.Type)

	if slot, global := l.lookup(sym); global {
		l.emit(&ir.GlobalStore{Type: vt, Slot: slot, Src: src})
	} else {
		l.emit(&ir.LocalStore{Type: vt, Slot: slot, Src: src})
	}
}

// lookup finds the slot of a symbol and whether it is global.
func (l *Lowerer) lookup(sym *common.Symbol) (int, bool) {
	for i := len(l.scopes) - 1; i > -1; i-- {
		if slot, ok := l.scopes[i][sym]; ok {
			return slot, false
		}
	}

	if slot, ok := l.globals[sym]; ok {
		return slot, true
	}

	panic(report.ICE("no storage allocated for `%s`", sym.Name))
}
