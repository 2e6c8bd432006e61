package ir

import "wabbit/report"

// Module is a complete lowered program.
type Module struct {
	// The global slots of the module in slot order.
	Globals []Variable

	// The functions of the module in declaration order.
	Functions []*Function

	// Maps function names to their index in Functions.
	funcIndices map[string]int
}

// NewModule creates a new empty module.
func NewModule() *Module {
	return &Module{funcIndices: make(map[string]int)}
}

// AllocGlobal allocates a new global slot and returns its index.
func (m *Module) AllocGlobal(name string, typ ValueType) int {
	m.Globals = append(m.Globals, Variable{Name: name, Type: typ})
	return len(m.Globals) - 1
}

// NewFunction adds a new function to the module.  The parameters occupy the
// function's first local slots.  Defining a name twice is an internal error.
func (m *Module) NewFunction(name string, params []Variable, ret ValueType) *Function {
	if _, ok := m.funcIndices[name]; ok {
		panic(report.ICE("function `%s` defined multiple times", name))
	}

	fn := &Function{
		Name:       name,
		ReturnType: ret,
		Locals:     append([]Variable(nil), params...),
	}

	for _, param := range params {
		fn.Params = append(fn.Params, param.Type)
	}

	m.funcIndices[name] = len(m.Functions)
	m.Functions = append(m.Functions, fn)
	return fn
}

// Function returns the function with the given name or nil if no such
// function exists.
func (m *Module) Function(name string) *Function {
	if idx, ok := m.funcIndices[name]; ok {
		return m.Functions[idx]
	}

	return nil
}

// -----------------------------------------------------------------------------

// Function is a single function of a module.
type Function struct {
	// The function's name.
	Name string

	// The types of the function's parameters.  Parameter i is stored in local
	// slot i on entry.
	Params []ValueType

	// The function's return type.
	ReturnType ValueType

	// The local slots of the function including its parameters.
	Locals []Variable

	// The types of the function's registers indexed by register number.
	Registers []ValueType

	// The function's linear instruction sequence.
	Code []Instruction
}

// NumRegisters returns the number of registers used by the function.
func (fn *Function) NumRegisters() int {
	return len(fn.Registers)
}

// AllocLocal allocates a new local slot and returns its index.
func (fn *Function) AllocLocal(name string, typ ValueType) int {
	fn.Locals = append(fn.Locals, Variable{Name: name, Type: typ})
	return len(fn.Locals) - 1
}

// NewRegister allocates a fresh register of the given type.
func (fn *Function) NewRegister(typ ValueType) Reg {
	fn.Registers = append(fn.Registers, typ)
	return Reg(len(fn.Registers) - 1)
}

// Append appends instructions to the function's code.
func (fn *Function) Append(instrs ...Instruction) {
	fn.Code = append(fn.Code, instrs...)
}
