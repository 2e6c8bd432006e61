package vm

import (
	"fmt"
	"io"
	"os"

	"wabbit/common"
	"wabbit/ir"
	"wabbit/report"

	"github.com/pkg/errors"
)

// initialMemorySize is the size of the machine's memory before any growth.
const initialMemorySize = 4096

// Config configures a machine.
type Config struct {
	// The maximum size of the flat memory in bytes.  Memory grows on demand
	// up to this size.  Zero means memory is bounded only by host memory.
	MemorySize int

	// The maximum number of frames on the call stack.  Zero means the stack
	// is bounded only by host memory.
	MaxFrames int

	// Where printed output is written.  Nil selects standard out.
	Output io.Writer
}

// Machine is a register machine which executes IR modules.
type Machine struct {
	// The loaded functions by name.
	funcs map[string]*loadedFunc

	// The global store indexed by slot.
	globals []uint64

	// The flat byte memory holding composite values.  It grows as values
	// are allocated.
	memory []byte

	// The maximum length of memory or zero if unbounded.
	memoryLimit int

	// The next free address in memory.
	heapTop int

	// The explicit call stack: the executing frame is last.
	frames []*frame

	// The deepest the call stack has been, not counting the entry frame.
	maxDepth int

	maxFrames int
	out       io.Writer
}

// loadedFunc is a function prepared for execution.
type loadedFunc struct {
	fn *ir.Function

	// Maps label names to the index of the label instruction.
	labels map[string]int
}

// frame is the execution state of a single function call.
type frame struct {
	lf     *loadedFunc
	regs   []uint64
	locals []uint64
	pc     int

	// The caller's register receiving the return value.
	dest ir.Reg
}

// heapBase is the first allocatable address.  Address zero is never a valid
// composite value.
const heapBase = 8

// Load prepares a module for execution: it resolves every function's labels
// and verifies that the module has an entry point.
func Load(mod *ir.Module, config Config) (*Machine, error) {
	if config.MemorySize < 0 || (config.MemorySize > 0 && config.MemorySize < heapBase) {
		return nil, errors.Errorf("memory size %d is too small", config.MemorySize)
	}

	memSize := initialMemorySize
	if config.MemorySize > 0 && config.MemorySize < memSize {
		memSize = config.MemorySize
	}

	if config.Output == nil {
		config.Output = os.Stdout
	}

	m := &Machine{
		funcs:       make(map[string]*loadedFunc),
		globals:     make([]uint64, len(mod.Globals)),
		memory:      make([]byte, memSize),
		memoryLimit: config.MemorySize,
		heapTop:     heapBase,
		maxFrames:   config.MaxFrames,
		out:         config.Output,
	}

	for _, fn := range mod.Functions {
		lf, err := loadFunc(fn)
		if err != nil {
			return nil, errors.Wrapf(err, "loading function `%s`", fn.Name)
		}

		m.funcs[fn.Name] = lf
	}

	if _, ok := m.funcs[common.MainFuncName]; !ok {
		return nil, errors.New("module has no `main` function")
	}

	return m, nil
}

// loadFunc builds the label table of a function and verifies every jump
// target exists.
func loadFunc(fn *ir.Function) (*loadedFunc, error) {
	lf := &loadedFunc{fn: fn, labels: make(map[string]int)}

	for i, instr := range fn.Code {
		if label, ok := instr.(*ir.Label); ok {
			if _, ok := lf.labels[label.Name]; ok {
				return nil, errors.Errorf("label `%s` defined multiple times", label.Name)
			}

			lf.labels[label.Name] = i
		}
	}

	for _, instr := range fn.Code {
		var target string
		switch v := instr.(type) {
		case *ir.Goto:
			target = v.Label
		case *ir.BranchIf:
			target = v.Label
		default:
			continue
		}

		if _, ok := lf.labels[target]; !ok {
			return nil, errors.Errorf("jump to undefined label `%s`", target)
		}
	}

	return lf, nil
}

// Execute loads and runs a module and returns its exit status.
func Execute(mod *ir.Module, config Config) (int, error) {
	m, err := Load(mod, config)
	if err != nil {
		return 0, err
	}

	return m.Run()
}

// MaxCallDepth returns the deepest the call stack has been during execution,
// not counting the frame of `main`.  Every frame above `main` counts,
// including `_init`: a call made from a top-level statement runs one frame
// deeper than the same call made from the body of `main`.
func (m *Machine) MaxCallDepth() int {
	return m.maxDepth
}

// -----------------------------------------------------------------------------

// Run executes the module starting at `main` and returns `main`'s return
// value as the exit status.  All runtime errors are `*report.RuntimeError`.
func (m *Machine) Run() (status int, err error) {
	defer report.CatchRuntime(&err)

	m.pushFrame(common.MainFuncName, nil, ir.NoReg)

	for {
		f := m.frames[len(m.frames)-1]
		code := f.lf.fn.Code

		if f.pc >= len(code) {
			m.fail("function ended without returning")
		}

		instr := code[f.pc]
		f.pc++

		if ret, ok := instr.(*ir.Return); ok {
			var value uint64
			if ret.Src != ir.NoReg {
				value = m.reg(ret.Src)
			}

			m.popFrame()

			if len(m.frames) == 0 {
				return int(int32(uint32(value))), nil
			}

			if f.dest != ir.NoReg {
				m.setReg(f.dest, value)
			}

			continue
		}

		m.exec(f, instr)
	}
}

// pushFrame pushes a new frame for the named function with the given
// arguments bound to its parameter slots.
func (m *Machine) pushFrame(name string, args []uint64, dest ir.Reg) {
	lf, ok := m.funcs[name]
	if !ok {
		m.fail("call to unknown function `%s`", name)
	}

	if len(args) != len(lf.fn.Params) {
		m.fail("function `%s` expects %d arguments but got %d", name, len(lf.fn.Params), len(args))
	}

	if m.maxFrames > 0 && len(m.frames) >= m.maxFrames {
		m.fail("frame limit of %d exceeded", m.maxFrames)
	}

	f := &frame{
		lf:     lf,
		regs:   make([]uint64, lf.fn.NumRegisters()),
		locals: make([]uint64, len(lf.fn.Locals)),
		dest:   dest,
	}

	copy(f.locals, args)
	m.frames = append(m.frames, f)

	if depth := len(m.frames) - 1; depth > m.maxDepth {
		m.maxDepth = depth
	}
}

// popFrame removes the executing frame.
func (m *Machine) popFrame() {
	if len(m.frames) == 0 {
		m.fail("call stack underflow")
	}

	m.frames = m.frames[:len(m.frames)-1]
}

// fail raises a fatal runtime error at the current instruction.
func (m *Machine) fail(msg string, args ...interface{}) {
	rerr := &report.RuntimeError{Message: fmt.Sprintf(msg, args...)}

	if len(m.frames) > 0 {
		f := m.frames[len(m.frames)-1]
		rerr.Func = f.lf.fn.Name
		rerr.PC = f.pc - 1
	}

	panic(rerr)
}
