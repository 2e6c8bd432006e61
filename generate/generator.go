package generate

import (
	"fmt"

	"wabbit/common"
	"wabbit/ir"

	llir "github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// Generator is responsible for converting an IR module into an LLVM module.
// The machine's flat memory becomes a global byte array and its bump
// allocator a global heap pointer; registers and locals become stack slots.
type Generator struct {
	// The module being exported.
	src *ir.Module

	// The LLVM module being generated.
	mod *llir.Module

	// The global byte array standing in for the machine's memory.
	mem *llir.Global

	// The type of mem.
	memType *types.ArrayType

	// The next free address in mem.
	heap *llir.Global

	// The LLVM globals for each global slot.
	globals []*llir.Global

	// The LLVM functions by name including the runtime functions.
	funcs map[string]*llir.Func

	// The `llvm.memcpy` intrinsic.
	memcpy *llir.Func

	// Per-function state.
	fn     *ir.Function
	llFunc *llir.Func
	block  *llir.Block
	regs   []value.Value
	locals []value.Value
	labels map[string]*llir.Block
}

// heapBase is the first allocatable address.
const heapBase = 8

// DefaultMemorySize is the size of the memory array of an exported module
// when no size is given.
const DefaultMemorySize = 1 << 20

// GenerateLLVM converts an IR module into an LLVM module.  memSize is the size
// in bytes of the memory available to composite values; zero selects
// `DefaultMemorySize`.  Unlike the register machine, exported modules have
// a fixed memory size.
func GenerateLLVM(src *ir.Module, memSize int) *llir.Module {
	if memSize <= 0 {
		memSize = DefaultMemorySize
	}

	g := &Generator{
		src:   src,
		mod:   llir.NewModule(),
		funcs: make(map[string]*llir.Func),
	}

	g.memType = types.NewArray(uint64(memSize), types.I8)
	g.mem = g.mod.NewGlobalDef("wabbit.mem", constant.NewZeroInitializer(g.memType))
	g.heap = g.mod.NewGlobalDef("wabbit.heap", constant.NewInt(types.I32, heapBase))

	for slot, global := range src.Globals {
		llType := convType(global.Type)
		g.globals = append(g.globals, g.mod.NewGlobalDef(
			fmt.Sprintf("g.%d.%s", slot, global.Name),
			constant.NewZeroInitializer(llType),
		))
	}

	g.declareRuntime()

	// Declare all functions first so calls can refer to any of them.
	for _, fn := range src.Functions {
		params := make([]*llir.Param, len(fn.Params))
		for i, ptyp := range fn.Params {
			params[i] = llir.NewParam(fn.Locals[i].Name, convType(ptyp))
		}

		g.funcs[fn.Name] = g.mod.NewFunc(fn.Name, convType(fn.ReturnType), params...)
	}

	for _, fn := range src.Functions {
		g.genFunc(fn)
	}

	return g.mod
}

// declareRuntime declares the external runtime functions and intrinsics.
func (g *Generator) declareRuntime() {
	printFuncs := []struct {
		name string
		typ  types.Type
	}{
		{common.PrintIntFunc, types.I32},
		{common.PrintFloatFunc, types.Double},
		{common.PrintBoolFunc, types.I1},
		{common.PrintCharFunc, types.I8},
	}

	for _, pf := range printFuncs {
		g.funcs[pf.name] = g.mod.NewFunc(pf.name, types.Void, llir.NewParam("x", pf.typ))
	}

	g.memcpy = g.mod.NewFunc(
		"llvm.memcpy.p0i8.p0i8.i32",
		types.Void,
		llir.NewParam("dst", types.I8Ptr),
		llir.NewParam("src", types.I8Ptr),
		llir.NewParam("len", types.I32),
		llir.NewParam("isvolatile", types.I1),
	)
}

// convType converts an IR value type into an LLVM type.
func convType(vt ir.ValueType) types.Type {
	switch vt {
	case ir.I32:
		return types.I32
	case ir.F64:
		return types.Double
	case ir.I8:
		return types.I8
	case ir.I1:
		return types.I1
	default:
		return types.Void
	}
}

// -----------------------------------------------------------------------------

// genFunc generates the body of a function.
func (g *Generator) genFunc(fn *ir.Function) {
	g.fn = fn
	g.llFunc = g.funcs[fn.Name]
	g.labels = make(map[string]*llir.Block)
	g.regs = make([]value.Value, fn.NumRegisters())
	g.locals = make([]value.Value, len(fn.Locals))

	g.block = g.llFunc.NewBlock("")

	for i, rtyp := range fn.Registers {
		g.regs[i] = g.block.NewAlloca(convType(rtyp))
	}

	for i, local := range fn.Locals {
		g.locals[i] = g.block.NewAlloca(convType(local.Type))
	}

	for i, param := range g.llFunc.Params {
		g.block.NewStore(param, g.locals[i])
	}

	for _, instr := range fn.Code {
		g.genInstr(instr)
	}

	// Close every block left open: only a void function may fall off its end.
	for _, block := range g.llFunc.Blocks {
		if block.Term != nil {
			continue
		}

		if fn.ReturnType == ir.Void {
			block.NewRet(nil)
		} else {
			block.NewUnreachable()
		}
	}
}

// labelBlock returns the block starting at the given label.
func (g *Generator) labelBlock(name string) *llir.Block {
	if block, ok := g.labels[name]; ok {
		return block
	}

	block := llir.NewBlock(name)
	g.labels[name] = block
	return block
}

// startBlock appends a block to the current function and makes it current.
func (g *Generator) startBlock(block *llir.Block) {
	block.Parent = g.llFunc
	g.llFunc.Blocks = append(g.llFunc.Blocks, block)
	g.block = block
}

// startFallthrough starts the unnamed block following a terminator.
func (g *Generator) startFallthrough() *llir.Block {
	block := llir.NewBlock("")
	g.startBlock(block)
	return block
}
