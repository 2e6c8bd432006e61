package cmd

import (
	"fmt"
	"io"
	"os"

	"wabbit/ast"
	"wabbit/generate"
	"wabbit/ir"
	"wabbit/lower"
	"wabbit/programs"
	"wabbit/report"
	"wabbit/vm"
	"wabbit/walk"

	"github.com/kr/pretty"
	"github.com/pkg/errors"
)

// Compiler drives a single program through the pipeline: checking, lowering
// and then either execution or export.
type Compiler struct {
	prog   *programs.Program
	config *Config

	// Where dumps and program output are written.
	out io.Writer
}

// NewCompiler creates a new compiler for the given program.
func NewCompiler(prog *programs.Program, config *Config, out io.Writer) *Compiler {
	return &Compiler{prog: prog, config: config, out: out}
}

// Analyze checks the program.  All checking errors and warnings are reported
// and the result is usable only if no error has been reported so far.
func (c *Compiler) Analyze() (*walk.CheckedProgram, bool) {
	cp, err := walk.Check(c.prog.AST())
	if err != nil {
		report.ReportErrors(c.prog.Name, err)
		return nil, report.ShouldProceed()
	}

	for _, warning := range cp.Warnings {
		report.ReportCompileWarning(c.prog.Name, warning)
	}

	return cp, report.ShouldProceed()
}

// Lower checks and lowers the program into an IR module.
func (c *Compiler) Lower() (*ir.Module, bool) {
	cp, ok := c.Analyze()
	if !ok {
		return nil, false
	}

	mod, err := lower.Lower(cp)
	if err != nil {
		report.ReportErrors(c.prog.Name, err)
	}

	return mod, report.ShouldProceed()
}

// Run lowers and executes the program and returns its exit status.
func (c *Compiler) Run() (int, bool) {
	mod, ok := c.Lower()
	if !ok {
		return 1, false
	}

	mconfig := c.config.machineConfig()
	mconfig.Output = c.out

	m, err := vm.Load(mod, mconfig)
	if err != nil {
		report.ReportStdError(c.prog.Name, errors.Wrap(err, "loading module"))
		return 1, false
	}

	status, err := m.Run()
	if err != nil {
		report.ReportErrors(c.prog.Name, err)
		return 1, false
	}

	report.ReportInfo("Max Call Depth", fmt.Sprint(m.MaxCallDepth()))
	return status, true
}

// DumpIR writes the textual IR of the program.
func (c *Compiler) DumpIR() bool {
	mod, ok := c.Lower()
	if !ok {
		return false
	}

	fmt.Fprint(c.out, mod.Dump())
	return true
}

// EmitLLVM writes the program as LLVM IR to outPath or to the compiler's
// output if outPath is empty.
func (c *Compiler) EmitLLVM(outPath string) bool {
	mod, ok := c.Lower()
	if !ok {
		return false
	}

	llMod := generate.GenerateLLVM(mod, c.config.Machine.MemorySize)

	if outPath == "" {
		fmt.Fprint(c.out, llMod.String())
		return true
	}

	f, err := os.Create(outPath)
	if err != nil {
		report.ReportStdError(c.prog.Name, errors.Wrap(err, "creating LLVM output file"))
		return false
	}
	defer f.Close()

	if _, err := llMod.WriteTo(f); err != nil {
		report.ReportStdError(c.prog.Name, errors.Wrapf(err, "writing %s", outPath))
		return false
	}

	return true
}

// DumpAST writes the program's source text followed by its structure.
func (c *Compiler) DumpAST() {
	prog := c.prog.AST()

	fmt.Fprintln(c.out, ast.Format(prog))
	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "%# v\n", pretty.Formatter(prog))
}
