package cmd

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"testing"

	"wabbit/programs"
	"wabbit/report"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestCompiler creates a compiler for the named program writing to out
// with diagnostics written to diag.
func newTestCompiler(t *testing.T, name string, out, diag *bytes.Buffer) *Compiler {
	t.Helper()

	prog, ok := programs.Lookup(name)
	require.True(t, ok, name)

	report.InitReporterTo(report.LogLevelError, diag)
	return NewCompiler(prog, DefaultConfig(), out)
}

func TestCompilerRun(t *testing.T) {
	var out, diag bytes.Buffer
	c := newTestCompiler(t, "fact", &out, &diag)

	status, ok := c.Run()
	require.True(t, ok, diag.String())
	assert.Equal(t, 0, status)
	assert.Equal(t, "120\n", out.String())
}

func TestCompilerReportsCheckErrors(t *testing.T) {
	var out, diag bytes.Buffer
	c := newTestCompiler(t, "constassign", &out, &diag)

	_, ok := c.Run()
	assert.False(t, ok)
	assert.False(t, report.ShouldProceed())
	assert.Contains(t, diag.String(), "cannot assign to constant `pi`")
	assert.Empty(t, out.String())
}

func TestCompilerStopsAfterReportedErrors(t *testing.T) {
	var out, diag bytes.Buffer
	c := newTestCompiler(t, "fact", &out, &diag)

	_, ok := c.Analyze()
	require.True(t, ok, diag.String())

	// an error reported by an earlier phase stops the pipeline
	report.ReportStdError("fact", errors.New("earlier failure"))

	_, ok = c.Analyze()
	assert.False(t, ok)

	_, ok = c.Run()
	assert.False(t, ok)
	assert.Empty(t, out.String())
}

func TestCompilerFrameLimit(t *testing.T) {
	var out, diag bytes.Buffer
	c := newTestCompiler(t, "fact", &out, &diag)
	c.config.Machine.MaxFrames = 3

	_, ok := c.Run()
	assert.False(t, ok)
	assert.Contains(t, diag.String(), "frame limit of 3 exceeded")
}

func TestCompilerDumpIR(t *testing.T) {
	var out, diag bytes.Buffer
	c := newTestCompiler(t, "expr", &out, &diag)

	require.True(t, c.DumpIR())
	assert.Contains(t, out.String(), ":::: FUNCTION _init () i32")
	assert.Contains(t, out.String(), "callext _printi(")
}

func TestCompilerEmitLLVM(t *testing.T) {
	var out, diag bytes.Buffer
	c := newTestCompiler(t, "structs", &out, &diag)

	require.True(t, c.EmitLLVM(""))
	assert.Contains(t, out.String(), "define i32 @frac_mul(i32 %a, i32 %b)")

	path := filepath.Join(t.TempDir(), "structs.ll")
	require.True(t, c.EmitLLVM(path))

	buff, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, out.String(), string(buff))

	assert.False(t, c.EmitLLVM(filepath.Join(t.TempDir(), "missing", "out.ll")))
	assert.Contains(t, diag.String(), "creating LLVM output file")
}

func TestCompilerDumpAST(t *testing.T) {
	var out, diag bytes.Buffer
	c := newTestCompiler(t, "point", &out, &diag)

	c.DumpAST()
	assert.Contains(t, out.String(), "struct Point {")
	assert.Contains(t, out.String(), "print p.x;")
	assert.Contains(t, out.String(), "ast.StructDef")
}
