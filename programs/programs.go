// Package programs holds the reference Wabbit programs used by the CLI and the
// end-to-end tests.  Each program is built as an AST together with the output
// it is expected to produce.
package programs

import (
	"sort"

	"wabbit/ast"
)

// Program is a named reference program.
type Program struct {
	// The name the program is looked up by.
	Name string

	// A one-line description of what the program exercises.
	Summary string

	// The output the program prints when run.
	Output string

	// The value returned by `main`.
	ExitStatus int

	// The deepest the call stack gets during execution, not counting `main`.
	CallDepth int

	// A fragment of the error the checker reports.  Programs with a non-empty
	// CheckError are rejected by the checker and never run.
	CheckError string

	build func() *ast.Program
}

// AST builds a fresh copy of the program's AST.  Checking annotates the AST so
// every run needs its own copy.
func (p *Program) AST() *ast.Program {
	return p.build()
}

// Valid indicates whether the program passes checking.
func (p *Program) Valid() bool {
	return p.CheckError == ""
}

// registry maps program names to programs.
var registry = make(map[string]*Program)

// register adds programs to the registry.
func register(progs ...*Program) {
	for _, p := range progs {
		if _, ok := registry[p.Name]; ok {
			panic("program `" + p.Name + "` registered multiple times")
		}

		registry[p.Name] = p
	}
}

// Lookup returns the program with the given name.
func Lookup(name string) (*Program, bool) {
	p, ok := registry[name]
	return p, ok
}

// All returns every registered program sorted by name.
func All() []*Program {
	progs := make([]*Program, 0, len(registry))
	for _, p := range registry {
		progs = append(progs, p)
	}

	sort.Slice(progs, func(i, j int) bool {
		return progs[i].Name < progs[j].Name
	})

	return progs
}
