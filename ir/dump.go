package ir

import (
	"fmt"
	"strings"
)

// Dump returns the full textual representation of the module: its globals in
// slot order followed by each function in declaration order.
func (m *Module) Dump() string {
	sb := strings.Builder{}

	sb.WriteString(":::: MODULE\n")
	sb.WriteString(":::: GLOBALS\n")
	for slot, global := range m.Globals {
		fmt.Fprintf(&sb, "%d: %s %s\n", slot, global.Name, global.Type)
	}

	for _, fn := range m.Functions {
		sb.WriteRune('\n')
		sb.WriteString(fn.Dump())
	}

	return sb.String()
}

// Dump returns the textual representation of a single function.
func (fn *Function) Dump() string {
	sb := strings.Builder{}

	params := make([]string, len(fn.Params))
	for i, param := range fn.Params {
		params[i] = param.String()
	}

	fmt.Fprintf(&sb, ":::: FUNCTION %s (%s) %s\n", fn.Name, strings.Join(params, ", "), fn.ReturnType)

	sb.WriteString(":::: LOCALS\n")
	for slot, local := range fn.Locals {
		fmt.Fprintf(&sb, "%d: %s %s\n", slot, local.Name, local.Type)
	}

	sb.WriteString(":::: CODE\n")
	for _, instr := range fn.Code {
		if _, ok := instr.(*Label); !ok {
			sb.WriteString("    ")
		}

		sb.WriteString(instr.Repr())
		sb.WriteRune('\n')
	}

	return sb.String()
}
