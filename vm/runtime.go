package vm

import (
	"fmt"

	"wabbit/common"
	"wabbit/util"
)

// external is a function of the machine's runtime.
type external func(m *Machine, arg uint64)

// The fixed table of runtime functions callable with `callext`.
var externals = map[string]external{
	common.PrintIntFunc: func(m *Machine, arg uint64) {
		fmt.Fprintf(m.out, "%d\n", asInt(arg))
	},
	common.PrintFloatFunc: func(m *Machine, arg uint64) {
		fmt.Fprintln(m.out, util.FormatFloat(asFloat(arg)))
	},
	common.PrintBoolFunc: func(m *Machine, arg uint64) {
		fmt.Fprintln(m.out, arg&1 == 1)
	},
	common.PrintCharFunc: func(m *Machine, arg uint64) {
		m.out.Write([]byte{byte(arg)})
	},
}

// callExternal dispatches a call to the runtime.
func (m *Machine) callExternal(name string, args []uint64) {
	ext, ok := externals[name]
	if !ok {
		m.fail("call to unknown external function `%s`", name)
	}

	if len(args) != 1 {
		m.fail("external function `%s` expects 1 argument but got %d", name, len(args))
	}

	ext(m, args[0])
}
