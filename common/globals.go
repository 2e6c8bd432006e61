package common

// WabbitVersion is the current toolchain version as a string.
const WabbitVersion string = "0.1.0"

// WabbitConfigFileName is the name of the optional toolchain configuration
// file looked up in the working directory.
const WabbitConfigFileName string = "wabbit.toml"

// InitFuncName is the name of the synthesized function holding all top-level
// statements.  User code may not define a symbol with this name.
const InitFuncName string = "_init"

// MainFuncName is the name of the program entry point.
const MainFuncName string = "main"

// Names of the external runtime functions used for printing.
const (
	PrintIntFunc   = "_printi"
	PrintFloatFunc = "_printf"
	PrintBoolFunc  = "_printb"
	PrintCharFunc  = "_printc"
)
