package report

import (
	"fmt"
	"strings"
)

// TypeError is a checking error: the input program is ill-typed or otherwise
// semantically invalid.  It is tied to the offending node by its span and its
// source text.
type TypeError struct {
	// The error message.
	Message string

	// The span over which the error occurs.  May be nil for synthesized nodes.
	Span *TextSpan

	// The source text of the offending node (if known).
	Source string
}

func (te *TypeError) Error() string {
	sb := strings.Builder{}

	if te.Span != nil {
		sb.WriteString(te.Span.String())
		sb.WriteString(": ")
	}

	sb.WriteString(te.Message)

	if te.Source != "" {
		sb.WriteString(" (in `")
		sb.WriteString(te.Source)
		sb.WriteString("`)")
	}

	return sb.String()
}

// Raise creates a new type error.
func Raise(span *TextSpan, msg string, args ...interface{}) *TypeError {
	return &TypeError{Message: fmt.Sprintf(msg, args...), Span: span}
}

// -----------------------------------------------------------------------------

// InternalError is an invariant violation inside the compiler itself: for
// example, the generator received an AST the checker never accepted.  These
// are never the user's fault.
type InternalError struct {
	Message string
}

func (ie *InternalError) Error() string {
	return "internal compiler error: " + ie.Message
}

// ICE creates a new internal error.
func ICE(msg string, args ...interface{}) *InternalError {
	return &InternalError{Message: fmt.Sprintf(msg, args...)}
}

// -----------------------------------------------------------------------------

// RuntimeError is a fatal error raised by the register machine.
type RuntimeError struct {
	// The error message.
	Message string

	// The name of the function executing when the error occurred.
	Func string

	// The index of the faulting instruction within that function.
	PC int
}

func (re *RuntimeError) Error() string {
	if re.Func == "" {
		return "runtime error: " + re.Message
	}

	return fmt.Sprintf("runtime error in %s at %d: %s", re.Func, re.PC, re.Message)
}

// -----------------------------------------------------------------------------

// CatchTypeErrors catches a `*TypeError` thrown by a `panic` and passes it to
// the given handler.  Any other panic value keeps unwinding.
// NB: This function must ALWAYS be deferred.
func CatchTypeErrors(handler func(*TypeError)) {
	if x := recover(); x != nil {
		if terr, ok := x.(*TypeError); ok {
			handler(terr)
		} else {
			panic(x)
		}
	}
}

// CatchInternal catches an `*InternalError` thrown by a `panic` and stores it
// in the error pointed to by dest.
// NB: This function must ALWAYS be deferred.
func CatchInternal(dest *error) {
	if x := recover(); x != nil {
		if ierr, ok := x.(*InternalError); ok {
			*dest = ierr
		} else {
			panic(x)
		}
	}
}

// CatchRuntime catches a `*RuntimeError` thrown by a `panic` and stores it in
// the error pointed to by dest.
// NB: This function must ALWAYS be deferred.
func CatchRuntime(dest *error) {
	if x := recover(); x != nil {
		if rerr, ok := x.(*RuntimeError); ok {
			*dest = rerr
		} else {
			panic(x)
		}
	}
}
