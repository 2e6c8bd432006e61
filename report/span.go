package report

import "fmt"

// TextSpan represents a range or "span" of source text. It is used to point
// the user at erroneous or otherwise significant source text in a Wabbit
// program.  Text spans are inclusive on both sides and the line and column
// numbers are zero-indexed.
type TextSpan struct {
	// The line and column beginning the text span.
	StartLine, StartCol int

	// The line and column ending the text span.
	EndLine, EndCol int
}

// String returns the one-indexed `line:col` form of the span start.
func (span *TextSpan) String() string {
	if span == nil {
		return "?:?"
	}

	return fmt.Sprintf("%d:%d", span.StartLine+1, span.StartCol+1)
}
