package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
	InfoStyleBG    = SuccessStyleBG
)

// displayICE displays an internal compiler error message.
func displayICE(out io.Writer, message string) {
	fmt.Fprint(out, ErrorStyleBG.Sprint("internal compiler error"), " ")
	fmt.Fprintln(out, ErrorColorFG.Sprint(message))
	fmt.Fprint(out, "This error was not supposed to happen: the checker accepted a program it should have rejected.\n\n")
}

// displayFatal displays a fatal error message.
func displayFatal(out io.Writer, message string) {
	fmt.Fprint(out, ErrorStyleBG.Sprint("fatal error"), " ")
	fmt.Fprintln(out, ErrorColorFG.Sprint(message))
	fmt.Fprintln(out)
}

// displayInfo displays a tagged informational message.
func displayInfo(out io.Writer, tag, message string) {
	fmt.Fprint(out, InfoStyleBG.Sprint(tag), " ")
	fmt.Fprintln(out, InfoColorFG.Sprint(message))
}

// displayCompileMessage displays a compilation error or warning.  The label is
// the string to prefix the message with: eg. if we want to display an error,
// the label is "error".  The source is the offending node rendered back to
// source text: it is underlined in place of the source line.
func displayCompileMessage(out io.Writer, label, progName string, span *TextSpan, message, source string) {
	var labelStr string
	if label == "error" {
		labelStr = ErrorColorFG.Sprint(label)
	} else {
		labelStr = WarnColorFG.Sprint(label)
	}

	if span == nil {
		fmt.Fprintf(out, "%s: %s: %s\n", progName, labelStr, message)
	} else {
		fmt.Fprintf(out, "%s:%s: %s: %s\n", progName, span, labelStr, message)
	}

	if source != "" {
		displaySourceText(out, span, source)
	}

	fmt.Fprintln(out)
}

// displaySourceText displays the offending source text with a carret
// underline beneath it.
func displaySourceText(out io.Writer, span *TextSpan, source string) {
	lineNum := "  "
	if span != nil {
		lineNum = fmt.Sprintf("%d", span.StartLine+1)
	}

	// Only the first line of a multi-line node is shown.
	line := strings.SplitN(source, "\n", 2)[0]

	fmt.Fprintf(out, "%s | %s\n", InfoColorFG.Sprint(lineNum), line)
	fmt.Fprintf(out, "%s | %s\n", strings.Repeat(" ", len(lineNum)), ErrorColorFG.Sprint(strings.Repeat("^", len(line))))
}

// displayStdError displays a standard Go error.
func displayStdError(out io.Writer, progName string, err error) {
	fmt.Fprintf(out, "%s: %s: %s\n\n", progName, ErrorColorFG.Sprint("error"), err)
}

// displayFinished displays the closing message.
func displayFinished(out io.Writer, success bool, errorCount, warningCount int) {
	if success {
		fmt.Fprint(out, SuccessColorFG.Sprint("All done! "))
	} else {
		fmt.Fprint(out, ErrorColorFG.Sprint("Oh no! "))
	}

	fmt.Fprint(out, "(")

	switch errorCount {
	case 0:
		fmt.Fprint(out, SuccessColorFG.Sprint(0), " errors, ")
	case 1:
		fmt.Fprint(out, ErrorColorFG.Sprint(1), " error, ")
	default:
		fmt.Fprint(out, ErrorColorFG.Sprint(errorCount), " errors, ")
	}

	switch warningCount {
	case 0:
		fmt.Fprint(out, SuccessColorFG.Sprint(0), " warnings)\n")
	case 1:
		fmt.Fprint(out, WarnColorFG.Sprint(1), " warning)\n")
	default:
		fmt.Fprint(out, WarnColorFG.Sprint(warningCount), " warnings)\n")
	}
}
