package report

import (
	"io"
	"os"
	"sync"
)

// Reporter is responsible for reporting errors, warnings, and other kinds of
// messages to the user.  The reporter respects the set log level and is
// synchronized: its methods can be safely called from multiple goroutines.
type Reporter struct {
	// The mutex used to synchonize different error method calls.
	m *sync.Mutex

	// The selected log level of the reporter.  This must be one of the
	// enumerated log levels below.
	logLevel int

	// Where all messages are written.
	out io.Writer

	// The number of errors and warnings reported so far.
	errorCount, warningCount int
}

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelWarn           // Displays only warnings and errors to the user.
	LogLevelVerbose        // Displays all messages to the user (default).
)

// rep is the global reporter instance.
var rep *Reporter

// InitReporter initializes the global reporter to the given log level writing
// to standard output.  Calling it again resets the reporter.
func InitReporter(logLevel int) {
	InitReporterTo(logLevel, os.Stdout)
}

// InitReporterTo initializes the global reporter with an explicit output.
func InitReporterTo(logLevel int, out io.Writer) {
	rep = &Reporter{
		m:        &sync.Mutex{},
		logLevel: logLevel,
		out:      out,
	}
}

// LogLevelByName converts a log level name to its enumerated value.  Unknown
// names (including the empty string) default to verbose.
func LogLevelByName(name string) int {
	switch name {
	case "silent":
		return LogLevelSilent
	case "error":
		return LogLevelError
	case "warn", "warning":
		return LogLevelWarn
	default:
		return LogLevelVerbose
	}
}

// reporter returns the global reporter, creating a default one if needed.
func reporter() *Reporter {
	if rep == nil {
		InitReporter(LogLevelVerbose)
	}

	return rep
}
