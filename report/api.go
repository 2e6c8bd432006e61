package report

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
)

// ShouldProceed indicates whether or not there have been any errors that
// should cause the current phase to stop.
func ShouldProceed() bool {
	return reporter().errorCount == 0
}

// ReportCompileError reports a single checking error for the named program.
func ReportCompileError(progName string, terr *TypeError) {
	r := reporter()
	r.m.Lock()
	defer r.m.Unlock()

	r.errorCount++

	if r.logLevel > LogLevelSilent {
		displayCompileMessage(r.out, "error", progName, terr.Span, terr.Message, terr.Source)
	}
}

// ReportCompileWarning reports a single checking warning for the named program.
func ReportCompileWarning(progName string, terr *TypeError) {
	r := reporter()
	r.m.Lock()
	defer r.m.Unlock()

	r.warningCount++

	if r.logLevel >= LogLevelWarn {
		displayCompileMessage(r.out, "warning", progName, terr.Span, terr.Message, terr.Source)
	}
}

// ReportErrors reports an error returned by one of the pipeline phases.  Batch
// checking errors are unpacked and reported one at a time.
func ReportErrors(progName string, err error) {
	if merr, ok := err.(*multierror.Error); ok {
		for _, e := range merr.Errors {
			ReportErrors(progName, e)
		}

		return
	}

	switch v := err.(type) {
	case *TypeError:
		ReportCompileError(progName, v)
	case *InternalError:
		ReportICE("%s", v.Message)
	default:
		ReportStdError(progName, err)
	}
}

// ReportStdError reports a non-fatal, standard Go error.
func ReportStdError(progName string, err error) {
	r := reporter()
	r.m.Lock()
	defer r.m.Unlock()

	r.errorCount++

	if r.logLevel > LogLevelSilent {
		displayStdError(r.out, progName, err)
	}
}

// ReportICE reports an internal compiler error.  These are always displayed
// regardless of log level.
func ReportICE(message string, args ...interface{}) {
	r := reporter()
	r.m.Lock()
	defer r.m.Unlock()

	r.errorCount++
	displayICE(r.out, fmt.Sprintf(message, args...))
}

// ReportFatal reports a fatal error and exits the program.  These are expected
// errors that result from invalid usage or configuration.
func ReportFatal(message string, args ...interface{}) {
	r := reporter()

	if r.logLevel > LogLevelSilent {
		r.m.Lock()
		displayFatal(r.out, fmt.Sprintf(message, args...))
		r.m.Unlock()
	}

	os.Exit(1)
}

// ReportInfo reports an informational message at verbose level.
func ReportInfo(tag, message string) {
	r := reporter()

	if r.logLevel == LogLevelVerbose {
		r.m.Lock()
		defer r.m.Unlock()

		displayInfo(r.out, tag, message)
	}
}

// ReportFinished reports the closing message for a pipeline run.
func ReportFinished() {
	r := reporter()

	if r.logLevel == LogLevelVerbose {
		r.m.Lock()
		defer r.m.Unlock()

		displayFinished(r.out, r.errorCount == 0, r.errorCount, r.warningCount)
	}
}
