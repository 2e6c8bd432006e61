package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpanString(t *testing.T) {
	var span *TextSpan
	assert.Equal(t, "?:?", span.String())

	span = &TextSpan{StartLine: 0, StartCol: 4, EndLine: 2, EndCol: 1}
	assert.Equal(t, "1:5", span.String())
}

func TestErrorStrings(t *testing.T) {
	terr := Raise(nil, "unknown type: `%s`", "Foo")
	assert.Equal(t, "unknown type: `Foo`", terr.Error())

	terr.Source = "var x Foo;"
	assert.Equal(t, "unknown type: `Foo` (in `var x Foo;`)", terr.Error())

	assert.Equal(t, "internal compiler error: bad", ICE("bad").Error())

	assert.Equal(t, "runtime error: oops", (&RuntimeError{Message: "oops"}).Error())
	assert.Equal(t, "runtime error in main at 3: oops", (&RuntimeError{Message: "oops", Func: "main", PC: 3}).Error())
}

func TestCatchers(t *testing.T) {
	var caught *TypeError
	func() {
		defer CatchTypeErrors(func(terr *TypeError) { caught = terr })
		panic(Raise(nil, "boom"))
	}()
	require.NotNil(t, caught)
	assert.Equal(t, "boom", caught.Message)

	ice := func() (err error) {
		defer CatchInternal(&err)
		panic(ICE("broken"))
	}
	assert.EqualError(t, ice(), "internal compiler error: broken")

	rt := func() (err error) {
		defer CatchRuntime(&err)
		panic(&RuntimeError{Message: "halt"})
	}
	assert.EqualError(t, rt(), "runtime error: halt")

	// Foreign panics keep unwinding.
	assert.PanicsWithValue(t, "other", func() {
		defer CatchTypeErrors(func(*TypeError) {})
		panic("other")
	})
}

func TestReportErrorsUnpacksBatches(t *testing.T) {
	var out bytes.Buffer
	InitReporterTo(LogLevelError, &out)

	var merr *multierror.Error
	merr = multierror.Append(merr,
		&TypeError{Message: "first", Span: &TextSpan{StartLine: 1, StartCol: 2}, Source: "x = 1;"},
		&TypeError{Message: "second"},
	)

	ReportErrors("prog", merr)
	ReportErrors("prog", errors.New("plain"))

	assert.False(t, ShouldProceed())
	assert.Equal(t, 3, reporter().errorCount)

	text := out.String()
	assert.Contains(t, text, "prog:2:3: ")
	assert.Contains(t, text, "first")
	assert.Contains(t, text, "x = 1;")
	assert.Contains(t, text, "second")
	assert.Contains(t, text, "plain")
}

func TestLogLevels(t *testing.T) {
	assert.Equal(t, LogLevelSilent, LogLevelByName("silent"))
	assert.Equal(t, LogLevelError, LogLevelByName("error"))
	assert.Equal(t, LogLevelWarn, LogLevelByName("warn"))
	assert.Equal(t, LogLevelVerbose, LogLevelByName("verbose"))

	var out bytes.Buffer
	InitReporterTo(LogLevelError, &out)

	ReportCompileWarning("prog", &TypeError{Message: "hidden"})
	ReportInfo("Tag", "hidden too")
	assert.Empty(t, out.String())
	assert.True(t, ShouldProceed())

	InitReporterTo(LogLevelSilent, &out)
	ReportErrors("prog", &TypeError{Message: "quiet"})
	assert.Empty(t, out.String())
	assert.False(t, ShouldProceed())

	InitReporterTo(LogLevelVerbose, &out)
	ReportCompileWarning("prog", &TypeError{Message: "shown"})
	ReportInfo("Tag", "also shown")
	assert.Contains(t, out.String(), "shown")
	assert.Contains(t, out.String(), "also shown")
}
