package cmd

import (
	"io/ioutil"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"wabbit/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fatalDirEnv names the directory the child process runs `wabbit list` in.
const fatalDirEnv = "WABBIT_TEST_FATAL_DIR"

func TestExecuteFatalConfigError(t *testing.T) {
	if dir := os.Getenv(fatalDirEnv); dir != "" {
		require.NoError(t, os.Chdir(dir))
		os.Args = []string{"wabbit", "list"}
		Execute()
		return
	}

	dir := t.TempDir()
	require.NoError(t, ioutil.WriteFile(
		filepath.Join(dir, common.WabbitConfigFileName),
		[]byte("[report]\nlog-level = \"100%d\"\n"),
		0644,
	))

	child := exec.Command(os.Args[0], "-test.run=^TestExecuteFatalConfigError$")
	child.Env = append(os.Environ(), fatalDirEnv+"="+dir)
	out, err := child.CombinedOutput()

	exitErr, ok := err.(*exec.ExitError)
	require.True(t, ok, "expected a failing exit: %v\n%s", err, out)
	assert.Equal(t, 1, exitErr.ExitCode())

	// the message is printed verbatim rather than used as a format string
	assert.Contains(t, string(out), "invalid log level: `100%d`")
	assert.NotContains(t, string(out), "%!")
}
