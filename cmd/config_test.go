package cmd

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"wabbit/common"
	"wabbit/vm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	config, err := ParseConfig([]byte(`
[report]
log-level = "warn"

[machine]
memory-size = 1024
max-frames = 50
`))
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Report.LogLevel)
	assert.Equal(t, vm.Config{MemorySize: 1024, MaxFrames: 50}, config.machineConfig())
}

func TestParseConfigDefaults(t *testing.T) {
	config, err := ParseConfig([]byte(`
[machine]
max-frames = 10
`))
	require.NoError(t, err)

	assert.Equal(t, "verbose", config.Report.LogLevel)
	assert.Zero(t, config.Machine.MemorySize)
	assert.Equal(t, 10, config.Machine.MaxFrames)
}

func TestParseConfigInvalid(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"[report]\nlog-level = \"loud\"\n", "invalid log level: `loud`"},
		{"[machine]\nmemory-size = -8\n", "memory size cannot be negative"},
		{"[machine]\nmax-frames = -1\n", "frame limit cannot be negative"},
	}

	for _, c := range cases {
		_, err := ParseConfig([]byte(c.src))
		require.Error(t, err, c.src)
		assert.Contains(t, err.Error(), c.want)
	}

	_, err := ParseConfig([]byte("[machine\n"))
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	// A missing config file selects the defaults.
	config, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)

	path := filepath.Join(dir, common.WabbitConfigFileName)
	require.NoError(t, ioutil.WriteFile(path, []byte("[report]\nlog-level = \"silent\"\n"), 0644))

	config, err = LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "silent", config.Report.LogLevel)

	require.NoError(t, ioutil.WriteFile(path, []byte("[report]\nlog-level = \"nope\"\n"), 0644))

	_, err = LoadConfig(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading "+path)
}
