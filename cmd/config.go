package cmd

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"wabbit/common"
	"wabbit/report"
	"wabbit/util"
	"wabbit/vm"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

// Config is the contents of a `wabbit.toml` file.
type Config struct {
	Report  ReportConfig  `toml:"report"`
	Machine MachineConfig `toml:"machine"`
}

// ReportConfig configures diagnostic output.
type ReportConfig struct {
	LogLevel string `toml:"log-level"`
}

// MachineConfig configures the register machine.
type MachineConfig struct {
	// The memory limit of the machine and the memory size of exported LLVM
	// modules.  Zero means unbounded when running and the exporter's default
	// when exporting.
	MemorySize int `toml:"memory-size"`
	MaxFrames  int `toml:"max-frames"`
}

// logLevelNames lists the valid log levels in increasing verbosity.
var logLevelNames = []string{"silent", "error", "warn", "verbose"}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Report: ReportConfig{LogLevel: "verbose"},
	}
}

// LoadConfig loads the config file in the given directory.  If there is no
// config file, the default configuration is returned.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, common.WabbitConfigFileName)

	buff, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}

		return nil, errors.Wrapf(err, "reading %s", path)
	}

	config, err := ParseConfig(buff)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}

	return config, nil
}

// ParseConfig parses and validates the contents of a config file.  Fields
// missing from the file take their default values.
func ParseConfig(buff []byte) (*Config, error) {
	config := &Config{}
	if err := toml.Unmarshal(buff, config); err != nil {
		return nil, err
	}

	defaults := DefaultConfig()
	if config.Report.LogLevel == "" {
		config.Report.LogLevel = defaults.Report.LogLevel
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// validate checks that all configured values are in range.
func (c *Config) validate() error {
	if !util.Contains(logLevelNames, c.Report.LogLevel) {
		return errors.Errorf("invalid log level: `%s`", c.Report.LogLevel)
	}

	if c.Machine.MemorySize < 0 {
		return errors.Errorf("memory size cannot be negative but got %d", c.Machine.MemorySize)
	}

	if c.Machine.MaxFrames < 0 {
		return errors.Errorf("frame limit cannot be negative but got %d", c.Machine.MaxFrames)
	}

	return nil
}

// machineConfig returns the register machine configuration.
func (c *Config) machineConfig() vm.Config {
	return vm.Config{
		MemorySize: c.Machine.MemorySize,
		MaxFrames:  c.Machine.MaxFrames,
	}
}

// logLevel returns the configured log level.
func (c *Config) logLevel() int {
	return report.LogLevelByName(c.Report.LogLevel)
}
