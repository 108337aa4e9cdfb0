// Package config loads lcaopt settings from ~/.lcaopt/config.yaml, an optional
// overlay file, a .env file and LCAOPT_* environment variables, in that order
// of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rshade/lcaopt/internal/factors"
)

// Environment variables that override file settings.
const (
	EnvHome         = "LCAOPT_HOME"
	EnvLogLevel     = "LCAOPT_LOG_LEVEL"
	EnvLogFormat    = "LCAOPT_LOG_FORMAT"
	EnvOutputFormat = "LCAOPT_OUTPUT_FORMAT"
	EnvStorePath    = "LCAOPT_STORE_PATH"
	EnvParallelism  = "LCAOPT_PARALLELISM"
)

const (
	configFileName  = "config.yaml"
	defaultDirName  = ".lcaopt"
	outputTypeFile  = "file"
	maxParallelism  = 64
	maxBatchSize    = 1000
	dirPermissions  = 0o750
	filePermissions = 0o600
)

// Supported output formats and CO2 display units.
//
//nolint:gochecknoglobals // Read-only option sets.
var (
	OutputFormats = []string{"table", "json", "ndjson"}
	CO2Units      = []string{"g", "kg", "t", "lb"}
	logLevels     = []string{"trace", "debug", "info", "warn", "error"}
	logFormats    = []string{"json", "console"}
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// OutputConfig controls rendering.
type OutputConfig struct {
	DefaultFormat string `json:"default_format" yaml:"default_format"`
	CO2Unit       string `json:"co2_unit" yaml:"co2_unit"`
}

// LoggingConfig controls the zerolog logger.
type LoggingConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
	File   string `json:"file,omitempty" yaml:"file,omitempty"`
}

// OptimizeConfig controls the optimization search.
type OptimizeConfig struct {
	Parallelism int `json:"parallelism" yaml:"parallelism"`
}

// BatchConfig controls batch labelling.
type BatchConfig struct {
	BatchSize   int `json:"batch_size" yaml:"batch_size"`
	Concurrency int `json:"concurrency" yaml:"concurrency"`
}

// StoreConfig locates the scenario database.
type StoreConfig struct {
	Path string `json:"path" yaml:"path"`
}

// FactorsConfig pins the factor dataset.
type FactorsConfig struct {
	// Require is a semver constraint the compiled-in dataset must satisfy.
	Require string `json:"require,omitempty" yaml:"require,omitempty"`
}

// ImputeConfig controls the smart filler.
type ImputeConfig struct {
	// Seed makes imputation reproducible. Zero draws a random seed.
	Seed uint64 `json:"seed" yaml:"seed"`
}

// Config is the full lcaopt configuration.
type Config struct {
	Output   OutputConfig   `json:"output" yaml:"output"`
	Logging  LoggingConfig  `json:"logging" yaml:"logging"`
	Optimize OptimizeConfig `json:"optimize" yaml:"optimize"`
	Batch    BatchConfig    `json:"batch" yaml:"batch"`
	Store    StoreConfig    `json:"store" yaml:"store"`
	Factors  FactorsConfig  `json:"factors" yaml:"factors"`
	Impute   ImputeConfig   `json:"impute" yaml:"impute"`

	configPath string
}

//nolint:gochecknoglobals // Process-wide configuration, loaded once per invocation.
var (
	globalConfig *Config
	globalMu     sync.RWMutex
)

// HomeDir returns the lcaopt data directory ($LCAOPT_HOME or ~/.lcaopt).
func HomeDir() string {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultDirName
	}
	return filepath.Join(home, defaultDirName)
}

// DefaultPath is the location of the global config file.
func DefaultPath() string {
	return filepath.Join(HomeDir(), configFileName)
}

// Default returns the built-in configuration.
func Default() *Config {
	home := HomeDir()
	return &Config{
		Output:   OutputConfig{DefaultFormat: "table", CO2Unit: "kg"},
		Logging:  LoggingConfig{Level: "info", Format: "json", File: filepath.Join(home, "logs", "lcaopt.log")},
		Optimize: OptimizeConfig{Parallelism: 1},
		Batch:    BatchConfig{BatchSize: 100, Concurrency: 4},
		Store:    StoreConfig{Path: filepath.Join(home, "scenarios.db")},
		Factors:  FactorsConfig{Require: ""},
		Impute:   ImputeConfig{Seed: 0},
	}
}

// New loads the global config file if it exists, then applies .env and
// environment overrides. A missing file is not an error.
func New() (*Config, error) {
	cfg := Default()
	cfg.configPath = DefaultPath()

	if _, err := os.Stat(cfg.configPath); err == nil {
		if err := cfg.LoadFrom(cfg.configPath); err != nil {
			return nil, err
		}
	}

	if err := LoadDotEnv(""); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFrom unmarshals a YAML file onto cfg.
func (c *Config) LoadFrom(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// Save writes cfg to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	c.configPath = path
	return nil
}

// Path is the file cfg was loaded from or last saved to.
func (c *Config) Path() string {
	return c.configPath
}

// LoadDotEnv loads a .env file into the process environment without
// overriding variables that are already set. An empty path means ./.env; a
// missing file is ignored.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv applies LCAOPT_* overrides.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvOutputFormat); v != "" {
		c.Output.DefaultFormat = v
	}
	if v := os.Getenv(EnvStorePath); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv(EnvParallelism); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, EnvParallelism, v)
		}
		c.Optimize.Parallelism = n
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	oneOf := func(field, value string, allowed []string) {
		for _, a := range allowed {
			if strings.EqualFold(a, value) {
				return
			}
		}
		errs = append(errs, fmt.Errorf("%s %q must be one of %s", field, value, strings.Join(allowed, ", ")))
	}

	oneOf("output.default_format", c.Output.DefaultFormat, OutputFormats)
	oneOf("output.co2_unit", c.Output.CO2Unit, CO2Units)
	oneOf("logging.level", c.Logging.Level, logLevels)
	oneOf("logging.format", c.Logging.Format, logFormats)

	if c.Optimize.Parallelism < 1 || c.Optimize.Parallelism > maxParallelism {
		errs = append(errs, fmt.Errorf("optimize.parallelism %d must be between 1 and %d",
			c.Optimize.Parallelism, maxParallelism))
	}
	if c.Batch.BatchSize < 1 || c.Batch.BatchSize > maxBatchSize {
		errs = append(errs, fmt.Errorf("batch.batch_size %d must be between 1 and %d", c.Batch.BatchSize, maxBatchSize))
	}
	if c.Batch.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("batch.concurrency %d must be at least 1", c.Batch.Concurrency))
	}
	if c.Store.Path == "" {
		errs = append(errs, errors.New("store.path must not be empty"))
	}
	if err := factors.CheckCompatible(c.Factors.Require); err != nil {
		errs = append(errs, fmt.Errorf("factors.require: %w", err))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// SetGlobalConfig installs cfg as the process-wide configuration.
func SetGlobalConfig(cfg *Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalConfig = cfg
}

// GetGlobalConfig returns the process-wide configuration, falling back to
// defaults when none was installed.
func GetGlobalConfig() *Config {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalConfig == nil {
		return Default()
	}
	return globalConfig
}
