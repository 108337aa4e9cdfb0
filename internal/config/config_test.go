package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/lcaopt/internal/factors"
)

func TestDefault_IsValid(t *testing.T) {
	t.Setenv(EnvHome, t.TempDir())
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "table", cfg.Output.DefaultFormat)
	assert.Equal(t, 1, cfg.Optimize.Parallelism)
}

func TestNew_LoadsFileAndEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvHome, home)
	t.Chdir(t.TempDir())

	yamlData := "output:\n  default_format: json\n  co2_unit: t\noptimize:\n  parallelism: 4\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(yamlData), 0o600))
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvParallelism, "8")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output.DefaultFormat)
	assert.Equal(t, "t", cfg.Output.CO2Unit)
	assert.Equal(t, 8, cfg.Optimize.Parallelism)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, filepath.Join(home, "config.yaml"), cfg.Path())
}

func TestNew_DotEnv(t *testing.T) {
	t.Setenv(EnvHome, t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(EnvStorePath, "")
	require.NoError(t, os.Unsetenv(EnvStorePath))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LCAOPT_STORE_PATH=/tmp/from-dotenv.db\n"), 0o600))

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-dotenv.db", cfg.Store.Path)
}

func TestApplyEnv_BadParallelism(t *testing.T) {
	t.Setenv(EnvParallelism, "many")
	err := Default().ApplyEnv()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mod     func(*Config)
		wantMsg string
	}{
		{"format", func(c *Config) { c.Output.DefaultFormat = "xml" }, "output.default_format"},
		{"unit", func(c *Config) { c.Output.CO2Unit = "stone" }, "output.co2_unit"},
		{"level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
		{"parallelism", func(c *Config) { c.Optimize.Parallelism = 0 }, "optimize.parallelism"},
		{"batch size", func(c *Config) { c.Batch.BatchSize = 5000 }, "batch.batch_size"},
		{"store", func(c *Config) { c.Store.Path = "" }, "store.path"},
		{"factors", func(c *Config) { c.Factors.Require = ">= 9.0.0" }, "factors.require"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mod(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}

	t.Run("reports every problem", func(t *testing.T) {
		cfg := Default()
		cfg.Output.DefaultFormat = "xml"
		cfg.Batch.Concurrency = 0
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "output.default_format")
		assert.Contains(t, err.Error(), "batch.concurrency")
	})

	t.Run("satisfied constraint", func(t *testing.T) {
		cfg := Default()
		cfg.Factors.Require = "^" + factors.DatasetVersion
		assert.NoError(t, cfg.Validate())
	})
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Impute.Seed = 99
	require.NoError(t, cfg.Save(path))

	loaded := &Config{}
	require.NoError(t, loaded.LoadFrom(path))
	assert.Equal(t, uint64(99), loaded.Impute.Seed)
	assert.Equal(t, cfg.Store, loaded.Store)
}

func TestShallowMergeYAML(t *testing.T) {
	overlay := filepath.Join(t.TempDir(), "overlay.yaml")
	require.NoError(t, os.WriteFile(overlay, []byte("logging:\n  level: warn\nunknown:\n  x: 1\n"), 0o600))

	cfg := Default()
	cfg.Optimize.Parallelism = 3
	require.NoError(t, ShallowMergeYAML(cfg, overlay))

	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Empty(t, cfg.Logging.Format, "section is replaced, not merged")
	assert.Equal(t, 3, cfg.Optimize.Parallelism)

	assert.Error(t, ShallowMergeYAML(nil, overlay))
	assert.Error(t, ShallowMergeYAML(cfg, filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestToLoggingConfig(t *testing.T) {
	lc := LoggingConfig{Level: "debug", Format: "console"}.ToLoggingConfig()
	assert.Equal(t, "stderr", lc.Output)

	lc = LoggingConfig{File: "/tmp/x.log"}.ToLoggingConfig()
	assert.Equal(t, "file", lc.Output)
	assert.Equal(t, "/tmp/x.log", lc.File)
}

func TestGlobalConfig(t *testing.T) {
	SetGlobalConfig(nil)
	assert.NotNil(t, GetGlobalConfig())

	cfg := Default()
	cfg.Output.DefaultFormat = "ndjson"
	SetGlobalConfig(cfg)
	t.Cleanup(func() { SetGlobalConfig(nil) })
	assert.Equal(t, "ndjson", GetGlobalConfig().Output.DefaultFormat)
}
