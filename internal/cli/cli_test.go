package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/lcaopt/internal/config"
)

const referenceRecord = `{
  "materialType": "Iron Ore",
  "electricityKwh": 1200,
  "fuelType": "Natural Gas",
  "fuelMj": 1800,
  "transportMode": "Truck",
  "transportDistanceKm": 250,
  "landfillLocation": "Ghazipur Delhi",
  "recyclePercent": 20,
  "reusePercent": 10
}`

// testEnv points the CLI at a scratch home directory.
func testEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvOutputFormat, "")
	t.Setenv(config.EnvStorePath, "")
	t.Setenv(config.EnvLogLevel, "")
	t.Setenv(config.EnvParallelism, "")
	return home
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// runCLI executes the root command with args and returns stdout.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd("test")
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func decodeJSON[T any](t *testing.T, data string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(data), &v), data)
	return v
}

func TestRootCmd_Help(t *testing.T) {
	testEnv(t)

	out, err := runCLI(t, "", "--help")
	require.NoError(t, err)
	for _, name := range []string{"impact", "optimize", "recommend", "fill", "batch", "whatif", "factors", "scenario", "config"} {
		assert.Contains(t, out, name)
	}
}

func TestRootCmd_Version(t *testing.T) {
	testEnv(t)

	out, err := runCLI(t, "", "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "test")
}

func TestRootCmd_InvalidConfigFails(t *testing.T) {
	home := testEnv(t)
	writeFile(t, home, "config.yaml", "optimize:\n  parallelism: -4\n")
	input := writeFile(t, t.TempDir(), "record.json", referenceRecord)

	_, err := runCLI(t, "", "impact", "--input", input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading configuration")

	_, err = runCLI(t, "", "config", "show")
	assert.NoError(t, err, "config commands tolerate an invalid config")
}

func TestParseAssignments(t *testing.T) {
	got, err := parseAssignments([]string{"fuelType=Biomass", " transportMode = Rail "})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"fuelType": "Biomass", "transportMode": "Rail"}, got)

	tests := []struct {
		name  string
		items []string
		want  string
	}{
		{"missing equals", []string{"fuelType"}, "expected field=value"},
		{"empty key", []string{"=Rail"}, "field name cannot be empty"},
		{"value too large", []string{"fuelType=" + strings.Repeat("x", maxAssignValueLen+1)}, "value too large"},
		{"too many", make([]string, maxAssignments+1), "too many assignments"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseAssignments(tt.items)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
