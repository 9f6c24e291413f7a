package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/vectorize/pkg/vectorize/internalerr"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.True(t, cfg.Lowercase)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, FormatAuto, cfg.Format)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "vectorize.yaml", `
lowercase: false
workers: 4
format: json
store:
  driver: sqlite
  path: /tmp/runs.db
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.Lowercase)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.Equal(t, "/tmp/runs.db", cfg.Store.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "vectorize.toml", `
workers = 2
format = "table"

[store]
driver = "memory"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Lowercase, "missing keys keep defaults")
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, FormatTable, cfg.Format)
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
}

func TestLoadPartialYAMLKeepsDefaults(t *testing.T) {
	path := writeFile(t, "partial.yml", "workers: 3\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Workers)
	assert.True(t, cfg.Lowercase)
	assert.Equal(t, "vectorize.db", cfg.Store.Path)
}

func TestLoadNonExistent(t *testing.T) {
	_, err := Load("/nonexistent/vectorize.yaml")
	assert.Error(t, err)
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeFile(t, "vectorize.ini", "workers=1")

	_, err := Load(path)
	assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)
}

func TestLoadMalformed(t *testing.T) {
	path := writeFile(t, "bad.yaml", "workers: [1, 2\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadInvalidValues(t *testing.T) {
	path := writeFile(t, "bad-format.yaml", "format: xml\n")

	_, err := Load(path)
	assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad format", func(c *Config) { c.Format = "xml" }},
		{"negative workers", func(c *Config) { c.Workers = -1 }},
		{"unknown driver", func(c *Config) { c.Store.Driver = "postgres" }},
		{"sqlite without path", func(c *Config) { c.Store.Path = " " }},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), internalerr.ErrInvalidConfig)
		})
	}
}
