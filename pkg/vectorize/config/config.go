package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/vectorize/pkg/vectorize/internalerr"
)

// Output formats understood by the CLI.
const (
	FormatAuto  = "auto"
	FormatTable = "table"
	FormatJSON  = "json"
)

// Store drivers.
const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Config represents the vectorizer configuration
type Config struct {
	Lowercase bool        `yaml:"lowercase" toml:"lowercase"`
	Workers   int         `yaml:"workers" toml:"workers"`
	Format    string      `yaml:"format" toml:"format"`
	Store     StoreConfig `yaml:"store" toml:"store"`
	Log       LogConfig   `yaml:"log" toml:"log"`
}

// StoreConfig selects where fitted runs are saved
type StoreConfig struct {
	Driver string `yaml:"driver" toml:"driver"`
	Path   string `yaml:"path" toml:"path"`
}

// LogConfig controls logging
type LogConfig struct {
	Level string `yaml:"level" toml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Lowercase: true,
		Workers:   1,
		Format:    FormatAuto,
		Store: StoreConfig{
			Driver: DriverSQLite,
			Path:   "vectorize.db",
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads a YAML or TOML file, chosen by extension, on top of Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("unsupported config extension %q: %w", filepath.Ext(path), internalerr.ErrInvalidConfig)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values
func (c *Config) Validate() error {
	switch c.Format {
	case FormatAuto, FormatTable, FormatJSON:
	default:
		return fmt.Errorf("format %q: %w", c.Format, internalerr.ErrInvalidConfig)
	}

	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative: %w", internalerr.ErrInvalidConfig)
	}

	switch c.Store.Driver {
	case DriverSQLite:
		if strings.TrimSpace(c.Store.Path) == "" {
			return fmt.Errorf("sqlite store needs a path: %w", internalerr.ErrInvalidConfig)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("store driver %q: %w", c.Store.Driver, internalerr.ErrInvalidConfig)
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log level %q: %w", c.Log.Level, internalerr.ErrInvalidConfig)
	}

	return nil
}
