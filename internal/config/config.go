// Package config loads CLI settings from an HCL file, a .env file and the
// environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/joho/godotenv"

	"github.com/lox/holdem/internal/game"
)

// DefaultFile is the config file read when none is given.
const DefaultFile = "holdem.hcl"

// Environment variables that override the file.
const (
	EnvLogLevel    = "HOLDEM_LOG_LEVEL"
	EnvStore       = "HOLDEM_STORE"
	EnvStoreDir    = "HOLDEM_STORE_DIR"
	EnvDatabaseURL = "HOLDEM_DATABASE_URL"
)

// Store backends.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

// Config is the complete CLI configuration.
type Config struct {
	LogLevel string          `hcl:"log_level,optional"`
	Store    *StoreConfig    `hcl:"store,block"`
	Table    *TableConfig    `hcl:"table,block"`
	Simulate *SimulateConfig `hcl:"simulate,block"`
}

// StoreConfig selects where hands are kept between commands.
type StoreConfig struct {
	Backend string `hcl:"backend,optional"`
	Dir     string `hcl:"dir,optional"`
	DSN     string `hcl:"dsn,optional"`
}

// TableConfig holds defaults for new hands.
type TableConfig struct {
	Seats int `hcl:"seats,optional"`
	Stack int `hcl:"stack,optional"`
}

// SimulateConfig holds defaults for the simulate command.
type SimulateConfig struct {
	Hands   int   `hcl:"hands,optional"`
	Workers int   `hcl:"workers,optional"`
	Seed    int64 `hcl:"seed,optional"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Store == nil {
		c.Store = &StoreConfig{}
	}
	if c.Store.Backend == "" {
		c.Store.Backend = BackendFile
	}
	if c.Store.Dir == "" {
		c.Store.Dir = ".holdem/hands"
	}
	if c.Table == nil {
		c.Table = &TableConfig{}
	}
	if c.Table.Seats == 0 {
		c.Table.Seats = 6
	}
	if c.Table.Stack == 0 {
		c.Table.Stack = 100
	}
	if c.Simulate == nil {
		c.Simulate = &SimulateConfig{}
	}
	if c.Simulate.Hands == 0 {
		c.Simulate.Hands = 1000
	}
	if c.Simulate.Workers == 0 {
		c.Simulate.Workers = 4
	}
}

// Load reads filename. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var c Config
	if diags := gohcl.DecodeBody(file.Body, nil, &c); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	c.applyDefaults()
	return &c, nil
}

// LoadDotEnv loads variables from the given .env files, or ".env" when none
// are given, without overriding the existing environment. Missing files are
// ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides settings from environment variables found by lookup,
// usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvStore); ok && v != "" {
		c.Store.Backend = v
	}
	if v, ok := lookup(EnvStoreDir); ok && v != "" {
		c.Store.Dir = v
	}
	if v, ok := lookup(EnvDatabaseURL); ok && v != "" {
		c.Store.DSN = v
	}
}

// Level returns the parsed log level, falling back to info.
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Validate checks the configuration for values the CLI cannot use.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}

	switch c.Store.Backend {
	case BackendMemory:
	case BackendFile:
		if c.Store.Dir == "" {
			return errors.New("file store needs a dir")
		}
	case BackendPostgres:
		if c.Store.DSN == "" {
			return fmt.Errorf("postgres store needs a dsn or %s", EnvDatabaseURL)
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}

	if c.Table.Seats < game.MinSeats || c.Table.Seats > game.MaxSeats {
		return fmt.Errorf("table seats must be between %d and %d, got %d", game.MinSeats, game.MaxSeats, c.Table.Seats)
	}
	if c.Table.Stack < 0 {
		return fmt.Errorf("table stack must not be negative, got %d", c.Table.Stack)
	}
	if c.Simulate.Hands <= 0 {
		return fmt.Errorf("simulate hands must be positive, got %d", c.Simulate.Hands)
	}
	if c.Simulate.Workers <= 0 {
		return fmt.Errorf("simulate workers must be positive, got %d", c.Simulate.Workers)
	}
	return nil
}
