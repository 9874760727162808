package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Gridpath holds all configuration for the gridpath tool.
type Gridpath struct {
	// Logging: debug, info, warn, error
	LogLevel string `yaml:"log_level"`

	// Grid file in the text format of grid.Parse
	GridFile string `yaml:"grid_file"`

	Search SearchConfig `yaml:"search"`

	// Batch queries run by "gridpath solve" when no endpoints are given
	Queries []QueryConfig `yaml:"queries"`

	// Route cache
	Database DatabaseConfig `yaml:"database"`
}

// SearchConfig tunes the path finder.
type SearchConfig struct {
	Workers       int  `yaml:"workers"`        // batch parallelism, 0 = one goroutine per query
	MaxExpansions int  `yaml:"max_expansions"` // 0 = unlimited
	BoundsCheck   bool `yaml:"bounds_check"`
}

// Point is a grid coordinate in config files.
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// QueryConfig is one start/end pair.
type QueryConfig struct {
	Start Point `yaml:"start"`
	End   Point `yaml:"end"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Default returns Gridpath config with sensible defaults.
func Default() Gridpath {
	return Gridpath{
		LogLevel: "info",
		GridFile: "grids/sample.txt",
		Search: SearchConfig{
			Workers: 4,
		},
		Database: DatabaseConfig{
			Enabled:  false,
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "gridpath",
			Password: "gridpath",
			DBName:   "gridpath",
			SSLMode:  "disable",
		},
	}
}

// Load loads config from a YAML file.
// If the file doesn't exist, returns defaults.
func Load(path string) (Gridpath, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks value ranges.
func (c Gridpath) Validate() error {
	var errs []error
	if c.Search.Workers < 0 {
		errs = append(errs, fmt.Errorf("search.workers must be >= 0, got %d", c.Search.Workers))
	}
	if c.Search.MaxExpansions < 0 {
		errs = append(errs, fmt.Errorf("search.max_expansions must be >= 0, got %d", c.Search.MaxExpansions))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// SlogLevel parses LogLevel.
func (c Gridpath) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}
