// Package config loads pyimports configuration from file, environment, and
// defaults.
package config

import (
	"errors"
	"fmt"
)

// Defaults.
const (
	DefaultFormat  = "text"
	DefaultWorkers = 1
)

// Validation errors.
var (
	// ErrBadFormat is returned for output formats outside text, json, yaml.
	ErrBadFormat = errors.New("unknown output format")
	// ErrBadWorkers is returned for nonpositive worker counts.
	ErrBadWorkers = errors.New("workers must be positive")
)

// Config is the top-level configuration struct for pyimports.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Format            string `mapstructure:"format"`
	Workers           int    `mapstructure:"workers"`
	ExcludeCatalog    bool   `mapstructure:"exclude_catalog"`
	CatalogFile       string `mapstructure:"catalog_file"`
	ChartFile         string `mapstructure:"chart_file"`
	ValidateNotebooks bool   `mapstructure:"validate_notebooks"`
}

// Validate checks cross-field constraints after loading.
func (c *Config) Validate() error {
	switch c.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("%w: %s", ErrBadFormat, c.Format)
	}

	if c.Workers < 1 {
		return fmt.Errorf("%w: %d", ErrBadWorkers, c.Workers)
	}

	return nil
}
