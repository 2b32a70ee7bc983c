// Package config provides the unified configuration system for Tabular.
// It defines a single Config structure covering the profiling engine,
// logging and export settings, with defaults, validation, and file plus
// environment loading.
//
// Example usage:
//
//	cfg := config.New()
//	cfg.Profile.BatchSize = 50000
//
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config

import (
	"runtime"

	"github.com/ajitpratap0/tabular/pkg/errors"
)

// Config is the top-level configuration structure.
type Config struct {
	// Profile controls the profiling engine
	Profile ProfileConfig `yaml:"profile" json:"profile" mapstructure:"profile"`

	// Logging controls structured log output
	Logging LoggingConfig `yaml:"logging" json:"logging" mapstructure:"logging"`

	// Export controls profile export output
	Export ExportConfig `yaml:"export" json:"export" mapstructure:"export"`
}

// ProfileConfig contains the profiling engine settings.
type ProfileConfig struct {
	// BatchSize is the number of rows profiled per batch. Batch size has
	// no correctness impact, only sketch and histogram granularity.
	BatchSize int `yaml:"batch_size" json:"batch_size" mapstructure:"batch_size"`
	// MFVSize bounds the most-frequent-value list per column
	MFVSize int `yaml:"mfv_size" json:"mfv_size" mapstructure:"mfv_size"`
	// HistogramBins bounds the streaming histogram bin count
	HistogramBins int `yaml:"histogram_bins" json:"histogram_bins" mapstructure:"histogram_bins"`
	// SketchSize is K for the k-minimum-values distinct sketch
	SketchSize int `yaml:"sketch_size" json:"sketch_size" mapstructure:"sketch_size"`
	// Workers is the number of concurrent batch profilers
	Workers int `yaml:"workers" json:"workers" mapstructure:"workers"`
}

// LoggingConfig contains log output settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level" json:"level" mapstructure:"level"`
	// Format is json or console
	Format string `yaml:"format" json:"format" mapstructure:"format"`
}

// ExportConfig contains profile export settings.
type ExportConfig struct {
	// Format is one of json, csv, ascii
	Format string `yaml:"format" json:"format" mapstructure:"format"`
	// Compression is one of none, gzip, zstd, lz4, s2, snappy
	Compression string `yaml:"compression" json:"compression" mapstructure:"compression"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Profile: ProfileConfig{
			BatchSize:     25000,
			MFVSize:       32,
			HistogramBins: 50,
			SketchSize:    32,
			Workers:       runtime.NumCPU(),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Export: ExportConfig{
			Format:      "ascii",
			Compression: "none",
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Profile.BatchSize <= 0 {
		return errors.Newf(errors.ErrorTypeConfig, "batch_size must be positive, got %d", c.Profile.BatchSize)
	}
	if c.Profile.MFVSize <= 0 {
		return errors.Newf(errors.ErrorTypeConfig, "mfv_size must be positive, got %d", c.Profile.MFVSize)
	}
	if c.Profile.HistogramBins < 2 {
		return errors.Newf(errors.ErrorTypeConfig, "histogram_bins must be at least 2, got %d", c.Profile.HistogramBins)
	}
	if c.Profile.SketchSize < 2 {
		return errors.Newf(errors.ErrorTypeConfig, "sketch_size must be at least 2, got %d", c.Profile.SketchSize)
	}
	if c.Profile.Workers <= 0 {
		return errors.Newf(errors.ErrorTypeConfig, "workers must be positive, got %d", c.Profile.Workers)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.Newf(errors.ErrorTypeConfig, "unknown log level %q", c.Logging.Level)
	}

	switch c.Export.Format {
	case "json", "csv", "ascii":
	default:
		return errors.Newf(errors.ErrorTypeConfig, "unknown export format %q", c.Export.Format)
	}

	switch c.Export.Compression {
	case "none", "gzip", "zstd", "lz4", "s2", "snappy":
	default:
		return errors.Newf(errors.ErrorTypeConfig, "unknown compression %q", c.Export.Compression)
	}

	return nil
}
