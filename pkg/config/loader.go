package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ajitpratap0/tabular/pkg/errors"
)

// Load reads a configuration file (YAML or JSON) into a Config, applying
// defaults first and TABULAR_* environment overrides last. An empty path
// loads defaults plus environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TABULAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := New()
	v.SetDefault("profile.batch_size", defaults.Profile.BatchSize)
	v.SetDefault("profile.mfv_size", defaults.Profile.MFVSize)
	v.SetDefault("profile.histogram_bins", defaults.Profile.HistogramBins)
	v.SetDefault("profile.sketch_size", defaults.Profile.SketchSize)
	v.SetDefault("profile.workers", defaults.Profile.Workers)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("export.format", defaults.Export.Format)
	v.SetDefault("export.compression", defaults.Export.Compression)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, errors.ErrorTypeConfig, "failed to read config file %s", path)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to decode configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes a configuration to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeConfig, "failed to marshal configuration")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, errors.ErrorTypeIO, "failed to write config file %s", path)
	}

	return nil
}
