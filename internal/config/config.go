// Package config resolves the run settings of meantimes from flags, an
// optional config file, and built-in defaults.
package config

import (
	"errors"
	"fmt"

	"github.com/mwiater/meantimes/internal/summary"
	"github.com/spf13/viper"
)

// Keys shared by viper, the config file, and the command-line flags.
const (
	KeyConfig       = "config"
	KeyFile         = "file"
	KeyOutput       = "output"
	KeyJobs         = "jobs"
	KeyDebug        = "debug"
	KeyPrograms     = "programs"
	KeyMeasurements = "measurements"
)

// Config holds everything a run needs.
type Config struct {
	File         string
	Output       string
	Programs     []string
	Measurements []string
	Jobs         int
	Debug        bool
}

// SetDefaults registers the built-in values on v.
func SetDefaults(v *viper.Viper) {
	labels := summary.DefaultLabels()
	v.SetDefault(KeyFile, "-")
	v.SetDefault(KeyOutput, "-")
	v.SetDefault(KeyPrograms, labels.Programs)
	v.SetDefault(KeyMeasurements, labels.Measurements)
	v.SetDefault(KeyJobs, 1)
	v.SetDefault(KeyDebug, false)
}

// Load reads the config file named by the "config" key, if any, and returns
// the validated result. Flags bound to v take precedence over the file.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	if path := v.GetString(KeyConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("could not read config file %q: %w", path, err)
		}
	}

	cfg := &Config{
		File:         v.GetString(KeyFile),
		Output:       v.GetString(KeyOutput),
		Programs:     v.GetStringSlice(KeyPrograms),
		Measurements: v.GetStringSlice(KeyMeasurements),
		Jobs:         v.GetInt(KeyJobs),
		Debug:        v.GetBool(KeyDebug),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the label lists can produce a well-formed table.
func (c *Config) Validate() error {
	if len(c.Programs) == 0 {
		return errors.New("config must contain at least one program")
	}
	if len(c.Measurements) == 0 {
		return errors.New("config must contain at least one measurement")
	}
	if err := checkLabels(KeyPrograms, c.Programs); err != nil {
		return err
	}
	if err := checkLabels(KeyMeasurements, c.Measurements); err != nil {
		return err
	}
	for _, m := range c.Measurements {
		if m == summary.ProgramColumn {
			return fmt.Errorf("%q cannot be used as a measurement", m)
		}
	}
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", c.Jobs)
	}
	return nil
}

func checkLabels(kind string, labels []string) error {
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		if l == "" {
			return fmt.Errorf("%s must not contain an empty label", kind)
		}
		if _, dup := seen[l]; dup {
			return fmt.Errorf("%s contains %q more than once", kind, l)
		}
		seen[l] = struct{}{}
	}
	return nil
}

// Labels returns the program and measurement labels for aggregation.
func (c *Config) Labels() summary.Labels {
	return summary.Labels{Programs: c.Programs, Measurements: c.Measurements}
}

// Options returns the aggregation options.
func (c *Config) Options() summary.Options {
	return summary.Options{Jobs: c.Jobs}
}
