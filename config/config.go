// Package config holds the settings for residue tables and logging. Settings
// start from Default, may be decoded from YAML and may be overridden by
// environment variables prefixed with PDBRES_.
package config

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable read by ApplyEnv.
const EnvPrefix = "PDBRES_"

var ErrInvalidConfig = errors.New("invalid config")

// Residues configures how a residue code table is built.
type Residues struct {
	// upper-case codes before looking them up
	FoldCase bool `yaml:"fold_case"`

	// include selenocysteine (SEC/U) and pyrrolysine (PYL/O)
	NonStandard bool `yaml:"non_standard"`

	// map common modified residues (MSE, CSA, ...) to their parent residue
	Modified bool `yaml:"modified"`

	// sentinels returned when a code has no mapping
	Unknown      string `yaml:"unknown"`
	UnknownThree string `yaml:"unknown_three"`

	// additional three-letter to one-letter pairs
	Extra map[string]string `yaml:"extra"`
}

// Log configures the process logger.
type Log struct {
	// one of panic, fatal, error, warn, info, debug or trace
	Level string `yaml:"level"`

	// when set, logs are also written to this file with rotation
	File string `yaml:"file"`
}

// Config is the root-level settings struct.
type Config struct {
	Residues Residues `yaml:"residues"`
	Log      Log      `yaml:"log"`
}

// Default returns the settings used when nothing else is configured. They
// produce the standard 20 residue table with '?' and "???" sentinels.
func Default() *Config {
	return &Config{
		Residues: Residues{
			Unknown:      "?",
			UnknownThree: "???",
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads all of r and hands it to Parse.
func Load(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config")
	}
	return Parse(data)
}

// ApplyEnv overrides settings from PDBRES_FOLD_CASE, PDBRES_NON_STANDARD,
// PDBRES_MODIFIED, PDBRES_UNKNOWN, PDBRES_UNKNOWN_THREE, PDBRES_LOG_LEVEL and
// PDBRES_LOG_FILE.
// Unset variables leave the current value alone.
func (c *Config) ApplyEnv() error {
	bools := []struct {
		name string
		dst  *bool
	}{
		{"FOLD_CASE", &c.Residues.FoldCase},
		{"NON_STANDARD", &c.Residues.NonStandard},
		{"MODIFIED", &c.Residues.Modified},
	}
	for _, b := range bools {
		v, ok := os.LookupEnv(EnvPrefix + b.name)
		if !ok {
			continue
		}
		parsed, err := cast.ToBoolE(v)
		if err != nil {
			return errors.Wrapf(ErrInvalidConfig, "%s%s=%q is not a boolean",
				EnvPrefix, b.name, v)
		}
		*b.dst = parsed
	}

	strs := []struct {
		name string
		dst  *string
	}{
		{"UNKNOWN", &c.Residues.Unknown},
		{"UNKNOWN_THREE", &c.Residues.UnknownThree},
		{"LOG_LEVEL", &c.Log.Level},
		{"LOG_FILE", &c.Log.File},
	}
	for _, s := range strs {
		if v, ok := os.LookupEnv(EnvPrefix + s.name); ok {
			*s.dst = v
		}
	}
	return c.Validate()
}

// Validate checks sentinel and extra pair lengths and the log level.
func (c *Config) Validate() error {
	r := c.Residues
	if len(r.Unknown) != 1 {
		return errors.Wrapf(ErrInvalidConfig,
			"unknown sentinel %q must be a single character", r.Unknown)
	}
	if len(r.UnknownThree) != 3 {
		return errors.Wrapf(ErrInvalidConfig,
			"unknown_three sentinel %q must be three characters", r.UnknownThree)
	}
	for three, one := range r.Extra {
		if len(three) != 3 || len(one) != 1 {
			return errors.Wrapf(ErrInvalidConfig,
				"extra residue %q: %q is not a three-letter to one-letter pair",
				three, one)
		}
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "log level: %s", err)
	}
	return nil
}
