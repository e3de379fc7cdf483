package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the ggmlcheck configuration file
// (~/.config/ggmlcheck/config.yaml). Pointer fields distinguish "not set"
// from zero values.
type Config struct {
	ModelsDir string `yaml:"models_dir"`

	// Output
	Format       string `yaml:"format"`
	Indent       *bool  `yaml:"indent"`
	Extended     *bool  `yaml:"extended"`
	IgnoreErrors *bool  `yaml:"ignore_errors"`
	Jobs         *int   `yaml:"jobs"`

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Server
	ServerAddress string `yaml:"server_address"`
	ServerRoot    string `yaml:"server_root"`
}

// appConfig is populated by setup before any command runs.
var appConfig Config

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "ggmlcheck", "config.yaml")
}

// LoadConfig reads the config file at path. A missing default file yields a
// zero Config; a missing explicit file or malformed YAML is an error.
func LoadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
		if path == "" {
			return Config{}, nil
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// applyOutputConfig applies config defaults to output options whose flags
// were not set explicitly.
func applyOutputConfig(c *cli.Command, cfg Config, o *outputOptions) {
	if cfg.Format != "" && !c.IsSet("format") {
		o.format = cfg.Format
	}
	if cfg.Indent != nil && !c.IsSet("indent") {
		o.indent = *cfg.Indent
	}
	if cfg.Extended != nil && !c.IsSet("extended") {
		o.extended = *cfg.Extended
	}
	if cfg.IgnoreErrors != nil && !c.IsSet("ignore-errors") {
		o.ignoreErrors = *cfg.IgnoreErrors
	}
	if cfg.Jobs != nil && !c.IsSet("jobs") {
		o.jobs = *cfg.Jobs
	}
}

// applyLoggingConfig applies config defaults to the global logging flags.
func applyLoggingConfig(c *cli.Command, cfg Config) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

// applyServeConfig applies config defaults to serve command variables.
func applyServeConfig(c *cli.Command, cfg Config, addr, root *string, jobs *int) {
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
	if !c.IsSet("root") {
		switch {
		case cfg.ServerRoot != "":
			*root = cfg.ServerRoot
		case *root == "" && cfg.ModelsDir != "":
			*root = cfg.ModelsDir
		}
	}
	if cfg.Jobs != nil && !c.IsSet("jobs") {
		*jobs = *cfg.Jobs
	}
}
