package main

import (
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/ggmlcheck/internal/report"
)

const (
	envConfig    = "GGMLCHECK_CONFIG"
	envModelsDir = "GGMLCHECK_MODELS_DIR"
)

var (
	configFile string
	logLevel   string
	logFormat  string
	debug      bool
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to config.yaml",
			Sources:     cli.EnvVars(envConfig),
			Destination: &configFile,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "warn",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
	}
}

// outputOptions are shared by every command that prints header reports.
type outputOptions struct {
	format       string
	indent       bool
	extended     bool
	ignoreErrors bool
	jobs         int
}

func outputFlags(o *outputOptions) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       "output format (text, json, yaml, table)",
			Value:       string(report.StyleText),
			Destination: &o.format,
		},
		&cli.BoolFlag{
			Name:        "indent",
			Usage:       "indent structured output",
			Destination: &o.indent,
		},
		&cli.BoolFlag{
			Name:        "extended",
			Aliases:     []string{"x"},
			Usage:       "also decode hyperparameters (implied by structured formats)",
			Destination: &o.extended,
		},
		&cli.BoolFlag{
			Name:        "ignore-errors",
			Aliases:     []string{"q"},
			Usage:       "skip files that cannot be checked without reporting them",
			Destination: &o.ignoreErrors,
		},
		&cli.IntFlag{
			Name:        "jobs",
			Aliases:     []string{"j"},
			Usage:       "number of files to check concurrently (0 = GOMAXPROCS)",
			Destination: &o.jobs,
		},
	}
}

// localFlags keeps flags from propagating to subcommands.
func localFlags(flags []cli.Flag) []cli.Flag {
	for _, f := range flags {
		switch f := f.(type) {
		case *cli.StringFlag:
			f.Local = true
		case *cli.BoolFlag:
			f.Local = true
		case *cli.IntFlag:
			f.Local = true
		}
	}
	return flags
}
