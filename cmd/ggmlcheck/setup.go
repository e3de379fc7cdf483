package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/ggmlcheck/internal/logger"
)

// setup loads the config file and installs the logger on the context.
func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := LoadConfig(configFile)
	if err != nil {
		return ctx, cli.Exit("error: "+err.Error(), 2)
	}
	appConfig = cfg
	applyLoggingConfig(cmd, cfg)

	format, err := logger.ParseFormat(logFormat)
	if err != nil {
		return ctx, cli.Exit("error: "+err.Error(), 2)
	}
	level := logger.ParseLevel(logLevel)
	if debug {
		level = slog.LevelDebug
	}

	log := logger.Setup(logger.Options{
		Writer: os.Stderr,
		Level:  level,
		Format: format,
		Color:  useColor(os.Stderr),
	})
	return logger.WithContext(ctx, log), nil
}

func useColor(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return isTerminal(f)
}
