package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/ggmlcheck/internal/logger"
	"github.com/samcharles93/ggmlcheck/internal/resolve"
)

func scanCmd() *cli.Command {
	var (
		opts      outputOptions
		recursive bool
	)

	return &cli.Command{
		Name:      "scan",
		Aliases:   []string{"ls"},
		Usage:     "Check every file in a models directory",
		ArgsUsage: "[DIR]",
		Flags: append(outputFlags(&opts),
			&cli.BoolFlag{
				Name:        "recursive",
				Aliases:     []string{"r"},
				Usage:       "descend into subdirectories",
				Destination: &recursive,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			applyOutputConfig(cmd, appConfig, &opts)
			log := logger.FromContext(ctx)

			dir := modelsDir(cmd.Args().First(), appConfig)
			if dir == "" {
				return cli.Exit("error: DIR is required unless "+envModelsDir+" or models_dir is set", 2)
			}

			files, err := resolve.Discover(dir, recursive)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			if len(files) == 0 {
				log.Info("no files found", "path", dir)
				return nil
			}
			return runCheck(ctx, files, opts, cmd.Root().Writer, cmd.Root().ErrWriter)
		},
	}
}

// modelsDir picks the scan directory: argument, then environment, then config.
func modelsDir(arg string, cfg Config) string {
	if dir := strings.TrimSpace(arg); dir != "" {
		return dir
	}
	if dir := strings.TrimSpace(os.Getenv(envModelsDir)); dir != "" {
		return dir
	}
	return strings.TrimSpace(cfg.ModelsDir)
}
