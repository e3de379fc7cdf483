package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/ggmlcheck/internal/batch"
	"github.com/samcharles93/ggmlcheck/internal/logger"
	"github.com/samcharles93/ggmlcheck/internal/report"
)

func checkCmd() *cli.Command {
	var opts outputOptions

	return &cli.Command{
		Name:      "check",
		Aliases:   []string{"c"},
		Usage:     "Print the format and version of each model file",
		ArgsUsage: "FILE...",
		Flags:     outputFlags(&opts),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			applyOutputConfig(cmd, appConfig, &opts)

			paths := cmd.Args().Slice()
			if len(paths) == 0 {
				return cli.Exit("error: at least one FILE is required", 2)
			}
			return runCheck(ctx, paths, opts, cmd.Root().Writer, cmd.Root().ErrWriter)
		},
	}
}

// runCheck checks every path and writes reports to stdout. Per-file
// failures go to stderr unless suppressed and never fail the batch.
func runCheck(ctx context.Context, paths []string, opts outputOptions, stdout, stderr io.Writer) error {
	log := logger.FromContext(ctx)

	style, err := report.ParseStyle(opts.format)
	if err != nil {
		return cli.Exit("error: "+err.Error(), 2)
	}

	checker := &batch.Checker{
		Jobs:     opts.jobs,
		Extended: opts.extended || style.Structured(),
		Logger:   log,
	}
	results := checker.Run(ctx, paths)

	records := make([]report.Record, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			if !opts.ignoreErrors {
				_, _ = fmt.Fprintf(stderr, "%s: error: %s\n", r.Path, failureReason(r.Err))
			}
			continue
		}
		records = append(records, report.FromHeader(r.Header))
	}

	if err := report.NewWriter(stdout, style, opts.indent).Write(records); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	log.Debug("check complete", "files", len(results), "failed", batch.Failed(results))
	return ctx.Err()
}

func failureReason(err error) string {
	var fe *batch.FileError
	if errors.As(err, &fe) {
		return fe.Reason()
	}
	return err.Error()
}
