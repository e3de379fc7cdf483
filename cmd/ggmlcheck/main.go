package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newApp().Run(ctx, os.Args)
	stop()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	var opts outputOptions

	return &cli.Command{
		Name:      "ggmlcheck",
		Usage:     "Report the container format and version of GGML model files",
		ArgsUsage: "[FILE...]",
		Flags:     append(globalFlags(), localFlags(outputFlags(&opts))...),
		Before:    setup,
		// Bare file arguments behave like the check command.
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() == 0 {
				return cli.ShowAppHelp(cmd)
			}
			applyOutputConfig(cmd, appConfig, &opts)
			return runCheck(ctx, cmd.Args().Slice(), opts, cmd.Root().Writer, cmd.Root().ErrWriter)
		},
		Commands: []*cli.Command{
			checkCmd(),
			scanCmd(),
			serveCmd(),
			versionCmd(),
		},
	}
}
