package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/ggmlcheck/internal/api"
	"github.com/samcharles93/ggmlcheck/internal/logger"
)

func serveCmd() *cli.Command {
	var (
		addr        string
		root        string
		jobs        int
		readTimeout time.Duration
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve header checks over HTTP for files below a root directory",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
			&cli.StringFlag{
				Name:        "root",
				Usage:       "directory request paths are resolved against",
				Sources:     cli.EnvVars(envModelsDir),
				Destination: &root,
			},
			&cli.IntFlag{
				Name:        "jobs",
				Aliases:     []string{"j"},
				Usage:       "concurrent checks per request (0 = GOMAXPROCS)",
				Destination: &jobs,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "read header timeout",
				Value:       30 * time.Second,
				Destination: &readTimeout,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			applyServeConfig(cmd, appConfig, &addr, &root, &jobs)
			log := logger.FromContext(ctx)

			if root == "" {
				return cli.Exit("error: --root is required unless "+envModelsDir+", server_root or models_dir is set", 2)
			}
			if st, err := os.Stat(root); err != nil || !st.IsDir() {
				return cli.Exit(fmt.Sprintf("error: root %q is not a directory", root), 1)
			}

			server := api.NewServer(api.Config{Root: root, Jobs: jobs, Logger: log})
			e := echo.New()
			e.Use(middleware.RequestLogger())
			e.Use(middleware.Recover())
			server.Register(e)
			log.Info("starting server", "address", addr, "root", root)
			sc := echo.StartConfig{
				Address: addr,
				BeforeServeFunc: func(srv *http.Server) error {
					srv.ReadHeaderTimeout = readTimeout
					return nil
				},
			}
			return sc.Start(ctx, e)
		},
	}
}
