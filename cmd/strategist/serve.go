package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/income-strategist/internal/server"
	"github.com/jonathan/income-strategist/internal/server/ratelimit"
)

func newServeCmd(flags *globalFlags) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Long:  `Start an HTTP server that renders the strategist page and exposes JSON and streaming report endpoints.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := flags.load()
			if err != nil {
				return err
			}
			defer log.Sync()

			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}

			rl, err := ratelimit.LoadConfig()
			if err != nil {
				return err
			}

			srv, err := server.New(server.Config{
				Port:       cfg.Port,
				SessionTTL: time.Duration(cfg.SessionTTLMinutes) * time.Minute,
				Generator:  newGenerator(cfg, log, nil),
				Logger:     log,
				RateLimit:  rl,
			})
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}

			return srv.Start(cmd.Context())
		},
	}
	cmd.Flags().IntVar(&port, "port", 8080, "Port to listen on (overrides config)")
	return cmd
}
