// ABOUTME: CLI command for the JSON HTTP API.
// ABOUTME: Serves until SIGINT or SIGTERM, then shuts down gracefully.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/agewell/internal/api"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON HTTP API",
	Long: `Serve the calculators and trackers as a JSON HTTP API.

The API has no authentication and is meant for local use.

ENDPOINTS:

  POST   /api/bmi                      POST /api/insurance
  POST   /api/meal-plan                POST /api/chat
  GET    /api/habits                   POST /api/habits
  GET    /api/habits/progress          DELETE /api/habits/{id}
  POST   /api/habits/{id}/increment    POST /api/habits/{id}/decrement
  GET    /api/cycles                   POST /api/cycles
  GET    /api/cycles/prediction        DELETE /api/cycles/{id}
  GET    /api/profile                  PUT /api/profile

EXAMPLES:

  agewell serve
  agewell serve --addr 127.0.0.1:9000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := serveAddr
		if addr == "" {
			addr = cfg.GetServerAddr()
		}

		created, err := svc.EnsureDefaultHabits()
		if err != nil {
			return err
		}
		if len(created) > 0 {
			logger.WithField("count", len(created)).Info("created starter habits")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return api.NewServer(svc, logger).ListenAndServe(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
	rootCmd.AddCommand(serveCmd)
}
