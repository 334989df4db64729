// Package main provides tripgeo, an offline companion to the trip planner
// service. It works on plan JSON files: assigning ids, geocoding missing
// places, and estimating travel legs.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-tripplanner/pkg/logger"
)

const appName = "tripgeo"

// Version is overridden at build time.
var Version = "dev"

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globals are the flags shared by every subcommand.
type globals struct {
	output   string
	logLevel string
	log      *zap.Logger
}

func rootCmd() *cobra.Command {
	g := &globals{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Work with trip plan files",
		Long: `tripgeo reads trip plans as JSON (a file path, or - for stdin) and
writes the result to stdout as JSON or YAML.

Geocoding commands use the same environment as the server:
MAPBOX_TOKEN, MAPBOX_BASE_URL, DEFAULT_LANGUAGE, GEOCODE_CONCURRENCY,
GEOCODE_TIMEOUT and GEO_BATCH_URL.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := parseFormat(g.output); err != nil {
				return err
			}
			l, err := logger.New(logger.ParseLevel(g.logLevel), "stderr")
			if err != nil {
				return err
			}
			g.log = l
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&g.output, "output", "o", "json", "Output format (json, yaml)")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		idsCmd(g),
		enrichCmd(g),
		resolveCmd(g),
		legsCmd(g),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
			},
		},
	)

	return cmd
}
