package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/TudorHulban/availability/internal/config"
	"github.com/TudorHulban/availability/internal/logging"
)

var (
	Version   = "dev"
	CommitSHA = "none"
)

var (
	logger zerolog.Logger
	cfg    *config.Config
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "availability",
		Short:         "Upcoming booking windows for a space",
		Long:          "Computes the bookable windows of a space from its weekly opening times, time zone and minimum notice.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newCalendarCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newVersionCmd())

	return root
}

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads configuration (called by commands that need it)
func loadConfig() error {
	var err error

	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger = logging.Setup(cfg.Environment)

	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "availability %s (%s)\n", Version, CommitSHA)
		},
	}
}
