// Package main provides the entry point for the Passive Income Strategist CLI and web server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/income-strategist/internal/app"
	"github.com/jonathan/income-strategist/internal/config"
	"github.com/jonathan/income-strategist/internal/logger"
	"github.com/jonathan/income-strategist/internal/strategist"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	logMode    string
}

// newGenerator builds the report generator. Tests replace it.
var newGenerator = func(cfg *config.Config, log *logger.Logger, selector strategist.KeySelector) app.Generator {
	opts := []strategist.Option{strategist.WithLogger(log)}
	if selector != nil {
		opts = append(opts, strategist.WithKeySelector(selector))
	}
	return strategist.New(cfg.StrategistOptions(), opts...)
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:           "strategist",
		Short:         "Passive Income Strategist",
		Long:          "Passive Income Strategist turns your technical skills and a monthly income goal into a roadmap: skill gap, niche and action plan, tailored to the Indian tech market.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to a JSON or YAML config file")
	root.PersistentFlags().StringVar(&flags.logMode, "log-mode", "", "Log mode: development or production (overrides config)")

	root.AddCommand(newServeCmd(flags), newReportCmd(flags), newParseCmd())
	return root
}

// load reads the config and builds the logger for a command.
func (f *globalFlags) load() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if f.logMode != "" {
		cfg.LogMode = f.logMode
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
