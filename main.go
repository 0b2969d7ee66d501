package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/andpap18/thikishop-payroll/config"
	"github.com/andpap18/thikishop-payroll/processor"
)

var (
	configPath string
	envFile    string
	logLevel   string
	month      int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "thikishop",
		Short:         "Payroll and shop cost reports from weekly schedule workbooks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "path to the TOML configuration")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "optional .env file with THIKISHOP_* overrides")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides config)")

	rootCmd.AddCommand(
		payrollCmd(),
		workDaysCmd(),
		costCmd(),
		serveCmd(),
		sampleCmd(),
		initCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads the configuration and installs the slog handler.
func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath, envFile)
	if err != nil {
		return nil, nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	return cfg, logger, nil
}

// newProcessor is setup plus the processor built from the configuration.
// The --month flag wins over payroll.default_month.
func newProcessor(cmd *cobra.Command) (*processor.Processor, *config.Config, error) {
	cfg, logger, err := setup()
	if err != nil {
		return nil, nil, err
	}

	if cmd.Flags().Changed("month") {
		if month < 0 || month > 12 {
			return nil, nil, fmt.Errorf("invalid month %d", month)
		}
		cfg.Payroll.DefaultMonth = month
	}

	opts, err := cfg.Options(logger)
	if err != nil {
		return nil, nil, err
	}

	return processor.New(opts), cfg, nil
}

func monthFlag(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&month, "month", "m", 0, "target month 1-12, 0 processes every day (default from config)")
}
