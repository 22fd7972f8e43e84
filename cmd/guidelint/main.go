package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"guidelint/internal/config"
	"guidelint/internal/logging"
	"guidelint/internal/report"
	"guidelint/internal/storage"
)

// errIssuesFound makes the process exit with status 1 without printing.
var errIssuesFound = errors.New("error-severity issues found")

var (
	rootCmd = &cobra.Command{
		Use:           "guidelint",
		Short:         "Check C# sources against coding guidelines",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	configPath string
	dbPath     string
	format     string
	logLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errIssuesFound) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to guidelint.yaml or guidelint.toml")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "path to the run history database (SQLite)")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "", "output format (text|json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug|info|warn|error)")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(showCmd)
}

// loadConfig reads the configuration and applies the persistent flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(".", configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DB = dbPath
	}
	if flags.Changed("format") {
		cfg.Format = format
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}

	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	return logging.New(cfg.LogLevel, os.Stderr)
}

func newPrinter(cmd *cobra.Command, cfg *config.Config) (*report.Printer, error) {
	f, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}

	return report.NewPrinter(cmd.OutOrStdout(), f), nil
}

// openStore opens the history database named by the configuration.
func openStore(cfg *config.Config) (*storage.SQLiteStore, error) {
	if cfg.DB == "" {
		return nil, errors.New("no history database configured (use --db or GUIDELINT_DB)")
	}

	return storage.NewSQLiteStore(cfg.DB)
}
