package main

import (
	"github.com/spf13/cobra"

	"guidelint/internal/pipeline"
	"guidelint/internal/report"
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Check C# files or directories (default: current directory)",
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().Int("workers", 0, "max files analyzed in parallel (0=auto)")
	checkCmd.Flags().Bool("include-generated", false, "also check generated files")
	checkCmd.Flags().String("since", "", "only report issues on lines changed since this git revision")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("workers") {
		if cfg.Workers, err = cmd.Flags().GetInt("workers"); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("include-generated") {
		if cfg.IncludeGenerated, err = cmd.Flags().GetBool("include-generated"); err != nil {
			return err
		}
	}

	printer, err := newPrinter(cmd, cfg)
	if err != nil {
		return err
	}

	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}

	check := pipeline.NewCheck(cfg, newLogger(cfg))
	if check.Since, err = cmd.Flags().GetString("since"); err != nil {
		return err
	}
	if cfg.DB != "" {
		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()
		check.Store = store
	}

	result, err := check.Run(cmd.Context(), roots...)
	if err != nil {
		return err
	}

	if err := printer.Diagnostics(result.Diagnostics); err != nil {
		return err
	}
	if report.HasErrors(result.Diagnostics) {
		return errIssuesFound
	}

	return nil
}
