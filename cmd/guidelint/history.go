package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"guidelint/internal/diagnostic"
	"guidelint/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the guideline rules",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		printer, err := newPrinter(cmd, cfg)
		if err != nil {
			return err
		}

		all := rules.All()
		descs := make([]diagnostic.Descriptor, 0, len(all))
		for _, r := range all {
			descs = append(descs, r.Descriptor())
		}

		return printer.Rules(descs)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		printer, err := newPrinter(cmd, cfg)
		if err != nil {
			return err
		}

		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.Runs(cmd.Context())
		if err != nil {
			return err
		}

		return printer.Runs(runs)
	},
}

var showCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Print the diagnostics of a recorded run (default: latest)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		printer, err := newPrinter(cmd, cfg)
		if err != nil {
			return err
		}

		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		var id int64
		if len(args) == 1 {
			if id, err = strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("invalid run id %q: %w", args[0], err)
			}
		} else {
			run, err := store.LatestRun(cmd.Context())
			if err != nil {
				return err
			}
			id = run.ID
		}

		diags, err := store.Diagnostics(cmd.Context(), id)
		if err != nil {
			return err
		}

		return printer.Diagnostics(diags)
	},
}
