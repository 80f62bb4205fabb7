package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/talhabaig007/PhishStop/internal/cli"
	"github.com/talhabaig007/PhishStop/internal/export"
)

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show detection statistics from the analysis ledger",
		Long: `Summarize the persisted analysis ledger: URLs analyzed, phishing
detected, and the average risk score. Recent verdicts can be listed
inline or exported to a spreadsheet.

Examples:
  phishstop stats
  phishstop stats --recent 20
  phishstop stats --export verdicts.xlsx`,
		RunE: runStats,
	}

	cmd.Flags().Int("recent", 0, "also list the N most recent verdicts")
	cmd.Flags().String("export", "", "write the ledger to an .xlsx workbook at this path")
	cmd.Flags().Int("export-limit", 1000, "maximum rows to export")

	return cmd
}

func runStats(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	recentN, _ := cmd.Flags().GetInt("recent")
	exportPath, _ := cmd.Flags().GetString("export")
	exportLimit, _ := cmd.Flags().GetInt("export-limit")

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	snapshot, err := store.ReplayStats(ctx)
	if err != nil {
		return fmt.Errorf("failed to read statistics: %w", err)
	}

	fmt.Println(cli.RenderStats(snapshot))

	if recentN > 0 {
		rows, recentErr := store.RecentVerdicts(ctx, recentN)
		if recentErr != nil {
			return fmt.Errorf("failed to list recent verdicts: %w", recentErr)
		}

		fmt.Println()
		fmt.Println(cli.FormatTitle("Recent verdicts"))
		for _, rec := range rows {
			fmt.Println("  " + cli.RenderVerdictLine(rec.Verdict()))
		}
	}

	if exportPath != "" {
		rows, exportErr := store.RecentVerdicts(ctx, exportLimit)
		if exportErr != nil {
			return fmt.Errorf("failed to read ledger for export: %w", exportErr)
		}

		if writeErr := export.WriteXLSX(exportPath, rows); writeErr != nil {
			return fmt.Errorf("failed to export ledger: %w", writeErr)
		}

		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d verdicts to %s", len(rows), exportPath)))
	}

	return nil
}
