package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/huh-go/internal/app"
	"github.com/doeshing/huh-go/internal/domain"
	"github.com/doeshing/huh-go/internal/infrastructure/cli/helpers"
	"github.com/doeshing/huh-go/internal/pkg/filesystem"
)

// NewHistoryCommand creates the history command with all subcommands
func NewHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the log of past huh invocations",
	}

	historyCmd.AddCommand(
		newHistoryListCommand(container),
		newHistoryClearCommand(container),
		newHistoryExportCommand(container),
		newHistoryStatsCommand(container),
		newHistoryRetainCommand(container),
	)

	return historyCmd
}

func newHistoryListCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent invocations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listHistoryEntries(cmd.OutOrStdout(), container, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", domain.DefaultHistoryLimit, "Max entries to show")
	return cmd
}

func newHistoryClearCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded invocations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.HistoryStore == nil {
				return errors.New(ErrHistoryStoreUnavailable)
			}
			if err := container.HistoryStore.Clear(); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	}
}

func newHistoryExportCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Export history to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.HistoryStore == nil {
				return errors.New(ErrHistoryStoreUnavailable)
			}
			dest := filesystem.ExpandPath(args[0])
			if err := container.HistoryStore.ExportJSON(dest); err != nil {
				return fmt.Errorf("failed to export history to %s: %w", dest, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "History exported to %s\n", filesystem.FriendlyPath(dest))
			return nil
		},
	}
}

func newHistoryStatsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show success rate, modes, models and frequent suggestions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showHistoryStats(cmd.OutOrStdout(), container)
		},
	}
}

func newHistoryRetainCommand(container *app.Container) *cobra.Command {
	var retainDays int

	cmd := &cobra.Command{
		Use:   "retain",
		Short: "Prune history older than N days and update the retention policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			if retainDays <= 0 {
				return errors.New(ErrInvalidRetainDays)
			}
			return updateHistoryRetention(cmd.Context(), cmd.OutOrStdout(), container, retainDays)
		},
	}

	cmd.Flags().IntVar(&retainDays, "days", domain.DefaultHistoryRetainDays, "Days to retain history")
	return cmd
}

// listHistoryEntries prints one line per invocation, newest first.
func listHistoryEntries(out io.Writer, container *app.Container, limit int) error {
	store := container.HistoryStore
	if store == nil {
		return errors.New(ErrHistoryStoreUnavailable)
	}

	records, err := store.Records(limit)
	if err != nil {
		return fmt.Errorf("failed to retrieve history records: %w", err)
	}
	if len(records) == 0 {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return nil
	}

	for _, rec := range records {
		fmt.Fprintf(out, "%s | %-7s | %s | %s | %s\n",
			humanize.Time(rec.Timestamp),
			rec.Mode,
			rec.Model,
			outcome(rec),
			describeRecord(rec))
	}
	return nil
}

func outcome(rec domain.InvocationRecord) string {
	switch {
	case rec.Error != "":
		return "error: " + rec.Error
	case rec.Mode == domain.ModeWriteFile && rec.Applied:
		return fmt.Sprintf("applied +%d -%d", rec.Additions, rec.Deletions)
	case rec.Mode == domain.ModeWriteFile:
		return "not applied"
	default:
		return "ok"
	}
}

func describeRecord(rec domain.InvocationRecord) string {
	parts := make([]string, 0, 3)
	if rec.Path != "" {
		parts = append(parts, "@"+filesystem.FriendlyPath(rec.Path))
	}
	if rec.Query != "" {
		parts = append(parts, rec.Query)
	}
	if rec.Suggestion != "" {
		parts = append(parts, "-> "+rec.Suggestion)
	}
	return strings.Join(parts, " ")
}

func showHistoryStats(out io.Writer, container *app.Container) error {
	store := container.HistoryStore
	if store == nil {
		return errors.New(ErrHistoryStoreUnavailable)
	}

	records, err := store.Records(MaxHistoryAnalysisRecords)
	if err != nil {
		return fmt.Errorf("failed to retrieve history for analysis: %w", err)
	}
	if len(records) == 0 {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return nil
	}

	stats := helpers.SummarizeHistory(records)
	fmt.Fprintf(out, "Entries analyzed: %d\nSuccess rate: %.1f%%\n",
		stats.Total,
		helpers.CalculateSuccessRate(stats.Successful, stats.Total))
	if stats.Edits > 0 {
		fmt.Fprintf(out, "Edits applied: %d of %d (+%d -%d lines)\n",
			stats.Applied, stats.Edits, stats.Additions, stats.Deletions)
	}

	printTallies(out, "By mode:", helpers.TopTallies(stats.ByMode, 0))
	printTallies(out, "By model:", helpers.TopTallies(stats.ByModel, 0))
	printTallies(out, "Top suggestions:", helpers.TopTallies(stats.Suggestions, 5))
	return nil
}

func printTallies(out io.Writer, title string, tallies []helpers.Tally) {
	if len(tallies) == 0 {
		return
	}
	fmt.Fprintln(out, title)
	for _, tally := range tallies {
		fmt.Fprintf(out, "  %s (%d)\n", tally.Label, tally.Count)
	}
}

// updateHistoryRetention prunes old history and persists the new policy.
func updateHistoryRetention(ctx context.Context, out io.Writer, container *app.Container, days int) error {
	store := container.HistoryStore
	if store == nil {
		return errors.New(ErrHistoryStoreUnavailable)
	}

	removed, err := store.Prune(days)
	if err != nil {
		return fmt.Errorf("failed to prune old history: %w", err)
	}

	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg.History.RetentionDays = days
	if err := helpers.SaveConfigWithValidation(ctx, container, cfg); err != nil {
		return err
	}

	fmt.Fprintf(out, "Removed %d entries; retaining the last %d days of history.\n", removed, days)
	return nil
}
