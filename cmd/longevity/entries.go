// ABOUTME: CLI commands for listing and deleting log entries.
// ABOUTME: Listing shows raw and derived values with derived ids marked.
package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/longevity/internal/models"
)

var entriesLimit int

var entriesCmd = &cobra.Command{
	Use:     "entries",
	Aliases: []string{"ls"},
	Short:   "List log entries",
	Long: `List recent log entries, most recent first.

Each entry shows its 8-character ID prefix, timestamp, and values. Derived
values are recomputed on every read and marked with an asterisk; they are
never stored.

EXAMPLES:

  longevity entries            # Show last 20 entries
  longevity entries -n 5       # Show last 5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		metrics, err := repo.ListMetricDefs()
		if err != nil {
			return fmt.Errorf("failed to list metrics: %w", err)
		}
		entries, err := repo.ListEntries(0)
		if err != nil {
			return fmt.Errorf("failed to list entries: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No entries found.")
			return nil
		}

		calculated := make(map[string]bool)
		for _, m := range metrics {
			if m.IsCalculated {
				calculated[m.ID] = true
			}
		}

		processed := eng.ProcessEntries(entries, metrics)

		faint := color.New(color.Faint)
		shown := 0
		for i := len(processed) - 1; i >= 0 && shown < entriesLimit; i-- {
			e := processed[i]
			fmt.Printf("%s %s %s\n",
				faint.Sprint(e.ID[:8]),
				faint.Sprint(e.Timestamp.Format("2006-01-02 15:04")),
				formatEntryValues(e.Values, calculated))
			shown++
		}
		return nil
	},
}

func formatEntryValues(values models.MetricValues, calculated map[string]bool) string {
	ids := make([]string, 0, len(values))
	for id := range values {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		mark := ""
		if calculated[id] {
			mark = "*"
		}
		parts = append(parts, fmt.Sprintf("%s=%s%s",
			id, strconv.FormatFloat(values[id], 'f', -1, 64), mark))
	}
	return strings.Join(parts, " ")
}

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a log entry",
	Long: `Delete a log entry by its ID or ID prefix.

The ID prefix is shown in the first column of 'longevity entries' output.
If the prefix matches multiple entries, an error is returned.

CAUTION:

  This permanently deletes the entry. There is no undo. Derived metrics
  recompute without it on the next read.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idOrPrefix := args[0]

		entry, err := repo.GetEntry(idOrPrefix)
		if err != nil {
			return err
		}
		if err := repo.DeleteEntry(idOrPrefix); err != nil {
			return fmt.Errorf("failed to delete entry: %w", err)
		}

		color.Yellow("✗ Deleted entry %s", entry.ID[:8])
		fmt.Printf("  %s, %d value(s)\n",
			entry.Timestamp.Format("2006-01-02 15:04"), len(entry.Values))
		return nil
	},
}

func init() {
	entriesCmd.Flags().IntVarP(&entriesLimit, "limit", "n", 20, "max number of results")
	rootCmd.AddCommand(entriesCmd)
	rootCmd.AddCommand(deleteCmd)
}
