// ABOUTME: CLI command for logging metric values.
// ABOUTME: Accepts metric=value pairs and supports amending past entries.
package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/longevity/internal/models"
)

var (
	logAt    string
	logAmend string
)

var logCmd = &cobra.Command{
	Use:     "log <metric=value> [metric=value...]",
	Aliases: []string{"l"},
	Short:   "Log metric values",
	Long: `Log one or more metric values as a single entry.

Values are metric=value pairs using the metric ids from 'longevity metric
list'. Time-based metrics accept either decimal hours (7.5) or H:MM (7:30).

AMENDING:

  Entries are corrected by replacement, not patching. --amend replaces the
  whole entry with the values you give here; anything you leave out is gone.

EXAMPLES:

  longevity log sleep=7.5 rhr=52
  longevity log sleep=7:30                      # Same as sleep=7.5
  longevity log weight=80 --at "2024-12-14 07:00"
  longevity log sleep=8 rhr=50 --amend abc12345`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		values, err := parseValues(args)
		if err != nil {
			return err
		}

		var timestamp time.Time
		if logAt != "" {
			timestamp, err = parseTime(logAt)
			if err != nil {
				return fmt.Errorf("invalid timestamp: %s", logAt)
			}
		}

		if logAmend != "" {
			existing, err := repo.GetEntry(logAmend)
			if err != nil {
				return err
			}
			replacement := &models.LogEntry{
				ID:        existing.ID,
				Timestamp: existing.Timestamp,
				Values:    values,
			}
			if !timestamp.IsZero() {
				replacement.Timestamp = timestamp
			}
			if err := repo.ReplaceEntry(replacement); err != nil {
				return fmt.Errorf("failed to replace entry: %w", err)
			}
			color.Yellow("✓ Replaced entry %s", existing.ID[:8])
			printValues(values)
			return nil
		}

		if timestamp.IsZero() {
			timestamp = time.Now()
		}
		e := models.NewLogEntry(timestamp, values)
		if err := repo.CreateEntry(e); err != nil {
			return fmt.Errorf("failed to create entry: %w", err)
		}

		color.Green("✓ Logged %d value(s)", len(values))
		fmt.Printf("  %s\n", color.New(color.Faint).Sprint(e.ID[:8]))
		printValues(values)
		return nil
	},
}

// parseValues turns metric=value args into a value map. A value containing a
// colon is read as H:MM.
func parseValues(args []string) (map[string]float64, error) {
	values := make(map[string]float64, len(args))
	for _, arg := range args {
		id, raw, ok := strings.Cut(arg, "=")
		if !ok || id == "" || raw == "" {
			return nil, fmt.Errorf("expected metric=value, got %q", arg)
		}

		var val float64
		if h, m, ok := strings.Cut(raw, ":"); ok {
			hours, err1 := strconv.Atoi(h)
			minutes, err2 := strconv.Atoi(m)
			if err1 != nil || err2 != nil || minutes < 0 || minutes > 59 {
				return nil, fmt.Errorf("invalid duration %q (use H:MM)", raw)
			}
			val = float64(hours) + float64(minutes)/60
		} else {
			var err error
			val, err = strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid value %q for %s", raw, id)
			}
		}
		values[id] = val
	}
	return values, nil
}

func printValues(values map[string]float64) {
	ids := make([]string, 0, len(values))
	for id := range values {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Printf("  %s = %s\n", id, strconv.FormatFloat(values[id], 'f', -1, 64))
	}
}

func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04",
		"2006-01-02T15:04",
		"2006-01-02",
	}
	for _, f := range formats {
		if t, err := time.ParseInLocation(f, s, time.Local); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized time format")
}

func init() {
	logCmd.Flags().StringVar(&logAt, "at", "", "timestamp (YYYY-MM-DD HH:MM)")
	logCmd.Flags().StringVar(&logAmend, "amend", "", "replace the entry with this ID or prefix")
	rootCmd.AddCommand(logCmd)
}
