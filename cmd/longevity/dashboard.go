// ABOUTME: CLI command for the metric status dashboard.
// ABOUTME: Shows status, streaks, and weekly progress with color-coded levels.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/longevity/internal/engine"
	"github.com/harperreed/longevity/internal/models"
)

var dashboardAll bool

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash", "d"},
	Short:   "Show the metric dashboard",
	Long: `Show current status for every active metric.

Each row shows the latest value (earlier values carry forward), its status
against the target range, the logging streak for daily metrics, and weekly
progress for cumulative metrics.

STATUS LEVELS:

  GOOD   value inside the target range
  FAIR   value near the range (within 20% of its width)
  POOR   value far outside the range
  --     no value logged yet

EXAMPLES:

  longevity dashboard          # Active metrics with data
  longevity dashboard --all    # Include metrics with no data yet`,
	RunE: func(cmd *cobra.Command, args []string) error {
		state, metrics, err := buildDashboard(time.Now())
		if err != nil {
			return err
		}

		faint := color.New(color.Faint)
		for _, m := range metrics {
			if !m.Active {
				continue
			}
			data := state[m.ID]
			if data.Value == nil && !dashboardAll {
				continue
			}

			valueStr := "--"
			if data.Value != nil {
				valueStr = engine.DisplayValue(m, *data.Value)
				if m.Unit != "" {
					valueStr += " " + m.Unit
				}
			}

			extra := ""
			if data.WeeklyProgress != nil {
				extra = faint.Sprintf("  %.0f%% of %s",
					data.WeeklyProgress.Percent,
					engine.DisplayValue(m, data.WeeklyProgress.Target))
			} else if data.Streak > 0 {
				extra = faint.Sprintf("  %dd streak", data.Streak)
			}

			fmt.Printf("%s %s %s%s\n",
				statusBadge(data.Status),
				padRight(m.Name, 22),
				valueStr,
				extra)
		}
		return nil
	},
}

func statusBadge(s models.StatusLevel) string {
	switch s {
	case models.StatusGood:
		return color.GreenString("[GOOD]")
	case models.StatusFair:
		return color.YellowString("[FAIR]")
	case models.StatusPoor:
		return color.RedString("[POOR]")
	default:
		return color.New(color.Faint).Sprint("[ -- ]")
	}
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	dashboardCmd.Flags().BoolVarP(&dashboardAll, "all", "a", false, "include metrics with no data")
	rootCmd.AddCommand(dashboardCmd)
}
