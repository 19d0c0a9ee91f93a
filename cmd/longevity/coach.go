// ABOUTME: CLI command for the daily coaching summary.
// ABOUTME: Lists unlogged daily metrics and weekly targets behind pace.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/longevity/internal/engine"
)

var coachCmd = &cobra.Command{
	Use:   "coach",
	Short: "Show today's coaching summary",
	Long: `Show what still needs attention today.

Lists active daily metrics with no value logged today, and weekly metrics
running behind the pace needed to hit their target by end of week (under
80% of where they should be by today).

EXAMPLES:

  longevity coach`,
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now()
		state, metrics, err := buildDashboard(now)
		if err != nil {
			return err
		}

		summary := engine.Coaching(state, metrics, now)

		if len(summary.MissingDaily) == 0 && len(summary.WeeklyMetrics) == 0 {
			color.Green("✓ All caught up.")
			return nil
		}

		if len(summary.MissingDaily) > 0 {
			fmt.Println("Not logged today:")
			for _, m := range summary.MissingDaily {
				fmt.Printf("  %s %s\n", padRight(m.ID, 18), color.New(color.Faint).Sprint(m.Name))
			}
		}

		if len(summary.WeeklyMetrics) > 0 {
			fmt.Println("Weekly targets:")
			for _, w := range summary.WeeklyMetrics {
				line := fmt.Sprintf("  %s %s / %s %s",
					padRight(w.Metric.ID, 18),
					engine.DisplayValue(w.Metric, w.Current),
					engine.DisplayValue(w.Metric, w.Target),
					w.Metric.Unit)
				if w.AtRisk {
					fmt.Printf("%s %s\n", line, color.RedString("behind pace"))
				} else {
					fmt.Printf("%s %s\n", line, color.GreenString("on track"))
				}
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(coachCmd)
}
