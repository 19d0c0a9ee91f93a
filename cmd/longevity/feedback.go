// ABOUTME: CLI commands for feedback display and dismissal/pinning.
// ABOUTME: Feedback ordering is pinned first, then POOR before FAIR before GOOD.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/longevity/internal/engine"
	"github.com/harperreed/longevity/internal/storage"
)

var feedbackCmd = &cobra.Command{
	Use:     "feedback",
	Aliases: []string{"fb"},
	Short:   "Show prioritized feedback",
	Long: `Show one feedback message per active metric with data.

Messages are ranked worst first: pinned metrics at the top, then POOR,
FAIR, and GOOD. Dismissed metrics are hidden until you reset them.

SUBCOMMANDS:

  longevity feedback                  # Show ranked feedback
  longevity feedback dismiss sleep    # Hide feedback for a metric
  longevity feedback pin rhr          # Keep a metric at the top
  longevity feedback unpin rhr
  longevity feedback reset            # Clear all dismissals`,
	RunE: func(cmd *cobra.Command, args []string) error {
		state, metrics, err := buildDashboard(time.Now())
		if err != nil {
			return err
		}

		dismissed, err := repo.GetPreference(storage.PrefDismissedFeedback)
		if err != nil {
			return fmt.Errorf("failed to load preferences: %w", err)
		}
		pinned, err := repo.GetPreference(storage.PrefPinnedFeedback)
		if err != nil {
			return fmt.Errorf("failed to load preferences: %w", err)
		}

		items := engine.GenerateFeedback(state, metrics, dismissed)
		engine.SortFeedback(items, pinned)

		if len(items) == 0 {
			fmt.Println("No feedback yet. Log some values first.")
			return nil
		}

		pinnedSet := make(map[string]bool, len(pinned))
		for _, id := range pinned {
			pinnedSet[id] = true
		}

		faint := color.New(color.Faint)
		for _, item := range items {
			pin := ""
			if pinnedSet[item.MetricID] {
				pin = " ⚲"
			}
			fmt.Printf("%s %s%s\n", statusBadge(item.Status), item.MetricName, pin)
			fmt.Printf("  %s\n", item.Message)
			if item.Citation != "" {
				fmt.Printf("  %s\n", faint.Sprint(item.Citation))
			}
		}
		return nil
	},
}

var feedbackDismissCmd = &cobra.Command{
	Use:   "dismiss <metric-id>",
	Short: "Hide feedback for a metric",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := addToPreference(storage.PrefDismissedFeedback, args[0]); err != nil {
			return err
		}
		color.Yellow("✓ Dismissed feedback for %s", args[0])
		return nil
	},
}

var feedbackPinCmd = &cobra.Command{
	Use:   "pin <metric-id>",
	Short: "Keep a metric's feedback at the top",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := addToPreference(storage.PrefPinnedFeedback, args[0]); err != nil {
			return err
		}
		color.Green("✓ Pinned %s", args[0])
		return nil
	},
}

var feedbackUnpinCmd = &cobra.Command{
	Use:   "unpin <metric-id>",
	Short: "Stop pinning a metric's feedback",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := removeFromPreference(storage.PrefPinnedFeedback, args[0]); err != nil {
			return err
		}
		color.Yellow("✓ Unpinned %s", args[0])
		return nil
	},
}

var feedbackResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear all feedback dismissals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := repo.SetPreference(storage.PrefDismissedFeedback, nil); err != nil {
			return fmt.Errorf("failed to save preferences: %w", err)
		}
		color.Green("✓ Cleared all dismissals")
		return nil
	},
}

func addToPreference(key, id string) error {
	ids, err := repo.GetPreference(key)
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}
	for _, existing := range ids {
		if existing == id {
			return nil
		}
	}
	ids = append(ids, id)
	if err := repo.SetPreference(key, ids); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}

func removeFromPreference(key, id string) error {
	ids, err := repo.GetPreference(key)
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}
	kept := ids[:0]
	for _, existing := range ids {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	if err := repo.SetPreference(key, kept); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}

func init() {
	feedbackCmd.AddCommand(feedbackDismissCmd)
	feedbackCmd.AddCommand(feedbackPinCmd)
	feedbackCmd.AddCommand(feedbackUnpinCmd)
	feedbackCmd.AddCommand(feedbackResetCmd)
	rootCmd.AddCommand(feedbackCmd)
}
