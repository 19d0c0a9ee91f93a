// ABOUTME: Root Cobra command for longevity CLI.
// ABOUTME: Opens the configured storage backend via PersistentPre/PostRunE.
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harperreed/longevity/internal/config"
	"github.com/harperreed/longevity/internal/engine"
	"github.com/harperreed/longevity/internal/logging"
	"github.com/harperreed/longevity/internal/models"
	"github.com/harperreed/longevity/internal/storage"
)

var (
	repo    storage.Repository
	eng     *engine.Engine
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:      "longevity",
	Version:  "1.0.0",
	Short:    "Personal longevity metrics tracker",
	Long: `Longevity is a CLI tool for tracking health metrics against target ranges,
with derived metrics (BMI, biological age, CVD risk) computed automatically
from what you log.

QUICK START:

  $ longevity log sleep=7.5 rhr=52        # Log today's values
  $ longevity log weight=80 height=180    # BMI is derived automatically
  $ longevity dashboard                   # Status, streaks, weekly progress
  $ longevity feedback                    # Ranked feedback per metric
  $ longevity coach                       # What to log, what's falling behind

METRICS:

  Metrics live in an ordered registry with target ranges. Values in range
  score GOOD, near the range FAIR, and far outside POOR. Weekly metrics
  (rowing_volume, running_volume, social_weekly) accumulate toward a weekly
  target and are scored against the pace expected by today's weekday.

  $ longevity metric list                 # Show the registry
  $ longevity metric set sleep --min 7 --max 9
  $ longevity metric disable coffee

DERIVED METRICS:

  Calculated metrics re-evaluate on every read from the raw values you
  logged, with earlier values carried forward. Biological age estimates
  (pheno_age, kdm_bio_age) and CVD risk use your most recent lab panel.

MCP INTEGRATION:

  Run 'longevity mcp' to start the Model Context Protocol server for use
  with MCP-compatible AI assistants:

  {
    "mcpServers": {
      "longevity": { "command": "longevity", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Data is stored in SQLite at ~/.local/share/longevity/longevity.db by
  default. A JSON file backend is available via config (backend: "json").`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Init(verbose)

		// Commands that don't touch storage
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		eng = engine.New()
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			return repo.Close()
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// buildDashboard loads everything, evaluates derived metrics, and returns the
// per-metric status map plus the registry.
func buildDashboard(now time.Time) (map[string]models.MetricStatusData, []models.MetricDefinition, error) {
	metrics, err := repo.ListMetricDefs()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list metrics: %w", err)
	}
	entries, err := repo.ListEntries(0)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list entries: %w", err)
	}
	processed := eng.ProcessEntries(entries, metrics)
	return engine.DashboardState(processed, metrics, now), metrics, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
