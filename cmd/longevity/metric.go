// ABOUTME: CLI commands for managing the metric registry.
// ABOUTME: Supports listing, editing ranges, and enabling/disabling metrics.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/longevity/internal/models"
)

var metricCmd = &cobra.Command{
	Use:     "metric",
	Aliases: []string{"metrics", "m"},
	Short:   "Manage metric definitions",
	Long: `Manage the ordered metric registry.

Every metric has a target range, a unit, and a category. Calculated metrics
carry a formula and derive their value from other metrics; you cannot log
values for them directly.

SUBCOMMANDS:

  longevity metric list                        # Show the registry
  longevity metric show sleep                  # Full definition
  longevity metric set sleep --min 7 --max 9   # Adjust the target range
  longevity metric add meditation --name Meditation --min 10 --max 60 --unit min
  longevity metric disable coffee              # Hide from dashboard/feedback
  longevity metric enable coffee`,
}

var metricListCmd = &cobra.Command{
	Use:   "list",
	Short: "List metric definitions",
	RunE: func(cmd *cobra.Command, args []string) error {
		metrics, err := repo.ListMetricDefs()
		if err != nil {
			return fmt.Errorf("failed to list metrics: %w", err)
		}

		faint := color.New(color.Faint)
		for _, m := range metrics {
			flags := ""
			if m.IsCalculated {
				flags += " calc"
			}
			if !m.Active {
				flags += " off"
			}
			fmt.Printf("%s %s %s%s\n",
				padRight(m.ID, 20),
				padRight(fmt.Sprintf("%s-%s %s",
					strconv.FormatFloat(m.RangeMin, 'f', -1, 64),
					strconv.FormatFloat(m.RangeMax, 'f', -1, 64),
					m.Unit), 20),
				faint.Sprint(m.Name),
				faint.Sprint(flags))
		}
		return nil
	},
}

var metricShowCmd = &cobra.Command{
	Use:   "show <metric-id>",
	Short: "Show a full metric definition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := repo.GetMetricDef(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s (%s)\n", m.Name, m.ID)
		fmt.Printf("  range:    %s - %s %s\n",
			strconv.FormatFloat(m.RangeMin, 'f', -1, 64),
			strconv.FormatFloat(m.RangeMax, 'f', -1, 64),
			m.Unit)
		fmt.Printf("  category: %s\n", m.Category)
		fmt.Printf("  active:   %v\n", m.Active)
		if m.IsCalculated {
			fmt.Printf("  formula:  %s\n", m.Formula)
		}
		if m.IsTimeBased {
			fmt.Println("  display:  H:MM")
		}
		if m.Fact != "" {
			fmt.Printf("  %s\n", color.New(color.Faint).Sprint(m.Fact))
		}
		if m.Citation != "" {
			fmt.Printf("  %s\n", color.New(color.Faint).Sprint(m.Citation))
		}
		return nil
	},
}

var (
	metricSetMin     float64
	metricSetMax     float64
	metricSetUnit    string
	metricSetName    string
	metricSetFormula string
)

var metricSetCmd = &cobra.Command{
	Use:   "set <metric-id>",
	Short: "Update a metric definition",
	Long: `Update parts of an existing metric definition.

Only the flags you pass change; everything else is kept.

EXAMPLES:

  longevity metric set sleep --min 7.5 --max 9
  longevity metric set protein --unit g
  longevity metric set bmi --formula "weight / pow(height / 100, 2)"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := repo.GetMetricDef(args[0])
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("min") {
			m.RangeMin = metricSetMin
		}
		if cmd.Flags().Changed("max") {
			m.RangeMax = metricSetMax
		}
		if cmd.Flags().Changed("unit") {
			m.Unit = metricSetUnit
		}
		if cmd.Flags().Changed("name") {
			m.Name = metricSetName
		}
		if cmd.Flags().Changed("formula") {
			m.Formula = metricSetFormula
			m.IsCalculated = metricSetFormula != ""
		}
		if m.RangeMin > m.RangeMax {
			return fmt.Errorf("range min %v exceeds max %v", m.RangeMin, m.RangeMax)
		}

		if err := repo.UpsertMetric(m); err != nil {
			return fmt.Errorf("failed to update metric: %w", err)
		}
		color.Green("✓ Updated %s", m.ID)
		return nil
	},
}

var (
	metricAddName     string
	metricAddMin      float64
	metricAddMax      float64
	metricAddUnit     string
	metricAddCategory string
	metricAddFormula  string
	metricAddTime     bool
)

var metricAddCmd = &cobra.Command{
	Use:   "add <metric-id>",
	Short: "Add a new metric definition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		if _, err := repo.GetMetricDef(id); err == nil {
			return fmt.Errorf("metric already exists: %s (use 'metric set')", id)
		}
		if metricAddCategory != models.CategoryDaily && metricAddCategory != models.CategoryWeekly {
			return fmt.Errorf("unknown category: %s", metricAddCategory)
		}
		if metricAddMin > metricAddMax {
			return fmt.Errorf("range min %v exceeds max %v", metricAddMin, metricAddMax)
		}

		name := metricAddName
		if name == "" {
			name = id
		}
		m := &models.MetricDefinition{
			ID:           id,
			Name:         name,
			RangeMin:     metricAddMin,
			RangeMax:     metricAddMax,
			Unit:         metricAddUnit,
			Category:     metricAddCategory,
			Active:       true,
			IsCalculated: metricAddFormula != "",
			Formula:      metricAddFormula,
			IsTimeBased:  metricAddTime,
		}
		if err := repo.UpsertMetric(m); err != nil {
			return fmt.Errorf("failed to add metric: %w", err)
		}
		color.Green("✓ Added %s", id)
		return nil
	},
}

var metricEnableCmd = &cobra.Command{
	Use:   "enable <metric-id>",
	Short: "Show a metric on the dashboard again",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setMetricActive(args[0], true)
	},
}

var metricDisableCmd = &cobra.Command{
	Use:   "disable <metric-id>",
	Short: "Hide a metric from the dashboard and feedback",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setMetricActive(args[0], false)
	},
}

func setMetricActive(id string, active bool) error {
	m, err := repo.GetMetricDef(id)
	if err != nil {
		return err
	}
	m.Active = active
	if err := repo.UpsertMetric(m); err != nil {
		return fmt.Errorf("failed to update metric: %w", err)
	}
	if active {
		color.Green("✓ Enabled %s", id)
	} else {
		color.Yellow("✓ Disabled %s", id)
	}
	return nil
}

func init() {
	metricSetCmd.Flags().Float64Var(&metricSetMin, "min", 0, "range minimum")
	metricSetCmd.Flags().Float64Var(&metricSetMax, "max", 0, "range maximum")
	metricSetCmd.Flags().StringVar(&metricSetUnit, "unit", "", "unit of measurement")
	metricSetCmd.Flags().StringVar(&metricSetName, "name", "", "display name")
	metricSetCmd.Flags().StringVar(&metricSetFormula, "formula", "", "derivation formula")

	metricAddCmd.Flags().StringVar(&metricAddName, "name", "", "display name (defaults to id)")
	metricAddCmd.Flags().Float64Var(&metricAddMin, "min", 0, "range minimum")
	metricAddCmd.Flags().Float64Var(&metricAddMax, "max", 0, "range maximum")
	metricAddCmd.Flags().StringVar(&metricAddUnit, "unit", "", "unit of measurement")
	metricAddCmd.Flags().StringVar(&metricAddCategory, "category", models.CategoryDaily, "daily or weekly")
	metricAddCmd.Flags().StringVar(&metricAddFormula, "formula", "", "derivation formula (makes the metric calculated)")
	metricAddCmd.Flags().BoolVar(&metricAddTime, "time-based", false, "display values as H:MM")

	metricCmd.AddCommand(metricListCmd)
	metricCmd.AddCommand(metricShowCmd)
	metricCmd.AddCommand(metricSetCmd)
	metricCmd.AddCommand(metricAddCmd)
	metricCmd.AddCommand(metricEnableCmd)
	metricCmd.AddCommand(metricDisableCmd)
	rootCmd.AddCommand(metricCmd)
}
