package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BeamLoad/internal/engine"
	"github.com/piwi3910/BeamLoad/internal/model"
)

// compareCommand creates the compare command.
func (c *CLI) compareCommand() *cobra.Command {
	var (
		settings settingsFlags
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "compare [file]",
		Short: "Compare the load across every vehicle profile",
		Long: `Compare the load across every vehicle profile.

The current settings are calculated first, followed by every other built-in
and custom vehicle with otherwise identical settings. When a fixed gap is
set, a no-gap alternative is added.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			e, err := c.loadEnv()
			if err != nil {
				return err
			}
			report := out
			if asJSON {
				report = cmd.ErrOrStderr()
			}
			proj, warnings, err := loadPlan(args[0], e)
			for _, w := range warnings {
				printWarning(report, "%s", w)
			}
			if err != nil {
				return err
			}
			if err := settings.apply(cmd, &proj.Settings, e.vehicles); err != nil {
				return err
			}

			prog := newProgress(c.Logger)
			scenarios := engine.BuildDefaultScenarios(proj.Settings, model.AllVehicles(e.vehicles))
			results, err := engine.CompareScenarios(scenarios, proj.Items, e.catalog)
			if err != nil {
				return fmt.Errorf("compare %s: %w", args[0], err)
			}
			prog.done(fmt.Sprintf("Compared %d scenarios", len(results)))

			if asJSON {
				return writeJSON(out, results)
			}
			printComparison(cmd, results)
			return nil
		},
	}

	settings.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the comparison as JSON")

	return cmd
}

func printComparison(cmd *cobra.Command, results []engine.ComparisonResult) {
	out := cmd.OutOrStdout()
	printTitle(out, "Scenario comparison")

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		status := StyleSuccess.Render("OK")
		if !r.Safe {
			status = StyleDanger.Render("BLOCKED")
		}
		rows = append(rows, []string{
			r.Scenario.Name,
			fmt.Sprintf("%.0f", r.Scenario.Settings.MaxWidth),
			fmt.Sprint(r.LayerCount),
			fmt.Sprintf("%.1f", r.TotalHeight),
			fmt.Sprintf("%.1f", r.MaxWidthUsed),
			fmt.Sprintf("%.1f%%", r.Utilization),
			status,
		})
	}
	printTable(out, []string{"Scenario", "Vehicle", "Levels", "Height", "Width", "Used", "Status"}, rows)
}
