package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BeamLoad/internal/engine"
	"github.com/piwi3910/BeamLoad/internal/export"
	"github.com/piwi3910/BeamLoad/internal/model"
	"github.com/piwi3910/BeamLoad/internal/project"
)

// ErrLoadBlocked is returned when the plan was calculated but carries a
// blocking safety error. Outputs are still written.
var ErrLoadBlocked = errors.New("load blocked by safety check")

// calculateOpts holds the output flags of the calculate command.
type calculateOpts struct {
	json   string // result as JSON, "-" for stdout
	pdf    string
	labels string
	dxf    string
	xlsx   string
	chart  string
	save   string // plan file including the result
}

// calculateCommand creates the calculate command.
func (c *CLI) calculateCommand() *cobra.Command {
	var (
		settings settingsFlags
		opts     calculateOpts
	)

	cmd := &cobra.Command{
		Use:   "calculate [file]",
		Short: "Calculate the loading plan of a load list",
		Long: `Calculate the loading plan of a load list.

The input is a CSV or Excel load list (beam, length, quantity, priority,
label columns) or a saved plan (.json or .beamload). Settings come from the
config file or the saved plan and can be overridden with flags.

The command exits with an error when the load is refused by the height
limit; requested outputs are written in either case.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCalculate(cmd, args[0], &settings, opts)
		},
	}

	settings.register(cmd)
	cmd.Flags().StringVar(&opts.json, "json", "", "write the result as JSON (\"-\" for stdout)")
	cmd.Flags().StringVar(&opts.pdf, "pdf", "", "write the PDF load report")
	cmd.Flags().StringVar(&opts.labels, "labels", "", "write QR bundle labels as PDF")
	cmd.Flags().StringVar(&opts.dxf, "dxf", "", "write the cross-section drawing as DXF")
	cmd.Flags().StringVar(&opts.xlsx, "xlsx", "", "write the plan workbook as Excel")
	cmd.Flags().StringVar(&opts.chart, "chart", "", "write the level chart as HTML")
	cmd.Flags().StringVar(&opts.save, "save", "", "save the plan with its result ("+project.FileExtension+")")

	return cmd
}

func (c *CLI) runCalculate(cmd *cobra.Command, input string, flags *settingsFlags, opts calculateOpts) error {
	ctx := withLogger(cmd.Context(), c.Logger)
	out := cmd.OutOrStdout()

	e, err := c.loadEnv()
	if err != nil {
		return err
	}

	// With --json - stdout carries only the result; everything else moves to stderr.
	report := out
	if opts.json == "-" {
		report = cmd.ErrOrStderr()
	}
	proj, warnings, err := loadPlan(input, e)
	for _, w := range warnings {
		printWarning(report, "%s", w)
	}
	if err != nil {
		return err
	}
	if err := flags.apply(cmd, &proj.Settings, e.vehicles); err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	result, err := engine.New(proj.Settings, e.catalog).Calculate(proj.Items)
	if err != nil {
		return fmt.Errorf("calculate %s: %w", input, err)
	}
	prog.done(fmt.Sprintf("Calculated %d levels", len(result.Layers)))

	if opts.json == "-" {
		if err := writeJSON(out, result); err != nil {
			return err
		}
		opts.json = ""
	} else {
		printResult(out, result, proj.Settings)
	}

	written, err := writeOutputs(ctx, opts, result, proj.Settings)
	if len(written) > 0 {
		printNewline(report)
		printSuccess(report, "Wrote %d file(s)", len(written))
		for _, path := range written {
			printFile(report, path)
		}
	}
	if err != nil {
		return err
	}

	if opts.save != "" {
		proj.Result = &result
		if err := project.SaveProject(opts.save, proj); err != nil {
			return fmt.Errorf("save plan %s: %w", opts.save, err)
		}
		printFile(report, opts.save)
		c.rememberProject(e.config, opts.save)
	}

	if len(result.Errors) > 0 {
		return ErrLoadBlocked
	}
	return nil
}

// rememberProject records path in the recent project list. Failure to
// update the config is logged, not fatal.
func (c *CLI) rememberProject(config model.AppConfig, path string) {
	config.AddRecentProject(path, recentProjectsLimit)
	if err := project.SaveAppConfig(c.ConfigPath, config); err != nil {
		c.Logger.Warn("could not update recent projects", "err", err)
	}
}

// writeOutputs writes every requested file and returns the paths written.
// It stops at the first failure.
func writeOutputs(ctx context.Context, opts calculateOpts, result model.CalculationResult, settings model.LoadSettings) ([]string, error) {
	logger := loggerFromContext(ctx)

	outputs := []struct {
		path  string
		kind  string
		write func(string) error
	}{
		{opts.json, "json", func(p string) error { return writeJSONFile(p, result) }},
		{opts.pdf, "pdf", func(p string) error { return export.ExportPDF(p, result, settings) }},
		{opts.labels, "labels", func(p string) error { return export.ExportLabels(p, result) }},
		{opts.dxf, "dxf", func(p string) error { return export.ExportDXF(p, result, settings) }},
		{opts.xlsx, "xlsx", func(p string) error { return export.ExportExcel(p, result, settings) }},
		{opts.chart, "chart", func(p string) error { return export.ExportChart(p, result, settings) }},
	}

	var written []string
	for _, o := range outputs {
		if o.path == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return written, err
		}
		logger.Debug("writing output", "kind", o.kind, "path", o.path)
		if err := o.write(o.path); err != nil {
			return written, fmt.Errorf("write %s %s: %w", o.kind, o.path, err)
		}
		written = append(written, o.path)
	}
	return written, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeJSONFile(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeJSON(f, v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// printResult prints the plan summary, level table, material list and
// engineering notes.
func printResult(w io.Writer, result model.CalculationResult, settings model.LoadSettings) {
	printTitle(w, "Loading plan")
	printKeyValue(w, "Vehicle", fmt.Sprintf("%s (%.0f cm)", settings.VehicleType, settings.MaxWidth))
	if len(result.Layers) == 0 {
		printInfo(w, "Nothing to load")
		return
	}

	printKeyValue(w, "Levels", StyleNumber.Render(fmt.Sprint(len(result.Layers))))
	printKeyValue(w, "Slots", fmt.Sprintf("%d (%d pieces)", result.SlotCount(), result.PieceCount()))
	printKeyValue(w, "Weight", fmt.Sprintf("%.3f t", result.TotalWeight))
	printKeyValue(w, "Height", fmt.Sprintf("%.1f cm", result.TotalHeight))
	printKeyValue(w, "Width used", fmt.Sprintf("%.1f cm (%.1f%%)", result.MaxWidthUsed, result.Utilization(settings.MaxWidth)))
	printNewline(w)

	rows := make([][]string, 0, len(result.Layers))
	for i := len(result.Layers) - 1; i >= 0; i-- {
		l := result.Layers[i]
		rows = append(rows, []string{
			fmt.Sprint(l.Index + 1),
			fmt.Sprint(len(l.Slots)),
			fmt.Sprintf("%.1f", l.TotalWidth),
			fmt.Sprintf("%.1f", l.MaxHeight),
			fmt.Sprintf("%.1f", l.HeightDiff),
			fmt.Sprintf("%.3f", l.Weight()),
			fmt.Sprint(l.Priority),
			layerBitolas(l),
		})
	}
	printTable(w, []string{"Level", "Slots", "Width", "Height", "Shim", "Weight", "Prio", "Profiles"}, rows)
	printNewline(w)

	materials := model.SummarizeByBitola(result)
	matRows := make([][]string, 0, len(materials))
	for _, m := range materials {
		matRows = append(matRows, []string{
			m.Bitola,
			fmt.Sprint(m.LongPieces),
			fmt.Sprint(m.ShortPieces),
			fmt.Sprintf("%.0f", m.Meters),
			fmt.Sprintf("%.3f", m.Weight),
		})
	}
	printTable(w, []string{"Profile", "12m", "6m", "Metres", "Weight"}, matRows)
	printNewline(w)

	for _, note := range result.EngineeringNotes {
		printDetail(w, "%s", note)
	}
	for _, warning := range result.Warnings {
		printWarning(w, "%s", warning)
	}
	if result.MaxWidthUsed > settings.MaxWidth {
		printWarning(w, "Widest level is %.1f cm on a %.0f cm vehicle", result.MaxWidthUsed, settings.MaxWidth)
	}
	for _, e := range result.Errors {
		printError(w, "%s", e)
	}
	if result.IsSafe() {
		printSuccess(w, "Load approved")
	}
}

// layerBitolas lists the distinct profiles of a layer in slot order.
func layerBitolas(l model.Layer) string {
	var names []string
	seen := make(map[string]bool)
	for _, s := range l.Slots {
		b := s.Bitola()
		if !seen[b] {
			seen[b] = true
			names = append(names, b)
		}
	}
	return strings.Join(names, ", ")
}
