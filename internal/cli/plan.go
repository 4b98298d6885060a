package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BeamLoad/internal/importer"
	"github.com/piwi3910/BeamLoad/internal/model"
	"github.com/piwi3910/BeamLoad/internal/project"
)

// loadPlan reads a load list from a CSV or Excel file, or a saved plan
// from JSON. Import problems on individual rows are returned as warnings;
// the plan fails only when no item could be read.
func loadPlan(path string, e env) (model.Project, []string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json", project.FileExtension:
		proj, err := project.LoadProject(path)
		if err != nil {
			return model.Project{}, nil, fmt.Errorf("load plan %s: %w", path, err)
		}
		return proj, nil, nil
	case ".csv", ".txt", ".xlsx", ".xlsm":
	default:
		return model.Project{}, nil, fmt.Errorf("unsupported input %s: expected .csv, .xlsx, .json or %s", path, project.FileExtension)
	}

	var result importer.ImportResult
	if ext == ".xlsx" || ext == ".xlsm" {
		result = importer.ImportExcel(path, e.catalog)
	} else {
		result = importer.ImportCSV(path, e.catalog)
	}

	warnings := importNotes(result)
	if len(result.Items) == 0 {
		if len(result.Errors) > 0 {
			return model.Project{}, warnings, fmt.Errorf("import %s: %s", path, result.Errors[0])
		}
		return model.Project{}, warnings, fmt.Errorf("import %s: no load items found", path)
	}

	proj := model.NewProject()
	proj.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	proj.Items = result.Items
	proj.Settings = e.defaultSettings()
	return proj, warnings, nil
}

// importNotes lists import warnings followed by skipped-row errors in a
// slice of its own.
func importNotes(result importer.ImportResult) []string {
	notes := make([]string, 0, len(result.Warnings)+len(result.Errors))
	return append(append(notes, result.Warnings...), result.Errors...)
}

// settingsFlags are the command-line overrides of a plan's settings.
type settingsFlags struct {
	vehicle       string
	gap           float64
	wood          float64
	heightLimit   float64
	noHeightLimit bool
}

func (f *settingsFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.vehicle, "vehicle", "", "vehicle type (see 'beamload vehicles')")
	cmd.Flags().Float64Var(&f.gap, "gap", 0, "fixed gap between slots in cm")
	cmd.Flags().Float64Var(&f.wood, "wood", 0, "support timber height per level in cm")
	cmd.Flags().Float64Var(&f.heightLimit, "height-limit", 0, "maximum load height in cm (enables the limit)")
	cmd.Flags().BoolVar(&f.noHeightLimit, "no-height-limit", false, "disable the height limit")
}

// apply overrides the flags the user actually set.
func (f *settingsFlags) apply(cmd *cobra.Command, settings *model.LoadSettings, custom []model.Vehicle) error {
	flags := cmd.Flags()
	if flags.Changed("vehicle") {
		v, ok := model.FindVehicle(model.VehicleType(f.vehicle), custom)
		if !ok {
			return fmt.Errorf("unknown vehicle %q (built-in: %s)", f.vehicle, strings.Join(model.GetVehicleNames(), ", "))
		}
		settings.UseVehicle(v)
	}
	if flags.Changed("gap") {
		settings.FixedGap = f.gap
	}
	if flags.Changed("wood") {
		settings.WoodHeight = f.wood
	}
	if flags.Changed("height-limit") {
		settings.EnableHeightLimit = true
		settings.MaxHeightLimit = f.heightLimit
	}
	if f.noHeightLimit {
		settings.EnableHeightLimit = false
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}
