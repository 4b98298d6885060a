package engine

import (
	"fmt"

	"github.com/piwi3910/BeamLoad/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string             `json:"name"`
	Settings model.LoadSettings `json:"settings"`
}

// ComparisonResult holds the calculation result and headline figures for a
// single scenario.
type ComparisonResult struct {
	Scenario     ComparisonScenario      `json:"scenario"`
	Result       model.CalculationResult `json:"result"`
	LayerCount   int                     `json:"layer_count"`
	TotalHeight  float64                 `json:"total_height"`
	MaxWidthUsed float64                 `json:"max_width_used"`
	Utilization  float64                 `json:"utilization"`
	Safe         bool                    `json:"safe"`
}

// CompareScenarios runs the calculation for each scenario in order. This
// answers questions like "would this load fit on the wider wagon?".
func CompareScenarios(scenarios []ComparisonScenario, items []model.LoadItem, catalog model.BeamCatalog) ([]ComparisonResult, error) {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		result, err := New(scenario.Settings, catalog).Calculate(items)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}

		results = append(results, ComparisonResult{
			Scenario:     scenario,
			Result:       result,
			LayerCount:   len(result.Layers),
			TotalHeight:  result.TotalHeight,
			MaxWidthUsed: result.MaxWidthUsed,
			Utilization:  result.Utilization(scenario.Settings.MaxWidth),
			Safe:         result.IsSafe(),
		})
	}

	return results, nil
}

// BuildDefaultScenarios generates the current settings plus one scenario per
// other vehicle of the given list, and a no-gap alternative when a fixed gap
// is configured.
func BuildDefaultScenarios(base model.LoadSettings, vehicles []model.Vehicle) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: base,
		},
	}

	for _, v := range vehicles {
		if v.Type == base.VehicleType {
			continue
		}
		alt := base
		alt.UseVehicle(v)
		scenarios = append(scenarios, ComparisonScenario{
			Name:     v.Description,
			Settings: alt,
		})
	}

	if base.FixedGap > 0 {
		noGap := base
		noGap.FixedGap = 0
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "No Fixed Gap",
			Settings: noGap,
		})
	}

	return scenarios
}
