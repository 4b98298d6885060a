package engine

import (
	"fmt"

	"github.com/piwi3910/BeamLoad/internal/model"
)

// introNote opens the engineering log of every non-empty calculation.
const introNote = "Starting load physics processing v7.2"

// Engine runs the beam loading calculation. It is read-only after New and
// may be shared between goroutines.
type Engine struct {
	Settings      model.LoadSettings
	Catalog       model.BeamCatalog
	ShimTolerance float64 // Max height difference inside a layer, cm
}

// New returns an engine for settings and catalog with the default shim tolerance.
func New(settings model.LoadSettings, catalog model.BeamCatalog) *Engine {
	return &Engine{
		Settings:      settings,
		Catalog:       catalog,
		ShimTolerance: model.MaxShimHeight,
	}
}

// Calculate builds the full loading plan for items.
//
// Unknown beam IDs and unsupported lengths are contract violations and are
// returned as errors with no partial result. Every domain condition, such as
// exceeding the height limit, is reported in the result instead.
func (e *Engine) Calculate(items []model.LoadItem) (model.CalculationResult, error) {
	if len(items) == 0 {
		return emptyResult(), nil
	}

	pool, err := FlattenSlots(items, e.Catalog)
	if err != nil {
		return model.CalculationResult{}, err
	}
	SortPool(pool)

	layers := BuildLayers(pool, e.Settings.MaxWidth, e.Settings.FixedGap, e.ShimTolerance)

	notes := []string{introNote}
	notes = append(notes, Stabilize(layers)...)

	result := Aggregate(layers, e.Settings)
	result.EngineeringNotes = notes
	return result, nil
}

// Aggregate totals a stabilized layer sequence and applies the height limit.
// Widths are not re-validated here: an oversize slot or a widened base wider
// than the vehicle is accepted as is.
func Aggregate(layers []model.Layer, settings model.LoadSettings) model.CalculationResult {
	result := emptyResult()
	if layers != nil {
		result.Layers = layers
	}

	for _, layer := range layers {
		result.TotalWeight += layer.Weight()
		result.TotalHeight += layer.MaxHeight + settings.WoodHeight
		if layer.TotalWidth > result.MaxWidthUsed {
			result.MaxWidthUsed = layer.TotalWidth
		}
	}

	if settings.EnableHeightLimit && result.TotalHeight > settings.MaxHeightLimit {
		result.Errors = append(result.Errors, fmt.Sprintf(
			"SAFETY BLOCK: load exceeds the height limit (%.1fcm > %gcm)! Refuse the load.",
			result.TotalHeight, settings.MaxHeightLimit))
	}
	return result
}

func emptyResult() model.CalculationResult {
	return model.CalculationResult{
		Layers:           []model.Layer{},
		Errors:           []string{},
		Warnings:         []string{},
		EngineeringNotes: []string{},
	}
}
