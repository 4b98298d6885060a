package export

import (
	"testing"

	"github.com/piwi3910/BeamLoad/internal/engine"
	"github.com/piwi3910/BeamLoad/internal/model"
)

// buildTestResult runs a realistic mixed load through the engine.
func buildTestResult(t *testing.T) (model.CalculationResult, model.LoadSettings) {
	t.Helper()
	settings := model.DefaultSettings()
	settings.FixedGap = 2

	items := []model.LoadItem{
		model.NewLoadItem("w530x72", model.LengthLong, 4, 1),
		model.NewLoadItem("w200x15", model.LengthShort, 9, 2),
		model.NewLoadItem("w250x32", model.LengthLong, 6, 1),
		model.NewLoadItem("w150x13", model.LengthShort, 5, 3),
	}

	result, err := engine.New(settings, model.DefaultCatalog()).Calculate(items)
	if err != nil {
		t.Fatalf("Calculate returned error: %v", err)
	}
	if len(result.Layers) == 0 {
		t.Fatal("expected at least one layer")
	}
	return result, settings
}

// twoLayerResult is a hand-built plan whose geometry is easy to check.
func twoLayerResult() (model.CalculationResult, model.LoadSettings) {
	piece := func(b string, l model.Length) model.BeamPiece {
		return model.BeamPiece{Bitola: b, Length: l, Weight: 0.5}
	}
	base := model.Layer{
		Index: 0,
		Slots: []model.Slot{
			{Width: 100, Height: 30, Weight: 1, Priority: 2, Pieces: []model.BeamPiece{piece("A", model.LengthLong)}},
		},
		TotalWidth: 120, // widened to match the level above
		MaxHeight:  30, MinHeight: 30, Priority: 2,
	}
	top := model.Layer{
		Index: 1,
		Slots: []model.Slot{
			{Width: 50, Height: 20, Weight: 1, Priority: 1, Paired: true,
				Pieces: []model.BeamPiece{piece("B", model.LengthShort), piece("B", model.LengthShort)}},
			{Width: 50, Height: 25, Weight: 0.5, Priority: 1, Pieces: []model.BeamPiece{piece("B", model.LengthShort)}},
		},
		TotalWidth: 120,
		MaxHeight:  25, MinHeight: 20, HeightDiff: 5, Priority: 1,
	}
	result := model.CalculationResult{
		Layers:           []model.Layer{base, top},
		TotalWeight:      2.5,
		TotalHeight:      30 + 25 + 2*10,
		MaxWidthUsed:     120,
		Errors:           []string{},
		Warnings:         []string{},
		EngineeringNotes: []string{"Level 1: base widened by 20cm to stabilize level 2."},
	}
	settings := model.DefaultSettings()
	settings.MaxWidth = 240
	settings.FixedGap = 20
	settings.WoodHeight = 10
	return result, settings
}
