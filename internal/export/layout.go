// Package export renders beam loading plans to PDF reports, QR bundle labels,
// DXF drawings, Excel workbooks and HTML charts.
package export

import (
	"math"

	"github.com/piwi3910/BeamLoad/internal/model"
)

// PlacedSlot is a slot positioned on the vehicle cross-section. Coordinates
// are in cm, X from the left edge of the drawing and Y from the vehicle floor
// upward.
type PlacedSlot struct {
	Layer int
	Index int
	X, Y  float64
	Slot  model.Slot
}

// Timber is the support wood laid under a layer.
type Timber struct {
	Layer      int
	X, Y, W, H float64
}

// CrossSection is the front view of a loading plan.
type CrossSection struct {
	Width    float64 // Drawing width, the larger of vehicle width and widest layer
	Height   float64 // Equals the result's total height
	MaxWidth float64 // Vehicle width
	Slots    []PlacedSlot
	Timbers  []Timber
}

// LayoutCrossSection positions every layer of result on the vehicle.
// Each layer sits on a timber of the settings' wood height spanning the
// layer's (possibly widened) total width. Layers and their slots are centred
// on the drawing.
func LayoutCrossSection(result model.CalculationResult, settings model.LoadSettings) CrossSection {
	cs := CrossSection{
		Width:    math.Max(settings.MaxWidth, result.MaxWidthUsed),
		MaxWidth: settings.MaxWidth,
	}

	y := 0.0
	for _, layer := range result.Layers {
		cs.Timbers = append(cs.Timbers, Timber{
			Layer: layer.Index,
			X:     (cs.Width - layer.TotalWidth) / 2,
			Y:     y,
			W:     layer.TotalWidth,
			H:     settings.WoodHeight,
		})
		y += settings.WoodHeight

		x := (cs.Width - layer.SlotsWidth(settings.FixedGap)) / 2
		for i, s := range layer.Slots {
			cs.Slots = append(cs.Slots, PlacedSlot{Layer: layer.Index, Index: i, X: x, Y: y, Slot: s})
			x += s.Width + settings.FixedGap
		}
		y += layer.MaxHeight
	}
	cs.Height = y
	return cs
}

// rgb is a fill color for a beam profile.
type rgb struct {
	R, G, B int
}

var bitolaColors = []rgb{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// colorIndex assigns each bitola a stable palette index in order of first
// appearance, so one profile keeps its color across layers and pages.
func colorIndex(result model.CalculationResult) map[string]int {
	idx := make(map[string]int)
	for _, l := range result.Layers {
		for _, s := range l.Slots {
			b := s.Bitola()
			if _, ok := idx[b]; !ok {
				idx[b] = len(idx)
			}
		}
	}
	return idx
}
