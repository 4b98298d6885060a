package engine

import "github.com/piwi3910/BeamLoad/internal/model"

// testCatalog uses round dimensions so expected widths are easy to derive.
func testCatalog() model.BeamCatalog {
	return model.BeamCatalog{Beams: []model.Beam{
		{ID: "b20", Bitola: "B20", Width: 20, Height: 20, Weight12m: 1.2},
		{ID: "wide", Bitola: "WIDE", Width: 100, Height: 20, Weight12m: 2.0},
		{ID: "tall", Bitola: "TALL", Width: 100, Height: 60, Weight12m: 3.0},
		{ID: "slab", Bitola: "SLAB", Width: 150, Height: 20, Weight12m: 2.5},
		{ID: "col", Bitola: "COL", Width: 200, Height: 40, Weight12m: 4.0},
		{ID: "huge", Bitola: "HUGE", Width: 300, Height: 30, Weight12m: 5.0},
	}}
}

func defaultTestSettings() model.LoadSettings {
	s := model.DefaultSettings()
	// Simplify for testing: no gap, no timber, no height limit
	s.FixedGap = 0
	s.WoodHeight = 0
	s.EnableHeightLimit = false
	return s
}

func item(beamID string, length model.Length, qty, priority int) model.LoadItem {
	return model.NewLoadItem(beamID, length, qty, priority)
}

func slot(width, height float64, priority int) model.Slot {
	return model.Slot{Width: width, Height: height, Weight: 1, Priority: priority}
}
