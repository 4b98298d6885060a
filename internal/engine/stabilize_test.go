package engine

import (
	"testing"

	"github.com/piwi3910/BeamLoad/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func layersWithWidths(widths ...float64) []model.Layer {
	layers := make([]model.Layer, len(widths))
	for i, w := range widths {
		layers[i] = model.Layer{Index: i, TotalWidth: w, MaxHeight: 20, MinHeight: 20, Slots: []model.Slot{slot(w, 20, 1)}}
	}
	return layers
}

func TestStabilize_WidensNarrowerBase(t *testing.T) {
	layers := layersWithWidths(150, 200)

	notes := Stabilize(layers)

	assert.Equal(t, 200.0, layers[0].TotalWidth)
	assert.Equal(t, 200.0, layers[1].TotalWidth)
	require.Len(t, notes, 1)
	assert.Equal(t, "Level 1: base widened by 50cm to stabilize level 2.", notes[0])
}

func TestStabilize_CascadesFromTopDown(t *testing.T) {
	layers := layersWithWidths(100, 150, 200)

	notes := Stabilize(layers)

	for _, l := range layers {
		assert.Equal(t, 200.0, l.TotalWidth)
	}
	require.Len(t, notes, 2)
	assert.Contains(t, notes[0], "Level 2")
	assert.Contains(t, notes[0], "50cm")
	assert.Contains(t, notes[1], "Level 1")
	assert.Contains(t, notes[1], "100cm", "the base is compared against the already widened level 2")
}

func TestStabilize_PyramidUnchanged(t *testing.T) {
	layers := layersWithWidths(240, 200, 200, 80)

	notes := Stabilize(layers)

	assert.Empty(t, notes)
	assert.Equal(t, []float64{240, 200, 200, 80}, widthsOf(layers))
}

func TestStabilize_LeavesSlotsUntouched(t *testing.T) {
	layers := layersWithWidths(50, 200)
	before := layers[0].Slots[0]

	Stabilize(layers)

	assert.Equal(t, before, layers[0].Slots[0])
	assert.Equal(t, 50.0, layers[0].SlotsWidth(0))
}

func TestStabilize_NonIncreasingUpward(t *testing.T) {
	layers := layersWithWidths(90, 240, 60, 180, 120, 200, 30)

	Stabilize(layers)

	for i := 0; i+1 < len(layers); i++ {
		assert.GreaterOrEqual(t, layers[i].TotalWidth, layers[i+1].TotalWidth, "layer %d", i)
	}
}

func TestStabilize_EmptyAndSingle(t *testing.T) {
	assert.Empty(t, Stabilize(nil))
	assert.Empty(t, Stabilize(layersWithWidths(100)))
}

func widthsOf(layers []model.Layer) []float64 {
	w := make([]float64, len(layers))
	for i, l := range layers {
		w[i] = l.TotalWidth
	}
	return w
}
