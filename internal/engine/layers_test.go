package engine

import (
	"testing"

	"github.com/piwi3910/BeamLoad/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLayers_AllFitInOneLayer(t *testing.T) {
	pool := []model.Slot{slot(20, 20, 1), slot(20, 20, 1), slot(20, 20, 1)}

	layers := BuildLayers(pool, 240, 10, model.MaxShimHeight)

	require.Len(t, layers, 1)
	assert.Len(t, layers[0].Slots, 3)
	assert.Equal(t, 80.0, layers[0].TotalWidth, "20+10+20+10+20")
	assert.Equal(t, 0, layers[0].Index)
}

func TestBuildLayers_WidthLimitOpensNewLayer(t *testing.T) {
	pool := []model.Slot{slot(100, 20, 1), slot(100, 20, 1), slot(100, 20, 1)}

	layers := BuildLayers(pool, 240, 0, model.MaxShimHeight)

	require.Len(t, layers, 2)
	assert.Len(t, layers[0].Slots, 2)
	assert.Len(t, layers[1].Slots, 1)
	assert.Equal(t, 1, layers[1].Index)
}

func TestBuildLayers_SpacingCountsBetweenSlots(t *testing.T) {
	// 3 x 70 = 210 fits without spacing, but 70+20+70+20+70 = 250 does not.
	pool := []model.Slot{slot(70, 20, 1), slot(70, 20, 1), slot(70, 20, 1)}

	assert.Len(t, BuildLayers(pool, 240, 0, model.MaxShimHeight), 1)
	assert.Len(t, BuildLayers(pool, 240, 20, model.MaxShimHeight), 2)
}

func TestBuildLayers_ScanContinuesPastRejectedSlot(t *testing.T) {
	pool := []model.Slot{
		slot(100, 20, 1),
		slot(100, 60, 1), // rejected by height, waits for the next layer
		slot(100, 25, 1), // still accepted in the first layer
	}

	layers := BuildLayers(pool, 240, 0, model.MaxShimHeight)

	require.Len(t, layers, 2)
	require.Len(t, layers[0].Slots, 2)
	assert.Equal(t, 20.0, layers[0].Slots[0].Height)
	assert.Equal(t, 25.0, layers[0].Slots[1].Height)
	assert.Equal(t, 5.0, layers[0].HeightDiff)
	require.Len(t, layers[1].Slots, 1)
	assert.Equal(t, 60.0, layers[1].Slots[0].Height)
}

func TestBuildLayers_ShimToleranceIsInclusive(t *testing.T) {
	pool := []model.Slot{slot(50, 20, 1), slot(50, 35, 1), slot(50, 36, 1)}

	layers := BuildLayers(pool, 240, 0, 15)

	require.Len(t, layers, 2)
	assert.Len(t, layers[0].Slots, 2, "a 15cm difference is still within tolerance")
	assert.Equal(t, 15.0, layers[0].HeightDiff)
}

func TestBuildLayers_OversizeSlotIsForcedIntoOwnLayer(t *testing.T) {
	pool := []model.Slot{slot(300, 30, 1), slot(20, 20, 1)}

	layers := BuildLayers(pool, 240, 0, model.MaxShimHeight)

	require.Len(t, layers, 2)
	// The first pass skips the oversize slot and takes the small one.
	require.Len(t, layers[0].Slots, 1)
	assert.Equal(t, 20.0, layers[0].Slots[0].Width)
	// The second pass accepts nothing and forces the oversize slot.
	require.Len(t, layers[1].Slots, 1)
	assert.Equal(t, 300.0, layers[1].TotalWidth)
}

func TestBuildLayers_OnlyOversizeSlotsTerminates(t *testing.T) {
	pool := []model.Slot{slot(300, 30, 1), slot(300, 30, 1), slot(300, 30, 1)}

	layers := BuildLayers(pool, 240, 0, model.MaxShimHeight)

	require.Len(t, layers, 3)
	for i, l := range layers {
		assert.Equal(t, i, l.Index)
		assert.Len(t, l.Slots, 1)
	}
}

func TestBuildLayers_HeightDiffWithinTolerance(t *testing.T) {
	heights := []float64{14.8, 52.4, 20.0, 31.3, 45.5, 25.7, 35.2, 40.3, 15.3, 20.6, 31.0, 25.8}
	var pool []model.Slot
	for i := 0; i < 60; i++ {
		pool = append(pool, slot(10+float64(i%7)*3, heights[i%len(heights)], i%4))
	}
	SortPool(pool)

	layers := BuildLayers(pool, 240, 2, model.MaxShimHeight)

	count := 0
	for _, l := range layers {
		count += len(l.Slots)
		if len(l.Slots) > 1 {
			assert.LessOrEqual(t, l.HeightDiff, model.MaxShimHeight, "layer %d", l.Index)
			assert.LessOrEqual(t, l.TotalWidth, 240.0, "layer %d", l.Index)
		}
	}
	assert.Equal(t, len(pool), count, "every slot must be placed exactly once")
}

func TestBuildLayers_DoesNotModifyInput(t *testing.T) {
	pool := []model.Slot{slot(100, 20, 1), slot(100, 60, 2), slot(100, 20, 3)}
	orig := make([]model.Slot, len(pool))
	copy(orig, pool)

	BuildLayers(pool, 240, 0, model.MaxShimHeight)

	assert.Equal(t, orig, pool)
}

func TestBuildLayers_EmptyPool(t *testing.T) {
	assert.Empty(t, BuildLayers(nil, 240, 0, model.MaxShimHeight))
}

func TestNewLayer_Fields(t *testing.T) {
	slots := []model.Slot{slot(20, 30, 4), slot(30, 20, 2), slot(10, 25, 7)}

	l := newLayer(3, slots, 5)

	assert.Equal(t, 3, l.Index)
	assert.Equal(t, 70.0, l.TotalWidth, "60 of slots plus 2 gaps of 5")
	assert.Equal(t, 30.0, l.MaxHeight)
	assert.Equal(t, 20.0, l.MinHeight)
	assert.Equal(t, 10.0, l.HeightDiff)
	assert.Equal(t, 2, l.Priority, "layer priority is the most urgent slot")
}
