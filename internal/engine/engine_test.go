package engine

import (
	"errors"
	"testing"

	"github.com/piwi3910/BeamLoad/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func calculate(t *testing.T, settings model.LoadSettings, items ...model.LoadItem) model.CalculationResult {
	t.Helper()
	result, err := New(settings, testCatalog()).Calculate(items)
	require.NoError(t, err)
	return result
}

func TestCalculate_SingleLayerWithSpacing(t *testing.T) {
	s := defaultTestSettings()
	s.FixedGap = 10

	result := calculate(t, s, item("b20", model.LengthLong, 3, 1))

	require.Len(t, result.Layers, 1)
	assert.Len(t, result.Layers[0].Slots, 3)
	assert.Equal(t, 80.0, result.Layers[0].TotalWidth)
	assert.Equal(t, 80.0, result.MaxWidthUsed)
	assert.InDelta(t, 3.6, result.TotalWeight, 1e-9)
	assert.Equal(t, 20.0, result.TotalHeight)
	assert.Empty(t, result.Errors)
	assert.Equal(t, []string{introNote}, result.EngineeringNotes)
}

func TestCalculate_HighestPriorityValueGoesToBase(t *testing.T) {
	result := calculate(t, defaultTestSettings(),
		item("wide", model.LengthLong, 2, 1),
		item("wide", model.LengthLong, 2, 5),
	)

	require.Len(t, result.Layers, 2)
	assert.Equal(t, 5, result.Layers[0].Priority)
	assert.Equal(t, 1, result.Layers[1].Priority)
	for _, s := range result.Layers[0].Slots {
		assert.Equal(t, 5, s.Priority)
	}
}

func TestCalculate_HeightLimitBlocksLoad(t *testing.T) {
	s := defaultTestSettings()
	s.WoodHeight = 5
	s.EnableHeightLimit = true
	s.MaxHeightLimit = 350

	result := calculate(t, s, item("col", model.LengthLong, 8, 1))

	require.Len(t, result.Layers, 8)
	assert.Equal(t, 360.0, result.TotalHeight)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "360.0cm > 350cm")
	assert.False(t, result.IsSafe())
}

func TestCalculate_HeightLimitDisabled(t *testing.T) {
	s := defaultTestSettings()
	s.WoodHeight = 5
	s.MaxHeightLimit = 350

	result := calculate(t, s, item("col", model.LengthLong, 8, 1))

	assert.Equal(t, 360.0, result.TotalHeight)
	assert.Empty(t, result.Errors)
}

func TestCalculate_HeightAtLimitIsAllowed(t *testing.T) {
	s := defaultTestSettings()
	s.WoodHeight = 5
	s.EnableHeightLimit = true
	s.MaxHeightLimit = 360

	result := calculate(t, s, item("col", model.LengthLong, 8, 1))

	assert.Empty(t, result.Errors)
	assert.True(t, result.IsSafe())
}

func TestCalculate_StabilizesNarrowBase(t *testing.T) {
	result := calculate(t, defaultTestSettings(),
		item("slab", model.LengthLong, 1, 5),
		item("tall", model.LengthLong, 2, 1),
	)

	require.Len(t, result.Layers, 2)
	assert.Equal(t, 200.0, result.Layers[0].TotalWidth)
	assert.Equal(t, 150.0, result.Layers[0].SlotsWidth(0), "slots are unchanged by widening")
	assert.Equal(t, 200.0, result.Layers[1].TotalWidth)
	assert.Equal(t, []string{
		introNote,
		"Level 1: base widened by 50cm to stabilize level 2.",
	}, result.EngineeringNotes)
}

func TestCalculate_WeightConservation(t *testing.T) {
	items := []model.LoadItem{
		item("b20", model.LengthShort, 7, 1),
		item("b20", model.LengthLong, 4, 2),
		item("wide", model.LengthShort, 3, 3),
		item("tall", model.LengthLong, 1, 1),
		item("slab", model.LengthShort, 2, 2),
	}
	cat := testCatalog()

	var expected float64
	for _, it := range items {
		beam, ok := cat.Lookup(it.BeamID)
		require.True(t, ok)
		expected += float64(it.Quantity) * beam.WeightFor(it.Length)
	}

	result := calculate(t, defaultTestSettings(), items...)

	assert.InDelta(t, expected, result.TotalWeight, 1e-9)
	assert.Equal(t, 7+4+3+1+2, result.PieceCount())
}

func TestCalculate_PyramidAndShimInvariants(t *testing.T) {
	s := defaultTestSettings()
	s.FixedGap = 5
	result := calculate(t, s,
		item("b20", model.LengthShort, 11, 2),
		item("wide", model.LengthLong, 5, 1),
		item("tall", model.LengthLong, 3, 4),
		item("slab", model.LengthShort, 3, 3),
		item("col", model.LengthLong, 2, 1),
	)

	for i, l := range result.Layers {
		if len(l.Slots) > 1 {
			assert.LessOrEqual(t, l.HeightDiff, model.MaxShimHeight, "layer %d", i)
		}
		if i+1 < len(result.Layers) {
			assert.GreaterOrEqual(t, l.TotalWidth, result.Layers[i+1].TotalWidth, "layer %d", i)
		}
	}
}

func TestCalculate_Idempotent(t *testing.T) {
	items := []model.LoadItem{
		item("b20", model.LengthShort, 5, 2),
		item("wide", model.LengthLong, 3, 1),
		item("tall", model.LengthShort, 4, 3),
	}
	eng := New(defaultTestSettings(), testCatalog())

	first, err := eng.Calculate(items)
	require.NoError(t, err)
	second, err := eng.Calculate(items)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCalculate_EmptyItems(t *testing.T) {
	result := calculate(t, model.DefaultSettings())

	assert.Empty(t, result.Layers)
	assert.NotNil(t, result.Layers)
	assert.Zero(t, result.TotalWeight)
	assert.Zero(t, result.TotalHeight)
	assert.Zero(t, result.MaxWidthUsed)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
	assert.Empty(t, result.EngineeringNotes)
	assert.False(t, result.IsSafe())
}

func TestCalculate_UnknownBeam(t *testing.T) {
	_, err := New(defaultTestSettings(), testCatalog()).Calculate([]model.LoadItem{
		item("b20", model.LengthLong, 1, 1),
		item("missing", model.LengthLong, 1, 1),
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownBeam))
	assert.Contains(t, err.Error(), "missing")
}

func TestCalculate_UnsupportedLength(t *testing.T) {
	_, err := New(defaultTestSettings(), testCatalog()).Calculate([]model.LoadItem{
		item("b20", model.Length(9), 1, 1),
	})

	assert.ErrorIs(t, err, ErrUnsupportedLength)
}

func TestCalculate_OversizeSlotIsNotAnError(t *testing.T) {
	result := calculate(t, defaultTestSettings(), item("huge", model.LengthLong, 1, 1))

	require.Len(t, result.Layers, 1)
	assert.Equal(t, 300.0, result.MaxWidthUsed)
	assert.Empty(t, result.Errors)
	assert.Greater(t, result.Utilization(240), 100.0)
}

func TestCalculate_WarningsAlwaysEmpty(t *testing.T) {
	s := defaultTestSettings()
	s.EnableHeightLimit = true
	s.MaxHeightLimit = 10

	result := calculate(t, s, item("tall", model.LengthLong, 2, 1))

	assert.NotEmpty(t, result.Errors)
	assert.NotNil(t, result.Warnings)
	assert.Empty(t, result.Warnings)
}

func TestCalculate_WoodHeightAddsPerLayer(t *testing.T) {
	s := defaultTestSettings()
	s.WoodHeight = 8.5

	result := calculate(t, s, item("wide", model.LengthLong, 3, 1))

	require.Len(t, result.Layers, 2)
	assert.InDelta(t, 2*(20+8.5), result.TotalHeight, 1e-9)
}

func TestNew_DefaultShimTolerance(t *testing.T) {
	eng := New(model.DefaultSettings(), model.DefaultCatalog())
	assert.Equal(t, model.MaxShimHeight, eng.ShimTolerance)
}

func TestCalculate_CustomShimTolerance(t *testing.T) {
	eng := New(defaultTestSettings(), testCatalog())
	eng.ShimTolerance = 100

	result, err := eng.Calculate([]model.LoadItem{
		item("wide", model.LengthLong, 1, 1),
		item("tall", model.LengthLong, 1, 1),
	})
	require.NoError(t, err)

	require.Len(t, result.Layers, 1, "a wide tolerance lets wide and tall share a layer")
	assert.Equal(t, 40.0, result.Layers[0].HeightDiff)
}

func TestAggregate_UsesStabilizedWidth(t *testing.T) {
	layers := layersWithWidths(150, 200)
	Stabilize(layers)

	result := Aggregate(layers, defaultTestSettings())

	assert.Equal(t, 200.0, result.MaxWidthUsed)
	assert.Equal(t, 2.0, result.TotalWeight)
	assert.Equal(t, 40.0, result.TotalHeight)
}

func TestDefaultCatalog_RealisticLoad(t *testing.T) {
	cat := model.DefaultCatalog()
	ids := cat.IDs()
	require.NotEmpty(t, ids)

	var items []model.LoadItem
	for i, id := range ids {
		items = append(items, item(id, model.LengthShort, 3+i%4, 1+i%3))
		items = append(items, item(id, model.LengthLong, 1+i%2, 1+i%3))
	}

	result, err := New(model.DefaultSettings(), cat).Calculate(items)
	require.NoError(t, err)

	assert.NotEmpty(t, result.Layers)
	assert.Equal(t, introNote, result.EngineeringNotes[0])
	assert.Empty(t, result.Warnings)
}
