package engine

import (
	"testing"

	"github.com/piwi3910/BeamLoad/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareScenarios_WiderVehicleUsesFewerLayers(t *testing.T) {
	narrow := defaultTestSettings()
	wide := defaultTestSettings()
	wide.UseVehicle(model.GetVehicle(model.VehicleVagao3m))

	items := []model.LoadItem{item("wide", model.LengthLong, 3, 1)}
	results, err := CompareScenarios([]ComparisonScenario{
		{Name: "narrow", Settings: narrow},
		{Name: "wide", Settings: wide},
	}, items, testCatalog())
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "narrow", results[0].Scenario.Name)
	assert.Equal(t, 2, results[0].LayerCount)
	assert.Equal(t, 1, results[1].LayerCount)
	assert.Equal(t, 300.0, results[1].MaxWidthUsed)
	assert.InDelta(t, 100.0, results[1].Utilization, 1e-9)
	assert.True(t, results[1].Safe)
}

func TestCompareScenarios_PropagatesErrors(t *testing.T) {
	_, err := CompareScenarios([]ComparisonScenario{
		{Name: "current", Settings: defaultTestSettings()},
	}, []model.LoadItem{item("nope", model.LengthLong, 1, 1)}, testCatalog())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownBeam)
	assert.Contains(t, err.Error(), `scenario "current"`)
}

func TestCompareScenarios_Empty(t *testing.T) {
	results, err := CompareScenarios(nil, nil, testCatalog())
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestBuildDefaultScenarios(t *testing.T) {
	base := model.DefaultSettings()

	scenarios := BuildDefaultScenarios(base, model.Vehicles)

	require.Len(t, scenarios, len(model.Vehicles))
	assert.Equal(t, "Current Settings", scenarios[0].Name)
	assert.Equal(t, base, scenarios[0].Settings)
	for _, sc := range scenarios[1:] {
		assert.NotEqual(t, model.VehicleCarreta, sc.Settings.VehicleType)
		assert.Equal(t, base.WoodHeight, sc.Settings.WoodHeight)
	}
	assert.Equal(t, 300.0, scenarios[len(scenarios)-1].Settings.MaxWidth)
}

func TestBuildDefaultScenarios_NoGapAlternative(t *testing.T) {
	base := model.DefaultSettings()
	base.FixedGap = 4

	scenarios := BuildDefaultScenarios(base, nil)

	require.Len(t, scenarios, 2)
	assert.Equal(t, "No Fixed Gap", scenarios[1].Name)
	assert.Zero(t, scenarios[1].Settings.FixedGap)
	assert.Equal(t, 4.0, base.FixedGap, "base settings are copied, not modified")
}
