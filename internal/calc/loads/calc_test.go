package loads

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Retrofit/internal/calc/calcerr"
	"Retrofit/internal/calc/calctest"
	"Retrofit/internal/calc/consts"
	"Retrofit/internal/calc/options"
)

func TestCalculate_ReferenceBuilding(t *testing.T) {
	tests := []struct {
		name        string
		variant     options.Variant
		heatingQ    float64
		coolingQ    float64
		infiltrHeat float64
	}{
		{name: "baseline", variant: options.Baseline, heatingQ: 14272.8, coolingQ: 3571.3673, infiltrHeat: 1900.8},
		{name: "alternate", variant: options.Alternate, heatingQ: 10009.32, coolingQ: 2750.9728, infiltrHeat: 760.32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Calculate(calctest.Building(), calctest.Catalog(), tt.variant)
			require.NoError(t, err)

			assert.Equal(t, tt.variant.Name, res.Variant)
			assert.InDelta(t, 66.4, res.WallAboveGradeAreaM2, 1e-9)
			assert.InDelta(t, 0, res.WallBelowGradeAreaM2, 1e-9)
			assert.InDelta(t, 60, res.HeatingDeltaT, 1e-9)
			assert.InDelta(t, 15, res.GroundDeltaT, 1e-9)
			assert.InDelta(t, 5, res.CoolingDeltaT, 1e-9)
			assert.InDelta(t, tt.heatingQ, res.TotalHeatingQ, 1e-3)
			assert.InDelta(t, tt.coolingQ, res.TotalCoolingQ, 1e-3)
			assert.InDelta(t, tt.infiltrHeat, res.Heating.InfiltrationW, 1e-9)
			assert.Greater(t, res.TotalHeatingQ, 0.0)
			assert.Greater(t, res.TotalCoolingQ, 0.0)
		})
	}
}

func TestCalculate_ExactDecimalTerms(t *testing.T) {
	res, err := Calculate(calctest.Building(), calctest.Catalog(), options.Baseline)
	require.NoError(t, err)

	// 2.4 × 10 × 8 with 0.5 ACH
	assert.Equal(t, 96.0, res.InfiltrationAirflow)
	assert.Equal(t, 1900.8, res.Heating.InfiltrationW)
	assert.Equal(t, 1188.0, res.Heating.VentilationW)
	assert.Equal(t, 3984.0, res.Heating.WallAboveGradeW)
	assert.Equal(t, 390.0, res.Cooling.PeopleW)
	assert.Equal(t, 400.0, res.Cooling.LightingW)
	assert.Equal(t, 400.0, res.Cooling.EquipmentW)

	south := res.Windows[consts.South]
	assert.Equal(t, 3.75, south.GlazingM2)
	assert.Equal(t, 300.0, south.HeatingW)
	assert.Equal(t, 121.5, south.SolarGainW)
}

func TestCalculate_ZeroEnvelope(t *testing.T) {
	vars := calctest.Building()
	for _, k := range []string{"height", "length", "width", "north", "east", "south", "west", "roofArea", "floorArea"} {
		vars[k] = 0.0
	}
	vars["buildingVolume"] = 200.0

	res, err := Calculate(vars, calctest.Uniform(0), options.Baseline)
	require.NoError(t, err)

	assert.Zero(t, res.Heating.WallAboveGradeW)
	assert.Zero(t, res.Heating.RoofW)
	assert.Zero(t, res.Heating.FloorW)

	heating := res.Heating.InfiltrationW + res.Heating.VentilationW
	cooling := res.Cooling.InfiltrationW + res.Cooling.VentilationW +
		res.Cooling.PeopleW + res.Cooling.LightingW + res.Cooling.EquipmentW
	assert.InDelta(t, heating, res.TotalHeatingQ, 1e-9)
	assert.InDelta(t, cooling, res.TotalCoolingQ, 1e-9)
}

func TestCalculate_BuildingVolumeOverride(t *testing.T) {
	vars := calctest.Building()
	vars["buildingVolume"] = 300.0

	res, err := Calculate(vars, calctest.Catalog(), options.Baseline)
	require.NoError(t, err)
	assert.Equal(t, 150.0, res.InfiltrationAirflow)
}

func TestCalculate_Idempotent(t *testing.T) {
	vars, catalog := calctest.Building(), calctest.Catalog()

	first, err := Calculate(vars, catalog, options.Alternate)
	require.NoError(t, err)
	second, err := Calculate(vars, catalog, options.Alternate)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, calctest.Building(), vars)
}

func TestCalculate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(options.Variables, options.Catalog)
		wantErr error
	}{
		{
			name:    "missing roof option",
			mutate:  func(_ options.Variables, c options.Catalog) { delete(c, "roof") },
			wantErr: calcerr.ErrMissingOption,
		},
		{
			name:    "unknown window selection",
			mutate:  func(v options.Variables, _ options.Catalog) { v["windows"] = "quad" },
			wantErr: calcerr.ErrMissingOption,
		},
		{
			name:    "missing height",
			mutate:  func(v options.Variables, _ options.Catalog) { delete(v, "height") },
			wantErr: calcerr.ErrInvalidInput,
		},
		{
			name:    "non-numeric people",
			mutate:  func(v options.Variables, _ options.Catalog) { v["people"] = "several" },
			wantErr: calcerr.ErrInvalidInput,
		},
		{
			name: "openings larger than the wall",
			mutate: func(v options.Variables, _ options.Catalog) {
				for _, k := range []string{"north", "east", "south", "west"} {
					v[k] = 40.0
				}
			},
			wantErr: calcerr.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vars, catalog := calctest.Building(), calctest.Catalog()
			tt.mutate(vars, catalog)

			_, err := Calculate(vars, catalog, options.Baseline)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
