package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Retrofit/internal/calc/annual"
	"Retrofit/internal/calc/calcerr"
	"Retrofit/internal/calc/calctest"
	"Retrofit/internal/calc/loads"
	"Retrofit/internal/calc/options"
)

func evaluate(t *testing.T, vars options.Variables, catalog options.Catalog, variant options.Variant) (Result, error) {
	t.Helper()
	hc, err := loads.Calculate(vars, catalog, variant)
	require.NoError(t, err)
	ash, err := annual.Calculate(vars, catalog, variant)
	require.NoError(t, err)
	return Calculate(vars, catalog, variant, hc, ash)
}

func TestCalculate_ReferenceBuilding(t *testing.T) {
	tests := []struct {
		name     string
		variant  options.Variant
		expected Result
	}{
		{
			name:    "baseline",
			variant: options.Baseline,
			expected: Result{
				Variant:                   "baseline",
				HeatingLoadKW:             15.7,
				CoolingLoadKW:             3.6,
				SpaceHeatingDemand:        9689,
				SpaceHeating:              861225,
				HotWater:                  1125,
				LightsAppliancesPlugs:     2920,
				TotalEnergyConsumption:    865270,
				SpaceHeatingCost:          43061.25,
				HotWaterCost:              56.25,
				LightsAppliancesPlugsCost: 438,
				TotalEnergyCosts:          43555.5,
			},
		},
		{
			name:    "alternate",
			variant: options.Alternate,
			expected: Result{
				Variant:                   "alternate",
				HeatingLoadKW:             11.0,
				CoolingLoadKW:             2.8,
				SpaceHeatingDemand:        6998,
				SpaceHeating:              186625,
				HotWater:                  1125,
				LightsAppliancesPlugs:     2920,
				TotalEnergyConsumption:    190670,
				SpaceHeatingCost:          27993.75,
				HotWaterCost:              56.25,
				LightsAppliancesPlugsCost: 438,
				TotalEnergyCosts:          28488,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := evaluate(t, calctest.Building(), calctest.Catalog(), tt.variant)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, res)
		})
	}
}

func TestCalculate_ScalesWithUnits(t *testing.T) {
	vars := calctest.Building()
	vars["units"] = 2.0

	res, err := evaluate(t, vars, calctest.Catalog(), options.Baseline)
	require.NoError(t, err)

	assert.Equal(t, 2250.0, res.HotWater)
	assert.Equal(t, 5840.0, res.LightsAppliancesPlugs)
	assert.Equal(t, 876.0, res.LightsAppliancesPlugsCost)
}

func TestCalculate_DrainWaterRecovery(t *testing.T) {
	catalog := calctest.Catalog()
	catalog["drainWaterHeatRecovery"] = options.Category{Values: []options.Entry{{"none": {"efficiency": 0.4}}}}

	res, err := evaluate(t, calctest.Building(), catalog, options.Baseline)
	require.NoError(t, err)

	assert.Equal(t, 675.0, res.HotWater)
}

func TestCalculate_CostsFollowFuelPrice(t *testing.T) {
	vars := calctest.Building()
	vars["gasPrice"] = "0.10"

	res, err := evaluate(t, vars, calctest.Catalog(), options.Baseline)
	require.NoError(t, err)

	assert.Equal(t, 86122.5, res.SpaceHeatingCost)
	assert.Equal(t, 112.5, res.HotWaterCost)
	assert.Equal(t, 86673.0, res.TotalEnergyCosts)
}

func TestCalculate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(options.Variables, options.Catalog)
		wantErr error
	}{
		{
			name:    "missing fuel price",
			mutate:  func(v options.Variables, _ options.Catalog) { delete(v, "gasPrice") },
			wantErr: calcerr.ErrInvalidInput,
		},
		{
			name:    "unknown fuel type",
			mutate:  func(v options.Variables, _ options.Catalog) { v["hotWaterFuelType"] = "wood" },
			wantErr: calcerr.ErrMissingOption,
		},
		{
			name:    "missing lighting option",
			mutate:  func(_ options.Variables, c options.Catalog) { delete(c, "lighting") },
			wantErr: calcerr.ErrMissingOption,
		},
		{
			name: "zero heating efficiency",
			mutate: func(_ options.Variables, c options.Catalog) {
				c["heating"] = options.Category{Values: []options.Entry{{"furnace": {"efficiency": 0.0}}}}
			},
			wantErr: calcerr.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vars, catalog := calctest.Building(), calctest.Catalog()
			hc, err := loads.Calculate(vars, catalog, options.Baseline)
			require.NoError(t, err)
			ash, err := annual.Calculate(vars, catalog, options.Baseline)
			require.NoError(t, err)

			tt.mutate(vars, catalog)
			_, err = Calculate(vars, catalog, options.Baseline, hc, ash)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
