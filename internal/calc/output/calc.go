package output

import (
	"fmt"

	"github.com/shopspring/decimal"

	"Retrofit/internal/calc/annual"
	"Retrofit/internal/calc/calcerr"
	"Retrofit/internal/calc/consts"
	"Retrofit/internal/calc/loads"
	"Retrofit/internal/calc/options"
)

// EndUse names a metered end use and the fuel-type category that prices it.
type EndUse struct {
	Name     string
	FuelType string
}

var (
	SpaceHeating          = EndUse{Name: "spaceHeating", FuelType: "spaceHeatingFuelType"}
	HotWater              = EndUse{Name: "hotWater", FuelType: "hotWaterFuelType"}
	LightsAppliancesPlugs = EndUse{Name: "lightsAppliancesPlugs", FuelType: "lightsAppliancesPlugsFuelType"}
)

type Result struct {
	Variant                   string  `json:"variant"`
	HeatingLoadKW             float64 `json:"heating_load_kw"`
	CoolingLoadKW             float64 `json:"cooling_load_kw"`
	SpaceHeatingDemand        float64 `json:"space_heating_demand_kwh_m2"`
	SpaceHeating              float64 `json:"space_heating_kwh"`
	HotWater                  float64 `json:"hot_water_kwh"`
	LightsAppliancesPlugs     float64 `json:"lights_appliances_plugs_kwh"`
	TotalEnergyConsumption    float64 `json:"total_energy_consumption_kwh"`
	SpaceHeatingCost          float64 `json:"space_heating_cost"`
	HotWaterCost              float64 `json:"hot_water_cost"`
	LightsAppliancesPlugsCost float64 `json:"lights_appliances_plugs_cost"`
	TotalEnergyCosts          float64 `json:"total_energy_costs"`
}

func round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// Calculate turns the load and annual models of one design into kW loads and
// per-end-use energy and cost. All presentation rounding happens here.
func Calculate(vars options.Variables, catalog options.Catalog, variant options.Variant, hc loads.Result, ash annual.Result) (Result, error) {
	r := options.NewReader(vars, catalog, variant)

	units := r.Number("units")
	heatingEff := r.Option("heating", "efficiency")
	flow := r.Option("hotWaterFixtures", "flow")
	storage := r.Option("hotWaterHeaterStorage", "value")
	heaterEff := r.Option("hotWaterHeater", "efficiency")
	recovery := r.Option("drainWaterHeatRecovery", "efficiency")
	lighting := r.Option("lighting", "value")
	appliances := r.Option("appliances", "value")
	plugs := r.Option("plugLoads", "value")
	shPrice := r.Price(SpaceHeating.FuelType)
	hwPrice := r.Price(HotWater.FuelType)
	lapPrice := r.Price(LightsAppliancesPlugs.FuelType)
	if err := r.Err(); err != nil {
		return Result{}, fmt.Errorf("output (%s): %w", variant.Name, err)
	}
	if heatingEff <= 0 || heaterEff <= 0 {
		return Result{}, calcerr.Invalid("output.calculate", "efficiency", "%s design heater efficiency must be positive", variant.Name)
	}

	spaceHeating := round(ash.AnnualHeatingDemand/heatingEff, consts.EnergyPrecision)
	hotWater := round((consts.DHWFixtureFactor*flow+storage+consts.DHWDistributionLosses)/heaterEff*(1-recovery)*units, consts.EnergyPrecision)
	lap := round((lighting+appliances+plugs)*consts.DaysPerYear*units, consts.EnergyPrecision)

	shCost := round(spaceHeating*shPrice, consts.CostPrecision)
	hwCost := round(hotWater*hwPrice, consts.CostPrecision)
	lapCost := round(lap*lapPrice, consts.CostPrecision)
	totalCost := decimal.NewFromFloat(shCost).
		Add(decimal.NewFromFloat(hwCost)).
		Add(decimal.NewFromFloat(lapCost)).
		Round(consts.CostPrecision).
		InexactFloat64()

	return Result{
		Variant:                   variant.Name,
		HeatingLoadKW:             round(hc.TotalHeatingQ/consts.WattsPerKilowatt*consts.HeatingSizingGain, consts.LoadPrecision),
		CoolingLoadKW:             round(hc.TotalCoolingQ/consts.WattsPerKilowatt, consts.LoadPrecision),
		SpaceHeatingDemand:        round(ash.SpaceHeatingDemand, consts.EnergyPrecision),
		SpaceHeating:              spaceHeating,
		HotWater:                  hotWater,
		LightsAppliancesPlugs:     lap,
		TotalEnergyConsumption:    spaceHeating + hotWater + lap,
		SpaceHeatingCost:          shCost,
		HotWaterCost:              hwCost,
		LightsAppliancesPlugsCost: lapCost,
		TotalEnergyCosts:          totalCost,
	}, nil
}
