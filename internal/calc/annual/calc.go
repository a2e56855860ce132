package annual

import (
	"fmt"

	"Retrofit/internal/calc/calcerr"
	"Retrofit/internal/calc/consts"
	"Retrofit/internal/calc/options"
)

type Transmission struct {
	WallAboveGradeKWh float64 `json:"wall_above_grade_kwh"`
	WallBelowGradeKWh float64 `json:"wall_below_grade_kwh"`
	RoofKWh           float64 `json:"roof_kwh"`
	FloorKWh          float64 `json:"floor_kwh"`
	DoorKWh           float64 `json:"door_kwh"`
	WindowsKWh        float64 `json:"windows_kwh"`
}

type Result struct {
	Variant             string                         `json:"variant"`
	Transmission        Transmission                   `json:"transmission"`
	TotalTransmission   float64                        `json:"total_transmission_kwh"`
	VentilationKWh      float64                        `json:"ventilation_kwh"`
	InfiltrationKWh     float64                        `json:"infiltration_kwh"`
	TotalLosses         float64                        `json:"total_losses_kwh"`
	SolarGains          map[consts.Orientation]float64 `json:"solar_gains_kwh"`
	TotalSolarGains     float64                        `json:"total_solar_gains_kwh"`
	InternalGains       float64                        `json:"internal_gains_kwh"`
	UsableGains         float64                        `json:"usable_gains_kwh"`
	AnnualHeatingDemand float64                        `json:"annual_heating_demand_kwh"`
	SpaceHeatingDemand  float64                        `json:"space_heating_demand_kwh_m2"`
}

// Calculate estimates the annual space-heating demand of one design with the
// degree-hour method. heatingDegreeHours is in kKh so area × U × G is kWh.
func Calculate(vars options.Variables, catalog options.Catalog, variant options.Variant) (Result, error) {
	r := options.NewReader(vars, catalog, variant)

	height := r.Number("height")
	length := r.Number("length")
	width := r.Number("width")
	depth := r.NumberOr("depth", 0)
	doorArea := r.NumberOr("exteriorSolidDoorArea", 0)
	roofArea := r.Number("roofArea")
	floorArea := r.Number("floorArea")
	interiorArea := r.Number("interiorFloorArea")
	g := r.Number("heatingDegreeHours")

	windowArea := make(map[consts.Orientation]float64, len(consts.Orientations))
	totalWindowArea := 0.0
	for _, o := range consts.Orientations {
		windowArea[o] = r.Number(string(o))
		totalWindowArea += windowArea[o]
	}

	wallAboveU := r.Option("wallAboveGrade", "u")
	wallBelowU := r.Option("wallBelowGrade", "u")
	roofU := r.Option("roof", "u")
	floorU := r.Option("floor", "u")
	doorU := r.Option("solidDoor", "u")
	windowU := r.Option("windows", "u")
	shgc := r.Option("windows", "shgc")
	ventEff := r.Option("ventilation", "efficiency")
	infilRate := r.Option("airtightness", "annualEnergy")
	if err := r.Err(); err != nil {
		return Result{}, fmt.Errorf("annual space heating (%s): %w", variant.Name, err)
	}
	if interiorArea <= 0 {
		return Result{}, calcerr.Invalid("annual.calculate", "interiorFloorArea", "must be positive, got %g", interiorArea)
	}

	wallAboveArea := 2*(length*height) + 2*(width*height) - (totalWindowArea + doorArea)
	if wallAboveArea < 0 {
		return Result{}, calcerr.Invalid("annual.calculate", "wallAboveGrade",
			"openings of %g m² exceed the gross wall area (%s)", totalWindowArea+doorArea, variant.Name)
	}
	wallBelowArea := 2*(length*depth) + 2*(width*depth)
	groundG := consts.GroundReductionFactor * g

	tr := Transmission{
		WallAboveGradeKWh: wallAboveArea * wallAboveU * g,
		WallBelowGradeKWh: wallBelowArea * wallBelowU * groundG,
		RoofKWh:           roofArea * roofU * g,
		FloorKWh:          floorArea * floorU * groundG,
		DoorKWh:           doorArea * doorU * g,
		WindowsKWh:        totalWindowArea * windowU * g,
	}
	totalTr := tr.WallAboveGradeKWh + tr.WallBelowGradeKWh + tr.RoofKWh + tr.FloorKWh + tr.DoorKWh + tr.WindowsKWh

	airVolume := interiorArea * consts.CeilingHeightM
	ventLoss := consts.VentilationRate * (1 - ventEff)
	ventilation := ventLoss * airVolume * consts.AirHeatCapacity * g
	infiltration := infilRate * airVolume * consts.AirHeatCapacity * g
	losses := totalTr + ventilation + infiltration

	solar := make(map[consts.Orientation]float64, len(consts.Orientations))
	totalSolar := 0.0
	for _, o := range consts.Orientations {
		solar[o] = consts.WinterShading * shgc * windowArea[o] * consts.HeatingSeasonRadiation[o]
		totalSolar += solar[o]
	}
	internal := consts.HeatingPeriodDays * consts.InternalGainWattsM2 * interiorArea * consts.KWhPerWattDay
	usable := (totalSolar + internal) * consts.UtilizationFactor

	demand := losses - usable

	return Result{
		Variant:             variant.Name,
		Transmission:        tr,
		TotalTransmission:   totalTr,
		VentilationKWh:      ventilation,
		InfiltrationKWh:     infiltration,
		TotalLosses:         losses,
		SolarGains:          solar,
		TotalSolarGains:     totalSolar,
		InternalGains:       internal,
		UsableGains:         usable,
		AnnualHeatingDemand: demand,
		SpaceHeatingDemand:  demand / interiorArea,
	}, nil
}
