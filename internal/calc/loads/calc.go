package loads

import (
	"fmt"

	"github.com/shopspring/decimal"

	"Retrofit/internal/calc/calcerr"
	"Retrofit/internal/calc/consts"
	"Retrofit/internal/calc/options"
)

type WindowLoad struct {
	U            float64 `json:"u"`
	SHGC         float64 `json:"shgc"`
	AreaM2       float64 `json:"area_m2"`
	GlazingM2    float64 `json:"glazing_m2"`
	HeatingW     float64 `json:"heating_w"`
	ConductionW  float64 `json:"conduction_w"`
	SolarGainW   float64 `json:"solar_gain_w"`
	TotalCooling float64 `json:"total_cooling_w"`
}

type Heating struct {
	WallAboveGradeW float64 `json:"wall_above_grade_w"`
	WallBelowGradeW float64 `json:"wall_below_grade_w"`
	RoofW           float64 `json:"roof_w"`
	FloorW          float64 `json:"floor_w"`
	DoorW           float64 `json:"door_w"`
	InfiltrationW   float64 `json:"infiltration_w"`
	VentilationW    float64 `json:"ventilation_w"`
}

type Cooling struct {
	WallAboveGradeW float64 `json:"wall_above_grade_w"`
	RoofW           float64 `json:"roof_w"`
	DoorW           float64 `json:"door_w"`
	InfiltrationW   float64 `json:"infiltration_w"`
	VentilationW    float64 `json:"ventilation_w"`
	PeopleW         float64 `json:"people_w"`
	LightingW       float64 `json:"lighting_w"`
	EquipmentW      float64 `json:"equipment_w"`
}

type Result struct {
	Variant                 string                            `json:"variant"`
	HeatingDeltaT           float64                           `json:"heating_delta_t"`
	GroundDeltaT            float64                           `json:"ground_delta_t"`
	CoolingDeltaT           float64                           `json:"cooling_delta_t"`
	WallAboveGradeAreaM2    float64                           `json:"wall_above_grade_area_m2"`
	WallBelowGradeAreaM2    float64                           `json:"wall_below_grade_area_m2"`
	InfiltrationHeatingLoad float64                           `json:"infiltration_heating_load"`
	InfiltrationAirflow     float64                           `json:"infiltration_airflow_m3h"`
	VentilationAirflow      float64                           `json:"ventilation_airflow_m3h"`
	Heating                 Heating                           `json:"heating"`
	Cooling                 Cooling                           `json:"cooling"`
	Windows                 map[consts.Orientation]WindowLoad `json:"windows"`
	TotalHeatingQ           float64                           `json:"total_heating_q_w"`
	TotalCoolingQ           float64                           `json:"total_cooling_q_w"`
}

var (
	one           = decimal.NewFromInt(1)
	two           = decimal.NewFromInt(2)
	airHeatCap    = decimal.NewFromFloat(consts.AirHeatCapacity)
	heatingDeltaT = decimal.NewFromFloat(consts.WinterSetpointC).Sub(decimal.NewFromFloat(consts.WinterDesignC))
	groundDeltaT  = decimal.NewFromFloat(consts.WinterSetpointC).Sub(decimal.NewFromFloat(consts.GroundTemperatureC))
	coolingDeltaT = decimal.NewFromFloat(consts.SummerDesignDryBulbC).Sub(decimal.NewFromFloat(consts.SummerSetpointC))
	coolingDeltaH = decimal.NewFromFloat(consts.SummerDesignEnthalpy - consts.SummerSetpointEnthalpy).Div(decimal.NewFromFloat(consts.KJPerWh)) // Wh/kg
	airDensity    = one.Div(decimal.NewFromFloat(consts.AirSpecificVolume))
)

func d(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

// Calculate computes the peak heating and cooling loads of one design under
// fixed winter and summer design conditions. Intermediate products use exact
// decimal arithmetic; the returned figures are float64.
func Calculate(vars options.Variables, catalog options.Catalog, variant options.Variant) (Result, error) {
	r := options.NewReader(vars, catalog, variant)

	ventEff := d(r.Option("ventilation", "efficiency"))
	infilRate := d(r.Option("airtightness", "heatingLoad"))
	wallAboveU := d(r.Option("wallAboveGrade", "u"))
	wallBelowU := d(r.Option("wallBelowGrade", "u"))
	roofU := d(r.Option("roof", "u"))
	floorU := d(r.Option("floor", "u"))
	doorU := d(r.Option("solidDoor", "u"))
	windowU := d(r.Option("windows", "u"))
	windowSHGC := d(r.Option("windows", "shgc"))

	height := d(r.Number("height"))
	length := d(r.Number("length"))
	width := d(r.Number("width"))
	depth := d(r.NumberOr("depth", 0))
	doorArea := d(r.NumberOr("exteriorSolidDoorArea", 0))
	roofArea := d(r.Number("roofArea"))
	floorArea := d(r.Number("floorArea"))
	interiorArea := d(r.Number("interiorFloorArea"))
	people := d(r.Number("people"))
	windowArea := make(map[consts.Orientation]decimal.Decimal, len(consts.Orientations))
	for _, o := range consts.Orientations {
		windowArea[o] = d(r.Number(string(o)))
	}
	volume := length.Mul(width).Mul(height)
	if vars.Has("buildingVolume") {
		volume = d(r.Number("buildingVolume"))
	}
	if err := r.Err(); err != nil {
		return Result{}, fmt.Errorf("heat load (%s): %w", variant.Name, err)
	}

	openings := doorArea
	for _, o := range consts.Orientations {
		openings = openings.Add(windowArea[o])
	}
	wallAboveArea := two.Mul(length).Mul(height).Add(two.Mul(width).Mul(height)).Sub(openings)
	if wallAboveArea.IsNegative() {
		return Result{}, calcerr.Invalid("loads.calculate", "wallAboveGrade",
			"openings of %s m² exceed the gross wall area (%s)", openings, variant.Name)
	}
	wallBelowArea := two.Mul(length).Mul(depth).Add(two.Mul(width).Mul(depth))

	infilAirflow := volume.Mul(infilRate)
	ventAirflow := interiorArea.Mul(d(consts.CeilingHeightM)).Mul(d(consts.VentilationRate))
	recovered := one.Sub(ventEff)

	h := struct {
		wallAbove, wallBelow, roof, floor, door, infil, vent decimal.Decimal
	}{
		wallAbove: wallAboveU.Mul(wallAboveArea).Mul(heatingDeltaT),
		wallBelow: wallBelowU.Mul(wallBelowArea).Mul(groundDeltaT),
		roof:      roofU.Mul(roofArea).Mul(heatingDeltaT),
		floor:     floorU.Mul(floorArea).Mul(groundDeltaT),
		door:      doorU.Mul(doorArea).Mul(heatingDeltaT),
		infil:     infilAirflow.Mul(heatingDeltaT).Mul(airHeatCap),
		vent:      ventAirflow.Mul(heatingDeltaT).Mul(airHeatCap).Mul(recovered),
	}
	c := struct {
		wallAbove, roof, door, infil, vent, people, lighting, equipment decimal.Decimal
	}{
		wallAbove: wallAboveU.Mul(wallAboveArea).Mul(coolingDeltaT),
		roof:      roofU.Mul(roofArea).Mul(coolingDeltaT),
		door:      doorU.Mul(doorArea).Mul(coolingDeltaT),
		infil:     airDensity.Mul(infilAirflow).Mul(coolingDeltaH),
		vent:      airDensity.Mul(ventAirflow).Mul(coolingDeltaT).Mul(recovered),
		people:    d(consts.PeopleWatts).Mul(people),
		lighting:  d(consts.LightingWattsM2).Mul(interiorArea),
		equipment: d(consts.EquipmentWattsM2).Mul(interiorArea),
	}

	totalHeating := h.wallAbove.Add(h.wallBelow).Add(h.roof).Add(h.floor).Add(h.door).Add(h.infil).Add(h.vent)
	totalCooling := c.wallAbove.Add(c.roof).Add(c.door).Add(c.infil).Add(c.vent).Add(c.people).Add(c.lighting).Add(c.equipment)

	windows := make(map[consts.Orientation]WindowLoad, len(consts.Orientations))
	for _, o := range consts.Orientations {
		area := windowArea[o]
		glazing := area.Mul(d(consts.GlazingFraction))
		heating := windowU.Mul(area).Mul(heatingDeltaT)
		conduction := windowU.Mul(area).Mul(coolingDeltaT)
		solar := windowSHGC.Mul(glazing).Mul(d(consts.SummerShading)).Mul(d(consts.PeakSolarGain[o]))
		cooling := conduction.Add(solar)

		totalHeating = totalHeating.Add(heating)
		totalCooling = totalCooling.Add(cooling)
		windows[o] = WindowLoad{
			U:            windowU.InexactFloat64(),
			SHGC:         windowSHGC.InexactFloat64(),
			AreaM2:       area.InexactFloat64(),
			GlazingM2:    glazing.InexactFloat64(),
			HeatingW:     heating.InexactFloat64(),
			ConductionW:  conduction.InexactFloat64(),
			SolarGainW:   solar.InexactFloat64(),
			TotalCooling: cooling.InexactFloat64(),
		}
	}

	return Result{
		Variant:                 variant.Name,
		HeatingDeltaT:           heatingDeltaT.InexactFloat64(),
		GroundDeltaT:            groundDeltaT.InexactFloat64(),
		CoolingDeltaT:           coolingDeltaT.InexactFloat64(),
		WallAboveGradeAreaM2:    wallAboveArea.InexactFloat64(),
		WallBelowGradeAreaM2:    wallBelowArea.InexactFloat64(),
		InfiltrationHeatingLoad: infilRate.InexactFloat64(),
		InfiltrationAirflow:     infilAirflow.InexactFloat64(),
		VentilationAirflow:      ventAirflow.InexactFloat64(),
		Heating: Heating{
			WallAboveGradeW: h.wallAbove.InexactFloat64(),
			WallBelowGradeW: h.wallBelow.InexactFloat64(),
			RoofW:           h.roof.InexactFloat64(),
			FloorW:          h.floor.InexactFloat64(),
			DoorW:           h.door.InexactFloat64(),
			InfiltrationW:   h.infil.InexactFloat64(),
			VentilationW:    h.vent.InexactFloat64(),
		},
		Cooling: Cooling{
			WallAboveGradeW: c.wallAbove.InexactFloat64(),
			RoofW:           c.roof.InexactFloat64(),
			DoorW:           c.door.InexactFloat64(),
			InfiltrationW:   c.infil.InexactFloat64(),
			VentilationW:    c.vent.InexactFloat64(),
			PeopleW:         c.people.InexactFloat64(),
			LightingW:       c.lighting.InexactFloat64(),
			EquipmentW:      c.equipment.InexactFloat64(),
		},
		Windows:       windows,
		TotalHeatingQ: totalHeating.InexactFloat64(),
		TotalCoolingQ: totalCooling.InexactFloat64(),
	}, nil
}
