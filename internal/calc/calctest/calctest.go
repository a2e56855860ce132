// Package calctest provides a reference building and options catalog shared
// by the calculation tests.
package calctest

import (
	"strings"

	"Retrofit/internal/calc/options"
)

// Building returns a 10 m × 8 m single-storey house with 5 m² of window per
// facade, 3000 kKh heating degree-hours and a fully specified retrofit.
func Building() options.Variables {
	return options.Variables{
		"height":             2.4,
		"length":             10.0,
		"width":              8.0,
		"north":              5.0,
		"east":               5.0,
		"south":              5.0,
		"west":               5.0,
		"roofArea":           80.0,
		"floorArea":          80.0,
		"interiorFloorArea":  80.0,
		"people":             3.0,
		"units":              1.0,
		"heatingDegreeHours": 3000.0,

		"wallAboveGrade":         "base",
		"wallBelowGrade":         "base",
		"roof":                   "base",
		"floor":                  "base",
		"solidDoor":              "base",
		"windows":                "double",
		"ventilation":            "exhaust",
		"airtightness":           "leaky",
		"heating":                "furnace",
		"hotWaterFixtures":       "standard",
		"hotWaterHeaterStorage":  "tank",
		"hotWaterHeater":         "gasTank",
		"drainWaterHeatRecovery": "none",
		"lighting":               "led",
		"appliances":             "standard",
		"plugLoads":              "standard",

		"spaceHeatingFuelType":          "gas",
		"hotWaterFuelType":              "gas",
		"lightsAppliancesPlugsFuelType": "electric",
		"gasPrice":                      0.05,
		"electricityPrice":              0.15,

		"wallAboveGradeAlternate":       "insulated",
		"windowsAlternate":              "triple",
		"ventilationAlternate":          "hrv",
		"airtightnessAlternate":         "tight",
		"heatingAlternate":              "heatPump",
		"spaceHeatingFuelTypeAlternate": "electric",

		"designCost":            2000.0,
		"designQuantity":        1.0,
		"airtightnessCost":      1500.0,
		"airtightnessQuantity":  1.0,
		"windowsCost":           600.0,
		"windowsQuantity":       20.0,
		"insulationCost":        40.0,
		"insulationQuantity":    66.4,
		"ventilationCost":       4000.0,
		"ventilationQuantity":   1.0,
		"heatPumpCost":          9000.0,
		"heatPumpQuantity":      1.0,
		"waterHeaterCost":       0.0,
		"waterHeaterQuantity":   0.0,
		"solarCost":             0.0,
		"solarQuantity":         0.0,
		"batteryCost":           0.0,
		"batteryQuantity":       0.0,
		"energyMonitorCost":     300.0,
		"energyMonitorQuantity": 1.0,

		"paceLoanTerm": 20,
		"interest":     0.05,
	}
}

// Catalog returns an options catalog with every U-value 1.0, SHGC 0.5, no
// ventilation heat recovery and 0.5 ACH airtightness for the baseline, plus
// alternate overrides for walls, windows, ventilation, airtightness, heating
// and the space-heating fuel.
func Catalog() options.Catalog {
	one := func(key, prop string, v any) options.Category {
		return options.Category{Values: []options.Entry{{key: {prop: v}}}}
	}
	return options.Catalog{
		"wallAboveGrade": one("base", "u", 1.0),
		"wallBelowGrade": one("base", "u", 1.0),
		"roof":           one("base", "u", 1.0),
		"floor":          one("base", "u", 1.0),
		"solidDoor":      one("base", "u", 1.0),
		"windows": {Values: []options.Entry{
			{"single": {"u": 5.0, "shgc": 0.8}},
			{"double": {"u": 1.0, "shgc": 0.5}},
		}},
		"ventilation":            one("exhaust", "efficiency", 0.0),
		"airtightness":           {Values: []options.Entry{{"leaky": {"annualEnergy": 0.5, "heatingLoad": 0.5}}}},
		"heating":                one("furnace", "efficiency", 0.9),
		"hotWaterFixtures":       one("standard", "flow", 8.0),
		"hotWaterHeaterStorage":  one("tank", "value", 400.0),
		"hotWaterHeater":         one("gasTank", "efficiency", 0.8),
		"drainWaterHeatRecovery": one("none", "efficiency", 0.0),
		"lighting":               one("led", "value", 1.0),
		"appliances":             one("standard", "value", 4.0),
		"plugLoads":              one("standard", "value", 3.0),
		"spaceHeatingFuelType": {Values: []options.Entry{
			{"gas": {"priceKey": "gasPrice"}},
			{"electric": {"priceKey": "electricityPrice"}},
		}},
		"hotWaterFuelType": {Values: []options.Entry{
			{"gas": {"priceKey": "gasPrice"}},
			{"electric": {"priceKey": "electricityPrice"}},
		}},
		"lightsAppliancesPlugsFuelType": {Values: []options.Entry{
			{"electric": {"priceKey": "electricityPrice"}},
		}},

		"wallAboveGradeAlternate": one("insulated", "u", 0.5),
		"windowsAlternate":        {Values: []options.Entry{{"triple": {"u": 0.8, "shgc": 0.4}}}},
		"ventilationAlternate":    one("hrv", "efficiency", 0.75),
		"airtightnessAlternate":   {Values: []options.Entry{{"tight": {"annualEnergy": 0.2, "heatingLoad": 0.2}}}},
		"heatingAlternate":        one("heatPump", "efficiency", 3.0),
		"spaceHeatingFuelTypeAlternate": {Values: []options.Entry{
			{"gas": {"priceKey": "gasPrice"}},
			{"electric": {"priceKey": "electricityPrice"}},
		}},
	}
}

// Uniform returns a catalog whose baseline and alternate designs are the
// reference baseline with every U-value multiplied by k.
func Uniform(k float64) options.Catalog {
	c := Catalog()
	for name := range c {
		if strings.HasSuffix(name, options.Alternate.Suffix) {
			delete(c, name)
		}
	}
	for _, name := range []string{"wallAboveGrade", "wallBelowGrade", "roof", "floor", "solidDoor"} {
		c[name] = options.Category{Values: []options.Entry{{"base": {"u": k}}}}
	}
	c["windows"] = options.Category{Values: []options.Entry{{"double": {"u": k, "shgc": 0.5}}}}
	return c
}
