// Package consts holds the fixed physical and financial coefficients used by
// the load, annual energy, output and economics calculations.
package consts

// Design conditions.
const (
	WinterSetpointC        = 20.0
	SummerSetpointC        = 25.0
	GroundTemperatureC     = 5.0
	WinterDesignC          = -40.0
	SummerDesignDryBulbC   = 30.0
	SummerDesignWetBulbC   = 21.0
	SummerSetpointEnthalpy = 50.0 // kJ/kg
	SummerDesignEnthalpy   = 61.0 // kJ/kg
	KJPerWh                = 3.6
	AirSpecificVolume      = 0.87 // m³/kg
)

// Airflow.
const (
	AirHeatCapacity   = 0.33 // Wh/m³K
	VentilationRate   = 0.3  // air changes per hour
	CeilingHeightM    = 2.5  // volume per m² of interior floor
	GlazingFraction   = 0.75 // glass share of a window opening
	SummerShading     = 0.60
	PeopleWatts       = 130.0 // W/person
	LightingWattsM2   = 5.0
	EquipmentWattsM2  = 5.0
	HeatingSizingGain = 1.1 // peak heating margin
)

// WinterShading is the product of frame, dirt, non-perpendicular incidence and
// obstruction factors applied to winter solar gains.
const WinterShading = 0.75 * 0.95 * 0.85 * 0.75

// Orientation is a compass facade.
type Orientation string

const (
	North Orientation = "north"
	East  Orientation = "east"
	South Orientation = "south"
	West  Orientation = "west"
)

// Orientations lists the facades in evaluation order.
var Orientations = []Orientation{North, East, South, West}

// PeakSolarGain is the summer design solar gain per m² of glazing, W/m².
var PeakSolarGain = map[Orientation]float64{
	North: 93,
	East:  285,
	South: 108,
	West:  285,
}

// HeatingSeasonRadiation is the heating-period radiation per m² of window, kWh/m².
var HeatingSeasonRadiation = map[Orientation]float64{
	North: 133,
	East:  374,
	South: 790,
	West:  382,
}

// Annual demand.
const (
	GroundReductionFactor = 0.5
	HeatingPeriodDays     = 215.0
	InternalGainWattsM2   = 2.5
	KWhPerWattDay         = 0.024
	UtilizationFactor     = 0.85
)

// Output.
const (
	DHWDistributionLosses = 300.0
	DHWFixtureFactor      = 25.0
	DaysPerYear           = 365.0
	WattsPerKilowatt      = 1000.0
)

// Business case.
const (
	CashFlowYears   = 21
	StartingYear    = 1
	IRRGuess        = 0.06
	IRRMaxIter      = 100
	IRRTolerance    = 1e-9
	MonthsPerYear   = 12
	CostPrecision   = 2
	LoadPrecision   = 1
	EnergyPrecision = 0
)
