package pipeline

import (
	"errors"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"Retrofit/internal/calc/calcerr"
	"Retrofit/internal/calc/options"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Geometry is the numeric part of a building that every model depends on.
type Geometry struct {
	Height                float64 `json:"height" validate:"gte=0"`
	Length                float64 `json:"length" validate:"gte=0"`
	Width                 float64 `json:"width" validate:"gte=0"`
	Depth                 float64 `json:"depth" validate:"gte=0"`
	North                 float64 `json:"north" validate:"gte=0"`
	East                  float64 `json:"east" validate:"gte=0"`
	South                 float64 `json:"south" validate:"gte=0"`
	West                  float64 `json:"west" validate:"gte=0"`
	ExteriorSolidDoorArea float64 `json:"exteriorSolidDoorArea" validate:"gte=0"`
	RoofArea              float64 `json:"roofArea" validate:"gte=0"`
	FloorArea             float64 `json:"floorArea" validate:"gte=0"`
	InteriorFloorArea     float64 `json:"interiorFloorArea" validate:"gt=0"`
	BuildingVolume        float64 `json:"buildingVolume" validate:"gte=0"`
	HeatingDegreeHours    float64 `json:"heatingDegreeHours" validate:"gte=0"`
	People                float64 `json:"people" validate:"gte=0"`
	Units                 float64 `json:"units" validate:"gt=0"`
	PaceLoanTerm          float64 `json:"paceLoanTerm" validate:"gt=0"`
	Interest              float64 `json:"interest" validate:"gte=0"`
}

var optionalKeys = map[string]bool{
	"depth":                 true,
	"exteriorSolidDoorArea": true,
	"buildingVolume":        true,
}

// GeometryOf extracts the building's geometry. Required keys that are
// missing or non-numeric are invalid input.
func GeometryOf(vars options.Variables) (Geometry, error) {
	var g Geometry
	val := reflect.ValueOf(&g).Elem()
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		key, _, _ := strings.Cut(typ.Field(i).Tag.Get("json"), ",")
		var (
			f   float64
			err error
		)
		if optionalKeys[key] {
			f, err = vars.FloatOr(key, 0)
		} else {
			f, err = vars.Float(key)
		}
		if err != nil {
			return Geometry{}, err
		}
		val.Field(i).SetFloat(f)
	}
	return g, nil
}

// Validate checks the building's geometry before any model runs.
func Validate(vars options.Variables) error {
	g, err := GeometryOf(vars)
	if err != nil {
		return err
	}
	return g.Validate()
}

// Validate checks every field against its tag, then the derived envelope:
// openings must fit in the above-grade wall and the loan must run whole years.
func (g Geometry) Validate() error {
	if err := validate.Struct(g); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return calcerr.Invalid("pipeline.validate", fe.Field(), "%v fails %s=%s", fe.Value(), fe.Tag(), fe.Param())
		}
		return calcerr.Invalid("pipeline.validate", "", "%v", err)
	}
	if wall := g.WallAboveGradeArea(); wall < 0 {
		return calcerr.Invalid("pipeline.validate", "wallAboveGrade",
			"openings of %g m² exceed the gross wall area %g m²", g.OpeningArea(), wall+g.OpeningArea())
	}
	if g.PaceLoanTerm != math.Trunc(g.PaceLoanTerm) {
		return calcerr.Invalid("pipeline.validate", "paceLoanTerm", "must be a whole number of years, got %g", g.PaceLoanTerm)
	}
	return nil
}

// OpeningArea is the window and door area cut out of the above-grade wall.
func (g Geometry) OpeningArea() float64 {
	return g.North + g.East + g.South + g.West + g.ExteriorSolidDoorArea
}

// WallAboveGradeArea is the opaque above-grade wall area.
func (g Geometry) WallAboveGradeArea() float64 {
	return 2*g.Height*(g.Length+g.Width) - g.OpeningArea()
}
