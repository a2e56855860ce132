package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Retrofit/internal/calc/calcerr"
)

func testCatalog() Catalog {
	return Catalog{
		"wallAboveGrade": {Values: []Entry{
			{"R20": {"u": 0.28}},
			{"R40": {"u": 0.14}},
		}},
		"windows": {Values: []Entry{
			{"double": {"u": 1.6, "shgc": 0.5}},
			{"triple": {"u": 0.8, "shgc": 0.35}},
		}},
		"windowsAlternate": {Values: []Entry{
			{"triple": {"u": 0.7, "shgc": 0.3}},
		}},
		"spaceHeatingFuelType": {Values: []Entry{
			{"gas": {"priceKey": "gasPrice"}},
			{"electric": {"priceKey": "electricityPrice"}},
			{"broken": {"priceKey": "noSuchPrice"}},
		}},
		"units": {Values: []Entry{
			{"2": {"value": 2.0}},
		}},
	}
}

func testVars() Variables {
	return Variables{
		"wallAboveGrade":       "R20",
		"windows":              "double",
		"windowsAlternate":     "triple",
		"spaceHeatingFuelType": "gas",
		"gasPrice":             0.05,
		"electricityPrice":     "0.14",
		"units":                2,
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		category string
		property string
		variant  Variant
		want     float64
		resolved bool
	}{
		{
			name:     "baseline selection",
			category: "windows",
			property: "u",
			variant:  Baseline,
			want:     1.6,
			resolved: true,
		},
		{
			name:     "alternate override",
			category: "windows",
			property: "shgc",
			variant:  Alternate,
			want:     0.3,
			resolved: true,
		},
		{
			name:     "alternate falls back to plain category",
			category: "wallAboveGrade",
			property: "u",
			variant:  Alternate,
			want:     0.28,
			resolved: true,
		},
		{
			name:     "unknown category",
			category: "roof",
			property: "u",
			variant:  Baseline,
		},
		{
			name:     "absent property",
			category: "wallAboveGrade",
			property: "shgc",
			variant:  Baseline,
		},
		{
			name:     "numeric selection matches formatted key",
			category: "units",
			property: "value",
			variant:  Baseline,
			want:     2,
			resolved: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.category, tt.property, testVars(), testCatalog(), tt.variant)
			assert.Equal(t, tt.resolved, got.Resolved())
			f, ok := got.Float()
			assert.Equal(t, tt.resolved, ok)
			assert.Equal(t, tt.want, f)
		})
	}
}

func TestResolve_AbsentSelectionKey(t *testing.T) {
	vars := testVars()
	vars["wallAboveGrade"] = "R60"

	var got Value
	assert.NotPanics(t, func() {
		got = Resolve("wallAboveGrade", "u", vars, testCatalog(), Baseline)
	})
	assert.False(t, got.Resolved())
}

func TestResolve_NoSelection(t *testing.T) {
	vars := testVars()
	delete(vars, "wallAboveGrade")

	got := Resolve("wallAboveGrade", "u", vars, testCatalog(), Baseline)
	assert.False(t, got.Resolved())
}

func TestResolve_FallbackMatchesBaseline(t *testing.T) {
	base := Resolve("wallAboveGrade", "u", testVars(), testCatalog(), Baseline)
	alt := Resolve("wallAboveGrade", "u", testVars(), testCatalog(), Alternate)
	assert.Equal(t, base, alt)
}

func TestResolve_FirstMatchWins(t *testing.T) {
	catalog := Catalog{
		"roof": {Values: []Entry{
			{"R50": {"u": 0.11}},
			{"R50": {"u": 0.99}},
		}},
	}
	got, ok := Resolve("roof", "u", Variables{"roof": "R50"}, catalog, Baseline).Float()
	require.True(t, ok)
	assert.Equal(t, 0.11, got)
}

func TestRequire_MissingOption(t *testing.T) {
	_, err := Require("roof", "u", testVars(), testCatalog(), Alternate)

	require.Error(t, err)
	assert.ErrorIs(t, err, calcerr.ErrMissingOption)
	assert.True(t, calcerr.IsKind(err, calcerr.KindMissingOption))
	assert.Contains(t, err.Error(), "roof.u")
	assert.Contains(t, err.Error(), "alternate")
}

func TestPrice(t *testing.T) {
	tests := []struct {
		name    string
		fuel    string
		want    float64
		wantErr error
	}{
		{name: "numeric price", fuel: "gas", want: 0.05},
		{name: "string price", fuel: "electric", want: 0.14},
		{name: "price key not in variables", fuel: "broken", wantErr: calcerr.ErrInvalidInput},
		{name: "unknown fuel", fuel: "wood", wantErr: calcerr.ErrMissingOption},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vars := testVars()
			vars["spaceHeatingFuelType"] = tt.fuel

			got, err := Price("spaceHeatingFuelType", vars, testCatalog(), Baseline)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReader_StickyError(t *testing.T) {
	r := NewReader(testVars(), testCatalog(), Baseline)

	assert.Equal(t, 0.28, r.Option("wallAboveGrade", "u"))
	assert.Equal(t, 0.0, r.Option("roof", "u"))
	assert.Equal(t, 0.0, r.Number("gasPrice"), "reads after a failure return zero")
	assert.ErrorIs(t, r.Err(), calcerr.ErrMissingOption)
}

func TestVariables_Float(t *testing.T) {
	vars := Variables{"a": 1.5, "b": "2.5", "c": "abc", "d": 3, "e": nil}

	f, err := vars.Float("a")
	require.NoError(t, err)
	assert.Equal(t, 1.5, f)

	f, err = vars.Float("b")
	require.NoError(t, err)
	assert.Equal(t, 2.5, f)

	f, err = vars.Float("d")
	require.NoError(t, err)
	assert.Equal(t, 3.0, f)

	_, err = vars.Float("c")
	assert.ErrorIs(t, err, calcerr.ErrInvalidInput)

	_, err = vars.Float("e")
	assert.ErrorIs(t, err, calcerr.ErrInvalidInput)

	f, err = vars.FloatOr("missing", 7)
	require.NoError(t, err)
	assert.Equal(t, 7.0, f)

	_, err = vars.FloatOr("c", 7)
	assert.Error(t, err)
}
