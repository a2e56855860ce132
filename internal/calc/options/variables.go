package options

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"Retrofit/internal/calc/calcerr"
)

// Variables is the flat parameter bag describing one building: geometry,
// climate, occupancy, option selections, prices, retrofit measures and loan
// terms. Values are numbers or strings.
type Variables map[string]any

// Has reports whether key is present with a non-nil value.
func (v Variables) Has(key string) bool {
	val, ok := v[key]
	return ok && val != nil
}

// Float returns the numeric value stored under key. Numeric strings are
// parsed. A missing or non-numeric value is an invalid-input error.
func (v Variables) Float(key string) (float64, error) {
	val, ok := v[key]
	if !ok || val == nil {
		return 0, calcerr.Invalid("variables.float", key, "value is required")
	}
	f, ok := toFloat(val)
	if !ok {
		return 0, calcerr.Invalid("variables.float", key, "%v is not a number", val)
	}
	return f, nil
}

// FloatOr is Float with a default for missing keys. Present but non-numeric
// values are still an error.
func (v Variables) FloatOr(key string, def float64) (float64, error) {
	if !v.Has(key) {
		return def, nil
	}
	return v.Float(key)
}

// Text returns the value under key as a selection string. Numbers are
// formatted without trailing zeros so a numeric selection still matches.
func (v Variables) Text(key string) (string, bool) {
	val, ok := v[key]
	if !ok || val == nil {
		return "", false
	}
	switch t := val.(type) {
	case string:
		return t, true
	case fmt.Stringer:
		return t.String(), true
	}
	if f, ok := toFloat(val); ok {
		return strconv.FormatFloat(f, 'f', -1, 64), true
	}
	return fmt.Sprintf("%v", val), true
}

func toFloat(val any) (float64, bool) {
	var f float64
	switch t := val.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case int32:
		f = float64(t)
	case uint64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
