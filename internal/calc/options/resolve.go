package options

import (
	"fmt"

	"Retrofit/internal/calc/calcerr"
)

// Properties maps a property name (u, shgc, efficiency, priceKey, ...) to a
// number or a string.
type Properties map[string]any

// Entry holds one selectable key and its properties.
type Entry map[string]Properties

// Category is an ordered list of selectable entries.
type Category struct {
	Values []Entry `json:"values" yaml:"values"`
}

// Catalog maps category names, optionally suffixed for the alternate design,
// to their entries.
type Catalog map[string]Category

// Variant selects which category names a design reads. The alternate design
// overrides a category by defining "<category><Suffix>" and inherits every
// category it does not override.
type Variant struct {
	Name   string
	Suffix string
}

var (
	Baseline  = Variant{Name: "baseline"}
	Alternate = Variant{Name: "alternate", Suffix: "Alternate"}
)

// Variants lists the designs in evaluation order.
var Variants = []Variant{Baseline, Alternate}

// Category returns the catalog category this variant reads for name.
func (v Variant) Category(name string, catalog Catalog) string {
	if v.Suffix != "" {
		if _, ok := catalog[name+v.Suffix]; ok {
			return name + v.Suffix
		}
	}
	return name
}

// Value is the outcome of a lookup. The zero Value is unresolved.
type Value struct {
	raw any
	ok  bool
}

// Resolved reports whether the lookup found the property.
func (v Value) Resolved() bool { return v.ok }

// Float returns the value as a number. Unresolved and non-numeric values
// report false.
func (v Value) Float() (float64, bool) {
	if !v.ok {
		return 0, false
	}
	return toFloat(v.raw)
}

// Text returns the value as a string.
func (v Value) Text() (string, bool) {
	if !v.ok {
		return "", false
	}
	if s, ok := v.raw.(string); ok {
		return s, true
	}
	return fmt.Sprintf("%v", v.raw), true
}

// Resolve looks up property for the building's selection in category. Every
// miss (unknown category, no selection, no matching entry, absent property)
// yields an unresolved Value; Resolve never fails.
func Resolve(category, property string, vars Variables, catalog Catalog, variant Variant) Value {
	name := variant.Category(category, catalog)
	cat, ok := catalog[name]
	if !ok {
		return Value{}
	}
	selected, ok := vars.Text(name)
	if !ok {
		return Value{}
	}
	for _, entry := range cat.Values {
		props, ok := entry[selected]
		if !ok {
			continue
		}
		raw, ok := props[property]
		if !ok || raw == nil {
			return Value{}
		}
		return Value{raw: raw, ok: true}
	}
	return Value{}
}

// Require resolves a numeric property and turns a miss into a
// missing-option error.
func Require(category, property string, vars Variables, catalog Catalog, variant Variant) (float64, error) {
	f, ok := Resolve(category, property, vars, catalog, variant).Float()
	if !ok {
		return 0, missing(category, property, variant)
	}
	return f, nil
}

// Price resolves the fuel type selected for category, reads its priceKey and
// returns the unit price stored in vars under that key.
func Price(category string, vars Variables, catalog Catalog, variant Variant) (float64, error) {
	key, ok := Resolve(category, "priceKey", vars, catalog, variant).Text()
	if !ok || key == "" {
		return 0, missing(category, "priceKey", variant)
	}
	price, err := vars.Float(key)
	if err != nil {
		return 0, fmt.Errorf("price for %s: %w", category, err)
	}
	return price, nil
}

func missing(category, property string, variant Variant) error {
	return &calcerr.Error{
		Op:   "options.resolve",
		Kind: calcerr.KindMissingOption,
		Key:  category + "." + property,
		Err:  fmt.Errorf("%w: %s design has no %s for %s", calcerr.ErrMissingOption, variant.Name, property, category),
	}
}

// VariantByName returns the design variant called name; an empty name is
// the baseline.
func VariantByName(name string) (Variant, bool) {
	switch name {
	case "", Baseline.Name:
		return Baseline, true
	case Alternate.Name:
		return Alternate, true
	}
	return Variant{}, false
}

// Request is the JSON body shared by the calculation endpoints.
type Request struct {
	Variables Variables `json:"variables"`
	Options   Catalog   `json:"options"`
	Variant   string    `json:"variant,omitempty"`
}
