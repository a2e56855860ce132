package options

// Reader binds a building, a catalog and a variant so a model can read many
// values in a row. The first failure sticks: later reads return 0 and Err
// reports it.
type Reader struct {
	Vars    Variables
	Catalog Catalog
	Variant Variant
	err     error
}

func NewReader(vars Variables, catalog Catalog, variant Variant) *Reader {
	return &Reader{Vars: vars, Catalog: catalog, Variant: variant}
}

// Option returns a required numeric property of the selected option.
func (r *Reader) Option(category, property string) float64 {
	if r.err != nil {
		return 0
	}
	f, err := Require(category, property, r.Vars, r.Catalog, r.Variant)
	r.err = err
	return f
}

// Price returns the unit price for the fuel type selected in category.
func (r *Reader) Price(category string) float64 {
	if r.err != nil {
		return 0
	}
	f, err := Price(category, r.Vars, r.Catalog, r.Variant)
	r.err = err
	return f
}

// Number returns a required building variable.
func (r *Reader) Number(key string) float64 {
	if r.err != nil {
		return 0
	}
	f, err := r.Vars.Float(key)
	r.err = err
	return f
}

// NumberOr returns a building variable, or def when it is absent.
func (r *Reader) NumberOr(key string, def float64) float64 {
	if r.err != nil {
		return 0
	}
	f, err := r.Vars.FloatOr(key, def)
	r.err = err
	return f
}

// Err returns the first failure.
func (r *Reader) Err() error { return r.err }
