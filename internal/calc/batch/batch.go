package batch

import (
	"errors"
	"fmt"

	"Retrofit/internal/calc/calcerr"
	"Retrofit/internal/calc/economics"
	"Retrofit/internal/calc/options"
	"Retrofit/internal/calc/pipeline"
)

type Item struct {
	Name      string            `json:"name"`
	Variables options.Variables `json:"variables"`
	// Overrides, when set, replace the shared catalog's categories for this
	// building only.
	Overrides options.Catalog `json:"overrides,omitempty"`
}

type Input struct {
	Options options.Catalog `json:"options"`
	Savings string          `json:"savings,omitempty"`
	Items   []Item          `json:"items"`
}

type ItemResult struct {
	Name    string           `json:"name"`
	Bundle  *pipeline.Bundle `json:"bundle,omitempty"`
	Warning string           `json:"warning,omitempty"`
	Error   string           `json:"error,omitempty"`
}

type Result struct {
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Items     []ItemResult `json:"items"`
}

// Run evaluates every item against the shared catalog in request order. A
// failing item is reported in its slot and does not stop the batch.
func Run(in Input) (Result, error) {
	if len(in.Items) == 0 {
		return Result{}, calcerr.Invalid("batch.run", "items", "no items")
	}
	basis, err := economics.ParseSavingsBasis(in.Savings)
	if err != nil {
		return Result{}, err
	}
	cfg := pipeline.Config{Economics: economics.Config{Savings: basis}}

	out := Result{Items: make([]ItemResult, 0, len(in.Items))}
	for i, item := range in.Items {
		name := item.Name
		if name == "" {
			name = fmt.Sprintf("item %d", i+1)
		}
		b, err := pipeline.RunWith(item.Variables, merge(in.Options, item.Overrides), cfg)
		res := ItemResult{Name: name}
		switch {
		case err == nil:
			res.Bundle = &b
		case errors.Is(err, calcerr.ErrNoConvergence):
			res.Bundle = &b
			res.Warning = err.Error()
		default:
			res.Error = err.Error()
		}
		if res.Error != "" {
			out.Failed++
		} else {
			out.Succeeded++
		}
		out.Items = append(out.Items, res)
	}
	return out, nil
}

func merge(base, overrides options.Catalog) options.Catalog {
	if len(overrides) == 0 {
		return base
	}
	merged := make(options.Catalog, len(base)+len(overrides))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}
