package pipeline

import (
	"errors"
	"fmt"
	"sync"

	"Retrofit/internal/calc/annual"
	"Retrofit/internal/calc/calcerr"
	"Retrofit/internal/calc/economics"
	"Retrofit/internal/calc/loads"
	"Retrofit/internal/calc/options"
	"Retrofit/internal/calc/output"
)

// Bundle collects every stage's result for the baseline (A) and alternate
// (B) designs plus the business case.
type Bundle struct {
	HeatingAndCoolingA  loads.Result     `json:"heating_and_cooling_a"`
	AnnualSpaceHeatingA annual.Result    `json:"annual_space_heating_a"`
	HeatingAndCoolingB  loads.Result     `json:"heating_and_cooling_b"`
	AnnualSpaceHeatingB annual.Result    `json:"annual_space_heating_b"`
	OutputA             output.Result    `json:"output_a"`
	OutputB             output.Result    `json:"output_b"`
	Economics           economics.Result `json:"economics"`
}

type Config struct {
	Economics economics.Config
}

func DefaultConfig() Config {
	return Config{Economics: economics.DefaultConfig()}
}

type design struct {
	loads  loads.Result
	annual annual.Result
	output output.Result
	err    error
}

func evaluate(vars options.Variables, catalog options.Catalog, variant options.Variant) design {
	hc, err := loads.Calculate(vars, catalog, variant)
	if err != nil {
		return design{err: err}
	}
	ash, err := annual.Calculate(vars, catalog, variant)
	if err != nil {
		return design{err: err}
	}
	out, err := output.Calculate(vars, catalog, variant, hc, ash)
	if err != nil {
		return design{err: err}
	}
	return design{loads: hc, annual: ash, output: out}
}

// Run evaluates the baseline and alternate designs and the business case
// with the default configuration. Annual savings default to the baseline
// total energy cost minus the alternate's (economics.SavingsDifference).
// Callers that want the alternate's total cost used as the savings figure
// pass economics.SavingsAlternateCost to RunWith.
func Run(vars options.Variables, catalog options.Catalog) (Bundle, error) {
	return RunWith(vars, catalog, DefaultConfig())
}

// RunWith is Run with an explicit configuration. If only the rate of return
// fails to converge the Bundle is complete and the error wraps
// calcerr.ErrNoConvergence.
func RunWith(vars options.Variables, catalog options.Catalog, cfg Config) (Bundle, error) {
	if err := Validate(vars); err != nil {
		return Bundle{}, err
	}

	designs := make([]design, len(options.Variants))
	var wg sync.WaitGroup
	for i, variant := range options.Variants {
		wg.Add(1)
		go func(i int, variant options.Variant) {
			defer wg.Done()
			designs[i] = evaluate(vars, catalog, variant)
		}(i, variant)
	}
	wg.Wait()

	for i, d := range designs {
		if d.err != nil {
			return Bundle{}, fmt.Errorf("%s design: %w", options.Variants[i].Name, d.err)
		}
	}
	a, b := designs[0], designs[1]

	econ, err := economics.Calculate(vars, a.output, b.output, cfg.Economics)
	if err != nil && !errors.Is(err, calcerr.ErrNoConvergence) {
		return Bundle{}, err
	}

	return Bundle{
		HeatingAndCoolingA:  a.loads,
		AnnualSpaceHeatingA: a.annual,
		HeatingAndCoolingB:  b.loads,
		AnnualSpaceHeatingB: b.annual,
		OutputA:             a.output,
		OutputB:             b.output,
		Economics:           econ,
	}, err
}
