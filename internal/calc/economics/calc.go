package economics

import (
	"errors"
	"fmt"
	"math"

	"Retrofit/internal/calc/calcerr"
	"Retrofit/internal/calc/consts"
	"Retrofit/internal/calc/finance"
	"Retrofit/internal/calc/options"
	"Retrofit/internal/calc/output"
)

// Measures lists the retrofit measures priced by "<measure>Cost" and
// "<measure>Quantity" variables.
var Measures = []string{
	"design",
	"airtightness",
	"windows",
	"insulation",
	"ventilation",
	"heatPump",
	"waterHeater",
	"solar",
	"battery",
	"energyMonitor",
}

// SavingsBasis selects how the annual savings figure is derived.
type SavingsBasis string

const (
	// SavingsDifference is baseline cost minus alternate cost.
	SavingsDifference SavingsBasis = "difference"
	// SavingsAlternateCost takes the alternate design's total energy cost
	// as the savings, as older reports did.
	SavingsAlternateCost SavingsBasis = "alternate-cost"
)

// ParseSavingsBasis accepts the basis names used by the CLI and the API.
func ParseSavingsBasis(s string) (SavingsBasis, error) {
	switch SavingsBasis(s) {
	case "", SavingsDifference:
		return SavingsDifference, nil
	case SavingsAlternateCost:
		return SavingsAlternateCost, nil
	}
	return "", calcerr.Invalid("economics.config", "savings", "unknown savings basis %q", s)
}

type Config struct {
	Savings SavingsBasis
}

func DefaultConfig() Config {
	return Config{Savings: SavingsDifference}
}

type Measure struct {
	Name     string  `json:"name"`
	Cost     float64 `json:"cost"`
	Quantity float64 `json:"quantity"`
	Total    float64 `json:"total"`
}

type Year struct {
	Year         int     `json:"year"`
	CashFlow     float64 `json:"cash_flow"`
	Accumulation float64 `json:"accumulation"`
}

type Result struct {
	SavingsBasis      SavingsBasis `json:"savings_basis"`
	Measures          []Measure    `json:"measures"`
	Investment        float64      `json:"investment"`
	AnnualSavings     float64      `json:"annual_savings"`
	Payback           float64      `json:"payback_years"`
	Years             []Year       `json:"years"`
	AccumulationSum   float64      `json:"accumulation_sum"`
	NetSavings        float64      `json:"net_savings"`
	IRR               float64      `json:"irr"`
	IRRConverged      bool         `json:"irr_converged"`
	LoanTermYears     int          `json:"loan_term_years"`
	Interest          float64      `json:"interest"`
	MonthlyPayment    float64      `json:"monthly_payment"`
	MonthlySavings    float64      `json:"monthly_savings"`
	MonthlyNetSavings float64      `json:"monthly_net_savings"`
}

// Calculate builds the retrofit business case from the two designs' outputs.
// When the rate of return cannot be found the returned Result is still
// complete, IRRConverged is false and the error wraps
// calcerr.ErrNoConvergence.
func Calculate(vars options.Variables, baseline, alternate output.Result, cfg Config) (Result, error) {
	if cfg.Savings == "" {
		cfg.Savings = SavingsDifference
	}

	res := Result{SavingsBasis: cfg.Savings}
	for _, name := range Measures {
		cost, err := vars.FloatOr(name+"Cost", 0)
		if err != nil {
			return Result{}, fmt.Errorf("economics: %w", err)
		}
		qty, err := vars.FloatOr(name+"Quantity", 0)
		if err != nil {
			return Result{}, fmt.Errorf("economics: %w", err)
		}
		m := Measure{Name: name, Cost: cost, Quantity: qty, Total: cost * qty}
		res.Measures = append(res.Measures, m)
		res.Investment += m.Total
	}

	term, err := vars.Float("paceLoanTerm")
	if err != nil {
		return Result{}, fmt.Errorf("economics: %w", err)
	}
	interest, err := vars.Float("interest")
	if err != nil {
		return Result{}, fmt.Errorf("economics: %w", err)
	}
	if term < 1 || term != math.Trunc(term) {
		return Result{}, calcerr.Invalid("economics.calculate", "paceLoanTerm", "must be a whole number of years, got %g", term)
	}
	res.LoanTermYears = int(term)
	res.Interest = interest

	switch cfg.Savings {
	case SavingsDifference:
		res.AnnualSavings = baseline.TotalEnergyCosts - alternate.TotalEnergyCosts
	case SavingsAlternateCost:
		res.AnnualSavings = alternate.TotalEnergyCosts
	default:
		return Result{}, calcerr.Invalid("economics.calculate", "savings", "unknown savings basis %q", cfg.Savings)
	}
	if res.AnnualSavings > 0 {
		res.Payback = res.Investment / res.AnnualSavings
	}

	flows := make([]float64, 0, consts.CashFlowYears)
	accumulation := 0.0
	for year := consts.StartingYear; year < consts.StartingYear+consts.CashFlowYears; year++ {
		cf := res.AnnualSavings
		if year == consts.StartingYear {
			accumulation = res.Investment
			cf = -res.Investment
		} else {
			accumulation -= res.AnnualSavings
		}
		res.AccumulationSum += accumulation
		res.Years = append(res.Years, Year{Year: year, CashFlow: cf, Accumulation: accumulation})
		flows = append(flows, cf)
	}
	res.NetSavings = -res.Investment + float64(consts.CashFlowYears-1)*res.AnnualSavings

	res.MonthlyPayment, err = finance.MonthlyPayment(res.Investment, interest, res.LoanTermYears)
	if err != nil {
		return Result{}, fmt.Errorf("economics: %w", err)
	}
	res.MonthlySavings = res.AnnualSavings / consts.MonthsPerYear
	res.MonthlyNetSavings = res.MonthlySavings - res.MonthlyPayment

	irr, err := finance.IRR(flows, consts.IRRGuess, consts.IRRMaxIter, consts.IRRTolerance)
	if err != nil {
		if errors.Is(err, calcerr.ErrNoConvergence) {
			return res, fmt.Errorf("economics: %w", err)
		}
		return Result{}, fmt.Errorf("economics: %w", err)
	}
	res.IRR = irr
	res.IRRConverged = true
	return res, nil
}
