package economics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Retrofit/internal/calc/calcerr"
	"Retrofit/internal/calc/calctest"
	"Retrofit/internal/calc/finance"
	"Retrofit/internal/calc/output"
)

var (
	baselineOut  = output.Result{Variant: "baseline", TotalEnergyCosts: 43555.5}
	alternateOut = output.Result{Variant: "alternate", TotalEnergyCosts: 28488}
)

func TestCalculate_ReferenceBuilding(t *testing.T) {
	res, err := Calculate(calctest.Building(), baselineOut, alternateOut, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, SavingsDifference, res.SavingsBasis)
	assert.InDelta(t, 31456, res.Investment, 1e-6)
	assert.InDelta(t, 15067.5, res.AnnualSavings, 1e-9)
	assert.InDelta(t, 2.08767214, res.Payback, 1e-6)
	assert.InDelta(t, -2503599, res.AccumulationSum, 1e-4)
	assert.InDelta(t, 269894, res.NetSavings, 1e-4)
	assert.True(t, res.IRRConverged)
	assert.InDelta(t, 0.4788109532, res.IRR, 1e-7)
	assert.Equal(t, 20, res.LoanTermYears)
	assert.InDelta(t, 207.5956773, res.MonthlyPayment, 1e-6)
	assert.InDelta(t, 1255.625, res.MonthlySavings, 1e-9)
	assert.InDelta(t, 1048.0293227, res.MonthlyNetSavings, 1e-6)
}

func TestCalculate_CashFlowSchedule(t *testing.T) {
	res, err := Calculate(calctest.Building(), baselineOut, alternateOut, DefaultConfig())
	require.NoError(t, err)

	require.Len(t, res.Years, 21)
	first, last := res.Years[0], res.Years[20]
	assert.Equal(t, 1, first.Year)
	assert.InDelta(t, -31456, first.CashFlow, 1e-6)
	assert.InDelta(t, 31456, first.Accumulation, 1e-6)
	assert.Equal(t, 21, last.Year)
	assert.InDelta(t, 15067.5, last.CashFlow, 1e-9)
	assert.InDelta(t, 31456-20*15067.5, last.Accumulation, 1e-6)

	sum := 0.0
	for _, y := range res.Years {
		sum += y.Accumulation
	}
	assert.InDelta(t, res.AccumulationSum, sum, 1e-6)
}

func TestCalculate_MeasureBreakdown(t *testing.T) {
	res, err := Calculate(calctest.Building(), baselineOut, alternateOut, DefaultConfig())
	require.NoError(t, err)

	require.Len(t, res.Measures, len(Measures))
	byName := map[string]Measure{}
	total := 0.0
	for _, m := range res.Measures {
		byName[m.Name] = m
		total += m.Total
	}
	assert.InDelta(t, 12000, byName["windows"].Total, 1e-9)
	assert.Zero(t, byName["battery"].Total)
	assert.InDelta(t, res.Investment, total, 1e-9)
}

func TestCalculate_MissingMeasuresCountAsZero(t *testing.T) {
	vars := calctest.Building()
	delete(vars, "solarCost")
	delete(vars, "solarQuantity")
	delete(vars, "heatPumpQuantity")

	res, err := Calculate(vars, baselineOut, alternateOut, DefaultConfig())
	require.NoError(t, err)
	assert.InDelta(t, 31456-9000, res.Investment, 1e-6)
}

func TestCalculate_AlternateCostBasis(t *testing.T) {
	res, err := Calculate(calctest.Building(), baselineOut, alternateOut, Config{Savings: SavingsAlternateCost})
	require.NoError(t, err)

	assert.Equal(t, 28488.0, res.AnnualSavings)
	assert.InDelta(t, 28488.0/12, res.MonthlySavings, 1e-9)
	assert.True(t, res.IRRConverged)
}

func TestCalculate_ZeroSavings(t *testing.T) {
	same := output.Result{TotalEnergyCosts: 1000}

	res, err := Calculate(calctest.Building(), same, same, DefaultConfig())
	require.Error(t, err)

	assert.ErrorIs(t, err, calcerr.ErrNoConvergence)
	var convErr *finance.ConvergenceError
	assert.ErrorAs(t, err, &convErr)

	assert.False(t, res.IRRConverged)
	assert.Zero(t, res.AnnualSavings)
	assert.Zero(t, res.Payback)
	assert.False(t, math.IsNaN(res.MonthlyPayment) || math.IsInf(res.MonthlyPayment, 0))
	want, err := finance.MonthlyPayment(res.Investment, 0.05, 20)
	require.NoError(t, err)
	assert.InDelta(t, want, res.MonthlyPayment, 1e-9)
	assert.InDelta(t, 207.5956773, res.MonthlyPayment, 1e-6)
}

func TestCalculate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   any
		cfg     Config
		wantErr error
	}{
		{name: "missing loan term", key: "paceLoanTerm", cfg: DefaultConfig(), wantErr: calcerr.ErrInvalidInput},
		{name: "zero loan term", key: "paceLoanTerm", value: 0.0, cfg: DefaultConfig(), wantErr: calcerr.ErrInvalidInput},
		{name: "half-year loan term", key: "paceLoanTerm", value: 0.5, cfg: DefaultConfig(), wantErr: calcerr.ErrInvalidInput},
		{name: "fractional loan term", key: "paceLoanTerm", value: 2.5, cfg: DefaultConfig(), wantErr: calcerr.ErrInvalidInput},
		{name: "missing interest", key: "interest", cfg: DefaultConfig(), wantErr: calcerr.ErrInvalidInput},
		{name: "non-numeric cost", key: "designCost", value: "lots", cfg: DefaultConfig(), wantErr: calcerr.ErrInvalidInput},
		{name: "unknown basis", key: "interest", value: 0.05, cfg: Config{Savings: "half"}, wantErr: calcerr.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vars := calctest.Building()
			if tt.value == nil {
				delete(vars, tt.key)
			} else {
				vars[tt.key] = tt.value
			}

			_, err := Calculate(vars, baselineOut, alternateOut, tt.cfg)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseSavingsBasis(t *testing.T) {
	b, err := ParseSavingsBasis("")
	require.NoError(t, err)
	assert.Equal(t, SavingsDifference, b)

	b, err = ParseSavingsBasis("alternate-cost")
	require.NoError(t, err)
	assert.Equal(t, SavingsAlternateCost, b)

	_, err = ParseSavingsBasis("bogus")
	assert.ErrorIs(t, err, calcerr.ErrInvalidInput)
}
