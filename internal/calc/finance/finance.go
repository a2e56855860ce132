package finance

import (
	"fmt"
	"math"

	"Retrofit/internal/calc/calcerr"
)

// ConvergenceError reports an IRR solve that ran out of iterations or hit a
// flat or non-finite point.
type ConvergenceError struct {
	Iterations int
	LastRate   float64
	Reason     string
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("irr did not converge after %d iterations (last rate %g): %s", e.Iterations, e.LastRate, e.Reason)
}

func (e *ConvergenceError) Unwrap() error { return calcerr.ErrNoConvergence }

// NPV discounts flows at rate; flows[0] is undiscounted.
func NPV(rate float64, flows []float64) float64 {
	npv := 0.0
	for t, cf := range flows {
		npv += cf / math.Pow(1+rate, float64(t))
	}
	return npv
}

func dNPV(rate float64, flows []float64) float64 {
	d := 0.0
	for t, cf := range flows {
		if t == 0 {
			continue
		}
		d -= float64(t) * cf / math.Pow(1+rate, float64(t+1))
	}
	return d
}

// IRR returns the rate at which the NPV of flows is zero. Newton-Raphson
// starts at guess; when it stalls a bisection over (-0.99, 10) is tried.
// Flows without a sign change have no rate and fail immediately.
func IRR(flows []float64, guess float64, maxIter int, tol float64) (float64, error) {
	if !signChange(flows) {
		return 0, convergence(0, guess, "cash flows never change sign")
	}

	rate := guess
	for i := 1; i <= maxIter; i++ {
		f := NPV(rate, flows)
		d := dNPV(rate, flows)
		if d == 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			break
		}
		next := rate - f/d
		if math.IsNaN(next) || math.IsInf(next, 0) || next <= -1 {
			break
		}
		if math.Abs(next-rate) < tol {
			return next, nil
		}
		rate = next
	}

	return bisect(flows, -0.99, 10, maxIter, tol, rate)
}

func bisect(flows []float64, lo, hi float64, maxIter int, tol, last float64) (float64, error) {
	flo, fhi := NPV(lo, flows), NPV(hi, flows)
	if flo*fhi > 0 {
		return 0, convergence(maxIter, last, "no root bracketed")
	}
	for i := 1; i <= maxIter; i++ {
		mid := (lo + hi) / 2
		fmid := NPV(mid, flows)
		if math.Abs(hi-lo) < tol || fmid == 0 {
			return mid, nil
		}
		if flo*fmid < 0 {
			hi = mid
		} else {
			lo, flo = mid, fmid
		}
	}
	return 0, convergence(maxIter, (lo+hi)/2, "iteration limit reached")
}

func signChange(flows []float64) bool {
	pos, neg := false, false
	for _, cf := range flows {
		if cf > 0 {
			pos = true
		}
		if cf < 0 {
			neg = true
		}
	}
	return pos && neg
}

func convergence(iter int, rate float64, reason string) error {
	return &calcerr.Error{
		Op:   "finance.irr",
		Kind: calcerr.KindConvergence,
		Err:  &ConvergenceError{Iterations: iter, LastRate: rate, Reason: reason},
	}
}

// PMT follows the spreadsheet convention: the payment per period for a loan
// of pv at rate over nper periods, negative for a positive pv. A loan with
// no periods has no payment and is invalid input.
func PMT(rate float64, nper int, pv float64) (float64, error) {
	if nper <= 0 {
		return 0, calcerr.Invalid("finance.pmt", "nper", "must be positive, got %d", nper)
	}
	if rate == 0 {
		return -pv / float64(nper), nil
	}
	factor := math.Pow(1+rate, float64(nper))
	return -pv * rate * factor / (factor - 1), nil
}

// MonthlyPayment is the positive fixed payment retiring principal over
// termYears at an annual rate compounded monthly.
func MonthlyPayment(principal, annualRate float64, termYears int) (float64, error) {
	pmt, err := PMT(annualRate/12, termYears*12, principal)
	if err != nil {
		return 0, err
	}
	return -pmt, nil
}
