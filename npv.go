package pme

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidSeries reports a cash-flow series the valuation engine cannot
// work with: empty, or holding non-finite amounts. It signals bad input,
// which is distinct from "no solution exists" (see ErrNoSignChange).
var ErrInvalidSeries = errors.New("invalid cash-flow series")

// daysPerYear fixes the compounding convention: daily compounding of an
// annualized nominal rate over a 365-day year. This convention is deliberate
// and shared by every metric in the package, so it is not configurable.
const daysPerYear = 365

// Npv computes the net present value of the dated cash-flow series at the
// given annualized nominal rate, discounting each amount back to the series'
// first date with daily compounding.
func Npv(rate float64, s *Series) (float64, error) {
	if err := validate(s); err != nil {
		return 0, err
	}
	return npv(rate, s), nil
}

// npv is the unchecked valuator for a series already validated.
func npv(rate float64, s *Series) float64 {
	t0, _ := s.First()
	var sum float64
	for on, v := range s.Values() {
		factor := math.Pow(1+rate/daysPerYear, float64(on.Sub(t0)))
		sum += v / factor
	}
	return sum
}

func validate(s *Series) error {
	if s == nil || s.Len() == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidSeries)
	}
	for on, v := range s.Values() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite amount on %s", ErrInvalidSeries, on)
		}
	}
	return nil
}
