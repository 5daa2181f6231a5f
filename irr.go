package pme

import (
	"errors"
	"fmt"
	"math"
)

// ErrNoSignChange reports a well-formed series whose flows are all of the
// same sign: the NPV never crosses zero for any finite rate, so the IRR is
// mathematically undefined. This is a legitimate outcome, not a fault.
var ErrNoSignChange = errors.New("irr is undefined: cash flows never change sign")

// ErrBracketExhausted reports that no sign change of the NPV was found within
// the bracket-search iteration cap. Callers should treat it as a soft
// failure: pathological cash-flow shapes are expected to trigger it.
var ErrBracketExhausted = errors.New("irr bracket search exhausted")

const (
	bracketStep       = 0.01
	bracketIterations = 10_000
	bisectIterations  = 40
)

type irrOptions struct {
	shortPeriod bool
}

// IrrOption configures the Irr solver.
type IrrOption func(*irrOptions)

// ShortPeriod re-expresses the computed rate over the actual cash-flow span
// when it is shorter than a year, instead of extrapolating to a full year.
// A zero-valued flow dated exactly at the series start is ignored when
// measuring the span, to avoid counting a placeholder opening entry.
func ShortPeriod() IrrOption {
	return func(o *irrOptions) { o.shortPeriod = true }
}

// Irr solves for the internal rate of return of the dated cash-flow series:
// the annually-compounded rate at which the series' net present value is
// zero.
//
// Degenerate inputs short-circuit with a defined outcome: a malformed series
// or fewer than two flows returns ErrInvalidSeries; flows all of the same
// sign return ErrNoSignChange; flows summing to exactly zero return 0
// (breakeven is a 0% return by convention).
func Irr(s *Series, opts ...IrrOption) (float64, error) {
	var o irrOptions
	for _, opt := range opts {
		opt(&o)
	}

	if err := validate(s); err != nil {
		return 0, err
	}
	if s.Len() < 2 {
		return 0, fmt.Errorf("%w: got %d flows, need at least 2", ErrInvalidSeries, s.Len())
	}

	var hasPos, hasNeg bool
	for _, v := range s.Values() {
		hasPos = hasPos || v > 0
		hasNeg = hasNeg || v < 0
	}
	total := s.Sum()
	if !hasPos || !hasNeg {
		if total == 0 {
			return 0, nil
		}
		return 0, ErrNoSignChange
	}
	if total == 0 {
		return 0, nil
	}

	lo, hi, err := bracket(s, total)
	if err != nil {
		return 0, err
	}

	f := func(rate float64) float64 { return npv(rate, s) }

	// The regular investment profile (call first, realize last) has a well
	// behaved NPV curve, safe for a fast general solver. Anything else falls
	// back to fixed-iteration bisection whose worst case is bounded.
	var apr float64
	if regularProfile(s) {
		apr = brent(f, lo, hi)
	} else {
		apr = bisect(f, lo, hi)
	}

	// Convert the daily-compounded nominal rate to an annually-compounded one.
	irr := math.Pow(1+apr/daysPerYear, daysPerYear) - 1

	if o.shortPeriod {
		irr = shortPeriodAdjust(irr, s)
	}
	return irr, nil
}

// regularProfile reports the call-first realize-last shape: first
// chronological flow negative, last positive.
func regularProfile(s *Series) bool {
	_, first := s.First()
	_, last := s.Last()
	return first < 0 && last > 0
}

// bracket grows an interval from rate 0 until the NPV changes sign between
// the endpoints. The direction is a heuristic keyed on the series total,
// which is also the NPV at rate zero: a call-first series netting positive
// has its root at a positive rate (higher rates discount the late inflows
// away), and vice versa. Flow-reversed shapes can defeat the heuristic and
// exhaust the cap; that is an expected soft failure, not a bug.
func bracket(s *Series, total float64) (lo, hi float64, err error) {
	step := bracketStep
	if total < 0 {
		step = -bracketStep
	}
	a, b := 0.0, 0.0
	fa := npv(a, s)
	for range bracketIterations {
		b += step
		fb := npv(b, s)
		if (fa > 0) != (fb > 0) {
			if a < b {
				return a, b, nil
			}
			return b, a, nil
		}
	}
	return 0, 0, fmt.Errorf("%w: no sign change of the npv within [%g, %g]", ErrBracketExhausted, min(a, b), max(a, b))
}

// bisect halves the bracket a fixed number of times, tracking which endpoint
// shares the sign of the lower-rate evaluation, and returns the midpoint of
// the final interval. 40 iterations resolve the initial bracket width by 2^40.
func bisect(f func(float64) float64, lo, hi float64) float64 {
	flo := f(lo)
	for range bisectIterations {
		mid := (lo + hi) / 2
		if fm := f(mid); (fm > 0) == (flo > 0) {
			lo, flo = mid, fm
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

// brent finds the root of f within the bracket [lo, hi] using the
// Brent-Dekker method: inverse quadratic interpolation and secant steps,
// falling back to bisection whenever an interpolated step misbehaves.
func brent(f func(float64) float64, lo, hi float64) float64 {
	const tol = 1e-12
	const maxIterations = 200

	a, b := lo, hi
	fa, fb := f(a), f(b)
	if math.Abs(fa) < math.Abs(fb) {
		a, b, fa, fb = b, a, fb, fa
	}
	c, fc := a, fa
	var d float64
	mflag := true

	for range maxIterations {
		if fb == 0 || math.Abs(b-a) < tol {
			break
		}
		var s float64
		if fa != fc && fb != fc {
			// inverse quadratic interpolation
			s = a*fb*fc/((fa-fb)*(fa-fc)) +
				b*fa*fc/((fb-fa)*(fb-fc)) +
				c*fa*fb/((fc-fa)*(fc-fb))
		} else {
			// secant
			s = b - fb*(b-a)/(fb-fa)
		}

		lower, upper := (3*a+b)/4, b
		if lower > upper {
			lower, upper = upper, lower
		}
		if s < lower || s > upper ||
			(mflag && math.Abs(s-b) >= math.Abs(b-c)/2) ||
			(!mflag && math.Abs(s-b) >= math.Abs(c-d)/2) {
			s = (a + b) / 2
			mflag = true
		} else {
			mflag = false
		}

		fs := f(s)
		d, c, fc = c, b, fb
		if (fa > 0) != (fs > 0) {
			b, fb = s, fs
		} else {
			a, fa = s, fs
		}
		if math.Abs(fa) < math.Abs(fb) {
			a, b, fa, fb = b, a, fb, fa
		}
	}
	return b
}

// shortPeriodAdjust re-expresses an annualized rate over the series' actual
// span when that span is under a year.
func shortPeriodAdjust(irr float64, s *Series) float64 {
	days, amounts := s.days, s.amounts
	if len(days) > 1 && amounts[0] == 0 {
		// a zero opening entry is a placeholder, not a flow
		days = days[1:]
	}
	span := days[len(days)-1].Sub(days[0])
	if span <= 0 || span >= daysPerYear {
		return irr
	}
	return math.Pow(1+irr, float64(span)/daysPerYear) - 1
}
