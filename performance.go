package pme

import (
	"errors"
	"fmt"
	"math"
	"sync"
)

// EntityRecord is the unit of analysis: one fund, or the aggregated "Total"
// portfolio. The index series sample the benchmark at the cash-flow and
// valuation dates; every date present in CashFlows or Valuations must have a
// corresponding index level.
type EntityRecord struct {
	Name              string
	CashFlows         *Series
	Valuations        *Series
	IndexAtCashFlows  *Series
	IndexAtValuations *Series
}

// PerformanceResult holds the metrics computed for one entity. Fields that
// depend on an undefined IRR are NaN; the independent ratios are always
// computed.
type PerformanceResult struct {
	Name                string
	TVPI                float64 // total value to paid-in
	DPI                 float64 // distributions to paid-in
	IRR                 float64 // annually-compounded internal rate of return
	KSPME               float64 // Kaplan-Schoar public market equivalent
	DirectAlpha         float64 // continuously-compounded outperformance rate
	ImpliedBenchmarkIRR float64 // the benchmark return implied by IRR and DirectAlpha
}

// Compute derives the performance metrics of a single entity. It is a pure
// function: no state is retained across calls and the input series are not
// mutated.
//
// An undefined IRR (same-sign flows, exhausted bracket search) is not an
// error: the dependent fields are set to NaN and the wealth ratios are still
// returned. The only error condition is a cash-flow or valuation date with no
// benchmark level, which is an upstream data-preparation defect.
func Compute(rec EntityRecord) (PerformanceResult, error) {
	r := PerformanceResult{Name: rec.Name}

	invested := -(rec.CashFlows.NegativeSum() + rec.Valuations.NegativeSum())
	r.TVPI = (rec.CashFlows.PositiveSum() + rec.Valuations.PositiveSum()) / invested
	r.DPI = rec.CashFlows.PositiveSum() / -rec.CashFlows.NegativeSum()

	all := MergeSum(rec.CashFlows, rec.Valuations)
	r.IRR = math.NaN()
	if irr, err := Irr(all); err == nil {
		r.IRR = irr
	}

	// The benchmark level on a date applies to whatever entry occurred there,
	// cash or valuation; the row max recovers it from the two samplings.
	index := MergeMax(rec.IndexAtCashFlows, rec.IndexAtValuations)
	fv, err := futureValue(all, index)
	if err != nil {
		return PerformanceResult{}, fmt.Errorf("entity %q: %w", rec.Name, err)
	}

	r.KSPME = fv.PositiveSum() / -fv.NegativeSum()

	r.DirectAlpha = math.NaN()
	r.ImpliedBenchmarkIRR = math.NaN()
	if fvIrr, err := Irr(fv); err == nil {
		r.DirectAlpha = math.Log1p(fvIrr)
		r.ImpliedBenchmarkIRR = math.Expm1(math.Log1p(r.IRR) - r.DirectAlpha)
	}
	return r, nil
}

// futureValue re-expresses every amount in as-of-final-date terms, scaling it
// by the ratio of the benchmark's last level to its level on the amount's
// date.
func futureValue(all, index *Series) (*Series, error) {
	_, last := index.Last()
	fv := new(Series)
	for on, v := range all.Values() {
		level, ok := index.Get(on)
		if !ok {
			return nil, fmt.Errorf("no benchmark level on %s", on)
		}
		if level <= 0 {
			return nil, fmt.Errorf("benchmark level on %s is %g, want > 0", on, level)
		}
		fv.Append(on, v*last/level)
	}
	return fv, nil
}

// ComputeAll evaluates every entity concurrently. Entities share no mutable
// state, so no coordination is needed beyond collecting the results in input
// order.
func ComputeAll(recs []EntityRecord) ([]PerformanceResult, error) {
	results := make([]PerformanceResult, len(recs))
	errs := make([]error, len(recs))

	var wg sync.WaitGroup
	for i, rec := range recs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = Compute(rec)
		}()
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return results, nil
}
