package pme

import (
	"iter"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// Series stores a chronological sequence of signed amounts, each keyed by a
// calendar date. Dates are unique within a series and the sequence is always
// sorted. The sign convention is the investor's point of view: negative
// amounts are capital outflows (calls, contributions), positive amounts are
// inflows (distributions) or valuation marks.
//
// A Series is never mutated by a transform: Merge, MergeSum, MergeMax and
// Scale all build fresh series.
type Series struct {
	days    []Date
	amounts []float64
}

func (s *Series) search(on Date) (int, bool) {
	return slices.BinarySearchFunc(s.days, on, Date.Compare)
}

// Len returns the number of entries in the series.
func (s *Series) Len() int { return len(s.days) }

// Append adds an entry to the series, keeping it sorted.
//
// An existing amount at that date is overwritten.
func (s *Series) Append(on Date, v float64) *Series {
	i, found := s.search(on)
	if found {
		s.amounts[i] = v
		return s
	}
	s.days = slices.Insert(s.days, i, on)
	s.amounts = slices.Insert(s.amounts, i, v)
	return s
}

// AppendAdd adds an entry to the series, keeping it sorted.
//
// An existing amount at that date is added to, so that same-day records are
// pre-aggregated into a single daily entry.
func (s *Series) AppendAdd(on Date, v float64) *Series {
	i, found := s.search(on)
	if found {
		s.amounts[i] += v
		return s
	}
	s.days = slices.Insert(s.days, i, on)
	s.amounts = slices.Insert(s.amounts, i, v)
	return s
}

// Get returns the amount at 'on' and true, or zero and false.
func (s *Series) Get(on Date) (float64, bool) {
	if i, found := s.search(on); found {
		return s.amounts[i], true
	}
	return 0, false
}

// First returns the earliest date and amount in the series.
// If the series is empty, it returns zero values.
func (s *Series) First() (on Date, v float64) {
	if len(s.days) == 0 {
		return Date{}, 0
	}
	return s.days[0], s.amounts[0]
}

// Last returns the latest date and amount in the series.
// If the series is empty, it returns zero values.
func (s *Series) Last() (on Date, v float64) {
	last := len(s.days) - 1
	if last < 0 {
		return Date{}, 0
	}
	return s.days[last], s.amounts[last]
}

// Span returns the number of calendar days between the first and last entries.
func (s *Series) Span() int {
	if len(s.days) < 2 {
		return 0
	}
	return s.days[len(s.days)-1].Sub(s.days[0])
}

// Values returns an iterator over all date/amount pairs, in chronological order.
func (s *Series) Values() iter.Seq2[Date, float64] {
	return func(yield func(Date, float64) bool) {
		for i, on := range s.days {
			if !yield(on, s.amounts[i]) {
				return
			}
		}
	}
}

// Sum returns the algebraic total of all amounts.
func (s *Series) Sum() float64 { return floats.Sum(s.amounts) }

// PositiveSum returns the total of the strictly positive amounts.
func (s *Series) PositiveSum() float64 {
	pos := make([]float64, 0, len(s.amounts))
	for _, v := range s.amounts {
		if v > 0 {
			pos = append(pos, v)
		}
	}
	return floats.Sum(pos)
}

// NegativeSum returns the total of the strictly negative amounts. The result
// is non-positive.
func (s *Series) NegativeSum() float64 {
	neg := make([]float64, 0, len(s.amounts))
	for _, v := range s.amounts {
		if v < 0 {
			neg = append(neg, v)
		}
	}
	return floats.Sum(neg)
}

// Scale returns a new series with every amount multiplied by the per-date
// factor. Dates are preserved.
func (s *Series) Scale(factor func(on Date) float64) *Series {
	scaled := &Series{
		days:    slices.Clone(s.days),
		amounts: make([]float64, len(s.amounts)),
	}
	copy(scaled.amounts, s.amounts)
	for i, on := range scaled.days {
		scaled.amounts[i] *= factor(on)
	}
	return scaled
}

// Merge aligns any number of series on the union of their dates. For each
// date in chronological order it yields the aligned row of amounts, one
// column per input series, with zero for the series that have no entry on
// that date. The row slice is reused between iterations.
func Merge(series ...*Series) iter.Seq2[Date, []float64] {
	return func(yield func(Date, []float64) bool) {
		indexes := make([]int, len(series))
		row := make([]float64, len(series))
		for {
			// find the earliest unconsumed date across all series
			var on Date
			found := false
			for i, index := range indexes {
				if index >= series[i].Len() {
					continue
				}
				if d := series[i].days[index]; !found || d.Before(on) {
					on, found = d, true
				}
			}
			if !found {
				// All series have been consumed, exit.
				return
			}
			// build the aligned row, consuming the entries at that date
			for i := range row {
				row[i] = 0
				if index := indexes[i]; index < series[i].Len() && series[i].days[index] == on {
					row[i] = series[i].amounts[index]
					indexes[i]++
				}
			}
			if !yield(on, row) {
				return
			}
		}
	}
}

// MergeSum merges the series and row-sums the aligned columns: the combined
// daily amount across all inputs.
func MergeSum(series ...*Series) *Series {
	return mergeWith(floats.Sum, series...)
}

// MergeMax merges the series and keeps the row maximum of the aligned columns.
func MergeMax(series ...*Series) *Series {
	return mergeWith(floats.Max, series...)
}

func mergeWith(reduce func([]float64) float64, series ...*Series) *Series {
	merged := new(Series)
	for on, row := range Merge(series...) {
		merged.days = append(merged.days, on)
		merged.amounts = append(merged.amounts, reduce(row))
	}
	return merged
}
