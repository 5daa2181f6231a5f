package pme

import (
	"testing"
)

func TestAppend(t *testing.T) {
	s := new(Series)
	s.Append(day("2010-03-01"), 3).
		Append(day("2010-01-01"), 1).
		Append(day("2010-02-01"), 2)

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}

	// Entries come back in date order whatever the insertion order.
	want := []struct {
		on string
		v  float64
	}{
		{"2010-01-01", 1},
		{"2010-02-01", 2},
		{"2010-03-01", 3},
	}
	i := 0
	for on, v := range s.Values() {
		if on != day(want[i].on) || v != want[i].v {
			t.Errorf("entry %d = (%v, %v), want (%s, %v)", i, on, v, want[i].on, want[i].v)
		}
		i++
	}

	// Appending on an existing day replaces the amount.
	s.Append(day("2010-02-01"), 20)
	if v, _ := s.Get(day("2010-02-01")); v != 20 {
		t.Errorf("Get() after replace = %v, want 20", v)
	}
	if s.Len() != 3 {
		t.Errorf("Len() after replace = %d, want 3", s.Len())
	}
}

func TestAppendAdd(t *testing.T) {
	s := new(Series)
	s.AppendAdd(day("2010-01-01"), -100)
	s.AppendAdd(day("2010-01-01"), -50)
	s.AppendAdd(day("2010-06-01"), 30)

	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if v, _ := s.Get(day("2010-01-01")); v != -150 {
		t.Errorf("Get(2010-01-01) = %v, want -150", v)
	}
}

func TestSums(t *testing.T) {
	s := series(map[string]float64{
		"2010-01-01": -100,
		"2011-01-01": -50,
		"2012-01-01": 180,
	})
	if got := s.Sum(); got != 30 {
		t.Errorf("Sum() = %v, want 30", got)
	}
	if got := s.PositiveSum(); got != 180 {
		t.Errorf("PositiveSum() = %v, want 180", got)
	}
	if got := s.NegativeSum(); got != -150 {
		t.Errorf("NegativeSum() = %v, want -150", got)
	}
}

func TestSpan(t *testing.T) {
	// 2010 and 2011 are non-leap years: two plain 365-day years.
	s := series(map[string]float64{
		"2010-01-01": -100,
		"2012-01-01": 180,
	})
	if got := s.Span(); got != 730 {
		t.Errorf("Span() = %d, want 730", got)
	}
	// 2012 is a leap year: one extra calendar day.
	leap := series(map[string]float64{
		"2011-01-01": -100,
		"2013-01-01": 180,
	})
	if got := leap.Span(); got != 731 {
		t.Errorf("Span() = %d, want 731", got)
	}
	if got := new(Series).Span(); got != 0 {
		t.Errorf("empty Span() = %d, want 0", got)
	}
}

func TestScale(t *testing.T) {
	s := series(map[string]float64{
		"2010-01-01": -100,
		"2012-01-01": 180,
	})
	doubled := s.Scale(func(on Date) float64 { return 2 })
	if v, _ := doubled.Get(day("2010-01-01")); v != -200 {
		t.Errorf("Scale() = %v, want -200", v)
	}
	// The receiver is left untouched.
	if v, _ := s.Get(day("2010-01-01")); v != -100 {
		t.Errorf("original = %v, want -100", v)
	}
}

func TestMergeSum(t *testing.T) {
	flows := series(map[string]float64{
		"2010-01-01": -100,
		"2012-01-01": 120,
	})
	values := series(map[string]float64{
		"2012-01-01": 60,
		"2013-01-01": 40,
	})

	all := MergeSum(flows, values)
	want := []struct {
		on string
		v  float64
	}{
		{"2010-01-01", -100},
		{"2012-01-01", 180},
		{"2013-01-01", 40},
	}
	if all.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", all.Len(), len(want))
	}
	for _, w := range want {
		if v, ok := all.Get(day(w.on)); !ok || v != w.v {
			t.Errorf("Get(%s) = %v, want %v", w.on, v, w.v)
		}
	}
}

func TestMergeMax(t *testing.T) {
	a := series(map[string]float64{"2010-01-01": 100, "2011-01-01": 110})
	b := series(map[string]float64{"2011-01-01": 105, "2012-01-01": 120})

	m := MergeMax(a, b)
	if v, _ := m.Get(day("2011-01-01")); v != 110 {
		t.Errorf("Get(2011-01-01) = %v, want 110", v)
	}
	// Dates present in only one series keep their level, the missing one
	// contributes zero.
	if v, _ := m.Get(day("2012-01-01")); v != 120 {
		t.Errorf("Get(2012-01-01) = %v, want 120", v)
	}
}
