package pme

import (
	"strings"
	"testing"
)

func TestNewBenchmark_ForwardFill(t *testing.T) {
	// Trading levels on Monday and Thursday: the gap days carry the Monday
	// level forward.
	trading := series(map[string]float64{
		"2010-01-04": 100,
		"2010-01-07": 110,
	})
	b, err := NewBenchmark("TEST", trading)
	if err != nil {
		t.Fatalf("NewBenchmark() error = %v", err)
	}

	tests := []struct {
		on   string
		want float64
	}{
		{"2010-01-04", 100},
		{"2010-01-05", 100},
		{"2010-01-06", 100},
		{"2010-01-07", 110},
	}
	for _, test := range tests {
		got, ok := b.Level(day(test.on))
		if !ok {
			t.Errorf("Level(%s) not covered", test.on)
			continue
		}
		if got != test.want {
			t.Errorf("Level(%s) = %v, want %v", test.on, got, test.want)
		}
	}

	if _, ok := b.Level(day("2010-01-08")); ok {
		t.Errorf("Level(2010-01-08) = covered, want not covered")
	}

	from, to := b.Range()
	if from != day("2010-01-04") || to != day("2010-01-07") {
		t.Errorf("Range() = %v, %v, want 2010-01-04, 2010-01-07", from, to)
	}
}

func TestNewBenchmark_Invalid(t *testing.T) {
	if _, err := NewBenchmark("TEST", nil); err == nil {
		t.Errorf("NewBenchmark(nil) expected an error")
	}
	if _, err := NewBenchmark("TEST", new(Series)); err == nil {
		t.Errorf("NewBenchmark(empty) expected an error")
	}
	bad := series(map[string]float64{"2010-01-04": 100, "2010-01-05": -1})
	if _, err := NewBenchmark("TEST", bad); err == nil {
		t.Errorf("NewBenchmark(negative level) expected an error")
	}
}

func TestBenchmark_Sample(t *testing.T) {
	b, err := NewBenchmark("TEST", series(map[string]float64{
		"2010-01-04": 100,
		"2010-01-11": 110,
	}))
	if err != nil {
		t.Fatalf("NewBenchmark() error = %v", err)
	}

	s := series(map[string]float64{
		"2010-01-04": -100, // trading day
		"2010-01-09": 120,  // week-end, forward-filled
	})
	sampled, err := b.Sample(s)
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}
	if v, _ := sampled.Get(day("2010-01-04")); v != 100 {
		t.Errorf("Sample().Get(2010-01-04) = %v, want 100", v)
	}
	if v, _ := sampled.Get(day("2010-01-09")); v != 100 {
		t.Errorf("Sample().Get(2010-01-09) = %v, want 100", v)
	}

	outside := series(map[string]float64{"2010-02-01": 10})
	if _, err := b.Sample(outside); err == nil {
		t.Errorf("Sample() expected an error for an uncovered date")
	} else if !strings.Contains(err.Error(), "2010-02-01") {
		t.Errorf("Sample() error = %v, want the uncovered date in it", err)
	}
}

func TestDecodeBenchmark(t *testing.T) {
	in := `{"on":"2010-01-04","level":100}
{"on":"2010-01-07","level":110}
`
	b, err := DecodeBenchmark("TEST", "benchmark.jsonl", strings.NewReader(in))
	if err != nil {
		t.Fatalf("DecodeBenchmark() error = %v", err)
	}
	if v, _ := b.Level(day("2010-01-06")); v != 100 {
		t.Errorf("Level(2010-01-06) = %v, want 100", v)
	}

	// Encoding writes back the observed trading days only, not the dense
	// daily fill.
	var out strings.Builder
	if err := EncodeBenchmark(&out, b); err != nil {
		t.Fatalf("EncodeBenchmark() error = %v", err)
	}
	if out.String() != in {
		t.Errorf("EncodeBenchmark() =\n%s\nwant\n%s", out.String(), in)
	}

	if _, err := DecodeBenchmark("TEST", "benchmark.jsonl", strings.NewReader(`{"on":`)); err == nil {
		t.Errorf("DecodeBenchmark() expected an error on malformed json")
	}
}
