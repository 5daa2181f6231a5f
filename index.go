package pme

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// Benchmark is a dense daily market index: one strictly positive level per
// calendar day over the covered span, with non-trading days carried forward
// from the most recent prior trading day.
type Benchmark struct {
	name    string
	trading *Series // the observed trading-day levels, as fetched
	levels  *Series // dense daily levels derived from trading
}

// NewBenchmark builds a dense daily benchmark from observed trading-day
// levels. Levels must be strictly positive.
func NewBenchmark(name string, trading *Series) (*Benchmark, error) {
	if trading == nil || trading.Len() == 0 {
		return nil, fmt.Errorf("benchmark %q has no levels", name)
	}
	levels := new(Series)
	from, level := trading.First()
	to, _ := trading.Last()
	for on := from; !on.After(to); on = on.Add(1) {
		if v, ok := trading.Get(on); ok {
			level = v
		}
		if level <= 0 {
			return nil, fmt.Errorf("benchmark %q level on %s is %g, want > 0", name, on, level)
		}
		levels.Append(on, level)
	}
	return &Benchmark{name: name, trading: trading, levels: levels}, nil
}

// Name returns the benchmark identifier (usually its ticker).
func (b *Benchmark) Name() string { return b.name }

// Range returns the first and last covered days.
func (b *Benchmark) Range() (from, to Date) {
	from, _ = b.levels.First()
	to, _ = b.levels.Last()
	return from, to
}

// Level returns the index level on a given day.
func (b *Benchmark) Level(on Date) (float64, bool) { return b.levels.Get(on) }

// Sample returns the benchmark levels at every date of the given series. A
// date outside the covered span is an upstream data-preparation defect and
// fails.
func (b *Benchmark) Sample(s *Series) (*Series, error) {
	sampled := new(Series)
	for on := range s.Values() {
		level, ok := b.levels.Get(on)
		if !ok {
			from, to := b.Range()
			return nil, fmt.Errorf("benchmark %q does not cover %s (covers %s to %s)", b.name, on, from, to)
		}
		sampled.Append(on, level)
	}
	return sampled, nil
}

// benchmarkLine is the JSONL representation of one trading-day level.
type benchmarkLine struct {
	On    Date    `json:"on"`
	Level float64 `json:"level"`
}

// DecodeBenchmark parses a benchmark file: a JSONL file with one trading-day
// level per line. filename is for error messages only.
func DecodeBenchmark(name, filename string, r io.Reader) (*Benchmark, error) {
	trading := new(Series)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Bytes()
		if isBlank(text) {
			continue
		}
		var bl benchmarkLine
		if err := json.Unmarshal(text, &bl); err != nil {
			return nil, fmt.Errorf("format error in %s:%d: %w", filename, line, err)
		}
		trading.Append(bl.On, bl.Level)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	return NewBenchmark(name, trading)
}

// EncodeBenchmark writes the observed trading-day levels, one JSON object per
// line, dates ascending. The dense daily fill is recomputed on decode.
func EncodeBenchmark(w io.Writer, b *Benchmark) error {
	for on, v := range b.trading.Values() {
		line, err := json.Marshal(benchmarkLine{On: on, Level: v})
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s\n", line); err != nil {
			return err
		}
	}
	return nil
}
