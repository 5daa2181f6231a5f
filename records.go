package pme

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/shopspring/decimal"
)

// TotalName is the name of the synthetic entity aggregating every fund in a
// record set.
const TotalName = "Total"

// Record is one dated observation for a fund, read from the records file.
// Exactly one of Flow and Value must be set: a signed cash flow from the
// investor's point of view (negative = capital call, positive =
// distribution), or a valuation mark (the fund's residual value on that day).
type Record struct {
	Fund     string           `json:"fund"`
	On       Date             `json:"on"`
	Flow     *decimal.Decimal `json:"flow,omitempty"`
	Value    *decimal.Decimal `json:"value,omitempty"`
	Currency string           `json:"currency,omitempty"`
}

// RecordSet holds the cash flows and valuation marks of a set of funds, with
// same-day records already aggregated: flows on the same (fund, date) are
// summed, a later valuation mark replaces an earlier one.
type RecordSet struct {
	currency string
	names    []string // funds in first-seen order
	flows    map[string]*Series
	values   map[string]*Series
}

// NewRecordSet returns a new empty record set.
func NewRecordSet() *RecordSet {
	return &RecordSet{
		flows:  make(map[string]*Series),
		values: make(map[string]*Series),
	}
}

// Append validates and adds a single record.
func (rs *RecordSet) Append(rec Record) error {
	if rec.Fund == "" {
		return fmt.Errorf("record on %s has no fund name", rec.On)
	}
	if rec.On.IsZero() {
		return fmt.Errorf("record for fund %q has no date", rec.Fund)
	}
	if (rec.Flow == nil) == (rec.Value == nil) {
		return fmt.Errorf("record for fund %q on %s must have exactly one of \"flow\" or \"value\"", rec.Fund, rec.On)
	}
	if rec.Currency != "" {
		if rs.currency == "" {
			rs.currency = rec.Currency
		} else if rec.Currency != rs.currency {
			return fmt.Errorf("record for fund %q on %s is in %s, want %s (multi-currency sets are not supported)", rec.Fund, rec.On, rec.Currency, rs.currency)
		}
	}

	if _, ok := rs.flows[rec.Fund]; !ok {
		rs.names = append(rs.names, rec.Fund)
		rs.flows[rec.Fund] = new(Series)
		rs.values[rec.Fund] = new(Series)
	}
	if rec.Flow != nil {
		rs.flows[rec.Fund].AppendAdd(rec.On, rec.Flow.InexactFloat64())
		return nil
	}
	v := rec.Value.InexactFloat64()
	if v < 0 {
		return fmt.Errorf("valuation for fund %q on %s is negative", rec.Fund, rec.On)
	}
	rs.values[rec.Fund].Append(rec.On, v)
	return nil
}

// Funds returns the fund names in alphabetical order.
func (rs *RecordSet) Funds() []string {
	names := slices.Clone(rs.names)
	slices.Sort(names)
	return names
}

// Currency returns the currency shared by all records, or "".
func (rs *RecordSet) Currency() string { return rs.currency }

// CashFlows returns the aggregated daily cash flows of a fund, or of the
// whole set for TotalName.
func (rs *RecordSet) CashFlows(fund string) *Series { return rs.series(rs.flows, fund) }

// Valuations returns the valuation marks of a fund, or their daily sum across
// funds for TotalName.
func (rs *RecordSet) Valuations(fund string) *Series { return rs.series(rs.values, fund) }

func (rs *RecordSet) series(m map[string]*Series, fund string) *Series {
	if fund == TotalName {
		all := make([]*Series, 0, len(rs.names))
		for _, name := range rs.Funds() {
			all = append(all, m[name])
		}
		return MergeSum(all...)
	}
	if s, ok := m[fund]; ok {
		return s
	}
	return new(Series)
}

// PaidIn returns the total capital called from the investor for a fund.
func (rs *RecordSet) PaidIn(fund string) Money {
	return M(-rs.CashFlows(fund).NegativeSum(), rs.currency)
}

// Distributed returns the total distributions received for a fund.
func (rs *RecordSet) Distributed(fund string) Money {
	return M(rs.CashFlows(fund).PositiveSum(), rs.currency)
}

// Residual returns the latest valuation mark of a fund.
func (rs *RecordSet) Residual(fund string) Money {
	_, nav := rs.Valuations(fund).Last()
	return M(nav, rs.currency)
}

// Entities builds the units of analysis: one EntityRecord per fund, plus the
// synthetic Total aggregating all of them when there is more than one fund.
// The benchmark is sampled at every cash-flow and valuation date; a date
// outside its span is an error.
func (rs *RecordSet) Entities(b *Benchmark) ([]EntityRecord, error) {
	names := rs.Funds()
	if len(names) > 1 {
		names = append(names, TotalName)
	}
	entities := make([]EntityRecord, 0, len(names))
	for _, name := range names {
		rec, err := rs.entity(name, b)
		if err != nil {
			return nil, err
		}
		entities = append(entities, rec)
	}
	return entities, nil
}

func (rs *RecordSet) entity(name string, b *Benchmark) (EntityRecord, error) {
	flows := rs.CashFlows(name)
	values := rs.Valuations(name)
	idxFlows, err := b.Sample(flows)
	if err != nil {
		return EntityRecord{}, fmt.Errorf("fund %q cash flows: %w", name, err)
	}
	idxValues, err := b.Sample(values)
	if err != nil {
		return EntityRecord{}, fmt.Errorf("fund %q valuations: %w", name, err)
	}
	return EntityRecord{
		Name:              name,
		CashFlows:         flows,
		Valuations:        values,
		IndexAtCashFlows:  idxFlows,
		IndexAtValuations: idxValues,
	}, nil
}

// DecodeRecords parses a records file: a JSONL file, one record per line.
// filename is for error messages only.
func DecodeRecords(filename string, r io.Reader) (*RecordSet, error) {
	rs := NewRecordSet()
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Bytes()
		if isBlank(text) {
			continue
		}
		var rec Record
		if err := json.Unmarshal(text, &rec); err != nil {
			return nil, fmt.Errorf("format error in %s:%d: %w", filename, line, err)
		}
		if err := rs.Append(rec); err != nil {
			return nil, fmt.Errorf("invalid record in %s:%d: %w", filename, line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	return rs, nil
}

func isBlank(line []byte) bool {
	for _, c := range line {
		if c != ' ' && c != '\t' && c != '\r' {
			return false
		}
	}
	return true
}

// EncodeRecords writes the set in its canonical form: funds in alphabetical
// order, flows before valuations, dates ascending, one JSON object per line.
func EncodeRecords(w io.Writer, rs *RecordSet) error {
	encode := func(rec Record) error {
		b, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", b)
		return err
	}
	for _, fund := range rs.Funds() {
		for on, v := range rs.flows[fund].Values() {
			flow := decimal.NewFromFloat(v)
			if err := encode(Record{Fund: fund, On: on, Flow: &flow, Currency: rs.currency}); err != nil {
				return err
			}
		}
		for on, v := range rs.values[fund].Values() {
			value := decimal.NewFromFloat(v)
			if err := encode(Record{Fund: fund, On: on, Value: &value, Currency: rs.currency}); err != nil {
				return err
			}
		}
	}
	return nil
}
