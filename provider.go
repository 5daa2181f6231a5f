package pme

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

// Provider fetches benchmark levels from an arbitrary JSON endpoint, for
// benchmarks that EODHD does not carry. Two jsonpath expressions locate the
// parallel lists of dates and levels in the response.
type Provider struct {
	// URL of the endpoint. The {from} and {to} placeholders, if present, are
	// replaced by the requested ISO dates.
	URL string `yaml:"url"`
	// Dates is the jsonpath to the list of ISO date strings.
	Dates string `yaml:"dates"`
	// Levels is the jsonpath to the list of index levels, parallel to Dates.
	Levels string `yaml:"levels"`
}

// FetchIndex returns the daily levels between from and to inclusive.
func (p Provider) FetchIndex(from, to Date) (*Series, error) {
	addr := strings.ReplaceAll(p.URL, "{from}", from.String())
	addr = strings.ReplaceAll(addr, "{to}", to.String())

	var jobj any
	if err := jwget(daily(), addr, &jobj); err != nil {
		return nil, fmt.Errorf("error in wget %q: %w", addr, err)
	}

	jdates, err := jsonpath.Get(p.Dates, jobj)
	if err != nil {
		return nil, fmt.Errorf("error extracting dates: %q %w", p.Dates, err)
	}
	jlevels, err := jsonpath.Get(p.Levels, jobj)
	if err != nil {
		return nil, fmt.Errorf("error extracting levels: %q %w", p.Levels, err)
	}

	dates, ok := jdates.([]any)
	if !ok {
		return nil, fmt.Errorf("dates path %q: not a list: %v", p.Dates, jdates)
	}
	values, ok := jlevels.([]any)
	if !ok {
		return nil, fmt.Errorf("levels path %q: not a list: %v", p.Levels, jlevels)
	}
	if len(dates) != len(values) {
		return nil, fmt.Errorf("got %d dates for %d levels", len(dates), len(values))
	}

	levels := new(Series)
	for i, jd := range dates {
		str, ok := jd.(string)
		if !ok {
			return nil, fmt.Errorf("date %v is not a string", jd)
		}
		t, err := time.Parse(readDateFormat, str)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", str, err)
		}
		on := NewDate(t.Date())

		level, err := toFloat(values[i])
		if err != nil {
			return nil, fmt.Errorf("level on %s: %w", on, err)
		}
		if on.Before(from) || on.After(to) {
			continue
		}
		levels.Append(on, level)
	}
	return levels, nil
}

// toFloat reads a level that some APIs return as a float and others as a
// localized string.
func toFloat(jval any) (float64, error) {
	if v, ok := jval.(float64); ok {
		return v, nil
	}
	sval, ok := jval.(string)
	if !ok {
		return 0, fmt.Errorf("neither a float nor a string: %v", jval)
	}
	sval = strings.ReplaceAll(sval, ",", ".")
	sval = strings.ReplaceAll(sval, " ", "")
	v, err := strconv.ParseFloat(sval, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid string value %q: %w", sval, err)
	}
	return v, nil
}
