package pme

// day is a helper for tests to build a date from its ISO string.
func day(str string) Date { return MustParse(str) }

// series is a helper for tests to build a Series from date/amount pairs.
// Append keeps it sorted whatever the map iteration order.
func series(entries map[string]float64) *Series {
	s := new(Series)
	for str, v := range entries {
		s.Append(day(str), v)
	}
	return s
}
