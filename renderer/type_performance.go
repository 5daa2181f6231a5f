package renderer

import (
	"github.com/etnz/pme"
)

// Report is the view model of a performance report: one row per entity, all
// cells preformatted.
type Report struct {
	Benchmark  string
	From, To   string // covered benchmark span
	FirstLevel string
	LastLevel  string
	Rows       []Row
}

// Row holds the formatted metrics of one entity.
type Row struct {
	Name         string
	PaidIn       string
	Distributed  string
	Residual     string
	TVPI         string
	DPI          string
	IRR          string
	KSPME        string
	DirectAlpha  string
	BenchmarkIRR string
}

// NewReport builds the view model from the record set, the benchmark it was
// evaluated against, and the computed results.
func NewReport(rs *pme.RecordSet, b *pme.Benchmark, results []pme.PerformanceResult) *Report {
	from, to := b.Range()
	first, _ := b.Level(from)
	last, _ := b.Level(to)
	r := &Report{
		Benchmark:  b.Name(),
		From:       from.String(),
		To:         to.String(),
		FirstLevel: Level(first),
		LastLevel:  Level(last),
	}
	for _, res := range results {
		r.Rows = append(r.Rows, Row{
			Name:         res.Name,
			PaidIn:       rs.PaidIn(res.Name).String(),
			Distributed:  rs.Distributed(res.Name).String(),
			Residual:     rs.Residual(res.Name).String(),
			TVPI:         Ratio(res.TVPI),
			DPI:          Ratio(res.DPI),
			IRR:          Rate(res.IRR),
			KSPME:        Ratio(res.KSPME),
			DirectAlpha:  Rate(res.DirectAlpha),
			BenchmarkIRR: Rate(res.ImpliedBenchmarkIRR),
		})
	}
	return r
}
