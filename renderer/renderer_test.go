package renderer

import (
	"math"
	"strings"
	"testing"

	"github.com/etnz/pme"
)

func TestHelpers(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{Ratio(1.2), "1.20x"},
		{Ratio(math.NaN()), "n/a"},
		{Rate(0.115734), "+11.57%"},
		{Rate(-0.0525), "-5.25%"},
		{Rate(math.NaN()), "n/a"},
		{Level(1132.99), "1,132.99"},
	}
	for _, test := range tests {
		if test.got != test.want {
			t.Errorf("got %q, want %q", test.got, test.want)
		}
	}
}

func TestPerformanceMarkdown(t *testing.T) {
	in := `{"fund":"Fund I","on":"2010-01-04","flow":-100,"currency":"USD"}
{"fund":"Fund I","on":"2012-01-04","flow":150}
{"fund":"Fund II","on":"2010-01-04","flow":-80}
{"fund":"Fund II","on":"2012-01-04","value":80}
`
	rs, err := pme.DecodeRecords("records.jsonl", strings.NewReader(in))
	if err != nil {
		t.Fatalf("DecodeRecords() error = %v", err)
	}

	trading := new(pme.Series)
	trading.Append(pme.MustParse("2010-01-04"), 1000)
	trading.Append(pme.MustParse("2012-01-04"), 1100)
	b, err := pme.NewBenchmark("GSPC.INDX", trading)
	if err != nil {
		t.Fatalf("NewBenchmark() error = %v", err)
	}

	entities, err := rs.Entities(b)
	if err != nil {
		t.Fatalf("Entities() error = %v", err)
	}
	results, err := pme.ComputeAll(entities)
	if err != nil {
		t.Fatalf("ComputeAll() error = %v", err)
	}

	md := PerformanceMarkdown(NewReport(rs, b, results))

	for _, want := range []string{
		"# Fund Performance vs GSPC.INDX",
		"Benchmark from 1,000.00 on 2010-01-04 to 1,100.00 on 2012-01-04.",
		"| Fund | Paid-In | Distributed | Residual | TVPI | DPI | IRR | KS-PME | Direct Alpha | Benchmark IRR |",
		"| Fund I | $100.00 | $150.00 | $0.00 | 1.50x | 1.50x |",
		"| Fund II | $80.00 | $0.00 | $80.00 | 1.00x | 0.00x |",
		"| Total |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("PerformanceMarkdown() missing %q in:\n%s", want, md)
		}
	}
	if strings.Contains(md, "error") {
		t.Errorf("PerformanceMarkdown() rendered an error:\n%s", md)
	}
}
