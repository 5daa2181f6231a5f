package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pme"
	"github.com/etnz/pme/renderer"
	"github.com/google/subcommands"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	records string
	index   string
}

func (*reportCmd) Name() string { return "report" }

func (*reportCmd) Synopsis() string {
	return "compute fund performance metrics against the benchmark"
}
func (*reportCmd) Usage() string {
	return `pme report [-l <records>] [-b <levels>]

  Compute TVPI, DPI, IRR, KS-PME and Direct Alpha for every fund in the
  records file, and for the aggregated Total, against the benchmark index.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.records, "l", "", "Records file to report on. Defaults to the settings file value.")
	f.StringVar(&c.index, "b", "", "Benchmark levels file. Defaults to the settings file value.")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	md, err := generateReport(c.records, c.index)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}

// generateReport computes the metrics for every entity and renders them.
// It is shared with the 'assist' subcommand.
func generateReport(recordsFlag, indexFlag string) (string, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return "", err
	}

	rs, err := DecodeRecordSet(override(recordsFlag, cfg.Records))
	if err != nil {
		return "", err
	}
	b, err := DecodeBenchmarkFile(cfg.Benchmark, override(indexFlag, cfg.Index))
	if err != nil {
		return "", err
	}

	entities, err := rs.Entities(b)
	if err != nil {
		return "", err
	}
	results, err := pme.ComputeAll(entities)
	if err != nil {
		return "", err
	}

	return renderer.PerformanceMarkdown(renderer.NewReport(rs, b, results)), nil
}
