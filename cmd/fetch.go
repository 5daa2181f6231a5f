package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pme"
	"github.com/google/subcommands"
)

// fetchCmd holds the flags for the 'fetch' subcommand.
type fetchCmd struct {
	ticker  string
	records string
	out     string
	from    string
	to      string
}

func (*fetchCmd) Name() string { return "fetch" }

func (*fetchCmd) Synopsis() string { return "download the benchmark index levels" }
func (*fetchCmd) Usage() string {
	return `pme fetch [-ticker <ticker>] [-from <date>] [-to <date>] [-o <file>]

  Download the benchmark daily levels and store them as a JSONL file. The
  range defaults to the span of the records file, extended to today so that
  valuations marked today are covered.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "ticker", "", "Benchmark ticker on EODHD. Defaults to the settings file value.")
	f.StringVar(&c.records, "l", "", "Records file used to compute the default date range.")
	f.StringVar(&c.out, "o", "", "Output file. Defaults to the settings file value.")
	f.StringVar(&c.from, "from", "", "First day to fetch. Supports relative dates like -10y.")
	f.StringVar(&c.to, "to", "", "Last day to fetch. Defaults to today.")
}

func (c *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *fetchCmd) run() error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	from, to, err := c.fetchRange(cfg)
	if err != nil {
		return err
	}

	ticker := override(c.ticker, cfg.Benchmark)
	var levels *pme.Series
	if cfg.Provider != nil {
		levels, err = cfg.Provider.FetchIndex(from, to)
	} else {
		levels, err = pme.FetchIndex(ticker, from, to)
	}
	if err != nil {
		return err
	}

	// Building the benchmark validates the levels before anything is written.
	b, err := pme.NewBenchmark(ticker, levels)
	if err != nil {
		return err
	}

	out := override(c.out, cfg.Index)
	w, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("cannot create benchmark file: %w", err)
	}
	defer w.Close()
	if err := pme.EncodeBenchmark(w, b); err != nil {
		return fmt.Errorf("cannot write benchmark file %q: %w", out, err)
	}
	fmt.Printf("Fetched %d levels of %s into %s\n", levels.Len(), ticker, out)
	return nil
}

// fetchRange resolves the date range to fetch: explicit flags win, otherwise
// the span of the records file extended to today.
func (c *fetchCmd) fetchRange(cfg Config) (from, to pme.Date, err error) {
	to = pme.Today()
	if c.to != "" {
		if to, err = pme.ParseDate(c.to); err != nil {
			return from, to, fmt.Errorf("parsing -to: %w", err)
		}
	}
	if c.from != "" {
		if from, err = pme.ParseDate(c.from); err != nil {
			return from, to, fmt.Errorf("parsing -from: %w", err)
		}
		return from, to, nil
	}

	rs, err := DecodeRecordSet(override(c.records, cfg.Records))
	if err != nil {
		return from, to, fmt.Errorf("cannot compute the default date range: %w", err)
	}
	all := pme.MergeSum(rs.CashFlows(pme.TotalName), rs.Valuations(pme.TotalName))
	if all.Len() == 0 {
		return from, to, fmt.Errorf("records file has no entries, use -from and -to")
	}
	from, _ = all.First()
	return from, to, nil
}
