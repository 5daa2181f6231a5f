package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pme"
	"github.com/google/subcommands"
)

type fmtCmd struct {
	records string
}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the records file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `pme fmt [-l <records>]

  Validates and formats the records file. This command reads all records,
  validates them, aggregates same-day flows, sorts them by fund and date,
  and writes them back in a canonical JSONL format.
`
}

func (c *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.records, "l", "", "Records file to format. Defaults to the settings file value.")
}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	filename := override(c.records, cfg.Records)

	rs, err := DecodeRecordSet(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	w, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot rewrite %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	defer w.Close()
	if err := pme.EncodeRecords(w, rs); err != nil {
		fmt.Fprintf(os.Stderr, "Error: writing %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(os.Stderr, "Formatted %q.\n", filename)
	return subcommands.ExitSuccess
}
