// Package cmd implements the CLI application to compute fund performance.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/pme"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&reportCmd{}, "analysis")
	c.Register(&assistCmd{}, "analysis")

	c.Register(&fetchCmd{}, "data")
	c.Register(&fmtCmd{}, "data")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "pme.yaml", "Path to the optional settings file")

// DecodeRecordSet decodes the fund records from the given file.
func DecodeRecordSet(filename string) (*pme.RecordSet, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open records file: %w", err)
	}
	defer f.Close()
	return pme.DecodeRecords(filename, f)
}

// DecodeBenchmarkFile decodes the benchmark levels from the given file.
func DecodeBenchmarkFile(name, filename string) (*pme.Benchmark, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open benchmark file: %w", err)
	}
	defer f.Close()
	return pme.DecodeBenchmark(name, filename, f)
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when the terminal renderer fails.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
