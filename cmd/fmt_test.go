package cmd

import (
	"context"
	"flag"
	"os"
	"testing"

	"github.com/google/subcommands"
)

func TestFmtCommand(t *testing.T) {
	// Records out of order, with same-day flows to aggregate.
	records := writeTempFile(t, "records.jsonl", `{"fund":"Fund II","on":"2010-06-01","flow":-80,"currency":"USD"}
{"fund":"Fund I","on":"2012-01-01","flow":150}
{"fund":"Fund I","on":"2010-01-01","flow":-100}
{"fund":"Fund I","on":"2010-01-01","flow":-20}
`)

	cmd := &fmtCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)
	f.Set("l", records)

	if status := cmd.Execute(context.Background(), f); status != subcommands.ExitSuccess {
		t.Fatalf("Execute() = %v, want ExitSuccess", status)
	}

	got, err := os.ReadFile(records)
	if err != nil {
		t.Fatalf("failed to read formatted file: %v", err)
	}
	want := `{"fund":"Fund I","on":"2010-01-01","flow":"-120","currency":"USD"}
{"fund":"Fund I","on":"2012-01-01","flow":"150","currency":"USD"}
{"fund":"Fund II","on":"2010-06-01","flow":"-80","currency":"USD"}
`
	if string(got) != want {
		t.Errorf("formatted file mismatch.\nGot:\n%s\nWant:\n%s", got, want)
	}
}

func TestFmtCommand_InvalidRecords(t *testing.T) {
	records := writeTempFile(t, "records.jsonl", `{"fund":"Fund I","on":"2010-01-01"}`)

	cmd := &fmtCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)
	f.Set("l", records)

	if status := cmd.Execute(context.Background(), f); status != subcommands.ExitFailure {
		t.Errorf("Execute() = %v, want ExitFailure", status)
	}
}
