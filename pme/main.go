package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/pme/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion, a no-op unless invoked by the completion machinery.
	completer := &complete.Command{
		Sub: map[string]*complete.Command{
			"report": {Flags: map[string]complete.Predictor{"l": predict.Files("*.jsonl"), "b": predict.Files("*.jsonl")}},
			"assist": {Flags: map[string]complete.Predictor{"l": predict.Files("*.jsonl"), "b": predict.Files("*.jsonl")}},
			"fetch":  {Flags: map[string]complete.Predictor{"ticker": predict.Nothing, "from": predict.Nothing, "to": predict.Nothing, "o": predict.Files("*.jsonl")}},
			"fmt":    {Flags: map[string]complete.Predictor{"l": predict.Files("*.jsonl")}},
			"topic":  {},
		},
	}
	completer.Complete("pme")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
