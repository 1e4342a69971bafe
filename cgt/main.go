package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/capgains/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion describes the CLI for shell completion. It must be kept in
// sync with cmd.Register.
var completion = &complete.Command{
	Sub: map[string]*complete.Command{
		"buy":      tradeCompletion(),
		"sell":     tradeCompletion(),
		"dividend": tradeCompletion(),
		"import": {Flags: map[string]complete.Predictor{
			"csv": predict.Files("*.csv"),
		}},
		"fmt":     {},
		"log":     {},
		"gains":   {},
		"holding": {},
		"topic":   {Args: predict.Set{"*", "ledger", "matching", "fiscal-year"}},
	},
	Flags: map[string]complete.Predictor{
		"ledger-file": predict.Files("*.jsonl"),
		"currency":    predict.Set{"AUD", "USD", "EUR"},
	},
}

func tradeCompletion() *complete.Command {
	return &complete.Command{Flags: map[string]complete.Predictor{
		"d": predict.Nothing,
		"s": predict.Nothing,
		"q": predict.Nothing,
		"p": predict.Nothing,
		"f": predict.Nothing,
		"m": predict.Nothing,
	}}
}

func main() {
	completion.Complete("cgt")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(subcommands.HelpCommand(), "")
	commander.Register(subcommands.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
