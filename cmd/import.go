package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/capgains"
	"github.com/google/subcommands"
)

// importCmd holds the flags for the 'import' subcommand.
type importCmd struct {
	csvFile string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import trade events from a CSV file" }
func (*importCmd) Usage() string {
	return `cgt import -csv <file>

  Reads a CSV file with columns date, trade, code, volume, price, fee and
  writes the events to the ledger file in JSONL format. The ledger file is
  overwritten.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.csvFile, "csv", "trades.csv", "Path to the CSV file to import.")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	in, err := os.Open(c.csvFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening CSV file %q: %v\n", c.csvFile, err)
		return subcommands.ExitFailure
	}
	defer in.Close()

	ledger, err := capgains.ImportTrades(in, *currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing trades: %v\n", err)
		return subcommands.ExitFailure
	}

	// Replay the whole ledger once, so a broken import is rejected before
	// anything is written.
	if _, err := capgains.NewJournal(ledger, *currency); err != nil {
		fmt.Fprintf(os.Stderr, "Error validating imported trades: %v\n", err)
		return subcommands.ExitFailure
	}

	out, err := os.Create(*ledgerFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	defer out.Close()

	if err := capgains.EncodeLedger(out, ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully imported %s into %s\n", c.csvFile, *ledgerFile)
	return subcommands.ExitSuccess
}
