package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/capgains"
	"github.com/google/subcommands"
)

// sellCmd holds the flags for the 'sell' subcommand.
type sellCmd struct {
	date     string
	security string
	quantity string
	price    string
	fee      string
	memo     string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record the sale of a security" }
func (*sellCmd) Usage() string {
	return `cgt sell -s <ticker> -q <quantity> -p <price> [-f <fee>] [-d <date>] [-m <memo>]

  Records a sale. The sale is rejected when the position held on the sale
  date is insufficient.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", capgains.Today().String(), "Date of the sale (YYYY-MM-DD).")
	f.StringVar(&c.security, "s", "", "Ticker of the sold security.")
	f.StringVar(&c.quantity, "q", "", "Number of units sold.")
	f.StringVar(&c.price, "p", "", "Price received per unit.")
	f.StringVar(&c.fee, "f", "0", "Brokerage fee of the sale.")
	f.StringVar(&c.memo, "m", "", "Optional memo.")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := capgains.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	quantity, price, fee, err := parseTradeAmounts(c.quantity, c.price, c.fee)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	tx := capgains.NewSell(day, c.memo, c.security, quantity, price, fee)
	validated, err := ledger.Validate(tx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	return EncodeTransaction(validated)
}
