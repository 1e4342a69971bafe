package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/capgains"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// dividendCmd holds the flags for the 'dividend' subcommand.
type dividendCmd struct {
	date     string
	security string
	quantity string
	perUnit  string
	memo     string
}

func (*dividendCmd) Name() string     { return "dividend" }
func (*dividendCmd) Synopsis() string { return "record a dividend payment" }
func (*dividendCmd) Usage() string {
	return `cgt dividend -s <ticker> -q <quantity> -p <amount_per_unit> [-d <date>] [-m <memo>]

  Records a dividend payment. Dividends are pure income: they never touch
  the lot inventory, and are accepted even when no lots are currently held.
`
}

func (c *dividendCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", capgains.Today().String(), "Date of the payment (YYYY-MM-DD).")
	f.StringVar(&c.security, "s", "", "Ticker of the paying security.")
	f.StringVar(&c.quantity, "q", "", "Number of units the dividend applies to.")
	f.StringVar(&c.perUnit, "p", "", "Dividend amount per unit.")
	f.StringVar(&c.memo, "m", "", "Optional memo.")
}

func (c *dividendCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := capgains.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	q, err := decimal.NewFromString(c.quantity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid quantity %q: %v\n", c.quantity, err)
		return subcommands.ExitUsageError
	}
	p, err := decimal.NewFromString(c.perUnit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid per-unit amount %q: %v\n", c.perUnit, err)
		return subcommands.ExitUsageError
	}

	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	tx := capgains.NewDividend(day, c.memo, c.security, capgains.Q(q), capgains.M(p, *currency))
	validated, err := ledger.Validate(tx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	return EncodeTransaction(validated)
}
