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

// buyCmd holds the flags for the 'buy' subcommand.
type buyCmd struct {
	date     string
	security string
	quantity string
	price    string
	fee      string
	memo     string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record the purchase of a security" }
func (*buyCmd) Usage() string {
	return `cgt buy -s <ticker> -q <quantity> -p <price> [-f <fee>] [-d <date>] [-m <memo>]

  Records a purchase, opening a new acquisition lot in the ledger.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", capgains.Today().String(), "Date of the purchase (YYYY-MM-DD).")
	f.StringVar(&c.security, "s", "", "Ticker of the purchased security.")
	f.StringVar(&c.quantity, "q", "", "Number of units bought.")
	f.StringVar(&c.price, "p", "", "Price paid per unit.")
	f.StringVar(&c.fee, "f", "0", "Brokerage fee of the purchase.")
	f.StringVar(&c.memo, "m", "", "Optional memo.")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	tx := capgains.NewBuy(day, c.memo, c.security, quantity, price, fee)
	validated, err := ledger.Validate(tx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	return EncodeTransaction(validated)
}

// parseTradeAmounts parses the quantity, price and fee flags shared by the
// buy and sell subcommands.
func parseTradeAmounts(quantity, price, fee string) (capgains.Quantity, capgains.Money, capgains.Money, error) {
	q, err := decimal.NewFromString(quantity)
	if err != nil {
		return capgains.Quantity{}, capgains.Money{}, capgains.Money{}, fmt.Errorf("invalid quantity %q: %w", quantity, err)
	}
	p, err := decimal.NewFromString(price)
	if err != nil {
		return capgains.Quantity{}, capgains.Money{}, capgains.Money{}, fmt.Errorf("invalid price %q: %w", price, err)
	}
	f, err := decimal.NewFromString(fee)
	if err != nil {
		return capgains.Quantity{}, capgains.Money{}, capgains.Money{}, fmt.Errorf("invalid fee %q: %w", fee, err)
	}
	return capgains.Q(q), capgains.M(p, *currency), capgains.M(f, *currency), nil
}
