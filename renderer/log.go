// Package renderer renders the engine's reports as markdown.
package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/capgains"
)

// LogMarkdown renders the consolidated audit trail as a markdown table, in
// processing order. Each sell is followed by its lot-by-lot breakdown.
func LogMarkdown(journal *capgains.Journal) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Trade Log\n\n")
	fmt.Fprintln(&b, "| Date | Trade | Code | Volume | Price | Fee | Total | Profit |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|---:|---:|")

	for _, e := range journal.Entries() {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			e.Date,
			strings.ToUpper(string(e.Command)),
			e.Security,
			e.Quantity,
			e.Price,
			e.Fee,
			e.Amount.SignedString(),
			profitCell(e),
		)
		for _, row := range e.Fulfillments {
			fmt.Fprintf(&b, "| | ↳ lot %s | | %s | %s | %s | held %dd | %s |\n",
				row.Date,
				row.Quantity,
				row.Price,
				row.BuyFee.Add(row.SellFee),
				row.HoldingDays,
				row.Profit.SignedString(),
			)
		}
	}
	return b.String()
}

// profitCell leaves the profit column blank for buys, which realize nothing.
func profitCell(e capgains.Entry) string {
	if e.Command == capgains.CmdBuy {
		return ""
	}
	return e.NetProfit.SignedString()
}
