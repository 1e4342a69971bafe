package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/capgains"
)

// HoldingMarkdown renders the open lot inventory to a markdown string.
func HoldingMarkdown(report *capgains.HoldingReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Holdings on %s\n\n", report.Date)

	if len(report.Securities) == 0 {
		fmt.Fprint(&b, "No open position.\n")
		return b.String()
	}

	fmt.Fprintln(&b, "| Security | Acquired | Volume | Price | Unattributed Fee |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|")
	for _, h := range report.Securities {
		fmt.Fprintf(&b, "| **%s** | | **%s** | | |\n", h.Security, h.Position)
		for _, l := range h.Lots {
			fmt.Fprintf(&b, "| | %s | %s | %s | %s |\n",
				l.Date,
				l.Quantity,
				l.Price,
				l.Fee,
			)
		}
	}
	return b.String()
}

// Transaction renders a single trade event to a one-line string.
func Transaction(tx capgains.Transaction) string {
	switch v := tx.(type) {
	case capgains.Buy:
		return fmt.Sprintf("Bought %s of %s at %s (fee %s)", v.Quantity, v.Security, v.Price, v.Fee)
	case capgains.Sell:
		return fmt.Sprintf("Sold %s of %s at %s (fee %s)", v.Quantity, v.Security, v.Price, v.Fee)
	case capgains.Dividend:
		return fmt.Sprintf("Dividend of %s on %s units of %s", v.PerUnit, v.Quantity, v.Security)
	default:
		return string(tx.What())
	}
}
