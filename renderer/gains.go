package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/capgains"
)

// GainsMarkdown renders the fiscal-year gains report to a markdown string.
func GainsMarkdown(report *capgains.GainsReport) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Capital Gains Report\n\n")

	fmt.Fprint(&b, "## Profit per Fiscal Year\n\n")
	fmt.Fprintln(&b, "| Fiscal Year | Realized | Dividends | Total |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|")
	for _, y := range report.Years {
		fmt.Fprintf(&b, "| FY%d | %s | %s | %s |\n",
			y.Year,
			y.Realized.SignedString(),
			y.Dividends.SignedString(),
			y.Total.SignedString(),
		)
	}

	fmt.Fprint(&b, "\n## Profit per Security\n\n")
	fmt.Fprintln(&b, "| Security | Realized | Dividends | Still Held |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|")
	for _, s := range report.Securities {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			s.Security,
			s.Realized.SignedString(),
			s.Dividends.SignedString(),
			s.Position,
		)
	}

	fmt.Fprintf(&b, "\n**Total: %s**\n", report.Total.SignedString())
	return b.String()
}
