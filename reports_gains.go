package capgains

import (
	"fmt"
	"sort"
)

// GainsReport contains the realized gains and dividend income of a ledger,
// aggregated per fiscal year and per security.
type GainsReport struct {
	Currency   string
	Years      []FiscalYearGains
	Securities []SecurityGains
	Total      Money
}

// FiscalYearGains holds the totals accumulated over one fiscal year.
type FiscalYearGains struct {
	Year      int   // fiscal year, labeled by its ending calendar year
	Realized  Money // net profit of all sells dated in the fiscal year
	Dividends Money // dividend income received in the fiscal year
	Total     Money
}

// SecurityGains holds the realized gains and income of a single security
// over the whole ledger.
type SecurityGains struct {
	Security  string
	Realized  Money
	Dividends Money
	Position  Quantity // units still held
}

// NewGainsReport replays the ledger and aggregates realized gains and
// dividend income per fiscal year and per security.
func NewGainsReport(ledger *Ledger, currency string) (*GainsReport, error) {
	journal, err := NewJournal(ledger, currency)
	if err != nil {
		return nil, fmt.Errorf("could not create journal: %w", err)
	}

	report := &GainsReport{Currency: currency}

	byYear := make(map[int]*FiscalYearGains)
	bySecurity := make(map[string]*SecurityGains)
	var order []string

	for _, e := range journal.Entries() {
		if e.Command == CmdBuy {
			continue
		}
		fy := e.Date.FiscalYear()
		y, ok := byYear[fy]
		if !ok {
			y = &FiscalYearGains{Year: fy}
			byYear[fy] = y
		}
		s, ok := bySecurity[e.Security]
		if !ok {
			s = &SecurityGains{Security: e.Security}
			bySecurity[e.Security] = s
			order = append(order, e.Security)
		}
		switch e.Command {
		case CmdSell:
			y.Realized = y.Realized.Add(e.NetProfit)
			s.Realized = s.Realized.Add(e.NetProfit)
		case CmdDividend:
			y.Dividends = y.Dividends.Add(e.NetProfit)
			s.Dividends = s.Dividends.Add(e.NetProfit)
		}
		report.Total = report.Total.Add(e.NetProfit)
	}

	// Fiscal years in ascending order, checked against the journal totals.
	for fy, total := range journal.FiscalYears() {
		y := byYear[fy]
		y.Total = y.Realized.Add(y.Dividends)
		if !y.Total.Equal(total) {
			return nil, fmt.Errorf("fiscal year %d totals diverge: %s != %s", fy, y.Total, total)
		}
		report.Years = append(report.Years, *y)
	}

	sort.Strings(order)
	for _, ticker := range order {
		s := bySecurity[ticker]
		s.Position = journal.Position(ticker)
		report.Securities = append(report.Securities, *s)
	}

	return report, nil
}
