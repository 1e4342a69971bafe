package capgains

import "fmt"

// HoldingReport describes the open lot inventory after replaying a ledger.
type HoldingReport struct {
	Date       Date // date of the newest processed transaction
	Currency   string
	Securities []SecurityHolding
}

// SecurityHolding lists the open lots of one security, in acquisition order.
type SecurityHolding struct {
	Security string
	Position Quantity
	Lots     []Lot
}

// NewHoldingReport replays the ledger and snapshots the remaining open lots
// per security. Securities fully sold out are omitted.
func NewHoldingReport(ledger *Ledger, currency string) (*HoldingReport, error) {
	journal, err := NewJournal(ledger, currency)
	if err != nil {
		return nil, fmt.Errorf("could not create journal: %w", err)
	}

	report := &HoldingReport{Date: ledger.NewestTransactionDate(), Currency: currency}
	for ticker := range ledger.AllSecurities() {
		position := journal.Position(ticker)
		if position.IsZero() {
			continue
		}
		holding := SecurityHolding{Security: ticker, Position: position}
		for l := range journal.Lots(ticker) {
			holding.Lots = append(holding.Lots, l)
		}
		report.Securities = append(report.Securities, holding)
	}
	return report, nil
}
