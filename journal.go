package capgains

import (
	"fmt"
	"iter"
	"sort"

	"github.com/google/uuid"
)

// Entry is one immutable audit record of the journal, produced for every
// processed trade event, in processing order.
type Entry struct {
	ID           uuid.UUID     // unique identifier of the audit record
	Date         Date          // date of the originating event
	Command      CommandType   // buy, sell or dividend
	Security     string        // ticker of the security
	Quantity     Quantity      // units bought, sold, or paying the dividend
	Price        Money         // unit price (per-unit amount for a dividend)
	Fee          Money         // brokerage fee (zero for a dividend)
	Amount       Money         // signed cash effect: negative outflow for a buy
	Fulfillments []Fulfillment // lot-by-lot breakdown, sells only
	NetProfit    Money         // 0 for a buy, realized gain for a sell, income for a dividend
}

// Journal is the result of replaying a ledger through the matching engine:
// the consolidated audit trail, the open lot inventory, and the realized
// profit accumulated per fiscal year.
//
// A Journal owns all of its state and is not safe for concurrent use.
type Journal struct {
	cur       string          // reporting currency
	inventory map[string]lots // open lots per security ticker
	profits   map[int]Money   // realized profit and income per fiscal year
	entries   []Entry
}

// NewJournal replays all transactions of a ledger, in ledger order, and
// returns the resulting journal. Each event is validated before any state is
// mutated, so a failing event leaves the journal exactly as it was; the
// error identifies the offending transaction.
func NewJournal(ledger *Ledger, currency string) (*Journal, error) {
	j := &Journal{
		cur:       currency,
		inventory: make(map[string]lots),
		profits:   make(map[int]Money),
		entries:   make([]Entry, 0, len(ledger.transactions)),
	}
	for i, tx := range ledger.Transactions(AcceptAll) {
		if err := j.record(tx); err != nil {
			return nil, fmt.Errorf("transaction %d (%s on %s): %w", i, tx.What(), tx.When(), err)
		}
	}
	return j, nil
}

// record processes one trade event atomically: it mutates the inventory,
// updates the fiscal-year totals and appends exactly one entry.
func (j *Journal) record(tx Transaction) error {
	switch v := tx.(type) {
	case Buy:
		j.recordBuy(v)
	case Sell:
		return j.recordSell(v)
	case Dividend:
		j.recordDividend(v)
	default:
		return fmt.Errorf("unhandled transaction type: %T", tx)
	}
	return nil
}

// recordBuy inserts a new lot at its chronological position in the
// security's inventory. A buy settles cash out and realizes nothing.
func (j *Journal) recordBuy(v Buy) {
	j.inventory[v.Security] = j.inventory[v.Security].insert(lot{
		Date:     v.When(),
		Quantity: v.Quantity,
		Price:    v.Price,
		Fee:      v.Fee,
	})
	j.append(Entry{
		Date:     v.When(),
		Command:  CmdBuy,
		Security: v.Security,
		Quantity: v.Quantity,
		Price:    v.Price,
		Fee:      v.Fee,
		Amount:   v.Price.Mul(v.Quantity).Add(v.Fee).Neg(),
	})
}

// recordSell matches the sale against the open lots in FIFO order. The
// preconditions are checked before the inventory is touched, so an
// over-sell never leaves lots partially consumed.
func (j *Journal) recordSell(v Sell) error {
	held, ok := j.inventory[v.Security]
	if !ok || len(held) == 0 {
		return fmt.Errorf("%w: no lots recorded for %s", ErrUnknownInstrument, v.Security)
	}
	if held.quantity().LessThan(v.Quantity) {
		return fmt.Errorf("%w: cannot sell %s of %s, inventory holds %s", ErrInsufficientInventory, v.Quantity, v.Security, held.quantity())
	}

	rows, netProfit := held.sell(v.When(), v.Quantity, v.Price, v.Fee)
	j.inventory[v.Security] = held
	j.accumulate(v.When().FiscalYear(), netProfit)
	j.append(Entry{
		Date:         v.When(),
		Command:      CmdSell,
		Security:     v.Security,
		Quantity:     v.Quantity,
		Price:        v.Price,
		Fee:          v.Fee,
		Amount:       v.Price.Mul(v.Quantity).Sub(v.Fee),
		Fulfillments: rows,
		NetProfit:    netProfit,
	})
	return nil
}

// recordDividend books pure income: the inventory is never touched, and the
// dividend is permitted even when no lots are currently held.
func (j *Journal) recordDividend(v Dividend) {
	amount := v.Amount()
	j.accumulate(v.When().FiscalYear(), amount)
	j.append(Entry{
		Date:      v.When(),
		Command:   CmdDividend,
		Security:  v.Security,
		Quantity:  v.Quantity,
		Price:     v.PerUnit,
		Amount:    amount,
		NetProfit: amount,
	})
}

func (j *Journal) append(e Entry) {
	e.ID = uuid.New()
	j.entries = append(j.entries, e)
}

// accumulate adds an amount to a fiscal year's running total, creating the
// entry at zero if absent.
func (j *Journal) accumulate(fy int, amount Money) {
	j.profits[fy] = j.profits[fy].Add(amount)
}

// Currency returns the journal's reporting currency.
func (j *Journal) Currency() string { return j.cur }

// Entries returns an iterator over the consolidated audit records, in
// processing order.
func (j *Journal) Entries() iter.Seq2[int, Entry] {
	return func(yield func(int, Entry) bool) {
		for i, e := range j.entries {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Profit returns the accumulated realized profit and income for a fiscal year.
func (j *Journal) Profit(fiscalYear int) Money {
	return j.profits[fiscalYear]
}

// FiscalYears returns an iterator over the fiscal years that accumulated
// profit or income, in ascending order, with their totals.
func (j *Journal) FiscalYears() iter.Seq2[int, Money] {
	years := make([]int, 0, len(j.profits))
	for fy := range j.profits {
		years = append(years, fy)
	}
	sort.Ints(years)
	return func(yield func(int, Money) bool) {
		for _, fy := range years {
			if !yield(fy, j.profits[fy]) {
				return
			}
		}
	}
}

// Position returns the total number of units currently held for a security.
func (j *Journal) Position(ticker string) Quantity {
	return j.inventory[ticker].quantity()
}

// Lots returns an iterator over snapshots of the open lots of a security,
// in acquisition order. The yielded values are copies: mutating them does
// not affect the journal.
func (j *Journal) Lots(ticker string) iter.Seq[Lot] {
	return func(yield func(Lot) bool) {
		for _, cur := range j.inventory[ticker] {
			snapshot := Lot{
				Date:     cur.Date,
				Quantity: cur.Quantity,
				Price:    cur.Price,
				Fee:      cur.Fee,
			}
			if !yield(snapshot) {
				return
			}
		}
	}
}
