package capgains

import (
	"fmt"
	"iter"
	"sort"
)

// Ledger represents a list of trade events.
//
// In a Ledger transactions are always in chronological order.
type Ledger struct {
	transactions []Transaction
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{transactions: make([]Transaction, 0)}
}

// Validate checks a transaction for correctness against the current ledger
// state. It returns the validated (and potentially date-fixed) transaction
// or an error detailing any validation failures.
func (l *Ledger) Validate(tx Transaction) (Transaction, error) {
	var err error
	switch v := tx.(type) {
	case Buy:
		tx, err = v.Validate(l)
	case Sell:
		tx, err = v.Validate(l)
	case Dividend:
		tx, err = v.Validate(l)
	default:
		return tx, fmt.Errorf("unsupported transaction type for validation: %T %v", tx, tx)
	}
	if err != nil {
		return tx, fmt.Errorf("invalid %s transaction on %v: %w", tx.What(), tx.When(), err)
	}
	return tx, nil
}

// Revalidate replays every transaction of the ledger through [Ledger.Validate]
// in chronological order, as if each were being recorded anew. It catches
// invalid events that a hand-edited or externally produced ledger file may
// contain, and reports the first offending transaction.
func (l *Ledger) Revalidate() error {
	checked := NewLedger()
	for i, tx := range l.Transactions(AcceptAll) {
		validated, err := checked.Validate(tx)
		if err != nil {
			return fmt.Errorf("transaction %d: %w", i, err)
		}
		checked.Append(validated)
	}
	return nil
}

// Append appends transactions to this ledger and maintains the chronological
// order of transactions.
func (l *Ledger) Append(txs ...Transaction) {
	l.transactions = append(l.transactions, txs...)
	l.stableSort()
}

// stableSort sorts the ledger by transaction date. The sort is stable, meaning
// transactions on the same day maintain their original relative order.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].When().Before(l.transactions[j].When())
	})
}

// AcceptAll is a predicate that accepts every transaction.
func AcceptAll(Transaction) bool { return true }

// BySecurity returns a predicate that filters transactions by security ticker.
func BySecurity(ticker string) func(Transaction) bool {
	return func(tx Transaction) bool {
		switch v := tx.(type) {
		case Buy:
			return v.Security == ticker
		case Sell:
			return v.Security == ticker
		case Dividend:
			return v.Security == ticker
		default:
			return false
		}
	}
}

// Transactions returns an iterator that yields each transaction in ledger
// order, keeping those accepted by at least one filter.
func (l *Ledger) Transactions(filters ...func(Transaction) bool) iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, tx := range l.transactions {
			accept := false
			for _, filter := range filters {
				if filter(tx) {
					accept = true
					break
				}
			}
			if !accept {
				continue
			}
			if !yield(i, tx) {
				return
			}
		}
	}
}

// Position computes the number of units of a security held on a given date,
// by replaying buys and sells up to and including that date. The boolean is
// false when the ledger holds no buy for that security up to that date.
func (l *Ledger) Position(ticker string, on Date) (Quantity, bool) {
	var pos Quantity
	held := false
	for _, tx := range l.transactions {
		if tx.When().After(on) {
			// The ledger is sorted by date, so it's safe to break.
			break
		}
		switch v := tx.(type) {
		case Buy:
			if v.Security == ticker {
				pos = pos.Add(v.Quantity)
				held = true
			}
		case Sell:
			if v.Security == ticker {
				pos = pos.Sub(v.Quantity)
			}
		}
	}
	return pos, held
}

// AllSecurities iterates over the distinct security tickers that appear in
// the ledger, in alphabetical order.
func (l *Ledger) AllSecurities() iter.Seq[string] {
	return func(yield func(string) bool) {
		visited := make(map[string]struct{})
		var tickers []string
		for _, tx := range l.transactions {
			var ticker string
			switch v := tx.(type) {
			case Buy:
				ticker = v.Security
			case Sell:
				ticker = v.Security
			case Dividend:
				ticker = v.Security
			default:
				continue
			}
			if _, ok := visited[ticker]; !ok {
				visited[ticker] = struct{}{}
				tickers = append(tickers, ticker)
			}
		}
		sort.Strings(tickers)
		for _, ticker := range tickers {
			if !yield(ticker) {
				return
			}
		}
	}
}

// OldestTransactionDate returns the date of the earliest transaction in the
// ledger, or the zero date if the ledger is empty.
func (l *Ledger) OldestTransactionDate() Date {
	if len(l.transactions) == 0 {
		return Date{}
	}
	return l.transactions[0].When()
}

// NewestTransactionDate returns the date of the latest transaction in the
// ledger, or the zero date if the ledger is empty.
func (l *Ledger) NewestTransactionDate() Date {
	if len(l.transactions) == 0 {
		return Date{}
	}
	return l.transactions[len(l.transactions)-1].When()
}
