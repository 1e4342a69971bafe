package capgains

import (
	"errors"
	"testing"
)

func TestLedger_Append_KeepsChronologicalOrder(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(NewBuy(day("2022-03-01"), "", "BHP", Q(10), AUD(5), AUD(0)))
	ledger.Append(NewBuy(day("2022-01-01"), "", "BHP", Q(10), AUD(4), AUD(0)))
	// Same-day transactions keep their arrival order.
	ledger.Append(NewSell(day("2022-03-01"), "", "BHP", Q(5), AUD(6), AUD(0)))

	var dates []string
	for _, tx := range ledger.Transactions(AcceptAll) {
		dates = append(dates, tx.When().String())
	}
	want := []string{"2022-01-01", "2022-03-01", "2022-03-01"}
	for i := range want {
		if dates[i] != want[i] {
			t.Errorf("transaction %d date = %s, want %s", i, dates[i], want[i])
		}
	}
	if ledger.OldestTransactionDate() != day("2022-01-01") {
		t.Errorf("OldestTransactionDate() = %s, want 2022-01-01", ledger.OldestTransactionDate())
	}
	if ledger.NewestTransactionDate() != day("2022-03-01") {
		t.Errorf("NewestTransactionDate() = %s, want 2022-03-01", ledger.NewestTransactionDate())
	}
}

func TestLedger_Position(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(
		NewBuy(day("2022-01-10"), "", "BHP", Q(100), AUD(10), AUD(0)),
		NewSell(day("2022-03-01"), "", "BHP", Q(40), AUD(12), AUD(0)),
	)

	testCases := []struct {
		name     string
		on       Date
		wantPos  Quantity
		wantHeld bool
	}{
		{name: "before the first buy", on: day("2022-01-01"), wantPos: Q(0), wantHeld: false},
		{name: "on the buy date", on: day("2022-01-10"), wantPos: Q(100), wantHeld: true},
		{name: "after the sale", on: day("2022-04-01"), wantPos: Q(60), wantHeld: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pos, held := ledger.Position("BHP", tc.on)
			if !pos.Equal(tc.wantPos) || held != tc.wantHeld {
				t.Errorf("Position() = %s, %v, want %s, %v", pos, held, tc.wantPos, tc.wantHeld)
			}
		})
	}
}

func TestLedger_Revalidate(t *testing.T) {
	t.Run("valid ledger", func(t *testing.T) {
		ledger := NewLedger()
		ledger.Append(
			NewBuy(day("2022-01-10"), "", "BHP", Q(100), AUD(10), AUD(5)),
			NewSell(day("2022-03-01"), "", "BHP", Q(100), AUD(12), AUD(5)),
		)
		if err := ledger.Revalidate(); err != nil {
			t.Errorf("Revalidate() returned unexpected error: %v", err)
		}
	})
	t.Run("negative fee slipped into the file", func(t *testing.T) {
		// Append never validates, like decoding a hand-edited ledger file.
		ledger := NewLedger()
		ledger.Append(NewBuy(day("2022-01-10"), "", "BHP", Q(100), AUD(10), AUD(-5)))
		if err := ledger.Revalidate(); !errors.Is(err, ErrInvalidEvent) {
			t.Errorf("Revalidate() error = %v, want ErrInvalidEvent", err)
		}
	})
	t.Run("oversell", func(t *testing.T) {
		ledger := NewLedger()
		ledger.Append(
			NewBuy(day("2022-01-10"), "", "BHP", Q(10), AUD(10), AUD(0)),
			NewSell(day("2022-03-01"), "", "BHP", Q(20), AUD(12), AUD(0)),
		)
		if err := ledger.Revalidate(); !errors.Is(err, ErrInsufficientInventory) {
			t.Errorf("Revalidate() error = %v, want ErrInsufficientInventory", err)
		}
	})
}

func TestLedger_Filters(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(
		NewBuy(day("2022-01-10"), "", "BHP", Q(100), AUD(10), AUD(0)),
		NewBuy(day("2022-02-01"), "", "CBA", Q(10), AUD(100), AUD(0)),
		NewDividend(day("2022-05-01"), "", "BHP", Q(100), AUD(0.5)),
	)

	count := 0
	for _, tx := range ledger.Transactions(BySecurity("BHP")) {
		count++
		if !BySecurity("BHP")(tx) {
			t.Errorf("unexpected transaction %v", tx)
		}
	}
	if count != 2 {
		t.Errorf("filtered %d transactions, want 2", count)
	}

	var tickers []string
	for ticker := range ledger.AllSecurities() {
		tickers = append(tickers, ticker)
	}
	if len(tickers) != 2 || tickers[0] != "BHP" || tickers[1] != "CBA" {
		t.Errorf("AllSecurities() = %v, want [BHP CBA]", tickers)
	}
}
