package capgains

import (
	"errors"
	"testing"
)

// setupJournalTest replays a ledger and fails the test on error.
func setupJournalTest(t *testing.T, txs ...Transaction) *Journal {
	t.Helper()
	ledger := NewLedger()
	ledger.Append(txs...)
	journal, err := NewJournal(ledger, "AUD")
	if err != nil {
		t.Fatalf("NewJournal() failed: %v", err)
	}
	return journal
}

func TestJournal_RoundTrip(t *testing.T) {
	journal := setupJournalTest(t,
		NewBuy(day("2022-01-10"), "", "BHP", Q(100), AUD(10), AUD(5)),
		NewSell(day("2022-03-01"), "", "BHP", Q(100), AUD(12), AUD(5)),
	)

	// profit = 100*(12-10) - 5 - 5
	if got := journal.Profit(2022); !got.Equal(AUD(190)) {
		t.Errorf("Profit(2022) = %s, want $190.00", got)
	}
	if pos := journal.Position("BHP"); !pos.IsZero() {
		t.Errorf("Position(BHP) = %s, want 0", pos)
	}

	var entries []Entry
	for _, e := range journal.Entries() {
		entries = append(entries, e)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}

	buy, sell := entries[0], entries[1]
	// A buy settles cash out and realizes nothing.
	if !buy.Amount.Equal(AUD(-1005)) {
		t.Errorf("buy amount = %s, want -$1,005.00", buy.Amount)
	}
	if !buy.NetProfit.IsZero() || len(buy.Fulfillments) != 0 {
		t.Errorf("buy entry realized %s over %d rows, want nothing", buy.NetProfit, len(buy.Fulfillments))
	}
	// A sell settles cash in, fee deducted.
	if !sell.Amount.Equal(AUD(1195)) {
		t.Errorf("sell amount = %s, want $1,195.00", sell.Amount)
	}
	if !sell.NetProfit.Equal(AUD(190)) {
		t.Errorf("sell net profit = %s, want $190.00", sell.NetProfit)
	}
	if len(sell.Fulfillments) != 1 {
		t.Fatalf("len(fulfillments) = %d, want 1", len(sell.Fulfillments))
	}
	if buy.ID == sell.ID {
		t.Error("entries share the same ID")
	}
}

func TestJournal_SellAcrossLots(t *testing.T) {
	journal := setupJournalTest(t,
		NewBuy(day("2022-01-01"), "", "CBA", Q(50), AUD(10), AUD(2)),
		NewBuy(day("2022-02-01"), "", "CBA", Q(50), AUD(11), AUD(2)),
		NewSell(day("2022-03-01"), "", "CBA", Q(80), AUD(15), AUD(3)),
	)

	// row 0: 50*(15-10) -2 -3 = 245, row 1: 30*(15-11) -2 = 118
	if got := journal.Profit(2022); !got.Equal(AUD(363)) {
		t.Errorf("Profit(2022) = %s, want $363.00", got)
	}
	if pos := journal.Position("CBA"); !pos.Equal(Q(20)) {
		t.Errorf("Position(CBA) = %s, want 20", pos)
	}

	var remaining []Lot
	for l := range journal.Lots("CBA") {
		remaining = append(remaining, l)
	}
	if len(remaining) != 1 {
		t.Fatalf("len(lots) = %d, want 1", len(remaining))
	}
	// The surviving lot already gave up its buy fee.
	if !remaining[0].Fee.IsZero() {
		t.Errorf("remaining lot fee = %s, want 0", remaining[0].Fee)
	}
}

func TestJournal_Dividend(t *testing.T) {
	journal := setupJournalTest(t,
		NewBuy(day("2022-01-10"), "", "WES", Q(100), AUD(10), AUD(0)),
		NewDividend(day("2022-05-01"), "", "WES", Q(100), AUD(0.50)),
	)

	// Dividends are pure income, the inventory is untouched.
	if got := journal.Profit(2022); !got.Equal(AUD(50)) {
		t.Errorf("Profit(2022) = %s, want $50.00", got)
	}
	if pos := journal.Position("WES"); !pos.Equal(Q(100)) {
		t.Errorf("Position(WES) = %s, want 100", pos)
	}
}

func TestJournal_DividendWithoutHoldings(t *testing.T) {
	// A dividend received after a full exit is still booked.
	journal := setupJournalTest(t,
		NewDividend(day("2022-05-01"), "", "TLS", Q(40), AUD(0.25)),
	)
	if got := journal.Profit(2022); !got.Equal(AUD(10)) {
		t.Errorf("Profit(2022) = %s, want $10.00", got)
	}
}

func TestJournal_InsufficientInventory(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(
		NewBuy(day("2022-01-10"), "", "BHP", Q(10), AUD(5), AUD(0)),
		NewSell(day("2022-02-01"), "", "BHP", Q(20), AUD(6), AUD(0)),
	)

	_, err := NewJournal(ledger, "AUD")
	if !errors.Is(err, ErrInsufficientInventory) {
		t.Fatalf("NewJournal() error = %v, want ErrInsufficientInventory", err)
	}
}

func TestJournal_UnknownInstrument(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(NewSell(day("2022-02-01"), "", "NAB", Q(5), AUD(30), AUD(0)))

	_, err := NewJournal(ledger, "AUD")
	if !errors.Is(err, ErrUnknownInstrument) {
		t.Fatalf("NewJournal() error = %v, want ErrUnknownInstrument", err)
	}
}

func TestJournal_FiscalYearSplit(t *testing.T) {
	journal := setupJournalTest(t,
		NewBuy(day("2023-01-10"), "", "BHP", Q(200), AUD(10), AUD(0)),
		// Sold on the last day of FY2023.
		NewSell(day("2023-06-30"), "", "BHP", Q(100), AUD(11), AUD(0)),
		// Sold on the first day of FY2024.
		NewSell(day("2023-07-01"), "", "BHP", Q(100), AUD(12), AUD(0)),
	)

	if got := journal.Profit(2023); !got.Equal(AUD(100)) {
		t.Errorf("Profit(2023) = %s, want $100.00", got)
	}
	if got := journal.Profit(2024); !got.Equal(AUD(200)) {
		t.Errorf("Profit(2024) = %s, want $200.00", got)
	}

	var years []int
	for fy := range journal.FiscalYears() {
		years = append(years, fy)
	}
	if len(years) != 2 || years[0] != 2023 || years[1] != 2024 {
		t.Errorf("FiscalYears() = %v, want [2023 2024]", years)
	}
}

func TestJournal_BackfilledBuyKeepsFIFO(t *testing.T) {
	// The second buy is recorded later but dated earlier, so FIFO must draw
	// from it first.
	journal := setupJournalTest(t,
		NewBuy(day("2022-02-01"), "", "RIO", Q(10), AUD(100), AUD(0)),
		NewBuy(day("2022-01-01"), "", "RIO", Q(10), AUD(90), AUD(0)),
		NewSell(day("2022-03-01"), "", "RIO", Q(10), AUD(110), AUD(0)),
	)

	for _, e := range journal.Entries() {
		if e.Command != CmdSell {
			continue
		}
		if got := e.Fulfillments[0].Price; !got.Equal(AUD(90)) {
			t.Errorf("drawn lot price = %s, want the earliest lot at $90.00", got)
		}
	}
}
