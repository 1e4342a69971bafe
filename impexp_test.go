package capgains

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestImportTrades(t *testing.T) {
	csv := `date,trade,code,volume,price,fee
2022-01-10,BUY,BHP,100,10,5
2022-03-01,SELL,BHP,40,12,5
2022-05-01,DIVIDEND,BHP,60,0.5,0
`
	ledger, err := ImportTrades(strings.NewReader(csv), "AUD")
	if err != nil {
		t.Fatalf("ImportTrades() failed: %v", err)
	}

	want := []Transaction{
		NewBuy(day("2022-01-10"), "", "BHP", Q(100), AUD(10), AUD(5)),
		NewSell(day("2022-03-01"), "", "BHP", Q(40), AUD(12), AUD(5)),
		NewDividend(day("2022-05-01"), "", "BHP", Q(60), AUD(0.5)),
	}
	i := 0
	for _, tx := range ledger.Transactions(AcceptAll) {
		if !want[i].Equal(tx) {
			t.Errorf("transaction %d = %#v, want %#v", i, tx, want[i])
		}
		i++
	}
	if i != len(want) {
		t.Fatalf("imported %d transactions, want %d", i, len(want))
	}
}

func TestImportTrades_NoHeader(t *testing.T) {
	ledger, err := ImportTrades(strings.NewReader("2022-01-10,buy,BHP,100,10,5\n"), "AUD")
	if err != nil {
		t.Fatalf("ImportTrades() failed: %v", err)
	}
	if n := len(ledger.transactions); n != 1 {
		t.Fatalf("imported %d transactions, want 1", n)
	}
}

func TestImportTrades_RejectsInvalidRow(t *testing.T) {
	// Imported rows follow the same validation as recorded trades: a broken
	// row must reject the whole import, not inflate later profits.
	testCases := []struct {
		name    string
		csv     string
		wantErr error
	}{
		{
			name:    "negative fee",
			csv:     "2022-01-10,BUY,BHP,100,10,-5\n2022-03-01,SELL,BHP,100,12,0\n",
			wantErr: ErrInvalidEvent,
		},
		{
			name:    "zero volume",
			csv:     "2022-01-10,BUY,BHP,0,10,5\n",
			wantErr: ErrInvalidEvent,
		},
		{
			name:    "negative price",
			csv:     "2022-01-10,BUY,BHP,100,-10,5\n",
			wantErr: ErrInvalidEvent,
		},
		{
			name:    "sell of an unknown security",
			csv:     "2022-03-01,SELL,CBA,10,12,0\n",
			wantErr: ErrUnknownInstrument,
		},
		{
			name:    "oversell",
			csv:     "2022-01-10,BUY,BHP,100,10,5\n2022-03-01,SELL,BHP,120,12,0\n",
			wantErr: ErrInsufficientInventory,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ImportTrades(strings.NewReader(tc.csv), "AUD")
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("ImportTrades() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestImportTrades_UnknownKind(t *testing.T) {
	_, err := ImportTrades(strings.NewReader("2022-01-10,SPLIT,BHP,100,10,5\n"), "AUD")
	if err == nil || !strings.Contains(err.Error(), "unknown trade kind") {
		t.Fatalf("ImportTrades() error = %v, want unknown trade kind", err)
	}
}

func TestExportTrades(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(
		NewBuy(day("2022-01-10"), "", "BHP", Q(100), AUD(10), AUD(5)),
		NewDividend(day("2022-05-01"), "", "BHP", Q(60), AUD(0.5)),
	)

	var buf bytes.Buffer
	if err := ExportTrades(&buf, ledger); err != nil {
		t.Fatalf("ExportTrades() failed: %v", err)
	}

	want := "date,trade,code,volume,price,fee\n" +
		"2022-01-10,BUY,BHP,100,10,5\n" +
		"2022-05-01,DIVIDEND,BHP,60,0.5,0\n"
	if buf.String() != want {
		t.Errorf("ExportTrades() =\n%s\nwant\n%s", buf.String(), want)
	}
}
