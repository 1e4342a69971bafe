package capgains

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// this file handles the CSV trade import format.
// It should remain human readable and easy to produce from a broker export.

// ImportTrades reads trade events from 'r' in CSV form and returns a sorted
// ledger. All monetary columns are read in the given currency.
//
// The expected columns are: date, trade, code, volume, price, fee. The
// 'trade' column is one of BUY, SELL or DIVIDEND (case-insensitive). For a
// dividend row the 'price' column carries the per-unit amount and the 'fee'
// column is ignored. A header row is detected and skipped.
//
// Each row is validated against the ledger built so far, exactly like an
// interactively recorded trade; the first invalid row fails the whole import.
func ImportTrades(r io.Reader, currency string) (*Ledger, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 6
	reader.TrimLeadingSpace = true

	ledger := NewLedger()
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read trades CSV: %w", err)
		}
		line++

		// Skip the header row.
		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "date") {
			continue
		}

		tx, err := parseTradeRecord(record, currency)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		// Imported rows go through the same validation as interactively
		// recorded ones, so a broken row rejects the whole import.
		validated, err := ledger.Validate(tx)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		ledger.Append(validated)
	}
	return ledger, nil
}

// parseTradeRecord converts one CSV record into a transaction.
func parseTradeRecord(record []string, currency string) (Transaction, error) {
	day, err := ParseDate(record[0])
	if err != nil {
		return nil, err
	}
	kind := strings.ToLower(strings.TrimSpace(record[1]))
	code := strings.TrimSpace(record[2])

	volume, err := decimal.NewFromString(strings.TrimSpace(record[3]))
	if err != nil {
		return nil, fmt.Errorf("invalid volume %q: %w", record[3], err)
	}
	price, err := decimal.NewFromString(strings.TrimSpace(record[4]))
	if err != nil {
		return nil, fmt.Errorf("invalid price %q: %w", record[4], err)
	}
	fee, err := decimal.NewFromString(strings.TrimSpace(record[5]))
	if err != nil {
		return nil, fmt.Errorf("invalid fee %q: %w", record[5], err)
	}

	switch kind {
	case "buy":
		return NewBuy(day, "", code, Q(volume), M(price, currency), M(fee, currency)), nil
	case "sell":
		return NewSell(day, "", code, Q(volume), M(price, currency), M(fee, currency)), nil
	case "dividend":
		return NewDividend(day, "", code, Q(volume), M(price, currency)), nil
	default:
		return nil, fmt.Errorf("unknown trade kind %q", record[1])
	}
}

// ExportTrades writes the ledger's events to 'w' in the CSV import format,
// in ledger order.
func ExportTrades(w io.Writer, ledger *Ledger) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"date", "trade", "code", "volume", "price", "fee"}); err != nil {
		return fmt.Errorf("cannot write trades CSV: %w", err)
	}
	for _, tx := range ledger.Transactions(AcceptAll) {
		var record []string
		switch v := tx.(type) {
		case Buy:
			record = []string{v.When().String(), "BUY", v.Security, v.Quantity.String(), v.Price.value.String(), v.Fee.value.String()}
		case Sell:
			record = []string{v.When().String(), "SELL", v.Security, v.Quantity.String(), v.Price.value.String(), v.Fee.value.String()}
		case Dividend:
			record = []string{v.When().String(), "DIVIDEND", v.Security, v.Quantity.String(), v.PerUnit.value.String(), "0"}
		default:
			return fmt.Errorf("unsupported transaction type for export: %T", tx)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("cannot write trades CSV: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
