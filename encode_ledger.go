package capgains

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// tradeAmounts marshals the price, fee and currency of a buy or sell as
// three flat fields, embedded next to the quantity.
type tradeAmounts struct {
	price Money
	fee   Money
}

func (a tradeAmounts) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("currency", a.price.Currency())
	// Unit prices can carry more digits than the currency fraction, so both
	// amounts are persisted in full.
	w.Append("price", a.price.value)
	w.Append("fee", a.fee.value)
	return w.MarshalJSON()
}

// amountCmd is a specialized struct to read a trade's amounts from the flat
// price/fee/currency fields.
type amountCmd struct {
	Price    decimal.Decimal `json:"price"`
	Fee      decimal.Decimal `json:"fee"`
	Currency string          `json:"currency"`
}

func (a amountCmd) PriceMoney() Money { return M(a.Price, a.Currency) }
func (a amountCmd) FeeMoney() Money   { return M(a.Fee, a.Currency) }

// perUnitCmd is a specialized struct to read a dividend's per-unit amount.
type perUnitCmd struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func (a perUnitCmd) Money() Money { return M(a.Amount, a.Currency) }

// DecodeLedger decodes transactions from a stream of JSONL data, decodes
// each line into the appropriate transaction struct, and returns a sorted
// Ledger.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var identifier struct {
			Command CommandType `json:"command"`
		}
		if err := json.Unmarshal(lineBytes, &identifier); err != nil {
			return nil, fmt.Errorf("could not identify command in line %q: %w", string(lineBytes), err)
		}

		var decodedTx Transaction
		var err error

		switch identifier.Command {
		case CmdBuy:
			var tx Buy
			err = json.Unmarshal(lineBytes, &tx)
			decodedTx = tx
		case CmdSell:
			var tx Sell
			err = json.Unmarshal(lineBytes, &tx)
			decodedTx = tx
		case CmdDividend:
			var tx Dividend
			err = json.Unmarshal(lineBytes, &tx)
			decodedTx = tx
		default:
			err = fmt.Errorf("unknown transaction command: %q", identifier.Command)
		}

		if err != nil {
			return nil, err
		}
		ledger.Append(decodedTx)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}

	return ledger, nil
}

// EncodeTransaction marshals a single transaction to JSON and writes it to
// the writer, followed by a newline, in JSONL format.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write transaction: %w", err)
	}
	return nil
}

// EncodeLedger reorders transactions by date and persists them to an
// io.Writer in JSONL format. The sort is stable, meaning transactions on the
// same day maintain their original relative order.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	ledger.stableSort()
	for _, tx := range ledger.Transactions(AcceptAll) {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}
