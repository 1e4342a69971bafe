package capgains

import (
	"encoding/json"
	"errors"
	"fmt"
)

// CommandType is a typed string for identifying transaction commands.
type CommandType string

// Command types used for identifying transactions.
const (
	CmdBuy      CommandType = "buy"
	CmdSell     CommandType = "sell"
	CmdDividend CommandType = "dividend"
)

// Transaction defines the common interface for all trade events that can be
// recorded in the ledger.
type Transaction interface {
	What() CommandType // What returns the command type of the transaction (e.g., "buy", "sell").
	When() Date        // When returns the date on which the transaction occurred.
	Equal(Transaction) bool
	Validate(ledger *Ledger) (Transaction, error)
}

type baseCmd struct {
	Command CommandType `json:"command"`        // Command specifies the type of transaction (e.g., "buy", "sell").
	Date    Date        `json:"date"`           // Date is the date when the transaction took place.
	Memo    string      `json:"memo,omitempty"` // Memo provides an optional rationale or note for the transaction.
}

// What returns the command name for the transaction.
func (t baseCmd) What() CommandType { return t.Command }

// When returns the date of the transaction.
func (t baseCmd) When() Date { return t.Date }

// MarshalJSON implements the json.Marshaler interface for baseCmd.
func (t baseCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", t.Command)
	w.Append("date", t.Date)
	w.Optional("memo", t.Memo)
	return w.MarshalJSON()
}

// Validate checks the base command fields. It sets the date to today if it's zero.
// It's meant to be embedded in other transaction validation methods.
func (t *baseCmd) Validate() {
	if t.Date == (Date{}) {
		t.Date = Today()
	}
}

// secCmd is a component for security-based transactions (buy, sell, dividend).
type secCmd struct {
	baseCmd
	Security string `json:"security"` // Security is the ticker symbol of the security involved in the transaction.
}

// Validate checks the security command fields.
func (t *secCmd) Validate() error {
	t.baseCmd.Validate()
	if t.Security == "" {
		return errors.New("security ticker is missing")
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for secCmd.
func (t secCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("security", t.Security)
	return w.MarshalJSON()
}

// Buy represents a transaction where a quantity of a security is purchased
// at a unit price, with an optional brokerage fee.
type Buy struct {
	secCmd
	Quantity Quantity // Quantity is the number of shares or units bought.
	Price    Money    // Price is the price paid per unit.
	Fee      Money    // Fee is the brokerage fee of the purchase.
}

// NewBuy creates a new Buy transaction.
func NewBuy(day Date, memo, security string, quantity Quantity, price, fee Money) Buy {
	return Buy{
		secCmd:   secCmd{baseCmd: baseCmd{Command: CmdBuy, Date: day, Memo: memo}, Security: security},
		Quantity: quantity,
		Price:    price,
		Fee:      fee,
	}
}

// MarshalJSON implements the json.Marshaler interface for Buy.
func (t Buy) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.secCmd)
	w.Append("quantity", t.Quantity)
	w.EmbedFrom(tradeAmounts{t.Price, t.Fee})
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Buy.
// It handles the custom structure where price, fee and currency are separate fields.
func (t *Buy) UnmarshalJSON(data []byte) error {
	var temp struct {
		secCmd
		amountCmd
		Quantity Quantity `json:"quantity"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.secCmd = temp.secCmd
	t.Quantity = temp.Quantity
	t.Price = temp.PriceMoney()
	t.Fee = temp.FeeMoney()
	return nil
}

func (t Buy) Equal(other Transaction) bool {
	o, ok := other.(Buy)
	return ok && t.secCmd == o.secCmd && t.Quantity.Equal(o.Quantity) && t.Price.Equal(o.Price) && t.Fee.Equal(o.Fee)
}

func (t *Buy) Currency() string { return t.Price.Currency() }

// Validate checks the Buy transaction's fields. It ensures that the quantity
// is positive, the price is positive, and the fee is not negative.
func (t Buy) Validate(ledger *Ledger) (Transaction, error) {
	if err := t.secCmd.Validate(); err != nil {
		return t, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	if !t.Quantity.IsPositive() {
		return t, fmt.Errorf("%w: buy quantity must be positive, got %s", ErrInvalidEvent, t.Quantity)
	}
	if !t.Price.IsPositive() {
		return t, fmt.Errorf("%w: buy price must be positive, got %s", ErrInvalidEvent, t.Price)
	}
	if t.Fee.IsNegative() {
		return t, fmt.Errorf("%w: buy fee cannot be negative, got %s", ErrInvalidEvent, t.Fee)
	}
	return t, nil
}

// Sell represents a transaction where a quantity of a security is sold at a
// unit price, with an optional brokerage fee.
type Sell struct {
	secCmd
	Quantity Quantity // Quantity is the number of shares or units sold.
	Price    Money    // Price is the price received per unit.
	Fee      Money    // Fee is the brokerage fee of the sale.
}

// NewSell creates a new Sell transaction.
func NewSell(day Date, memo, security string, quantity Quantity, price, fee Money) Sell {
	return Sell{
		secCmd:   secCmd{baseCmd: baseCmd{Command: CmdSell, Date: day, Memo: memo}, Security: security},
		Quantity: quantity,
		Price:    price,
		Fee:      fee,
	}
}

// MarshalJSON implements the json.Marshaler interface for Sell.
func (t Sell) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.secCmd)
	w.Append("quantity", t.Quantity)
	w.EmbedFrom(tradeAmounts{t.Price, t.Fee})
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Sell.
func (t *Sell) UnmarshalJSON(data []byte) error {
	var temp struct {
		secCmd
		amountCmd
		Quantity Quantity `json:"quantity"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.secCmd = temp.secCmd
	t.Quantity = temp.Quantity
	t.Price = temp.PriceMoney()
	t.Fee = temp.FeeMoney()
	return nil
}

func (t Sell) Equal(other Transaction) bool {
	o, ok := other.(Sell)
	return ok && t.secCmd == o.secCmd && t.Quantity.Equal(o.Quantity) && t.Price.Equal(o.Price) && t.Fee.Equal(o.Fee)
}

func (t *Sell) Currency() string { return t.Price.Currency() }

// Validate checks the Sell transaction's fields. It ensures the quantity,
// price and fee are well formed, and that the position held on the
// transaction date is sufficient to cover the sale.
func (t Sell) Validate(ledger *Ledger) (Transaction, error) {
	if err := t.secCmd.Validate(); err != nil {
		return t, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	if !t.Quantity.IsPositive() {
		return t, fmt.Errorf("%w: sell quantity must be positive, got %s", ErrInvalidEvent, t.Quantity)
	}
	if !t.Price.IsPositive() {
		return t, fmt.Errorf("%w: sell price must be positive, got %s", ErrInvalidEvent, t.Price)
	}
	if t.Fee.IsNegative() {
		return t, fmt.Errorf("%w: sell fee cannot be negative, got %s", ErrInvalidEvent, t.Fee)
	}

	pos, held := ledger.Position(t.Security, t.When())
	if !held {
		return t, fmt.Errorf("%w: no lots recorded for %s", ErrUnknownInstrument, t.Security)
	}
	if pos.LessThan(t.Quantity) {
		return t, fmt.Errorf("%w: on %s, cannot sell %s of %s, position is only %s", ErrInsufficientInventory, t.When(), t.Quantity, t.Security, pos)
	}
	return t, nil
}

// Dividend represents a dividend payment received for a held security.
// The total cash amount is Quantity times PerUnit.
type Dividend struct {
	secCmd
	Quantity Quantity // Quantity is the number of units the dividend applies to.
	PerUnit  Money    // PerUnit is the dividend paid per unit.
}

// NewDividend creates a new Dividend transaction.
func NewDividend(day Date, memo, security string, quantity Quantity, perUnit Money) Dividend {
	return Dividend{
		secCmd:   secCmd{baseCmd: baseCmd{Command: CmdDividend, Date: day, Memo: memo}, Security: security},
		Quantity: quantity,
		PerUnit:  perUnit,
	}
}

// Amount returns the total cash amount of the dividend.
func (t Dividend) Amount() Money { return t.PerUnit.Mul(t.Quantity) }

// MarshalJSON implements the json.Marshaler interface for Dividend.
func (t Dividend) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.secCmd)
	w.Append("quantity", t.Quantity)
	// A per-unit amount can be fractional, so it is persisted in full digits.
	w.EmbedFrom(t.PerUnit.exact())
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Dividend.
func (t *Dividend) UnmarshalJSON(data []byte) error {
	var temp struct {
		secCmd
		perUnitCmd
		Quantity Quantity `json:"quantity"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.secCmd = temp.secCmd
	t.Quantity = temp.Quantity
	t.PerUnit = temp.Money()
	return nil
}

func (t Dividend) Equal(other Transaction) bool {
	o, ok := other.(Dividend)
	return ok && t.secCmd == o.secCmd && t.Quantity.Equal(o.Quantity) && t.PerUnit.Equal(o.PerUnit)
}

func (t *Dividend) Currency() string { return t.PerUnit.Currency() }

// Validate checks the Dividend transaction's fields. A dividend does not
// require open lots: it is pure income and never touches the inventory.
func (t Dividend) Validate(ledger *Ledger) (Transaction, error) {
	if err := t.secCmd.Validate(); err != nil {
		return t, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	if !t.Quantity.IsPositive() {
		return t, fmt.Errorf("%w: dividend quantity must be positive, got %s", ErrInvalidEvent, t.Quantity)
	}
	if t.PerUnit.IsNegative() {
		return t, fmt.Errorf("%w: dividend per unit cannot be negative, got %s", ErrInvalidEvent, t.PerUnit)
	}
	return t, nil
}
