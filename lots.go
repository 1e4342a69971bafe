package capgains

// lot represents a single purchase of a security still (partially) unsold,
// used for FIFO cost basis matching.
type lot struct {
	Date     Date
	Quantity Quantity // units remaining, always positive while the lot exists
	Price    Money    // price paid per unit
	Fee      Money    // buy fee not yet attributed to a sale, zeroed on first draw
}

// Lot is a read-only snapshot of an open lot, as exposed by
// [Journal.Lots].
type Lot struct {
	Date     Date
	Quantity Quantity
	Price    Money
	Fee      Money // buy fee not yet attributed to a sale
}

// lots is the ordered inventory of open lots for one security, maintained in
// non-decreasing acquisition-date order. Sells always consume index 0 first.
type lots []lot

// insert places a new lot before the first strictly later-dated lot, so a
// backfilled purchase lands at its chronological position. A lot dated equal
// to an existing one is placed after it, preserving arrival order.
func (l lots) insert(n lot) lots {
	at := len(l)
	for i, cur := range l {
		if cur.Date.After(n.Date) {
			at = i
			break
		}
	}
	l = append(l, lot{})
	copy(l[at+1:], l[at:])
	l[at] = n
	return l
}

// quantity returns the total number of units held across all open lots.
func (l lots) quantity() Quantity {
	var total Quantity
	for _, cur := range l {
		total = total.Add(cur.Quantity)
	}
	return total
}

// Fulfillment is one row of a sell's lot-by-lot breakdown.
type Fulfillment struct {
	Date        Date     // acquisition date of the originating lot
	Price       Money    // purchase price per unit of the lot
	Quantity    Quantity // units drawn from the lot
	BuyFee      Money    // buy-side fee attributed to this row
	SellFee     Money    // sell-side fee attributed to this row
	HoldingDays int      // days between acquisition and sale
	Profit      Money    // realized profit of this row, fees deducted
}

// sell consumes open lots in FIFO order until the requested quantity is
// fully matched, and returns the ordered fulfillment breakdown together with
// the sale's total net profit.
//
// Fee attribution follows a first-draw policy, not a proportional split: a
// lot's remaining buy fee goes entirely to the first row that draws from it,
// and the sell fee goes entirely to the first row of the sale. Callers must
// ensure the inventory holds at least the requested quantity.
func (l *lots) sell(on Date, quantity Quantity, price, fee Money) ([]Fulfillment, Money) {
	var rows []Fulfillment
	var netProfit Money

	remaining := quantity
	for remaining.IsPositive() {
		first := &(*l)[0]
		q := remaining.Min(first.Quantity)
		first.Quantity = first.Quantity.Sub(q)
		remaining = remaining.Sub(q)

		// The lot's buy fee is attributed once, to the first sale drawing
		// from it, even if that sale only partially consumes the lot.
		buyFee := first.Fee
		first.Fee = Money{}

		// The sell fee weighs only on the first row of this sale.
		var sellFee Money
		if len(rows) == 0 {
			sellFee = fee
		}

		profit := price.Sub(first.Price).Mul(q).Sub(buyFee).Sub(sellFee)
		rows = append(rows, Fulfillment{
			Date:        first.Date,
			Price:       first.Price,
			Quantity:    q,
			BuyFee:      buyFee,
			SellFee:     sellFee,
			HoldingDays: on.Sub(first.Date),
			Profit:      profit,
		})
		netProfit = netProfit.Add(profit)

		// A lot is removed the instant it is exhausted.
		if first.Quantity.IsZero() {
			*l = (*l)[1:]
		}
	}
	return rows, netProfit
}
