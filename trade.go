package sellplan

import (
	"fmt"
	"time"
)

// Side is a typed string identifying the direction of a trade.
type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

// Trade is a single executed order: a buy or sell of a quantity of one
// symbol at a unit price, at a point in time.
type Trade struct {
	Symbol   string
	Side     Side
	Quantity Quantity
	Price    Money // unit price
	Time     time.Time
}

// Proceeds returns the total amount of the trade (quantity × unit price).
func (t Trade) Proceeds() Money { return t.Price.Mul(t.Quantity) }

// Validate checks the trade for the fields the ledger requires.
func (t Trade) Validate() error {
	switch {
	case t.Symbol == "":
		return &MalformedRecordError{Trade: t, Reason: "missing symbol"}
	case t.Side != Buy && t.Side != Sell:
		return &MalformedRecordError{Trade: t, Reason: fmt.Sprintf("unknown side %q", t.Side)}
	case !t.Quantity.IsPositive():
		return &MalformedRecordError{Trade: t, Reason: "quantity must be positive"}
	case !t.Price.IsPositive():
		return &MalformedRecordError{Trade: t, Reason: "unit price must be positive"}
	case t.Time.IsZero():
		return &MalformedRecordError{Trade: t, Reason: "missing timestamp"}
	}
	return nil
}

// MalformedRecordError reports a trade record that cannot be turned
// into open lots: a missing field, or a sell exceeding the open
// quantity of its symbol.
type MalformedRecordError struct {
	Trade  Trade
	Reason string
}

func (e *MalformedRecordError) Error() string {
	if e.Trade.Symbol == "" {
		return fmt.Sprintf("malformed trade record: %s", e.Reason)
	}
	return fmt.Sprintf("malformed trade record for %q: %s", e.Trade.Symbol, e.Reason)
}
