package sellplan

import (
	"maps"
	"slices"
)

// Ledger records the raw chronological trade history per symbol,
// together with the per-symbol partial tax exemption rate.
//
// In a Ledger trades are always in chronological order.
type Ledger struct {
	trades     []Trade
	exemptions map[string]Rate
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		trades:     make([]Trade, 0),
		exemptions: make(map[string]Rate),
	}
}

// Append validates and inserts trades, keeping the ledger sorted by
// execution time. It returns the first validation error encountered.
func (l *Ledger) Append(trades ...Trade) error {
	for _, t := range trades {
		if err := t.Validate(); err != nil {
			return err
		}
		l.trades = append(l.trades, t)
	}
	slices.SortStableFunc(l.trades, func(a, b Trade) int {
		return a.Time.Compare(b.Time)
	})
	return nil
}

// Declare sets the partial tax exemption rate for a symbol. Symbols
// never declared have rate zero (fully taxable).
func (l *Ledger) Declare(symbol string, r Rate) error {
	if !r.Valid() {
		return &MalformedRecordError{Trade: Trade{Symbol: symbol}, Reason: "exemption rate must be in [0, 1)"}
	}
	l.exemptions[symbol] = r
	return nil
}

// Exemption returns the declared exemption rate of a symbol, zero when
// none was declared.
func (l *Ledger) Exemption(symbol string) Rate {
	return l.exemptions[symbol]
}

// Symbols returns the symbols traded in the ledger in alphabetical
// order.
func (l *Ledger) Symbols() []string {
	set := make(map[string]struct{})
	for _, t := range l.trades {
		set[t.Symbol] = struct{}{}
	}
	return slices.Sorted(maps.Keys(set))
}

// Trades returns the ledger's trades in chronological order.
func (l *Ledger) Trades() []Trade {
	return slices.Clone(l.trades)
}

// OpenLots reduces the trade history into the lots still held, symbol
// by symbol. Sells consume the oldest open lots first (FIFO), possibly
// leaving the oldest surviving lot partially consumed. The result is
// ordered by symbol, then by acquisition time.
//
// A sell of more quantity than is open for its symbol yields a
// MalformedRecordError.
func (l *Ledger) OpenLots() ([]Lot, error) {
	open := make(map[string][]Lot)
	for _, t := range l.trades {
		switch t.Side {
		case Buy:
			open[t.Symbol] = append(open[t.Symbol], Lot{
				Symbol:   t.Symbol,
				Acquired: t.Time,
				Quantity: t.Quantity,
				UnitCost: t.Price,
			})
		case Sell:
			remaining, err := sellFIFO(open[t.Symbol], t)
			if err != nil {
				return nil, err
			}
			open[t.Symbol] = remaining
		}
	}

	var lots []Lot
	for _, symbol := range slices.Sorted(maps.Keys(open)) {
		lots = append(lots, open[symbol]...)
	}
	return lots, nil
}

// sellFIFO consumes a sell quantity from the open lots of one symbol,
// oldest first.
func sellFIFO(lots []Lot, sell Trade) ([]Lot, error) {
	toSell := sell.Quantity
	var remaining []Lot
	for _, lot := range lots {
		switch {
		case toSell.IsZero():
			remaining = append(remaining, lot)
		case lot.Quantity.GreaterThan(toSell):
			// partial consumption of this lot
			lot.Quantity = lot.Quantity.Sub(toSell)
			toSell = Q(0)
			remaining = append(remaining, lot)
		default:
			// full consumption of this lot
			toSell = toSell.Sub(lot.Quantity)
		}
	}
	if !toSell.IsZero() {
		return nil, &MalformedRecordError{Trade: sell, Reason: "sell exceeds open quantity"}
	}
	return remaining, nil
}
