package sellplan

import (
	"fmt"
	"maps"
	"slices"
)

// PriceTable is an immutable snapshot of current prices by symbol,
// valid for one optimization run.
type PriceTable struct {
	prices map[string]Money
}

// NewPriceTable builds a snapshot from a symbol → price mapping.
func NewPriceTable(prices map[string]Money) PriceTable {
	t := PriceTable{prices: make(map[string]Money, len(prices))}
	maps.Copy(t.prices, prices)
	return t
}

// Price returns the current price for a symbol.
func (t PriceTable) Price(symbol string) (Money, bool) {
	p, ok := t.prices[symbol]
	return p, ok
}

// Symbols returns all known symbols in alphabetical order.
func (t PriceTable) Symbols() []string {
	return slices.Sorted(maps.Keys(t.prices))
}

// MissingPriceError reports an open lot whose symbol has no entry in
// the price table.
type MissingPriceError struct {
	Symbol string
}

func (e *MissingPriceError) Error() string {
	return fmt.Sprintf("no current price for symbol %q", e.Symbol)
}
