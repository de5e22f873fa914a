package sellplan

import "time"

// Lot represents the still-open remainder of a single acquisition of a
// symbol, the atomic unit a sale plan may sell whole or in part.
type Lot struct {
	Symbol   string
	Acquired time.Time
	Quantity Quantity // invariant: positive
	UnitCost Money    // purchase price per unit
}

// Cost returns the lot's cost basis (quantity × unit cost), the volume
// metric trading fees scale with.
func (l Lot) Cost() Money { return l.UnitCost.Mul(l.Quantity) }

// GainPerUnit returns the signed unrealized gain of one unit at the
// given current price.
func (l Lot) GainPerUnit(price Money) Money { return price.Sub(l.UnitCost) }

// Gain returns the unrealized gain of the whole lot at the given
// current price.
func (l Lot) Gain(price Money) Money { return l.GainPerUnit(price).Mul(l.Quantity) }
