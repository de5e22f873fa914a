package sellplan

import (
	"slices"
	"strings"
)

// Candidate is an open lot annotated with its signed per-unit gain at
// the current price, ready for the optimizer.
type Candidate struct {
	Lot
	Price     Money // current price per unit
	Exemption Rate  // taxable fraction is 1 - Exemption
}

// GainPerUnit returns the signed gross gain of selling one unit.
func (c Candidate) GainPerUnit() Money { return c.Price.Sub(c.UnitCost) }

// TaxablePerUnit returns the signed taxable gain of selling one unit,
// after the partial exemption.
func (c Candidate) TaxablePerUnit() Money {
	return c.GainPerUnit().MulRate(c.Exemption.Complement())
}

// MaxTaxable returns the taxable gain of selling the whole lot.
func (c Candidate) MaxTaxable() Money { return c.TaxablePerUnit().Mul(c.Quantity) }

// CandidateSet is the ordered, immutable input of one optimizer run.
//
// Lots of one symbol stay together, in chronological order (the order
// FIFO sales must respect); symbols are visited by decreasing per-unit
// taxable gain magnitude so the search reaches (and prunes around) the
// target with few, large steps. The order is deterministic, so
// repeated runs produce the identical plan.
type CandidateSet []Candidate

// AnnotateGains derives the candidate set from open lots, a price
// snapshot and the per-symbol exemption rates. Lots with zero quantity
// are excluded. A lot whose symbol is absent from the price table
// yields a MissingPriceError.
func AnnotateGains(lots []Lot, prices PriceTable, exemptions map[string]Rate) (CandidateSet, error) {
	var set CandidateSet
	for _, lot := range lots {
		if lot.Quantity.IsZero() {
			continue
		}
		price, ok := prices.Price(lot.Symbol)
		if !ok {
			return nil, &MissingPriceError{Symbol: lot.Symbol}
		}
		set = append(set, Candidate{
			Lot:       lot,
			Price:     price,
			Exemption: exemptions[lot.Symbol],
		})
	}
	sortCandidates(set)
	return set, nil
}

func sortCandidates(set CandidateSet) {
	// impact[symbol] is the largest per-unit taxable gain magnitude
	// among the symbol's lots.
	impact := make(map[string]Money)
	for _, c := range set {
		g := c.TaxablePerUnit().Abs()
		if g.GreaterThan(impact[c.Symbol]) {
			impact[c.Symbol] = g
		}
	}
	slices.SortStableFunc(set, func(a, b Candidate) int {
		if a.Symbol != b.Symbol {
			ga, gb := impact[a.Symbol], impact[b.Symbol]
			switch {
			case ga.GreaterThan(gb):
				return -1
			case gb.GreaterThan(ga):
				return 1
			}
			return strings.Compare(a.Symbol, b.Symbol)
		}
		return a.Acquired.Compare(b.Acquired)
	})
}

// Candidates reduces the ledger to open lots and annotates them with
// gains from the price snapshot.
func (l *Ledger) Candidates(prices PriceTable) (CandidateSet, error) {
	lots, err := l.OpenLots()
	if err != nil {
		return nil, err
	}
	return AnnotateGains(lots, prices, l.exemptions)
}
