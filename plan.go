package sellplan

// Sale is one entry of a sale plan: a candidate lot and the quantity
// to sell from it.
type Sale struct {
	Candidate
	Sell Quantity // invariant: 0 < Sell <= Candidate.Quantity
}

// Partial reports whether the sale leaves part of the lot open.
func (s Sale) Partial() bool { return s.Sell.LessThan(s.Candidate.Quantity) }

// Gain returns the gross realized gain of the sale.
func (s Sale) Gain() Money { return s.GainPerUnit().Mul(s.Sell) }

// Taxable returns the taxable realized gain after the partial
// exemption.
func (s Sale) Taxable() Money { return s.TaxablePerUnit().Mul(s.Sell) }

// Volume returns the cost basis of the sold quantity, the volume
// metric the plan minimizes.
func (s Sale) Volume() Money { return s.UnitCost.Mul(s.Sell) }

// Proceeds returns the amount the sale realizes at the current price.
func (s Sale) Proceeds() Money { return s.Price.Mul(s.Sell) }

// Plan is the optimizer's result: the sales realizing the target
// taxable profit. Lots not sold at all have no entry.
type Plan struct {
	Sales []Sale
}

// Trades returns the number of distinct sales in the plan.
func (p *Plan) Trades() int { return len(p.Sales) }

// Gain returns the total gross realized gain of the plan.
func (p *Plan) Gain() Money {
	var sum Money
	for _, s := range p.Sales {
		sum = sum.Add(s.Gain())
	}
	return sum
}

// Taxable returns the total taxable realized gain of the plan.
func (p *Plan) Taxable() Money {
	var sum Money
	for _, s := range p.Sales {
		sum = sum.Add(s.Taxable())
	}
	return sum
}

// Volume returns the total sold cost basis of the plan.
func (p *Plan) Volume() Money {
	var sum Money
	for _, s := range p.Sales {
		sum = sum.Add(s.Volume())
	}
	return sum
}

// Proceeds returns the total amount realized by the plan.
func (p *Plan) Proceeds() Money {
	var sum Money
	for _, s := range p.Sales {
		sum = sum.Add(s.Proceeds())
	}
	return sum
}
