package sellplan

import "time"

// EUR is a helper for tests to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// day is a helper for tests to create a trade timestamp from a date string.
func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// buy and sell are helpers for tests to create trade records.
func buy(symbol, on string, qty, price float64) Trade {
	return Trade{Symbol: symbol, Side: Buy, Quantity: Q(qty), Price: EUR(price), Time: day(on)}
}

func sell(symbol, on string, qty, price float64) Trade {
	return Trade{Symbol: symbol, Side: Sell, Quantity: Q(qty), Price: EUR(price), Time: day(on)}
}

// cand is a helper for tests to create a fully-taxable candidate lot.
func cand(symbol, on string, qty, cost, price float64) Candidate {
	return Candidate{
		Lot: Lot{
			Symbol:   symbol,
			Acquired: day(on),
			Quantity: Q(qty),
			UnitCost: EUR(cost),
		},
		Price: EUR(price),
	}
}
