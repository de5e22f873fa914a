package sellplan

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"maps"
	"os"
	"slices"
	"time"
)

// This file contains the loaders for the two input files of a run: the
// trade history and the price snapshot. Both are plain JSON, written
// by whatever extracts trades from broker statements, and meant to be
// human-readable and git-friendly.
//
// Trade file: one object per symbol, with the symbol's exemption rate
// and its chronological trades:
//
//	{
//	  "A1JX52": {
//	    "exemption": 0.3,
//	    "trades": [
//	      {"type": "buy", "amount": 10, "unit_price": 95.30, "timestamp": "2023-05-02T14:03:11"}
//	    ]
//	  }
//	}
//
// Price file: a flat symbol → current price object:
//
//	{"A1JX52": 112.40}

// timestampFormats are accepted trade timestamps, most precise first.
var timestampFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTimestamp(s string) (time.Time, error) {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

// DecodeTrades parses a trade file into a ledger. Prices in the file
// are denominated in the given currency. filename is for error
// messages only.
//
// Trades of one symbol sharing a timestamp are duplicates from merging
// broker statements; all but the first are dropped with a warning.
func DecodeTrades(filename string, r io.Reader, currency string) (*Ledger, error) {
	// to parse json we use dedicated local structs with tag annotations.
	type jtrade struct {
		Type      string          `json:"type"`
		Amount    Quantity        `json:"amount"`
		UnitPrice json.RawMessage `json:"unit_price"`
		Timestamp string          `json:"timestamp"`
	}
	type jsymbol struct {
		Exemption json.RawMessage `json:"exemption"`
		Trades    []jtrade        `json:"trades"`
	}

	var file map[string]jsymbol
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("format error in %q: %w", filename, err)
	}

	ledger := NewLedger()
	for _, symbol := range slices.Sorted(maps.Keys(file)) {
		js := file[symbol]
		if len(js.Exemption) > 0 {
			var rate Rate
			if err := json.Unmarshal(js.Exemption, &rate.value); err != nil {
				return nil, fmt.Errorf("format error in %q: exemption of %q: %w", filename, symbol, err)
			}
			if err := ledger.Declare(symbol, rate); err != nil {
				return nil, fmt.Errorf("format error in %q: %w", filename, err)
			}
		}
		seen := make(map[string]bool)
		for _, jt := range js.Trades {
			if seen[jt.Timestamp] {
				log.Printf("warning: dropping duplicate trade on %s for %q", jt.Timestamp, symbol)
				continue
			}
			seen[jt.Timestamp] = true

			when, err := parseTimestamp(jt.Timestamp)
			if err != nil {
				return nil, fmt.Errorf("format error in %q: trade for %q: %w", filename, symbol, err)
			}
			var price Money
			if len(jt.UnitPrice) > 0 {
				price.cur = currency
				if err := json.Unmarshal(jt.UnitPrice, &price.value); err != nil {
					return nil, fmt.Errorf("format error in %q: unit price for %q: %w", filename, symbol, err)
				}
			}
			err = ledger.Append(Trade{
				Symbol:   symbol,
				Side:     Side(jt.Type),
				Quantity: jt.Amount,
				Price:    price,
				Time:     when,
			})
			if err != nil {
				return nil, fmt.Errorf("format error in %q: %w", filename, err)
			}
		}
	}
	return ledger, nil
}

// DecodePrices parses a price file into a snapshot, in the given
// currency. filename is for error messages only.
func DecodePrices(filename string, r io.Reader, currency string) (PriceTable, error) {
	var file map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return PriceTable{}, fmt.Errorf("format error in %q: %w", filename, err)
	}

	prices := make(map[string]Money, len(file))
	for symbol, raw := range file {
		var price Money
		price.cur = currency
		if err := json.Unmarshal(raw, &price.value); err != nil {
			return PriceTable{}, fmt.Errorf("format error in %q: price of %q: %w", filename, symbol, err)
		}
		if !price.IsPositive() {
			return PriceTable{}, fmt.Errorf("format error in %q: price of %q must be positive", filename, symbol)
		}
		prices[symbol] = price
	}
	return NewPriceTable(prices), nil
}

// LoadTrades reads and parses a trade file from disk.
func LoadTrades(path, currency string) (*Ledger, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open %q for reading: %w", path, err)
	}
	defer f.Close()
	return DecodeTrades(path, f, currency)
}

// LoadPrices reads and parses a price file from disk.
func LoadPrices(path, currency string) (PriceTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return PriceTable{}, fmt.Errorf("cannot open %q for reading: %w", path, err)
	}
	defer f.Close()
	return DecodePrices(path, f, currency)
}
