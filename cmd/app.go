// Package cmd implements the CLI application that computes sale plans.
package cmd

import (
	"flag"

	"github.com/google/subcommands"
	"github.com/haukew/sellplan"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&planCmd{}, "planning")
	c.Register(&lotsCmd{}, "holdings")
	c.Register(&gainsCmd{}, "holdings")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var tradesFile = flag.String("trades-file", "data/trades.json", "Path to the JSON trade history file")
var pricesFile = flag.String("prices-file", "data/prices.json", "Path to the JSON current prices file")
var currency = flag.String("currency", "EUR", "Currency all prices are denominated in")

// loadLedger loads the trade history from the app trades file.
func loadLedger() (*sellplan.Ledger, error) {
	return sellplan.LoadTrades(*tradesFile, *currency)
}

// loadPrices loads the current price snapshot from the app prices file.
func loadPrices() (sellplan.PriceTable, error) {
	return sellplan.LoadPrices(*pricesFile, *currency)
}
