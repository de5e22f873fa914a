package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/haukew/sellplan/renderer"
)

type lotsCmd struct{}

func (*lotsCmd) Name() string     { return "lots" }
func (*lotsCmd) Synopsis() string { return "show the open lots after FIFO reduction" }
func (*lotsCmd) Usage() string {
	return `sellplan lots

  Reduces the trade history into the lots still held, symbol by
  symbol, oldest first.
`
}

func (c *lotsCmd) SetFlags(f *flag.FlagSet) {}

func (c *lotsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := loadLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading trades %q: %v\n", *tradesFile, err)
		return subcommands.ExitFailure
	}
	lots, err := ledger.OpenLots()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reducing trades to lots: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.LotsMarkdown(lots))
	return subcommands.ExitSuccess
}
