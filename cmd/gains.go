package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/haukew/sellplan/renderer"
)

type gainsCmd struct{}

func (*gainsCmd) Name() string     { return "gains" }
func (*gainsCmd) Synopsis() string { return "show unrealized gains per open lot at current prices" }
func (*gainsCmd) Usage() string {
	return `sellplan gains

  Shows the unrealized gross and taxable gain of every open lot at
  current prices, the raw material of the optimizer.
`
}

func (c *gainsCmd) SetFlags(f *flag.FlagSet) {}

func (c *gainsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := loadLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading trades %q: %v\n", *tradesFile, err)
		return subcommands.ExitFailure
	}
	prices, err := loadPrices()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading prices %q: %v\n", *pricesFile, err)
		return subcommands.ExitFailure
	}
	candidates, err := ledger.Candidates(prices)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing gains: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.GainsMarkdown(candidates))
	return subcommands.ExitSuccess
}
