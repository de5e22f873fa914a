package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/haukew/sellplan"
	"github.com/haukew/sellplan/renderer"
)

// planCmd holds the flags for the 'plan' subcommand.
type planCmd struct {
	profit    float64
	tolerance float64
	maxTrades int
	budget    int
	fifo      bool
}

func (*planCmd) Name() string     { return "plan" }
func (*planCmd) Synopsis() string { return "compute the sale plan for a target taxable profit" }
func (*planCmd) Usage() string {
	return `sellplan plan -d <profit> [-e <tolerance>] [-max-trades <n>] [-budget <n>] [-fifo=false]

  Searches the open lots for the set of sales realizing the target
  taxable profit with the fewest trades and the lowest volume. A
  negative profit harvests losses.
`
}

func (c *planCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.profit, "d", 1000.0, "Target taxable profit to realize")
	f.Float64Var(&c.tolerance, "e", 0, "Accepted deviation from the target profit")
	f.IntVar(&c.maxTrades, "max-trades", 3, "Maximum number of trades in the plan (0 = no cap)")
	f.IntVar(&c.budget, "budget", 1_000_000, "Maximum number of search nodes (0 = no cap)")
	f.BoolVar(&c.fifo, "fifo", true, "Only sell first-in-first-out prefixes per symbol")
}

func (c *planCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	target := sellplan.M(c.profit, *currency)
	plan, err := sellplan.Optimize(candidates, target, sellplan.Options{
		Tolerance: sellplan.M(c.tolerance, *currency),
		MaxTrades: c.maxTrades,
		Budget:    c.budget,
		FIFO:      c.fifo,
	})

	var infeasible *sellplan.NoFeasiblePlanError
	var exhausted *sellplan.SearchBudgetExceededError
	switch {
	case errors.As(err, &infeasible):
		fmt.Fprintf(os.Stderr, "No feasible plan: closest achievable taxable profit is %s\n", infeasible.Closest)
		return subcommands.ExitFailure
	case errors.As(err, &exhausted):
		fmt.Fprintf(os.Stderr, "Warning: %v; the plan below may not be optimal\n", err)
		if plan == nil {
			return subcommands.ExitFailure
		}
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.PlanMarkdown(plan, target))
	return subcommands.ExitSuccess
}
