package renderer

import (
	"fmt"
	"strings"

	"github.com/haukew/sellplan"
)

// LotsMarkdown renders the open lots of a ledger.
func LotsMarkdown(lots []sellplan.Lot) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Open Lots\n\n")
	if len(lots) == 0 {
		fmt.Fprintln(&b, "No open lots.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Symbol | Acquired | Quantity | Unit Cost | Cost Basis |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|")
	for _, lot := range lots {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			lot.Symbol,
			lot.Acquired.Format("2006-01-02"),
			lot.Quantity,
			lot.UnitCost,
			lot.Cost(),
		)
	}
	return b.String()
}

// GainsMarkdown renders the unrealized gain of every candidate lot at
// current prices.
func GainsMarkdown(set sellplan.CandidateSet) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Unrealized Gains\n\n")
	if len(set) == 0 {
		fmt.Fprintln(&b, "No open lots.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Symbol | Acquired | Quantity | Unit Cost | Price | Gain | Taxable |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|---:|")
	var gain, taxable sellplan.Money
	for _, c := range set {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			c.Symbol,
			c.Acquired.Format("2006-01-02"),
			c.Quantity,
			c.UnitCost,
			c.Price,
			c.GainPerUnit().Mul(c.Quantity).SignedString(),
			c.MaxTaxable().SignedString(),
		)
		gain = gain.Add(c.GainPerUnit().Mul(c.Quantity))
		taxable = taxable.Add(c.MaxTaxable())
	}
	fmt.Fprintf(&b, "| **Total** | | | | | **%s** | **%s** |\n",
		gain.SignedString(), taxable.SignedString())
	return b.String()
}
