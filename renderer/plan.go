package renderer

import (
	"fmt"
	"strings"

	"github.com/haukew/sellplan"
)

// PlanMarkdown renders a sale plan as a markdown report.
func PlanMarkdown(plan *sellplan.Plan, target sellplan.Money) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Sale Plan for a Taxable Profit of %s\n\n", target)

	if plan.Trades() == 0 {
		fmt.Fprintln(&b, "Nothing to sell: the target is already met.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Symbol | Sell | Price | Proceeds | Gain | Taxable |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|")
	for _, s := range plan.Sales {
		qty := s.Sell.String()
		if s.Partial() {
			qty = fmt.Sprintf("%s of %s", s.Sell, s.Candidate.Quantity)
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			s.Symbol,
			qty,
			s.Price,
			s.Proceeds(),
			s.Gain().SignedString(),
			s.Taxable().SignedString(),
		)
	}
	fmt.Fprintf(&b, "| **Total** | | | **%s** | **%s** | **%s** |\n",
		plan.Proceeds(),
		plan.Gain().SignedString(),
		plan.Taxable().SignedString(),
	)

	fmt.Fprintf(&b, "\n%d trade(s), total volume %s (cost basis sold).\n", plan.Trades(), plan.Volume())
	return b.String()
}
