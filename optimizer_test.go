package sellplan

import (
	"errors"
	"testing"
)

// The two-lot book used by most scenarios: A gains 5 per unit on a
// large basis, B gains 20 per unit on a small one.
func testBook() CandidateSet {
	set := CandidateSet{
		cand("A", "2023-01-10", 10, 100, 105), // max gain 50, cost 1000
		cand("B", "2023-02-15", 4, 10, 30),    // max gain 80, cost 40
	}
	sortCandidates(set)
	return set
}

func TestOptimize_PrefersLowerVolume(t *testing.T) {
	// Both a partial sale of A and a partial sale of B realize 20 with
	// a single trade; B's cost basis is far smaller.
	plan, err := Optimize(testBook(), EUR(20), Options{})
	if err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}
	if plan.Trades() != 1 {
		t.Fatalf("Trades() = %d, want 1", plan.Trades())
	}
	s := plan.Sales[0]
	if s.Symbol != "B" {
		t.Errorf("sold symbol = %q, want %q", s.Symbol, "B")
	}
	if want := Q(1); !s.Sell.Equal(want) {
		t.Errorf("sold quantity = %s, want %s", s.Sell, want)
	}
	if want := EUR(20); !plan.Taxable().Equal(want) {
		t.Errorf("Taxable() = %s, want %s", plan.Taxable(), want)
	}
	if want := EUR(10); !plan.Volume().Equal(want) {
		t.Errorf("Volume() = %s, want %s", plan.Volume(), want)
	}
}

func TestOptimize_WholeLotExactHit(t *testing.T) {
	plan, err := Optimize(testBook(), EUR(80), Options{})
	if err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}
	if plan.Trades() != 1 {
		t.Fatalf("Trades() = %d, want 1", plan.Trades())
	}
	s := plan.Sales[0]
	if s.Symbol != "B" || s.Partial() {
		t.Errorf("got %s sale of %q, want whole sale of B", s.Sell, s.Symbol)
	}
}

func TestOptimize_CombinesPartialAndWholeLot(t *testing.T) {
	// No single lot reaches 100 (max 80), but B whole plus 4 units of
	// A lands exactly on it.
	plan, err := Optimize(testBook(), EUR(100), Options{})
	if err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}
	if plan.Trades() != 2 {
		t.Fatalf("Trades() = %d, want 2", plan.Trades())
	}
	if want := EUR(100); !plan.Taxable().Equal(want) {
		t.Errorf("Taxable() = %s, want %s", plan.Taxable(), want)
	}
	partials := 0
	for _, s := range plan.Sales {
		if s.Partial() {
			partials++
		}
	}
	if partials != 1 {
		t.Errorf("partial sales = %d, want 1", partials)
	}
	// The surplus 30 is shed on A (6 units x 100 basis), not on B
	// (1.5 units x 10 basis): same profit, 585 less volume.
	if want := EUR(440); !plan.Volume().Equal(want) {
		t.Errorf("Volume() = %s, want %s", plan.Volume(), want)
	}
}

func TestOptimize_Infeasible(t *testing.T) {
	_, err := Optimize(testBook(), EUR(1000), Options{})
	var infeasible *NoFeasiblePlanError
	if !errors.As(err, &infeasible) {
		t.Fatalf("Optimize() error = %v, want NoFeasiblePlanError", err)
	}
	if want := EUR(130); !infeasible.Closest.Equal(want) {
		t.Errorf("Closest = %s, want %s", infeasible.Closest, want)
	}
}

func TestOptimize_LossHarvesting(t *testing.T) {
	set := CandidateSet{
		cand("C", "2022-06-01", 10, 100, 90), // loses 10 per unit
	}
	plan, err := Optimize(set, EUR(-50), Options{})
	if err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}
	if plan.Trades() != 1 {
		t.Fatalf("Trades() = %d, want 1", plan.Trades())
	}
	if want := Q(5); !plan.Sales[0].Sell.Equal(want) {
		t.Errorf("sold quantity = %s, want %s", plan.Sales[0].Sell, want)
	}
	if want := EUR(-50); !plan.Taxable().Equal(want) {
		t.Errorf("Taxable() = %s, want %s", plan.Taxable(), want)
	}
}

func TestOptimize_ZeroTargetSellsNothing(t *testing.T) {
	plan, err := Optimize(testBook(), EUR(0), Options{})
	if err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}
	if plan.Trades() != 0 {
		t.Errorf("Trades() = %d, want 0", plan.Trades())
	}
}

func TestOptimize_Tolerance(t *testing.T) {
	// Selling lot A whole realizes 50, within 48 +- 3; the partial
	// sale of 9.6 units hits 48 exactly with less volume and wins.
	set := CandidateSet{cand("A", "2023-01-10", 10, 100, 105)}
	plan, err := Optimize(set, EUR(48), Options{Tolerance: EUR(3)})
	if err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}
	if plan.Trades() != 1 {
		t.Fatalf("Trades() = %d, want 1", plan.Trades())
	}
	if want := Q(9.6); !plan.Sales[0].Sell.Equal(want) {
		t.Errorf("sold quantity = %s, want %s", plan.Sales[0].Sell, want)
	}
	if want := EUR(48); !plan.Taxable().Equal(want) {
		t.Errorf("Taxable() = %s, want %s", plan.Taxable(), want)
	}
}

func TestOptimize_ToleranceAcceptsWholeLot(t *testing.T) {
	// 52 +- 3 undershoots: no partial can raise A's gain above 50, but
	// the whole lot is within tolerance.
	set := CandidateSet{cand("A", "2023-01-10", 10, 100, 105)}
	plan, err := Optimize(set, EUR(52), Options{Tolerance: EUR(3)})
	if err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}
	if plan.Trades() != 1 || plan.Sales[0].Partial() {
		t.Fatalf("want the whole lot in a single trade, got %+v", plan.Sales)
	}
	if want := EUR(50); !plan.Taxable().Equal(want) {
		t.Errorf("Taxable() = %s, want %s", plan.Taxable(), want)
	}
}

func TestOptimize_Exemption(t *testing.T) {
	// 30% of the fund's gain is exempt: hitting a taxable profit of 35
	// needs 50 of gross gain, the whole lot.
	set := CandidateSet{
		{
			Lot:       Lot{Symbol: "ETF", Acquired: day("2023-01-10"), Quantity: Q(10), UnitCost: EUR(100)},
			Price:     EUR(105),
			Exemption: R(0.3),
		},
	}
	plan, err := Optimize(set, EUR(35), Options{})
	if err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}
	s := plan.Sales[0]
	if s.Partial() {
		t.Errorf("got partial sale of %s, want whole lot", s.Sell)
	}
	if want := EUR(50); !plan.Gain().Equal(want) {
		t.Errorf("Gain() = %s, want %s", plan.Gain(), want)
	}
	if want := EUR(35); !plan.Taxable().Equal(want) {
		t.Errorf("Taxable() = %s, want %s", plan.Taxable(), want)
	}
}

func TestOptimize_MaxTrades(t *testing.T) {
	// 100 needs two trades; capped at one the search must report
	// infeasibility, not a wrong plan.
	_, err := Optimize(testBook(), EUR(100), Options{MaxTrades: 1})
	var infeasible *NoFeasiblePlanError
	if !errors.As(err, &infeasible) {
		t.Fatalf("Optimize() error = %v, want NoFeasiblePlanError", err)
	}
}

func TestOptimize_BudgetExceeded(t *testing.T) {
	plan, err := Optimize(testBook(), EUR(100), Options{Budget: 1})
	var exhausted *SearchBudgetExceededError
	if !errors.As(err, &exhausted) {
		t.Fatalf("Optimize() error = %v, want SearchBudgetExceededError", err)
	}
	if plan != exhausted.Best {
		t.Errorf("returned plan and Best differ")
	}
}

func TestOptimize_FIFOConstraint(t *testing.T) {
	// Two lots of the same symbol; the newer one alone would realize
	// 40 cheaply, but FIFO forces the older lot to go first: the older
	// lot's 20 plus half of the newer lot's gain.
	set := CandidateSet{
		cand("A", "2020-01-02", 2, 90, 100),  // gain 10/unit, 20 total
		cand("A", "2023-06-01", 4, 100, 110), // gain 10/unit, 40 total
	}
	sortCandidates(set)

	unconstrained, err := Optimize(set, EUR(40), Options{})
	if err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}
	if unconstrained.Trades() != 1 {
		t.Errorf("unconstrained Trades() = %d, want 1", unconstrained.Trades())
	}

	constrained, err := Optimize(set, EUR(40), Options{FIFO: true})
	if err != nil {
		t.Fatalf("Optimize(FIFO) error = %v", err)
	}
	if constrained.Trades() != 2 {
		t.Fatalf("FIFO Trades() = %d, want 2", constrained.Trades())
	}
	first := constrained.Sales[0]
	if !first.Acquired.Equal(day("2020-01-02")) || first.Partial() {
		t.Errorf("FIFO plan must sell the 2020 lot whole, got %s of lot acquired %s",
			first.Sell, first.Acquired.Format("2006-01-02"))
	}
	if want := EUR(40); !constrained.Taxable().Equal(want) {
		t.Errorf("FIFO Taxable() = %s, want %s", constrained.Taxable(), want)
	}
}

func TestOptimize_Deterministic(t *testing.T) {
	a, err := Optimize(testBook(), EUR(100), Options{})
	if err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}
	b, err := Optimize(testBook(), EUR(100), Options{})
	if err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}
	if a.Trades() != b.Trades() {
		t.Fatalf("trade counts differ: %d vs %d", a.Trades(), b.Trades())
	}
	for i := range a.Sales {
		if a.Sales[i].Symbol != b.Sales[i].Symbol || !a.Sales[i].Sell.Equal(b.Sales[i].Sell) {
			t.Errorf("sale %d differs: %s %s vs %s %s", i,
				a.Sales[i].Symbol, a.Sales[i].Sell, b.Sales[i].Symbol, b.Sales[i].Sell)
		}
	}
}

func TestOptimize_NoOverSale(t *testing.T) {
	for _, target := range []float64{10, 20, 50, 80, 100, 129} {
		plan, err := Optimize(testBook(), EUR(target), Options{})
		if err != nil {
			t.Fatalf("Optimize(%v) error = %v", target, err)
		}
		for _, s := range plan.Sales {
			if s.Sell.GreaterThan(s.Candidate.Quantity) {
				t.Errorf("target %v: sold %s of a lot holding %s", target, s.Sell, s.Candidate.Quantity)
			}
			if !s.Sell.IsPositive() {
				t.Errorf("target %v: non-positive sale %s", target, s.Sell)
			}
		}
	}
}
