package sellplan

import (
	"fmt"
	"slices"
)

// Options tune one optimizer run. The zero value asks for an exact
// match (no tolerance) with no trade cap, no node budget, and no FIFO
// constraint.
type Options struct {
	// Tolerance is how far the achieved taxable profit may deviate
	// from the target. Zero demands an exact match.
	Tolerance Money
	// MaxTrades caps the number of sales in a plan. Zero means no cap.
	MaxTrades int
	// Budget caps the number of search nodes explored before the
	// search gives up with the best plan found so far. Zero means no
	// cap.
	Budget int
	// FIFO restricts plans to first-in-first-out prefixes per symbol:
	// a lot may only be sold if every older lot of the same symbol is
	// sold whole, matching what a broker actually executes.
	FIFO bool
}

// NoFeasiblePlanError reports that no combination of candidate lots,
// with at most one sold partially, realizes the target within the
// tolerance. Closest is the nearest achievable taxable profit, for
// diagnostics.
type NoFeasiblePlanError struct {
	Target  Money
	Closest Money
}

func (e *NoFeasiblePlanError) Error() string {
	return fmt.Sprintf("no feasible sale plan for target %s (closest achievable %s)", e.Target, e.Closest)
}

// SearchBudgetExceededError reports that the search stopped after
// exhausting its node budget. Best holds the best plan found before
// the cutoff, possibly nil.
type SearchBudgetExceededError struct {
	Budget int
	Best   *Plan
}

func (e *SearchBudgetExceededError) Error() string {
	return fmt.Sprintf("sale plan search stopped after %d nodes", e.Budget)
}

// Optimize searches for the sale plan realizing the target taxable
// profit with the fewest trades and, among equal trade counts, the
// lowest volume (sold quantity × unit cost basis). At most one lot in
// the plan is sold partially, to land on the target (exactly, with the
// default zero tolerance).
//
// The search is a pure function of its inputs: identical inputs
// always return the identical plan. It explores plans of 1, 2, ...
// trades in turn (so the first feasible trade count is minimal), each
// round a depth-first walk over include/exclude decisions per
// candidate with interval pruning.
//
// When the target is unreachable it returns a NoFeasiblePlanError.
// When opts.Budget is exhausted it returns the best plan found so far
// together with a SearchBudgetExceededError.
func Optimize(set CandidateSet, target Money, opts Options) (*Plan, error) {
	zero := M(0, target.Currency())
	tol := opts.Tolerance.Abs()

	// The empty plan already realizes a target within tolerance of
	// zero, and no plan has fewer trades or less volume.
	if target.Abs().LessThanOrEqual(tol) {
		return &Plan{}, nil
	}

	s := &search{
		set:     set,
		target:  target,
		tol:     tol,
		fifo:    opts.FIFO,
		budget:  opts.Budget,
		prev:    previousLots(set),
		sumPos:  make([]Money, len(set)+1),
		sumNeg:  make([]Money, len(set)+1),
		gain:    zero,
		volume:  zero,
		closest: zero,
	}
	s.sumPos[len(set)] = zero
	s.sumNeg[len(set)] = zero
	for i := len(set) - 1; i >= 0; i-- {
		g := set[i].MaxTaxable()
		s.sumPos[i], s.sumNeg[i] = s.sumPos[i+1], s.sumNeg[i+1]
		if g.IsPositive() {
			s.sumPos[i] = s.sumPos[i].Add(g)
		} else {
			s.sumNeg[i] = s.sumNeg[i].Add(g)
		}
	}

	maxTrades := opts.MaxTrades
	if maxTrades <= 0 || maxTrades > len(set) {
		maxTrades = len(set)
	}

	// Iterative deepening on the trade count guarantees the first
	// feasible count is the minimal one.
	for allowed := 1; allowed <= maxTrades; allowed++ {
		s.dfs(0, allowed)
		if s.exceeded {
			return s.best, &SearchBudgetExceededError{Budget: s.budget, Best: s.best}
		}
		if s.best != nil {
			return s.best, nil
		}
	}
	return nil, &NoFeasiblePlanError{Target: target, Closest: s.closest}
}

// previousLots returns, for each candidate, the index of the
// chronologically previous open lot of the same symbol, or -1. This is
// the dependency the FIFO constraint enforces. Candidate sets keep a
// symbol's lots together in chronological order, so the previous lot
// always sits at a lower index.
func previousLots(set CandidateSet) []int {
	prev := make([]int, len(set))
	last := make(map[string]int)
	for i, c := range set {
		if p, ok := last[c.Symbol]; ok {
			prev[i] = p
		} else {
			prev[i] = -1
		}
		last[c.Symbol] = i
	}
	return prev
}

// search holds the mutable state of one optimizer run: the committed
// subset, its running whole-lot gain and volume, and the best plan
// found so far. Single-threaded by design.
type search struct {
	set    CandidateSet
	target Money
	tol    Money
	fifo   bool
	prev   []int

	sumPos []Money // suffix sum of positive whole-lot taxable gains
	sumNeg []Money // suffix sum of negative whole-lot taxable gains

	budget   int
	nodes    int
	exceeded bool

	chosen []int // indexes of candidates committed whole
	gain   Money // their summed taxable gain
	volume Money // their summed cost basis

	best    *Plan
	bestVol Money

	closest     Money // achievable taxable gain nearest the target
	closestSeen bool
}

func (s *search) dfs(i, allowed int) {
	if s.exceeded {
		return
	}
	s.nodes++
	if s.budget > 0 && s.nodes > s.budget {
		s.exceeded = true
		return
	}
	if i == len(s.set) || allowed == 0 {
		return
	}
	if !s.reachable(i) {
		return
	}

	if s.includable(i) {
		c := s.set[i]
		s.chosen = append(s.chosen, i)
		s.gain = s.gain.Add(c.MaxTaxable())
		s.volume = s.volume.Add(c.Cost())
		s.evaluate()
		s.dfs(i+1, allowed-1)
		s.chosen = s.chosen[:len(s.chosen)-1]
		s.gain = s.gain.Sub(c.MaxTaxable())
		s.volume = s.volume.Sub(c.Cost())
	}
	s.dfs(i+1, allowed)
}

// includable reports whether candidate i may join the current subset.
func (s *search) includable(i int) bool {
	if !s.fifo {
		return true
	}
	p := s.prev[i]
	return p < 0 || slices.Contains(s.chosen, p)
}

// reachable bounds what any completion of the current subset can still
// achieve, and reports whether the branch is worth exploring. The gain
// bound is the whole-lot suffix interval widened by the largest single
// partial adjustment available on a committed lot (only one lot may be
// partial). The volume bound prunes branches that can no longer beat
// the best plan found.
func (s *search) reachable(i int) bool {
	var maxPos, maxNegAbs, maxCost Money
	for _, j := range s.chosen {
		g := s.set[j].MaxTaxable()
		if g.GreaterThan(maxPos) {
			maxPos = g
		}
		if g.Neg().GreaterThan(maxNegAbs) {
			maxNegAbs = g.Neg()
		}
		if c := s.set[j].Cost(); c.GreaterThan(maxCost) {
			maxCost = c
		}
	}

	low := s.gain.Add(s.sumNeg[i]).Sub(maxPos)
	high := s.gain.Add(s.sumPos[i]).Add(maxNegAbs)
	if s.target.Sub(s.tol).GreaterThan(high) {
		s.observe(high)
		return false
	}
	if s.target.Add(s.tol).LessThan(low) {
		s.observe(low)
		return false
	}

	// Further lots only add volume, and the single partial sale can
	// shed at most the cost of one committed lot.
	if s.best != nil && s.volume.Sub(maxCost).GreaterThanOrEqual(s.bestVol) {
		return false
	}
	return true
}

// evaluate checks the current subset, sold whole except for at most
// one partial lot, against the target, and keeps the plan if it beats
// the best found so far on volume. Trade-count minimality is handled
// by the deepening loop; exact ties keep the plan found first.
func (s *search) evaluate() {
	diff := s.gain.Sub(s.target)
	s.observe(s.gain)

	// The whole-lot assignment is feasible when the subset's gain is
	// already within tolerance.
	found := false
	bestIdx := -1
	var bestCut Quantity
	var bestVolume Money
	if diff.Abs().LessThanOrEqual(s.tol) {
		found, bestVolume = true, s.volume
	}

	// Alternatively one committed lot may be sold diff/gainPerUnit
	// units short, landing on the target exactly, when that cut fits
	// strictly inside (0, quantity). Among eligible lots the one
	// shedding the most volume wins, as volume is what the plan
	// minimizes; ties keep the whole-lot assignment or the earliest
	// committed lot.
	for _, j := range s.chosen {
		c := s.set[j]
		g := c.TaxablePerUnit()
		if g.IsZero() {
			continue
		}
		if s.fifo && s.hasNewerChosen(j) {
			continue
		}
		x := diff.DivPrice(g)
		if !x.IsPositive() || !x.LessThan(c.Quantity) {
			continue
		}
		volume := s.volume.Sub(c.UnitCost.Mul(x))
		if !found || volume.LessThan(bestVolume) {
			found, bestIdx, bestCut, bestVolume = true, j, x, volume
		}
	}

	if !found {
		return
	}
	if s.best == nil || bestVolume.LessThan(s.bestVol) {
		s.keep(bestIdx, bestCut, bestVolume)
	}
}

// hasNewerChosen reports whether a chronologically later lot of the
// same symbol is committed; under FIFO such a lot forbids a partial
// sale of lot j.
func (s *search) hasNewerChosen(j int) bool {
	for _, k := range s.chosen {
		if k != j && s.set[k].Symbol == s.set[j].Symbol && s.set[j].Acquired.Before(s.set[k].Acquired) {
			return true
		}
	}
	return false
}

// keep records the current subset as the best plan. partialIdx is the
// candidate sold short by cut units, or -1 for a whole-lot plan.
func (s *search) keep(partialIdx int, cut Quantity, volume Money) {
	plan := &Plan{Sales: make([]Sale, 0, len(s.chosen))}
	for _, j := range s.chosen {
		c := s.set[j]
		sell := c.Quantity
		if j == partialIdx {
			sell = sell.Sub(cut)
		}
		plan.Sales = append(plan.Sales, Sale{Candidate: c, Sell: sell})
	}
	s.best, s.bestVol = plan, volume
}

// observe tracks the achievable taxable gain nearest the target, the
// diagnostic reported when no feasible plan exists.
func (s *search) observe(gain Money) {
	if !s.closestSeen || gain.Sub(s.target).Abs().LessThan(s.closest.Sub(s.target).Abs()) {
		s.closest, s.closestSeen = gain, true
	}
}
