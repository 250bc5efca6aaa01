package constraint

import "context"

// Result is the outcome of a solve attempt: whether a feasible assignment
// was found within budget, and if so which variables were selected.
// When Feasible is true, Selected has one entry per registered candidate;
// otherwise it is nil.
type Result struct {
	Feasible bool
	Selected map[Ref]bool
}

// defaultNodeBudget bounds the branch-and-bound search so a pathological
// page (many unconstrained candidates) can't run unbounded; the per-page
// wall-clock timeout in ctx is the primary guard, this is the fallback.
const defaultNodeBudget = 200_000

// Solve searches for the variable assignment that maximizes the objective
// (sum of selected weights, plus the unconsumed-block penalty) subject to
// every registered constraint, respecting any candidates Forbid marked
// false. It returns the best feasible assignment found before ctx is
// cancelled or the internal node budget is exhausted; if no feasible
// assignment was found at all, Feasible is false and Selected is nil — on
// infeasibility, the caller receives the empty selection rather than an
// error.
func (m *Model) Solve(ctx context.Context) Result {
	vars := sortedRefs(m.order)
	n := len(vars)

	suffixWeight := make([]int, n+1)
	for i := n - 1; i >= 0; i-- {
		w := m.weight[vars[i]]
		if w < 0 {
			w = 0
		}
		suffixWeight[i] = suffixWeight[i+1] + w
	}

	distinctBlocks := map[int]bool{}
	for _, ref := range vars {
		for _, b := range m.sourceBlocks[ref] {
			distinctBlocks[b] = true
		}
	}
	maxPenalty := len(distinctBlocks) * m.penaltyPerBlock
	if maxPenalty < 0 {
		maxPenalty = 0
	}

	var monotone []Constraint
	for _, c := range m.constraints {
		if c.Monotone() {
			monotone = append(monotone, c)
		}
	}

	selected := make(map[Ref]bool, n)
	best := Result{}
	bestObj := -1
	nodes := 0

	var dfs func(i, weightSoFar int)
	dfs = func(i, weightSoFar int) {
		nodes++
		if nodes > defaultNodeBudget {
			return
		}
		select {
		case <-ctx.Done():
			return
		default:
		}

		if weightSoFar+suffixWeight[i]+maxPenalty <= bestObj {
			return
		}

		if i == n {
			ok := true
			for _, c := range m.constraints {
				if !c.Check(selected) {
					ok = false
					break
				}
			}
			if !ok {
				return
			}
			obj := weightSoFar + consumedPenalty(m, selected)
			if obj > bestObj || !best.Feasible {
				bestObj = obj
				best.Feasible = true
				best.Selected = cloneSelection(selected)
			}
			return
		}

		v := vars[i]

		if !m.forbidden[v] {
			selected[v] = true
			if monotoneHolds(monotone, v, selected) {
				dfs(i+1, weightSoFar+m.weight[v])
			}
		}

		selected[v] = false
		dfs(i+1, weightSoFar)
	}

	dfs(0, 0)

	if !best.Feasible {
		return Result{Feasible: false}
	}
	return best
}

func monotoneHolds(constraints []Constraint, touched Ref, selected map[Ref]bool) bool {
	for _, c := range constraints {
		relevant := false
		for _, v := range c.Vars() {
			if v == touched {
				relevant = true
				break
			}
		}
		if relevant && !c.Check(selected) {
			return false
		}
	}
	return true
}

func consumedPenalty(m *Model, selected map[Ref]bool) int {
	consumed := map[int]bool{}
	for ref, yes := range selected {
		if !yes {
			continue
		}
		for _, b := range m.sourceBlocks[ref] {
			consumed[b] = true
		}
	}
	return len(consumed) * m.penaltyPerBlock
}

func cloneSelection(selected map[Ref]bool) map[Ref]bool {
	out := make(map[Ref]bool, len(selected))
	for k, v := range selected {
		out[k] = v
	}
	return out
}
