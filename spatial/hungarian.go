// Package spatial resolves placeholder fields declared "assignment:
// spatial" — e.g. a Step's Diagram, or a SubStep's Diagram — by minimum-cost
// bipartite matching once the solver has already fixed which parent and
// child candidates exist. The Hungarian algorithm is implemented directly
// here; see DESIGN.md for why no ecosystem assignment-problem library is
// used instead.
package spatial

import "math"

// unreachable marks a parent/child pair whose cost should never be chosen,
// used to forbid a pairing (e.g. crossing a divider) without restructuring
// the matrix.
const unreachable = math.MaxFloat64 / 2

// Unreachable returns the sentinel cost meaning "this pairing is forbidden".
func Unreachable() float64 { return unreachable }

// Assignment is one matched (parent index, child index) pair with its cost.
type Assignment struct {
	Parent int
	Child  int
	Cost   float64
}

// SolveOneToOne finds the assignment of children to parents minimizing
// total cost, pairing at most min(len(parents), len(children)) of them.
// cost[p][c] is the cost of assigning child c to parent p; use Unreachable()
// for a forbidden pairing. Unmatched parents or children simply don't
// appear in the result: unfilled placeholder slots remain empty, and
// unassigned candidates are attached to the standalone collection instead.
func SolveOneToOne(cost [][]float64) []Assignment {
	return SolveOneToMany(cost, onesCapacity(len(cost)))
}

func onesCapacity(n int) []int {
	cap := make([]int, n)
	for i := range cap {
		cap[i] = 1
	}
	return cap
}

// SolveOneToMany finds the minimum-cost assignment of children to parents
// where parent p may receive up to capacity[p] children (a Step's Arrows
// sequence, for example, can claim several Arrow candidates). Implemented
// as repeated augmenting-path (Hungarian-style) search over a matrix
// expanded so each parent contributes capacity[p] duplicate rows, which
// keeps the core algorithm the textbook one-to-one Hungarian method.
func SolveOneToMany(cost [][]float64, capacity []int) []Assignment {
	if len(cost) == 0 || len(cost[0]) == 0 {
		return nil
	}
	nParents := len(cost)
	nChildren := len(cost[0])

	var expandedRows []int // expandedRows[i] = original parent index for expanded row i
	for p := 0; p < nParents; p++ {
		c := 1
		if p < len(capacity) {
			c = capacity[p]
		}
		for k := 0; k < c; k++ {
			expandedRows = append(expandedRows, p)
		}
	}

	rows := len(expandedRows)
	size := rows
	if nChildren > size {
		size = nChildren
	}

	matrix := make([][]float64, size)
	for i := range matrix {
		matrix[i] = make([]float64, size)
		for j := range matrix[i] {
			switch {
			case i < rows && j < nChildren:
				matrix[i][j] = cost[expandedRows[i]][j]
			default:
				matrix[i][j] = 0 // padding row/column: free to match, ignored in output
			}
		}
	}

	assignment := hungarian(matrix)

	var out []Assignment
	for i, j := range assignment {
		if i >= rows || j >= nChildren {
			continue
		}
		c := matrix[i][j]
		if c >= unreachable {
			continue
		}
		out = append(out, Assignment{Parent: expandedRows[i], Child: j, Cost: c})
	}
	return out
}

// hungarian solves the square minimum-cost perfect matching problem via the
// Jonker-Volgenant-style potentials formulation of the Hungarian algorithm.
// Returns assignment where assignment[i] is the column matched to row i.
func hungarian(cost [][]float64) []int {
	n := len(cost)
	const inf = math.MaxFloat64 / 4

	u := make([]float64, n+1)
	v := make([]float64, n+1)
	p := make([]int, n+1)  // p[j] = row matched to column j (1-indexed columns)
	way := make([]int, n+1)

	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0
		minv := make([]float64, n+1)
		used := make([]bool, n+1)
		for j := 0; j <= n; j++ {
			minv[j] = inf
		}

		for {
			used[j0] = true
			i0 := p[j0]
			delta := inf
			j1 := -1
			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur := cost[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= n; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}

		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	result := make([]int, n)
	for i := range result {
		result[i] = -1
	}
	for j := 1; j <= n; j++ {
		if p[j] != 0 {
			result[p[j]-1] = j - 1
		}
	}
	return result
}
