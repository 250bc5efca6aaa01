// Package constraint implements a small CP-SAT-style boolean satisfaction
// and optimization engine: one boolean decision variable per candidate,
// a handful of constraint primitives, and a weighted objective with an
// unconsumed-block penalty. See DESIGN.md for why this is hand-rolled
// rather than built on an ecosystem CP-SAT, ILP, or SAT library.
package constraint

import (
	"sort"

	"github.com/tsawler/legoclassify/candidate"
)

// Ref identifies a candidate's decision variable. Re-exported from
// candidate so callers don't need to import both packages just to build a
// Model.
type Ref = candidate.Ref

// Cardinality constrains how many of a group of child variables must be
// selected when their parent is selected.
type Cardinality struct {
	AtLeast int
}

// AtLeastOne requires at least one child selected when the parent is.
func AtLeastOne() Cardinality { return Cardinality{AtLeast: 1} }

// AllOf requires every one of n children selected when the parent is —
// the cardinality a required (non-optional, non-sequence) child field
// implies.
func AllOf(n int) Cardinality { return Cardinality{AtLeast: n} }

// Model is one page's boolean satisfaction problem: every scored candidate
// is a variable, constraints restrict which combinations are legal, and the
// objective rewards total selected score plus the unconsumed-block penalty.
type Model struct {
	order           []Ref
	weight          map[Ref]int
	sourceBlocks    map[Ref][]int
	constraints     []Constraint
	forbidden       map[Ref]bool
	penaltyPerBlock int
}

// NewModel creates an empty model. penaltyPerBlock is λ, already scaled to
// the same integer range as candidate weights (scores and λ are both
// integer-scaled, typically ×1000).
func NewModel(penaltyPerBlock int) *Model {
	return &Model{
		weight:       map[Ref]int{},
		sourceBlocks: map[Ref][]int{},
		forbidden:    map[Ref]bool{},
		penaltyPerBlock: penaltyPerBlock,
	}
}

// AddCandidate registers ref as a decision variable with an integer-scaled
// weight and the source blocks it would consume if selected. Composite
// candidates pass an empty sourceBlocks.
func (m *Model) AddCandidate(ref Ref, weight int, sourceBlocks []int) {
	if _, exists := m.weight[ref]; exists {
		return
	}
	m.order = append(m.order, ref)
	m.weight[ref] = weight
	if len(sourceBlocks) > 0 {
		blocks := make([]int, len(sourceBlocks))
		copy(blocks, sourceBlocks)
		m.sourceBlocks[ref] = blocks
	}
}

// HasVar reports whether ref was registered via AddCandidate.
func (m *Model) HasVar(ref Ref) bool {
	_, ok := m.weight[ref]
	return ok
}

// Forbid forces ref's variable to false, e.g. after a build failure during
// materialization: the retry loop adds select(c) = 0 and re-solves.
func (m *Model) Forbid(ref Ref) {
	m.forbidden[ref] = true
}

// AtMostOneOf adds: at most one of refs may be selected.
func (m *Model) AtMostOneOf(refs []Ref) {
	if len(refs) <= 1 {
		return
	}
	m.constraints = append(m.constraints, atMostOne{vars: dedupe(refs)})
}

// ExactlyOneOf adds: exactly one of refs must be selected.
func (m *Model) ExactlyOneOf(refs []Ref) {
	if len(refs) == 0 {
		return
	}
	m.constraints = append(m.constraints, exactlyOne{vars: dedupe(refs)})
}

// IfSelectedThen adds: if parent is selected, at least card.AtLeast of
// children must be.
func (m *Model) IfSelectedThen(parent Ref, children []Ref, card Cardinality) {
	if len(children) == 0 {
		return
	}
	m.constraints = append(m.constraints, ifSelectedThen{parent: parent, children: dedupe(children), minChildren: card.AtLeast})
}

// IfAnySelectedThenOneOf adds: if any of groupA is selected, at least one of
// groupB must be — orphan prevention for children whose parent type is
// itself optional.
func (m *Model) IfAnySelectedThenOneOf(groupA, groupB []Ref) {
	if len(groupA) == 0 || len(groupB) == 0 {
		return
	}
	m.constraints = append(m.constraints, ifAnySelectedThenOneOf{groupA: dedupe(groupA), groupB: dedupe(groupB)})
}

// MutuallyExclusive adds: a and b cannot both be selected.
func (m *Model) MutuallyExclusive(a, b Ref) {
	m.constraints = append(m.constraints, atMostOne{vars: []Ref{a, b}})
}

// AddBlockExclusivityConstraints adds an AtMostOneOf constraint for every
// source block claimed by more than one registered candidate, so no two
// selected candidates can ever consume the same block. Composite candidates
// contribute no direct term (their SourceBlocks is empty); the exclusivity
// of their children carries the same guarantee transitively.
func (m *Model) AddBlockExclusivityConstraints() {
	byBlock := map[int][]Ref{}
	for _, ref := range m.order {
		for _, b := range m.sourceBlocks[ref] {
			byBlock[b] = append(byBlock[b], ref)
		}
	}
	blockIDs := make([]int, 0, len(byBlock))
	for id := range byBlock {
		blockIDs = append(blockIDs, id)
	}
	sort.Ints(blockIDs)
	for _, id := range blockIDs {
		refs := byBlock[id]
		if len(refs) > 1 {
			m.AtMostOneOf(refs)
		}
	}
}

func dedupe(refs []Ref) []Ref {
	seen := map[Ref]bool{}
	out := make([]Ref, 0, len(refs))
	for _, r := range refs {
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}

func sortedRefs(refs []Ref) []Ref {
	out := make([]Ref, len(refs))
	copy(out, refs)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Label != out[j].Label {
			return out[i].Label < out[j].Label
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}
