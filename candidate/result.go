package candidate

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tsawler/legoclassify/element"
)

// Builder constructs the element a candidate represents, given whatever
// dependency candidates its ScoreDetails references. Each label has exactly
// one registered Builder (the classifier that scored it).
type Builder interface {
	Build(c AnyCandidate, result *Result) (element.Element, error)
}

// Result holds every candidate considered while classifying one page,
// successful or not, plus the bookkeeping build() needs to stay
// transactional: which blocks are consumed, and which classifier builds
// which label. It is the single piece of mutable state a classification run
// threads through score, solve, and build.
type Result struct {
	pageIndex      int
	candidates     map[string][]AnyCandidate
	builders       map[string]Builder
	consumedBlocks map[int]bool
	warnings       []string
}

// NewResult creates an empty Result for one page.
func NewResult(pageIndex int) *Result {
	return &Result{
		pageIndex:      pageIndex,
		candidates:     map[string][]AnyCandidate{},
		builders:       map[string]Builder{},
		consumedBlocks: map[int]bool{},
	}
}

func (r *Result) PageIndex() int { return r.pageIndex }

// RegisterBuilder associates a label with the Builder that constructs its
// candidates. Called once per label during pipeline setup.
func (r *Result) RegisterBuilder(label string, b Builder) {
	r.builders[label] = b
}

// AddCandidate records a newly scored candidate under its own label.
func (r *Result) AddCandidate(c AnyCandidate) {
	r.candidates[c.Label()] = append(r.candidates[c.Label()], c)
}

// Candidates returns a copy of every candidate recorded for label.
func (r *Result) Candidates(label string) []AnyCandidate {
	out := make([]AnyCandidate, len(r.candidates[label]))
	copy(out, r.candidates[label])
	return out
}

// CandidateByRef looks up a single candidate by its (label, id) reference,
// or returns nil if no such candidate was ever recorded. Builders use this
// to resolve the ChildRef/OptionRef/SequenceRef values in their own
// ScoreDetails back into the dependency candidate they must Build first.
func (r *Result) CandidateByRef(ref Ref) AnyCandidate {
	for _, c := range r.candidates[ref.Label] {
		if c.ID() == ref.ID {
			return c
		}
	}
	return nil
}

// AllCandidates returns every label's candidate slice, copied.
func (r *Result) AllCandidates() map[string][]AnyCandidate {
	out := make(map[string][]AnyCandidate, len(r.candidates))
	for label, cands := range r.candidates {
		copied := make([]AnyCandidate, len(cands))
		copy(copied, cands)
		out[label] = copied
	}
	return out
}

// ScoredCandidates returns label's candidates filtered by minScore and,
// when validOnly is set, restricted to already-valid (built, non-failed) candidates,
// sorted by descending score with a deterministic tie-break on first
// source block id, then candidate id. Classifiers that depend on another
// label's output call this during Score — never on raw blocks or built
// elements directly, always looking up a parent candidate by reference
// rather than a built element while scoring.
func (r *Result) ScoredCandidates(label string, minScore float64, validOnly bool) []AnyCandidate {
	src := r.candidates[label]
	out := make([]AnyCandidate, 0, len(src))
	for _, c := range src {
		if minScore > 0 && c.Score() < minScore {
			continue
		}
		if validOnly && !c.IsValid() {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score() != out[j].Score() {
			return out[i].Score() > out[j].Score()
		}
		bi, bj := firstBlock(out[i]), firstBlock(out[j])
		if bi != bj {
			return bi < bj
		}
		return out[i].ID().String() < out[j].ID().String()
	})
	return out
}

func firstBlock(c AnyCandidate) int {
	if len(c.SourceBlocks()) == 0 {
		return 0
	}
	return c.SourceBlocks()[0]
}

// Winners returns the built elements of type T for label, highest score
// first, enforcing that each source block contributes at most one winner
// (a programming error in a classifier otherwise). Composite candidates,
// carrying no source blocks, are exempt from the per-block uniqueness
// check. Pass maxCount <= 0 for no limit.
func Winners[T element.Element](r *Result, label string, maxCount int) []T {
	cands := r.candidates[label]
	ordered := make([]AnyCandidate, 0, len(cands))
	for _, c := range cands {
		if _, ok := c.BuiltElement(); ok {
			ordered = append(ordered, c)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Score() != ordered[j].Score() {
			return ordered[i].Score() > ordered[j].Score()
		}
		return firstBlock(ordered[i]) < firstBlock(ordered[j])
	})

	seenBlocks := map[int]bool{}
	out := make([]T, 0, len(ordered))
	for _, c := range ordered {
		el, _ := c.BuiltElement()
		typed, ok := el.(T)
		if !ok {
			continue
		}
		blocks := c.SourceBlocks()
		dup := false
		for _, id := range blocks {
			if seenBlocks[id] {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		for _, id := range blocks {
			seenBlocks[id] = true
		}
		out = append(out, typed)
		if maxCount > 0 && len(out) >= maxCount {
			break
		}
	}
	return out
}

type stateEntry struct {
	built         element.Element
	hasBuilt      bool
	failureReason string
}

func (r *Result) snapshot() (map[AnyCandidate]stateEntry, map[int]bool) {
	states := map[AnyCandidate]stateEntry{}
	for _, cands := range r.candidates {
		for _, c := range cands {
			built, ok := c.BuiltElement()
			states[c] = stateEntry{built: built, hasBuilt: ok, failureReason: c.FailureReason()}
		}
	}
	blocks := make(map[int]bool, len(r.consumedBlocks))
	for id, v := range r.consumedBlocks {
		blocks[id] = v
	}
	return states, blocks
}

func (r *Result) restore(states map[AnyCandidate]stateEntry, blocks map[int]bool) {
	for c, s := range states {
		c.RestoreState(s.built, s.hasBuilt, s.failureReason)
	}
	r.consumedBlocks = blocks
}

// Build constructs candidate via its registered Builder. An already-built
// or already-failed candidate returns its existing outcome without
// re-running the builder. If the builder fails, every candidate state
// change it made (including any nested Build calls on dependencies) is
// rolled back before the failure is reported, so a failed build never
// leaves partial, inconsistent state behind.
func (r *Result) Build(c AnyCandidate) (element.Element, error) {
	if el, ok := c.BuiltElement(); ok {
		return el, nil
	}
	if c.FailureReason() != "" {
		return nil, fmt.Errorf("candidate: %s", c.FailureReason())
	}

	for _, id := range c.SourceBlocks() {
		if r.consumedBlocks[id] {
			msg := fmt.Sprintf("block %d already consumed", id)
			c.FailBuild(msg)
			return nil, errors.New(msg)
		}
	}

	builder, ok := r.builders[c.Label()]
	if !ok {
		return nil, fmt.Errorf("candidate: no builder registered for label %q", c.Label())
	}

	states, blocks := r.snapshot()
	el, err := builder.Build(c, r)
	if err != nil {
		r.restore(states, blocks)
		c.FailBuild(err.Error())
		return nil, err
	}

	if err := c.AcceptBuilt(el); err != nil {
		r.restore(states, blocks)
		c.FailBuild(err.Error())
		return nil, err
	}

	for _, id := range c.SourceBlocks() {
		r.consumedBlocks[id] = true
	}
	r.failConflicting(c)

	return el, nil
}

// failConflicting marks every other not-yet-failed candidate sharing a
// source block with winner as failed, preventing a later Build call from
// double-consuming a block.
func (r *Result) failConflicting(winner AnyCandidate) {
	winnerBlocks := map[int]bool{}
	for _, id := range winner.SourceBlocks() {
		winnerBlocks[id] = true
	}
	if len(winnerBlocks) == 0 {
		return
	}

	for _, cands := range r.candidates {
		for _, c := range cands {
			if c == winner || c.FailureReason() != "" {
				continue
			}
			for _, id := range c.SourceBlocks() {
				if winnerBlocks[id] {
					c.FailBuild(fmt.Sprintf("lost conflict to %q (score=%.3f)", winner.Label(), winner.Score()))
					break
				}
			}
		}
	}
}

// ConsumedBlocks returns a copy of the set of block IDs consumed by
// successful builds so far.
func (r *Result) ConsumedBlocks() map[int]bool {
	out := make(map[int]bool, len(r.consumedBlocks))
	for id, v := range r.consumedBlocks {
		out[id] = v
	}
	return out
}

func (r *Result) AddWarning(msg string) {
	r.warnings = append(r.warnings, msg)
}

func (r *Result) Warnings() []string {
	out := make([]string, len(r.warnings))
	copy(out, r.warnings)
	return out
}
