package classifier

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/tsawler/legoclassify/block"
	"github.com/tsawler/legoclassify/candidate"
	"github.com/tsawler/legoclassify/config"
	"github.com/tsawler/legoclassify/constraint"
	"github.com/tsawler/legoclassify/element"
	"github.com/tsawler/legoclassify/hints"
	"github.com/tsawler/legoclassify/metrics"
	"github.com/tsawler/legoclassify/report"
	"github.com/tsawler/legoclassify/schema"
)

// scoreScale converts a [0,1] float score into the integer weight the
// solver's objective sums: scores are scaled to integer weights (×1000) for
// the solver.
const scoreScale = 1000

// Pipeline runs a fixed, validated set of classifiers over pages, one page
// at a time: a single struct wrapping a staged, numbered pipeline over one
// config, driving the score → solve → build → assemble stages in turn.
type Pipeline struct {
	classifiers []Classifier // topologically sorted, deterministic
	cfg         config.SolverConfig
	log         zerolog.Logger
}

// NewPipeline validates classifiers (unique output labels, declared
// requires, no cycle) and fixes their run order once at construction.
func NewPipeline(classifiers []Classifier, cfg config.SolverConfig, log zerolog.Logger) (*Pipeline, error) {
	order, err := topologicalSort(classifiers)
	if err != nil {
		return nil, err
	}
	return &Pipeline{classifiers: order, cfg: cfg, log: log}, nil
}

// ClassifyPage runs every stage over one page: clear state (a fresh
// Result), score every classifier in topological order, solve (with
// build-failure retry), build winners, assemble the element tree, run
// spatial assignment, and return the Page plus its diagnostic report.
func (p *Pipeline) ClassifyPage(ctx context.Context, page *block.PageData, docHints hints.DocumentHints) (element.Page, report.ClassificationReport, error) {
	start := time.Now()
	result := candidate.NewResult(page.Index())
	for _, c := range p.classifiers {
		result.RegisterBuilder(c.Output(), c)
	}

	for _, c := range p.classifiers {
		before := len(result.Candidates(c.Output()))
		c.Score(page, docHints, result)
		metrics.IncCandidatesScored(c.Output(), len(result.Candidates(c.Output()))-before)
	}

	outcome := "ok"
	selected, err := p.solveAndBuild(ctx, result)
	if err != nil {
		outcome = "infeasible"
		p.log.Warn().Int("page", page.Index()).Err(err).Msg("classification solve failed, emitting degraded page")
		result.AddWarning(fmt.Sprintf("solver did not converge: %v", err))
	} else if len(result.Warnings()) > 0 {
		outcome = "degraded"
	}

	pg := assemble(page, result, selected)

	allIDs := make([]int, 0, len(page.Blocks()))
	for _, b := range page.Blocks() {
		allIDs = append(allIDs, b.ID())
	}
	rep := report.Build(result, allIDs, selected)

	metrics.ObservePage(outcome, time.Since(start), len(rep.UnprocessedBlocks))
	return pg, rep, nil
}

// solveAndBuild runs the constraint solver (or the greedy fallback for
// labels outside cfg.SolverLabels), builds every selection, and retries
// with the offending candidate forbidden when a build fails, up to
// cfg.BuildRetryBudget times.
func (p *Pipeline) solveAndBuild(ctx context.Context, result *candidate.Result) (map[candidate.Ref]bool, error) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.PerPageTimeout)
	defer cancel()

	greedySelected, greedyConsumed := p.runGreedyFallback(result)

	model := p.buildModel(result, greedyConsumed)

	var solverSelected map[candidate.Ref]bool
	exhausted := false
	for attempt := 0; ; attempt++ {
		sol := model.Solve(ctx)
		if !sol.Feasible {
			if attempt == 0 {
				return greedySelected, fmt.Errorf("constraint solver found no feasible solution")
			}
			break
		}
		solverSelected = sol.Selected

		failedRef, ok := p.buildSelected(result, solverSelected)
		if !ok {
			break
		}
		if attempt >= p.cfg.BuildRetryBudget {
			exhausted = true
			break
		}
		metrics.IncBuildRetry()
		model.Forbid(failedRef)
	}
	if exhausted {
		result.AddWarning(fmt.Sprintf("build retry budget (%d) exhausted, emitting best-effort page", p.cfg.BuildRetryBudget))
	}

	merged := make(map[candidate.Ref]bool, len(greedySelected)+len(solverSelected))
	for ref, v := range greedySelected {
		merged[ref] = v
	}
	for ref, v := range solverSelected {
		merged[ref] = v
	}
	return merged, nil
}

// buildModel registers every solver-eligible candidate as a variable,
// generates structural constraints via schema.Generate, lets classifiers
// declare their own semantic constraints, and closes with block
// exclusivity.
func (p *Pipeline) buildModel(result *candidate.Result, reservedBlocks map[int]bool) *constraint.Model {
	model := constraint.NewModel(int(math.Round(p.cfg.UnconsumedPenalty * scoreScale)))

	for _, c := range p.classifiers {
		label := c.Output()
		if !p.cfg.UsesSolverFor(label) {
			continue
		}
		for _, cand := range result.Candidates(label) {
			if blocksOverlap(cand.SourceBlocks(), reservedBlocks) {
				continue
			}
			ref := candidate.Ref{Label: cand.Label(), ID: cand.ID()}
			weight := int(math.Round(cand.Score() * scoreScale))
			model.AddCandidate(ref, weight, cand.SourceBlocks())
		}
	}

	for _, c := range p.classifiers {
		label := c.Output()
		if !p.cfg.UsesSolverFor(label) {
			continue
		}
		var rules schema.Rules
		if ruler, ok := c.(SchemaRuler); ok {
			rules = ruler.SchemaRules()
		}
		if err := schema.Generate(label, result, model, rules); err != nil {
			p.log.Warn().Str("label", label).Err(err).Msg("schema constraint generation failed")
		}
		if declarer, ok := c.(ConstraintDeclarer); ok {
			declarer.DeclareConstraints(result, model)
		}
	}

	model.AddBlockExclusivityConstraints()
	return model
}

// buildSelected attempts Result.Build for every candidate the solver
// turned on, topological-order by label. It returns the ref of the first
// candidate whose Build call fails (so the caller can Forbid it and
// re-solve) and false once every selected candidate either built
// successfully or there was nothing left to try.
func (p *Pipeline) buildSelected(result *candidate.Result, selected map[candidate.Ref]bool) (candidate.Ref, bool) {
	for _, c := range p.classifiers {
		label := c.Output()
		for _, cand := range sortedCandidates(result.Candidates(label)) {
			ref := candidate.Ref{Label: cand.Label(), ID: cand.ID()}
			if !selected[ref] {
				continue
			}
			if _, ok := cand.BuiltElement(); ok {
				continue
			}
			if cand.FailureReason() != "" {
				continue
			}
			if _, err := result.Build(cand); err != nil {
				return ref, true
			}
		}
	}
	return candidate.Ref{}, false
}

// runGreedyFallback selects, for every label outside cfg.SolverLabels, the
// highest-scoring candidates in descending score order, skipping any whose
// source blocks a higher-priority pick (in this or an earlier greedy
// label, processed alphabetically for determinism) already claimed. Labels
// outside the solver's scope fall back to this greedy highest-score-first
// selection, still respecting block exclusivity.
func (p *Pipeline) runGreedyFallback(result *candidate.Result) (map[candidate.Ref]bool, map[int]bool) {
	selected := map[candidate.Ref]bool{}
	consumed := map[int]bool{}

	labels := make([]string, 0, len(p.classifiers))
	for _, c := range p.classifiers {
		if !p.cfg.UsesSolverFor(c.Output()) {
			labels = append(labels, c.Output())
		}
	}
	sort.Strings(labels)

	for _, label := range labels {
		for _, cand := range result.ScoredCandidates(label, 0, false) {
			if blocksOverlap(cand.SourceBlocks(), consumed) {
				continue
			}
			ref := candidate.Ref{Label: cand.Label(), ID: cand.ID()}
			selected[ref] = true
			for _, id := range cand.SourceBlocks() {
				consumed[id] = true
			}
		}
	}
	return selected, consumed
}

func blocksOverlap(blocks []int, reserved map[int]bool) bool {
	for _, id := range blocks {
		if reserved[id] {
			return true
		}
	}
	return false
}

func sortedCandidates(cands []candidate.AnyCandidate) []candidate.AnyCandidate {
	out := append([]candidate.AnyCandidate(nil), cands...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID().String() < out[j].ID().String() })
	return out
}
