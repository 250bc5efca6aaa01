// Package report assembles ClassificationReport, the debug/golden-file
// surface carrying every candidate (selected or not) with its score and
// rejection reason, the consumed and unprocessed block sets, and warnings —
// a result struct carrying both the final output and a flat stats summary
// alongside it.
package report

import (
	"sort"

	"github.com/tsawler/legoclassify/candidate"
)

// CandidateEntry is one candidate's reporting record: whether the solver
// (or greedy fallback) selected it, and if not, why.
type CandidateEntry struct {
	Label         string   `json:"label"`
	ID            string   `json:"id"`
	Score         float64  `json:"score"`
	Selected      bool     `json:"selected"`
	Built         bool     `json:"built"`
	FailureReason string   `json:"failure_reason,omitempty"`
	SourceBlocks  []int    `json:"source_blocks,omitempty"`
	Composite     bool     `json:"composite"`
}

// ClassificationReport is the per-page diagnostic output.
type ClassificationReport struct {
	PageIndex int `json:"page_index"`

	// Candidates lists every candidate considered for the page, selected
	// or not.
	Candidates []CandidateEntry `json:"candidates"`

	// ConsumedBlocks is the set of block ids claimed by a built, winning
	// candidate.
	ConsumedBlocks []int `json:"consumed_blocks"`

	// UnprocessedBlocks is every block id on the page that no winning
	// candidate claimed.
	UnprocessedBlocks []int `json:"unprocessed_blocks"`

	Warnings []string `json:"warnings,omitempty"`

	Stats Stats `json:"stats"`
}

// Stats summarizes the report's candidate population, mirroring
// AnalysisStats's flat-counts style.
type Stats struct {
	CandidateCount int `json:"candidate_count"`
	SelectedCount  int `json:"selected_count"`
	BuiltCount     int `json:"built_count"`
	FailedCount    int `json:"failed_count"`
}

// Build assembles a ClassificationReport from result, the set of block ids
// present on the page, and the solver's selected set (nil/empty if the page
// used the greedy fallback exclusively — selection is then read off each
// candidate's built state instead).
func Build(result *candidate.Result, allBlockIDs []int, selected map[candidate.Ref]bool) ClassificationReport {
	rep := ClassificationReport{PageIndex: result.PageIndex()}

	all := result.AllCandidates()
	labels := make([]string, 0, len(all))
	for label := range all {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		cands := all[label]
		sort.Slice(cands, func(i, j int) bool { return cands[i].ID().String() < cands[j].ID().String() })
		for _, c := range cands {
			ref := candidate.Ref{Label: c.Label(), ID: c.ID()}
			_, built := c.BuiltElement()
			isSelected := built
			if selected != nil {
				if v, ok := selected[ref]; ok {
					isSelected = v
				}
			}

			entry := CandidateEntry{
				Label:         c.Label(),
				ID:            c.ID().String(),
				Score:         c.Score(),
				Selected:      isSelected,
				Built:         built,
				FailureReason: c.FailureReason(),
				SourceBlocks:  append([]int(nil), c.SourceBlocks()...),
				Composite:     c.IsComposite(),
			}
			rep.Candidates = append(rep.Candidates, entry)

			rep.Stats.CandidateCount++
			if entry.Selected {
				rep.Stats.SelectedCount++
			}
			if entry.Built {
				rep.Stats.BuiltCount++
			}
			if entry.FailureReason != "" {
				rep.Stats.FailedCount++
			}
		}
	}

	consumed := result.ConsumedBlocks()
	consumedIDs := make([]int, 0, len(consumed))
	for id := range consumed {
		consumedIDs = append(consumedIDs, id)
	}
	sort.Ints(consumedIDs)
	rep.ConsumedBlocks = consumedIDs

	consumedSet := consumed
	for _, id := range allBlockIDs {
		if !consumedSet[id] {
			rep.UnprocessedBlocks = append(rep.UnprocessedBlocks, id)
		}
	}
	sort.Ints(rep.UnprocessedBlocks)

	rep.Warnings = append(rep.Warnings, result.Warnings()...)

	return rep
}
