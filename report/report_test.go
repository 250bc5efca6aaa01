package report

import (
	"testing"

	"github.com/tsawler/legoclassify/candidate"
	"github.com/tsawler/legoclassify/element"
	"github.com/tsawler/legoclassify/geometry"
)

type fixedScore float64

func (f fixedScore) Score() float64 { return float64(f) }

func TestBuildReportsUnprocessedBlocks(t *testing.T) {
	box := geometry.MustBBox(0, 0, 10, 10)
	c, _ := candidate.NewAtomicCandidate[element.PageNumber]("page_number", element.TypePageNumber, box, 0.9, fixedScore(0.9), []int{1})

	result := candidate.NewResult(1)
	result.AddCandidate(c)

	rep := Build(result, []int{1, 2, 3}, nil)

	if len(rep.UnprocessedBlocks) != 3 {
		t.Errorf("expected all 3 blocks unprocessed (nothing built), got %v", rep.UnprocessedBlocks)
	}
	if rep.Stats.CandidateCount != 1 {
		t.Errorf("expected 1 candidate in stats, got %d", rep.Stats.CandidateCount)
	}
}

func TestBuildMarksConsumedBlocksAfterBuild(t *testing.T) {
	box := geometry.MustBBox(0, 0, 10, 10)
	c, _ := candidate.NewAtomicCandidate[element.PageNumber]("page_number", element.TypePageNumber, box, 0.9, fixedScore(0.9), []int{1})

	result := candidate.NewResult(1)
	result.RegisterBuilder("page_number", buildPageNumberStub{})
	result.AddCandidate(c)

	if _, err := result.Build(c); err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}

	rep := Build(result, []int{1, 2}, nil)
	if len(rep.ConsumedBlocks) != 1 || rep.ConsumedBlocks[0] != 1 {
		t.Errorf("expected block 1 consumed, got %v", rep.ConsumedBlocks)
	}
	if len(rep.UnprocessedBlocks) != 1 || rep.UnprocessedBlocks[0] != 2 {
		t.Errorf("expected block 2 unprocessed, got %v", rep.UnprocessedBlocks)
	}
	if rep.Stats.BuiltCount != 1 {
		t.Errorf("expected 1 built candidate, got %d", rep.Stats.BuiltCount)
	}
}

type buildPageNumberStub struct{}

func (buildPageNumberStub) Build(c candidate.AnyCandidate, result *candidate.Result) (element.Element, error) {
	return element.PageNumber{}, nil
}
