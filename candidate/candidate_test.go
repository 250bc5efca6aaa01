package candidate

import (
	"testing"

	"github.com/tsawler/legoclassify/element"
	"github.com/tsawler/legoclassify/geometry"
)

type fixedScore float64

func (f fixedScore) Score() float64 { return float64(f) }

func TestNewAtomicCandidateRequiresSourceBlocks(t *testing.T) {
	box := geometry.MustBBox(0, 0, 10, 10)
	_, err := NewAtomicCandidate[element.PageNumber]("page_number", element.TypePageNumber, box, 0.9, fixedScore(0.9), nil)
	if err == nil {
		t.Fatal("expected error constructing atomic candidate with no source blocks")
	}
}

func TestNewAtomicCandidateCopiesSourceBlocks(t *testing.T) {
	box := geometry.MustBBox(0, 0, 10, 10)
	blocks := []int{1, 2}
	c, err := NewAtomicCandidate[element.PageNumber]("page_number", element.TypePageNumber, box, 0.9, fixedScore(0.9), blocks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	blocks[0] = 99
	if c.SourceBlocks()[0] == 99 {
		t.Error("candidate should not alias the caller's source block slice")
	}
	if c.IsComposite() {
		t.Error("candidate with source blocks should not be composite")
	}
}

func TestNewCompositeCandidateHasNoSourceBlocks(t *testing.T) {
	box := geometry.MustBBox(0, 0, 10, 10)
	c := NewCompositeCandidate[element.Step]("step", element.TypeStep, box, 0.8, fixedScore(0.8))
	if !c.IsComposite() {
		t.Error("expected composite candidate")
	}
	if len(c.SourceBlocks()) != 0 {
		t.Errorf("expected no source blocks, got %v", c.SourceBlocks())
	}
}

func TestCandidateIsValidRequiresConstructedAndNoFailure(t *testing.T) {
	box := geometry.MustBBox(0, 0, 10, 10)
	c, _ := NewAtomicCandidate[element.PageNumber]("page_number", element.TypePageNumber, box, 0.9, fixedScore(0.9), []int{1})
	if c.IsValid() {
		t.Error("unbuilt candidate should not be valid")
	}

	if err := c.AcceptBuilt(element.PageNumber{BBox: box, Value: 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.IsValid() {
		t.Error("built candidate with no failure should be valid")
	}

	c.FailBuild("lost conflict")
	if c.IsValid() {
		t.Error("failed candidate should not be valid even if constructed")
	}
}

func TestAcceptBuiltRejectsWrongType(t *testing.T) {
	box := geometry.MustBBox(0, 0, 10, 10)
	c, _ := NewAtomicCandidate[element.PageNumber]("page_number", element.TypePageNumber, box, 0.9, fixedScore(0.9), []int{1})
	if err := c.AcceptBuilt(element.StepNumber{BBox: box, Value: 1}); err == nil {
		t.Error("expected type mismatch error")
	}
}
