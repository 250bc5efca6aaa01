package classifiers

import (
	"testing"

	"github.com/tsawler/legoclassify/block"
	"github.com/tsawler/legoclassify/candidate"
	"github.com/tsawler/legoclassify/element"
	"github.com/tsawler/legoclassify/geometry"
	"github.com/tsawler/legoclassify/hints"
)

func TestPartClassifierPairsCountAboveImage(t *testing.T) {
	imageBox := geometry.MustBBox(10, 10, 50, 50)
	countBox := geometry.MustBBox(15, 52, 45, 64)

	countCand, err := candidate.NewAtomicCandidate[element.PartCount](
		"part_count", element.TypePartCount, countBox, 0.8, partCountScore{value: 0.8, Count: 2}, []int{1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	imageCand, err := candidate.NewAtomicCandidate[element.PartImage](
		"part_image", element.TypePartImage, imageBox, 0.55, intrinsicScore(0.55), []int{2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result := candidate.NewResult(1)
	result.AddCandidate(countCand)
	result.AddCandidate(imageCand)

	page, err := block.NewPageData(1, 600, 800, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	PartClassifier{}.Score(page, hints.DocumentHints{}, result)

	parts := result.Candidates("part")
	if len(parts) != 1 {
		t.Fatalf("expected 1 part candidate, got %d", len(parts))
	}

	result.RegisterBuilder("part_count", fixedCountBuilder{})
	result.RegisterBuilder("part_image", fixedImageBuilder{})
	result.RegisterBuilder("part", PartClassifier{})

	el, err := result.Build(parts[0])
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	part := el.(element.Part)
	if part.Count.Count != 2 {
		t.Errorf("expected count 2, got %d", part.Count.Count)
	}
	if part.Image == nil {
		t.Error("expected image to be populated")
	}
}

type fixedCountBuilder struct{}

func (fixedCountBuilder) Build(c candidate.AnyCandidate, _ *candidate.Result) (element.Element, error) {
	d := c.ScoreDetails().(partCountScore)
	return element.PartCount{BBox: c.BBox(), Count: d.Count}, nil
}

type fixedImageBuilder struct{}

func (fixedImageBuilder) Build(c candidate.AnyCandidate, _ *candidate.Result) (element.Element, error) {
	return element.PartImage{BBox: c.BBox()}, nil
}

func TestPartsListClassifierGroupsContainedParts(t *testing.T) {
	containerBox := geometry.MustBBox(0, 0, 200, 200)
	partBox := geometry.MustBBox(10, 10, 60, 60)

	partCand := candidate.NewCompositeCandidate[element.Part]("part", element.TypePart, partBox, 0.7, partScore{value: 0.7})

	result := candidate.NewResult(1)
	result.AddCandidate(partCand)

	drawing := block.Drawing{BlockID: 1, Box: containerBox}
	page, err := block.NewPageData(1, 600, 800, []block.Block{drawing})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	PartsListClassifier{}.Score(page, hints.DocumentHints{}, result)

	lists := result.Candidates("parts_list")
	if len(lists) != 1 {
		t.Fatalf("expected 1 parts_list candidate, got %d", len(lists))
	}
}

func TestStepClassifierPairsStepNumberWithNearbyPartsList(t *testing.T) {
	stepNumBox := geometry.MustBBox(0, 0, 20, 20)
	partsListBox := geometry.MustBBox(30, 0, 100, 100)

	stepNumCand, err := candidate.NewAtomicCandidate[element.StepNumber](
		"step_number", element.TypeStepNumber, stepNumBox, 0.9, stepNumberScore{value: 0.9, Value: 3}, []int{1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	partsListCand := candidate.NewCompositeCandidate[element.PartsList](
		"parts_list", element.TypePartsList, partsListBox, 0.8, partsListScore{value: 0.8})

	result := candidate.NewResult(1)
	result.AddCandidate(stepNumCand)
	result.AddCandidate(partsListCand)

	page, err := block.NewPageData(1, 600, 800, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	StepClassifier{}.Score(page, hints.DocumentHints{}, result)

	steps := result.Candidates("step")
	if len(steps) != 1 {
		t.Fatalf("expected 1 step candidate, got %d", len(steps))
	}
	details := steps[0].ScoreDetails().(stepScore)
	if !details.PartsList.Present {
		t.Error("expected the nearby parts_list to be referenced")
	}
}

func TestOpenBagClassifierPairsGlyphWithNearestBagNumber(t *testing.T) {
	glyphBox := geometry.MustBBox(10, 10, 35, 35)
	bagNumBox := geometry.MustBBox(40, 10, 60, 30)

	bagNumCand, err := candidate.NewAtomicCandidate[element.BagNumber](
		"bag_number", element.TypeBagNumber, bagNumBox, 0.6, bagNumberScore{value: 0.6, Value: 1}, []int{1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result := candidate.NewResult(1)
	result.AddCandidate(bagNumCand)

	drawing := block.Drawing{BlockID: 2, Box: glyphBox}
	page, err := block.NewPageData(1, 600, 800, []block.Block{drawing})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	OpenBagClassifier{}.Score(page, hints.DocumentHints{}, result)

	openBags := result.Candidates("open_bag")
	if len(openBags) != 1 {
		t.Fatalf("expected 1 open_bag candidate, got %d", len(openBags))
	}
}

func TestSubAssemblyClassifierRequiresNestedDrawingsAndStepCount(t *testing.T) {
	containerBox := geometry.MustBBox(0, 0, 150, 150)
	nestedBox := geometry.MustBBox(10, 10, 50, 50)
	textBox := geometry.MustBBox(60, 60, 80, 80)

	light := block.Color{R: 240, G: 240, B: 240}
	container := block.Drawing{BlockID: 1, Box: containerBox, FillColor: &light}
	nested := block.Drawing{BlockID: 2, Box: nestedBox}
	text := block.Text{BlockID: 3, Box: textBox, Text: "2", FontSize: 8}

	page, err := block.NewPageData(1, 600, 800, []block.Block{container, nested, text})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result := candidate.NewResult(1)
	SubAssemblyClassifier{}.Score(page, hints.DocumentHints{}, result)

	cands := result.Candidates("sub_assembly")
	if len(cands) != 1 {
		t.Fatalf("expected 1 sub_assembly candidate, got %d", len(cands))
	}

	result.RegisterBuilder("sub_assembly", SubAssemblyClassifier{})
	el, err := result.Build(cands[0])
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	sa := el.(element.SubAssembly)
	if sa.StepCount != 2 {
		t.Errorf("expected step count 2, got %d", sa.StepCount)
	}
}
