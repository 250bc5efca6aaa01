package classifiers

import (
	"testing"

	"github.com/tsawler/legoclassify/block"
	"github.com/tsawler/legoclassify/candidate"
	"github.com/tsawler/legoclassify/element"
	"github.com/tsawler/legoclassify/geometry"
	"github.com/tsawler/legoclassify/hints"
)

func TestDividerClassifierScoresThinWhiteLine(t *testing.T) {
	box := geometry.MustBBox(20, 100, 480, 101)
	white := block.Color{R: 255, G: 255, B: 255}
	drawing := block.Drawing{BlockID: 1, Box: box, StrokeColor: &white}
	page := mustPage(t, []block.Block{drawing})

	result := candidate.NewResult(1)
	DividerClassifier{}.Score(page, hints.DocumentHints{}, result)

	cands := result.Candidates("divider")
	if len(cands) != 1 {
		t.Fatalf("expected 1 divider candidate, got %d", len(cands))
	}
	if cands[0].Score() <= 0.5 {
		t.Errorf("expected a high score for a thin white line, got %v", cands[0].Score())
	}
}

func TestDividerClassifierIgnoresThickColoredBlock(t *testing.T) {
	box := geometry.MustBBox(0, 0, 100, 100)
	red := block.Color{R: 220, G: 20, B: 20}
	drawing := block.Drawing{BlockID: 1, Box: box, FillColor: &red}
	page := mustPage(t, []block.Block{drawing})

	result := candidate.NewResult(1)
	DividerClassifier{}.Score(page, hints.DocumentHints{}, result)

	if len(result.Candidates("divider")) != 0 {
		t.Errorf("expected no divider candidates for a thick colored block")
	}
}

func TestBackgroundClassifierRequiresLargeCoverage(t *testing.T) {
	full := geometry.MustBBox(0, 0, 600, 800)
	drawing := block.Drawing{BlockID: 1, Box: full}
	page := mustPage(t, []block.Block{drawing})

	result := candidate.NewResult(1)
	BackgroundClassifier{}.Score(page, hints.DocumentHints{}, result)

	cands := result.Candidates("background")
	if len(cands) != 1 {
		t.Fatalf("expected 1 background candidate, got %d", len(cands))
	}

	result.RegisterBuilder("background", BackgroundClassifier{})
	el, err := result.Build(cands[0])
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	if _, ok := el.(element.Background); !ok {
		t.Fatalf("expected element.Background, got %T", el)
	}
}

func TestDiagramClassifierScoresMidSizedImage(t *testing.T) {
	box := geometry.MustBBox(50, 50, 300, 300)
	img := block.Image{BlockID: 1, Box: box}
	page := mustPage(t, []block.Block{img})

	result := candidate.NewResult(1)
	DiagramClassifier{}.Score(page, hints.DocumentHints{}, result)

	if len(result.Candidates("diagram")) != 1 {
		t.Fatalf("expected 1 diagram candidate, got %d", len(result.Candidates("diagram")))
	}
}

func TestDiagramClassifierIgnoresTinyImage(t *testing.T) {
	box := geometry.MustBBox(0, 0, 10, 10)
	img := block.Image{BlockID: 1, Box: box}
	page := mustPage(t, []block.Block{img})

	result := candidate.NewResult(1)
	DiagramClassifier{}.Score(page, hints.DocumentHints{}, result)

	if len(result.Candidates("diagram")) != 0 {
		t.Errorf("expected no diagram candidate for a thumbnail-sized image")
	}
}
