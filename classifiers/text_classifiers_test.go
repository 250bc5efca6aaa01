package classifiers

import (
	"testing"

	"github.com/tsawler/legoclassify/block"
	"github.com/tsawler/legoclassify/candidate"
	"github.com/tsawler/legoclassify/element"
	"github.com/tsawler/legoclassify/geometry"
	"github.com/tsawler/legoclassify/hints"
)

func mustPage(t *testing.T, blocks []block.Block) *block.PageData {
	t.Helper()
	pd, err := block.NewPageData(1, 600, 800, blocks)
	if err != nil {
		t.Fatalf("unexpected page construction error: %v", err)
	}
	return pd
}

func TestPageNumberClassifierScoresAndBuilds(t *testing.T) {
	box := geometry.MustBBox(0, 780, 40, 798)
	text := block.Text{BlockID: 1, Box: box, Text: "42", FontSize: 10}
	page := mustPage(t, []block.Block{text})

	hintSize := 10.0
	docHints := hints.DocumentHints{PageNumberSize: &hintSize}

	result := candidate.NewResult(1)
	PageNumberClassifier{}.Score(page, docHints, result)

	cands := result.Candidates("page_number")
	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(cands))
	}
	if cands[0].Score() <= 0.9 {
		t.Errorf("expected high score for exact font match, got %v", cands[0].Score())
	}

	result.RegisterBuilder("page_number", PageNumberClassifier{})
	el, err := result.Build(cands[0])
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	pn, ok := el.(element.PageNumber)
	if !ok {
		t.Fatalf("expected element.PageNumber, got %T", el)
	}
	if pn.Value != 42 {
		t.Errorf("expected value 42, got %d", pn.Value)
	}
}

func TestPageNumberClassifierIgnoresNonMatchingText(t *testing.T) {
	box := geometry.MustBBox(0, 0, 40, 20)
	text := block.Text{BlockID: 1, Box: box, Text: "2x", FontSize: 10}
	page := mustPage(t, []block.Block{text})

	result := candidate.NewResult(1)
	PageNumberClassifier{}.Score(page, hints.DocumentHints{}, result)

	if len(result.Candidates("page_number")) != 0 {
		t.Errorf("expected no candidates for non-numeric text")
	}
}

func TestBagNumberClassifierBuildsValue(t *testing.T) {
	box := geometry.MustBBox(0, 0, 20, 20)
	text := block.Text{BlockID: 1, Box: box, Text: "03", FontSize: 9}
	page := mustPage(t, []block.Block{text})

	result := candidate.NewResult(1)
	BagNumberClassifier{}.Score(page, hints.DocumentHints{}, result)

	cands := result.Candidates("bag_number")
	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(cands))
	}

	result.RegisterBuilder("bag_number", BagNumberClassifier{})
	el, err := result.Build(cands[0])
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	bn := el.(element.BagNumber)
	if bn.Value != 3 {
		t.Errorf("expected value 3, got %d", bn.Value)
	}
}

func TestPieceLengthClassifierExtractsStuds(t *testing.T) {
	box := geometry.MustBBox(0, 0, 20, 20)
	text := block.Text{BlockID: 1, Box: box, Text: "6 studs", FontSize: 7}
	page := mustPage(t, []block.Block{text})

	result := candidate.NewResult(1)
	PieceLengthClassifier{}.Score(page, hints.DocumentHints{}, result)

	cands := result.Candidates("piece_length")
	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(cands))
	}

	result.RegisterBuilder("piece_length", PieceLengthClassifier{})
	el, err := result.Build(cands[0])
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	pl := el.(element.PieceLength)
	if pl.Studs != 6 {
		t.Errorf("expected 6 studs, got %d", pl.Studs)
	}
}
