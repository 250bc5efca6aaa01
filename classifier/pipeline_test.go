package classifier

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tsawler/legoclassify/block"
	"github.com/tsawler/legoclassify/candidate"
	"github.com/tsawler/legoclassify/config"
	"github.com/tsawler/legoclassify/element"
	"github.com/tsawler/legoclassify/geometry"
	"github.com/tsawler/legoclassify/hints"
)

type fixedScore float64

func (f fixedScore) Score() float64 { return float64(f) }

// pageNumberClassifier is a minimal Classifier fixture: it scores a
// candidate for every text block reading "7" and builds a PageNumber from it.
type pageNumberClassifier struct{}

func (pageNumberClassifier) Output() string   { return "page_number" }
func (pageNumberClassifier) Requires() []string { return nil }

func (pageNumberClassifier) Score(page *block.PageData, _ hints.DocumentHints, result *candidate.Result) {
	for _, b := range page.Blocks() {
		text, ok := b.(block.Text)
		if !ok || text.Text != "7" {
			continue
		}
		c, err := candidate.NewAtomicCandidate[element.PageNumber]("page_number", element.TypePageNumber, text.Box, 0.95, fixedScore(0.95), []int{b.ID()})
		if err != nil {
			continue
		}
		result.AddCandidate(c)
	}
}

func (pageNumberClassifier) Build(c candidate.AnyCandidate, _ *candidate.Result) (element.Element, error) {
	return element.PageNumber{BBox: c.BBox(), Value: 7}, nil
}

func TestPipelineClassifiesPageNumber(t *testing.T) {
	box := geometry.MustBBox(10, 10, 20, 20)
	textBlock := block.Text{BlockID: 1, Box: box, Text: "7", FontSize: 10}

	page, err := block.NewPageData(1, 500, 700, []block.Block{textBlock})
	if err != nil {
		t.Fatalf("unexpected page construction error: %v", err)
	}

	p, err := NewPipeline([]Classifier{pageNumberClassifier{}}, config.DefaultSolverConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected pipeline construction error: %v", err)
	}

	pg, rep, err := p.ClassifyPage(context.Background(), page, hints.DocumentHints{})
	if err != nil {
		t.Fatalf("unexpected classify error: %v", err)
	}

	if pg.PageNumber == nil {
		t.Fatal("expected PageNumber to be populated")
	}
	if pg.PageNumber.Value != 7 {
		t.Errorf("expected page number 7, got %d", pg.PageNumber.Value)
	}
	if rep.Stats.BuiltCount != 1 {
		t.Errorf("expected 1 built candidate in report, got %d", rep.Stats.BuiltCount)
	}
	if len(rep.UnprocessedBlocks) != 0 {
		t.Errorf("expected no unprocessed blocks, got %v", rep.UnprocessedBlocks)
	}
}

func TestPipelineRejectsDuplicateOutputLabel(t *testing.T) {
	_, err := NewPipeline([]Classifier{pageNumberClassifier{}, pageNumberClassifier{}}, config.DefaultSolverConfig(), zerolog.Nop())
	if err == nil {
		t.Error("expected duplicate output label to be rejected at construction")
	}
}
