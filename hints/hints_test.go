package hints

import (
	"testing"

	"github.com/tsawler/legoclassify/block"
	"github.com/tsawler/legoclassify/geometry"
)

func mustPage(t *testing.T, index int, blocks []block.Block) *block.PageData {
	t.Helper()
	pd, err := block.NewPageData(index, 600, 800, blocks)
	if err != nil {
		t.Fatalf("unexpected error building page: %v", err)
	}
	return pd
}

func TestBuildTextHistogramBucketsByPattern(t *testing.T) {
	page := mustPage(t, 5, []block.Block{
		block.Text{BlockID: 1, Box: geometry.MustBBox(0, 0, 10, 10), Text: "2x", FontSize: 8},
		block.Text{BlockID: 2, Box: geometry.MustBBox(0, 0, 10, 10), Text: "1234567", FontSize: 6},
		block.Text{BlockID: 3, Box: geometry.MustBBox(0, 0, 10, 10), Text: "5", FontSize: 10},
		block.Text{BlockID: 4, Box: geometry.MustBBox(0, 0, 10, 10), Text: "42", FontSize: 14},
	})

	h := BuildTextHistogram([]*block.PageData{page})

	if h.PartCountFontSizes[8] != 1 {
		t.Errorf("expected one part-count sample at size 8, got %d", h.PartCountFontSizes[8])
	}
	if h.ElementIDFontSizes[6] != 1 {
		t.Errorf("expected one element-id sample at size 6, got %d", h.ElementIDFontSizes[6])
	}
	if h.PageNumberFontSizes[10] != 1 {
		t.Errorf("expected one page-number sample at size 10 (page 5, text '5'), got %d", h.PageNumberFontSizes[10])
	}
	if h.RemainingFontSizes[14] != 1 {
		t.Errorf("expected one remaining sample at size 14, got %d", h.RemainingFontSizes[14])
	}
}

func TestBuildHintsAssignsTopThreePartCountSizesInOrder(t *testing.T) {
	var blocks []block.Block
	id := 1
	add := func(text string, size float64, times int) {
		for i := 0; i < times; i++ {
			blocks = append(blocks, block.Text{BlockID: id, Box: geometry.MustBBox(0, 0, 10, 10), Text: text, FontSize: size})
			id++
		}
	}
	// Most frequent: size 8 (5x), then size 10 (3x), then size 6 (1x).
	add("2x", 8, 5)
	add("3x", 10, 3)
	add("4x", 6, 1)

	page := mustPage(t, 1, blocks)
	h := BuildHints([]*block.PageData{page})

	if h.PartCountSize == nil || *h.PartCountSize != 8 {
		t.Fatalf("expected PartCountSize 8, got %v", h.PartCountSize)
	}
	if h.CatalogPartCountSize == nil || *h.CatalogPartCountSize != 10 {
		t.Fatalf("expected CatalogPartCountSize 10, got %v", h.CatalogPartCountSize)
	}
	if h.StepNumberSize == nil || *h.StepNumberSize != 6 {
		t.Fatalf("expected StepNumberSize 6, got %v", h.StepNumberSize)
	}
}

func TestClassifyPageRole(t *testing.T) {
	catalogue := mustPage(t, 1, catalogueBlocks())
	if role := classifyPageRole(catalogue); role != PageRolePartsCatalogue {
		t.Errorf("expected PageRolePartsCatalogue, got %v", role)
	}
}

func catalogueBlocks() []block.Block {
	var blocks []block.Block
	id := 1
	for i := 0; i < 8; i++ {
		blocks = append(blocks,
			block.Image{BlockID: id, Box: geometry.MustBBox(0, 0, 10, 10)},
			block.Text{BlockID: id + 1, Box: geometry.MustBBox(0, 12, 10, 20), Text: "2x", FontSize: 8},
		)
		id += 2
	}
	return blocks
}
