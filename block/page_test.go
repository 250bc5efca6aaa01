package block

import (
	"testing"

	"github.com/tsawler/legoclassify/geometry"
)

func TestValidateBlocksDropsInvalid(t *testing.T) {
	good := Text{BlockID: 1, Box: geometry.MustBBox(0, 0, 10, 10), Text: "5"}
	// Constructed directly (bypassing geometry.NewBBox) to simulate malformed
	// extractor output reaching the core.
	bad := Text{BlockID: 2, Box: geometry.BBox{X0: 10, Y0: 0, X1: 0, Y1: 10}, Text: "broken"}

	valid, dropped := ValidateBlocks([]Block{good, bad})

	if len(valid) != 1 || valid[0].ID() != 1 {
		t.Fatalf("expected one valid block with id 1, got %v", valid)
	}
	if len(dropped) != 1 || dropped[0].ID != 2 {
		t.Fatalf("expected block 2 to be dropped, got %v", dropped)
	}
}

func TestNewPageDataRejectsDuplicateIDs(t *testing.T) {
	a := Text{BlockID: 1, Box: geometry.MustBBox(0, 0, 10, 10), Text: "a"}
	b := Text{BlockID: 1, Box: geometry.MustBBox(0, 0, 10, 10), Text: "b"}

	_, err := NewPageData(1, 600, 800, []Block{a, b})
	if err == nil {
		t.Fatal("expected error for duplicate block id")
	}
}

func TestNewPageDataFreezesBlocks(t *testing.T) {
	a := Text{BlockID: 1, Box: geometry.MustBBox(0, 0, 10, 10), Text: "a"}
	src := []Block{a}

	pd, err := NewPageData(1, 600, 800, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	src[0] = Text{BlockID: 99, Box: geometry.MustBBox(0, 0, 10, 10), Text: "mutated"}
	if pd.Blocks()[0].ID() != 1 {
		t.Fatal("expected PageData to be frozen against mutation of the source slice")
	}
}

func TestBlocksOfKind(t *testing.T) {
	text := Text{BlockID: 1, Box: geometry.MustBBox(0, 0, 10, 10), Text: "a"}
	img := Image{BlockID: 2, Box: geometry.MustBBox(0, 0, 10, 10)}

	pd, err := NewPageData(1, 600, 800, []Block{text, img})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := pd.BlocksOfKind(KindText); len(got) != 1 {
		t.Fatalf("expected 1 text block, got %d", len(got))
	}
	if got := pd.BlocksOfKind(KindDrawing); len(got) != 0 {
		t.Fatalf("expected 0 drawing blocks, got %d", len(got))
	}
}
