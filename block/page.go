package block

import "fmt"

// PageData is the immutable, per-page input to the classification core. It
// is frozen after extraction: NewPageData is the only way to build one, and
// its fields are read-only from the caller's perspective (Go cannot enforce
// that at compile time for slices, so callers must treat Blocks() as
// read-only by convention rather than by the compiler).
type PageData struct {
	index  int // 1-based page number
	width  float64
	height float64
	blocks []Block

	// Dropped holds blocks the extractor supplied with invalid bboxes,
	// already filtered out of blocks, with the reason each was dropped.
	// Kept for diagnostics only.
	Dropped []DroppedBlock
}

// DroppedBlock records a block that failed validation during ingestion.
type DroppedBlock struct {
	ID     int
	Reason string
}

// NewPageData validates and freezes a page's blocks. Blocks with invalid
// geometry have already been excluded by the caller (typically
// block.ValidateBlocks); NewPageData itself only asserts structural
// invariants (positive dimensions, no duplicate block ids) that indicate a
// defect in the extractor rather than a single bad block.
func NewPageData(index int, width, height float64, blocks []Block) (*PageData, error) {
	if index < 1 {
		return nil, fmt.Errorf("block: page index must be 1-based, got %d", index)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("block: page dimensions must be positive, got %gx%g", width, height)
	}

	seen := make(map[int]bool, len(blocks))
	for _, b := range blocks {
		if seen[b.ID()] {
			return nil, fmt.Errorf("block: duplicate block id %d on page %d", b.ID(), index)
		}
		seen[b.ID()] = true
	}

	frozen := make([]Block, len(blocks))
	copy(frozen, blocks)

	return &PageData{
		index:  index,
		width:  width,
		height: height,
		blocks: frozen,
	}, nil
}

// Index returns the 1-based page number.
func (p *PageData) Index() int { return p.index }

// Width returns the page width in points.
func (p *PageData) Width() float64 { return p.width }

// Height returns the page height in points.
func (p *PageData) Height() float64 { return p.height }

// Blocks returns the page's blocks in extractor order. The returned slice
// must not be mutated by callers.
func (p *PageData) Blocks() []Block { return p.blocks }

// BlockByID returns the block with the given id, or nil if not found.
func (p *PageData) BlockByID(id int) Block {
	for _, b := range p.blocks {
		if b.ID() == id {
			return b
		}
	}
	return nil
}

// BlocksOfKind returns every block on the page matching kind, in extractor
// order.
func (p *PageData) BlocksOfKind(kind Kind) []Block {
	var out []Block
	for _, b := range p.blocks {
		if b.Kind() == kind {
			out = append(out, b)
		}
	}
	return out
}

// ValidateBlocks partitions raw blocks into valid blocks and dropped
// blocks: a block with x0>x1 or y0>y1 geometry is dropped with a warning
// rather than failing the whole page. Callers should run this before
// NewPageData.
func ValidateBlocks(blocks []Block) (valid []Block, dropped []DroppedBlock) {
	for _, b := range blocks {
		box := b.BBox()
		if !box.IsValid() {
			dropped = append(dropped, DroppedBlock{
				ID:     b.ID(),
				Reason: fmt.Sprintf("invalid bbox %s", box),
			})
			continue
		}
		valid = append(valid, b)
	}
	return valid, dropped
}
