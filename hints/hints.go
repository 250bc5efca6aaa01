package hints

import "github.com/tsawler/legoclassify/block"

// DocumentHints is the read-only, document-level aggregate every classifier
// may consult. It is computed once per document by BuildHints and never
// mutated afterward — the core has no other global state.
type DocumentHints struct {
	// FontSizes is the raw histogram of observed font sizes over all Text
	// blocks.
	FontSizes TextHistogram

	// PageNumberSize, StepNumberSize, PartCountSize, PartNumberSize are
	// modal/ranked font-size estimates for each well-known role, derived
	// from pattern-filtered subsets of FontSizes.
	PageNumberSize *float64
	StepNumberSize *float64
	PartCountSize  *float64
	PartNumberSize *float64

	// CatalogPartCountSize and CatalogElementIDSize support catalogue-style
	// parts-list pages, where part counts and element IDs use different
	// characteristic sizes than in-step callouts.
	CatalogPartCountSize *float64
	ElementIDSize        *float64

	// StepRepeatSize is the characteristic size of a "repeat this step"
	// annotation, the fourth-most-common part-count-pattern size.
	StepRepeatSize *float64

	// PageRoles classifies each page by its dominant content, derived from
	// the mix of block kinds and text patterns on it.
	PageRoles map[int]PageRole
}

// PageRole is a coarse classification of a page's overall purpose, used by
// classifiers that behave differently on, e.g., a parts-catalogue page than
// an assembly-step page.
type PageRole int

const (
	PageRoleUnknown PageRole = iota
	PageRoleAssemblyStep
	PageRolePartsCatalogue
	PageRoleFrontMatter
)

func (r PageRole) String() string {
	switch r {
	case PageRoleAssemblyStep:
		return "AssemblyStep"
	case PageRolePartsCatalogue:
		return "PartsCatalogue"
	case PageRoleFrontMatter:
		return "FrontMatter"
	default:
		return "Unknown"
	}
}

// BuildHints computes DocumentHints from every page of one source document.
// It must be called exactly once per document, before any page is
// classified, and the result shared read-only across every page's run.
func BuildHints(pages []*block.PageData) DocumentHints {
	histogram := BuildTextHistogram(pages)

	// The top 3 part-count-pattern sizes, by descending frequency, are
	// assigned to part_count, catalog_part_count, and step_number in that
	// order (grounded on font_size_hints.py's FontSizeHints.from_pages).
	topPartCountSizes := histogram.PartCountFontSizes.MostCommon(0, func(a, b float64) bool { return a < b })

	h := DocumentHints{
		FontSizes: histogram,
		PageRoles: map[int]PageRole{},
	}

	h.PartCountSize = nth(topPartCountSizes, 0)
	h.CatalogPartCountSize = nth(topPartCountSizes, 1)
	h.StepNumberSize = nth(topPartCountSizes, 2)
	h.StepRepeatSize = nth(topPartCountSizes, 3)

	if top := histogram.ElementIDFontSizes.MostCommon(1, floatLess); len(top) == 1 {
		h.ElementIDSize = &top[0]
	}
	if top := histogram.PageNumberFontSizes.MostCommon(1, floatLess); len(top) == 1 {
		h.PageNumberSize = &top[0]
	}

	// PartNumberSize has no dedicated histogram bucket of its own in the
	// source data; it is estimated as the remaining-size mode, since part
	// numbers (6-digit element ids aside) are plain small integers that
	// don't match any of the other patterns.
	if top := histogram.RemainingFontSizes.MostCommon(1, floatLess); len(top) == 1 {
		h.PartNumberSize = &top[0]
	}

	for _, page := range pages {
		h.PageRoles[page.Index()] = classifyPageRole(page)
	}

	return h
}

func nth(xs []float64, i int) *float64 {
	if i < len(xs) {
		v := xs[i]
		return &v
	}
	return nil
}

func floatLess(a, b float64) bool { return a < b }

// classifyPageRole makes a coarse per-page role call from block composition:
// a page dominated by a dense grid of small Image+Text pairs inside vector
// Drawings reads as a parts catalogue; a page with few, large Drawings and
// a handful of big Text blocks reads as front matter; anything else is
// treated as a normal assembly step page.
func classifyPageRole(page *block.PageData) PageRole {
	images := page.BlocksOfKind(block.KindImage)
	texts := page.BlocksOfKind(block.KindText)
	drawings := page.BlocksOfKind(block.KindDrawing)

	switch {
	case len(images) >= 6 && len(texts) >= 6:
		return PageRolePartsCatalogue
	case len(images) == 0 && len(drawings) <= 2 && len(texts) <= 3:
		return PageRoleFrontMatter
	default:
		return PageRoleAssemblyStep
	}
}
