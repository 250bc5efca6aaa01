package spatial

import (
	"math"

	"github.com/tsawler/legoclassify/geometry"
)

// CostOptions tunes how Cost turns two bounding boxes into an assignment
// cost: Euclidean distance between centers, with penalties for vertical
// misalignment or crossing a divider.
type CostOptions struct {
	// VerticalMisalignmentWeight scales the extra cost added when parent
	// and child centers sit in different columns of a multi-column page
	// layout. Zero disables the penalty.
	VerticalMisalignmentWeight float64

	// ColumnWidth is the width of a layout column used to decide whether
	// two centers are "in different columns" for VerticalMisalignmentWeight.
	// A ColumnWidth of zero disables the check even if the weight is set.
	ColumnWidth float64

	// DividerYs lists the y-coordinates of horizontal divider elements on
	// the page (element.Divider boxes' vertical center). A pairing whose
	// parent and child centers straddle any of these is forbidden outright,
	// since a diagram across a divider from its step almost never belongs
	// to it.
	DividerYs []float64
}

// Cost returns the assignment cost between a parent and child box: the
// Euclidean distance between their centers, plus any configured
// misalignment penalty, or Unreachable() if a divider lies between them.
func Cost(parent, child geometry.BBox, opts CostOptions) float64 {
	pc := parent.Center()
	cc := child.Center()

	for _, y := range opts.DividerYs {
		if (pc.Y < y) != (cc.Y < y) {
			return unreachable
		}
	}

	cost := pc.Distance(cc)

	if opts.VerticalMisalignmentWeight > 0 && opts.ColumnWidth > 0 {
		pCol := math.Floor(pc.X / opts.ColumnWidth)
		cCol := math.Floor(cc.X / opts.ColumnWidth)
		if pCol != cCol {
			cost += opts.VerticalMisalignmentWeight * math.Abs(pCol-cCol)
		}
	}

	return cost
}

// CostMatrix builds the cost[p][c] matrix for SolveOneToOne/SolveOneToMany
// from parent and child boxes under a shared CostOptions.
func CostMatrix(parents, children []geometry.BBox, opts CostOptions) [][]float64 {
	matrix := make([][]float64, len(parents))
	for i, p := range parents {
		row := make([]float64, len(children))
		for j, c := range children {
			row[j] = Cost(p, c, opts)
		}
		matrix[i] = row
	}
	return matrix
}
