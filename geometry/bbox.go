package geometry

import (
	"fmt"
	"math"
)

// Point represents a 2D point in page coordinates.
type Point struct {
	X, Y float64
}

// Distance returns the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// BBox is an axis-aligned rectangle (x0,y0,x1,y1). Y increases downward.
// The zero value is not a valid box; use NewBBox.
type BBox struct {
	X0, Y0, X1, Y1 float64
}

// NewBBox builds a BBox, normalizing coordinates so that X0<=X1 and Y0<=Y1.
// Invalid boxes (from malformed extractor output) are reported via the
// returned error rather than silently swallowed.
func NewBBox(x0, y0, x1, y1 float64) (BBox, error) {
	if x0 > x1 {
		return BBox{}, fmt.Errorf("geometry: invalid bbox, x0 (%g) > x1 (%g)", x0, x1)
	}
	if y0 > y1 {
		return BBox{}, fmt.Errorf("geometry: invalid bbox, y0 (%g) > y1 (%g)", y0, y1)
	}
	return BBox{X0: x0, Y0: y0, X1: x1, Y1: y1}, nil
}

// MustBBox is NewBBox for call sites (tests, fixtures) that already know the
// coordinates are valid and would rather panic than thread an error.
func MustBBox(x0, y0, x1, y1 float64) BBox {
	b, err := NewBBox(x0, y0, x1, y1)
	if err != nil {
		panic(err)
	}
	return b
}

// Width returns the box's width.
func (b BBox) Width() float64 { return b.X1 - b.X0 }

// Height returns the box's height.
func (b BBox) Height() float64 { return b.Y1 - b.Y0 }

// Area returns the box's area.
func (b BBox) Area() float64 { return b.Width() * b.Height() }

// Center returns the box's center point.
func (b BBox) Center() Point {
	return Point{X: (b.X0 + b.X1) / 2, Y: (b.Y0 + b.Y1) / 2}
}

// IsValid reports whether the box has positive width and height.
func (b BBox) IsValid() bool {
	return b.X1 > b.X0 && b.Y1 > b.Y0
}

// FullyInside reports whether b is fully contained within other.
func (b BBox) FullyInside(other BBox) bool {
	return b.X0 >= other.X0 && b.Y0 >= other.Y0 && b.X1 <= other.X1 && b.Y1 <= other.Y1
}

// Intersects reports whether b and other overlap at all.
func (b BBox) Intersects(other BBox) bool {
	return !(b.X1 < other.X0 || other.X1 < b.X0 || b.Y1 < other.Y0 || other.Y1 < b.Y0)
}

// Intersection returns the overlapping region of b and other. The returned
// box is invalid (IsValid() == false) if they do not intersect.
func (b BBox) Intersection(other BBox) BBox {
	x0 := math.Max(b.X0, other.X0)
	y0 := math.Max(b.Y0, other.Y0)
	x1 := math.Min(b.X1, other.X1)
	y1 := math.Min(b.Y1, other.Y1)
	return BBox{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// OverlapArea returns the area of the intersection of b and other, or 0 if
// they don't overlap.
func (b BBox) OverlapArea(other BBox) float64 {
	if !b.Intersects(other) {
		return 0
	}
	return b.Intersection(other).Area()
}

// Union returns the smallest box containing both b and other.
func (b BBox) Union(other BBox) BBox {
	return BBox{
		X0: math.Min(b.X0, other.X0),
		Y0: math.Min(b.Y0, other.Y0),
		X1: math.Max(b.X1, other.X1),
		Y1: math.Max(b.Y1, other.Y1),
	}
}

// Expand grows the box by margin on every side.
func (b BBox) Expand(margin float64) BBox {
	return BBox{X0: b.X0 - margin, Y0: b.Y0 - margin, X1: b.X1 + margin, Y1: b.Y1 + margin}
}

// VerticalDistance returns the gap between b and other along the y-axis.
// Zero if the boxes overlap vertically.
func (b BBox) VerticalDistance(other BBox) float64 {
	if b.Y1 < other.Y0 {
		return other.Y0 - b.Y1
	}
	if other.Y1 < b.Y0 {
		return b.Y0 - other.Y1
	}
	return 0
}

// HorizontalDistance returns the gap between b and other along the x-axis.
// Zero if the boxes overlap horizontally.
func (b BBox) HorizontalDistance(other BBox) float64 {
	if b.X1 < other.X0 {
		return other.X0 - b.X1
	}
	if other.X1 < b.X0 {
		return b.X0 - other.X1
	}
	return 0
}

// HorizontallyOverlaps reports whether b and other share horizontal extent,
// by at least minOverlap points.
func (b BBox) HorizontallyOverlaps(other BBox, minOverlap float64) bool {
	overlap := math.Min(b.X1, other.X1) - math.Max(b.X0, other.X0)
	return overlap >= minOverlap
}

// AlignedLeft reports whether b and other's left edges match within
// tolerance points.
func (b BBox) AlignedLeft(other BBox, tolerance float64) bool {
	return math.Abs(b.X0-other.X0) <= tolerance
}

// AlignedTop reports whether b and other's top edges (smaller Y) match
// within tolerance points.
func (b BBox) AlignedTop(other BBox, tolerance float64) bool {
	return math.Abs(b.Y0-other.Y0) <= tolerance
}

// Above reports whether b lies above other (b's bottom edge is at or before
// other's top edge) within slack points of allowed overlap.
func (b BBox) Above(other BBox, slack float64) bool {
	return b.Y1 <= other.Y0+slack
}

// String implements fmt.Stringer for readable diagnostics and log lines.
func (b BBox) String() string {
	return fmt.Sprintf("BBox(%.1f,%.1f,%.1f,%.1f)", b.X0, b.Y0, b.X1, b.Y1)
}
