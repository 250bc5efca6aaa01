package block

import "github.com/tsawler/legoclassify/geometry"

// Kind identifies which variant of the Block tagged union a value holds.
type Kind int

const (
	// KindUnknown is the zero value and never appears on a valid block.
	KindUnknown Kind = iota
	KindText
	KindImage
	KindDrawing
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindImage:
		return "Image"
	case KindDrawing:
		return "Drawing"
	default:
		return "Unknown"
	}
}

// Block is the common interface satisfied by Text, Image, and Drawing. It is
// a closed tagged union: Kind() identifies the concrete variant so callers
// can safely switch on it and assert back to the concrete type.
type Block interface {
	// ID is a stable integer identifier, unique within the owning page.
	ID() int
	Kind() Kind
	BBox() geometry.BBox
}

// Text is a block of extracted text with normalized whitespace.
type Text struct {
	BlockID  int
	Box      geometry.BBox
	Text     string
	FontSize float64 // points
	FontName string
}

func (t Text) ID() int               { return t.BlockID }
func (t Text) Kind() Kind            { return KindText }
func (t Text) BBox() geometry.BBox   { return t.Box }

// Image is a raster image block. The extractor assigns it a stable image id
// distinct from the block id (e.g. to deduplicate identical images reused
// across pages); the core only needs BlockID for consumption bookkeeping.
type Image struct {
	BlockID int
	Box     geometry.BBox
	ImageID string
}

func (i Image) ID() int              { return i.BlockID }
func (i Image) Kind() Kind           { return KindImage }
func (i Image) BBox() geometry.BBox  { return i.Box }

// Color is an RGB color, as decoded from the PDF content stream.
type Color struct {
	R, G, B uint8
}

// Drawing is a vector-graphics block (path, rectangle, circle, etc).
// OriginalBBox is the box before any clipping the extractor applied;
// Box may be smaller if the drawing was clipped by a containing region.
type Drawing struct {
	BlockID      int
	Box          geometry.BBox
	OriginalBBox *geometry.BBox // nil if extractor did not clip this drawing
	Paths        []Path
	FillColor    *Color
	StrokeColor  *Color
	Thickness    float64
}

func (d Drawing) ID() int             { return d.BlockID }
func (d Drawing) Kind() Kind          { return KindDrawing }
func (d Drawing) BBox() geometry.BBox { return d.Box }

// EffectiveBBox returns OriginalBBox if present, otherwise Box. Classifiers
// that care about the drawing's true extent (e.g. SubAssembly's containment
// check) should prefer this over Box.
func (d Drawing) EffectiveBBox() geometry.BBox {
	if d.OriginalBBox != nil {
		return *d.OriginalBBox
	}
	return d.Box
}

// Path is a single subpath of a Drawing's vector geometry, as a polyline in
// page coordinates (curves are already flattened by the extractor).
type Path struct {
	Points []geometry.Point
	Closed bool
}
