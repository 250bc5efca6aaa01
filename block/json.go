package block

import (
	"encoding/json"
	"fmt"

	"github.com/tsawler/legoclassify/geometry"
)

// wireBlock is the host-facing JSON shape for one Block — the core's input
// is host-supplied, not something the core itself persists. Block is a
// closed interface, so decoding needs an explicit "kind" discriminator the
// way encoding/json can't infer from an interface field on its own.
type wireBlock struct {
	Kind     string         `json:"kind"`
	ID       int            `json:"id"`
	BBox     [4]float64     `json:"bbox"`
	Text     string         `json:"text,omitempty"`
	FontSize float64        `json:"font_size,omitempty"`
	FontName string         `json:"font_name,omitempty"`
	ImageID  string         `json:"image_id,omitempty"`

	OriginalBBox *[4]float64 `json:"original_bbox,omitempty"`
	Paths        []wirePath  `json:"paths,omitempty"`
	FillColor    *Color      `json:"fill_color,omitempty"`
	StrokeColor  *Color      `json:"stroke_color,omitempty"`
	Thickness    float64     `json:"thickness,omitempty"`
}

type wirePath struct {
	Points []geometry.Point `json:"points"`
	Closed bool             `json:"closed"`
}

// wirePageData is the host-facing JSON shape for one page's input.
type wirePageData struct {
	Index  int         `json:"index"`
	Width  float64     `json:"width"`
	Height float64     `json:"height"`
	Blocks []wireBlock `json:"blocks"`
}

func bboxFromWire(b [4]float64) (geometry.BBox, error) {
	return geometry.NewBBox(b[0], b[1], b[2], b[3])
}

func (w wireBlock) toBlock() (Block, error) {
	box, err := bboxFromWire(w.BBox)
	if err != nil {
		// An invalid bbox is a data error: return it rather than panic, and
		// let the caller route it through ValidateBlocks' drop-with-warning
		// path instead.
		box = geometry.BBox{}
	}

	switch w.Kind {
	case "text", "Text":
		return Text{BlockID: w.ID, Box: box, Text: w.Text, FontSize: w.FontSize, FontName: w.FontName}, nil
	case "image", "Image":
		return Image{BlockID: w.ID, Box: box, ImageID: w.ImageID}, nil
	case "drawing", "Drawing":
		d := Drawing{BlockID: w.ID, Box: box, FillColor: w.FillColor, StrokeColor: w.StrokeColor, Thickness: w.Thickness}
		if w.OriginalBBox != nil {
			ob, oerr := bboxFromWire(*w.OriginalBBox)
			if oerr == nil {
				d.OriginalBBox = &ob
			}
		}
		for _, p := range w.Paths {
			d.Paths = append(d.Paths, Path{Points: p.Points, Closed: p.Closed})
		}
		return d, nil
	default:
		return nil, fmt.Errorf("block: unknown block kind %q for block id %d", w.Kind, w.ID)
	}
}

// DecodePageData parses one page's JSON wire format, as the CLI host reads
// it from disk, into a frozen PageData. Blocks with an invalid bbox are
// dropped with a warning rather than failing the whole page, matching
// ValidateBlocks' usual role ahead of NewPageData.
func DecodePageData(data []byte) (*PageData, []DroppedBlock, error) {
	var wire wirePageData
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, nil, fmt.Errorf("block: decoding page JSON: %w", err)
	}

	blocks := make([]Block, 0, len(wire.Blocks))
	for _, wb := range wire.Blocks {
		b, err := wb.toBlock()
		if err != nil {
			return nil, nil, err
		}
		blocks = append(blocks, b)
	}

	valid, dropped := ValidateBlocks(blocks)
	pd, err := NewPageData(wire.Index, wire.Width, wire.Height, valid)
	if err != nil {
		return nil, dropped, err
	}
	return pd, dropped, nil
}
