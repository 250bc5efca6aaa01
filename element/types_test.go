package element

import (
	"testing"

	"github.com/tsawler/legoclassify/geometry"
)

func TestPartsListTotalItems(t *testing.T) {
	box := geometry.MustBBox(0, 0, 10, 10)
	pl := PartsList{
		BBox: box,
		Parts: []Part{
			{BBox: box, Count: PartCount{BBox: box, Count: 2}},
			{BBox: box, Count: PartCount{BBox: box, Count: 3}},
		},
	}

	if got := pl.TotalItems(); got != 5 {
		t.Errorf("expected total 5, got %d", got)
	}
}

func TestElementTypeTags(t *testing.T) {
	tests := []struct {
		name string
		elem Element
		want Type
	}{
		{"Page", Page{}, TypePage},
		{"Step", Step{}, TypeStep},
		{"PartsList", PartsList{}, TypePartsList},
		{"Part", Part{}, TypePart},
		{"Diagram", Diagram{}, TypeDiagram},
		{"OpenBag", OpenBag{}, TypeOpenBag},
		{"SubStep", SubStep{}, TypeSubStep},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.elem.ElementType(); got != tt.want {
				t.Errorf("ElementType() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPageBoundingBoxMatchesDimensions(t *testing.T) {
	p := Page{Width: 600, Height: 800}
	box := p.BoundingBox()
	if box.Width() != 600 || box.Height() != 800 {
		t.Errorf("expected 600x800 bounding box, got %vx%v", box.Width(), box.Height())
	}
}
