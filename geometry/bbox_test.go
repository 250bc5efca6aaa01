package geometry

import "testing"

func TestNewBBoxInvalid(t *testing.T) {
	tests := []struct {
		name                   string
		x0, y0, x1, y1         float64
		wantErr                bool
	}{
		{"valid", 0, 0, 10, 10, false},
		{"x0 greater than x1", 10, 0, 0, 10, true},
		{"y0 greater than y1", 0, 10, 10, 0, true},
		{"degenerate is valid coordinates", 5, 5, 5, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBBox(tt.x0, tt.y0, tt.x1, tt.y1)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewBBox(%v,%v,%v,%v) error = %v, wantErr %v", tt.x0, tt.y0, tt.x1, tt.y1, err, tt.wantErr)
			}
		})
	}
}

func TestBBoxFullyInside(t *testing.T) {
	outer := MustBBox(0, 0, 100, 100)
	inner := MustBBox(10, 10, 50, 50)
	straddling := MustBBox(-5, 10, 50, 50)

	if !inner.FullyInside(outer) {
		t.Error("expected inner to be fully inside outer")
	}
	if straddling.FullyInside(outer) {
		t.Error("expected straddling box not to be fully inside outer")
	}
}

func TestBBoxIntersectsAndOverlapArea(t *testing.T) {
	a := MustBBox(0, 0, 10, 10)
	b := MustBBox(5, 5, 15, 15)
	c := MustBBox(20, 20, 30, 30)

	if !a.Intersects(b) {
		t.Error("expected a and b to intersect")
	}
	if a.Intersects(c) {
		t.Error("expected a and c not to intersect")
	}
	if got, want := a.OverlapArea(b), 25.0; got != want {
		t.Errorf("OverlapArea() = %v, want %v", got, want)
	}
	if got := a.OverlapArea(c); got != 0 {
		t.Errorf("OverlapArea() for non-intersecting boxes = %v, want 0", got)
	}
}

func TestBBoxDistances(t *testing.T) {
	a := MustBBox(0, 0, 10, 10)
	below := MustBBox(0, 20, 10, 30)
	right := MustBBox(20, 0, 30, 10)
	overlapping := MustBBox(5, 5, 15, 15)

	if got, want := a.VerticalDistance(below), 10.0; got != want {
		t.Errorf("VerticalDistance() = %v, want %v", got, want)
	}
	if got, want := a.HorizontalDistance(right), 10.0; got != want {
		t.Errorf("HorizontalDistance() = %v, want %v", got, want)
	}
	if got := a.VerticalDistance(overlapping); got != 0 {
		t.Errorf("VerticalDistance() for overlapping boxes = %v, want 0", got)
	}
}

func TestBBoxAlignment(t *testing.T) {
	a := MustBBox(10, 0, 20, 10)
	b := MustBBox(11, 50, 21, 60)

	if !a.AlignedLeft(b, 2) {
		t.Error("expected boxes to be left-aligned within tolerance")
	}
	if a.AlignedLeft(b, 0.5) {
		t.Error("expected boxes not to be left-aligned with tight tolerance")
	}
}

func TestBBoxAbove(t *testing.T) {
	top := MustBBox(0, 0, 10, 10)
	bottom := MustBBox(0, 10, 10, 20)

	if !top.Above(bottom, 0) {
		t.Error("expected top to be above bottom")
	}
	if bottom.Above(top, 0) {
		t.Error("expected bottom not to be above top")
	}
}
