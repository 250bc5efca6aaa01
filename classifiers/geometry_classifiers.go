package classifiers

import (
	"github.com/tsawler/legoclassify/block"
	"github.com/tsawler/legoclassify/candidate"
	"github.com/tsawler/legoclassify/element"
	"github.com/tsawler/legoclassify/geometry"
	"github.com/tsawler/legoclassify/hints"
)

// intrinsicScore is the ScoreDetails shape for every geometry classifier in
// this file: none of them reference another candidate or carry an
// extracted value beyond the score itself.
type intrinsicScore float64

func (s intrinsicScore) Score() float64 { return float64(s) }

func aspectRatio(w, h float64) float64 {
	if h == 0 {
		return 0
	}
	return w / h
}

// isLight reports whether a color reads as white or near-white, the
// signature stroke/fill color LEGO instruction pages use for dividers
// (rules/visual.py's StrokeColorScore).
func isLight(c *block.Color) (score float64, present bool) {
	if c == nil {
		return 0, false
	}
	r, g, b := float64(c.R)/255, float64(c.G)/255, float64(c.B)/255
	switch {
	case r > 0.9 && g > 0.9 && b > 0.9:
		return 1.0, true
	case r > 0.7 && g > 0.7 && b > 0.7:
		return 0.7, true
	default:
		return 0.3, true
	}
}

// dividerColorScore scores a Drawing's stroke color first, falling back to
// fill color, grounded on rules/visual.py's StrokeColorScore.
func dividerColorScore(d block.Drawing) float64 {
	if score, ok := isLight(d.StrokeColor); ok {
		return score
	}
	if d.FillColor != nil {
		r, g, b := float64(d.FillColor.R)/255, float64(d.FillColor.G)/255, float64(d.FillColor.B)/255
		switch {
		case r > 0.9 && g > 0.9 && b > 0.9:
			return 0.8
		case r > 0.7 && g > 0.7 && b > 0.7:
			return 0.5
		}
	}
	return 0.0
}

// --- BackgroundClassifier ---------------------------------------------

// edgeProximityScore reports how close a block sits to touching one of the
// page's four edges within margin, as a fraction in [0, 1] of how many
// edges it touches: a decorative full-bleed fill or border typically runs
// flush against at least one edge, which a purely coverage-based area test
// misses for a background that wraps only part of the page (e.g. a side
// rail or bottom band).
func edgeProximityScore(box geometry.BBox, page *block.PageData, margin float64) float64 {
	touches := 0
	if box.X0 <= margin {
		touches++
	}
	if box.X1 >= page.Width()-margin {
		touches++
	}
	if box.Y0 <= margin {
		touches++
	}
	if box.Y1 >= page.Height()-margin {
		touches++
	}
	return float64(touches) / 4.0
}

// BackgroundClassifier recognizes a full- or partial-page decorative fill:
// a Drawing or Image whose area covers most of the page, or one that runs
// flush against the page's edges, grounded on rules/geometry.py's
// SizeRangeRule/SizePreferenceScore pattern applied to page coverage
// instead of absolute size. Edge-touching candidates with lower coverage
// still score, since a border or side-rail fill is as much a background as
// a full-bleed one — edge proximity folds in what a standalone
// intermediate-only "page edge" label would otherwise have to gate on
// separately before this classifier ever saw the candidate.
type BackgroundClassifier struct{}

func (BackgroundClassifier) Output() string     { return "background" }
func (BackgroundClassifier) Requires() []string { return nil }

const backgroundEdgeMargin = 5.0

func (BackgroundClassifier) Score(page *block.PageData, docHints hints.DocumentHints, result *candidate.Result) {
	pageArea := page.Width() * page.Height()
	if pageArea <= 0 {
		return
	}

	coverageScale := NewLinearScale(map[float64]float64{0.3: 0, 0.55: 0.5, 0.75: 0.8, 0.95: 1.0})

	for _, b := range page.BlocksOfKind(block.KindDrawing) {
		d := b.(block.Drawing)
		box := d.EffectiveBBox()
		ratio := box.Area() / pageArea
		if ratio < 0.15 {
			continue
		}
		coverage := coverageScale.Score(ratio)
		edge := edgeProximityScore(box, page, backgroundEdgeMargin)
		s := weightedAverage(
			[2]float64{coverage, 0.7},
			[2]float64{edge, 0.3},
		)
		if s <= 0.2 {
			continue
		}
		c, err := candidate.NewAtomicCandidate[element.Background](
			"background", element.TypeBackground, d.Box, s, intrinsicScore(s), []int{d.BlockID})
		if err == nil {
			result.AddCandidate(c)
		}
	}
	for _, b := range page.BlocksOfKind(block.KindImage) {
		img := b.(block.Image)
		ratio := img.Box.Area() / pageArea
		if ratio < 0.15 {
			continue
		}
		coverage := coverageScale.Score(ratio)
		edge := edgeProximityScore(img.Box, page, backgroundEdgeMargin)
		s := weightedAverage(
			[2]float64{coverage, 0.7},
			[2]float64{edge, 0.3},
		)
		if s <= 0.2 {
			continue
		}
		c, err := candidate.NewAtomicCandidate[element.Background](
			"background", element.TypeBackground, img.Box, s, intrinsicScore(s), []int{img.BlockID})
		if err == nil {
			result.AddCandidate(c)
		}
	}
}

func (BackgroundClassifier) Build(c candidate.AnyCandidate, result *candidate.Result) (element.Element, error) {
	return element.Background{BBox: c.BBox()}, nil
}

// --- DividerClassifier -------------------------------------------------

// DividerClassifier recognizes a horizontal or vertical rule: a very thin,
// light-colored Drawing spanning a large fraction of the page in its long
// dimension, grounded on rules/visual.py's StrokeColorScore and
// rules/geometry.py's SizeRangeRule.
type DividerClassifier struct{}

func (DividerClassifier) Output() string     { return "divider" }
func (DividerClassifier) Requires() []string { return nil }

func (DividerClassifier) Score(page *block.PageData, docHints hints.DocumentHints, result *candidate.Result) {
	thinScale := NewLinearScale(map[float64]float64{0: 1, 2: 1, 6: 0})
	spanScale := NewLinearScale(map[float64]float64{0.2: 0, 0.6: 1})

	for _, b := range page.BlocksOfKind(block.KindDrawing) {
		d := b.(block.Drawing)
		w, h := d.Box.Width(), d.Box.Height()

		var thinness, span float64
		switch {
		case h <= w:
			thinness = thinScale.Score(h)
			span = spanScale.Score(w / page.Width())
		default:
			thinness = thinScale.Score(w)
			span = spanScale.Score(h / page.Height())
		}
		if thinness <= 0 || span <= 0 {
			continue
		}

		score := weightedAverage(
			[2]float64{thinness, 0.35},
			[2]float64{span, 0.25},
			[2]float64{dividerColorScore(d), 0.4},
		)
		if score <= 0.2 {
			continue
		}
		c, err := candidate.NewAtomicCandidate[element.Divider](
			"divider", element.TypeDivider, d.Box, score, intrinsicScore(score), []int{d.BlockID})
		if err == nil {
			result.AddCandidate(c)
		}
	}
}

func (DividerClassifier) Build(c candidate.AnyCandidate, result *candidate.Result) (element.Element, error) {
	return element.Divider{BBox: c.BBox()}, nil
}

// --- ProgressBarClassifier ---------------------------------------------

// ProgressBarClassifier recognizes the overall build-progress strip: a
// wide, shallow Drawing sitting in the bottom band of the page, grounded on
// rules/geometry.py's InBottomBandFilter combined with an elongation test.
type ProgressBarClassifier struct{}

func (ProgressBarClassifier) Output() string     { return "progress_bar" }
func (ProgressBarClassifier) Requires() []string { return nil }

func (ProgressBarClassifier) Score(page *block.PageData, docHints hints.DocumentHints, result *candidate.Result) {
	elongationScale := NewLinearScale(map[float64]float64{3: 0, 10: 1})
	widthScale := NewLinearScale(map[float64]float64{0.3: 0, 0.7: 1})
	bottomThreshold := page.Height() * 0.85

	for _, b := range page.BlocksOfKind(block.KindDrawing) {
		d := b.(block.Drawing)
		if d.Box.Center().Y < bottomThreshold {
			continue
		}
		ratio := aspectRatio(d.Box.Width(), d.Box.Height())
		elong := elongationScale.Score(ratio)
		width := widthScale.Score(d.Box.Width() / page.Width())
		if elong <= 0 || width <= 0 {
			continue
		}
		score := weightedAverage(
			[2]float64{elong, 0.5},
			[2]float64{width, 0.5},
		)
		c, err := candidate.NewAtomicCandidate[element.ProgressBar](
			"progress_bar", element.TypeProgressBar, d.Box, score, intrinsicScore(score), []int{d.BlockID})
		if err == nil {
			result.AddCandidate(c)
		}
	}
}

func (ProgressBarClassifier) Build(c candidate.AnyCandidate, result *candidate.Result) (element.Element, error) {
	return element.ProgressBar{BBox: c.BBox()}, nil
}

// --- ProgressBarIndicatorClassifier ------------------------------------

// ProgressBarIndicatorClassifier recognizes the small filled marker showing
// current position within a ProgressBar: a small, roughly square,
// non-white-filled Drawing in the bottom band.
type ProgressBarIndicatorClassifier struct{}

func (ProgressBarIndicatorClassifier) Output() string     { return "progress_bar_indicator" }
func (ProgressBarIndicatorClassifier) Requires() []string { return nil }

func (ProgressBarIndicatorClassifier) Score(page *block.PageData, docHints hints.DocumentHints, result *candidate.Result) {
	sizeScale := NewLinearScale(map[float64]float64{2: 0, 6: 1, 14: 1, 30: 0})
	bottomThreshold := page.Height() * 0.82

	for _, b := range page.BlocksOfKind(block.KindDrawing) {
		d := b.(block.Drawing)
		if d.Box.Center().Y < bottomThreshold {
			continue
		}
		avg := (d.Box.Width() + d.Box.Height()) / 2
		sizeOK := sizeScale.Score(avg)
		if sizeOK <= 0 {
			continue
		}
		colorful := 1.0
		if score, ok := isLight(d.FillColor); ok {
			colorful = 1 - score
		}
		score := weightedAverage(
			[2]float64{sizeOK, 0.6},
			[2]float64{colorful, 0.4},
		)
		if score <= 0.2 {
			continue
		}
		c, err := candidate.NewAtomicCandidate[element.ProgressBarIndicator](
			"progress_bar_indicator", element.TypeProgressBarIndicator, d.Box, score,
			intrinsicScore(score), []int{d.BlockID})
		if err == nil {
			result.AddCandidate(c)
		}
	}
}

func (ProgressBarIndicatorClassifier) Build(c candidate.AnyCandidate, result *candidate.Result) (element.Element, error) {
	return element.ProgressBarIndicator{BBox: c.BBox()}, nil
}

// --- RotationSymbolClassifier -------------------------------------------

// RotationSymbolClassifier recognizes the "rotate the model" glyph: a
// small, roughly square Drawing, grounded on rules/geometry.py's
// SizePreferenceScore.
type RotationSymbolClassifier struct{}

func (RotationSymbolClassifier) Output() string     { return "rotation_symbol" }
func (RotationSymbolClassifier) Requires() []string { return nil }

func (RotationSymbolClassifier) Score(page *block.PageData, docHints hints.DocumentHints, result *candidate.Result) {
	sizeScale := NewLinearScale(map[float64]float64{10: 0, 18: 1, 35: 1, 55: 0})
	squareScale := NewLinearScale(map[float64]float64{0: 1, 0.35: 0})

	for _, b := range page.BlocksOfKind(block.KindDrawing) {
		d := b.(block.Drawing)
		w, h := d.Box.Width(), d.Box.Height()
		avg := (w + h) / 2
		size := sizeScale.Score(avg)
		square := squareScale.Score(absFloat(w-h) / avg)
		if size <= 0 || square <= 0 {
			continue
		}
		score := weightedAverage(
			[2]float64{size, 0.5},
			[2]float64{square, 0.5},
		)
		if score <= 0.2 {
			continue
		}
		c, err := candidate.NewAtomicCandidate[element.RotationSymbol](
			"rotation_symbol", element.TypeRotationSymbol, d.Box, score, intrinsicScore(score), []int{d.BlockID})
		if err == nil {
			result.AddCandidate(c)
		}
	}
}

func (RotationSymbolClassifier) Build(c candidate.AnyCandidate, result *candidate.Result) (element.Element, error) {
	return element.RotationSymbol{BBox: c.BBox()}, nil
}

// --- ArrowClassifier -----------------------------------------------------

// ArrowClassifier recognizes a directional callout: a small-to-medium,
// elongated Drawing, scored higher when at least one of its paths is open
// (the shaft), grounded on rules/geometry.py's SizeRangeRule plus a
// path-openness score term
// specific to arrows among the shape classifiers.
type ArrowClassifier struct{}

func (ArrowClassifier) Output() string     { return "arrow" }
func (ArrowClassifier) Requires() []string { return nil }

func (ArrowClassifier) Score(page *block.PageData, docHints hints.DocumentHints, result *candidate.Result) {
	sizeScale := NewLinearScale(map[float64]float64{8: 0, 15: 1, 80: 1, 140: 0})
	elongationScale := NewLinearScale(map[float64]float64{1.1: 0, 2: 1})

	for _, b := range page.BlocksOfKind(block.KindDrawing) {
		d := b.(block.Drawing)
		w, h := d.Box.Width(), d.Box.Height()
		avg := (w + h) / 2
		size := sizeScale.Score(avg)
		if size <= 0 {
			continue
		}
		ratio := aspectRatio(w, h)
		if ratio < 1 {
			ratio = 1 / ratio
		}
		elong := elongationScale.Score(ratio)

		hasOpenPath := 0.0
		for _, p := range d.Paths {
			if !p.Closed {
				hasOpenPath = 1
				break
			}
		}

		score := weightedAverage(
			[2]float64{size, 0.4},
			[2]float64{elong, 0.3},
			[2]float64{hasOpenPath, 0.3},
		)
		if score <= 0.2 {
			continue
		}
		c, err := candidate.NewAtomicCandidate[element.Arrow](
			"arrow", element.TypeArrow, d.Box, score, intrinsicScore(score), []int{d.BlockID})
		if err == nil {
			result.AddCandidate(c)
		}
	}
}

func (ArrowClassifier) Build(c candidate.AnyCandidate, result *candidate.Result) (element.Element, error) {
	return element.Arrow{BBox: c.BBox()}, nil
}

// --- LoosePartSymbolClassifier ------------------------------------------

// LoosePartSymbolClassifier recognizes the "keep this part loose" glyph: a
// small, roughly square outlined Drawing, distinct from RotationSymbol
// mainly by its smaller characteristic size.
type LoosePartSymbolClassifier struct{}

func (LoosePartSymbolClassifier) Output() string     { return "loose_part_symbol" }
func (LoosePartSymbolClassifier) Requires() []string { return nil }

func (LoosePartSymbolClassifier) Score(page *block.PageData, docHints hints.DocumentHints, result *candidate.Result) {
	sizeScale := NewLinearScale(map[float64]float64{4: 0, 8: 1, 20: 1, 35: 0})
	squareScale := NewLinearScale(map[float64]float64{0: 1, 0.3: 0})

	for _, b := range page.BlocksOfKind(block.KindDrawing) {
		d := b.(block.Drawing)
		w, h := d.Box.Width(), d.Box.Height()
		avg := (w + h) / 2
		size := sizeScale.Score(avg)
		square := squareScale.Score(absFloat(w-h) / avg)
		if size <= 0 || square <= 0 {
			continue
		}
		score := weightedAverage(
			[2]float64{size, 0.5},
			[2]float64{square, 0.5},
		)
		if score <= 0.2 {
			continue
		}
		c, err := candidate.NewAtomicCandidate[element.LoosePartSymbol](
			"loose_part_symbol", element.TypeLoosePartSymbol, d.Box, score, intrinsicScore(score), []int{d.BlockID})
		if err == nil {
			result.AddCandidate(c)
		}
	}
}

func (LoosePartSymbolClassifier) Build(c candidate.AnyCandidate, result *candidate.Result) (element.Element, error) {
	return element.LoosePartSymbol{BBox: c.BBox()}, nil
}

// --- ShineClassifier -------------------------------------------------

// ShineClassifier recognizes the small sparkle/highlight glyph drawn over a
// new or notable part's image: a tiny Drawing, scored by size alone; its
// fill color is not read.
type ShineClassifier struct{}

func (ShineClassifier) Output() string     { return "shine" }
func (ShineClassifier) Requires() []string { return nil }

func (ShineClassifier) Score(page *block.PageData, docHints hints.DocumentHints, result *candidate.Result) {
	sizeScale := NewLinearScale(map[float64]float64{2: 0, 4: 1, 12: 1, 22: 0})

	for _, b := range page.BlocksOfKind(block.KindDrawing) {
		d := b.(block.Drawing)
		avg := (d.Box.Width() + d.Box.Height()) / 2
		size := sizeScale.Score(avg)
		if size <= 0 {
			continue
		}
		score := size
		if score <= 0.2 {
			continue
		}
		c, err := candidate.NewAtomicCandidate[element.Shine](
			"shine", element.TypeShine, d.Box, score, intrinsicScore(score), []int{d.BlockID})
		if err == nil {
			result.AddCandidate(c)
		}
	}
}

func (ShineClassifier) Build(c candidate.AnyCandidate, result *candidate.Result) (element.Element, error) {
	return element.Shine{BBox: c.BBox()}, nil
}

// --- DiagramClassifier ---------------------------------------------------

// DiagramClassifier recognizes the main illustration of a step: the
// dominant raster Image on a page, sized well above a PartImage thumbnail
// but below full-page Background coverage. Grounded on rules/geometry.py's
// SizePreferenceScore, applied to page-area ratio rather than absolute
// dimensions since diagrams scale with page layout density.
type DiagramClassifier struct{}

func (DiagramClassifier) Output() string     { return "diagram" }
func (DiagramClassifier) Requires() []string { return nil }

func (DiagramClassifier) Score(page *block.PageData, docHints hints.DocumentHints, result *candidate.Result) {
	pageArea := page.Width() * page.Height()
	if pageArea <= 0 {
		return
	}
	ratioScale := NewLinearScale(map[float64]float64{0.03: 0, 0.08: 1, 0.45: 1, 0.6: 0})

	for _, b := range page.BlocksOfKind(block.KindImage) {
		img := b.(block.Image)
		ratio := img.Box.Area() / pageArea
		score := ratioScale.Score(ratio)
		if score <= 0.2 {
			continue
		}
		c, err := candidate.NewAtomicCandidate[element.Diagram](
			"diagram", element.TypeDiagram, img.Box, score, intrinsicScore(score), []int{img.BlockID})
		if err == nil {
			result.AddCandidate(c)
		}
	}
}

func (DiagramClassifier) Build(c candidate.AnyCandidate, result *candidate.Result) (element.Element, error) {
	return element.Diagram{BBox: c.BBox()}, nil
}
