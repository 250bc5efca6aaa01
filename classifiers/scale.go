package classifiers

import "sort"

// point is one (value, score) anchor of a LinearScale.
type point struct {
	value float64
	score float64
}

// LinearScale is a multi-point piecewise-linear interpolation from a raw
// value to a [0,1] score, clamping to the nearest endpoint score outside
// the configured range. Grounded on rules/scale.py's LinearScale — the
// workhorse scoring primitive nearly every proximity/closeness score in
// this package is built from (e.g. {0: 1.0, 0.4: 0.0} for "how close is
// this font size to the expected one").
type LinearScale struct {
	points []point
}

// NewLinearScale builds a LinearScale from value->score pairs; at least two
// points are required and they're sorted by value internally so callers
// may supply them in any order.
func NewLinearScale(points map[float64]float64) LinearScale {
	s := LinearScale{points: make([]point, 0, len(points))}
	for v, sc := range points {
		s.points = append(s.points, point{value: v, score: sc})
	}
	sort.Slice(s.points, func(i, j int) bool { return s.points[i].value < s.points[j].value })
	return s
}

// Score maps value to its interpolated score, clamped to [0,1].
func (s LinearScale) Score(value float64) float64 {
	if len(s.points) == 0 {
		return 0
	}
	if value <= s.points[0].value {
		return clamp01(s.points[0].score)
	}
	last := s.points[len(s.points)-1]
	if value >= last.value {
		return clamp01(last.score)
	}
	for i := 0; i < len(s.points)-1; i++ {
		a, b := s.points[i], s.points[i+1]
		if value >= a.value && value <= b.value {
			if b.value == a.value {
				return clamp01(a.score)
			}
			t := (value - a.value) / (b.value - a.value)
			return clamp01(a.score + t*(b.score-a.score))
		}
	}
	return clamp01(last.score)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// weightedAverage combines (score, weight) pairs the way every concrete
// classifier's composite score does: a normalized weighted sum, grounded
// on *Config's text_weight/position_weight/font_size_weight split
// (page_number_config.py and siblings).
func weightedAverage(terms ...[2]float64) float64 {
	var sum, totalWeight float64
	for _, t := range terms {
		sum += t[0] * t[1]
		totalWeight += t[1]
	}
	if totalWeight == 0 {
		return 0
	}
	return sum / totalWeight
}
