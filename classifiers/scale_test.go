package classifiers

import "testing"

func TestLinearScaleInterpolatesBetweenPoints(t *testing.T) {
	scale := NewLinearScale(map[float64]float64{0: 1, 4: 0})

	cases := []struct {
		value float64
		want  float64
	}{
		{value: -5, want: 1},
		{value: 0, want: 1},
		{value: 2, want: 0.5},
		{value: 4, want: 0},
		{value: 10, want: 0},
	}
	for _, c := range cases {
		if got := scale.Score(c.value); got != c.want {
			t.Errorf("Score(%v) = %v, want %v", c.value, got, c.want)
		}
	}
}

func TestLinearScaleHandlesUnorderedInput(t *testing.T) {
	scale := NewLinearScale(map[float64]float64{10: 1, 0: 0, 5: 0.5})
	if got := scale.Score(7.5); got != 0.75 {
		t.Errorf("Score(7.5) = %v, want 0.75", got)
	}
}

func TestWeightedAverageNormalizesWeights(t *testing.T) {
	got := weightedAverage([2]float64{1, 1}, [2]float64{0, 3})
	if got != 0.25 {
		t.Errorf("weightedAverage = %v, want 0.25", got)
	}
}

func TestWeightedAverageZeroWeightIsZero(t *testing.T) {
	if got := weightedAverage(); got != 0 {
		t.Errorf("weightedAverage() = %v, want 0", got)
	}
}
