package spatial

import "testing"

func TestSolveOneToOnePicksMinimumCostPairing(t *testing.T) {
	cost := [][]float64{
		{1, 10},
		{10, 1},
	}
	assignments := SolveOneToOne(cost)
	if len(assignments) != 2 {
		t.Fatalf("expected 2 assignments, got %d: %v", len(assignments), assignments)
	}
	got := map[int]int{}
	for _, a := range assignments {
		got[a.Parent] = a.Child
	}
	if got[0] != 0 || got[1] != 1 {
		t.Errorf("expected diagonal assignment, got %v", got)
	}
}

func TestSolveOneToOneSkipsUnreachablePairs(t *testing.T) {
	cost := [][]float64{
		{Unreachable(), 1},
		{1, Unreachable()},
	}
	assignments := SolveOneToOne(cost)
	for _, a := range assignments {
		if a.Cost >= Unreachable() {
			t.Errorf("unreachable pairing leaked into result: %v", a)
		}
	}
	got := map[int]int{}
	for _, a := range assignments {
		got[a.Parent] = a.Child
	}
	if got[0] != 1 || got[1] != 0 {
		t.Errorf("expected crossed assignment avoiding unreachable cells, got %v", got)
	}
}

func TestSolveOneToOneHandlesUnevenSides(t *testing.T) {
	cost := [][]float64{
		{1, 5, 9},
	}
	assignments := SolveOneToOne(cost)
	if len(assignments) != 1 {
		t.Fatalf("expected exactly one assignment for a single parent, got %d", len(assignments))
	}
	if assignments[0].Child != 0 {
		t.Errorf("expected the cheapest child (index 0) to be chosen, got %d", assignments[0].Child)
	}
}

func TestSolveOneToManyRespectsCapacity(t *testing.T) {
	cost := [][]float64{
		{1, 2, 3},
	}
	assignments := SolveOneToMany(cost, []int{2})
	if len(assignments) != 2 {
		t.Fatalf("expected 2 assignments under capacity 2, got %d: %v", len(assignments), assignments)
	}
	for _, a := range assignments {
		if a.Child == 2 {
			t.Error("expected the two cheapest children (0,1) chosen, not the most expensive")
		}
	}
}

func TestSolveOneToManyEmptyInputReturnsNil(t *testing.T) {
	if got := SolveOneToMany(nil, nil); got != nil {
		t.Errorf("expected nil for empty cost matrix, got %v", got)
	}
}
