package constraint

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/tsawler/legoclassify/candidate"
)

func ref(label string) Ref {
	return candidate.Ref{Label: label, ID: uuid.New()}
}

func TestAtMostOneOfPicksHigherWeight(t *testing.T) {
	m := NewModel(0)
	a, b := ref("page_number"), ref("page_number")
	m.AddCandidate(a, 900, []int{1})
	m.AddCandidate(b, 400, []int{1})
	m.AtMostOneOf([]Ref{a, b})

	result := m.Solve(context.Background())
	if !result.Feasible {
		t.Fatal("expected feasible solution")
	}
	if !result.Selected[a] || result.Selected[b] {
		t.Errorf("expected a selected and b not, got %v", result.Selected)
	}
}

func TestBlockExclusivityPreventsDoubleConsumption(t *testing.T) {
	m := NewModel(0)
	a, b := ref("part_count"), ref("page_number")
	m.AddCandidate(a, 500, []int{7})
	m.AddCandidate(b, 500, []int{7})
	m.AddBlockExclusivityConstraints()

	result := m.Solve(context.Background())
	if !result.Feasible {
		t.Fatal("expected feasible solution")
	}
	selectedCount := 0
	for _, v := range result.Selected {
		if v {
			selectedCount++
		}
	}
	if selectedCount != 1 {
		t.Errorf("expected exactly one candidate selected for the shared block, got %d", selectedCount)
	}
}

func TestIfSelectedThenRequiresChildren(t *testing.T) {
	m := NewModel(0)
	parent := ref("step")
	child := ref("step_number")
	m.AddCandidate(parent, 500, nil)
	m.AddCandidate(child, 500, []int{1})
	m.IfSelectedThen(parent, []Ref{child}, AllOf(1))

	result := m.Solve(context.Background())
	if !result.Feasible {
		t.Fatal("expected feasible solution")
	}
	if result.Selected[parent] && !result.Selected[child] {
		t.Error("parent selected without required child")
	}
}

func TestForbidForcesVariableFalse(t *testing.T) {
	m := NewModel(0)
	a := ref("open_bag")
	m.AddCandidate(a, 900, nil)
	m.Forbid(a)

	result := m.Solve(context.Background())
	if !result.Feasible {
		t.Fatal("expected feasible solution")
	}
	if result.Selected[a] {
		t.Error("forbidden candidate should never be selected")
	}
}

func TestUnconsumedBlockPenaltyKeepsSingleAtMostOneWinner(t *testing.T) {
	m := NewModel(1000)
	low, high := ref("divider"), ref("divider")
	m.AddCandidate(low, 100, []int{1})
	m.AddCandidate(high, 50, []int{2})
	m.AtMostOneOf([]Ref{low, high})

	result := m.Solve(context.Background())
	if !result.Feasible {
		t.Fatal("expected feasible solution")
	}
	// at_most_one_of forces a single winner regardless of penalty in this
	// case; this test exercises that the solver still returns a feasible,
	// deterministic choice when the penalty term is nonzero.
	selectedCount := 0
	for _, v := range result.Selected {
		if v {
			selectedCount++
		}
	}
	if selectedCount != 1 {
		t.Errorf("expected exactly one selection, got %d", selectedCount)
	}
}
