package schema

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/tsawler/legoclassify/candidate"
	"github.com/tsawler/legoclassify/constraint"
	"github.com/tsawler/legoclassify/element"
	"github.com/tsawler/legoclassify/geometry"
)

type stepScore struct {
	StepNumber candidate.ChildRef
	PartsList  candidate.OptionRef
}

func (s stepScore) Score() float64 { return 0.9 }

func TestGenerateRequiresChildRefWhenParentSelected(t *testing.T) {
	box := geometry.MustBBox(0, 0, 10, 10)

	stepNumberCand, _ := candidate.NewAtomicCandidate[element.StepNumber]("step_number", element.TypeStepNumber, box, 0.9, fixedScore(0.9), []int{1})
	stepNumberRef := candidate.Ref{Label: stepNumberCand.Label(), ID: stepNumberCand.ID()}

	stepCand := candidate.NewCompositeCandidate[element.Step]("step", element.TypeStep, box, 0.9, stepScore{
		StepNumber: candidate.ChildRef{ElemType: element.TypeStepNumber, Ref: stepNumberRef},
		PartsList:  candidate.NoOption(element.TypePartsList),
	})

	result := candidate.NewResult(1)
	result.AddCandidate(stepNumberCand)
	result.AddCandidate(stepCand)

	model := constraint.NewModel(0)
	model.AddCandidate(stepNumberRef, 900, stepNumberCand.SourceBlocks())
	stepRef := candidate.Ref{Label: stepCand.Label(), ID: stepCand.ID()}
	model.AddCandidate(stepRef, 900, nil)

	if err := Generate("step", result, model, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sol := model.Solve(context.Background())
	if !sol.Feasible {
		t.Fatal("expected feasible solution")
	}
	if sol.Selected[stepRef] && !sol.Selected[stepNumberRef] {
		t.Error("step selected without its required step_number child")
	}
}

func TestGenerateRejectsUnregisteredChild(t *testing.T) {
	box := geometry.MustBBox(0, 0, 10, 10)
	danglingRef := candidate.Ref{Label: "step_number", ID: uuid.New()}

	stepCand := candidate.NewCompositeCandidate[element.Step]("step", element.TypeStep, box, 0.9, stepScore{
		StepNumber: candidate.ChildRef{ElemType: element.TypeStepNumber, Ref: danglingRef},
	})

	result := candidate.NewResult(1)
	result.AddCandidate(stepCand)

	model := constraint.NewModel(0)
	stepRef := candidate.Ref{Label: stepCand.Label(), ID: stepCand.ID()}
	model.AddCandidate(stepRef, 900, nil)

	if err := Generate("step", result, model, nil); err == nil {
		t.Error("expected an error for a ChildRef pointing at an unregistered candidate")
	}
}

type fixedScore float64

func (f fixedScore) Score() float64 { return float64(f) }
