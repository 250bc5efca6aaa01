package classifier

import (
	"sort"

	"github.com/tsawler/legoclassify/block"
	"github.com/tsawler/legoclassify/candidate"
	"github.com/tsawler/legoclassify/element"
	"github.com/tsawler/legoclassify/spatial"
)

// maxChildrenPerStep bounds how many Arrow/SubAssembly/SubStep candidates
// spatial assignment may bind to a single Step. k-capacity matching for
// sequence fields needs some ceiling; this is a generous practical one
// rather than a modeled invariant.
const maxChildrenPerStep = 8

// assemble stitches every selected, built candidate into the page's root
// Page element, running spatial assignment for the fields classifiers
// never pre-pair: a Step's Diagram, Arrows, Rotation, SubAssemblies, and
// SubSteps, and a SubStep's own Diagram.
func assemble(page *block.PageData, result *candidate.Result, selected map[candidate.Ref]bool) element.Page {
	pg := element.Page{Index: page.Index(), Width: page.Width(), Height: page.Height()}

	pg.PageNumber = firstSelected[element.PageNumber](result, "page_number", selected)
	pg.ProgressBar = firstSelected[element.ProgressBar](result, "progress_bar", selected)
	pg.ProgressBarIndicator = firstSelected[element.ProgressBarIndicator](result, "progress_bar_indicator", selected)
	pg.BagNumbers = allSelected[element.BagNumber](result, "bag_number", selected)
	pg.OpenBags = allSelected[element.OpenBag](result, "open_bag", selected)
	pg.NewBags = allSelected[element.NewBag](result, "new_bag", selected)
	pg.Dividers = allSelected[element.Divider](result, "divider", selected)
	pg.Backgrounds = allSelected[element.Background](result, "background", selected)
	pg.LoosePartSymbols = allSelected[element.LoosePartSymbol](result, "loose_part_symbol", selected)
	pg.Scales = allSelected[element.Scale](result, "scale", selected)
	pg.Previews = allSelected[element.Preview](result, "preview", selected)
	pg.TriviaTexts = allSelected[element.TriviaText](result, "trivia_text", selected)
	pg.Decoration = firstSelected[element.Decoration](result, "decoration", selected)

	stepCands := selectedCandidates(result, "step", selected)
	diagramCands := selectedCandidates(result, "diagram", selected)
	arrowCands := selectedCandidates(result, "arrow", selected)
	rotationCands := selectedCandidates(result, "rotation_symbol", selected)
	subAssemblyCands := selectedCandidates(result, "sub_assembly", selected)
	subStepCands := selectedCandidates(result, "sub_step", selected)

	costOpts := spatial.CostOptions{}

	diagramToStep := spatial.AssignOneToOne(stepCands, diagramCands, costOpts)
	rotationToStep := spatial.AssignOneToOne(stepCands, rotationCands, costOpts)
	arrowToStep := spatial.AssignOneToMany(stepCands, arrowCands, capacities(len(stepCands)), costOpts)
	subAssemblyToStep := spatial.AssignOneToMany(stepCands, subAssemblyCands, capacities(len(stepCands)), costOpts)
	subStepToStep := spatial.AssignOneToMany(stepCands, subStepCands, capacities(len(stepCands)), costOpts)

	remainingDiagrams := spatial.Unassigned(diagramCands, diagramToStep)
	diagramToSubStep := spatial.AssignOneToOne(subStepCands, remainingDiagrams, costOpts)

	finishedSubSteps := map[candidate.Ref]element.SubStep{}
	for _, c := range subStepCands {
		el, ok := builtAs[element.SubStep](c)
		if !ok {
			continue
		}
		ref := refOf(c)
		el.Diagram = diagramByParent(diagramToSubStep, ref, remainingDiagrams)
		finishedSubSteps[ref] = el
	}

	for _, c := range stepCands {
		step, ok := builtAs[element.Step](c)
		if !ok {
			continue
		}
		ref := refOf(c)
		step.Diagram = diagramByParent(diagramToStep, ref, diagramCands)
		step.Rotation = rotationByParent(rotationToStep, ref, rotationCands)
		step.Arrows = arrowsByParent(arrowToStep, ref, arrowCands)
		step.SubAssemblies = subAssembliesByParent(subAssemblyToStep, ref, subAssemblyCands)
		step.SubSteps = subStepsByParent(subStepToStep, ref, finishedSubSteps)
		pg.Steps = append(pg.Steps, step)
	}

	leftoverDiagrams := spatial.Unassigned(remainingDiagrams, diagramToSubStep)
	pg.StandaloneDiagrams = builtElements[element.Diagram](leftoverDiagrams)

	leftoverArrows := spatial.Unassigned(arrowCands, arrowToStep)
	pg.StandaloneArrows = builtElements[element.Arrow](leftoverArrows)

	pg.Warnings = result.Warnings()

	return pg
}

func refOf(c candidate.AnyCandidate) candidate.Ref {
	return candidate.Ref{Label: c.Label(), ID: c.ID()}
}

func builtAs[T element.Element](c candidate.AnyCandidate) (T, bool) {
	el, ok := c.BuiltElement()
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := el.(T)
	return typed, ok
}

func builtElements[T element.Element](cands []candidate.AnyCandidate) []T {
	var out []T
	for _, c := range cands {
		if el, ok := builtAs[T](c); ok {
			out = append(out, el)
		}
	}
	return out
}

func selectedCandidates(result *candidate.Result, label string, selected map[candidate.Ref]bool) []candidate.AnyCandidate {
	var out []candidate.AnyCandidate
	for _, c := range result.Candidates(label) {
		if selected[refOf(c)] {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID().String() < out[j].ID().String() })
	return out
}

func capacities(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = maxChildrenPerStep
	}
	return out
}

func firstSelected[T element.Element](result *candidate.Result, label string, selected map[candidate.Ref]bool) *T {
	for _, c := range selectedCandidates(result, label, selected) {
		if el, ok := builtAs[T](c); ok {
			return &el
		}
	}
	return nil
}

func allSelected[T element.Element](result *candidate.Result, label string, selected map[candidate.Ref]bool) []T {
	var out []T
	for _, c := range selectedCandidates(result, label, selected) {
		if el, ok := builtAs[T](c); ok {
			out = append(out, el)
		}
	}
	return out
}

func diagramByParent(bindings []spatial.Binding, parent candidate.Ref, diagramCands []candidate.AnyCandidate) *element.Diagram {
	for _, b := range bindings {
		if b.ParentRef != parent {
			continue
		}
		for _, c := range diagramCands {
			if refOf(c) == b.ChildRef {
				if el, ok := builtAs[element.Diagram](c); ok {
					return &el
				}
			}
		}
	}
	return nil
}

func rotationByParent(bindings []spatial.Binding, parent candidate.Ref, rotationCands []candidate.AnyCandidate) *element.RotationSymbol {
	for _, b := range bindings {
		if b.ParentRef != parent {
			continue
		}
		for _, c := range rotationCands {
			if refOf(c) == b.ChildRef {
				if el, ok := builtAs[element.RotationSymbol](c); ok {
					return &el
				}
			}
		}
	}
	return nil
}

func arrowsByParent(bindings []spatial.Binding, parent candidate.Ref, arrowCands []candidate.AnyCandidate) []element.Arrow {
	var out []element.Arrow
	for _, b := range bindings {
		if b.ParentRef != parent {
			continue
		}
		for _, c := range arrowCands {
			if refOf(c) == b.ChildRef {
				if el, ok := builtAs[element.Arrow](c); ok {
					out = append(out, el)
				}
			}
		}
	}
	return out
}

func subAssembliesByParent(bindings []spatial.Binding, parent candidate.Ref, cands []candidate.AnyCandidate) []element.SubAssembly {
	var out []element.SubAssembly
	for _, b := range bindings {
		if b.ParentRef != parent {
			continue
		}
		for _, c := range cands {
			if refOf(c) == b.ChildRef {
				if el, ok := builtAs[element.SubAssembly](c); ok {
					out = append(out, el)
				}
			}
		}
	}
	return out
}

func subStepsByParent(bindings []spatial.Binding, parent candidate.Ref, finished map[candidate.Ref]element.SubStep) []element.SubStep {
	var out []element.SubStep
	for _, b := range bindings {
		if b.ParentRef != parent {
			continue
		}
		if el, ok := finished[b.ChildRef]; ok {
			out = append(out, el)
		}
	}
	return out
}
