package spatial

import (
	"sort"

	"github.com/tsawler/legoclassify/candidate"
	"github.com/tsawler/legoclassify/geometry"
)

// Candidate is the minimal view assignment needs of a scored candidate:
// its reference and bounding box. candidate.AnyCandidate already satisfies
// this.
type Candidate interface {
	BBox() geometry.BBox
}

// Binding is one resolved parent-to-child spatial assignment.
type Binding struct {
	ParentRef candidate.Ref
	ChildRef  candidate.Ref
	Cost      float64
}

// AssignOneToOne matches each parent to at most one child (e.g. a Step's
// Diagram field) minimizing total cost. parents and children must be
// disjoint slices of already-selected candidates; order does not matter,
// the returned Bindings carry explicit refs. Children left unmatched are
// the caller's responsibility to attach to a page-level standalone
// collection.
func AssignOneToOne(parents, children []candidate.AnyCandidate, opts CostOptions) []Binding {
	return assign(parents, children, onesCapacity(len(parents)), opts)
}

// AssignOneToMany matches each parent to up to capacity children (e.g. a
// Step's Arrows sequence) minimizing total cost. capacity[i] corresponds to
// parents[i]; a shorter capacity slice implies capacity 1 for the remainder.
func AssignOneToMany(parents, children []candidate.AnyCandidate, capacity []int, opts CostOptions) []Binding {
	return assign(parents, children, capacity, opts)
}

func assign(parents, children []candidate.AnyCandidate, capacity []int, opts CostOptions) []Binding {
	if len(parents) == 0 || len(children) == 0 {
		return nil
	}

	parentBoxes := make([]geometry.BBox, len(parents))
	for i, p := range parents {
		parentBoxes[i] = p.BBox()
	}
	childBoxes := make([]geometry.BBox, len(children))
	for i, c := range children {
		childBoxes[i] = c.BBox()
	}

	matrix := CostMatrix(parentBoxes, childBoxes, opts)
	assignments := SolveOneToMany(matrix, capacity)

	bindings := make([]Binding, 0, len(assignments))
	for _, a := range assignments {
		bindings = append(bindings, Binding{
			ParentRef: refOf(parents[a.Parent]),
			ChildRef:  refOf(children[a.Child]),
			Cost:      a.Cost,
		})
	}

	sort.Slice(bindings, func(i, j int) bool {
		if bindings[i].ParentRef.Label != bindings[j].ParentRef.Label {
			return bindings[i].ParentRef.Label < bindings[j].ParentRef.Label
		}
		if bindings[i].ParentRef.ID != bindings[j].ParentRef.ID {
			return bindings[i].ParentRef.ID.String() < bindings[j].ParentRef.ID.String()
		}
		return bindings[i].ChildRef.ID.String() < bindings[j].ChildRef.ID.String()
	})

	return bindings
}

func refOf(c candidate.AnyCandidate) candidate.Ref {
	return candidate.Ref{Label: c.Label(), ID: c.ID()}
}

// Unassigned returns the subset of candidates whose Ref does not appear as
// a ChildRef in bindings — callers attach these to a page's standalone
// collection instead of a parent's field.
func Unassigned(children []candidate.AnyCandidate, bindings []Binding) []candidate.AnyCandidate {
	matched := make(map[candidate.Ref]bool, len(bindings))
	for _, b := range bindings {
		matched[b.ChildRef] = true
	}
	var out []candidate.AnyCandidate
	for _, c := range children {
		if !matched[refOf(c)] {
			out = append(out, c)
		}
	}
	return out
}
