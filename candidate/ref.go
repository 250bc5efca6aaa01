// Package candidate defines Candidate[T], the scored, not-yet-selected
// guess every classifier emits, and the reference types classifiers use to
// point at each other's candidates without aliasing a pointer.
package candidate

import (
	"github.com/google/uuid"

	"github.com/tsawler/legoclassify/element"
)

// Ref identifies one candidate by its declaring label and id, rather than
// by pointer. Candidates live inside a ClassificationResult's per-label
// maps; resolving a Ref is always a map lookup, which keeps candidates
// trivially serializable and immune to aliasing across solve/rollback
// cycles.
type Ref struct {
	Label string    `json:"label"`
	ID    uuid.UUID `json:"id"`
}

// ChildRef is a required-child reference carried in a ScoreDetails value.
// ElemType is the run-time type tag the schema package's constraint
// generator switches on in place of generic-parameter reflection — see
// element.Type.
type ChildRef struct {
	ElemType element.Type `json:"elem_type"`
	Ref      Ref          `json:"ref"`
}

// OptionRef is an optional-child reference. Present distinguishes "no
// candidate offered" from the zero Ref value, which would otherwise
// collide with a legitimate all-zero uuid in tests.
type OptionRef struct {
	ElemType element.Type `json:"elem_type"`
	Ref      Ref          `json:"ref"`
	Present  bool         `json:"present"`
}

// SequenceRef is a reference to an ordered or unordered run of children of
// the same type, such as a PartsList's Parts or a Step's Arrows.
type SequenceRef struct {
	ElemType element.Type `json:"elem_type"`
	Refs     []Ref        `json:"refs"`
}

// NewOptionRef builds a present OptionRef.
func NewOptionRef(elemType element.Type, ref Ref) OptionRef {
	return OptionRef{ElemType: elemType, Ref: ref, Present: true}
}

// NoOption builds an absent OptionRef of the given element type, used so
// the schema generator still knows what type a classifier declined to
// offer.
func NoOption(elemType element.Type) OptionRef {
	return OptionRef{ElemType: elemType}
}
