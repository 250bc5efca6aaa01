package candidate

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/tsawler/legoclassify/element"
	"github.com/tsawler/legoclassify/geometry"
)

// idNamespace seeds the SHA1-derived candidate ids below. Its value doesn't
// matter beyond being fixed, since nothing outside this process compares
// these ids against another namespace's.
var idNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// contentID derives a candidate's id from everything that identifies it at
// construction time — label, element type, bbox, score and source blocks —
// so that running the core twice on the same page yields identical
// candidate ids, rather than the fresh random id uuid.New() would draw on
// every run.
func contentID(label string, elemType element.Type, box geometry.BBox, score float64, sourceBlocks []int) uuid.UUID {
	key := fmt.Sprintf("%s|%d|%s|%.9g|%v", label, elemType, box.String(), score, sourceBlocks)
	return uuid.NewSHA1(idNamespace, []byte(key))
}

// ScoreDetails is the interface every classifier's score record implements.
// Concrete score-detail types (one per classifier, living in the
// classifiers package) carry the individual signal values a score was
// derived from, for diagnostics and re-scoring, and hold ChildRef/OptionRef/
// SequenceRef fields for any candidate dependencies.
type ScoreDetails interface {
	// Score returns the combined confidence in [0.0, 1.0].
	Score() float64
}

// AnyCandidate is the label-agnostic view of a Candidate[T], used wherever
// candidates of differing element types must share one collection (a
// Result's candidates-by-label map, the solver, the report).
type AnyCandidate interface {
	ID() uuid.UUID
	Label() string
	ElemType() element.Type
	BBox() geometry.BBox
	Score() float64
	ScoreDetails() ScoreDetails
	SourceBlocks() []int
	IsComposite() bool
	IsValid() bool
	FailureReason() string
	FailBuild(reason string)
	BuiltElement() (element.Element, bool)
	AcceptBuilt(el element.Element) error
	RestoreState(built element.Element, hasBuilt bool, failureReason string)
}

// Candidate is one scored guess that a block (or set of blocks) represents
// an element of type T. It starts unbuilt; Result.Build either constructs
// it into T or marks it failed. Atomic candidates (built directly from
// blocks) carry a non-empty SourceBlocks; composite candidates (Step,
// PartsList, Part, Scale — assembled from already-built children, not raw blocks)
// must have none. This split is enforced at construction, not just checked
// at solve time.
type Candidate[T element.Element] struct {
	id            uuid.UUID
	label         string
	elemType      element.Type
	bbox          geometry.BBox
	score         float64
	scoreDetails  ScoreDetails
	sourceBlocks  []int
	constructed   *T
	failureReason string
}

// NewAtomicCandidate builds a candidate derived directly from one or more
// source blocks. At least one source block is required; a SubAssembly, for
// example, legitimately has two (the container drawing and its step-count
// text).
func NewAtomicCandidate[T element.Element](label string, elemType element.Type, box geometry.BBox, score float64, details ScoreDetails, sourceBlocks []int) (*Candidate[T], error) {
	if len(sourceBlocks) == 0 {
		return nil, fmt.Errorf("candidate: atomic candidate %q requires at least one source block", label)
	}
	blocks := make([]int, len(sourceBlocks))
	copy(blocks, sourceBlocks)
	return &Candidate[T]{
		id:           contentID(label, elemType, box, score, blocks),
		label:        label,
		elemType:     elemType,
		bbox:         box,
		score:        score,
		scoreDetails: details,
		sourceBlocks: blocks,
	}, nil
}

// NewCompositeCandidate builds a candidate assembled from other already-
// built candidates rather than raw blocks. Composite candidates never carry
// source blocks themselves — block consumption is attributed entirely to
// their constituent atomic candidates.
func NewCompositeCandidate[T element.Element](label string, elemType element.Type, box geometry.BBox, score float64, details ScoreDetails) *Candidate[T] {
	return &Candidate[T]{
		id:           contentID(label, elemType, box, score, nil),
		label:        label,
		elemType:     elemType,
		bbox:         box,
		score:        score,
		scoreDetails: details,
	}
}

func (c *Candidate[T]) ID() uuid.UUID              { return c.id }
func (c *Candidate[T]) Label() string              { return c.label }
func (c *Candidate[T]) ElemType() element.Type     { return c.elemType }
func (c *Candidate[T]) BBox() geometry.BBox        { return c.bbox }
func (c *Candidate[T]) Score() float64             { return c.score }
func (c *Candidate[T]) ScoreDetails() ScoreDetails { return c.scoreDetails }
func (c *Candidate[T]) SourceBlocks() []int        { return c.sourceBlocks }
func (c *Candidate[T]) IsComposite() bool          { return len(c.sourceBlocks) == 0 }
func (c *Candidate[T]) FailureReason() string      { return c.failureReason }

// IsValid reports whether this candidate was successfully constructed and
// carries no failure, the test every dependent classifier must apply before
// trusting another label's candidate.
func (c *Candidate[T]) IsValid() bool {
	return c.constructed != nil && c.failureReason == ""
}

func (c *Candidate[T]) FailBuild(reason string) {
	c.failureReason = reason
}

// Constructed returns the built value and true, or the zero value and false
// if this candidate has not been successfully built.
func (c *Candidate[T]) Constructed() (T, bool) {
	if c.constructed == nil {
		var zero T
		return zero, false
	}
	return *c.constructed, true
}

func (c *Candidate[T]) BuiltElement() (element.Element, bool) {
	if c.constructed == nil {
		var zero T
		return zero, false
	}
	return *c.constructed, true
}

// AcceptBuilt stores el as this candidate's constructed value. It fails if
// el is not a T, which would indicate a builder registered under the wrong
// label.
func (c *Candidate[T]) AcceptBuilt(el element.Element) error {
	v, ok := el.(T)
	if !ok {
		return fmt.Errorf("candidate: label %q expected %T, got %T", c.label, *new(T), el)
	}
	c.constructed = &v
	c.failureReason = ""
	return nil
}

// RestoreState resets this candidate to a previously captured state. Used
// only by Result's build-rollback machinery.
func (c *Candidate[T]) RestoreState(built element.Element, hasBuilt bool, failureReason string) {
	if hasBuilt {
		v, ok := built.(T)
		if !ok {
			// Snapshot taken from this same candidate's BuiltElement, so the
			// type always matches; defensively no-op otherwise.
			c.failureReason = failureReason
			return
		}
		c.constructed = &v
	} else {
		c.constructed = nil
	}
	c.failureReason = failureReason
}

// Ref returns the (label, id) reference other candidates' score details use
// to point at this one.
func (c *Candidate[T]) Ref() Ref {
	return Ref{Label: c.label, ID: c.id}
}
