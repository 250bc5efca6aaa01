package element

import "github.com/tsawler/legoclassify/geometry"

// PageNumber is the page number printed on the page.
type PageNumber struct {
	BBox  geometry.BBox
	Value int
}

func (e PageNumber) ElementType() Type            { return TypePageNumber }
func (e PageNumber) BoundingBox() geometry.BBox   { return e.BBox }

// StepNumber is a step's ordinal label.
type StepNumber struct {
	BBox  geometry.BBox
	Value int
}

func (e StepNumber) ElementType() Type          { return TypeStepNumber }
func (e StepNumber) BoundingBox() geometry.BBox { return e.BBox }

// SubstepNumber is an ordinal label for a SubStep nested inside a Step.
type SubstepNumber struct {
	BBox  geometry.BBox
	Value int
}

func (e SubstepNumber) ElementType() Type          { return TypeSubstepNumber }
func (e SubstepNumber) BoundingBox() geometry.BBox { return e.BBox }

// PartCount is the "NNx" visual count label attached to a Part.
type PartCount struct {
	BBox  geometry.BBox
	Count int
}

func (e PartCount) ElementType() Type          { return TypePartCount }
func (e PartCount) BoundingBox() geometry.BBox { return e.BBox }

// PartImage is the image of a single part within a parts list entry.
type PartImage struct {
	BBox geometry.BBox
}

func (e PartImage) ElementType() Type          { return TypePartImage }
func (e PartImage) BoundingBox() geometry.BBox { return e.BBox }

// PartNumber is the printed part/element number beneath a Part entry.
type PartNumber struct {
	BBox  geometry.BBox
	Value string
}

func (e PartNumber) ElementType() Type          { return TypePartNumber }
func (e PartNumber) BoundingBox() geometry.BBox { return e.BBox }

// PieceLength is a length-in-studs callout, typically attached to Technic
// beams and axles (a number beside a ruled diagram).
type PieceLength struct {
	BBox   geometry.BBox
	Studs  int
}

func (e PieceLength) ElementType() Type          { return TypePieceLength }
func (e PieceLength) BoundingBox() geometry.BBox { return e.BBox }

// Part is a single parts-list entry: required PartCount, an image, and
// optional PartNumber/PieceLength callouts.
type Part struct {
	BBox        geometry.BBox
	Count       PartCount  // required
	Image       *PartImage // required; pointer only to allow a transitional nil during build failure paths
	Number      *PartNumber
	PieceLength *PieceLength
}

func (e Part) ElementType() Type          { return TypePart }
func (e Part) BoundingBox() geometry.BBox { return e.BBox }

// PartsList groups every Part detected within one parts-list container.
type PartsList struct {
	BBox  geometry.BBox
	Parts []Part // sequence, min 1
}

func (e PartsList) ElementType() Type          { return TypePartsList }
func (e PartsList) BoundingBox() geometry.BBox { return e.BBox }

// TotalItems sums counts across every Part, accounting for multiplicity.
func (e PartsList) TotalItems() int {
	total := 0
	for _, p := range e.Parts {
		total += p.Count.Count
	}
	return total
}

// Diagram is the main illustration of how to complete a step.
type Diagram struct {
	BBox geometry.BBox
}

func (e Diagram) ElementType() Type          { return TypeDiagram }
func (e Diagram) BoundingBox() geometry.BBox { return e.BBox }

// Arrow is a directional callout, e.g. showing where a part snaps in.
type Arrow struct {
	BBox geometry.BBox
}

func (e Arrow) ElementType() Type          { return TypeArrow }
func (e Arrow) BoundingBox() geometry.BBox { return e.BBox }

// RotationSymbol indicates the model should be rotated before the next step.
type RotationSymbol struct {
	BBox geometry.BBox
}

func (e RotationSymbol) ElementType() Type          { return TypeRotationSymbol }
func (e RotationSymbol) BoundingBox() geometry.BBox { return e.BBox }

// SubAssembly is a boxed-off cluster of drawings representing a
// sub-assembly built in parallel to the main model, labeled with a step
// count.
type SubAssembly struct {
	BBox      geometry.BBox
	StepCount int
}

func (e SubAssembly) ElementType() Type          { return TypeSubAssembly }
func (e SubAssembly) BoundingBox() geometry.BBox { return e.BBox }

// SubStep is a secondary, nested step within a Step (e.g. assembling a
// bracket before attaching it in the main step).
type SubStep struct {
	BBox          geometry.BBox
	SubstepNumber *SubstepNumber
	PartsList     *PartsList
	Diagram       *Diagram
}

func (e SubStep) ElementType() Type          { return TypeSubStep }
func (e SubStep) BoundingBox() geometry.BBox { return e.BBox }

// BagNumber is the printed number identifying a numbered bag of parts.
type BagNumber struct {
	BBox  geometry.BBox
	Value int
}

func (e BagNumber) ElementType() Type          { return TypeBagNumber }
func (e BagNumber) BoundingBox() geometry.BBox { return e.BBox }

// OpenBag is the "open a new bag" glyph, paired with the bag it introduces.
type OpenBag struct {
	BBox   geometry.BBox
	Number BagNumber
}

func (e OpenBag) ElementType() Type          { return TypeOpenBag }
func (e OpenBag) BoundingBox() geometry.BBox { return e.BBox }

// ProgressBar is the strip showing overall build progress.
type ProgressBar struct {
	BBox geometry.BBox
}

func (e ProgressBar) ElementType() Type          { return TypeProgressBar }
func (e ProgressBar) BoundingBox() geometry.BBox { return e.BBox }

// ProgressBarIndicator is the filled marker within a ProgressBar showing
// current position.
type ProgressBarIndicator struct {
	BBox geometry.BBox
}

func (e ProgressBarIndicator) ElementType() Type          { return TypeProgressBarIndicator }
func (e ProgressBarIndicator) BoundingBox() geometry.BBox { return e.BBox }

// Divider is a horizontal or vertical rule separating page regions.
type Divider struct {
	BBox geometry.BBox
}

func (e Divider) ElementType() Type          { return TypeDivider }
func (e Divider) BoundingBox() geometry.BBox { return e.BBox }

// Background is a full- or partial-page decorative fill.
type Background struct {
	BBox geometry.BBox
}

func (e Background) ElementType() Type          { return TypeBackground }
func (e Background) BoundingBox() geometry.BBox { return e.BBox }

// LoosePartSymbol marks a part that should be kept loose rather than built
// in immediately.
type LoosePartSymbol struct {
	BBox geometry.BBox
}

func (e LoosePartSymbol) ElementType() Type          { return TypeLoosePartSymbol }
func (e LoosePartSymbol) BoundingBox() geometry.BBox { return e.BBox }

// Shine is a highlight glyph drawn over a part image to suggest it is new
// or notable.
type Shine struct {
	BBox geometry.BBox
}

func (e Shine) ElementType() Type          { return TypeShine }
func (e Shine) BoundingBox() geometry.BBox { return e.BBox }

// ScaleText is the "1:1" label identifying a scale indicator.
type ScaleText struct {
	BBox geometry.BBox
	Text string
}

func (e ScaleText) ElementType() Type          { return TypeScaleText }
func (e ScaleText) BoundingBox() geometry.BBox { return e.BBox }

// Scale is a 1:1 scale indicator: a bordered box containing the "1:1" text
// and, usually, a PieceLength callout builders can measure a part against
// directly on the printed page.
type Scale struct {
	BBox   geometry.BBox
	Text   ScaleText // required
	Length *PieceLength
}

func (e Scale) ElementType() Type          { return TypeScale }
func (e Scale) BoundingBox() geometry.BBox { return e.BBox }

// Preview is a white box, typically on a front-matter page, showing what the
// completed model (or a section of it) will look like once built.
type Preview struct {
	BBox    geometry.BBox
	Diagram *Diagram
}

func (e Preview) ElementType() Type          { return TypePreview }
func (e Preview) BoundingBox() geometry.BBox { return e.BBox }

// TriviaText is a block of informational or flavor text unrelated to
// assembly instructions, such as background on the set's theme.
type TriviaText struct {
	BBox      geometry.BBox
	TextLines []string
}

func (e TriviaText) ElementType() Type          { return TypeTriviaText }
func (e TriviaText) BoundingBox() geometry.BBox { return e.BBox }

// NewBag is the "open bag N" graphic: a BagNumber surrounded by a cluster of
// images forming a bag icon, distinct from OpenBag's circular glyph.
type NewBag struct {
	BBox   geometry.BBox
	Number BagNumber
}

func (e NewBag) ElementType() Type          { return TypeNewBag }
func (e NewBag) BoundingBox() geometry.BBox { return e.BBox }

// Decoration claims every block on a page whose content is front matter
// (cover, credits, table of contents) rather than build instructions,
// preventing those blocks from being left unassigned.
type Decoration struct {
	BBox geometry.BBox
}

func (e Decoration) ElementType() Type          { return TypeDecoration }
func (e Decoration) BoundingBox() geometry.BBox { return e.BBox }

// StepCount is a substep callout's "NNx" repeat count, distinct from
// StepNumber: it shares PartCount's visual pattern but sits at a font size
// between part counts and step numbers.
type StepCount struct {
	BBox  geometry.BBox
	Count int
}

func (e StepCount) ElementType() Type          { return TypeStepCount }
func (e StepCount) BoundingBox() geometry.BBox { return e.BBox }

// Step is a single instruction step: a required StepNumber, optional
// PartsList, spatially-assigned optional Diagram, and sequences of Arrow
// and SubAssembly children.
type Step struct {
	BBox         geometry.BBox
	StepNumber   StepNumber // required
	PartsList    *PartsList // optional
	Diagram      *Diagram   // optional, spatially assigned post-solve
	Arrows       []Arrow
	SubAssemblies []SubAssembly
	SubSteps     []SubStep
	Rotation     *RotationSymbol
}

func (e Step) ElementType() Type          { return TypeStep }
func (e Step) BoundingBox() geometry.BBox { return e.BBox }

// Page is the root element for one classified page: the required structural
// elements plus everything spatially unassigned, preserved as standalone
// collections rather than dropped.
type Page struct {
	Index  int
	Width  float64
	Height float64

	PageNumber *PageNumber
	Steps      []Step
	BagNumbers []BagNumber
	OpenBags   []OpenBag
	NewBags    []NewBag

	ProgressBar           *ProgressBar
	ProgressBarIndicator  *ProgressBarIndicator
	Dividers              []Divider
	Backgrounds           []Background
	LoosePartSymbols      []LoosePartSymbol
	Scales                []Scale
	Previews              []Preview
	TriviaTexts           []TriviaText

	// Decoration is set when the page's content is front matter (cover,
	// credits, table of contents) claimed wholesale rather than decomposed
	// into steps.
	Decoration *Decoration

	// StandaloneDiagrams/StandaloneArrows hold candidates of those types
	// that were selected by the solver but not claimed by spatial
	// assignment into any Step — unassigned candidates are attached to the
	// Page's standalone collection instead of dropped.
	StandaloneDiagrams []Diagram
	StandaloneArrows   []Arrow

	// Warnings carries non-fatal build/solve issues surfaced on the root
	// element: a build failure produces a non-fatal warning here rather
	// than aborting the page.
	Warnings []string
}

func (e Page) ElementType() Type { return TypePage }
func (e Page) BoundingBox() geometry.BBox {
	b, _ := geometry.NewBBox(0, 0, e.Width, e.Height)
	return b
}
