package classifiers

import (
	"fmt"
	"math"
	"sort"

	"github.com/tsawler/legoclassify/block"
	"github.com/tsawler/legoclassify/candidate"
	"github.com/tsawler/legoclassify/element"
	"github.com/tsawler/legoclassify/geometry"
	"github.com/tsawler/legoclassify/hints"
	"github.com/tsawler/legoclassify/schema"
)

func refOf(c candidate.AnyCandidate) candidate.Ref {
	return candidate.Ref{Label: c.Label(), ID: c.ID()}
}

// closestWithin returns the candidate among cands whose bbox center is
// nearest to anchor's center, or ok=false if none lies within maxDist
// points — the bounded local search every composite classifier in this
// file uses in place of pre-assigning a specific child; the solver, not
// scoring, decides which hypothesis wins.
func closestWithin(cands []candidate.AnyCandidate, anchor geometry.BBox, maxDist float64) (candidate.AnyCandidate, bool) {
	var best candidate.AnyCandidate
	bestDist := math.MaxFloat64
	for _, c := range cands {
		d := c.BBox().Center().Distance(anchor.Center())
		if d < bestDist {
			bestDist = d
			best = c
		}
	}
	if best == nil || bestDist > maxDist {
		return nil, false
	}
	return best, true
}

// --- PartImageClassifier -------------------------------------------------

// PartImageClassifier wraps every Image block as a Part candidate's image
// child with a flat positive score; pairing with PartCount is PartClassifier's
// job.
type PartImageClassifier struct{}

func (PartImageClassifier) Output() string     { return "part_image" }
func (PartImageClassifier) Requires() []string { return nil }

func (PartImageClassifier) Score(page *block.PageData, docHints hints.DocumentHints, result *candidate.Result) {
	for _, b := range page.BlocksOfKind(block.KindImage) {
		img := b.(block.Image)
		const score = 0.55
		c, err := candidate.NewAtomicCandidate[element.PartImage](
			"part_image", element.TypePartImage, img.Box, score, intrinsicScore(score), []int{img.BlockID})
		if err == nil {
			result.AddCandidate(c)
		}
	}
}

func (PartImageClassifier) Build(c candidate.AnyCandidate, result *candidate.Result) (element.Element, error) {
	return element.PartImage{BBox: c.BBox()}, nil
}

// --- PartClassifier -------------------------------------------------------

// partScore is PartClassifier's ScoreDetails.
type partScore struct {
	value       float64
	Count       candidate.ChildRef
	Image       candidate.ChildRef
	Number      candidate.OptionRef
	PieceLength candidate.OptionRef
}

func (s partScore) Score() float64 { return s.value }

// PartClassifier pairs each PartCount with a PartImage directly above it
// and horizontally overlapping within tolerance, optionally attaching the
// nearest PartNumber/PieceLength.
type PartClassifier struct{}

func (PartClassifier) Output() string { return "part" }
func (PartClassifier) Requires() []string {
	return []string{"part_count", "part_image", "part_number", "piece_length"}
}

func (PartClassifier) Score(page *block.PageData, docHints hints.DocumentHints, result *candidate.Result) {
	counts := result.ScoredCandidates("part_count", 0, false)
	images := result.ScoredCandidates("part_image", 0, false)
	numbers := result.ScoredCandidates("part_number", 0, false)
	pieceLengths := result.ScoredCandidates("piece_length", 0, false)

	proximityScale := NewLinearScale(map[float64]float64{0: 1, 40: 0.6, 90: 0})
	const minOverlap = 3
	const maxGap = 90

	for _, count := range counts {
		for _, image := range images {
			if !image.BBox().Above(count.BBox(), 4) {
				continue
			}
			gap := count.BBox().VerticalDistance(image.BBox())
			if gap > maxGap {
				continue
			}
			if !image.BBox().HorizontallyOverlaps(count.BBox(), minOverlap) {
				continue
			}

			proximity := proximityScale.Score(gap)
			align := 0.6
			if image.BBox().AlignedLeft(count.BBox(), 6) {
				align = 1.0
			}

			box := count.BBox().Union(image.BBox())

			numberOpt := candidate.NoOption(element.TypePartNumber)
			if n, ok := closestWithin(numbers, box, 80); ok {
				numberOpt = candidate.NewOptionRef(element.TypePartNumber, refOf(n))
				box = box.Union(n.BBox())
			}
			pieceLenOpt := candidate.NoOption(element.TypePieceLength)
			if p, ok := closestWithin(pieceLengths, box, 80); ok {
				pieceLenOpt = candidate.NewOptionRef(element.TypePieceLength, refOf(p))
				box = box.Union(p.BBox())
			}

			score := weightedAverage(
				[2]float64{proximity, 0.5},
				[2]float64{align, 0.3},
				[2]float64{count.Score(), 0.1},
				[2]float64{image.Score(), 0.1},
			)

			details := partScore{
				value:       score,
				Count:       candidate.ChildRef{ElemType: element.TypePartCount, Ref: refOf(count)},
				Image:       candidate.ChildRef{ElemType: element.TypePartImage, Ref: refOf(image)},
				Number:      numberOpt,
				PieceLength: pieceLenOpt,
			}
			cand := candidate.NewCompositeCandidate[element.Part]("part", element.TypePart, box, score, details)
			result.AddCandidate(cand)
		}
	}
}

func (PartClassifier) Build(c candidate.AnyCandidate, result *candidate.Result) (element.Element, error) {
	details, ok := c.ScoreDetails().(partScore)
	if !ok {
		return nil, fmt.Errorf("part: unexpected score details type %T", c.ScoreDetails())
	}

	countCand := result.CandidateByRef(details.Count.Ref)
	if countCand == nil {
		return nil, fmt.Errorf("part: count candidate %v not found", details.Count.Ref)
	}
	countEl, err := result.Build(countCand)
	if err != nil {
		return nil, fmt.Errorf("part: building count: %w", err)
	}
	count, ok := countEl.(element.PartCount)
	if !ok {
		return nil, fmt.Errorf("part: count built as unexpected type %T", countEl)
	}

	imageCand := result.CandidateByRef(details.Image.Ref)
	if imageCand == nil {
		return nil, fmt.Errorf("part: image candidate %v not found", details.Image.Ref)
	}
	imageEl, err := result.Build(imageCand)
	if err != nil {
		return nil, fmt.Errorf("part: building image: %w", err)
	}
	image, ok := imageEl.(element.PartImage)
	if !ok {
		return nil, fmt.Errorf("part: image built as unexpected type %T", imageEl)
	}

	part := element.Part{BBox: c.BBox(), Count: count, Image: &image}

	if details.Number.Present {
		numCand := result.CandidateByRef(details.Number.Ref)
		if numCand == nil {
			return nil, fmt.Errorf("part: number candidate %v not found", details.Number.Ref)
		}
		numEl, err := result.Build(numCand)
		if err != nil {
			return nil, fmt.Errorf("part: building number: %w", err)
		}
		num, ok := numEl.(element.PartNumber)
		if !ok {
			return nil, fmt.Errorf("part: number built as unexpected type %T", numEl)
		}
		part.Number = &num
	}

	if details.PieceLength.Present {
		plCand := result.CandidateByRef(details.PieceLength.Ref)
		if plCand == nil {
			return nil, fmt.Errorf("part: piece_length candidate %v not found", details.PieceLength.Ref)
		}
		plEl, err := result.Build(plCand)
		if err != nil {
			return nil, fmt.Errorf("part: building piece_length: %w", err)
		}
		pl, ok := plEl.(element.PieceLength)
		if !ok {
			return nil, fmt.Errorf("part: piece_length built as unexpected type %T", plEl)
		}
		part.PieceLength = &pl
	}

	return part, nil
}

// --- PartsListClassifier --------------------------------------------------

// partsListScore is PartsListClassifier's ScoreDetails.
type partsListScore struct {
	value float64
	Parts candidate.SequenceRef
}

func (s partsListScore) Score() float64 { return s.value }

// PartsListClassifier groups Part candidates fully contained within a
// vector Drawing container.
type PartsListClassifier struct{}

func (PartsListClassifier) Output() string     { return "parts_list" }
func (PartsListClassifier) Requires() []string { return []string{"part"} }

func (PartsListClassifier) Score(page *block.PageData, docHints hints.DocumentHints, result *candidate.Result) {
	parts := result.ScoredCandidates("part", 0, false)
	countScale := NewLinearScale(map[float64]float64{1: 0.4, 3: 0.75, 6: 1})

	for _, b := range page.BlocksOfKind(block.KindDrawing) {
		container := b.(block.Drawing)
		containerBox := container.EffectiveBBox()

		var contained []candidate.AnyCandidate
		for _, p := range parts {
			if p.BBox().FullyInside(containerBox) {
				contained = append(contained, p)
			}
		}
		if len(contained) == 0 {
			continue
		}

		sort.Slice(contained, func(i, j int) bool { return contained[i].ID().String() < contained[j].ID().String() })

		score := countScale.Score(float64(len(contained)))

		refs := make([]candidate.Ref, 0, len(contained))
		for _, p := range contained {
			refs = append(refs, refOf(p))
		}

		details := partsListScore{value: score, Parts: candidate.SequenceRef{ElemType: element.TypePart, Refs: refs}}
		cand := candidate.NewCompositeCandidate[element.PartsList]("parts_list", element.TypePartsList, container.Box, score, details)
		result.AddCandidate(cand)
	}
}

func (PartsListClassifier) Build(c candidate.AnyCandidate, result *candidate.Result) (element.Element, error) {
	details, ok := c.ScoreDetails().(partsListScore)
	if !ok {
		return nil, fmt.Errorf("parts_list: unexpected score details type %T", c.ScoreDetails())
	}

	parts := make([]element.Part, 0, len(details.Parts.Refs))
	for _, ref := range details.Parts.Refs {
		childCand := result.CandidateByRef(ref)
		if childCand == nil {
			return nil, fmt.Errorf("parts_list: part candidate %v not found", ref)
		}
		el, err := result.Build(childCand)
		if err != nil {
			return nil, fmt.Errorf("parts_list: building part %v: %w", ref, err)
		}
		part, ok := el.(element.Part)
		if !ok {
			return nil, fmt.Errorf("parts_list: part built as unexpected type %T", el)
		}
		parts = append(parts, part)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("parts_list: no parts survived build")
	}

	return element.PartsList{BBox: c.BBox(), Parts: parts}, nil
}

// --- StepClassifier --------------------------------------------------------

// stepScore is StepClassifier's ScoreDetails. Diagram/Arrows/SubAssemblies/
// SubSteps/Rotation are deliberately absent: those fields are spatially
// assigned after solving, not referenced during scoring.
type stepScore struct {
	value      float64
	StepNumber candidate.ChildRef
	PartsList  candidate.OptionRef
}

func (s stepScore) Score() float64 { return s.value }

// StepClassifier pairs each StepNumber with the nearest compatible
// PartsList.
type StepClassifier struct{}

func (StepClassifier) Output() string     { return "step" }
func (StepClassifier) Requires() []string { return []string{"step_number", "parts_list"} }

func (StepClassifier) Score(page *block.PageData, docHints hints.DocumentHints, result *candidate.Result) {
	stepNumbers := result.ScoredCandidates("step_number", 0, false)
	partsLists := result.ScoredCandidates("parts_list", 0, false)

	const maxPartsListDistance = 350

	for _, sn := range stepNumbers {
		box := sn.BBox()
		plOpt := candidate.NoOption(element.TypePartsList)
		score := sn.Score() * 0.9

		if pl, ok := closestWithin(partsLists, box, maxPartsListDistance); ok {
			plOpt = candidate.NewOptionRef(element.TypePartsList, refOf(pl))
			box = box.Union(pl.BBox())
			score = weightedAverage(
				[2]float64{sn.Score(), 0.7},
				[2]float64{1, 0.3},
			)
		}

		details := stepScore{
			value:      score,
			StepNumber: candidate.ChildRef{ElemType: element.TypeStepNumber, Ref: refOf(sn)},
			PartsList:  plOpt,
		}
		cand := candidate.NewCompositeCandidate[element.Step]("step", element.TypeStep, box, score, details)
		result.AddCandidate(cand)
	}
}

func (StepClassifier) Build(c candidate.AnyCandidate, result *candidate.Result) (element.Element, error) {
	details, ok := c.ScoreDetails().(stepScore)
	if !ok {
		return nil, fmt.Errorf("step: unexpected score details type %T", c.ScoreDetails())
	}

	snCand := result.CandidateByRef(details.StepNumber.Ref)
	if snCand == nil {
		return nil, fmt.Errorf("step: step_number candidate %v not found", details.StepNumber.Ref)
	}
	snEl, err := result.Build(snCand)
	if err != nil {
		return nil, fmt.Errorf("step: building step_number: %w", err)
	}
	sn, ok := snEl.(element.StepNumber)
	if !ok {
		return nil, fmt.Errorf("step: step_number built as unexpected type %T", snEl)
	}

	step := element.Step{BBox: c.BBox(), StepNumber: sn}

	if details.PartsList.Present {
		plCand := result.CandidateByRef(details.PartsList.Ref)
		if plCand == nil {
			return nil, fmt.Errorf("step: parts_list candidate %v not found", details.PartsList.Ref)
		}
		plEl, err := result.Build(plCand)
		if err != nil {
			return nil, fmt.Errorf("step: building parts_list: %w", err)
		}
		pl, ok := plEl.(element.PartsList)
		if !ok {
			return nil, fmt.Errorf("step: parts_list built as unexpected type %T", plEl)
		}
		step.PartsList = &pl
	}

	return step, nil
}

// SchemaRules enforces that no two selected Step candidates may reference
// StepNumber children printing the same value.
func (StepClassifier) SchemaRules() schema.Rules {
	return schema.Rules{"StepNumber": schema.FieldRule{UniqueBy: "Value"}}
}

// --- SubStepClassifier -----------------------------------------------------

// subStepScore is SubStepClassifier's ScoreDetails. Diagram, like Step's,
// is spatially assigned after solving.
type subStepScore struct {
	value         float64
	SubstepNumber candidate.ChildRef
	PartsList     candidate.OptionRef
}

func (s subStepScore) Score() float64 { return s.value }

// SubStepClassifier pairs each SubstepNumber with the nearest compatible
// PartsList, the same way StepClassifier pairs a StepNumber.
type SubStepClassifier struct{}

func (SubStepClassifier) Output() string     { return "sub_step" }
func (SubStepClassifier) Requires() []string { return []string{"substep_number", "parts_list"} }

func (SubStepClassifier) Score(page *block.PageData, docHints hints.DocumentHints, result *candidate.Result) {
	substepNumbers := result.ScoredCandidates("substep_number", 0, false)
	partsLists := result.ScoredCandidates("parts_list", 0, false)

	const maxPartsListDistance = 250

	for _, ssn := range substepNumbers {
		box := ssn.BBox()
		plOpt := candidate.NoOption(element.TypePartsList)
		score := ssn.Score() * 0.9

		if pl, ok := closestWithin(partsLists, box, maxPartsListDistance); ok {
			plOpt = candidate.NewOptionRef(element.TypePartsList, refOf(pl))
			box = box.Union(pl.BBox())
			score = weightedAverage(
				[2]float64{ssn.Score(), 0.7},
				[2]float64{1, 0.3},
			)
		}

		details := subStepScore{
			value:         score,
			SubstepNumber: candidate.ChildRef{ElemType: element.TypeSubstepNumber, Ref: refOf(ssn)},
			PartsList:     plOpt,
		}
		cand := candidate.NewCompositeCandidate[element.SubStep]("sub_step", element.TypeSubStep, box, score, details)
		result.AddCandidate(cand)
	}
}

func (SubStepClassifier) Build(c candidate.AnyCandidate, result *candidate.Result) (element.Element, error) {
	details, ok := c.ScoreDetails().(subStepScore)
	if !ok {
		return nil, fmt.Errorf("sub_step: unexpected score details type %T", c.ScoreDetails())
	}

	ssnCand := result.CandidateByRef(details.SubstepNumber.Ref)
	if ssnCand == nil {
		return nil, fmt.Errorf("sub_step: substep_number candidate %v not found", details.SubstepNumber.Ref)
	}
	ssnEl, err := result.Build(ssnCand)
	if err != nil {
		return nil, fmt.Errorf("sub_step: building substep_number: %w", err)
	}
	ssn, ok := ssnEl.(element.SubstepNumber)
	if !ok {
		return nil, fmt.Errorf("sub_step: substep_number built as unexpected type %T", ssnEl)
	}

	subStep := element.SubStep{BBox: c.BBox(), SubstepNumber: &ssn}

	if details.PartsList.Present {
		plCand := result.CandidateByRef(details.PartsList.Ref)
		if plCand == nil {
			return nil, fmt.Errorf("sub_step: parts_list candidate %v not found", details.PartsList.Ref)
		}
		plEl, err := result.Build(plCand)
		if err != nil {
			return nil, fmt.Errorf("sub_step: building parts_list: %w", err)
		}
		pl, ok := plEl.(element.PartsList)
		if !ok {
			return nil, fmt.Errorf("sub_step: parts_list built as unexpected type %T", plEl)
		}
		subStep.PartsList = &pl
	}

	return subStep, nil
}

// SchemaRules enforces the SubStep analogue of StepClassifier's
// StepNumber uniqueness rule.
func (SubStepClassifier) SchemaRules() schema.Rules {
	return schema.Rules{"SubstepNumber": schema.FieldRule{UniqueBy: "Value"}}
}

// --- SubAssemblyClassifier -------------------------------------------------

// subAssemblyScore is SubAssemblyClassifier's ScoreDetails.
type subAssemblyScore struct {
	value     float64
	StepCount int
}

func (s subAssemblyScore) Score() float64 { return s.value }

// SubAssemblyClassifier detects a light-colored rectangular Drawing that
// contains a step-count Text block and a cluster of nested Drawings.
type SubAssemblyClassifier struct{}

func (SubAssemblyClassifier) Output() string     { return "sub_assembly" }
func (SubAssemblyClassifier) Requires() []string { return nil }

func (SubAssemblyClassifier) Score(page *block.PageData, docHints hints.DocumentHints, result *candidate.Result) {
	drawings := page.BlocksOfKind(block.KindDrawing)
	texts := page.BlocksOfKind(block.KindText)
	clusterScale := NewLinearScale(map[float64]float64{1: 0.4, 3: 0.8, 8: 1})

	for _, b := range drawings {
		container := b.(block.Drawing)
		box := container.EffectiveBBox()

		var stepCountText *block.Text
		var stepCount int
		for _, tb := range texts {
			t := tb.(block.Text)
			if !t.Box.FullyInside(box) {
				continue
			}
			if v, ok := extractPlainNumberValue(t.Text); ok {
				stepCountText = &t
				stepCount = v
				break
			}
		}
		if stepCountText == nil {
			continue
		}

		nested := 0
		for _, db := range drawings {
			dd := db.(block.Drawing)
			if dd.BlockID == container.BlockID {
				continue
			}
			if dd.Box.FullyInside(box) {
				nested++
			}
		}
		if nested == 0 {
			continue
		}

		lightScore := 0.3
		if s, ok := isLight(container.FillColor); ok {
			lightScore = s
		}
		clusterScore := clusterScale.Score(float64(nested))

		score := weightedAverage(
			[2]float64{lightScore, 0.4},
			[2]float64{clusterScore, 0.6},
		)
		if score <= 0.2 {
			continue
		}

		details := subAssemblyScore{value: score, StepCount: stepCount}
		cand, err := candidate.NewAtomicCandidate[element.SubAssembly](
			"sub_assembly", element.TypeSubAssembly, box, score, details,
			[]int{container.BlockID, stepCountText.BlockID})
		if err == nil {
			result.AddCandidate(cand)
		}
	}
}

func (SubAssemblyClassifier) Build(c candidate.AnyCandidate, result *candidate.Result) (element.Element, error) {
	details, ok := c.ScoreDetails().(subAssemblyScore)
	if !ok {
		return nil, fmt.Errorf("sub_assembly: unexpected score details type %T", c.ScoreDetails())
	}
	return element.SubAssembly{BBox: c.BBox(), StepCount: details.StepCount}, nil
}

// --- OpenBagClassifier ------------------------------------------------------

// openBagScore is OpenBagClassifier's ScoreDetails.
type openBagScore struct {
	value  float64
	Number candidate.ChildRef
}

func (s openBagScore) Score() float64 { return s.value }

// OpenBagClassifier detects the circular "open a new bag" glyph and pairs
// it with the nearest BagNumber.
type OpenBagClassifier struct{}

func (OpenBagClassifier) Output() string     { return "open_bag" }
func (OpenBagClassifier) Requires() []string { return []string{"bag_number"} }

func (OpenBagClassifier) Score(page *block.PageData, docHints hints.DocumentHints, result *candidate.Result) {
	bagNumbers := result.ScoredCandidates("bag_number", 0, false)
	sizeScale := NewLinearScale(map[float64]float64{10: 0, 18: 1, 40: 1, 70: 0})
	squareScale := NewLinearScale(map[float64]float64{0: 1, 0.3: 0})

	const maxBagNumberDistance = 150

	for _, b := range page.BlocksOfKind(block.KindDrawing) {
		d := b.(block.Drawing)
		w, h := d.Box.Width(), d.Box.Height()
		avg := (w + h) / 2
		size := sizeScale.Score(avg)
		square := squareScale.Score(absFloat(w-h) / avg)
		if size <= 0 || square <= 0 {
			continue
		}

		nearest, ok := closestWithin(bagNumbers, d.Box, maxBagNumberDistance)
		if !ok {
			continue
		}

		shapeScore := weightedAverage(
			[2]float64{size, 0.5},
			[2]float64{square, 0.5},
		)
		score := weightedAverage(
			[2]float64{shapeScore, 0.6},
			[2]float64{nearest.Score(), 0.4},
		)
		if score <= 0.2 {
			continue
		}

		box := d.Box.Union(nearest.BBox())
		details := openBagScore{value: score, Number: candidate.ChildRef{ElemType: element.TypeBagNumber, Ref: refOf(nearest)}}
		cand, err := candidate.NewAtomicCandidate[element.OpenBag](
			"open_bag", element.TypeOpenBag, box, score, details, []int{d.BlockID})
		if err == nil {
			result.AddCandidate(cand)
		}
	}
}

func (OpenBagClassifier) Build(c candidate.AnyCandidate, result *candidate.Result) (element.Element, error) {
	details, ok := c.ScoreDetails().(openBagScore)
	if !ok {
		return nil, fmt.Errorf("open_bag: unexpected score details type %T", c.ScoreDetails())
	}

	numCand := result.CandidateByRef(details.Number.Ref)
	if numCand == nil {
		return nil, fmt.Errorf("open_bag: bag_number candidate %v not found", details.Number.Ref)
	}
	numEl, err := result.Build(numCand)
	if err != nil {
		return nil, fmt.Errorf("open_bag: building bag_number: %w", err)
	}
	num, ok := numEl.(element.BagNumber)
	if !ok {
		return nil, fmt.Errorf("open_bag: bag_number built as unexpected type %T", numEl)
	}

	return element.OpenBag{BBox: c.BBox(), Number: num}, nil
}

// SchemaRules enforces that two OpenBag candidates never pair with
// BagNumber children printing the same value.
func (OpenBagClassifier) SchemaRules() schema.Rules {
	return schema.Rules{"Number": schema.FieldRule{UniqueBy: "Value"}}
}

// --- ScaleClassifier --------------------------------------------------------

// scaleContainerBox returns the smallest Drawing box fully containing
// anchor, expanding the search slightly so a border/shadow pair of nearly
// coincident Drawings around the same scale box doesn't rule out the
// tighter of the two.
func scaleContainerBox(drawings []block.Drawing, anchor geometry.BBox) (geometry.BBox, bool) {
	const margin = 10.0
	var best geometry.BBox
	found := false
	for _, d := range drawings {
		box := d.EffectiveBBox()
		if !anchor.FullyInside(box.Expand(margin)) {
			continue
		}
		if !found || box.Area() < best.Area() {
			best = box
			found = true
		}
	}
	return best, found
}

// scaleScore is ScaleClassifier's ScoreDetails.
type scaleScore struct {
	value  float64
	Text   candidate.ChildRef
	Length candidate.OptionRef
}

func (s scaleScore) Score() float64 { return s.value }

// ScaleClassifier pairs each ScaleText ("1:1") label with the smallest
// Drawing box containing it, optionally attaching the nearest PieceLength
// callout whose center lies within 60 points of that box's center. A Scale's illustration is always the
// surrounding vector box itself, never a raster Diagram: scale indicators
// are drawn, not photographed.
type ScaleClassifier struct{}

func (ScaleClassifier) Output() string     { return "scale" }
func (ScaleClassifier) Requires() []string { return []string{"scale_text", "piece_length"} }

func (ScaleClassifier) Score(page *block.PageData, docHints hints.DocumentHints, result *candidate.Result) {
	scaleTexts := result.ScoredCandidates("scale_text", 0, false)
	pieceLengths := result.ScoredCandidates("piece_length", 0, false)

	var drawings []block.Drawing
	for _, b := range page.BlocksOfKind(block.KindDrawing) {
		drawings = append(drawings, b.(block.Drawing))
	}

	for _, st := range scaleTexts {
		box, ok := scaleContainerBox(drawings, st.BBox())
		if !ok {
			continue
		}

		lengthOpt := candidate.NoOption(element.TypePieceLength)
		bonus := 0.0
		if pl, ok := closestWithin(pieceLengths, box, 60); ok {
			lengthOpt = candidate.NewOptionRef(element.TypePieceLength, refOf(pl))
			bonus = 0.5
		}

		score := st.Score() + bonus
		if score > 1.0 {
			score = 1.0
		}

		details := scaleScore{
			value:  score,
			Text:   candidate.ChildRef{ElemType: element.TypeScaleText, Ref: refOf(st)},
			Length: lengthOpt,
		}
		cand := candidate.NewCompositeCandidate[element.Scale]("scale", element.TypeScale, box, score, details)
		result.AddCandidate(cand)
	}
}

func (ScaleClassifier) Build(c candidate.AnyCandidate, result *candidate.Result) (element.Element, error) {
	details, ok := c.ScoreDetails().(scaleScore)
	if !ok {
		return nil, fmt.Errorf("scale: unexpected score details type %T", c.ScoreDetails())
	}

	if !details.Length.Present {
		return nil, fmt.Errorf("scale: no piece_length candidate within range")
	}

	textCand := result.CandidateByRef(details.Text.Ref)
	if textCand == nil {
		return nil, fmt.Errorf("scale: scale_text candidate %v not found", details.Text.Ref)
	}
	textEl, err := result.Build(textCand)
	if err != nil {
		return nil, fmt.Errorf("scale: building scale_text: %w", err)
	}
	text, ok := textEl.(element.ScaleText)
	if !ok {
		return nil, fmt.Errorf("scale: scale_text built as unexpected type %T", textEl)
	}

	scale := element.Scale{BBox: c.BBox(), Text: text}

	lenCand := result.CandidateByRef(details.Length.Ref)
	if lenCand == nil {
		return nil, fmt.Errorf("scale: piece_length candidate %v not found", details.Length.Ref)
	}
	lenEl, err := result.Build(lenCand)
	if err != nil {
		return nil, fmt.Errorf("scale: building piece_length: %w", err)
	}
	length, ok := lenEl.(element.PieceLength)
	if !ok {
		return nil, fmt.Errorf("scale: piece_length built as unexpected type %T", lenEl)
	}
	scale.Length = &length

	return scale, nil
}

// --- PreviewClassifier ------------------------------------------------------

// previewScore is PreviewClassifier's ScoreDetails. Diagram is deliberately
// absent: the child illustration, if any, is found at build time among the
// candidates fully inside the box, not pinned down during scoring.
type previewScore struct {
	value float64
}

func (s previewScore) Score() float64 { return s.value }

// PreviewClassifier recognizes a white, rectangular preview box — typically
// on a front-matter page — showing the completed model. A box is rejected
// outright if it contains a StepCount candidate (those are sub-assembly
// containers, not previews) or if it sits at or below the topmost
// StepNumber on the page, since previews only ever appear above every step.
type PreviewClassifier struct{}

func (PreviewClassifier) Output() string     { return "preview" }
func (PreviewClassifier) Requires() []string { return []string{"diagram", "step_count", "step_number"} }

func (PreviewClassifier) Score(page *block.PageData, docHints hints.DocumentHints, result *candidate.Result) {
	stepCounts := result.ScoredCandidates("step_count", 0, false)
	stepNumbers := result.ScoredCandidates("step_number", 0, false)

	topStepY := page.Height()
	for _, sn := range stepNumbers {
		if sn.BBox().Y0 < topStepY {
			topStepY = sn.BBox().Y0
		}
	}

	boxScale := NewLinearScale(map[float64]float64{0.03: 0, 0.08: 0.6, 0.3: 1, 0.6: 0.3})
	pageArea := page.Width() * page.Height()

	var drawings []block.Drawing
	for _, b := range page.BlocksOfKind(block.KindDrawing) {
		drawings = append(drawings, b.(block.Drawing))
	}

	for _, group := range groupBySimilarBBox(drawings, 2.0) {
		box := group[0].EffectiveBBox()
		if box.Y0 >= topStepY {
			continue
		}

		rejected := false
		for _, sc := range stepCounts {
			if sc.BBox().FullyInside(box) {
				rejected = true
				break
			}
		}
		if rejected {
			continue
		}

		if pageArea <= 0 {
			continue
		}
		boxShape := boxScale.Score(box.Area() / pageArea)

		fillScore := 0.3
		hasImages := 0.0
		for _, d := range group {
			if s, ok := isLight(d.FillColor); ok && s > fillScore {
				fillScore = s
			}
		}
		for _, b := range page.BlocksOfKind(block.KindImage) {
			if b.(block.Image).Box.FullyInside(box) {
				hasImages = 1.0
				break
			}
		}

		score := weightedAverage(
			[2]float64{boxShape, 0.4},
			[2]float64{fillScore, 0.35},
			[2]float64{hasImages, 0.25},
		)
		if score <= 0.3 {
			continue
		}

		details := previewScore{value: score}
		cand := candidate.NewCompositeCandidate[element.Preview]("preview", element.TypePreview, box, score, details)
		result.AddCandidate(cand)
	}
}

// groupBySimilarBBox clusters Drawings whose boxes agree within tolerance on
// all four edges, catching a white-fill rectangle paired with a separately
// drawn border of the same nominal size.
func groupBySimilarBBox(drawings []block.Drawing, tolerance float64) [][]block.Drawing {
	used := make([]bool, len(drawings))
	var groups [][]block.Drawing
	for i, d := range drawings {
		if used[i] {
			continue
		}
		group := []block.Drawing{d}
		used[i] = true
		bi := d.EffectiveBBox()
		for j := i + 1; j < len(drawings); j++ {
			if used[j] {
				continue
			}
			bj := drawings[j].EffectiveBBox()
			if absFloat(bi.X0-bj.X0) <= tolerance && absFloat(bi.Y0-bj.Y0) <= tolerance &&
				absFloat(bi.X1-bj.X1) <= tolerance && absFloat(bi.Y1-bj.Y1) <= tolerance {
				group = append(group, drawings[j])
				used[j] = true
			}
		}
		groups = append(groups, group)
	}
	return groups
}

func (PreviewClassifier) Build(c candidate.AnyCandidate, result *candidate.Result) (element.Element, error) {
	diagrams := result.ScoredCandidates("diagram", 0, true)

	var best candidate.AnyCandidate
	for _, d := range diagrams {
		if !d.BBox().FullyInside(c.BBox()) {
			continue
		}
		if best == nil || d.BBox().Area() > best.BBox().Area() {
			best = d
		}
	}

	preview := element.Preview{BBox: c.BBox()}
	if best == nil {
		return preview, nil
	}

	el, err := result.Build(best)
	if err != nil {
		return nil, fmt.Errorf("preview: building diagram: %w", err)
	}
	diagram, ok := el.(element.Diagram)
	if !ok {
		return nil, fmt.Errorf("preview: diagram built as unexpected type %T", el)
	}
	preview.Diagram = &diagram
	return preview, nil
}

// --- NewBagClassifier --------------------------------------------------------

// newBagScore is NewBagClassifier's ScoreDetails.
type newBagScore struct {
	value  float64
	Number candidate.ChildRef
}

func (s newBagScore) Score() float64 { return s.value }

// NewBagClassifier recognizes the "open bag N" graphic: a cluster of
// connected Image/Drawing blocks that together form a bag icon, seeded from
// the blocks immediately touching a BagNumber label.
type NewBagClassifier struct{}

func (NewBagClassifier) Output() string     { return "new_bag" }
func (NewBagClassifier) Requires() []string { return []string{"bag_number"} }

func (NewBagClassifier) Score(page *block.PageData, docHints hints.DocumentHints, result *candidate.Result) {
	bagNumbers := result.ScoredCandidates("bag_number", 0, false)
	if len(bagNumbers) == 0 {
		return
	}

	pageArea := page.Width() * page.Height()
	var graphicBoxes []geometry.BBox
	for _, b := range page.BlocksOfKind(block.KindImage) {
		box := b.(block.Image).Box
		if pageArea > 0 && box.Area()/pageArea < 0.25 {
			graphicBoxes = append(graphicBoxes, box)
		}
	}
	for _, b := range page.BlocksOfKind(block.KindDrawing) {
		box := b.(block.Drawing).EffectiveBBox()
		if pageArea > 0 && box.Area()/pageArea < 0.25 {
			graphicBoxes = append(graphicBoxes, box)
		}
	}

	clusterSizeScale := NewLinearScale(map[float64]float64{1: 0.3, 3: 1, 8: 1, 14: 0.3})
	compactnessScale := NewLinearScale(map[float64]float64{0.1: 0.3, 0.2: 1, 0.35: 1, 0.6: 0.2})

	for _, bn := range bagNumbers {
		var seeds []int
		for i, box := range graphicBoxes {
			if box.Intersects(bn.BBox()) {
				seeds = append(seeds, i)
			}
		}
		if len(seeds) == 0 {
			continue
		}

		cluster := connectedBoxCluster(graphicBoxes, seeds, 8.0)
		if len(cluster) == 0 {
			continue
		}

		box := graphicBoxes[cluster[0]]
		for _, i := range cluster[1:] {
			box = box.Union(graphicBoxes[i])
		}
		box = box.Union(bn.BBox())

		sizeScore := clusterSizeScale.Score(float64(len(cluster)))
		compactness := 0.0
		if box.Height() > 0 {
			compactness = compactnessScale.Score(bn.BBox().Height() / box.Height())
		}

		score := weightedAverage(
			[2]float64{sizeScore, 0.5},
			[2]float64{compactness, 0.5},
		)
		if score <= 0.2 {
			continue
		}

		details := newBagScore{value: score, Number: candidate.ChildRef{ElemType: element.TypeBagNumber, Ref: refOf(bn)}}
		cand := candidate.NewCompositeCandidate[element.NewBag]("new_bag", element.TypeNewBag, box, score, details)
		result.AddCandidate(cand)
	}
}

// connectedBoxCluster grows a set of box indices outward from seeds,
// repeatedly adding any unvisited box overlapping (after a margin
// expansion) a box already in the cluster: a breadth-first
// connected-component search over bbox adjacency.
func connectedBoxCluster(boxes []geometry.BBox, seeds []int, margin float64) []int {
	visited := make(map[int]bool, len(seeds))
	queue := append([]int{}, seeds...)
	for _, s := range seeds {
		visited[s] = true
	}

	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		expanded := boxes[i].Expand(margin)
		for j, box := range boxes {
			if visited[j] {
				continue
			}
			if expanded.Intersects(box) {
				visited[j] = true
				queue = append(queue, j)
			}
		}
	}

	out := make([]int, 0, len(visited))
	for i := range visited {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

func (NewBagClassifier) Build(c candidate.AnyCandidate, result *candidate.Result) (element.Element, error) {
	details, ok := c.ScoreDetails().(newBagScore)
	if !ok {
		return nil, fmt.Errorf("new_bag: unexpected score details type %T", c.ScoreDetails())
	}

	numCand := result.CandidateByRef(details.Number.Ref)
	if numCand == nil {
		return nil, fmt.Errorf("new_bag: bag_number candidate %v not found", details.Number.Ref)
	}
	numEl, err := result.Build(numCand)
	if err != nil {
		return nil, fmt.Errorf("new_bag: building bag_number: %w", err)
	}
	num, ok := numEl.(element.BagNumber)
	if !ok {
		return nil, fmt.Errorf("new_bag: bag_number built as unexpected type %T", numEl)
	}

	return element.NewBag{BBox: c.BBox(), Number: num}, nil
}

// SchemaRules enforces that two NewBag candidates never pair with
// BagNumber children printing the same value.
func (NewBagClassifier) SchemaRules() schema.Rules {
	return schema.Rules{"Number": schema.FieldRule{UniqueBy: "Value"}}
}

// --- InfoPageDecorationClassifier --------------------------------------------

// decorationScore is InfoPageDecorationClassifier's ScoreDetails.
type decorationScore float64

func (s decorationScore) Score() float64 { return float64(s) }

// InfoPageDecorationClassifier claims an entire front-matter page (cover,
// credits, table of contents) as a single Decoration candidate, scored by
// how confidently the page reads as front matter rather than an assembly
// step. Because it claims every block on the page, block exclusivity rules
// out every other candidate sharing one of those blocks once it is selected.
type InfoPageDecorationClassifier struct{}

func (InfoPageDecorationClassifier) Output() string     { return "decoration" }
func (InfoPageDecorationClassifier) Requires() []string { return nil }

func (InfoPageDecorationClassifier) Score(page *block.PageData, docHints hints.DocumentHints, result *candidate.Result) {
	if docHints.PageRoles[page.Index()] != hints.PageRoleFrontMatter {
		return
	}

	const score = 0.75

	blocks := page.Blocks()
	if len(blocks) == 0 {
		return
	}
	blockIDs := make([]int, 0, len(blocks))
	box := blocks[0].BBox()
	for _, b := range blocks {
		blockIDs = append(blockIDs, b.ID())
		box = box.Union(b.BBox())
	}

	c, err := candidate.NewAtomicCandidate[element.Decoration](
		"decoration", element.TypeDecoration, box, score, decorationScore(score), blockIDs)
	if err == nil {
		result.AddCandidate(c)
	}
}

func (InfoPageDecorationClassifier) Build(c candidate.AnyCandidate, result *candidate.Result) (element.Element, error) {
	return element.Decoration{BBox: c.BBox()}, nil
}
