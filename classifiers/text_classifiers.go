package classifiers

import (
	"fmt"

	"github.com/tsawler/legoclassify/block"
	"github.com/tsawler/legoclassify/candidate"
	"github.com/tsawler/legoclassify/element"
	"github.com/tsawler/legoclassify/hints"
)

// fontCloseness scores how close a block's font size is to hint, using a
// LinearScale that gives full credit at an exact match and falls off to
// zero a couple of points away. A nil hint (no document-wide estimate for
// this role yet) scores a neutral 0.5 rather than penalizing every
// candidate on a short document.
func fontCloseness(fontSize float64, hint *float64) float64 {
	if hint == nil {
		return 0.5
	}
	scale := NewLinearScale(map[float64]float64{
		0:   1,
		1.5: 1,
		4:   0,
	})
	return scale.Score(absFloat(fontSize - *hint))
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// textScore is the ScoreDetails shape shared by every atomic text-pattern
// classifier in this file: a matched value plus the combined score. The
// concrete Go type of Value varies (int or string), so each classifier
// keeps its own copy of this shape rather than sharing one generic struct.

// pageNumberScore is PageNumberClassifier's ScoreDetails.
type pageNumberScore struct {
	value float64
	Value int
}

func (s pageNumberScore) Score() float64 { return s.value }

// PageNumberClassifier recognizes the page number printed on a page,
// grounded on rules/text.py's PageNumberRule: a digit run, optionally
// prefixed with "p." or "page", scored by pattern match and font-size
// closeness to hints.PageNumberSize. The page's own index is not consulted.
type PageNumberClassifier struct{}

func (PageNumberClassifier) Output() string     { return "page_number" }
func (PageNumberClassifier) Requires() []string { return nil }

func (PageNumberClassifier) Score(page *block.PageData, docHints hints.DocumentHints, result *candidate.Result) {
	for _, b := range page.BlocksOfKind(block.KindText) {
		t := b.(block.Text)
		value, ok := extractPageNumberValue(t.Text)
		if !ok {
			continue
		}
		score := weightedAverage(
			[2]float64{1, 0.6},
			[2]float64{fontCloseness(t.FontSize, docHints.PageNumberSize), 0.4},
		)
		c, err := candidate.NewAtomicCandidate[element.PageNumber](
			"page_number", element.TypePageNumber, t.Box, score,
			pageNumberScore{value: score, Value: value}, []int{t.BlockID})
		if err == nil {
			result.AddCandidate(c)
		}
	}
}

func (PageNumberClassifier) Build(c candidate.AnyCandidate, result *candidate.Result) (element.Element, error) {
	details, ok := c.ScoreDetails().(pageNumberScore)
	if !ok {
		return nil, fmt.Errorf("page_number: unexpected score details type %T", c.ScoreDetails())
	}
	return element.PageNumber{BBox: c.BBox(), Value: details.Value}, nil
}

// stepNumberScore is StepNumberClassifier's ScoreDetails.
type stepNumberScore struct {
	value float64
	Value int
}

func (s stepNumberScore) Score() float64 { return s.value }

// StepNumberClassifier recognizes a step's ordinal label, grounded on
// rules/text.py's StepNumberRule.
type StepNumberClassifier struct{}

func (StepNumberClassifier) Output() string     { return "step_number" }
func (StepNumberClassifier) Requires() []string { return nil }

func (StepNumberClassifier) Score(page *block.PageData, docHints hints.DocumentHints, result *candidate.Result) {
	for _, b := range page.BlocksOfKind(block.KindText) {
		t := b.(block.Text)
		value, ok := extractPlainNumberValue(t.Text)
		if !ok {
			continue
		}
		score := weightedAverage(
			[2]float64{1, 0.6},
			[2]float64{fontCloseness(t.FontSize, docHints.StepNumberSize), 0.4},
		)
		c, err := candidate.NewAtomicCandidate[element.StepNumber](
			"step_number", element.TypeStepNumber, t.Box, score,
			stepNumberScore{value: score, Value: value}, []int{t.BlockID})
		if err == nil {
			result.AddCandidate(c)
		}
	}
}

func (StepNumberClassifier) Build(c candidate.AnyCandidate, result *candidate.Result) (element.Element, error) {
	details, ok := c.ScoreDetails().(stepNumberScore)
	if !ok {
		return nil, fmt.Errorf("step_number: unexpected score details type %T", c.ScoreDetails())
	}
	return element.StepNumber{BBox: c.BBox(), Value: details.Value}, nil
}

// substepNumberScore is SubstepNumberClassifier's ScoreDetails.
type substepNumberScore struct {
	value float64
	Value int
}

func (s substepNumberScore) Score() float64 { return s.value }

// SubstepNumberClassifier recognizes a SubStep's ordinal label. It shares
// StepNumberClassifier's pattern and font-size role (a substep number looks
// identical to a step number in isolation; which one a digit run actually
// is only becomes clear once SubStepClassifier and StepClassifier compete
// for the same block during solving), grounded on rules/text.py's
// SubstepNumberRule.
type SubstepNumberClassifier struct{}

func (SubstepNumberClassifier) Output() string     { return "substep_number" }
func (SubstepNumberClassifier) Requires() []string { return nil }

func (SubstepNumberClassifier) Score(page *block.PageData, docHints hints.DocumentHints, result *candidate.Result) {
	for _, b := range page.BlocksOfKind(block.KindText) {
		t := b.(block.Text)
		value, ok := extractPlainNumberValue(t.Text)
		if !ok {
			continue
		}
		score := weightedAverage(
			[2]float64{1, 0.6},
			[2]float64{fontCloseness(t.FontSize, docHints.StepNumberSize), 0.4},
		)
		// A substep number is always the smaller of the two readings on a
		// small label, so it is scored slightly below a plain step number
		// reading of the same block to break the tie toward "step" absent
		// any other evidence.
		score *= 0.95
		c, err := candidate.NewAtomicCandidate[element.SubstepNumber](
			"substep_number", element.TypeSubstepNumber, t.Box, score,
			substepNumberScore{value: score, Value: value}, []int{t.BlockID})
		if err == nil {
			result.AddCandidate(c)
		}
	}
}

func (SubstepNumberClassifier) Build(c candidate.AnyCandidate, result *candidate.Result) (element.Element, error) {
	details, ok := c.ScoreDetails().(substepNumberScore)
	if !ok {
		return nil, fmt.Errorf("substep_number: unexpected score details type %T", c.ScoreDetails())
	}
	return element.SubstepNumber{BBox: c.BBox(), Value: details.Value}, nil
}

// partCountScore is PartCountClassifier's ScoreDetails.
type partCountScore struct {
	value float64
	Count int
}

func (s partCountScore) Score() float64 { return s.value }

// PartCountClassifier recognizes the "NNx" multiplicity label attached to
// a Part, grounded on rules/text.py's PartCountRule.
type PartCountClassifier struct{}

func (PartCountClassifier) Output() string     { return "part_count" }
func (PartCountClassifier) Requires() []string { return nil }

func (PartCountClassifier) Score(page *block.PageData, docHints hints.DocumentHints, result *candidate.Result) {
	for _, b := range page.BlocksOfKind(block.KindText) {
		t := b.(block.Text)
		count, ok := extractPartCountValue(t.Text)
		if !ok {
			continue
		}
		score := weightedAverage(
			[2]float64{1, 0.6},
			[2]float64{fontCloseness(t.FontSize, docHints.PartCountSize), 0.4},
		)
		c, err := candidate.NewAtomicCandidate[element.PartCount](
			"part_count", element.TypePartCount, t.Box, score,
			partCountScore{value: score, Count: count}, []int{t.BlockID})
		if err == nil {
			result.AddCandidate(c)
		}
	}
}

func (PartCountClassifier) Build(c candidate.AnyCandidate, result *candidate.Result) (element.Element, error) {
	details, ok := c.ScoreDetails().(partCountScore)
	if !ok {
		return nil, fmt.Errorf("part_count: unexpected score details type %T", c.ScoreDetails())
	}
	return element.PartCount{BBox: c.BBox(), Count: details.Count}, nil
}

// partNumberScore is PartNumberClassifier's ScoreDetails.
type partNumberScore struct {
	value float64
	Value string
}

func (s partNumberScore) Score() float64 { return s.value }

// PartNumberClassifier recognizes a printed element id beneath a Part,
// grounded on rules/text.py's PartNumberRule.
type PartNumberClassifier struct{}

func (PartNumberClassifier) Output() string     { return "part_number" }
func (PartNumberClassifier) Requires() []string { return nil }

func (PartNumberClassifier) Score(page *block.PageData, docHints hints.DocumentHints, result *candidate.Result) {
	for _, b := range page.BlocksOfKind(block.KindText) {
		t := b.(block.Text)
		value, ok := extractElementID(t.Text)
		if !ok {
			continue
		}
		score := weightedAverage(
			[2]float64{1, 0.6},
			[2]float64{fontCloseness(t.FontSize, docHints.PartNumberSize), 0.4},
		)
		c, err := candidate.NewAtomicCandidate[element.PartNumber](
			"part_number", element.TypePartNumber, t.Box, score,
			partNumberScore{value: score, Value: value}, []int{t.BlockID})
		if err == nil {
			result.AddCandidate(c)
		}
	}
}

func (PartNumberClassifier) Build(c candidate.AnyCandidate, result *candidate.Result) (element.Element, error) {
	details, ok := c.ScoreDetails().(partNumberScore)
	if !ok {
		return nil, fmt.Errorf("part_number: unexpected score details type %T", c.ScoreDetails())
	}
	return element.PartNumber{BBox: c.BBox(), Value: details.Value}, nil
}

// pieceLengthScore is PieceLengthClassifier's ScoreDetails.
type pieceLengthScore struct {
	value float64
	Studs int
}

func (s pieceLengthScore) Score() float64 { return s.value }

// PieceLengthClassifier recognizes a stud-count callout beside a Technic
// beam or axle, grounded on rules/text.py's PieceLengthRule. It has no
// dedicated document-wide font-size hint, so it relies entirely on the
// pattern match.
type PieceLengthClassifier struct{}

func (PieceLengthClassifier) Output() string     { return "piece_length" }
func (PieceLengthClassifier) Requires() []string { return nil }

func (PieceLengthClassifier) Score(page *block.PageData, docHints hints.DocumentHints, result *candidate.Result) {
	for _, b := range page.BlocksOfKind(block.KindText) {
		t := b.(block.Text)
		studs, ok := extractPieceLengthValue(t.Text)
		if !ok {
			continue
		}
		score := 0.7
		c, err := candidate.NewAtomicCandidate[element.PieceLength](
			"piece_length", element.TypePieceLength, t.Box, score,
			pieceLengthScore{value: score, Studs: studs}, []int{t.BlockID})
		if err == nil {
			result.AddCandidate(c)
		}
	}
}

func (PieceLengthClassifier) Build(c candidate.AnyCandidate, result *candidate.Result) (element.Element, error) {
	details, ok := c.ScoreDetails().(pieceLengthScore)
	if !ok {
		return nil, fmt.Errorf("piece_length: unexpected score details type %T", c.ScoreDetails())
	}
	return element.PieceLength{BBox: c.BBox(), Studs: details.Studs}, nil
}

// bagNumberScore is BagNumberClassifier's ScoreDetails.
type bagNumberScore struct {
	value float64
	Value int
}

func (s bagNumberScore) Score() float64 { return s.value }

// BagNumberClassifier recognizes a numbered-bag label, grounded on
// rules/text.py's BagNumberRule.
type BagNumberClassifier struct{}

func (BagNumberClassifier) Output() string     { return "bag_number" }
func (BagNumberClassifier) Requires() []string { return nil }

func (BagNumberClassifier) Score(page *block.PageData, docHints hints.DocumentHints, result *candidate.Result) {
	for _, b := range page.BlocksOfKind(block.KindText) {
		t := b.(block.Text)
		value, ok := extractBagNumberValue(t.Text)
		if !ok {
			continue
		}
		score := 0.6
		c, err := candidate.NewAtomicCandidate[element.BagNumber](
			"bag_number", element.TypeBagNumber, t.Box, score,
			bagNumberScore{value: score, Value: value}, []int{t.BlockID})
		if err == nil {
			result.AddCandidate(c)
		}
	}
}

func (BagNumberClassifier) Build(c candidate.AnyCandidate, result *candidate.Result) (element.Element, error) {
	details, ok := c.ScoreDetails().(bagNumberScore)
	if !ok {
		return nil, fmt.Errorf("bag_number: unexpected score details type %T", c.ScoreDetails())
	}
	return element.BagNumber{BBox: c.BBox(), Value: details.Value}, nil
}

// scaleTextScore is ScaleTextClassifier's ScoreDetails.
type scaleTextScore struct {
	value float64
	Text  string
}

func (s scaleTextScore) Score() float64 { return s.value }

// ScaleTextClassifier recognizes the "1:1" label identifying a scale
// indicator. It carries no document-wide font-size hint, relying entirely
// on the pattern match.
type ScaleTextClassifier struct{}

func (ScaleTextClassifier) Output() string     { return "scale_text" }
func (ScaleTextClassifier) Requires() []string { return nil }

func (ScaleTextClassifier) Score(page *block.PageData, docHints hints.DocumentHints, result *candidate.Result) {
	for _, b := range page.BlocksOfKind(block.KindText) {
		t := b.(block.Text)
		if !isScaleText(t.Text) {
			continue
		}
		const score = 1.0
		c, err := candidate.NewAtomicCandidate[element.ScaleText](
			"scale_text", element.TypeScaleText, t.Box, score,
			scaleTextScore{value: score, Text: t.Text}, []int{t.BlockID})
		if err == nil {
			result.AddCandidate(c)
		}
	}
}

func (ScaleTextClassifier) Build(c candidate.AnyCandidate, result *candidate.Result) (element.Element, error) {
	details, ok := c.ScoreDetails().(scaleTextScore)
	if !ok {
		return nil, fmt.Errorf("scale_text: unexpected score details type %T", c.ScoreDetails())
	}
	return element.ScaleText{BBox: c.BBox(), Text: details.Text}, nil
}

// stepCountScore is StepCountClassifier's ScoreDetails.
type stepCountScore struct {
	value float64
	Count int
}

func (s stepCountScore) Score() float64 { return s.value }

// StepCountClassifier recognizes a substep callout's "NNx" repeat count. It
// shares PartCountClassifier's text pattern but scores font size against a
// band between PartCountSize and StepNumberSize rather than a single
// target, since step counts sit deliberately between the two in size.
type StepCountClassifier struct{}

func (StepCountClassifier) Output() string     { return "step_count" }
func (StepCountClassifier) Requires() []string { return nil }

func (StepCountClassifier) Score(page *block.PageData, docHints hints.DocumentHints, result *candidate.Result) {
	for _, b := range page.BlocksOfKind(block.KindText) {
		t := b.(block.Text)
		count, ok := extractPartCountValue(t.Text)
		if !ok {
			continue
		}
		score := weightedAverage(
			[2]float64{1, 0.5},
			[2]float64{stepCountFontScore(t.FontSize, docHints.PartCountSize, docHints.StepNumberSize), 0.5},
		)
		if score <= 0.2 {
			continue
		}
		c, err := candidate.NewAtomicCandidate[element.StepCount](
			"step_count", element.TypeStepCount, t.Box, score,
			stepCountScore{value: score, Count: count}, []int{t.BlockID})
		if err == nil {
			result.AddCandidate(c)
		}
	}
}

// stepCountFontScore scores a font size against the band between
// partCountSize and stepNumberSize, with 1pt tolerance at either edge; a
// font clearly above the band (a step number) or below it (a part count)
// scores 0. Missing hints score a neutral 0.5 rather than penalizing every
// candidate on a document too short to have built a reliable estimate.
func stepCountFontScore(fontSize float64, partCountSize, stepNumberSize *float64) float64 {
	if partCountSize == nil || stepNumberSize == nil {
		return 0.5
	}
	const tolerance = 1.0
	if fontSize < *partCountSize-tolerance || fontSize > *stepNumberSize+tolerance {
		return 0.0
	}
	if fontSize > *partCountSize+tolerance {
		return 1.0
	}
	return 0.7
}

func (StepCountClassifier) Build(c candidate.AnyCandidate, result *candidate.Result) (element.Element, error) {
	details, ok := c.ScoreDetails().(stepCountScore)
	if !ok {
		return nil, fmt.Errorf("step_count: unexpected score details type %T", c.ScoreDetails())
	}
	return element.StepCount{BBox: c.BBox(), Count: details.Count}, nil
}
