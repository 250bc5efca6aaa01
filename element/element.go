package element

import "github.com/tsawler/legoclassify/geometry"

// Type identifies which concrete LegoPageElement variant a value holds.
// It doubles as the run-time type tag the schema constraint generator
// indexes score-detail child references by — a language without
// higher-kinded reflection can implement the same discipline by attaching
// a run-time type tag like this one.
type Type int

const (
	TypeUnknown Type = iota
	TypePage
	TypePageNumber
	TypeStep
	TypeStepNumber
	TypeSubstepNumber
	TypePartsList
	TypePart
	TypePartCount
	TypePartImage
	TypePartNumber
	TypePieceLength
	TypeDiagram
	TypeArrow
	TypeRotationSymbol
	TypeSubAssembly
	TypeSubStep
	TypeBagNumber
	TypeOpenBag
	TypeProgressBar
	TypeProgressBarIndicator
	TypeDivider
	TypeBackground
	TypeLoosePartSymbol
	TypeShine
	TypeScaleText
	TypeScale
	TypePreview
	TypeTriviaText
	TypeNewBag
	TypeDecoration
	TypeStepCount
)

var typeNames = map[Type]string{
	TypePage:                 "Page",
	TypePageNumber:           "PageNumber",
	TypeStep:                 "Step",
	TypeStepNumber:           "StepNumber",
	TypeSubstepNumber:        "SubstepNumber",
	TypePartsList:            "PartsList",
	TypePart:                 "Part",
	TypePartCount:            "PartCount",
	TypePartImage:            "PartImage",
	TypePartNumber:           "PartNumber",
	TypePieceLength:          "PieceLength",
	TypeDiagram:              "Diagram",
	TypeArrow:                "Arrow",
	TypeRotationSymbol:       "RotationSymbol",
	TypeSubAssembly:          "SubAssembly",
	TypeSubStep:              "SubStep",
	TypeBagNumber:            "BagNumber",
	TypeOpenBag:              "OpenBag",
	TypeProgressBar:          "ProgressBar",
	TypeProgressBarIndicator: "ProgressBarIndicator",
	TypeDivider:              "Divider",
	TypeBackground:           "Background",
	TypeLoosePartSymbol:      "LoosePartSymbol",
	TypeShine:                "Shine",
	TypeScaleText:            "ScaleText",
	TypeScale:                "Scale",
	TypePreview:              "Preview",
	TypeTriviaText:           "TriviaText",
	TypeNewBag:               "NewBag",
	TypeDecoration:           "Decoration",
	TypeStepCount:            "StepCount",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Element is the interface every LegoPageElement variant satisfies.
type Element interface {
	ElementType() Type
	BoundingBox() geometry.BBox
}
