package classifiers

import "github.com/tsawler/legoclassify/classifier"

// All returns one instance of every concrete Classifier this package
// declares, in no particular order — classifier.NewPipeline topologically
// sorts them by Requires and breaks ties alphabetically by label, so
// registration order here carries no meaning. This is the single place a
// new classifier must be added to take part in a pipeline; every cmd/ and
// test wiring goes through it rather than listing labels by hand.
func All() []classifier.Classifier {
	return []classifier.Classifier{
		PageNumberClassifier{},
		StepNumberClassifier{},
		SubstepNumberClassifier{},
		PartCountClassifier{},
		PartNumberClassifier{},
		PieceLengthClassifier{},
		BagNumberClassifier{},
		ScaleTextClassifier{},
		StepCountClassifier{},
		TriviaTextClassifier{},

		BackgroundClassifier{},
		DividerClassifier{},
		ProgressBarClassifier{},
		ProgressBarIndicatorClassifier{},
		RotationSymbolClassifier{},
		ArrowClassifier{},
		LoosePartSymbolClassifier{},
		ShineClassifier{},
		DiagramClassifier{},
		InfoPageDecorationClassifier{},

		PartImageClassifier{},
		PartClassifier{},
		PartsListClassifier{},
		StepClassifier{},
		SubStepClassifier{},
		SubAssemblyClassifier{},
		OpenBagClassifier{},
		ScaleClassifier{},
		PreviewClassifier{},
		NewBagClassifier{},
	}
}
