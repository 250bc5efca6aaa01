// Package classifier defines the contract every label classifier
// implements and the pipeline driver that runs a registered set of them in
// dependency order over one page at a time.
package classifier

import (
	"github.com/tsawler/legoclassify/block"
	"github.com/tsawler/legoclassify/candidate"
	"github.com/tsawler/legoclassify/constraint"
	"github.com/tsawler/legoclassify/hints"
	"github.com/tsawler/legoclassify/schema"
)

// Classifier is the contract every label implementation satisfies: it
// declares a unique output label, the set of other labels it requires, and
// scores candidates against one page. It doubles as a candidate.Builder so
// the same implementation both scores and constructs its label's
// candidates.
type Classifier interface {
	candidate.Builder

	// Output is the label this classifier produces. Exactly one registered
	// Classifier may declare any given label.
	Output() string

	// Requires lists the labels whose candidates this classifier reads
	// during Score. Every entry must be some other classifier's Output.
	Requires() []string

	// Score reads page, hints, and (via result.ScoredCandidates) the
	// candidates of its Requires labels, and adds zero or more new
	// candidates to result under its own Output label. Score never mutates
	// page or hints, and never pre-assigns specific children — that is the
	// solver's job.
	Score(page *block.PageData, docHints hints.DocumentHints, result *candidate.Result)
}

// ConstraintDeclarer is implemented by classifiers whose label needs
// structural constraints beyond the schema package's automatic reflection
// over score-detail child references — e.g. a classifier that must assert
// mutual exclusivity between two of its own candidate variants.
type ConstraintDeclarer interface {
	DeclareConstraints(result *candidate.Result, model *constraint.Model)
}

// SchemaRuler is implemented by classifiers whose ScoreDetails shape needs
// a schema.FieldRule beyond the default cardinality the field's
// ChildRef/OptionRef/SequenceRef type already implies (min_count,
// unique_by).
type SchemaRuler interface {
	SchemaRules() schema.Rules
}
