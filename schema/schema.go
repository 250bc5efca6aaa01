// Package schema auto-generates structural constraints for the solver by
// reflecting over each candidate's ScoreDetails value, rather than over the
// built element tree's generic type parameters (Go's reflect package has no
// official way to recover a generic type argument from an instantiated
// value — the documented fallback for languages without that introspection:
// attach a run-time type tag and match on that instead). ChildRef, OptionRef, and
// SequenceRef fields on a ScoreDetails value are exactly that tag-carrying
// shape; this package only ever looks for those three field types.
package schema

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/tsawler/legoclassify/candidate"
	"github.com/tsawler/legoclassify/constraint"
)

var (
	childRefType    = reflect.TypeOf(candidate.ChildRef{})
	optionRefType   = reflect.TypeOf(candidate.OptionRef{})
	sequenceRefType = reflect.TypeOf(candidate.SequenceRef{})
)

// FieldRule customizes the constraint generated for one ScoreDetails field
// beyond the cardinality its Go type already implies.
type FieldRule struct {
	// MinCount raises the floor on how many of a SequenceRef's referenced
	// candidates must be selected when the parent is (default 0: any
	// subset, including none, of the already-chosen sequence is fine as
	// long as every member that IS referenced is also selected).
	MinCount int

	// UniqueBy names a field on the referenced child's ScoreDetails value.
	// Parent candidates whose referenced child shares an equal value for
	// that field become mutually exclusive — e.g. two Step candidates that
	// both reference a StepNumber scored against the same printed value.
	UniqueBy string
}

// Rules maps a ScoreDetails struct field name to its FieldRule. Only fields
// that need more than the default cardinality need an entry.
type Rules map[string]FieldRule

// Generate adds every structural constraint implied by label's scored
// candidates' ScoreDetails shape to model: a ChildRef field requires its
// referenced candidate selected whenever the parent is; an OptionRef field
// does the same only when present; a SequenceRef field requires every
// referenced candidate selected, plus any configured MinCount floor.
// UniqueBy rules add AtMostOneOf groups across sibling parent candidates.
func Generate(label string, result *candidate.Result, model *constraint.Model, rules Rules) error {
	parents := result.ScoredCandidates(label, 0, false)

	uniqueGroups := map[string]map[any][]candidate.Ref{}

	for _, parent := range parents {
		parentRef := candidate.Ref{Label: parent.Label(), ID: parent.ID()}
		if !model.HasVar(parentRef) {
			continue
		}

		details := parent.ScoreDetails()
		if details == nil {
			continue
		}

		v := reflect.ValueOf(details)
		if v.Kind() == reflect.Ptr {
			if v.IsNil() {
				continue
			}
			v = v.Elem()
		}
		if v.Kind() != reflect.Struct {
			continue
		}

		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			fv := v.Field(i)
			rule := rules[field.Name]

			switch field.Type {
			case childRefType:
				ref := fv.Interface().(candidate.ChildRef)
				if !model.HasVar(ref.Ref) {
					return fmt.Errorf("schema: %s.%s references unregistered candidate %v", label, field.Name, ref.Ref)
				}
				model.IfSelectedThen(parentRef, []candidate.Ref{ref.Ref}, constraint.AllOf(1))
				recordUnique(uniqueGroups, field.Name, rule, ref.Ref, result, parentRef)

			case optionRefType:
				opt := fv.Interface().(candidate.OptionRef)
				if !opt.Present {
					continue
				}
				if !model.HasVar(opt.Ref) {
					return fmt.Errorf("schema: %s.%s references unregistered candidate %v", label, field.Name, opt.Ref)
				}
				model.IfSelectedThen(parentRef, []candidate.Ref{opt.Ref}, constraint.AllOf(1))
				recordUnique(uniqueGroups, field.Name, rule, opt.Ref, result, parentRef)

			case sequenceRefType:
				seq := fv.Interface().(candidate.SequenceRef)
				if len(seq.Refs) == 0 {
					continue
				}
				for _, ref := range seq.Refs {
					if !model.HasVar(ref) {
						return fmt.Errorf("schema: %s.%s references unregistered candidate %v", label, field.Name, ref)
					}
				}
				min := len(seq.Refs)
				if rule.MinCount > min {
					min = rule.MinCount
				}
				model.IfSelectedThen(parentRef, seq.Refs, constraint.Cardinality{AtLeast: min})
			}
		}
	}

	for fieldName, groups := range uniqueGroups {
		keys := make([]any, 0, len(groups))
		for k := range groups {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return fmt.Sprint(keys[i]) < fmt.Sprint(keys[j]) })
		for _, k := range keys {
			refs := groups[k]
			if len(refs) > 1 {
				model.AtMostOneOf(refs)
			}
		}
		_ = fieldName
	}

	return nil
}

// recordUnique groups parentRef under the value rule.UniqueBy names on the
// referenced child's ScoreDetails, deferring the actual AtMostOneOf add
// until every parent has been visited.
func recordUnique(groups map[string]map[any][]candidate.Ref, fieldName string, rule FieldRule, childRef candidate.Ref, result *candidate.Result, parentRef candidate.Ref) {
	if rule.UniqueBy == "" {
		return
	}
	child := result.CandidateByRef(childRef)
	if child == nil {
		return
	}
	value, ok := fieldValue(child.ScoreDetails(), rule.UniqueBy)
	if !ok {
		return
	}
	if groups[fieldName] == nil {
		groups[fieldName] = map[any][]candidate.Ref{}
	}
	groups[fieldName][value] = append(groups[fieldName][value], parentRef)
}

func fieldValue(details candidate.ScoreDetails, fieldName string) (any, bool) {
	if details == nil {
		return nil, false
	}
	v := reflect.ValueOf(details)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, false
	}
	fv := v.FieldByName(fieldName)
	if !fv.IsValid() {
		return nil, false
	}
	return fv.Interface(), true
}
