// Package classifiers provides the concrete, rule-based Classifier
// implementations for every label in the element model. Each file groups a
// family of related classifiers: text-pattern (page numbers, step numbers,
// counts), geometry (dividers, backgrounds, progress bars), and composite
// (parts, steps, sub-assemblies), combining intrinsic text-pattern matching
// with font-size-vs-hint scoring.
package classifiers

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	pageNumberPattern = regexp.MustCompile(`^(?:p\.?\s*|page\s*)?0*(\d{1,4})$`)
	plainNumberPattern = regexp.MustCompile(`^0*(\d{1,4})$`)
	partCountPattern  = regexp.MustCompile(`^(\d{1,3})\s*[xX×]$`)
	elementIDPattern  = regexp.MustCompile(`^[1-9]\d{3,7}$`)
	bagNumberPattern  = regexp.MustCompile(`^0*(\d{1,2})$`)
	pieceLengthPattern = regexp.MustCompile(`^(\d{1,2})\s*(?:studs?)?$`)
	scaleTextPattern  = regexp.MustCompile(`^1\s*:\s*1$`)
)

// extractPageNumberValue handles "42", "042", "page 1", "p. 12".
func extractPageNumberValue(text string) (int, bool) {
	m := pageNumberPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(text)))
	if m == nil {
		return 0, false
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return v, true
}

// extractPlainNumberValue handles bare numeric text: step numbers and
// substep numbers share this exact pattern, so one extractor serves both.
func extractPlainNumberValue(text string) (int, bool) {
	m := plainNumberPattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return 0, false
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return v, true
}

// extractPartCountValue handles "2x", "3X", "5×" (extract_part_count_value).
func extractPartCountValue(text string) (int, bool) {
	m := partCountPattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return 0, false
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return v, true
}

// extractBagNumberValue handles plain 1-2 digit bag numbers
// (extract_bag_number_value).
func extractBagNumberValue(text string) (int, bool) {
	m := bagNumberPattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return 0, false
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return v, true
}

// extractElementID handles 4-8 digit element ids that never start with
// zero (extract_element_id).
func extractElementID(text string) (string, bool) {
	t := strings.TrimSpace(text)
	if elementIDPattern.MatchString(t) {
		return t, true
	}
	return "", false
}

// extractPieceLengthValue handles a bare stud-count callout like "6" or
// "6 studs".
func extractPieceLengthValue(text string) (int, bool) {
	m := pieceLengthPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(text)))
	if m == nil {
		return 0, false
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return v, true
}

// isScaleText reports whether text reads as a "1:1" scale indicator label,
// allowing for surrounding whitespace around the colon.
func isScaleText(text string) bool {
	return scaleTextPattern.MatchString(strings.TrimSpace(text))
}

// isTriviaContent reports whether text looks like prose rather than a
// label or part/element id: empty text, short numeric labels like "2x" or
// "17", and all-digit element ids are excluded.
func isTriviaContent(text string) bool {
	t := strings.TrimSpace(text)
	if t == "" {
		return false
	}
	if len(t) <= 5 {
		stripped := strings.NewReplacer("x", "", "X", "").Replace(t)
		if stripped != "" && isAllDigits(stripped) {
			return false
		}
	}
	return !isAllDigits(t)
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
