package hints

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tsawler/legoclassify/block"
)

var partCountPattern = regexp.MustCompile(`^\d+[xX]$`)

// TextHistogram holds font-size and font-name distributions for numeric text
// across a whole document, partitioned by what the text looks like it
// represents. It is the raw material hints.DocumentHints boils down into
// per-role size estimates.
type TextHistogram struct {
	FontNameCounts Counter[string]

	// PartCountFontSizes counts font sizes for text matching "\dx" (e.g. "2x").
	PartCountFontSizes Counter[float64]

	// PageNumberFontSizes counts font sizes for integer text within ±1 of
	// the page it appears on.
	PageNumberFontSizes Counter[float64]

	// ElementIDFontSizes counts font sizes for 6-7 digit integers, which
	// read as LEGO element IDs rather than any on-page role.
	ElementIDFontSizes Counter[float64]

	// RemainingFontSizes counts font sizes for every other integer text
	// block — the pool step numbers, bag numbers, etc. are drawn from.
	RemainingFontSizes Counter[float64]
}

// BuildTextHistogram scans every Text block of every page and buckets its
// font size by what pattern the text matches, the document-wide aggregation
// DocumentHints is built from.
func BuildTextHistogram(pages []*block.PageData) TextHistogram {
	h := TextHistogram{
		FontNameCounts:      Counter[string]{},
		PartCountFontSizes:  Counter[float64]{},
		PageNumberFontSizes: Counter[float64]{},
		ElementIDFontSizes:  Counter[float64]{},
		RemainingFontSizes:  Counter[float64]{},
	}

	for _, page := range pages {
		for _, b := range page.Blocks() {
			text, ok := b.(block.Text)
			if !ok {
				continue
			}
			if text.FontName != "" {
				h.FontNameCounts.Add(text.FontName, 1)
			}
			if text.FontSize <= 0 {
				continue
			}

			stripped := strings.TrimSpace(text.Text)

			switch {
			case partCountPattern.MatchString(stripped):
				h.PartCountFontSizes.Add(text.FontSize, 1)
			case isAllDigits(stripped):
				n, err := strconv.Atoi(stripped)
				if err != nil {
					continue
				}
				digits := len(stripped)
				switch {
				case digits >= 6 && digits <= 7:
					h.ElementIDFontSizes.Add(text.FontSize, 1)
				case absInt(n-page.Index()) <= 1:
					h.PageNumberFontSizes.Add(text.FontSize, 1)
				default:
					h.RemainingFontSizes.Add(text.FontSize, 1)
				}
			}
		}
	}

	return h
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

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Counter is a simple occurrence counter, the Go analogue of Python's
// collections.Counter.
type Counter[K comparable] map[K]int

// Add increments the count for key by delta.
func (c Counter[K]) Add(key K, delta int) {
	c[key] += delta
}

// MostCommon returns up to n keys ordered by descending count, then by the
// order comparator for deterministic tie-breaking. Pass n<=0 for "all".
func (c Counter[K]) MostCommon(n int, less func(a, b K) bool) []K {
	type entry struct {
		key   K
		count int
	}
	entries := make([]entry, 0, len(c))
	for k, v := range c {
		entries = append(entries, entry{k, v})
	}
	// Insertion sort is fine here: histograms are small (distinct font
	// sizes per document rarely exceed a few dozen).
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0; j-- {
			a, b := entries[j-1], entries[j]
			swap := a.count < b.count || (a.count == b.count && less(b.key, a.key))
			if !swap {
				break
			}
			entries[j-1], entries[j] = entries[j], entries[j-1]
		}
	}
	if n > 0 && n < len(entries) {
		entries = entries[:n]
	}
	keys := make([]K, len(entries))
	for i, e := range entries {
		keys[i] = e.key
	}
	return keys
}
