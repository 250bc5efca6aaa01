package classifiers

import (
	"fmt"
	"sort"

	"github.com/tsawler/legoclassify/block"
	"github.com/tsawler/legoclassify/candidate"
	"github.com/tsawler/legoclassify/element"
	"github.com/tsawler/legoclassify/geometry"
	"github.com/tsawler/legoclassify/hints"
)

// unionFind is a minimal disjoint-set structure used to cluster blocks by
// spatial proximity: every pairwise overlap test unions two indices, and
// find() recovers each cluster's root.
type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	return &unionFind{parent: parent}
}

func (u *unionFind) find(x int) int {
	if u.parent[x] != x {
		u.parent[x] = u.find(u.parent[x])
	}
	return u.parent[x]
}

func (u *unionFind) union(x, y int) {
	px, py := u.find(x), u.find(y)
	if px != py {
		u.parent[px] = py
	}
}

// --- TriviaTextClassifier ------------------------------------------------

// triviaTextScore is TriviaTextClassifier's ScoreDetails.
type triviaTextScore struct {
	value     float64
	TextLines []string
}

func (s triviaTextScore) Score() float64 { return s.value }

// TriviaTextClassifier recognizes informational or flavor text unrelated to
// build instructions: a spatially dense cluster of Text blocks containing
// actual prose rather than labels or part/element ids, scored purely by
// accumulated character count.
type TriviaTextClassifier struct{}

func (TriviaTextClassifier) Output() string     { return "trivia_text" }
func (TriviaTextClassifier) Requires() []string { return nil }

const (
	triviaProximityMargin   = 15.0
	triviaMinCharacterCount = 40
)

func (TriviaTextClassifier) Score(page *block.PageData, docHints hints.DocumentHints, result *candidate.Result) {
	var content []block.Text
	for _, b := range page.BlocksOfKind(block.KindText) {
		t := b.(block.Text)
		if isTriviaContent(t.Text) {
			content = append(content, t)
		}
	}
	if len(content) == 0 {
		return
	}

	for _, cluster := range clusterTextBlocks(content, triviaProximityMargin) {
		totalChars := 0
		lines := make([]string, 0, len(cluster))
		blockIDs := make([]int, 0, len(cluster))
		boxes := make([]geometry.BBox, 0, len(cluster))
		for _, t := range cluster {
			totalChars += len(t.Text)
			lines = append(lines, t.Text)
			blockIDs = append(blockIDs, t.BlockID)
			boxes = append(boxes, t.Box)
		}
		if totalChars < triviaMinCharacterCount {
			continue
		}

		score := clamp01(float64(totalChars) / 500.0)
		if score <= 0 {
			continue
		}

		box := unionAll(boxes)
		details := triviaTextScore{value: score, TextLines: lines}
		c, err := candidate.NewAtomicCandidate[element.TriviaText](
			"trivia_text", element.TypeTriviaText, box, score, details, blockIDs)
		if err == nil {
			result.AddCandidate(c)
		}
	}
}

func (TriviaTextClassifier) Build(c candidate.AnyCandidate, result *candidate.Result) (element.Element, error) {
	details, ok := c.ScoreDetails().(triviaTextScore)
	if !ok {
		return nil, fmt.Errorf("trivia_text: unexpected score details type %T", c.ScoreDetails())
	}
	return element.TriviaText{BBox: c.BBox(), TextLines: details.TextLines}, nil
}

// clusterTextBlocks groups Text blocks whose margin-expanded bboxes
// overlap, via union-find over every pair.
func clusterTextBlocks(blocks []block.Text, margin float64) [][]block.Text {
	n := len(blocks)
	uf := newUnionFind(n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			bi := blocks[i].Box.Expand(margin)
			bj := blocks[j].Box.Expand(margin)
			if bi.Intersects(bj) {
				uf.union(i, j)
			}
		}
	}

	groups := map[int][]block.Text{}
	for i, b := range blocks {
		root := uf.find(i)
		groups[root] = append(groups[root], b)
	}

	roots := make([]int, 0, len(groups))
	for r := range groups {
		roots = append(roots, r)
	}
	sort.Ints(roots)

	out := make([][]block.Text, 0, len(groups))
	for _, r := range roots {
		out = append(out, groups[r])
	}
	return out
}

func unionAll(boxes []geometry.BBox) geometry.BBox {
	box := boxes[0]
	for _, b := range boxes[1:] {
		box = box.Union(b)
	}
	return box
}
