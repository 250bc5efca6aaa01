// Package document drives classification across every page of one source
// document: build DocumentHints once, then fan out one classifier.Pipeline
// run per page and fan back in, preserving page order in the result. Pages
// are trivially parallelizable at the driver level — one task per page,
// fan-out then fan-in — over a bounded worker pool, since DocumentHints is
// read-only after construction and safe to share across pages.
package document

import (
	"context"
	"runtime"
	"sync"

	"github.com/tsawler/legoclassify/block"
	"github.com/tsawler/legoclassify/classifier"
	"github.com/tsawler/legoclassify/element"
	"github.com/tsawler/legoclassify/hints"
	"github.com/tsawler/legoclassify/report"
)

// Result is one page's classification output. Classify stores it at the
// page's position in the returned slice, which is how fan-in restores
// document order after concurrent processing.
type Result struct {
	Page   element.Page
	Report report.ClassificationReport
	Err    error
}

// Classify runs pipeline over every page in pages, building DocumentHints
// once up front and sharing it read-only across a bounded pool of worker
// goroutines. The returned slice is ordered to match pages regardless of
// completion order. A per-page error is carried on that page's Result
// rather than aborting the rest of the document — one malformed page must
// not take down a whole document's run.
func Classify(ctx context.Context, pipeline *classifier.Pipeline, pages []*block.PageData) []Result {
	docHints := hints.BuildHints(pages)
	results := make([]Result, len(pages))

	workers := runtime.GOMAXPROCS(0)
	if workers > len(pages) {
		workers = len(pages)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				pg, rep, err := pipeline.ClassifyPage(ctx, pages[i], docHints)
				results[i] = Result{Page: pg, Report: rep, Err: err}
			}
		}()
	}

	for i := range pages {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}
