// Package legoclassify provides the public entry point to the
// classification core: given already-extracted page blocks and a
// SolverConfig, classify produces a structured Page element plus a
// ClassificationReport per page.
//
// Basic usage:
//
//	engine, err := legoclassify.New(classifiers.All(), config.DefaultSolverConfig())
//	if err != nil {
//	    // handle error
//	}
//	page, report, err := engine.ClassifyPage(ctx, pageData, docHints)
//
// For a whole document (every page sharing one DocumentHints, processed
// concurrently):
//
//	pages, err := legoclassify.New(classifiers.All(), cfg)
//	results := pages.ClassifyDocument(ctx, allPageData)
//
// A small top-level package wrapping the lower-level classifier/document
// packages for the common case, while those packages remain directly
// usable for anyone who needs more control (a custom classifier set, a
// different logger, or direct access to document.Classify's worker-pool
// sizing).
package legoclassify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tsawler/legoclassify/block"
	"github.com/tsawler/legoclassify/classifier"
	"github.com/tsawler/legoclassify/config"
	"github.com/tsawler/legoclassify/document"
	"github.com/tsawler/legoclassify/element"
	"github.com/tsawler/legoclassify/hints"
	"github.com/tsawler/legoclassify/report"
)

// Engine wraps a validated classifier.Pipeline for the common entry points:
// one page at a time, or a whole document fanned out across pages.
type Engine struct {
	pipeline *classifier.Pipeline
}

// New validates classifiers (unique labels, declared requires, no
// dependency cycle) and builds an Engine ready to classify pages under
// cfg, logging to a no-op logger (use NewWithLogger for a real one).
func New(classifiers []classifier.Classifier, cfg config.SolverConfig) (*Engine, error) {
	return NewWithLogger(classifiers, cfg, zerolog.Nop())
}

// NewWithLogger is New with an explicit logger, for callers that want the
// pipeline's warnings (degraded pages, schema-generation failures) routed
// into their own zerolog setup (see the logging package).
func NewWithLogger(classifiers []classifier.Classifier, cfg config.SolverConfig, log zerolog.Logger) (*Engine, error) {
	pipeline, err := classifier.NewPipeline(classifiers, cfg, log)
	if err != nil {
		return nil, err
	}
	return &Engine{pipeline: pipeline}, nil
}

// ClassifyPage runs the full score→solve→build→assemble pipeline over one
// page, given a DocumentHints already computed for the page's document.
func (e *Engine) ClassifyPage(ctx context.Context, page *block.PageData, docHints hints.DocumentHints) (element.Page, report.ClassificationReport, error) {
	return e.pipeline.ClassifyPage(ctx, page, docHints)
}

// ClassifyDocument builds DocumentHints once from every page and
// classifies them concurrently, returning one Result per page in the same
// order as pages.
func (e *Engine) ClassifyDocument(ctx context.Context, pages []*block.PageData) []document.Result {
	return document.Classify(ctx, e.pipeline, pages)
}

// Must is a helper that wraps a call to a function returning (T, error) and
// panics if the error is non-nil, for scripts and tests where threading the
// error would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
