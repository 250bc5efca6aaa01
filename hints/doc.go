// Package hints computes DocumentHints: read-only, document-level
// statistics (font-size histograms, modal size estimates per well-known
// text role, page-type signals) that classifiers consult but never mutate.
// A DocumentHints is built once per document from every page's blocks and
// then shared across all per-page classification runs.
package hints
