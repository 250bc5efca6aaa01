// Package geometry provides the bounding-box and point primitives shared by
// every layer of the classification core: blocks, candidates, and built
// elements all carry a BBox, and classifiers reason about pages purely in
// terms of these coordinates.
//
// Coordinates are PDF points; y increases downward, matching the page
// coordinate system the block extractor hands the core.
package geometry
