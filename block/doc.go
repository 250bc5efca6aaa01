// Package block defines the flat, typed layout primitives the PDF extractor
// hands to the classification core: Text, Image, and vector Drawing blocks,
// plus the immutable per-page container PageData.
//
// The core never opens a PDF; it only ever sees already-extracted blocks.
package block
